package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/datashare/internal/database"
	"github.com/allisson/datashare/internal/transactions/domain"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// MySQLTransactionRepository handles transaction persistence for MySQL. MySQL
// LIKE is case-insensitive on the default collation, so the text filter lowers
// both sides explicitly to not depend on collation settings.
type MySQLTransactionRepository struct {
	db *sql.DB
}

// NewMySQLTransactionRepository creates a new MySQLTransactionRepository.
func NewMySQLTransactionRepository(db *sql.DB) *MySQLTransactionRepository {
	return &MySQLTransactionRepository{db: db}
}

// Create inserts a new transaction.
func (r *MySQLTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO transactions (id, account_id, status, description, reference, amount, currency, posting_at, execution_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		transaction.ID,
		transaction.AccountID,
		string(transaction.Status),
		transaction.Description,
		transaction.Reference,
		transaction.Amount.String(),
		transaction.Currency,
		transaction.PostingAt,
		transaction.ExecutionAt,
	)
	if err != nil {
		return apperrors.WrapRepository(err, "failed to create transaction")
	}
	return nil
}

// Count returns the number of transactions matching the filter.
func (r *MySQLTransactionRepository) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildMySQLTransactionWhere(filter)
	query := `SELECT COUNT(*) FROM transactions ` + where

	var count int64
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.WrapRepository(err, "failed to count transactions")
	}
	return count, nil
}

// List retrieves transactions matching the filter, newest first by effective
// date with the execution date as tie-break.
func (r *MySQLTransactionRepository) List(
	ctx context.Context,
	filter domain.Filter,
	offset, limit int,
) ([]*domain.Transaction, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildMySQLTransactionWhere(filter)
	query := `SELECT id, account_id, status, description, reference, amount, currency, posting_at, execution_at, created_at
			  FROM transactions ` + where + `
			  ORDER BY COALESCE(posting_at, execution_at) DESC, execution_at DESC
			  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.WrapRepository(err, "failed to list transactions")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapRepository(err, "failed to iterate transactions")
	}

	return transactions, nil
}

// buildMySQLTransactionWhere builds the WHERE clause shared by Count and List.
func buildMySQLTransactionWhere(filter domain.Filter) (string, []any) {
	args := []any{filter.AccountID}
	where := `WHERE account_id = ?`

	if filter.OldestAt != nil {
		where += ` AND COALESCE(posting_at, execution_at) >= ?`
		args = append(args, *filter.OldestAt)
	}
	if filter.NewestAt != nil {
		where += ` AND COALESCE(posting_at, execution_at) <= ?`
		args = append(args, *filter.NewestAt)
	}
	if filter.MinAmount != nil {
		where += ` AND amount >= ?`
		args = append(args, filter.MinAmount.String())
	}
	if filter.MaxAmount != nil {
		where += ` AND amount <= ?`
		args = append(args, filter.MaxAmount.String())
	}
	if filter.Text != "" {
		where += ` AND (LOWER(description) LIKE LOWER(?) OR LOWER(reference) LIKE LOWER(?))`
		pattern := "%" + filter.Text + "%"
		args = append(args, pattern, pattern)
	}

	return where, args
}
