// Package repository provides data persistence implementations for transaction entities.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/allisson/datashare/internal/database"
	"github.com/allisson/datashare/internal/transactions/domain"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// PostgreSQLTransactionRepository handles transaction persistence for PostgreSQL.
type PostgreSQLTransactionRepository struct {
	db *sql.DB
}

// NewPostgreSQLTransactionRepository creates a new PostgreSQLTransactionRepository.
func NewPostgreSQLTransactionRepository(db *sql.DB) *PostgreSQLTransactionRepository {
	return &PostgreSQLTransactionRepository{db: db}
}

// Create inserts a new transaction.
func (r *PostgreSQLTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO transactions (id, account_id, status, description, reference, amount, currency, posting_at, execution_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`

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
func (r *PostgreSQLTransactionRepository) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildPostgreSQLTransactionWhere(filter)
	query := `SELECT COUNT(*) FROM transactions ` + where

	var count int64
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.WrapRepository(err, "failed to count transactions")
	}
	return count, nil
}

// List retrieves transactions matching the filter, newest first by effective
// date with the execution date as tie-break. The effective date is the posting
// date when present and the execution date otherwise, computed in SQL so the
// ordering and the range filter agree.
func (r *PostgreSQLTransactionRepository) List(
	ctx context.Context,
	filter domain.Filter,
	offset, limit int,
) ([]*domain.Transaction, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildPostgreSQLTransactionWhere(filter)
	query := fmt.Sprintf(`SELECT id, account_id, status, description, reference, amount, currency, posting_at, execution_at, created_at
			  FROM transactions %s
			  ORDER BY COALESCE(posting_at, execution_at) DESC, execution_at DESC
			  LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
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

// buildPostgreSQLTransactionWhere builds the WHERE clause shared by Count and
// List. The account scope, already authorized upstream, is always applied.
func buildPostgreSQLTransactionWhere(filter domain.Filter) (string, []any) {
	args := []any{filter.AccountID}
	where := `WHERE account_id = $1`

	if filter.OldestAt != nil {
		args = append(args, *filter.OldestAt)
		where += fmt.Sprintf(` AND COALESCE(posting_at, execution_at) >= $%d`, len(args))
	}
	if filter.NewestAt != nil {
		args = append(args, *filter.NewestAt)
		where += fmt.Sprintf(` AND COALESCE(posting_at, execution_at) <= $%d`, len(args))
	}
	if filter.MinAmount != nil {
		args = append(args, filter.MinAmount.String())
		where += fmt.Sprintf(` AND amount >= $%d`, len(args))
	}
	if filter.MaxAmount != nil {
		args = append(args, filter.MaxAmount.String())
		where += fmt.Sprintf(` AND amount <= $%d`, len(args))
	}
	if filter.Text != "" {
		args = append(args, "%"+filter.Text+"%")
		where += fmt.Sprintf(` AND (description ILIKE $%d OR reference ILIKE $%d)`, len(args), len(args))
	}

	return where, args
}
