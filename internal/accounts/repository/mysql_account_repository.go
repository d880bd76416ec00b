package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/allisson/datashare/internal/accounts/domain"
	"github.com/allisson/datashare/internal/database"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// MySQLAccountRepository handles account persistence for MySQL. MySQL has no
// array parameters, so the consent boundary is expanded into an IN list.
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a new MySQLAccountRepository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}

// Create inserts a new account.
func (r *MySQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (id, customer_id, display_name, nickname, masked_number, product_category, product_name, open_status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		account.ID,
		account.CustomerID,
		account.DisplayName,
		account.Nickname,
		account.MaskedNumber,
		account.ProductCategory,
		account.ProductName,
		string(account.OpenStatus),
	)
	if err != nil {
		return apperrors.WrapRepository(err, "failed to create account")
	}
	return nil
}

// GetByID retrieves an account by its internal identifier.
func (r *MySQLAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var account domain.Account
	var openStatus string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, customer_id, display_name, nickname, masked_number, product_category, product_name, open_status, created_at, updated_at
			  FROM accounts WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.CustomerID,
		&account.DisplayName,
		&account.Nickname,
		&account.MaskedNumber,
		&account.ProductCategory,
		&account.ProductName,
		&openStatus,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotResolvable
		}
		return nil, apperrors.WrapRepository(err, "failed to get account by id")
	}

	account.OpenStatus = domain.OpenStatus(openStatus)
	return &account, nil
}

// Count returns the number of accounts matching the filter.
func (r *MySQLAccountRepository) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildMySQLAccountWhere(filter)
	query := `SELECT COUNT(*) FROM accounts ` + where

	var count int64
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.WrapRepository(err, "failed to count accounts")
	}
	return count, nil
}

// List retrieves accounts matching the filter ordered by display name with id
// as a stable tie-break.
func (r *MySQLAccountRepository) List(
	ctx context.Context,
	filter domain.Filter,
	offset, limit int,
) ([]*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildMySQLAccountWhere(filter)
	query := `SELECT id, customer_id, display_name, nickname, masked_number, product_category, product_name, open_status, created_at, updated_at
			  FROM accounts ` + where + `
			  ORDER BY display_name ASC, id ASC
			  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.WrapRepository(err, "failed to list accounts")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		var openStatus string

		err := rows.Scan(
			&account.ID,
			&account.CustomerID,
			&account.DisplayName,
			&account.Nickname,
			&account.MaskedNumber,
			&account.ProductCategory,
			&account.ProductName,
			&openStatus,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.WrapRepository(err, "failed to scan account")
		}

		account.OpenStatus = domain.OpenStatus(openStatus)
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapRepository(err, "failed to iterate accounts")
	}

	return accounts, nil
}

// buildMySQLAccountWhere builds the WHERE clause shared by Count and List.
// The consent boundary is always applied; the customer ownership bound only
// exists for caller contexts that carry an internal customer id claim.
// AllowedIDs is never empty here; the usecase answers an empty consent set
// without touching the store.
func buildMySQLAccountWhere(filter domain.Filter) (string, []any) {
	placeholders := make([]string, len(filter.AllowedIDs))
	args := make([]any, 0, len(filter.AllowedIDs)+3)
	for i, id := range filter.AllowedIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}

	where := `WHERE id IN (` + strings.Join(placeholders, ", ") + `)`

	if filter.CustomerID != "" {
		where += ` AND customer_id = ?`
		args = append(args, filter.CustomerID)
	}
	if filter.OpenStatus != domain.OpenStatusAll && filter.OpenStatus != "" {
		where += ` AND open_status = ?`
		args = append(args, string(filter.OpenStatus))
	}
	if filter.ProductCategory != "" {
		where += ` AND product_category = ?`
		args = append(args, filter.ProductCategory)
	}

	return where, args
}
