// Package repository provides data persistence implementations for account entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/allisson/datashare/internal/accounts/domain"
	"github.com/allisson/datashare/internal/database"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// PostgreSQLAccountRepository handles account persistence for PostgreSQL.
// Uses pq.Array to bind the consent boundary as a single array parameter.
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccountRepository creates a new PostgreSQLAccountRepository.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}

// Create inserts a new account.
func (r *PostgreSQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (id, customer_id, display_name, nickname, masked_number, product_category, product_name, open_status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`

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
func (r *PostgreSQLAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var account domain.Account
	var openStatus string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, customer_id, display_name, nickname, masked_number, product_category, product_name, open_status, created_at, updated_at
			  FROM accounts WHERE id = $1`

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
func (r *PostgreSQLAccountRepository) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildPostgreSQLAccountWhere(filter)
	query := `SELECT COUNT(*) FROM accounts ` + where

	var count int64
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.WrapRepository(err, "failed to count accounts")
	}
	return count, nil
}

// List retrieves accounts matching the filter ordered by display name with id
// as a stable tie-break.
func (r *PostgreSQLAccountRepository) List(
	ctx context.Context,
	filter domain.Filter,
	offset, limit int,
) ([]*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildPostgreSQLAccountWhere(filter)
	query := fmt.Sprintf(`SELECT id, customer_id, display_name, nickname, masked_number, product_category, product_name, open_status, created_at, updated_at
			  FROM accounts %s
			  ORDER BY display_name ASC, id ASC
			  LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
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

// buildPostgreSQLAccountWhere builds the WHERE clause shared by Count and List.
// The consent boundary is always applied; the customer ownership bound only
// exists for caller contexts that carry an internal customer id claim.
func buildPostgreSQLAccountWhere(filter domain.Filter) (string, []any) {
	args := []any{pq.Array(filter.AllowedIDs)}
	where := `WHERE id = ANY($1)`

	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		where += fmt.Sprintf(` AND customer_id = $%d`, len(args))
	}
	if filter.OpenStatus != domain.OpenStatusAll && filter.OpenStatus != "" {
		args = append(args, string(filter.OpenStatus))
		where += fmt.Sprintf(` AND open_status = $%d`, len(args))
	}
	if filter.ProductCategory != "" {
		args = append(args, filter.ProductCategory)
		where += fmt.Sprintf(` AND product_category = $%d`, len(args))
	}

	return where, args
}
