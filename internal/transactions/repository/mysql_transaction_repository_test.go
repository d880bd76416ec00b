package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/datashare/internal/transactions/domain"

	apperrors "github.com/allisson/datashare/internal/errors"
)

func TestMySQLTransactionRepository_Count(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLTransactionRepository(db)
	ctx := context.Background()

	oldest := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	newest := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	filter := domain.Filter{AccountID: "acc-1", OldestAt: &oldest, NewestAt: &newest}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM transactions WHERE account_id = ? AND COALESCE(posting_at, execution_at) >= ? AND COALESCE(posting_at, execution_at) <= ?`)).
		WithArgs("acc-1", oldest, newest).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(ctx, filter)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLTransactionRepository_Count_StoreError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLTransactionRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM transactions`)).
		WillReturnError(assert.AnError)

	_, err := repo.Count(ctx, domain.Filter{AccountID: "acc-1"})
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRepository)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLTransactionRepository_List_TextFilter(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLTransactionRepository(db)
	ctx := context.Background()

	execution := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	created := execution.Add(time.Second)

	rows := sqlmock.NewRows(transactionColumns()).
		AddRow("tx-1", "acc-1", "POSTED", "Coffee Shop", "REF001", "-4.50", "AUD", execution, execution, created)

	// The pattern binds twice, once per column.
	mock.ExpectQuery(regexp.QuoteMeta(`(LOWER(description) LIKE LOWER(?) OR LOWER(reference) LIKE LOWER(?))`)).
		WithArgs("acc-1", "%coffee%", "%coffee%", 25, 0).
		WillReturnRows(rows)

	transactions, err := repo.List(ctx, domain.Filter{AccountID: "acc-1", Text: "coffee"}, 0, 25)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "tx-1", transactions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLTransactionRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLTransactionRepository(db)
	ctx := context.Background()

	execution := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	transaction := &domain.Transaction{
		ID:          "tx-1",
		AccountID:   "acc-1",
		Status:      domain.StatusPosted,
		Description: "Coffee Shop",
		Reference:   "REF001",
		Amount:      decimal.RequireFromString("-4.50"),
		Currency:    "AUD",
		PostingAt:   &execution,
		ExecutionAt: execution,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO transactions`)).
		WithArgs("tx-1", "acc-1", "POSTED", "Coffee Shop", "REF001", "-4.5", "AUD", execution, execution).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(ctx, transaction)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
