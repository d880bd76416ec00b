package repository

import (
	"context"
	"database/sql"
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

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

func transactionColumns() []string {
	return []string{
		"id", "account_id", "status", "description", "reference",
		"amount", "currency", "posting_at", "execution_at", "created_at",
	}
}

func TestPostgreSQLTransactionRepository_Count(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLTransactionRepository(db)
	ctx := context.Background()

	oldest := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	newest := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	filter := domain.Filter{AccountID: "acc-1", OldestAt: &oldest, NewestAt: &newest}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM transactions WHERE account_id = $1 AND COALESCE(posting_at, execution_at) >= $2 AND COALESCE(posting_at, execution_at) <= $3`)).
		WithArgs("acc-1", oldest, newest).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(ctx, filter)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLTransactionRepository_Count_StoreError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLTransactionRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM transactions`)).
		WillReturnError(assert.AnError)

	_, err := repo.Count(ctx, domain.Filter{AccountID: "acc-1"})
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRepository)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLTransactionRepository_List_StoreError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLTransactionRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM transactions`)).
		WillReturnError(assert.AnError)

	transactions, err := repo.List(ctx, domain.Filter{AccountID: "acc-1"}, 0, 25)
	assert.Nil(t, transactions)
	assert.ErrorIs(t, err, apperrors.ErrRepository)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLTransactionRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLTransactionRepository(db)
	ctx := context.Background()

	execution := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	posting := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 6, 1, 10, 0, 1, 0, time.UTC)

	rows := sqlmock.NewRows(transactionColumns()).
		AddRow("tx-1", "acc-1", "POSTED", "Coffee Shop", "REF001", "-4.50", "AUD", posting, execution, created).
		AddRow("tx-2", "acc-1", "PENDING", "Grocery Store", "REF002", "-32.10", "AUD", nil, execution, created)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY COALESCE(posting_at, execution_at) DESC, execution_at DESC`)).
		WithArgs("acc-1", 25, 0).
		WillReturnRows(rows)

	transactions, err := repo.List(ctx, domain.Filter{AccountID: "acc-1"}, 0, 25)
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "tx-1", transactions[0].ID)
	assert.True(t, transactions[0].Amount.Equal(decimal.RequireFromString("-4.50")))
	require.NotNil(t, transactions[0].PostingAt)
	assert.Equal(t, posting, transactions[0].EffectiveAt())

	// A pending transaction has no posting date; effective falls back.
	assert.Nil(t, transactions[1].PostingAt)
	assert.Equal(t, execution, transactions[1].EffectiveAt())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLTransactionRepository_List_TextAndAmountFilters(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLTransactionRepository(db)
	ctx := context.Background()

	minAmount := decimal.RequireFromString("-50")
	maxAmount := decimal.RequireFromString("0")
	filter := domain.Filter{
		AccountID: "acc-1",
		MinAmount: &minAmount,
		MaxAmount: &maxAmount,
		Text:      "coffee",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`AND amount >= $2 AND amount <= $3 AND (description ILIKE $4 OR reference ILIKE $4)`)).
		WithArgs("acc-1", "-50", "0", "%coffee%", 25, 0).
		WillReturnRows(sqlmock.NewRows(transactionColumns()))

	transactions, err := repo.List(ctx, filter, 0, 25)
	assert.NoError(t, err)
	assert.Empty(t, transactions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLTransactionRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLTransactionRepository(db)
	ctx := context.Background()

	execution := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	transaction := &domain.Transaction{
		ID:          "tx-1",
		AccountID:   "acc-1",
		Status:      domain.StatusPending,
		Description: "Coffee Shop",
		Reference:   "REF001",
		Amount:      decimal.RequireFromString("-4.50"),
		Currency:    "AUD",
		ExecutionAt: execution,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO transactions`)).
		WithArgs("tx-1", "acc-1", "PENDING", "Coffee Shop", "REF001", "-4.5", "AUD", nil, execution).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(ctx, transaction)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
