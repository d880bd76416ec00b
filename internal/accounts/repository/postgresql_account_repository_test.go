package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/datashare/internal/accounts/domain"

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

func accountColumns() []string {
	return []string{
		"id", "customer_id", "display_name", "nickname", "masked_number",
		"product_category", "product_name", "open_status", "created_at", "updated_at",
	}
}

func accountRow(rows *sqlmock.Rows, account *domain.Account) {
	rows.AddRow(
		account.ID, account.CustomerID, account.DisplayName, account.Nickname,
		account.MaskedNumber, account.ProductCategory, account.ProductName,
		string(account.OpenStatus), account.CreatedAt, account.UpdatedAt,
	)
}

func testAccount(id, customerID string) *domain.Account {
	now := time.Now()
	return &domain.Account{
		ID:              id,
		CustomerID:      customerID,
		DisplayName:     "Everyday Transaction",
		Nickname:        "spending",
		MaskedNumber:    "xxxx-4321",
		ProductCategory: "TRANS_AND_SAVINGS_ACCOUNTS",
		ProductName:     "Everyday",
		OpenStatus:      domain.OpenStatusOpen,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestNewPostgreSQLAccountRepository(t *testing.T) {
	db, _ := setupMockDB(t)

	repo := NewPostgreSQLAccountRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestPostgreSQLAccountRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLAccountRepository(db)
	ctx := context.Background()

	expected := testAccount("a-1", "c-1")
	rows := sqlmock.NewRows(accountColumns())
	accountRow(rows, expected)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, customer_id, display_name`)).
		WithArgs("a-1").
		WillReturnRows(rows)

	account, err := repo.GetByID(ctx, "a-1")
	assert.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, expected.ID, account.ID)
	assert.Equal(t, expected.CustomerID, account.CustomerID)
	assert.Equal(t, domain.OpenStatusOpen, account.OpenStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAccountRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLAccountRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, customer_id, display_name`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	account, err := repo.GetByID(ctx, "missing")
	assert.Error(t, err)
	assert.Nil(t, account)
	assert.True(t, apperrors.Is(err, domain.ErrAccountNotResolvable))
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAccountRepository_Count(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLAccountRepository(db)
	ctx := context.Background()

	filter := domain.Filter{
		AllowedIDs: []string{"a-1", "a-2"},
		CustomerID: "c-1",
		OpenStatus: domain.OpenStatusAll,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM accounts WHERE id = ANY($1) AND customer_id = $2`)).
		WithArgs(pq.Array(filter.AllowedIDs), "c-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.Count(ctx, filter)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAccountRepository_Count_NoCustomerID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLAccountRepository(db)
	ctx := context.Background()

	filter := domain.Filter{
		AllowedIDs: []string{"a-1", "a-2"},
		OpenStatus: domain.OpenStatusAll,
	}

	// Without a customer id claim the consent list is the only bound.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM accounts WHERE id = ANY($1)`) + `$`).
		WithArgs(pq.Array(filter.AllowedIDs)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.Count(ctx, filter)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAccountRepository_Count_StoreError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLAccountRepository(db)
	ctx := context.Background()

	filter := domain.Filter{
		AllowedIDs: []string{"a-1"},
		CustomerID: "c-1",
		OpenStatus: domain.OpenStatusAll,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM accounts`)).
		WillReturnError(assert.AnError)

	_, err := repo.Count(ctx, filter)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRepository)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAccountRepository_GetByID_StoreError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLAccountRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, customer_id, display_name`)).
		WithArgs("a-1").
		WillReturnError(assert.AnError)

	account, err := repo.GetByID(ctx, "a-1")
	assert.Nil(t, account)
	assert.ErrorIs(t, err, apperrors.ErrRepository)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAccountRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLAccountRepository(db)
	ctx := context.Background()

	filter := domain.Filter{
		AllowedIDs:      []string{"a-1", "a-2"},
		CustomerID:      "c-1",
		OpenStatus:      domain.OpenStatusOpen,
		ProductCategory: "TRANS_AND_SAVINGS_ACCOUNTS",
	}

	account1 := testAccount("a-1", "c-1")
	account2 := testAccount("a-2", "c-1")
	rows := sqlmock.NewRows(accountColumns())
	accountRow(rows, account1)
	accountRow(rows, account2)

	mock.ExpectQuery(regexp.QuoteMeta(`AND open_status = $3 AND product_category = $4`)).
		WithArgs(pq.Array(filter.AllowedIDs), "c-1", "OPEN", "TRANS_AND_SAVINGS_ACCOUNTS", 25, 0).
		WillReturnRows(rows)

	accounts, err := repo.List(ctx, filter, 0, 25)
	assert.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "a-1", accounts[0].ID)
	assert.Equal(t, "a-2", accounts[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAccountRepository_List_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLAccountRepository(db)
	ctx := context.Background()

	filter := domain.Filter{
		AllowedIDs: []string{"a-1"},
		CustomerID: "c-1",
		OpenStatus: domain.OpenStatusAll,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM accounts WHERE id = ANY($1) AND customer_id = $2`)).
		WithArgs(pq.Array(filter.AllowedIDs), "c-1", 25, 0).
		WillReturnRows(sqlmock.NewRows(accountColumns()))

	accounts, err := repo.List(ctx, filter, 0, 25)
	assert.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAccountRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLAccountRepository(db)
	ctx := context.Background()

	account := testAccount("a-1", "c-1")

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO accounts`)).
		WithArgs(
			account.ID, account.CustomerID, account.DisplayName, account.Nickname,
			account.MaskedNumber, account.ProductCategory, account.ProductName, "OPEN",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(ctx, account)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
