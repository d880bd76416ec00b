package repository

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/allisson/datashare/internal/transactions/domain"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// rowScanner is the subset of sql.Rows both drivers satisfy.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads one transaction row. Amounts are stored as exact
// decimal strings and never pass through a float.
func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var transaction domain.Transaction
	var status string
	var amount string
	var postingAt sql.NullTime

	err := row.Scan(
		&transaction.ID,
		&transaction.AccountID,
		&status,
		&transaction.Description,
		&transaction.Reference,
		&amount,
		&transaction.Currency,
		&postingAt,
		&transaction.ExecutionAt,
		&transaction.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.WrapRepository(err, "failed to scan transaction")
	}

	transaction.Status = domain.Status(status)
	if postingAt.Valid {
		transaction.PostingAt = &postingAt.Time
	}

	transaction.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, apperrors.WrapRepository(err, "failed to parse transaction amount")
	}

	return &transaction, nil
}
