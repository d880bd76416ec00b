// Package domain contains the transaction entities and filters.
package domain

import (
	"time"

	"github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	apperrors "github.com/allisson/datashare/internal/errors"
	appvalidation "github.com/allisson/datashare/internal/validation"
)

// defaultWindow is the trailing period applied when the caller gives no
// oldest-time bound.
const defaultWindow = 90 * 24 * time.Hour

// Status classifies whether a transaction has been posted to the account.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusPosted  Status = "POSTED"
)

// Transaction represents a single account transaction.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Status      Status          `json:"status"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	// PostingAt is nil while the transaction is pending.
	PostingAt   *time.Time `json:"posting_at"`
	ExecutionAt time.Time  `json:"execution_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// EffectiveAt returns the date the transaction takes effect: the posting date
// when present, the execution date otherwise.
func (t *Transaction) EffectiveAt() time.Time {
	if t.PostingAt != nil {
		return *t.PostingAt
	}
	return t.ExecutionAt
}

// Validate implements the validation.Validatable interface.
func (t Transaction) Validate() error {
	err := validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required, appvalidation.NotBlank),
		validation.Field(&t.AccountID, validation.Required, appvalidation.NotBlank),
		validation.Field(&t.Status, validation.Required, validation.In(StatusPending, StatusPosted)),
		validation.Field(&t.Currency, validation.Required, validation.Length(3, 3)),
		validation.Field(&t.ExecutionAt, validation.Required),
	)
	return appvalidation.WrapValidationError(err)
}

// Filter narrows a transaction listing for one account.
type Filter struct {
	AccountID string
	OldestAt  *time.Time
	NewestAt  *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	// Text matches case-insensitively as a substring of the description or
	// the reference.
	Text string
}

// WithDefaults fills the time window: missing newest-time becomes now and a
// missing oldest-time becomes newest-time minus the trailing 90 days. Both
// bounds are inclusive.
func (f Filter) WithDefaults(now time.Time) Filter {
	if f.NewestAt == nil {
		f.NewestAt = &now
	}
	if f.OldestAt == nil {
		oldest := f.NewestAt.Add(-defaultWindow)
		f.OldestAt = &oldest
	}
	return f
}

// Validate implements the validation.Validatable interface.
func (f Filter) Validate() error {
	if f.AccountID == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "account id is required")
	}
	if f.OldestAt != nil && f.NewestAt != nil && f.OldestAt.After(*f.NewestAt) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "oldest-time must not be after newest-time")
	}
	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.GreaterThan(*f.MaxAmount) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "min-amount must not exceed max-amount")
	}
	return nil
}
