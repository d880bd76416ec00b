// Package dto provides data transfer objects for the transaction HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/datashare/internal/validation"
)

// ListTransactionsRequest represents the query parameters for a transaction
// listing. Times are RFC 3339, amounts are decimal strings.
type ListTransactionsRequest struct {
	OldestTime string `form:"oldest-time"`
	NewestTime string `form:"newest-time"`
	MinAmount  string `form:"min-amount"`
	MaxAmount  string `form:"max-amount"`
	Text       string `form:"text"`
}

// Validate validates the ListTransactionsRequest using the jellydator/validation library.
func (r *ListTransactionsRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.OldestTime, appValidation.RFC3339Time),
		validation.Field(&r.NewestTime, appValidation.RFC3339Time),
		validation.Field(&r.MinAmount, appValidation.DecimalString),
		validation.Field(&r.MaxAmount, appValidation.DecimalString),
		validation.Field(&r.Text,
			validation.Length(0, 255).Error("text must be at most 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}
