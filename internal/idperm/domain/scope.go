// Package domain defines the caller scope and error types for identifier
// permanence: internal row identifiers are never exposed externally, only
// reversible tokens keyed per (software product, customer) pair.
package domain

import (
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/datashare/internal/errors"
	customValidation "github.com/allisson/datashare/internal/validation"
)

// CallerScope keys the identifier transform. The same internal identifier
// encodes to different tokens for different scopes, so two data recipients
// cannot correlate a customer's records. Constructed once per request from the
// validated principal and treated as immutable.
//
// CustomerKey is either the customer's stable login identifier or their
// internal unique id depending on caller context. The two must never be mixed
// for the same token: a token encoded under one and decoded under the other
// yields garbage, not an error.
type CallerScope struct {
	SoftwareProductID string
	CustomerKey       string
}

// Validate checks both scope components are present.
// Returns ErrInvalidScope otherwise; an empty component is a programming
// error upstream, not a recoverable condition.
func (s CallerScope) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.SoftwareProductID, validation.Required, customValidation.NotBlank),
		validation.Field(&s.CustomerKey, validation.Required, customValidation.NotBlank),
	)
	if err != nil {
		return apperrors.Wrap(ErrInvalidScope, err.Error())
	}
	return nil
}
