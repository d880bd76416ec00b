package domain

import (
	apperrors "github.com/allisson/datashare/internal/errors"
)

var (
	// ErrAccountNotResolvable is returned when an account token cannot be
	// resolved for the caller: the token is malformed, the account does not
	// exist, or it belongs to another customer. All three cases look the same
	// from the outside.
	ErrAccountNotResolvable = apperrors.Wrap(apperrors.ErrNotFound, "account not resolvable")

	// ErrAccountConsentMissing is returned when the account exists and belongs
	// to the customer, but is not part of the active consent.
	ErrAccountConsentMissing = apperrors.Wrap(apperrors.ErrConsentMissing, "account not consented")
)
