package domain

import (
	"fmt"

	apperrors "github.com/allisson/datashare/internal/errors"
)

var (
	// ErrInvalidScope indicates a caller scope with a missing software product id
	// or customer key. Treated as a hard failure, never recovered.
	ErrInvalidScope = apperrors.Wrap(
		apperrors.ErrInvalidInput,
		"caller scope requires a software product id and a customer key",
	)

	// ErrMalformedToken indicates an external identifier that cannot be decoded:
	// bad transport encoding, cipher unwrap failure, or a corrupt compressed
	// payload. Callers treat it as "identifier not resolvable", never as a crash.
	ErrMalformedToken = apperrors.New("malformed external identifier")

	// ErrMissingPrivateKey indicates the server-wide private key was not provisioned.
	ErrMissingPrivateKey = apperrors.New("id permanence private key is required")
)

// NewFormatError reports a decode failure at the named stage while preserving
// the underlying cause. Matches ErrMalformedToken via errors.Is.
func NewFormatError(stage string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", stage, ErrMalformedToken)
	}
	return fmt.Errorf("%s: %w: %v", stage, ErrMalformedToken, cause)
}
