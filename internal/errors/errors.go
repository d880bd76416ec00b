// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist or cannot be
	// resolved from an external identifier. Malformed identifier tokens are also
	// reported as ErrNotFound so callers cannot probe for valid identifiers.
	ErrNotFound = errors.New("not found")

	// ErrConsentMissing indicates the resource exists but is outside the set of
	// identifiers the customer consented to share with the calling data recipient.
	// Both ErrNotFound and ErrConsentMissing map to 404 outward, but with
	// different error codes.
	ErrConsentMissing = errors.New("consent missing")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks a valid authenticated principal.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated principal doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrRepository indicates the data store is unavailable or a query failed.
	// Surfaced as a 5xx-class failure and never retried by the core.
	ErrRepository = errors.New("repository failure")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapRepository marks a store failure with ErrRepository while keeping the
// driver error in the chain, so handlers map it to a 5xx and operators still
// see the underlying cause in the logs.
func WrapRepository(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", message, ErrRepository, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
