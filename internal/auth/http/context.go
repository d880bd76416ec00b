// Package http provides HTTP middleware and utilities for authentication.
package http

import (
	"context"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

// principalKey is a context key type for storing the authenticated principal.
type principalKey struct{}

// WithPrincipal stores the authenticated principal in the context.
// This is typically called by the principal middleware after validating the claims.
func WithPrincipal(ctx context.Context, principal authDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the authenticated principal from the context.
// Returns (principal, true) if one is present, or (zero, false) if none was set.
func GetPrincipal(ctx context.Context) (authDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(authDomain.Principal)
	return principal, ok
}
