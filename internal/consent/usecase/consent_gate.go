// Package usecase implements the consent checks applied before any
// account-scoped resource is served.
package usecase

import (
	"context"
	"errors"
	"log/slog"

	accountsDomain "github.com/allisson/datashare/internal/accounts/domain"
	authDomain "github.com/allisson/datashare/internal/auth/domain"
	idpermDomain "github.com/allisson/datashare/internal/idperm/domain"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// AccountGetter retrieves accounts by their internal identifier.
type AccountGetter interface {
	GetByID(ctx context.Context, id string) (*accountsDomain.Account, error)
}

// IdentifierDecoder resolves a resource token back to the internal identifier
// it was issued for.
type IdentifierDecoder interface {
	DecodeID(token string, scope idpermDomain.CallerScope) (string, error)
}

// Gate defines the consent check applied to account-scoped requests.
type Gate interface {
	ResolveAccountID(ctx context.Context, token string, principal authDomain.Principal) (string, error)
}

// ConsentGate resolves an account token for a caller and verifies ownership
// and consent before releasing the internal identifier.
//
// Malformed tokens, unknown accounts and accounts owned by another customer
// all collapse into the same not-resolvable error so a caller probing with
// tokens from other scopes learns nothing. Only an account that exists and
// belongs to the caller but sits outside the consent surfaces the distinct
// consent error.
type ConsentGate struct {
	decoder IdentifierDecoder
	getter  AccountGetter
	logger  *slog.Logger
}

// NewConsentGate creates a new ConsentGate.
func NewConsentGate(decoder IdentifierDecoder, getter AccountGetter, logger *slog.Logger) *ConsentGate {
	return &ConsentGate{
		decoder: decoder,
		getter:  getter,
		logger:  logger,
	}
}

// ResolveAccountID runs the full check chain: decode, existence, ownership,
// consent membership. On success it returns the internal account identifier.
func (g *ConsentGate) ResolveAccountID(ctx context.Context, token string, principal authDomain.Principal) (string, error) {
	accountID, err := g.decoder.DecodeID(token, principal.Scope())
	if err != nil {
		if errors.Is(err, idpermDomain.ErrMalformedToken) {
			g.logger.Warn("account token failed to decode",
				slog.String("software_product_id", principal.SoftwareProductID),
			)
			return "", accountsDomain.ErrAccountNotResolvable
		}
		return "", apperrors.Wrap(err, "failed to decode account token")
	}

	account, err := g.getter.GetByID(ctx, accountID)
	if err != nil {
		return "", err
	}

	// Caller contexts keyed by login identifier carry no internal customer id
	// claim; for them the consent membership check below is the only bound.
	if principal.CustomerID != "" && account.CustomerID != principal.CustomerID {
		g.logger.Warn("account belongs to another customer",
			slog.String("software_product_id", principal.SoftwareProductID),
		)
		return "", accountsDomain.ErrAccountNotResolvable
	}

	if !principal.HasConsentedAccount(account.ID) {
		return "", accountsDomain.ErrAccountConsentMissing
	}

	return account.ID, nil
}
