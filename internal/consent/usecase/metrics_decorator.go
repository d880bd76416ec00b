package usecase

import (
	"context"
	"errors"

	accountsDomain "github.com/allisson/datashare/internal/accounts/domain"
	"github.com/allisson/datashare/internal/metrics"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

// gateWithMetrics decorates a Gate with consent outcome counting.
type gateWithMetrics struct {
	next    Gate
	metrics metrics.BusinessMetrics
}

// NewGateWithMetrics wraps a Gate with consent outcome recording.
func NewGateWithMetrics(gate Gate, m metrics.BusinessMetrics) Gate {
	return &gateWithMetrics{
		next:    gate,
		metrics: m,
	}
}

// ResolveAccountID records the resolution outcome alongside the wrapped gate's result.
func (g *gateWithMetrics) ResolveAccountID(ctx context.Context, token string, principal authDomain.Principal) (string, error) {
	accountID, err := g.next.ResolveAccountID(ctx, token, principal)

	switch {
	case err == nil:
		g.metrics.RecordConsentOutcome(ctx, metrics.ConsentOutcomeAuthorized)
	case errors.Is(err, accountsDomain.ErrAccountConsentMissing):
		g.metrics.RecordConsentOutcome(ctx, metrics.ConsentOutcomeMissing)
	case errors.Is(err, accountsDomain.ErrAccountNotResolvable):
		g.metrics.RecordConsentOutcome(ctx, metrics.ConsentOutcomeNotResolvable)
	}

	return accountID, err
}
