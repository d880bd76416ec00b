package usecase

import (
	"context"
	"time"

	"github.com/allisson/datashare/internal/accounts/domain"
	"github.com/allisson/datashare/internal/metrics"
	"github.com/allisson/datashare/internal/pagination"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

// accountUseCaseWithMetrics decorates the account UseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an account UseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// ListAccounts records metrics for account listing operations.
func (a *accountUseCaseWithMetrics) ListAccounts(
	ctx context.Context,
	principal authDomain.Principal,
	input ListAccountsInput,
) (pagination.Page[*domain.Account], error) {
	start := time.Now()
	page, err := a.next.ListAccounts(ctx, principal, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "accounts", "accounts_list", status)
	a.metrics.RecordDuration(ctx, "accounts", "accounts_list", time.Since(start), status)

	return page, err
}

// GetAccount records metrics for single account retrieval operations.
func (a *accountUseCaseWithMetrics) GetAccount(
	ctx context.Context,
	principal authDomain.Principal,
	token string,
) (*domain.Account, error) {
	start := time.Now()
	account, err := a.next.GetAccount(ctx, principal, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "accounts", "account_get", status)
	a.metrics.RecordDuration(ctx, "accounts", "account_get", time.Since(start), status)

	return account, err
}
