package usecase

import (
	"context"
	"time"

	"github.com/allisson/datashare/internal/metrics"
	"github.com/allisson/datashare/internal/pagination"
	"github.com/allisson/datashare/internal/transactions/domain"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

// transactionUseCaseWithMetrics decorates the transaction UseCase with metrics instrumentation.
type transactionUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewTransactionUseCaseWithMetrics wraps a transaction UseCase with metrics recording.
func NewTransactionUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &transactionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// ListTransactions records metrics for transaction listing operations.
func (t *transactionUseCaseWithMetrics) ListTransactions(
	ctx context.Context,
	principal authDomain.Principal,
	input ListTransactionsInput,
) (pagination.Page[*domain.Transaction], error) {
	start := time.Now()
	page, err := t.next.ListTransactions(ctx, principal, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "transactions", "transactions_list", status)
	t.metrics.RecordDuration(ctx, "transactions", "transactions_list", time.Since(start), status)

	return page, err
}
