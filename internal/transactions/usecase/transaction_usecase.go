// Package usecase implements the transaction business logic and orchestrates
// transaction domain operations.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	idpermService "github.com/allisson/datashare/internal/idperm/service"
	"github.com/allisson/datashare/internal/pagination"
	"github.com/allisson/datashare/internal/transactions/domain"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// ListTransactionsInput contains the input data for a transaction listing.
// AccountToken is the external token from the request path, resolved through
// the consent gate before any query runs.
type ListTransactionsInput struct {
	AccountToken string
	Filter       domain.Filter
	Page         int
	PageSize     int
}

// UseCase defines the interface for transaction business logic operations.
type UseCase interface {
	ListTransactions(ctx context.Context, principal authDomain.Principal, input ListTransactionsInput) (pagination.Page[*domain.Transaction], error)
}

// TransactionRepository interface defines transaction repository operations.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error
	Count(ctx context.Context, filter domain.Filter) (int64, error)
	List(ctx context.Context, filter domain.Filter, offset, limit int) ([]*domain.Transaction, error)
}

// ConsentGate resolves an account token and authorizes it for the caller.
type ConsentGate interface {
	ResolveAccountID(ctx context.Context, token string, principal authDomain.Principal) (string, error)
}

// TransactionUseCase handles transaction-related business logic. Both the
// transaction id and the account id are tokenized before leaving this layer.
type TransactionUseCase struct {
	transactionRepo TransactionRepository
	gate            ConsentGate
	rewriter        *idpermService.Rewriter[domain.Transaction]
	logger          *slog.Logger
	now             func() time.Time
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	transactionRepo TransactionRepository,
	gate ConsentGate,
	codec idpermService.IdentifierCodec,
	logger *slog.Logger,
) *TransactionUseCase {
	rewriter := idpermService.NewRewriter[domain.Transaction](codec).
		WithField("id",
			func(tx *domain.Transaction) string { return tx.ID },
			func(tx *domain.Transaction, v string) { tx.ID = v },
		).
		WithField("account_id",
			func(tx *domain.Transaction) string { return tx.AccountID },
			func(tx *domain.Transaction, v string) { tx.AccountID = v },
		)

	return &TransactionUseCase{
		transactionRepo: transactionRepo,
		gate:            gate,
		rewriter:        rewriter,
		logger:          logger,
		now:             time.Now,
	}
}

// ListTransactions resolves the account token through the consent gate, then
// lists the account's transactions within the filter's window. Missing window
// bounds default to the trailing 90 days.
func (uc *TransactionUseCase) ListTransactions(
	ctx context.Context,
	principal authDomain.Principal,
	input ListTransactionsInput,
) (pagination.Page[*domain.Transaction], error) {
	if err := principal.Validate(); err != nil {
		return pagination.Page[*domain.Transaction]{}, err
	}

	accountID, err := uc.gate.ResolveAccountID(ctx, input.AccountToken, principal)
	if err != nil {
		return pagination.Page[*domain.Transaction]{}, err
	}

	filter := input.Filter
	filter.AccountID = accountID
	filter = filter.WithDefaults(uc.now())
	if err := filter.Validate(); err != nil {
		return pagination.Page[*domain.Transaction]{}, err
	}

	// Count and page fetch are independent reads, run them concurrently
	var (
		total        int64
		transactions []*domain.Transaction
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		total, err = uc.transactionRepo.Count(groupCtx, filter)
		if err != nil {
			return apperrors.Wrap(err, "failed to count transactions")
		}
		return nil
	})
	group.Go(func() error {
		offset := (input.Page - 1) * input.PageSize
		var err error
		transactions, err = uc.transactionRepo.List(groupCtx, filter, offset, input.PageSize)
		if err != nil {
			return apperrors.Wrap(err, "failed to list transactions")
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return pagination.Page[*domain.Transaction]{}, err
	}

	if err := uc.rewriter.Rewrite(transactions, principal.Scope()); err != nil {
		// Failing the whole call is the only safe answer; a partial response
		// could carry a raw internal id.
		uc.logger.Error("transaction id rewrite failed", slog.Any("error", err))
		return pagination.Page[*domain.Transaction]{}, apperrors.Wrap(err, "failed to tokenize transaction ids")
	}

	return pagination.Page[*domain.Transaction]{
		Data:         transactions,
		CurrentPage:  input.Page,
		PageSize:     input.PageSize,
		TotalRecords: total,
	}, nil
}

var _ UseCase = (*TransactionUseCase)(nil)
