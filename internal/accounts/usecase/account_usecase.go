// Package usecase implements the account business logic and orchestrates
// account domain operations.
package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/allisson/datashare/internal/accounts/domain"
	authDomain "github.com/allisson/datashare/internal/auth/domain"
	idpermService "github.com/allisson/datashare/internal/idperm/service"
	"github.com/allisson/datashare/internal/pagination"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// ListAccountsInput contains the input data for an account listing.
type ListAccountsInput struct {
	OpenStatus      domain.OpenStatus
	ProductCategory string
	Page            int
	PageSize        int
}

// UseCase defines the interface for account business logic operations.
type UseCase interface {
	ListAccounts(ctx context.Context, principal authDomain.Principal, input ListAccountsInput) (pagination.Page[*domain.Account], error)
	GetAccount(ctx context.Context, principal authDomain.Principal, token string) (*domain.Account, error)
}

// AccountRepository interface defines account repository operations.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	Count(ctx context.Context, filter domain.Filter) (int64, error)
	List(ctx context.Context, filter domain.Filter, offset, limit int) ([]*domain.Account, error)
}

// ConsentGate resolves an account token and authorizes it for the caller.
type ConsentGate interface {
	ResolveAccountID(ctx context.Context, token string, principal authDomain.Principal) (string, error)
}

// AccountUseCase handles account-related business logic. Every account id
// leaving this layer is an external token, never the stored identifier.
type AccountUseCase struct {
	accountRepo AccountRepository
	gate        ConsentGate
	codec       idpermService.IdentifierCodec
	rewriter    *idpermService.Rewriter[domain.Account]
	logger      *slog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	accountRepo AccountRepository,
	gate ConsentGate,
	codec idpermService.IdentifierCodec,
	logger *slog.Logger,
) *AccountUseCase {
	rewriter := idpermService.NewRewriter[domain.Account](codec).
		WithField("id",
			func(a *domain.Account) string { return a.ID },
			func(a *domain.Account, v string) { a.ID = v },
		)

	return &AccountUseCase{
		accountRepo: accountRepo,
		gate:        gate,
		codec:       codec,
		rewriter:    rewriter,
		logger:      logger,
	}
}

// ListAccounts returns the caller's consented accounts matching the input
// filters, paginated and with account ids tokenized for the caller's scope.
//
// An empty consent set answers an empty page without touching the store:
// no consent means no data, not an error.
func (uc *AccountUseCase) ListAccounts(
	ctx context.Context,
	principal authDomain.Principal,
	input ListAccountsInput,
) (pagination.Page[*domain.Account], error) {
	if err := principal.Validate(); err != nil {
		return pagination.Page[*domain.Account]{}, err
	}

	if len(principal.ConsentedAccountIDs) == 0 {
		return pagination.Empty[*domain.Account](input.Page, input.PageSize), nil
	}

	openStatus := input.OpenStatus
	if openStatus == "" {
		openStatus = domain.OpenStatusAll
	}

	filter := domain.Filter{
		AllowedIDs:      principal.ConsentedAccountIDs,
		CustomerID:      principal.CustomerID,
		OpenStatus:      openStatus,
		ProductCategory: input.ProductCategory,
	}
	if err := filter.Validate(); err != nil {
		return pagination.Page[*domain.Account]{}, err
	}

	// Count and page fetch are independent reads, run them concurrently
	var (
		total    int64
		accounts []*domain.Account
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		total, err = uc.accountRepo.Count(groupCtx, filter)
		if err != nil {
			return apperrors.Wrap(err, "failed to count accounts")
		}
		return nil
	})
	group.Go(func() error {
		offset := (input.Page - 1) * input.PageSize
		var err error
		accounts, err = uc.accountRepo.List(groupCtx, filter, offset, input.PageSize)
		if err != nil {
			return apperrors.Wrap(err, "failed to list accounts")
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return pagination.Page[*domain.Account]{}, err
	}

	if err := uc.rewriter.Rewrite(accounts, principal.Scope()); err != nil {
		// A rewrite failure means a stored id could not be tokenized. Failing
		// the whole call is the only safe answer; a partial response could
		// carry a raw internal id.
		uc.logger.Error("account id rewrite failed", slog.Any("error", err))
		return pagination.Page[*domain.Account]{}, apperrors.Wrap(err, "failed to tokenize account ids")
	}

	return pagination.Page[*domain.Account]{
		Data:         accounts,
		CurrentPage:  input.Page,
		PageSize:     input.PageSize,
		TotalRecords: total,
	}, nil
}

// GetAccount resolves an account token through the consent gate and returns
// the account with its id tokenized back for the caller's scope.
func (uc *AccountUseCase) GetAccount(
	ctx context.Context,
	principal authDomain.Principal,
	token string,
) (*domain.Account, error) {
	if err := principal.Validate(); err != nil {
		return nil, err
	}

	accountID, err := uc.gate.ResolveAccountID(ctx, token, principal)
	if err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	encoded, err := uc.codec.EncodeID(account.ID, principal.Scope())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to tokenize account id")
	}
	account.ID = encoded

	return account, nil
}

var _ UseCase = (*AccountUseCase)(nil)
