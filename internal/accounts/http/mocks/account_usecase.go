// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/datashare/internal/accounts/domain"
	"github.com/allisson/datashare/internal/accounts/usecase"
	"github.com/allisson/datashare/internal/pagination"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

// MockAccountUseCase is a mock implementation of the account UseCase for testing.
type MockAccountUseCase struct {
	mock.Mock
}

// ListAccounts mocks the ListAccounts method of the account UseCase.
func (m *MockAccountUseCase) ListAccounts(
	ctx context.Context,
	principal authDomain.Principal,
	input usecase.ListAccountsInput,
) (pagination.Page[*domain.Account], error) {
	args := m.Called(ctx, principal, input)
	return args.Get(0).(pagination.Page[*domain.Account]), args.Error(1)
}

// GetAccount mocks the GetAccount method of the account UseCase.
func (m *MockAccountUseCase) GetAccount(
	ctx context.Context,
	principal authDomain.Principal,
	token string,
) (*domain.Account, error) {
	args := m.Called(ctx, principal, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
