// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/datashare/internal/pagination"
	"github.com/allisson/datashare/internal/transactions/domain"
	"github.com/allisson/datashare/internal/transactions/usecase"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
)

// MockTransactionUseCase is a mock implementation of the transaction UseCase for testing.
type MockTransactionUseCase struct {
	mock.Mock
}

// ListTransactions mocks the ListTransactions method of the transaction UseCase.
func (m *MockTransactionUseCase) ListTransactions(
	ctx context.Context,
	principal authDomain.Principal,
	input usecase.ListTransactionsInput,
) (pagination.Page[*domain.Transaction], error) {
	args := m.Called(ctx, principal, input)
	return args.Get(0).(pagination.Page[*domain.Transaction]), args.Error(1)
}
