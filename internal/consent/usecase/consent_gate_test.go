package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountsDomain "github.com/allisson/datashare/internal/accounts/domain"
	authDomain "github.com/allisson/datashare/internal/auth/domain"
	idpermDomain "github.com/allisson/datashare/internal/idperm/domain"

	apperrors "github.com/allisson/datashare/internal/errors"
)

type mockDecoder struct {
	mock.Mock
}

func (m *mockDecoder) DecodeID(token string, scope idpermDomain.CallerScope) (string, error) {
	args := m.Called(token, scope)
	return args.String(0), args.Error(1)
}

type mockGetter struct {
	mock.Mock
}

func (m *mockGetter) GetByID(ctx context.Context, id string) (*accountsDomain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountsDomain.Account), args.Error(1)
}

func testPrincipal() authDomain.Principal {
	return authDomain.Principal{
		SoftwareProductID:   "c6327f87-687a-4369-99a4-eaacd3bb8298",
		CustomerKey:         "ksmith",
		CustomerID:          "cust-1",
		ConsentedAccountIDs: []string{"acc-1", "acc-2"},
	}
}

func TestConsentGateResolveAccountID(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("resolves a consented account", func(t *testing.T) {
		principal := testPrincipal()
		decoder := new(mockDecoder)
		getter := new(mockGetter)
		gate := NewConsentGate(decoder, getter, logger)

		decoder.On("DecodeID", "token-1", principal.Scope()).Return("acc-1", nil)
		getter.On("GetByID", ctx, "acc-1").Return(&accountsDomain.Account{ID: "acc-1", CustomerID: "cust-1"}, nil)

		accountID, err := gate.ResolveAccountID(ctx, "token-1", principal)
		require.NoError(t, err)
		assert.Equal(t, "acc-1", accountID)
		decoder.AssertExpectations(t)
		getter.AssertExpectations(t)
	})

	t.Run("login-keyed caller resolves without a customer id claim", func(t *testing.T) {
		principal := testPrincipal()
		principal.CustomerID = ""
		decoder := new(mockDecoder)
		getter := new(mockGetter)
		gate := NewConsentGate(decoder, getter, logger)

		decoder.On("DecodeID", "token-1", principal.Scope()).Return("acc-1", nil)
		getter.On("GetByID", ctx, "acc-1").Return(&accountsDomain.Account{ID: "acc-1", CustomerID: "cust-1"}, nil)

		accountID, err := gate.ResolveAccountID(ctx, "token-1", principal)
		require.NoError(t, err)
		assert.Equal(t, "acc-1", accountID)
	})

	t.Run("consent list still bounds a login-keyed caller", func(t *testing.T) {
		principal := testPrincipal()
		principal.CustomerID = ""
		decoder := new(mockDecoder)
		getter := new(mockGetter)
		gate := NewConsentGate(decoder, getter, logger)

		decoder.On("DecodeID", "token-3", principal.Scope()).Return("acc-3", nil)
		getter.On("GetByID", ctx, "acc-3").Return(&accountsDomain.Account{ID: "acc-3", CustomerID: "cust-1"}, nil)

		_, err := gate.ResolveAccountID(ctx, "token-3", principal)
		assert.ErrorIs(t, err, accountsDomain.ErrAccountConsentMissing)
	})

	t.Run("malformed token is not resolvable", func(t *testing.T) {
		principal := testPrincipal()
		decoder := new(mockDecoder)
		getter := new(mockGetter)
		gate := NewConsentGate(decoder, getter, logger)

		decoder.On("DecodeID", "garbage", principal.Scope()).
			Return("", idpermDomain.NewFormatError("decode token", assert.AnError))

		_, err := gate.ResolveAccountID(ctx, "garbage", principal)
		assert.ErrorIs(t, err, accountsDomain.ErrAccountNotResolvable)
		// The store is never consulted for a token that does not decode.
		getter.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown account is not resolvable", func(t *testing.T) {
		principal := testPrincipal()
		decoder := new(mockDecoder)
		getter := new(mockGetter)
		gate := NewConsentGate(decoder, getter, logger)

		decoder.On("DecodeID", "token-1", principal.Scope()).Return("acc-9", nil)
		getter.On("GetByID", ctx, "acc-9").Return(nil, accountsDomain.ErrAccountNotResolvable)

		_, err := gate.ResolveAccountID(ctx, "token-1", principal)
		assert.ErrorIs(t, err, accountsDomain.ErrAccountNotResolvable)
	})

	t.Run("another customer's account is not resolvable", func(t *testing.T) {
		principal := testPrincipal()
		decoder := new(mockDecoder)
		getter := new(mockGetter)
		gate := NewConsentGate(decoder, getter, logger)

		decoder.On("DecodeID", "token-1", principal.Scope()).Return("acc-1", nil)
		getter.On("GetByID", ctx, "acc-1").Return(&accountsDomain.Account{ID: "acc-1", CustomerID: "other"}, nil)

		_, err := gate.ResolveAccountID(ctx, "token-1", principal)
		assert.ErrorIs(t, err, accountsDomain.ErrAccountNotResolvable)
		assert.NotErrorIs(t, err, apperrors.ErrConsentMissing)
	})

	t.Run("owned but unconsented account surfaces the consent error", func(t *testing.T) {
		principal := testPrincipal()
		decoder := new(mockDecoder)
		getter := new(mockGetter)
		gate := NewConsentGate(decoder, getter, logger)

		decoder.On("DecodeID", "token-3", principal.Scope()).Return("acc-3", nil)
		getter.On("GetByID", ctx, "acc-3").Return(&accountsDomain.Account{ID: "acc-3", CustomerID: "cust-1"}, nil)

		_, err := gate.ResolveAccountID(ctx, "token-3", principal)
		assert.ErrorIs(t, err, accountsDomain.ErrAccountConsentMissing)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("store failures pass through", func(t *testing.T) {
		principal := testPrincipal()
		decoder := new(mockDecoder)
		getter := new(mockGetter)
		gate := NewConsentGate(decoder, getter, logger)

		decoder.On("DecodeID", "token-1", principal.Scope()).Return("acc-1", nil)
		getter.On("GetByID", ctx, "acc-1").Return(nil, apperrors.Wrap(apperrors.ErrRepository, "connection refused"))

		_, err := gate.ResolveAccountID(ctx, "token-1", principal)
		assert.ErrorIs(t, err, apperrors.ErrRepository)
	})
}
