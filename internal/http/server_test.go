package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	accountsDomain "github.com/allisson/datashare/internal/accounts/domain"
	accountsHTTP "github.com/allisson/datashare/internal/accounts/http"
	accountsMocks "github.com/allisson/datashare/internal/accounts/http/mocks"
	authHTTP "github.com/allisson/datashare/internal/auth/http"
	authUseCase "github.com/allisson/datashare/internal/auth/usecase"
	"github.com/allisson/datashare/internal/config"
	idpermService "github.com/allisson/datashare/internal/idperm/service"
	"github.com/allisson/datashare/internal/pagination"
	transactionsHTTP "github.com/allisson/datashare/internal/transactions/http"
	transactionsMocks "github.com/allisson/datashare/internal/transactions/http/mocks"
)

func testServer(t *testing.T, accountUseCase *accountsMocks.MockAccountUseCase, cfgMutators ...func(*config.Config)) *Server {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	cfg := &config.Config{
		ServerHost:       "127.0.0.1",
		ServerPort:       0,
		MetricsNamespace: "datashare",
		DefaultPageSize:  25,
		MaxPageSize:      1000,
	}
	for _, mutate := range cfgMutators {
		mutate(cfg)
	}

	codec, err := idpermService.NewAESPermanenceCodec("90733A75F3B0D0AB2C9CBA4C")
	if err != nil {
		t.Fatalf("failed to create codec: %v", err)
	}

	handlers := Handlers{
		Account:     accountsHTTP.NewAccountHandler(accountUseCase, cfg, logger),
		Transaction: transactionsHTTP.NewTransactionHandler(new(transactionsMocks.MockTransactionUseCase), cfg, logger),
		Subject:     authHTTP.NewSubjectHandler(authUseCase.NewSubjectUseCase(codec), logger),
	}

	return NewServer(cfg, logger, handlers, nil, context.Background())
}

func TestServerRoutes(t *testing.T) {
	t.Run("health is unauthenticated", func(t *testing.T) {
		server := testServer(t, new(accountsMocks.MockAccountUseCase))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ready is unauthenticated", func(t *testing.T) {
		server := testServer(t, new(accountsMocks.MockAccountUseCase))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("banking surface requires principal claims", func(t *testing.T) {
		server := testServer(t, new(accountsMocks.MockAccountUseCase))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/banking/accounts", nil)
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("banking surface serves an authenticated caller", func(t *testing.T) {
		accountUseCase := new(accountsMocks.MockAccountUseCase)
		accountUseCase.On("ListAccounts", mock.Anything, mock.Anything, mock.Anything).
			Return(pagination.Empty[*accountsDomain.Account](1, 25), nil)
		server := testServer(t, accountUseCase)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/banking/accounts", nil)
		req.Header.Set(authHTTP.HeaderSoftwareProductID, "c6327f87-687a-4369-99a4-eaacd3bb8298")
		req.Header.Set(authHTTP.HeaderCustomerKey, "ksmith")
		req.Header.Set(authHTTP.HeaderCustomerID, "cust-1")
		req.Header.Set(authHTTP.HeaderConsentedAccountIDs, "acc-1,acc-2")
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		accountUseCase.AssertExpectations(t)
	})

	t.Run("authenticated caller passes through an enabled rate limiter", func(t *testing.T) {
		accountUseCase := new(accountsMocks.MockAccountUseCase)
		accountUseCase.On("ListAccounts", mock.Anything, mock.Anything, mock.Anything).
			Return(pagination.Empty[*accountsDomain.Account](1, 25), nil)
		server := testServer(t, accountUseCase, func(cfg *config.Config) {
			cfg.RateLimitEnabled = true
			cfg.RateLimitRequestsPerSec = 100
			cfg.RateLimitBurst = 100
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/banking/accounts", nil)
		req.Header.Set(authHTTP.HeaderSoftwareProductID, "c6327f87-687a-4369-99a4-eaacd3bb8298")
		req.Header.Set(authHTTP.HeaderCustomerKey, "ksmith")
		req.Header.Set(authHTTP.HeaderCustomerID, "cust-1")
		req.Header.Set(authHTTP.HeaderConsentedAccountIDs, "acc-1,acc-2")
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		accountUseCase.AssertExpectations(t)
	})

	t.Run("rate limiter still rejects a caller without claims first", func(t *testing.T) {
		server := testServer(t, new(accountsMocks.MockAccountUseCase), func(cfg *config.Config) {
			cfg.RateLimitEnabled = true
			cfg.RateLimitRequestsPerSec = 100
			cfg.RateLimitBurst = 100
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/banking/accounts", nil)
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("subject endpoint answers the caller's durable identity token", func(t *testing.T) {
		server := testServer(t, new(accountsMocks.MockAccountUseCase))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/subject", nil)
		req.Header.Set(authHTTP.HeaderSoftwareProductID, "c6327f87-687a-4369-99a4-eaacd3bb8298")
		req.Header.Set(authHTTP.HeaderCustomerKey, "ksmith")
		req.Header.Set(authHTTP.HeaderCustomerID, "cust-1")
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "subject")
	})
}
