package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	otelmetric "go.opentelemetry.io/otel/metric"

	accountsHTTP "github.com/allisson/datashare/internal/accounts/http"
	authHTTP "github.com/allisson/datashare/internal/auth/http"
	"github.com/allisson/datashare/internal/config"
	"github.com/allisson/datashare/internal/metrics"
	transactionsHTTP "github.com/allisson/datashare/internal/transactions/http"
)

// Server represents the data-sharing API server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// Handlers groups the route handlers wired into the server.
type Handlers struct {
	Account     *accountsHTTP.AccountHandler
	Transaction *transactionsHTTP.TransactionHandler
	Subject     *authHTTP.SubjectHandler
}

// NewServer creates a new API server. The middleware order matters: request id
// and logging wrap everything, the principal middleware guards only the /v1
// surface so health probes stay unauthenticated, and rate limiting runs after
// it because the limiter is keyed by the principal's software product id.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	handlers Handlers,
	meterProvider otelmetric.MeterProvider,
	readyCtx context.Context,
) *Server {
	router := gin.New()
	router.Use(requestid.New())
	router.Use(RecoveryMiddleware(logger))
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", HealthHandler)
	router.GET("/ready", ReadinessHandler(readyCtx))

	v1 := router.Group("/v1")
	v1.Use(authHTTP.PrincipalMiddleware(logger))
	if cfg.RateLimitEnabled {
		v1.Use(authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
	}

	v1.GET("/subject", handlers.Subject.GetHandler)

	banking := v1.Group("/banking")
	banking.GET("/accounts", handlers.Account.ListHandler)
	banking.GET("/accounts/:accountId", handlers.Account.GetHandler)
	banking.GET("/accounts/:accountId/transactions", handlers.Transaction.ListHandler)

	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
