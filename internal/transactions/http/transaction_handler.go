// Package http provides HTTP handlers for transaction-related operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/datashare/internal/auth/http"
	"github.com/allisson/datashare/internal/config"
	"github.com/allisson/datashare/internal/httputil"
	"github.com/allisson/datashare/internal/transactions/http/dto"
	"github.com/allisson/datashare/internal/transactions/usecase"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionUseCase usecase.UseCase
	cfg                *config.Config
	logger             *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUseCase usecase.UseCase, cfg *config.Config, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactionUseCase: transactionUseCase,
		cfg:                cfg,
		logger:             logger,
	}
}

// ListHandler handles GET /v1/banking/accounts/:accountId/transactions.
func (h *TransactionHandler) ListHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	params, err := httputil.ParsePagination(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	input := dto.ToListTransactionsInput(req, c.Param("accountId"), params.Page, params.PageSize)

	page, err := h.transactionUseCase.ListTransactions(c.Request.Context(), principal, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ListTransactionsResponse{
		Data:  dto.ToTransactionResponses(page.Data),
		Links: httputil.BuildPaginationLinks(c, page),
		Meta:  httputil.BuildPaginationMeta(page),
	}
	c.JSON(http.StatusOK, response)
}
