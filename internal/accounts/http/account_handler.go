// Package http provides HTTP handlers for account-related operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/datashare/internal/accounts/http/dto"
	"github.com/allisson/datashare/internal/accounts/usecase"
	authHTTP "github.com/allisson/datashare/internal/auth/http"
	"github.com/allisson/datashare/internal/config"
	"github.com/allisson/datashare/internal/httputil"

	apperrors "github.com/allisson/datashare/internal/errors"
)

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUseCase usecase.UseCase
	cfg            *config.Config
	logger         *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUseCase usecase.UseCase, cfg *config.Config, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		cfg:            cfg,
		logger:         logger,
	}
}

// ListHandler handles GET /v1/banking/accounts.
func (h *AccountHandler) ListHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.ListAccountsRequest
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

	input := dto.ToListAccountsInput(req, params.Page, params.PageSize)

	page, err := h.accountUseCase.ListAccounts(c.Request.Context(), principal, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ListAccountsResponse{
		Data:  dto.ToAccountResponses(page.Data),
		Links: httputil.BuildPaginationLinks(c, page),
		Meta:  httputil.BuildPaginationMeta(page),
	}
	c.JSON(http.StatusOK, response)
}

// GetHandler handles GET /v1/banking/accounts/:accountId.
func (h *AccountHandler) GetHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	token := c.Param("accountId")

	account, err := h.accountUseCase.GetAccount(c.Request.Context(), principal, token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
