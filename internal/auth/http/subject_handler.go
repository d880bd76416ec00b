package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/datashare/internal/auth/usecase"
	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/httputil"
)

// SubjectHandler exposes the principal's durable external subject identifier.
type SubjectHandler struct {
	subjectUseCase authUseCase.SubjectUseCase
	logger         *slog.Logger
}

// NewSubjectHandler creates a new subject handler with required dependencies.
func NewSubjectHandler(subjectUseCase authUseCase.SubjectUseCase, logger *slog.Logger) *SubjectHandler {
	return &SubjectHandler{
		subjectUseCase: subjectUseCase,
		logger:         logger,
	}
}

// subjectResponse is the response body for the subject endpoint.
type subjectResponse struct {
	Subject string `json:"subject"`
}

// GetHandler returns the subject token for the authenticated principal.
// GET /v1/subject
func (h *SubjectHandler) GetHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	subject, err := h.subjectUseCase.Issue(principal)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, subjectResponse{Subject: subject})
}
