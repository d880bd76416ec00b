// Package http provides HTTP middleware and handlers for the authenticated
// data-recipient principal.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	apperrors "github.com/allisson/datashare/internal/errors"
	"github.com/allisson/datashare/internal/httputil"
)

// Claim headers injected by the gateway after access-token validation.
// Token validation itself is out of scope here; by the time a request reaches
// this server the gateway has verified the token and flattened its claims.
const (
	HeaderSoftwareProductID   = "X-Software-Product-Id"
	HeaderCustomerKey         = "X-Customer-Key"
	HeaderCustomerID          = "X-Customer-Id"
	HeaderConsentedAccountIDs = "X-Consented-Account-Ids"
)

// PrincipalMiddleware builds the request principal from gateway-validated
// claim headers and stores it in the request context.
//
// Error handling:
//   - Missing software product id or customer key → 401 Unauthorized
//   - Otherwise the principal is available downstream via GetPrincipal()
func PrincipalMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := authDomain.Principal{
			SoftwareProductID:   strings.TrimSpace(c.GetHeader(HeaderSoftwareProductID)),
			CustomerKey:         strings.TrimSpace(c.GetHeader(HeaderCustomerKey)),
			CustomerID:          strings.TrimSpace(c.GetHeader(HeaderCustomerID)),
			ConsentedAccountIDs: splitConsentedIDs(c.GetHeader(HeaderConsentedAccountIDs)),
		}

		if err := principal.Validate(); err != nil {
			logger.Debug("authentication failed: incomplete principal claims",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// splitConsentedIDs parses the comma-separated consent claim.
// An empty claim is a valid "no consented accounts" grant, not an error.
func splitConsentedIDs(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	parts := strings.Split(header, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
