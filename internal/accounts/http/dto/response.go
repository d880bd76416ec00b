// Package dto provides data transfer objects for the account HTTP layer.
package dto

import (
	"github.com/allisson/datashare/internal/httputil"
)

// AccountResponse represents the API response for an account. The id carries
// the external token issued for the caller's scope, never a stored identifier.
type AccountResponse struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	Nickname        string `json:"nickname,omitempty"`
	MaskedNumber    string `json:"masked_number"`
	ProductCategory string `json:"product_category"`
	ProductName     string `json:"product_name"`
	OpenStatus      string `json:"open_status"`
}

// ListAccountsResponse represents the paginated account listing payload.
type ListAccountsResponse struct {
	Data  []AccountResponse        `json:"data"`
	Links httputil.PaginationLinks `json:"links"`
	Meta  httputil.PaginationMeta  `json:"meta"`
}
