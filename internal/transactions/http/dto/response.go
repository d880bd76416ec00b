// Package dto provides data transfer objects for the transaction HTTP layer.
package dto

import (
	"time"

	"github.com/allisson/datashare/internal/httputil"
)

// TransactionResponse represents the API response for a transaction. Both ids
// carry external tokens issued for the caller's scope. The amount is a decimal
// string to keep it exact.
type TransactionResponse struct {
	ID          string     `json:"id"`
	AccountID   string     `json:"account_id"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	Reference   string     `json:"reference,omitempty"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	PostingAt   *time.Time `json:"posting_at,omitempty"`
	ExecutionAt time.Time  `json:"execution_at"`
}

// ListTransactionsResponse represents the paginated transaction listing payload.
type ListTransactionsResponse struct {
	Data  []TransactionResponse    `json:"data"`
	Links httputil.PaginationLinks `json:"links"`
	Meta  httputil.PaginationMeta  `json:"meta"`
}
