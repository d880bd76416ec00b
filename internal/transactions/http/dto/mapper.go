// Package dto provides data transfer objects for the transaction HTTP layer.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/allisson/datashare/internal/transactions/domain"
	"github.com/allisson/datashare/internal/transactions/usecase"
)

// ToListTransactionsInput converts a validated ListTransactionsRequest DTO
// plus the path token and page selection into a use case input. The request
// must have passed Validate(); the parse calls cannot fail after that.
func ToListTransactionsInput(req ListTransactionsRequest, accountToken string, page, pageSize int) usecase.ListTransactionsInput {
	filter := domain.Filter{Text: req.Text}

	if req.OldestTime != "" {
		oldest, _ := time.Parse(time.RFC3339, req.OldestTime)
		filter.OldestAt = &oldest
	}
	if req.NewestTime != "" {
		newest, _ := time.Parse(time.RFC3339, req.NewestTime)
		filter.NewestAt = &newest
	}
	if req.MinAmount != "" {
		minAmount, _ := decimal.NewFromString(req.MinAmount)
		filter.MinAmount = &minAmount
	}
	if req.MaxAmount != "" {
		maxAmount, _ := decimal.NewFromString(req.MaxAmount)
		filter.MaxAmount = &maxAmount
	}

	return usecase.ListTransactionsInput{
		AccountToken: accountToken,
		Filter:       filter,
		Page:         page,
		PageSize:     pageSize,
	}
}

// ToTransactionResponse converts a domain Transaction model to a
// TransactionResponse DTO. Ids are already tokenized by the use case.
func ToTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          transaction.ID,
		AccountID:   transaction.AccountID,
		Status:      string(transaction.Status),
		Description: transaction.Description,
		Reference:   transaction.Reference,
		Amount:      transaction.Amount.String(),
		Currency:    transaction.Currency,
		ExecutionAt: transaction.ExecutionAt,
	}
	if transaction.PostingAt != nil {
		response.PostingAt = transaction.PostingAt
	}
	return response
}

// ToTransactionResponses converts a slice of domain Transactions to response DTOs.
func ToTransactionResponses(transactions []*domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		responses = append(responses, ToTransactionResponse(transaction))
	}
	return responses
}
