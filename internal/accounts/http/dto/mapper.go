// Package dto provides data transfer objects for the account HTTP layer.
package dto

import (
	"github.com/allisson/datashare/internal/accounts/domain"
	"github.com/allisson/datashare/internal/accounts/usecase"
)

// ToListAccountsInput converts a ListAccountsRequest DTO plus the page
// selection into a use case input.
func ToListAccountsInput(req ListAccountsRequest, page, pageSize int) usecase.ListAccountsInput {
	return usecase.ListAccountsInput{
		OpenStatus:      domain.OpenStatus(req.OpenStatus),
		ProductCategory: req.ProductCategory,
		Page:            page,
		PageSize:        pageSize,
	}
}

// ToAccountResponse converts a domain Account model to an AccountResponse DTO.
// The customer id never leaves the service.
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:              account.ID,
		DisplayName:     account.DisplayName,
		Nickname:        account.Nickname,
		MaskedNumber:    account.MaskedNumber,
		ProductCategory: account.ProductCategory,
		ProductName:     account.ProductName,
		OpenStatus:      string(account.OpenStatus),
	}
}

// ToAccountResponses converts a slice of domain Accounts to response DTOs.
func ToAccountResponses(accounts []*domain.Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, ToAccountResponse(account))
	}
	return responses
}
