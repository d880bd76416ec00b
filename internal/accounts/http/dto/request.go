// Package dto provides data transfer objects for the account HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/datashare/internal/accounts/domain"

	appValidation "github.com/allisson/datashare/internal/validation"
)

// ListAccountsRequest represents the query parameters for an account listing.
type ListAccountsRequest struct {
	OpenStatus      string `form:"open-status"`
	ProductCategory string `form:"product-category"`
}

// Validate validates the ListAccountsRequest using the jellydator/validation library.
func (r *ListAccountsRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.OpenStatus,
			validation.In(
				string(domain.OpenStatusOpen),
				string(domain.OpenStatusClosed),
				string(domain.OpenStatusAll),
			).Error("open-status must be one of OPEN, CLOSED, ALL"),
		),
		validation.Field(&r.ProductCategory,
			validation.Length(0, 255).Error("product-category must be at most 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}
