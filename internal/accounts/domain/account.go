// Package domain contains the account entities and filters.
package domain

import (
	"time"

	"github.com/jellydator/validation"

	apperrors "github.com/allisson/datashare/internal/errors"
	appvalidation "github.com/allisson/datashare/internal/validation"
)

// OpenStatus classifies whether an account is currently open.
type OpenStatus string

const (
	OpenStatusOpen   OpenStatus = "OPEN"
	OpenStatusClosed OpenStatus = "CLOSED"
	OpenStatusAll    OpenStatus = "ALL"
)

// Validate implements the validation.Validatable interface.
func (o OpenStatus) Validate() error {
	return validation.Validate(string(o),
		validation.In(string(OpenStatusOpen), string(OpenStatusClosed), string(OpenStatusAll)),
	)
}

// Account represents a customer account held at the institution.
type Account struct {
	ID              string     `json:"id"`
	CustomerID      string     `json:"customer_id"`
	DisplayName     string     `json:"display_name"`
	Nickname        string     `json:"nickname"`
	MaskedNumber    string     `json:"masked_number"`
	ProductCategory string     `json:"product_category"`
	ProductName     string     `json:"product_name"`
	OpenStatus      OpenStatus `json:"open_status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Validate implements the validation.Validatable interface.
func (a Account) Validate() error {
	err := validation.ValidateStruct(&a,
		validation.Field(&a.ID, validation.Required, appvalidation.NotBlank),
		validation.Field(&a.CustomerID, validation.Required, appvalidation.NotBlank),
		validation.Field(&a.DisplayName, validation.Required),
		validation.Field(&a.OpenStatus, validation.Required, validation.In(OpenStatusOpen, OpenStatusClosed)),
	)
	return appvalidation.WrapValidationError(err)
}

// Filter narrows an account listing. AllowedIDs is the consent boundary: the
// store never returns an account outside it.
type Filter struct {
	AllowedIDs      []string
	CustomerID      string
	OpenStatus      OpenStatus
	ProductCategory string
}

// Validate implements the validation.Validatable interface.
//
// CustomerID is optional: caller contexts keyed by login identifier carry no
// internal customer id claim, and for them the consent allow-list alone bounds
// the listing.
func (f Filter) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.CustomerID, appvalidation.NotBlank),
		validation.Field(&f.OpenStatus, validation.Required),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}
