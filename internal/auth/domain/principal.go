// Package domain defines the authenticated data-recipient principal.
//
// Token issuance and validation happen upstream (OAuth/OIDC at the gateway);
// this system consumes an already-validated principal with known claims.
package domain

import (
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/datashare/internal/errors"
	idpermDomain "github.com/allisson/datashare/internal/idperm/domain"
	customValidation "github.com/allisson/datashare/internal/validation"
)

// Principal is the authenticated caller of the resource API: one software
// product acting for one customer under an active consent grant.
//
// ConsentedAccountIDs is the set of internal account identifiers the customer
// authorized this software product to access. It always originates from the
// consent grant carried by the validated token, never from request input.
type Principal struct {
	// SoftwareProductID identifies the accredited data-recipient software product.
	SoftwareProductID string
	// CustomerKey keys the identifier transform for this caller context.
	// Either the customer's stable login identifier or their internal unique
	// id; the two contexts must never be mixed for the same token.
	CustomerKey string
	// CustomerID is the customer's internal unique id, used for ownership
	// checks. May be empty for caller contexts keyed by login identifier only.
	CustomerID string
	// ConsentedAccountIDs lists the internal account ids covered by the consent grant.
	ConsentedAccountIDs []string
}

// Validate checks the claims every authenticated request must carry.
func (p Principal) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.SoftwareProductID, validation.Required, customValidation.NotBlank),
		validation.Field(&p.CustomerKey, validation.Required, customValidation.NotBlank),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrUnauthorized, err.Error())
	}
	return nil
}

// Scope returns the caller scope keying every identifier encode/decode for
// this request.
func (p Principal) Scope() idpermDomain.CallerScope {
	return idpermDomain.CallerScope{
		SoftwareProductID: p.SoftwareProductID,
		CustomerKey:       p.CustomerKey,
	}
}

// HasConsentedAccount reports whether the internal account id is inside the
// principal's consent grant.
func (p Principal) HasConsentedAccount(internalID string) bool {
	for _, id := range p.ConsentedAccountIDs {
		if id == internalID {
			return true
		}
	}
	return false
}
