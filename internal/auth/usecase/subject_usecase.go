// Package usecase implements principal-facing business logic: the durable
// external subject identity exposed to data recipients.
package usecase

import (
	authDomain "github.com/allisson/datashare/internal/auth/domain"
	apperrors "github.com/allisson/datashare/internal/errors"
	idpermDomain "github.com/allisson/datashare/internal/idperm/domain"
	idpermService "github.com/allisson/datashare/internal/idperm/service"
)

// SubjectUseCase issues and resolves subject tokens: the stable external
// identity of one customer as seen by one software product. Unlike resource
// identifiers there is no store lookup to fall back on, so resolve failures
// are authentication failures, never silently recovered.
type SubjectUseCase interface {
	// Issue returns the subject token for the principal's customer identity.
	Issue(principal authDomain.Principal) (string, error)
	// Resolve recovers the customer id from a subject token under the scope.
	// Returns ErrUnauthorized when the token cannot be decoded.
	Resolve(token string, scope idpermDomain.CallerScope) (string, error)
}

// subjectUseCase implements SubjectUseCase on top of the identifier codec.
type subjectUseCase struct {
	codec idpermService.IdentifierCodec
}

// NewSubjectUseCase creates a SubjectUseCase backed by the codec.
func NewSubjectUseCase(codec idpermService.IdentifierCodec) SubjectUseCase {
	return &subjectUseCase{codec: codec}
}

// Issue encodes the customer identity under the principal's scope. The
// internal customer id is preferred; the customer key is the identity when no
// internal id claim is present.
func (s *subjectUseCase) Issue(principal authDomain.Principal) (string, error) {
	if err := principal.Validate(); err != nil {
		return "", err
	}

	customerID := principal.CustomerID
	if customerID == "" {
		customerID = principal.CustomerKey
	}

	return s.codec.EncodeSubject(customerID, principal.Scope())
}

// Resolve decodes a subject token. Decode errors propagate as auth failures:
// there is no safety net for subjects.
func (s *subjectUseCase) Resolve(
	token string,
	scope idpermDomain.CallerScope,
) (string, error) {
	customerID, err := s.codec.DecodeSubject(token, scope)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrUnauthorized, err.Error())
	}
	return customerID, nil
}
