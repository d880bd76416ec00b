// Package service implements the identifier permanence codec: a deterministic,
// reversible, scope-keyed transform between internal row identifiers and the
// opaque tokens exposed to data recipients.
package service

import (
	idpermDomain "github.com/allisson/datashare/internal/idperm/domain"
)

// IdentifierCodec encodes internal identifiers into opaque, URL-safe external
// tokens and back. Both directions are pure transforms keyed by the caller
// scope; decode failures surface as idperm/domain.ErrMalformedToken.
type IdentifierCodec interface {
	// EncodeID turns an internal resource id into an external token for the scope.
	EncodeID(internalID string, scope idpermDomain.CallerScope) (string, error)

	// DecodeID recovers the internal resource id from an external token. A token
	// produced under a different scope yields either ErrMalformedToken or an
	// unrelated garbage id; callers must verify the result against the store.
	DecodeID(token string, scope idpermDomain.CallerScope) (string, error)

	// EncodeSubject turns a customer id into the durable external subject
	// identifier for the scope's software product. No customer-key prefix is
	// applied: the subject is the whole plaintext.
	EncodeSubject(customerID string, scope idpermDomain.CallerScope) (string, error)

	// DecodeSubject recovers the customer id from a subject token. There is no
	// store lookup to fall back on for subjects, so callers must propagate
	// failures as authentication errors rather than swallow them.
	DecodeSubject(token string, scope idpermDomain.CallerScope) (string, error)
}
