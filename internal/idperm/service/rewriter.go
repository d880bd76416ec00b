package service

import (
	"fmt"

	apperrors "github.com/allisson/datashare/internal/errors"
	idpermDomain "github.com/allisson/datashare/internal/idperm/domain"
)

// field binds an accessor/mutator pair for one identifier field of a record.
// Explicit function pairs keep the rewrite statically checkable; no reflection.
type field[T any] struct {
	name string
	get  func(*T) string
	set  func(*T, string)
}

// Rewriter re-encodes the identifier fields of response records in place under
// a fixed caller scope. It is applied once per response, after the filter
// engine and before serialization, so no raw internal id ever leaves the
// system. Fields are processed in registration order for every record.
type Rewriter[T any] struct {
	codec  IdentifierCodec
	fields []field[T]
}

// NewRewriter creates a Rewriter for records of type T backed by the codec.
// Register fields with WithField before calling Rewrite.
func NewRewriter[T any](codec IdentifierCodec) *Rewriter[T] {
	return &Rewriter[T]{codec: codec}
}

// WithField registers an identifier field by name with its accessor and
// mutator. Returns the receiver for chaining.
func (r *Rewriter[T]) WithField(
	name string,
	get func(*T) string,
	set func(*T, string),
) *Rewriter[T] {
	r.fields = append(r.fields, field[T]{name: name, get: get, set: set})
	return r
}

// Rewrite encodes every registered field of every record under the scope.
// Any failure aborts the whole batch: a field that cannot be encoded means a
// bug upstream, and skipping it would leak a raw internal id.
func (r *Rewriter[T]) Rewrite(records []*T, scope idpermDomain.CallerScope) error {
	for i, record := range records {
		for _, f := range r.fields {
			token, err := r.codec.EncodeID(f.get(record), scope)
			if err != nil {
				return apperrors.Wrap(err, fmt.Sprintf("rewrite field %q of record %d", f.name, i))
			}
			f.set(record, token)
		}
	}
	return nil
}
