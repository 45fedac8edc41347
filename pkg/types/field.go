package types

import (
	"io"
	"piggydb/pkg/primitives"
)

// Field is a single realized column value inside a tuple.
// Implementations are immutable once constructed.
type Field interface {
	// Serialize writes the field in its binary on-the-wire form.
	Serialize(w io.Writer) error

	// Compare evaluates this field against another under the given predicate.
	// Fields of mismatched concrete types compare as false.
	Compare(op primitives.Predicate, other Field) (bool, error)

	// Type returns the declared type class of the field.
	Type() Type

	String() string

	Equals(other Field) bool

	// Hash returns a hash code suitable for hash-based operators.
	Hash() (primitives.HashCode, error)
}
