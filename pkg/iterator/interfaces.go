package iterator

import "piggydb/pkg/tuple"

// DbIterator defines the contract for all operators in the execution engine.
// It provides a standardized interface for traversing through collections of
// tuples from tables or intermediate query results.
//
// DbIterator extends TupleIterator with lifecycle and schema methods.
type DbIterator interface {
	TupleIterator // Embeds HasNext() and Next()

	// Open initializes the iterator and prepares it for tuple retrieval.
	// This method must be called before any other iterator operations.
	Open() error

	// Rewind resets the iterator position to the beginning of the data
	// sequence. After rewinding, the next call to Next() returns the first
	// tuple again. The iterator must be opened before calling this method.
	Rewind() error

	// Close releases all resources associated with the iterator and marks it
	// as closed. Calling Close() on an already closed iterator is safe.
	Close() error

	// GetTupleDesc returns the schema description for tuples produced by this
	// iterator. This method can be called regardless of iterator state.
	GetTupleDesc() *tuple.TupleDescription
}

// TupleIterator is a minimal interface that captures the common iteration
// methods, allowing generic utility functions over any iterator type.
type TupleIterator interface {
	// HasNext checks if there are more tuples available without consuming them.
	HasNext() (bool, error)

	// Next retrieves and returns the next tuple from the iterator.
	Next() (*tuple.Tuple, error)
}
