package iterator

import (
	"fmt"
	"piggydb/pkg/tuple"
)

// ReadNextFunc reads the next tuple from the underlying source.
// A nil tuple with nil error signals end of stream.
type ReadNextFunc func() (*tuple.Tuple, error)

// BaseIterator provides lookahead caching shared by every operator.
// Operators embed or hold one and supply their readNext logic.
type BaseIterator struct {
	nextTuple    *tuple.Tuple // Cached next tuple for lookahead operations
	opened       bool         // Flag indicating if the iterator has been opened
	readNextFunc ReadNextFunc // Function to read the next tuple from the underlying source
}

// NewBaseIterator creates a new base iterator with the given readNext function.
// The iterator starts in a closed state and must be opened before use.
func NewBaseIterator(readNextFunc ReadNextFunc) *BaseIterator {
	return &BaseIterator{
		readNextFunc: readNextFunc,
	}
}

// MarkOpened flags the iterator as ready for HasNext/Next calls.
func (it *BaseIterator) MarkOpened() {
	it.opened = true
	it.nextTuple = nil
}

// HasNext checks if there is a next tuple available without consuming it.
// This method implements lookahead by caching the next tuple if not already
// cached.
func (it *BaseIterator) HasNext() (bool, error) {
	if !it.opened {
		return false, fmt.Errorf("iterator not opened")
	}

	if it.nextTuple == nil {
		var err error
		it.nextTuple, err = it.readNextFunc()
		if err != nil {
			return false, err
		}
	}
	return it.nextTuple != nil, nil
}

// Next returns the next tuple from the iterator and advances the position.
// If a tuple was previously cached by HasNext(), it returns that tuple and
// clears the cache.
func (it *BaseIterator) Next() (*tuple.Tuple, error) {
	if !it.opened {
		return nil, fmt.Errorf("iterator not opened")
	}

	if it.nextTuple == nil {
		var err error
		it.nextTuple, err = it.readNextFunc()
		if err != nil {
			return nil, err
		}
		if it.nextTuple == nil {
			return nil, fmt.Errorf("no more tuples")
		}
	}

	result := it.nextTuple
	it.nextTuple = nil
	return result, nil
}

// Rewind clears the lookahead cache. Operators reset their own read state
// before delegating here.
func (it *BaseIterator) Rewind() error {
	if !it.opened {
		return fmt.Errorf("iterator not opened")
	}
	it.nextTuple = nil
	return nil
}

// Close marks the iterator closed and drops any cached tuple.
func (it *BaseIterator) Close() error {
	it.opened = false
	it.nextTuple = nil
	return nil
}
