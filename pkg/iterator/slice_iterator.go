package iterator

import "fmt"

// SliceIterator provides iteration over a slice of any type.
// It keeps the full Open/Rewind/Close lifecycle so in-memory sources can be
// dropped anywhere a stream is expected.
type SliceIterator[T any] struct {
	items  []T
	index  int
	opened bool
}

// NewSliceIterator creates an iterator over the given slice.
// The slice is not copied; callers must not mutate it while iterating.
func NewSliceIterator[T any](items []T) *SliceIterator[T] {
	return &SliceIterator[T]{
		items: items,
		index: 0,
	}
}

// Open prepares the iterator for iteration.
func (si *SliceIterator[T]) Open() error {
	si.opened = true
	si.index = 0
	return nil
}

// HasNext checks whether more items remain.
func (si *SliceIterator[T]) HasNext() (bool, error) {
	if !si.opened {
		return false, fmt.Errorf("iterator not opened")
	}
	return si.index < len(si.items), nil
}

// Next returns the next item and advances the position.
func (si *SliceIterator[T]) Next() (T, error) {
	var zero T
	if !si.opened {
		return zero, fmt.Errorf("iterator not opened")
	}
	if si.index >= len(si.items) {
		return zero, fmt.Errorf("no more items")
	}
	item := si.items[si.index]
	si.index++
	return item, nil
}

// Rewind resets the iterator to the start of the slice.
func (si *SliceIterator[T]) Rewind() error {
	if !si.opened {
		return fmt.Errorf("iterator not opened")
	}
	si.index = 0
	return nil
}

// Close marks the iterator as closed.
func (si *SliceIterator[T]) Close() error {
	si.opened = false
	return nil
}
