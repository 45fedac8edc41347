package iterator

import "piggydb/pkg/tuple"

// ForEach applies fn to every remaining tuple of the iterator.
// Iteration stops at the first error from the iterator or from fn.
func ForEach(it TupleIterator, fn func(*tuple.Tuple) error) error {
	for {
		hasNext, err := it.HasNext()
		if err != nil {
			return err
		}
		if !hasNext {
			return nil
		}
		t, err := it.Next()
		if err != nil {
			return err
		}
		if err := fn(t); err != nil {
			return err
		}
	}
}

// Collect drains the iterator into a slice.
func Collect(it TupleIterator) ([]*tuple.Tuple, error) {
	var result []*tuple.Tuple
	err := ForEach(it, func(t *tuple.Tuple) error {
		result = append(result, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Count consumes the iterator and returns the number of tuples it produced.
func Count(it TupleIterator) (int, error) {
	n := 0
	err := ForEach(it, func(*tuple.Tuple) error {
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
