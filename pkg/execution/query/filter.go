package query

import (
	"fmt"
	"piggydb/pkg/iterator"
	"piggydb/pkg/tuple"
)

// Filter passes through only the tuples of its child that satisfy a
// predicate.
type Filter struct {
	*iterator.UnaryOperator
	predicate *Predicate
	child     iterator.DbIterator
}

// NewFilter creates a filter over the child iterator.
func NewFilter(predicate *Predicate, child iterator.DbIterator) (*Filter, error) {
	if predicate == nil {
		return nil, fmt.Errorf("predicate cannot be nil")
	}

	f := &Filter{
		predicate: predicate,
		child:     child,
	}
	op, err := iterator.NewUnaryOperator(child, f.readNext)
	if err != nil {
		return nil, err
	}
	f.UnaryOperator = op
	return f, nil
}

func (f *Filter) readNext() (*tuple.Tuple, error) {
	for {
		hasNext, err := f.child.HasNext()
		if err != nil {
			return nil, err
		}
		if !hasNext {
			return nil, nil
		}

		t, err := f.child.Next()
		if err != nil {
			return nil, err
		}

		matches, err := f.predicate.Filter(t)
		if err != nil {
			return nil, err
		}
		if matches {
			return t, nil
		}
	}
}
