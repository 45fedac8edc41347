package query

import (
	"fmt"
	"piggydb/pkg/iterator"
	"piggydb/pkg/tuple"
)

// Limit truncates its child's stream after a fixed number of tuples.
type Limit struct {
	*iterator.UnaryOperator
	child   iterator.DbIterator
	count   int
	emitted int
}

// NewLimit creates a limit over the child iterator.
func NewLimit(child iterator.DbIterator, count int) (*Limit, error) {
	if count < 0 {
		return nil, fmt.Errorf("limit count cannot be negative, got %d", count)
	}

	l := &Limit{
		child: child,
		count: count,
	}
	op, err := iterator.NewUnaryOperator(child, l.readNext)
	if err != nil {
		return nil, err
	}
	l.UnaryOperator = op
	return l, nil
}

func (l *Limit) readNext() (*tuple.Tuple, error) {
	if l.emitted >= l.count {
		return nil, nil
	}

	hasNext, err := l.child.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, nil
	}

	t, err := l.child.Next()
	if err != nil {
		return nil, err
	}
	l.emitted++
	return t, nil
}

func (l *Limit) Open() error {
	l.emitted = 0
	return l.UnaryOperator.Open()
}

func (l *Limit) Rewind() error {
	l.emitted = 0
	return l.UnaryOperator.Rewind()
}
