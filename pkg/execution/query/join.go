package query

import (
	"fmt"
	"piggydb/pkg/iterator"
	"piggydb/pkg/primitives"
	"piggydb/pkg/tuple"
)

// Join is a nested-loop join comparing one column from each side. The right
// side is rewound for every left tuple, so it must support Rewind.
type Join struct {
	*iterator.BinaryOperator
	left, right iterator.DbIterator
	leftCol     int
	rightCol    int
	op          primitives.Predicate
	currentLeft *tuple.Tuple
}

// NewJoin creates a nested-loop join of the two children on
// left[leftCol] <op> right[rightCol].
func NewJoin(left, right iterator.DbIterator, leftCol, rightCol int, op primitives.Predicate) (*Join, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("join children cannot be nil")
	}

	desc := tuple.Combine(left.GetTupleDesc(), right.GetTupleDesc())

	j := &Join{
		left:     left,
		right:    right,
		leftCol:  leftCol,
		rightCol: rightCol,
		op:       op,
	}
	bin, err := iterator.NewBinaryOperator(left, right, desc, j.readNext)
	if err != nil {
		return nil, err
	}
	j.BinaryOperator = bin
	return j, nil
}

func (j *Join) readNext() (*tuple.Tuple, error) {
	for {
		if j.currentLeft == nil {
			hasNext, err := j.left.HasNext()
			if err != nil {
				return nil, err
			}
			if !hasNext {
				return nil, nil
			}
			j.currentLeft, err = j.left.Next()
			if err != nil {
				return nil, err
			}
			if err := j.right.Rewind(); err != nil {
				return nil, fmt.Errorf("failed to rewind inner side: %v", err)
			}
		}

		hasNext, err := j.right.HasNext()
		if err != nil {
			return nil, err
		}
		if !hasNext {
			j.currentLeft = nil
			continue
		}

		rightTuple, err := j.right.Next()
		if err != nil {
			return nil, err
		}

		matches, err := j.matches(j.currentLeft, rightTuple)
		if err != nil {
			return nil, err
		}
		if matches {
			return tuple.CombineTuples(j.currentLeft, rightTuple)
		}
	}
}

// matches evaluates the join condition. NULL on either side never matches.
func (j *Join) matches(left, right *tuple.Tuple) (bool, error) {
	lf, err := left.GetField(j.leftCol)
	if err != nil {
		return false, err
	}
	rf, err := right.GetField(j.rightCol)
	if err != nil {
		return false, err
	}
	if lf == nil || rf == nil {
		return false, nil
	}
	return lf.Compare(j.op, rf)
}

// Rewind also forgets the in-progress outer tuple.
func (j *Join) Rewind() error {
	j.currentLeft = nil
	return j.BinaryOperator.Rewind()
}
