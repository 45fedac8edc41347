package iterator

import (
	"errors"
	"fmt"
	"piggydb/pkg/tuple"
)

// BinaryOperator provides common functionality for operators that combine
// tuples from two child iterators (joins, appends). Concrete operators embed
// it and supply their readNext logic plus the combined output schema.
type BinaryOperator struct {
	left, right DbIterator
	base        *BaseIterator
	desc        *tuple.TupleDescription
}

// NewBinaryOperator wires two children to the operator's readNext function.
func NewBinaryOperator(left, right DbIterator, desc *tuple.TupleDescription, readNext ReadNextFunc) (*BinaryOperator, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("child iterators cannot be nil")
	}
	if desc == nil {
		return nil, fmt.Errorf("tuple description cannot be nil")
	}

	op := &BinaryOperator{
		left:  left,
		right: right,
		desc:  desc,
	}
	op.base = NewBaseIterator(readNext)
	return op, nil
}

// Left returns the left (outer) input iterator.
func (op *BinaryOperator) Left() DbIterator {
	return op.left
}

// Right returns the right (inner) input iterator.
func (op *BinaryOperator) Right() DbIterator {
	return op.right
}

func (op *BinaryOperator) GetTupleDesc() *tuple.TupleDescription {
	return op.desc
}

// Open initializes both children before this operator.
func (op *BinaryOperator) Open() error {
	if err := op.left.Open(); err != nil {
		return fmt.Errorf("failed to open left child: %v", err)
	}
	if err := op.right.Open(); err != nil {
		return fmt.Errorf("failed to open right child: %v", err)
	}
	op.base.MarkOpened()
	return nil
}

func (op *BinaryOperator) HasNext() (bool, error) {
	return op.base.HasNext()
}

func (op *BinaryOperator) Next() (*tuple.Tuple, error) {
	return op.base.Next()
}

// Rewind resets both children before clearing this operator's cache.
func (op *BinaryOperator) Rewind() error {
	if err := op.left.Rewind(); err != nil {
		return fmt.Errorf("failed to rewind left child: %v", err)
	}
	if err := op.right.Rewind(); err != nil {
		return fmt.Errorf("failed to rewind right child: %v", err)
	}
	return op.base.Rewind()
}

// Close closes both children, collecting errors from each.
func (op *BinaryOperator) Close() error {
	closeErr := op.base.Close()
	leftErr := op.left.Close()
	rightErr := op.right.Close()
	return errors.Join(closeErr, leftErr, rightErr)
}
