package iterator

import (
	"fmt"
	"piggydb/pkg/tuple"
)

// UnaryOperator provides common functionality for operators that transform
// tuples from a single child iterator (filter, project, aggregate, limit).
// Concrete operators embed it and supply their readNext logic.
type UnaryOperator struct {
	child DbIterator
	base  *BaseIterator
	desc  *tuple.TupleDescription
}

// NewUnaryOperator wires a child iterator to the operator's readNext function.
// The output schema defaults to the child's schema; operators that reshape
// tuples override it with SetTupleDesc.
func NewUnaryOperator(child DbIterator, readNext ReadNextFunc) (*UnaryOperator, error) {
	if child == nil {
		return nil, fmt.Errorf("child iterator cannot be nil")
	}

	op := &UnaryOperator{
		child: child,
		desc:  child.GetTupleDesc(),
	}
	op.base = NewBaseIterator(readNext)
	return op, nil
}

// Child returns the wrapped input iterator.
func (op *UnaryOperator) Child() DbIterator {
	return op.child
}

// SetTupleDesc overrides the output schema for operators that reshape tuples.
func (op *UnaryOperator) SetTupleDesc(desc *tuple.TupleDescription) {
	op.desc = desc
}

func (op *UnaryOperator) GetTupleDesc() *tuple.TupleDescription {
	return op.desc
}

// Open initializes the child iterator first, then this operator.
func (op *UnaryOperator) Open() error {
	if err := op.child.Open(); err != nil {
		return fmt.Errorf("failed to open child iterator: %v", err)
	}
	op.base.MarkOpened()
	return nil
}

func (op *UnaryOperator) HasNext() (bool, error) {
	return op.base.HasNext()
}

func (op *UnaryOperator) Next() (*tuple.Tuple, error) {
	return op.base.Next()
}

// Rewind resets the child before clearing this operator's cache.
func (op *UnaryOperator) Rewind() error {
	if err := op.child.Rewind(); err != nil {
		return fmt.Errorf("failed to rewind child iterator: %v", err)
	}
	return op.base.Rewind()
}

// Close closes this operator and then its child.
func (op *UnaryOperator) Close() error {
	if err := op.base.Close(); err != nil {
		return err
	}
	return op.child.Close()
}
