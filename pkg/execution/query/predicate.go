package query

import (
	"fmt"
	"piggydb/pkg/primitives"
	"piggydb/pkg/tuple"
	"piggydb/pkg/types"
)

// Predicate compares one field of a tuple against a constant operand.
// Tuples whose field is NULL never satisfy a predicate.
type Predicate struct {
	fieldIndex int
	op         primitives.Predicate
	operand    types.Field
}

// NewPredicate creates a predicate over the given field index.
func NewPredicate(fieldIndex int, op primitives.Predicate, operand types.Field) (*Predicate, error) {
	if fieldIndex < 0 {
		return nil, fmt.Errorf("field index cannot be negative, got %d", fieldIndex)
	}
	if operand == nil {
		return nil, fmt.Errorf("operand cannot be nil")
	}
	return &Predicate{
		fieldIndex: fieldIndex,
		op:         op,
		operand:    operand,
	}, nil
}

// Filter evaluates the predicate against a tuple.
func (p *Predicate) Filter(t *tuple.Tuple) (bool, error) {
	if t == nil {
		return false, fmt.Errorf("tuple cannot be nil")
	}

	field, err := t.GetField(p.fieldIndex)
	if err != nil {
		return false, fmt.Errorf("failed to get field %d: %v", p.fieldIndex, err)
	}
	if field == nil {
		return false, nil
	}
	return field.Compare(p.op, p.operand)
}

// FieldIndex returns the index of the field this predicate inspects.
func (p *Predicate) FieldIndex() int {
	return p.fieldIndex
}

// Op returns the comparison the predicate applies.
func (p *Predicate) Op() primitives.Predicate {
	return p.op
}

// Operand returns the constant the field is compared against.
func (p *Predicate) Operand() types.Field {
	return p.operand
}

func (p *Predicate) String() string {
	return fmt.Sprintf("field[%d] %s %s", p.fieldIndex, p.op, p.operand)
}
