package tuple

import (
	"fmt"
	"piggydb/pkg/primitives"
	"piggydb/pkg/types"
	"strings"
)

// Tuple represents a row of data flowing through the executor.
// A nil field value represents SQL NULL.
type Tuple struct {
	TupleDesc *TupleDescription // Schema of this tuple
	fields    []types.Field     // The actual field values
}

// NewTuple creates a new tuple with the given schema
func NewTuple(td *TupleDescription) *Tuple {
	return &Tuple{
		TupleDesc: td,
		fields:    make([]types.Field, td.NumFields()),
	}
}

func (t *Tuple) SetField(i int, field types.Field) error {
	if i < 0 || i >= len(t.fields) {
		return fmt.Errorf("field index %d out of bounds [0, %d)", i, len(t.fields))
	}

	if field != nil {
		expectedType, _ := t.TupleDesc.TypeAtIndex(i)
		if field.Type() != expectedType {
			return fmt.Errorf("field type mismatch: expected %v, got %v",
				expectedType, field.Type())
		}
	}

	t.fields[i] = field
	return nil
}

// GetField returns the value of the ith field. A nil result with nil error
// denotes NULL.
func (t *Tuple) GetField(i int) (types.Field, error) {
	if i < 0 || i >= len(t.fields) {
		return nil, fmt.Errorf("field index %d out of bounds [0, %d)", i, len(t.fields))
	}
	return t.fields[i], nil
}

// String returns a string representation of this tuple
// Format: field1\tfield2\t...\tfieldN
func (t *Tuple) String() string {
	parts := make([]string, 0, len(t.fields))
	for _, field := range t.fields {
		if field != nil {
			parts = append(parts, field.String())
		} else {
			parts = append(parts, "null")
		}
	}
	return strings.Join(parts, "\t")
}

// CombineTuples combines two tuples into a single tuple.
// This is useful for joins where we concatenate tuples from different tables.
func CombineTuples(t1, t2 *Tuple) (*Tuple, error) {
	if t1 == nil || t2 == nil {
		return nil, fmt.Errorf("cannot combine nil tuples")
	}

	newTupleDesc := Combine(t1.TupleDesc, t2.TupleDesc)
	newTuple := NewTuple(newTupleDesc)

	if err := t1.copyFieldsTo(newTuple, 0); err != nil {
		return nil, err
	}

	if err := t2.copyFieldsTo(newTuple, t1.TupleDesc.NumFields()); err != nil {
		return nil, err
	}

	return newTuple, nil
}

// copyFieldsTo copies all fields from this tuple to target starting at startIndex
func (t *Tuple) copyFieldsTo(target *Tuple, startIndex int) error {
	for i := 0; i < t.TupleDesc.NumFields(); i++ {
		field, err := t.GetField(i)
		if err != nil {
			return err
		}
		if field != nil {
			if err := target.SetField(startIndex+i, field); err != nil {
				return err
			}
		}
	}
	return nil
}

// CompareAt compares the ith field of this tuple against the ith field of
// another, returning -1, 0 or 1. NULL sorts before any value.
func (t *Tuple) CompareAt(other *Tuple, i int) (int, error) {
	a, err := t.GetField(i)
	if err != nil {
		return 0, err
	}
	b, err := other.GetField(i)
	if err != nil {
		return 0, err
	}

	if a == nil && b == nil {
		return 0, nil
	}
	if a == nil {
		return -1, nil
	}
	if b == nil {
		return 1, nil
	}

	less, err := a.Compare(primitives.LessThan, b)
	if err != nil {
		return 0, err
	}
	if less {
		return -1, nil
	}

	eq, err := a.Compare(primitives.Equals, b)
	if err != nil {
		return 0, err
	}
	if eq {
		return 0, nil
	}
	return 1, nil
}
