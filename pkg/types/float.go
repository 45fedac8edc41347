package types

import (
	"encoding/binary"
	"hash/fnv"
	"io"
	"math"
	"piggydb/pkg/primitives"
	"strconv"
)

// Float64Field represents a decimal (floating-point) field
type Float64Field struct {
	Value float64
}

func NewFloat64Field(value float64) *Float64Field {
	return &Float64Field{Value: value}
}

func (f *Float64Field) Serialize(w io.Writer) error {
	bytes := make([]byte, 8)
	binary.BigEndian.PutUint64(bytes, math.Float64bits(f.Value))
	_, err := w.Write(bytes)
	return err
}

func (f *Float64Field) Compare(op primitives.Predicate, other Field) (bool, error) {
	otherField, ok := other.(*Float64Field)
	if !ok {
		return false, nil
	}

	a, b := f.Value, otherField.Value
	switch op {
	case primitives.Equals:
		return a == b, nil
	case primitives.LessThan:
		return a < b, nil
	case primitives.GreaterThan:
		return a > b, nil
	case primitives.LessThanOrEqual:
		return a <= b, nil
	case primitives.GreaterThanOrEqual:
		return a >= b, nil
	case primitives.NotEqual:
		return a != b, nil
	default:
		return false, nil
	}
}

func (f *Float64Field) Type() Type {
	return FloatType
}

// String renders the value the way it is snapshotted for FD discovery:
// shortest representation that round-trips.
func (f *Float64Field) String() string {
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}

func (f *Float64Field) Equals(other Field) bool {
	otherField, ok := other.(*Float64Field)
	if !ok {
		return false
	}
	return f.Value == otherField.Value
}

func (f *Float64Field) Hash() (primitives.HashCode, error) {
	h := fnv.New64a()
	bytes := make([]byte, 8)
	binary.BigEndian.PutUint64(bytes, math.Float64bits(f.Value))
	_, _ = h.Write(bytes)
	return primitives.HashCode(h.Sum64()), nil
}
