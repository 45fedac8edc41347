package types

import (
	"encoding/binary"
	"hash/fnv"
	"io"
	"piggydb/pkg/primitives"
	"strconv"
)

// Int8Field represents an 8-bit signed integer field
type Int8Field struct {
	Value int8
}

func NewInt8Field(value int8) *Int8Field {
	return &Int8Field{Value: value}
}

func (f *Int8Field) Serialize(w io.Writer) error {
	_, err := w.Write([]byte{byte(f.Value)})
	return err
}

func (f *Int8Field) Compare(op primitives.Predicate, other Field) (bool, error) {
	otherField, ok := other.(*Int8Field)
	if !ok {
		return false, nil
	}
	return compareInt64(int64(f.Value), int64(otherField.Value), op), nil
}

func (f *Int8Field) Type() Type {
	return Int8Type
}

func (f *Int8Field) String() string {
	return strconv.FormatInt(int64(f.Value), 10)
}

func (f *Int8Field) Equals(other Field) bool {
	otherField, ok := other.(*Int8Field)
	if !ok {
		return false
	}
	return f.Value == otherField.Value
}

func (f *Int8Field) Hash() (primitives.HashCode, error) {
	return hashInt64(int64(f.Value)), nil
}

// Int16Field represents a 16-bit signed integer field
type Int16Field struct {
	Value int16
}

func NewInt16Field(value int16) *Int16Field {
	return &Int16Field{Value: value}
}

func (f *Int16Field) Serialize(w io.Writer) error {
	bytes := make([]byte, 2)
	binary.BigEndian.PutUint16(bytes, uint16(f.Value)) // #nosec G115
	_, err := w.Write(bytes)
	return err
}

func (f *Int16Field) Compare(op primitives.Predicate, other Field) (bool, error) {
	otherField, ok := other.(*Int16Field)
	if !ok {
		return false, nil
	}
	return compareInt64(int64(f.Value), int64(otherField.Value), op), nil
}

func (f *Int16Field) Type() Type {
	return Int16Type
}

func (f *Int16Field) String() string {
	return strconv.FormatInt(int64(f.Value), 10)
}

func (f *Int16Field) Equals(other Field) bool {
	otherField, ok := other.(*Int16Field)
	if !ok {
		return false
	}
	return f.Value == otherField.Value
}

func (f *Int16Field) Hash() (primitives.HashCode, error) {
	return hashInt64(int64(f.Value)), nil
}

// Int32Field represents a 32-bit signed integer field
type Int32Field struct {
	Value int32
}

func NewInt32Field(value int32) *Int32Field {
	return &Int32Field{Value: value}
}

func (f *Int32Field) Serialize(w io.Writer) error {
	bytes := make([]byte, 4)
	binary.BigEndian.PutUint32(bytes, uint32(f.Value)) // #nosec G115
	_, err := w.Write(bytes)
	return err
}

func (f *Int32Field) Compare(op primitives.Predicate, other Field) (bool, error) {
	otherField, ok := other.(*Int32Field)
	if !ok {
		return false, nil
	}
	return compareInt64(int64(f.Value), int64(otherField.Value), op), nil
}

func (f *Int32Field) Type() Type {
	return Int32Type
}

func (f *Int32Field) String() string {
	return strconv.FormatInt(int64(f.Value), 10)
}

func (f *Int32Field) Equals(other Field) bool {
	otherField, ok := other.(*Int32Field)
	if !ok {
		return false
	}
	return f.Value == otherField.Value
}

func (f *Int32Field) Hash() (primitives.HashCode, error) {
	return hashInt64(int64(f.Value)), nil
}

// Int64Field represents a 64-bit signed integer field
type Int64Field struct {
	Value int64
}

func NewInt64Field(value int64) *Int64Field {
	return &Int64Field{Value: value}
}

func (f *Int64Field) Serialize(w io.Writer) error {
	bytes := make([]byte, 8)
	binary.BigEndian.PutUint64(bytes, uint64(f.Value)) // #nosec G115
	_, err := w.Write(bytes)
	return err
}

func (f *Int64Field) Compare(op primitives.Predicate, other Field) (bool, error) {
	otherField, ok := other.(*Int64Field)
	if !ok {
		return false, nil
	}
	return compareInt64(f.Value, otherField.Value, op), nil
}

func (f *Int64Field) Type() Type {
	return Int64Type
}

func (f *Int64Field) String() string {
	return strconv.FormatInt(f.Value, 10)
}

func (f *Int64Field) Equals(other Field) bool {
	otherField, ok := other.(*Int64Field)
	if !ok {
		return false
	}
	return f.Value == otherField.Value
}

func (f *Int64Field) Hash() (primitives.HashCode, error) {
	return hashInt64(f.Value), nil
}

// hashInt64 computes an FNV-1a hash over the 8-byte big-endian encoding.
func hashInt64(v int64) primitives.HashCode {
	h := fnv.New64a()
	bytes := make([]byte, 8)
	binary.BigEndian.PutUint64(bytes, uint64(v)) // #nosec G115
	_, _ = h.Write(bytes)
	return primitives.HashCode(h.Sum64())
}

// compareInt64 keeps the per-width Compare implementations DRY.
func compareInt64(a, b int64, op primitives.Predicate) bool {
	switch op {
	case primitives.Equals:
		return a == b
	case primitives.LessThan:
		return a < b
	case primitives.GreaterThan:
		return a > b
	case primitives.LessThanOrEqual:
		return a <= b
	case primitives.GreaterThanOrEqual:
		return a >= b
	case primitives.NotEqual:
		return a != b
	default:
		return false
	}
}
