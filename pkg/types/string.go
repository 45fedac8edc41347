package types

import (
	"encoding/binary"
	"hash/fnv"
	"io"
	"piggydb/pkg/primitives"
	"strings"
)

// StringMaxSize defines the default maximum size for string fields in bytes.
const (
	StringMaxSize = 256
)

// StringField represents a variable-length string field type.
type StringField struct {
	Value   string // The string value stored in this field
	MaxSize int    // The maximum allowed size for this string field in bytes
}

// NewStringField creates a new StringField instance with the specified string
// value and maximum size. If the provided value exceeds the maximum size, it
// will be truncated to fit.
func NewStringField(value string, maxSize int) *StringField {
	if len(value) > maxSize {
		value = value[:maxSize]
	}

	return &StringField{
		Value:   value,
		MaxSize: maxSize,
	}
}

// Compare performs a comparison operation between this StringField and another
// Field using the specified predicate. String comparisons are lexicographic.
func (s *StringField) Compare(op primitives.Predicate, other Field) (bool, error) {
	otherStringField, ok := other.(*StringField)
	if !ok {
		return false, nil
	}

	cmp := strings.Compare(s.Value, otherStringField.Value)

	switch op {
	case primitives.Equals:
		return cmp == 0, nil

	case primitives.LessThan:
		return cmp < 0, nil

	case primitives.GreaterThan:
		return cmp > 0, nil

	case primitives.LessThanOrEqual:
		return cmp <= 0, nil

	case primitives.GreaterThanOrEqual:
		return cmp >= 0, nil

	case primitives.NotEqual:
		return cmp != 0, nil

	default:
		return false, nil
	}
}

// Serialize writes the string field to the provided writer in binary format:
// 4 bytes of actual length (big-endian uint32) followed by the string bytes.
func (s *StringField) Serialize(w io.Writer) error {
	length := min(len(s.Value), s.MaxSize)

	lengthBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(lengthBytes, uint32(length)) // #nosec G115

	if _, err := w.Write(lengthBytes); err != nil {
		return err
	}

	_, err := w.Write([]byte(s.Value[:length]))
	return err
}

// Type returns the type identifier for this field.
func (s *StringField) Type() Type {
	return StringType
}

// String returns the string value stored in this field.
func (s *StringField) String() string {
	return s.Value
}

// Equals checks if this StringField is equal to another Field.
func (s *StringField) Equals(other Field) bool {
	otherStringField, ok := other.(*StringField)
	if !ok {
		return false
	}
	return s.Value == otherStringField.Value
}

// Hash returns a hash value for this string field.
func (s *StringField) Hash() (primitives.HashCode, error) {
	h := fnv.New64a()
	h.Write([]byte(s.Value))
	return primitives.HashCode(h.Sum64()), nil
}

// CharField represents a fixed-length character field. Values shorter than
// the declared width are space-padded on the wire but compared trimmed.
type CharField struct {
	Value string
	Width int
}

func NewCharField(value string, width int) *CharField {
	if len(value) > width {
		value = value[:width]
	}
	return &CharField{Value: value, Width: width}
}

func (c *CharField) Compare(op primitives.Predicate, other Field) (bool, error) {
	otherCharField, ok := other.(*CharField)
	if !ok {
		return false, nil
	}

	a := strings.TrimRight(c.Value, " ")
	b := strings.TrimRight(otherCharField.Value, " ")
	return (&StringField{Value: a}).Compare(op, &StringField{Value: b})
}

func (c *CharField) Serialize(w io.Writer) error {
	padded := c.Value + strings.Repeat(" ", c.Width-len(c.Value))
	_, err := w.Write([]byte(padded))
	return err
}

func (c *CharField) Type() Type {
	return CharType
}

func (c *CharField) String() string {
	return strings.TrimRight(c.Value, " ")
}

func (c *CharField) Equals(other Field) bool {
	otherCharField, ok := other.(*CharField)
	if !ok {
		return false
	}
	return c.String() == otherCharField.String()
}

func (c *CharField) Hash() (primitives.HashCode, error) {
	h := fnv.New64a()
	h.Write([]byte(c.String()))
	return primitives.HashCode(h.Sum64()), nil
}
