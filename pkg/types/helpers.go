package types

// AsInt64 extracts the integer value from any of the integer field classes.
// Returns false for non-integer fields.
func AsInt64(f Field) (int64, bool) {
	switch v := f.(type) {
	case *Int8Field:
		return int64(v.Value), true
	case *Int16Field:
		return int64(v.Value), true
	case *Int32Field:
		return int64(v.Value), true
	case *Int64Field:
		return v.Value, true
	default:
		return 0, false
	}
}

// NewIntFieldOfType builds an integer field of the requested class, truncating
// the value to the class width. Returns nil for non-integer classes.
func NewIntFieldOfType(t Type, value int64) Field {
	switch t {
	case Int8Type:
		return NewInt8Field(int8(value)) // #nosec G115
	case Int16Type:
		return NewInt16Field(int16(value)) // #nosec G115
	case Int32Type:
		return NewInt32Field(int32(value)) // #nosec G115
	case Int64Type:
		return NewInt64Field(value)
	default:
		return nil
	}
}
