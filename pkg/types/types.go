package types

// Type identifies the declared type class of a result column.
// The statistics collector only recognizes integer, decimal and character
// classes; every other class is excluded from tracking.
type Type int

const (
	Int8Type Type = iota
	Int16Type
	Int32Type
	Int64Type
	FloatType  // decimal / floating-point
	CharType   // fixed-length character
	StringType // variable-length character
	UnknownType
)

// String returns a string representation of the type
func (t Type) String() string {
	switch t {
	case Int8Type:
		return "INT8_TYPE"
	case Int16Type:
		return "INT16_TYPE"
	case Int32Type:
		return "INT32_TYPE"
	case Int64Type:
		return "INT64_TYPE"
	case FloatType:
		return "FLOAT_TYPE"
	case CharType:
		return "CHAR_TYPE"
	case StringType:
		return "STRING_TYPE"
	default:
		return "UNKNOWN_TYPE"
	}
}

// IsInteger reports whether the type is one of the integer classes.
// Only integer columns get min/max bound tracking.
func (t Type) IsInteger() bool {
	switch t {
	case Int8Type, Int16Type, Int32Type, Int64Type:
		return true
	default:
		return false
	}
}

// IsTracked reports whether values of this type participate in distinct
// counting and FD discovery. Unrecognized classes contribute an empty cell.
func (t Type) IsTracked() bool {
	switch t {
	case Int8Type, Int16Type, Int32Type, Int64Type, FloatType, CharType, StringType:
		return true
	default:
		return false
	}
}

// Size returns the serialized size in bytes for fixed-width types.
// Variable-length strings report their framed maximum.
func (t Type) Size() uint32 {
	switch t {
	case Int8Type:
		return 1
	case Int16Type:
		return 2
	case Int32Type:
		return 4
	case Int64Type:
		return 8
	case FloatType:
		return 8
	case CharType, StringType:
		return 4 + StringMaxSize
	default:
		return 0
	}
}
