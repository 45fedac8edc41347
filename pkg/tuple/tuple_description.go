package tuple

import (
	"fmt"
	"piggydb/pkg/primitives"
	"piggydb/pkg/types"
	"strings"
)

// ColumnSource records where a result column came from. Columns synthesized
// by operators (aggregates, computed expressions) carry InvalidTableID.
type ColumnSource struct {
	Table  primitives.TableID
	Column primitives.ColumnID
}

// TupleDescription describes the schema of a tuple (like a table schema).
// It contains the types, names and base-table provenance of fields, providing
// metadata about the structure of data records flowing through operators.
type TupleDescription struct {
	// Types contains the data type of each field in order
	Types []types.Type
	// FieldNames contains the name of each field (optional, may be nil)
	FieldNames []string
	// Sources contains the base-table provenance of each field
	// (optional, may be nil for schemas without provenance)
	Sources []ColumnSource
}

// NewTupleDesc creates a new TupleDescription given field types and optional
// field names. If fieldNames is nil, fields will have no names.
func NewTupleDesc(fieldTypes []types.Type, fieldNames []string) (*TupleDescription, error) {
	if len(fieldTypes) < 1 {
		return nil, fmt.Errorf("must provide at least one field type")
	}

	typesCopy := make([]types.Type, len(fieldTypes))
	copy(typesCopy, fieldTypes)

	var namesCopy []string
	if fieldNames != nil {
		if len(fieldNames) != len(fieldTypes) {
			return nil, fmt.Errorf("field names length (%d) must match field types length (%d)",
				len(fieldNames), len(fieldTypes))
		}
		namesCopy = make([]string, len(fieldNames))
		copy(namesCopy, fieldNames)
	}

	return &TupleDescription{
		Types:      typesCopy,
		FieldNames: namesCopy,
	}, nil
}

// WithSources attaches base-table provenance to the descriptor and returns it.
// The slice length must match the number of fields.
func (td *TupleDescription) WithSources(sources []ColumnSource) (*TupleDescription, error) {
	if len(sources) != len(td.Types) {
		return nil, fmt.Errorf("sources length (%d) must match field types length (%d)",
			len(sources), len(td.Types))
	}

	td.Sources = make([]ColumnSource, len(sources))
	copy(td.Sources, sources)
	return td, nil
}

// NumFields returns the number of fields in this tuple descriptor.
func (td *TupleDescription) NumFields() int {
	return len(td.Types)
}

// GetFieldName returns the name of the ith field, or an empty string if no
// names were provided.
func (td *TupleDescription) GetFieldName(i int) (string, error) {
	if i < 0 || i >= len(td.Types) {
		return "", fmt.Errorf("field index %d out of bounds [0, %d)", i, len(td.Types))
	}

	if td.FieldNames == nil {
		return "", nil
	}

	return td.FieldNames[i], nil
}

// TypeAtIndex returns the type of the ith field.
func (td *TupleDescription) TypeAtIndex(i int) (types.Type, error) {
	if i < 0 || i >= len(td.Types) {
		return 0, fmt.Errorf("field index %d out of bounds [0, %d)", i, len(td.Types))
	}
	return td.Types[i], nil
}

// SourceAtIndex returns the provenance of the ith field. Descriptors without
// provenance report an unknown source for every field.
func (td *TupleDescription) SourceAtIndex(i int) ColumnSource {
	if td.Sources == nil || i < 0 || i >= len(td.Sources) {
		return ColumnSource{Table: primitives.InvalidTableID, Column: primitives.InvalidColumnID}
	}
	return td.Sources[i]
}

// Equals checks if two TupleDescriptions are equal. Two descriptors are equal
// if they have the same field types in the same order. Field names and
// provenance are not compared.
func (td *TupleDescription) Equals(other *TupleDescription) bool {
	if other == nil {
		return false
	}

	if len(td.Types) != len(other.Types) {
		return false
	}

	for i, fieldType := range td.Types {
		if fieldType != other.Types[i] {
			return false
		}
	}
	return true
}

// Combine merges two descriptors into one, concatenating types, names and
// provenance. Used by joins to describe their combined output.
func Combine(td1, td2 *TupleDescription) *TupleDescription {
	combined := &TupleDescription{
		Types: append(append([]types.Type{}, td1.Types...), td2.Types...),
	}

	if td1.FieldNames != nil || td2.FieldNames != nil {
		combined.FieldNames = append(append([]string{}, td1.fieldNamesOrEmpty()...), td2.fieldNamesOrEmpty()...)
	}

	combined.Sources = make([]ColumnSource, 0, len(combined.Types))
	for i := range td1.Types {
		combined.Sources = append(combined.Sources, td1.SourceAtIndex(i))
	}
	for i := range td2.Types {
		combined.Sources = append(combined.Sources, td2.SourceAtIndex(i))
	}

	return combined
}

func (td *TupleDescription) fieldNamesOrEmpty() []string {
	if td.FieldNames != nil {
		return td.FieldNames
	}
	return make([]string, len(td.Types))
}

// String returns a string representation of this TupleDescription.
// Format: "Type1(fieldName1),Type2(fieldName2),..."
func (td *TupleDescription) String() string {
	parts := make([]string, len(td.Types))
	for i, t := range td.Types {
		name := ""
		if td.FieldNames != nil {
			name = td.FieldNames[i]
		}
		parts[i] = fmt.Sprintf("%s(%s)", t, name)
	}
	return strings.Join(parts, ",")
}
