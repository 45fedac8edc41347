package primitives

import "math"

// HashCode represents a hash value (e.g., for field values or probe keys).
// It is typically computed for fast comparisons or lookups.
type HashCode uint64

// TableID uniquely identifies a base table in the catalog.
// Result columns carry the TableID of the table they originate from so that
// statistics can be invalidated per table.
type TableID uint64

// ColumnID identifies a column within a base table (0-based).
type ColumnID uint32

// OperatorID is a catalog identifier for a comparison operator.
// The numbering scheme belongs to the catalog; the statistics engine only
// ever classifies these through an injected lookup table.
type OperatorID uint32

// Sentinel values for invalid/unset identifiers
const (
	// InvalidTableID represents an unknown or synthetic source table,
	// e.g. for computed result columns that have no base-table provenance.
	InvalidTableID TableID = 0

	InvalidColumnID ColumnID = math.MaxUint32
)
