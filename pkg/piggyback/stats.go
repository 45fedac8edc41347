package piggyback

import (
	"log/slog"

	"piggydb/pkg/hashkit"
	"piggydb/pkg/logging"
	"piggydb/pkg/primitives"
	"piggydb/pkg/tuple"
	"piggydb/pkg/types"
)

// ColumnStatistic is the per-result-column state machine: value bounds,
// distinct status and the finality flags that exempt a statistic from
// further incremental updates.
type ColumnStatistic struct {
	Name        string
	Source      tuple.ColumnSource
	ResultIndex int
	Type        types.Type
	IsNumeric   bool

	Distinct DistinctStatus
	tracker  *hashkit.HashSet // created lazily, nil once the count is final

	// Permanent bounds, valid when hasMin/hasMax. Shortcut-seeded bounds
	// survive invalidation so incremental tracking can absorb them.
	minValue, maxValue int64
	hasMin, hasMax     bool

	// Running bounds over the observed rows.
	tempMin, tempMax int64
	tempSeen         bool

	distinctFinal, minFinal, maxFinal bool
}

// MinValue returns the column's permanent lower bound, if one is known.
func (c *ColumnStatistic) MinValue() (int64, bool) {
	return c.minValue, c.hasMin
}

// MaxValue returns the column's permanent upper bound, if one is known.
func (c *ColumnStatistic) MaxValue() (int64, bool) {
	return c.maxValue, c.hasMax
}

// Final reports the three finality flags: distinct, min, max.
func (c *ColumnStatistic) Final() (bool, bool, bool) {
	return c.distinctFinal, c.minFinal, c.maxFinal
}

// fullyFinal reports whether no statistic of this column still needs rows.
func (c *ColumnStatistic) fullyFinal() bool {
	if c.IsNumeric {
		return c.distinctFinal && c.minFinal && c.maxFinal
	}
	return c.distinctFinal
}

// trackerCount returns the tracker's cardinality, zero when absent.
func (c *ColumnStatistic) trackerCount() int64 {
	if c.tracker == nil {
		return 0
	}
	return int64(c.tracker.Len())
}

// Store holds one ColumnStatistic per result column for a single query
// execution.
type Store struct {
	columns  []*ColumnStatistic
	rowCount int64
	log      *slog.Logger
}

// NewStore builds the per-column array from the result schema. Columns whose
// type is not tracked get a descriptor anyway so result indexes stay dense,
// but never receive observations.
func NewStore(desc *tuple.TupleDescription) *Store {
	n := desc.NumFields()
	columns := make([]*ColumnStatistic, n)
	for i := 0; i < n; i++ {
		name, _ := desc.GetFieldName(i)
		typ, _ := desc.TypeAtIndex(i)
		columns[i] = &ColumnStatistic{
			Name:        name,
			Source:      desc.SourceAtIndex(i),
			ResultIndex: i,
			Type:        typ,
			IsNumeric:   typ.IsInteger(),
		}
	}
	return &Store{
		columns: columns,
		log:     logging.WithComponent("stats"),
	}
}

// NumColumns returns the width of the tracked result schema.
func (s *Store) NumColumns() int {
	return len(s.columns)
}

// Column returns the statistic for a result column index.
func (s *Store) Column(i int) *ColumnStatistic {
	return s.columns[i]
}

// RowCount returns the number of rows observed so far.
func (s *Store) RowCount() int64 {
	return s.rowCount
}

// ObserveRow records one produced row. NULL and untracked fields are
// skipped; fully final columns are exempt.
func (s *Store) ObserveRow(t *tuple.Tuple) {
	s.rowCount++
	for i, col := range s.columns {
		if !col.Type.IsTracked() || col.fullyFinal() {
			continue
		}
		field, err := t.GetField(i)
		if err != nil || field == nil {
			continue
		}
		s.observe(col, field)
	}
}

func (s *Store) observe(col *ColumnStatistic, field types.Field) {
	if col.IsNumeric {
		if v, ok := types.AsInt64(field); ok {
			s.absorbBound(col, v)
		}
	}
	if !col.distinctFinal {
		s.trackDistinct(col, field)
	}
}

// absorbBound advances the running bounds and promotes finality once a
// running bound reaches a bound that was pre-set by a shortcut. This lets an
// invalidated shortcut bound be re-confirmed by the rows themselves instead
// of being re-derived.
func (s *Store) absorbBound(col *ColumnStatistic, v int64) {
	if !col.tempSeen {
		col.tempMin, col.tempMax = v, v
		col.tempSeen = true
	} else {
		if v < col.tempMin {
			col.tempMin = v
		}
		if v > col.tempMax {
			col.tempMax = v
		}
	}

	if !col.minFinal && col.hasMin && col.tempMin == col.minValue {
		col.minFinal = true
	}
	if !col.maxFinal && col.hasMax && col.tempMax == col.maxValue {
		col.maxFinal = true
	}
}

// trackDistinct inserts the value's hash into the tracker and finalizes the
// count once it reaches an already-known target cardinality. Values whose
// hash collides with a slot marker are invisible to the count.
func (s *Store) trackDistinct(col *ColumnStatistic, field types.Field) {
	if col.tracker == nil {
		col.tracker = hashkit.NewHashSet()
	}

	if !col.tracker.AddString(field.String()) {
		s.log.Debug("distinct value not countable", "column", col.Name)
		return
	}

	if target, ok := col.Distinct.ExactCount(); ok && col.trackerCount() == target {
		col.distinctFinal = true
	}
}

// Invalidate clears the finality flags of every column sourced from the
// table, reverting it to incremental tracking. Permanent bounds are kept so
// absorption can re-finalize them, but a shortcut-derived distinct status is
// stale once the table is combined and falls back to the tracker.
func (s *Store) Invalidate(table primitives.TableID) {
	for _, col := range s.columns {
		if col.Source.Table != table {
			continue
		}
		if col.distinctFinal || col.minFinal || col.maxFinal {
			s.log.Debug("invalidating column statistics",
				"column", col.Name, "table", uint64(table))
		}
		col.distinctFinal = false
		col.minFinal = false
		col.maxFinal = false
		col.Distinct = Unresolved()
	}
}

// SeedDistinct installs a host-supplied distinct estimate for a column,
// typically from planner statistics. An Exact status becomes the target the
// tracker finalizes against.
func (s *Store) SeedDistinct(i int, status DistinctStatus) {
	if i < 0 || i >= len(s.columns) {
		return
	}
	s.columns[i].Distinct = status
}

// Seal folds the running bounds into the permanent ones for every column
// that never reached finality. Called once, after the last row.
func (s *Store) Seal() {
	for _, col := range s.columns {
		if !col.IsNumeric || !col.tempSeen {
			continue
		}
		if !col.minFinal {
			col.minValue = col.tempMin
			col.hasMin = true
		}
		if !col.maxFinal {
			col.maxValue = col.tempMax
			col.hasMax = true
		}
	}
}

// ResolvedDistinct returns the final distinct count for a column.
func (s *Store) ResolvedDistinct(i int) int64 {
	col := s.columns[i]
	return col.Distinct.Resolve(col.trackerCount(), s.rowCount)
}
