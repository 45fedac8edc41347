package piggyback

import (
	"piggydb/pkg/tuple"
)

// RowSnapshot is the ephemeral stringified view of the current row,
// overwritten on every observation and consumed only by the FD engine.
// An invalid cell (NULL) neither falsifies nor extends any candidate.
type RowSnapshot struct {
	values []string
	valid  []bool
}

// newRowSnapshot allocates a snapshot for the result width.
func newRowSnapshot(columns int) *RowSnapshot {
	return &RowSnapshot{
		values: make([]string, columns),
		valid:  make([]bool, columns),
	}
}

// capture overwrites the snapshot with the current row. Untracked column
// types render as the empty string, which behaves as a constant.
func (rs *RowSnapshot) capture(store *Store, t *tuple.Tuple) {
	for i := range rs.values {
		col := store.Column(i)
		field, err := t.GetField(i)
		if err != nil || field == nil {
			rs.values[i] = ""
			rs.valid[i] = false
			continue
		}
		rs.valid[i] = true
		if !col.Type.IsTracked() {
			rs.values[i] = ""
			continue
		}
		rs.values[i] = field.String()
	}
}
