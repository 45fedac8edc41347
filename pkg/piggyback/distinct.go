package piggyback

import "fmt"

// DistinctKind discriminates how a column's distinct-value count is obtained.
type DistinctKind int

const (
	// DistinctUnresolved means the count comes from the column's tracker.
	DistinctUnresolved DistinctKind = iota
	// DistinctAll means every row holds a different value; the count equals
	// the total row count.
	DistinctAll
	// DistinctSelectivity means the count is a fixed fraction of the total
	// row count.
	DistinctSelectivity
	// DistinctExact means the count is already known, e.g. from an equality
	// shortcut.
	DistinctExact
)

// DistinctStatus is a tagged distinct-count value. The zero value is
// Unresolved.
type DistinctStatus struct {
	kind     DistinctKind
	fraction float64 // set for DistinctSelectivity, in (-1, 0)
	exact    int64   // set for DistinctExact
}

// Unresolved returns the status that defers to the tracker.
func Unresolved() DistinctStatus {
	return DistinctStatus{kind: DistinctUnresolved}
}

// AllDistinct returns the status for a column known to repeat no value.
func AllDistinct() DistinctStatus {
	return DistinctStatus{kind: DistinctAll}
}

// Selectivity returns the status for a column whose distinct count is a
// fraction of the row count. The fraction is carried negated, in (-1, 0).
func Selectivity(f float64) DistinctStatus {
	return DistinctStatus{kind: DistinctSelectivity, fraction: f}
}

// Exact returns the status for an already-known count.
func Exact(n int64) DistinctStatus {
	return DistinctStatus{kind: DistinctExact, exact: n}
}

// Kind returns the status tag.
func (s DistinctStatus) Kind() DistinctKind {
	return s.kind
}

// ExactCount returns the known count and whether the status carries one.
func (s DistinctStatus) ExactCount() (int64, bool) {
	if s.kind != DistinctExact {
		return 0, false
	}
	return s.exact, true
}

// Resolve computes the final distinct count from the status tag, the
// tracker's cardinality and the total number of rows.
func (s DistinctStatus) Resolve(trackerCount, totalRows int64) int64 {
	switch s.kind {
	case DistinctAll:
		return totalRows
	case DistinctSelectivity:
		f := s.fraction
		if f < 0 {
			f = -f
		}
		return int64(float64(totalRows) * f)
	case DistinctExact:
		return s.exact
	default:
		return trackerCount
	}
}

func (s DistinctStatus) String() string {
	switch s.kind {
	case DistinctAll:
		return "all-distinct"
	case DistinctSelectivity:
		return fmt.Sprintf("selectivity(%g)", s.fraction)
	case DistinctExact:
		return fmt.Sprintf("exact(%d)", s.exact)
	default:
		return "unresolved"
	}
}
