package piggyback

import (
	"log/slog"

	"piggydb/pkg/catalog"
	"piggydb/pkg/logging"
	"piggydb/pkg/plan"
	"piggydb/pkg/primitives"
	"piggydb/pkg/types"
)

// shortcutAnalyzer pre-seeds column statistics from a scan's qualification
// so recognized filters never need incremental tracking. Only the first
// filter term is examined; this is a deliberate limitation, not a general
// predicate analyzer.
type shortcutAnalyzer struct {
	classifier *catalog.Classifier
	log        *slog.Logger
}

func newShortcutAnalyzer(classifier *catalog.Classifier) *shortcutAnalyzer {
	return &shortcutAnalyzer{
		classifier: classifier,
		log:        logging.WithComponent("shortcut"),
	}
}

// analyze applies the first filter term of a scan to the store. An
// unrecognized comparison operator invalidates the scanned table's
// statistics instead, forcing full tracking.
func (a *shortcutAnalyzer) analyze(store *Store, table primitives.TableID, filters []plan.FilterTerm) {
	if len(filters) == 0 {
		return
	}
	term := filters[0]

	kind, ok := a.classifier.Kind(term.Operator)
	if !ok {
		a.log.Debug("unrecognized comparison operator, invalidating table",
			"operator", uint32(term.Operator), "table", uint64(table))
		store.Invalidate(table)
		return
	}

	col := a.resolveColumn(store, table, term.Column)
	if col == nil {
		a.log.Debug("filter column not in result, shortcut discarded",
			"table", uint64(table), "column", uint32(term.Column))
		return
	}

	v, isInt := types.AsInt64(term.Value)

	switch kind {
	case catalog.KindEquals:
		col.Distinct = Exact(1)
		col.distinctFinal = true
		if col.IsNumeric && isInt {
			col.setBounds(v, v)
			col.minFinal = true
			col.maxFinal = true
		}
	case catalog.KindLess:
		if col.IsNumeric && isInt {
			col.setUpperBound(v - 1)
			col.maxFinal = true
		}
	case catalog.KindLessOrEqual:
		if col.IsNumeric && isInt {
			col.setUpperBound(v)
			col.maxFinal = true
		}
	case catalog.KindGreater:
		if col.IsNumeric && isInt {
			col.setLowerBound(v + 1)
			col.minFinal = true
		}
	case catalog.KindGreaterOrEqual:
		if col.IsNumeric && isInt {
			col.setLowerBound(v)
			col.minFinal = true
		}
	}
}

// resolveColumn finds the result column fed by the given base-table column.
// Filters on columns that never reach the result have no statistics to seed.
func (a *shortcutAnalyzer) resolveColumn(store *Store, table primitives.TableID, column primitives.ColumnID) *ColumnStatistic {
	for i := 0; i < store.NumColumns(); i++ {
		col := store.Column(i)
		if col.Source.Table == table && col.Source.Column == column {
			return col
		}
	}
	return nil
}

func (c *ColumnStatistic) setBounds(lo, hi int64) {
	c.setLowerBound(lo)
	c.setUpperBound(hi)
}

func (c *ColumnStatistic) setLowerBound(v int64) {
	c.minValue = v
	c.hasMin = true
}

func (c *ColumnStatistic) setUpperBound(v int64) {
	c.maxValue = v
	c.hasMax = true
}
