// Package piggyback implements query-metadata collection that rides along
// with normal execution: per-column statistics (distinct count, min, max)
// and candidate functional dependencies between result columns, computed
// incrementally while rows are produced and emitted as one report message.
//
// Nothing in this package may fail the host query. Every abnormal condition
// degrades to an unresolved statistic or an unreported dependency.
package piggyback

import (
	"fmt"
	"io"
	"log/slog"

	"piggydb/pkg/catalog"
	"piggydb/pkg/logging"
	"piggydb/pkg/plan"
	"piggydb/pkg/primitives"
	"piggydb/pkg/tuple"
)

// Collector is the per-query metadata engine. Exactly one instance is live
// per query execution; instances are never shared or reused. The executor
// registers plan nodes before running, feeds every produced root row to
// ObserveRow, and calls either Finish or Abort exactly once.
type Collector struct {
	store    *Store
	snap     *RowSnapshot
	fds      *fdEngine
	analyzer *shortcutAnalyzer
	seen     map[primitives.TableID]struct{}
	report   *Report
	finished bool
	log      *slog.Logger
}

// NewCollector creates a collector for one query over the given result
// schema. The classifier maps the catalog's comparison operator ids to the
// shapes the shortcut analyzer understands.
func NewCollector(resultDesc *tuple.TupleDescription, classifier *catalog.Classifier) *Collector {
	store := NewStore(resultDesc)
	return &Collector{
		store:    store,
		snap:     newRowSnapshot(store.NumColumns()),
		fds:      newFDEngine(store.NumColumns()),
		analyzer: newShortcutAnalyzer(classifier),
		seen:     make(map[primitives.TableID]struct{}),
		log:      logging.WithComponent("piggyback"),
	}
}

// RegisterScan runs shortcut analysis for a leaf scan's qualification and
// records the table as part of the query.
func (c *Collector) RegisterScan(table primitives.TableID, filters []plan.FilterTerm) {
	if c.finished {
		return
	}
	c.analyzer.analyze(c.store, table, filters)
	c.seen[table] = struct{}{}
}

// SeenTables returns a snapshot of the tables registered so far. A combining
// plan node captures it before registering its subtree and hands it back to
// RegisterCombining afterwards.
func (c *Collector) SeenTables() []primitives.TableID {
	if c.finished {
		return nil
	}
	ids := make([]primitives.TableID, 0, len(c.seen))
	for id := range c.seen {
		ids = append(ids, id)
	}
	return ids
}

// RegisterCombining invalidates the statistics of every table registered
// since the snapshot was taken. Bounds derived from a base-table filter
// alone say nothing about rows the table contributes to a combined result,
// so a table entering a join, append, aggregate or limit loses them.
func (c *Collector) RegisterCombining(before []primitives.TableID) {
	if c.finished {
		return
	}

	old := make(map[primitives.TableID]struct{}, len(before))
	for _, id := range before {
		old[id] = struct{}{}
	}
	for id := range c.seen {
		if _, ok := old[id]; !ok {
			c.store.Invalidate(id)
		}
	}
}

// ObserveRow feeds one produced root row to the statistics store and the FD
// engine.
func (c *Collector) ObserveRow(t *tuple.Tuple) {
	if c.finished || t == nil {
		return
	}
	c.store.ObserveRow(t)
	c.snap.capture(c.store, t)
	c.fds.observe(c.snap)
}

// Summarize seals the running statistics and evaluates the surviving FD
// candidates. The result is cached; later calls return the same report.
func (c *Collector) Summarize() *Report {
	if c.report == nil {
		c.store.Seal()
		c.report = buildReport(c.store, c.fds.emit(c.store))
	}
	return c.report
}

// Finish emits the report message at normal end of execution and releases
// the collector. It must not be called after Abort.
func (c *Collector) Finish(w io.Writer) error {
	if c.finished {
		return fmt.Errorf("collector already released")
	}
	report := c.Summarize()
	c.release()
	if err := report.Write(w); err != nil {
		return fmt.Errorf("failed to emit metadata report: %v", err)
	}
	c.log.Debug("metadata report emitted",
		"columns", len(report.Columns), "fds", len(report.FDs))
	return nil
}

// Abort releases the collector without emitting anything. Used when
// execution ends early by error or cancellation.
func (c *Collector) Abort() {
	if c.finished {
		return
	}
	c.release()
}

// release drops the owned structures as a unit.
func (c *Collector) release() {
	c.finished = true
	c.snap = nil
	c.fds = nil
	c.seen = nil
}

// Store exposes the column statistics, mainly for inspection and tests.
func (c *Collector) Store() *Store {
	return c.store
}

// RowCount returns the number of rows observed.
func (c *Collector) RowCount() int64 {
	return c.store.RowCount()
}
