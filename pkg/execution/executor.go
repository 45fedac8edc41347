// Package execution turns logical plans into operator trees and runs them,
// with the metadata collector riding along: shortcut analysis at plan init,
// one observation per produced row, and the report message at normal end.
package execution

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"piggydb/pkg/catalog"
	"piggydb/pkg/execution/query"
	"piggydb/pkg/iterator"
	"piggydb/pkg/logging"
	"piggydb/pkg/piggyback"
	"piggydb/pkg/plan"
	"piggydb/pkg/tuple"
)

// Executor builds and runs plans against a catalog.
type Executor struct {
	catalog *catalog.Catalog
	log     *slog.Logger
}

// NewExecutor creates an executor over the given catalog.
func NewExecutor(cat *catalog.Catalog) *Executor {
	return &Executor{
		catalog: cat,
		log:     logging.WithComponent("executor"),
	}
}

// Result is a completed query: its rows, their schema and the metadata
// report collected while they were produced.
type Result struct {
	Desc   *tuple.TupleDescription
	Rows   []*tuple.Tuple
	Report *piggyback.Report
}

// Run executes the plan to completion. The metadata report is serialized to
// out at normal end of execution; pass nil to keep only the in-memory
// report. Collector problems never fail the query, only the query's own
// operators can.
func (e *Executor) Run(ctx context.Context, p plan.Node, out io.Writer) (*Result, error) {
	root, err := e.build(p)
	if err != nil {
		return nil, fmt.Errorf("failed to build plan: %v", err)
	}

	collector := piggyback.NewCollector(root.GetTupleDesc(), e.catalog.Classifier())
	e.hook(collector, p)

	if err := root.Open(); err != nil {
		collector.Abort()
		return nil, fmt.Errorf("failed to open plan: %v", err)
	}
	defer root.Close()

	var rows []*tuple.Tuple
	for {
		if err := ctx.Err(); err != nil {
			collector.Abort()
			return nil, err
		}

		hasNext, err := root.HasNext()
		if err != nil {
			collector.Abort()
			return nil, fmt.Errorf("execution failed: %v", err)
		}
		if !hasNext {
			break
		}

		t, err := root.Next()
		if err != nil {
			collector.Abort()
			return nil, fmt.Errorf("execution failed: %v", err)
		}
		collector.ObserveRow(t)
		rows = append(rows, t)
	}

	report := collector.Summarize()
	if out == nil {
		out = io.Discard
	}
	if err := collector.Finish(out); err != nil {
		e.log.Warn("metadata report not emitted", "error", err)
	}

	return &Result{
		Desc:   root.GetTupleDesc(),
		Rows:   rows,
		Report: report,
	}, nil
}

// hook registers the plan with the collector. Scans run shortcut analysis
// and announce their table; a combining node snapshots the seen tables
// before its subtree and invalidates every table the subtree added, so a
// base-filter shortcut never survives into a combined result. Filters do
// not recombine their input's rows and pass through.
func (e *Executor) hook(c *piggyback.Collector, n plan.Node) {
	switch node := n.(type) {
	case *plan.ScanNode:
		c.RegisterScan(node.Table, node.Filters)
	case *plan.FilterNode:
		e.hook(c, node.Input)
	default:
		before := c.SeenTables()
		for _, child := range n.Inputs() {
			e.hook(c, child)
		}
		c.RegisterCombining(before)
	}
}

// build translates a logical node into its operator.
func (e *Executor) build(n plan.Node) (iterator.DbIterator, error) {
	switch node := n.(type) {
	case *plan.ScanNode:
		return e.buildScan(node)
	case *plan.FilterNode:
		return e.buildFilter(node)
	case *plan.JoinNode:
		return e.buildJoin(node)
	case *plan.AppendNode:
		return e.buildAppend(node)
	case *plan.AggregateNode:
		child, err := e.build(node.Input)
		if err != nil {
			return nil, err
		}
		return query.NewAggregate(child, node.GroupBy, node.AggField, node.Func)
	case *plan.LimitNode:
		child, err := e.build(node.Input)
		if err != nil {
			return nil, err
		}
		return query.NewLimit(child, node.Count)
	default:
		return nil, fmt.Errorf("unsupported plan node %T", n)
	}
}

func (e *Executor) buildScan(node *plan.ScanNode) (iterator.DbIterator, error) {
	table, err := e.catalog.GetTable(node.Table)
	if err != nil {
		return nil, err
	}

	predicates := make([]*query.Predicate, 0, len(node.Filters))
	for _, term := range node.Filters {
		pred, ok := e.catalog.Classifier().Predicate(term.Operator)
		if !ok {
			return nil, fmt.Errorf("operator %d has no executable predicate", term.Operator)
		}
		p, err := query.NewPredicate(int(term.Column), pred, term.Value)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, p)
	}
	return query.NewMemScan(table, predicates)
}

func (e *Executor) buildFilter(node *plan.FilterNode) (iterator.DbIterator, error) {
	child, err := e.build(node.Input)
	if err != nil {
		return nil, err
	}
	pred, ok := e.catalog.Classifier().Predicate(node.Term.Operator)
	if !ok {
		return nil, fmt.Errorf("operator %d has no executable predicate", node.Term.Operator)
	}
	p, err := query.NewPredicate(int(node.Term.Column), pred, node.Term.Value)
	if err != nil {
		return nil, err
	}
	return query.NewFilter(p, child)
}

func (e *Executor) buildJoin(node *plan.JoinNode) (iterator.DbIterator, error) {
	left, err := e.build(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.build(node.Right)
	if err != nil {
		return nil, err
	}
	return query.NewJoin(left, right, node.LeftCol, node.RightCol, node.Predicate)
}

func (e *Executor) buildAppend(node *plan.AppendNode) (iterator.DbIterator, error) {
	children := make([]iterator.DbIterator, 0, len(node.Children))
	for _, c := range node.Children {
		child, err := e.build(c)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return query.NewAppend(children)
}
