// Package plan defines the logical query trees handed to the executor.
// Nodes are plain descriptions; the executor turns them into operators and
// the statistics engine inspects them while doing so.
package plan

import (
	"piggydb/pkg/primitives"
	"piggydb/pkg/types"
)

// Node is a logical plan node. Inputs returns the child nodes in order;
// scans return none.
type Node interface {
	Inputs() []Node
}

// FilterTerm is one conjunct of a scan qualification: column <op> constant.
type FilterTerm struct {
	Column   primitives.ColumnID
	Operator primitives.OperatorID
	Value    types.Field
}

// ScanNode reads a base table, applying the filter terms in order.
type ScanNode struct {
	Table   primitives.TableID
	Filters []FilterTerm
}

func (n *ScanNode) Inputs() []Node { return nil }

// FilterNode applies one residual filter term to the rows of its input,
// for predicates that could not be pushed into a scan.
type FilterNode struct {
	Input Node
	Term  FilterTerm
}

func (n *FilterNode) Inputs() []Node { return []Node{n.Input} }

// JoinNode combines two inputs with a nested-loop equality join on one
// column from each side.
type JoinNode struct {
	Left, Right Node
	LeftCol     int
	RightCol    int
	Predicate   primitives.Predicate
}

func (n *JoinNode) Inputs() []Node { return []Node{n.Left, n.Right} }

// AppendNode concatenates the rows of its inputs. All inputs must share a
// schema shape.
type AppendNode struct {
	Children []Node
}

func (n *AppendNode) Inputs() []Node { return n.Children }

// AggFunc selects the aggregate computed by an AggregateNode.
type AggFunc int

const (
	AggCount AggFunc = iota
	AggSum
	AggMin
	AggMax
)

func (f AggFunc) String() string {
	switch f {
	case AggCount:
		return "COUNT"
	case AggSum:
		return "SUM"
	case AggMin:
		return "MIN"
	case AggMax:
		return "MAX"
	default:
		return "UNKNOWN"
	}
}

// AggregateNode groups its input on one column and computes a single
// aggregate over another. GroupBy of NoGrouping aggregates the whole input
// into one row.
type AggregateNode struct {
	Input    Node
	GroupBy  int
	AggField int
	Func     AggFunc
}

// NoGrouping marks an ungrouped aggregate.
const NoGrouping = -1

func (n *AggregateNode) Inputs() []Node { return []Node{n.Input} }

// LimitNode truncates its input after Count rows.
type LimitNode struct {
	Input Node
	Count int
}

func (n *LimitNode) Inputs() []Node { return []Node{n.Input} }
