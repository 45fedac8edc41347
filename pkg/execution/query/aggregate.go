package query

import (
	"fmt"
	"sort"

	"piggydb/pkg/iterator"
	"piggydb/pkg/plan"
	"piggydb/pkg/tuple"
	"piggydb/pkg/types"
)

// Aggregate groups its child's tuples on one column and computes a single
// aggregate over another. Results are materialized on Open, so the child is
// consumed exactly once per run. Rows whose grouping or aggregated field is
// NULL are skipped, except COUNT, which only needs the grouping field.
type Aggregate struct {
	child    iterator.DbIterator
	groupBy  int
	aggField int
	fn       plan.AggFunc
	desc     *tuple.TupleDescription
	results  *iterator.SliceIterator[*tuple.Tuple]
	base     *iterator.BaseIterator
}

type groupState struct {
	key   types.Field // nil when aggregating without grouping
	count int64
	sum   int64
	min   int64
	max   int64
	seen  bool
	order int
}

// NewAggregate creates an aggregate operator. Pass plan.NoGrouping as
// groupBy to aggregate the whole input into one row.
func NewAggregate(child iterator.DbIterator, groupBy, aggField int, fn plan.AggFunc) (*Aggregate, error) {
	if child == nil {
		return nil, fmt.Errorf("child iterator cannot be nil")
	}

	childDesc := child.GetTupleDesc()
	if aggField < 0 || aggField >= childDesc.NumFields() {
		return nil, fmt.Errorf("aggregate field %d out of range", aggField)
	}
	if groupBy != plan.NoGrouping && (groupBy < 0 || groupBy >= childDesc.NumFields()) {
		return nil, fmt.Errorf("grouping field %d out of range", groupBy)
	}

	desc, err := aggregateDesc(childDesc, groupBy, aggField, fn)
	if err != nil {
		return nil, err
	}

	a := &Aggregate{
		child:    child,
		groupBy:  groupBy,
		aggField: aggField,
		fn:       fn,
		desc:     desc,
	}
	a.base = iterator.NewBaseIterator(a.readNext)
	return a, nil
}

func aggregateDesc(childDesc *tuple.TupleDescription, groupBy, aggField int, fn plan.AggFunc) (*tuple.TupleDescription, error) {
	aggName, _ := childDesc.GetFieldName(aggField)
	aggLabel := fmt.Sprintf("%s(%s)", fn, aggName)

	if groupBy == plan.NoGrouping {
		return tuple.NewTupleDesc([]types.Type{types.Int64Type}, []string{aggLabel})
	}

	groupType, err := childDesc.TypeAtIndex(groupBy)
	if err != nil {
		return nil, err
	}
	groupName, _ := childDesc.GetFieldName(groupBy)
	return tuple.NewTupleDesc(
		[]types.Type{groupType, types.Int64Type},
		[]string{groupName, aggLabel},
	)
}

func (a *Aggregate) readNext() (*tuple.Tuple, error) {
	hasNext, err := a.results.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, nil
	}
	return a.results.Next()
}

func (a *Aggregate) GetTupleDesc() *tuple.TupleDescription {
	return a.desc
}

// Open consumes the child and materializes the grouped results.
func (a *Aggregate) Open() error {
	if err := a.child.Open(); err != nil {
		return fmt.Errorf("failed to open child iterator: %v", err)
	}

	groups := make(map[string]*groupState)
	err := iterator.ForEach(a.child, func(t *tuple.Tuple) error {
		return a.absorb(groups, t)
	})
	if err != nil {
		return fmt.Errorf("failed to aggregate input: %v", err)
	}

	rows, err := a.buildResults(groups)
	if err != nil {
		return err
	}
	a.results = iterator.NewSliceIterator(rows)
	if err := a.results.Open(); err != nil {
		return err
	}
	a.base.MarkOpened()
	return nil
}

func (a *Aggregate) absorb(groups map[string]*groupState, t *tuple.Tuple) error {
	var key types.Field
	mapKey := ""
	if a.groupBy != plan.NoGrouping {
		f, err := t.GetField(a.groupBy)
		if err != nil {
			return err
		}
		if f == nil {
			return nil
		}
		key = f
		mapKey = f.String()
	}

	state, ok := groups[mapKey]
	if !ok {
		state = &groupState{key: key, order: len(groups)}
		groups[mapKey] = state
	}

	if a.fn == plan.AggCount {
		state.count++
		state.seen = true
		return nil
	}

	f, err := t.GetField(a.aggField)
	if err != nil {
		return err
	}
	if f == nil {
		return nil
	}
	v, ok := types.AsInt64(f)
	if !ok {
		return fmt.Errorf("cannot aggregate non-integer field of type %v", f.Type())
	}

	if !state.seen {
		state.sum, state.min, state.max = v, v, v
		state.seen = true
	} else {
		state.sum += v
		if v < state.min {
			state.min = v
		}
		if v > state.max {
			state.max = v
		}
	}
	state.count++
	return nil
}

func (a *Aggregate) buildResults(groups map[string]*groupState) ([]*tuple.Tuple, error) {
	states := make([]*groupState, 0, len(groups))
	for _, s := range groups {
		if s.seen {
			states = append(states, s)
		}
	}
	sort.Slice(states, func(i, j int) bool { return states[i].order < states[j].order })

	rows := make([]*tuple.Tuple, 0, len(states))
	for _, s := range states {
		var value int64
		switch a.fn {
		case plan.AggCount:
			value = s.count
		case plan.AggSum:
			value = s.sum
		case plan.AggMin:
			value = s.min
		case plan.AggMax:
			value = s.max
		default:
			return nil, fmt.Errorf("unsupported aggregate %v", a.fn)
		}

		row := tuple.NewTuple(a.desc)
		idx := 0
		if a.groupBy != plan.NoGrouping {
			if err := row.SetField(0, s.key); err != nil {
				return nil, err
			}
			idx = 1
		}
		if err := row.SetField(idx, types.NewInt64Field(value)); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (a *Aggregate) HasNext() (bool, error) {
	return a.base.HasNext()
}

func (a *Aggregate) Next() (*tuple.Tuple, error) {
	return a.base.Next()
}

// Rewind replays the materialized results without re-reading the child.
func (a *Aggregate) Rewind() error {
	if a.results == nil {
		return fmt.Errorf("iterator not opened")
	}
	if err := a.results.Rewind(); err != nil {
		return err
	}
	return a.base.Rewind()
}

func (a *Aggregate) Close() error {
	if err := a.base.Close(); err != nil {
		return err
	}
	if a.results != nil {
		if err := a.results.Close(); err != nil {
			return err
		}
	}
	return a.child.Close()
}
