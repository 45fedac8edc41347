package query

import (
	"testing"

	"piggydb/pkg/catalog"
	"piggydb/pkg/iterator"
	"piggydb/pkg/plan"
	"piggydb/pkg/primitives"
	"piggydb/pkg/tuple"
	"piggydb/pkg/types"
)

func makeTable(t *testing.T, cat *catalog.Catalog, name string, values [][]int32) *catalog.Table {
	t.Helper()

	desc, err := tuple.NewTupleDesc(
		[]types.Type{types.Int32Type, types.Int32Type},
		[]string{"k", "v"},
	)
	if err != nil {
		t.Fatalf("failed to build schema: %v", err)
	}
	table, err := cat.CreateTable(name, desc)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	for _, r := range values {
		row := tuple.NewTuple(table.Schema)
		for i, v := range r {
			if err := row.SetField(i, types.NewInt32Field(v)); err != nil {
				t.Fatal(err)
			}
		}
		if err := cat.InsertRow(table.ID, row); err != nil {
			t.Fatal(err)
		}
	}
	return table
}

func openAndCollect(t *testing.T, it iterator.DbIterator) []*tuple.Tuple {
	t.Helper()
	if err := it.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer it.Close()

	rows, err := iterator.Collect(it)
	if err != nil {
		t.Fatalf("iteration failed: %v", err)
	}
	return rows
}

func fieldAt(t *testing.T, row *tuple.Tuple, i int) int64 {
	t.Helper()
	f, err := row.GetField(i)
	if err != nil {
		t.Fatalf("GetField(%d) failed: %v", i, err)
	}
	v, ok := types.AsInt64(f)
	if !ok {
		t.Fatalf("field %d is not an integer", i)
	}
	return v
}

func TestMemScanAppliesPredicates(t *testing.T) {
	cat := catalog.NewCatalog()
	table := makeTable(t, cat, "t", [][]int32{{1, 10}, {2, 20}, {3, 30}})

	pred, err := NewPredicate(0, primitives.GreaterThan, types.NewInt32Field(1))
	if err != nil {
		t.Fatal(err)
	}
	scan, err := NewMemScan(table, []*Predicate{pred})
	if err != nil {
		t.Fatal(err)
	}

	rows := openAndCollect(t, scan)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if fieldAt(t, rows[0], 0) != 2 || fieldAt(t, rows[1], 0) != 3 {
		t.Error("wrong rows passed the scan qualification")
	}
}

func TestMemScanRewind(t *testing.T) {
	cat := catalog.NewCatalog()
	table := makeTable(t, cat, "t", [][]int32{{1, 10}, {2, 20}})

	scan, err := NewMemScan(table, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := scan.Open(); err != nil {
		t.Fatal(err)
	}
	defer scan.Close()

	first, err := iterator.Count(scan)
	if err != nil {
		t.Fatal(err)
	}
	if err := scan.Rewind(); err != nil {
		t.Fatalf("Rewind failed: %v", err)
	}
	second, err := iterator.Count(scan)
	if err != nil {
		t.Fatal(err)
	}
	if first != 2 || second != 2 {
		t.Errorf("counts = %d, %d; want 2, 2", first, second)
	}
}

func TestFilterSkipsNullFields(t *testing.T) {
	cat := catalog.NewCatalog()
	table := makeTable(t, cat, "t", [][]int32{{1, 10}})

	// A row with a NULL in the filtered column never matches.
	nullRow := tuple.NewTuple(table.Schema)
	if err := nullRow.SetField(1, types.NewInt32Field(99)); err != nil {
		t.Fatal(err)
	}
	if err := cat.InsertRow(table.ID, nullRow); err != nil {
		t.Fatal(err)
	}

	scan, err := NewMemScan(table, nil)
	if err != nil {
		t.Fatal(err)
	}
	pred, err := NewPredicate(0, primitives.GreaterThanOrEqual, types.NewInt32Field(0))
	if err != nil {
		t.Fatal(err)
	}
	filter, err := NewFilter(pred, scan)
	if err != nil {
		t.Fatal(err)
	}

	rows := openAndCollect(t, filter)
	if len(rows) != 1 {
		t.Errorf("got %d rows, want 1", len(rows))
	}
}

func TestJoinMatchesOnEquality(t *testing.T) {
	cat := catalog.NewCatalog()
	left := makeTable(t, cat, "l", [][]int32{{1, 100}, {2, 200}})
	right := makeTable(t, cat, "r", [][]int32{{1, 11}, {1, 12}, {3, 33}})

	ls, err := NewMemScan(left, nil)
	if err != nil {
		t.Fatal(err)
	}
	rs, err := NewMemScan(right, nil)
	if err != nil {
		t.Fatal(err)
	}
	join, err := NewJoin(ls, rs, 0, 0, primitives.Equals)
	if err != nil {
		t.Fatal(err)
	}

	rows := openAndCollect(t, join)
	if len(rows) != 2 {
		t.Fatalf("got %d joined rows, want 2", len(rows))
	}
	if n := join.GetTupleDesc().NumFields(); n != 4 {
		t.Errorf("joined width = %d, want 4", n)
	}
	for _, row := range rows {
		if fieldAt(t, row, 0) != fieldAt(t, row, 2) {
			t.Error("join condition violated in output")
		}
	}
}

func TestAppendConcatenates(t *testing.T) {
	cat := catalog.NewCatalog()
	t1 := makeTable(t, cat, "t1", [][]int32{{1, 10}})
	t2 := makeTable(t, cat, "t2", [][]int32{{2, 20}, {3, 30}})

	s1, err := NewMemScan(t1, nil)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := NewMemScan(t2, nil)
	if err != nil {
		t.Fatal(err)
	}
	app, err := NewAppend([]iterator.DbIterator{s1, s2})
	if err != nil {
		t.Fatal(err)
	}

	rows := openAndCollect(t, app)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if fieldAt(t, rows[0], 0) != 1 || fieldAt(t, rows[2], 0) != 3 {
		t.Error("append order wrong")
	}
}

func TestAggregateCountPerGroup(t *testing.T) {
	cat := catalog.NewCatalog()
	table := makeTable(t, cat, "t", [][]int32{{1, 10}, {1, 20}, {2, 30}})

	scan, err := NewMemScan(table, nil)
	if err != nil {
		t.Fatal(err)
	}
	agg, err := NewAggregate(scan, 0, 1, plan.AggCount)
	if err != nil {
		t.Fatal(err)
	}

	rows := openAndCollect(t, agg)
	if len(rows) != 2 {
		t.Fatalf("got %d groups, want 2", len(rows))
	}
	counts := map[int64]int64{}
	for _, row := range rows {
		counts[fieldAt(t, row, 0)] = fieldAt(t, row, 1)
	}
	if counts[1] != 2 || counts[2] != 1 {
		t.Errorf("counts = %v, want {1:2, 2:1}", counts)
	}
}

func TestAggregateSumWithoutGrouping(t *testing.T) {
	cat := catalog.NewCatalog()
	table := makeTable(t, cat, "t", [][]int32{{1, 10}, {2, 20}, {3, 30}})

	scan, err := NewMemScan(table, nil)
	if err != nil {
		t.Fatal(err)
	}
	agg, err := NewAggregate(scan, plan.NoGrouping, 1, plan.AggSum)
	if err != nil {
		t.Fatal(err)
	}

	rows := openAndCollect(t, agg)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if got := fieldAt(t, rows[0], 0); got != 60 {
		t.Errorf("sum = %d, want 60", got)
	}
}

func TestAggregateMinMax(t *testing.T) {
	cat := catalog.NewCatalog()
	table := makeTable(t, cat, "t", [][]int32{{1, 10}, {1, 30}, {1, 20}})

	for _, tc := range []struct {
		fn   plan.AggFunc
		want int64
	}{
		{plan.AggMin, 10},
		{plan.AggMax, 30},
	} {
		scan, err := NewMemScan(table, nil)
		if err != nil {
			t.Fatal(err)
		}
		agg, err := NewAggregate(scan, 0, 1, tc.fn)
		if err != nil {
			t.Fatal(err)
		}
		rows := openAndCollect(t, agg)
		if len(rows) != 1 {
			t.Fatalf("%v: got %d rows, want 1", tc.fn, len(rows))
		}
		if got := fieldAt(t, rows[0], 1); got != tc.want {
			t.Errorf("%v = %d, want %d", tc.fn, got, tc.want)
		}
	}
}

func TestLimitStopsEarly(t *testing.T) {
	cat := catalog.NewCatalog()
	table := makeTable(t, cat, "t", [][]int32{{1, 10}, {2, 20}, {3, 30}})

	scan, err := NewMemScan(table, nil)
	if err != nil {
		t.Fatal(err)
	}
	limit, err := NewLimit(scan, 2)
	if err != nil {
		t.Fatal(err)
	}

	rows := openAndCollect(t, limit)
	if len(rows) != 2 {
		t.Errorf("got %d rows, want 2", len(rows))
	}
}
