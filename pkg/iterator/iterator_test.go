package iterator

import (
	"testing"

	"piggydb/pkg/tuple"
	"piggydb/pkg/types"
)

func makeRow(t *testing.T, desc *tuple.TupleDescription, v int32) *tuple.Tuple {
	t.Helper()
	row := tuple.NewTuple(desc)
	if err := row.SetField(0, types.NewInt32Field(v)); err != nil {
		t.Fatal(err)
	}
	return row
}

func singleIntDesc(t *testing.T) *tuple.TupleDescription {
	t.Helper()
	desc, err := tuple.NewTupleDesc([]types.Type{types.Int32Type}, []string{"n"})
	if err != nil {
		t.Fatal(err)
	}
	return desc
}

func TestSliceIteratorLifecycle(t *testing.T) {
	it := NewSliceIterator([]int{1, 2, 3})

	if _, err := it.HasNext(); err == nil {
		t.Error("HasNext before Open should fail")
	}
	if err := it.Open(); err != nil {
		t.Fatal(err)
	}

	var got []int
	for {
		hasNext, err := it.HasNext()
		if err != nil {
			t.Fatal(err)
		}
		if !hasNext {
			break
		}
		v, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("got %v, want [1 2 3]", got)
	}

	if err := it.Rewind(); err != nil {
		t.Fatal(err)
	}
	v, err := it.Next()
	if err != nil || v != 1 {
		t.Errorf("after rewind Next = %d, %v; want 1, nil", v, err)
	}

	if err := it.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := it.Next(); err == nil {
		t.Error("Next after Close should fail")
	}
}

func TestBaseIteratorLookahead(t *testing.T) {
	desc := singleIntDesc(t)
	rows := []*tuple.Tuple{makeRow(t, desc, 1), makeRow(t, desc, 2)}
	i := 0
	base := NewBaseIterator(func() (*tuple.Tuple, error) {
		if i >= len(rows) {
			return nil, nil
		}
		r := rows[i]
		i++
		return r, nil
	})
	base.MarkOpened()

	// Repeated HasNext calls consume nothing.
	for n := 0; n < 3; n++ {
		hasNext, err := base.HasNext()
		if err != nil || !hasNext {
			t.Fatalf("HasNext = %v, %v; want true, nil", hasNext, err)
		}
	}

	first, err := base.Next()
	if err != nil {
		t.Fatal(err)
	}
	if first != rows[0] {
		t.Error("lookahead returned a different tuple than Next")
	}

	if _, err := base.Next(); err != nil {
		t.Fatal(err)
	}
	hasNext, err := base.HasNext()
	if err != nil {
		t.Fatal(err)
	}
	if hasNext {
		t.Error("exhausted iterator should report no next tuple")
	}
}

func TestCollectAndCount(t *testing.T) {
	desc := singleIntDesc(t)
	src := NewSliceIterator([]*tuple.Tuple{
		makeRow(t, desc, 1),
		makeRow(t, desc, 2),
	})
	if err := src.Open(); err != nil {
		t.Fatal(err)
	}

	rows, err := Collect(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("collected %d rows, want 2", len(rows))
	}

	if err := src.Rewind(); err != nil {
		t.Fatal(err)
	}
	n, err := Count(src)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}
