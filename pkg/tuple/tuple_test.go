package tuple

import (
	"testing"

	"piggydb/pkg/primitives"
	"piggydb/pkg/types"
)

func pairDesc(t *testing.T) *TupleDescription {
	t.Helper()
	desc, err := NewTupleDesc(
		[]types.Type{types.Int32Type, types.StringType},
		[]string{"n", "s"},
	)
	if err != nil {
		t.Fatalf("NewTupleDesc failed: %v", err)
	}
	return desc
}

func TestSetAndGetField(t *testing.T) {
	tup := NewTuple(pairDesc(t))

	if err := tup.SetField(0, types.NewInt32Field(7)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	f, err := tup.GetField(0)
	if err != nil {
		t.Fatalf("GetField failed: %v", err)
	}
	if v, _ := types.AsInt64(f); v != 7 {
		t.Errorf("field 0 = %d, want 7", v)
	}
}

func TestSetFieldRejectsWrongType(t *testing.T) {
	tup := NewTuple(pairDesc(t))
	if err := tup.SetField(0, types.NewStringField("x", types.StringMaxSize)); err == nil {
		t.Error("setting a string into an int column should fail")
	}
}

func TestNilFieldIsNull(t *testing.T) {
	tup := NewTuple(pairDesc(t))
	if err := tup.SetField(1, nil); err != nil {
		t.Fatalf("setting NULL failed: %v", err)
	}
	f, err := tup.GetField(1)
	if err != nil {
		t.Fatalf("GetField failed: %v", err)
	}
	if f != nil {
		t.Error("NULL field should read back as nil")
	}
}

func TestCombinePreservesSources(t *testing.T) {
	d1, err := pairDesc(t).WithSources([]ColumnSource{
		{Table: 1, Column: 0},
		{Table: 1, Column: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	d2, err := pairDesc(t).WithSources([]ColumnSource{
		{Table: 2, Column: 0},
		{Table: 2, Column: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	combined := Combine(d1, d2)
	if combined.NumFields() != 4 {
		t.Fatalf("combined width = %d, want 4", combined.NumFields())
	}
	if src := combined.SourceAtIndex(2); src.Table != 2 || src.Column != 0 {
		t.Errorf("source of column 2 = %+v, want table 2 column 0", src)
	}
}

func TestSourceWithoutProvenance(t *testing.T) {
	desc := pairDesc(t)
	src := desc.SourceAtIndex(0)
	if src.Table != primitives.InvalidTableID {
		t.Errorf("table = %d, want invalid id", src.Table)
	}
}

func TestCombineTuples(t *testing.T) {
	t1 := NewTuple(pairDesc(t))
	if err := t1.SetField(0, types.NewInt32Field(1)); err != nil {
		t.Fatal(err)
	}
	if err := t1.SetField(1, types.NewStringField("a", types.StringMaxSize)); err != nil {
		t.Fatal(err)
	}
	t2 := NewTuple(pairDesc(t))
	if err := t2.SetField(0, types.NewInt32Field(2)); err != nil {
		t.Fatal(err)
	}
	if err := t2.SetField(1, types.NewStringField("b", types.StringMaxSize)); err != nil {
		t.Fatal(err)
	}

	combined, err := CombineTuples(t1, t2)
	if err != nil {
		t.Fatalf("CombineTuples failed: %v", err)
	}
	f, err := combined.GetField(2)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := types.AsInt64(f); v != 2 {
		t.Errorf("combined field 2 = %d, want 2", v)
	}
}
