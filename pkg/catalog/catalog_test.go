package catalog

import (
	"testing"

	"piggydb/pkg/primitives"
	"piggydb/pkg/tuple"
	"piggydb/pkg/types"
)

func newSchema(t *testing.T) *tuple.TupleDescription {
	t.Helper()
	desc, err := tuple.NewTupleDesc(
		[]types.Type{types.Int32Type, types.StringType},
		[]string{"id", "name"},
	)
	if err != nil {
		t.Fatalf("failed to build schema: %v", err)
	}
	return desc
}

func TestCreateTableAssignsProvenance(t *testing.T) {
	cat := NewCatalog()
	table, err := cat.CreateTable("users", newSchema(t))
	if err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}

	for i := 0; i < table.Schema.NumFields(); i++ {
		src := table.Schema.SourceAtIndex(i)
		if src.Table != table.ID || src.Column != primitives.ColumnID(i) {
			t.Errorf("column %d source = %+v, want table %d column %d",
				i, src, table.ID, i)
		}
	}
}

func TestCreateTableRejectsDuplicateName(t *testing.T) {
	cat := NewCatalog()
	if _, err := cat.CreateTable("users", newSchema(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := cat.CreateTable("users", newSchema(t)); err == nil {
		t.Error("duplicate table name should be rejected")
	}
}

func TestInsertAndLookup(t *testing.T) {
	cat := NewCatalog()
	table, err := cat.CreateTable("users", newSchema(t))
	if err != nil {
		t.Fatal(err)
	}

	row := tuple.NewTuple(table.Schema)
	if err := row.SetField(0, types.NewInt32Field(1)); err != nil {
		t.Fatal(err)
	}
	if err := cat.InsertRow(table.ID, row); err != nil {
		t.Fatalf("InsertRow failed: %v", err)
	}

	byID, err := cat.GetTable(table.ID)
	if err != nil {
		t.Fatalf("GetTable failed: %v", err)
	}
	byName, err := cat.GetTableByName("users")
	if err != nil {
		t.Fatalf("GetTableByName failed: %v", err)
	}
	if byID != byName {
		t.Error("lookups by id and name should return the same table")
	}
	if len(byID.Rows) != 1 {
		t.Errorf("row count = %d, want 1", len(byID.Rows))
	}

	if err := cat.InsertRow(999, row); err == nil {
		t.Error("insert into unknown table should fail")
	}
}

func TestClassifierShapes(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		id   primitives.OperatorID
		kind CompareKind
	}{
		{96, KindEquals},
		{97, KindLess},
		{523, KindLessOrEqual},
		{521, KindGreater},
		{525, KindGreaterOrEqual},
	}
	for _, tt := range tests {
		kind, ok := c.Kind(tt.id)
		if !ok || kind != tt.kind {
			t.Errorf("Kind(%d) = %v, %v; want %v, true", tt.id, kind, ok, tt.kind)
		}
	}

	// Inequality executes but has no statistics shape.
	if _, ok := c.Kind(518); ok {
		t.Error("inequality must not classify as a shortcut shape")
	}
	if p, ok := c.Predicate(518); !ok || p != primitives.NotEqual {
		t.Error("inequality should still resolve to an executable predicate")
	}

	if _, ok := c.Predicate(99999); ok {
		t.Error("unknown operator ids must not resolve")
	}
}
