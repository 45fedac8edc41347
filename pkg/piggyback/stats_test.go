package piggyback

import (
	"bytes"
	"encoding/binary"
	"testing"

	"piggydb/pkg/tuple"
	"piggydb/pkg/types"
)

func TestDistinctStatusResolve(t *testing.T) {
	tests := []struct {
		name     string
		status   DistinctStatus
		tracker  int64
		rows     int64
		expected int64
	}{
		{"unresolved uses tracker", Unresolved(), 5, 100, 5},
		{"all distinct uses row count", AllDistinct(), 5, 100, 100},
		{"selectivity scales row count", Selectivity(-0.25), 5, 100, 25},
		{"exact ignores both", Exact(42), 5, 100, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Resolve(tt.tracker, tt.rows); got != tt.expected {
				t.Errorf("Resolve() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestSeededTargetFinalizesTracker(t *testing.T) {
	desc := intTextDesc(t, tableA)
	store := NewStore(desc)
	store.SeedDistinct(0, Exact(2))

	r1 := intTextRow(t, desc, 1, "x")
	r2 := intTextRow(t, desc, 2, "y")
	r3 := intTextRow(t, desc, 3, "z")

	store.ObserveRow(r1)
	if dFinal, _, _ := store.Column(0).Final(); dFinal {
		t.Fatal("one of two target values should not finalize the count")
	}
	store.ObserveRow(r2)
	if dFinal, _, _ := store.Column(0).Final(); !dFinal {
		t.Fatal("reaching the target cardinality should finalize the count")
	}

	// A finalized column ignores further values.
	store.ObserveRow(r3)
	if got := store.ResolvedDistinct(0); got != 2 {
		t.Errorf("resolved distinct = %d, want 2", got)
	}
}

func TestUntrackedColumnsAreSkipped(t *testing.T) {
	desc, err := tuple.NewTupleDesc(
		[]types.Type{types.UnknownType, types.Int32Type},
		[]string{"blob", "n"},
	)
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(desc)

	row := tuple.NewTuple(desc)
	if err := row.SetField(1, types.NewInt32Field(5)); err != nil {
		t.Fatal(err)
	}
	store.ObserveRow(row)

	if got := store.ResolvedDistinct(0); got != 0 {
		t.Errorf("untracked column distinct = %d, want 0", got)
	}
	if got := store.ResolvedDistinct(1); got != 1 {
		t.Errorf("tracked column distinct = %d, want 1", got)
	}
}

func TestReportWireFormat(t *testing.T) {
	desc := intTextDesc(t, tableA)
	c := newTestCollector(t, desc)
	observeAll(t, c, desc, []int32{1, 2}, []string{"x", "y"})

	var buf bytes.Buffer
	if err := c.Finish(&buf); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	tag, err := r.ReadByte()
	if err != nil || tag != ReportTag {
		t.Fatalf("tag = %q, want %q", tag, ReportTag)
	}

	readInt32 := func() int32 {
		var v int32
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			t.Fatalf("failed to read int32: %v", err)
		}
		return v
	}
	readString := func() string {
		var n uint32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			t.Fatalf("failed to read string length: %v", err)
		}
		b := make([]byte, n)
		if _, err := r.Read(b); err != nil {
			t.Fatalf("failed to read string bytes: %v", err)
		}
		return string(b)
	}

	if n := readInt32(); n != 2 {
		t.Fatalf("columnCount = %d, want 2", n)
	}

	if name := readString(); name != "a" {
		t.Errorf("column 0 name = %q, want \"a\"", name)
	}
	if idx := readInt32(); idx != 0 {
		t.Errorf("column 0 result index = %d, want 0", idx)
	}
	if d := readInt32(); d != 2 {
		t.Errorf("column 0 distinct = %d, want 2", d)
	}
	if min := readInt32(); min != 1 {
		t.Errorf("column 0 min = %d, want 1", min)
	}
	if max := readInt32(); max != 2 {
		t.Errorf("column 0 max = %d, want 2", max)
	}
	if numeric := readInt32(); numeric != 1 {
		t.Errorf("column 0 isNumeric = %d, want 1", numeric)
	}

	if name := readString(); name != "b" {
		t.Errorf("column 1 name = %q, want \"b\"", name)
	}
	// Skip the remaining fixed fields of column 1.
	for i := 0; i < 5; i++ {
		readInt32()
	}

	fdCount := readInt32()
	if fdCount < 1 {
		t.Fatalf("fdCount = %d, want at least 1", fdCount)
	}
	dets := make(map[string]string, fdCount)
	for i := int32(0); i < fdCount; i++ {
		dets[readString()] = readString()
	}
	if dep, ok := dets["a"]; !ok || dep != "b" {
		t.Errorf("expected a -> b in serialized dependencies, got %v", dets)
	}

	if r.Len() != 0 {
		t.Errorf("%d trailing bytes after message", r.Len())
	}
}
