package hashkit

import (
	"testing"

	"piggydb/pkg/primitives"
)

func TestHashStringDjb2(t *testing.T) {
	// djb2 with h=5381 and h=h*33+c.
	if got := HashString(""); got != 5381 {
		t.Errorf("HashString(\"\") = %d, want 5381", got)
	}
	if got := HashString("a"); got != 5381*33+'a' {
		t.Errorf("HashString(\"a\") = %d, want %d", got, 5381*33+'a')
	}
	if HashString("abc") == HashString("abd") {
		t.Error("expected distinct hashes for distinct strings")
	}
}

func TestHashSetBasic(t *testing.T) {
	s := NewHashSet()
	if s.Len() != 0 {
		t.Fatalf("new set has length %d, want 0", s.Len())
	}

	if !s.Put(42) {
		t.Fatal("Put(42) failed")
	}
	if !s.Contains(42) {
		t.Error("set should contain 42")
	}
	if s.Contains(43) {
		t.Error("set should not contain 43")
	}

	// Duplicate insert does not change the count.
	s.Put(42)
	if s.Len() != 1 {
		t.Errorf("length after duplicate insert = %d, want 1", s.Len())
	}
}

func TestHashSetAddStringAndInt(t *testing.T) {
	s := NewHashSet()
	if !s.AddString("hello") {
		t.Fatal("AddString failed")
	}
	if !s.Contains(HashString("hello")) {
		t.Error("hashed string key should be present")
	}

	if !s.AddInt(42) {
		t.Fatal("AddInt(42) failed")
	}
	// Integers colliding with the slot markers are invisible.
	if s.AddInt(0) || s.AddInt(1) {
		t.Error("marker-valued integers must be rejected")
	}
	if s.Len() != 2 {
		t.Errorf("length = %d, want 2", s.Len())
	}
}

func TestHashSetRejectsMarkerKeys(t *testing.T) {
	s := NewHashSet()
	if s.Put(0) {
		t.Error("Put(0) should be rejected")
	}
	if s.Put(1) {
		t.Error("Put(1) should be rejected")
	}
	if s.Len() != 0 {
		t.Errorf("length = %d, want 0", s.Len())
	}
	if s.Contains(0) || s.Contains(1) {
		t.Error("marker keys must never be reported as present")
	}
}

func TestHashSetGrowth(t *testing.T) {
	s := NewHashSet()
	const n = 1000
	for i := primitives.HashCode(2); i < n+2; i++ {
		if !s.Put(i) {
			t.Fatalf("Put(%d) failed", i)
		}
	}
	if s.Len() != n {
		t.Fatalf("length = %d, want %d", s.Len(), n)
	}
	for i := primitives.HashCode(2); i < n+2; i++ {
		if !s.Contains(i) {
			t.Errorf("key %d lost after growth", i)
		}
	}
}

func TestHashSetRemove(t *testing.T) {
	s := NewHashSet()
	s.Put(10)
	s.Put(20)
	if !s.Remove(10) {
		t.Fatal("Remove(10) should report present")
	}
	if s.Contains(10) {
		t.Error("10 still present after removal")
	}
	if !s.Contains(20) {
		t.Error("removal of 10 must not affect 20")
	}
	if s.Remove(10) {
		t.Error("second Remove(10) should report absent")
	}
	if s.Len() != 1 {
		t.Errorf("length = %d, want 1", s.Len())
	}
}

func TestHashMapBasic(t *testing.T) {
	m := NewHashMap[string]()
	if !m.Put(7, "seven") {
		t.Fatal("Put failed")
	}
	if v, ok := m.Get(7); !ok || v != "seven" {
		t.Errorf("Get(7) = %q, %v; want \"seven\", true", v, ok)
	}
	if _, ok := m.Get(8); ok {
		t.Error("Get(8) should miss")
	}

	// Overwrite keeps the size stable.
	m.Put(7, "VII")
	if m.Len() != 1 {
		t.Errorf("length = %d, want 1", m.Len())
	}
	if v, _ := m.Get(7); v != "VII" {
		t.Errorf("Get(7) = %q after overwrite, want \"VII\"", v)
	}
}

func TestHashMapRejectsMarkerKeys(t *testing.T) {
	m := NewHashMap[int]()
	if m.Put(0, 1) || m.Put(1, 1) {
		t.Error("marker keys must be rejected")
	}
	if m.Len() != 0 {
		t.Errorf("length = %d, want 0", m.Len())
	}
}

func TestHashMapGrowthAndRemove(t *testing.T) {
	m := NewHashMap[int]()
	const n = 500
	for i := primitives.HashCode(2); i < n+2; i++ {
		m.Put(i, int(i)*3)
	}
	if m.Len() != n {
		t.Fatalf("length = %d, want %d", m.Len(), n)
	}
	for i := primitives.HashCode(2); i < n+2; i++ {
		v, ok := m.Get(i)
		if !ok || v != int(i)*3 {
			t.Fatalf("Get(%d) = %d, %v; want %d, true", i, v, ok, int(i)*3)
		}
	}

	if !m.Remove(100) {
		t.Fatal("Remove(100) should report present")
	}
	if _, ok := m.Get(100); ok {
		t.Error("100 still present after removal")
	}
	// Keys past the tombstone must still resolve.
	for i := primitives.HashCode(2); i < n+2; i++ {
		if i == 100 {
			continue
		}
		if _, ok := m.Get(i); !ok {
			t.Errorf("key %d unreachable after removal of 100", i)
		}
	}
}

func TestHashSetTombstoneChurn(t *testing.T) {
	s := NewHashSet()

	// Insert/remove cycles leave tombstones behind. Without counting them
	// toward the load, the table fills up and lookups of absent keys never
	// reach an empty slot.
	for i := primitives.HashCode(2); i < 1000; i++ {
		if !s.Put(i) {
			t.Fatalf("Put(%d) rejected", i)
		}
		if !s.Remove(i) {
			t.Fatalf("Remove(%d) should report present", i)
		}
	}

	if s.Contains(12345) {
		t.Error("absent key reported present")
	}
	if s.Len() != 0 {
		t.Errorf("length = %d, want 0", s.Len())
	}
	if !s.Put(42) || !s.Contains(42) {
		t.Error("set unusable after churn")
	}
}

func TestHashMapTombstoneChurn(t *testing.T) {
	m := NewHashMap[string]()

	for i := primitives.HashCode(2); i < 1000; i++ {
		if !m.Put(i, "v") {
			t.Fatalf("Put(%d) rejected", i)
		}
		if !m.Remove(i) {
			t.Fatalf("Remove(%d) should report present", i)
		}
	}

	if _, ok := m.Get(12345); ok {
		t.Error("absent key reported present")
	}
	if !m.Put(42, "kept") {
		t.Fatal("map unusable after churn")
	}
	if v, ok := m.Get(42); !ok || v != "kept" {
		t.Errorf("Get(42) = %q, %v; want kept, true", v, ok)
	}
}
