package hashkit

import "piggydb/pkg/primitives"

// HashSet is an open-addressing set of 64-bit hash codes. The zero slot
// markers make it unsuitable for keys 0 and 1; Put reports whether the key
// was actually stored.
type HashSet struct {
	slots []primitives.HashCode
	size  int
	used  int // occupied slots, tombstones included
}

// NewHashSet creates an empty set with the default capacity.
func NewHashSet() *HashSet {
	return &HashSet{
		slots: make([]primitives.HashCode, initialCapacity),
	}
}

// Len returns the number of keys in the set.
func (s *HashSet) Len() int {
	return s.size
}

// Put inserts a key. It returns false when the key collides with a slot
// marker and could not be stored; inserting a key that is already present
// returns true without changing the set.
func (s *HashSet) Put(k primitives.HashCode) bool {
	if !storable(k) {
		return false
	}

	// Tombstones count toward the load so probe chains always end at an
	// empty slot.
	if float64(s.used+1) >= maxLoadFactor*float64(len(s.slots)) {
		s.grow()
	}

	idx := slotIndex(k, len(s.slots))
	firstRemoved := -1
	for s.slots[idx] != emptySlot {
		if s.slots[idx] == k {
			return true
		}
		if s.slots[idx] == removedSlot && firstRemoved < 0 {
			firstRemoved = idx
		}
		idx = (idx + probeStep) % len(s.slots)
	}

	if firstRemoved >= 0 {
		idx = firstRemoved
	} else {
		s.used++
	}
	s.slots[idx] = k
	s.size++
	return true
}

// AddString hashes a string with djb2 and inserts the result.
func (s *HashSet) AddString(str string) bool {
	return s.Put(HashString(str))
}

// AddInt inserts an integer as a raw key. Values 0 and 1 collide with the
// slot markers and are rejected.
func (s *HashSet) AddInt(n int64) bool {
	return s.Put(primitives.HashCode(n))
}

// Contains reports whether the key is present.
func (s *HashSet) Contains(k primitives.HashCode) bool {
	if !storable(k) {
		return false
	}
	idx := slotIndex(k, len(s.slots))
	for s.slots[idx] != emptySlot {
		if s.slots[idx] == k {
			return true
		}
		idx = (idx + probeStep) % len(s.slots)
	}
	return false
}

// Remove deletes a key, leaving a tombstone so later probes keep working.
// It returns whether the key was present.
func (s *HashSet) Remove(k primitives.HashCode) bool {
	if !storable(k) {
		return false
	}
	idx := slotIndex(k, len(s.slots))
	for s.slots[idx] != emptySlot {
		if s.slots[idx] == k {
			s.slots[idx] = removedSlot
			s.size--
			return true
		}
		idx = (idx + probeStep) % len(s.slots)
	}
	return false
}

// grow doubles the capacity and reinserts all live keys, dropping tombstones.
func (s *HashSet) grow() {
	old := s.slots
	s.slots = make([]primitives.HashCode, 2*len(old))
	s.size = 0
	s.used = 0
	for _, k := range old {
		if storable(k) {
			s.Put(k)
		}
	}
}
