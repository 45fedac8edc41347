package hashkit

import "piggydb/pkg/primitives"

// HashMap is an open-addressing map from 64-bit hash codes to values of any
// type. It shares the probing scheme and slot markers of HashSet, so keys 0
// and 1 cannot be stored.
type HashMap[V any] struct {
	keys   []primitives.HashCode
	values []V
	size   int
	used   int // occupied slots, tombstones included
}

// NewHashMap creates an empty map with the default capacity.
func NewHashMap[V any]() *HashMap[V] {
	return &HashMap[V]{
		keys:   make([]primitives.HashCode, initialCapacity),
		values: make([]V, initialCapacity),
	}
}

// Len returns the number of entries in the map.
func (m *HashMap[V]) Len() int {
	return m.size
}

// Put inserts or overwrites an entry. It returns false when the key collides
// with a slot marker and could not be stored.
func (m *HashMap[V]) Put(k primitives.HashCode, v V) bool {
	if !storable(k) {
		return false
	}

	// Tombstones count toward the load so probe chains always end at an
	// empty slot.
	if float64(m.used+1) >= maxLoadFactor*float64(len(m.keys)) {
		m.grow()
	}

	idx := slotIndex(k, len(m.keys))
	firstRemoved := -1
	for m.keys[idx] != emptySlot {
		if m.keys[idx] == k {
			m.values[idx] = v
			return true
		}
		if m.keys[idx] == removedSlot && firstRemoved < 0 {
			firstRemoved = idx
		}
		idx = (idx + probeStep) % len(m.keys)
	}

	if firstRemoved >= 0 {
		idx = firstRemoved
	} else {
		m.used++
	}
	m.keys[idx] = k
	m.values[idx] = v
	m.size++
	return true
}

// Get looks up the value for a key.
func (m *HashMap[V]) Get(k primitives.HashCode) (V, bool) {
	var zero V
	if !storable(k) {
		return zero, false
	}
	idx := slotIndex(k, len(m.keys))
	for m.keys[idx] != emptySlot {
		if m.keys[idx] == k {
			return m.values[idx], true
		}
		idx = (idx + probeStep) % len(m.keys)
	}
	return zero, false
}

// Remove deletes an entry, leaving a tombstone. It returns whether the key
// was present.
func (m *HashMap[V]) Remove(k primitives.HashCode) bool {
	if !storable(k) {
		return false
	}
	idx := slotIndex(k, len(m.keys))
	for m.keys[idx] != emptySlot {
		if m.keys[idx] == k {
			var zero V
			m.keys[idx] = removedSlot
			m.values[idx] = zero
			m.size--
			return true
		}
		idx = (idx + probeStep) % len(m.keys)
	}
	return false
}

// grow doubles the capacity and reinserts all live entries.
func (m *HashMap[V]) grow() {
	oldKeys, oldValues := m.keys, m.values
	m.keys = make([]primitives.HashCode, 2*len(oldKeys))
	m.values = make([]V, 2*len(oldKeys))
	m.size = 0
	m.used = 0
	for i, k := range oldKeys {
		if storable(k) {
			m.Put(k, oldValues[i])
		}
	}
}
