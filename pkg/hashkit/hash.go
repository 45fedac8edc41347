// Package hashkit provides the open-addressing hash containers used by the
// statistics engine. Keys are 64-bit hash codes; two small values are reserved
// as slot markers, so callers hashing arbitrary data should treat a rejected
// insert as a skipped observation rather than a failure.
package hashkit

import "piggydb/pkg/primitives"

// Slot markers. A key equal to either value cannot be stored.
const (
	emptySlot   primitives.HashCode = 0
	removedSlot primitives.HashCode = 1
)

const (
	initialCapacity = 8
	maxLoadFactor   = 0.85

	// probeStep is the fixed offset added on each collision. It is prime and
	// large relative to table sizes, so with power-of-two capacities every
	// probe sequence still visits all slots.
	probeStep = 5009
)

// HashString hashes a byte string with the djb2 algorithm.
func HashString(s string) primitives.HashCode {
	var h primitives.HashCode = 5381
	for i := 0; i < len(s); i++ {
		h = h*33 + primitives.HashCode(s[i])
	}
	return h
}

// storable reports whether k can be placed in a table without colliding with
// the slot markers.
func storable(k primitives.HashCode) bool {
	return k != emptySlot && k != removedSlot
}

// slotIndex computes the initial probe position for a key.
func slotIndex(k primitives.HashCode, capacity int) int {
	return int((73 * k) % primitives.HashCode(capacity))
}
