package vhash

// IdentityMap is an open-addressing hash table keyed directly by a
// pre-hashed uint64 -- the bucket index is derived from the key itself
// (masked to the table size) with no secondary hashing step, since
// rehashing an already-uniform 64-bit hash would only waste cycles. It
// backs the cached-reference's variant-hash -> span lookup (spec 4.3,
// 4.9): immutable once built, safe for concurrent readers.
type IdentityMap[V any] struct {
	keys     []uint64
	vals     []V
	occupied []bool
	mask     uint64
	size     int
}

// NewIdentityMap allocates a table sized to hold capacity entries at a
// load factor of at most 0.75, rounded up to a power of two so
// the bucket index can be computed with a bitmask instead of a modulo.
func NewIdentityMap[V any](capacity int) *IdentityMap[V] {
	n := 8
	// Keep the load factor under 0.75 so open-addressing probes stay short.
	for n < capacity*4/3+1 {
		n *= 2
	}
	return &IdentityMap[V]{
		keys:     make([]uint64, n),
		vals:     make([]V, n),
		occupied: make([]bool, n),
		mask:     uint64(n - 1),
	}
}

func (m *IdentityMap[V]) bucket(key uint64) uint64 {
	return key & m.mask
}

// Set inserts or overwrites the value for key.
func (m *IdentityMap[V]) Set(key uint64, val V) {
	i := m.bucket(key)
	for m.occupied[i] {
		if m.keys[i] == key {
			m.vals[i] = val
			return
		}
		i = (i + 1) & m.mask
	}
	m.keys[i] = key
	m.vals[i] = val
	m.occupied[i] = true
	m.size++
}

// Get returns the value for key and whether it was present.
func (m *IdentityMap[V]) Get(key uint64) (V, bool) {
	i := m.bucket(key)
	for m.occupied[i] {
		if m.keys[i] == key {
			return m.vals[i], true
		}
		i = (i + 1) & m.mask
	}
	var zero V
	return zero, false
}

// Len returns the number of entries stored.
func (m *IdentityMap[V]) Len() int {
	return m.size
}

// Range calls f for every (key, value) pair. Iteration order is
// unspecified. f must not mutate the map.
func (m *IdentityMap[V]) Range(f func(key uint64, val V)) {
	for i, occ := range m.occupied {
		if occ {
			f(m.keys[i], m.vals[i])
		}
	}
}
