package index

type entry[K comparable, V any] struct {
	key   K
	value V
}

// bucket holds at most size entries. depth is the number of low-order hash
// bits shared by every key routed here (the bucket's local depth).
type bucket[K comparable, V any] struct {
	entries []entry[K, V]
	size    int
	depth   int
}

func newBucket[K comparable, V any](size, depth int) *bucket[K, V] {
	return &bucket[K, V]{
		entries: make([]entry[K, V], 0, size),
		size:    size,
		depth:   depth,
	}
}

func (b *bucket[K, V]) find(key K) (V, bool) {
	for i := range b.entries {
		if b.entries[i].key == key {
			return b.entries[i].value, true
		}
	}
	var zero V
	return zero, false
}

func (b *bucket[K, V]) remove(key K) bool {
	for i := range b.entries {
		if b.entries[i].key == key {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return true
		}
	}
	return false
}

// insert overwrites the value of an existing key, or appends the pair when
// there is spare capacity. Returns false if the bucket is full and the key is
// new, which signals the table to split.
func (b *bucket[K, V]) insert(key K, value V) bool {
	for i := range b.entries {
		if b.entries[i].key == key {
			b.entries[i].value = value
			return true
		}
	}
	if len(b.entries) >= b.size {
		return false
	}
	b.entries = append(b.entries, entry[K, V]{key: key, value: value})
	return true
}
