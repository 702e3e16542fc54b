package index

import (
	"sync"

	util "github.com/bietkhonhungvandi212/framekit/internal/utils"
)

// ExtendibleHashTable maps keys to values through a power-of-two directory of
// shared bucket references. When a bucket overflows, the table splits it and,
// if needed, doubles the directory, so Insert always succeeds; no shrinking is
// performed. All operations are serialized by a single mutex.
type ExtendibleHashTable[K comparable, V any] struct {
	mu          sync.Mutex
	globalDepth int
	bucketSize  int
	numBuckets  int
	dir         []*bucket[K, V]
	hasher      Hasher[K]
}

// New returns a table with a single empty bucket at depth zero, hashing keys
// with the default maphash-based hasher. Panics if bucketSize is not positive.
func New[K comparable, V any](bucketSize int) *ExtendibleHashTable[K, V] {
	return NewWithHasher[K, V](bucketSize, nil)
}

// NewWithHasher is New with a caller-provided hash function. A nil hasher
// falls back to the default.
func NewWithHasher[K comparable, V any](bucketSize int, hasher Hasher[K]) *ExtendibleHashTable[K, V] {
	if bucketSize <= 0 {
		panic(util.ErrInvalidBucketSize)
	}
	if hasher == nil {
		hasher = defaultHasher[K]()
	}
	return &ExtendibleHashTable[K, V]{
		bucketSize: bucketSize,
		numBuckets: 1,
		dir:        []*bucket[K, V]{newBucket[K, V](bucketSize, 0)},
		hasher:     hasher,
	}
}

// indexOf selects the directory slot for key: the low globalDepth bits of its
// hash. Caller must hold mu.
func (t *ExtendibleHashTable[K, V]) indexOf(key K) int {
	mask := uint64(1)<<t.globalDepth - 1
	return int(t.hasher(key) & mask)
}

// Find returns the value bound to key, if any.
func (t *ExtendibleHashTable[K, V]) Find(key K) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.dir[t.indexOf(key)].find(key)
}

// Remove deletes the entry for key and reports whether one existed. Buckets
// and directory slots are never reclaimed.
func (t *ExtendibleHashTable[K, V]) Remove(key K) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.dir[t.indexOf(key)].remove(key)
}

// Insert binds key to value, overwriting any previous binding. A full bucket
// is split (and the directory doubled when the bucket already sits at global
// depth) until the key routes to a bucket with room; one split may not be
// enough, hence the loop.
func (t *ExtendibleHashTable[K, V]) Insert(key K, value V) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for {
		idx := t.indexOf(key)
		b := t.dir[idx]
		if b.insert(key, value) {
			return
		}
		t.split(idx, b)
	}
}

// split replaces the full bucket serving slot idx with two siblings one bit
// deeper, redistributes its entries by the new distinguishing bit, and
// repoints every directory slot that aliased it. Caller must hold mu.
func (t *ExtendibleHashTable[K, V]) split(idx int, full *bucket[K, V]) {
	if full.depth == t.globalDepth {
		t.globalDepth++
		t.dir = append(t.dir, t.dir...)
	}

	newDepth := full.depth + 1
	baseMask := 1<<full.depth - 1
	splitMask := 1<<newDepth - 1
	low := idx & baseMask

	zero := newBucket[K, V](t.bucketSize, newDepth)
	one := newBucket[K, V](t.bucketSize, newDepth)
	for _, e := range full.entries {
		if t.indexOf(e.key)&splitMask == low {
			zero.entries = append(zero.entries, e)
		} else {
			one.entries = append(one.entries, e)
		}
	}

	for i := range t.dir {
		if i&baseMask != low {
			continue
		}
		if i&splitMask == low {
			t.dir[i] = zero
		} else {
			t.dir[i] = one
		}
	}
	t.numBuckets++
}

// GetGlobalDepth returns the number of low-order hash bits used to index the
// directory.
func (t *ExtendibleHashTable[K, V]) GetGlobalDepth() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.globalDepth
}

// GetLocalDepth returns the local depth of the bucket referenced by the given
// directory slot.
func (t *ExtendibleHashTable[K, V]) GetLocalDepth(dirIndex int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.dir[dirIndex].depth
}

// GetNumBuckets returns the number of distinct buckets currently allocated.
func (t *ExtendibleHashTable[K, V]) GetNumBuckets() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.numBuckets
}
