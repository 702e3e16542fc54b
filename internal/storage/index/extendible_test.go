package index

import (
	"fmt"
	"sync"
	"testing"

	util "github.com/bietkhonhungvandi212/framekit/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identity routes ints by their own low bits, making split behavior
// deterministic in tests.
func identity(key int) uint64 { return uint64(key) }

func TestNewExtendibleHashTable(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		ht := New[int, string](4)
		assert.Equal(t, 0, ht.GetGlobalDepth(), "starts at global depth 0")
		assert.Equal(t, 1, ht.GetNumBuckets(), "starts with one bucket")
		assert.Equal(t, 0, ht.GetLocalDepth(0), "initial bucket at local depth 0")
		assert.Len(t, ht.dir, 1, "directory length 2^0")
	})

	t.Run("ZeroBucketSize", func(t *testing.T) {
		assert.PanicsWithValue(t, util.ErrInvalidBucketSize, func() {
			New[int, string](0)
		})
	})
}

func TestInsertFindRemove(t *testing.T) {
	ht := New[string, int](2)
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"}
	for i, w := range words {
		ht.Insert(w, i)
	}

	for i, w := range words {
		v, ok := ht.Find(w)
		require.True(t, ok, "find %q", w)
		assert.Equal(t, i, v, "value for %q", w)
	}

	_, ok := ht.Find("eta")
	assert.False(t, ok, "absent key")

	assert.True(t, ht.Remove("gamma"))
	assert.False(t, ht.Remove("gamma"), "second remove reports absence")
	_, ok = ht.Find("gamma")
	assert.False(t, ok, "find after remove")

	// The remaining keys are untouched.
	for i, w := range words {
		if w == "gamma" {
			continue
		}
		v, ok := ht.Find(w)
		require.True(t, ok, "find %q after unrelated remove", w)
		assert.Equal(t, i, v)
	}
}

func TestInsertOverwrite(t *testing.T) {
	ht := NewWithHasher[int, string](2, identity)
	ht.Insert(1, "one")
	ht.Insert(2, "two")
	ht.Insert(1, "uno") // full bucket, but existing key: no growth

	assert.Equal(t, 0, ht.GetGlobalDepth(), "overwrite must not split")
	assert.Equal(t, 1, ht.GetNumBuckets())
	v, ok := ht.Find(1)
	require.True(t, ok)
	assert.Equal(t, "uno", v)
}

func TestSplitOnOverflow(t *testing.T) {
	// bucketSize=2: keys 1 and 2 fill the single depth-0 bucket; key 3
	// forces a directory double and a split by bit 0.
	ht := NewWithHasher[int, int](2, identity)
	ht.Insert(1, 10)
	ht.Insert(2, 20)
	require.Equal(t, 0, ht.GetGlobalDepth())

	ht.Insert(3, 30)
	assert.Equal(t, 1, ht.GetGlobalDepth(), "directory doubled")
	assert.Equal(t, 2, ht.GetNumBuckets(), "one split")
	assert.Equal(t, 1, ht.GetLocalDepth(0))
	assert.Equal(t, 1, ht.GetLocalDepth(1))

	for key, want := range map[int]int{1: 10, 2: 20, 3: 30} {
		v, ok := ht.Find(key)
		require.True(t, ok, "find %d after split", key)
		assert.Equal(t, want, v)
	}
}

func TestSplitChain(t *testing.T) {
	// Keys 0, 4, 8 agree on their low two bits, so inserting the third key
	// needs three successive splits before 0 and 4 separate on bit 2.
	ht := NewWithHasher[int, int](2, identity)
	ht.Insert(0, 0)
	ht.Insert(4, 40)
	ht.Insert(8, 80)

	assert.Equal(t, 3, ht.GetGlobalDepth(), "depth grows until keys diverge")
	assert.Equal(t, 4, ht.GetNumBuckets())
	assert.Len(t, ht.dir, 8, "directory length 2^3")

	for key, want := range map[int]int{0: 0, 4: 40, 8: 80} {
		v, ok := ht.Find(key)
		require.True(t, ok, "find %d after split chain", key)
		assert.Equal(t, want, v)
	}
}

func TestDirectoryInvariants(t *testing.T) {
	ht := NewWithHasher[int, int](3, identity)
	const n = 200
	for i := 0; i < n; i++ {
		ht.Insert(i*7, i)
	}

	assert.Len(t, ht.dir, 1<<ht.globalDepth, "directory length is 2^globalDepth")

	total := 0
	seen := map[*bucket[int, int]]int{}
	for slot, b := range ht.dir {
		require.NotNil(t, b, "slot %d has a bucket", slot)
		assert.LessOrEqual(t, b.depth, ht.globalDepth, "local depth bounded by global")
		assert.LessOrEqual(t, len(b.entries), b.size, "bucket within capacity")

		// All slots aliasing one bucket agree on its low localDepth bits.
		mask := 1<<b.depth - 1
		if first, ok := seen[b]; ok {
			assert.Equal(t, first&mask, slot&mask, "aliased slots agree below local depth")
		} else {
			seen[b] = slot
			total += len(b.entries)
		}

		// Every entry actually routes to the slot's bucket.
		for _, e := range b.entries {
			assert.Same(t, b, ht.dir[ht.indexOf(e.key)], "entry %d routed to its bucket", e.key)
		}
	}

	assert.Equal(t, n, total, "no key lost or duplicated across splits")
	assert.Equal(t, len(seen), ht.GetNumBuckets(), "bucket count matches distinct buckets")

	for i := 0; i < n; i++ {
		v, ok := ht.Find(i * 7)
		require.True(t, ok, "find %d", i*7)
		assert.Equal(t, i, v)
	}
}

func TestDefaultHasherWorkload(t *testing.T) {
	// Same workload under the seeded maphash default: behavior must not
	// depend on a cooperative hash function.
	ht := New[string, int](2)
	const n = 500
	for i := 0; i < n; i++ {
		ht.Insert(fmt.Sprintf("page-%04d", i), i)
	}
	assert.Len(t, ht.dir, 1<<ht.globalDepth)

	for i := 0; i < n; i++ {
		v, ok := ht.Find(fmt.Sprintf("page-%04d", i))
		require.True(t, ok, "find page-%04d", i)
		assert.Equal(t, i, v)
	}

	for i := 0; i < n; i += 2 {
		assert.True(t, ht.Remove(fmt.Sprintf("page-%04d", i)))
	}
	for i := 0; i < n; i++ {
		_, ok := ht.Find(fmt.Sprintf("page-%04d", i))
		assert.Equal(t, i%2 == 1, ok, "parity after removals for %d", i)
	}
}

func TestIndexConcurrentSmoke(t *testing.T) {
	ht := New[int, int](4)
	const workers = 8
	const perWorker = 500

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := base*perWorker + i
				ht.Insert(key, key*2)
				if _, ok := ht.Find(key); !ok {
					t.Errorf("key %d lost after insert", key)
				}
				if i%5 == 0 {
					ht.Remove(key)
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		for i := 0; i < perWorker; i++ {
			key := w*perWorker + i
			v, ok := ht.Find(key)
			if i%5 == 0 {
				assert.False(t, ok, "removed key %d", key)
			} else {
				require.True(t, ok, "key %d survives", key)
				assert.Equal(t, key*2, v)
			}
		}
	}
}
