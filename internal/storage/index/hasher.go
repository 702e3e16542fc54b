package index

import "hash/maphash"

// Hasher maps a key to a 64-bit hash value. The table routes keys by the low
// bits of the hash, so implementations must mix the key into the low bits.
type Hasher[K comparable] func(key K) uint64

// defaultHasher builds a maphash-based hasher with a fresh seed per table.
func defaultHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(key K) uint64 {
		return maphash.Comparable(seed, key)
	}
}
