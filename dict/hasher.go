package dict

import (
	"github.com/dolthub/maphash"
	"github.com/zeebo/xxh3"
)

// hasher picks the shard hash function for a key type once, at construction.
// String keys go through xxh3 directly, everything else through a runtime
// seeded maphash.
type hasher[K comparable] struct {
	keyIsString bool
	mh          maphash.Hasher[K]
}

func newHasher[K comparable]() hasher[K] {
	var key K
	if _, ok := any(key).(string); ok {
		return hasher[K]{keyIsString: true}
	}
	return hasher[K]{mh: maphash.NewHasher[K]()}
}

func (h hasher[K]) hash(key K) uint64 {
	if h.keyIsString {
		return xxh3.HashString(any(key).(string))
	}
	return h.mh.Hash(key)
}
