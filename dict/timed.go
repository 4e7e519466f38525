// Copyright (c) 2025 Alexey Mayshev and contributors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dict

import (
	"sync"
	"time"

	"github.com/dolthub/swiss"

	"github.com/maypok86/circ/deque"
	"github.com/maypok86/circ/internal/unixtime"
)

type timedEntry[V any] struct {
	value V
	// Unix seconds after which the entry is gone. Zero means no expiration.
	expiresAt uint64
}

// timedShard holds a slice of the key space behind its own mutex. The order
// deque records insertion order for count-bounded eviction; keys removed by
// Delete or expiration go stale in it and are skipped when they surface at
// the front.
type timedShard[K comparable, V any] struct {
	mutex sync.Mutex
	m     *swiss.Map[K, timedEntry[V]]
	order *deque.Deque[K]
}

// dropOldest evicts the oldest live insertion. Called with the mutex held and
// a non-empty map, so the order deque always surfaces a live key eventually.
func (s *timedShard[K, V]) dropOldest() {
	for {
		key, ok := s.order.TryPopFront()
		if !ok {
			return
		}
		if s.m.Delete(key) {
			return
		}
	}
}

// expireFront removes expired entries from the front of the insertion order,
// stopping at the first live one. Updated entries keep their order position
// with a restarted ttl, so later expired entries can hide behind them; those
// are dropped when read. Called with the mutex held.
func (s *timedShard[K, V]) expireFront(now uint64) {
	for {
		key, ok := s.order.TryFront()
		if !ok {
			return
		}
		e, ok := s.m.Get(key)
		if ok && e.expiresAt > now {
			return
		}
		// Expired, or stale after a Delete.
		s.order.TryPopFront()
		if ok {
			s.m.Delete(key)
		}
	}
}

// Timed is a dictionary bounded by entry count and entry age. Unlike the
// rest of the library it is safe for concurrent use: the key space is split
// across power-of-two many shards, each guarded by its own mutex.
//
// Expiration uses a shared coarse one-second clock and is lazy: expired
// entries are dropped when they are read, or swept from the front of a shard
// on writes, never by a background goroutine of the dictionary itself.
type Timed[K comparable, V any] struct {
	shards      []*timedShard[K, V]
	hasher      hasher[K]
	closeOnce   sync.Once
	mask        uint64
	maxPerShard int
	ttl         uint64
}

// NewTimed creates a Timed dictionary. Without options it is unbounded and
// never expires entries. Close must be called when the dictionary is no
// longer needed if a ttl is configured.
func NewTimed[K comparable, V any](opts ...Option) (*Timed[K, V], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if err := o.validate(); err != nil {
		return nil, err
	}

	maxPerShard := 0
	if o.maximumSize > 0 {
		maxPerShard = (o.maximumSize + o.shardCount - 1) / o.shardCount
	}

	shards := make([]*timedShard[K, V], 0, o.shardCount)
	for i := 0; i < o.shardCount; i++ {
		shards = append(shards, &timedShard[K, V]{
			m:     swiss.NewMap[K, timedEntry[V]](16),
			order: deque.New[K](),
		})
	}

	t := &Timed[K, V]{
		shards:      shards,
		hasher:      newHasher[K](),
		mask:        uint64(o.shardCount - 1),
		maxPerShard: maxPerShard,
	}
	if o.ttl > noTTL {
		t.ttl = uint64((o.ttl + time.Second - 1) / time.Second)
		unixtime.Start()
	}
	return t, nil
}

func (t *Timed[K, V]) getShard(key K) *timedShard[K, V] {
	return t.shards[t.hasher.hash(key)&t.mask]
}

// Set stores value under key. Updating an existing key keeps its original
// position in the insertion order but restarts its ttl. When the size bound
// is reached the oldest insertion of the shard is evicted first.
func (t *Timed[K, V]) Set(key K, value V) {
	var expiresAt uint64
	var now uint64
	if t.ttl > 0 {
		now = unixtime.Now()
		expiresAt = now + t.ttl
	}

	s := t.getShard(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if t.ttl > 0 {
		s.expireFront(now)
	}

	if _, ok := s.m.Get(key); ok {
		s.m.Put(key, timedEntry[V]{value: value, expiresAt: expiresAt})
		return
	}

	for t.maxPerShard > 0 && s.m.Count() >= t.maxPerShard {
		s.dropOldest()
	}
	s.m.Put(key, timedEntry[V]{value: value, expiresAt: expiresAt})
	s.order.PushBack(key)
}

// Get returns the value stored under key. Expired entries are dropped on the
// spot and reported as missing.
func (t *Timed[K, V]) Get(key K) (V, bool) {
	s := t.getShard(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e, ok := s.m.Get(key)
	if !ok {
		return zeroValue[V](), false
	}
	if e.expiresAt > 0 && e.expiresAt <= unixtime.Now() {
		s.m.Delete(key)
		return zeroValue[V](), false
	}
	return e.value, true
}

// Delete removes the entry for key and reports whether one was present.
func (t *Timed[K, V]) Delete(key K) bool {
	s := t.getShard(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.m.Delete(key)
}

// Len returns the number of stored entries. Entries that expired but have
// not been touched since are counted until a read or write sweeps them out.
func (t *Timed[K, V]) Len() int {
	length := 0
	for _, s := range t.shards {
		s.mutex.Lock()
		length += s.m.Count()
		s.mutex.Unlock()
	}
	return length
}

// Clear removes all entries from all shards.
func (t *Timed[K, V]) Clear() {
	for _, s := range t.shards {
		s.mutex.Lock()
		s.m.Clear()
		s.order.Clear()
		s.mutex.Unlock()
	}
}

// Close releases the shared expiration clock. It is idempotent. Using the
// dictionary after Close is not allowed when a ttl is configured.
func (t *Timed[K, V]) Close() {
	t.closeOnce.Do(func() {
		if t.ttl > 0 {
			unixtime.Stop()
		}
	})
}
