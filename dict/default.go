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

// Package dict provides dictionary decorators: a map that materializes
// missing values on demand, a multi-value map, and a goroutine-safe map
// bounded by entry count and entry age.
//
// Default and Multi are plain single-owner structures like the rest of the
// library; Timed is safe for concurrent use.
package dict

import "github.com/dolthub/swiss"

func zeroValue[V any]() V {
	var zero V
	return zero
}

// Default is a map that produces and stores a value the first time a missing
// key is requested.
type Default[K comparable, V any] struct {
	m        *swiss.Map[K, V]
	producer func(K) V
}

// NewDefault creates an empty Default dictionary. The producer is invoked by
// Get for keys that have no stored value yet and must not be nil.
func NewDefault[K comparable, V any](producer func(K) V) *Default[K, V] {
	return &Default[K, V]{
		m:        swiss.NewMap[K, V](16),
		producer: producer,
	}
}

// Get returns the value stored under key, materializing and storing a new one
// with the producer if the key is missing. The producer runs at most once per
// stored key.
func (d *Default[K, V]) Get(key K) V {
	if value, ok := d.m.Get(key); ok {
		return value
	}
	value := d.producer(key)
	d.m.Put(key, value)
	return value
}

// Peek returns the value stored under key without materializing a missing one.
func (d *Default[K, V]) Peek(key K) (V, bool) {
	return d.m.Get(key)
}

// Set stores value under key, replacing any produced or previously set value.
func (d *Default[K, V]) Set(key K, value V) {
	d.m.Put(key, value)
}

// Delete removes the entry for key and reports whether one was present.
func (d *Default[K, V]) Delete(key K) bool {
	return d.m.Delete(key)
}

// Len returns the number of stored entries.
func (d *Default[K, V]) Len() int {
	return d.m.Count()
}

// Clear removes all entries.
func (d *Default[K, V]) Clear() {
	d.m.Clear()
}

// Range calls fn for every stored entry until fn returns false.
// The dictionary must not be mutated during the iteration.
func (d *Default[K, V]) Range(fn func(K, V) bool) {
	d.m.Iter(func(key K, value V) bool {
		return !fn(key, value)
	})
}
