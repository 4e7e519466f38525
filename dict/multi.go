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
	"slices"

	"github.com/dolthub/swiss"
)

// Multi is a map from a key to any number of values. Values under one key
// keep their insertion order and may repeat.
type Multi[K comparable, V comparable] struct {
	m *swiss.Map[K, []V]
}

// NewMulti creates an empty multi-value dictionary.
func NewMulti[K comparable, V comparable]() *Multi[K, V] {
	return &Multi[K, V]{
		m: swiss.NewMap[K, []V](16),
	}
}

// Add appends value to the values stored under key.
func (m *Multi[K, V]) Add(key K, value V) {
	values, _ := m.m.Get(key)
	m.m.Put(key, append(values, value))
}

// Values returns a copy of the values stored under key, in insertion order.
// Mutating the returned slice does not affect the dictionary.
func (m *Multi[K, V]) Values(key K) []V {
	values, ok := m.m.Get(key)
	if !ok {
		return nil
	}
	return slices.Clone(values)
}

// Count returns the number of values stored under key.
func (m *Multi[K, V]) Count(key K) int {
	values, _ := m.m.Get(key)
	return len(values)
}

// Contains reports whether value is stored under key.
func (m *Multi[K, V]) Contains(key K, value V) bool {
	values, _ := m.m.Get(key)
	return slices.Contains(values, value)
}

// Remove deletes the first occurrence of value under key and reports whether
// one was found. Removing the last value removes the key itself.
func (m *Multi[K, V]) Remove(key K, value V) bool {
	values, ok := m.m.Get(key)
	if !ok {
		return false
	}
	i := slices.Index(values, value)
	if i < 0 {
		return false
	}
	values = slices.Delete(values, i, i+1)
	if len(values) == 0 {
		m.m.Delete(key)
		return true
	}
	m.m.Put(key, values)
	return true
}

// Delete removes key with all its values and reports whether it was present.
func (m *Multi[K, V]) Delete(key K) bool {
	return m.m.Delete(key)
}

// Len returns the number of distinct keys.
func (m *Multi[K, V]) Len() int {
	return m.m.Count()
}

// Clear removes all keys and values.
func (m *Multi[K, V]) Clear() {
	m.m.Clear()
}

// Range calls fn for every key/value pair until fn returns false. Values of
// one key are visited in insertion order; key order is unspecified.
// The dictionary must not be mutated during the iteration.
func (m *Multi[K, V]) Range(fn func(K, V) bool) {
	m.m.Iter(func(key K, values []V) bool {
		for _, value := range values {
			if !fn(key, value) {
				return true
			}
		}
		return false
	})
}
