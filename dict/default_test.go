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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_MaterializesOncePerKey(t *testing.T) {
	t.Parallel()

	calls := make(map[string]int)
	d := NewDefault[string, string](func(key string) string {
		calls[key]++
		return strings.ToUpper(key)
	})

	require.Equal(t, "FOO", d.Get("foo"))
	require.Equal(t, "FOO", d.Get("foo"))
	require.Equal(t, "BAR", d.Get("bar"))
	require.Equal(t, map[string]int{"foo": 1, "bar": 1}, calls)
	require.Equal(t, 2, d.Len())
}

func TestDefault_PeekDoesNotMaterialize(t *testing.T) {
	t.Parallel()

	calls := 0
	d := NewDefault[string, int](func(string) int {
		calls++
		return calls
	})

	_, ok := d.Peek("missing")
	require.False(t, ok)
	require.Zero(t, calls)
	require.Zero(t, d.Len())

	d.Get("present")
	v, ok := d.Peek("present")
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestDefault_SetOverridesProducedValue(t *testing.T) {
	t.Parallel()

	d := NewDefault[string, int](func(string) int { return -1 })
	require.Equal(t, -1, d.Get("a"))

	d.Set("a", 42)
	require.Equal(t, 42, d.Get("a"))

	// Set also works for keys that were never produced.
	d.Set("b", 7)
	require.Equal(t, 7, d.Get("b"))
}

func TestDefault_DeleteAndClear(t *testing.T) {
	t.Parallel()

	produced := 0
	d := NewDefault[int, int](func(int) int {
		produced++
		return produced
	})

	d.Get(1)
	d.Get(2)
	require.True(t, d.Delete(1))
	require.False(t, d.Delete(1))
	require.Equal(t, 1, d.Len())

	// A deleted key is produced again on the next Get.
	d.Get(1)
	require.Equal(t, 3, produced)

	d.Clear()
	require.Zero(t, d.Len())
}

func TestDefault_Range(t *testing.T) {
	t.Parallel()

	d := NewDefault[int, int](func(k int) int { return k * k })
	for i := 1; i <= 5; i++ {
		d.Get(i)
	}

	seen := make(map[int]int)
	d.Range(func(k, v int) bool {
		seen[k] = v
		return true
	})
	require.Equal(t, map[int]int{1: 1, 2: 4, 3: 9, 4: 16, 5: 25}, seen)

	visited := 0
	d.Range(func(int, int) bool {
		visited++
		return false
	})
	require.Equal(t, 1, visited)
}
