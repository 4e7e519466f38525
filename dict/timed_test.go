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
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestTimed_BadOptions(t *testing.T) {
	t.Parallel()

	_, err := NewTimed[string, int](WithMaximumSize(-5))
	require.ErrorIs(t, err, ErrIllegalMaximumSize)

	_, err = NewTimed[string, int](WithTTL(-time.Second))
	require.ErrorIs(t, err, ErrIllegalTTL)

	_, err = NewTimed[string, int](WithShardCount(0))
	require.ErrorIs(t, err, ErrIllegalShardCount)
}

func TestTimed_SetGetDelete(t *testing.T) {
	t.Parallel()

	d, err := NewTimed[string, int]()
	require.NoError(t, err)
	defer d.Close()

	_, ok := d.Get("a")
	require.False(t, ok)

	d.Set("a", 1)
	d.Set("b", 2)
	v, ok := d.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 2, d.Len())

	d.Set("a", 10)
	v, _ = d.Get("a")
	require.Equal(t, 10, v)
	require.Equal(t, 2, d.Len())

	require.True(t, d.Delete("a"))
	require.False(t, d.Delete("a"))
	_, ok = d.Get("a")
	require.False(t, ok)

	d.Clear()
	require.Zero(t, d.Len())
	_, ok = d.Get("b")
	require.False(t, ok)
}

func TestTimed_EvictsOldestInsertions(t *testing.T) {
	t.Parallel()

	// A single shard makes the global bound exact and the order observable.
	d, err := NewTimed[string, int](WithMaximumSize(3), WithShardCount(1))
	require.NoError(t, err)
	defer d.Close()

	d.Set("a", 1)
	d.Set("b", 2)
	d.Set("c", 3)
	d.Set("d", 4)

	_, ok := d.Get("a")
	require.False(t, ok, "the oldest insertion should have been evicted")
	require.Equal(t, 3, d.Len())

	// Updating a key does not refresh its insertion order: b is still the
	// oldest and goes next.
	d.Set("b", 20)
	d.Set("e", 5)
	_, ok = d.Get("b")
	require.False(t, ok)
	for _, key := range []string{"c", "d", "e"} {
		_, ok := d.Get(key)
		require.True(t, ok, "key %s should have survived", key)
	}
}

func TestTimed_EvictionSkipsDeletedKeys(t *testing.T) {
	t.Parallel()

	d, err := NewTimed[int, int](WithMaximumSize(3), WithShardCount(1))
	require.NoError(t, err)
	defer d.Close()

	d.Set(1, 1)
	d.Set(2, 2)
	d.Set(3, 3)
	require.True(t, d.Delete(1))

	d.Set(4, 4) // fills the freed slot
	d.Set(5, 5) // must evict 2, not trip over the stale 1

	_, ok := d.Get(2)
	require.False(t, ok)
	for _, key := range []int{3, 4, 5} {
		_, ok := d.Get(key)
		require.True(t, ok, "key %d should have survived", key)
	}
	require.Equal(t, 3, d.Len())
}

func TestTimed_TTL(t *testing.T) {
	t.Parallel()

	d, err := NewTimed[string, int](WithTTL(time.Second), WithShardCount(1))
	require.NoError(t, err)
	defer d.Close()

	d.Set("a", 1)
	v, ok := d.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	// The shared clock ticks once a second, so give it slack.
	time.Sleep(3 * time.Second)

	// A write sweeps expired entries out of the shard.
	d.Set("b", 2)
	require.Equal(t, 1, d.Len())
	_, ok = d.Get("a")
	require.False(t, ok, "entry should have expired")
	_, ok = d.Get("b")
	require.True(t, ok)
}

func TestTimed_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	d, err := NewTimed[string, int](WithTTL(time.Minute))
	require.NoError(t, err)
	d.Set("a", 1)
	d.Close()
	d.Close()
}

func TestTimed_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	const (
		goroutines = 8
		iterations = 10000
	)

	d, err := NewTimed[string, int](WithMaximumSize(512))
	require.NoError(t, err)
	defer d.Close()

	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			for j := 0; j < iterations; j++ {
				key := fmt.Sprintf("key-%d", j%100)
				d.Set(key, j)
				if v, ok := d.Get(key); ok && v < 0 {
					return fmt.Errorf("unexpected value %d for %s", v, key)
				}
				if j%10 == 0 {
					d.Delete(key)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	d.Clear()
	require.Zero(t, d.Len())
}
