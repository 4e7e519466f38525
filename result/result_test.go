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

package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestResult_Ok(t *testing.T) {
	t.Parallel()

	r := Ok(42)
	require.True(t, r.IsOk())
	require.False(t, r.IsErr())
	require.NoError(t, r.Error())

	v, err := r.Get()
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, 42, r.MustGet())
	require.Equal(t, 42, r.Or(-1))
}

func TestResult_Err(t *testing.T) {
	t.Parallel()

	r := Err[int](errBoom)
	require.False(t, r.IsOk())
	require.True(t, r.IsErr())
	require.ErrorIs(t, r.Error(), errBoom)

	v, err := r.Get()
	require.ErrorIs(t, err, errBoom)
	require.Zero(t, v)
	require.Equal(t, -1, r.Or(-1))
	require.Panics(t, func() { r.MustGet() })
}

func TestResult_ErrWithNilIsOk(t *testing.T) {
	t.Parallel()

	r := Err[string](nil)
	require.True(t, r.IsOk())
	require.Equal(t, "", r.MustGet())
}

func TestResult_ZeroValue(t *testing.T) {
	t.Parallel()

	var r Result[int]
	require.True(t, r.IsOk())
	require.Zero(t, r.MustGet())
}

func TestPartial(t *testing.T) {
	t.Parallel()

	p := Complete([]int{1, 2, 3})
	require.True(t, p.IsComplete())
	require.NoError(t, p.Err())
	require.Equal(t, []int{1, 2, 3}, p.Value())

	p = Incomplete([]int{1}, errBoom)
	require.False(t, p.IsComplete())
	require.ErrorIs(t, p.Err(), errBoom)
	require.Equal(t, []int{1}, p.Value(), "the partial value stays accessible")

	v, err := p.Get()
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, []int{1}, v)
}
