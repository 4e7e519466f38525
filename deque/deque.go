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

// Package deque provides a double-ended queue on top of a resizable ring buffer.
package deque

import (
	"errors"

	"github.com/maypok86/circ/internal/xmath"
)

const (
	// minCapacity is the smallest backing array allocated for a deque.
	// Must be a power of two.
	minCapacity = 16

	// MaxCapacity is the largest capacity that can be requested with NewWithCapacity.
	// Growth caused by insertions is not limited by it.
	MaxCapacity = 1 << 30
)

var (
	// ErrIllegalCapacity means that a non-positive capacity or a capacity
	// above MaxCapacity has been passed to NewWithCapacity.
	ErrIllegalCapacity = errors.New("capacity should be positive and not exceed MaxCapacity")
	// ErrEmpty means that the requested element does not exist because the deque is empty.
	ErrEmpty = errors.New("deque is empty")
	// ErrOutOfRange means that the index is outside the interval [0, Len()).
	ErrOutOfRange = errors.New("index out of range")
	// ErrInvalidState means that an internal invariant was violated,
	// e.g. because the deque was mutated while a removal was in progress.
	ErrInvalidState = errors.New("inconsistent deque state")
)

func zeroValue[T any]() T {
	var zero T
	return zero
}

// Deque is an unbounded double-ended queue of values of type T.
//
// The backing array always has a power-of-two length, so logical indexes wrap
// around with a bitmask instead of a modulo. head is the physical index of the
// first element, tail is the physical index one past the last element, and
// head == tail means the deque is empty: the array is grown one step before
// that state could also mean "full".
//
// The zero value is an empty deque ready to use. A Deque is not safe for
// concurrent use by multiple goroutines; callers have to synchronize access
// themselves.
type Deque[T any] struct {
	buf  []T
	head int
	tail int
}

// New creates an empty deque with a small default capacity.
func New[T any]() *Deque[T] {
	return &Deque[T]{
		buf: make([]T, minCapacity),
	}
}

// NewWithCapacity creates an empty deque with the backing array sized to the
// capacity hint, rounded up to the next power of two.
//
// Returns ErrIllegalCapacity if capacity is not positive or exceeds MaxCapacity.
func NewWithCapacity[T any](capacity int) (*Deque[T], error) {
	if capacity <= 0 || capacity > MaxCapacity {
		return nil, ErrIllegalCapacity
	}
	return &Deque[T]{
		buf: make([]T, int(xmath.RoundUpPowerOf2(uint32(capacity)))),
	}, nil
}

// From creates a deque containing the given items in order. The first item
// becomes the front of the deque.
func From[T any](items []T) *Deque[T] {
	capacity := int(xmath.RoundUpPowerOf264(uint64(len(items) + 1)))
	if capacity < minCapacity {
		capacity = minCapacity
	}
	d := &Deque[T]{
		buf:  make([]T, capacity),
		tail: len(items),
	}
	copy(d.buf, items)
	return d
}

// Clone returns an independent copy of the deque: a new backing array of
// identical length with the contents duplicated and head/tail copied verbatim.
// Mutating one deque never affects the other. Element values are copied the
// way an assignment copies them, they are not cloned recursively.
func (d *Deque[T]) Clone() *Deque[T] {
	c := &Deque[T]{
		head: d.head,
		tail: d.tail,
	}
	if d.buf != nil {
		c.buf = make([]T, len(d.buf))
		copy(c.buf, d.buf)
	}
	return c
}

// Len returns the number of elements currently stored in the deque.
func (d *Deque[T]) Len() int {
	return (d.tail - d.head) & (len(d.buf) - 1)
}

// Cap returns the length of the backing array.
func (d *Deque[T]) Cap() int {
	return len(d.buf)
}

// PushFront inserts v at the front of the deque.
func (d *Deque[T]) PushFront(v T) {
	d.lazyInit()
	d.head = d.prev(d.head)
	d.buf[d.head] = v
	if d.head == d.tail {
		d.resize()
	}
}

// PushBack inserts v at the back of the deque.
func (d *Deque[T]) PushBack(v T) {
	d.lazyInit()
	d.buf[d.tail] = v
	d.tail = d.next(d.tail)
	if d.tail == d.head {
		d.resize()
	}
}

// PopFront removes and returns the front element.
// Returns ErrEmpty if the deque contains no elements.
func (d *Deque[T]) PopFront() (T, error) {
	if d.Len() == 0 {
		return zeroValue[T](), ErrEmpty
	}
	v := d.buf[d.head]
	d.buf[d.head] = zeroValue[T]()
	d.head = d.next(d.head)
	return v, nil
}

// PopBack removes and returns the back element.
// Returns ErrEmpty if the deque contains no elements.
func (d *Deque[T]) PopBack() (T, error) {
	if d.Len() == 0 {
		return zeroValue[T](), ErrEmpty
	}
	d.tail = d.prev(d.tail)
	v := d.buf[d.tail]
	d.buf[d.tail] = zeroValue[T]()
	return v, nil
}

// TryPopFront removes and returns the front element.
// Unlike PopFront it never fails: the second result reports whether an
// element was present.
func (d *Deque[T]) TryPopFront() (T, bool) {
	v, err := d.PopFront()
	return v, err == nil
}

// TryPopBack removes and returns the back element.
// Unlike PopBack it never fails: the second result reports whether an
// element was present.
func (d *Deque[T]) TryPopBack() (T, bool) {
	v, err := d.PopBack()
	return v, err == nil
}

// Front returns the front element without removing it.
// Returns ErrEmpty if the deque contains no elements.
func (d *Deque[T]) Front() (T, error) {
	if d.Len() == 0 {
		return zeroValue[T](), ErrEmpty
	}
	return d.buf[d.head], nil
}

// Back returns the back element without removing it.
// Returns ErrEmpty if the deque contains no elements.
func (d *Deque[T]) Back() (T, error) {
	if d.Len() == 0 {
		return zeroValue[T](), ErrEmpty
	}
	return d.buf[d.prev(d.tail)], nil
}

// TryFront returns the front element without removing it and reports whether
// it was present.
func (d *Deque[T]) TryFront() (T, bool) {
	v, err := d.Front()
	return v, err == nil
}

// TryBack returns the back element without removing it and reports whether
// it was present.
func (d *Deque[T]) TryBack() (T, bool) {
	v, err := d.Back()
	return v, err == nil
}

// At returns the element at logical index i.
// Returns ErrOutOfRange if i is outside [0, Len()).
func (d *Deque[T]) At(i int) (T, error) {
	if i < 0 || i >= d.Len() {
		return zeroValue[T](), ErrOutOfRange
	}
	return d.buf[(d.head+i)&(len(d.buf)-1)], nil
}

// AtOr returns the element at logical index i, or fallback if i is outside
// [0, Len()).
func (d *Deque[T]) AtOr(i int, fallback T) T {
	if i < 0 || i >= d.Len() {
		return fallback
	}
	return d.buf[(d.head+i)&(len(d.buf)-1)]
}

// Set replaces the element at logical index i with v. Out-of-range indexes
// are silently ignored, an asymmetry with At that is kept for compatibility.
func (d *Deque[T]) Set(i int, v T) {
	if i < 0 || i >= d.Len() {
		return
	}
	d.buf[(d.head+i)&(len(d.buf)-1)] = v
}

// Edit replaces the element at logical index i with fn applied to its current
// value. Out-of-range indexes are silently ignored, like Set.
func (d *Deque[T]) Edit(i int, fn func(T) T) {
	if i < 0 || i >= d.Len() {
		return
	}
	idx := (d.head + i) & (len(d.buf) - 1)
	d.buf[idx] = fn(d.buf[idx])
}

// Remove removes and returns the element at logical index i, shifting
// whichever side of the deque is shorter to minimize copying. All other
// elements keep their relative order.
//
// Returns ErrOutOfRange if i is outside [0, Len()) and ErrInvalidState if the
// internal head/tail/index distances are found to be inconsistent.
func (d *Deque[T]) Remove(i int) (T, error) {
	length := d.Len()
	if i < 0 || i >= length {
		return zeroValue[T](), ErrOutOfRange
	}

	mask := len(d.buf) - 1
	idx := (d.head + i) & mask
	v := d.buf[idx]

	// Sanity check on the index arithmetic: the distance from head to the
	// target plus the distance from the target to tail has to cover the whole
	// deque. It cannot fail unless head or tail moved underneath us.
	front := (idx - d.head) & mask
	back := (d.tail - idx) & mask
	if front+back != length {
		return zeroValue[T](), ErrInvalidState
	}

	if front < back {
		// Fewer elements in front of the target: shift them one slot back.
		for j := idx; j != d.head; {
			p := (j - 1) & mask
			d.buf[j] = d.buf[p]
			j = p
		}
		d.buf[d.head] = zeroValue[T]()
		d.head = d.next(d.head)
	} else {
		// Shift the elements behind the target one slot forward.
		for j := idx; ; {
			n := (j + 1) & mask
			if n == d.tail {
				break
			}
			d.buf[j] = d.buf[n]
			j = n
		}
		d.tail = d.prev(d.tail)
		d.buf[d.tail] = zeroValue[T]()
	}
	return v, nil
}

// Clear removes all elements. The backing array is kept and reused by
// subsequent insertions. Cleared slots are zeroed so that the garbage
// collector can reclaim the removed values.
func (d *Deque[T]) Clear() {
	mask := len(d.buf) - 1
	for h := d.head; h != d.tail; h = (h + 1) & mask {
		d.buf[h] = zeroValue[T]()
	}
	d.head = 0
	d.tail = 0
}

// ToSlice returns the contents of the deque as a new slice in logical order,
// front first. From(d.ToSlice()) reproduces the deque.
func (d *Deque[T]) ToSlice() []T {
	out := make([]T, d.Len())
	if len(out) == 0 {
		return out
	}
	if d.head < d.tail {
		copy(out, d.buf[d.head:d.tail])
	} else {
		n := copy(out, d.buf[d.head:])
		copy(out[n:], d.buf[:d.tail])
	}
	return out
}

// Truncate removes elements from the back until at most n remain.
// It does nothing if the deque already holds n or fewer elements;
// n <= 0 clears the deque entirely.
func (d *Deque[T]) Truncate(n int) {
	if n <= 0 {
		d.Clear()
		return
	}
	for d.Len() > n {
		d.tail = d.prev(d.tail)
		d.buf[d.tail] = zeroValue[T]()
	}
}

// TrimFront removes elements from the front while pred reports true for the
// front element, stopping at the first element that does not match.
func (d *Deque[T]) TrimFront(pred func(T) bool) {
	for d.Len() > 0 && pred(d.buf[d.head]) {
		d.buf[d.head] = zeroValue[T]()
		d.head = d.next(d.head)
	}
}

// Reverse reverses the deque in place by swapping elements pairwise around
// the logical midpoint. Applying it twice restores the original order.
func (d *Deque[T]) Reverse() {
	length := d.Len()
	if length < 2 {
		return
	}
	mask := len(d.buf) - 1
	i := d.head
	j := (d.tail - 1) & mask
	for k := 0; k < length/2; k++ {
		d.buf[i], d.buf[j] = d.buf[j], d.buf[i]
		i = (i + 1) & mask
		j = (j - 1) & mask
	}
}

// Slice returns a new, fully independent deque holding the half-open logical
// range [start, end). Negative indexes count from the back, like slicing in
// Python. Ranges that do not describe a valid non-empty interval yield an
// empty deque.
func (d *Deque[T]) Slice(start, end int) *Deque[T] {
	length := d.Len()
	if start < 0 {
		start += length
	}
	if end < 0 {
		end += length
	}
	if start < 0 || end > length || start >= end {
		return New[T]()
	}

	n := end - start
	capacity := int(xmath.RoundUpPowerOf264(uint64(n + 1)))
	if capacity < minCapacity {
		capacity = minCapacity
	}
	s := &Deque[T]{
		buf:  make([]T, capacity),
		tail: n,
	}
	mask := len(d.buf) - 1
	src := (d.head + start) & mask
	for i := 0; i < n; i++ {
		s.buf[i] = d.buf[src]
		src = (src + 1) & mask
	}
	return s
}

func (d *Deque[T]) lazyInit() {
	if d.buf == nil {
		d.buf = make([]T, minCapacity)
	}
}

func (d *Deque[T]) next(i int) int {
	return (i + 1) & (len(d.buf) - 1)
}

func (d *Deque[T]) prev(i int) int {
	return (i - 1) & (len(d.buf) - 1)
}

// resize doubles the backing array. It is called right after an insertion
// made head collide with tail, so the whole array is occupied: the contents
// are copied as two contiguous runs, head to the end of the array followed by
// the start of the array to head, and land at offset 0 of the new array.
func (d *Deque[T]) resize() {
	newBuf := make([]T, len(d.buf)<<1)
	n := copy(newBuf, d.buf[d.head:])
	copy(newBuf[n:], d.buf[:d.head])
	d.head = 0
	d.tail = len(d.buf)
	d.buf = newBuf
}
