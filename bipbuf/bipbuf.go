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

// Package bipbuf provides a bi-partite circular byte buffer.
//
// Unlike a plain ring buffer, which hands out write regions that can straddle
// the physical end of the array, a bip buffer always grants a single
// contiguous window. Committed bytes live in at most two regions: A, the
// oldest, and B, a younger region that appears only after the writer has
// wrapped around behind A. Readers always consume from A; when A is drained,
// B takes its place.
//
// The protocol is reserve, write, commit on the producer side and
// ContiguousBlock, read, DecommitBlock on the consumer side. The windows
// returned by Reserve and ContiguousBlock alias the backing array directly,
// so no copying is imposed by the buffer itself.
package bipbuf

import "errors"

var (
	// ErrIllegalCapacity means that a non-positive capacity has been passed to New.
	ErrIllegalCapacity = errors.New("capacity should be positive")
	// ErrIllegalCommitSize means that Commit was asked to finalize more bytes
	// than the outstanding reservation holds, or a negative count.
	ErrIllegalCommitSize = errors.New("commit size exceeds the reservation")
)

// Buffer is a fixed-capacity bip buffer. The capacity is chosen at
// construction and never changes.
//
// A Buffer is not safe for concurrent use by multiple goroutines without
// external synchronization. It is designed so that exactly one writer issuing
// Reserve/Commit and one reader issuing ContiguousBlock/DecommitBlock can
// share it when the caller interleaves their accesses properly.
type Buffer struct {
	buf []byte

	// Region A: the oldest committed bytes.
	startA int
	lenA   int

	// Region B: committed bytes that wrapped around behind A.
	// lenB == 0 means B does not exist.
	startB int
	lenB   int

	// The outstanding reservation. At most one at a time; a new Reserve
	// silently replaces an uncommitted one.
	startR int
	lenR   int
}

// New creates a bip buffer over a freshly allocated array of capacity bytes.
// Returns ErrIllegalCapacity if capacity is not positive.
func New(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, ErrIllegalCapacity
	}
	return &Buffer{
		buf: make([]byte, capacity),
	}, nil
}

// Reserve requests a contiguous write window of up to size bytes.
//
// Reserve is best-effort: the returned window may be shorter than requested,
// never longer. It reports false only when nothing can be granted at all,
// which is the normal, recoverable "buffer is full" condition. The caller
// writes into the window and then finalizes with Commit.
//
// Only one reservation can be outstanding. Calling Reserve again before
// Commit silently discards the previous reservation.
func (b *Buffer) Reserve(size int) ([]byte, bool) {
	if size <= 0 {
		return nil, false
	}

	if b.lenB > 0 {
		// The buffer has wrapped: the only legal placement is the gap
		// between the end of B and the start of A.
		gap := b.startA - (b.startB + b.lenB)
		if gap <= 0 {
			return nil, false
		}
		b.startR = b.startB + b.lenB
		b.lenR = min(size, gap)
		return b.buf[b.startR : b.startR+b.lenR], true
	}

	afterA := len(b.buf) - (b.startA + b.lenA)
	beforeA := b.startA
	if afterA >= beforeA {
		if afterA == 0 {
			return nil, false
		}
		b.startR = b.startA + b.lenA
		b.lenR = min(size, afterA)
	} else {
		// More free space in front of A: start a new region at the
		// physical start of the array. It becomes B once committed.
		b.startR = 0
		b.lenR = min(size, beforeA)
	}
	return b.buf[b.startR : b.startR+b.lenR], true
}

// Commit finalizes the first size bytes of the outstanding reservation,
// making them visible to the reader. Commit(0) cancels the reservation
// without committing anything.
//
// Returns ErrIllegalCommitSize if size is negative or exceeds the reserved
// length. That is a programmer error, not a capacity condition.
func (b *Buffer) Commit(size int) error {
	if size < 0 || size > b.lenR {
		return ErrIllegalCommitSize
	}

	if size == 0 {
		b.startR = 0
		b.lenR = 0
		return nil
	}

	switch {
	case b.lenA == 0 && b.lenB == 0:
		b.startA = b.startR
		b.lenA = size
	case b.startR == b.startA+b.lenA:
		// Physically adjacent to the end of A: extend it.
		b.lenA += size
	default:
		if b.lenB == 0 {
			b.startB = b.startR
		}
		b.lenB += size
	}

	b.startR = 0
	b.lenR = 0
	return nil
}

// ContiguousBlock returns the oldest committed span, region A, and reports
// whether any committed bytes exist. The returned slice aliases the backing
// array; the caller reads from it and then releases it with DecommitBlock.
func (b *Buffer) ContiguousBlock() ([]byte, bool) {
	if b.lenA == 0 {
		return nil, false
	}
	return b.buf[b.startA : b.startA+b.lenA], true
}

// DecommitBlock releases size bytes from the front of region A. Releasing
// the whole of A (or more) promotes B, if present, to become the new A.
// Non-positive sizes are ignored.
func (b *Buffer) DecommitBlock(size int) {
	if size <= 0 {
		return
	}
	if size >= b.lenA {
		b.startA = b.startB
		b.lenA = b.lenB
		b.startB = 0
		b.lenB = 0
		return
	}
	b.startA += size
	b.lenA -= size
}

// Committed returns the total number of committed bytes in both regions.
func (b *Buffer) Committed() int {
	return b.lenA + b.lenB
}

// Reserved returns the length of the outstanding reservation, zero if none.
func (b *Buffer) Reserved() int {
	return b.lenR
}

// Capacity returns the fixed size of the backing array.
func (b *Buffer) Capacity() int {
	return len(b.buf)
}

// Clear resets all region bookkeeping to the empty state. The bytes of the
// backing array are left as they are; callers that need them erased have to
// do that themselves.
func (b *Buffer) Clear() {
	b.startA = 0
	b.lenA = 0
	b.startB = 0
	b.lenB = 0
	b.startR = 0
	b.lenR = 0
}
