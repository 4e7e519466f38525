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

// Package closer provides a list that owns io.Closers and releases them all
// at once.
package closer

import (
	"errors"
	"io"
)

// List accumulates closers and closes them together. It implements io.Closer
// itself, so lists can own other lists.
//
// A List is not safe for concurrent use by multiple goroutines.
type List struct {
	closers []io.Closer
	closed  bool
}

// NewList returns an empty list, optionally seeded with closers.
func NewList(closers ...io.Closer) *List {
	return &List{
		closers: closers,
	}
}

// Append adds closers to the list. They are closed by the next Close call,
// even if the list was closed before.
func (l *List) Append(closers ...io.Closer) {
	l.closers = append(l.closers, closers...)
	if len(closers) > 0 {
		l.closed = false
	}
}

// Len returns the number of closers the list currently owns.
func (l *List) Len() int {
	return len(l.closers)
}

// Close closes every owned closer in the order they were appended, even when
// some of them fail, and returns the joined errors. A second Close without
// new appends is a no-op.
func (l *List) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	var errs []error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.closers = nil
	return errors.Join(errs...)
}
