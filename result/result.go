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

// Package result provides small containers for carrying an operation outcome
// as a value: Result for success-or-failure and Partial for partially
// successful operations that produced both a value and an error.
package result

import "fmt"

// Result holds either a value or an error, never both. The zero value is an
// Ok result holding the zero value of T.
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a successful result holding value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err returns a failed result holding err. A nil err makes the result Ok.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// IsErr reports whether the result holds an error.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Get returns the value and the error in the usual Go shape.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// MustGet returns the value and panics if the result holds an error.
func (r Result[T]) MustGet() T {
	if r.err != nil {
		panic(fmt.Sprintf("result: MustGet on a failed result: %v", r.err))
	}
	return r.value
}

// Or returns the value, or fallback if the result holds an error.
func (r Result[T]) Or(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// Error returns the error, nil for an Ok result.
func (r Result[T]) Error() error {
	return r.err
}

// Partial holds the outcome of an operation that can succeed partially: a
// value that is meaningful even when an error occurred alongside it, e.g. the
// prefix of a batch that was processed before the failure.
type Partial[T any] struct {
	value T
	err   error
}

// Complete returns a fully successful partial result.
func Complete[T any](value T) Partial[T] {
	return Partial[T]{value: value}
}

// Incomplete returns a partial result holding both the partially produced
// value and the error that stopped the operation.
func Incomplete[T any](value T, err error) Partial[T] {
	return Partial[T]{value: value, err: err}
}

// Value returns the produced value, whether or not an error occurred.
func (p Partial[T]) Value() T {
	return p.value
}

// Err returns the error that interrupted the operation, nil if none did.
func (p Partial[T]) Err() error {
	return p.err
}

// IsComplete reports whether the operation ran to completion.
func (p Partial[T]) IsComplete() bool {
	return p.err == nil
}

// Get returns the value and the error in the usual Go shape.
func (p Partial[T]) Get() (T, error) {
	return p.value, p.err
}
