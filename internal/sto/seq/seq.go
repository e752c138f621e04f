// Copyright 2026 MELP Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package seq implements the generic homogeneous dynamic sequence that the
// keyed state store builds on: a contiguous, order-preserving array with
// capacity-4-doubling growth.
package seq

import "fmt"

// initialCapacity is the capacity a freshly created Sequence starts with.
const initialCapacity = 4

// ErrIndexOutOfRange is the panic payload Get raises when i is out of
// bounds — a BoundsViolation, fatal the same way optional.Get on None is.
var ErrIndexOutOfRange = fmt.Errorf("seq: index out of range")

// Sequence is a dynamic, order-preserving array of T. Every mutating
// operation that accepts a value copies it into the sequence's own backing
// array. The zero value is an empty sequence that allocates on first
// growth; New preallocates the starting capacity.
type Sequence[T any] struct {
	elems []T
}

// New creates an empty sequence at the package's starting capacity.
func New[T any]() *Sequence[T] {
	return &Sequence[T]{elems: make([]T, 0, initialCapacity)}
}

// Len returns the number of elements currently stored.
func (s *Sequence[T]) Len() int {
	return len(s.elems)
}

// IsEmpty reports whether the sequence holds no elements.
func (s *Sequence[T]) IsEmpty() bool {
	return len(s.elems) == 0
}

// Get returns the element at index i, panicking with ErrIndexOutOfRange
// when i is out of bounds — bounds violations on sequence access are fatal,
// the same way optional.Get on None is.
func (s *Sequence[T]) Get(i int) T {
	if i < 0 || i >= len(s.elems) {
		panic(ErrIndexOutOfRange)
	}
	return s.elems[i]
}

// Set overwrites the element at index i with a copy of v, reporting failure
// (and leaving the sequence unmutated) when i is out of bounds.
func (s *Sequence[T]) Set(i int, v T) bool {
	if i < 0 || i >= len(s.elems) {
		return false
	}
	s.elems[i] = v
	return true
}

// grow doubles capacity when the backing array is full.
func (s *Sequence[T]) grow() {
	if len(s.elems) < cap(s.elems) {
		return
	}
	newCap := cap(s.elems) * 2
	if newCap == 0 {
		newCap = initialCapacity
	}
	grown := make([]T, len(s.elems), newCap)
	copy(grown, s.elems)
	s.elems = grown
}

// Append adds v to the end of the sequence, doubling capacity first if the
// sequence is full.
func (s *Sequence[T]) Append(v T) {
	s.grow()
	s.elems = append(s.elems, v)
}

// Prepend adds v to the front of the sequence, shifting existing elements.
func (s *Sequence[T]) Prepend(v T) {
	s.grow()
	s.elems = append(s.elems, v)
	copy(s.elems[1:], s.elems[:len(s.elems)-1])
	s.elems[0] = v
}

// Remove deletes the element at index i, preserving the order of the
// remaining elements. It reports false (no mutation) when i is out of
// bounds.
func (s *Sequence[T]) Remove(i int) bool {
	if i < 0 || i >= len(s.elems) {
		return false
	}
	s.elems = append(s.elems[:i], s.elems[i+1:]...)
	return true
}

// Clear removes every element but keeps the current capacity.
func (s *Sequence[T]) Clear() {
	s.elems = s.elems[:0]
}

// Clone returns an independent copy: mutating either sequence afterward
// never affects the other.
func (s *Sequence[T]) Clone() *Sequence[T] {
	out := &Sequence[T]{elems: make([]T, len(s.elems), cap(s.elems))}
	copy(out.elems, s.elems)
	return out
}

// Reverse reverses the sequence in place; it is its own inverse.
func (s *Sequence[T]) Reverse() {
	for l, r := 0, len(s.elems)-1; l < r; l, r = l+1, r-1 {
		s.elems[l], s.elems[r] = s.elems[r], s.elems[l]
	}
}

// Capacity returns the currently allocated capacity.
func (s *Sequence[T]) Capacity() int {
	return cap(s.elems)
}

// Reserve ensures capacity is at least n, growing the backing array once if
// necessary rather than via repeated doubling.
func (s *Sequence[T]) Reserve(n int) {
	if cap(s.elems) >= n {
		return
	}
	grown := make([]T, len(s.elems), n)
	copy(grown, s.elems)
	s.elems = grown
}

// Each iterates the sequence in order, giving the state store read-only
// access without exposing the backing slice.
func (s *Sequence[T]) Each(fn func(int, T)) {
	for i, v := range s.elems {
		fn(i, v)
	}
}
