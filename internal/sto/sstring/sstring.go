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

// Package sstring implements the small-string optimization envelope for the
// surface `string` type: payloads up to 23 bytes live inline inside the
// value, longer payloads live behind an owned heap buffer, with a single
// uniform API over both representations.
package sstring

import "strconv"

// InlineCap is the largest payload length stored inline.
const InlineCap = 23

// String is the SSO envelope. Exactly one of the two representations is
// live, discriminated by the isHeap flag bit.
type String struct {
	inline [InlineCap]byte
	n      uint8 // payload length when inline
	heap   []byte
	isHeap bool
}

// New constructs a String holding a copy of data, choosing the inline
// representation when data fits in InlineCap bytes and the heap
// representation otherwise. The representation is fixed at construction and
// never migrates on later reads.
func New(data []byte) String {
	if len(data) <= InlineCap {
		var s String
		copy(s.inline[:], data)
		s.n = uint8(len(data))
		return s
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return String{heap: buf, isHeap: true}
}

// FromString is a convenience wrapper over New for Go string literals.
func FromString(s string) String {
	return New([]byte(s))
}

// Len returns the payload length.
func (s String) Len() int {
	if s.isHeap {
		return len(s.heap)
	}
	return int(s.n)
}

// Bytes returns a non-owning view of the payload. Callers must not retain it
// past the envelope's lifetime or mutate it.
func (s String) Bytes() []byte {
	if s.isHeap {
		return s.heap
	}
	return s.inline[:s.n]
}

// String implements fmt.Stringer; it copies the payload into a Go string.
func (s String) String() string {
	return string(s.Bytes())
}

// IsHeap reports which representation s uses — a test hook exposing the
// representation-choice bit (a 23-byte input has it clear, a 24-byte input
// has it set).
func (s String) IsHeap() bool {
	return s.isHeap
}

// Copy returns a deep, independently owned duplicate of s.
func (s String) Copy() String {
	return New(s.Bytes())
}

// Concat returns a new envelope holding a's payload followed by b's,
// choosing the inline representation iff the combined length fits.
func Concat(a, b String) String {
	ab := a.Bytes()
	bb := b.Bytes()
	out := make([]byte, 0, len(ab)+len(bb))
	out = append(out, ab...)
	out = append(out, bb...)
	return New(out)
}

// Compare performs a lexicographic byte compare, returning -1, 0, or 1.
func Compare(a, b String) int {
	ab, bb := a.Bytes(), b.Bytes()
	n := len(ab)
	if len(bb) < n {
		n = len(bb)
	}
	for i := 0; i < n; i++ {
		if ab[i] != bb[i] {
			if ab[i] < bb[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ab) < len(bb):
		return -1
	case len(ab) > len(bb):
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b hold byte-identical payloads.
func Equal(a, b String) bool {
	return Compare(a, b) == 0
}

// Substring returns the n bytes starting at start, clamping n to the
// available length. It returns (String{}, false) when start is out of
// range (start >= len(s)).
func Substring(s String, start, n int) (String, bool) {
	b := s.Bytes()
	if start < 0 || start >= len(b) {
		return String{}, false
	}
	if n < 0 {
		n = 0
	}
	if start+n > len(b) {
		n = len(b) - start
	}
	return New(b[start : start+n]), true
}

// FromInt64 formats v as a decimal String.
func FromInt64(v int64) String {
	return FromString(strconv.FormatInt(v, 10))
}

// ToInt64 parses s as a signed base-10 integer.
func ToInt64(s String) (int64, bool) {
	v, err := strconv.ParseInt(s.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Find returns the first byte index of needle within haystack, or -1.
func Find(haystack, needle String) int {
	h := haystack.Bytes()
	n := needle.Bytes()
	if len(n) == 0 {
		return 0
	}
	if len(n) > len(h) {
		return -1
	}
	for i := 0; i+len(n) <= len(h); i++ {
		if bytesEqual(h[i:i+len(n)], n) {
			return i
		}
	}
	return -1
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// StartsWith reports whether s begins with prefix.
func (s String) StartsWith(prefix String) bool {
	sb, pb := s.Bytes(), prefix.Bytes()
	if len(pb) > len(sb) {
		return false
	}
	return bytesEqual(sb[:len(pb)], pb)
}

// EndsWith reports whether s ends with suffix.
func (s String) EndsWith(suffix String) bool {
	sb, fb := s.Bytes(), suffix.Bytes()
	if len(fb) > len(sb) {
		return false
	}
	return bytesEqual(sb[len(sb)-len(fb):], fb)
}
