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

package sstring

import "testing"

func TestLenAndBytesRoundTrip(t *testing.T) {
	tests := []string{"", "hi", "exactly 23 bytes here!!", "payload of 24 bytes here"}
	for _, s := range tests {
		v := FromString(s)
		if v.Len() != len(s) {
			t.Errorf("Len(%q) = %d, want %d", s, v.Len(), len(s))
		}
		if v.String() != s {
			t.Errorf("String() = %q, want %q", v.String(), s)
		}
	}
}

func TestRepresentationChoice(t *testing.T) {
	s23 := FromString("12345678901234567890123") // 23 bytes
	if len(s23.String()) != 23 {
		t.Fatalf("fixture wrong length: %d", len(s23.String()))
	}
	if s23.IsHeap() {
		t.Error("23-byte payload should be inline (flag bit clear)")
	}
	s24 := FromString("123456789012345678901234") // 24 bytes
	if !s24.IsHeap() {
		t.Error("24-byte payload should be heap (flag bit set)")
	}
}

func TestConcat(t *testing.T) {
	a := FromString("This is a longer")
	b := FromString(" string example")
	got := Concat(a, b)
	want := "This is a longer string example"
	if got.String() != want {
		t.Errorf("Concat = %q, want %q", got.String(), want)
	}
	if !got.IsHeap() {
		t.Error("concat result longer than 23 bytes should be heap")
	}
}

func TestConcatStaysInlineWhenShort(t *testing.T) {
	got := Concat(FromString("ab"), FromString("cd"))
	if got.IsHeap() {
		t.Error("short concat result should stay inline")
	}
	if got.String() != "abcd" {
		t.Errorf("Concat = %q, want abcd", got.String())
	}
}

func TestCompareEqual(t *testing.T) {
	if Compare(FromString("abc"), FromString("abd")) >= 0 {
		t.Error("abc should sort before abd")
	}
	if !Equal(FromString("same"), FromString("same")) {
		t.Error("identical payloads should be equal")
	}
}

func TestSubstringClamping(t *testing.T) {
	s := FromString("hello")
	got, ok := Substring(s, 0, 100)
	if !ok || got.String() != "hello" {
		t.Errorf("Substring clamp = %q, %v; want hello, true", got.String(), ok)
	}
	_, ok = Substring(s, 5, 1)
	if ok {
		t.Error("Substring with start == len(s) should fail")
	}
	mid, ok := Substring(s, 1, 3)
	if !ok || mid.String() != "ell" {
		t.Errorf("Substring(1,3) = %q, %v; want ell, true", mid.String(), ok)
	}
}

func TestFromToInt64(t *testing.T) {
	s := FromInt64(-4200)
	if s.String() != "-4200" {
		t.Errorf("FromInt64(-4200) = %q", s.String())
	}
	v, ok := ToInt64(s)
	if !ok || v != -4200 {
		t.Errorf("ToInt64 = %d, %v; want -4200, true", v, ok)
	}
	if _, ok := ToInt64(FromString("not a number")); ok {
		t.Error("ToInt64 should fail on non-numeric text")
	}
}

func TestFind(t *testing.T) {
	h := FromString("hello world")
	if idx := Find(h, FromString("world")); idx != 6 {
		t.Errorf("Find(world) = %d, want 6", idx)
	}
	if idx := Find(h, FromString("xyz")); idx != -1 {
		t.Errorf("Find(xyz) = %d, want -1", idx)
	}
	if idx := Find(h, FromString("")); idx != 0 {
		t.Errorf("Find(\"\") = %d, want 0", idx)
	}
}

func TestStartsEndsWith(t *testing.T) {
	s := FromString("filename.txt")
	if !s.StartsWith(FromString("file")) {
		t.Error("expected StartsWith(file)")
	}
	if !s.EndsWith(FromString(".txt")) {
		t.Error("expected EndsWith(.txt)")
	}
	if s.StartsWith(FromString("this is way too long")) {
		t.Error("StartsWith with longer prefix should be false")
	}
}

func TestCopyIsIndependent(t *testing.T) {
	orig := FromString("this is a heap-backed string value")
	dup := orig.Copy()
	if !Equal(orig, dup) {
		t.Error("copy should be byte-equal to original")
	}
	// Mutating the original's heap buffer (if any) must not affect dup.
	if orig.isHeap {
		orig.heap[0] = 'X'
		if dup.Bytes()[0] == 'X' {
			t.Error("copy shares storage with original")
		}
	}
}
