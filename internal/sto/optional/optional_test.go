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

package optional

import "testing"

func TestSomeNone(t *testing.T) {
	s := Some(42)
	if !s.HasValue() || s.IsNull() {
		t.Fatal("Some(42) should report present")
	}
	if s.Get() != 42 {
		t.Errorf("Get() = %d, want 42", s.Get())
	}
	n := None[int]()
	if n.HasValue() || !n.IsNull() {
		t.Fatal("None() should report absent")
	}
}

func TestGetOr(t *testing.T) {
	n := None[string]()
	if n.GetOr("fallback") != "fallback" {
		t.Error("GetOr should return default on None")
	}
	s := Some("present")
	if s.GetOr("fallback") != "present" {
		t.Error("GetOr should return the wrapped value when present")
	}
}

func TestCoalesce(t *testing.T) {
	a := Some(1)
	b := Some(2)
	if Coalesce(a, b).Get() != 1 {
		t.Error("Coalesce should prefer the left value when present")
	}
	if Coalesce(None[int](), b).Get() != 2 {
		t.Error("Coalesce should fall back to the right value when left is None")
	}
}

func TestGetPanicsOnNone(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Get() on None should panic")
		}
	}()
	None[int]().Get()
}

func TestAssertPanicsWithMessage(t *testing.T) {
	defer func() {
		r := recover()
		if r != "custom message" {
			t.Errorf("Assert panic = %v, want %q", r, "custom message")
		}
	}()
	None[int]().Assert("custom message")
}
