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

package ast

import "testing"

func TestProgramFuncNamesAndFindFunc(t *testing.T) {
	prog := &Program{Funcs: []*FuncDecl{
		{Name: "factorial", ReturnType: Type{Name: "numeric"}},
		{Name: "greet", ReturnType: Type{Name: "string", Optional: true}},
	}}

	names := prog.FuncNames()
	if len(names) != 2 || names[0] != "factorial" || names[1] != "greet" {
		t.Fatalf("FuncNames = %v, want [factorial greet]", names)
	}

	if fn := prog.FindFunc("greet"); fn == nil || fn.ReturnType.Name != "string" {
		t.Errorf("FindFunc(greet) = %+v, want greet with string return type", fn)
	}
	if prog.FindFunc("nope") != nil {
		t.Error("FindFunc(nope) should be nil")
	}
}

func TestTypeString(t *testing.T) {
	if got := (Type{Name: "numeric"}).String(); got != "numeric" {
		t.Errorf("String() = %q, want numeric", got)
	}
	if got := (Type{Name: "numeric", Optional: true}).String(); got != "numeric?" {
		t.Errorf("String() = %q, want numeric?", got)
	}
}
