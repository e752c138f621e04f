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

package cstub

import (
	"strings"
	"testing"

	"github.com/melp-lang/melpc/internal/codegen"
)

// runtimeStubs mirrors the shape of runtime/stdlib/mlp_map.h's declarations
// as trivial function definitions, since the C parser only walks function
// definitions (see package doc).
const runtimeStubs = `
long melp_map_insert(long map, long key, long value) { return 0; }
long melp_map_get(long map, long key) { return 0; }
void melp_map_free(long map) { }
`

func TestParsePrototypes(t *testing.T) {
	sigs, err := ParsePrototypes(runtimeStubs)
	if err != nil {
		t.Fatalf("ParsePrototypes: %v", err)
	}
	if len(sigs) != 3 {
		t.Fatalf("got %d signatures, want 3: %+v", len(sigs), sigs)
	}
	want := map[string]string{
		"melp_map_insert": "long",
		"melp_map_get":    "long",
		"melp_map_free":   "void",
	}
	for _, s := range sigs {
		if want[s.Name] != s.ReturnType {
			t.Errorf("signature %s: return type %q, want %q", s.Name, s.ReturnType, want[s.Name])
		}
	}
}

// TestExternsMatchCodegenTable builds a stub translation unit out of
// codegen.Externs itself and checks ParsePrototypes finds exactly that set,
// so the two tables cannot silently drift apart.
func TestExternsMatchCodegenTable(t *testing.T) {
	var src strings.Builder
	for _, name := range codegen.Externs {
		src.WriteString("long " + name + "(long a, long b) { return 0; }\n")
	}
	sigs, err := ParsePrototypes(src.String())
	if err != nil {
		t.Fatalf("ParsePrototypes: %v", err)
	}
	if len(sigs) != len(codegen.Externs) {
		t.Fatalf("got %d signatures, want %d", len(sigs), len(codegen.Externs))
	}
	want := make(map[string]bool, len(codegen.Externs))
	for _, name := range codegen.Externs {
		want[name] = true
	}
	for _, s := range sigs {
		if !want[s.Name] {
			t.Errorf("unexpected signature %s not in codegen.Externs", s.Name)
		}
	}
}
