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

package sema

import (
	"testing"

	"github.com/melp-lang/melpc/internal/lang/ast"
	"github.com/melp-lang/melpc/internal/lang/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return prog
}

func TestCheckFactorialIsClean(t *testing.T) {
	src := "function factorial(numeric n) as numeric\n" +
		"  if n <= 1 then\n" +
		"    return 1\n" +
		"  else\n" +
		"    return n * factorial(n - 1)\n" +
		"  end_if\n" +
		"end_function\n"
	prog := mustParse(t, src)
	if errs := Check(prog); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestCheckRejectsUndefinedIdent(t *testing.T) {
	src := "function f() as numeric\n  return missing\nend_function\n"
	prog := mustParse(t, src)
	errs := Check(prog)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
}

func TestCheckRejectsUseBeforeDeclaration(t *testing.T) {
	src := "function f() as numeric\n" +
		"  numeric x = y\n" +
		"  numeric y = 1\n" +
		"  return x\n" +
		"end_function\n"
	prog := mustParse(t, src)
	errs := Check(prog)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1 (y used before declared): %v", len(errs), errs)
	}
}

func TestCheckRejectsArityMismatch(t *testing.T) {
	src := "function f(numeric a) as numeric\n  return a\nend_function\n" +
		"function g() as numeric\n  return f(1, 2)\nend_function\n"
	prog := mustParse(t, src)
	errs := Check(prog)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1 (arity mismatch): %v", len(errs), errs)
	}
}

func TestCheckRejectsUndeclaredCallee(t *testing.T) {
	src := "function f() as numeric\n  return ghost(1)\nend_function\n"
	prog := mustParse(t, src)
	errs := Check(prog)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1 (undeclared function): %v", len(errs), errs)
	}
}

func TestCheckRejectsDuplicateFunction(t *testing.T) {
	src := "function f() as numeric\n  return 1\nend_function\n" +
		"function f() as numeric\n  return 2\nend_function\n"
	prog := mustParse(t, src)
	errs := Check(prog)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1 (duplicate function): %v", len(errs), errs)
	}
}

func TestCheckAllowsMutualRecursionAcrossFunctions(t *testing.T) {
	src := "function isEven(numeric n) as boolean\n" +
		"  if n == 0 then\n    return true\n  else\n    return isOdd(n - 1)\n  end_if\n" +
		"end_function\n" +
		"function isOdd(numeric n) as boolean\n" +
		"  if n == 0 then\n    return false\n  else\n    return isEven(n - 1)\n  end_if\n" +
		"end_function\n"
	prog := mustParse(t, src)
	if errs := Check(prog); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestCheckIfBranchesDoNotLeakLocals(t *testing.T) {
	src := "function f(numeric n) as numeric\n" +
		"  if n == 0 then\n    numeric x = 1\n  else\n    numeric y = 2\n  end_if\n" +
		"  return x\n" +
		"end_function\n"
	prog := mustParse(t, src)
	errs := Check(prog)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1 (x out of scope after if): %v", len(errs), errs)
	}
}
