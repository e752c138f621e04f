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

package parser

import (
	"strings"
	"testing"

	"github.com/melp-lang/melpc/internal/lang/ast"
)

func TestParseFactorial(t *testing.T) {
	src := "function factorial(numeric n) as numeric\n" +
		"  if n <= 1 then\n" +
		"    return 1\n" +
		"  else\n" +
		"    return n * factorial(n - 1)\n" +
		"  end_if\n" +
		"end_function\n"

	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Funcs) != 1 {
		t.Fatalf("got %d funcs, want 1", len(prog.Funcs))
	}
	fn := prog.Funcs[0]
	if fn.Name != "factorial" {
		t.Errorf("Name = %q, want factorial", fn.Name)
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "n" || fn.Params[0].Type.Name != "numeric" {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
	if fn.ReturnType.Name != "numeric" || fn.ReturnType.Optional {
		t.Errorf("ReturnType = %+v, want numeric", fn.ReturnType)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("got %d top-level statements, want 1 (the if)", len(fn.Body))
	}

	ifStmt, ok := fn.Body[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.IfStmt", fn.Body[0])
	}
	cond, ok := ifStmt.Cond.(*ast.BinaryExpr)
	if !ok || cond.Op != ast.OpLtEq {
		t.Fatalf("Cond = %+v, want n <= 1", ifStmt.Cond)
	}
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Fatalf("then/else lengths = %d/%d, want 1/1", len(ifStmt.Then), len(ifStmt.Else))
	}

	thenRet, ok := ifStmt.Then[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("Then[0] = %T, want *ast.ReturnStmt", ifStmt.Then[0])
	}
	if lit, ok := thenRet.Expr.(*ast.IntLit); !ok || lit.Text != "1" {
		t.Errorf("then return = %+v, want int literal 1", thenRet.Expr)
	}

	elseRet, ok := ifStmt.Else[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("Else[0] = %T, want *ast.ReturnStmt", ifStmt.Else[0])
	}
	mul, ok := elseRet.Expr.(*ast.BinaryExpr)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("else return = %+v, want n * factorial(n - 1)", elseRet.Expr)
	}
	if _, ok := mul.Left.(*ast.Ident); !ok {
		t.Errorf("mul.Left = %T, want *ast.Ident", mul.Left)
	}
	call, ok := mul.Right.(*ast.CallExpr)
	if !ok || call.Callee != "factorial" {
		t.Fatalf("mul.Right = %+v, want call to factorial", mul.Right)
	}
	if len(call.Args) != 1 {
		t.Fatalf("got %d call args, want 1", len(call.Args))
	}
	sub, ok := call.Args[0].(*ast.BinaryExpr)
	if !ok || sub.Op != ast.OpSub {
		t.Errorf("call arg = %+v, want n - 1", call.Args[0])
	}
}

func TestParseLetAndCoalesce(t *testing.T) {
	src := "function f() as numeric\n" +
		"  numeric x = 5\n" +
		"  return x ?? 0\n" +
		"end_function\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn := prog.Funcs[0]
	if len(fn.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(fn.Body))
	}
	let, ok := fn.Body[0].(*ast.LetStmt)
	if !ok || let.Name != "x" || let.Type.Name != "numeric" {
		t.Fatalf("Body[0] = %+v, want let x", fn.Body[0])
	}
	ret, ok := fn.Body[1].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("Body[1] = %T, want *ast.ReturnStmt", fn.Body[1])
	}
	if _, ok := ret.Expr.(*ast.CoalesceExpr); !ok {
		t.Errorf("return expr = %T, want *ast.CoalesceExpr", ret.Expr)
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := Parse("function f( as numeric\nend_function\n")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	// "as" sits at line 1, column 13, where a parameter type was expected.
	if !strings.HasPrefix(err.Error(), "1:13:") {
		t.Errorf("error = %q, want it to start with position 1:13:", err)
	}
}

func TestParseOptionalReturnType(t *testing.T) {
	src := "function g() as numeric?\n" +
		"  return 1\n" +
		"end_function\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !prog.Funcs[0].ReturnType.Optional {
		t.Errorf("ReturnType.Optional = false, want true")
	}
}

func TestFuncNamesAndFindFunc(t *testing.T) {
	src := "function a() as numeric\n  return 1\nend_function\n" +
		"function b() as numeric\n  return 2\nend_function\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	names := prog.FuncNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("FuncNames = %v, want [a b]", names)
	}
	if prog.FindFunc("b") == nil {
		t.Error("FindFunc(b) = nil, want match")
	}
	if prog.FindFunc("missing") != nil {
		t.Error("FindFunc(missing) should be nil")
	}
}
