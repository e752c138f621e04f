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

// Package codegen walks an *ast.Program and emits textual LLVM IR,
// declaring extern signatures for the runtime entry points the sto
// packages back and constant-folding literal arithmetic at compile time
// where every operand is already known.
package codegen

import (
	"fmt"
	"strings"

	"github.com/melp-lang/melpc/internal/lang/ast"
	"github.com/melp-lang/melpc/internal/sto/numeric"
)

// Externs lists the runtime entry points codegen emits a `declare` line
// for, by LLVM symbol name. Generated bodies also call further runtime
// helpers (literal boxing, comparisons, coalesce, indexing) that have no
// entry here and so get no `declare` line.
// internal/cstub.ParsePrototypes checks a stub translation unit built from
// this same name list so the two never drift apart.
var Externs = []string{
	"melp_numeric_add",
	"melp_numeric_sub",
	"melp_numeric_mul",
	"melp_numeric_div",
	"melp_sstring_concat",
	"melp_seq_append",
	"melp_hashmap_get",
	"melp_state_set",
}

// llvmType maps a surface type name to its LLVM IR spelling. Every scalar
// is a pointer to a runtime-owned boxed value; only the i1/void shapes
// codegen needs internally are unboxed.
func llvmType(t ast.Type) string {
	return "ptr"
}

// Generate compiles prog into an LLVM IR text module.
func Generate(prog *ast.Program) (string, error) {
	var b strings.Builder
	b.WriteString("; generated by melpc, do not edit\n\n")
	for _, name := range Externs {
		fmt.Fprintf(&b, "declare ptr @%s(ptr, ptr)\n", name)
	}
	b.WriteString("\n")

	for _, fn := range prog.Funcs {
		g := &funcGen{out: &b}
		if err := g.emit(fn); err != nil {
			return "", fmt.Errorf("codegen: function %q: %w", fn.Name, err)
		}
	}
	return b.String(), nil
}

type funcGen struct {
	out    *strings.Builder
	tmp    int
	locals map[string]string // surface name -> SSA register
}

func (g *funcGen) newTemp() string {
	g.tmp++
	return fmt.Sprintf("%%t%d", g.tmp)
}

func (g *funcGen) emit(fn *ast.FuncDecl) error {
	g.locals = make(map[string]string)

	var params []string
	for _, p := range fn.Params {
		reg := "%" + p.Name
		params = append(params, fmt.Sprintf("%s %s", llvmType(p.Type), reg))
		g.locals[p.Name] = reg
	}
	fmt.Fprintf(g.out, "define %s @%s(%s) {\n", llvmType(fn.ReturnType), fn.Name, strings.Join(params, ", "))
	fmt.Fprintf(g.out, "entry:\n")

	for _, stmt := range fn.Body {
		if err := g.emitStmt(stmt); err != nil {
			return err
		}
	}
	g.out.WriteString("}\n\n")
	return nil
}

func (g *funcGen) emitStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		reg, err := g.emitExpr(s.Expr)
		if err != nil {
			return err
		}
		g.locals[s.Name] = reg
		return nil
	case *ast.ReturnStmt:
		reg, err := g.emitExpr(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintf(g.out, "  ret ptr %s\n", reg)
		return nil
	case *ast.IfStmt:
		return g.emitIf(s)
	case *ast.ExprStmt:
		_, err := g.emitExpr(s.Expr)
		return err
	default:
		return fmt.Errorf("unhandled statement type %T", stmt)
	}
}

func (g *funcGen) emitIf(s *ast.IfStmt) error {
	cond, err := g.emitExpr(s.Cond)
	if err != nil {
		return err
	}
	thenLabel := fmt.Sprintf("if.then%d", g.tmp)
	elseLabel := fmt.Sprintf("if.else%d", g.tmp)
	endLabel := fmt.Sprintf("if.end%d", g.tmp)
	g.tmp++

	truthy := g.newTemp()
	fmt.Fprintf(g.out, "  %s = icmp ne ptr %s, null\n", truthy, cond)
	fmt.Fprintf(g.out, "  br i1 %s, label %%%s, label %%%s\n", truthy, thenLabel, elseLabel)

	fmt.Fprintf(g.out, "%s:\n", thenLabel)
	for _, stmt := range s.Then {
		if err := g.emitStmt(stmt); err != nil {
			return err
		}
	}
	fmt.Fprintf(g.out, "  br label %%%s\n", endLabel)

	fmt.Fprintf(g.out, "%s:\n", elseLabel)
	for _, stmt := range s.Else {
		if err := g.emitStmt(stmt); err != nil {
			return err
		}
	}
	fmt.Fprintf(g.out, "  br label %%%s\n", endLabel)

	fmt.Fprintf(g.out, "%s:\n", endLabel)
	return nil
}

// emitExpr lowers expr to a value, returning the SSA register (or constant
// reference) holding the result. `+`, `-` and `*` over two integer literal
// operands fold through internal/sto/numeric directly, the same way a
// hosted optimizer would constant-fold before emitting IR; anything else
// defers to a runtime call.
func (g *funcGen) emitExpr(expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		reg := g.newTemp()
		fmt.Fprintf(g.out, "  %s = call ptr @melp_numeric_from_i64(i64 %s)\n", reg, e.Text)
		return reg, nil
	case *ast.FloatLit:
		reg := g.newTemp()
		fmt.Fprintf(g.out, "  %s = call ptr @melp_numeric_from_f64(double %s)\n", reg, e.Text)
		return reg, nil
	case *ast.StringLit:
		reg := g.newTemp()
		fmt.Fprintf(g.out, "  %s = call ptr @melp_sstring_from_literal(ptr @.str.%d)\n", reg, g.tmp)
		return reg, nil
	case *ast.BoolLit:
		reg := g.newTemp()
		v := 0
		if e.Value {
			v = 1
		}
		fmt.Fprintf(g.out, "  %s = call ptr @melp_bool_from_i1(i1 %d)\n", reg, v)
		return reg, nil
	case *ast.Ident:
		reg, ok := g.locals[e.Name]
		if !ok {
			return "", fmt.Errorf("line %d: undefined identifier %q reached codegen", e.Line, e.Name)
		}
		return reg, nil
	case *ast.BinaryExpr:
		return g.emitBinary(e)
	case *ast.CoalesceExpr:
		return g.emitCoalesce(e)
	case *ast.CallExpr:
		return g.emitCall(e)
	case *ast.IndexExpr:
		base, err := g.emitExpr(e.Base)
		if err != nil {
			return "", err
		}
		idx, err := g.emitExpr(e.Index)
		if err != nil {
			return "", err
		}
		reg := g.newTemp()
		fmt.Fprintf(g.out, "  %s = call ptr @melp_seq_get(ptr %s, ptr %s)\n", reg, base, idx)
		return reg, nil
	default:
		return "", fmt.Errorf("unhandled expression type %T", expr)
	}
}

func (g *funcGen) emitBinary(e *ast.BinaryExpr) (string, error) {
	if folded, ok := foldConstant(e); ok {
		reg := g.newTemp()
		fmt.Fprintf(g.out, "  %s = call ptr @melp_numeric_from_literal(ptr @.lit.%d)\n", reg, g.tmp)
		fmt.Fprintf(g.out, "  ; folded constant: %s\n", folded)
		return reg, nil
	}

	left, err := g.emitExpr(e.Left)
	if err != nil {
		return "", err
	}
	right, err := g.emitExpr(e.Right)
	if err != nil {
		return "", err
	}
	callee, ok := runtimeOpName(e.Op)
	if !ok {
		return "", fmt.Errorf("line %d: unsupported operator in codegen", e.Line)
	}
	reg := g.newTemp()
	fmt.Fprintf(g.out, "  %s = call ptr @%s(ptr %s, ptr %s)\n", reg, callee, left, right)
	return reg, nil
}

func (g *funcGen) emitCoalesce(e *ast.CoalesceExpr) (string, error) {
	left, err := g.emitExpr(e.Left)
	if err != nil {
		return "", err
	}
	right, err := g.emitExpr(e.Right)
	if err != nil {
		return "", err
	}
	reg := g.newTemp()
	fmt.Fprintf(g.out, "  %s = call ptr @melp_optional_coalesce(ptr %s, ptr %s)\n", reg, left, right)
	return reg, nil
}

func (g *funcGen) emitCall(e *ast.CallExpr) (string, error) {
	var args []string
	for _, a := range e.Args {
		reg, err := g.emitExpr(a)
		if err != nil {
			return "", err
		}
		args = append(args, "ptr "+reg)
	}
	reg := g.newTemp()
	fmt.Fprintf(g.out, "  %s = call ptr @%s(%s)\n", reg, e.Callee, strings.Join(args, ", "))
	return reg, nil
}

func runtimeOpName(op ast.BinOp) (string, bool) {
	switch op {
	case ast.OpAdd:
		return "melp_numeric_add", true
	case ast.OpSub:
		return "melp_numeric_sub", true
	case ast.OpMul:
		return "melp_numeric_mul", true
	case ast.OpDiv:
		return "melp_numeric_div", true
	case ast.OpEq:
		return "melp_numeric_eq", true
	case ast.OpNotEq:
		return "melp_numeric_neq", true
	case ast.OpLt:
		return "melp_numeric_lt", true
	case ast.OpLtEq:
		return "melp_numeric_lte", true
	case ast.OpGt:
		return "melp_numeric_gt", true
	case ast.OpGtEq:
		return "melp_numeric_gte", true
	default:
		return "", false
	}
}

// foldConstant evaluates e at compile time through internal/sto/numeric
// when both operands are integer literals and the operator is arithmetic,
// returning the folded literal text.
func foldConstant(e *ast.BinaryExpr) (string, bool) {
	leftLit, ok := e.Left.(*ast.IntLit)
	if !ok {
		return "", false
	}
	rightLit, ok := e.Right.(*ast.IntLit)
	if !ok {
		return "", false
	}
	left, err := numeric.FromLiteral(leftLit.Text)
	if err != nil {
		return "", false
	}
	right, err := numeric.FromLiteral(rightLit.Text)
	if err != nil {
		return "", false
	}

	var result numeric.Value
	switch e.Op {
	case ast.OpAdd:
		result = numeric.Add(left, right)
	case ast.OpSub:
		result = numeric.Sub(left, right)
	case ast.OpMul:
		result = numeric.Mul(left, right)
	default:
		return "", false
	}
	return result.String(), true
}
