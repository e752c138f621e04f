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

// Package sema performs semantic analysis over an *ast.Program before
// internal/codegen runs, the same gate the retrieved C reference
// implementation's analyze_program step applies ahead of code generation.
package sema

import (
	"fmt"

	"github.com/melp-lang/melpc/internal/lang/ast"
)

// scalarTypes are the only type names the surface grammar admits.
var scalarTypes = map[string]bool{
	"numeric": true,
	"string":  true,
	"boolean": true,
}

// Error is a single semantic diagnostic, carrying the offending line.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Line, e.Msg)
}

// scope tracks the locals (parameters and let-bindings) visible at a point
// in a function body, so references are rejected unless something earlier
// in program order introduced them.
type scope struct {
	vars map[string]ast.Type
}

func newScope() *scope {
	return &scope{vars: make(map[string]ast.Type)}
}

func (s *scope) declare(name string, ty ast.Type) {
	s.vars[name] = ty
}

func (s *scope) lookup(name string) (ast.Type, bool) {
	ty, ok := s.vars[name]
	return ty, ok
}

// Checker resolves an *ast.Program's types and call graph.
type Checker struct {
	prog  *ast.Program
	funcs map[string]*ast.FuncDecl
}

// Check runs full semantic analysis over prog, returning every diagnostic
// found rather than stopping at the first. When a function name is declared
// more than once, only the redeclaration diagnostics are returned and no
// function body is checked.
func Check(prog *ast.Program) []error {
	c := &Checker{prog: prog, funcs: make(map[string]*ast.FuncDecl)}
	var errs []error

	for _, fn := range prog.Funcs {
		if _, dup := c.funcs[fn.Name]; dup {
			errs = append(errs, &Error{Line: fn.Line, Msg: fmt.Sprintf("function %q redeclared", fn.Name)})
			continue
		}
		c.funcs[fn.Name] = fn
	}
	if len(errs) > 0 {
		return errs
	}

	for _, fn := range prog.Funcs {
		errs = append(errs, c.checkFunc(fn)...)
	}
	return errs
}

func (c *Checker) checkFunc(fn *ast.FuncDecl) []error {
	var errs []error
	if !scalarTypes[fn.ReturnType.Name] {
		errs = append(errs, &Error{Line: fn.Line, Msg: fmt.Sprintf("unknown return type %q", fn.ReturnType.Name)})
	}

	sc := newScope()
	for _, p := range fn.Params {
		if !scalarTypes[p.Type.Name] {
			errs = append(errs, &Error{Line: fn.Line, Msg: fmt.Sprintf("parameter %q has unknown type %q", p.Name, p.Type.Name)})
		}
		sc.declare(p.Name, p.Type)
	}

	errs = append(errs, c.checkBlock(fn.Body, sc)...)
	return errs
}

func (c *Checker) checkBlock(stmts []ast.Stmt, sc *scope) []error {
	var errs []error
	for _, stmt := range stmts {
		errs = append(errs, c.checkStmt(stmt, sc)...)
	}
	return errs
}

func (c *Checker) checkStmt(stmt ast.Stmt, sc *scope) []error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		var errs []error
		if !scalarTypes[s.Type.Name] {
			errs = append(errs, &Error{Line: s.Line, Msg: fmt.Sprintf("local %q has unknown type %q", s.Name, s.Type.Name)})
		}
		errs = append(errs, c.checkExpr(s.Expr, sc)...)
		// The local only becomes visible to statements that follow its
		// declaration, matching a single forward-scan analysis pass.
		sc.declare(s.Name, s.Type)
		return errs
	case *ast.ReturnStmt:
		return c.checkExpr(s.Expr, sc)
	case *ast.IfStmt:
		var errs []error
		errs = append(errs, c.checkExpr(s.Cond, sc)...)
		thenScope := &scope{vars: cloneVars(sc.vars)}
		errs = append(errs, c.checkBlock(s.Then, thenScope)...)
		elseScope := &scope{vars: cloneVars(sc.vars)}
		errs = append(errs, c.checkBlock(s.Else, elseScope)...)
		return errs
	case *ast.ExprStmt:
		return c.checkExpr(s.Expr, sc)
	default:
		return []error{&Error{Msg: fmt.Sprintf("unhandled statement type %T", stmt)}}
	}
}

func cloneVars(vars map[string]ast.Type) map[string]ast.Type {
	out := make(map[string]ast.Type, len(vars))
	for k, v := range vars {
		out[k] = v
	}
	return out
}

func (c *Checker) checkExpr(expr ast.Expr, sc *scope) []error {
	switch e := expr.(type) {
	case *ast.IntLit, *ast.FloatLit, *ast.StringLit, *ast.BoolLit:
		return nil
	case *ast.Ident:
		if _, ok := sc.lookup(e.Name); !ok {
			return []error{&Error{Line: e.Line, Msg: fmt.Sprintf("undefined identifier %q", e.Name)}}
		}
		return nil
	case *ast.BinaryExpr:
		var errs []error
		errs = append(errs, c.checkExpr(e.Left, sc)...)
		errs = append(errs, c.checkExpr(e.Right, sc)...)
		return errs
	case *ast.CoalesceExpr:
		var errs []error
		errs = append(errs, c.checkExpr(e.Left, sc)...)
		errs = append(errs, c.checkExpr(e.Right, sc)...)
		return errs
	case *ast.IndexExpr:
		var errs []error
		errs = append(errs, c.checkExpr(e.Base, sc)...)
		errs = append(errs, c.checkExpr(e.Index, sc)...)
		return errs
	case *ast.CallExpr:
		return c.checkCall(e, sc)
	default:
		return []error{&Error{Msg: fmt.Sprintf("unhandled expression type %T", expr)}}
	}
}

func (c *Checker) checkCall(call *ast.CallExpr, sc *scope) []error {
	var errs []error
	for _, arg := range call.Args {
		errs = append(errs, c.checkExpr(arg, sc)...)
	}
	callee, ok := c.funcs[call.Callee]
	if !ok {
		errs = append(errs, &Error{Line: call.Line, Msg: fmt.Sprintf("call to undeclared function %q", call.Callee)})
		return errs
	}
	if len(call.Args) != len(callee.Params) {
		errs = append(errs, &Error{
			Line: call.Line,
			Msg:  fmt.Sprintf("function %q expects %d argument(s), got %d", call.Callee, len(callee.Params), len(call.Args)),
		})
	}
	return errs
}
