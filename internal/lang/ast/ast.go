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

// Package ast defines the syntax tree internal/lang/parser produces and
// internal/lang/sema and internal/codegen consume.
package ast

import "github.com/samber/lo"

// Type is a surface type reference: one of the three scalar names, with
// Optional set when the surface spelling carried a trailing "?".
type Type struct {
	Name     string // "numeric", "string", or "boolean"
	Optional bool
}

func (t Type) String() string {
	if t.Optional {
		return t.Name + "?"
	}
	return t.Name
}

// Param is one function parameter.
type Param struct {
	Type Type
	Name string
}

// FuncDecl is a top-level function declaration.
type FuncDecl struct {
	Name       string
	Params     []Param
	ReturnType Type
	Body       []Stmt
	Line       int
}

// Program is the root of the tree: an ordered list of function
// declarations.
type Program struct {
	Funcs []*FuncDecl
}

// FuncNames returns every declared function name, using github.com/samber/lo
// the way this codebase's other slice transforms do.
func (p *Program) FuncNames() []string {
	return lo.Map(p.Funcs, func(f *FuncDecl, _ int) string { return f.Name })
}

// FindFunc returns the declaration named name, or nil.
func (p *Program) FindFunc(name string) *FuncDecl {
	match, ok := lo.Find(p.Funcs, func(f *FuncDecl) bool { return f.Name == name })
	if !ok {
		return nil
	}
	return match
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
}

// LetStmt declares a typed local and initializes it: `numeric x = expr`.
type LetStmt struct {
	Type Type
	Name string
	Expr Expr
	Line int
}

// ReturnStmt returns Expr's value from the enclosing function.
type ReturnStmt struct {
	Expr Expr
	Line int
}

// IfStmt is `if Cond then Then [else Else] end_if`.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Line int
}

// ExprStmt evaluates Expr for its side effects (e.g. a bare call).
type ExprStmt struct {
	Expr Expr
	Line int
}

func (*LetStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}
func (*ExprStmt) stmtNode()   {}

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
}

// IntLit is an integer literal's raw text, deferred to internal/sto/numeric
// for tag inference.
type IntLit struct {
	Text string
	Line int
}

// FloatLit is a float literal's raw text.
type FloatLit struct {
	Text string
	Line int
}

// StringLit is a decoded string literal.
type StringLit struct {
	Value string
	Line  int
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
	Line  int
}

// Ident references a parameter or local variable by name.
type Ident struct {
	Name string
	Line int
}

// BinOp identifies a binary operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
)

// BinaryExpr is `Left Op Right`.
type BinaryExpr struct {
	Op    BinOp
	Left  Expr
	Right Expr
	Line  int
}

// CallExpr is `Callee(Args...)`.
type CallExpr struct {
	Callee string
	Args   []Expr
	Line   int
}

// IndexExpr is `Base[Index]`.
type IndexExpr struct {
	Base  Expr
	Index Expr
	Line  int
}

// CoalesceExpr is `Left ?? Right`.
type CoalesceExpr struct {
	Left  Expr
	Right Expr
	Line  int
}

func (*IntLit) exprNode()       {}
func (*FloatLit) exprNode()     {}
func (*StringLit) exprNode()    {}
func (*BoolLit) exprNode()      {}
func (*Ident) exprNode()        {}
func (*BinaryExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}
func (*IndexExpr) exprNode()    {}
func (*CoalesceExpr) exprNode() {}
