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

// Package parser implements a recursive-descent parser for MELP source,
// one function per grammar production, grounded on the retrieved reference
// implementation's demo parser (function/end_function bodies containing
// if/then/else/end_if and return statements over a small expression
// grammar).
package parser

import (
	"fmt"

	"github.com/melp-lang/melpc/internal/lang/ast"
	"github.com/melp-lang/melpc/internal/lang/lexer"
	"github.com/melp-lang/melpc/internal/lang/token"
)

// Parser holds the one-token lookahead state over a lexer.Lexer.
type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	next token.Token
}

// Parse tokenizes and parses src into an *ast.Program.
func Parse(src string) (*ast.Program, error) {
	p := &Parser{lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func (p *Parser) advance() error {
	p.cur = p.next
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.next = tok
	return nil
}

func (p *Parser) errf(format string, args ...any) error {
	return fmt.Errorf("%d:%d: "+format, append([]any{p.cur.Line, p.cur.Col}, args...)...)
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.cur.Kind != k {
		return token.Token{}, p.errf("expected %v, got %v", k, p.cur.Kind)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.cur.Kind != token.EOF {
		fn, err := p.parseFuncDecl()
		if err != nil {
			return nil, err
		}
		prog.Funcs = append(prog.Funcs, fn)
	}
	return prog, nil
}

func (p *Parser) parseType() (ast.Type, error) {
	var name string
	switch p.cur.Kind {
	case token.KwNumeric:
		name = "numeric"
	case token.KwString:
		name = "string"
	case token.KwBoolean:
		name = "boolean"
	default:
		return ast.Type{}, p.errf("expected a type name, got %v", p.cur.Kind)
	}
	if err := p.advance(); err != nil {
		return ast.Type{}, err
	}
	optional := false
	if p.cur.Kind == token.Question {
		optional = true
		if err := p.advance(); err != nil {
			return ast.Type{}, err
		}
	}
	return ast.Type{Name: name, Optional: optional}, nil
}

func (p *Parser) parseFuncDecl() (*ast.FuncDecl, error) {
	line := p.cur.Line
	if _, err := p.expect(token.KwFunction); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	for p.cur.Kind != token.RParen {
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		pname, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Type: ty, Name: pname.Text})
		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwAs); err != nil {
		return nil, err
	}
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(token.KwEndFunction)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwEndFunction); err != nil {
		return nil, err
	}
	return &ast.FuncDecl{Name: nameTok.Text, Params: params, ReturnType: retType, Body: body, Line: line}, nil
}

// parseBlock parses statements until one of the terminator kinds is seen
// (without consuming the terminator).
func (p *Parser) parseBlock(terminators ...token.Kind) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !isOneOf(p.cur.Kind, terminators) {
		if p.cur.Kind == token.EOF {
			return nil, p.errf("unexpected end of input inside block")
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func isOneOf(k token.Kind, ks []token.Kind) bool {
	for _, want := range ks {
		if k == want {
			return true
		}
	}
	return false
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur.Kind {
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwNumeric, token.KwString, token.KwBoolean:
		return p.parseLetStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	line := p.cur.Line
	if _, err := p.expect(token.KwReturn); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Expr: expr, Line: line}, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	line := p.cur.Line
	if _, err := p.expect(token.KwIf); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwThen); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock(token.KwElse, token.KwEndIf)
	if err != nil {
		return nil, err
	}
	var elseBlock []ast.Stmt
	if p.cur.Kind == token.KwElse {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBlock, err = p.parseBlock(token.KwEndIf)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.KwEndIf); err != nil {
		return nil, err
	}
	return &ast.IfStmt{Cond: cond, Then: thenBlock, Else: elseBlock, Line: line}, nil
}

func (p *Parser) parseLetStmt() (ast.Stmt, error) {
	line := p.cur.Line
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Eq); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.LetStmt{Type: ty, Name: nameTok.Text, Expr: expr, Line: line}, nil
}

func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	line := p.cur.Line
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr, Line: line}, nil
}

// Precedence, loosest to tightest:
//
//	coalesce (??)
//	equality (==, !=)
//	relational (<, <=, >, >=)
//	additive (+, -)
//	multiplicative (*, /)
//	unary / primary

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseCoalesce()
}

func (p *Parser) parseCoalesce() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.QuestionQuestion {
		line := p.cur.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.CoalesceExpr{Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.EqEq || p.cur.Kind == token.NotEq {
		op := binOpFor(p.cur.Kind)
		line := p.cur.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for isRelOp(p.cur.Kind) {
		op := binOpFor(p.cur.Kind)
		line := p.cur.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Line: line}
	}
	return left, nil
}

func isRelOp(k token.Kind) bool {
	return k == token.Lt || k == token.LtEq || k == token.Gt || k == token.GtEq
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.Plus || p.cur.Kind == token.Minus {
		op := binOpFor(p.cur.Kind)
		line := p.cur.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.Star || p.cur.Kind == token.Slash {
		op := binOpFor(p.cur.Kind)
		line := p.cur.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.cur.Kind == token.Minus {
		line := p.cur.Line
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: ast.OpSub, Left: &ast.IntLit{Text: "0", Line: line}, Right: operand, Line: line}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur
	switch tok.Kind {
	case token.IntLit:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.IntLit{Text: tok.Text, Line: tok.Line}, nil
	case token.FloatLit:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.FloatLit{Text: tok.Text, Line: tok.Line}, nil
	case token.StringLit:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.StringLit{Value: tok.Text, Line: tok.Line}, nil
	case token.KwTrue, token.KwFalse:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.BoolLit{Value: tok.Kind == token.KwTrue, Line: tok.Line}, nil
	case token.LParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return expr, nil
	case token.Ident:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parsePostfixIdent(tok)
	default:
		return nil, p.errf("unexpected token %v in expression", tok.Kind)
	}
}

func (p *Parser) parsePostfixIdent(nameTok token.Token) (ast.Expr, error) {
	switch p.cur.Kind {
	case token.LParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		var args []ast.Expr
		for p.cur.Kind != token.RParen {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.Kind == token.Comma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.CallExpr{Callee: nameTok.Text, Args: args, Line: nameTok.Line}, nil
	case token.LBracket:
		if err := p.advance(); err != nil {
			return nil, err
		}
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return nil, err
		}
		return &ast.IndexExpr{Base: &ast.Ident{Name: nameTok.Text, Line: nameTok.Line}, Index: idx, Line: nameTok.Line}, nil
	default:
		return &ast.Ident{Name: nameTok.Text, Line: nameTok.Line}, nil
	}
}

func binOpFor(k token.Kind) ast.BinOp {
	switch k {
	case token.Plus:
		return ast.OpAdd
	case token.Minus:
		return ast.OpSub
	case token.Star:
		return ast.OpMul
	case token.Slash:
		return ast.OpDiv
	case token.EqEq:
		return ast.OpEq
	case token.NotEq:
		return ast.OpNotEq
	case token.Lt:
		return ast.OpLt
	case token.LtEq:
		return ast.OpLtEq
	case token.Gt:
		return ast.OpGt
	case token.GtEq:
		return ast.OpGtEq
	default:
		panic(fmt.Sprintf("binOpFor: unhandled token kind %v", k))
	}
}
