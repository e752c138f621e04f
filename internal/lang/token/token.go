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

// Package token defines the lexical token kinds produced by internal/lang/lexer
// and consumed by internal/lang/parser.
package token

// Kind identifies a lexical token category.
type Kind int

const (
	EOF Kind = iota
	Ident
	IntLit
	FloatLit
	StringLit

	// Keywords
	KwFunction
	KwEndFunction
	KwIf
	KwThen
	KwElse
	KwEndIf
	KwReturn
	KwTrue
	KwFalse
	KwAs
	KwNumeric
	KwString
	KwBoolean

	// Operators and punctuation
	Plus
	Minus
	Star
	Slash
	Eq
	EqEq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	QuestionQuestion
	Question
	LParen
	RParen
	LBracket
	RBracket
	Comma
)

var keywords = map[string]Kind{
	"function":     KwFunction,
	"end_function": KwEndFunction,
	"if":           KwIf,
	"then":         KwThen,
	"else":         KwElse,
	"end_if":       KwEndIf,
	"return":       KwReturn,
	"true":         KwTrue,
	"false":        KwFalse,
	"as":           KwAs,
	"numeric":      KwNumeric,
	"string":       KwString,
	"boolean":      KwBoolean,
}

// Lookup returns the keyword Kind for ident, or (Ident, false) if ident is
// not a reserved word.
func Lookup(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Token is one lexical token with its source position (1-based line/col).
type Token struct {
	Kind Kind
	Text string
	Line int
	Col  int
}

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case FloatLit:
		return "float literal"
	case StringLit:
		return "string literal"
	case KwFunction:
		return "function"
	case KwEndFunction:
		return "end_function"
	case KwIf:
		return "if"
	case KwThen:
		return "then"
	case KwElse:
		return "else"
	case KwEndIf:
		return "end_if"
	case KwReturn:
		return "return"
	case KwTrue:
		return "true"
	case KwFalse:
		return "false"
	case KwAs:
		return "as"
	case KwNumeric:
		return "numeric"
	case KwString:
		return "string"
	case KwBoolean:
		return "boolean"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Eq:
		return "="
	case EqEq:
		return "=="
	case NotEq:
		return "!="
	case Lt:
		return "<"
	case LtEq:
		return "<="
	case Gt:
		return ">"
	case GtEq:
		return ">="
	case QuestionQuestion:
		return "??"
	case Question:
		return "?"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Comma:
		return ","
	default:
		return "unknown"
	}
}
