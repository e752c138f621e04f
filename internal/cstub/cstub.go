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

// Package cstub parses small C function-definition stubs using
// modernc.org/cc/v4; it is the only package in this repository that uses
// that C front end. It grounds
// internal/codegen's extern-declaration table: the signature list it
// returns is checked against the `declare` lines the code generator emits,
// so the two never drift apart.
//
// ParsePrototypes takes source text directly rather than reading files from
// disk: the "files" here are small embedded stub definitions (a prototype
// plus a trivial body, e.g. "{ return 0; }"), because modernc.org/cc/v4's
// translation-unit walk only visits function *definitions*, not bare
// declarations.
package cstub

import (
	"fmt"
	"runtime"
	"sort"

	"modernc.org/cc/v4"
)

// Signature describes one C function stub: its name and the textual
// spelling of its return type.
type Signature struct {
	Name       string
	ReturnType string
}

// ParsePrototypes parses src (a standalone C translation unit of stub
// function definitions) and returns every function it defines, sorted by
// name.
func ParsePrototypes(src string) ([]Signature, error) {
	cfg, err := cc.NewConfig(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return nil, fmt.Errorf("cstub: configure C parser: %w", err)
	}
	ast, err := cc.Parse(cfg, []cc.Source{
		{Name: "<predefined>", Value: cfg.Predefined},
		{Name: "<builtin>", Value: cc.Builtin},
		{Name: "stubs.c", Value: src},
	})
	if err != nil {
		return nil, fmt.Errorf("cstub: parse stubs: %w", err)
	}

	var sigs []Signature
	for tu := ast.TranslationUnit; tu != nil; tu = tu.TranslationUnit {
		decl := tu.ExternalDeclaration
		if decl.Case != cc.ExternalDeclarationFuncDef {
			continue
		}
		fd := decl.FunctionDefinition
		direct := fd.Declarator.DirectDeclarator
		if direct.Case != cc.DirectDeclaratorFuncParam {
			continue
		}
		name := direct.DirectDeclarator.Token.SrcStr()
		returnType := "void"
		if fd.DeclarationSpecifiers.Case == cc.DeclarationSpecifiersTypeSpec {
			returnType = fd.DeclarationSpecifiers.TypeSpecifier.Token.SrcStr()
		}
		sigs = append(sigs, Signature{Name: name, ReturnType: returnType})
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].Name < sigs[j].Name })
	return sigs, nil
}
