// Copyright The Plat Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"fmt"

	"github.com/plat-lang/platc/pkg/ast"
	"github.com/plat-lang/platc/pkg/diag"
	"github.com/plat-lang/platc/pkg/token"
)

// parseGenerics parses an optional `<T, U, ...>` type-parameter list.
func (p *Parser) parseGenerics() ([]string, *diag.Diagnostic) {
	if !p.match(token.Lt) {
		return nil, nil
	}

	var names []string

	for {
		id, err := p.expect(token.Ident, "E004", "a type parameter")
		if err != nil {
			return nil, err
		}

		names = append(names, id.Ident)

		if !p.match(token.Comma) {
			break
		}
	}

	if _, err := p.expect(token.Gt, "E004", "'>'"); err != nil {
		return nil, err
	}

	return names, nil
}

// parseFunc parses a function or method declaration: optional modifiers,
// `fn NAME` or `init`, optional generics, parameter list, optional
// `-> ReturnType`, and a block body.
func (p *Parser) parseFunc(pub, virtual, override, mut bool) (*ast.FuncDecl, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	for {
		switch {
		case p.check(token.KwVirtual):
			virtual = true
			p.advance()
		case p.check(token.KwOverride):
			override = true
			p.advance()
		case p.check(token.KwMut):
			mut = true
			p.advance()
		default:
			goto modifiersDone
		}
	}
modifiersDone:

	var name string

	switch {
	case p.match(token.KwInit):
		name = "init"
	case p.match(token.KwFn):
		id, err := p.expect(token.Ident, "E004", "a function name")
		if err != nil {
			return nil, err
		}

		name = id.Ident
	default:
		return nil, p.errHere("E004", fmt.Sprintf("expected 'fn' or 'init', found %s", p.cur()))
	}

	generics, err := p.parseGenerics()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LParen, "E002", "'('"); err != nil {
		return nil, err
	}

	var params []ast.Param

	for !p.check(token.RParen) {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}

		params = append(params, param)

		if !p.match(token.Comma) {
			break
		}
	}

	if _, err := p.expect(token.RParen, "E002", "')'"); err != nil {
		return nil, err
	}

	var ret ast.Type

	if p.match(token.Arrow) {
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{
		Pub: pub, Virtual: virtual, Override: override, Mut: mut,
		Name: name, Generics: generics, Params: params, Return: ret, Body: body,
		Span: p.spanFrom(start),
	}, nil
}

func (p *Parser) parseParam() (ast.Param, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	name, err := p.expect(token.Ident, "E004", "a parameter name")
	if err != nil {
		return ast.Param{}, err
	}

	if _, err := p.expect(token.Colon, "E004", "':'"); err != nil {
		return ast.Param{}, err
	}

	ty, err := p.parseType()
	if err != nil {
		return ast.Param{}, err
	}

	var def ast.Expr

	if p.match(token.Eq) {
		def, err = p.parseExpr()
		if err != nil {
			return ast.Param{}, err
		}
	}

	return ast.Param{Name: name.Ident, Type: ty, Default: def, Span: p.spanFrom(start)}, nil
}

// parseClass parses `pub? class Name<T...>(: Parent)? { fields; methods }`.
func (p *Parser) parseClass(pub bool) (*ast.ClassDecl, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'class'

	name, err := p.expect(token.Ident, "E004", "a class name")
	if err != nil {
		return nil, err
	}

	generics, err := p.parseGenerics()
	if err != nil {
		return nil, err
	}

	var parent string

	if p.match(token.Colon) {
		id, err := p.expect(token.Ident, "E004", "a parent class name")
		if err != nil {
			return nil, err
		}

		parent = id.Ident
	}

	if _, err := p.expect(token.LBrace, "E003", "'{'"); err != nil {
		return nil, err
	}

	var (
		fields  []ast.Field
		methods []*ast.FuncDecl
	)

	for !p.check(token.RBrace) {
		fpub := p.match(token.KwPub)

		switch {
		case p.check(token.KwLet) || p.check(token.KwVar):
			f, err := p.parseField(fpub)
			if err != nil {
				return nil, err
			}

			fields = append(fields, f)
		default:
			m, err := p.parseFunc(fpub, false, false, false)
			if err != nil {
				return nil, err
			}

			methods = append(methods, m)
		}
	}

	if _, err := p.expect(token.RBrace, "E003", "'}'"); err != nil {
		return nil, err
	}

	return &ast.ClassDecl{
		Pub: pub, Name: name.Ident, Generics: generics, Parent: parent,
		Fields: fields, Methods: methods, Span: p.spanFrom(start),
	}, nil
}

func (p *Parser) parseField(pub bool) (ast.Field, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	mutable := p.check(token.KwVar)
	p.advance() // 'let' or 'var'

	name, err := p.expect(token.Ident, "E004", "a field name")
	if err != nil {
		return ast.Field{}, err
	}

	if _, err := p.expect(token.Colon, "E004", "':'"); err != nil {
		return ast.Field{}, err
	}

	ty, err := p.parseType()
	if err != nil {
		return ast.Field{}, err
	}

	if _, err := p.expect(token.Semicolon, "E001", "';'"); err != nil {
		return ast.Field{}, err
	}

	return ast.Field{Pub: pub, Mutable: mutable, Name: name.Ident, Type: ty, Span: p.spanFrom(start)}, nil
}

// parseEnum parses `pub? enum Name<T...> { variants; methods }`.
func (p *Parser) parseEnum(pub bool) (*ast.EnumDecl, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'enum'

	name, err := p.expect(token.Ident, "E004", "an enum name")
	if err != nil {
		return nil, err
	}

	generics, err := p.parseGenerics()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace, "E003", "'{'"); err != nil {
		return nil, err
	}

	var (
		variants []ast.EnumVariant
		methods  []*ast.FuncDecl
	)

	for !p.check(token.RBrace) {
		if p.check(token.KwFn) || p.check(token.KwInit) || p.check(token.KwVirtual) || p.check(token.KwOverride) {
			m, err := p.parseFunc(false, false, false, false)
			if err != nil {
				return nil, err
			}

			methods = append(methods, m)

			continue
		}

		v, err := p.parseEnumVariant()
		if err != nil {
			return nil, err
		}

		variants = append(variants, v)

		if !p.check(token.RBrace) {
			p.match(token.Comma)
		}
	}

	if _, err := p.expect(token.RBrace, "E003", "'}'"); err != nil {
		return nil, err
	}

	return &ast.EnumDecl{
		Pub: pub, Name: name.Ident, Generics: generics, Variants: variants,
		Methods: methods, Span: p.spanFrom(start),
	}, nil
}

func (p *Parser) parseEnumVariant() (ast.EnumVariant, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	name, err := p.expect(token.Ident, "E004", "a variant name")
	if err != nil {
		return ast.EnumVariant{}, err
	}

	var fields []ast.Type

	if p.match(token.LParen) {
		for !p.check(token.RParen) {
			ty, err := p.parseType()
			if err != nil {
				return ast.EnumVariant{}, err
			}

			fields = append(fields, ty)

			if !p.match(token.Comma) {
				break
			}
		}

		if _, err := p.expect(token.RParen, "E002", "')'"); err != nil {
			return ast.EnumVariant{}, err
		}
	}

	return ast.EnumVariant{Name: name.Ident, Fields: fields, Span: p.spanFrom(start)}, nil
}
