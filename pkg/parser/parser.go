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

// Package parser implements Plat's recursive-descent parser with
// Pratt-style operator precedence climbing for expressions, per
// spec.md §4.2. It does not attempt error recovery: the first syntax
// error it encounters is returned immediately, matching the teacher's
// pkg/corset/compiler/parser.go single-pass-to-first-failure shape.
package parser

import (
	"fmt"

	"github.com/plat-lang/platc/pkg/ast"
	"github.com/plat-lang/platc/pkg/diag"
	"github.com/plat-lang/platc/pkg/lexer"
	"github.com/plat-lang/platc/pkg/source"
	"github.com/plat-lang/platc/pkg/token"
)

// Parser walks a token cursor over a single source.File, building an
// ast.Program. Exported methods are the package's single entry point
// (Parse); the rest is the recursive-descent production grammar.
type Parser struct {
	file *source.File
	toks []token.Token
	pos  int
}

// Parse lexes and parses a single source file into an ast.Program, or
// returns the first diagnostic raised by either phase.
func Parse(file *source.File) (*ast.Program, *diag.Diagnostic) {
	toks, err := lexer.All(file)
	if err != nil {
		return nil, err
	}

	p := &Parser{file: file, toks: toks}

	return p.parseProgram()
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) atEnd() bool       { return p.cur().Kind == token.Eof }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if !p.atEnd() {
		p.pos++
	}

	return t
}

func (p *Parser) check(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}

	return false
}

// expect consumes a token of kind k or raises a diagnostic with the given
// error code, per spec.md §4.2's E001-E004 codes for missing punctuation.
func (p *Parser) expect(k token.Kind, code, what string) (token.Token, *diag.Diagnostic) {
	if p.check(k) {
		return p.advance(), nil
	}

	return token.Token{}, p.errHere(code, fmt.Sprintf("expected %s, found %s", what, p.cur()))
}

func (p *Parser) errHere(code, msg string) *diag.Diagnostic {
	return diag.New(diag.KindSyntax, code, p.cur().Span, msg).
		WithLabel(p.cur().Span, "found here")
}

func (p *Parser) errAt(span source.Span, code, msg string) *diag.Diagnostic {
	return diag.New(diag.KindSyntax, code, span, msg)
}

// span builds the source.Span from a starting offset to the end of the
// last-consumed token, satisfying the "monotone non-decreasing" span
// invariant (spec.md §3).
func (p *Parser) spanFrom(start int) source.Span {
	end := start
	if p.pos > 0 {
		end = p.toks[p.pos-1].Span.End()
	}

	return source.NewSpan(start, end)
}

func (p *Parser) parseProgram() (*ast.Program, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	prog := &ast.Program{}

	if p.check(token.KwMod) {
		mod, err := p.parseModDecl()
		if err != nil {
			return nil, err
		}

		prog.Module = mod
	}

	for p.check(token.KwUse) {
		use, err := p.parseUseDecl()
		if err != nil {
			return nil, err
		}

		prog.Uses = append(prog.Uses, use)
	}

	for !p.atEnd() {
		if err := p.parseTopLevelItem(prog); err != nil {
			return nil, err
		}
	}

	prog.Span = p.spanFrom(start)

	return prog, nil
}

func (p *Parser) parseModDecl() (*ast.ModuleDecl, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'mod'

	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon, "E001", "';'"); err != nil {
		return nil, err
	}

	return &ast.ModuleDecl{Path: path, Span: p.spanFrom(start)}, nil
}

func (p *Parser) parseUseDecl() (*ast.UseDecl, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'use'

	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon, "E001", "';'"); err != nil {
		return nil, err
	}

	return &ast.UseDecl{Path: path, Span: p.spanFrom(start)}, nil
}

func (p *Parser) parsePath() ([]string, *diag.Diagnostic) {
	var parts []string

	ident, err := p.expect(token.Ident, "E004", "an identifier")
	if err != nil {
		return nil, err
	}

	parts = append(parts, ident.Ident)

	for p.match(token.ColonColon) {
		ident, err := p.expect(token.Ident, "E004", "an identifier")
		if err != nil {
			return nil, err
		}

		parts = append(parts, ident.Ident)
	}

	return parts, nil
}

func (p *Parser) parseTopLevelItem(prog *ast.Program) *diag.Diagnostic {
	pub := p.match(token.KwPub)

	switch {
	case p.check(token.KwType):
		alias, err := p.parseTypeAlias(pub)
		if err != nil {
			return err
		}

		prog.Aliases = append(prog.Aliases, alias)
	case p.check(token.KwNewtype):
		nt, err := p.parseNewtype(pub)
		if err != nil {
			return err
		}

		prog.Newtypes = append(prog.Newtypes, nt)
	case p.check(token.KwEnum):
		e, err := p.parseEnum(pub)
		if err != nil {
			return err
		}

		prog.Enums = append(prog.Enums, e)
	case p.check(token.KwClass):
		c, err := p.parseClass(pub)
		if err != nil {
			return err
		}

		prog.Classes = append(prog.Classes, c)
	case p.check(token.KwFn):
		f, err := p.parseFunc(pub, false, false, false)
		if err != nil {
			return err
		}

		prog.Funcs = append(prog.Funcs, f)
	case !pub && p.check(token.KwTest):
		t, err := p.parseTest()
		if err != nil {
			return err
		}

		prog.Tests = append(prog.Tests, t)
	case !pub && p.check(token.KwBench):
		b, err := p.parseBench()
		if err != nil {
			return err
		}

		prog.Benches = append(prog.Benches, b)
	default:
		return p.errHere("E006", fmt.Sprintf("expected a top-level item, found %s", p.cur()))
	}

	return nil
}

func (p *Parser) parseTypeAlias(pub bool) (*ast.TypeAlias, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'type'

	name, err := p.expect(token.Ident, "E004", "a type name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Eq, "E004", "'='"); err != nil {
		return nil, err
	}

	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon, "E001", "';'"); err != nil {
		return nil, err
	}

	return &ast.TypeAlias{Pub: pub, Name: name.Ident, Type: ty, Span: p.spanFrom(start)}, nil
}

func (p *Parser) parseNewtype(pub bool) (*ast.Newtype, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'newtype'

	name, err := p.expect(token.Ident, "E004", "a type name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Eq, "E004", "'='"); err != nil {
		return nil, err
	}

	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon, "E001", "';'"); err != nil {
		return nil, err
	}

	return &ast.Newtype{Pub: pub, Name: name.Ident, Type: ty, Span: p.spanFrom(start)}, nil
}

func (p *Parser) parseTest() (*ast.TestBlock, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'test'

	name, err := p.expect(token.Ident, "E004", "a test name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace, "E003", "'{'"); err != nil {
		return nil, err
	}

	fn, err := p.parseFunc(false, false, false, false)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RBrace, "E003", "'}'"); err != nil {
		return nil, err
	}

	return &ast.TestBlock{Name: name.Ident, Func: fn, Span: p.spanFrom(start)}, nil
}

func (p *Parser) parseBench() (*ast.BenchBlock, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'bench'

	name, err := p.expect(token.Ident, "E004", "a bench name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace, "E003", "'{'"); err != nil {
		return nil, err
	}

	fn, err := p.parseFunc(false, false, false, false)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RBrace, "E003", "'}'"); err != nil {
		return nil, err
	}

	return &ast.BenchBlock{Name: name.Ident, Func: fn, Span: p.spanFrom(start)}, nil
}
