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
	"github.com/plat-lang/platc/pkg/ast"
	"github.com/plat-lang/platc/pkg/diag"
	"github.com/plat-lang/platc/pkg/token"
)

func (p *Parser) parseBlock() (*ast.Block, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	if _, err := p.expect(token.LBrace, "E003", "'{'"); err != nil {
		return nil, err
	}

	var stmts []ast.Stmt

	for !p.check(token.RBrace) && !p.atEnd() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	if _, err := p.expect(token.RBrace, "E003", "'}'"); err != nil {
		return nil, err
	}

	return &ast.Block{Stmts: stmts, Span: p.spanFrom(start)}, nil
}

func (p *Parser) parseStmt() (ast.Stmt, *diag.Diagnostic) {
	switch {
	case p.check(token.KwLet):
		return p.parseLetStmt()
	case p.check(token.KwVar):
		return p.parseVarStmt()
	case p.check(token.KwReturn):
		return p.parseReturnStmt()
	case p.check(token.KwIf):
		return p.parseIfStmt()
	case p.check(token.KwWhile):
		return p.parseWhileStmt()
	case p.check(token.KwFor):
		return p.parseForStmt()
	case p.check(token.KwPrint):
		return p.parsePrintStmt()
	case p.check(token.KwConcurrent):
		return p.parseConcurrentStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseLetStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'let'

	name, err := p.expect(token.Ident, "E004", "a binding name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Colon, "E004", "':' (type annotations are mandatory)"); err != nil {
		return nil, err
	}

	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Eq, "E004", "'='"); err != nil {
		return nil, err
	}

	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon, "E001", "';'"); err != nil {
		return nil, err
	}

	return &ast.LetStmt{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Name: name.Ident, Type: ty, Init: init}, nil
}

func (p *Parser) parseVarStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'var'

	name, err := p.expect(token.Ident, "E004", "a binding name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Colon, "E004", "':' (type annotations are mandatory)"); err != nil {
		return nil, err
	}

	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Eq, "E004", "'='"); err != nil {
		return nil, err
	}

	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon, "E001", "';'"); err != nil {
		return nil, err
	}

	return &ast.VarStmt{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Name: name.Ident, Type: ty, Init: init}, nil
}

func (p *Parser) parseReturnStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'return'

	var value ast.Expr

	if !p.check(token.Semicolon) {
		var err *diag.Diagnostic

		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.Semicolon, "E001", "';'"); err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Value: value}, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'if'

	if _, err := p.expect(token.LParen, "E002", "'('"); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen, "E002", "')'"); err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseStmt ast.Stmt

	if p.match(token.KwElse) {
		if p.check(token.KwIf) {
			elseStmt, err = p.parseIfStmt()
			if err != nil {
				return nil, err
			}
		} else {
			blk, err := p.parseBlock()
			if err != nil {
				return nil, err
			}

			elseStmt = &ast.BlockStmt{StmtBase: ast.NewStmtBase(blk.Span), Block: blk}
		}
	}

	return &ast.IfStmt{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Cond: cond, Then: then, Else: elseStmt}, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'while'

	if _, err := p.expect(token.LParen, "E002", "'('"); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen, "E002", "')'"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Cond: cond, Body: body}, nil
}

func (p *Parser) parseForStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'for'

	if _, err := p.expect(token.LParen, "E002", "'('"); err != nil {
		return nil, err
	}

	name, err := p.expect(token.Ident, "E004", "a loop variable name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Colon, "E004", "':' (type annotations are mandatory)"); err != nil {
		return nil, err
	}

	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KwIn, "E004", "'in'"); err != nil {
		return nil, err
	}

	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen, "E002", "')'"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{
		StmtBase: ast.NewStmtBase(p.spanFrom(start)),
		Var:      name.Ident, VarType: ty, Iterable: iterable, Body: body,
	}, nil
}

// parsePrintStmt accepts only the named-argument form `print(value = expr)`
// (spec.md §9's Open Question resolution; positional print is a parse
// error).
func (p *Parser) parsePrintStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'print'

	if _, err := p.expect(token.LParen, "E002", "'('"); err != nil {
		return nil, err
	}

	name, err := p.expect(token.Ident, "E005", "'value'")
	if err != nil {
		return nil, err
	}

	if name.Ident != "value" {
		return nil, p.errAt(name.Span, "E005", "print requires named arguments: print(value = expr)")
	}

	if _, err := p.expect(token.Eq, "E005", "'=' (print requires named arguments)"); err != nil {
		return nil, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen, "E002", "')'"); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon, "E001", "';'"); err != nil {
		return nil, err
	}

	return &ast.PrintStmt{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Value: value}, nil
}

func (p *Parser) parseConcurrentStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // 'concurrent'

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ConcurrentStmt{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Body: body}, nil
}

func (p *Parser) parseExprStmt() (ast.Stmt, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon, "E001", "';'"); err != nil {
		return nil, err
	}

	return &ast.ExprStmt{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Expr: expr}, nil
}
