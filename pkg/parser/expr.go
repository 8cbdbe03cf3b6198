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

// Expression parsing: Pratt-style precedence climbing. Levels, low to
// high, per spec.md §4.2: assignment, logical-or, logical-and, equality,
// comparison, range, additive, multiplicative, unary, postfix, primary.
// Range binds tighter than comparison and looser than additive,
// resolving spec.md §9's first Open Question.
package parser

import (
	"fmt"

	"github.com/plat-lang/platc/pkg/ast"
	"github.com/plat-lang/platc/pkg/diag"
	"github.com/plat-lang/platc/pkg/lexer"
	"github.com/plat-lang/platc/pkg/source"
	"github.com/plat-lang/platc/pkg/token"
)

func (p *Parser) parseExpr() (ast.Expr, *diag.Diagnostic) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	lhs, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.match(token.Eq) {
		rhs, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}

		return &ast.AssignExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Target: lhs, Value: rhs}, nil
	}

	return lhs, nil
}

func (p *Parser) parseOr() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.check(token.KwOr) {
		p.advance()

		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		lhs = &ast.BinaryExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Op: "or", Lhs: lhs, Rhs: rhs}
	}

	return lhs, nil
}

func (p *Parser) parseAnd() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	lhs, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for p.check(token.KwAnd) {
		p.advance()

		rhs, err := p.parseEquality()
		if err != nil {
			return nil, err
		}

		lhs = &ast.BinaryExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Op: "and", Lhs: lhs, Rhs: rhs}
	}

	return lhs, nil
}

func (p *Parser) parseEquality() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	lhs, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.check(token.EqEq) || p.check(token.BangEq) {
		op := "=="
		if p.cur().Kind == token.BangEq {
			op = "!="
		}

		p.advance()

		rhs, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		lhs = &ast.BinaryExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Op: op, Lhs: lhs, Rhs: rhs}
	}

	return lhs, nil
}

func (p *Parser) parseComparison() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	lhs, err := p.parseRange()
	if err != nil {
		return nil, err
	}

	ops := map[token.Kind]string{token.Lt: "<", token.LtEq: "<=", token.Gt: ">", token.GtEq: ">="}

	for {
		op, ok := ops[p.cur().Kind]
		if !ok {
			break
		}

		p.advance()

		rhs, err := p.parseRange()
		if err != nil {
			return nil, err
		}

		lhs = &ast.BinaryExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Op: op, Lhs: lhs, Rhs: rhs}
	}

	return lhs, nil
}

func (p *Parser) parseRange() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if p.check(token.DotDot) || p.check(token.DotDotEq) {
		inclusive := p.cur().Kind == token.DotDotEq
		p.advance()

		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}

		return &ast.RangeExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Lo: lhs, Hi: rhs, Inclusive: inclusive}, nil
	}

	return lhs, nil
}

func (p *Parser) parseAdditive() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.check(token.Plus) || p.check(token.Minus) {
		op := "+"
		if p.cur().Kind == token.Minus {
			op = "-"
		}

		p.advance()

		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		lhs = &ast.BinaryExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Op: op, Lhs: lhs, Rhs: rhs}
	}

	return lhs, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	ops := map[token.Kind]string{token.Star: "*", token.Slash: "/", token.Percent: "%"}

	for {
		op, ok := ops[p.cur().Kind]
		if !ok {
			break
		}

		p.advance()

		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		lhs = &ast.BinaryExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Op: op, Lhs: lhs, Rhs: rhs}
	}

	return lhs, nil
}

func (p *Parser) parseUnary() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	if p.check(token.Minus) || p.check(token.KwNot) {
		op := "-"
		if p.cur().Kind == token.KwNot {
			op = "not"
		}

		p.advance()

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &ast.UnaryExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Op: op, Operand: operand}, nil
	}

	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.check(token.LParen):
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}

			expr = &ast.CallExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Callee: expr, Args: args}
		case p.check(token.Dot):
			p.advance()

			name, err := p.expect(token.Ident, "E004", "a member or method name")
			if err != nil {
				return nil, err
			}

			if p.check(token.LParen) {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}

				expr = &ast.MethodCallExpr{
					ExprBase: ast.NewExprBase(p.spanFrom(start)), Receiver: expr, Method: name.Ident, Args: args,
				}
			} else {
				expr = &ast.MemberExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Receiver: expr, Field: name.Ident}
			}
		case p.check(token.LBracket):
			p.advance()

			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.RBracket, "E003", "']'"); err != nil {
				return nil, err
			}

			expr = &ast.IndexExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Collection: expr, Index: idx}
		case p.check(token.Question):
			p.advance()

			expr = &ast.TryExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Operand: expr}
		default:
			return expr, nil
		}
	}
}

// parseArgs parses a mandatory-named-argument call argument list:
// `(name = expr, name = expr, ...)`. Positional arguments are a parse
// error (spec.md §4.2).
func (p *Parser) parseArgs() ([]ast.Arg, *diag.Diagnostic) {
	p.advance() // '('

	var args []ast.Arg

	for !p.check(token.RParen) {
		name, err := p.expect(token.Ident, "E005", "a named argument (positional arguments are not permitted)")
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.Eq, "E005", "'=' (arguments must be named: name = expr)"); err != nil {
			return nil, err
		}

		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, ast.Arg{Name: name.Ident, Expr: val})

		if !p.match(token.Comma) {
			break
		}
	}

	if _, err := p.expect(token.RParen, "E002", "')'"); err != nil {
		return nil, err
	}

	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	tok := p.cur()

	switch tok.Kind {
	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.BoolLit{ExprBase: ast.NewExprBase(p.spanFrom(start)), Value: tok.Kind == token.KwTrue}, nil
	case token.IntLiteral:
		p.advance()
		return &ast.IntLit{ExprBase: ast.NewExprBase(p.spanFrom(start)), Value: tok.IntValue, Type: intSuffixName(tok.IntType)}, nil
	case token.FloatLiteral:
		p.advance()
		return &ast.FloatLit{ExprBase: ast.NewExprBase(p.spanFrom(start)), Value: tok.FloatValue, Type: floatSuffixName(tok.FloatType)}, nil
	case token.StringLiteral:
		p.advance()
		return &ast.StringLit{ExprBase: ast.NewExprBase(p.spanFrom(start)), Value: tok.Str}, nil
	case token.InterpolatedString:
		p.advance()
		return p.buildInterpString(tok, start)
	case token.LBracket:
		return p.parseArrayLit()
	case token.LBrace:
		return p.parseDictOrSetLit()
	case token.KwSelf:
		p.advance()
		return &ast.Self{ExprBase: ast.NewExprBase(p.spanFrom(start))}, nil
	case token.KwSuper:
		return p.parseSuperCall(start)
	case token.KwCast:
		return p.parseCast(start)
	case token.KwSpawn:
		return p.parseSpawn(start)
	case token.KwMatch:
		return p.parseMatch(start)
	case token.KwIf:
		return p.parseIfExpr(start)
	case token.LParen:
		p.advance()

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.RParen, "E002", "')'"); err != nil {
			return nil, err
		}

		return inner, nil
	case token.Ident:
		return p.parseIdentOrCtor(start)
	default:
		return nil, p.errHere("E004", fmt.Sprintf("expected an expression, found %s", tok))
	}
}

func intSuffixName(s token.IntSuffix) string {
	switch s {
	case token.Int8:
		return "Int8"
	case token.Int16:
		return "Int16"
	case token.Int64:
		return "Int64"
	default:
		return "Int32"
	}
}

func floatSuffixName(s token.FloatSuffix) string {
	switch s {
	case token.Float8:
		return "Float8"
	case token.Float16:
		return "Float16"
	case token.Float32:
		return "Float32"
	default:
		return "Float64"
	}
}

// buildInterpString re-lexes and re-parses each captured expression
// fragment of an interpolated string, per spec.md §4.1's "recorded
// verbatim for re-parsing".
func (p *Parser) buildInterpString(tok token.Token, start int) (ast.Expr, *diag.Diagnostic) {
	var parts []ast.InterpPart

	for _, part := range tok.Parts {
		if !part.IsExpr {
			parts = append(parts, ast.InterpPart{Text: part.Text})
			continue
		}

		sub := source.NewFile(p.file.Name(), []byte(part.Text))

		toks, lexErr := lexer.All(sub)
		if lexErr != nil {
			return nil, lexErr
		}

		subParser := &Parser{file: sub, toks: toks}

		expr, err := subParser.parseExpr()
		if err != nil {
			return nil, err
		}

		parts = append(parts, ast.InterpPart{Expr: expr})
	}

	return &ast.InterpString{ExprBase: ast.NewExprBase(p.spanFrom(start)), Parts: parts}, nil
}

func (p *Parser) parseArrayLit() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // '['

	var elems []ast.Expr

	for !p.check(token.RBracket) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)

		if !p.match(token.Comma) {
			break
		}
	}

	if _, err := p.expect(token.RBracket, "E003", "']'"); err != nil {
		return nil, err
	}

	return &ast.ArrayLit{ExprBase: ast.NewExprBase(p.spanFrom(start)), Elements: elems}, nil
}

// parseDictOrSetLit disambiguates `{}`'s two literal forms by checking for
// a ':' after the first element.
func (p *Parser) parseDictOrSetLit() (ast.Expr, *diag.Diagnostic) {
	start := p.cur().Span.Start()
	p.advance() // '{'

	if p.check(token.RBrace) {
		p.advance()
		return &ast.DictLit{ExprBase: ast.NewExprBase(p.spanFrom(start))}, nil
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.match(token.Colon) {
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		entries := []ast.DictEntry{{Key: first, Value: val}}

		for p.match(token.Comma) {
			k, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.Colon, "E004", "':'"); err != nil {
				return nil, err
			}

			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			entries = append(entries, ast.DictEntry{Key: k, Value: v})
		}

		if _, err := p.expect(token.RBrace, "E003", "'}'"); err != nil {
			return nil, err
		}

		return &ast.DictLit{ExprBase: ast.NewExprBase(p.spanFrom(start)), Entries: entries}, nil
	}

	elems := []ast.Expr{first}

	for p.match(token.Comma) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)
	}

	if _, err := p.expect(token.RBrace, "E003", "'}'"); err != nil {
		return nil, err
	}

	return &ast.SetLit{ExprBase: ast.NewExprBase(p.spanFrom(start)), Elements: elems}, nil
}

func (p *Parser) parseSuperCall(start int) (ast.Expr, *diag.Diagnostic) {
	p.advance() // 'super'

	if _, err := p.expect(token.Dot, "E004", "'.'"); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KwInit, "E004", "'init'"); err != nil {
		return nil, err
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	return &ast.SuperCallExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Args: args}, nil
}

func (p *Parser) parseCast(start int) (ast.Expr, *diag.Diagnostic) {
	p.advance() // 'cast'

	if _, err := p.expect(token.LParen, "E002", "'('"); err != nil {
		return nil, err
	}

	vName, err := p.expect(token.Ident, "E005", "'value'")
	if err != nil {
		return nil, err
	}

	if vName.Ident != "value" {
		return nil, p.errAt(vName.Span, "E005", "cast requires cast(value = expr, target = Type)")
	}

	if _, err := p.expect(token.Eq, "E005", "'='"); err != nil {
		return nil, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Comma, "E004", "','"); err != nil {
		return nil, err
	}

	tName, err := p.expect(token.Ident, "E005", "'target'")
	if err != nil {
		return nil, err
	}

	if tName.Ident != "target" {
		return nil, p.errAt(tName.Span, "E005", "cast requires cast(value = expr, target = Type)")
	}

	if _, err := p.expect(token.Eq, "E005", "'='"); err != nil {
		return nil, err
	}

	target, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen, "E002", "')'"); err != nil {
		return nil, err
	}

	return &ast.CastExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Value: value, Target: target}, nil
}

func (p *Parser) parseSpawn(start int) (ast.Expr, *diag.Diagnostic) {
	p.advance() // 'spawn'

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.SpawnExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Body: body}, nil
}

// parseIfExpr parses an `if` in expression position. An `if` at the start
// of a statement is parsed by parseIfStmt into an *ast.IfStmt instead.
func (p *Parser) parseIfExpr(start int) (ast.Expr, *diag.Diagnostic) {
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

	node := &ast.IfExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Cond: cond, Then: then}

	if p.match(token.KwElse) {
		if p.check(token.KwIf) {
			elseIf, err := p.parseIfExpr(p.cur().Span.Start())
			if err != nil {
				return nil, err
			}

			node.ElseIf = elseIf.(*ast.IfExpr)
		} else {
			elseBlk, err := p.parseBlock()
			if err != nil {
				return nil, err
			}

			node.Else = elseBlk
		}
	}

	node.ExprBase = ast.NewExprBase(p.spanFrom(start))

	return node, nil
}

func (p *Parser) parseMatch(start int) (ast.Expr, *diag.Diagnostic) {
	p.advance() // 'match'

	if _, err := p.expect(token.LParen, "E002", "'('"); err != nil {
		return nil, err
	}

	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen, "E002", "')'"); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace, "E003", "'{'"); err != nil {
		return nil, err
	}

	var arms []ast.MatchArm

	for !p.check(token.RBrace) {
		armStart := p.cur().Span.Start()

		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.FatArrow, "E004", "'=>'"); err != nil {
			return nil, err
		}

		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		arms = append(arms, ast.MatchArm{Pattern: pat, Body: body, Span: p.spanFrom(armStart)})

		if !p.match(token.Comma) {
			break
		}
	}

	if _, err := p.expect(token.RBrace, "E003", "'}'"); err != nil {
		return nil, err
	}

	return &ast.MatchExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Scrutinee: scrutinee, Arms: arms}, nil
}

// parseIdentOrCtor disambiguates a bare identifier from `Type.init(...)`,
// `EnumName::Variant(...)`, and `Variant(...)` enum-constructor forms.
func (p *Parser) parseIdentOrCtor(start int) (ast.Expr, *diag.Diagnostic) {
	name := p.advance()

	if p.check(token.ColonColon) {
		p.advance()

		variant, err := p.expect(token.Ident, "E004", "a variant name")
		if err != nil {
			return nil, err
		}

		var args []ast.Arg

		if p.check(token.LParen) {
			args, err = p.parseArgs()
			if err != nil {
				return nil, err
			}
		}

		return &ast.EnumCtorExpr{
			ExprBase: ast.NewExprBase(p.spanFrom(start)), Enum: name.Ident, Variant: variant.Ident, Args: args,
		}, nil
	}

	if p.check(token.Dot) {
		save := p.pos
		p.advance() // '.'

		if p.check(token.KwInit) {
			p.advance()

			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}

			return &ast.CtorCallExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Type: name.Ident, Args: args}, nil
		}

		p.pos = save
	}

	return &ast.Ident{ExprBase: ast.NewExprBase(p.spanFrom(start)), Name: name.Ident}, nil
}
