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

// parsePattern parses a single match-arm pattern: a literal, an identifier
// (bare catch-all binding), or an enum-variant destructure in either
// `EnumName::Variant(...)` or inferred `Variant(...)` form.
func (p *Parser) parsePattern() (ast.Pattern, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	switch p.cur().Kind {
	case token.IntLiteral, token.FloatLiteral, token.StringLiteral, token.KwTrue, token.KwFalse, token.Minus:
		val, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &ast.LiteralPattern{PatternBase: ast.NewPatternBase(p.spanFrom(start)), Value: val}, nil
	case token.Ident:
		name := p.advance()

		if p.check(token.ColonColon) {
			p.advance()

			variant, err := p.expect(token.Ident, "E004", "a variant name")
			if err != nil {
				return nil, err
			}

			var fields []ast.PatternField
			if p.check(token.LParen) {
				fields, err = p.parsePatternFields()
				if err != nil {
					return nil, err
				}
			}

			return &ast.EnumPattern{
				PatternBase: ast.NewPatternBase(p.spanFrom(start)), Enum: name.Ident, Variant: variant.Ident, Fields: fields,
			}, nil
		}

		if p.check(token.LParen) {
			fields, err := p.parsePatternFields()
			if err != nil {
				return nil, err
			}

			return &ast.EnumPattern{
				PatternBase: ast.NewPatternBase(p.spanFrom(start)), Variant: name.Ident, Fields: fields,
			}, nil
		}

		return &ast.IdentPattern{PatternBase: ast.NewPatternBase(p.spanFrom(start)), Name: name.Ident}, nil
	default:
		return nil, p.errHere("E004", "expected a pattern")
	}
}

func (p *Parser) parsePatternFields() ([]ast.PatternField, *diag.Diagnostic) {
	p.advance() // '('

	var fields []ast.PatternField

	for !p.check(token.RParen) {
		name, err := p.expect(token.Ident, "E004", "a field binding name")
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.Colon, "E004", "':'"); err != nil {
			return nil, err
		}

		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}

		fields = append(fields, ast.PatternField{Name: name.Ident, Type: ty})

		if !p.match(token.Comma) {
			break
		}
	}

	if _, err := p.expect(token.RParen, "E002", "')'"); err != nil {
		return nil, err
	}

	return fields, nil
}
