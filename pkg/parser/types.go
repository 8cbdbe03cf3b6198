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

// parseType parses a type annotation: a primitive/nominal name, optionally
// followed by `[T]`/`[K,V]` (List/Dict/Set) or `<T, ...>` (generic
// Name<T...>), per spec.md §3's "Types".
func (p *Parser) parseType() (ast.Type, *diag.Diagnostic) {
	start := p.cur().Span.Start()

	name, err := p.expect(token.Ident, "E004", "a type name")
	if err != nil {
		if isTypeKeyword(p.cur().Kind) {
			name = p.advance()
		} else {
			return ast.Type{}, err
		}
	}

	if p.check(token.LBracket) {
		p.advance()

		var args []ast.Type

		for {
			arg, err := p.parseType()
			if err != nil {
				return ast.Type{}, err
			}

			args = append(args, arg)

			if !p.match(token.Comma) {
				break
			}
		}

		if _, err := p.expect(token.RBracket, "E003", "']'"); err != nil {
			return ast.Type{}, err
		}

		return ast.Type{Name: name.Ident, Args: args, Span: p.spanFrom(start)}, nil
	}

	if p.check(token.Lt) {
		p.advance()

		var args []ast.Type

		for {
			arg, err := p.parseType()
			if err != nil {
				return ast.Type{}, err
			}

			args = append(args, arg)

			if !p.match(token.Comma) {
				break
			}
		}

		if _, err := p.expect(token.Gt, "E004", "'>'"); err != nil {
			return ast.Type{}, err
		}

		return ast.Type{Name: name.Ident, Args: args, Span: p.spanFrom(start)}, nil
	}

	return ast.Type{Name: name.Ident, Span: p.spanFrom(start)}, nil
}

func isTypeKeyword(k token.Kind) bool {
	return k == token.KwList || k == token.KwDict || k == token.KwSet
}
