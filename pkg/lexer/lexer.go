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

// Package lexer turns a source.File into a stream of token.Token values,
// per spec.md §4.1. It is a rule-ordered scanner in the style of
// pkg/util/source/lex in the teacher (greedy multi-character operator
// matching, one rule tried per position), specialized to Plat's fixed
// token set and extended with stateful string-interpolation sub-lexing,
// which the teacher's S-expression lexer has no analogue for.
package lexer

import (
	"fmt"
	"strings"

	"github.com/plat-lang/platc/pkg/diag"
	"github.com/plat-lang/platc/pkg/source"
	"github.com/plat-lang/platc/pkg/token"
)

// Lexer scans one source.File into tokens on demand.
type Lexer struct {
	file *source.File
	text []byte
	pos  int
}

// New constructs a Lexer over a source file.
func New(file *source.File) *Lexer {
	return &Lexer{file: file, text: file.Text()}
}

// All scans the entire file into a token slice terminated by an Eof token,
// or returns the first diagnostic encountered.
func All(file *source.File) ([]token.Token, *diag.Diagnostic) {
	l := New(file)

	var toks []token.Token

	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)

		if tok.Kind == token.Eof {
			return toks, nil
		}
	}
}

func (l *Lexer) syntaxErr(span source.Span, msg string) *diag.Diagnostic {
	return diag.New(diag.KindSyntax, "E000", span, msg)
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.text) {
		return 0
	}

	return l.text[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.text) {
		return 0
	}

	return l.text[l.pos+offset]
}

func (l *Lexer) skipTrivia() {
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.text) && l.text[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

// Next scans and returns the next token, or a diagnostic on malformed
// input. Returns an Eof token (never an error) once the input is
// exhausted.
func (l *Lexer) Next() (token.Token, *diag.Diagnostic) {
	l.skipTrivia()

	start := l.pos

	if l.pos >= len(l.text) {
		return token.Token{Kind: token.Eof, Span: source.NewSpan(start, start)}, nil
	}

	c := l.text[l.pos]

	switch {
	case isDigit(c):
		return l.scanNumber()
	case isIdentStart(c):
		return l.scanIdent()
	case c == '"':
		return l.scanString()
	default:
		return l.scanOperator()
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *Lexer) scanIdent() (token.Token, *diag.Diagnostic) {
	start := l.pos
	for l.pos < len(l.text) && isIdentCont(l.text[l.pos]) {
		l.pos++
	}

	name := string(l.text[start:l.pos])
	span := source.NewSpan(start, l.pos)

	if kind, ok := token.Lookup(name); ok {
		return token.Token{Kind: kind, Span: span, Ident: name}, nil
	}

	return token.Token{Kind: token.Ident, Span: span, Ident: name}, nil
}

// scanNumber handles both integer and float literals, including `_`
// digit-group separators and the i8/i16/i32/i64/f8/f16/f32/f64 suffixes.
func (l *Lexer) scanNumber() (token.Token, *diag.Diagnostic) {
	start := l.pos

	digits := func() {
		for l.pos < len(l.text) && (isDigit(l.text[l.pos]) || l.text[l.pos] == '_') {
			l.pos++
		}
	}

	digits()

	isFloat := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.pos++ // consume '.'
		digits()
	}

	text := strings.ReplaceAll(string(l.text[start:l.pos]), "_", "")

	if isFloat {
		suffix, ok := l.scanFloatSuffix()
		if !ok {
			return token.Token{}, l.syntaxErr(source.NewSpan(start, l.pos), "invalid float suffix")
		}

		var f float64
		if _, err := fmt.Sscanf(text, "%g", &f); err != nil {
			return token.Token{}, l.syntaxErr(source.NewSpan(start, l.pos), "malformed float literal")
		}

		return token.Token{
			Kind: token.FloatLiteral, Span: source.NewSpan(start, l.pos),
			FloatValue: f, FloatType: suffix,
		}, nil
	}

	suffix, ok := l.scanIntSuffix()
	if !ok {
		return token.Token{}, l.syntaxErr(source.NewSpan(start, l.pos), "invalid integer suffix")
	}

	var n int64
	if _, err := fmt.Sscanf(text, "%d", &n); err != nil {
		return token.Token{}, l.syntaxErr(source.NewSpan(start, l.pos), "malformed integer literal")
	}

	return token.Token{
		Kind: token.IntLiteral, Span: source.NewSpan(start, l.pos),
		IntValue: n, IntType: suffix,
	}, nil
}

func (l *Lexer) scanIntSuffix() (token.IntSuffix, bool) {
	for _, s := range []struct {
		text   string
		suffix token.IntSuffix
	}{
		{"i8", token.Int8}, {"i16", token.Int16}, {"i32", token.Int32}, {"i64", token.Int64},
	} {
		if strings.HasPrefix(string(l.text[l.pos:]), s.text) && !isIdentCont(l.peekAt(len(s.text))) {
			l.pos += len(s.text)
			return s.suffix, true
		}
	}

	if isIdentStart(l.peek()) {
		return 0, false
	}

	return token.Int32, true
}

func (l *Lexer) scanFloatSuffix() (token.FloatSuffix, bool) {
	for _, s := range []struct {
		text   string
		suffix token.FloatSuffix
	}{
		{"f8", token.Float8}, {"f16", token.Float16}, {"f32", token.Float32}, {"f64", token.Float64},
	} {
		if strings.HasPrefix(string(l.text[l.pos:]), s.text) && !isIdentCont(l.peekAt(len(s.text))) {
			l.pos += len(s.text)
			return s.suffix, true
		}
	}

	if isIdentStart(l.peek()) {
		return 0, false
	}

	return token.Float64, true
}

// scanString scans a "..." literal, handling escapes and ${...}
// interpolation. Brace depth is tracked so nested braces inside an
// interpolated expression (e.g. a dict/set literal) don't prematurely
// close the interpolation.
func (l *Lexer) scanString() (token.Token, *diag.Diagnostic) {
	start := l.pos
	l.pos++ // consume opening quote

	var (
		parts        []token.StringPart
		plain        strings.Builder
		interpolated = false
	)

	flushPlain := func() {
		if plain.Len() > 0 {
			parts = append(parts, token.StringPart{Text: plain.String()})
			plain.Reset()
		}
	}

	for {
		if l.pos >= len(l.text) {
			return token.Token{}, l.syntaxErr(source.NewSpan(start, l.pos), "unterminated string literal")
		}

		c := l.text[l.pos]

		switch {
		case c == '"':
			l.pos++
			flushPlain()

			if !interpolated {
				return token.Token{
					Kind: token.StringLiteral, Span: source.NewSpan(start, l.pos),
					Str: joinPlain(parts),
				}, nil
			}

			return token.Token{
				Kind: token.InterpolatedString, Span: source.NewSpan(start, l.pos),
				Parts: parts,
			}, nil
		case c == '\\':
			esc, err := l.scanEscape(start)
			if err != nil {
				return token.Token{}, err
			}

			plain.WriteByte(esc)
		case c == '$' && l.peekAt(1) == '{':
			interpolated = true
			flushPlain()

			exprStart := l.pos + 2
			l.pos += 2

			depth := 1
			for depth > 0 {
				if l.pos >= len(l.text) {
					return token.Token{}, l.syntaxErr(source.NewSpan(start, l.pos), "unclosed interpolation")
				}

				switch l.text[l.pos] {
				case '{':
					depth++
				case '}':
					depth--
				}

				if depth > 0 {
					l.pos++
				}
			}

			parts = append(parts, token.StringPart{IsExpr: true, Text: string(l.text[exprStart:l.pos])})
			l.pos++ // consume closing '}'
		default:
			plain.WriteByte(c)
			l.pos++
		}
	}
}

func joinPlain(parts []token.StringPart) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}

	return b.String()
}

func (l *Lexer) scanEscape(start int) (byte, *diag.Diagnostic) {
	l.pos++ // consume backslash

	if l.pos >= len(l.text) {
		return 0, l.syntaxErr(source.NewSpan(start, l.pos), "unterminated string literal")
	}

	c := l.text[l.pos]
	l.pos++

	switch c {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '$':
		return '$', nil
	default:
		return 0, l.syntaxErr(source.NewSpan(l.pos-2, l.pos), fmt.Sprintf("invalid escape sequence '\\%c'", c))
	}
}

// operator table, longest-match-first within each starting byte.
type opRule struct {
	text string
	kind token.Kind
}

var opRules = []opRule{
	{"->", token.Arrow}, {"=>", token.FatArrow}, {"::", token.ColonColon},
	{"..=", token.DotDotEq}, {"..", token.DotDot},
	{"==", token.EqEq}, {"!=", token.BangEq}, {"<=", token.LtEq}, {">=", token.GtEq},
	{"(", token.LParen}, {")", token.RParen}, {"{", token.LBrace}, {"}", token.RBrace},
	{"[", token.LBracket}, {"]", token.RBracket},
	{",", token.Comma}, {";", token.Semicolon}, {":", token.Colon}, {".", token.Dot},
	{"?", token.Question}, {"@", token.At},
	{"+", token.Plus}, {"-", token.Minus}, {"*", token.Star}, {"/", token.Slash}, {"%", token.Percent},
	{"=", token.Eq}, {"<", token.Lt}, {">", token.Gt},
}

var sortedOpRules = sortByLengthDesc(opRules)

func sortByLengthDesc(rules []opRule) []opRule {
	out := make([]opRule, len(rules))
	copy(out, rules)

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j].text) > len(out[j-1].text); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}

	return out
}

// scanOperator matches punctuation/operators greedily: multi-character
// operators (->, =>, ::, ..=, .., ==, !=, <=, >=) are tried before their
// single-character prefixes, per spec.md §4.1.
func (l *Lexer) scanOperator() (token.Token, *diag.Diagnostic) {
	start := l.pos
	rest := string(l.text[l.pos:])

	for _, r := range sortedOpRules {
		if strings.HasPrefix(rest, r.text) {
			l.pos += len(r.text)
			return token.Token{Kind: r.kind, Span: source.NewSpan(start, l.pos)}, nil
		}
	}

	if l.text[l.pos] == '!' {
		return token.Token{}, l.syntaxErr(source.NewSpan(start, start+1), "stray '!' (did you mean '!='?)")
	}

	l.pos++

	return token.Token{}, l.syntaxErr(source.NewSpan(start, l.pos), fmt.Sprintf("unexpected character %q", rune(l.text[start])))
}
