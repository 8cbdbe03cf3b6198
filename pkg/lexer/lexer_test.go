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
package lexer

import (
	"testing"

	"github.com/plat-lang/platc/pkg/source"
	"github.com/plat-lang/platc/pkg/token"
)

func scan(t *testing.T, text string) []token.Token {
	t.Helper()

	file := source.NewFile("<test>", []byte(text))

	toks, err := All(file)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}

	return toks
}

func TestKeywordsAndIdents(t *testing.T) {
	toks := scan(t, "fn main let x")
	want := []token.Kind{token.KwFn, token.Ident, token.KwLet, token.Ident, token.Eof}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}

	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestGreedyOperators(t *testing.T) {
	toks := scan(t, "-> => :: ..= .. == != <= >=")

	want := []token.Kind{
		token.Arrow, token.FatArrow, token.ColonColon, token.DotDotEq, token.DotDot,
		token.EqEq, token.BangEq, token.LtEq, token.GtEq, token.Eof,
	}

	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestStrayBangIsIllegal(t *testing.T) {
	file := source.NewFile("<test>", []byte("!true"))

	_, err := All(file)
	if err == nil {
		t.Fatal("expected a syntax error for stray '!'")
	}
}

func TestIntegerSuffixDefaultsToI32(t *testing.T) {
	toks := scan(t, "42")
	if toks[0].IntType != token.Int32 {
		t.Errorf("default int suffix = %v, want Int32", toks[0].IntType)
	}

	if toks[0].IntValue != 42 {
		t.Errorf("value = %d, want 42", toks[0].IntValue)
	}
}

func TestIntegerWithExplicitSuffixAndUnderscores(t *testing.T) {
	toks := scan(t, "1_000_000i64")
	if toks[0].IntType != token.Int64 {
		t.Errorf("suffix = %v, want Int64", toks[0].IntType)
	}

	if toks[0].IntValue != 1000000 {
		t.Errorf("value = %d, want 1000000", toks[0].IntValue)
	}
}

func TestFloatLiteral(t *testing.T) {
	toks := scan(t, "3.14f32")
	if toks[0].Kind != token.FloatLiteral {
		t.Fatalf("kind = %v, want FloatLiteral", toks[0].Kind)
	}

	if toks[0].FloatType != token.Float32 {
		t.Errorf("suffix = %v, want Float32", toks[0].FloatType)
	}
}

func TestPlainString(t *testing.T) {
	toks := scan(t, `"hello\nworld"`)
	if toks[0].Kind != token.StringLiteral {
		t.Fatalf("kind = %v, want StringLiteral", toks[0].Kind)
	}

	if toks[0].Str != "hello\nworld" {
		t.Errorf("value = %q", toks[0].Str)
	}
}

func TestInterpolatedStringWithNestedBraces(t *testing.T) {
	toks := scan(t, `"count: ${ {"n": 1}.get(key = "n") } done"`)
	if toks[0].Kind != token.InterpolatedString {
		t.Fatalf("kind = %v, want InterpolatedString", toks[0].Kind)
	}

	parts := toks[0].Parts
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3: %+v", len(parts), parts)
	}

	if parts[0].IsExpr || parts[0].Text != "count: " {
		t.Errorf("part 0 = %+v", parts[0])
	}

	if !parts[1].IsExpr || parts[1].Text != ` {"n": 1}.get(key = "n") ` {
		t.Errorf("part 1 = %+v", parts[1])
	}

	if parts[2].IsExpr || parts[2].Text != " done" {
		t.Errorf("part 2 = %+v", parts[2])
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	file := source.NewFile("<test>", []byte(`"abc`))

	_, err := All(file)
	if err == nil {
		t.Fatal("expected unterminated-string error")
	}
}

// TestSpanRoundTrip is the universal invariant from spec.md §8 (1): lexing
// then printing each non-interpolated token's source span yields exactly
// the original bytes of that token.
func TestSpanRoundTrip(t *testing.T) {
	text := "fn main() -> Int32 { return 40 + 2; }"
	file := source.NewFile("<test>", []byte(text))

	toks, err := All(file)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}

	for _, tok := range toks {
		if tok.Kind == token.Eof {
			continue
		}

		got := string(file.Slice(tok.Span))
		want := text[tok.Span.Start():tok.Span.End()]

		if got != want {
			t.Errorf("span %s: got %q, want %q", tok.Span, got, want)
		}
	}
}
