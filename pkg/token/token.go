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

// Package token defines the tagged-union token kinds produced by pkg/lexer
// and consumed by pkg/parser, per spec.md §3's "Token" data model.
package token

import "github.com/plat-lang/platc/pkg/source"

// Kind identifies the syntactic category of a token.
type Kind int

// Token kinds.
const (
	Eof Kind = iota
	Illegal

	Ident
	IntLiteral
	FloatLiteral
	StringLiteral
	InterpolatedString

	// Keywords.
	KwFn
	KwLet
	KwVar
	KwIf
	KwElse
	KwWhile
	KwFor
	KwReturn
	KwTrue
	KwFalse
	KwPrint
	KwAnd
	KwOr
	KwNot
	KwEnum
	KwMatch
	KwMut
	KwVirtual
	KwOverride
	KwClass
	KwInit
	KwSelf
	KwSuper
	KwMod
	KwUse
	KwPub
	KwType
	KwNewtype
	KwTest
	KwBench
	KwConcurrent
	KwSpawn
	KwCast
	KwIn
	KwList
	KwDict
	KwSet

	// Punctuation / operators.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	ColonColon
	Dot
	Question
	At

	Plus
	Minus
	Star
	Slash
	Percent

	Eq
	EqEq
	Bang
	BangEq
	Lt
	LtEq
	Gt
	GtEq

	Arrow    // ->
	FatArrow // =>
	DotDot   // ..
	DotDotEq // ..=
)

var keywords = map[string]Kind{
	"fn":         KwFn,
	"let":        KwLet,
	"var":        KwVar,
	"if":         KwIf,
	"else":       KwElse,
	"while":      KwWhile,
	"for":        KwFor,
	"return":     KwReturn,
	"true":       KwTrue,
	"false":      KwFalse,
	"print":      KwPrint,
	"and":        KwAnd,
	"or":         KwOr,
	"not":        KwNot,
	"enum":       KwEnum,
	"match":      KwMatch,
	"mut":        KwMut,
	"virtual":    KwVirtual,
	"override":   KwOverride,
	"class":      KwClass,
	"init":       KwInit,
	"self":       KwSelf,
	"super":      KwSuper,
	"mod":        KwMod,
	"use":        KwUse,
	"pub":        KwPub,
	"type":       KwType,
	"newtype":    KwNewtype,
	"test":       KwTest,
	"bench":      KwBench,
	"concurrent": KwConcurrent,
	"spawn":      KwSpawn,
	"cast":       KwCast,
	"in":         KwIn,
	"List":       KwList,
	"Dict":       KwDict,
	"Set":        KwSet,
}

// Lookup returns the keyword Kind for an identifier, or (Ident, false) if
// it is not a reserved word.
func Lookup(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IntSuffix identifies the integer-literal width suffix.
type IntSuffix int

// Integer suffixes; Int32 is the default when no suffix is present.
const (
	Int8 IntSuffix = iota
	Int16
	Int32
	Int64
)

// FloatSuffix identifies the float-literal width suffix.
type FloatSuffix int

// Float suffixes; Float64 is the default when no suffix is present.
const (
	Float8 FloatSuffix = iota
	Float16
	Float32
	Float64
)

// StringPart is one element of an InterpolatedString token: either a plain
// text fragment or the verbatim source text of an embedded expression
// (captured for re-lexing/re-parsing, per spec.md §4.1).
type StringPart struct {
	IsExpr bool
	Text   string
}

// Token is a tagged union over all lexical categories, paired with its
// span in the originating source.File.
type Token struct {
	Kind Kind
	Span source.Span

	// Payload, populated depending on Kind.
	Ident     string
	IntValue  int64
	IntType   IntSuffix
	FloatValue float64
	FloatType  FloatSuffix
	Str        string       // StringLiteral
	Parts      []StringPart // InterpolatedString
}

// String renders a short debug form; not used for diagnostics (those use
// Span against the original source.File).
func (t Token) String() string {
	return kindNames[t.Kind]
}

var kindNames = map[Kind]string{
	Eof: "eof", Illegal: "illegal", Ident: "identifier",
	IntLiteral: "integer", FloatLiteral: "float", StringLiteral: "string",
	InterpolatedString: "interpolated-string",
	LParen:             "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Comma: ",", Semicolon: ";", Colon: ":",
	ColonColon: "::", Dot: ".", Question: "?", At: "@",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Eq: "=", EqEq: "==", Bang: "!", BangEq: "!=",
	Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	Arrow: "->", FatArrow: "=>", DotDot: "..", DotDotEq: "..=",
}

func init() {
	for name, kind := range keywords {
		kindNames[kind] = name
	}
}
