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
package ast

import "github.com/plat-lang/platc/pkg/source"

// Pattern is implemented by every match-arm pattern: literal, identifier
// (binds a catch-all), or enum-variant destructuring.
type Pattern interface {
	patternNode()
	Span() source.Span
}

type PatternBase struct{ span source.Span }

func (PatternBase) patternNode()         {}
func (p PatternBase) Span() source.Span { return p.span }

// LiteralPattern matches a literal value exactly.
type LiteralPattern struct {
	PatternBase
	Value Expr
}

// IdentPattern binds the scrutinee to a name; also used as the catch-all
// arm required for match exhaustiveness (spec.md §3's "Invariants").
type IdentPattern struct {
	PatternBase
	Name string
}

// PatternField is one `name: Type` binding inside an enum-variant pattern.
type PatternField struct {
	Name string
	Type Type
}

// EnumPattern matches `EnumName::Variant(name: T, ...)`, or
// `Variant(name: T, ...)` when the enum is inferred from context.
type EnumPattern struct {
	PatternBase
	Enum    string // "" when inferred
	Variant string
	Fields  []PatternField
}
