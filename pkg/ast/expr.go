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

// Expr is implemented by every expression node. Span returns the node's
// source extent.
type Expr interface {
	exprNode()
	Span() source.Span
}

type ExprBase struct{ span source.Span }

func (ExprBase) exprNode()            {}
func (e ExprBase) Span() source.Span { return e.span }

// BoolLit is a `true`/`false` literal.
type BoolLit struct {
	ExprBase
	Value bool
}

// IntLit is an integer literal with its resolved suffix type.
type IntLit struct {
	ExprBase
	Value int64
	Type  string // Int8, Int16, Int32, Int64
}

// FloatLit is a float literal with its resolved suffix type.
type FloatLit struct {
	ExprBase
	Value float64
	Type  string // Float8, Float16, Float32, Float64
}

// StringLit is a plain (non-interpolated) string literal.
type StringLit struct {
	ExprBase
	Value string
}

// InterpPart is one fragment of an InterpString: either literal text or a
// parsed sub-expression.
type InterpPart struct {
	Text string
	Expr Expr // nil when this part is plain text
}

// InterpString is a `"...${expr}..."` interpolated string literal.
type InterpString struct {
	ExprBase
	Parts []InterpPart
}

// ArrayLit is a `[e1, e2, ...]` array literal.
type ArrayLit struct {
	ExprBase
	Elements []Expr
}

// DictEntry is one `key: value` pair of a dict literal.
type DictEntry struct {
	Key   Expr
	Value Expr
}

// DictLit is a `{k1: v1, k2: v2}` dict literal.
type DictLit struct {
	ExprBase
	Entries []DictEntry
}

// SetLit is a `{e1, e2, ...}` set literal.
type SetLit struct {
	ExprBase
	Elements []Expr
}

// Ident is a bare identifier reference.
type Ident struct {
	ExprBase
	Name string
}

// Self is the `self` receiver expression.
type Self struct{ ExprBase }

// BinaryExpr is `lhs OP rhs`.
type BinaryExpr struct {
	ExprBase
	Op       string
	Lhs, Rhs Expr
}

// UnaryExpr is `OP operand` (`-`, `not`).
type UnaryExpr struct {
	ExprBase
	Op      string
	Operand Expr
}

// Arg is one named call argument: `name = expr`.
type Arg struct {
	Name string
	Expr Expr
}

// CallExpr is a function call with mandatory named arguments:
// `callee(name = expr, ...)`.
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Arg
}

// MethodCallExpr is `receiver.method(name = expr, ...)`.
type MethodCallExpr struct {
	ExprBase
	Receiver Expr
	Method   string
	Args     []Arg
}

// IndexExpr is `collection[index]`.
type IndexExpr struct {
	ExprBase
	Collection Expr
	Index      Expr
}

// MemberExpr is `receiver.field`.
type MemberExpr struct {
	ExprBase
	Receiver Expr
	Field    string
}

// AssignExpr is `target = value`.
type AssignExpr struct {
	ExprBase
	Target Expr
	Value  Expr
}

// BlockExpr wraps a *Block so it can be used in expression position (the
// value of an if-expression arm).
type BlockExpr struct {
	ExprBase
	Block *Block
}

// EnumCtorExpr is `EnumName::Variant(field = expr, ...)` or, when the enum
// type is inferred from context, `Variant(field = expr, ...)`.
type EnumCtorExpr struct {
	ExprBase
	Enum    string // "" when inferred
	Variant string
	Args    []Arg
}

// MatchArm is one `pattern => expr` arm of a match expression.
type MatchArm struct {
	Pattern Pattern
	Body    Expr
	Span    source.Span
}

// MatchExpr is `match (scrutinee) { arm, arm, ... }`.
type MatchExpr struct {
	ExprBase
	Scrutinee Expr
	Arms      []MatchArm
}

// TryExpr is the postfix `expr?` operator.
type TryExpr struct {
	ExprBase
	Operand Expr
}

// SuperCallExpr is `super.init(name = expr, ...)`.
type SuperCallExpr struct {
	ExprBase
	Args []Arg
}

// CtorCallExpr is `Type.init(name = expr, ...)`.
type CtorCallExpr struct {
	ExprBase
	Type string
	Args []Arg
}

// RangeExpr is `a..b` or `a..=b`.
type RangeExpr struct {
	ExprBase
	Lo, Hi    Expr
	Inclusive bool
}

// IfExpr is the mandatory-brace `if (cond) { ... } else { ... }` form in
// expression position; an `if` that begins a statement is parsed into an
// *IfStmt instead. The else branch is optional: pkg/sema neither requires
// it nor unifies the branch types, and types every IfExpr as Void.
type IfExpr struct {
	ExprBase
	Cond       Expr
	Then       *Block
	Else       *Block // nil if no else branch
	ElseIf     *IfExpr // non-nil for `else if`
}

// CastExpr is `cast(value = expr, target = Type)`.
type CastExpr struct {
	ExprBase
	Value  Expr
	Target Type
}

// SpawnExpr is `spawn { block }`, yielding a task handle.
type SpawnExpr struct {
	ExprBase
	Body *Block
}
