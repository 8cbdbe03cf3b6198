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

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	Span() source.Span
}

type StmtBase struct{ span source.Span }

func (StmtBase) stmtNode()             {}
func (s StmtBase) Span() source.Span  { return s.span }

// Block is a `{ stmt; stmt; ... }` sequence. The last statement, if it is
// an ExprStmt, supplies the block's value when used in expression
// position (if-expression arms, function bodies with an implicit return).
type Block struct {
	Stmts []Stmt
	Span  source.Span
}

// LetStmt is an immutable binding: `let name: Type = expr;`. Type
// annotations are mandatory per spec.md §6.
type LetStmt struct {
	StmtBase
	Name string
	Type Type
	Init Expr
}

// VarStmt is a mutable binding: `var name: Type = expr;`.
type VarStmt struct {
	StmtBase
	Name string
	Type Type
	Init Expr
}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	StmtBase
	Expr Expr
}

// ReturnStmt is `return expr;` or a bare `return;`.
type ReturnStmt struct {
	StmtBase
	Value Expr // nil for a bare return
}

// IfStmt is `if (cond) { ... } else { ... }` used as a statement: its
// result is discarded, so (per spec.md §9's Open Question resolution) the
// branches need not unify and the else branch is optional.
type IfStmt struct {
	StmtBase
	Cond Expr
	Then *Block
	Else Stmt // *IfStmt (else-if) or *BlockStmt or nil
}

// BlockStmt wraps a *Block so it can appear where a Stmt is expected (an
// `else { ... }` that is not an `else if`).
type BlockStmt struct {
	StmtBase
	Block *Block
}

// WhileStmt is `while (cond) { ... }`.
type WhileStmt struct {
	StmtBase
	Cond Expr
	Body *Block
}

// ForStmt is `for (x: T in E) { ... }`.
type ForStmt struct {
	StmtBase
	Var      string
	VarType  Type
	Iterable Expr
	Body     *Block
}

// PrintStmt is `print(value = expr);`. Only the named-argument form is
// accepted (spec.md §9's Open Question resolution).
type PrintStmt struct {
	StmtBase
	Value Expr
}

// ConcurrentStmt is a `concurrent { ... }` structured-concurrency block.
type ConcurrentStmt struct {
	StmtBase
	Body *Block
}
