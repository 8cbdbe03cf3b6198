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

// Package ast defines the Plat abstract syntax tree produced by pkg/parser.
// Every node carries a source.Span (spec.md §3's "Span" invariant: spans
// are monotone non-decreasing in source text within any node's children).
// Nodes are built once during parsing and are immutable thereafter.
package ast

import "github.com/plat-lang/platc/pkg/source"

// Program is the root of a single source file's AST.
type Program struct {
	Module  *ModuleDecl // nil if the file declares none
	Uses    []*UseDecl
	Aliases []*TypeAlias
	Newtypes []*Newtype
	Enums   []*EnumDecl
	Classes []*ClassDecl
	Funcs   []*FuncDecl
	Tests   []*TestBlock
	Benches []*BenchBlock
	Span    source.Span
}

// ModuleDecl is `mod a::b::c;`.
type ModuleDecl struct {
	Path []string
	Span source.Span
}

// UseDecl is `use a::b;`.
type UseDecl struct {
	Path []string
	Span source.Span
}

// TypeAlias is `pub? type N = T;`.
type TypeAlias struct {
	Pub  bool
	Name string
	Type Type
	Span source.Span
}

// Newtype is `pub? newtype N = T;`.
type Newtype struct {
	Pub  bool
	Name string
	Type Type
	Span source.Span
}

// Param is one function/method parameter.
type Param struct {
	Name    string
	Type    Type
	Default Expr // nil if no default
	Span    source.Span
}

// FuncDecl is a top-level or class-method function declaration.
type FuncDecl struct {
	Pub      bool
	Virtual  bool
	Override bool
	Mut      bool
	Name     string // "init" for constructors
	Generics []string
	Params   []Param
	Return   Type // nil if no declared return type
	Body     *Block
	Span     source.Span
}

// Field is a class field declaration.
type Field struct {
	Pub     bool
	Mutable bool // `var` vs `let`
	Name    string
	Type    Type
	Span    source.Span
}

// ClassDecl is `pub? class Name(: Parent)? { fields; methods }`.
type ClassDecl struct {
	Pub      bool
	Name     string
	Generics []string
	Parent   string // "" if none
	Fields   []Field
	Methods  []*FuncDecl
	Span     source.Span
}

// EnumVariant is `Name` or `Name(T, T, ...)`.
type EnumVariant struct {
	Name   string
	Fields []Type
	Span   source.Span
}

// EnumDecl is `pub? enum Name<T...> { variants; methods }`.
type EnumDecl struct {
	Pub      bool
	Name     string
	Generics []string
	Variants []EnumVariant
	Methods  []*FuncDecl
	Span     source.Span
}

// TestBlock is `test NAME { fn ... }`.
type TestBlock struct {
	Name string
	Func *FuncDecl
	Span source.Span
}

// BenchBlock is `bench NAME { fn ... }`.
type BenchBlock struct {
	Name string
	Func *FuncDecl
	Span source.Span
}
