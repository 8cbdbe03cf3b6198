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

// Package sema implements Plat's semantic analyzer: per-module symbol
// tables, duplicate-definition and shadowing checks, type rules for
// expressions and statements, named-argument call validation, class
// inheritance/override rules, and match exhaustiveness, per spec.md §6.
// It is grounded on the teacher's pkg/corset/compiler Scope/Environment
// split, simplified from Corset's column/constraint domain to Plat's
// value/function/class domain.
package sema

import (
	"github.com/plat-lang/platc/pkg/ast"
)

// FuncSig is a resolved function or method signature.
type FuncSig struct {
	Name     string
	Params   []ast.Param
	Return   ast.Type
	Virtual  bool
	Override bool
	Decl     *ast.FuncDecl
}

// ClassInfo is a resolved class's shape: its own fields/methods plus a
// cached pointer to its parent (nil for a root class).
type ClassInfo struct {
	Decl    *ast.ClassDecl
	Parent  *ClassInfo
	Fields  map[string]ast.Field
	Methods map[string]*FuncSig
}

// AllFields returns this class's fields in inherited-then-own order,
// matching the runtime instance layout spec.md §8 requires (vtable
// pointer + inherited-then-own fields).
func (c *ClassInfo) AllFields() []ast.Field {
	var fields []ast.Field
	if c.Parent != nil {
		fields = append(fields, c.Parent.AllFields()...)
	}

	for _, f := range c.Decl.Fields {
		fields = append(fields, f)
	}

	return fields
}

// ResolveMethod looks up a method by name, searching up the inheritance
// chain, and returns the most-derived override along with its declaring
// class.
func (c *ClassInfo) ResolveMethod(name string) (*FuncSig, *ClassInfo) {
	if m, ok := c.Methods[name]; ok {
		return m, c
	}

	if c.Parent != nil {
		return c.Parent.ResolveMethod(name)
	}

	return nil, nil
}

// EnumInfo is a resolved enum's shape.
type EnumInfo struct {
	Decl     *ast.EnumDecl
	Variants map[string]ast.EnumVariant
	Methods  map[string]*FuncSig
}

// Module is the symbol table for a single source file: every top-level
// name it defines, keyed by kind.
type Module struct {
	Path     string
	Funcs    map[string]*FuncSig
	Classes  map[string]*ClassInfo
	Enums    map[string]*EnumInfo
	Aliases  map[string]ast.Type
	Newtypes map[string]ast.Type
}

// NewModule builds an empty module symbol table.
func NewModule(path string) *Module {
	return &Module{
		Path:     path,
		Funcs:    make(map[string]*FuncSig),
		Classes:  make(map[string]*ClassInfo),
		Enums:    make(map[string]*EnumInfo),
		Aliases:  make(map[string]ast.Type),
		Newtypes: make(map[string]ast.Type),
	}
}

// Scope is a lexical chain of local-variable bindings, rooted at a
// function's parameter list and growing one level per nested block.
// Modeled on the teacher's ModuleScope parent-chain lookup
// (pkg/corset/compiler/scope.go), specialized from column bindings to
// (type, mutable) local bindings.
type Scope struct {
	parent *Scope
	vars   map[string]localBinding
}

type localBinding struct {
	Type    ast.Type
	Mutable bool
}

// NewScope creates a root scope with no parent.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]localBinding)}
}

// Push creates a child scope nested under s.
func (s *Scope) Push() *Scope {
	return &Scope{parent: s, vars: make(map[string]localBinding)}
}

// DeclaredHere reports whether name is bound directly in this scope level
// (not an ancestor) — used to detect illegal same-block redeclaration as
// distinct from legal outer-scope shadowing.
func (s *Scope) DeclaredHere(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// Declare binds name in this scope level.
func (s *Scope) Declare(name string, ty ast.Type, mutable bool) {
	s.vars[name] = localBinding{Type: ty, Mutable: mutable}
}

// Lookup searches this scope and its ancestors for name.
func (s *Scope) Lookup(name string) (ast.Type, bool, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			return b.Type, b.Mutable, true
		}
	}

	return ast.Type{}, false, false
}
