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
package sema

import (
	"fmt"

	"github.com/plat-lang/platc/pkg/ast"
	"github.com/plat-lang/platc/pkg/diag"
	"github.com/plat-lang/platc/pkg/source"
)

// BuildModule populates a Module's symbol table from a parsed program,
// recording a *diag.Diagnostic for any duplicate top-level name.
func BuildModule(path string, prog *ast.Program) (*Module, []*diag.Diagnostic) {
	m := NewModule(path)

	var errs []*diag.Diagnostic

	seen := make(map[string]bool)

	checkDup := func(name string) bool {
		if seen[name] {
			return false
		}

		seen[name] = true

		return true
	}

	for _, f := range prog.Funcs {
		if !checkDup(f.Name) {
			errs = append(errs, duplicateDiag(f.Name, f.Span))
			continue
		}

		m.Funcs[f.Name] = &FuncSig{Name: f.Name, Params: f.Params, Return: f.Return, Decl: f}
	}

	for _, e := range prog.Enums {
		if !checkDup(e.Name) {
			errs = append(errs, duplicateDiag(e.Name, e.Span))
			continue
		}

		info := &EnumInfo{Decl: e, Variants: make(map[string]ast.EnumVariant), Methods: make(map[string]*FuncSig)}

		for _, v := range e.Variants {
			if _, dup := info.Variants[v.Name]; dup {
				errs = append(errs, duplicateDiag(e.Name+"::"+v.Name, v.Span))
				continue
			}

			info.Variants[v.Name] = v
		}

		for _, meth := range e.Methods {
			info.Methods[meth.Name] = &FuncSig{
				Name: meth.Name, Params: meth.Params, Return: meth.Return,
				Virtual: meth.Virtual, Override: meth.Override, Decl: meth,
			}
		}

		m.Enums[e.Name] = info
	}

	for _, a := range prog.Aliases {
		if !checkDup(a.Name) {
			errs = append(errs, duplicateDiag(a.Name, a.Span))
			continue
		}

		m.Aliases[a.Name] = a.Type
	}

	for _, n := range prog.Newtypes {
		if !checkDup(n.Name) {
			errs = append(errs, duplicateDiag(n.Name, n.Span))
			continue
		}

		m.Newtypes[n.Name] = n.Type
	}

	// Classes are registered in a first pass (so forward/mutual references
	// resolve), then linked to their parent in a second pass.
	for _, c := range prog.Classes {
		if !checkDup(c.Name) {
			errs = append(errs, duplicateDiag(c.Name, c.Span))
			continue
		}

		info := &ClassInfo{Decl: c, Fields: make(map[string]ast.Field), Methods: make(map[string]*FuncSig)}

		for _, f := range c.Fields {
			if _, dup := info.Fields[f.Name]; dup {
				errs = append(errs, duplicateDiag(c.Name+"."+f.Name, f.Span))
				continue
			}

			info.Fields[f.Name] = f
		}

		for _, meth := range c.Methods {
			info.Methods[meth.Name] = &FuncSig{
				Name: meth.Name, Params: meth.Params, Return: meth.Return,
				Virtual: meth.Virtual, Override: meth.Override, Decl: meth,
			}
		}

		m.Classes[c.Name] = info
	}

	for _, c := range prog.Classes {
		info, ok := m.Classes[c.Name]
		if !ok || c.Parent == "" {
			continue
		}

		parent, ok := m.Classes[c.Parent]
		if !ok {
			errs = append(errs, diag.New(diag.KindType, "E101", c.Span, fmt.Sprintf("unknown parent class %q", c.Parent)))
			continue
		}

		info.Parent = parent
	}

	return m, errs
}

func duplicateDiag(name string, span source.Span) *diag.Diagnostic {
	return diag.New(diag.KindType, "E100", span, fmt.Sprintf("%q is defined more than once", name))
}
