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

// Package codegen lowers a type-checked ast.Program into an object.Module:
// flat, register-based instruction streams pkg/interp can execute directly.
// It is grounded on the teacher's pkg/corset/compiler/translator.go and
// pkg/asm/compiler.go: a single recursive tree-walk emitting one
// instruction at a time into a growing slice, with forward jumps patched
// once their target is known.
package codegen

import (
	"fmt"

	"github.com/plat-lang/platc/pkg/ast"
	"github.com/plat-lang/platc/pkg/object"
	"github.com/plat-lang/platc/pkg/sema"
)

// Lower compiles every function, method, and class/enum layout of prog
// into a fresh object.Module.
func Lower(mod *sema.Module, prog *ast.Program) (*object.Module, error) {
	out := object.NewModule(mod.Path)

	for _, e := range prog.Enums {
		out.Enums[e.Name] = lowerEnumLayout(e)
	}

	for _, c := range prog.Classes {
		info := mod.Classes[c.Name]
		out.Classes[c.Name] = lowerClassLayout(c, info)
	}

	for _, f := range prog.Funcs {
		fn, err := newFuncBuilder(out, mod, nil, f.Name).build(f)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", f.Name, err)
		}

		out.Functions[f.Name] = fn
	}

	for _, c := range prog.Classes {
		info := mod.Classes[c.Name]
		for _, m := range c.Methods {
			qualified := c.Name + "." + m.Name
			fn, err := newFuncBuilder(out, mod, info, qualified).build(m)
			if err != nil {
				return nil, fmt.Errorf("method %s: %w", qualified, err)
			}

			out.Functions[qualified] = fn
		}
	}

	for _, e := range prog.Enums {
		for _, m := range e.Methods {
			qualified := e.Name + "." + m.Name
			fn, err := newFuncBuilder(out, mod, nil, qualified).build(m)
			if err != nil {
				return nil, fmt.Errorf("method %s: %w", qualified, err)
			}

			out.Functions[qualified] = fn
		}
	}

	return out, nil
}

func lowerEnumLayout(e *ast.EnumDecl) *object.EnumLayout {
	layout := &object.EnumLayout{Name: e.Name, Variants: make(map[string]object.EnumVariantLayout)}

	for _, v := range e.Variants {
		layout.Variants[v.Name] = object.EnumVariantLayout{
			Discriminant: variantHash(v.Name),
			NumFields:    len(v.Fields),
		}
	}

	return layout
}

func lowerClassLayout(c *ast.ClassDecl, info *sema.ClassInfo) *object.ClassLayout {
	layout := &object.ClassLayout{Name: c.Name, Parent: c.Parent}

	if info != nil {
		for _, f := range info.AllFields() {
			layout.Fields = append(layout.Fields, f.Name)
		}
	}

	for _, m := range c.Methods {
		if m.Virtual || m.Override {
			layout.VTable = append(layout.VTable, m.Name)
		}
	}

	return layout
}
