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

import "github.com/plat-lang/platc/pkg/ast"

var intTypes = map[string]bool{"Int8": true, "Int16": true, "Int32": true, "Int64": true, "Int": true}
var floatTypes = map[string]bool{"Float8": true, "Float16": true, "Float32": true, "Float64": true, "Float": true}

func isInt(t ast.Type) bool   { return intTypes[t.Name] }
func isFloat(t ast.Type) bool { return floatTypes[t.Name] }
func isNumeric(t ast.Type) bool { return isInt(t) || isFloat(t) }
func isBool(t ast.Type) bool  { return t.Name == "Bool" }
func isString(t ast.Type) bool { return t.Name == "String" }

// BoolType, VoidType are the canonical synthetic types sema assigns to
// conditions and statement-position expressions.
var BoolType = ast.Type{Name: "Bool"}
var VoidType = ast.Type{Name: ""}

// typesEqual reports structural equality, following through type aliases
// is the resolver's/checker's job at lookup time (aliases are resolved
// before typesEqual is called) — this is a plain name+args comparison.
func typesEqual(a, b ast.Type) bool {
	if a.Name != b.Name || len(a.Args) != len(b.Args) {
		return false
	}

	for i := range a.Args {
		if !typesEqual(a.Args[i], b.Args[i]) {
			return false
		}
	}

	return true
}

// resolveAlias follows `type`/`newtype` declarations to their underlying
// type, one level at a time. It has no cycle guard, and BuildModule does
// not check an alias's right-hand side, so a self-referential alias makes
// this recurse without end.
func (c *Checker) resolveAlias(t ast.Type) ast.Type {
	if under, ok := c.mod.Aliases[t.Name]; ok {
		return c.resolveAlias(under)
	}

	if under, ok := c.mod.Newtypes[t.Name]; ok {
		return under
	}

	return t
}
