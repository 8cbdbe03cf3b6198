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
	"github.com/plat-lang/platc/pkg/ast"
	"github.com/plat-lang/platc/pkg/diag"
)

// checkMatch type-checks a match expression's scrutinee and every arm, then
// verifies exhaustiveness: either a catch-all IdentPattern arm is present,
// or every variant of the scrutinee's enum type is covered by some
// EnumPattern arm, per spec.md §3's match-exhaustiveness invariant.
func (fc *funcChecker) checkMatch(x *ast.MatchExpr, scope *Scope) ast.Type {
	scrutinee := fc.checkExpr(x.Scrutinee, scope)

	var resultType ast.Type

	hasCatchAll := false
	covered := make(map[string]bool)

	for i, arm := range x.Arms {
		armScope := scope.Push()

		switch pat := arm.Pattern.(type) {
		case *ast.IdentPattern:
			hasCatchAll = true
			armScope.Declare(pat.Name, scrutinee, false)
		case *ast.LiteralPattern:
			fc.checkExpr(pat.Value, armScope)
		case *ast.EnumPattern:
			covered[pat.Variant] = true

			enumName := pat.Enum
			if enumName == "" {
				enumName = scrutinee.Name
			}

			info, ok := fc.mod.Enums[enumName]
			if !ok {
				fc.err(diag.KindType, "E122", arm.Body, "unknown enum %q in pattern", enumName)
				break
			}

			variant, ok := info.Variants[pat.Variant]
			if !ok {
				fc.err(diag.KindType, "E123", arm.Body, "enum %q has no variant %q", enumName, pat.Variant)
				break
			}

			for i, f := range pat.Fields {
				if i < len(variant.Fields) {
					armScope.Declare(f.Name, variant.Fields[i], false)
				} else {
					armScope.Declare(f.Name, f.Type, false)
				}
			}
		}

		bodyType := fc.checkExpr(arm.Body, armScope)
		if i == 0 {
			resultType = bodyType
		}
	}

	if !hasCatchAll {
		info, ok := fc.mod.Enums[scrutinee.Name]
		if ok {
			for name := range info.Variants {
				if !covered[name] {
					fc.err(diag.KindType, "E124", x, "match is not exhaustive: missing variant %q", name)
				}
			}
		} else if len(x.Arms) == 0 {
			fc.err(diag.KindType, "E124", x, "match has no arms")
		}
	}

	return resultType
}
