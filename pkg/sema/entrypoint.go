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
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/plat-lang/platc/pkg/diag"
	"github.com/plat-lang/platc/pkg/source"
)

// CheckEntryPoint validates that a `main` function exists in exactly one
// module across the whole program, per spec.md §3/§4.4. This is a
// whole-program invariant, not a per-module one, so it runs once the
// caller (pkg/driver) has built every module's symbol table, rather than
// inside per-module Check — a module's own location on disk says nothing
// about whether it is the program's entry point.
func CheckEntryPoint(mods map[string]*Module) []*diag.Diagnostic {
	var mains []string

	for path, mod := range mods {
		if _, ok := mod.Funcs["main"]; ok {
			mains = append(mains, path)
		}
	}

	sort.Strings(mains)

	log.WithField("candidates", mains).Debug("entry point check")

	switch len(mains) {
	case 0:
		return []*diag.Diagnostic{
			diag.New(diag.KindType, "E102", source.NewSpan(0, 0), "no 'main' function defined"),
		}
	case 1:
		return nil
	default:
		return []*diag.Diagnostic{
			diag.New(diag.KindType, "E125", source.NewSpan(0, 0),
				fmt.Sprintf("'main' function defined in more than one module: %s", strings.Join(mains, ", "))),
		}
	}
}
