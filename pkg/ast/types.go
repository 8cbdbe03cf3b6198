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

import (
	"fmt"
	"strings"

	"github.com/plat-lang/platc/pkg/source"
)

// Type is the syntactic form of a type annotation, per spec.md §3's "Types"
// data model: primitives, List[T]/Dict[K,V]/Set[T], and named/generic
// Name<T...>.
type Type struct {
	// Name is the primitive or nominal type name: Bool, Int8..Int64, Int,
	// Float8..Float64, Float, String, List, Dict, Set, or a user-defined
	// enum/class/alias/newtype name.
	Name string
	// Args holds List[T]'s T, Dict[K,V]'s [K,V], Set[T]'s T, or a generic
	// Name<T...>'s type arguments. Empty for non-generic types.
	Args []Type
	Span source.Span
}

// String renders a Type for diagnostics/tests.
func (t Type) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}

	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}

	open, close := "<", ">"
	if t.Name == "List" || t.Name == "Set" {
		open, close = "[", "]"
	} else if t.Name == "Dict" {
		open, close = "[", "]"
	}

	return fmt.Sprintf("%s%s%s%s", t.Name, open, strings.Join(parts, ", "), close)
}

// IsVoid reports whether this is the absence of a declared type (used for
// function return types with no `-> T`).
func (t Type) IsVoid() bool { return t.Name == "" }
