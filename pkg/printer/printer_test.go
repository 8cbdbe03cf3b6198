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
package printer

import (
	"testing"

	"github.com/plat-lang/platc/pkg/parser"
	"github.com/plat-lang/platc/pkg/source"
)

func TestPrintReparseShapeMatches(t *testing.T) {
	const src = `fn main() {
    let x: Int = 1;
    let y: Int = 2;
    print(value = x + y);
}
`

	f1 := source.NewFile("a.plat", []byte(src))

	prog1, diagErr := parser.Parse(f1)
	if diagErr != nil {
		t.Fatalf("parse 1: %v", diagErr)
	}

	printed := Print(prog1)

	f2 := source.NewFile("b.plat", []byte(printed))

	prog2, diagErr := parser.Parse(f2)
	if diagErr != nil {
		t.Fatalf("parse 2 of:\n%s\nerr: %v", printed, diagErr)
	}

	if len(prog1.Funcs) != len(prog2.Funcs) {
		t.Fatalf("func count changed: %d vs %d", len(prog1.Funcs), len(prog2.Funcs))
	}

	if prog1.Funcs[0].Name != prog2.Funcs[0].Name {
		t.Fatalf("func name changed: %s vs %s", prog1.Funcs[0].Name, prog2.Funcs[0].Name)
	}

	if len(prog1.Funcs[0].Body.Stmts) != len(prog2.Funcs[0].Body.Stmts) {
		t.Fatalf("stmt count changed: %d vs %d", len(prog1.Funcs[0].Body.Stmts), len(prog2.Funcs[0].Body.Stmts))
	}
}
