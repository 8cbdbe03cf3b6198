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
package codegen

import (
	"testing"

	"github.com/plat-lang/platc/pkg/interp"
	"github.com/plat-lang/platc/pkg/parser"
	"github.com/plat-lang/platc/pkg/runtime"
	"github.com/plat-lang/platc/pkg/runtime/value"
	"github.com/plat-lang/platc/pkg/sema"
	"github.com/plat-lang/platc/pkg/source"
)

func lowerSource(t *testing.T, src string) *interp.Interp {
	t.Helper()

	file := source.NewFile("main.plat", []byte(src))

	prog, diagErr := parser.Parse(file)
	if diagErr != nil {
		t.Fatalf("parse: %v", diagErr)
	}

	semaMod, buildErrs := sema.BuildModule("main", prog)
	if errs := sema.Check(semaMod, prog, buildErrs); len(errs) > 0 {
		t.Fatalf("check: %v", errs)
	}

	mod, err := Lower(semaMod, prog)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}

	return interp.New(mod, nil)
}

func TestLowerAndRunArithmetic(t *testing.T) {
	ip := lowerSource(t, `fn main() -> Int {
    let x: Int = 2;
    let y: Int = 3;
    return x * y + 1;
}
`)

	got, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got.I != 7 {
		t.Fatalf("Run() = %d, want 7", got.I)
	}
}

func TestLowerAndRunIfExpression(t *testing.T) {
	ip := lowerSource(t, `fn main() -> Int {
    let x: Int = 10;
    return if (x > 5) { 1; } else { 0; };
}
`)

	got, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got.I != 1 {
		t.Fatalf("Run() = %d, want 1", got.I)
	}
}

func TestLowerAndRunAssertFailureTraps(t *testing.T) {
	file := source.NewFile("main.plat", []byte(`fn main() -> Int {
    assert(condition = false, message = "never happens");
    return 0;
}
`))

	prog, diagErr := parser.Parse(file)
	if diagErr != nil {
		t.Fatalf("parse: %v", diagErr)
	}

	semaMod, buildErrs := sema.BuildModule("main", prog)
	if errs := sema.Check(semaMod, prog, buildErrs); len(errs) > 0 {
		t.Fatalf("check: %v", errs)
	}

	mod, err := Lower(semaMod, prog)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}

	ip := interp.New(mod, nil)
	rt := runtime.New(ip.Call)
	ip.Externs = rt.Externs()

	_, err = ip.Run()
	if err == nil {
		t.Fatal("Run() = nil error, want a trap from the failed assert")
	}

	trap, ok := value.AsTrap(err)
	if !ok {
		t.Fatalf("Run() error = %v (%T), want a *value.Trap", err, err)
	}

	if trap.Kind != value.AssertFailed {
		t.Fatalf("trap.Kind = %v, want AssertFailed", trap.Kind)
	}
}

func TestLowerAndRunWhileLoop(t *testing.T) {
	ip := lowerSource(t, `fn main() -> Int {
    var total: Int = 0;
    var i: Int = 0;
    while (i < 5) {
        total = total + i;
        i = i + 1;
    }
    return total;
}
`)

	got, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got.I != 10 {
		t.Fatalf("Run() = %d, want 10", got.I)
	}
}
