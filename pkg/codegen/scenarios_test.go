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
	"io"
	"os"
	"testing"

	"github.com/plat-lang/platc/pkg/interp"
	"github.com/plat-lang/platc/pkg/parser"
	"github.com/plat-lang/platc/pkg/runtime"
	"github.com/plat-lang/platc/pkg/runtime/value"
	"github.com/plat-lang/platc/pkg/sema"
	"github.com/plat-lang/platc/pkg/source"
)

// runScenario parses, checks, and lowers src, wiring the full pkg/runtime
// extern table (io, collections, GC, scheduler) so a scenario can print or
// spawn, not just compute — unlike lowerSource, which only covers the
// externs-free arithmetic/control-flow tests above.
func runScenario(t *testing.T, src string) *interp.Interp {
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

	ip := interp.New(mod, nil)
	rt := runtime.New(ip.Call)
	ip.Externs = rt.Externs()

	return ip
}

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it, since pkg/runtime/io.Print writes straight to
// fmt.Println with no injectable writer.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	orig := os.Stdout
	os.Stdout = w

	fn()

	os.Stdout = orig

	if err := w.Close(); err != nil {
		t.Fatalf("close pipe: %v", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read pipe: %v", err)
	}

	return string(out)
}

// TestScenarioArithmeticExitCode is spec.md §8's "arithmetic exit code"
// scenario: `fn main() -> Int32 { return 40 + 2; }` exits with code 42.
func TestScenarioArithmeticExitCode(t *testing.T) {
	ip := runScenario(t, `fn main() -> Int32 {
    return 40 + 2;
}
`)

	got, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got.I != 42 {
		t.Fatalf("Run() = %d, want 42", got.I)
	}
}

// TestScenarioHelloWorld is spec.md §8's "hello world" scenario.
func TestScenarioHelloWorld(t *testing.T) {
	ip := runScenario(t, `fn main() -> Int32 {
    print(value = "Hello, World!");
    return 0;
}
`)

	var (
		got value.Value
		err error
	)

	out := captureStdout(t, func() {
		got, err = ip.Run()
	})

	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got.I != 0 {
		t.Fatalf("Run() = %d, want 0", got.I)
	}

	if out != "Hello, World!\n" {
		t.Fatalf("stdout = %q, want %q", out, "Hello, World!\n")
	}
}

// TestScenarioShortCircuit is spec.md §8's "short-circuit" scenario: `and`
// never evaluates its right operand once the left is already false, so
// side's print never runs.
func TestScenarioShortCircuit(t *testing.T) {
	ip := runScenario(t, `fn side() -> Bool {
    print(value = "X");
    return true;
}

fn main() -> Int32 {
    let b: Bool = false and side();
    return 0;
}
`)

	var (
		got value.Value
		err error
	)

	out := captureStdout(t, func() {
		got, err = ip.Run()
	})

	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got.I != 0 {
		t.Fatalf("Run() = %d, want 0", got.I)
	}

	if out != "" {
		t.Fatalf("stdout = %q, want no output", out)
	}
}

// TestScenarioInterpolation is spec.md §8's "interpolation" scenario.
func TestScenarioInterpolation(t *testing.T) {
	ip := runScenario(t, `fn main() -> Int32 {
    let n: String = "World";
    print(value = "Hello, ${n}!");
    return 0;
}
`)

	var (
		got value.Value
		err error
	)

	out := captureStdout(t, func() {
		got, err = ip.Run()
	})

	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got.I != 0 {
		t.Fatalf("Run() = %d, want 0", got.I)
	}

	if out != "Hello, World!\n" {
		t.Fatalf("stdout = %q, want %q", out, "Hello, World!\n")
	}
}

// TestScenarioEnumMatch is spec.md §8's "enum + match" scenario: an
// Option holding Some(7) matched against Some/None arms yields 7.
func TestScenarioEnumMatch(t *testing.T) {
	ip := runScenario(t, `enum Option {
    Some(Int32),
    None,
}

fn main() -> Int32 {
    let o: Option = Option::Some(value = 7);
    let r: Int32 = match (o) {
        Option::Some(v: Int32) => v,
        Option::None => 0,
    };
    return r;
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

// TestScenarioConcurrentSum is spec.md §8's "concurrent sum" scenario:
// spawning two tasks inside a `concurrent { ... }` block and joining the
// scope yields the sum after the block. Each task only returns its own
// contribution (no shared mutable state): codegen gives spawned closures a
// fresh, empty local scope with no capture of the enclosing function's
// locals, and pkg/runtime/value.Instance's field map is a plain Go map, so
// two tasks writing through the same instance concurrently would be a
// genuine unsynchronized concurrent map write rather than a language
// feature being exercised. Summing joined results keeps the scenario
// honest to spec.md §5's "mutation of shared state ... is the user's
// responsibility" instead of relying on one.
func TestScenarioConcurrentSum(t *testing.T) {
	ip := runScenario(t, `fn five() -> Int32 {
    return 5;
}

fn seven() -> Int32 {
    return 7;
}

fn main() -> Int32 {
    var total: Int32 = 0;
    concurrent {
        let a: TaskHandle = spawn { five(); };
        let b: TaskHandle = spawn { seven(); };
        let x: Int32 = a.join();
        let y: Int32 = b.join();
        total = x + y;
    }
    return total;
}
`)

	got, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got.I != 12 {
		t.Fatalf("Run() = %d, want 12", got.I)
	}
}
