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

// Package interp executes an object.Module by stepping each function's
// instruction stream through its own register file, standing in for the
// linked native executable spec.md §1 explicitly puts out of scope.
// Grounded on the teacher's pkg/asm/interpreter.go and pkg/asm/executor.go:
// a frame holds a flat register slice, Execute advances the program
// counter, and a Terminal instruction (here, object.Return) unwinds the
// frame.
package interp

import (
	"fmt"

	"github.com/plat-lang/platc/pkg/object"
	"github.com/plat-lang/platc/pkg/runtime/value"
)

// Extern is a registered pkg/runtime entry point: file/collection/string/
// time/random/scheduler operations the object code reaches via
// object.CallExtern.
type Extern func(args []value.Value) (value.Value, error)

// Interp executes functions from a single object.Module, with a fixed
// table of extern entry points shared across every call.
type Interp struct {
	Module  *object.Module
	Externs map[string]Extern

	depth int
}

// MaxCallDepth bounds recursive Call nesting, standing in for the stack
// overflow a native executable's guard page would raise.
const MaxCallDepth = 4096

// New constructs an interpreter for mod with the given extern table.
func New(mod *object.Module, externs map[string]Extern) *Interp {
	return &Interp{Module: mod, Externs: externs}
}

// Run invokes the module's "main" function with no arguments, per spec.md
// §2's program entry point.
func (ip *Interp) Run() (value.Value, error) {
	return ip.Call("main", nil)
}

// Call executes the named function to completion and returns its result.
func (ip *Interp) Call(name string, args []value.Value) (value.Value, error) {
	fn, ok := ip.Module.Functions[name]
	if !ok {
		return value.Value{}, fmt.Errorf("interp: undefined function %q", name)
	}

	ip.depth++
	if ip.depth > MaxCallDepth {
		ip.depth--
		return value.Value{}, fmt.Errorf("interp: call depth exceeded %d (function %q)", MaxCallDepth, name)
	}
	defer func() { ip.depth-- }()

	frame := newFrame(fn, args)

	var pc uint

	for {
		if int(pc) >= len(fn.Instrs) {
			return value.Value{}, fmt.Errorf("interp: %s: program counter ran off the end of the instruction stream", name)
		}

		instr := fn.Instrs[pc]

		next, err := instr.Execute(pc, &machine{ip: ip, frame: frame})
		if err != nil {
			return value.Value{}, fmt.Errorf("interp: %s: %w", name, err)
		}

		if instr.Terminal() && next == object.Halt {
			return frame.result, nil
		}

		pc = next
	}
}

// CallExtern invokes a registered runtime entry point.
func (ip *Interp) CallExtern(name string, args []value.Value) (value.Value, error) {
	fn, ok := ip.Externs[name]
	if !ok {
		return value.Value{}, fmt.Errorf("interp: undefined extern %q", name)
	}

	return fn(args)
}

// CallMethod looks up the function "Class.method" in the module, walking
// up the ClassLayout parent chain to the nearest ancestor class that
// actually declares it, then invokes it.
func (ip *Interp) CallMethod(class, method string, args []value.Value) (value.Value, error) {
	for c := class; c != ""; {
		qualified := c + "." + method
		if _, ok := ip.Module.Functions[qualified]; ok {
			return ip.Call(qualified, args)
		}

		layout, ok := ip.Module.Classes[c]
		if !ok {
			break
		}

		c = layout.Parent
	}

	return value.Value{}, fmt.Errorf("interp: class %q has no method %q", class, method)
}
