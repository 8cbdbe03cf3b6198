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

// Package object defines Plat's lowered, register-based instruction
// representation: the output of pkg/codegen and the input pkg/interp
// executes. It stands in for "object code" and "linking against the
// runtime" (spec.md §1 names a native backend and system linker as
// explicitly out of scope). Instr is grounded directly on the teacher's
// pkg/asm/insn.MicroInstruction interface: an Execute(pc, state, regs)
// step function returning the next program counter, generalized from
// Corset's big.Int field-element registers to Plat's tagged runtime
// values.
package object

import "github.com/plat-lang/platc/pkg/runtime/value"

// Halt is the sentinel "next program counter" a Terminal instruction
// returns, mirroring the teacher's math.MaxUint return-signal convention.
const Halt = ^uint(0)

// Machine is the interpreter-facing execution context an Instr's Execute
// method is given: its own register file, the call stack (for Call/
// Return), and a handle back to the interpreter for invoking externs and
// nested functions. pkg/interp supplies the concrete implementation.
type Machine interface {
	// Reg reads register i of the currently executing frame.
	Reg(i int) value.Value
	// SetReg writes register i of the currently executing frame.
	SetReg(i int, v value.Value)
	// Call invokes a named function with the given argument registers,
	// returning its result.
	Call(name string, args []value.Value) (value.Value, error)
	// CallExtern invokes a registered runtime entry point by name.
	CallExtern(name string, args []value.Value) (value.Value, error)
	// CallMethod performs virtual dispatch: it looks up the function
	// "Class.method" (walking the class's parent chain to the nearest
	// ancestor that declares it) and invokes the resulting function with args (args[0] is the
	// receiver, matching every method Function's register-0-is-self
	// convention).
	CallMethod(class, method string, args []value.Value) (value.Value, error)
}

// Instr is one lowered instruction: Execute advances the machine by one
// step and returns the next program counter (Halt to return from the
// enclosing function).
type Instr interface {
	Execute(pc uint, m Machine) (uint, error)
	// Terminal reports whether this instruction can end the enclosing
	// function (a return or an unconditional trap).
	Terminal() bool
}

// Function is a single lowered function or method body: a flat list of
// registers (0..NumRegs-1, with 0..len(Params)-1 pre-loaded with the
// caller's arguments) and the instruction stream operating on them.
type Function struct {
	Name     string
	NumRegs  int
	NumArgs  int
	Instrs   []Instr
	ResultOf string // name of the register-holding temp returned, for debug only
}

// ClassLayout records a class's vtable slot order and inherited-then-own
// field order, matching the runtime instance layout spec.md §8 requires.
type ClassLayout struct {
	Name    string
	Fields  []string
	VTable  []string // method names in dispatch-slot order
	Parent  string    // "" if none
}

// EnumLayout records an enum's variant discriminants (computed with the
// shared hash in pkg/codegen/enumhash.go, which pkg/runtime/value's copy
// must agree with bit-for-bit) and each variant's field count.
type EnumLayout struct {
	Name     string
	Variants map[string]EnumVariantLayout
}

// EnumVariantLayout is one variant's runtime shape.
type EnumVariantLayout struct {
	Discriminant uint32
	NumFields    int
}

// Module is the fully lowered form of one Plat source module: its
// functions, plus the class/enum layouts pkg/interp and pkg/runtime/value
// need to allocate and inspect instances.
type Module struct {
	Path      string
	Functions map[string]*Function
	Classes   map[string]*ClassLayout
	Enums     map[string]*EnumLayout
}

// NewModule constructs an empty lowered module.
func NewModule(path string) *Module {
	return &Module{
		Path:      path,
		Functions: make(map[string]*Function),
		Classes:   make(map[string]*ClassLayout),
		Enums:     make(map[string]*EnumLayout),
	}
}
