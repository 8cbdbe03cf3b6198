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
package interp

import (
	"testing"

	"github.com/plat-lang/platc/pkg/object"
	"github.com/plat-lang/platc/pkg/runtime/value"
)

func TestRunComputesArithmetic(t *testing.T) {
	mod := object.NewModule("app")
	mod.Functions["main"] = &object.Function{
		Name:    "main",
		NumRegs: 3,
		Instrs: []object.Instr{
			&object.LoadConst{Dst: 0, Val: value.Int(2)},
			&object.LoadConst{Dst: 1, Val: value.Int(3)},
			&object.BinOp{Dst: 2, Lhs: 0, Rhs: 1, Op: "+"},
			&object.Return{Src: 2},
		},
	}

	ip := New(mod, nil)

	got, err := ip.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got.Kind != value.KindInt || got.I != 5 {
		t.Errorf("Run() = %v, want Int(5)", got)
	}
}

func TestCallExternInvokesRegisteredFunction(t *testing.T) {
	mod := object.NewModule("app")
	mod.Functions["main"] = &object.Function{
		Name:    "main",
		NumRegs: 2,
		Instrs: []object.Instr{
			&object.LoadConst{Dst: 0, Val: value.Str("hi")},
			&object.CallExtern{Dst: 1, Name: "plat_io_print", Args: []int{0}},
			&object.Return{Src: 1},
		},
	}

	var printed string

	ip := New(mod, map[string]Extern{
		"plat_io_print": func(args []value.Value) (value.Value, error) {
			printed = args[0].String()
			return value.Void, nil
		},
	})

	if _, err := ip.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if printed != "hi" {
		t.Errorf("printed = %q, want %q", printed, "hi")
	}
}

func TestCallMethodWalksToParentClass(t *testing.T) {
	mod := object.NewModule("app")
	mod.Classes["Base"] = &object.ClassLayout{Name: "Base"}
	mod.Classes["Derived"] = &object.ClassLayout{Name: "Derived", Parent: "Base"}

	mod.Functions["Base.greet"] = &object.Function{
		Name:    "Base.greet",
		NumRegs: 1,
		NumArgs: 1,
		Instrs: []object.Instr{
			&object.LoadConst{Dst: 0, Val: value.Str("hi")},
			&object.Return{Src: 0},
		},
	}

	mod.Functions["main"] = &object.Function{
		Name:    "main",
		NumRegs: 2,
		Instrs: []object.Instr{
			&object.MakeInstance{Dst: 0, Class: "Derived"},
			&object.MethodCall{Dst: 1, Recv: 0, Method: "greet"},
			&object.Return{Src: 1},
		},
	}

	ip := New(mod, nil)

	got, err := ip.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got.S != "hi" {
		t.Errorf("Run() = %v, want Str(hi)", got)
	}
}

func TestUndefinedFunctionIsError(t *testing.T) {
	mod := object.NewModule("app")

	ip := New(mod, nil)
	if _, err := ip.Run(); err == nil {
		t.Error("Run() with no main function: want error, got nil")
	}
}
