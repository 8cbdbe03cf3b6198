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
package object

import (
	"fmt"

	"github.com/plat-lang/platc/pkg/runtime/value"
)

// LoadConst writes a compile-time constant into Dst.
type LoadConst struct {
	Dst int
	Val value.Value
}

func (i *LoadConst) Execute(pc uint, m Machine) (uint, error) {
	m.SetReg(i.Dst, i.Val)
	return pc + 1, nil
}

func (i *LoadConst) Terminal() bool { return false }

// Move copies Src into Dst.
type Move struct{ Dst, Src int }

func (i *Move) Execute(pc uint, m Machine) (uint, error) {
	m.SetReg(i.Dst, m.Reg(i.Src))
	return pc + 1, nil
}

func (i *Move) Terminal() bool { return false }

// BinOp computes `Dst = Lhs OP Rhs`.
type BinOp struct {
	Dst, Lhs, Rhs int
	Op            string
}

func (i *BinOp) Execute(pc uint, m Machine) (uint, error) {
	result, err := evalBinOp(i.Op, m.Reg(i.Lhs), m.Reg(i.Rhs))
	if err != nil {
		return 0, err
	}

	m.SetReg(i.Dst, result)

	return pc + 1, nil
}

func (i *BinOp) Terminal() bool { return false }

func evalBinOp(op string, l, r value.Value) (value.Value, error) {
	switch op {
	case "+":
		if l.Kind == value.KindString || r.Kind == value.KindString {
			return value.Str(l.String() + r.String()), nil
		}

		if l.Kind == value.KindFloat || r.Kind == value.KindFloat {
			return value.Float(numOf(l) + numOf(r)), nil
		}

		return value.Int(l.I + r.I), nil
	case "-":
		if l.Kind == value.KindFloat || r.Kind == value.KindFloat {
			return value.Float(numOf(l) - numOf(r)), nil
		}

		return value.Int(l.I - r.I), nil
	case "*":
		if l.Kind == value.KindFloat || r.Kind == value.KindFloat {
			return value.Float(numOf(l) * numOf(r)), nil
		}

		return value.Int(l.I * r.I), nil
	case "/":
		if l.Kind == value.KindFloat || r.Kind == value.KindFloat {
			return value.Float(numOf(l) / numOf(r)), nil
		}

		if r.I == 0 {
			return value.Value{}, value.NewTrap(value.DivideByZero, "")
		}

		return value.Int(l.I / r.I), nil
	case "%":
		if r.I == 0 {
			return value.Value{}, value.NewTrap(value.DivideByZero, "")
		}

		return value.Int(l.I % r.I), nil
	case "<":
		return value.Bool(numOf(l) < numOf(r)), nil
	case "<=":
		return value.Bool(numOf(l) <= numOf(r)), nil
	case ">":
		return value.Bool(numOf(l) > numOf(r)), nil
	case ">=":
		return value.Bool(numOf(l) >= numOf(r)), nil
	case "==":
		return value.Bool(valuesEqual(l, r)), nil
	case "!=":
		return value.Bool(!valuesEqual(l, r)), nil
	case "and":
		return value.Bool(l.Truthy() && r.Truthy()), nil
	case "or":
		return value.Bool(l.Truthy() || r.Truthy()), nil
	default:
		return value.Value{}, fmt.Errorf("unknown binary operator %q", op)
	}
}

func numOf(v value.Value) float64 {
	if v.Kind == value.KindFloat {
		return v.F
	}

	return float64(v.I)
}

func valuesEqual(l, r value.Value) bool {
	if l.Kind != r.Kind {
		return false
	}

	switch l.Kind {
	case value.KindString:
		return l.S == r.S
	case value.KindFloat:
		return l.F == r.F
	default:
		return l.I == r.I
	}
}

// UnaryOp computes `Dst = OP Operand`.
type UnaryOp struct {
	Dst, Operand int
	Op           string
}

func (i *UnaryOp) Execute(pc uint, m Machine) (uint, error) {
	v := m.Reg(i.Operand)

	switch i.Op {
	case "-":
		if v.Kind == value.KindFloat {
			m.SetReg(i.Dst, value.Float(-v.F))
		} else {
			m.SetReg(i.Dst, value.Int(-v.I))
		}
	case "not":
		m.SetReg(i.Dst, value.Bool(!v.Truthy()))
	default:
		return 0, fmt.Errorf("unknown unary operator %q", i.Op)
	}

	return pc + 1, nil
}

func (i *UnaryOp) Terminal() bool { return false }

// Jump unconditionally transfers control to Target.
type Jump struct{ Target uint }

func (i *Jump) Execute(pc uint, m Machine) (uint, error) { return i.Target, nil }
func (i *Jump) Terminal() bool                           { return false }

// JumpIfFalse transfers control to Target when register Cond is falsy.
type JumpIfFalse struct {
	Cond   int
	Target uint
}

func (i *JumpIfFalse) Execute(pc uint, m Machine) (uint, error) {
	if !m.Reg(i.Cond).Truthy() {
		return i.Target, nil
	}

	return pc + 1, nil
}

func (i *JumpIfFalse) Terminal() bool { return false }

// Return ends the enclosing function, yielding register Src's value (or
// Void when Src is negative, for a bare `return;`).
type Return struct{ Src int }

func (i *Return) Execute(pc uint, m Machine) (uint, error) {
	if i.Src >= 0 {
		m.SetReg(resultRegister, m.Reg(i.Src))
	} else {
		m.SetReg(resultRegister, value.Void)
	}

	return Halt, nil
}

func (i *Return) Terminal() bool { return true }

// resultRegister is the conventional register pkg/interp reads a
// function's return value from after a Return executes.
const resultRegister = -1

// CallFunc invokes a named function in the same module with the given
// argument registers, storing its result in Dst.
type CallFunc struct {
	Dst  int
	Name string
	Args []int
}

func (i *CallFunc) Execute(pc uint, m Machine) (uint, error) {
	args := make([]value.Value, len(i.Args))
	for j, r := range i.Args {
		args[j] = m.Reg(r)
	}

	result, err := m.Call(i.Name, args)
	if err != nil {
		return 0, err
	}

	if i.Dst >= 0 {
		m.SetReg(i.Dst, result)
	}

	return pc + 1, nil
}

func (i *CallFunc) Terminal() bool { return false }

// CallExtern invokes a registered pkg/runtime entry point by name.
type CallExtern struct {
	Dst  int
	Name string
	Args []int
}

func (i *CallExtern) Execute(pc uint, m Machine) (uint, error) {
	args := make([]value.Value, len(i.Args))
	for j, r := range i.Args {
		args[j] = m.Reg(r)
	}

	result, err := m.CallExtern(i.Name, args)
	if err != nil {
		return 0, err
	}

	if i.Dst >= 0 {
		m.SetReg(i.Dst, result)
	}

	return pc + 1, nil
}

func (i *CallExtern) Terminal() bool { return false }

// MakeEnum constructs an enum value of Variant with the given field
// registers, storing it (as a value.KindRef) in Dst.
type MakeEnum struct {
	Dst          int
	Type, Variant string
	Discriminant uint32
	Fields       []int
}

func (i *MakeEnum) Execute(pc uint, m Machine) (uint, error) {
	fields := make([]value.Value, len(i.Fields))
	for j, r := range i.Fields {
		fields[j] = m.Reg(r)
	}

	m.SetReg(i.Dst, value.MakeRef(&value.Enum{
		Type: i.Type, Variant: i.Variant, Discriminant: i.Discriminant, Fields: fields,
	}))

	return pc + 1, nil
}

func (i *MakeEnum) Terminal() bool { return false }

// MakeInstance constructs a zero-valued class instance (fields populated
// afterward by SetField, mirroring the init-body's own field
// assignments), storing it in Dst.
type MakeInstance struct {
	Dst   int
	Class string
}

func (i *MakeInstance) Execute(pc uint, m Machine) (uint, error) {
	m.SetReg(i.Dst, value.MakeRef(&value.Instance{Class: i.Class, Fields: make(map[string]value.Value)}))
	return pc + 1, nil
}

func (i *MakeInstance) Terminal() bool { return false }

// GetField reads a class instance's field into Dst.
type GetField struct {
	Dst, Recv int
	Field     string
}

func (i *GetField) Execute(pc uint, m Machine) (uint, error) {
	inst, ok := m.Reg(i.Recv).Ref.(*value.Instance)
	if !ok {
		return 0, fmt.Errorf("GetField: register %d is not a class instance", i.Recv)
	}

	m.SetReg(i.Dst, inst.Fields[i.Field])

	return pc + 1, nil
}

func (i *GetField) Terminal() bool { return false }

// SetField writes a class instance's field from register Src.
type SetField struct {
	Recv, Src int
	Field     string
}

func (i *SetField) Execute(pc uint, m Machine) (uint, error) {
	inst, ok := m.Reg(i.Recv).Ref.(*value.Instance)
	if !ok {
		return 0, fmt.Errorf("SetField: register %d is not a class instance", i.Recv)
	}

	inst.Fields[i.Field] = m.Reg(i.Src)

	return pc + 1, nil
}

func (i *SetField) Terminal() bool { return false }
