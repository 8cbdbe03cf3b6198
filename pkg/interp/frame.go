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
	"github.com/plat-lang/platc/pkg/object"
	"github.com/plat-lang/platc/pkg/runtime/value"
)

// frame is one function activation's register file, preloaded with the
// caller's arguments in registers 0..len(args)-1 per pkg/codegen's
// register-0-is-self-or-first-param convention.
type frame struct {
	regs   []value.Value
	result value.Value
}

func newFrame(fn *object.Function, args []value.Value) *frame {
	f := &frame{regs: make([]value.Value, fn.NumRegs)}

	n := len(args)
	if n > len(f.regs) {
		n = len(f.regs)
	}

	copy(f.regs, args[:n])

	return f
}

// machine implements object.Machine against one frame of one Interp call.
type machine struct {
	ip    *Interp
	frame *frame
}

func (m *machine) Reg(i int) value.Value {
	if i < 0 {
		return m.frame.result
	}

	return m.frame.regs[i]
}

func (m *machine) SetReg(i int, v value.Value) {
	if i < 0 {
		m.frame.result = v
		return
	}

	m.frame.regs[i] = v
}

func (m *machine) Call(name string, args []value.Value) (value.Value, error) {
	return m.ip.Call(name, args)
}

func (m *machine) CallExtern(name string, args []value.Value) (value.Value, error) {
	return m.ip.CallExtern(name, args)
}

func (m *machine) CallMethod(class, method string, args []value.Value) (value.Value, error) {
	return m.ip.CallMethod(class, method, args)
}
