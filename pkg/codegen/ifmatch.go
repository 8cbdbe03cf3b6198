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
	"fmt"

	"github.com/plat-lang/platc/pkg/ast"
	"github.com/plat-lang/platc/pkg/object"
	"github.com/plat-lang/platc/pkg/runtime/value"
)

// lowerIfExpr compiles the expression-position form of `if`/`else`/`else
// if`, merging both arms' results into one shared register.
func (fb *funcBuilder) lowerIfExpr(x *ast.IfExpr) (int, error) {
	result := fb.alloc()

	cond, err := fb.lowerExpr(x.Cond)
	if err != nil {
		return -1, err
	}

	jmp := &object.JumpIfFalse{Cond: cond}
	fb.emit(jmp)

	thenReg, err := fb.lowerBlock(x.Then)
	if err != nil {
		return -1, err
	}

	fb.moveOrVoid(result, thenReg)

	done := &object.Jump{}
	fb.emit(done)
	jmp.Target = fb.here()

	switch {
	case x.ElseIf != nil:
		elseReg, err := fb.lowerIfExpr(x.ElseIf)
		if err != nil {
			return -1, err
		}

		fb.emit(&object.Move{Dst: result, Src: elseReg})
	case x.Else != nil:
		elseReg, err := fb.lowerBlock(x.Else)
		if err != nil {
			return -1, err
		}

		fb.moveOrVoid(result, elseReg)
	default:
		fb.emit(&object.LoadConst{Dst: result, Val: value.Void})
	}

	done.Target = fb.here()

	return result, nil
}

func (fb *funcBuilder) moveOrVoid(dst, src int) {
	if src < 0 {
		fb.emit(&object.LoadConst{Dst: dst, Val: value.Void})
		return
	}

	fb.emit(&object.Move{Dst: dst, Src: src})
}

// lowerMatch compiles a match expression into a chain of
// discriminant-comparison tests (EnumPattern arms) falling through to a
// final catch-all (IdentPattern/LiteralPattern arm), merging every arm's
// body value into one shared result register.
func (fb *funcBuilder) lowerMatch(x *ast.MatchExpr) (int, error) {
	scrutinee, err := fb.lowerExpr(x.Scrutinee)
	if err != nil {
		return -1, err
	}

	result := fb.alloc()

	var ends []*object.Jump

	for idx, arm := range x.Arms {
		isLast := idx == len(x.Arms)-1

		var next *object.JumpIfFalse

		switch pat := arm.Pattern.(type) {
		case *ast.EnumPattern:
			disc := fb.alloc()
			fb.emit(&object.EnumDiscriminant{Dst: disc, Src: scrutinee})

			hashReg := fb.alloc()
			fb.emit(&object.LoadConst{Dst: hashReg, Val: value.Int(int64(variantHash(pat.Variant)))})

			cmp := fb.alloc()
			fb.emit(&object.BinOp{Dst: cmp, Lhs: disc, Rhs: hashReg, Op: "=="})

			next = &object.JumpIfFalse{Cond: cmp}
			fb.emit(next)

			for i, field := range pat.Fields {
				fieldReg := fb.alloc()
				fb.emit(&object.EnumField{Dst: fieldReg, Src: scrutinee, Index: i})
				fb.locals[field.Name] = fieldReg
			}

		case *ast.IdentPattern:
			fb.locals[pat.Name] = scrutinee

		case *ast.LiteralPattern:
			lit, err := fb.lowerExpr(pat.Value)
			if err != nil {
				return -1, err
			}

			cmp := fb.alloc()
			fb.emit(&object.BinOp{Dst: cmp, Lhs: scrutinee, Rhs: lit, Op: "=="})

			next = &object.JumpIfFalse{Cond: cmp}
			fb.emit(next)

		default:
			return -1, fmt.Errorf("codegen: unsupported pattern %T", arm.Pattern)
		}

		bodyReg, err := fb.lowerExpr(arm.Body)
		if err != nil {
			return -1, err
		}

		fb.emit(&object.Move{Dst: result, Src: bodyReg})

		if !isLast {
			end := &object.Jump{}
			fb.emit(end)
			ends = append(ends, end)
		}

		if next != nil {
			next.Target = fb.here()
		}
	}

	target := fb.here()
	for _, end := range ends {
		end.Target = target
	}

	return result, nil
}
