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
	"strings"

	"github.com/plat-lang/platc/pkg/ast"
	"github.com/plat-lang/platc/pkg/object"
	"github.com/plat-lang/platc/pkg/runtime/value"
	"github.com/plat-lang/platc/pkg/sema"
)

// funcBuilder lowers a single ast.FuncDecl body into an object.Function,
// one instruction at a time, growing a flat register file as it goes.
// Grounded on the teacher's pkg/asm/compiler.go one-pass emitter: no
// separate basic-block IR, forward jumps are left as zero-valued Target
// fields and patched in place once the jump's destination is known.
type funcBuilder struct {
	out    *object.Module
	mod    *sema.Module
	cls    *sema.ClassInfo
	name   string
	locals map[string]int
	next   int
	instrs []object.Instr
	spawns int

	// scope holds the register carrying the *scheduler.Scope value a
	// `concurrent { ... }` block opened, or -1 when lowering outside one.
	// `spawn` inside a block targets this scope (joined when the block
	// exits) instead of the implicit top-level scope every other spawn
	// joins at program exit, per spec.md §9's structured-concurrency note.
	scope int
}

func newFuncBuilder(out *object.Module, mod *sema.Module, cls *sema.ClassInfo, name string) *funcBuilder {
	return &funcBuilder{out: out, mod: mod, cls: cls, name: name, locals: make(map[string]int), scope: -1}
}

func (fb *funcBuilder) alloc() int {
	r := fb.next
	fb.next++

	return r
}

func (fb *funcBuilder) emit(i object.Instr) int {
	fb.instrs = append(fb.instrs, i)
	return len(fb.instrs) - 1
}

func (fb *funcBuilder) here() uint { return uint(len(fb.instrs)) }

func (fb *funcBuilder) build(f *ast.FuncDecl) (*object.Function, error) {
	numArgs := 0

	if fb.cls != nil {
		fb.locals["self"] = fb.alloc()
		numArgs++
	}

	for _, p := range f.Params {
		fb.locals[p.Name] = fb.alloc()
		numArgs++
	}

	last, err := fb.lowerBlock(f.Body)
	if err != nil {
		return nil, err
	}

	fb.emit(&object.Return{Src: last})

	return &object.Function{
		Name:    fb.name,
		NumRegs: fb.next,
		NumArgs: numArgs,
		Instrs:  fb.instrs,
	}, nil
}

// lowerBlock lowers every statement in b and returns the register holding
// the last ExprStmt's value (the block's implicit result), or -1 if the
// block is empty or ends in a non-expression statement.
func (fb *funcBuilder) lowerBlock(b *ast.Block) (int, error) {
	last := -1

	for _, s := range b.Stmts {
		reg, err := fb.lowerStmt(s)
		if err != nil {
			return -1, err
		}

		last = reg
	}

	return last, nil
}

func (fb *funcBuilder) lowerStmt(s ast.Stmt) (int, error) {
	switch st := s.(type) {
	case *ast.LetStmt:
		reg, err := fb.lowerExpr(st.Init)
		if err != nil {
			return -1, err
		}

		fb.locals[st.Name] = reg

		return -1, nil

	case *ast.VarStmt:
		reg, err := fb.lowerExpr(st.Init)
		if err != nil {
			return -1, err
		}

		fb.locals[st.Name] = reg

		return -1, nil

	case *ast.ExprStmt:
		return fb.lowerExpr(st.Expr)

	case *ast.ReturnStmt:
		if st.Value == nil {
			fb.emit(&object.Return{Src: -1})
			return -1, nil
		}

		reg, err := fb.lowerExpr(st.Value)
		if err != nil {
			return -1, err
		}

		fb.emit(&object.Return{Src: reg})

		return -1, nil

	case *ast.IfStmt:
		return -1, fb.lowerIfStmt(st)

	case *ast.BlockStmt:
		_, err := fb.lowerBlock(st.Block)
		return -1, err

	case *ast.WhileStmt:
		return -1, fb.lowerWhile(st)

	case *ast.ForStmt:
		return -1, fb.lowerFor(st)

	case *ast.PrintStmt:
		reg, err := fb.lowerExpr(st.Value)
		if err != nil {
			return -1, err
		}

		fb.emit(&object.CallExtern{Dst: -1, Name: "plat_io_print", Args: []int{reg}})

		return -1, nil

	case *ast.ConcurrentStmt:
		scopeReg := fb.alloc()
		fb.emit(&object.CallExtern{Dst: scopeReg, Name: "plat_scope_enter", Args: nil})

		prevScope := fb.scope
		fb.scope = scopeReg

		_, err := fb.lowerBlock(st.Body)

		fb.scope = prevScope

		if err != nil {
			return -1, err
		}

		fb.emit(&object.CallExtern{Dst: -1, Name: "plat_scope_exit", Args: []int{scopeReg}})

		return -1, nil

	default:
		return -1, fmt.Errorf("codegen: unsupported statement %T", s)
	}
}

func (fb *funcBuilder) lowerIfStmt(st *ast.IfStmt) error {
	cond, err := fb.lowerExpr(st.Cond)
	if err != nil {
		return err
	}

	jmp := &object.JumpIfFalse{Cond: cond}
	fb.emit(jmp)

	if _, err := fb.lowerBlock(st.Then); err != nil {
		return err
	}

	if st.Else == nil {
		jmp.Target = fb.here()
		return nil
	}

	done := &object.Jump{}
	fb.emit(done)
	jmp.Target = fb.here()

	if _, err := fb.lowerStmt(st.Else); err != nil {
		return err
	}

	done.Target = fb.here()

	return nil
}

func (fb *funcBuilder) lowerWhile(st *ast.WhileStmt) error {
	top := fb.here()

	cond, err := fb.lowerExpr(st.Cond)
	if err != nil {
		return err
	}

	jmp := &object.JumpIfFalse{Cond: cond}
	fb.emit(jmp)

	if _, err := fb.lowerBlock(st.Body); err != nil {
		return err
	}

	fb.emit(&object.Jump{Target: top})
	jmp.Target = fb.here()

	return nil
}

// lowerFor compiles `for (x: T in lo..hi)` directly into a counting loop.
// Iteration over an arbitrary collection expression goes through the
// plat_collection_len/plat_collection_get extern pair, matching how
// pkg/runtime/collection exposes indexed access uniformly across
// List/Set/Dict per spec.md §5.
func (fb *funcBuilder) lowerFor(st *ast.ForStmt) error {
	if r, ok := st.Iterable.(*ast.RangeExpr); ok {
		return fb.lowerForRange(st, r)
	}

	coll, err := fb.lowerExpr(st.Iterable)
	if err != nil {
		return err
	}

	idx := fb.alloc()
	fb.emit(&object.LoadConst{Dst: idx, Val: value.Int(0)})

	lenReg := fb.alloc()
	fb.emit(&object.CallExtern{Dst: lenReg, Name: "plat_collection_len", Args: []int{coll}})

	top := fb.here()
	cond := fb.alloc()
	fb.emit(&object.BinOp{Dst: cond, Lhs: idx, Rhs: lenReg, Op: "<"})
	jmp := &object.JumpIfFalse{Cond: cond}
	fb.emit(jmp)

	elem := fb.alloc()
	fb.emit(&object.CallExtern{Dst: elem, Name: "plat_collection_get", Args: []int{coll, idx}})
	fb.locals[st.Var] = elem

	if _, err := fb.lowerBlock(st.Body); err != nil {
		return err
	}

	one := fb.alloc()
	fb.emit(&object.LoadConst{Dst: one, Val: value.Int(1)})
	fb.emit(&object.BinOp{Dst: idx, Lhs: idx, Rhs: one, Op: "+"})
	fb.emit(&object.Jump{Target: top})
	jmp.Target = fb.here()

	return nil
}

func (fb *funcBuilder) lowerForRange(st *ast.ForStmt, r *ast.RangeExpr) error {
	lo, err := fb.lowerExpr(r.Lo)
	if err != nil {
		return err
	}

	hi, err := fb.lowerExpr(r.Hi)
	if err != nil {
		return err
	}

	idx := fb.alloc()
	fb.emit(&object.Move{Dst: idx, Src: lo})
	fb.locals[st.Var] = idx

	cmpOp := "<"
	if r.Inclusive {
		cmpOp = "<="
	}

	top := fb.here()
	cond := fb.alloc()
	fb.emit(&object.BinOp{Dst: cond, Lhs: idx, Rhs: hi, Op: cmpOp})
	jmp := &object.JumpIfFalse{Cond: cond}
	fb.emit(jmp)

	if _, err := fb.lowerBlock(st.Body); err != nil {
		return err
	}

	one := fb.alloc()
	fb.emit(&object.LoadConst{Dst: one, Val: value.Int(1)})
	fb.emit(&object.BinOp{Dst: idx, Lhs: idx, Rhs: one, Op: "+"})
	fb.emit(&object.Jump{Target: top})
	jmp.Target = fb.here()

	return nil
}

func primitiveTypeName(t ast.Type) string {
	if strings.HasPrefix(t.Name, "Int") {
		return "Int"
	}

	if strings.HasPrefix(t.Name, "Float") {
		return "Float"
	}

	return t.Name
}
