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

func (fb *funcBuilder) lowerExpr(e ast.Expr) (int, error) {
	switch x := e.(type) {
	case *ast.BoolLit:
		dst := fb.alloc()
		fb.emit(&object.LoadConst{Dst: dst, Val: value.Bool(x.Value)})

		return dst, nil

	case *ast.IntLit:
		dst := fb.alloc()
		fb.emit(&object.LoadConst{Dst: dst, Val: value.Int(x.Value)})

		return dst, nil

	case *ast.FloatLit:
		dst := fb.alloc()
		fb.emit(&object.LoadConst{Dst: dst, Val: value.Float(x.Value)})

		return dst, nil

	case *ast.StringLit:
		dst := fb.alloc()
		fb.emit(&object.LoadConst{Dst: dst, Val: value.Str(x.Value)})

		return dst, nil

	case *ast.InterpString:
		return fb.lowerInterpString(x)

	case *ast.Ident:
		return fb.lowerIdent(x)

	case *ast.Self:
		if r, ok := fb.locals["self"]; ok {
			return r, nil
		}

		return -1, fmt.Errorf("codegen: self referenced outside a method")

	case *ast.BinaryExpr:
		return fb.lowerBinary(x)

	case *ast.UnaryExpr:
		operand, err := fb.lowerExpr(x.Operand)
		if err != nil {
			return -1, err
		}

		dst := fb.alloc()
		fb.emit(&object.UnaryOp{Dst: dst, Operand: operand, Op: x.Op})

		return dst, nil

	case *ast.RangeExpr:
		lo, err := fb.lowerExpr(x.Lo)
		if err != nil {
			return -1, err
		}

		hi, err := fb.lowerExpr(x.Hi)
		if err != nil {
			return -1, err
		}

		incl := fb.alloc()
		fb.emit(&object.LoadConst{Dst: incl, Val: value.Bool(x.Inclusive)})

		dst := fb.alloc()
		fb.emit(&object.CallExtern{Dst: dst, Name: "plat_range_new", Args: []int{lo, hi, incl}})

		return dst, nil

	case *ast.ArrayLit:
		dst := fb.alloc()
		fb.emit(&object.CallExtern{Dst: dst, Name: "plat_array_new"})

		for _, el := range x.Elements {
			r, err := fb.lowerExpr(el)
			if err != nil {
				return -1, err
			}

			fb.emit(&object.CallExtern{Dst: -1, Name: "plat_array_append", Args: []int{dst, r}})
		}

		return dst, nil

	case *ast.SetLit:
		dst := fb.alloc()
		fb.emit(&object.CallExtern{Dst: dst, Name: "plat_set_new"})

		for _, el := range x.Elements {
			r, err := fb.lowerExpr(el)
			if err != nil {
				return -1, err
			}

			fb.emit(&object.CallExtern{Dst: -1, Name: "plat_set_add", Args: []int{dst, r}})
		}

		return dst, nil

	case *ast.DictLit:
		dst := fb.alloc()
		fb.emit(&object.CallExtern{Dst: dst, Name: "plat_dict_new"})

		for _, entry := range x.Entries {
			k, err := fb.lowerExpr(entry.Key)
			if err != nil {
				return -1, err
			}

			v, err := fb.lowerExpr(entry.Value)
			if err != nil {
				return -1, err
			}

			fb.emit(&object.CallExtern{Dst: -1, Name: "plat_dict_set", Args: []int{dst, k, v}})
		}

		return dst, nil

	case *ast.IndexExpr:
		coll, err := fb.lowerExpr(x.Collection)
		if err != nil {
			return -1, err
		}

		idx, err := fb.lowerExpr(x.Index)
		if err != nil {
			return -1, err
		}

		dst := fb.alloc()
		fb.emit(&object.CallExtern{Dst: dst, Name: "plat_collection_get", Args: []int{coll, idx}})

		return dst, nil

	case *ast.MemberExpr:
		recv, err := fb.lowerExpr(x.Receiver)
		if err != nil {
			return -1, err
		}

		dst := fb.alloc()
		fb.emit(&object.GetField{Dst: dst, Recv: recv, Field: x.Field})

		return dst, nil

	case *ast.AssignExpr:
		return fb.lowerAssign(x)

	case *ast.CallExpr:
		return fb.lowerCall(x)

	case *ast.MethodCallExpr:
		return fb.lowerMethodCall(x)

	case *ast.CtorCallExpr:
		return fb.lowerCtorCall(x)

	case *ast.SuperCallExpr:
		return fb.lowerSuperCall(x)

	case *ast.EnumCtorExpr:
		return fb.lowerEnumCtor(x)

	case *ast.TryExpr:
		return fb.lowerTry(x)

	case *ast.CastExpr:
		v, err := fb.lowerExpr(x.Value)
		if err != nil {
			return -1, err
		}

		dst := fb.alloc()
		fb.emit(&object.Cast{Dst: dst, Src: v, Target: primitiveTypeName(x.Target)})

		return dst, nil

	case *ast.SpawnExpr:
		return fb.lowerSpawn(x)

	case *ast.IfExpr:
		return fb.lowerIfExpr(x)

	case *ast.MatchExpr:
		return fb.lowerMatch(x)

	case *ast.BlockExpr:
		return fb.lowerBlock(x.Block)

	default:
		return -1, fmt.Errorf("codegen: unsupported expression %T", e)
	}
}

func (fb *funcBuilder) lowerIdent(x *ast.Ident) (int, error) {
	if r, ok := fb.locals[x.Name]; ok {
		return r, nil
	}

	if fb.cls != nil {
		if _, ok := fb.cls.Fields[x.Name]; ok {
			self := fb.locals["self"]
			dst := fb.alloc()
			fb.emit(&object.GetField{Dst: dst, Recv: self, Field: x.Name})

			return dst, nil
		}
	}

	return -1, fmt.Errorf("codegen: unresolved identifier %q", x.Name)
}

func (fb *funcBuilder) lowerInterpString(x *ast.InterpString) (int, error) {
	acc := fb.alloc()
	fb.emit(&object.LoadConst{Dst: acc, Val: value.Str("")})

	for _, part := range x.Parts {
		if part.Expr == nil {
			tmp := fb.alloc()
			fb.emit(&object.LoadConst{Dst: tmp, Val: value.Str(part.Text)})
			fb.emit(&object.BinOp{Dst: acc, Lhs: acc, Rhs: tmp, Op: "+"})

			continue
		}

		r, err := fb.lowerExpr(part.Expr)
		if err != nil {
			return -1, err
		}

		fb.emit(&object.BinOp{Dst: acc, Lhs: acc, Rhs: r, Op: "+"})
	}

	return acc, nil
}

func (fb *funcBuilder) lowerBinary(x *ast.BinaryExpr) (int, error) {
	if x.Op == "and" || x.Op == "or" {
		return fb.lowerShortCircuit(x)
	}

	lhs, err := fb.lowerExpr(x.Lhs)
	if err != nil {
		return -1, err
	}

	rhs, err := fb.lowerExpr(x.Rhs)
	if err != nil {
		return -1, err
	}

	dst := fb.alloc()
	fb.emit(&object.BinOp{Dst: dst, Lhs: lhs, Rhs: rhs, Op: x.Op})

	return dst, nil
}

func (fb *funcBuilder) lowerShortCircuit(x *ast.BinaryExpr) (int, error) {
	lhs, err := fb.lowerExpr(x.Lhs)
	if err != nil {
		return -1, err
	}

	dst := fb.alloc()
	fb.emit(&object.Move{Dst: dst, Src: lhs})

	var jmp object.Instr

	if x.Op == "and" {
		j := &object.JumpIfFalse{Cond: dst}
		fb.emit(j)
		jmp = j
	} else {
		j := &object.JumpIfTrue{Cond: dst}
		fb.emit(j)
		jmp = j
	}

	rhs, err := fb.lowerExpr(x.Rhs)
	if err != nil {
		return -1, err
	}

	fb.emit(&object.Move{Dst: dst, Src: rhs})

	switch j := jmp.(type) {
	case *object.JumpIfFalse:
		j.Target = fb.here()
	case *object.JumpIfTrue:
		j.Target = fb.here()
	}

	return dst, nil
}

func (fb *funcBuilder) lowerAssign(x *ast.AssignExpr) (int, error) {
	val, err := fb.lowerExpr(x.Value)
	if err != nil {
		return -1, err
	}

	switch t := x.Target.(type) {
	case *ast.Ident:
		if r, ok := fb.locals[t.Name]; ok {
			fb.emit(&object.Move{Dst: r, Src: val})
			return r, nil
		}

		if fb.cls != nil {
			if _, ok := fb.cls.Fields[t.Name]; ok {
				self := fb.locals["self"]
				fb.emit(&object.SetField{Recv: self, Src: val, Field: t.Name})

				return val, nil
			}
		}

		return -1, fmt.Errorf("codegen: unresolved assignment target %q", t.Name)

	case *ast.MemberExpr:
		recv, err := fb.lowerExpr(t.Receiver)
		if err != nil {
			return -1, err
		}

		fb.emit(&object.SetField{Recv: recv, Src: val, Field: t.Field})

		return val, nil

	case *ast.IndexExpr:
		coll, err := fb.lowerExpr(t.Collection)
		if err != nil {
			return -1, err
		}

		idx, err := fb.lowerExpr(t.Index)
		if err != nil {
			return -1, err
		}

		fb.emit(&object.CallExtern{Dst: -1, Name: "plat_collection_set", Args: []int{coll, idx, val}})

		return val, nil

	default:
		return -1, fmt.Errorf("codegen: unsupported assignment target %T", x.Target)
	}
}

func (fb *funcBuilder) lowerArgs(params []ast.Param, args []ast.Arg) ([]int, error) {
	byName := make(map[string]ast.Expr, len(args))
	for _, a := range args {
		byName[a.Name] = a.Expr
	}

	regs := make([]int, 0, len(params))

	for _, p := range params {
		e, ok := byName[p.Name]
		if !ok {
			if p.Default == nil {
				return nil, fmt.Errorf("codegen: missing argument %q", p.Name)
			}

			e = p.Default
		}

		r, err := fb.lowerExpr(e)
		if err != nil {
			return nil, err
		}

		regs = append(regs, r)
	}

	return regs, nil
}

// positionalArgRegs lowers a call's arguments in the order they were
// written, for call sites (enum constructors) whose declared parameter
// list carries no names to match against.
func (fb *funcBuilder) positionalArgRegs(args []ast.Arg) ([]int, error) {
	regs := make([]int, 0, len(args))

	for _, a := range args {
		r, err := fb.lowerExpr(a.Expr)
		if err != nil {
			return nil, err
		}

		regs = append(regs, r)
	}

	return regs, nil
}

// builtinExterns maps free-function call syntax onto the stable ABI
// entry points spec.md §4 names for conditions with no dedicated
// statement form of their own (unlike "print", which ast.PrintStmt
// lowers directly). A user-defined function of the same name always
// wins, so these never shadow module code.
var builtinExterns = map[string]string{
	"assert": "plat_assert",
}

func (fb *funcBuilder) lowerCall(x *ast.CallExpr) (int, error) {
	name, ok := x.Callee.(*ast.Ident)
	if !ok {
		return -1, fmt.Errorf("codegen: unsupported call target %T", x.Callee)
	}

	if _, userDefined := fb.mod.Funcs[name.Name]; !userDefined {
		if extern, ok := builtinExterns[name.Name]; ok {
			regs, err := fb.positionalArgRegs(x.Args)
			if err != nil {
				return -1, err
			}

			dst := fb.alloc()
			fb.emit(&object.CallExtern{Dst: dst, Name: extern, Args: regs})

			return dst, nil
		}
	}

	var argRegs []int

	if sig, ok := fb.mod.Funcs[name.Name]; ok {
		regs, err := fb.lowerArgs(sig.Params, x.Args)
		if err != nil {
			return -1, err
		}

		argRegs = regs
	} else {
		regs, err := fb.positionalArgRegs(x.Args)
		if err != nil {
			return -1, err
		}

		argRegs = regs
	}

	dst := fb.alloc()
	fb.emit(&object.CallFunc{Dst: dst, Name: name.Name, Args: argRegs})

	return dst, nil
}

func (fb *funcBuilder) lowerMethodCall(x *ast.MethodCallExpr) (int, error) {
	recv, err := fb.lowerExpr(x.Receiver)
	if err != nil {
		return -1, err
	}

	// `.join()` targets the TaskHandle a `spawn` expression yields, not a
	// user class (pkg/sema.checkMethodCall's own class lookup already
	// falls through without error for a receiver type with no class
	// entry), so it is lowered straight to the runtime join extern rather
	// than through the virtual-dispatch MethodCall instruction.
	if x.Method == "join" {
		dst := fb.alloc()
		fb.emit(&object.CallExtern{Dst: dst, Name: "plat_task_join", Args: []int{recv}})

		return dst, nil
	}

	argRegs, err := fb.positionalArgRegs(x.Args)
	if err != nil {
		return -1, err
	}

	dst := fb.alloc()
	fb.emit(&object.MethodCall{Dst: dst, Recv: recv, Method: x.Method, Args: argRegs})

	return dst, nil
}

func (fb *funcBuilder) lowerCtorCall(x *ast.CtorCallExpr) (int, error) {
	inst := fb.alloc()
	fb.emit(&object.MakeInstance{Dst: inst, Class: x.Type})

	var argRegs []int

	if info, ok := fb.mod.Classes[x.Type]; ok {
		if initSig, ok := info.Methods["init"]; ok {
			regs, err := fb.lowerArgs(initSig.Params, x.Args)
			if err != nil {
				return -1, err
			}

			argRegs = regs
		}
	}

	if argRegs == nil {
		regs, err := fb.positionalArgRegs(x.Args)
		if err != nil {
			return -1, err
		}

		argRegs = regs
	}

	fb.emit(&object.CallFunc{Dst: -1, Name: x.Type + ".init", Args: append([]int{inst}, argRegs...)})

	return inst, nil
}

func (fb *funcBuilder) lowerSuperCall(x *ast.SuperCallExpr) (int, error) {
	if fb.cls == nil || fb.cls.Parent == nil {
		return -1, fmt.Errorf("codegen: super.init used outside a subclass constructor")
	}

	self := fb.locals["self"]

	var argRegs []int

	if initSig, ok := fb.cls.Parent.Methods["init"]; ok {
		regs, err := fb.lowerArgs(initSig.Params, x.Args)
		if err != nil {
			return -1, err
		}

		argRegs = regs
	} else {
		regs, err := fb.positionalArgRegs(x.Args)
		if err != nil {
			return -1, err
		}

		argRegs = regs
	}

	fb.emit(&object.CallFunc{
		Dst: -1, Name: fb.cls.Parent.Decl.Name + ".init", Args: append([]int{self}, argRegs...),
	})

	return self, nil
}

func (fb *funcBuilder) lowerEnumCtor(x *ast.EnumCtorExpr) (int, error) {
	argRegs, err := fb.positionalArgRegs(x.Args)
	if err != nil {
		return -1, err
	}

	enumType := x.Enum
	if enumType == "" {
		enumType = fb.inferEnumType(x.Variant)
	}

	dst := fb.alloc()
	fb.emit(&object.MakeEnum{
		Dst: dst, Type: enumType, Variant: x.Variant, Discriminant: variantHash(x.Variant), Fields: argRegs,
	})

	return dst, nil
}

// inferEnumType resolves a bare `Variant(...)` construction (no `Enum::`
// qualifier) to the one module-level enum declaring that variant name.
func (fb *funcBuilder) inferEnumType(variant string) string {
	for name, info := range fb.mod.Enums {
		if _, ok := info.Variants[variant]; ok {
			return name
		}
	}

	return ""
}

// lowerTry lowers the postfix `?` operator on a Result<T, E>-shaped enum:
// an Err(...) operand returns it immediately from the enclosing function;
// an Ok(...) operand unwraps to its single field.
func (fb *funcBuilder) lowerTry(x *ast.TryExpr) (int, error) {
	operand, err := fb.lowerExpr(x.Operand)
	if err != nil {
		return -1, err
	}

	disc := fb.alloc()
	fb.emit(&object.EnumDiscriminant{Dst: disc, Src: operand})

	okHash := fb.alloc()
	fb.emit(&object.LoadConst{Dst: okHash, Val: value.Int(int64(variantHash("Ok")))})

	isOk := fb.alloc()
	fb.emit(&object.BinOp{Dst: isOk, Lhs: disc, Rhs: okHash, Op: "=="})

	jmp := &object.JumpIfFalse{Cond: isOk}
	fb.emit(jmp)

	dst := fb.alloc()
	fb.emit(&object.EnumField{Dst: dst, Src: operand, Index: 0})

	done := &object.Jump{}
	fb.emit(done)

	jmp.Target = fb.here()
	fb.emit(&object.Return{Src: operand})

	done.Target = fb.here()

	return dst, nil
}

func (fb *funcBuilder) lowerSpawn(x *ast.SpawnExpr) (int, error) {
	fb.spawns++
	name := fmt.Sprintf("%s$spawn%d", fb.name, fb.spawns)

	body := &funcBuilder{out: fb.out, mod: fb.mod, cls: fb.cls, name: name, locals: make(map[string]int), scope: -1}

	if fb.cls != nil {
		body.locals["self"] = body.alloc()
	}

	last, err := body.lowerBlock(x.Body)
	if err != nil {
		return -1, err
	}

	body.emit(&object.Return{Src: last})

	numArgs := 0
	if fb.cls != nil {
		numArgs = 1
	}

	fb.out.Functions[name] = &object.Function{Name: name, NumRegs: body.next, NumArgs: numArgs, Instrs: body.instrs}

	nameReg := fb.alloc()
	fb.emit(&object.LoadConst{Dst: nameReg, Val: value.Str(name)})

	extern := "plat_scheduler_spawn"

	var args []int
	if fb.scope >= 0 {
		extern = "plat_scheduler_spawn_into"
		args = append(args, fb.scope)
	}

	args = append(args, nameReg)
	if fb.cls != nil {
		args = append(args, fb.locals["self"])
	}

	dst := fb.alloc()
	fb.emit(&object.CallExtern{Dst: dst, Name: extern, Args: args})

	return dst, nil
}
