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
package sema

import (
	"fmt"

	"github.com/plat-lang/platc/pkg/ast"
	"github.com/plat-lang/platc/pkg/diag"
)

// Checker walks a single module's AST, accumulating type diagnostics. Its
// public entry point is Check.
type Checker struct {
	mod  *Module
	errs []*diag.Diagnostic
}

// CheckProgram builds a module's symbol table and checks it in one step;
// convenient for single-file analysis (tests, one-shot tools). Multi-module
// builds should call BuildModule for every module first, then Check, so
// cross-module symbol lookups see the whole program.
func CheckProgram(path string, prog *ast.Program) []*diag.Diagnostic {
	mod, errs := BuildModule(path, prog)

	diags := Check(mod, prog, errs)
	diags = append(diags, CheckEntryPoint(map[string]*Module{path: mod})...)

	return diags
}

// Check runs full semantic analysis over an already-built module:
// main-function validation and per-function body checking. buildErrs are
// the diagnostics BuildModule produced for this module and are included
// verbatim in the result. It returns every diagnostic found; an empty
// slice means the module is well-formed.
func Check(mod *Module, prog *ast.Program, buildErrs []*diag.Diagnostic) []*diag.Diagnostic {
	errs := append([]*diag.Diagnostic(nil), buildErrs...)

	c := &Checker{mod: mod, errs: errs}

	if sig, ok := mod.Funcs["main"]; ok {
		c.checkMainSignature(sig)
	}

	for _, f := range prog.Funcs {
		c.checkFunc(f, nil)
	}

	for _, cls := range prog.Classes {
		c.checkClass(cls)
	}

	for _, e := range prog.Enums {
		for _, meth := range e.Methods {
			c.checkFunc(meth, nil)
		}
	}

	return c.errs
}

func (c *Checker) err(kind diag.Kind, code string, span ast.Expr, format string, args ...interface{}) {
	c.errs = append(c.errs, diag.New(kind, code, span.Span(), fmt.Sprintf(format, args...)))
}

// checkMainSignature validates a module-local `fn main()`'s shape, per
// spec.md §6's entrypoint invariant. Whether this module is actually the
// program's one designated entry point is a whole-program property
// checked separately by CheckEntryPoint, since no single module's Check
// call can see every other module's symbol table.
func (c *Checker) checkMainSignature(sig *FuncSig) {
	if len(sig.Params) != 0 {
		c.errs = append(c.errs, diag.New(diag.KindType, "E103", sig.Decl.Span, "'main' must take no parameters"))
	}
}

func (c *Checker) checkClass(cls *ast.ClassDecl) {
	info := c.mod.Classes[cls.Name]

	for _, meth := range cls.Methods {
		if meth.Override {
			if info.Parent == nil {
				c.errs = append(c.errs, diag.New(diag.KindType, "E104", meth.Span,
					fmt.Sprintf("method %q marked override but %q has no parent class", meth.Name, cls.Name)))
				continue
			}

			parentMeth, _ := info.Parent.ResolveMethod(meth.Name)
			if parentMeth == nil {
				c.errs = append(c.errs, diag.New(diag.KindType, "E105", meth.Span,
					fmt.Sprintf("method %q marked override but no parent method of that name exists", meth.Name)))
			} else if !parentMeth.Virtual {
				c.errs = append(c.errs, diag.New(diag.KindType, "E106", meth.Span,
					fmt.Sprintf("method %q overrides a non-virtual parent method", meth.Name)))
			}
		}

		c.checkFunc(meth, info)
	}
}

// checkFunc type-checks a single function or method body: parameters seed
// the root local scope, a bare `return` in a function with a declared
// return type is reported (E108), and (for methods) cls supplies `self`'s
// type. The type of a returned value is not compared with the declared
// return type.
func (c *Checker) checkFunc(f *ast.FuncDecl, cls *ClassInfo) {
	scope := NewScope()

	for _, p := range f.Params {
		scope.Declare(p.Name, p.Type, false)
	}

	if cls != nil {
		scope.Declare("self", ast.Type{Name: cls.Decl.Name}, false)
	}

	fc := &funcChecker{Checker: c, ret: f.Return, cls: cls}
	fc.checkBlock(f.Body, scope)
}

// funcChecker carries the per-function context (declared return type, the
// enclosing class for `self`/`super`) through statement and expression
// checking.
type funcChecker struct {
	*Checker
	ret ast.Type
	cls *ClassInfo
}

func (fc *funcChecker) checkBlock(b *ast.Block, scope *Scope) {
	inner := scope.Push()

	for _, stmt := range b.Stmts {
		fc.checkStmt(stmt, inner)
	}
}

func (fc *funcChecker) checkStmt(stmt ast.Stmt, scope *Scope) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		if scope.DeclaredHere(s.Name) {
			fc.errs = append(fc.errs, diag.New(diag.KindType, "E107", s.Span(),
				fmt.Sprintf("%q is already declared in this block", s.Name)))
		}

		fc.checkExpr(s.Init, scope)
		scope.Declare(s.Name, s.Type, false)
	case *ast.VarStmt:
		if scope.DeclaredHere(s.Name) {
			fc.errs = append(fc.errs, diag.New(diag.KindType, "E107", s.Span(),
				fmt.Sprintf("%q is already declared in this block", s.Name)))
		}

		fc.checkExpr(s.Init, scope)
		scope.Declare(s.Name, s.Type, true)
	case *ast.ExprStmt:
		fc.checkExpr(s.Expr, scope)
	case *ast.ReturnStmt:
		if s.Value != nil {
			fc.checkExpr(s.Value, scope)
		} else if !fc.ret.IsVoid() {
			fc.errs = append(fc.errs, diag.New(diag.KindType, "E108", s.Span(),
				"bare 'return' in a function with a declared return type"))
		}
	case *ast.IfStmt:
		fc.checkExpr(s.Cond, scope)
		fc.checkBlock(s.Then, scope)

		switch e := s.Else.(type) {
		case nil:
		case *ast.IfStmt:
			fc.checkStmt(e, scope)
		case *ast.BlockStmt:
			fc.checkBlock(e.Block, scope)
		}
	case *ast.WhileStmt:
		fc.checkExpr(s.Cond, scope)
		fc.checkBlock(s.Body, scope)
	case *ast.ForStmt:
		fc.checkExpr(s.Iterable, scope)

		inner := scope.Push()
		inner.Declare(s.Var, s.VarType, false)
		fc.checkBlock(s.Body, inner)
	case *ast.PrintStmt:
		fc.checkExpr(s.Value, scope)
	case *ast.ConcurrentStmt:
		fc.checkBlock(s.Body, scope)
	case *ast.BlockStmt:
		fc.checkBlock(s.Block, scope)
	}
}

// checkExpr type-checks an expression and returns its inferred type, per
// spec.md §6's arithmetic/comparison/logical/call-site typing rules. On
// error, it records a diagnostic and returns a best-effort type so
// checking can continue (no crash-on-first-error, matching the parser's
// fail-fast-but-the-checker-keeps-going split spec.md §7 describes).
func (fc *funcChecker) checkExpr(e ast.Expr, scope *Scope) ast.Type {
	switch x := e.(type) {
	case *ast.BoolLit:
		return BoolType
	case *ast.IntLit:
		return ast.Type{Name: x.Type}
	case *ast.FloatLit:
		return ast.Type{Name: x.Type}
	case *ast.StringLit:
		return ast.Type{Name: "String"}
	case *ast.InterpString:
		for _, part := range x.Parts {
			if part.Expr != nil {
				fc.checkExpr(part.Expr, scope)
			}
		}

		return ast.Type{Name: "String"}
	case *ast.Ident:
		if ty, _, ok := scope.Lookup(x.Name); ok {
			return ty
		}

		if sig, ok := fc.mod.Funcs[x.Name]; ok {
			return sig.Return
		}

		fc.err(diag.KindType, "E109", e, "undefined name %q", x.Name)

		return ast.Type{}
	case *ast.Self:
		if fc.cls == nil {
			fc.err(diag.KindType, "E110", e, "'self' used outside a method")
			return ast.Type{}
		}

		return ast.Type{Name: fc.cls.Decl.Name}
	case *ast.BinaryExpr:
		return fc.checkBinary(x, scope)
	case *ast.UnaryExpr:
		operand := fc.checkExpr(x.Operand, scope)

		if x.Op == "not" && !isBool(operand) {
			fc.err(diag.KindType, "E111", e, "'not' requires a Bool operand")
		}

		if x.Op == "-" && !isNumeric(operand) {
			fc.err(diag.KindType, "E111", e, "unary '-' requires a numeric operand")
		}

		return operand
	case *ast.AssignExpr:
		fc.checkAssignTarget(x.Target, scope)
		fc.checkExpr(x.Value, scope)

		return VoidType
	case *ast.RangeExpr:
		lo := fc.checkExpr(x.Lo, scope)
		fc.checkExpr(x.Hi, scope)

		return lo
	case *ast.ArrayLit:
		var elem ast.Type

		for i, el := range x.Elements {
			t := fc.checkExpr(el, scope)
			if i == 0 {
				elem = t
			}
		}

		return ast.Type{Name: "List", Args: []ast.Type{elem}}
	case *ast.SetLit:
		var elem ast.Type

		for i, el := range x.Elements {
			t := fc.checkExpr(el, scope)
			if i == 0 {
				elem = t
			}
		}

		return ast.Type{Name: "Set", Args: []ast.Type{elem}}
	case *ast.DictLit:
		var k, v ast.Type

		for i, entry := range x.Entries {
			kt := fc.checkExpr(entry.Key, scope)
			vt := fc.checkExpr(entry.Value, scope)

			if i == 0 {
				k, v = kt, vt
			}
		}

		return ast.Type{Name: "Dict", Args: []ast.Type{k, v}}
	case *ast.IndexExpr:
		coll := fc.checkExpr(x.Collection, scope)
		fc.checkExpr(x.Index, scope)

		if len(coll.Args) > 0 {
			return coll.Args[len(coll.Args)-1]
		}

		return ast.Type{}
	case *ast.MemberExpr:
		recv := fc.checkExpr(x.Receiver, scope)

		info, ok := fc.mod.Classes[recv.Name]
		if !ok {
			fc.err(diag.KindType, "E112", e, "%q is not a class type", recv.Name)
			return ast.Type{}
		}

		for cur := info; cur != nil; cur = cur.Parent {
			if field, ok := cur.Fields[x.Field]; ok {
				return field.Type
			}
		}

		fc.err(diag.KindType, "E113", e, "class %q has no field %q", recv.Name, x.Field)

		return ast.Type{}
	case *ast.CallExpr:
		return fc.checkCall(x, scope)
	case *ast.MethodCallExpr:
		return fc.checkMethodCall(x, scope)
	case *ast.CtorCallExpr:
		fc.checkArgs(x.Args, classCtorParams(fc.mod, x.Type), scope, e)
		return ast.Type{Name: x.Type}
	case *ast.SuperCallExpr:
		if fc.cls == nil || fc.cls.Parent == nil {
			fc.err(diag.KindType, "E114", e, "'super.init' used without a parent class")
			return VoidType
		}

		fc.checkArgs(x.Args, classCtorParams(fc.mod, fc.cls.Parent.Decl.Name), scope, e)

		return VoidType
	case *ast.EnumCtorExpr:
		for _, a := range x.Args {
			fc.checkExpr(a.Expr, scope)
		}

		return ast.Type{Name: x.Enum}
	case *ast.TryExpr:
		return fc.checkExpr(x.Operand, scope)
	case *ast.CastExpr:
		fc.checkExpr(x.Value, scope)
		return x.Target
	case *ast.SpawnExpr:
		inner := scope.Push()
		fc.checkBlock(x.Body, inner)

		return ast.Type{Name: "TaskHandle"}
	case *ast.IfExpr:
		fc.checkExpr(x.Cond, scope)
		fc.checkBlock(x.Then, scope)

		if x.Else != nil {
			fc.checkBlock(x.Else, scope)
		}

		if x.ElseIf != nil {
			fc.checkExpr(x.ElseIf, scope)
		}

		return VoidType
	case *ast.MatchExpr:
		return fc.checkMatch(x, scope)
	default:
		return ast.Type{}
	}
}

func (fc *funcChecker) checkAssignTarget(target ast.Expr, scope *Scope) {
	switch t := target.(type) {
	case *ast.Ident:
		_, mutable, ok := scope.Lookup(t.Name)
		if !ok {
			fc.err(diag.KindType, "E109", target, "undefined name %q", t.Name)
			return
		}

		if !mutable {
			fc.err(diag.KindType, "E115", target, "cannot assign to immutable binding %q", t.Name)
		}
	case *ast.MemberExpr:
		fc.checkExpr(t.Receiver, scope)
	case *ast.IndexExpr:
		fc.checkExpr(t, scope)
	default:
		fc.err(diag.KindType, "E116", target, "invalid assignment target")
	}
}

func (fc *funcChecker) checkBinary(x *ast.BinaryExpr, scope *Scope) ast.Type {
	lhs := fc.checkExpr(x.Lhs, scope)
	rhs := fc.checkExpr(x.Rhs, scope)

	switch x.Op {
	case "+", "-", "*", "/", "%":
		if x.Op == "+" && isString(lhs) && isString(rhs) {
			return ast.Type{Name: "String"}
		}

		if !isNumeric(lhs) || !isNumeric(rhs) {
			fc.err(diag.KindType, "E117", x, "operator %q requires numeric operands", x.Op)
		}

		return lhs
	case "<", "<=", ">", ">=":
		if !isNumeric(lhs) || !isNumeric(rhs) {
			fc.err(diag.KindType, "E117", x, "operator %q requires numeric operands", x.Op)
		}

		return BoolType
	case "==", "!=":
		return BoolType
	case "and", "or":
		if !isBool(lhs) || !isBool(rhs) {
			fc.err(diag.KindType, "E118", x, "operator %q requires Bool operands", x.Op)
		}

		return BoolType
	default:
		return ast.Type{}
	}
}

// isBuiltinFreeFunc reports whether name is a call-syntax entry point onto
// the runtime ABI rather than a module-declared function (mirrors
// pkg/codegen's builtinExterns table, which lowers the same names to
// object.CallExtern once a program passes this check).
func isBuiltinFreeFunc(name string) bool {
	switch name {
	case "assert":
		return true
	default:
		return false
	}
}

func (fc *funcChecker) checkCall(x *ast.CallExpr, scope *Scope) ast.Type {
	ident, ok := x.Callee.(*ast.Ident)
	if !ok {
		fc.checkExpr(x.Callee, scope)

		for _, a := range x.Args {
			fc.checkExpr(a.Expr, scope)
		}

		return ast.Type{}
	}

	sig, ok := fc.mod.Funcs[ident.Name]
	if !ok {
		if !isBuiltinFreeFunc(ident.Name) {
			fc.err(diag.KindType, "E109", x, "undefined function %q", ident.Name)
		}

		for _, a := range x.Args {
			fc.checkExpr(a.Expr, scope)
		}

		return ast.Type{}
	}

	fc.checkArgs(x.Args, sig.Params, scope, x)

	return sig.Return
}

func (fc *funcChecker) checkMethodCall(x *ast.MethodCallExpr, scope *Scope) ast.Type {
	recv := fc.checkExpr(x.Receiver, scope)

	info, ok := fc.mod.Classes[recv.Name]
	if !ok {
		for _, a := range x.Args {
			fc.checkExpr(a.Expr, scope)
		}

		return ast.Type{}
	}

	sig, _ := info.ResolveMethod(x.Method)
	if sig == nil {
		fc.err(diag.KindType, "E119", x, "class %q has no method %q", recv.Name, x.Method)

		for _, a := range x.Args {
			fc.checkExpr(a.Expr, scope)
		}

		return ast.Type{}
	}

	fc.checkArgs(x.Args, sig.Params, scope, x)

	return sig.Return
}

// checkArgs validates a named-argument call site against a parameter list:
// every non-default parameter must be supplied by name, every supplied
// name must exist, and no positional form is accepted (the parser already
// enforces that syntactically; this re-validates arity/defaults/
// unknown-name semantics per spec.md §6).
func (fc *funcChecker) checkArgs(args []ast.Arg, params []ast.Param, scope *Scope, at ast.Expr) {
	byName := make(map[string]bool, len(params))
	for _, p := range params {
		byName[p.Name] = true
	}

	supplied := make(map[string]bool, len(args))

	for _, a := range args {
		fc.checkExpr(a.Expr, scope)

		if !byName[a.Name] {
			fc.err(diag.KindType, "E120", at, "unknown argument %q", a.Name)
			continue
		}

		supplied[a.Name] = true
	}

	for _, p := range params {
		if !supplied[p.Name] && p.Default == nil {
			fc.err(diag.KindType, "E121", at, "missing required argument %q", p.Name)
		}
	}
}

func classCtorParams(mod *Module, className string) []ast.Param {
	info, ok := mod.Classes[className]
	if !ok {
		return nil
	}

	if sig, ok := info.Methods["init"]; ok {
		return sig.Params
	}

	return nil
}
