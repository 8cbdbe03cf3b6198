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

// Package printer re-serializes a parsed *ast.Program back to Plat source
// text. It exists to drive the parser's idempotence-of-structure property
// (parse -> print -> parse again yields the same shape) and to back
// `platc fmt`'s output; a full layout-preserving formatter (comment
// placement, blank-line preservation, line-width wrapping) is out of
// scope here and remains an external collaborator's job.
package printer

import (
	"fmt"
	"strings"

	"github.com/plat-lang/platc/pkg/ast"
)

// Print renders prog as Plat source text.
func Print(prog *ast.Program) string {
	var b strings.Builder

	if prog.Module != nil {
		fmt.Fprintf(&b, "mod %s;\n", strings.Join(prog.Module.Path, "::"))
	}

	for _, u := range prog.Uses {
		fmt.Fprintf(&b, "use %s;\n", strings.Join(u.Path, "::"))
	}

	for _, a := range prog.Aliases {
		fmt.Fprintf(&b, "%stype %s = %s;\n", pubPrefix(a.Pub), a.Name, a.Type.String())
	}

	for _, n := range prog.Newtypes {
		fmt.Fprintf(&b, "%snewtype %s = %s;\n", pubPrefix(n.Pub), n.Name, n.Type.String())
	}

	for _, e := range prog.Enums {
		printEnum(&b, e)
	}

	for _, c := range prog.Classes {
		printClass(&b, c)
	}

	for _, f := range prog.Funcs {
		printFunc(&b, f, 0)
	}

	for _, t := range prog.Tests {
		fmt.Fprintf(&b, "test %s {\n", t.Name)
		printFunc(&b, t.Func, 1)
		b.WriteString("}\n")
	}

	for _, bn := range prog.Benches {
		fmt.Fprintf(&b, "bench %s {\n", bn.Name)
		printFunc(&b, bn.Func, 1)
		b.WriteString("}\n")
	}

	return b.String()
}

func pubPrefix(pub bool) string {
	if pub {
		return "pub "
	}

	return ""
}

func printEnum(b *strings.Builder, e *ast.EnumDecl) {
	fmt.Fprintf(b, "%senum %s%s {\n", pubPrefix(e.Pub), e.Name, generics(e.Generics))

	for _, v := range e.Variants {
		if len(v.Fields) == 0 {
			fmt.Fprintf(b, "    %s,\n", v.Name)
			continue
		}

		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = f.String()
		}

		fmt.Fprintf(b, "    %s(%s),\n", v.Name, strings.Join(parts, ", "))
	}

	for _, m := range e.Methods {
		printFunc(b, m, 1)
	}

	b.WriteString("}\n")
}

func printClass(b *strings.Builder, c *ast.ClassDecl) {
	parent := ""
	if c.Parent != "" {
		parent = ": " + c.Parent
	}

	fmt.Fprintf(b, "%sclass %s%s%s {\n", pubPrefix(c.Pub), c.Name, generics(c.Generics), parent)

	for _, f := range c.Fields {
		kw := "let"
		if f.Mutable {
			kw = "var"
		}

		fmt.Fprintf(b, "    %s%s %s: %s;\n", pubPrefix(f.Pub), kw, f.Name, f.Type.String())
	}

	for _, m := range c.Methods {
		printFunc(b, m, 1)
	}

	b.WriteString("}\n")
}

func generics(names []string) string {
	if len(names) == 0 {
		return ""
	}

	return "<" + strings.Join(names, ", ") + ">"
}

func printFunc(b *strings.Builder, f *ast.FuncDecl, indent int) {
	ind := strings.Repeat("    ", indent)

	var mods strings.Builder
	if f.Pub {
		mods.WriteString("pub ")
	}
	if f.Virtual {
		mods.WriteString("virtual ")
	}
	if f.Override {
		mods.WriteString("override ")
	}
	if f.Mut {
		mods.WriteString("mut ")
	}

	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		if p.Default != nil {
			params[i] = fmt.Sprintf("%s: %s = %s", p.Name, p.Type.String(), printExpr(p.Default))
		} else {
			params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type.String())
		}
	}

	ret := ""
	if !f.Return.IsVoid() {
		ret = " -> " + f.Return.String()
	}

	kw := "fn "
	if f.Name == "init" {
		kw = ""
	}

	fmt.Fprintf(b, "%s%s%s%s%s(%s)%s ", ind, mods.String(), kw, f.Name, generics(f.Generics), strings.Join(params, ", "), ret)
	printBlock(b, f.Body, indent)
	b.WriteString("\n")
}

func printBlock(b *strings.Builder, block *ast.Block, indent int) {
	ind := strings.Repeat("    ", indent)
	b.WriteString("{\n")

	for _, s := range block.Stmts {
		printStmt(b, s, indent+1)
	}

	fmt.Fprintf(b, "%s}\n", ind)
}

func printStmt(b *strings.Builder, s ast.Stmt, indent int) {
	ind := strings.Repeat("    ", indent)

	switch st := s.(type) {
	case *ast.LetStmt:
		fmt.Fprintf(b, "%slet %s: %s = %s;\n", ind, st.Name, st.Type.String(), printExpr(st.Init))
	case *ast.VarStmt:
		fmt.Fprintf(b, "%svar %s: %s = %s;\n", ind, st.Name, st.Type.String(), printExpr(st.Init))
	case *ast.ExprStmt:
		fmt.Fprintf(b, "%s%s;\n", ind, printExpr(st.Expr))
	case *ast.ReturnStmt:
		if st.Value == nil {
			fmt.Fprintf(b, "%sreturn;\n", ind)
		} else {
			fmt.Fprintf(b, "%sreturn %s;\n", ind, printExpr(st.Value))
		}
	case *ast.PrintStmt:
		fmt.Fprintf(b, "%sprint(value = %s);\n", ind, printExpr(st.Value))
	case *ast.IfStmt:
		fmt.Fprintf(b, "%sif (%s) ", ind, printExpr(st.Cond))
		printBlock(b, st.Then, indent)
		printElse(b, st.Else, indent)
	case *ast.BlockStmt:
		fmt.Fprintf(b, "%s", ind)
		printBlock(b, st.Block, indent)
	case *ast.WhileStmt:
		fmt.Fprintf(b, "%swhile (%s) ", ind, printExpr(st.Cond))
		printBlock(b, st.Body, indent)
	case *ast.ForStmt:
		fmt.Fprintf(b, "%sfor (%s: %s in %s) ", ind, st.Var, st.VarType.String(), printExpr(st.Iterable))
		printBlock(b, st.Body, indent)
	case *ast.ConcurrentStmt:
		fmt.Fprintf(b, "%sconcurrent ", ind)
		printBlock(b, st.Body, indent)
	default:
		fmt.Fprintf(b, "%s/* unknown statement */;\n", ind)
	}
}

func printElse(b *strings.Builder, e ast.Stmt, indent int) {
	ind := strings.Repeat("    ", indent)

	switch el := e.(type) {
	case nil:
		return
	case *ast.IfStmt:
		fmt.Fprintf(b, "%selse if (%s) ", ind, printExpr(el.Cond))
		printBlock(b, el.Then, indent)
		printElse(b, el.Else, indent)
	case *ast.BlockStmt:
		fmt.Fprintf(b, "%selse ", ind)
		printBlock(b, el.Block, indent)
	}
}

func printExpr(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.BoolLit:
		return fmt.Sprintf("%t", x.Value)
	case *ast.IntLit:
		return fmt.Sprintf("%d", x.Value)
	case *ast.FloatLit:
		return fmt.Sprintf("%g", x.Value)
	case *ast.StringLit:
		return fmt.Sprintf("%q", x.Value)
	case *ast.InterpString:
		var b strings.Builder
		b.WriteByte('"')
		for _, p := range x.Parts {
			if p.Expr != nil {
				fmt.Fprintf(&b, "${%s}", printExpr(p.Expr))
			} else {
				b.WriteString(p.Text)
			}
		}
		b.WriteByte('"')
		return b.String()
	case *ast.ArrayLit:
		return "[" + strings.Join(exprList(x.Elements), ", ") + "]"
	case *ast.SetLit:
		return "{" + strings.Join(exprList(x.Elements), ", ") + "}"
	case *ast.DictLit:
		parts := make([]string, len(x.Entries))
		for i, ent := range x.Entries {
			parts[i] = fmt.Sprintf("%s: %s", printExpr(ent.Key), printExpr(ent.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.Ident:
		return x.Name
	case *ast.Self:
		return "self"
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", printExpr(x.Lhs), x.Op, printExpr(x.Rhs))
	case *ast.UnaryExpr:
		if x.Op == "not" {
			return fmt.Sprintf("(not %s)", printExpr(x.Operand))
		}
		return fmt.Sprintf("(%s%s)", x.Op, printExpr(x.Operand))
	case *ast.CallExpr:
		return fmt.Sprintf("%s(%s)", printExpr(x.Callee), strings.Join(argList(x.Args), ", "))
	case *ast.MethodCallExpr:
		return fmt.Sprintf("%s.%s(%s)", printExpr(x.Receiver), x.Method, strings.Join(argList(x.Args), ", "))
	case *ast.IndexExpr:
		return fmt.Sprintf("%s[%s]", printExpr(x.Collection), printExpr(x.Index))
	case *ast.MemberExpr:
		return fmt.Sprintf("%s.%s", printExpr(x.Receiver), x.Field)
	case *ast.AssignExpr:
		return fmt.Sprintf("%s = %s", printExpr(x.Target), printExpr(x.Value))
	case *ast.BlockExpr:
		var b strings.Builder
		printBlock(&b, x.Block, 0)
		return b.String()
	case *ast.EnumCtorExpr:
		name := x.Variant
		if x.Enum != "" {
			name = x.Enum + "::" + x.Variant
		}
		return fmt.Sprintf("%s(%s)", name, strings.Join(argList(x.Args), ", "))
	case *ast.MatchExpr:
		var b strings.Builder
		fmt.Fprintf(&b, "match (%s) {", printExpr(x.Scrutinee))
		for i, arm := range x.Arms {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s => %s", printPattern(arm.Pattern), printExpr(arm.Body))
		}
		b.WriteString("}")
		return b.String()
	case *ast.TryExpr:
		return printExpr(x.Operand) + "?"
	case *ast.SuperCallExpr:
		return fmt.Sprintf("super.init(%s)", strings.Join(argList(x.Args), ", "))
	case *ast.CtorCallExpr:
		return fmt.Sprintf("%s.init(%s)", x.Type, strings.Join(argList(x.Args), ", "))
	case *ast.RangeExpr:
		op := ".."
		if x.Inclusive {
			op = "..="
		}
		return fmt.Sprintf("%s%s%s", printExpr(x.Lo), op, printExpr(x.Hi))
	case *ast.IfExpr:
		var b strings.Builder
		fmt.Fprintf(&b, "if (%s) ", printExpr(x.Cond))
		printBlock(&b, x.Then, 0)
		if x.ElseIf != nil {
			b.WriteString("else ")
			b.WriteString(printExpr(x.ElseIf))
		} else if x.Else != nil {
			b.WriteString("else ")
			printBlock(&b, x.Else, 0)
		}
		return b.String()
	case *ast.CastExpr:
		return fmt.Sprintf("cast(value = %s, target = %s)", printExpr(x.Value), x.Target.String())
	case *ast.SpawnExpr:
		var b strings.Builder
		b.WriteString("spawn ")
		printBlock(&b, x.Body, 0)
		return b.String()
	default:
		return "/* unknown expr */"
	}
}

func exprList(es []ast.Expr) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = printExpr(e)
	}

	return out
}

func argList(args []ast.Arg) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = fmt.Sprintf("%s = %s", a.Name, printExpr(a.Expr))
	}

	return out
}

func printPattern(p ast.Pattern) string {
	switch pt := p.(type) {
	case *ast.IdentPattern:
		return pt.Name
	case *ast.LiteralPattern:
		return printExpr(pt.Value)
	case *ast.EnumPattern:
		name := pt.Variant
		if pt.Enum != "" {
			name = pt.Enum + "::" + pt.Variant
		}

		if len(pt.Fields) == 0 {
			return name
		}

		parts := make([]string, len(pt.Fields))
		for i, f := range pt.Fields {
			parts[i] = f.Name + ": " + f.Type.String()
		}

		return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
	default:
		return "_"
	}
}
