// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package testunit

import "fillmore-labs.com/redundantcstr/internal/sema"

// Use references a variable, parameter or function.
func Use(d sema.Decl) *sema.DeclRef {
	var t sema.Type

	switch d := d.(type) {
	case *sema.VarDecl:
		t = sema.NonReference(d.Type)

	case *sema.ParamDecl:
		t = sema.NonReference(d.Type)

	case *sema.FuncDecl:
		t = d.Type()
	}

	return &sema.DeclRef{ExprInfo: sema.ExprInfo{Type: t}, Decl: d}
}

// Qualified references a function through a written qualifier like "fmt::".
func Qualified(qualifier string, f *sema.FuncDecl) *sema.DeclRef {
	r := Use(f)
	r.Qualifier = qualifier

	return r
}

// Lit creates a literal.
func Lit(text string, t sema.Type) *sema.Literal {
	return &sema.Literal{ExprInfo: sema.ExprInfo{Type: t}, Text: text}
}

// Par parenthesizes x.
func Par(x sema.Expr) *sema.Paren {
	return &sema.Paren{ExprInfo: sema.ExprInfo{Type: sema.TypeOf(x)}, X: x}
}

// Convert wraps x into an implicit conversion to t.
func Convert(x sema.Expr, t sema.Type) *sema.Implicit {
	return &sema.Implicit{ExprInfo: sema.ExprInfo{Type: t}, X: x}
}

// Addr takes the address of x.
func Addr(x sema.Expr) *sema.Unary {
	return &sema.Unary{ExprInfo: sema.ExprInfo{Type: PtrTo(sema.TypeOf(x))}, Op: "&", X: x}
}

// Deref dereferences the pointer x.
func Deref(x sema.Expr) *sema.Unary {
	elem, _ := sema.Pointee(sema.TypeOf(x))

	return &sema.Unary{ExprInfo: sema.ExprInfo{Type: elem}, Op: "*", X: x}
}

// Bin creates a built-in binary operator.
func Bin(op string, x, y sema.Expr, t sema.Type) *sema.Binary {
	return &sema.Binary{ExprInfo: sema.ExprInfo{Type: t}, Op: op, X: x, Y: y}
}

// Cond creates a conditional operator.
func Cond(c, then, els sema.Expr) *sema.Conditional {
	return &sema.Conditional{ExprInfo: sema.ExprInfo{Type: sema.TypeOf(then)}, Cond: c, Then: then, Else: els}
}

// Call calls the function f, converting arguments to non-forwarding parameter types.
func Call(f *sema.FuncDecl, args ...sema.Expr) *sema.Call {
	return CallVia(Use(f), f, args...)
}

// CallVia calls f through the function expression fun.
func CallVia(fun sema.Expr, f *sema.FuncDecl, args ...sema.Expr) *sema.Call {
	return &sema.Call{
		ExprInfo: sema.ExprInfo{Type: f.Result},
		Fun:      fun,
		Args:     convertArgs(f.Params, args),
		Callee:   f,
	}
}

// CallPtr calls through an expression of function pointer type.
func CallPtr(fun sema.Expr, args ...sema.Expr) *sema.Call {
	ft, _ := sema.FuncOf(sema.TypeOf(fun))

	var (
		params []*sema.ParamDecl
		result sema.Type
	)

	if ft != nil {
		for _, p := range ft.Params {
			params = append(params, Param("", p))
		}

		result = ft.Result
	}

	return &sema.Call{
		ExprInfo: sema.ExprInfo{Type: result},
		Fun:      fun,
		Args:     convertArgs(params, args),
	}
}

// MCall calls the member function m on recv, using "->" for pointer receivers.
func MCall(recv sema.Expr, m *sema.FuncDecl, args ...sema.Expr) *sema.MemberCall {
	return MCallTyped(recv, m, m.Result, args...)
}

// MCallTyped calls the member function m with an explicit result type.
func MCallTyped(recv sema.Expr, m *sema.FuncDecl, result sema.Type, args ...sema.Expr) *sema.MemberCall {
	_, arrow := sema.Pointee(sema.TypeOf(recv))

	callee := &sema.Member{
		ExprInfo: sema.ExprInfo{Type: m.Type()},
		Base:     recv,
		Name:     sema.Name(m),
		Arrow:    arrow,
		Decl:     m,
	}

	return &sema.MemberCall{
		ExprInfo: sema.ExprInfo{Type: result},
		Callee:   callee,
		Args:     convertArgs(m.Params, args),
		Method:   m,
	}
}

// Op creates an overloaded operator call. Member operators take the object as first argument.
func Op(op string, f *sema.FuncDecl, result sema.Type, args ...sema.Expr) *sema.OperatorCall {
	return &sema.OperatorCall{ExprInfo: sema.ExprInfo{Type: result}, Op: op, Args: args, Callee: f}
}

// Arrow applies an overloaded operator-> yielding a pointer to elem.
func Arrow(it sema.Expr, f *sema.FuncDecl, elem sema.Type) *sema.OperatorCall {
	return Op("->", f, PtrTo(elem), it)
}

// Invoke applies an overloaded operator() of the object obj.
func Invoke(obj sema.Expr, f *sema.FuncDecl, args ...sema.Expr) *sema.OperatorCall {
	args = convertArgs(f.Params, args)

	return Op("()", f, f.Result, append([]sema.Expr{obj}, args...)...)
}

// Construct creates an explicit construction "spelling(args)".
func Construct(spelling string, t sema.Type, ctor *sema.FuncDecl, args ...sema.Expr) *sema.Construct {
	return &sema.Construct{ExprInfo: sema.ExprInfo{Type: t}, Spelling: spelling, Args: args, Ctor: ctor}
}

func convertArgs(params []*sema.ParamDecl, args []sema.Expr) []sema.Expr {
	converted := make([]sema.Expr, len(args))

	for i, arg := range args {
		converted[i] = arg

		if i >= len(params) || params[i].Pack || params[i].ForwardingReference() {
			continue
		}

		want := sema.NonReference(params[i].Type)
		if !sema.Identical(sema.Unalias(want), sema.Unalias(sema.TypeOf(arg))) {
			converted[i] = Convert(arg, want)
		}
	}

	return converted
}

// Expr creates an expression statement.
func Expr(x sema.Expr) *sema.ExprStmt { return &sema.ExprStmt{X: x} }

// Decl creates a copy-initialized declaration "T v = init", or "T v" for a nil init.
func Decl(v *sema.VarDecl, init sema.Expr) *sema.DeclStmt {
	return &sema.DeclStmt{Var: v, Init: init}
}

// DirectDecl creates a direct-initialized declaration "T v(init)".
func DirectDecl(v *sema.VarDecl, init sema.Expr) *sema.DeclStmt {
	return &sema.DeclStmt{Var: v, Init: init, Direct: true}
}

// Ret creates a return statement.
func Ret(x sema.Expr) *sema.Return { return &sema.Return{Result: x} }

// If creates an if statement without else branch.
func If(cond sema.Expr, then sema.Stmt) *sema.If { return &sema.If{Cond: cond, Then: then} }

// Block creates a compound statement.
func Block(stmts ...sema.Stmt) *sema.Block { return &sema.Block{List: stmts} }
