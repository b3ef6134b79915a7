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

package resolve

import (
	"fillmore-labs.com/redundantcstr/internal/classify"
	"fillmore-labs.com/redundantcstr/internal/match"
	"fillmore-labs.com/redundantcstr/internal/sema"
)

// memberCall handles arguments of member function calls. Members of the string class take precedence.
func (r *Resolver) memberCall(a match.AccessorCall, n *sema.MemberCall, i int) Outcome {
	site := UseSite{Kind: CallArgument, Node: n, Arg: i}
	if i < 0 || n.Method == nil || n.Callee == nil {
		return reject(site, NoDirectAcceptance)
	}

	object := sema.TypeOf(n.Callee.Base)
	if n.Callee.Arrow {
		object, _ = sema.Pointee(object)
	}

	if obj := classify.Classify(object); obj.Family == classify.String {
		site.Kind = StringMember
		if obj.Same(a.String) && stringMemberAccepts(sema.Name(n.Method), len(n.Args), i) {
			return accept(site)
		}

		return reject(site, NoDirectAcceptance)
	}

	if p, ok := n.Method.ParamAt(i); ok && p.ForwardingReference() {
		if rec, ok := sema.RecordOf(object); ok && r.sinks.allows(rec, sema.Name(n.Method)) {
			site.Kind = SinkArgument

			return accept(site)
		}
	}

	return r.declaredParam(a, site, n.Method, i)
}

// stringMemberAccepts reports whether the string member overload taking a string exists
// for the argument position i of a call with n arguments.
func stringMemberAccepts(name string, n, i int) bool {
	switch name {
	case "append", "assign":
		return n == 1 && i == 0

	case "compare":
		return n == 1 && i == 0 || n == 3 && i == 2

	case "find", "rfind", "find_first_of", "find_first_not_of", "find_last_of", "find_last_not_of":
		return (n == 1 || n == 2) && i == 0

	case "insert":
		return n == 2 && i == 1

	default:
		return false
	}
}

// call handles arguments of free function calls and calls through function pointers.
func (r *Resolver) call(a match.AccessorCall, n *sema.Call, i int) Outcome {
	site := UseSite{Kind: CallArgument, Node: n, Arg: i}
	if i < 0 {
		return reject(site, NoDirectAcceptance)
	}

	if f := n.Callee; f != nil {
		if p, ok := f.ParamAt(i); ok && p.ForwardingReference() && r.isFormatFunction(f) {
			site.Kind = FormatArgument

			return accept(site)
		}

		return r.declaredParam(a, site, f, i)
	}

	ft, ok := sema.FuncOf(sema.TypeOf(n.Fun))
	if !ok || i >= len(ft.Params) {
		return reject(site, NoDirectAcceptance)
	}

	return r.param(a, site, ft.Params[i])
}

func (r *Resolver) isFormatFunction(f *sema.FuncDecl) bool {
	if f.Record() != nil {
		return false
	}

	if _, ok := r.formats[sema.QualifiedName(f)]; ok {
		return true
	}

	_, ok := r.formats[sema.FullName(f)]

	return ok
}

// operatorCall handles operands of overloaded operators.
func (r *Resolver) operatorCall(a match.AccessorCall, n *sema.OperatorCall, i int) Outcome {
	site := UseSite{Kind: Unclassified, Node: n, Arg: i}
	if i < 0 || n.Callee == nil {
		return reject(site, NoDirectAcceptance)
	}

	binary := len(n.Args) == 2

	switch n.Op {
	case "=", "+=":
		site.Kind = Assignment
		if binary && i == 1 && r.sameString(a, n.Args[0]) {
			return accept(site)
		}

	case "==", "!=":
		site.Kind = Comparison
		if binary && r.sameString(a, n.Args[1-i]) {
			return accept(site)
		}

	case "<", ">", "<=", ">=":
		site.Kind = Comparison
		if r.relational && binary && r.sameString(a, n.Args[1-i]) {
			return accept(site)
		}

	case "+":
		site.Kind = Concatenation
		if binary && r.sameString(a, n.Args[1-i]) {
			return accept(site)
		}

	case "()":
		return r.invocation(a, n, i)
	}

	return reject(site, NoDirectAcceptance)
}

// invocation handles arguments of an overloaded call operator, the object being the first operand.
func (r *Resolver) invocation(a match.AccessorCall, n *sema.OperatorCall, i int) Outcome {
	site := UseSite{Kind: CallArgument, Node: n, Arg: i - 1}
	if i < 1 {
		return reject(site, NoDirectAcceptance)
	}

	if p, ok := n.Callee.ParamAt(i - 1); ok && p.ForwardingReference() {
		if rec, ok := sema.RecordOf(sema.TypeOf(n.Args[0])); ok && r.sinks.allows(rec, "operator()") {
			site.Kind = SinkArgument

			return accept(site)
		}
	}

	return r.declaredParam(a, site, n.Callee, i-1)
}

func (r *Resolver) sameString(a match.AccessorCall, e sema.Expr) bool {
	return classify.Classify(sema.TypeOf(e)).Same(a.String)
}

// construct handles explicit constructions "T(s.c_str())".
func (r *Resolver) construct(a match.AccessorCall, n *sema.Construct, i int) Outcome {
	site := UseSite{Kind: Construction, Node: n, Arg: i}
	if i != 0 || len(n.Args) != 1 || !r.holds(a, sema.TypeOf(n)) {
		return reject(site, NoDirectAcceptance)
	}

	return accept(site)
}

// declStmt handles initializers "T v = s.c_str()" and "T v(s.c_str())" of non-reference variables.
func (r *Resolver) declStmt(a match.AccessorCall, n *sema.DeclStmt, child sema.Node) Outcome {
	site := UseSite{Kind: Construction, Node: n, Arg: -1}
	if n.Var == nil || n.Init == nil || sema.Node(n.Init) != child {
		return reject(site, NoDirectAcceptance)
	}

	if _, ref := sema.Unalias(n.Var.Type).(*sema.Reference); ref || !r.holds(a, n.Var.Type) {
		return reject(site, NoDirectAcceptance)
	}

	return accept(site)
}

// returnStmt handles "return s.c_str();" in functions returning a string or string view by value.
func (r *Resolver) returnStmt(a match.AccessorCall, n *sema.Return, f *sema.FuncDecl) Outcome {
	site := UseSite{Kind: Return, Node: n, Arg: -1}
	if f == nil || f.Ctor {
		return reject(site, NoDirectAcceptance)
	}

	if _, ref := sema.Unalias(f.Result).(*sema.Reference); ref || !r.holds(a, f.Result) {
		return reject(site, NoDirectAcceptance)
	}

	return accept(site)
}

// holds reports whether a value of type t can be initialized from the string of a with the same result.
func (r *Resolver) holds(a match.AccessorCall, t sema.Type) bool {
	c := classify.Classify(t)

	return c.Same(a.String) || c.Family == classify.StringView && c.SameChar(a.String)
}

// declaredParam applies the parameter rule to the parameter of f binding argument i.
// Arguments beyond the declared parameters, matched by C varargs, are rejected.
func (r *Resolver) declaredParam(a match.AccessorCall, site UseSite, f *sema.FuncDecl, i int) Outcome {
	p, ok := f.ParamAt(i)
	if !ok || p == nil || p.ForwardingReference() {
		return reject(site, NoDirectAcceptance)
	}

	return r.param(a, site, p.Type)
}

// param accepts parameters of the same string type, a string view over the same characters or
// an allow-listed string parameter type, taken by value or const lvalue reference.
func (r *Resolver) param(a match.AccessorCall, site UseSite, t sema.Type) Outcome {
	ref, isRef := sema.Unalias(t).(*sema.Reference)
	if isRef {
		t = ref.Elem
	}

	if _, ok := t.(*sema.TypeParam); ok {
		return reject(site, NoDirectAcceptance)
	}

	if !r.holds(a, t) && !r.stringParameter(a, t) {
		return reject(site, NoDirectAcceptance)
	}

	switch {
	case !isRef:
		return accept(site)

	case ref.RValue:
		return reject(site, RvalueOnlyParameter)

	case !sema.IsConst(t):
		return reject(site, NoDirectAcceptance)

	default:
		return accept(site)
	}
}

// stringParameter reports whether t is an allow-listed class with a non-explicit
// constructor taking the string of a by value or const lvalue reference.
func (r *Resolver) stringParameter(a match.AccessorCall, t sema.Type) bool {
	rec, ok := sema.RecordOf(t)
	if !ok {
		return false
	}

	if _, ok := r.params[rec]; !ok {
		return false
	}

	for _, m := range rec.Methods {
		if !m.Ctor || m.Explicit || len(m.Params) == 0 || !convertsFrom(a, m.Params) {
			continue
		}

		return true
	}

	return false
}

func convertsFrom(a match.AccessorCall, params []*sema.ParamDecl) bool {
	for _, p := range params[1:] {
		if !p.Default {
			return false
		}
	}

	t := params[0].Type
	if ref, ok := sema.Unalias(t).(*sema.Reference); ok {
		if ref.RValue || !sema.IsConst(ref.Elem) {
			return false
		}

		t = ref.Elem
	}

	return classify.Classify(t).Same(a.String)
}
