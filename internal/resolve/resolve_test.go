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

package resolve_test

import (
	"slices"
	"testing"

	"fillmore-labs.com/redundantcstr/internal/config"
	"fillmore-labs.com/redundantcstr/internal/match"
	. "fillmore-labs.com/redundantcstr/internal/resolve"
	"fillmore-labs.com/redundantcstr/internal/sema"
	tu "fillmore-labs.com/redundantcstr/internal/testunit"
)

// fixture declares the prelude, parameters and callees shared by the test cases.
type fixture struct {
	b   *tu.Builder
	std *tu.Std
	tr  *tu.Traces

	s, t, ws, u16, u32, ptr, it, nas *sema.ParamDecl
	params                           []*sema.ParamDecl

	nasCStr *sema.FuncDecl

	f1, f2, f3, fPtr, fNonConst, fView, fWide, f16, f32 *sema.FuncDecl
	m1, printf, fExplicit                               *sema.FuncDecl

	foo     *sema.RecordDecl
	fooFunc *sema.FuncDecl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	b := tu.New(t)
	std := b.Std(tu.InlineNamespace("__1"))
	x := &fixture{b: b, std: std, tr: std.Traces(b)}

	notAString := b.Record(nil, "NotAString")
	x.nasCStr = b.Method(notAString, "c_str", std.CharPtr())

	x.s = tu.Param("s", std.String)
	x.t = tu.Param("t", tu.ConstRef(std.String))
	x.ws = tu.Param("ws", tu.ConstRef(std.WString))
	x.u16 = tu.Param("u16", tu.ConstRef(std.U16String))
	x.u32 = tu.Param("u32", tu.ConstRef(std.U32String))
	x.ptr = tu.Param("ptr", tu.PtrTo(std.String))
	x.it = tu.Param("it", std.Iter(std.String))
	x.nas = tu.Param("nas", tu.Rec(notAString))
	x.params = []*sema.ParamDecl{x.s, x.t, x.ws, x.u16, x.u32, x.ptr, x.it, x.nas}

	unary := func(name string, t sema.Type) *sema.FuncDecl {
		return b.Func(nil, name, std.Void, tu.Param("p", t))
	}

	x.f1 = unary("f1", tu.ConstRef(std.String))
	x.f2 = unary("f2", std.StringRef)
	x.f3 = unary("f3", tu.ConstRef(std.StringRef))
	x.fPtr = unary("fptr", std.CharPtr())
	x.fNonConst = unary("fnonconst", tu.LRef(std.String))
	x.fView = unary("fview", std.StringView)
	x.fWide = unary("fwide", tu.ConstRef(std.WString))
	x.f16 = unary("f16", tu.ConstRef(std.U16String))
	x.f32 = unary("f32", tu.ConstRef(std.U32String))
	x.m1 = unary("m1", tu.RRef(std.String))

	x.printf = b.Func(nil, "printf", std.Int, tu.Param("fmt", std.CharPtr()))
	x.printf.Variadic = true

	explicitRef := b.Record(nil, "ExplicitRef")
	b.Ctor(explicitRef, true, tu.Param("str", tu.ConstRef(std.String)))
	x.fExplicit = unary("fexplicit", tu.Rec(explicitRef))

	x.foo = b.Record(nil, "Foo")
	x.fooFunc = b.Method(x.foo, "func", std.Void, tu.Param("s", tu.ConstRef(std.String)))

	return x
}

func (x *fixture) body(stmts ...sema.Stmt) {
	x.b.Define(x.b.Func(nil, "test", x.std.Void, x.params...), stmts...)
}

func (x *fixture) returning(result sema.Type, stmts ...sema.Stmt) {
	x.b.Define(x.b.Func(nil, "test", result, x.params...), stmts...)
}

func (x *fixture) cstr(p *sema.ParamDecl) *sema.MemberCall { return x.std.CStrOf(tu.Use(p)) }

func (x *fixture) lit(text string) *sema.Literal { return tu.Lit(text, x.std.CharPtr()) }

func (x *fixture) call(f *sema.FuncDecl, args ...sema.Expr) *sema.ExprStmt {
	return tu.Expr(tu.Call(f, args...))
}

func describe(o Outcome) string {
	if o.Accepted {
		return o.Site.Kind.String()
	}

	return "!" + o.Site.Kind.String() + ":" + o.Reason.String()
}

func resolveAll(u *sema.Unit, allow config.AllowLists, behavior config.Behavior) []string {
	r := New(u, allow, behavior)

	var got []string

	u.Walk(func(c sema.Cursor) bool {
		if a, ok := match.Find(c); ok {
			got = append(got, describe(r.Resolve(a, c)))
		}

		return true
	})

	return got
}

const (
	noDirect = ":no-direct-acceptance"
	rvalue   = ":rvalue-only-parameter"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sinks  []string
		params []string
		rel    bool
		build  func(x *fixture)
		want   []string
	}{
		{
			name: "parameters",
			build: func(x *fixture) {
				x.body(
					x.call(x.f1, x.cstr(x.s)),
					x.call(x.f1, x.std.DataOf(tu.Use(x.t))),
					x.call(x.f2, x.cstr(x.s)),
					x.call(x.f3, x.cstr(x.t)),
					x.call(x.f1, x.cstr(x.ptr)),
					x.call(x.fView, x.cstr(x.s)),
					x.call(x.fWide, x.cstr(x.ws)),
					x.call(x.f16, x.cstr(x.u16)),
					x.call(x.f32, x.std.DataOf(tu.Use(x.u32))),
				)
			},
			want: []string{"arg", "arg", "arg", "arg", "arg", "arg", "arg", "arg", "arg"},
		},
		{
			name:   "parameter_rejects",
			params: []string{"::llvm::StringRef", "::ExplicitRef"},
			build: func(x *fixture) {
				x.body(
					x.call(x.fPtr, x.cstr(x.s)),
					x.call(x.fNonConst, x.cstr(x.s)),
					x.call(x.m1, x.cstr(x.s)),
					x.call(x.printf, x.lit(`"%s"`), x.cstr(x.s)),
					x.call(x.fExplicit, x.cstr(x.s)),
				)
			},
			want: []string{"!arg" + noDirect, "!arg" + noDirect, "!arg" + rvalue, "!arg" + noDirect, "!arg" + noDirect},
		},
		{
			name: "function_pointers",
			build: func(x *fixture) {
				pm1 := x.b.Var("pm1", tu.PtrTo(x.m1.Type()))
				printFn := x.b.Typedef(nil, "PrintFn", tu.PtrTo(x.m1.Type()))
				pf := x.b.Var("pf", printFn)
				pf1 := x.b.Var("pf1", tu.PtrTo(x.f1.Type()))

				x.body(
					tu.Expr(tu.CallPtr(tu.Use(pm1), x.cstr(x.s))),
					tu.Expr(tu.CallPtr(tu.Use(pf), x.cstr(x.s))),
					tu.Expr(tu.CallPtr(tu.Use(pf1), x.cstr(x.s))),
				)
			},
			want: []string{"!arg" + rvalue, "!arg" + rvalue, "arg"},
		},
		{
			name: "string_members",
			build: func(x *fixture) {
				std, s := x.std, func() sema.Expr { return tu.Use(x.s) }
				size := func(n string) sema.Expr { return tu.Lit(n, std.Size) }

				x.body(
					tu.Expr(std.Str(s(), std.AppendP, x.cstr(x.t))),
					tu.Expr(std.Str(s(), std.AssignP, x.cstr(x.t))),
					tu.Expr(std.Str(s(), std.CompareP, x.cstr(x.t))),
					tu.Expr(std.Str(s(), std.ComparePosP, size("0"), size("1"), x.cstr(x.t))),
					tu.Expr(std.Str(s(), std.FindP, x.cstr(x.t))),
					tu.Expr(std.Str(s(), std.FindP, x.cstr(x.t), size("2"))),
					tu.Expr(std.Str(s(), std.InsertP, size("0"), x.cstr(x.t))),
					tu.Expr(std.Str(s(), std.AppendPN, x.cstr(x.t), size("3"))),
					tu.Expr(std.Str(s(), std.AssignPN, x.cstr(x.t), size("3"))),
					tu.Expr(std.Str(s(), std.FindPN, x.cstr(x.t), size("2"), size("4"))),
					tu.Expr(std.Str(s(), std.InsertPN, size("1"), x.cstr(x.t), size("2"))),
				)
			},
			want: []string{
				"mem", "mem", "mem", "mem", "mem", "mem", "mem",
				"!mem" + noDirect, "!mem" + noDirect, "!mem" + noDirect, "!mem" + noDirect,
			},
		},
		{
			name: "operators",
			build: func(x *fixture) {
				std, s := x.std, func() sema.Expr { return tu.Use(x.s) }

				x.body(
					tu.Expr(std.Assign("=", std.AssignOpP, s(), x.cstr(x.t))),
					tu.Expr(std.Assign("+=", std.AddAssignOpP, s(), x.cstr(x.t))),
					tu.Expr(std.Binary("==", std.EqSP, s(), x.cstr(x.t))),
					tu.Expr(std.Binary("==", std.EqPS, x.cstr(x.t), s())),
					tu.Expr(std.Binary("!=", std.NeSP, s(), x.cstr(x.t))),
					tu.Expr(std.Binary("+", std.PlusSP, s(), x.cstr(x.t))),
					tu.Expr(std.Binary("+", std.PlusPS, x.cstr(x.t), s())),
					tu.Expr(std.Binary("<", std.LessSP, s(), x.cstr(x.t))),
					tu.Expr(tu.Bin("==", x.lit(`"x"`), x.cstr(x.t), std.Bool)),
				)
			},
			want: []string{"asg", "asg", "cmp", "cmp", "cmp", "cat", "cat", "!cmp" + noDirect, "!unk" + noDirect},
		},
		{
			name: "relational",
			rel:  true,
			build: func(x *fixture) {
				x.body(tu.Expr(x.std.Binary("<", x.std.LessSP, tu.Use(x.s), x.cstr(x.t))))
			},
			want: []string{"cmp"},
		},
		{
			name: "iterator",
			build: func(x *fixture) {
				std := x.std
				elem := std.CStrOf(tu.Arrow(tu.Use(x.it), std.IterOp, std.String))

				x.body(tu.Expr(std.Assign("=", std.AssignOpP, tu.Use(x.s), elem)))
			},
			want: []string{"asg"},
		},
		{
			name: "lookalike",
			build: func(x *fixture) {
				x.body(x.call(x.fPtr, tu.MCall(tu.Use(x.nas), x.nasCStr)))
			},
			want: []string{"!unk:not-string-family"},
		},
		{
			name: "member_call_parens",
			build: func(x *fixture) {
				foo := x.b.Var("Foo", tu.Rec(x.foo))

				x.body(
					tu.Expr(tu.MCall(tu.Use(foo), x.fooFunc, x.cstr(x.s))),
					tu.Expr(tu.MCall(tu.Use(foo), x.fooFunc, tu.Par(x.cstr(x.s)))),
					x.call(x.f1, tu.Par(tu.Par(x.cstr(x.s)))),
				)
			},
			want: []string{"arg", "arg", "arg"},
		},
		{
			name: "format_functions",
			build: func(x *fixture) {
				std := x.std
				format := func(prefix string, f *sema.FuncDecl, args ...sema.Expr) *sema.ExprStmt {
					return tu.Expr(tu.CallVia(tu.Qualified(prefix, f), f, args...))
				}

				x.body(
					format("fmt::", std.FmtPrint, x.lit(`"One:{}\n"`), x.cstr(x.s)),
					format("fmt::v8::", std.FmtFormat, x.lit(`"{} {}"`), x.cstr(x.s), x.cstr(x.t)),
					format("notfmt::", std.NotFmtPrint, x.lit(`"One:{}\n"`), x.cstr(x.s)),
					format("notfmt::", std.NotFmtFormat, x.lit(`"One:{}\n"`), x.cstr(x.s)),
					format("fmt::", std.FmtPrint, x.cstr(x.s)),
				)
			},
			want: []string{"fmt", "fmt", "fmt", "!arg" + noDirect, "!arg" + noDirect, "!arg" + noDirect},
		},
		{
			name:  "sinks",
			sinks: []string{"::BaseTrace"},
			build: func(x *fixture) { x.traces() },
			want: []string{
				"snk", "snk", "snk", "snk", "snk", "snk",
				"!arg" + noDirect, "!arg" + noDirect,
			},
		},
		{
			name:  "sink_member",
			sinks: []string{"::BaseTrace::Trace"},
			build: func(x *fixture) { x.traces() },
			want: []string{
				"!arg" + noDirect, "snk", "!arg" + noDirect, "!arg" + noDirect, "!arg" + noDirect, "!arg" + noDirect,
				"!arg" + noDirect, "!arg" + noDirect,
			},
		},
		{
			name:  "sink_alias",
			sinks: []string{"TypedefDerivedTrace", "::NullTrace::operator()"},
			build: func(x *fixture) { x.traces() },
			want: []string{
				"!arg" + noDirect, "!arg" + noDirect, "!arg" + noDirect, "snk", "snk", "snk",
				"snk", "snk",
			},
		},
		{
			name: "initialization",
			build: func(x *fixture) {
				std := x.std

				x.body(
					tu.Decl(x.b.Var("a", std.String), tu.Convert(x.cstr(x.s), std.String)),
					tu.DirectDecl(x.b.Var("b", std.String), x.cstr(x.s)),
					tu.Decl(x.b.Var("v", std.StringView), tu.Convert(x.cstr(x.s), std.StringView)),
					tu.Expr(tu.Construct("std::string", std.String, std.StringCtor, x.cstr(x.t))),
					tu.Decl(x.b.Var("r", tu.ConstRef(std.String)), tu.Convert(x.cstr(x.s), std.String)),
					tu.Decl(x.b.Var("p", std.CharPtr()), x.cstr(x.s)),
					tu.Decl(x.b.Var("w", std.WStringView), tu.Convert(x.cstr(x.s), std.WStringView)),
					tu.Expr(x.cstr(x.s)),
				)
			},
			want: []string{"ctr", "ctr", "ctr", "ctr", "!ctr" + noDirect, "!ctr" + noDirect, "!ctr" + noDirect, "!unk" + noDirect},
		},
		{
			name: "return_string",
			build: func(x *fixture) {
				x.returning(x.std.String, tu.Ret(tu.Convert(x.cstr(x.t), x.std.String)))
			},
			want: []string{"ret"},
		},
		{
			name: "return_pointer",
			build: func(x *fixture) {
				x.returning(x.std.CharPtr(), tu.Ret(x.cstr(x.t)))
			},
			want: []string{"!ret" + noDirect},
		},
		{
			name: "return_reference",
			build: func(x *fixture) {
				x.returning(tu.ConstRef(x.std.String), tu.Ret(tu.Convert(x.cstr(x.t), x.std.String)))
			},
			want: []string{"!ret" + noDirect},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			x := newFixture(t)
			tt.build(x)
			u := x.b.Build()

			allow := config.DefaultAllowLists()
			allow.SinkTypes = tt.sinks

			if tt.params != nil {
				allow.StringParameterTypes = tt.params
			}

			behavior := config.DefaultBehavior()
			behavior.Set(config.RelationalComparisons, tt.rel)

			// when
			got := resolveAll(u, allow, behavior)

			// then
			if !slices.Equal(got, tt.want) {
				t.Errorf("Got outcomes %q, expected %q\n%s", got, tt.want, u.Source)
			}
		})
	}
}

// traces calls the trace classes, in order: BaseTrace operator(), Trace and F, DerivedTrace,
// DoubleDerivedTrace and TypedefDerivedTrace operator(), NullTrace and NullDerivedTrace operator().
func (x *fixture) traces() {
	b, tr := x.b, x.tr

	base := b.Var("TRACE", tu.Rec(tr.Base))
	derived := b.Var("TRACE2", tu.Rec(tr.Derived))
	double := b.Var("TRACED", tu.Rec(tr.DoubleDerived))
	typedef := b.Var("TRACET", tr.TypedefDerived)
	null := b.Var("TRACE3", tu.Rec(tr.Null))
	nullDerived := b.Var("TRACE4", tu.Rec(tr.NullDerived))

	invoke := func(v *sema.VarDecl, f *sema.FuncDecl) *sema.ExprStmt {
		return tu.Expr(tu.Invoke(tu.Use(v), f, x.lit(`"%s\n"`), x.cstr(x.s)))
	}

	method := func(v *sema.VarDecl, f *sema.FuncDecl) *sema.ExprStmt {
		return tu.Expr(tu.MCall(tu.Use(v), f, x.lit(`"%s\n"`), x.cstr(x.s)))
	}

	x.body(
		invoke(base, tr.BaseCall),
		method(base, tr.BaseTrace),
		method(base, tr.BaseF),
		invoke(derived, tr.BaseCall),
		invoke(double, tr.BaseCall),
		invoke(typedef, tr.BaseCall),
		invoke(null, tr.NullCall),
		invoke(nullDerived, tr.NullCall),
	)
}

func TestEnumStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		got, want string
	}{
		{CallArgument.String(), "arg"},
		{Return.String(), "ret"},
		{UseSiteKind(42).String(), "UseSiteKind(42)"},
		{RvalueOnlyParameter.String(), "rvalue-only-parameter"},
		{RejectReason(9).String(), "RejectReason(9)"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("Got %q, expected %q", tt.got, tt.want)
		}
	}
}
