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

// Std is a minimal standard library prelude: the string and string view templates with
// their usual typedefs, free string operators, an iterator template, llvm::StringRef and
// the fmt formatting functions.
type Std struct {
	NS *sema.Namespace

	Char, WChar, Char16, Char32 sema.Type
	Int, Size, Bool, Void       sema.Type

	CharTraits, Allocator        *sema.RecordDecl
	BasicString, BasicStringView *sema.RecordDecl

	String, WString, U16String, U32String                 sema.Type
	StringView, WStringView, U16StringView, U32StringView sema.Type

	// Members of basic_string, shared by all specializations.
	CStr, Data                      *sema.FuncDecl
	StringCtor                      *sema.FuncDecl
	AppendP, AppendPN               *sema.FuncDecl
	AssignP, AssignPN               *sema.FuncDecl
	CompareS, CompareP, ComparePosP *sema.FuncDecl
	FindS, FindP, FindPN            *sema.FuncDecl
	InsertS, InsertP, InsertPN      *sema.FuncDecl
	AssignOpS, AssignOpP            *sema.FuncDecl
	AddAssignOpS, AddAssignOpP      *sema.FuncDecl
	ViewCtor                        *sema.FuncDecl

	// Free operators on std::string.
	PlusSS, PlusSP, PlusPS *sema.FuncDecl
	EqSS, EqSP, EqPS       *sema.FuncDecl
	NeSP, LessSP           *sema.FuncDecl

	Iterator *sema.RecordDecl
	IterOp   *sema.FuncDecl

	StringRef     sema.Type
	StringRefCtor *sema.FuncDecl

	FmtPrint, FmtFormat       *sema.FuncDecl
	NotFmtPrint, NotFmtFormat *sema.FuncDecl
}

// StdOption configures the prelude.
type StdOption func(*stdConfig)

type stdConfig struct {
	inline string
}

// InlineNamespace declares the string templates in an inline namespace of std, like libc++'s "__1".
func InlineNamespace(name string) StdOption {
	return func(c *stdConfig) { c.inline = name }
}

// Std declares the prelude.
func (b *Builder) Std(opts ...StdOption) *Std {
	var cfg stdConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Std{}

	s.NS = b.Namespace(nil, "std", false)

	var scope sema.Decl = s.NS
	if cfg.inline != "" {
		scope = b.Namespace(s.NS, cfg.inline, true)
	}

	s.Char, s.WChar = Builtin("char"), Builtin("wchar_t")
	s.Char16 = b.Typedef(nil, "char16", Builtin("unsigned short"))
	s.Char32 = b.Typedef(nil, "char32", Builtin("unsigned int"))
	s.Int, s.Bool, s.Void = Builtin("int"), Builtin("bool"), Builtin("void")
	s.Size = b.Typedef(nil, "size", Builtin("unsigned long"))

	s.Allocator = b.Record(scope, "allocator", "T")
	s.CharTraits = b.Record(scope, "char_traits", "T")

	s.declareString(b, scope)
	s.declareStringView(b, scope)
	s.declareOperators(b)
	s.declareExtras(b)

	return s
}

func (s *Std) declareString(b *Builder, scope sema.Decl) {
	bs := b.Record(scope, "basic_string", "C", "T", "A")
	s.BasicString = bs

	c := &sema.TypeParam{Name: "C"}
	self := Rec(bs, c, &sema.TypeParam{Name: "T"}, &sema.TypeParam{Name: "A"})
	selfRef := LRef(self)
	cp := PtrTo(ConstOf(c))

	s.StringCtor = b.Ctor(bs, false, Param("p", cp), Default("a", ConstRef(&sema.TypeParam{Name: "A"})))
	s.CStr = b.Method(bs, "c_str", cp)
	s.Data = b.Method(bs, "data", cp)

	s.AppendP = b.Method(bs, "append", selfRef, Param("s", cp))
	s.AppendPN = b.Method(bs, "append", selfRef, Param("s", cp), Param("n", s.Size))
	s.AssignP = b.Method(bs, "assign", selfRef, Param("s", cp))
	s.AssignPN = b.Method(bs, "assign", selfRef, Param("s", cp), Param("n", s.Size))

	s.CompareS = b.Method(bs, "compare", s.Int, Param("str", ConstRef(self)))
	s.CompareP = b.Method(bs, "compare", s.Int, Param("s", cp))
	s.ComparePosP = b.Method(bs, "compare", s.Int, Param("pos", s.Size), Param("len", s.Size), Param("s", cp))

	s.FindS = b.Method(bs, "find", s.Size, Param("str", ConstRef(self)), Default("pos", s.Size))
	s.FindP = b.Method(bs, "find", s.Size, Param("s", cp), Default("pos", s.Size))
	s.FindPN = b.Method(bs, "find", s.Size, Param("s", cp), Param("pos", s.Size), Param("n", s.Size))

	s.InsertS = b.Method(bs, "insert", selfRef, Param("pos", s.Size), Param("str", ConstRef(self)))
	s.InsertP = b.Method(bs, "insert", selfRef, Param("pos", s.Size), Param("s", cp))
	s.InsertPN = b.Method(bs, "insert", selfRef, Param("pos", s.Size), Param("s", cp), Param("n", s.Size))

	s.AddAssignOpS = b.Method(bs, "operator+=", selfRef, Param("str", ConstRef(self)))
	s.AddAssignOpP = b.Method(bs, "operator+=", selfRef, Param("s", cp))
	s.AssignOpS = b.Method(bs, "operator=", selfRef, Param("str", ConstRef(self)))
	s.AssignOpP = b.Method(bs, "operator=", selfRef, Param("s", cp))

	spec := func(name string, char sema.Type) sema.Type {
		return b.Typedef(scope, name, Rec(bs, char, Rec(s.CharTraits, char), Rec(s.Allocator, char)))
	}

	s.String = spec("string", s.Char)
	s.WString = spec("wstring", s.WChar)
	s.U16String = spec("u16string", s.Char16)
	s.U32String = spec("u32string", s.Char32)
}

func (s *Std) declareStringView(b *Builder, scope sema.Decl) {
	bsv := b.Record(scope, "basic_string_view", "C", "T")
	s.BasicStringView = bsv

	s.ViewCtor = b.Ctor(bsv, false, Param("s", PtrTo(ConstOf(&sema.TypeParam{Name: "C"}))))

	spec := func(name string, char sema.Type) sema.Type {
		return b.Typedef(scope, name, Rec(bsv, char, Rec(s.CharTraits, char)))
	}

	s.StringView = spec("string_view", s.Char)
	s.WStringView = spec("wstring_view", s.WChar)
	s.U16StringView = spec("u16string_view", s.Char16)
	s.U32StringView = spec("u32string_view", s.Char32)
}

func (s *Std) declareOperators(b *Builder) {
	str, cp := ConstRef(s.String), PtrTo(ConstOf(s.Char))

	binary := func(op string, result, x, y sema.Type) *sema.FuncDecl {
		return b.Func(nil, "operator"+op, result, Param("x", x), Param("y", y))
	}

	s.PlusSS = binary("+", s.String, str, str)
	s.PlusSP = binary("+", s.String, str, cp)
	s.PlusPS = binary("+", s.String, cp, str)
	s.EqSS = binary("==", s.Bool, str, str)
	s.EqSP = binary("==", s.Bool, str, cp)
	s.EqPS = binary("==", s.Bool, cp, str)
	s.NeSP = binary("!=", s.Bool, str, cp)
	s.LessSP = binary("<", s.Bool, str, cp)
}

func (s *Std) declareExtras(b *Builder) {
	s.Iterator = b.Record(nil, "iterator", "T")
	s.IterOp = b.Method(s.Iterator, "operator->", PtrTo(&sema.TypeParam{Name: "T"}))

	llvm := b.Namespace(nil, "llvm", false)
	ref := b.Record(llvm, "StringRef")
	b.Ctor(ref, false, Param("p", PtrTo(ConstOf(s.Char))))
	s.StringRefCtor = b.Ctor(ref, false, Param("str", ConstRef(s.String)))
	s.StringRef = Rec(ref)

	formatters := func(ns string) (print, format *sema.FuncDecl) {
		outer := b.Namespace(nil, ns, false)
		v8 := b.Namespace(outer, "v8", true)

		print = b.Func(v8, "print", s.Void, Param("fmt", PtrTo(ConstOf(s.Char))), Pack("args"))
		format = b.Func(v8, "format", s.String, Param("fmt", PtrTo(ConstOf(s.Char))), Pack("args"))

		return print, format
	}

	s.FmtPrint, s.FmtFormat = formatters("fmt")
	s.NotFmtPrint, s.NotFmtFormat = formatters("notfmt")
}

// CharPtr is "const char*".
func (s *Std) CharPtr() sema.Type { return PtrTo(ConstOf(s.Char)) }

// CStrOf calls c_str() on recv, through "->" when recv is a pointer or an operator-> application.
func (s *Std) CStrOf(recv sema.Expr) *sema.MemberCall { return s.accessor(recv, s.CStr) }

// DataOf calls data() on recv.
func (s *Std) DataOf(recv sema.Expr) *sema.MemberCall { return s.accessor(recv, s.Data) }

func (s *Std) accessor(recv sema.Expr, m *sema.FuncDecl) *sema.MemberCall {
	t := sema.TypeOf(recv)
	if elem, ok := sema.Pointee(t); ok {
		t = elem
	}

	char := s.Char
	if r, ok := sema.Unalias(sema.NonReference(t)).(*sema.Record); ok && len(r.Args) > 0 {
		char = r.Args[0]
	}

	return MCallTyped(recv, m, PtrTo(ConstOf(char)))
}

// Str calls a member function on the string recv, with the std::string result type for
// members returning a reference to the string.
func (s *Std) Str(recv sema.Expr, m *sema.FuncDecl, args ...sema.Expr) *sema.MemberCall {
	result := m.Result
	if _, ok := result.(*sema.Reference); ok {
		result = LRef(sema.NonReference(sema.TypeOf(recv)))
	}

	call := MCallTyped(recv, m, result)
	call.Args = args

	return call
}

// Assign applies a string assignment operator "x op y".
func (s *Std) Assign(op string, m *sema.FuncDecl, x, y sema.Expr) *sema.OperatorCall {
	return Op(op, m, LRef(sema.TypeOf(x)), x, y)
}

// Binary applies a free string operator "x op y".
func (s *Std) Binary(op string, f *sema.FuncDecl, x, y sema.Expr) *sema.OperatorCall {
	return Op(op, f, f.Result, x, y)
}

// Iter is the type iterator<elem>.
func (s *Std) Iter(elem sema.Type) sema.Type { return Rec(s.Iterator, elem) }

// Traces declares logging classes with variadic forwarding members: BaseTrace,
// DerivedTrace, DoubleDerivedTrace, the alias TypedefDerivedTrace, and the unrelated
// NullTrace and NullDerivedTrace.
type Traces struct {
	Base, Derived, DoubleDerived, Null, NullDerived *sema.RecordDecl
	TypedefDerived                                  sema.Type

	BaseCall, BaseTrace, BaseF *sema.FuncDecl
	NullCall, NullTrace, NullF *sema.FuncDecl
}

// Traces declares the trace classes.
func (s *Std) Traces(b *Builder) *Traces {
	t := &Traces{}

	members := func(r *sema.RecordDecl) (call, trace, f *sema.FuncDecl) {
		format := func() *sema.ParamDecl { return Param("fmt", s.CharPtr()) }

		call = b.Method(r, "operator()", s.Void, format(), Pack("args"))
		trace = b.Method(r, "Trace", s.Void, format(), Pack("args"))
		f = b.Method(r, "F", s.Void, format(), Pack("args"))

		return call, trace, f
	}

	t.Base = b.Record(nil, "BaseTrace")
	t.BaseCall, t.BaseTrace, t.BaseF = members(t.Base)
	t.Derived = b.Derived(nil, "DerivedTrace", Rec(t.Base))
	t.DoubleDerived = b.Derived(nil, "DoubleDerivedTrace", Rec(t.Derived))
	t.TypedefDerived = b.Typedef(nil, "TypedefDerivedTrace", Rec(t.Derived))

	t.Null = b.Record(nil, "NullTrace")
	t.NullCall, t.NullTrace, t.NullF = members(t.Null)
	t.NullDerived = b.Derived(nil, "NullDerivedTrace", Rec(t.Null))

	return t
}
