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

package sema

import "strings"

// Type is a static C++ type.
//
// The set of implementations is closed: [Builtin], [Record], [Alias], [Pointer],
// [Reference], [Const], [Func] and [TypeParam].
type Type interface {
	String() string
	isType()
}

// Builtin is a fundamental type like char, wchar_t or int.
type Builtin struct {
	Name string
}

// Record is a class type or a class template specialization.
type Record struct {
	Decl *RecordDecl
	// Args are the template arguments, empty for non-template classes.
	Args []Type
}

// Alias is a type named through a typedef or alias declaration.
type Alias struct {
	Decl *TypedefDecl
}

// Pointer is a pointer to Elem.
type Pointer struct {
	Elem Type
}

// Reference is an lvalue (T&) or rvalue (T&&) reference to Elem.
type Reference struct {
	Elem   Type
	RValue bool
}

// Const is a const-qualified Elem.
type Const struct {
	Elem Type
}

// Func is a function type, as found behind function pointers.
type Func struct {
	Params   []Type
	Result   Type
	Variadic bool
}

// TypeParam is a template type parameter, possibly a parameter pack.
type TypeParam struct {
	Name string
	Pack bool
}

func (*Builtin) isType()   {}
func (*Record) isType()    {}
func (*Alias) isType()     {}
func (*Pointer) isType()   {}
func (*Reference) isType() {}
func (*Const) isType()     {}
func (*Func) isType()      {}
func (*TypeParam) isType() {}

func (t *Builtin) String() string { return t.Name }

func (t *Record) String() string {
	if t.Decl == nil {
		return "<record>"
	}

	name := QualifiedName(t.Decl)
	if len(t.Args) == 0 {
		return name
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('<')

	for i, arg := range t.Args {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(typeString(arg))
	}

	b.WriteByte('>')

	return b.String()
}

func (t *Alias) String() string {
	if t.Decl == nil {
		return "<alias>"
	}

	return QualifiedName(t.Decl)
}

func (t *Pointer) String() string { return typeString(t.Elem) + "*" }

func (t *Reference) String() string {
	if t.RValue {
		return typeString(t.Elem) + "&&"
	}

	return typeString(t.Elem) + "&"
}

func (t *Const) String() string { return "const " + typeString(t.Elem) }

func (t *Func) String() string {
	var b strings.Builder
	b.WriteString(typeString(t.Result))
	b.WriteByte('(')

	for i, p := range t.Params {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(typeString(p))
	}

	if t.Variadic {
		if len(t.Params) > 0 {
			b.WriteString(", ")
		}

		b.WriteString("...")
	}

	b.WriteByte(')')

	return b.String()
}

func (t *TypeParam) String() string {
	if t.Pack {
		return t.Name + "..."
	}

	return t.Name
}

func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}

// Unalias strips aliases and const qualifiers until a type of another kind is reached.
func Unalias(t Type) Type {
	for {
		switch u := t.(type) {
		case *Alias:
			if u.Decl == nil || u.Decl.Type == nil {
				return nil
			}

			t = u.Decl.Type

		case *Const:
			t = u.Elem

		default:
			return t
		}
	}
}

// NonReference returns the referenced type of a reference, looking through aliases, and t otherwise.
func NonReference(t Type) Type {
	if r, ok := Unalias(t).(*Reference); ok {
		return r.Elem
	}

	return t
}

// Pointee returns the element type of a pointer, looking through aliases and references.
func Pointee(t Type) (Type, bool) {
	p, ok := Unalias(NonReference(t)).(*Pointer)
	if !ok {
		return nil, false
	}

	return p.Elem, true
}

// FuncOf returns the function type of a function or a pointer to function,
// looking through aliases and references.
func FuncOf(t Type) (*Func, bool) {
	u := Unalias(NonReference(t))
	if p, ok := u.(*Pointer); ok {
		u = Unalias(p.Elem)
	}

	f, ok := u.(*Func)

	return f, ok
}

// IsConst reports whether t is const-qualified, looking through aliases.
func IsConst(t Type) bool {
	for {
		switch u := t.(type) {
		case *Const:
			return true

		case *Alias:
			if u.Decl == nil {
				return false
			}

			t = u.Decl.Type

		default:
			return false
		}
	}
}

// Identical reports whether a and b denote the same canonical type.
// Aliases are transparent, const qualifiers are significant.
func Identical(a, b Type) bool {
	a, b = canonical(a), canonical(b)
	if a == nil || b == nil {
		return false
	}

	if a == b {
		return true
	}

	switch x := a.(type) {
	case *Builtin:
		y, ok := b.(*Builtin)

		return ok && x.Name == y.Name

	case *Record:
		y, ok := b.(*Record)
		if !ok || x.Decl != y.Decl || len(x.Args) != len(y.Args) {
			return false
		}

		for i := range x.Args {
			if !Identical(x.Args[i], y.Args[i]) {
				return false
			}
		}

		return true

	case *Pointer:
		y, ok := b.(*Pointer)

		return ok && Identical(x.Elem, y.Elem)

	case *Reference:
		y, ok := b.(*Reference)

		return ok && x.RValue == y.RValue && Identical(x.Elem, y.Elem)

	case *Const:
		y, ok := b.(*Const)

		return ok && Identical(x.Elem, y.Elem)

	case *Func:
		y, ok := b.(*Func)
		if !ok || x.Variadic != y.Variadic || len(x.Params) != len(y.Params) || !Identical(x.Result, y.Result) {
			return false
		}

		for i := range x.Params {
			if !Identical(x.Params[i], y.Params[i]) {
				return false
			}
		}

		return true

	case *TypeParam:
		y, ok := b.(*TypeParam)

		return ok && x.Name == y.Name && x.Pack == y.Pack
	}

	return false
}

// canonical strips aliases, keeping const qualifiers.
func canonical(t Type) Type {
	for {
		switch u := t.(type) {
		case *Alias:
			if u.Decl == nil {
				return nil
			}

			t = u.Decl.Type

		case *Const:
			if c, ok := canonical(u.Elem).(*Const); ok {
				return c
			}

			return &Const{Elem: canonical(u.Elem)}

		default:
			return t
		}
	}
}
