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

// Package testunit provides boilerplate code for building resolved translation units in tests.
//
// A [Builder] collects declarations and function definitions, [Builder.Build] renders the
// definitions as C++ source text and assigns every node its exact byte range, so tests can
// check replacements against the rendered text.
package testunit

import (
	"testing"

	"fillmore-labs.com/redundantcstr/internal/sema"
)

// Builder assembles a [sema.Unit].
type Builder struct {
	tb       testing.TB
	path     string
	header   []string
	decls    []sema.Decl
	defined  []*sema.FuncDecl
	leading  map[sema.Stmt]string
	trailing map[sema.Stmt]string
}

// New creates an empty builder for a unit named "test.cc".
func New(tb testing.TB) *Builder {
	tb.Helper()

	return &Builder{
		tb:       tb,
		path:     "test.cc",
		leading:  make(map[sema.Stmt]string),
		trailing: make(map[sema.Stmt]string),
	}
}

// Path sets the unit file name.
func (b *Builder) Path(path string) *Builder {
	b.path = path

	return b
}

// Header adds a line to the top of the rendered source.
func (b *Builder) Header(line string) *Builder {
	b.header = append(b.header, line)

	return b
}

// Leading renders a comment on the line before s.
func (b *Builder) Leading(s sema.Stmt, comment string) sema.Stmt {
	b.leading[s] = comment

	return s
}

// Trailing renders a comment after s on the same line.
func (b *Builder) Trailing(s sema.Stmt, comment string) sema.Stmt {
	b.trailing[s] = comment

	return s
}

func (b *Builder) add(d sema.Decl) {
	b.decls = append(b.decls, d)
}

// Namespace declares a namespace.
func (b *Builder) Namespace(parent sema.Decl, name string, inline bool) *sema.Namespace {
	ns := &sema.Namespace{DeclInfo: sema.DeclInfo{Name: name, Parent: parent}, Inline: inline}
	b.add(ns)

	return ns
}

// Record declares a class or class template.
func (b *Builder) Record(parent sema.Decl, name string, tparams ...string) *sema.RecordDecl {
	r := &sema.RecordDecl{DeclInfo: sema.DeclInfo{Name: name, Parent: parent}, TemplateParams: tparams}
	b.add(r)

	return r
}

// Derived declares a class with base classes.
func (b *Builder) Derived(parent sema.Decl, name string, bases ...sema.Type) *sema.RecordDecl {
	r := b.Record(parent, name)
	r.Bases = bases

	return r
}

// Typedef declares a type alias and returns its type.
func (b *Builder) Typedef(parent sema.Decl, name string, t sema.Type) *sema.Alias {
	td := &sema.TypedefDecl{DeclInfo: sema.DeclInfo{Name: name, Parent: parent}, Type: t}
	b.add(td)

	return &sema.Alias{Decl: td}
}

// Func declares a free function.
func (b *Builder) Func(parent sema.Decl, name string, result sema.Type, params ...*sema.ParamDecl) *sema.FuncDecl {
	f := &sema.FuncDecl{DeclInfo: sema.DeclInfo{Name: name, Parent: parent}, Result: result, Params: params}
	for _, p := range params {
		p.Parent = f
	}

	b.add(f)

	return f
}

// Method declares a member function of r.
func (b *Builder) Method(r *sema.RecordDecl, name string, result sema.Type, params ...*sema.ParamDecl) *sema.FuncDecl {
	f := b.Func(r, name, result, params...)
	r.Methods = append(r.Methods, f)

	return f
}

// Ctor declares a constructor of r.
func (b *Builder) Ctor(r *sema.RecordDecl, explicit bool, params ...*sema.ParamDecl) *sema.FuncDecl {
	f := b.Method(r, sema.Name(r), nil, params...)
	f.Ctor, f.Explicit = true, explicit

	return f
}

// Var declares a local variable.
func (b *Builder) Var(name string, t sema.Type) *sema.VarDecl {
	v := &sema.VarDecl{DeclInfo: sema.DeclInfo{Name: name}, Type: t}
	b.add(v)

	return v
}

// Define sets the body of f. Definitions are rendered in the order they are defined.
func (b *Builder) Define(f *sema.FuncDecl, stmts ...sema.Stmt) *sema.FuncDecl {
	for _, p := range f.Params {
		p.Parent = f
	}

	f.Body = &sema.Block{List: stmts}
	b.defined = append(b.defined, f)

	return f
}

// Build renders the source and returns the unit.
func (b *Builder) Build() *sema.Unit {
	b.tb.Helper()

	p := printer{leading: b.leading, trailing: b.trailing}

	for _, h := range b.header {
		p.line(0, h)
	}

	if len(b.header) > 0 {
		p.newline()
	}

	for _, f := range b.defined {
		p.funcDecl(f)
	}

	return &sema.Unit{Path: b.path, Source: p.buf.Bytes(), Decls: b.decls}
}

// Param creates a parameter.
func Param(name string, t sema.Type) *sema.ParamDecl {
	return &sema.ParamDecl{DeclInfo: sema.DeclInfo{Name: name}, Type: t}
}

// Default creates a parameter with a default argument.
func Default(name string, t sema.Type) *sema.ParamDecl {
	p := Param(name, t)
	p.Default = true

	return p
}

// Pack creates a forwarding parameter pack "Args&&... name".
func Pack(name string) *sema.ParamDecl {
	p := Param(name, RRef(&sema.TypeParam{Name: "Args", Pack: true}))
	p.Pack = true

	return p
}

// Builtin creates a fundamental type.
func Builtin(name string) *sema.Builtin { return &sema.Builtin{Name: name} }

// Rec creates a record type.
func Rec(d *sema.RecordDecl, args ...sema.Type) *sema.Record {
	return &sema.Record{Decl: d, Args: args}
}

// PtrTo creates a pointer type.
func PtrTo(t sema.Type) *sema.Pointer { return &sema.Pointer{Elem: t} }

// LRef creates an lvalue reference type.
func LRef(t sema.Type) *sema.Reference { return &sema.Reference{Elem: t} }

// RRef creates an rvalue reference type.
func RRef(t sema.Type) *sema.Reference { return &sema.Reference{Elem: t, RValue: true} }

// ConstOf creates a const-qualified type.
func ConstOf(t sema.Type) *sema.Const { return &sema.Const{Elem: t} }

// ConstRef creates "const T&".
func ConstRef(t sema.Type) *sema.Reference { return LRef(ConstOf(t)) }
