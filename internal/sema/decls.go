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

// Decl is a named declaration.
//
// The set of implementations is closed: [Namespace], [RecordDecl], [TypedefDecl],
// [FuncDecl], [ParamDecl] and [VarDecl].
type Decl interface {
	declInfo() *DeclInfo
}

// DeclInfo holds the attributes common to all declarations.
type DeclInfo struct {
	// Name is the unqualified name, "operator()" for call operators.
	Name string
	// Parent is the enclosing declaration, nil at translation unit scope.
	Parent Decl
}

func (d *DeclInfo) declInfo() *DeclInfo { return d }

// Namespace is a namespace declaration.
type Namespace struct {
	DeclInfo
	// Inline marks inline namespaces like libc++'s std::__1 or fmt::v8.
	Inline bool
}

// RecordDecl declares a class, struct or class template.
type RecordDecl struct {
	DeclInfo
	// TemplateParams are the template parameter names, empty for non-templates.
	TemplateParams []string
	// Bases are the direct base classes, possibly written through aliases.
	Bases []Type
	// Methods are the member functions including constructors and operators.
	Methods []*FuncDecl
}

// TypedefDecl declares a type alias.
type TypedefDecl struct {
	DeclInfo
	Type Type
}

// FuncDecl declares a free function or member function.
type FuncDecl struct {
	DeclInfo
	Params   []*ParamDecl
	Result   Type
	Variadic bool
	// Explicit marks explicit constructors.
	Explicit bool
	// Ctor marks constructors.
	Ctor bool
	// Body is the definition, nil for declarations.
	Body  *Block
	Range Range
}

// ParamDecl declares a function parameter.
type ParamDecl struct {
	DeclInfo
	Type Type
	// Pack marks function parameter packs (Args&&... args).
	Pack bool
	// Default marks parameters with a default argument.
	Default bool
}

// VarDecl declares a variable.
type VarDecl struct {
	DeclInfo
	Type Type
}

// Info returns the common attributes of a declaration.
func Info(d Decl) *DeclInfo {
	if d == nil {
		return nil
	}

	return d.declInfo()
}

// Name returns the unqualified name of a declaration.
func Name(d Decl) string {
	if d == nil {
		return ""
	}

	return d.declInfo().Name
}

// QualifiedName returns the fully qualified name of d with a leading "::",
// omitting inline namespaces.
func QualifiedName(d Decl) string {
	return qualifiedName(d, false)
}

// FullName returns the fully qualified name of d with a leading "::",
// including inline namespaces.
func FullName(d Decl) string {
	return qualifiedName(d, true)
}

func qualifiedName(d Decl, inline bool) string {
	var parts []string

	for d != nil {
		info := d.declInfo()
		if ns, ok := d.(*Namespace); !ok || !ns.Inline || inline {
			parts = append(parts, info.Name)
		}

		d = info.Parent
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString("::")
		b.WriteString(parts[i])
	}

	return b.String()
}

// ForwardingReference reports whether the parameter is a forwarding reference (T&&
// where T is a template type parameter).
func (p *ParamDecl) ForwardingReference() bool {
	r, ok := p.Type.(*Reference)
	if !ok || !r.RValue {
		return false
	}

	_, ok = r.Elem.(*TypeParam)

	return ok
}

// ParamAt returns the parameter declaration binding the argument at index i,
// taking a trailing parameter pack into account.
func (f *FuncDecl) ParamAt(i int) (*ParamDecl, bool) {
	if i < 0 {
		return nil, false
	}

	if n := len(f.Params); i >= n {
		if n > 0 && f.Params[n-1].Pack {
			return f.Params[n-1], true
		}

		return nil, false
	}

	return f.Params[i], true
}

// Record returns the class declaring a member function, or nil for free functions.
func (f *FuncDecl) Record() *RecordDecl {
	r, _ := f.Parent.(*RecordDecl)

	return r
}

// Type returns the function type of f.
func (f *FuncDecl) Type() *Func {
	params := make([]Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}

	return &Func{Params: params, Result: f.Result, Variadic: f.Variadic}
}

// RecordOf returns the class declaration of a record type, looking through aliases,
// references and const qualifiers.
func RecordOf(t Type) (*RecordDecl, bool) {
	r, ok := Unalias(NonReference(t)).(*Record)
	if !ok || r.Decl == nil {
		return nil, false
	}

	return r.Decl, true
}
