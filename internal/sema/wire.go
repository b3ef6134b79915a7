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

// The wire format is a flat document: types and declarations are listed once and referenced
// by 1-based position, 0 meaning "none". Function bodies are nested node trees.

// wireVersion is the supported document version.
const wireVersion = 1

type wireUnit struct {
	Version int        `json:"version"`
	Path    string     `json:"path"`
	Source  string     `json:"source,omitempty"`
	Types   []wireType `json:"types,omitempty"`
	Decls   []wireDecl `json:"decls,omitempty"`
}

// Type kinds.
const (
	kindBuiltin   = "builtin"
	kindRecord    = "record"
	kindAlias     = "alias"
	kindPointer   = "pointer"
	kindReference = "reference"
	kindConst     = "const"
	kindFunction  = "function"
	kindTypeParam = "typeparam"
)

type wireType struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
	// Decl references the declaration of records and aliases.
	Decl int `json:"decl,omitempty"`
	// Elem references the element of pointers, references and const types.
	Elem int `json:"elem,omitempty"`
	// Args references template arguments or function parameter types.
	Args     []int `json:"args,omitempty"`
	Result   int   `json:"result,omitempty"`
	RValue   bool  `json:"rvalue,omitempty"`
	Variadic bool  `json:"variadic,omitempty"`
	Pack     bool  `json:"pack,omitempty"`
}

// Declaration kinds, functions share [kindFunction].
const (
	kindNamespace = "namespace"
	kindTypedef   = "typedef"
	kindParam     = "param"
	kindVar       = "var"
)

type wireDecl struct {
	Kind     string    `json:"kind"`
	Name     string    `json:"name"`
	Parent   int       `json:"parent,omitempty"`
	Inline   bool      `json:"inline,omitempty"`
	Template []string  `json:"template,omitempty"`
	Bases    []int     `json:"bases,omitempty"`
	Type     int       `json:"type,omitempty"`
	Params   []int     `json:"params,omitempty"`
	Result   int       `json:"result,omitempty"`
	Variadic bool      `json:"variadic,omitempty"`
	Explicit bool      `json:"explicit,omitempty"`
	Ctor     bool      `json:"ctor,omitempty"`
	Pack     bool      `json:"pack,omitempty"`
	Default  bool      `json:"default,omitempty"`
	Begin    int64     `json:"begin,omitempty"`
	End      int64     `json:"end,omitempty"`
	Body     *wireNode `json:"body,omitempty"`
}

// Node kinds.
const (
	kindDeclRef     = "declref"
	kindLiteral     = "literal"
	kindParen       = "paren"
	kindImplicit    = "implicit"
	kindMember      = "member"
	kindMemberCall  = "membercall"
	kindCall        = "call"
	kindOpCall      = "opcall"
	kindUnary       = "unary"
	kindBinary      = "binary"
	kindConditional = "conditional"
	kindConstruct   = "construct"
	kindBlock       = "block"
	kindExprStmt    = "exprstmt"
	kindDeclStmt    = "declstmt"
	kindReturn      = "return"
	kindIf          = "if"
)

// wireNode is a body node. Kids holds the children in source order:
//
//	member:     base
//	membercall: callee member, arguments
//	call:       function, arguments
//	opcall:     arguments
//	declstmt:   optional initializer
//	if:         condition, then, optional else
type wireNode struct {
	Kind  string `json:"kind"`
	Begin int64  `json:"begin"`
	End   int64  `json:"end"`
	Type  int    `json:"type,omitempty"`
	// Decl references the named, resolved or declared entity.
	Decl int    `json:"decl,omitempty"`
	Name string `json:"name,omitempty"`
	Op   string `json:"op,omitempty"`
	// Text is the literal text, the written qualifier or the type spelling.
	Text string `json:"text,omitempty"`
	// Flag is the arrow, postfix or direct-initialization marker.
	Flag bool        `json:"flag,omitempty"`
	Kids []*wireNode `json:"kids,omitempty"`
}
