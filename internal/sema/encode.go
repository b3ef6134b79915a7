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

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode writes a unit document, embedding the source text.
func Encode(w io.Writer, u *Unit, f Format) error {
	e := encoder{
		typeIDs: make(map[Type]int),
		declIDs: make(map[Decl]int),
	}

	wu := e.unit(u)

	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", " ")

		return enc.Encode(wu)

	case MessagePack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		enc.UseCompactInts(true)

		return enc.Encode(wu)

	default:
		return fmt.Errorf("unknown format %d", f)
	}
}

type encoder struct {
	types   []wireType
	typeIDs map[Type]int
	decls   []wireDecl
	declIDs map[Decl]int
}

func (e *encoder) unit(u *Unit) *wireUnit {
	// Reserve positions first, so declaration order survives forward references.
	for _, d := range u.Decls {
		e.reserve(d)
	}

	for _, d := range u.Decls {
		e.fill(d)
	}

	return &wireUnit{
		Version: wireVersion,
		Path:    u.Path,
		Source:  string(u.Source),
		Types:   e.types,
		Decls:   e.decls,
	}
}

func (e *encoder) reserve(d Decl) (id int, fresh bool) {
	if id, ok := e.declIDs[d]; ok {
		return id, false
	}

	e.decls = append(e.decls, wireDecl{})
	id = len(e.decls)
	e.declIDs[d] = id

	return id, true
}

func (e *encoder) declID(d Decl) int {
	if d == nil {
		return 0
	}

	id, fresh := e.reserve(d)
	if fresh {
		e.fill(d)
	}

	return id
}

func (e *encoder) fill(d Decl) {
	id := e.declIDs[d]
	info := d.declInfo()

	wd := wireDecl{Name: info.Name, Parent: e.declID(info.Parent)}

	switch x := d.(type) {
	case *Namespace:
		wd.Kind, wd.Inline = kindNamespace, x.Inline

	case *RecordDecl:
		wd.Kind, wd.Template = kindRecord, x.TemplateParams
		wd.Bases = e.typeList(x.Bases)

	case *TypedefDecl:
		wd.Kind, wd.Type = kindTypedef, e.typeID(x.Type)

	case *ParamDecl:
		wd.Kind, wd.Type, wd.Pack, wd.Default = kindParam, e.typeID(x.Type), x.Pack, x.Default

	case *VarDecl:
		wd.Kind, wd.Type = kindVar, e.typeID(x.Type)

	case *FuncDecl:
		wd.Kind = kindFunction
		wd.Result = e.typeID(x.Result)
		wd.Variadic, wd.Explicit, wd.Ctor = x.Variadic, x.Explicit, x.Ctor
		wd.Begin, wd.End = int64(x.Range.Begin), int64(x.Range.End)

		for _, p := range x.Params {
			wd.Params = append(wd.Params, e.declID(p))
		}

		if x.Body != nil {
			wd.Body = e.node(x.Body)
		}
	}

	e.decls[id-1] = wd
}

func (e *encoder) typeID(t Type) int {
	if t == nil {
		return 0
	}

	if id, ok := e.typeIDs[t]; ok {
		return id
	}

	e.types = append(e.types, wireType{})
	id := len(e.types)
	e.typeIDs[t] = id

	var wt wireType

	switch x := t.(type) {
	case *Builtin:
		wt = wireType{Kind: kindBuiltin, Name: x.Name}

	case *Record:
		wt = wireType{Kind: kindRecord, Args: e.typeList(x.Args)}
		if x.Decl != nil {
			wt.Decl = e.declID(x.Decl)
		}

	case *Alias:
		wt = wireType{Kind: kindAlias}
		if x.Decl != nil {
			wt.Decl = e.declID(x.Decl)
		}

	case *Pointer:
		wt = wireType{Kind: kindPointer, Elem: e.typeID(x.Elem)}

	case *Reference:
		wt = wireType{Kind: kindReference, Elem: e.typeID(x.Elem), RValue: x.RValue}

	case *Const:
		wt = wireType{Kind: kindConst, Elem: e.typeID(x.Elem)}

	case *Func:
		wt = wireType{Kind: kindFunction, Args: e.typeList(x.Params), Result: e.typeID(x.Result), Variadic: x.Variadic}

	case *TypeParam:
		wt = wireType{Kind: kindTypeParam, Name: x.Name, Pack: x.Pack}
	}

	e.types[id-1] = wt

	return id
}

func (e *encoder) typeList(ts []Type) []int {
	if len(ts) == 0 {
		return nil
	}

	ids := make([]int, len(ts))
	for i, t := range ts {
		ids[i] = e.typeID(t)
	}

	return ids
}

func (e *encoder) nodes(es []Expr) []*wireNode {
	ns := make([]*wireNode, 0, len(es))
	for _, x := range es {
		ns = append(ns, e.node(x))
	}

	return ns
}

func (e *encoder) node(n Node) *wireNode {
	r := n.Span()
	w := &wireNode{Begin: int64(r.Begin), End: int64(r.End)}

	if x, ok := n.(Expr); ok {
		w.Type = e.typeID(x.StaticType())
	}

	switch x := n.(type) {
	case *DeclRef:
		w.Kind, w.Decl, w.Text = kindDeclRef, e.declID(x.Decl), x.Qualifier

	case *Literal:
		w.Kind, w.Text = kindLiteral, x.Text

	case *Paren:
		w.Kind, w.Kids = kindParen, []*wireNode{e.node(x.X)}

	case *Implicit:
		w.Kind, w.Kids = kindImplicit, []*wireNode{e.node(x.X)}
		if x.Ctor != nil {
			w.Decl = e.declID(x.Ctor)
		}

	case *Member:
		w.Kind, w.Name, w.Flag = kindMember, x.Name, x.Arrow
		w.Decl = e.declID(x.Decl)
		w.Kids = []*wireNode{e.node(x.Base)}

	case *MemberCall:
		w.Kind = kindMemberCall
		w.Kids = append([]*wireNode{e.node(x.Callee)}, e.nodes(x.Args)...)
		if x.Method != nil {
			w.Decl = e.declID(x.Method)
		}

	case *Call:
		w.Kind = kindCall
		w.Kids = append([]*wireNode{e.node(x.Fun)}, e.nodes(x.Args)...)
		if x.Callee != nil {
			w.Decl = e.declID(x.Callee)
		}

	case *OperatorCall:
		w.Kind, w.Op, w.Kids = kindOpCall, x.Op, e.nodes(x.Args)
		if x.Callee != nil {
			w.Decl = e.declID(x.Callee)
		}

	case *Unary:
		w.Kind, w.Op, w.Flag = kindUnary, x.Op, x.Postfix
		w.Kids = []*wireNode{e.node(x.X)}

	case *Binary:
		w.Kind, w.Op = kindBinary, x.Op
		w.Kids = []*wireNode{e.node(x.X), e.node(x.Y)}

	case *Conditional:
		w.Kind = kindConditional
		w.Kids = []*wireNode{e.node(x.Cond), e.node(x.Then), e.node(x.Else)}

	case *Construct:
		w.Kind, w.Text, w.Kids = kindConstruct, x.Spelling, e.nodes(x.Args)
		if x.Ctor != nil {
			w.Decl = e.declID(x.Ctor)
		}

	case *Block:
		w.Kind = kindBlock
		for _, s := range x.List {
			w.Kids = append(w.Kids, e.node(s))
		}

	case *ExprStmt:
		w.Kind, w.Kids = kindExprStmt, []*wireNode{e.node(x.X)}

	case *DeclStmt:
		w.Kind, w.Flag = kindDeclStmt, x.Direct
		if x.Var != nil {
			w.Decl = e.declID(x.Var)
		}

		if x.Init != nil {
			w.Kids = []*wireNode{e.node(x.Init)}
		}

	case *Return:
		w.Kind = kindReturn
		if x.Result != nil {
			w.Kids = []*wireNode{e.node(x.Result)}
		}

	case *If:
		w.Kind = kindIf
		w.Kids = []*wireNode{e.node(x.Cond), e.node(x.Then)}
		if x.Else != nil {
			w.Kids = append(w.Kids, e.node(x.Else))
		}
	}

	return w
}
