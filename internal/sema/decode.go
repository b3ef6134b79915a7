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
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrMalformed is returned for documents that do not describe a consistent unit.
var ErrMalformed = errors.New("malformed semantic dump")

// Format is a wire encoding of units.
type Format uint8

const (
	// JSON is the JSON encoding.
	JSON Format = iota
	// MessagePack is the MessagePack encoding.
	MessagePack
)

// FormatOf returns the format of a dump file by its extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, true

	case ".msgpack", ".mpk":
		return MessagePack, true

	default:
		return 0, false
	}
}

// Decode reads a unit document.
func Decode(r io.Reader, f Format) (*Unit, error) {
	var w wireUnit

	switch f {
	case JSON:
		if err := json.NewDecoder(r).Decode(&w); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

	case MessagePack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")

		if err := dec.Decode(&w); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

	default:
		return nil, fmt.Errorf("unknown format %d", f)
	}

	if w.Version != wireVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, w.Version)
	}

	d := decoder{w: &w}

	return d.unit()
}

type decoder struct {
	w     *wireUnit
	types []Type
	decls []Decl
}

func (d *decoder) unit() (*Unit, error) {
	if err := d.allocDecls(); err != nil {
		return nil, err
	}

	if err := d.allocTypes(); err != nil {
		return nil, err
	}

	for i := range d.w.Types {
		if err := d.fillType(i); err != nil {
			return nil, fmt.Errorf("type %d: %w", i+1, err)
		}
	}

	u := &Unit{Path: d.w.Path, Source: []byte(d.w.Source)}

	for i := range d.w.Decls {
		if err := d.fillDecl(i); err != nil {
			return nil, fmt.Errorf("decl %d (%s): %w", i+1, d.w.Decls[i].Name, err)
		}

		if _, ok := d.decls[i].(*ParamDecl); !ok {
			u.Decls = append(u.Decls, d.decls[i])
		}
	}

	if err := d.acyclic(); err != nil {
		return nil, err
	}

	if len(u.Source) > 0 {
		if err := u.Validate(); err != nil {
			return nil, err
		}
	}

	return u, nil
}

func (d *decoder) allocDecls() error {
	d.decls = make([]Decl, len(d.w.Decls))

	for i, wd := range d.w.Decls {
		info := DeclInfo{Name: wd.Name}

		switch wd.Kind {
		case kindNamespace:
			d.decls[i] = &Namespace{DeclInfo: info, Inline: wd.Inline}

		case kindRecord:
			d.decls[i] = &RecordDecl{DeclInfo: info, TemplateParams: wd.Template}

		case kindTypedef:
			d.decls[i] = &TypedefDecl{DeclInfo: info}

		case kindFunction:
			d.decls[i] = &FuncDecl{DeclInfo: info, Variadic: wd.Variadic, Explicit: wd.Explicit, Ctor: wd.Ctor}

		case kindParam:
			d.decls[i] = &ParamDecl{DeclInfo: info, Pack: wd.Pack, Default: wd.Default}

		case kindVar:
			d.decls[i] = &VarDecl{DeclInfo: info}

		default:
			return fmt.Errorf("%w: decl %d: unknown kind %q", ErrMalformed, i+1, wd.Kind)
		}
	}

	return nil
}

func (d *decoder) allocTypes() error {
	d.types = make([]Type, len(d.w.Types))

	for i, wt := range d.w.Types {
		switch wt.Kind {
		case kindBuiltin:
			d.types[i] = &Builtin{Name: wt.Name}

		case kindRecord:
			d.types[i] = &Record{}

		case kindAlias:
			d.types[i] = &Alias{}

		case kindPointer:
			d.types[i] = &Pointer{}

		case kindReference:
			d.types[i] = &Reference{RValue: wt.RValue}

		case kindConst:
			d.types[i] = &Const{}

		case kindFunction:
			d.types[i] = &Func{Variadic: wt.Variadic}

		case kindTypeParam:
			d.types[i] = &TypeParam{Name: wt.Name, Pack: wt.Pack}

		default:
			return fmt.Errorf("%w: type %d: unknown kind %q", ErrMalformed, i+1, wt.Kind)
		}
	}

	return nil
}

func (d *decoder) fillType(i int) error {
	wt := &d.w.Types[i]

	var err error

	switch t := d.types[i].(type) {
	case *Record:
		if t.Decl, err = declAs[*RecordDecl](d, wt.Decl); err != nil {
			return err
		}

		t.Args, err = d.typeList(wt.Args)

	case *Alias:
		t.Decl, err = declAs[*TypedefDecl](d, wt.Decl)

	case *Pointer:
		t.Elem, err = d.requiredType(wt.Elem)

	case *Reference:
		t.Elem, err = d.requiredType(wt.Elem)

	case *Const:
		t.Elem, err = d.requiredType(wt.Elem)

	case *Func:
		if t.Params, err = d.typeList(wt.Args); err != nil {
			return err
		}

		t.Result, err = d.typ(wt.Result)
	}

	return err
}

// Visit states of the cycle check.
const (
	unvisited = iota
	visiting
	done
)

// acyclic verifies that declaration parents and type references form no cycles.
func (d *decoder) acyclic() error {
	state := make([]uint8, len(d.w.Decls))

	for i := range d.w.Decls {
		var chain []int

		for j := i; j >= 0 && state[j] != done; j = d.w.Decls[j].Parent - 1 {
			if state[j] == visiting {
				return fmt.Errorf("%w: decl %d (%s) is its own parent", ErrMalformed, j+1, d.w.Decls[j].Name)
			}

			state[j] = visiting
			chain = append(chain, j)
		}

		for _, j := range chain {
			state[j] = done
		}
	}

	state = make([]uint8, len(d.w.Types))

	for i := range d.w.Types {
		if err := d.visitType(i, state); err != nil {
			return err
		}
	}

	return nil
}

func (d *decoder) visitType(i int, state []uint8) error {
	switch state[i] {
	case visiting:
		return fmt.Errorf("%w: type %d refers to itself", ErrMalformed, i+1)

	case done:
		return nil
	}

	state[i] = visiting

	for _, id := range d.typeRefs(i) {
		if id <= 0 {
			continue
		}

		if err := d.visitType(id-1, state); err != nil {
			return err
		}
	}

	state[i] = done

	return nil
}

// typeRefs returns the types a type is composed of, including the target of an alias.
func (d *decoder) typeRefs(i int) []int {
	wt := &d.w.Types[i]

	switch wt.Kind {
	case kindAlias:
		if wt.Decl > 0 {
			return []int{d.w.Decls[wt.Decl-1].Type}
		}

	case kindPointer, kindReference, kindConst:
		return []int{wt.Elem}

	case kindRecord:
		return wt.Args

	case kindFunction:
		return append(slices.Clone(wt.Args), wt.Result)
	}

	return nil
}

func (d *decoder) fillDecl(i int) error {
	wd := &d.w.Decls[i]

	parent, err := d.decl(wd.Parent)
	if err != nil {
		return err
	}

	d.decls[i].declInfo().Parent = parent

	switch x := d.decls[i].(type) {
	case *RecordDecl:
		x.Bases, err = d.typeList(wd.Bases)

	case *TypedefDecl:
		x.Type, err = d.requiredType(wd.Type)

	case *ParamDecl:
		x.Type, err = d.requiredType(wd.Type)

	case *VarDecl:
		x.Type, err = d.requiredType(wd.Type)

	case *FuncDecl:
		err = d.fillFunc(x, wd)
	}

	return err
}

func (d *decoder) fillFunc(f *FuncDecl, wd *wireDecl) error {
	var err error

	if f.Result, err = d.typ(wd.Result); err != nil {
		return err
	}

	for _, id := range wd.Params {
		p, err := declAs[*ParamDecl](d, id)
		if err != nil {
			return err
		}

		if p == nil {
			return fmt.Errorf("%w: missing parameter", ErrMalformed)
		}

		f.Params = append(f.Params, p)
	}

	if f.Range, err = makeRange(wd.Begin, wd.End); err != nil {
		return err
	}

	if r, ok := f.Parent.(*RecordDecl); ok {
		r.Methods = append(r.Methods, f)
	}

	if wd.Body == nil {
		return nil
	}

	s, err := d.stmt(wd.Body)
	if err != nil {
		return err
	}

	body, ok := s.(*Block)
	if !ok {
		return fmt.Errorf("%w: function body is a %s", ErrMalformed, wd.Body.Kind)
	}

	f.Body = body

	return nil
}

func (d *decoder) typ(id int) (Type, error) {
	switch {
	case id == 0:
		return nil, nil

	case id < 0 || id > len(d.types):
		return nil, fmt.Errorf("%w: type reference %d out of range", ErrMalformed, id)

	default:
		return d.types[id-1], nil
	}
}

func (d *decoder) requiredType(id int) (Type, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)
	}

	return d.typ(id)
}

func (d *decoder) typeList(ids []int) ([]Type, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ts := make([]Type, len(ids))
	for i, id := range ids {
		t, err := d.requiredType(id)
		if err != nil {
			return nil, err
		}

		ts[i] = t
	}

	return ts, nil
}

func (d *decoder) decl(id int) (Decl, error) {
	switch {
	case id == 0:
		return nil, nil

	case id < 0 || id > len(d.decls):
		return nil, fmt.Errorf("%w: decl reference %d out of range", ErrMalformed, id)

	default:
		return d.decls[id-1], nil
	}
}

// declAs resolves an optional declaration reference of a given kind.
func declAs[D Decl](d *decoder, id int) (D, error) {
	var null D

	decl, err := d.decl(id)
	if err != nil || decl == nil {
		return null, err
	}

	x, ok := decl.(D)
	if !ok {
		return null, fmt.Errorf("%w: decl %d is a %T, want %T", ErrMalformed, id, decl, null)
	}

	return x, nil
}

func makeRange(begin, end int64) (Range, error) {
	b, err := safecast.Conv[uint32](begin)
	if err != nil {
		return Range{}, fmt.Errorf("%w: range begin: %w", ErrMalformed, err)
	}

	e, err := safecast.Conv[uint32](end)
	if err != nil {
		return Range{}, fmt.Errorf("%w: range end: %w", ErrMalformed, err)
	}

	if e < b {
		return Range{}, fmt.Errorf("%w: inverted range [%d, %d)", ErrMalformed, b, e)
	}

	return Range{Begin: b, End: e}, nil
}

func (d *decoder) stmt(n *wireNode) (Stmt, error) {
	rng, err := makeRange(n.Begin, n.End)
	if err != nil {
		return nil, err
	}

	info := StmtInfo{Range: rng}

	switch n.Kind {
	case kindBlock:
		b := &Block{StmtInfo: info}
		for _, k := range n.Kids {
			s, err := d.stmt(k)
			if err != nil {
				return nil, err
			}

			b.List = append(b.List, s)
		}

		return b, nil

	case kindExprStmt:
		x, err := d.kid(n, 0)
		if err != nil {
			return nil, err
		}

		return &ExprStmt{StmtInfo: info, X: x}, nil

	case kindDeclStmt:
		v, err := declAs[*VarDecl](d, n.Decl)
		if err != nil {
			return nil, err
		}

		if v == nil {
			return nil, fmt.Errorf("%w: declaration statement without variable", ErrMalformed)
		}

		s := &DeclStmt{StmtInfo: info, Var: v, Direct: n.Flag}
		if len(n.Kids) > 0 {
			if s.Init, err = d.expr(n.Kids[0]); err != nil {
				return nil, err
			}
		}

		return s, nil

	case kindReturn:
		s := &Return{StmtInfo: info}
		if len(n.Kids) > 0 {
			if s.Result, err = d.expr(n.Kids[0]); err != nil {
				return nil, err
			}
		}

		return s, nil

	case kindIf:
		if len(n.Kids) < 2 {
			return nil, fmt.Errorf("%w: if statement with %d children", ErrMalformed, len(n.Kids))
		}

		s := &If{StmtInfo: info}
		if s.Cond, err = d.expr(n.Kids[0]); err != nil {
			return nil, err
		}

		if s.Then, err = d.stmt(n.Kids[1]); err != nil {
			return nil, err
		}

		if len(n.Kids) > 2 {
			if s.Else, err = d.stmt(n.Kids[2]); err != nil {
				return nil, err
			}
		}

		return s, nil

	default:
		return nil, fmt.Errorf("%w: unknown statement kind %q", ErrMalformed, n.Kind)
	}
}

func (d *decoder) kid(n *wireNode, i int) (Expr, error) {
	if i >= len(n.Kids) {
		return nil, fmt.Errorf("%w: %s node without child %d", ErrMalformed, n.Kind, i)
	}

	return d.expr(n.Kids[i])
}

func (d *decoder) exprs(ns []*wireNode) ([]Expr, error) {
	if len(ns) == 0 {
		return nil, nil
	}

	es := make([]Expr, len(ns))
	for i, n := range ns {
		e, err := d.expr(n)
		if err != nil {
			return nil, err
		}

		es[i] = e
	}

	return es, nil
}

func (d *decoder) expr(n *wireNode) (Expr, error) {
	rng, err := makeRange(n.Begin, n.End)
	if err != nil {
		return nil, err
	}

	t, err := d.typ(n.Type)
	if err != nil {
		return nil, err
	}

	info := ExprInfo{Range: rng, Type: t}

	switch n.Kind {
	case kindDeclRef:
		decl, err := d.decl(n.Decl)
		if err != nil {
			return nil, err
		}

		return &DeclRef{ExprInfo: info, Decl: decl, Qualifier: n.Text}, nil

	case kindLiteral:
		return &Literal{ExprInfo: info, Text: n.Text}, nil

	case kindParen:
		x, err := d.kid(n, 0)
		if err != nil {
			return nil, err
		}

		return &Paren{ExprInfo: info, X: x}, nil

	case kindImplicit:
		x, err := d.kid(n, 0)
		if err != nil {
			return nil, err
		}

		ctor, err := declAs[*FuncDecl](d, n.Decl)
		if err != nil {
			return nil, err
		}

		return &Implicit{ExprInfo: info, X: x, Ctor: ctor}, nil

	case kindMember:
		return d.member(n, info)

	case kindMemberCall:
		return d.memberCall(n, info)

	case kindCall:
		fun, err := d.kid(n, 0)
		if err != nil {
			return nil, err
		}

		args, err := d.exprs(n.Kids[1:])
		if err != nil {
			return nil, err
		}

		callee, err := declAs[*FuncDecl](d, n.Decl)
		if err != nil {
			return nil, err
		}

		return &Call{ExprInfo: info, Fun: fun, Args: args, Callee: callee}, nil

	case kindOpCall:
		args, err := d.exprs(n.Kids)
		if err != nil {
			return nil, err
		}

		callee, err := declAs[*FuncDecl](d, n.Decl)
		if err != nil {
			return nil, err
		}

		return &OperatorCall{ExprInfo: info, Op: n.Op, Args: args, Callee: callee}, nil

	case kindUnary:
		x, err := d.kid(n, 0)
		if err != nil {
			return nil, err
		}

		return &Unary{ExprInfo: info, Op: n.Op, X: x, Postfix: n.Flag}, nil

	case kindBinary:
		if len(n.Kids) != 2 {
			return nil, fmt.Errorf("%w: binary operator with %d operands", ErrMalformed, len(n.Kids))
		}

		xs, err := d.exprs(n.Kids)
		if err != nil {
			return nil, err
		}

		return &Binary{ExprInfo: info, Op: n.Op, X: xs[0], Y: xs[1]}, nil

	case kindConditional:
		if len(n.Kids) != 3 {
			return nil, fmt.Errorf("%w: conditional operator with %d operands", ErrMalformed, len(n.Kids))
		}

		xs, err := d.exprs(n.Kids)
		if err != nil {
			return nil, err
		}

		return &Conditional{ExprInfo: info, Cond: xs[0], Then: xs[1], Else: xs[2]}, nil

	case kindConstruct:
		args, err := d.exprs(n.Kids)
		if err != nil {
			return nil, err
		}

		ctor, err := declAs[*FuncDecl](d, n.Decl)
		if err != nil {
			return nil, err
		}

		return &Construct{ExprInfo: info, Spelling: n.Text, Args: args, Ctor: ctor}, nil

	default:
		return nil, fmt.Errorf("%w: unknown expression kind %q", ErrMalformed, n.Kind)
	}
}

func (d *decoder) member(n *wireNode, info ExprInfo) (*Member, error) {
	if n.Kind != kindMember {
		return nil, fmt.Errorf("%w: member call callee is a %s", ErrMalformed, n.Kind)
	}

	base, err := d.kid(n, 0)
	if err != nil {
		return nil, err
	}

	decl, err := d.decl(n.Decl)
	if err != nil {
		return nil, err
	}

	return &Member{ExprInfo: info, Base: base, Name: n.Name, Arrow: n.Flag, Decl: decl}, nil
}

func (d *decoder) memberCall(n *wireNode, info ExprInfo) (*MemberCall, error) {
	if len(n.Kids) == 0 {
		return nil, fmt.Errorf("%w: member call without callee", ErrMalformed)
	}

	k := n.Kids[0]

	rng, err := makeRange(k.Begin, k.End)
	if err != nil {
		return nil, err
	}

	t, err := d.typ(k.Type)
	if err != nil {
		return nil, err
	}

	callee, err := d.member(k, ExprInfo{Range: rng, Type: t})
	if err != nil {
		return nil, err
	}

	args, err := d.exprs(n.Kids[1:])
	if err != nil {
		return nil, err
	}

	method, err := declAs[*FuncDecl](d, n.Decl)
	if err != nil {
		return nil, err
	}

	return &MemberCall{ExprInfo: info, Callee: callee, Args: args, Method: method}, nil
}

// Validate checks that every node range lies within the unit source.
func (u *Unit) Validate() error {
	size := len(u.Source)

	var err error

	for _, f := range u.Funcs() {
		WalkFunc(f, func(c Cursor) bool {
			if err != nil {
				return false
			}

			if r := c.Node().Span(); int(r.End) > size {
				err = fmt.Errorf("%w: %s: range [%d, %d) exceeds source size %d", ErrMalformed, Name(f), r.Begin, r.End, size)

				return false
			}

			return true
		})

		if err != nil {
			return err
		}
	}

	return nil
}
