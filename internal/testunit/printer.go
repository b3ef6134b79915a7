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

import (
	"bytes"
	"strings"

	"fillmore-labs.com/redundantcstr/internal/sema"
)

// printer renders function definitions, recording the range of every node it writes.
type printer struct {
	buf      bytes.Buffer
	leading  map[sema.Stmt]string
	trailing map[sema.Stmt]string
}

// Print renders the function definitions of u anew and updates all ranges.
func Print(u *sema.Unit) {
	var p printer

	for _, f := range u.Funcs() {
		p.funcDecl(f)
	}

	u.Source = p.buf.Bytes()
}

func (p *printer) pos() uint32 { return uint32(p.buf.Len()) }

func (p *printer) write(s string) { p.buf.WriteString(s) }

func (p *printer) newline() { p.buf.WriteByte('\n') }

func (p *printer) indent(depth int) { p.write(strings.Repeat("  ", depth)) }

func (p *printer) line(depth int, s string) {
	p.indent(depth)
	p.write(s)
	p.newline()
}

func (p *printer) funcDecl(f *sema.FuncDecl) {
	begin := p.pos()

	p.write(Spell(f.Result))
	p.write(" ")

	if r := f.Record(); r != nil {
		p.write(sema.Name(r))
		p.write("::")
	}

	p.write(sema.Name(f))
	p.write("(")

	for i, param := range f.Params {
		if i > 0 {
			p.write(", ")
		}

		p.write(Spell(param.Type))

		if param.Pack {
			p.write("...")
		}

		if name := sema.Name(param); name != "" {
			p.write(" ")
			p.write(name)
		}
	}

	p.write(") ")
	p.block(f.Body, 0)
	f.Range = sema.Range{Begin: begin, End: p.pos()}

	p.newline()
	p.newline()
}

func (p *printer) block(b *sema.Block, depth int) {
	begin := p.pos()

	p.write("{")
	p.newline()

	for _, s := range b.List {
		if c, ok := p.leading[s]; ok {
			p.line(depth+1, c)
		}

		p.indent(depth + 1)
		p.stmt(s, depth+1)

		if c, ok := p.trailing[s]; ok {
			p.write(" ")
			p.write(c)
		}

		p.newline()
	}

	p.indent(depth)
	p.write("}")
	b.Range = sema.Range{Begin: begin, End: p.pos()}
}

func (p *printer) stmt(s sema.Stmt, depth int) {
	begin := p.pos()

	switch s := s.(type) {
	case *sema.Block:
		p.block(s, depth)

		return

	case *sema.ExprStmt:
		p.expr(s.X)
		p.write(";")
		s.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.DeclStmt:
		p.write(Spell(s.Var.Type))
		p.write(" ")
		p.write(sema.Name(s.Var))

		switch {
		case s.Init == nil:

		case s.Direct:
			p.write("(")
			p.expr(s.Init)
			p.write(")")

		default:
			p.write(" = ")
			p.expr(s.Init)
		}

		p.write(";")
		s.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.Return:
		p.write("return")

		if s.Result != nil {
			p.write(" ")
			p.expr(s.Result)
		}

		p.write(";")
		s.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.If:
		p.write("if (")
		p.expr(s.Cond)
		p.write(") ")
		p.stmt(s.Then, depth)

		if s.Else != nil {
			p.write(" else ")
			p.stmt(s.Else, depth)
		}

		s.Range = sema.Range{Begin: begin, End: p.pos()}
	}
}

func (p *printer) exprs(es []sema.Expr) {
	for i, e := range es {
		if i > 0 {
			p.write(", ")
		}

		p.expr(e)
	}
}

func (p *printer) expr(e sema.Expr) {
	begin := p.pos()

	switch e := e.(type) {
	case *sema.DeclRef:
		p.write(e.Qualifier)
		p.write(sema.Name(e.Decl))
		e.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.Literal:
		p.write(e.Text)
		e.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.Paren:
		p.write("(")
		p.expr(e.X)
		p.write(")")
		e.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.Implicit:
		p.expr(e.X)
		e.Range = e.X.Span()

	case *sema.Member:
		p.expr(e.Base)

		if e.Arrow {
			p.write("->")
		} else {
			p.write(".")
		}

		p.write(e.Name)
		e.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.MemberCall:
		p.expr(e.Callee)
		p.write("(")
		p.exprs(e.Args)
		p.write(")")
		e.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.Call:
		p.expr(e.Fun)
		p.write("(")
		p.exprs(e.Args)
		p.write(")")
		e.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.OperatorCall:
		p.operatorCall(e)
		e.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.Unary:
		if e.Postfix {
			p.expr(e.X)
			p.write(e.Op)
		} else {
			p.write(e.Op)
			p.expr(e.X)
		}

		e.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.Binary:
		p.expr(e.X)
		p.write(" " + e.Op + " ")
		p.expr(e.Y)
		e.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.Conditional:
		p.expr(e.Cond)
		p.write(" ? ")
		p.expr(e.Then)
		p.write(" : ")
		p.expr(e.Else)
		e.Range = sema.Range{Begin: begin, End: p.pos()}

	case *sema.Construct:
		p.write(e.Spelling)
		p.write("(")
		p.exprs(e.Args)
		p.write(")")
		e.Range = sema.Range{Begin: begin, End: p.pos()}
	}
}

func (p *printer) operatorCall(e *sema.OperatorCall) {
	switch {
	case e.Op == "->" && len(e.Args) == 1:
		p.expr(e.Args[0])

	case e.Op == "()" && len(e.Args) > 0:
		p.expr(e.Args[0])
		p.write("(")
		p.exprs(e.Args[1:])
		p.write(")")

	case e.Op == "[]" && len(e.Args) == 2:
		p.expr(e.Args[0])
		p.write("[")
		p.expr(e.Args[1])
		p.write("]")

	case len(e.Args) == 1:
		p.write(e.Op)
		p.expr(e.Args[0])

	case len(e.Args) == 2:
		p.expr(e.Args[0])
		p.write(" " + e.Op + " ")
		p.expr(e.Args[1])
	}
}

// Spell renders a type the way it would be written in source.
func Spell(t sema.Type) string {
	switch t := t.(type) {
	case nil:
		return "void"

	case *sema.Const:
		return "const " + Spell(t.Elem)

	case *sema.Pointer:
		return Spell(t.Elem) + "*"

	case *sema.Reference:
		if t.RValue {
			return Spell(t.Elem) + "&&"
		}

		return Spell(t.Elem) + "&"

	case *sema.TypeParam:
		return t.Name

	case *sema.Alias:
		return strings.TrimPrefix(sema.QualifiedName(t.Decl), "::")

	case *sema.Record:
		name := strings.TrimPrefix(sema.QualifiedName(t.Decl), "::")
		if len(t.Args) == 0 {
			return name
		}

		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = Spell(a)
		}

		return name + "<" + strings.Join(args, ", ") + ">"

	case *sema.Func:
		params := make([]string, len(t.Params))
		for i, a := range t.Params {
			params[i] = Spell(a)
		}

		return Spell(t.Result) + "(" + strings.Join(params, ", ") + ")"

	default:
		return t.String()
	}
}
