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

// Range is a half-open byte interval [Begin, End) in the unit source.
type Range struct {
	Begin, End uint32
}

// Valid reports whether the range is non-empty.
func (r Range) Valid() bool { return r.Begin < r.End }

// Len returns the number of bytes in the range.
func (r Range) Len() int { return int(r.End - r.Begin) }

// Contains reports whether o lies within r.
func (r Range) Contains(o Range) bool { return r.Begin <= o.Begin && o.End <= r.End }

// Overlaps reports whether r and o share at least one byte.
func (r Range) Overlaps(o Range) bool { return r.Begin < o.End && o.Begin < r.End }

// Node is an element of a function body.
type Node interface {
	Span() Range
}

// Expr is an expression with a static type.
type Expr interface {
	Node
	StaticType() Type
	isExpr()
}

// Stmt is a statement.
type Stmt interface {
	Node
	isStmt()
}

// ExprInfo holds the attributes common to all expressions.
type ExprInfo struct {
	Range Range
	Type  Type
}

// Span returns the source range of the expression.
func (e *ExprInfo) Span() Range { return e.Range }

// StaticType returns the static type of the expression.
func (e *ExprInfo) StaticType() Type { return e.Type }

func (*ExprInfo) isExpr() {}

// StmtInfo holds the attributes common to all statements.
type StmtInfo struct {
	Range Range
}

// Span returns the source range of the statement.
func (s *StmtInfo) Span() Range { return s.Range }

func (*StmtInfo) isStmt() {}

type (
	// DeclRef names a variable, parameter or function.
	DeclRef struct {
		ExprInfo
		Decl Decl
		// Qualifier is the written nested name specifier, e.g. "fmt::".
		Qualifier string
	}

	// Literal is a literal constant.
	Literal struct {
		ExprInfo
		Text string
	}

	// Paren is a parenthesized expression.
	Paren struct {
		ExprInfo
		X Expr
	}

	// Implicit is an implicit conversion, temporary materialization or implicit
	// constructor call. It has no source text of its own.
	Implicit struct {
		ExprInfo
		X Expr
		// Ctor is the converting constructor, if any.
		Ctor *FuncDecl
	}

	// Member is a member access "Base.Name" or "Base->Name".
	Member struct {
		ExprInfo
		Base  Expr
		Name  string
		Arrow bool
		// Decl is the resolved member.
		Decl Decl
	}

	// MemberCall calls a member function.
	MemberCall struct {
		ExprInfo
		Callee *Member
		Args   []Expr
		// Method is the resolved member function, nil when unresolved.
		Method *FuncDecl
	}

	// Call calls a free function or a function pointer.
	Call struct {
		ExprInfo
		Fun  Expr
		Args []Expr
		// Callee is the resolved function, nil for calls through function pointers.
		Callee *FuncDecl
	}

	// OperatorCall is an overloaded operator.
	//
	// Member operators take the object as first argument. "->" has a single argument, the
	// object whose operator-> is applied; "()" has the callee object followed by the
	// call arguments.
	OperatorCall struct {
		ExprInfo
		Op   string
		Args []Expr
		// Callee is the resolved operator function, nil when unresolved.
		Callee *FuncDecl
	}

	// Unary is a built-in unary operator.
	Unary struct {
		ExprInfo
		Op      string
		X       Expr
		Postfix bool
	}

	// Binary is a built-in binary operator, including assignment.
	Binary struct {
		ExprInfo
		Op   string
		X, Y Expr
	}

	// Conditional is the built-in conditional operator.
	Conditional struct {
		ExprInfo
		Cond, Then, Else Expr
	}

	// Construct is an explicitly written functional cast or temporary, e.g. "std::string(p)".
	Construct struct {
		ExprInfo
		// Spelling is the type as written.
		Spelling string
		Args     []Expr
		Ctor     *FuncDecl
	}
)

type (
	// Block is a compound statement.
	Block struct {
		StmtInfo
		List []Stmt
	}

	// ExprStmt is an expression statement.
	ExprStmt struct {
		StmtInfo
		X Expr
	}

	// DeclStmt declares a local variable.
	DeclStmt struct {
		StmtInfo
		Var *VarDecl
		// Init is the initializer, nil for default initialization.
		Init Expr
		// Direct marks direct initialization "T v(init)", otherwise copy initialization "T v = init".
		Direct bool
	}

	// Return is a return statement.
	Return struct {
		StmtInfo
		Result Expr
	}

	// If is an if statement.
	If struct {
		StmtInfo
		Cond Expr
		Then Stmt
		Else Stmt
	}
)

// TypeOf returns the static type of an expression, nil for a nil expression.
func TypeOf(e Expr) Type {
	if e == nil {
		return nil
	}

	return e.StaticType()
}

// Unparen strips parentheses and implicit conversions.
func Unparen(e Expr) Expr {
	for {
		switch x := e.(type) {
		case *Paren:
			e = x.X

		case *Implicit:
			e = x.X

		default:
			return e
		}
	}
}

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Paren:
		return nodes(n.X)

	case *Implicit:
		return nodes(n.X)

	case *Member:
		return nodes(n.Base)

	case *MemberCall:
		return append(nodes(n.Callee), exprNodes(n.Args)...)

	case *Call:
		return append(nodes(n.Fun), exprNodes(n.Args)...)

	case *OperatorCall:
		return exprNodes(n.Args)

	case *Unary:
		return nodes(n.X)

	case *Binary:
		return nodes(n.X, n.Y)

	case *Conditional:
		return nodes(n.Cond, n.Then, n.Else)

	case *Construct:
		return exprNodes(n.Args)

	case *Block:
		ns := make([]Node, 0, len(n.List))
		for _, s := range n.List {
			if s != nil {
				ns = append(ns, s)
			}
		}

		return ns

	case *ExprStmt:
		return nodes(n.X)

	case *DeclStmt:
		return nodes(n.Init)

	case *Return:
		return nodes(n.Result)

	case *If:
		ns := nodes(n.Cond)
		if n.Then != nil {
			ns = append(ns, n.Then)
		}

		if n.Else != nil {
			ns = append(ns, n.Else)
		}

		return ns
	}

	return nil
}

func nodes(es ...Expr) []Node {
	ns := make([]Node, 0, len(es))
	for _, e := range es {
		if e != nil && !isNilMember(e) {
			ns = append(ns, e)
		}
	}

	return ns
}

func exprNodes(es []Expr) []Node { return nodes(es...) }

// isNilMember catches typed nil *Member callees.
func isNilMember(e Expr) bool {
	m, ok := e.(*Member)

	return ok && m == nil
}
