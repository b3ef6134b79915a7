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

package match

import (
	"log/slog"

	"fillmore-labs.com/redundantcstr/internal/classify"
	"fillmore-labs.com/redundantcstr/internal/sema"
)

// AccessorKind identifies the accessor being called.
type AccessorKind uint8

//go:generate go tool stringer -type AccessorKind -linecomment
const (
	// ToCStr is a call to c_str().
	ToCStr AccessorKind = iota // c_str

	// ToData is a call to data().
	ToData // data
)

// AccessForm is the way the receiver string is reached.
type AccessForm uint8

//go:generate go tool stringer -type AccessForm -linecomment
const (
	// Direct is "s.c_str()".
	Direct AccessForm = iota // direct

	// PointerDeref is "p->c_str()" with p a pointer to string.
	PointerDeref // pointer

	// IteratorDeref is "it->c_str()" through an overloaded operator->.
	IteratorDeref // iterator
)

// AccessorCall is a recognized accessor call.
type AccessorCall struct {
	// Call is the accessor call node.
	Call *sema.MemberCall
	Kind AccessorKind
	Form AccessForm
	// Receiver is the expression before "." or "->": the string, the pointer or the iterator.
	Receiver sema.Expr
	// String is the classification of the string the accessor is called on.
	String classify.Class
	// Parens is the number of parentheses directly enclosing the call.
	Parens int
}

// LogValue implements [slog.LogValuer].
func (a AccessorCall) LogValue() slog.Value {
	r := a.Call.Span()

	return slog.GroupValue(
		slog.String("accessor", a.Kind.String()),
		slog.String("form", a.Form.String()),
		slog.Uint64("begin", uint64(r.Begin)),
		slog.Uint64("end", uint64(r.End)),
		slog.Any("string", a.String),
	)
}

// Find recognizes any accessor-shaped call at the cursor: a resolved member function named
// c_str or data, called without arguments. The receiver may be of any type.
func Find(c sema.Cursor) (AccessorCall, bool) {
	call, ok := c.Node().(*sema.MemberCall)
	if !ok || call.Callee == nil || call.Callee.Base == nil || call.Method == nil || len(call.Args) != 0 {
		return AccessorCall{}, false
	}

	var kind AccessorKind

	switch sema.Name(call.Method) {
	case "c_str":
		kind = ToCStr

	case "data":
		kind = ToData

	default:
		return AccessorCall{}, false
	}

	a := AccessorCall{Call: call, Kind: kind, Form: Direct, Receiver: call.Callee.Base}

	str := sema.TypeOf(a.Receiver)

	if call.Callee.Arrow {
		if op, ok := stripImplicit(a.Receiver).(*sema.OperatorCall); ok && op.Op == "->" && len(op.Args) == 1 {
			a.Form, a.Receiver = IteratorDeref, op.Args[0]
			str = sema.TypeOf(op)
		} else {
			a.Form = PointerDeref
		}

		if str, ok = sema.Pointee(str); !ok {
			return AccessorCall{}, false
		}
	}

	a.String = classify.Classify(str)
	a.Parens = enclosingParens(c)

	return a, true
}

// TryMatch recognizes accessor calls on a std::basic_string receiver.
func TryMatch(c sema.Cursor) (AccessorCall, bool) {
	a, ok := Find(c)
	if !ok || !a.OnString() {
		return AccessorCall{}, false
	}

	return a, true
}

// OnString reports whether the accessor is a member of std::basic_string called on a string.
func (a AccessorCall) OnString() bool {
	if a.String.Family != classify.String {
		return false
	}

	r := a.Call.Method.Record()

	return r != nil && classify.IsStringTemplate(r)
}

func stripImplicit(e sema.Expr) sema.Expr {
	for {
		i, ok := e.(*sema.Implicit)
		if !ok {
			return e
		}

		e = i.X
	}
}

// enclosingParens counts the parentheses around the current node, ignoring implicit conversions.
func enclosingParens(c sema.Cursor) int {
	n := 0

	for p, ok := c.Parent(); ok; p, ok = p.Parent() {
		switch p.Node().(type) {
		case *sema.Paren:
			n++

		case *sema.Implicit:

		default:
			return n
		}
	}

	return n
}
