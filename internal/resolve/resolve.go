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

// Package resolve decides whether the context consuming an accessor call accepts the string itself.
//
// The expression enclosing the call, after skipping parentheses and implicit conversions,
// is the use site. Each kind of use site has its own acceptance rule, see [UseSiteKind].
package resolve

import (
	"log/slog"

	"fillmore-labs.com/redundantcstr/internal/classify"
	"fillmore-labs.com/redundantcstr/internal/config"
	"fillmore-labs.com/redundantcstr/internal/match"
	"fillmore-labs.com/redundantcstr/internal/sema"
)

// UseSiteKind classifies the expression consuming the accessor result.
type UseSiteKind uint8

//go:generate go tool stringer -type UseSiteKind -linecomment
const (
	// Unclassified is a use site without an acceptance rule.
	Unclassified UseSiteKind = iota // unk

	// CallArgument is an argument of a function, function pointer or member function call.
	CallArgument // arg

	// Assignment is the right operand of an overloaded = or +=.
	Assignment // asg

	// Comparison is an operand of an overloaded comparison operator.
	Comparison // cmp

	// Concatenation is an operand of an overloaded +.
	Concatenation // cat

	// StringMember is an argument of a member function of the string class itself.
	StringMember // mem

	// FormatArgument is a variadic argument of an allow-listed formatting function.
	FormatArgument // fmt

	// SinkArgument is a variadic argument of a member of an allow-listed sink class.
	SinkArgument // snk

	// Construction is the initializer of a string or string view.
	Construction // ctr

	// Return is the operand of a return statement.
	Return // ret
)

// RejectReason explains why an accessor call is kept.
type RejectReason uint8

//go:generate go tool stringer -type RejectReason -linecomment
const (
	// NoReason is the reason of accepted outcomes.
	NoReason RejectReason = iota // none

	// NotStringFamily means the receiver is not a std::basic_string.
	NotStringFamily // not-string-family

	// RvalueOnlyParameter means the parameter only binds rvalues, which the string lvalue is not.
	RvalueOnlyParameter // rvalue-only-parameter

	// NoDirectAcceptance means the use site does not take the string directly.
	NoDirectAcceptance // no-direct-acceptance
)

// UseSite is the expression consuming an accessor result.
type UseSite struct {
	Kind UseSiteKind
	// Node is the use site, nil when the accessor call is not nested in an expression or statement.
	Node sema.Node
	// Arg is the argument position of the accessor call at the use site, -1 if not applicable.
	Arg int
}

// Outcome is the result of [Resolver.Resolve].
type Outcome struct {
	Accepted bool
	Site     UseSite
	Reason   RejectReason
}

// LogValue implements [slog.LogValuer].
func (o Outcome) LogValue() slog.Value {
	as := []slog.Attr{slog.Bool("accepted", o.Accepted), slog.String("site", o.Site.Kind.String())}

	if o.Site.Arg >= 0 {
		as = append(as, slog.Int("arg", o.Site.Arg))
	}

	if !o.Accepted {
		as = append(as, slog.String("reason", o.Reason.String()))
	}

	return slog.GroupValue(as...)
}

func accept(site UseSite) Outcome { return Outcome{Accepted: true, Site: site} }

func reject(site UseSite, reason RejectReason) Outcome {
	return Outcome{Site: site, Reason: reason}
}

// Resolver decides acceptance for the accessor calls of one unit.
//
// A Resolver is immutable after construction and safe for concurrent use.
type Resolver struct {
	formats    map[string]struct{}
	params     map[*sema.RecordDecl]struct{}
	sinks      sinkSet
	relational bool
}

// New creates a [Resolver] for unit u. The allow-lists are resolved against the declarations of u.
func New(u *sema.Unit, allow config.AllowLists, behavior config.Behavior) *Resolver {
	allow = allow.Normalize()

	r := &Resolver{
		formats:    make(map[string]struct{}, len(allow.FormatFunctions)),
		params:     make(map[*sema.RecordDecl]struct{}),
		sinks:      newSinkSet(u, allow.SinkTypes),
		relational: behavior.Enabled(config.RelationalComparisons),
	}

	for _, name := range allow.FormatFunctions {
		r.formats[name] = struct{}{}
	}

	for _, name := range allow.StringParameterTypes {
		for _, rec := range lookupRecords(u, name) {
			r.params[rec] = struct{}{}
		}
	}

	return r
}

// Resolve classifies the use site of the accessor call a at cursor c and applies its acceptance rule.
func (r *Resolver) Resolve(a match.AccessorCall, c sema.Cursor) Outcome {
	site, child, ok := useSite(c)

	if a.String.Family != classify.String {
		return reject(UseSite{Node: site.Node(), Arg: -1}, NotStringFamily)
	}

	if !ok {
		return reject(UseSite{Arg: -1}, NoDirectAcceptance)
	}

	switch n := site.Node().(type) {
	case *sema.MemberCall:
		return r.memberCall(a, n, argIndex(n.Args, child))

	case *sema.Call:
		return r.call(a, n, argIndex(n.Args, child))

	case *sema.OperatorCall:
		return r.operatorCall(a, n, argIndex(n.Args, child))

	case *sema.Construct:
		return r.construct(a, n, argIndex(n.Args, child))

	case *sema.DeclStmt:
		return r.declStmt(a, n, child)

	case *sema.Return:
		return r.returnStmt(a, n, site.Func())

	default:
		return reject(UseSite{Node: site.Node(), Arg: -1}, NoDirectAcceptance)
	}
}

// useSite climbs from the accessor call over parentheses and implicit conversions.
// It returns the use site and its child containing the call.
func useSite(c sema.Cursor) (sema.Cursor, sema.Node, bool) {
	child := c.Node()

	for p, ok := c.Parent(); ok; p, ok = p.Parent() {
		switch p.Node().(type) {
		case *sema.Paren, *sema.Implicit:
			child = p.Node()

		default:
			return p, child, true
		}
	}

	return sema.Cursor{}, nil, false
}

func argIndex(args []sema.Expr, child sema.Node) int {
	for i, arg := range args {
		if sema.Node(arg) == child {
			return i
		}
	}

	return -1
}
