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

package fix

import (
	"cmp"
	"slices"
	"strings"

	"fillmore-labs.com/redundantcstr/internal/match"
	"fillmore-labs.com/redundantcstr/internal/sema"
)

// Replacement replaces the source text in Range with Text.
type Replacement struct {
	Range sema.Range
	Text  string
}

// Generate produces the replacement for the accepted accessor call a in unit u.
//
// nested holds accepted replacements inside the receiver of a; they are applied to the
// receiver text, so the returned replacement supersedes them.
func Generate(u *sema.Unit, a match.AccessorCall, nested []Replacement) (Replacement, bool) {
	if a.Call == nil || a.Receiver == nil {
		return Replacement{}, false
	}

	call := a.Call.Span()
	if !call.Valid() || int(call.End) > len(u.Source) {
		return Replacement{}, false
	}

	nested = slices.SortedFunc(slices.Values(nested), func(a, b Replacement) int {
		return cmp.Compare(a.Range.Begin, b.Range.Begin)
	})

	var (
		text string
		ok   bool
	)

	switch a.Form {
	case match.Direct:
		text, ok = exprText(u, a.Receiver, nested)

	case match.PointerDeref, match.IteratorDeref:
		text, ok = deref(u, a.Receiver, nested)
	}

	if !ok {
		return Replacement{}, false
	}

	return Replacement{Range: call, Text: text}, true
}

// deref renders the dereference of e. "&x" collapses to "x".
func deref(u *sema.Unit, e sema.Expr, nested []Replacement) (string, bool) {
	if x, ok := sema.Unparen(e).(*sema.Unary); ok && x.Op == "&" && !x.Postfix {
		return exprText(u, x.X, nested)
	}

	text, ok := exprText(u, e, nested)

	switch stripImplicit(e).(type) {
	case *sema.Binary, *sema.Conditional:
		text = "(" + text + ")"
	}

	return "*" + text, ok
}

// exprText returns the source text of e with the replacements inside it applied.
func exprText(u *sema.Unit, e sema.Expr, nested []Replacement) (string, bool) {
	r := e.Span()
	if !r.Valid() || int(r.End) > len(u.Source) {
		return "", false
	}

	var b strings.Builder

	pos := r.Begin

	for _, n := range nested {
		if !r.Contains(n.Range) || n.Range.Begin < pos {
			continue
		}

		b.Write(u.Source[pos:n.Range.Begin])
		b.WriteString(n.Text)
		pos = n.Range.End
	}

	b.Write(u.Source[pos:r.End])

	return b.String(), true
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
