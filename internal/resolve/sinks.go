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

package resolve

import (
	"strings"

	"fillmore-labs.com/redundantcstr/internal/sema"
)

// methods is a set of member function names, or all of them.
type methods struct {
	all   bool
	names map[string]struct{}
}

func (m *methods) add(o *methods) {
	if o == nil {
		return
	}

	if o.all {
		m.all = true
	}

	for name := range o.names {
		m.addName(name)
	}
}

func (m *methods) addName(name string) {
	if m.names == nil {
		m.names = make(map[string]struct{})
	}

	m.names[name] = struct{}{}
}

func (m *methods) empty() bool { return m == nil || !m.all && len(m.names) == 0 }

func (m *methods) contains(name string) bool {
	if m == nil {
		return false
	}

	if m.all {
		return true
	}

	_, ok := m.names[name]

	return ok
}

// sinkSet is the transitive closure of the sink allow-list over the base classes of a unit:
// every record reaching a sink entry, mapped to the member functions the entries allow.
type sinkSet map[*sema.RecordDecl]*methods

// newSinkSet resolves the sink entries against u and computes the closure.
//
// An entry names a class or an alias of a class, allowing all of its members, or a member
// "Class::method", allowing only that one.
func newSinkSet(u *sema.Unit, entries []string) sinkSet {
	roots := make(map[*sema.RecordDecl]*methods)

	root := func(rec *sema.RecordDecl) *methods {
		m, ok := roots[rec]
		if !ok {
			m = &methods{}
			roots[rec] = m
		}

		return m
	}

	for _, entry := range entries {
		if recs := lookupRecords(u, entry); len(recs) > 0 {
			for _, rec := range recs {
				root(rec).all = true
			}

			continue
		}

		i := strings.LastIndex(entry, "::")
		if i <= 0 || i+2 == len(entry) {
			continue
		}

		for _, rec := range lookupRecords(u, entry[:i]) {
			root(rec).addName(entry[i+2:])
		}
	}

	if len(roots) == 0 {
		return nil
	}

	c := closure{roots: roots, memo: make(map[*sema.RecordDecl]*methods)}

	s := make(sinkSet)

	for _, d := range u.Decls {
		rec, ok := d.(*sema.RecordDecl)
		if !ok {
			continue
		}

		if m := c.visit(rec); !m.empty() {
			s[rec] = m
		}
	}

	return s
}

// allows reports whether member function name of class rec forwards to a sink.
func (s sinkSet) allows(rec *sema.RecordDecl, name string) bool {
	return s[rec].contains(name)
}

type closure struct {
	roots map[*sema.RecordDecl]*methods
	memo  map[*sema.RecordDecl]*methods
}

// visit computes the methods allowed for rec through rec itself and all of its bases.
// Cyclic base lists, which only ill-formed input has, terminate with the partial result.
func (c *closure) visit(rec *sema.RecordDecl) *methods {
	if m, ok := c.memo[rec]; ok {
		return m
	}

	m := &methods{}
	c.memo[rec] = m

	m.add(c.roots[rec])

	for _, base := range rec.Bases {
		if b, ok := sema.RecordOf(base); ok {
			m.add(c.visit(b))
		}
	}

	return m
}

// lookupRecords returns the classes named by name, resolving aliases.
func lookupRecords(u *sema.Unit, name string) []*sema.RecordDecl {
	var recs []*sema.RecordDecl

	for _, d := range u.Lookup(name) {
		switch d := d.(type) {
		case *sema.RecordDecl:
			recs = append(recs, d)

		case *sema.TypedefDecl:
			if rec, ok := sema.RecordOf(d.Type); ok {
				recs = append(recs, rec)
			}
		}
	}

	return recs
}
