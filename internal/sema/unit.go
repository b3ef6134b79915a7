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

// Unit is one resolved translation unit.
type Unit struct {
	// Path is the main source file name.
	Path string
	// Source is the main source file content.
	Source []byte
	// Decls lists every declaration except parameters in declaration order.
	// Member functions appear here and in their record's Methods.
	Decls []Decl
}

// Text returns the source text covered by r, or "" for ranges outside the source.
func (u *Unit) Text(r Range) string {
	if r.End < r.Begin || int(r.End) > len(u.Source) {
		return ""
	}

	return string(u.Source[r.Begin:r.End])
}

// Cursor is a position in a function body together with its ancestors.
//
// A Cursor is only valid during the [Unit.Walk] callback it was passed to.
type Cursor struct {
	fun   *FuncDecl
	stack []Node
}

// Node returns the current node.
func (c Cursor) Node() Node {
	if len(c.stack) == 0 {
		return nil
	}

	return c.stack[len(c.stack)-1]
}

// Parent returns the cursor of the enclosing node.
func (c Cursor) Parent() (Cursor, bool) {
	if len(c.stack) < 2 {
		return Cursor{}, false
	}

	return Cursor{fun: c.fun, stack: c.stack[:len(c.stack)-1]}, true
}

// Func returns the function whose body contains the cursor.
func (c Cursor) Func() *FuncDecl { return c.fun }

// Depth returns the number of ancestors of the current node within the function body.
func (c Cursor) Depth() int { return len(c.stack) - 1 }

// Walk visits every node of every function body in declaration order, top-down.
// The children of a node are skipped when visit returns false.
func (u *Unit) Walk(visit func(c Cursor) bool) {
	for _, d := range u.Decls {
		f, ok := d.(*FuncDecl)
		if !ok || f.Body == nil {
			continue
		}

		WalkFunc(f, visit)
	}
}

// WalkFunc visits every node of the body of f, top-down.
func WalkFunc(f *FuncDecl, visit func(c Cursor) bool) {
	if f.Body == nil {
		return
	}

	stack := make([]Node, 0, 32)

	var walk func(n Node)
	walk = func(n Node) {
		stack = append(stack, n)
		if visit(Cursor{fun: f, stack: stack}) {
			for _, child := range Children(n) {
				walk(child)
			}
		}

		stack = stack[:len(stack)-1]
	}

	walk(f.Body)
}

// Funcs returns the function definitions of the unit.
func (u *Unit) Funcs() []*FuncDecl {
	var fs []*FuncDecl

	for _, d := range u.Decls {
		if f, ok := d.(*FuncDecl); ok && f.Body != nil {
			fs = append(fs, f)
		}
	}

	return fs
}

// Lookup returns the declarations whose qualified name, with or without inline namespaces, is name.
func (u *Unit) Lookup(name string) []Decl {
	var ds []Decl

	for _, d := range u.Decls {
		if QualifiedName(d) == name || FullName(d) == name {
			ds = append(ds, d)
		}
	}

	return ds
}
