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

package run_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/redundantcstr/internal/config"
	"fillmore-labs.com/redundantcstr/internal/fix"
	"fillmore-labs.com/redundantcstr/internal/report"
	. "fillmore-labs.com/redundantcstr/internal/run"
	"fillmore-labs.com/redundantcstr/internal/sema"
	tu "fillmore-labs.com/redundantcstr/internal/testunit"
)

// program builds a unit with redundant accessor calls or, when fixed is set, the same unit
// with the calls removed.
func program(t *testing.T, fixed bool, header ...string) *sema.Unit {
	t.Helper()

	b := tu.New(t)
	for _, h := range header {
		b.Header(h)
	}

	std := b.Std(tu.InlineNamespace("__1"))

	s := tu.Param("s", std.String)
	str := tu.Param("t", tu.ConstRef(std.String))
	ptr := tu.Param("ptr", tu.PtrTo(std.String))
	it := tu.Param("it", std.Iter(std.String))

	f1 := b.Func(nil, "f1", std.Void, tu.Param("p", tu.ConstRef(std.String)))
	fptr := b.Func(nil, "fptr", std.Void, tu.Param("p", std.CharPtr()))

	cstr := func(recv sema.Expr) sema.Expr {
		if fixed {
			return recv
		}

		return std.CStrOf(recv)
	}

	data := func(recv sema.Expr) sema.Expr {
		if fixed {
			return recv
		}

		return std.DataOf(recv)
	}

	pick := func(before, after *sema.FuncDecl) *sema.FuncDecl {
		if fixed {
			return after
		}

		return before
	}

	viaPtr := std.CStrOf(tu.Use(ptr))
	viaIter := std.CStrOf(tu.Arrow(tu.Use(it), std.IterOp, std.String))

	var deref, iter sema.Expr = viaPtr, viaIter
	if fixed {
		deref = tu.Deref(tu.Use(ptr))
		iter = tu.Op("*", std.IterOp, std.String, tu.Use(it))
	}

	temp := tu.Construct("std::string", std.String, std.StringCtor, cstr(tu.Use(s)))

	v := b.Var("v", std.String)

	b.Define(b.Func(nil, "g", std.Void, s, str, ptr, it),
		tu.Expr(tu.Call(f1, cstr(tu.Use(s)))),
		tu.Expr(tu.Call(f1, tu.Par(data(tu.Use(s))))),
		tu.Expr(tu.Call(f1, deref)),
		tu.Expr(std.Assign("=", pick(std.AssignOpP, std.AssignOpS), tu.Use(s), iter)),
		tu.Expr(std.Str(tu.Use(s), pick(std.CompareP, std.CompareS), cstr(tu.Use(str)))),
		tu.If(std.Binary("==", pick(std.EqSP, std.EqSS), tu.Use(s), cstr(tu.Use(str))), tu.Ret(nil)),
		tu.Expr(tu.Call(f1, std.Binary("+", pick(std.PlusSP, std.PlusSS), tu.Use(s), cstr(tu.Use(str))))),
		tu.Expr(tu.Call(f1, cstr(temp))),
		tu.Expr(tu.Call(fptr, std.CStrOf(tu.Use(s)))),
		b.Trailing(tu.Expr(tu.Call(f1, std.CStrOf(tu.Use(s)))), "// NOLINT"),
		tu.Decl(v, cstr(tu.Use(s))),
	)

	ret := tu.Param("t", tu.ConstRef(std.String))
	b.Define(b.Func(nil, "h", std.String, ret), tu.Ret(cstr(tu.Use(ret))))

	return b.Build()
}

func describe(u *sema.Unit, f report.Finding) string {
	text := "-"
	if f.Fix != nil {
		text = f.Fix.Text
	}

	return fmt.Sprintf("%s %s %s", u.Text(f.Range()), f.Site.Kind, text)
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	u := program(t, false)

	want := []string{
		"s.c_str() arg s",
		"s.data() arg s",
		"ptr->c_str() arg *ptr",
		"it->c_str() asg *it",
		"t.c_str() mem t",
		"t.c_str() cmp t",
		"t.c_str() cat t",
		"std::string(s.c_str()).c_str() arg std::string(s)",
		"s.c_str() ctr -",
		"s.c_str() ctr s",
		"t.c_str() ret t",
	}

	findings := DefaultOptions().Analyze(t.Context(), u)

	if len(findings) != len(want) {
		for _, f := range findings {
			t.Log(describe(u, f))
		}

		t.Fatalf("Got %d findings, expected %d", len(findings), len(want))
	}

	for i, f := range findings {
		if got := describe(u, f); got != want[i] {
			t.Errorf("Got %q, expected %q", got, want[i])
		}
	}

	if got, want := findings[1].Message(), "redundant call to 'data' (rc:arg)"; got != want {
		t.Errorf("Got message %q, expected %q", got, want)
	}
}

func TestFixedPoint(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()

	// given
	u := program(t, false)
	fixed := program(t, true)

	// when
	src, err := fix.Apply(u.Source, report.Fixes(o.Analyze(t.Context(), u)))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// then
	if !bytes.Equal(src, fixed.Source) {
		t.Errorf("Got rewritten source\n%s\nexpected\n%s", src, fixed.Source)
	}

	if findings := o.Analyze(t.Context(), fixed); len(findings) != 0 {
		for _, f := range findings {
			t.Log(describe(fixed, f))
		}

		t.Errorf("Got %d findings in the rewritten unit, expected none", len(findings))
	}
}

func TestBehavior(t *testing.T) {
	t.Parallel()

	generated := config.DefaultBehavior()
	generated.Enable(config.IncludeGenerated)

	lint := config.DefaultBehavior()
	lint.Disable(config.HonorNoLint)

	tests := []struct {
		name     string
		header   []string
		behavior config.Behavior
		expected int
	}{
		{"default", nil, config.DefaultBehavior(), 11},
		{"generated", []string{"// @generated"}, config.DefaultBehavior(), 0},
		{"include_generated", []string{"// Code generated by tool. DO NOT EDIT."}, generated, 11},
		{"ignore_nolint", nil, lint, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := DefaultOptions()
			o.Behavior = tt.behavior

			if got := len(o.Analyze(t.Context(), program(t, false, tt.header...))); got != tt.expected {
				t.Errorf("Got %d findings, expected %d", got, tt.expected)
			}
		})
	}
}

func TestNestedFold(t *testing.T) {
	t.Parallel()

	b := tu.New(t)
	std := b.Std()

	s := tu.Param("s", std.String)
	f1 := b.Func(nil, "f1", std.Void, tu.Param("p", tu.ConstRef(std.String)))

	// the inner call is part of the outer receiver
	inner := std.CStrOf(tu.Use(s))
	outer := std.CStrOf(tu.Construct("std::string", std.String, std.StringCtor, inner))

	b.Define(b.Func(nil, "g", std.Void, s), tu.Expr(tu.Call(f1, outer)))

	u := b.Build()

	findings := DefaultOptions().Analyze(t.Context(), u)
	if len(findings) != 2 {
		t.Fatalf("Got %d findings, expected 2", len(findings))
	}

	fixes := report.Fixes(findings)
	if len(fixes) != 1 {
		t.Fatalf("Got %d fixes, expected 1", len(fixes))
	}

	if fixes[0].Range != outer.Span() || fixes[0].Text != "std::string(s)" {
		t.Errorf("Got fix %v, expected %q at %v", fixes[0], "std::string(s)", outer.Span())
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	u := program(t, false)

	good := filepath.Join(dir, "good.cc")
	writeFile(t, good, u.Source)

	var dump bytes.Buffer
	if err := sema.Encode(&dump, u, sema.JSON); err != nil {
		t.Fatal(err)
	}

	writeFile(t, good+".sema.json", dump.Bytes())

	broken := filepath.Join(dir, "broken.cc")
	writeFile(t, broken, []byte("int x;\n"))
	writeFile(t, broken+".sema.json", []byte(`{"version": 99}`))

	nodump := filepath.Join(dir, "nodump.cc")
	writeFile(t, nodump, []byte("int y;\n"))

	cyclic := filepath.Join(dir, "cyclic.cc")
	writeFile(t, cyclic, []byte("namespace n {}\n"))
	writeFile(t, cyclic+".sema.json", []byte(`{"version": 1, "decls": [{"kind": "namespace", "name": "n", "parent": 1}]}`))

	var diagnostics []analysis.Diagnostic

	fset := token.NewFileSet()
	p := &analysis.Pass{
		Fset:       fset,
		Pkg:        types.NewPackage("example.com/a", "a"),
		OtherFiles: []string{good, filepath.Join(dir, "notes.txt"), broken, nodump, cyclic},
		ReadFile:   os.ReadFile,
		Report:     func(d analysis.Diagnostic) { diagnostics = append(diagnostics, d) },
	}

	if _, err := DefaultOptions().Run(p); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(diagnostics) != 13 {
		t.Fatalf("Got %d diagnostics, expected 13", len(diagnostics))
	}

	first := diagnostics[0]
	if pos := fset.Position(first.Pos); pos.Filename != good || pos.Line != 2 {
		t.Errorf("Got position %v, expected %s:2", pos, good)
	}

	if got, want := first.Message, "redundant call to 'c_str' (rc:arg)"; got != want {
		t.Errorf("Got message %q, expected %q", got, want)
	}

	if len(first.SuggestedFixes) != 1 || string(first.SuggestedFixes[0].TextEdits[0].NewText) != "s" {
		t.Errorf("Got suggested fixes %v, expected one replacing with s", first.SuggestedFixes)
	}

	for i, name := range []string{"broken.cc", "cyclic.cc"} {
		d := diagnostics[11+i]
		if !strings.HasPrefix(d.Message, "Internal Error: ") || !strings.Contains(d.Message, name) {
			t.Errorf("Got message %q, expected an internal error for %s", d.Message, name)
		}
	}
}

type staticLoader map[string]*sema.Unit

func (l staticLoader) Load(_ context.Context, path string) (*sema.Unit, error) {
	return l[path], nil
}

func TestRunLoader(t *testing.T) {
	t.Parallel()

	u := program(t, false)

	var n int

	o := DefaultOptions()
	o.Loader = staticLoader{"virtual.cc": u}

	p := &analysis.Pass{
		Fset:       token.NewFileSet(),
		Pkg:        types.NewPackage("example.com/a", "a"),
		OtherFiles: []string{"virtual.cc"},
		ReadFile:   os.ReadFile,
		Report:     func(analysis.Diagnostic) { n++ },
	}

	if _, err := o.Run(p); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if n != 11 {
		t.Errorf("Got %d diagnostics, expected 11", n)
	}
}

func writeFile(t *testing.T, name string, data []byte) {
	t.Helper()

	if err := os.WriteFile(name, data, 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestConfigured(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	good := filepath.Join(dir, "redundantcstr.yaml")
	writeFile(t, good, []byte("comparisons: relational\nsink-types: [\"::Log\"]\n"))

	bad := filepath.Join(dir, "redundantcstr.ini")
	writeFile(t, bad, []byte("x = 1\n"))

	o := DefaultOptions()
	o.ConfigFile = good

	c, err := o.Configured()
	if err != nil {
		t.Fatalf("Configured failed: %v", err)
	}

	if !c.Behavior.Enabled(config.RelationalComparisons) || len(c.Allow.SinkTypes) != 1 {
		t.Errorf("Got %v, expected relational comparisons and one sink type", c.LogValue())
	}

	if o.Behavior.Enabled(config.RelationalComparisons) {
		t.Error("Configured modified its receiver")
	}

	o.ConfigFile = bad
	if _, err := o.Configured(); !errors.Is(err, config.ErrUnknownFormat) {
		t.Errorf("Got error %v, expected %v", err, config.ErrUnknownFormat)
	}

	p := &analysis.Pass{Fset: token.NewFileSet(), ReadFile: os.ReadFile}
	if _, err := o.Run(p); err == nil {
		t.Error("Run succeeded with an invalid configuration file")
	}
}
