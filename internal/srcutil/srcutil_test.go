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

package srcutil_test

import (
	"go/token"
	"testing"

	. "fillmore-labs.com/redundantcstr/internal/srcutil"
)

const source = `// Copyright header
#include <string>

void f(const char*);

void g(const std::string& s) {
  f(s.c_str());  // NOLINT
  f(s.c_str());  // NOLINT(readability-redundant-string-cstr)
  f(s.c_str());  // NOLINT(bugprone-*)
  // NOLINTNEXTLINE(redundantcstr)
  f(s.c_str());
  f(s.c_str());  /* NOLINT(readability-*) */
  f("// NOLINT"); f(s.c_str());
  // NOLINTBEGIN(*)
  f(s.c_str());
  f(s.c_str());
  // NOLINTEND(*)
  f(s.c_str());  // NOLINTNEXT
  auto n = 1'000; f(s.c_str());  // NOLINT(all)
  f(R"x(// NOLINT)x"); f(s.c_str());
}
`

func TestSuppressed(t *testing.T) {
	t.Parallel()

	f := NewFile("test.cc", []byte(source))
	if !f.Valid() {
		t.Fatal("Invalid file")
	}

	tests := []struct {
		line     int
		expected bool
	}{
		{6, false},
		{7, true},
		{8, true},
		{9, false},
		{10, false},
		{11, true},
		{12, true},
		{13, false},
		{14, true},
		{15, true},
		{16, true},
		{17, true},
		{18, false},
		{19, true},
		{20, false},
	}

	for _, tt := range tests {
		off := offsetOfLine(t, f, tt.line)

		if got := f.Suppressed(off); got != tt.expected {
			t.Errorf("Line %d %q: Got suppressed %t, expected %t", tt.line, f.Line(tt.line), got, tt.expected)
		}
	}
}

func offsetOfLine(t *testing.T, f File, line int) uint32 {
	t.Helper()

	for off := range uint32(len(source)) {
		if f.Position(off).Line == line {
			return off
		}
	}

	t.Fatalf("Line %d not found", line)

	return 0
}

func TestPosition(t *testing.T) {
	t.Parallel()

	f := NewFile("test.cc", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off      uint32
		expected Position
	}{
		{0, Position{1, 1}},
		{2, Position{1, 3}},
		{3, Position{2, 1}},
		{4, Position{2, 2}},
		{6, Position{3, 1}},
		{7, Position{4, 1}},
		{8, Position{4, 2}},
		{99, Position{4, 3}},
	}

	for _, tt := range tests {
		if got := f.Position(tt.off); got != tt.expected {
			t.Errorf("Offset %d: Got %v, expected %v", tt.off, got, tt.expected)
		}
	}

	if got := f.Line(2); got != "cd" {
		t.Errorf("Got line %q, expected %q", got, "cd")
	}

	if got := f.Line(5); got != "" {
		t.Errorf("Got line %q, expected empty", got)
	}
}

func TestTokenFile(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()
	f := NewFile("dir/test.cc", []byte("ab\ncd\n"))
	tf := f.TokenFile(fset)

	p := fset.Position(Pos(tf, 4))
	if p.Filename != "dir/test.cc" || p.Line != 2 || p.Column != 2 {
		t.Errorf("Got %v, expected dir/test.cc:2:2", p)
	}
}

func TestGenerated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		expected bool
	}{
		{"none", "// Copyright\nint x;\n", false},
		{"at_generated", "// @generated by protoc\nint x;\n", true},
		{"block", "/*\n * @generated\n */\nint x;\n", true},
		{"go_style", "// Code generated by tool. DO NOT EDIT.\n\nint x;\n", true},
		{"after_code", "int x;\n// Code generated by tool. DO NOT EDIT.\n", false},
		{"in_string", "const char* s = \"@generated\";\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NewFile("x.cc", []byte(tt.src)).Generated(); got != tt.expected {
				t.Errorf("Got Generated() = %t, expected %t", got, tt.expected)
			}
		})
	}
}

func TestCommentSuppresses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		checks   string
		expected bool
	}{
		{"", true},
		{"()", true},
		{"(redundantcstr)", true},
		{"(Readability-Redundant-String-Cstr)", true},
		{"(readability-*)", true},
		{"(*)", true},
		{"(misc-*, redundantcstr)", true},
		{"(all)", true},
		{"(bugprone-*)", false},
		{"(readability-else-after-return)", false},
	}

	for _, tt := range tests {
		if got := CommentSuppresses(tt.checks); got != tt.expected {
			t.Errorf("%q: Got %t, expected %t", tt.checks, got, tt.expected)
		}
	}
}

func TestIsCXX(t *testing.T) {
	t.Parallel()

	for path, expected := range map[string]bool{
		"a.cc": true, "a.cpp": true, "a.CPP": true, "a.C": true, "a.hpp": true, "a.h": true,
		"a.go": false, "a.c.sema.json": false, "Makefile": false,
	} {
		if got := IsCXX(path); got != expected {
			t.Errorf("IsCXX(%q): Got %t, expected %t", path, got, expected)
		}
	}
}
