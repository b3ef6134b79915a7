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

package classify_test

import (
	"testing"

	. "fillmore-labs.com/redundantcstr/internal/classify"
	"fillmore-labs.com/redundantcstr/internal/sema"
	"fillmore-labs.com/redundantcstr/internal/testunit"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	b := testunit.New(t)
	std := b.Std(testunit.InlineNamespace("__1"))

	notAString := b.Record(nil, "NotAString")
	b.Method(notAString, "c_str", std.CharPtr())

	// A lookalike template outside std.
	mine := b.Namespace(nil, "mine", false)
	fake := b.Record(mine, "basic_string", "C", "T", "A")
	fakeString := testunit.Rec(fake, std.Char, std.Char, std.Char)

	derived := b.Derived(nil, "MyString", std.String)
	wrongArity := testunit.Rec(std.BasicString, std.Char)

	tests := []struct {
		name   string
		typ    sema.Type
		family Family
		char   sema.Type
	}{
		{"string", std.String, String, std.Char},
		{"wstring", std.WString, String, std.WChar},
		{"u16string", std.U16String, String, std.Char16},
		{"u32string", std.U32String, String, std.Char32},
		{"const_ref", testunit.ConstRef(std.String), String, std.Char},
		{"rvalue_ref", testunit.RRef(std.WString), String, std.WChar},
		{"const_typedef", b.Typedef(nil, "CS", testunit.ConstOf(std.String)), String, std.Char},
		{"string_view", std.StringView, StringView, std.Char},
		{"u32string_view", std.U32StringView, StringView, std.Char32},
		{"pointer", testunit.PtrTo(std.String), Other, nil},
		{"not_a_string", testunit.Rec(notAString), Other, nil},
		{"lookalike", fakeString, Other, nil},
		{"derived", testunit.Rec(derived), Other, nil},
		{"arity", wrongArity, Other, nil},
		{"builtin", std.Int, Other, nil},
		{"nil", nil, Other, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := Classify(tt.typ)

			if c.Family != tt.family {
				t.Fatalf("Got family %s, expected %s", c.Family, tt.family)
			}

			if tt.char == nil {
				if c.Char != nil || c.Record != nil {
					t.Errorf("Got class %v for %s", c.LogValue(), tt.family)
				}

				return
			}

			if !sema.Identical(c.Char, tt.char) {
				t.Errorf("Got char %v, expected %v", c.Char, tt.char)
			}
		})
	}
}

func TestSame(t *testing.T) {
	t.Parallel()

	b := testunit.New(t)
	std := b.Std()

	str, wstr := Classify(std.String), Classify(std.WString)
	view, wview := Classify(std.StringView), Classify(std.WStringView)

	tests := []struct {
		name           string
		a, b           Class
		same, sameChar bool
	}{
		{"string_string", str, Classify(testunit.ConstRef(std.String)), true, true},
		{"string_wstring", str, wstr, false, false},
		{"string_view", str, view, false, true},
		{"view_view", view, view, false, true},
		{"wstring_wview", wstr, wview, false, true},
		{"other", str, Classify(std.Int), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.a.Same(tt.b); got != tt.same {
				t.Errorf("Same() = %t, expected %t", got, tt.same)
			}

			if got := tt.a.SameChar(tt.b); got != tt.sameChar {
				t.Errorf("SameChar() = %t, expected %t", got, tt.sameChar)
			}
		})
	}
}

func TestFamilyString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		family Family
		want   string
	}{
		{Other, "other"},
		{String, "string"},
		{StringView, "string_view"},
		{Family(7), "Family(7)"},
	}

	for _, tt := range tests {
		if got := tt.family.String(); got != tt.want {
			t.Errorf("Got %q, expected %q", got, tt.want)
		}
	}
}
