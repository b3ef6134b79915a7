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

// Package classify recognizes the standard string and string view class templates.
package classify

import (
	"log/slog"

	"fillmore-labs.com/redundantcstr/internal/sema"
)

// Family is the kind of string a type belongs to.
type Family uint8

//go:generate go tool stringer -type Family -linecomment
const (
	// Other is any type outside the recognized families, including lookalikes with a c_str() method.
	Other Family = iota // other

	// String is a specialization of std::basic_string.
	String // string

	// StringView is a specialization of std::basic_string_view.
	StringView // string_view
)

// Qualified names of the recognized templates, inline namespaces omitted.
const (
	basicString     = "::std::basic_string"
	basicStringView = "::std::basic_string_view"
)

// Class is the classification of a static type.
type Class struct {
	Family Family
	// Record is the class template specialization, nil for [Other].
	Record *sema.Record
	// Char is the character type argument, nil for [Other].
	Char sema.Type
}

// Classify determines the family of t, looking through references, aliases and const qualifiers.
//
// Only specializations of the class templates themselves are recognized, never types
// derived from or structurally similar to them.
func Classify(t sema.Type) Class {
	rec, ok := sema.Unalias(sema.NonReference(t)).(*sema.Record)
	if !ok || rec.Decl == nil {
		return Class{}
	}

	family := templateFamily(rec.Decl)
	if family == Other {
		return Class{}
	}

	if len(rec.Args) != len(rec.Decl.TemplateParams) || rec.Args[0] == nil {
		return Class{}
	}

	return Class{Family: family, Record: rec, Char: rec.Args[0]}
}

// IsStringTemplate reports whether d is the std::basic_string class template.
func IsStringTemplate(d *sema.RecordDecl) bool { return templateFamily(d) == String }

func templateFamily(d *sema.RecordDecl) Family {
	if d == nil {
		return Other
	}

	switch n := len(d.TemplateParams); sema.QualifiedName(d) {
	case basicString:
		if n == 2 || n == 3 {
			return String
		}

	case basicStringView:
		if n == 2 {
			return StringView
		}
	}

	return Other
}

// IsString reports whether the type is a [String].
func IsString(t sema.Type) bool { return Classify(t).Family == String }

// Same reports whether c and o are the same [String] specialization.
func (c Class) Same(o Class) bool {
	return c.Family == String && o.Family == String && sema.Identical(c.Record, o.Record)
}

// SameChar reports whether c and o are recognized classes over the same character type.
func (c Class) SameChar(o Class) bool {
	return c.Family != Other && o.Family != Other && sema.Identical(c.Char, o.Char)
}

// LogValue implements [slog.LogValuer].
func (c Class) LogValue() slog.Value {
	if c.Family == Other {
		return slog.StringValue(c.Family.String())
	}

	return slog.GroupValue(
		slog.String("family", c.Family.String()),
		slog.String("char", c.Char.String()),
	)
}
