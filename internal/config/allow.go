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

package config

import (
	"log/slog"
	"slices"
	"strings"
)

// AllowLists are the externally supplied name sets consulted by the resolver.
//
// All names are fully qualified with a leading "::". Inline namespaces may be present or omitted.
type AllowLists struct {
	// FormatFunctions are free functions forwarding variadic arguments to a formatter, e.g. "::fmt::print".
	FormatFunctions []string
	// SinkTypes are classes whose call operator and members forward variadic arguments.
	// An entry "::Type" allows every member, "::Type::method" only the named one.
	SinkTypes []string
	// StringParameterTypes are classes implicitly constructible from a string reference
	// without copying, e.g. "::llvm::StringRef".
	StringParameterTypes []string
}

// DefaultAllowLists returns the names accepted without configuration.
func DefaultAllowLists() AllowLists {
	return AllowLists{
		FormatFunctions:      []string{"::fmt::format", "::fmt::print", "::std::format", "::std::print"},
		StringParameterTypes: []string{"::llvm::StringRef"},
	}
}

// Normalize returns a copy with trimmed, "::"-prefixed, sorted and deduplicated names.
func (a AllowLists) Normalize() AllowLists {
	return AllowLists{
		FormatFunctions:      NormalizeNames(a.FormatFunctions),
		SinkTypes:            NormalizeNames(a.SinkTypes),
		StringParameterTypes: NormalizeNames(a.StringParameterTypes),
	}
}

// NormalizeNames qualifies names with a leading "::", dropping empty entries and duplicates.
// Entries may contain several names separated by ';', like clang-tidy option values.
func NormalizeNames(names []string) []string {
	var result []string

	for _, entry := range names {
		for name := range strings.SplitSeq(entry, ";") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}

			if !strings.HasPrefix(name, "::") {
				name = "::" + name
			}

			result = append(result, name)
		}
	}

	slices.Sort(result)

	return slices.Compact(result)
}

// LogValue implements [slog.LogValuer].
func (a AllowLists) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("format-functions", a.FormatFunctions),
		slog.Any("sink-types", a.SinkTypes),
		slog.Any("string-parameter-types", a.StringParameterTypes),
	)
}
