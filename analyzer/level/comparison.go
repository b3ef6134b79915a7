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

// Package level defines text-marshalled option levels shared by flags and configuration files.
package level

import (
	"fmt"
	"strings"
)

// Comparison specifies which string comparison operators accept a string directly.
type Comparison uint8

const (
	// ComparisonEquality accepts == and !=.
	ComparisonEquality Comparison = iota

	// ComparisonRelational additionally accepts <, >, <= and >=.
	ComparisonRelational
)

// MarshalText implements [encoding.TextMarshaler].
func (o Comparison) MarshalText() ([]byte, error) {
	switch o {
	case ComparisonEquality:
		return []byte("equality"), nil

	case ComparisonRelational:
		return []byte("relational"), nil

	default:
		return nil, fmt.Errorf("unknown comparison level %d", o)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Comparison) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "equality", "eq":
		*o = ComparisonEquality

	case "relational", "all":
		*o = ComparisonRelational

	default:
		return fmt.Errorf("unknown comparison level %q", string(text))
	}

	return nil
}

// String returns the text form of the level.
func (o Comparison) String() string {
	b, err := o.MarshalText()
	if err != nil {
		return fmt.Sprintf("Comparison(%d)", o)
	}

	return string(b)
}
