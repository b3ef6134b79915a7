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

// Package report converts findings into diagnostics and plain records.
package report

import (
	"fmt"
	"log/slog"

	"fillmore-labs.com/redundantcstr/internal/fix"
	"fillmore-labs.com/redundantcstr/internal/match"
	"fillmore-labs.com/redundantcstr/internal/resolve"
	"fillmore-labs.com/redundantcstr/internal/sema"
)

// Finding is a redundant accessor call.
type Finding struct {
	Call match.AccessorCall
	Site resolve.UseSite

	// Fix removes the accessor call. It is nil when an enclosing fix already covers the call
	// or the replacement overlaps an earlier one.
	Fix *fix.Replacement
}

// Range returns the source range of the accessor call.
func (f Finding) Range() sema.Range {
	return f.Call.Call.Span()
}

// Message returns the diagnostic message, like "redundant call to 'c_str' (rc:arg)".
func (f Finding) Message() string {
	return fmt.Sprintf("redundant call to '%s' (rc:%s)", f.Call.Kind, f.Site.Kind)
}

// LogValue implements [slog.LogValuer].
func (f Finding) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("call", f.Call),
		slog.String("site", f.Site.Kind.String()),
		slog.Bool("fix", f.Fix != nil),
	)
}
