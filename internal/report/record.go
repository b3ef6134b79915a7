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

package report

import (
	"fmt"

	"fillmore-labs.com/redundantcstr/internal/fix"
	"fillmore-labs.com/redundantcstr/internal/srcutil"
)

// Record is a finding located by line and column.
type Record struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Kind    string `json:"kind"`
	Site    string `json:"site"`
	Message string `json:"message"`
	// Fix is the replacement, nil when the finding has none of its own.
	Fix *fix.Replacement `json:"fix,omitempty"`
}

// String formats the record as "path:line:col: message".
func (r Record) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", r.Path, r.Line, r.Column, r.Message)
}

// Records locates the findings of a unit in file.
func Records(file srcutil.File, findings []Finding) []Record {
	records := make([]Record, 0, len(findings))

	for _, f := range findings {
		pos := file.Position(f.Range().Begin)

		records = append(records, Record{
			Path:    file.Path(),
			Line:    pos.Line,
			Column:  pos.Column,
			Kind:    f.Call.Kind.String(),
			Site:    f.Site.Kind.String(),
			Message: f.Message(),
			Fix:     f.Fix,
		})
	}

	return records
}

// Fixes returns the replacements of the findings.
func Fixes(findings []Finding) []fix.Replacement {
	var reps []fix.Replacement

	for _, f := range findings {
		if f.Fix != nil {
			reps = append(reps, *f.Fix)
		}
	}

	return reps
}
