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

package srcutil

import (
	"path"
	"regexp"
	"strings"
)

// CheckNames are the names a suppression comment can use for this check.
var CheckNames = []string{"redundantcstr", "readability-redundant-string-cstr"}

var nolintPattern = regexp.MustCompile(`\bNOLINT(NEXTLINE|BEGIN|END)?(\([^)]*\))?`)

// suppressions holds the lines covered by suppression comments.
type suppressions struct {
	lines  map[int]struct{}
	blocks [][2]int
}

func (s suppressions) covers(line int) bool {
	if _, ok := s.lines[line]; ok {
		return true
	}

	for _, b := range s.blocks {
		if b[0] <= line && line <= b[1] {
			return true
		}
	}

	return false
}

type openBlock struct {
	line   int
	checks string
}

// parseSuppressions collects clang-tidy style suppressions:
//
//	// NOLINT
//	// NOLINT(readability-redundant-string-cstr)
//	// NOLINTNEXTLINE(redundantcstr)
//	// NOLINTBEGIN(*) ... // NOLINTEND(*)
//
// A NOLINTBEGIN without a matching NOLINTEND suppresses nothing.
func (f File) parseSuppressions(comments []comment) suppressions {
	s := suppressions{lines: make(map[int]struct{})}

	var open []openBlock

	for _, c := range comments {
		line := f.line(c.Begin)

		for _, m := range nolintPattern.FindAllStringSubmatchIndex(c.Text, -1) {
			if end := m[1]; end < len(c.Text) && isWordByte(c.Text[end]) {
				continue
			}

			var kind, checks string
			if m[2] >= 0 {
				kind = c.Text[m[2]:m[3]]
			}

			if m[4] >= 0 {
				checks = c.Text[m[4]:m[5]]
			}

			if !CommentSuppresses(checks) {
				continue
			}

			switch kind {
			case "":
				s.lines[line] = struct{}{}

			case "NEXTLINE":
				s.lines[f.line(c.End)+1] = struct{}{}

			case "BEGIN":
				open = append(open, openBlock{line, checks})

			case "END":
				for i := len(open) - 1; i >= 0; i-- {
					if open[i].checks == checks {
						s.blocks = append(s.blocks, [2]int{open[i].line, line})
						open = append(open[:i], open[i+1:]...)

						break
					}
				}
			}
		}
	}

	return s
}

// CommentSuppresses checks if the check list of a NOLINT directive, like "(a,b-*)",
// names this check. An empty list suppresses all checks.
func CommentSuppresses(checks string) bool {
	checks = strings.TrimSuffix(strings.TrimPrefix(checks, "("), ")")
	if strings.TrimSpace(checks) == "" {
		return true
	}

	for check := range strings.SplitSeq(checks, ",") {
		check = strings.ToLower(strings.TrimSpace(check))
		if check == "all" {
			return true
		}

		for _, name := range CheckNames {
			if ok, _ := path.Match(check, name); ok {
				return true
			}
		}
	}

	return false
}

func isWordByte(b byte) bool {
	return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}
