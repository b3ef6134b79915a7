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
	"bytes"
	"regexp"
	"strings"
)

// comment is a line or block comment, Text including the comment markers.
type comment struct {
	Text       string
	Begin, End int
}

// scanComments returns the comments of src and the offset of the first code byte,
// len(src) when there is none. String and character literals are skipped.
func scanComments(src []byte) ([]comment, int) {
	var comments []comment

	code := -1
	mark := func(i int) {
		if code < 0 {
			code = i
		}
	}

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			end := len(src)
			if j := bytes.IndexByte(src[i:], '\n'); j >= 0 {
				end = i + j
			}

			comments = append(comments, comment{Text: string(src[i:end]), Begin: i, End: end})
			i = end

		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := len(src)
			if j := bytes.Index(src[i+2:], []byte("*/")); j >= 0 {
				end = i + 2 + j + 2
			}

			comments = append(comments, comment{Text: string(src[i:end]), Begin: i, End: end})
			i = end

		case c == '"' && i > 0 && src[i-1] == 'R':
			mark(i)
			i = skipRaw(src, i)

		case c == '\'' && digitSeparator(src, i):
			i++

		case c == '"' || c == '\'':
			mark(i)
			i = skipQuoted(src, i, c)

		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			i++

		default:
			mark(i)
			i++
		}
	}

	if code < 0 {
		code = len(src)
	}

	return comments, code
}

// skipQuoted returns the offset after the literal starting with quote at i.
func skipQuoted(src []byte, i int, quote byte) int {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++

		case quote:
			return j + 1

		case '\n':
			return j
		}
	}

	return len(src)
}

// digitSeparator reports whether the quote at i separates digits, as in 1'000.
func digitSeparator(src []byte, i int) bool {
	if i == 0 {
		return false
	}

	switch p := src[i-1]; {
	case p == '8':
		return i < 2 || src[i-2] != 'u'

	case '0' <= p && p <= '9', 'a' <= p && p <= 'f', 'A' <= p && p <= 'F':
		return true

	default:
		return false
	}
}

// skipRaw returns the offset after the raw string literal R"delim(...)delim" starting at i.
func skipRaw(src []byte, i int) int {
	open := bytes.IndexByte(src[i+1:], '(')
	if open < 0 {
		return len(src)
	}

	delim := src[i+1 : i+1+open]
	body := i + 1 + open + 1

	closing := append(append([]byte{')'}, delim...), '"')
	if j := bytes.Index(src[body:], closing); j >= 0 {
		return body + j + len(closing)
	}

	return len(src)
}

var generatedPattern = regexp.MustCompile(`^//\s*Code generated .* DO NOT EDIT\.$`)

// isGenerated reports whether a comment before the first code carries a generated-file marker.
func isGenerated(comments []comment, code int) bool {
	for _, c := range comments {
		if c.Begin > code {
			break
		}

		if strings.Contains(c.Text, "@generated") || generatedPattern.MatchString(strings.TrimSpace(c.Text)) {
			return true
		}
	}

	return false
}
