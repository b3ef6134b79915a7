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
	"go/token"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// Position is a 1-based line and byte column.
type Position struct {
	Line, Column int
}

// File holds the source information of a translation unit needed for reporting.
type File struct {
	path      string
	src       []byte
	lines     []int // start offsets
	generated bool
	nolint    suppressions
}

// NewFile creates a new [File] from the unit path and its source.
func NewFile(path string, src []byte) File {
	if _, err := safecast.Conv[uint32](len(src)); err != nil {
		return File{}
	}

	lines := []int{0}

	for i, b := range src {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}

	f := File{path: path, src: src, lines: lines}

	comments, code := scanComments(src)

	f.generated = isGenerated(comments, code)
	f.nolint = f.parseSuppressions(comments)

	return f
}

// Valid returns true if the [File] was successfully created.
func (f File) Valid() bool {
	return f.lines != nil
}

// Path returns the file name.
func (f File) Path() string {
	return f.path
}

// Generated returns true if the file is marked as generated.
func (f File) Generated() bool {
	return f.generated
}

// Position returns the position of the byte offset off.
func (f File) Position(off uint32) Position {
	o := min(int(off), len(f.src))
	line := f.line(o)

	return Position{Line: line, Column: o - f.lines[line-1] + 1}
}

// line returns the 1-based line of offset off.
func (f File) line(off int) int {
	i, found := slices.BinarySearch(f.lines, off)
	if found {
		return i + 1
	}

	return i
}

// Line returns the text of the 1-based line n without its line terminator.
func (f File) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}

	end := len(f.src)
	if n < len(f.lines) {
		end = f.lines[n] - 1
	}

	return string(bytes.TrimSuffix(f.src[f.lines[n-1]:end], []byte{'\r'}))
}

// Suppressed returns true if a suppression comment covers the line of offset off.
func (f File) Suppressed(off uint32) bool {
	if !f.Valid() {
		return false
	}

	return f.nolint.covers(f.line(min(int(off), len(f.src))))
}

// TokenFile registers the file in fset, so byte offsets map to [token.Pos] values.
func (f File) TokenFile(fset *token.FileSet) *token.File {
	tf := fset.AddFile(f.path, -1, len(f.src))
	tf.SetLinesForContent(f.src)

	return tf
}

// Pos converts the offset off into a position in tf.
func Pos(tf *token.File, off uint32) token.Pos {
	return tf.Pos(min(int(off), tf.Size()))
}

// cxxExtensions lists the file name extensions of C++ sources and headers.
var cxxExtensions = []string{".cc", ".cpp", ".cxx", ".c++", ".cp", ".hh", ".hpp", ".hxx", ".h++", ".h", ".ipp", ".inl", ".tcc"}

// IsCXX returns true if path names a C++ source or header file.
func IsCXX(path string) bool {
	ext := filepath.Ext(path)
	if ext == ".C" || ext == ".H" {
		return true
	}

	return slices.Contains(cxxExtensions, strings.ToLower(ext))
}
