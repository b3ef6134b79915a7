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

// Package frontend loads resolved translation units produced by an external C++ front end.
//
// The front end writes one semantic dump per source file next to it, "x.cc.sema.json" or
// "x.cc.sema.msgpack". Dumps may embed the source text; otherwise it is read from the
// source file.
package frontend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"fillmore-labs.com/redundantcstr/internal/sema"
)

// ErrNoDump is returned when a source file has no semantic dump.
var ErrNoDump = errors.New("no semantic dump")

// DumpSuffixes are the file name suffixes of semantic dumps, in lookup order.
var DumpSuffixes = []string{".sema.json", ".sema.msgpack"}

// Loader provides the resolved unit of a source file.
type Loader interface {
	Load(ctx context.Context, path string) (*sema.Unit, error)
}

// ReadFileFunc reads a file.
type ReadFileFunc func(name string) ([]byte, error)

// DumpLoader loads the semantic dumps stored next to the source files.
type DumpLoader struct {
	// ReadSource reads source files, [os.ReadFile] when nil.
	ReadSource ReadFileFunc
	// ReadDump reads dump files, [os.ReadFile] when nil.
	ReadDump ReadFileFunc
}

var _ Loader = DumpLoader{}

// Load implements [Loader]. It returns an error wrapping [ErrNoDump] when no dump exists for path.
func (l DumpLoader) Load(ctx context.Context, path string) (*sema.Unit, error) {
	readDump := orReadFile(l.ReadDump)

	for _, suffix := range DumpSuffixes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := path + suffix

		data, err := readDump(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("can't read dump %s: %w", name, err)
		}

		u, err := decode(name, data)
		if err != nil {
			return nil, err
		}

		if err := complete(u, path, orReadFile(l.ReadSource)); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		return u, nil
	}

	return nil, fmt.Errorf("%w for %s", ErrNoDump, path)
}

// LoadDump reads the dump file name. The source is taken from the dump, or from the unit path
// resolved relative to the dump, or from the dump name without its suffix.
func LoadDump(name string) (*sema.Unit, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("can't read dump: %w", err)
	}

	u, err := decode(name, data)
	if err != nil {
		return nil, err
	}

	path := SourcePath(name)

	switch {
	case u.Path == "":

	case filepath.IsAbs(u.Path):
		path = u.Path

	default:
		path = filepath.Join(filepath.Dir(name), u.Path)
	}

	if err := complete(u, path, os.ReadFile); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return u, nil
}

// SourcePath returns the source file name of a dump file name.
func SourcePath(dump string) string {
	for _, suffix := range DumpSuffixes {
		if src, ok := strings.CutSuffix(dump, suffix); ok {
			return src
		}
	}

	return dump
}

// IsDump returns true if name is a semantic dump file name.
func IsDump(name string) bool {
	return SourcePath(name) != name
}

func decode(name string, data []byte) (*sema.Unit, error) {
	format, ok := sema.FormatOf(name)
	if !ok {
		return nil, fmt.Errorf("%s: unknown dump format", name)
	}

	u, err := sema.Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return u, nil
}

// complete sets the path of u, reads a missing source and validates the node ranges against it.
func complete(u *sema.Unit, path string, readSource ReadFileFunc) error {
	u.Path = path

	if len(u.Source) > 0 {
		return nil
	}

	src, err := readSource(path)
	if err != nil {
		return fmt.Errorf("can't read source: %w", err)
	}

	u.Source = src

	return u.Validate()
}

func orReadFile(f ReadFileFunc) ReadFileFunc {
	if f == nil {
		return os.ReadFile
	}

	return f
}
