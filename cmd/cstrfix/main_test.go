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

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/redundantcstr/internal/frontend"
	"fillmore-labs.com/redundantcstr/internal/report"
	"fillmore-labs.com/redundantcstr/internal/sema"
	tu "fillmore-labs.com/redundantcstr/internal/testunit"
)

// writeUnit writes a C++ source file and its semantic dump into dir and returns the dump and source paths.
func writeUnit(t *testing.T, dir string) (dump, source string) {
	t.Helper()

	b := tu.New(t).Path("unit.cc")
	std := b.Std()

	s := tu.Param("s", tu.ConstRef(std.String))
	ptr := tu.Param("ptr", tu.PtrTo(std.String))

	f1 := b.Func(nil, "f1", std.Void, tu.Param("p", tu.ConstRef(std.String)))
	fptr := b.Func(nil, "fptr", std.Void, tu.Param("p", std.CharPtr()))

	b.Define(b.Func(nil, "g", std.Void, s, ptr),
		tu.Expr(tu.Call(f1, std.CStrOf(tu.Use(s)))),
		tu.Expr(tu.Call(f1, std.DataOf(tu.Use(ptr)))),
		tu.Expr(tu.Call(fptr, std.CStrOf(tu.Use(s)))),
	)

	u := b.Build()

	source = filepath.Join(dir, "unit.cc")
	require.NoError(t, os.WriteFile(source, u.Source, 0o600))

	v := *u
	v.Source = nil

	var buf bytes.Buffer
	require.NoError(t, sema.Encode(&buf, &v, sema.JSON))

	dump = source + ".sema.json"
	require.NoError(t, os.WriteFile(dump, buf.Bytes(), 0o600))

	return dump, source
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	// cobra falls back to os.Args for nil arguments.
	err := newApp().execute(append([]string{}, args...), &out, &out)

	return out.String(), err
}

func TestCheck(t *testing.T) {
	dump, source := writeUnit(t, t.TempDir())

	output, err := execute(t, "check", "--no-color", dump)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, source+":2:6: redundant call to 'c_str' (rc:arg) -> s", lines[0])
	assert.Equal(t, source+":3:6: redundant call to 'data' (rc:arg) -> *ptr", lines[1])
}

func TestCheckFail(t *testing.T) {
	dump, _ := writeUnit(t, t.TempDir())

	_, err := execute(t, "check", "--no-color", "--fail", dump)
	require.ErrorIs(t, err, errFindings)
}

func TestCheckFailFromEnv(t *testing.T) {
	t.Setenv("CSTRFIX_CHECK_FAIL", "true")
	t.Setenv("CSTRFIX_NO_COLOR", "1")

	dump, _ := writeUnit(t, t.TempDir())

	_, err := execute(t, "check", dump)
	require.ErrorIs(t, err, errFindings)
}

func TestCheckJSON(t *testing.T) {
	dump, source := writeUnit(t, t.TempDir())

	output, err := execute(t, "check", "--json", dump)
	require.NoError(t, err)

	var records []report.Record

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		var r report.Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))

		records = append(records, r)
	}

	require.Len(t, records, 2)
	assert.Equal(t, source, records[0].Path)
	assert.Equal(t, "c_str", records[0].Kind)
	assert.Equal(t, "data", records[1].Kind)
	assert.Equal(t, "arg", records[1].Site)
	require.NotNil(t, records[1].Fix)
	assert.Equal(t, "*ptr", records[1].Fix.Text)
}

func TestCheckSummary(t *testing.T) {
	dump, source := writeUnit(t, t.TempDir())

	output, err := execute(t, "check", "--no-color", "--summary", dump)
	require.NoError(t, err)

	assert.Contains(t, output, source)
	assert.Contains(t, strings.ToUpper(output), "TOTAL FILES 1")
}

func TestDiff(t *testing.T) {
	dump, source := writeUnit(t, t.TempDir())

	output, err := execute(t, "diff", "--no-color", dump)
	require.NoError(t, err)

	assert.Contains(t, output, "--- "+source+"\n")
	assert.Contains(t, output, "-  f1(s.c_str());\n")
	assert.Contains(t, output, "+  f1(s);\n")
	assert.Contains(t, output, "+  f1(*ptr);\n")
	assert.NotContains(t, output, "+  fptr(s);")
}

func TestFix(t *testing.T) {
	dump, source := writeUnit(t, t.TempDir())

	original, err := os.ReadFile(source)
	require.NoError(t, err)

	output, err := execute(t, "fix", "-p", "1", dump)
	require.NoError(t, err)
	assert.Contains(t, output, "removed 2 redundant call(s)")

	fixed, err := os.ReadFile(source)
	require.NoError(t, err)

	want := strings.NewReplacer("f1(s.c_str())", "f1(s)", "f1(ptr->data())", "f1(*ptr)").Replace(string(original))
	assert.Equal(t, want, string(fixed))
}

// embedSource rewrites dump with the source text included.
func embedSource(t *testing.T, dump string) {
	t.Helper()

	u, err := frontend.LoadDump(dump)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, sema.Encode(&buf, u, sema.JSON))
	require.NoError(t, os.WriteFile(dump, buf.Bytes(), 0o600))
}

func TestFixEmbeddedSource(t *testing.T) {
	dump, source := writeUnit(t, t.TempDir())
	embedSource(t, dump)

	output, err := execute(t, "fix", dump)
	require.NoError(t, err)
	assert.Contains(t, output, "removed 2 redundant call(s)")

	fixed, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Contains(t, string(fixed), "f1(s)")
}

func TestFixStaleSource(t *testing.T) {
	dir := t.TempDir()
	dump, source := writeUnit(t, dir)
	embedSource(t, dump)

	other, otherSource := writeUnit(t, t.TempDir())

	original, err := os.ReadFile(otherSource)
	require.NoError(t, err)

	edited := append([]byte("// edited\n"), original...)
	require.NoError(t, os.WriteFile(source, edited, 0o600))

	_, err = execute(t, "fix", other, dump)
	require.ErrorIs(t, err, errStaleSource)

	content, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, string(edited), string(content))

	untouched, err := os.ReadFile(otherSource)
	require.NoError(t, err)
	assert.Equal(t, string(original), string(untouched))
}

func TestParallelOrder(t *testing.T) {
	first, firstSource := writeUnit(t, t.TempDir())
	second, secondSource := writeUnit(t, t.TempDir())

	output, err := execute(t, "check", "--no-color", "--parallel", "2", first, second)
	require.NoError(t, err)

	i, j := strings.Index(output, firstSource), strings.Index(output, secondSource)
	require.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, j)
}

func TestErrors(t *testing.T) {
	dump, _ := writeUnit(t, t.TempDir())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing dump", []string{"check", filepath.Join(t.TempDir(), "none.cc.sema.json")}, "can't read dump"},
		{"missing config", []string{"check", "--config", filepath.Join(t.TempDir(), "none.yaml"), dump}, "can't read configuration"},
		{"no arguments", []string{"diff"}, "requires at least 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLogFile(t *testing.T) {
	dir := t.TempDir()
	dump, _ := writeUnit(t, dir)
	logFile := filepath.Join(dir, "cstrfix.log")

	_, err := execute(t, "check", "--no-color", "--verbose", "--log-file", logFile, dump)
	require.NoError(t, err)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Rejected")
}

func TestLogFileClosedOnFailure(t *testing.T) {
	dir := t.TempDir()
	dump, _ := writeUnit(t, dir)
	logFile := filepath.Join(dir, "cstrfix.log")

	a := newApp()

	var out bytes.Buffer
	err := a.execute([]string{"check", "--no-color", "--fail", "--verbose", "--log-file", logFile, dump}, &out, &out)
	require.ErrorIs(t, err, errFindings)

	assert.NotNil(t, a.logger)
	assert.Nil(t, a.closer)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Rejected")
}

func TestVersionCmd(t *testing.T) {
	output, err := execute(t, "version")
	require.NoError(t, err)

	if strings.Contains(output, "version: unknown") {
		return
	}

	assert.Contains(t, output, "tool version")
	assert.Contains(t, output, "go version")
}

func TestRootHelp(t *testing.T) {
	output, err := execute(t)
	require.NoError(t, err)

	assert.Contains(t, output, "cstrfix")
	assert.Contains(t, output, "check")
	assert.Contains(t, output, "--parallel")
}
