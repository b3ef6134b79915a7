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
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fillmore-labs.com/redundantcstr/internal/fix"
	"fillmore-labs.com/redundantcstr/internal/report"
)

func (a *app) newFixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fix DUMP...",
		Short: "Rewrite the source files in place",
		Long:  "Remove the redundant calls from the source files. The dumps are stale afterwards.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.fix,
	}
}

// errStaleSource is returned when a source file differs from the source of its dump.
var errStaleSource = errors.New("source file changed since the dump was written")

// rewrite is the fixed content of a source file.
type rewrite struct {
	path  string
	data  []byte
	calls int
}

func (a *app) fix(cmd *cobra.Command, args []string) error {
	results, err := a.analyze(cmd.Context(), args)
	if err != nil {
		return err
	}

	var rewrites []rewrite

	for _, r := range results {
		reps := report.Fixes(r.findings)
		if len(reps) == 0 {
			continue
		}

		if err := checkSource(r.unit.Path, r.unit.Source); err != nil {
			return err
		}

		fixed, err := fix.Apply(r.unit.Source, reps)
		if err != nil {
			return fmt.Errorf("%s: %w", r.unit.Path, err)
		}

		rewrites = append(rewrites, rewrite{path: r.unit.Path, data: fixed, calls: len(reps)})
	}

	for _, rw := range rewrites {
		if err := writeSource(rw.path, rw.data); err != nil {
			return err
		}

		a.logger.LogAttrs(cmd.Context(), slog.LevelInfo, "Fixed", slog.String("path", rw.path), slog.Int("calls", rw.calls))
		cmd.Printf("%s: removed %d redundant call(s)\n", rw.path, rw.calls)
	}

	return nil
}

// checkSource verifies that the file at path still holds the analyzed source.
func checkSource(path string, analyzed []byte) error {
	current, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("can't read source: %w", err)
	}

	if !bytes.Equal(current, analyzed) {
		return fmt.Errorf("%s: %w", path, errStaleSource)
	}

	return nil
}

// writeSource replaces the content of the file at path, keeping its permissions.
func writeSource(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("can't write source: %w", err)
	}

	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("can't write source: %w", err)
	}

	return nil
}
