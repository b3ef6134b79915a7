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
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"fillmore-labs.com/redundantcstr/internal/fix"
	"fillmore-labs.com/redundantcstr/internal/report"
)

func (a *app) newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff DUMP...",
		Short: "Show the proposed rewrite as a unified diff",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.diff,
	}
}

func (a *app) diff(cmd *cobra.Command, args []string) error {
	results, err := a.analyze(cmd.Context(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	added := a.color(color.FgGreen)
	removed := a.color(color.FgRed)
	hunk := a.color(color.FgCyan)

	for _, r := range results {
		text, err := unifiedDiff(r)
		if err != nil {
			return err
		}

		for line := range strings.Lines(text) {
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
				fmt.Fprint(out, line)

			case strings.HasPrefix(line, "+"):
				added.Fprint(out, line)

			case strings.HasPrefix(line, "-"):
				removed.Fprint(out, line)

			case strings.HasPrefix(line, "@@"):
				hunk.Fprint(out, line)

			default:
				fmt.Fprint(out, line)
			}
		}
	}

	return nil
}

// unifiedDiff returns the diff between the source of r and its rewrite, empty without fixes.
func unifiedDiff(r result) (string, error) {
	reps := report.Fixes(r.findings)
	if len(reps) == 0 {
		return "", nil
	}

	fixed, err := fix.Apply(r.unit.Source, reps)
	if err != nil {
		return "", fmt.Errorf("%s: %w", r.unit.Path, err)
	}

	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(r.unit.Source)),
		B:        difflib.SplitLines(string(fixed)),
		FromFile: r.unit.Path,
		ToFile:   r.unit.Path,
		Context:  3,
	}

	return difflib.GetUnifiedDiffString(d)
}
