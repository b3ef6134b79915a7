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
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"fillmore-labs.com/redundantcstr/internal/match"
	"fillmore-labs.com/redundantcstr/internal/report"
	"fillmore-labs.com/redundantcstr/internal/srcutil"
)

func (a *app) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check DUMP...",
		Short: "Report redundant accessor calls",
		Long:  "Print every redundant c_str() and data() call as \"path:line:col: message\".",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.check,
	}

	cmd.Flags().Bool(summaryFlagName, false, "print a table of findings per file")
	cmd.Flags().Bool(failFlagName, false, "exit with status 1 when there are findings")
	cmd.Flags().Bool(jsonFlagName, false, "print findings as JSON lines")

	bindFlag(a.v, cmd.Flags().Lookup(summaryFlagName), checkSummaryKey)
	bindFlag(a.v, cmd.Flags().Lookup(failFlagName), checkFailKey)
	bindFlag(a.v, cmd.Flags().Lookup(jsonFlagName), checkJSONKey)

	return cmd
}

func (a *app) check(cmd *cobra.Command, args []string) error {
	results, err := a.analyze(cmd.Context(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)

	location := a.color(color.Bold)
	message := a.color(color.FgYellow)
	replacement := a.color(color.FgGreen)

	var total int

	for _, r := range results {
		records := report.Records(srcutil.NewFile(r.unit.Path, r.unit.Source), r.findings)
		total += len(records)

		for _, rec := range records {
			if a.v.GetBool(checkJSONKey) {
				if err := enc.Encode(rec); err != nil {
					return err
				}

				continue
			}

			location.Fprintf(out, "%s:%d:%d:", rec.Path, rec.Line, rec.Column)
			fmt.Fprint(out, " ")
			message.Fprint(out, rec.Message)

			if rec.Fix != nil {
				fmt.Fprint(out, " ")
				replacement.Fprintf(out, "-> %s", rec.Fix.Text)
			}

			fmt.Fprintln(out)
		}
	}

	if a.v.GetBool(checkSummaryKey) {
		renderSummary(out, results)
	}

	if total > 0 && a.v.GetBool(checkFailKey) {
		return errFindings
	}

	return nil
}

// renderSummary prints the number of findings per file and accessor.
func renderSummary(w io.Writer, results []result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "c_str", "data", "Fixes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	var cstr, data, fixes int

	for _, r := range results {
		var c, d, f int

		for _, finding := range r.findings {
			switch finding.Call.Kind {
			case match.ToCStr:
				c++

			case match.ToData:
				d++
			}

			if finding.Fix != nil {
				f++
			}
		}

		table.Append([]string{r.unit.Path, strconv.Itoa(c), strconv.Itoa(d), strconv.Itoa(f)})

		cstr, data, fixes = cstr+c, data+d, fixes+f
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(results)),
		strconv.Itoa(cstr), strconv.Itoa(data), strconv.Itoa(fixes),
	})

	table.Render()
}
