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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/redundantcstr/internal/frontend"
	"fillmore-labs.com/redundantcstr/internal/run"
	"fillmore-labs.com/redundantcstr/internal/sema"
)

// errFindings is returned by "check --fail" when there are findings.
var errFindings = errors.New("redundant accessor calls found")

const rootLongDescription = `Cstrfix finds calls to c_str() and data() on std::basic_string whose
result is passed to something accepting the string itself, and removes them.

Each argument is a resolved semantic dump written by a compiler front end,
"<file>.sema.json" or "<file>.sema.msgpack". The source file is read from
the dump or from the dump name without its suffix.`

// app holds the state shared by the commands of one invocation.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
	closer io.Closer
}

func newApp() *app {
	return &app{v: newViper()}
}

// execute runs the command line args. The log file is closed afterwards, also on errors.
func (a *app) execute(args []string, stdout, stderr io.Writer) error {
	defer a.close()

	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd.Execute()
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:              "cstrfix",
		Short:            "Remove redundant c_str() and data() calls",
		Long:             rootLongDescription,
		SilenceErrors:    true,
		SilenceUsage:     true,
		PersistentPreRun: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(configFlagName, "", "read analyzer settings from a YAML, TOML or JSON file")
	flags.IntP(parallelFlagName, "p", a.v.GetInt(parallelFlagName), "number of units analyzed in parallel")
	flags.Bool(noColorFlagName, false, "disable colored output")
	flags.String(logFileFlagName, "", "write logs to a rotated file instead of stderr")
	flags.BoolP(verboseFlagName, "v", false, "log rejected and suppressed calls")

	for _, name := range []string{configFlagName, parallelFlagName, noColorFlagName, logFileFlagName, verboseFlagName} {
		bindFlag(a.v, flags.Lookup(name), name)
	}

	cmd.AddCommand(a.newCheckCmd(), a.newDiffCmd(), a.newFixCmd(), newVersionCmd())

	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) {
	a.logger, a.closer = configureLogger(a.v, cmd.ErrOrStderr(), a.v.GetString(logFileFlagName), a.v.GetBool(verboseFlagName))
}

func (a *app) close() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}

// color returns a color for terminal output, disabled with --no-color.
func (a *app) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if a.v.GetBool(noColorFlagName) {
		c.DisableColor()
	}

	return c
}

// options returns the analyzer options, with the configuration file applied.
func (a *app) options() (*run.Options, error) {
	o := run.DefaultOptions()
	o.Logger = a.logger
	o.ConfigFile = a.v.GetString(configFlagName)

	return o.Configured()
}

// result holds the findings of one dump.
type result struct {
	dump     string
	unit     *sema.Unit
	findings []run.Finding
}

// analyze loads and analyzes the dumps in parallel. The results are in argument order.
func (a *app) analyze(ctx context.Context, dumps []string) ([]result, error) {
	o, err := a.options()
	if err != nil {
		return nil, err
	}

	a.logger.LogAttrs(ctx, slog.LevelDebug, "Analyzing", slog.Int("units", len(dumps)), slog.Any("options", o))

	results := make([]result, len(dumps))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, a.v.GetInt(parallelFlagName)))

	for i, dump := range dumps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			u, err := frontend.LoadDump(dump)
			if err != nil {
				return err
			}

			results[i] = result{dump: dump, unit: u, findings: o.Analyze(ctx, u)}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	return results, nil
}
