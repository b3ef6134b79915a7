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

package run

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"runtime/trace"
	"slices"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/redundantcstr/internal/classify"
	"fillmore-labs.com/redundantcstr/internal/config"
	"fillmore-labs.com/redundantcstr/internal/fix"
	"fillmore-labs.com/redundantcstr/internal/frontend"
	"fillmore-labs.com/redundantcstr/internal/match"
	"fillmore-labs.com/redundantcstr/internal/report"
	"fillmore-labs.com/redundantcstr/internal/resolve"
	"fillmore-labs.com/redundantcstr/internal/sema"
	"fillmore-labs.com/redundantcstr/internal/srcutil"
)

// Finding is a redundant accessor call.
type Finding = report.Finding

// Run executes the redundantcstr analyzer's pipeline on the C++ files of the package.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	r, err := r.Configured()
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "RedundantCStr")
	defer task.End()

	if p.Pkg != nil {
		trace.Log(ctx, "package", p.Pkg.Path())
	}

	loader := r.Loader
	if loader == nil {
		loader = frontend.DumpLoader{ReadSource: p.ReadFile}
	}

	for _, path := range p.OtherFiles {
		if !srcutil.IsCXX(path) {
			continue
		}

		u, err := loader.Load(ctx, path)
		if errors.Is(err, frontend.ErrNoDump) {
			continue
		}

		if err != nil {
			report.LoadError(p, path, err)

			continue
		}

		file := srcutil.NewFile(u.Path, u.Source)
		if !file.Valid() {
			report.LoadError(p, path, errors.New("source too large"))

			continue
		}

		findings := r.Analyze(ctx, u)
		if len(findings) == 0 {
			continue
		}

		report.Diagnostics(ctx, p, file.TokenFile(p.Fset), findings)
	}

	return nil, nil
}

// candidate is an accepted accessor call.
type candidate struct {
	call    match.AccessorCall
	outcome resolve.Outcome
}

// Analyze runs matcher, resolver and fix generator on the unit u and returns the findings in source order.
func (r *Options) Analyze(ctx context.Context, u *sema.Unit) []Finding {
	defer trace.StartRegion(ctx, "Analyze").End()

	log := r.logger().With(slog.String("path", u.Path))

	file := srcutil.NewFile(u.Path, u.Source)
	if file.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
		log.LogAttrs(ctx, slog.LevelDebug, "Skipping generated file")

		return nil
	}

	candidates := r.collect(ctx, log, u, file)
	if len(candidates) == 0 {
		return nil
	}

	return generate(ctx, u, candidates)
}

// collect finds the accepted accessor calls of u, in traversal order.
func (r *Options) collect(ctx context.Context, log *slog.Logger, u *sema.Unit, file srcutil.File) []candidate {
	defer trace.StartRegion(ctx, "Resolve").End()

	resolver := resolve.New(u, r.Allow, r.Behavior)
	nolint := r.Behavior.Enabled(config.HonorNoLint)

	var candidates []candidate

	u.Walk(func(c sema.Cursor) bool {
		a, ok := match.Find(c)
		if !ok || a.String.Family == classify.String && !a.OnString() {
			return true
		}

		outcome := resolver.Resolve(a, c)
		if !outcome.Accepted {
			log.LogAttrs(ctx, slog.LevelDebug, "Rejected", slog.Any("call", a), slog.Any("outcome", outcome))

			return true
		}

		if nolint && file.Suppressed(a.Call.Span().Begin) {
			log.LogAttrs(ctx, slog.LevelDebug, "Suppressed", slog.Any("call", a))

			return true
		}

		candidates = append(candidates, candidate{call: a, outcome: outcome})

		return true
	})

	return candidates
}

// generate creates the replacements. Replacements of calls within the receiver of another
// accepted call are folded into the enclosing replacement, overlapping ones are dropped.
func generate(ctx context.Context, u *sema.Unit, candidates []candidate) []Finding {
	defer trace.StartRegion(ctx, "Generate").End()

	findings := make([]Finding, len(candidates))
	folded := make([]bool, len(candidates))

	// traversal is top-down, so nested calls follow their container
	for i := len(candidates) - 1; i >= 0; i-- {
		a := candidates[i].call
		findings[i] = Finding{Call: a, Site: candidates[i].outcome.Site}

		receiver := a.Receiver.Span()

		var (
			nested []fix.Replacement
			inner  []int
		)

		for j := i + 1; j < len(candidates); j++ {
			if folded[j] || findings[j].Fix == nil || !receiver.Contains(findings[j].Fix.Range) {
				continue
			}

			nested = append(nested, *findings[j].Fix)
			inner = append(inner, j)
		}

		rep, ok := fix.Generate(u, a, nested)
		if !ok {
			continue
		}

		findings[i].Fix = &rep

		for _, j := range inner {
			folded[j] = true
			findings[j].Fix = nil
		}
	}

	_, dropped := fix.Select(withFix(findings), func(f *Finding) sema.Range { return f.Fix.Range })
	for _, f := range dropped {
		f.Fix = nil
	}

	slices.SortStableFunc(findings, func(a, b Finding) int {
		ra, rb := a.Range(), b.Range()

		return cmp.Or(cmp.Compare(ra.Begin, rb.Begin), cmp.Compare(ra.End, rb.End))
	})

	return findings
}

func withFix(findings []Finding) []*Finding {
	var fs []*Finding

	for i := range findings {
		if findings[i].Fix != nil {
			fs = append(fs, &findings[i])
		}
	}

	return fs
}
