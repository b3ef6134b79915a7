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

package report

import (
	"context"
	"go/token"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/redundantcstr/internal/resolve"
	"fillmore-labs.com/redundantcstr/internal/sema"
	"fillmore-labs.com/redundantcstr/internal/srcutil"
)

// Diagnostics reports the findings of a unit whose source is registered as tf.
func Diagnostics(ctx context.Context, p *analysis.Pass, tf *token.File, findings []Finding) {
	defer trace.StartRegion(ctx, "Report").End()

	for _, f := range findings {
		p.Report(Diagnostic(tf, f))
	}
}

// Diagnostic converts a finding into an [analysis.Diagnostic] with at most one suggested fix.
func Diagnostic(tf *token.File, f Finding) analysis.Diagnostic {
	r := Span(tf, f.Range())

	diagnostic := analysis.Diagnostic{
		Pos:     r.Pos(),
		End:     r.End(),
		Message: f.Message(),
	}

	if site := f.Site.Node; site != nil {
		s := Span(tf, site.Span())
		diagnostic.Related = []analysis.RelatedInformation{{
			Pos:     s.Pos(),
			End:     s.End(),
			Message: relatedMessage(f.Site.Kind),
		}}
	}

	if f.Fix != nil {
		fr := Span(tf, f.Fix.Range)
		diagnostic.SuggestedFixes = []analysis.SuggestedFix{{
			Message:   diagnostic.Message,
			TextEdits: []analysis.TextEdit{{Pos: fr.Pos(), End: fr.End(), NewText: []byte(f.Fix.Text)}},
		}}
	}

	return diagnostic
}

func relatedMessage(kind resolve.UseSiteKind) string {
	switch kind {
	case resolve.Assignment:
		return "Assigned here"

	case resolve.Comparison:
		return "Compared here"

	case resolve.Concatenation:
		return "Concatenated here"

	case resolve.Construction:
		return "Initialized here"

	case resolve.Return:
		return "Returned here"

	default:
		return "Passed to this call"
	}
}

// Span converts the byte range r into an [analysis.Range] in tf.
func Span(tf *token.File, r sema.Range) analysis.Range {
	return span{srcutil.Pos(tf, r.Begin), srcutil.Pos(tf, r.End)}
}

type span struct{ pos, end token.Pos }

func (s span) Pos() token.Pos { return s.pos }

func (s span) End() token.Pos { return s.end }
