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
	"fmt"
	"go/token"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/redundantcstr/internal/sema"
	"fillmore-labs.com/redundantcstr/internal/srcutil"
)

// InternalError reports a problem with the unit registered as tf at range r.
// The problem lies in the semantic dump or the analyzer, not in the analyzed code.
func InternalError(p *analysis.Pass, tf *token.File, r sema.Range, format string, args ...any) {
	msg := fmt.Appendf([]byte("Internal Error: "), format, args...)

	p.Report(analysis.Diagnostic{Pos: srcutil.Pos(tf, r.Begin), End: srcutil.Pos(tf, r.End), Message: string(msg)})
}

// LoadError reports a source file whose unit could not be loaded at the start of the file.
func LoadError(p *analysis.Pass, path string, err error) {
	var src []byte
	if p.ReadFile != nil {
		src, _ = p.ReadFile(path)
	}

	tf := srcutil.NewFile(path, src).TokenFile(p.Fset)

	InternalError(p, tf, sema.Range{}, "Can't load %s: %v", path, err)
}
