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

package analyzer

import (
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/redundantcstr/internal/run"
)

// Public API constants for the redundantcstr analyzer.
const (
	name = "redundantcstr"
	doc  = `redundantcstr detects redundant c_str() and data() calls on std::basic_string

The analyzer reads the resolved semantic trees of the C++ files in a package,
produced next to each source file as "<file>.sema.json" or "<file>.sema.msgpack",
and reports accessor calls whose consumer accepts the string itself.`
	url = "https://pkg.go.dev/fillmore-labs.com/redundantcstr"
)

// New creates a new instance of the redundantcstr analyzer.
// It allows for programmatic configuration using [Option], which is useful
// for integrating the analyzer into other tools. For command-line use, the
// pre-configured [Analyzer] variable is typically sufficient.
func New(opts ...Option) *analysis.Analyzer {
	r := run.DefaultOptions()
	Options(opts).apply(r)

	a := &analysis.Analyzer{
		Name: name,
		Doc:  doc,
		URL:  url,
		Run:  r.Run,
	}

	registerFlags(r, &a.Flags)

	return a
}

// Analyzer is a pre-configured *[analysis.Analyzer] for detecting redundant string accessor calls.
var Analyzer = New()
