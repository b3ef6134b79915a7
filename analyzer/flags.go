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
	"flag"

	"fillmore-labs.com/redundantcstr/internal/config"
	"fillmore-labs.com/redundantcstr/internal/run"
)

// registerFlags binds the [run.Options] values to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(r *run.Options, flags *flag.FlagSet) {
	if flags == nil {
		flags = flag.CommandLine
	}

	flags.Var(NewListValue(&r.Allow.FormatFunctions), "format-functions",
		"comma separated formatting functions forwarding variadic arguments")
	flags.Var(NewListValue(&r.Allow.SinkTypes), "sink-types",
		"comma separated classes forwarding variadic arguments, or Class::method members")
	flags.Var(NewListValue(&r.Allow.StringParameterTypes), "string-parameter-types",
		"comma separated parameter types implicitly constructible from a string")
	flags.Var(NewComparisonValue(&r.Behavior), "comparisons",
		"string comparison operators accepting a string: equality or relational")
	flags.Var(NewBehaviorValue(&r.Behavior, config.IncludeGenerated), "generated", "check generated files")
	flags.Var(NewBehaviorValue(&r.Behavior, config.HonorNoLint), "nolint", "honor NOLINT comments")
	flags.StringVar(&r.ConfigFile, "config", r.ConfigFile, "read settings from a YAML, TOML or JSON file")
}
