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

package gclplugin

import (
	"fillmore-labs.com/redundantcstr/analyzer"
	"fillmore-labs.com/redundantcstr/analyzer/level"
)

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// FormatFunctions replaces the formatting functions forwarding variadic arguments.
	FormatFunctions []string `json:"format-functions,omitzero"`
	// SinkTypes replaces the classes forwarding variadic arguments.
	SinkTypes []string `json:"sink-types,omitzero"`
	// StringParameterTypes replaces the parameter types constructible from a string.
	StringParameterTypes []string `json:"string-parameter-types,omitzero"`
	// Comparisons selects the comparison operators accepting a string.
	Comparisons *level.Comparison `json:"comparisons,omitzero"`
	// Generated enables diagnostics in generated files.
	Generated *bool `json:"generated,omitzero"`
	// NoLint enables NOLINT suppression comments.
	NoLint *bool `json:"nolint,omitzero"`
	// Config names a configuration file read when the analyzer runs.
	Config *string `json:"config,omitzero"`
}

// Options converts [Settings] into a list of [analyzer.Option] for the redundantcstr analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []analyzer.Option {
	var opts []analyzer.Option

	opts = appendList(opts, s.FormatFunctions, analyzer.WithFormatFunctions)
	opts = appendList(opts, s.SinkTypes, analyzer.WithSinkTypes)
	opts = appendList(opts, s.StringParameterTypes, analyzer.WithStringParameterTypes)
	opts = appendOption(opts, s.Comparisons, analyzer.WithComparisons)
	opts = appendOption(opts, s.Generated, analyzer.WithGenerated)
	opts = appendOption(opts, s.NoLint, analyzer.WithNoLint)
	opts = appendOption(opts, s.Config, analyzer.WithConfigFile)

	return opts
}

// appendOption appends a non-nil setting to an [analyzer.Option] list.
func appendOption[T any](opts []analyzer.Option, value *T, constructor func(T) analyzer.Option) []analyzer.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}

// appendList appends a non-nil list setting to an [analyzer.Option] list. An empty list clears the default.
func appendList(opts []analyzer.Option, names []string, constructor func(...string) analyzer.Option) []analyzer.Option {
	if names == nil {
		return opts
	}

	return append(opts, constructor(names...))
}
