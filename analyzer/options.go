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
	"log/slog"
	"slices"

	"fillmore-labs.com/redundantcstr/analyzer/level"
	"fillmore-labs.com/redundantcstr/internal/config"
	"fillmore-labs.com/redundantcstr/internal/run"
)

// Option configures specific behavior of a [New] redundantcstr analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithFormatFunctions is an [Option] to replace the formatting functions forwarding variadic
// arguments, like "::fmt::print".
func WithFormatFunctions(names ...string) Option {
	return formatFunctionsOption{names: slices.Clone(names)}
}

type formatFunctionsOption struct{ names []string }

func (o formatFunctionsOption) apply(r *run.Options) {
	r.Allow.FormatFunctions = o.names
}

func (o formatFunctionsOption) LogAttr() slog.Attr {
	return slog.Any("format-functions", o.names)
}

// WithSinkTypes is an [Option] to replace the classes whose call operator and members forward
// variadic arguments. An entry "::Type::method" only allows the named member.
func WithSinkTypes(names ...string) Option {
	return sinkTypesOption{names: slices.Clone(names)}
}

type sinkTypesOption struct{ names []string }

func (o sinkTypesOption) apply(r *run.Options) {
	r.Allow.SinkTypes = o.names
}

func (o sinkTypesOption) LogAttr() slog.Attr {
	return slog.Any("sink-types", o.names)
}

// WithStringParameterTypes is an [Option] to replace the parameter types implicitly
// constructible from a string, like "::llvm::StringRef".
func WithStringParameterTypes(names ...string) Option {
	return stringParameterTypesOption{names: slices.Clone(names)}
}

type stringParameterTypesOption struct{ names []string }

func (o stringParameterTypesOption) apply(r *run.Options) {
	r.Allow.StringParameterTypes = o.names
}

func (o stringParameterTypesOption) LogAttr() slog.Attr {
	return slog.Any("string-parameter-types", o.names)
}

// WithComparisons is an [Option] to configure which string comparison operators accept a string.
func WithComparisons(comparisons level.Comparison) Option {
	return comparisonsOption{comparisons: comparisons}
}

type comparisonsOption struct{ comparisons level.Comparison }

func (o comparisonsOption) apply(r *run.Options) {
	r.Behavior.Set(config.RelationalComparisons, o.comparisons == level.ComparisonRelational)
}

func (o comparisonsOption) LogAttr() slog.Attr {
	return slog.String("comparisons", o.comparisons.String())
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithNoLint is an [Option] to configure whether NOLINT comments suppress diagnostics.
func WithNoLint(nolint bool) Option { return nolintOption{nolint: nolint} }

type nolintOption struct{ nolint bool }

func (o nolintOption) apply(r *run.Options) {
	r.Behavior.Set(config.HonorNoLint, o.nolint)
}

func (o nolintOption) LogAttr() slog.Attr {
	return slog.Bool("nolint", o.nolint)
}

// WithConfigFile is an [Option] to read settings from a YAML, TOML or JSON file when the analyzer runs.
// Settings present in the file override the other options.
func WithConfigFile(path string) Option { return configFileOption{path: path} }

type configFileOption struct{ path string }

func (o configFileOption) apply(r *run.Options) {
	r.ConfigFile = o.path
}

func (o configFileOption) LogAttr() slog.Attr {
	return slog.String("config", o.path)
}

// WithLogger is an [Option] to receive debug logs of rejected and suppressed calls.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(r *run.Options) {
	r.Logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}
