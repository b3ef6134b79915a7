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
	"log/slog"

	"fillmore-labs.com/redundantcstr/internal/config"
	"fillmore-labs.com/redundantcstr/internal/frontend"
)

// Options represent configuration options for the redundantcstr analyzer.
type Options struct {
	// Allow holds the allow-lists of formatting functions, sink classes and string parameter types.
	Allow config.AllowLists

	// Behavior holds behavioral options.
	Behavior config.Behavior

	// Loader provides the resolved units of source files, a [frontend.DumpLoader] reading
	// sources through the pass when nil.
	Loader frontend.Loader

	// Logger receives debug logs of rejected candidates. Nil discards them.
	Logger *slog.Logger

	// ConfigFile names a configuration file whose settings override the ones above.
	ConfigFile string
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Allow:    config.DefaultAllowLists(),
		Behavior: config.DefaultBehavior(),
	}
}

// LogValue implements [slog.LogValuer].
func (r *Options) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("allow", r.Allow),
		slog.Bool("generated", r.Behavior.Enabled(config.IncludeGenerated)),
		slog.Bool("nolint", r.Behavior.Enabled(config.HonorNoLint)),
		slog.Bool("relational", r.Behavior.Enabled(config.RelationalComparisons)),
		slog.String("config", r.ConfigFile),
	)
}

// Configured returns the options with the configuration file applied.
func (r *Options) Configured() (*Options, error) {
	if r.ConfigFile == "" {
		return r, nil
	}

	f, err := config.Load(r.ConfigFile)
	if err != nil {
		return nil, err
	}

	o := *r
	o.ConfigFile = ""
	f.Apply(&o.Allow, &o.Behavior)

	return &o, nil
}

func (r *Options) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return r.Logger
}
