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

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"fillmore-labs.com/redundantcstr/analyzer/level"
)

// ErrUnknownFormat is returned for configuration files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown configuration file format")

// File is the content of a configuration file. Absent settings keep their current values.
type File struct {
	FormatFunctions      []string          `json:"format-functions,omitempty"       toml:"format-functions,omitempty"       yaml:"format-functions,omitempty"`
	SinkTypes            []string          `json:"sink-types,omitempty"             toml:"sink-types,omitempty"             yaml:"sink-types,omitempty"`
	StringParameterTypes []string          `json:"string-parameter-types,omitempty" toml:"string-parameter-types,omitempty" yaml:"string-parameter-types,omitempty"`
	Comparisons          *level.Comparison `json:"comparisons,omitempty"            toml:"comparisons,omitempty"            yaml:"comparisons,omitempty"`
	Generated            *bool             `json:"generated,omitempty"              toml:"generated,omitempty"              yaml:"generated,omitempty"`
	NoLint               *bool             `json:"nolint,omitempty"                 toml:"nolint,omitempty"                 yaml:"nolint,omitempty"`
}

// Load reads a YAML, TOML or JSON configuration file, chosen by extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read configuration: %w", err)
	}

	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse decodes configuration data in the format designated by the file extension ext.
// Unknown keys are errors.
func Parse(data []byte, ext string) (*File, error) {
	var f File

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid YAML configuration: %w", err)
		}

	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f)
		if err != nil {
			return nil, fmt.Errorf("invalid TOML configuration: %w", err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("invalid TOML configuration: unknown key %q", undecoded[0].String())
		}

	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("invalid JSON configuration: %w", err)
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	return &f, nil
}

// Apply merges the settings of f into allow and behavior. Present lists replace the current ones.
func (f *File) Apply(allow *AllowLists, behavior *Behavior) {
	if f.FormatFunctions != nil {
		allow.FormatFunctions = f.FormatFunctions
	}

	if f.SinkTypes != nil {
		allow.SinkTypes = f.SinkTypes
	}

	if f.StringParameterTypes != nil {
		allow.StringParameterTypes = f.StringParameterTypes
	}

	var mask, values Behavior

	if f.Comparisons != nil {
		mask.Enable(RelationalComparisons)
		values.Set(RelationalComparisons, *f.Comparisons == level.ComparisonRelational)
	}

	overlay(&mask, &values, IncludeGenerated, f.Generated)
	overlay(&mask, &values, HonorNoLint, f.NoLint)

	behavior.Override(mask, values)
}

// overlay records the value of an optional setting of flag.
func overlay(mask, values *Behavior, flag BehaviorFlags, value *bool) {
	if value == nil {
		return
	}

	mask.Enable(flag)
	values.Set(flag, *value)
}
