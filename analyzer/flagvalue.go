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
	"strconv"
	"strings"

	"fillmore-labs.com/redundantcstr/analyzer/level"
	"fillmore-labs.com/redundantcstr/internal/config"
)

type boolValue[F any, B boolFlag[F]] struct {
	flags B
	value F
}

type boolFlag[F any] interface {
	comparable
	Set(flag F, value bool)
	Enabled(flag F) bool
}

// NewBehaviorValue returns a boolean [flag.Getter] for one flag of behavior.
func NewBehaviorValue(behavior *config.Behavior, value config.BehaviorFlags) flag.Getter {
	return boolValue[config.BehaviorFlags, *config.Behavior]{flags: behavior, value: value}
}

// Set implements [flag.Value].
func (f boolValue[_, B]) Set(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}

	f.flags.Set(f.value, b)

	return nil
}

// String implements [flag.Value].
func (f boolValue[_, B]) String() string {
	var null B
	if f.flags == null {
		return "false"
	}

	return strconv.FormatBool(f.flags.Enabled(f.value))
}

// Get implements [flag.Getter].
func (f boolValue[_, B]) Get() any {
	var null B
	if f.flags == null {
		return false
	}

	return f.flags.Enabled(f.value)
}

// IsBoolFlag returns true to indicate that this is a boolean [flag.Value].
func (f boolValue[_, _]) IsBoolFlag() bool { return true }

// parseBool returns the boolean value represented by the string.
func parseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "on", "On":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "off", "Off":
		return false, nil
	}

	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

// listValue is a comma separated list of names. Setting it replaces the list, an empty value clears it.
type listValue struct{ names *[]string }

// NewListValue returns a [flag.Getter] for a list of names.
func NewListValue(names *[]string) flag.Getter { return listValue{names: names} }

// Set implements [flag.Value].
func (l listValue) Set(s string) error {
	var names []string

	for name := range strings.SplitSeq(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	*l.names = names

	return nil
}

// String implements [flag.Value].
func (l listValue) String() string {
	if l.names == nil {
		return ""
	}

	return strings.Join(*l.names, ",")
}

// Get implements [flag.Getter].
func (l listValue) Get() any {
	if l.names == nil {
		return []string(nil)
	}

	return *l.names
}

// comparisonValue sets [config.RelationalComparisons] from a [level.Comparison].
type comparisonValue struct{ behavior *config.Behavior }

// NewComparisonValue returns a [flag.Getter] for the comparison level of behavior.
func NewComparisonValue(behavior *config.Behavior) flag.Getter {
	return comparisonValue{behavior: behavior}
}

// Set implements [flag.Value].
func (c comparisonValue) Set(s string) error {
	var l level.Comparison
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return err
	}

	c.behavior.Set(config.RelationalComparisons, l == level.ComparisonRelational)

	return nil
}

// String implements [flag.Value].
func (c comparisonValue) String() string { return c.level().String() }

// Get implements [flag.Getter].
func (c comparisonValue) Get() any { return c.level() }

func (c comparisonValue) level() level.Comparison {
	if c.behavior != nil && c.behavior.Enabled(config.RelationalComparisons) {
		return level.ComparisonRelational
	}

	return level.ComparisonEquality
}
