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

// Package config holds the immutable settings of an analysis run.
package config

// BehaviorFlags represents optional analysis behavior.
type BehaviorFlags uint8

const (
	// IncludeGenerated specifies whether to include analysis of generated files.
	IncludeGenerated BehaviorFlags = 1 << iota

	// HonorNoLint suppresses findings on lines carrying a matching NOLINT comment.
	HonorNoLint

	// RelationalComparisons accepts the relational string operators besides == and !=.
	RelationalComparisons
)

// Behavior is the set of enabled [BehaviorFlags].
type Behavior = BitMask[BehaviorFlags]

// DefaultBehavior returns the behavior used when nothing is configured.
func DefaultBehavior() Behavior {
	return NewBitMask(HonorNoLint)
}
