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

package fix

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"

	"fillmore-labs.com/redundantcstr/internal/sema"
)

var (
	// ErrOverlap is returned by [Apply] for overlapping replacements.
	ErrOverlap = errors.New("overlapping replacements")

	// ErrRange is returned by [Apply] for replacements outside the source.
	ErrRange = errors.New("replacement out of range")
)

// Select orders items by source position and splits them into kept items and items
// overlapping an earlier kept one.
func Select[S ~[]E, E any](items S, rangeOf func(E) sema.Range) (kept, dropped S) {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b E) int {
		ra, rb := rangeOf(a), rangeOf(b)

		return cmp.Or(cmp.Compare(ra.Begin, rb.Begin), cmp.Compare(ra.End, rb.End))
	})

	var last sema.Range

	for _, item := range sorted {
		r := rangeOf(item)
		if len(kept) > 0 && last.Overlaps(r) {
			dropped = append(dropped, item)

			continue
		}

		kept = append(kept, item)
		last = r
	}

	return kept, dropped
}

// Apply returns src with the replacements applied. src is not modified.
func Apply(src []byte, reps []Replacement) ([]byte, error) {
	sorted := slices.SortedStableFunc(slices.Values(reps), func(a, b Replacement) int {
		return cmp.Compare(a.Range.Begin, b.Range.Begin)
	})

	var (
		buf bytes.Buffer
		pos uint32
	)

	buf.Grow(len(src))

	for _, r := range sorted {
		if r.Range.End < r.Range.Begin || int(r.Range.End) > len(src) {
			return nil, fmt.Errorf("%w: [%d,%d) in %d bytes", ErrRange, r.Range.Begin, r.Range.End, len(src))
		}

		if r.Range.Begin < pos {
			return nil, fmt.Errorf("%w: [%d,%d) starts before %d", ErrOverlap, r.Range.Begin, r.Range.End, pos)
		}

		buf.Write(src[pos:r.Range.Begin])
		buf.WriteString(r.Text)
		pos = r.Range.End
	}

	buf.Write(src[pos:])

	return buf.Bytes(), nil
}
