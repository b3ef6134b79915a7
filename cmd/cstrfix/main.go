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

// Cstrfix checks and rewrites redundant c_str() and data() calls, reading resolved semantic dumps.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newApp().execute(os.Args[1:], os.Stdout, os.Stderr)

	switch {
	case err == nil:

	case errors.Is(err, errFindings):
		os.Exit(1)

	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}
