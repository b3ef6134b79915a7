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

// Package fix generates the replacements removing redundant accessor calls.
//
// The replacement always covers exactly the accessor call, so parentheses around the call
// survive verbatim:
//
//	f((s.c_str()))   ->  f((s))
//	f(ptr->c_str())  ->  f(*ptr)
//	f(it->data())    ->  f(*it)
package fix
