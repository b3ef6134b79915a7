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

// Package analyzer implements the redundantcstr static analysis pass.
//
// # Overview
//
// RedundantCStr detects calls to c_str() and data() on std::basic_string whose
// result is immediately handed to something that accepts the string itself.
// The call then only forces a costly round trip through a character pointer,
// since the string's length has to be recomputed.
//
// # Example
//
// Before:
//
//	void greet(const std::string& name);
//
//	void hello(const std::string& s, const std::string* p) {
//	    greet(s.c_str());
//	    std::string copy = p->c_str();
//	}
//
// After applying redundantcstr's suggested fix:
//
//	void hello(const std::string& s, const std::string* p) {
//	    greet(s);
//	    std::string copy = *p;
//	}
//
// # Accepted Use Sites
//
//   - Arguments of parameters taking the same string type by value or const reference
//   - Arguments of parameters taking a string view or an allow-listed type like llvm::StringRef
//   - Operands of string assignment, comparison and concatenation operators
//   - Arguments of string members like append, assign, compare, find and insert
//   - Variadic arguments of allow-listed formatting functions and sink classes
//   - Initializers of strings and string views, and returned values
//
// # Input
//
// The analyzer does not parse C++. It reads resolved semantic trees written by a
// compiler front end next to each C++ file listed in the package, see [Analyzer].
package analyzer
