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

// Package sema models a resolved C++ translation unit as delivered by an external front end.
//
// The model is read-only: declarations, static types and overload resolution results are
// computed by the front end and never inferred here. A [Unit] holds the source text together
// with every declaration; function bodies are trees of [Stmt] and [Expr] nodes whose byte
// ranges index into the source.
//
// Units are exchanged as JSON or MessagePack documents, see [Decode] and [Encode].
package sema
