// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

// Package codegen drives code generation: it walks a parsed module in
// declaration order and dispatches each definition to a registered
// Target, per spec.md §4.9. Per-language rendering lives in
// codegen/golang and codegen/typescript; this package holds the
// target-agnostic pieces: options, monomorphization, and the driver.
package codegen
