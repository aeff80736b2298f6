// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

// Package layout computes BASE_LEN for a type expression in a
// type-parameter environment, per spec.md §4.1. The result is a
// layout term: a generation-time-known constant plus a target-language
// expression for the part that depends on an unresolved type
// parameter.
package layout
