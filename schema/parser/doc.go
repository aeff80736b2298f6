// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

// Package parser turns schema source text into a schema.Module via a
// hand-written lexer and a recursive-descent parser over the grammar
// in spec.md §6.2.
package parser
