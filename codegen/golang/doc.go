// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

// Package golang is the systems-language code generation target: it
// renders owned and lazy Go types backed by the wire runtime package,
// per spec.md §4.5-§4.10.
package golang
