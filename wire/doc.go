// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

// Package wire implements the mproto binary wire format: fixed-layout
// "base" encodings with a separately addressed "scratch" region for
// variable-length payloads, plus zero-copy lazy views over the same
// buffer.
//
// Generated code (see package codegen) is the primary consumer of this
// package, but every codec here is usable directly for hand-written
// types that want the wire format without going through the schema
// compiler.
package wire
