// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

// Package schema holds the in-memory representation of mproto type
// definitions: type expressions, struct/enum bodies, modules, and the
// cross-module database that resolves qualified identifiers.
package schema
