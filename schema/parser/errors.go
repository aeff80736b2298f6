// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package parser

import "fmt"

// ErrSyntax is the sentinel wrapped by every lexing and grammar
// failure, carrying the byte offset (into the comment-stripped source)
// and a message. A duplicate type name is reported with
// schema.ErrDuplicateTypeName instead.
var ErrSyntax = fmt.Errorf("schema syntax error")
