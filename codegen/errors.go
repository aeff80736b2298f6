// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package codegen

import "fmt"

// ErrUnsupportedLanguage is returned when the CLI -l/--language value
// names no registered Target (spec.md §6.3: exit code 1).
var ErrUnsupportedLanguage = fmt.Errorf("unsupported target language")
