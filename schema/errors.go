// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package schema

import "fmt"

var (
	ErrDuplicateTypeName = fmt.Errorf("duplicate type name")
	ErrUnknownModule     = fmt.Errorf("unknown imported module")
	ErrUnknownType       = fmt.Errorf("unresolved type identifier")
	ErrTypeParamCount    = fmt.Errorf("type argument count does not match definition")
)
