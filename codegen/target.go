// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package codegen

import (
	"github.com/modrpc-org/mproto/layout"
	"github.com/modrpc-org/mproto/schema"
)

// Request bundles everything a Target needs to render one module.
type Request struct {
	Module  *schema.Module
	DB      *schema.Database
	Engine  *layout.Engine
	Mono    *Set
	Options *Options
}

// Target renders one module's instantiations into target-language
// source, returning a map of relative output path to file content —
// one entry for single-file mode, several for package mode (spec.md
// §6.3 -p/--package and §6.4 import resolution).
type Target interface {
	Name() string
	Generate(req *Request) (map[string][]byte, error)
}
