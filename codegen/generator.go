// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package codegen

import (
	"fmt"

	"github.com/modrpc-org/mproto/layout"
	"github.com/modrpc-org/mproto/schema"
)

// Generator dispatches a parsed module to a named Target, per the
// driver steps in spec.md §4.9.
type Generator struct {
	targets map[string]Target
}

func NewGenerator() *Generator {
	return &Generator{targets: map[string]Target{}}
}

// Register adds t under its own Name().
func (g *Generator) Register(t Target) {
	g.targets[t.Name()] = t
}

// Generate monomorphizes mod's definitions and renders them with the
// target registered under language, applying opts (functional
// options, matching the ambient stack's DynSszOptions idiom).
func (g *Generator) Generate(language string, mod *schema.Module, db *schema.Database, opts ...Option) (map[string][]byte, error) {
	target, ok := g.targets[language]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.PackageName == "" {
		o.PackageName = mod.Name
	}

	mono, err := Monomorphize(mod, db)
	if err != nil {
		return nil, fmt.Errorf("codegen: monomorphizing %q: %w", mod.Name, err)
	}
	o.log("codegen: %d instantiation(s) for module %q targeting %q", len(mono.Ordered()), mod.Name, language)

	req := &Request{
		Module:  mod,
		DB:      db,
		Engine:  layout.NewEngine(db),
		Mono:    mono,
		Options: o,
	}
	out, err := target.Generate(req)
	if err != nil {
		return nil, fmt.Errorf("codegen: generating %q for module %q: %w", language, mod.Name, err)
	}
	return out, nil
}
