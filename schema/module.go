// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package schema

import "fmt"

// Module is an insertion-ordered collection of type definitions
// indexed by name (spec §3.1).
type Module struct {
	Name string

	defs  map[string]*TypeDef
	order []string
}

func NewModule(name string) *Module {
	return &Module{Name: name, defs: make(map[string]*TypeDef)}
}

// Add registers def, failing if the name is already taken.
func (m *Module) Add(def *TypeDef) error {
	if _, exists := m.defs[def.Name]; exists {
		return fmt.Errorf("%w: %q in module %q", ErrDuplicateTypeName, def.Name, m.Name)
	}
	m.defs[def.Name] = def
	m.order = append(m.order, def.Name)
	return nil
}

// Get looks up a type definition by name.
func (m *Module) Get(name string) (*TypeDef, bool) {
	d, ok := m.defs[name]
	return d, ok
}

// Defs returns every definition in declaration order.
func (m *Module) Defs() []*TypeDef {
	out := make([]*TypeDef, len(m.order))
	for i, name := range m.order {
		out[i] = m.defs[name]
	}
	return out
}
