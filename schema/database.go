// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package schema

import "fmt"

// ImportedModule pairs an imported module with the per-module library
// suffix the generator uses to build its import path (spec §6.4).
type ImportedModule struct {
	Module    *Module
	LibSuffix string
}

// Database is a local module plus the imported modules it can resolve
// qualified identifiers against (spec §3.1).
type Database struct {
	Local   *Module
	Imports map[string]*ImportedModule
}

func NewDatabase(local *Module) *Database {
	return &Database{Local: local, Imports: make(map[string]*ImportedModule)}
}

// AddImport registers mod under importName, available to qualified
// identifiers of the form "importName.Type".
func (db *Database) AddImport(importName string, mod *Module, libSuffix string) {
	db.Imports[importName] = &ImportedModule{Module: mod, LibSuffix: libSuffix}
}

// Resolve looks up a (possibly qualified) type name, returning the
// owning module so callers can tell local references from imported
// ones (needed for §4.9 point 3's import-emission decision).
func (db *Database) Resolve(moduleName, typeName string) (*TypeDef, *Module, error) {
	if moduleName == "" {
		def, ok := db.Local.Get(typeName)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
		}
		return def, db.Local, nil
	}

	imported, ok := db.Imports[moduleName]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownModule, moduleName)
	}
	def, ok := imported.Module.Get(typeName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q.%q", ErrUnknownType, moduleName, typeName)
	}
	return def, imported.Module, nil
}

// ResolveRef resolves a RefExpr's definition and validates that its
// type-argument count matches the definition's parameter count.
func (db *Database) ResolveRef(ref *TypeExpr) (*TypeDef, *Module, error) {
	def, mod, err := db.Resolve(ref.Module, ref.Name)
	if err != nil {
		return nil, nil, err
	}
	if len(ref.Args) != len(def.TypeParams) {
		return nil, nil, fmt.Errorf("%w: %q wants %d, got %d", ErrTypeParamCount, ref.Name, len(def.TypeParams), len(ref.Args))
	}
	return def, mod, nil
}
