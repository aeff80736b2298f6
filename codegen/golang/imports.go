// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package golang

import "sort"

// importSet collects the distinct packages a rendered file needs,
// keyed by the alias used in generated source. The systems-target
// import path for a qualified reference "mod.Name" is "mod_<suffix>"
// (spec.md §6.4's "_" separator).
type importSet struct {
	byAlias map[string]string // alias -> import path
}

func newImportSet() *importSet {
	return &importSet{byAlias: map[string]string{"wire": "github.com/modrpc-org/mproto/wire"}}
}

func (s *importSet) add(alias, path string) {
	s.byAlias[alias] = path
}

// sorted returns (alias, path) pairs ordered by path, the way
// goimports would group and order a formatted import block -- final
// formatting is still handed off to golang.org/x/tools/imports, this
// just keeps the pre-formatted text deterministic.
func (s *importSet) sorted() []importEntry {
	out := make([]importEntry, 0, len(s.byAlias))
	for alias, path := range s.byAlias {
		out = append(out, importEntry{Alias: alias, Path: path})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

type importEntry struct {
	Alias string
	Path  string
}
