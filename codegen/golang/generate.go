// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"sort"
	"strings"

	"github.com/modrpc-org/mproto/codegen"
	"golang.org/x/tools/imports"
)

// Target renders a module's monomorphized instantiations into Go
// source. It satisfies codegen.Target.
type Target struct{}

func New() *Target { return &Target{} }

func (*Target) Name() string { return "go" }

func (t *Target) Generate(req *codegen.Request) (map[string][]byte, error) {
	r := newRenderer(req.DB, req.Mono, req.Engine)
	pkgIdent := path.Base(req.Options.PackageName)

	var body strings.Builder
	if len(req.Options.Constants) > 0 {
		body.WriteString("const (\n")
		for _, name := range sortedKeys(req.Options.Constants) {
			fmt.Fprintf(&body, "\t%s = %s\n", name, req.Options.Constants[name])
		}
		body.WriteString(")\n\n")
	}

	for _, inst := range req.Mono.Ordered() {
		if req.Options.Verbose && req.Options.LogCb != nil {
			req.Options.LogCb("golang: rendering %s", inst.Name)
		}
		text, err := r.emitInstantiation(inst, req.Options)
		if err != nil {
			return nil, fmt.Errorf("golang: rendering %s: %w", inst.Name, err)
		}
		body.WriteString(text)
	}

	data := fileData{
		PackageName: pkgIdent,
		Imports:     r.imports.sorted(),
		Body:        body.String(),
	}

	var rendered bytes.Buffer
	if err := getTemplate("file.tmpl").ExecuteTemplate(&rendered, "file.tmpl", data); err != nil {
		return nil, fmt.Errorf("golang: executing file template: %w", err)
	}

	formatted, err := formatSource(rendered.Bytes())
	if err != nil {
		return nil, fmt.Errorf("golang: formatting generated source: %w", err)
	}

	out := map[string][]byte{}
	if req.Options.PackageMode {
		// Package mode scaffolds a standalone module directory: the
		// generated .go file plus a go.mod stub whose module path is
		// the package name, written on every package-mode run, so the
		// output can be fetched as its own dependency.
		out[path.Join(pkgIdent, pkgIdent+".go")] = formatted
		out[path.Join(pkgIdent, "go.mod")] = goModStub(req.Options.PackageName)
	} else {
		out[pkgIdent+".go"] = formatted
	}
	return out, nil
}

func goModStub(modulePath string) []byte {
	return []byte(fmt.Sprintf("module %s\n\ngo 1.22\n\nrequire github.com/modrpc-org/mproto v0.0.0\n", modulePath))
}

// formatSource runs goimports (which both fixes up the import block
// dropped/added by renderer bookkeeping and formats the body) before
// falling back to plain gofmt if the tree can't yet be resolved as a
// package on disk, e.g. when generating in memory ahead of writeout.
func formatSource(src []byte) ([]byte, error) {
	if out, err := imports.Process("generated.go", src, nil); err == nil {
		return out, nil
	}
	return format.Source(src)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
