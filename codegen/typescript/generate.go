// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package typescript

import (
	"bytes"
	"fmt"
	"path"
	"sort"

	"github.com/modrpc-org/mproto/codegen"
)

// Target renders a module's monomorphized instantiations into
// TypeScript source. It satisfies codegen.Target.
type Target struct{}

func New() *Target { return &Target{} }

func (*Target) Name() string { return "ts" }

func (t *Target) Generate(req *codegen.Request) (map[string][]byte, error) {
	r := newRenderer(req.DB, req.Mono, req.Engine)

	var body bytes.Buffer
	for _, name := range sortedConstantNames(req.Options.Constants) {
		fmt.Fprintf(&body, "export const %s = %s;\n", name, req.Options.Constants[name])
	}
	if body.Len() > 0 {
		body.WriteString("\n")
	}

	for _, inst := range req.Mono.Ordered() {
		if req.Options.Verbose && req.Options.LogCb != nil {
			req.Options.LogCb("typescript: rendering %s", inst.Name)
		}
		text, err := r.emitInstantiation(inst)
		if err != nil {
			return nil, fmt.Errorf("typescript: rendering %s: %w", inst.Name, err)
		}
		body.WriteString(text)
	}

	data := fileData{Imports: r.imports.sorted(), Body: body.String()}

	var rendered bytes.Buffer
	if err := getTemplate("file.tmpl").ExecuteTemplate(&rendered, "file.tmpl", data); err != nil {
		return nil, fmt.Errorf("typescript: executing file template: %w", err)
	}

	out := map[string][]byte{}
	pkgName := req.Options.PackageName
	if req.Options.PackageMode {
		out[path.Join(pkgName, "index.ts")] = rendered.Bytes()
		out[path.Join(pkgName, "runtime.ts")] = runtimeSource()
		out[path.Join(pkgName, "package.json")] = packageJSONStub(pkgName)
	} else {
		out["index.ts"] = rendered.Bytes()
		out["runtime.ts"] = runtimeSource()
	}
	return out, nil
}

func packageJSONStub(name string) []byte {
	return []byte(fmt.Sprintf(`{
  "name": %q,
  "version": "0.0.0",
  "main": "index.ts",
  "types": "index.ts"
}
`, name))
}

func sortedConstantNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
