// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package golang

import (
	"embed"
	"path"
	"strings"
	"sync"
	"text/template"
)

//go:embed tmpl/*.tmpl
var templateFiles embed.FS

var (
	templateCache    = make(map[string]*template.Template)
	templateCacheMux sync.RWMutex
)

// fileData is the top-level value handed to tmpl/file.tmpl.
type fileData struct {
	PackageName string
	Imports     []importEntry
	Body        string
}

func getTemplate(name string) *template.Template {
	templateCacheMux.RLock()
	if t := templateCache[name]; t != nil {
		templateCacheMux.RUnlock()
		return t
	}
	templateCacheMux.RUnlock()

	b, err := templateFiles.ReadFile(path.Join("tmpl", name))
	if err != nil {
		panic(err)
	}
	t := template.Must(template.New(name).Funcs(templateFuncs).Parse(string(b)))

	templateCacheMux.Lock()
	defer templateCacheMux.Unlock()
	templateCache[name] = t
	return t
}

var templateFuncs = template.FuncMap{
	"indent": func(s string, spaces int) string {
		lines := strings.Split(s, "\n")
		prefix := strings.Repeat(" ", spaces)
		for i := range lines {
			if lines[i] != "" {
				lines[i] = prefix + lines[i]
			}
		}
		return strings.Join(lines, "\n")
	},
}
