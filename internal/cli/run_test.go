// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modrpc-org/mproto/codegen"
)

const testSchema = `
struct Point {
    x: f64,
    y: f64,
}

enum Shape {
    circle { radius: f64 },
    point,
}
`

func writeSchema(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "shapes.mproto")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunGoSingleFile(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, testSchema)
	outDir := filepath.Join(dir, "out")

	cfg := Config{
		SchemaPath: schemaPath,
		OutputDir:  outDir,
		Name:       "shapes",
		Language:   "go",
		Constants:  map[string]string{},
	}
	require.NoError(t, Run(cfg, NewGenerator()))

	b, err := os.ReadFile(filepath.Join(outDir, "shapes.go"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "package shapes")
	assert.Contains(t, string(b), "type Point struct")
	assert.Contains(t, string(b), "ShapeTag uint8")
}

func TestRunTypeScriptPackageMode(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, testSchema)
	outDir := filepath.Join(dir, "out")

	cfg := Config{
		SchemaPath: schemaPath,
		OutputDir:  outDir,
		Name:       "shapes",
		Language:   "typescript",
		Package:    true,
		Constants:  map[string]string{},
	}
	require.NoError(t, Run(cfg, NewGenerator()))

	for _, name := range []string{"index.ts", "runtime.ts", "package.json"} {
		_, err := os.Stat(filepath.Join(outDir, "shapes", name))
		assert.NoError(t, err, "expected %s to be written", name)
	}
}

func TestRunUnsupportedLanguage(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, testSchema)

	cfg := Config{SchemaPath: schemaPath, OutputDir: dir, Language: "rust", Constants: map[string]string{}}
	err := Run(cfg, NewGenerator())
	require.Error(t, err)
	assert.ErrorIs(t, err, codegen.ErrUnsupportedLanguage)
}

func TestRunSchemaSyntaxError(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "struct Broken { x: }")

	cfg := Config{SchemaPath: schemaPath, OutputDir: dir, Language: "go", Constants: map[string]string{}}
	err := Run(cfg, NewGenerator())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestRunMissingSchemaFile(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{SchemaPath: filepath.Join(dir, "missing.mproto"), OutputDir: dir, Language: "go", Constants: map[string]string{}}
	err := Run(cfg, NewGenerator())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseArgsConstantOverride(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, testSchema)

	var stderr bytes.Buffer
	cfg, err := ParseArgs([]string{
		"-l", "go",
		"-n", "shapes",
		"-o", dir,
		"-D", "MaxShapes=2+3",
		schemaPath,
	}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Language)
	assert.Equal(t, schemaPath, cfg.SchemaPath)
	assert.Equal(t, "5", cfg.Constants["MaxShapes"])
}

func TestParseArgsRequiresOneSchemaArg(t *testing.T) {
	var stderr bytes.Buffer
	_, err := ParseArgs([]string{"-l", "go"}, &stderr)
	require.Error(t, err)
}

func TestParseArgsLoadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, testSchema)
	cfgPath := filepath.Join(dir, "mprotoc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("language: go\noutput_dir: "+dir+"\n"), 0o644))

	var stderr bytes.Buffer
	cfg, err := ParseArgs([]string{"-c", cfgPath, schemaPath}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Language)
	assert.Equal(t, dir, cfg.OutputDir)
}
