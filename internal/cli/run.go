// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/modrpc-org/mproto/codegen"
	"github.com/modrpc-org/mproto/codegen/golang"
	"github.com/modrpc-org/mproto/codegen/typescript"
	"github.com/modrpc-org/mproto/schema"
	"github.com/modrpc-org/mproto/schema/parser"
)

// languageTargets maps the CLI's -l/--language values (spec.md §6.3's
// "rust-equivalent systems target" / "typescript-equivalent scripting
// target" framing, realized concretely per SPEC_FULL.md §1) onto the
// codegen.Target names those packages register under.
var languageTargets = map[string]string{
	"go":         "go",
	"typescript": "ts",
}

// NewGenerator builds a Generator with every target this compiler
// ships registered, the wiring point spec.md §6.4 assumes exists.
func NewGenerator() *codegen.Generator {
	gen := codegen.NewGenerator()
	gen.Register(golang.New())
	gen.Register(typescript.New())
	return gen
}

// ParseArgs parses argv (excluding the program name) into a Config,
// loading an optional -c/--config YAML file first so flags can
// override it.
func ParseArgs(argv []string, stderr io.Writer) (Config, error) {
	fs := flag.NewFlagSet("mprotoc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg Config
	cfg.Constants = map[string]string{}

	var constDefs stringList
	fs.StringVar(&cfg.OutputDir, "o", "", "output root (default ./)")
	fs.StringVar(&cfg.OutputDir, "output-dir", "", "output root (default ./)")
	fs.StringVar(&cfg.Name, "n", "", "module or package name")
	fs.StringVar(&cfg.Name, "name", "", "module or package name")
	fs.StringVar(&cfg.Language, "l", "", "target language: go or typescript")
	fs.StringVar(&cfg.Language, "language", "", "target language: go or typescript")
	fs.BoolVar(&cfg.Package, "p", false, "emit a directory with manifest files")
	fs.BoolVar(&cfg.Package, "package", false, "emit a directory with manifest files")
	fs.StringVar(&cfg.ConfigPath, "c", "", "optional YAML config file")
	fs.StringVar(&cfg.ConfigPath, "config", "", "optional YAML config file")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose logging")
	fs.Var(&constDefs, "D", "define a constant as name=expr (repeatable)")

	if err := fs.Parse(argv); err != nil {
		return Config{}, err
	}

	if cfg.ConfigPath != "" {
		fc, err := loadFileConfig(cfg.ConfigPath)
		if err != nil {
			return Config{}, err
		}
		cfg.applyFileConfig(fc)
	}

	if err := parseConstantFlags(constDefs, cfg.Constants); err != nil {
		return Config{}, err
	}

	if fs.NArg() != 1 {
		return Config{}, fmt.Errorf("expected exactly one schema file argument, got %d", fs.NArg())
	}
	cfg.SchemaPath = fs.Arg(0)

	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg, nil
}

// stringList accumulates repeated flag occurrences, matching the
// stdlib flag package's documented pattern for multi-valued flags.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// ErrParse signals a schema-time failure: I/O or syntax, both reported
// the same way per spec.md §6.3/§7 (print path and diagnostic, exit 1).
var ErrParse = errors.New("mprotoc: schema error")

// Run executes one compilation end to end: parse the schema, generate
// target source, write it under cfg.OutputDir. Errors are returned
// rather than printed so main() owns exit-status mapping.
func Run(cfg Config, gen *codegen.Generator) error {
	targetName, ok := languageTargets[cfg.Language]
	if !ok {
		return fmt.Errorf("%w: %q", codegen.ErrUnsupportedLanguage, cfg.Language)
	}

	src, err := os.ReadFile(cfg.SchemaPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParse, cfg.SchemaPath, err)
	}

	moduleName := cfg.Name
	if moduleName == "" {
		moduleName = baseNameNoExt(cfg.SchemaPath)
	}

	mod, err := parser.Parse(moduleName, string(src))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParse, cfg.SchemaPath, err)
	}
	db := schema.NewDatabase(mod)

	opts := []codegen.Option{codegen.WithPackageName(cfg.Name)}
	if cfg.Package {
		opts = append(opts, codegen.WithPackageMode())
	}
	if cfg.Verbose {
		opts = append(opts, codegen.WithVerbose(), codegen.WithLogCb(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	}
	for name, value := range cfg.Constants {
		opts = append(opts, codegen.WithConstant(name, value))
	}

	out, err := gen.Generate(targetName, mod, db, opts...)
	if err != nil {
		return err
	}

	for relPath, content := range out {
		fullPath := filepath.Join(cfg.OutputDir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return fmt.Errorf("creating output directory for %s: %w", fullPath, err)
		}
		if err := os.WriteFile(fullPath, content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", fullPath, err)
		}
	}
	return nil
}

func baseNameNoExt(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}
