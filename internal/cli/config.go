// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

// Package cli implements the mprotoc command line, split from main()
// so it can be exercised by tests without spawning a process, per the
// teacher's own Config/run(cfg) error separation.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/casbin/govaluate"
	"gopkg.in/yaml.v3"
)

// Config is the fully-resolved set of inputs for one compiler run,
// merged from an optional config file and then the command line
// (flags always win over the file).
type Config struct {
	SchemaPath string
	OutputDir  string
	Name       string
	Language   string
	Package    bool
	ConfigPath string
	Constants  map[string]string
	Verbose    bool
}

// fileConfig is the shape accepted from a -c/--config YAML file. Every
// field is optional; flags passed on the command line override it.
type fileConfig struct {
	OutputDir string            `yaml:"output_dir"`
	Name      string            `yaml:"name"`
	Language  string            `yaml:"language"`
	Package   bool              `yaml:"package"`
	Constants map[string]string `yaml:"constants"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &fc, nil
}

// applyFileConfig fills in any field cfg's flags left at their zero
// value from fc, leaving explicit flag values untouched.
func (cfg *Config) applyFileConfig(fc *fileConfig) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = fc.OutputDir
	}
	if cfg.Name == "" {
		cfg.Name = fc.Name
	}
	if cfg.Language == "" {
		cfg.Language = fc.Language
	}
	if !cfg.Package {
		cfg.Package = fc.Package
	}
	for k, v := range fc.Constants {
		if _, ok := cfg.Constants[k]; !ok {
			cfg.Constants[k] = v
		}
	}
}

// parseConstantFlags turns repeated "-D name=expr" flags into
// cfg.Constants, evaluating expr with govaluate so arithmetic (and
// references to previously-defined constants) can be used the same
// way the teacher's dynssz-size tags do. The evaluated result is
// formatted back to a string; the targets emit each constant as a
// named constant in the generated source, and it never affects wire
// layout.
func parseConstantFlags(defs []string, constants map[string]string) error {
	for _, d := range defs {
		name, expr, ok := strings.Cut(d, "=")
		if !ok {
			return fmt.Errorf("invalid -D value %q: want name=expr", d)
		}
		name = strings.TrimSpace(name)
		expr = strings.TrimSpace(expr)

		params := make(map[string]any, len(constants))
		for k, v := range constants {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				params[k] = f
			} else {
				params[k] = v
			}
		}

		evaluable, err := govaluate.NewEvaluableExpression(expr)
		if err != nil {
			return fmt.Errorf("invalid -D %s expression %q: %w", name, expr, err)
		}
		result, err := evaluable.Evaluate(params)
		if err != nil {
			return fmt.Errorf("evaluating -D %s=%q: %w", name, expr, err)
		}
		constants[name] = fmt.Sprintf("%v", result)
	}
	return nil
}
