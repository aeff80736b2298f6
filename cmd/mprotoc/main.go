// Copyright (c) 2025 mproto contributors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mproto schema compiler.

// Command mprotoc compiles an mproto schema file into target-language
// source implementing its wire format.
package main

import (
	"fmt"
	"os"

	"github.com/modrpc-org/mproto/internal/cli"
)

func main() {
	os.Exit(run())
}

// run mirrors the teacher's Config/run(cfg) error split: every
// schema-time and unsupported-language failure exits 1 with the
// diagnostic on stderr, per spec.md §6.3/§7.
func run() int {
	cfg, err := cli.ParseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := cli.Run(cfg, cli.NewGenerator()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
