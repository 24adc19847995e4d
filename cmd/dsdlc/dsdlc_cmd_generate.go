// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"go.dsdl-lang.org/dsdlc/compiler"
	"go.dsdl-lang.org/dsdlc/dsdl/parser"
	"go.dsdl-lang.org/dsdlc/gen"
	"go.dsdl-lang.org/dsdlc/gen/ctemplate"
)

type cmdGenerate struct {
	configPath string
	sourceDirs []string
	includes   []string
	outputDir  string
	headerOnly bool
	verbose    bool
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "generate",
		summary: "Compile DSDL namespaces into C headers and sources",
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	flags.StringSliceVarP(&cmd.sourceDirs, "dsdl", "d", nil,
		"Root namespace directory to compile (repeatable)")
	flags.StringSliceVarP(&cmd.includes, "include", "I", nil,
		"Root namespace directory with referenced types (repeatable)")
	flags.StringVarP(&cmd.outputDir, "output", "o", "",
		"Output directory for generated files")
	flags.BoolVar(&cmd.headerOnly, "header-only", false,
		"Append generated code to the header instead of a separate .c file")
	flags.StringVarP(&cmd.configPath, "config", "c", "",
		"TOML configuration file")
	flags.BoolVarP(&cmd.verbose, "verbose", "v", false,
		"Enable debug logging")
}

func (cmd *cmdGenerate) run(ctx context.Context, argv []string) int {
	log := newLogger(cmd.verbose)

	cfg, err := loadConfig(cmd.configPath, cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(cfg.SourceDirs) == 0 {
		fmt.Fprintln(os.Stderr, "No DSDL directories specified (set --dsdl=)")
		return 1
	}
	if cfg.OutputDir == "" {
		fmt.Fprintln(os.Stderr, "No output directory specified (set --output=)")
		return 1
	}

	types, err := parser.ParseNamespaces(cfg.SourceDirs, cfg.IncludeDirs)
	if err != nil {
		fmt.Fprintln(os.Stderr, compiler.SchemaParseError(err))
		return 1
	}
	if len(types) == 0 {
		fmt.Fprintln(os.Stderr, "No type definitions were found")
		return 1
	}
	log.Info().Int("count", len(types)).Msg("types total")

	assembled, err := compiler.Compile(types)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	engine, err := ctemplate.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	emitter := gen.NewEmitter(engine, cfg.OutputDir,
		gen.WithHeaderOnly(cfg.HeaderOnly),
		gen.WithLogger(log),
	)
	stats, err := emitter.Emit(assembled)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log.Info().
		Int("written", stats.Written).
		Int("unchanged", stats.Unchanged).
		Msg("generation complete")
	return 0
}
