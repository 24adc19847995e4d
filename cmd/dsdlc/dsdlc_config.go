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
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// generateConfig is the effective configuration of one generate run:
// TOML file values first, then command line flags on top.
type generateConfig struct {
	SourceDirs  []string
	IncludeDirs []string
	OutputDir   string
	HeaderOnly  bool
}

type fileConfig struct {
	Dsdl       []string `toml:"dsdl"`
	Include    []string `toml:"include"`
	Output     string   `toml:"output"`
	HeaderOnly bool     `toml:"header_only"`
}

func loadConfig(path string, cmd *cmdGenerate) (generateConfig, error) {
	var cfg generateConfig
	if path != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return generateConfig{}, fmt.Errorf("load config: %w", err)
		}
		if meta.IsDefined("dsdl") {
			cfg.SourceDirs = normalizeDirs(raw.Dsdl)
		}
		if meta.IsDefined("include") {
			cfg.IncludeDirs = normalizeDirs(raw.Include)
		}
		if meta.IsDefined("output") {
			cfg.OutputDir = strings.TrimSpace(raw.Output)
		}
		if meta.IsDefined("header_only") {
			cfg.HeaderOnly = raw.HeaderOnly
		}
	}

	if len(cmd.sourceDirs) > 0 {
		cfg.SourceDirs = normalizeDirs(cmd.sourceDirs)
	}
	if len(cmd.includes) > 0 {
		cfg.IncludeDirs = normalizeDirs(cmd.includes)
	}
	if cmd.outputDir != "" {
		cfg.OutputDir = cmd.outputDir
	}
	if cmd.headerOnly {
		cfg.HeaderOnly = true
	}
	return cfg, nil
}

func normalizeDirs(dirs []string) []string {
	seen := make(map[string]struct{}, len(dirs))
	var out []string
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		out = append(out, dir)
	}
	return out
}
