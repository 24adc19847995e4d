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
	"go.dsdl-lang.org/dsdlc/dsdl"
	"go.dsdl-lang.org/dsdlc/dsdl/parser"
)

type cmdList struct {
	sourceDirs []string
	includes   []string
}

func (*cmdList) help() *commandHelp {
	return &commandHelp{
		usage:   "list",
		summary: "List compiled types in dependency order",
	}
}

func (cmd *cmdList) flags(flags *pflag.FlagSet) {
	flags.StringSliceVarP(&cmd.sourceDirs, "dsdl", "d", nil,
		"Root namespace directory to compile (repeatable)")
	flags.StringSliceVarP(&cmd.includes, "include", "I", nil,
		"Root namespace directory with referenced types (repeatable)")
}

func (cmd *cmdList) run(ctx context.Context, argv []string) int {
	if len(cmd.sourceDirs) == 0 {
		fmt.Fprintln(os.Stderr, "No DSDL directories specified (set --dsdl=)")
		return 1
	}
	types, err := parser.ParseNamespaces(cmd.sourceDirs, cmd.includes)
	if err != nil {
		fmt.Fprintln(os.Stderr, compiler.SchemaParseError(err))
		return 1
	}
	ordered, err := compiler.ResolveOrder(types)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, t := range ordered {
		kind := "message"
		if t.Kind == dsdl.KindService {
			kind = "service"
		}
		if t.HasDefaultDTID {
			fmt.Printf("%s\t%s\tdtid=%d\n", t.FullName, kind, t.DefaultDTID)
		} else {
			fmt.Printf("%s\t%s\n", t.FullName, kind)
		}
	}
	return 0
}
