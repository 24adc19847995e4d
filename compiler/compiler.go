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

// Package compiler turns a parsed DSDL type graph into dependency
// ordered, fully resolved C type descriptions.
//
// The pipeline is a single synchronous pass: order the compound types,
// then assemble each one. Assembled records are never mutated after
// creation; later types read earlier ones only to build include lists.
// Any failure aborts the whole compile.
package compiler

import (
	"go.dsdl-lang.org/dsdlc/dsdl"
)

// Compile resolves the declaration order of types and assembles each
// one. The returned slice is in emission order: every type strictly
// after everything it references. Compiling the same input twice
// produces identical output.
func Compile(types []*dsdl.Type) ([]*AssembledType, error) {
	ordered, err := ResolveOrder(types)
	if err != nil {
		return nil, err
	}
	assembled := make([]*AssembledType, 0, len(ordered))
	for _, t := range ordered {
		a, err := Assemble(t)
		if err != nil {
			return nil, err
		}
		assembled = append(assembled, a)
	}
	return assembled, nil
}
