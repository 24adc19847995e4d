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

package compiler

import (
	"fmt"
	"strings"

	"go.dsdl-lang.org/dsdlc/dsdl"
)

// Error codes, one per failure class. The compiler distinguishes
// "succeeded" from "failed with reason"; callers decide exit codes.
const (
	CodeSchemaParse         uint32 = 1001
	CodeCyclicDependency    uint32 = 1002
	CodeUnsupportedTypeKind uint32 = 1003
	CodeConstantLiteral     uint32 = 1004
	CodeIO                  uint32 = 1005
)

type Error struct {
	code    uint32
	message string
	wrapped error
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Unwrap() error {
	return err.wrapped
}

// SchemaParseError wraps a failure reported by the schema parser,
// surfacing its message verbatim.
func SchemaParseError(err error) *Error {
	return &Error{
		code:    CodeSchemaParse,
		message: err.Error(),
		wrapped: err,
	}
}

// IOError wraps a failure to create or write an output artifact.
func IOError(path string, err error) *Error {
	return &Error{
		code:    CodeIO,
		message: fmt.Sprintf("cannot write %q: %v", path, err),
		wrapped: err,
	}
}

func errCyclicDependency(members []string) *Error {
	return &Error{
		code: CodeCyclicDependency,
		message: fmt.Sprintf(
			"cyclic dependency between types: %s",
			strings.Join(members, ", "),
		),
	}
}

func errUnsupportedTypeKind(t *dsdl.Type) *Error {
	return &Error{
		code: CodeUnsupportedTypeKind,
		message: fmt.Sprintf(
			"unsupported type category %q", t.Category,
		),
	}
}

func errConstantLiteral(typeName string, c *dsdl.Constant, want string) *Error {
	return &Error{
		code: CodeConstantLiteral,
		message: fmt.Sprintf(
			"constant '%s.%s': %q is not a valid %s literal",
			typeName, c.Name, c.StringValue, want,
		),
	}
}
