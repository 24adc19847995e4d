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

// Package dsdl defines the in-memory model of a parsed DSDL type graph.
//
// The graph is produced once per compile by a schema parser and treated
// as immutable input by the compiler. Derived per-compile data lives in
// separate view records, never on these types.
package dsdl

import (
	"strings"
)

type Category uint8

const (
	CategoryPrimitive Category = iota
	CategoryArray
	CategoryCompound
	CategoryVoid
)

func (c Category) String() string {
	switch c {
	case CategoryPrimitive:
		return "primitive"
	case CategoryArray:
		return "array"
	case CategoryCompound:
		return "compound"
	case CategoryVoid:
		return "void"
	}
	return "unknown"
}

// Kind distinguishes the two flavors of compound type.
type Kind uint8

const (
	KindMessage Kind = iota
	KindService
)

type PrimitiveKind uint8

const (
	KindBoolean PrimitiveKind = iota
	KindUnsignedInt
	KindSignedInt
	KindFloat
)

// CastMode is the policy for out-of-range values.
type CastMode uint8

const (
	CastModeSaturated CastMode = iota
	CastModeTruncated
)

func (m CastMode) String() string {
	if m == CastModeTruncated {
		return "Truncate"
	}
	return "Saturate"
}

type ArrayMode uint8

const (
	ArrayModeStatic ArrayMode = iota
	ArrayModeDynamic
)

// Type is one schema-defined type. Exactly one group of fields is
// meaningful, selected by Category (and, for compounds, Kind).
type Type struct {
	Category Category

	// Primitive and void types.
	Primitive PrimitiveKind
	BitLen    int
	CastMode  CastMode

	// Array types.
	ArrayMode ArrayMode
	MaxSize   int
	ValueType *Type

	// Compound types. FullName is the dotted name, unique within a
	// compile. Messages use Fields/Constants/Union; services use the
	// Request*/Response* groups.
	FullName       string
	Kind           Kind
	Fields         []*Field
	Constants      []*Constant
	Union          bool
	DefaultDTID    int
	HasDefaultDTID bool

	RequestFields     []*Field
	RequestConstants  []*Constant
	RequestUnion      bool
	ResponseFields    []*Field
	ResponseConstants []*Constant
	ResponseUnion     bool

	// SourceFile is the definition file this type was parsed from,
	// for error reporting only.
	SourceFile string
}

// ShortName returns the last component of the dotted full name.
func (t *Type) ShortName() string {
	if i := strings.LastIndexByte(t.FullName, '.'); i >= 0 {
		return t.FullName[i+1:]
	}
	return t.FullName
}

// Namespace returns the dotted full name with the short name removed.
func (t *Type) Namespace() string {
	if i := strings.LastIndexByte(t.FullName, '.'); i >= 0 {
		return t.FullName[:i]
	}
	return ""
}

// CName returns the C symbol for a compound type: the dotted full name
// with every '.' replaced by '_'.
func (t *Type) CName() string {
	return strings.ReplaceAll(t.FullName, ".", "_")
}

type Field struct {
	// Name is empty for void (padding) fields.
	Name string
	Type *Type
}

type Constant struct {
	Name string
	Type *Type

	// StringValue is the literal exactly as written in the schema.
	StringValue string
}
