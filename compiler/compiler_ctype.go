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
	"math"
	"math/bits"

	"go.dsdl-lang.org/dsdlc/dsdl"
)

// CType is the resolved C representation of one schema type. It is a
// read-only projection computed fresh per compile; the parsed schema is
// never mutated.
type CType struct {
	// Name is the C type token ("uint16_t", "float", a compound's C
	// symbol), empty for void padding.
	Name string

	// Suffix is the declarator suffix, "[N]" for arrays.
	Suffix string

	Comment  string
	BitLen   int
	MaxValue uint64
	Signed   bool
	Saturate bool

	// HalfFloat marks 16-bit floats, which are stored in the 32-bit
	// representation but need conversion helpers downstream.
	HalfFloat bool

	// Array encoding. LenPrefixBits is the width of the length prefix
	// a dynamic array carries on the wire.
	ElemCategory  dsdl.Category
	DynamicArray  bool
	MaxItems      int
	LenPrefixBits int
}

// MapCType resolves a schema type to its C representation. Pure
// function of its input.
func MapCType(t *dsdl.Type) (*CType, error) {
	switch t.Category {
	case dsdl.CategoryPrimitive:
		return mapPrimitive(t), nil
	case dsdl.CategoryArray:
		elem, err := MapCType(t.ValueType)
		if err != nil {
			return nil, err
		}
		return mapArray(t, elem), nil
	case dsdl.CategoryCompound:
		// Opaque named reference; layout is whatever the referenced
		// type resolves to.
		return &CType{Name: t.CName()}, nil
	case dsdl.CategoryVoid:
		return &CType{
			Comment: fmt.Sprintf("void%d", t.BitLen),
			BitLen:  t.BitLen,
		}, nil
	}
	return nil, errUnsupportedTypeKind(t)
}

func mapPrimitive(t *dsdl.Type) *CType {
	switch t.Primitive {
	case dsdl.KindFloat:
		name := "float"
		if t.BitLen == 64 {
			name = "double"
		}
		return &CType{
			Name:      name,
			Comment:   fmt.Sprintf("float%d %s", t.BitLen, t.CastMode),
			BitLen:    t.BitLen,
			MaxValue:  maxValue(t.BitLen, true),
			HalfFloat: t.BitLen == 16,
		}
	case dsdl.KindBoolean:
		return &CType{
			Name:     "bool",
			Comment:  fmt.Sprintf("bit len %d", t.BitLen),
			BitLen:   t.BitLen,
			MaxValue: maxValue(t.BitLen, false),
		}
	}

	signed := t.Primitive == dsdl.KindSignedInt
	prefix := "uint"
	if signed {
		prefix = "int"
	}
	expanded := expandToNextFull(t.BitLen)
	// A full-width value cannot exceed its representation, so an exact
	// fit never saturates even when the schema asks for it.
	saturate := t.CastMode == dsdl.CastModeSaturated && expanded != t.BitLen
	return &CType{
		Name:     fmt.Sprintf("%s%d_t", prefix, expanded),
		Comment:  fmt.Sprintf("bit len %d", t.BitLen),
		BitLen:   t.BitLen,
		MaxValue: maxValue(t.BitLen, signed),
		Signed:   signed,
		Saturate: saturate,
	}
}

func mapArray(t *dsdl.Type, elem *CType) *CType {
	mode := "Static Array"
	if t.ArrayMode == dsdl.ArrayModeDynamic {
		mode = "Dynamic Array"
	}
	return &CType{
		Name:   elem.Name,
		Suffix: fmt.Sprintf("[%d]", t.MaxSize),
		Comment: fmt.Sprintf(
			"%s %dbit[%d] max items", mode, elem.BitLen, t.MaxSize,
		),
		BitLen:        elem.BitLen,
		MaxValue:      elem.MaxValue,
		Signed:        elem.Signed,
		Saturate:      elem.Saturate,
		HalfFloat:     elem.HalfFloat,
		ElemCategory:  t.ValueType.Category,
		DynamicArray:  t.ArrayMode == dsdl.ArrayModeDynamic,
		MaxItems:      t.MaxSize,
		LenPrefixBits: bits.Len(uint(t.MaxSize)),
	}
}

// expandToNextFull returns the smallest native integer width that holds
// size bits.
func expandToNextFull(size int) int {
	switch {
	case size <= 8:
		return 8
	case size <= 16:
		return 16
	case size <= 32:
		return 32
	default:
		return 64
	}
}

func maxValue(bitLen int, signed bool) uint64 {
	if signed {
		return 1<<(bitLen-1) - 1
	}
	if bitLen >= 64 {
		return math.MaxUint64
	}
	return 1<<bitLen - 1
}
