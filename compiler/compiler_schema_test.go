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

package compiler_test

import (
	"go.dsdl-lang.org/dsdlc/dsdl"
)

func message(fullName string, fields ...*dsdl.Field) *dsdl.Type {
	return &dsdl.Type{
		Category: dsdl.CategoryCompound,
		Kind:     dsdl.KindMessage,
		FullName: fullName,
		Fields:   fields,
	}
}

func service(fullName string, request, response []*dsdl.Field) *dsdl.Type {
	return &dsdl.Type{
		Category:       dsdl.CategoryCompound,
		Kind:           dsdl.KindService,
		FullName:       fullName,
		RequestFields:  request,
		ResponseFields: response,
	}
}

func field(name string, fieldType *dsdl.Type) *dsdl.Field {
	return &dsdl.Field{
		Name: name,
		Type: fieldType,
	}
}

func uintType(bitLen int) *dsdl.Type {
	return &dsdl.Type{
		Category:  dsdl.CategoryPrimitive,
		Primitive: dsdl.KindUnsignedInt,
		BitLen:    bitLen,
	}
}

func intType(bitLen int) *dsdl.Type {
	return &dsdl.Type{
		Category:  dsdl.CategoryPrimitive,
		Primitive: dsdl.KindSignedInt,
		BitLen:    bitLen,
	}
}

func floatType(bitLen int) *dsdl.Type {
	return &dsdl.Type{
		Category:  dsdl.CategoryPrimitive,
		Primitive: dsdl.KindFloat,
		BitLen:    bitLen,
	}
}

func boolType() *dsdl.Type {
	return &dsdl.Type{
		Category:  dsdl.CategoryPrimitive,
		Primitive: dsdl.KindBoolean,
		BitLen:    1,
	}
}

func voidType(bitLen int) *dsdl.Type {
	return &dsdl.Type{
		Category: dsdl.CategoryVoid,
		BitLen:   bitLen,
	}
}

func truncated(t *dsdl.Type) *dsdl.Type {
	t.CastMode = dsdl.CastModeTruncated
	return t
}

func staticArray(elem *dsdl.Type, maxSize int) *dsdl.Type {
	return &dsdl.Type{
		Category:  dsdl.CategoryArray,
		ArrayMode: dsdl.ArrayModeStatic,
		MaxSize:   maxSize,
		ValueType: elem,
	}
}

func dynamicArray(elem *dsdl.Type, maxSize int) *dsdl.Type {
	return &dsdl.Type{
		Category:  dsdl.CategoryArray,
		ArrayMode: dsdl.ArrayModeDynamic,
		MaxSize:   maxSize,
		ValueType: elem,
	}
}

func constant(name string, constType *dsdl.Type, value string) *dsdl.Constant {
	return &dsdl.Constant{
		Name:        name,
		Type:        constType,
		StringValue: value,
	}
}
