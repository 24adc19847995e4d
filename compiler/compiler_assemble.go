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
	"math/bits"
	"slices"
	"strconv"
	"strings"

	"go.dsdl-lang.org/dsdlc/dsdl"
)

// Attribute is one field or constant of an assembled type, paired with
// its resolved C representation.
type Attribute struct {
	Name  string
	CType *CType

	// Value is the rendered literal for constants, empty for fields.
	Value string

	Category dsdl.Category
	Void     bool

	// ArraySize is the element multiplicity for array fields.
	ArraySize int

	// LastItem marks the final attribute in its list, for separator
	// placement in templates.
	LastItem bool
}

// AttributeSet is the assembled view of one field list: a message body,
// or one side of a service.
type AttributeSet struct {
	Fields    []*Attribute
	Constants []*Attribute

	HasArray   bool
	HasFloat16 bool

	// UnionTagBits is the minimum tag width selecting the active
	// field, zero when the set is not a union (or has no fields).
	UnionTagBits int
}

// AssembledType is the fully resolved description of one compound type,
// ready for template expansion.
type AssembledType struct {
	Type *dsdl.Type

	// CName is the namespace-qualified C symbol ("uavcan_protocol_NodeStatus").
	CName        string
	IncludeGuard string
	MacroName    string

	// HeaderFilename is the slash-separated relative path of this
	// type's header artifact, as referenced from generated includes.
	HeaderFilename string

	// Includes lists the header artifacts of every compound type
	// referenced by this type's own fields: sorted, duplicate free.
	Includes []string

	NamespaceComponents []string
	HasDefaultDTID      bool
	DefaultDTID         int

	// Message is set for message kinds; Request and Response for
	// service kinds.
	Message  *AttributeSet
	Request  *AttributeSet
	Response *AttributeSet

	// AllAttributes merges every field and constant of the type, for
	// documentation and signature rendering.
	AllAttributes []*Attribute
}

// HeaderPath returns the slash-separated relative path of a compound
// type's header artifact.
func HeaderPath(t *dsdl.Type) string {
	return strings.ReplaceAll(t.FullName, ".", "/") + ".h"
}

// CodePath returns the slash-separated relative path of a compound
// type's code artifact. The filename is prefixed with the enclosing
// namespace segment so that sibling namespaces cannot collide.
func CodePath(t *dsdl.Type) string {
	segments := strings.Split(t.FullName, ".")
	if len(segments) >= 2 {
		prefix := segments[len(segments)-2]
		segments[len(segments)-1] = prefix + "_" + segments[len(segments)-1]
	}
	return strings.Join(segments, "/") + ".c"
}

// Assemble derives the whole-type metadata for one compound type:
// names, include list, per-attribute C representations, union tag
// widths, and validated constant literals.
func Assemble(t *dsdl.Type) (*AssembledType, error) {
	cname := t.CName()
	segments := strings.Split(t.FullName, ".")
	out := &AssembledType{
		Type:                t,
		CName:               cname,
		IncludeGuard:        "__" + strings.ToUpper(cname),
		MacroName:           strings.ToUpper(cname),
		HeaderFilename:      HeaderPath(t),
		NamespaceComponents: segments[:len(segments)-1],
		HasDefaultDTID:      t.HasDefaultDTID,
		DefaultDTID:         t.DefaultDTID,
	}

	if t.Kind == dsdl.KindService {
		request, err := assembleAttributes(
			t, t.RequestFields, t.RequestConstants, t.RequestUnion,
		)
		if err != nil {
			return nil, err
		}
		response, err := assembleAttributes(
			t, t.ResponseFields, t.ResponseConstants, t.ResponseUnion,
		)
		if err != nil {
			return nil, err
		}
		out.Request = request
		out.Response = response
		out.Includes = fieldIncludes(
			slices.Concat(t.RequestFields, t.ResponseFields),
		)
		out.AllAttributes = slices.Concat(
			request.Fields, request.Constants,
			response.Fields, response.Constants,
		)
		return out, nil
	}

	message, err := assembleAttributes(t, t.Fields, t.Constants, t.Union)
	if err != nil {
		return nil, err
	}
	out.Message = message
	out.Includes = fieldIncludes(t.Fields)
	out.AllAttributes = slices.Concat(message.Fields, message.Constants)
	return out, nil
}

func assembleAttributes(
	t *dsdl.Type,
	fields []*dsdl.Field,
	constants []*dsdl.Constant,
	union bool,
) (*AttributeSet, error) {
	set := &AttributeSet{}
	for i, field := range fields {
		ctype, err := MapCType(field.Type)
		if err != nil {
			return nil, err
		}
		attr := &Attribute{
			Name:     field.Name,
			CType:    ctype,
			Category: field.Type.Category,
			Void:     field.Type.Category == dsdl.CategoryVoid,
			LastItem: i == len(fields)-1,
		}
		if field.Type.Category == dsdl.CategoryArray {
			attr.ArraySize = field.Type.MaxSize
			set.HasArray = true
		}
		if ctype.HalfFloat {
			set.HasFloat16 = true
		}
		set.Fields = append(set.Fields, attr)
	}
	for i, constant := range constants {
		ctype, err := MapCType(constant.Type)
		if err != nil {
			return nil, err
		}
		value, err := renderConstant(t, constant)
		if err != nil {
			return nil, err
		}
		set.Constants = append(set.Constants, &Attribute{
			Name:     constant.Name,
			CType:    ctype,
			Value:    value,
			Category: constant.Type.Category,
			LastItem: i == len(constants)-1,
		})
	}
	if union && len(fields) > 0 {
		set.UnionTagBits = bits.Len(uint(len(fields)))
	}
	return set, nil
}

// renderConstant validates a constant's literal for its declared
// numeric kind and returns the C rendering.
func renderConstant(t *dsdl.Type, c *dsdl.Constant) (string, error) {
	if c.Type.Primitive == dsdl.KindFloat {
		if _, err := strconv.ParseFloat(c.StringValue, 64); err != nil {
			return "", errConstantLiteral(t.FullName, c, "floating point")
		}
		return c.StringValue, nil
	}
	if _, err := strconv.ParseInt(c.StringValue, 10, 64); err != nil {
		if _, err := strconv.ParseUint(c.StringValue, 10, 64); err != nil {
			return "", errConstantLiteral(t.FullName, c, "integer")
		}
	}
	if c.Type.Primitive == dsdl.KindUnsignedInt {
		return c.StringValue + "U", nil
	}
	return c.StringValue, nil
}

// fieldIncludes returns the sorted, duplicate-free header paths of the
// compound types reachable from the given fields, unwrapping arrays.
func fieldIncludes(fields []*dsdl.Field) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, field := range fields {
		fieldType := field.Type
		for fieldType.Category == dsdl.CategoryArray {
			fieldType = fieldType.ValueType
		}
		if fieldType.Category != dsdl.CategoryCompound {
			continue
		}
		include := HeaderPath(fieldType)
		if _, ok := seen[include]; ok {
			continue
		}
		seen[include] = struct{}{}
		out = append(out, include)
	}
	slices.Sort(out)
	return out
}
