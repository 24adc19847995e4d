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

// Package parser reads UAVCAN v0 DSDL definition files into a dsdl type
// graph.
//
// A definition file is named "[DTID.]Name.uavcan" and lives under a root
// namespace directory; the namespace is the root directory's base name
// plus any subdirectory components. The file body is line oriented:
// '#' starts a comment, "---" separates a service's request and response
// sections, "@union" marks the current section as a union, and every
// other non-blank line declares either a field or a constant.
package parser

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.dsdl-lang.org/dsdlc/dsdl"
)

const definitionFileSuffix = ".uavcan"

// ParseNamespaces parses every definition file under the root namespace
// directories in sourceDirs and returns the resulting types, sorted by
// full name. Directories in searchDirs are parsed as well so that their
// types can be referenced, but they are not included in the result.
func ParseNamespaces(sourceDirs, searchDirs []string) ([]*dsdl.Type, error) {
	p := &parser{
		types: make(map[string]*dsdl.Type),
	}
	for _, dir := range sourceDirs {
		if err := p.scanRoot(dir, true); err != nil {
			return nil, err
		}
	}
	for _, dir := range searchDirs {
		if err := p.scanRoot(dir, false); err != nil {
			return nil, err
		}
	}
	for _, file := range p.files {
		if err := p.parseFile(file); err != nil {
			return nil, err
		}
	}

	var out []*dsdl.Type
	for _, file := range p.files {
		if file.compile {
			out = append(out, file.type_)
		}
	}
	slices.SortFunc(out, func(a, b *dsdl.Type) int {
		return strings.Compare(a.FullName, b.FullName)
	})
	return out, nil
}

type parser struct {
	types map[string]*dsdl.Type
	files []*definitionFile
}

type definitionFile struct {
	path    string
	type_   *dsdl.Type
	compile bool
}

func (p *parser) scanRoot(root string, compile bool) error {
	root = filepath.Clean(root)
	rootNS := filepath.Base(root)
	walk := func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(path, definitionFileSuffix) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		ns := rootNS
		if dir := filepath.Dir(rel); dir != "." {
			ns += "." + strings.ReplaceAll(filepath.ToSlash(dir), "/", ".")
		}
		return p.addFile(path, ns, compile)
	}
	if err := filepath.WalkDir(root, walk); err != nil {
		return fmt.Errorf("scan namespace directory %q: %w", root, err)
	}
	return nil
}

func (p *parser) addFile(path, namespace string, compile bool) error {
	base := strings.TrimSuffix(filepath.Base(path), definitionFileSuffix)
	shortName := base
	dtid := 0
	hasDTID := false
	if i := strings.IndexByte(base, '.'); i >= 0 {
		n, err := strconv.Atoi(base[:i])
		if err != nil {
			return fmt.Errorf("%s: bad data type ID %q", path, base[:i])
		}
		dtid = n
		hasDTID = true
		shortName = base[i+1:]
		if strings.ContainsRune(shortName, '.') {
			return fmt.Errorf("%s: bad definition file name", path)
		}
	}
	if shortName == "" {
		return fmt.Errorf("%s: bad definition file name", path)
	}

	fullName := namespace + "." + shortName
	if prev, ok := p.types[fullName]; ok {
		return fmt.Errorf(
			"%s: type %q already defined in %s",
			path, fullName, prev.SourceFile,
		)
	}
	t := &dsdl.Type{
		Category:       dsdl.CategoryCompound,
		FullName:       fullName,
		DefaultDTID:    dtid,
		HasDefaultDTID: hasDTID,
		SourceFile:     path,
	}
	p.types[fullName] = t
	p.files = append(p.files, &definitionFile{
		path:    path,
		type_:   t,
		compile: compile,
	})
	return nil
}

// section accumulates attributes for a message body, or for one side of
// a service definition.
type section struct {
	fields    []*dsdl.Field
	constants []*dsdl.Constant
	union     bool
}

func (p *parser) parseFile(file *definitionFile) error {
	src, err := os.ReadFile(file.path)
	if err != nil {
		return fmt.Errorf("read definition file: %w", err)
	}

	t := file.type_
	sections := []*section{{}}
	cur := sections[0]
	for lineno, rawLine := range strings.Split(string(src), "\n") {
		line := rawLine
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fail := func(format string, args ...any) error {
			msg := fmt.Sprintf(format, args...)
			return fmt.Errorf("%s:%d: %s", file.path, lineno+1, msg)
		}

		switch {
		case line == "---":
			if len(sections) == 2 {
				return fail("duplicate service response marker")
			}
			cur = &section{}
			sections = append(sections, cur)
		case line == "@union":
			if len(cur.fields) > 0 {
				return fail("@union must precede the first field")
			}
			cur.union = true
		default:
			if i := constantAssignIndex(line); i >= 0 {
				constant, err := p.parseConstant(line[:i], line[i+1:], t.Namespace())
				if err != nil {
					return fail("%v", err)
				}
				cur.constants = append(cur.constants, constant)
				continue
			}
			field, err := p.parseField(line, t.Namespace())
			if err != nil {
				return fail("%v", err)
			}
			cur.fields = append(cur.fields, field)
		}
	}

	if len(sections) == 1 {
		t.Kind = dsdl.KindMessage
		t.Fields = cur.fields
		t.Constants = cur.constants
		t.Union = cur.union
		return nil
	}
	t.Kind = dsdl.KindService
	t.RequestFields = sections[0].fields
	t.RequestConstants = sections[0].constants
	t.RequestUnion = sections[0].union
	t.ResponseFields = sections[1].fields
	t.ResponseConstants = sections[1].constants
	t.ResponseUnion = sections[1].union
	return nil
}

func (p *parser) parseField(line, namespace string) (*dsdl.Field, error) {
	tokens := strings.Fields(line)
	castMode, explicitCast, tokens := splitCastMode(tokens)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("missing field type")
	}
	fieldType, err := p.parseTypeToken(tokens[0], castMode, explicitCast, namespace)
	if err != nil {
		return nil, err
	}
	tokens = tokens[1:]

	if fieldType.Category == dsdl.CategoryVoid {
		if len(tokens) != 0 {
			return nil, fmt.Errorf("void field must not have a name")
		}
		return &dsdl.Field{Type: fieldType}, nil
	}
	if len(tokens) != 1 {
		return nil, fmt.Errorf("expected exactly one field name")
	}
	return &dsdl.Field{
		Name: tokens[0],
		Type: fieldType,
	}, nil
}

// constantAssignIndex returns the position of the '=' that separates a
// constant declaration from its value, or -1 for field lines. An '='
// inside an array specifier ("uint8[<=4] data") does not count.
func constantAssignIndex(line string) int {
	depth := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '[':
			depth++
		case ']':
			depth--
		case '=':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func (p *parser) parseConstant(lhs, rhs, namespace string) (*dsdl.Constant, error) {
	value := strings.TrimSpace(rhs)
	if value == "" {
		return nil, fmt.Errorf("missing constant value")
	}

	tokens := strings.Fields(lhs)
	castMode, explicitCast, tokens := splitCastMode(tokens)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("expected constant declaration 'type NAME = value'")
	}
	constType, err := p.parseTypeToken(tokens[0], castMode, explicitCast, namespace)
	if err != nil {
		return nil, err
	}
	if constType.Category != dsdl.CategoryPrimitive {
		return nil, fmt.Errorf("constant type must be primitive")
	}
	return &dsdl.Constant{
		Name:        tokens[1],
		Type:        constType,
		StringValue: value,
	}, nil
}

func splitCastMode(tokens []string) (dsdl.CastMode, bool, []string) {
	if len(tokens) > 0 {
		switch tokens[0] {
		case "saturated":
			return dsdl.CastModeSaturated, true, tokens[1:]
		case "truncated":
			return dsdl.CastModeTruncated, true, tokens[1:]
		}
	}
	return dsdl.CastModeSaturated, false, tokens
}

func (p *parser) parseTypeToken(
	token string,
	castMode dsdl.CastMode,
	explicitCast bool,
	namespace string,
) (*dsdl.Type, error) {
	if i := strings.IndexByte(token, '['); i >= 0 {
		if !strings.HasSuffix(token, "]") {
			return nil, fmt.Errorf("malformed array type %q", token)
		}
		elem, err := p.parseScalarToken(token[:i], castMode, explicitCast, namespace)
		if err != nil {
			return nil, err
		}
		if elem.Category == dsdl.CategoryVoid {
			return nil, fmt.Errorf("void type cannot be an array element")
		}
		return parseArraySize(token[i+1:len(token)-1], elem)
	}
	return p.parseScalarToken(token, castMode, explicitCast, namespace)
}

func parseArraySize(spec string, elem *dsdl.Type) (*dsdl.Type, error) {
	mode := dsdl.ArrayModeStatic
	adjust := 0
	switch {
	case strings.HasPrefix(spec, "<="):
		mode = dsdl.ArrayModeDynamic
		spec = spec[2:]
	case strings.HasPrefix(spec, "<"):
		// "[<N]" means at most N-1 elements.
		mode = dsdl.ArrayModeDynamic
		adjust = -1
		spec = spec[1:]
	}
	maxSize, err := strconv.Atoi(spec)
	if err != nil {
		return nil, fmt.Errorf("malformed array size %q", spec)
	}
	maxSize += adjust
	if maxSize <= 0 {
		return nil, fmt.Errorf("array max size must be positive")
	}
	return &dsdl.Type{
		Category:  dsdl.CategoryArray,
		ArrayMode: mode,
		MaxSize:   maxSize,
		ValueType: elem,
	}, nil
}

func (p *parser) parseScalarToken(
	token string,
	castMode dsdl.CastMode,
	explicitCast bool,
	namespace string,
) (*dsdl.Type, error) {
	if token == "bool" {
		return &dsdl.Type{
			Category:  dsdl.CategoryPrimitive,
			Primitive: dsdl.KindBoolean,
			BitLen:    1,
			CastMode:  castMode,
		}, nil
	}
	for prefix, kind := range primitivePrefixes {
		bitSpec, ok := strings.CutPrefix(token, prefix)
		if !ok || bitSpec == "" || !isDigits(bitSpec) {
			continue
		}
		bits, err := strconv.Atoi(bitSpec)
		if err != nil {
			return nil, fmt.Errorf("malformed type %q", token)
		}
		if kind == categoryVoidKind {
			if bits < 1 || bits > 64 {
				return nil, fmt.Errorf("void bit length %d out of range [1, 64]", bits)
			}
			return &dsdl.Type{
				Category: dsdl.CategoryVoid,
				BitLen:   bits,
			}, nil
		}
		if kind == dsdl.KindFloat {
			if bits != 16 && bits != 32 && bits != 64 {
				return nil, fmt.Errorf("float bit length %d not in {16, 32, 64}", bits)
			}
		} else if bits < 1 || bits > 64 {
			return nil, fmt.Errorf("integer bit length %d out of range [1, 64]", bits)
		}
		return &dsdl.Type{
			Category:  dsdl.CategoryPrimitive,
			Primitive: kind,
			BitLen:    bits,
			CastMode:  castMode,
		}, nil
	}

	if explicitCast {
		return nil, fmt.Errorf("cast mode is not applicable to compound type %q", token)
	}
	fullName := token
	if !strings.ContainsRune(token, '.') {
		fullName = namespace + "." + token
	}
	ref, ok := p.types[fullName]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", fullName)
	}
	return ref, nil
}

// categoryVoidKind is a placeholder PrimitiveKind for the "voidN" prefix
// in primitivePrefixes; void types are not primitives.
const categoryVoidKind dsdl.PrimitiveKind = 0xFF

var primitivePrefixes = map[string]dsdl.PrimitiveKind{
	"uint":  dsdl.KindUnsignedInt,
	"int":   dsdl.KindSignedInt,
	"float": dsdl.KindFloat,
	"void":  categoryVoidKind,
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
