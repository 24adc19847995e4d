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
	"maps"
	"slices"

	"go.dsdl-lang.org/dsdlc/dsdl"
)

// ResolveOrder sorts compound types so that every type appears after
// every compound type it references through its fields. Ties between
// simultaneously eligible types are broken by lexicographic full-name
// order, so the result is identical across runs.
func ResolveOrder(types []*dsdl.Type) ([]*dsdl.Type, error) {
	byName := make(map[string]*dsdl.Type, len(types))
	for _, t := range types {
		byName[t.FullName] = t
	}

	// Dependencies on types outside the compiled set are satisfied by
	// previously generated artifacts and do not constrain the order. A
	// field referencing its containing type is a cycle of length one.
	pending := make(map[string]map[string]struct{}, len(types))
	var selfCyclic []string
	for _, t := range types {
		deps := make(map[string]struct{})
		for _, dep := range compoundFieldTypes(t) {
			if dep.FullName == t.FullName {
				selfCyclic = append(selfCyclic, t.FullName)
				continue
			}
			if _, ok := byName[dep.FullName]; ok {
				deps[dep.FullName] = struct{}{}
			}
		}
		pending[t.FullName] = deps
	}
	if len(selfCyclic) > 0 {
		slices.Sort(selfCyclic)
		return nil, errCyclicDependency(slices.Compact(selfCyclic))
	}

	ordered := make([]*dsdl.Type, 0, len(types))
	for len(pending) > 0 {
		var ready []string
		for _, name := range slices.Sorted(maps.Keys(pending)) {
			if len(pending[name]) == 0 {
				ready = append(ready, name)
			}
		}
		if len(ready) == 0 {
			return nil, errCyclicDependency(slices.Sorted(maps.Keys(pending)))
		}
		for _, name := range ready {
			ordered = append(ordered, byName[name])
			delete(pending, name)
			for _, deps := range pending {
				delete(deps, name)
			}
		}
	}
	return ordered, nil
}

// compoundFieldTypes returns the compound types referenced by t's own
// fields, unwrapping array element types. Request and response fields
// both count for services.
func compoundFieldTypes(t *dsdl.Type) []*dsdl.Type {
	var fields []*dsdl.Field
	if t.Kind == dsdl.KindService {
		fields = append(fields, t.RequestFields...)
		fields = append(fields, t.ResponseFields...)
	} else {
		fields = t.Fields
	}

	var out []*dsdl.Type
	for _, field := range fields {
		fieldType := field.Type
		for fieldType.Category == dsdl.CategoryArray {
			fieldType = fieldType.ValueType
		}
		if fieldType.Category == dsdl.CategoryCompound {
			out = append(out, fieldType)
		}
	}
	return out
}
