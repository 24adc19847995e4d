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

// Package ctemplate is the built-in template engine: text/template
// expansion of embedded C header and code templates. It renders type
// descriptions only (structs, constants, include guards); generated
// files carry no serialization logic.
package ctemplate

import (
	"embed"
	"strings"
	"text/template"

	"go.dsdl-lang.org/dsdlc/compiler"
	"go.dsdl-lang.org/dsdlc/gen"
)

//go:embed templates/type.h.tmpl templates/type.c.tmpl
var templateFS embed.FS

type Engine struct {
	header *template.Template
	code   *template.Template
}

var _ gen.TemplateEngine = (*Engine)(nil)

// attributeView names one attribute set for the shared "struct" and
// "constants" sub-templates: Name is the typedef name (or macro prefix
// for constants).
type attributeView struct {
	Name string
	Set  *compiler.AttributeSet
}

var templateFuncs = template.FuncMap{
	"view": func(name string, set *compiler.AttributeSet) attributeView {
		return attributeView{Name: name, Set: set}
	},
	"widen": func(bits int) int {
		switch {
		case bits <= 8:
			return 8
		case bits <= 16:
			return 16
		case bits <= 32:
			return 32
		default:
			return 64
		}
	},
}

func New() (*Engine, error) {
	header, err := template.New("type.h.tmpl").
		Funcs(templateFuncs).
		ParseFS(templateFS, "templates/type.h.tmpl")
	if err != nil {
		return nil, err
	}
	code, err := template.New("type.c.tmpl").
		Funcs(templateFuncs).
		ParseFS(templateFS, "templates/type.c.tmpl")
	if err != nil {
		return nil, err
	}
	return &Engine{
		header: header,
		code:   code,
	}, nil
}

func (e *Engine) RenderHeader(ctx gen.TemplateContext) (string, error) {
	return render(e.header, ctx)
}

func (e *Engine) RenderCode(ctx gen.TemplateContext) (string, error) {
	return render(e.code, ctx)
}

func render(tmpl *template.Template, ctx gen.TemplateContext) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", err
	}
	return buf.String(), nil
}
