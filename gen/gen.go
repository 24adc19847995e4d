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

// Package gen writes generated C artifacts to the output tree.
//
// Writes are lazy: a file whose new content is byte-identical to the
// existing one is skipped, so timestamps of unchanged artifacts survive
// and downstream incremental builds stay valid. The emitter assumes
// exclusive ownership of the output root for the duration of one run;
// on failure, files already written in the run are left in place.
package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"go.dsdl-lang.org/dsdlc/compiler"
)

// TemplateContext is the value handed to the template engine: the
// assembled type plus the few emission-scoped settings templates need.
type TemplateContext struct {
	Type       *compiler.AssembledType
	HeaderOnly bool
}

// TemplateEngine renders the header and code views of one assembled
// type. Implementations must be stateless: same context, same text.
type TemplateEngine interface {
	RenderHeader(ctx TemplateContext) (string, error)
	RenderCode(ctx TemplateContext) (string, error)
}

type EmitOption interface {
	apply(*Emitter)
}

type emitOption func(*Emitter)

func (f emitOption) apply(e *Emitter) { f(e) }

// WithHeaderOnly appends each type's code view to its header artifact
// instead of writing a separate .c file.
func WithHeaderOnly(headerOnly bool) EmitOption {
	return emitOption(func(e *Emitter) {
		e.headerOnly = headerOnly
	})
}

func WithLogger(log zerolog.Logger) EmitOption {
	return emitOption(func(e *Emitter) {
		e.log = log
	})
}

type Emitter struct {
	engine     TemplateEngine
	outputRoot string
	headerOnly bool
	log        zerolog.Logger
}

// EmitStats reports what one emission pass did, mostly so that callers
// and tests can observe write laziness.
type EmitStats struct {
	Written   int
	Unchanged int
}

func NewEmitter(engine TemplateEngine, outputRoot string, opts ...EmitOption) *Emitter {
	e := &Emitter{
		engine:     engine,
		outputRoot: outputRoot,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt.apply(e)
	}
	return e
}

// Emit renders and writes every type, in the given order. Rendered text
// is normalized identically on every run, and target paths are a pure
// function of the type name, so repeated emission of unchanged input
// writes nothing.
func (e *Emitter) Emit(types []*compiler.AssembledType) (EmitStats, error) {
	var stats EmitStats
	if err := os.MkdirAll(e.outputRoot, 0o755); err != nil {
		return stats, compiler.IOError(e.outputRoot, err)
	}
	for _, t := range types {
		if err := e.emitType(t, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (e *Emitter) emitType(t *compiler.AssembledType, stats *EmitStats) error {
	e.log.Info().Str("type", t.Type.FullName).Msg("generating type")

	ctx := TemplateContext{
		Type:       t,
		HeaderOnly: e.headerOnly,
	}
	headerText, err := e.engine.RenderHeader(ctx)
	if err != nil {
		return err
	}
	codeText, err := e.engine.RenderCode(ctx)
	if err != nil {
		return err
	}
	headerText = Normalize(headerText)
	codeText = Normalize(codeText)

	headerPath := filepath.Join(
		e.outputRoot, filepath.FromSlash(compiler.HeaderPath(t.Type)),
	)
	if e.headerOnly {
		return e.writeLazy(headerPath, headerText+"\r\n"+codeText, stats)
	}
	if err := e.writeLazy(headerPath, headerText, stats); err != nil {
		return err
	}
	codePath := filepath.Join(
		e.outputRoot, filepath.FromSlash(compiler.CodePath(t.Type)),
	)
	return e.writeLazy(codePath, codeText, stats)
}

// writeLazy writes content to path unless an identical file is already
// there.
func (e *Emitter) writeLazy(path, content string, stats *EmitStats) error {
	if existing, err := os.ReadFile(path); err == nil {
		if bytes.Equal(existing, []byte(content)) {
			e.log.Debug().Str("path", path).Msg("unchanged, skipping write")
			stats.Unchanged++
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return compiler.IOError(path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return compiler.IOError(path, err)
	}
	stats.Written++
	return nil
}

var blankLineRuns = regexp.MustCompile(`\n{4,}`)

// Normalize strips trailing whitespace from every line and collapses
// runs of three or more consecutive blank lines down to two. Applied to
// all rendered text before writing, identically on every run.
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return blankLineRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n\n")
}
