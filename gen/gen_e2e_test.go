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

package gen_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.dsdl-lang.org/dsdlc/compiler"
	"go.dsdl-lang.org/dsdlc/dsdl/parser"
	"go.dsdl-lang.org/dsdlc/gen"
	"go.dsdl-lang.org/dsdlc/gen/ctemplate"
	"go.dsdl-lang.org/dsdlc/internal/testutil"
)

func writeTestDefinitions(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "uavcan")

	write := func(relPath, body string) {
		path := filepath.Join(root, filepath.FromSlash(relPath))
		testutil.AssertNoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		testutil.AssertNoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("Timestamp.uavcan", "truncated uint56 usec\n")
	write("protocol/341.NodeStatus.uavcan", `
uint32 uptime_sec
uint2 health
uint2 HEALTH_OK = 0
`)
	write("protocol/1.GetNodeInfo.uavcan", `
uavcan.Timestamp stamp
---
uavcan.protocol.NodeStatus status
uint8[<=80] name
`)
	return root
}

func generateAll(t *testing.T, root, outDir string) gen.EmitStats {
	t.Helper()
	types, err := parser.ParseNamespaces([]string{root}, nil)
	testutil.AssertNoError(t, err)
	assembled, err := compiler.Compile(types)
	testutil.AssertNoError(t, err)

	engine, err := ctemplate.New()
	testutil.AssertNoError(t, err)
	stats, err := gen.NewEmitter(engine, outDir).Emit(assembled)
	testutil.AssertNoError(t, err)
	return stats
}

func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	testutil.AssertNoError(t, err)
	return files
}

func TestGenerateEndToEnd(t *testing.T) {
	t.Parallel()

	root := writeTestDefinitions(t)
	outDir := t.TempDir()
	stats := generateAll(t, root, outDir)

	// Three types, one header and one code artifact each.
	testutil.ExpectEq(t, 6, stats.Written)

	wantFiles := []string{
		"uavcan/Timestamp.h",
		"uavcan/uavcan_Timestamp.c",
		"uavcan/protocol/NodeStatus.h",
		"uavcan/protocol/protocol_NodeStatus.c",
		"uavcan/protocol/GetNodeInfo.h",
		"uavcan/protocol/protocol_GetNodeInfo.c",
	}
	tree := snapshotTree(t, outDir)
	for _, path := range wantFiles {
		if _, ok := tree[path]; !ok {
			t.Errorf("missing generated file %q", path)
		}
	}

	serviceHeader := tree["uavcan/protocol/GetNodeInfo.h"]
	testutil.ExpectTrue(t, strings.Contains(
		serviceHeader, `#include "uavcan/Timestamp.h"`,
	))
	testutil.ExpectTrue(t, strings.Contains(
		serviceHeader, `#include "uavcan/protocol/NodeStatus.h"`,
	))
	testutil.ExpectTrue(t, strings.Contains(
		serviceHeader, "} uavcan_protocol_GetNodeInfoResponse;",
	))
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	root := writeTestDefinitions(t)

	outA := t.TempDir()
	outB := t.TempDir()
	generateAll(t, root, outA)
	generateAll(t, root, outB)

	treeA := snapshotTree(t, outA)
	treeB := snapshotTree(t, outB)
	testutil.ExpectEq(t, len(treeA), len(treeB))
	for path, contentA := range treeA {
		testutil.ExpectNoDiff(t, contentA, treeB[path])
	}
}

func TestGenerateTwiceWritesNothing(t *testing.T) {
	t.Parallel()

	root := writeTestDefinitions(t)
	outDir := t.TempDir()
	first := generateAll(t, root, outDir)
	second := generateAll(t, root, outDir)

	testutil.ExpectEq(t, 6, first.Written)
	testutil.ExpectEq(t, 0, second.Written)
	testutil.ExpectEq(t, 6, second.Unchanged)
}
