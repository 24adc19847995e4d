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

package dsdl_test

import (
	"testing"

	"go.dsdl-lang.org/dsdlc/dsdl"
	"go.dsdl-lang.org/dsdlc/internal/testutil"
)

func TestTypeNames(t *testing.T) {
	t.Parallel()

	nested := &dsdl.Type{FullName: "uavcan.protocol.NodeStatus"}
	testutil.ExpectEq(t, "NodeStatus", nested.ShortName())
	testutil.ExpectEq(t, "uavcan.protocol", nested.Namespace())
	testutil.ExpectEq(t, "uavcan_protocol_NodeStatus", nested.CName())

	flat := &dsdl.Type{FullName: "Standalone"}
	testutil.ExpectEq(t, "Standalone", flat.ShortName())
	testutil.ExpectEq(t, "", flat.Namespace())
	testutil.ExpectEq(t, "Standalone", flat.CName())
}

func TestCastModeString(t *testing.T) {
	t.Parallel()

	testutil.ExpectEq(t, "Saturate", dsdl.CastModeSaturated.String())
	testutil.ExpectEq(t, "Truncate", dsdl.CastModeTruncated.String())
}
