// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textcatalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCyclicRequires(t *testing.T) {
	src := `
title demo
package a active b
package b deprecated a
`
	cat, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "demo", cat.Title)
	require.Len(t, cat.Packages, 2)

	a := cat.Packages["a"]
	b := cat.Packages["b"]
	require.Len(t, a.Requires, 1)
	assert.Same(t, b, a.Requires[0])
	require.Len(t, b.Requires, 1)
	assert.Same(t, a, b.Requires[0])
}

func TestParseUnknownRequire(t *testing.T) {
	_, err := Parse(strings.NewReader("package a active missing\n"))
	require.Error(t, err)
}

func TestWriteIsSortedAndRoundTrips(t *testing.T) {
	src := "title demo\npackage b active \npackage a active b\n"
	cat, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, Write(&buf, cat))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "title demo", lines[0])
	assert.Equal(t, "package a active b", lines[1])
	assert.Equal(t, "package b active", lines[2])
}
