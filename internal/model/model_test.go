// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/solidcoredata/archivist/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRoundTrip(t *testing.T) {
	a := &Package{Name: "a", Status: StatusActive}
	b := &Package{Name: "b", Status: StatusDeprecated}
	a.Requires = []*Package{b}
	b.Requires = []*Package{a} // cyclic dependency

	cat := Catalog{
		Title: "demo",
		Packages: map[string]*Package{
			"a": a,
			"b": b,
		},
	}

	data, err := archive.EncodeToBytes(cat, 3, Codec())
	require.NoError(t, err)

	got, userVersion, err := archive.DecodeFromBytes(data, Codec())
	require.NoError(t, err)
	assert.Equal(t, int64(3), userVersion)
	assert.Equal(t, "demo", got.Title)
	require.Len(t, got.Packages, 2)

	gotA := got.Packages["a"]
	gotB := got.Packages["b"]
	require.NotNil(t, gotA)
	require.NotNil(t, gotB)
	assert.Equal(t, StatusActive, gotA.Status)
	assert.Equal(t, StatusDeprecated, gotB.Status)

	require.Len(t, gotA.Requires, 1)
	assert.Same(t, gotB, gotA.Requires[0])
	require.Len(t, gotB.Requires, 1)
	assert.Same(t, gotA, gotB.Requires[0])
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "deprecated", StatusDeprecated.String())
	assert.Equal(t, "unknown", Status(99).String())
}
