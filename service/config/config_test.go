// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Concurrency)
	require.Equal(t, int64(0), cfg.DefaultUserVersion)
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	require.NoError(t, flags.Set("concurrency", "9"))
	require.NoError(t, flags.Set("default-user-version", "7"))

	cfg, err := Load(flags)
	require.NoError(t, err)
	require.Equal(t, 9, cfg.Concurrency)
	require.Equal(t, int64(7), cfg.DefaultUserVersion)
}

func TestLoadClampsConcurrencyToOne(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	require.NoError(t, flags.Set("concurrency", "0"))

	cfg, err := Load(flags)
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Concurrency)
}
