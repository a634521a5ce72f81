// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads cmd/archivist's runtime settings: batch
// concurrency and the default user_version stamped on archives it
// writes. Settings come from (in increasing precedence) defaults, an
// archivist.yaml in the working directory, and ARCHIVIST_*
// environment variables.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds cmd/archivist's runtime settings.
type Config struct {
	// Concurrency bounds how many files a batch encode/decode
	// processes at once.
	Concurrency int
	// DefaultUserVersion is the user_version stamped on archives
	// written by "archivist encode" when -user-version isn't given.
	DefaultUserVersion int64
}

// Load reads settings from archivist.yaml (if present) and from
// ARCHIVIST_-prefixed environment variables, falling back to defaults
// for anything unset. If flags is non-nil, any flag in it registered
// under the same name as a setting (see BindFlags) takes precedence
// over both the config file and the environment.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetConfigName("archivist")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("ARCHIVIST")
	v.AutomaticEnv()

	v.SetDefault("concurrency", 4)
	v.SetDefault("default_user_version", 0)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, fmt.Errorf("config: reading archivist.yaml: %w", err)
		}
	}

	if flags != nil {
		if f := flags.Lookup("concurrency"); f != nil {
			if err := v.BindPFlag("concurrency", f); err != nil {
				return Config{}, fmt.Errorf("config: binding flags: %w", err)
			}
		}
		if f := flags.Lookup("default-user-version"); f != nil {
			if err := v.BindPFlag("default_user_version", f); err != nil {
				return Config{}, fmt.Errorf("config: binding flags: %w", err)
			}
		}
	}

	cfg := Config{
		Concurrency:        v.GetInt("concurrency"),
		DefaultUserVersion: v.GetInt64("default_user_version"),
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return cfg, nil
}

// BindFlags registers the flags Load knows how to read out of a
// pflag.FlagSet, so a caller can wire them onto a cobra command before
// calling Load(flags).
func BindFlags(flags *pflag.FlagSet) {
	flags.Int("concurrency", 4, "max files processed at once")
	flags.Int64("default-user-version", 0, "user_version stamped on archives when -user-version isn't given")
}
