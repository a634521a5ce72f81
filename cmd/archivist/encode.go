// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/solidcoredata/archivist/archive"
	"github.com/solidcoredata/archivist/internal/model"
	"github.com/solidcoredata/archivist/internal/start"
	"github.com/solidcoredata/archivist/internal/textcatalog"
	svcconfig "github.com/solidcoredata/archivist/service/config"
)

func newEncodeCmd(cfg *svcconfig.Config) *cobra.Command {
	var userVersion int64

	cmd := &cobra.Command{
		Use:   "encode <catalog.txt>...",
		Short: "Archive one or more text catalogs to .arc files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uv := userVersion
			if !cmd.Flags().Changed("user-version") {
				uv = cfg.DefaultUserVersion
			}
			return start.Supervise(cmd.Context(), gracePeriod, func(ctx context.Context) error {
				return encodeAll(ctx, *cfg, args, uv)
			})
		},
	}
	// cfg isn't loaded yet at construction time, so -user-version's own
	// default is 0; the RunE above falls back to cfg.DefaultUserVersion
	// only when the flag wasn't explicitly set.
	cmd.Flags().Int64Var(&userVersion, "user-version", 0, "user_version stamped on each archive (default: config default_user_version)")
	return cmd
}

func encodeAll(ctx context.Context, cfg svcconfig.Config, inputs []string, userVersion int64) error {
	jobs := make([]func(context.Context) error, len(inputs))
	for i, input := range inputs {
		input := input
		jobs[i] = func(ctx context.Context) error {
			return encodeOne(input, userVersion)
		}
	}
	return runBounded(ctx, cfg.Concurrency, jobs)
}

func encodeOne(input string, userVersion int64) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	cat, err := textcatalog.Parse(in)
	if err != nil {
		return err
	}

	output := strings.TrimSuffix(input, ".txt") + ".arc"
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	w := archive.NewWriter(out)
	if err := archive.WriteRoot(w, cat, userVersion, model.Codec()); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"input": input, "output": output, "packages": len(cat.Packages)}).Info("encoded catalog")
	return nil
}
