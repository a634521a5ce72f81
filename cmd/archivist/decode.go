// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/solidcoredata/archivist/archive"
	"github.com/solidcoredata/archivist/internal/model"
	"github.com/solidcoredata/archivist/internal/start"
	"github.com/solidcoredata/archivist/internal/textcatalog"
	svcconfig "github.com/solidcoredata/archivist/service/config"
)

func newDecodeCmd(cfg *svcconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <catalog.arc>...",
		Short: "Restore one or more archives and print them as text catalogs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return start.Supervise(cmd.Context(), gracePeriod, func(ctx context.Context) error {
				return decodeAll(ctx, *cfg, args)
			})
		},
	}
}

func decodeAll(ctx context.Context, cfg svcconfig.Config, inputs []string) error {
	jobs := make([]func(context.Context) error, len(inputs))
	for i, input := range inputs {
		input := input
		jobs[i] = func(ctx context.Context) error {
			return decodeOne(input)
		}
	}
	return runBounded(ctx, cfg.Concurrency, jobs)
}

func decodeOne(input string) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	r := archive.NewReader(in)
	cat, err := archive.ReadRoot(r, model.Codec())
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"input":        input,
		"user_version": r.UserVersion(),
		"packages":     len(cat.Packages),
	}).Info("decoded catalog")

	return textcatalog.Write(os.Stdout, cat)
}
