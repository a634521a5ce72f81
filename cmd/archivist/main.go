// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command archivist is a small CLI front end over the archive
// package: it is the one piece of this repository allowed to touch
// files, sockets, or the environment — the archive package itself
// only ever talks to an io.Writer/io.Reader the caller supplies.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	svcconfig "github.com/solidcoredata/archivist/service/config"
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	cfg := &svcconfig.Config{}

	root := &cobra.Command{
		Use:   "archivist",
		Short: "Archive and restore package catalogs with the archive engine",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	svcconfig.BindFlags(root.PersistentFlags())

	// PersistentPreRunE runs after cobra has parsed flags but before any
	// subcommand's RunE, so this is the first point at which
	// root.PersistentFlags() reflects what the user actually passed.
	// Loading cfg any earlier (e.g. during this function's own
	// construction) would read --concurrency/--default-user-version
	// before pflag.Parse ever touched them.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
		loaded, err := svcconfig.Load(root.PersistentFlags())
		if err != nil {
			return err
		}
		*cfg = loaded
		return nil
	}

	root.AddCommand(newEncodeCmd(cfg))
	root.AddCommand(newDecodeCmd(cfg))
	root.AddCommand(newInspectCmd())
	return root
}
