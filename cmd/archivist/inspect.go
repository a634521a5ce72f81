// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solidcoredata/archivist/archive"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <catalog.arc>",
		Short: "Print an archive's header fields without decoding its body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectOne(args[0])
		},
	}
}

func inspectOne(input string) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	encVersion, userVersion, err := archive.PeekHeader(in)
	if err != nil {
		return err
	}
	fmt.Printf("%s: encodingVersion=%d user_version=%d\n", input, encVersion, userVersion)
	return nil
}
