// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/embeddedgo/hwgen/hwgen/internal/gen"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return r
}

func getStrings(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return r
}

// options returns the generator options set by the persistent flags and the
// environment.
func options(cmd *cobra.Command) gen.Options {
	return gen.Options{
		Config: gen.Config{
			Dir:        getString(cmd, "out"),
			Package:    getString(cmd, "package"),
			ImportPath: getString(cmd, "import-path"),
		},
		SVDDir:  getString(cmd, "svd-dir"),
		Targets: getStrings(cmd, "target"),
		Environ: os.Environ(),
	}
}
