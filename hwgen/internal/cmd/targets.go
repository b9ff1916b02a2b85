// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/embeddedgo/hwgen/hwgen/internal/gen"
	"github.com/embeddedgo/hwgen/hwgen/internal/target"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "list the available targets",
	Long: `List the targets described by the SVD files in the svd-dir directory.
The selected targets are marked with an asterisk.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		o := options(cmd)
		if err := listTargets(os.Stdout, o); err != nil {
			log.Error(err)
			os.Exit(1)
		}
	},
}

func listTargets(w io.Writer, o gen.Options) error {
	avail, err := target.List(o.SVDDir)
	if err != nil {
		return err
	}
	sel, err := target.Selected(avail, o.Environ, o.Targets)
	if err != nil {
		return err
	}
	for _, t := range avail {
		mark := ' '
		if slices.Contains(sel, t.Name) {
			mark = '*'
		}
		fmt.Fprintf(w, "%c %-24s %s\n", mark, t.Name, t.EnvName())
	}
	return nil
}
