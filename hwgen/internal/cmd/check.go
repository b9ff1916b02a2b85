// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/embeddedgo/hwgen/hwgen/internal/gen"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "check whether the generated code is up to date",
	Long: `Check whether the code in the destination directory was generated from
the current SVD file of the selected target. The exit status is 1 if the code
must be generated again.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		stale, err := check(os.Stdout, options(cmd))
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		if stale {
			os.Exit(1)
		}
	},
}

func check(w io.Writer, o gen.Options) (bool, error) {
	cfg, err := o.Resolve()
	if err != nil {
		return false, err
	}
	desc, err := gen.Load(o)
	if err != nil {
		return false, err
	}
	stale, err := gen.Stale(cfg, desc)
	if err != nil {
		return false, err
	}
	if stale {
		fmt.Fprintf(w, "%s: out of date with %s\n", cfg.Dir, desc.Target.Path)
	} else {
		fmt.Fprintf(w, "%s: up to date\n", cfg.Dir)
	}
	return stale, nil
}
