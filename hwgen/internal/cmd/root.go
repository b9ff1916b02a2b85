// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/embeddedgo/hwgen/hwgen/internal/gen"
)

// Version is set by the linker (-X) in release builds.
var Version string

var rootCmd = &cobra.Command{
	Use:   "hwgen",
	Short: "Generate Go register access packages from an SVD file.",
	Long: `Hwgen reads the SVD description of the selected target and generates
one package per peripheral and a root package with the Hardware type.

The destination directory is removed and created again on every run.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "version") {
			fmt.Println("hwgen", version())
			return
		}
		o := options(cmd)
		o.Constraint = getString(cmd, "constraint")
		o.Latch = getString(cmd, "latch")
		o.Force = getFlag(cmd, "force")
		mods, err := gen.Run(o)
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		log.Debugf("%d peripheral packages generated", len(mods))
	},
}

func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return "(unknown version)"
}

// Execute runs the command selected by the command line arguments.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(setupLog)
	rootCmd.Flags().Bool("version", false, "print the version of hwgen")
	rootCmd.Flags().String("constraint", "noos", "build constraint of the generated files (empty for none)")
	rootCmd.Flags().Bool("force", false, "remove the destination even if it contains files not generated by hwgen")
	rootCmd.Flags().String("latch", gen.DefaultLatch, "import path of the call-once guard package")

	pf := rootCmd.PersistentFlags()
	pf.StringArrayP("target", "t", nil, "select the target (SVD file name without extension)")
	pf.String("svd-dir", "svd", "directory with the SVD files of the available targets")
	pf.StringP("out", "o", "hw", "destination directory")
	pf.StringP("package", "p", "", "name of the root package (base name of the destination if empty)")
	pf.String("import-path", "", "import path of the destination (derived from go.mod if empty)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "increase logging verbosity")

	rootCmd.AddCommand(targetsCmd, checkCmd)
}

var verbose bool

func setupLog() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		DisableColors:    !term.IsTerminal(int(os.Stderr.Fd())),
		DisableTimestamp: true,
	})
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}
