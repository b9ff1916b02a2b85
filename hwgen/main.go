// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Hwgen generates the Go packages that give access to the peripheral
// registers of a microcontroller described by an SVD file.
//
// Usage:
//
//	hwgen [flags]
//	hwgen targets [flags]
//	hwgen check [flags]
//
// The target is selected with the -t flag or by setting the
// HWGEN_TARGET_<NAME> environment variable. Exactly one target must be
// selected. See hwgen -h for the list of flags.
package main

import "github.com/embeddedgo/hwgen/hwgen/internal/cmd"

func main() {
	cmd.Execute()
}
