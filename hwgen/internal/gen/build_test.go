// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedgo/hwgen/hwgen/internal/util"
)

const firmwareMain = `package main

import (
	"fmt"
	"unsafe"

	"example.com/fw/hw"
)

func main() {
	h := hw.HW()
	fmt.Printf("%#x\n", uintptr(unsafe.Pointer(h.Gpioa)))
	hw.HW()
	fmt.Println("second HW returned")
}
`

// TestBuildAndRun generates the packages for the test target into a separate
// module, builds a program that calls HW twice and checks that the second call
// terminates it.
func TestBuildAndRun(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a program")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go command not found")
	}
	root, modPath, err := util.FindModule(".")
	require.NoError(t, err)

	fw := t.TempDir()
	gomod := "module example.com/fw\n\ngo 1.21\n\n" +
		"require " + modPath + " v0.0.0\n\n" +
		"replace " + modPath + " => " + root + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(fw, "go.mod"), []byte(gomod), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(fw, "main.go"), []byte(firmwareMain), 0644))

	o := options(filepath.Join(fw, "hw"), "test")
	o.ImportPath = "" // resolved from fw/go.mod
	o.Constraint = ""
	mods, err := Run(o)
	require.NoError(t, err)
	require.Len(t, mods, 1)

	exe := filepath.Join(fw, "fw")
	build := exec.Command(goBin, "build", "-o", exe, ".")
	build.Dir = fw
	build.Env = append(os.Environ(), "GOWORK=off", "GOFLAGS=-mod=mod", "CGO_ENABLED=0")
	out, err := build.CombinedOutput()
	require.NoError(t, err, string(out))

	var stdout, stderr strings.Builder
	run := exec.Command(exe)
	run.Stdout = &stdout
	run.Stderr = &stderr
	err = run.Run()
	var ee *exec.ExitError
	require.True(t, errors.As(err, &ee), "%v", err)
	assert.Equal(t, 2, ee.ExitCode())
	assert.Equal(t, "0x40020000\n", stdout.String())
	assert.Contains(t, stderr.String(), "fatal error: hw.HW called more than once")
}
