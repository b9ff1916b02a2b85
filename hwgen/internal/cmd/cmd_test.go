// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedgo/hwgen/hwgen/internal/gen"
)

var svdDir = filepath.Join("..", "gen", "testdata", "svd")

func TestListTargets(t *testing.T) {
	var sb strings.Builder
	o := gen.Options{
		SVDDir:  svdDir,
		Environ: []string{"HWGEN_TARGET_TEST=yes"},
	}
	require.NoError(t, listTargets(&sb, o))
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "  other "), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], " HWGEN_TARGET_OTHER"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "* test "), lines[1])

	o.Targets = []string{"nosuch"}
	assert.Error(t, listTargets(&sb, o))
}

func TestCheck(t *testing.T) {
	o := gen.Options{
		Config: gen.Config{
			Dir:        filepath.Join(t.TempDir(), "hw"),
			ImportPath: "example.com/fw/hw",
		},
		SVDDir:  svdDir,
		Targets: []string{"test"},
	}
	var sb strings.Builder
	stale, err := check(&sb, o)
	require.NoError(t, err)
	assert.True(t, stale)
	assert.Contains(t, sb.String(), "out of date")

	_, err = gen.Run(o)
	require.NoError(t, err)
	sb.Reset()
	stale, err = check(&sb, o)
	require.NoError(t, err)
	assert.False(t, stale)
	assert.Contains(t, sb.String(), "up to date")

	o.Targets = []string{"other"}
	stale, err = check(&sb, o)
	require.NoError(t, err)
	assert.True(t, stale)
}
