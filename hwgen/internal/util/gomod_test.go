// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportPath(t *testing.T) {
	root := t.TempDir()
	gomod := "// firmware\nmodule example.com/fw\n\ngo 1.23\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte(gomod), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "board", "disco"), 0755))

	ip, err := ImportPath(root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/fw", ip)

	ip, err = ImportPath(filepath.Join(root, "board", "disco"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/fw/board/disco", ip)

	// The destination of the generator does not exist before the first run.
	ip, err = ImportPath(filepath.Join(root, "board", "disco", "hw"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/fw/board/disco/hw", ip)

	dir, mp, err := FindModule(filepath.Join(root, "board"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/fw", mp)
	assert.Equal(t, root, dir)
}

func TestImportPathNoModuleDirective(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("go 1.23\n"), 0644))
	_, err := ImportPath(filepath.Join(root, "hw"))
	assert.ErrorContains(t, err, "no module directive")
}
