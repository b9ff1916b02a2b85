// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package target selects the hardware description used to generate the
// hardware package and loads it.
package target

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/embeddedgo/hwgen/svd"
)

// EnvPrefix is the prefix of the environment variables that select targets:
// HWGEN_TARGET_STM32F7X=1 selects the stm32f7x target.
const EnvPrefix = "HWGEN_TARGET_"

var (
	ErrNoTarget        = errors.New("no target selected")
	ErrMultipleTargets = errors.New("multiple targets selected")
	ErrUnknownTarget   = errors.New("unknown target")
)

// Target is a hardware description document that can be selected.
type Target struct {
	Name string // lower case base name of the file without extension
	Path string
}

// EnvName returns the name of the environment variable that selects t.
func (t Target) EnvName() string {
	return EnvPrefix + envName(t.Name)
}

func envName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return r
		case 'a' <= r && r <= 'z':
			return r - 'a' + 'A'
		}
		return '_'
	}, name)
}

// List returns the targets described by the SVD files in dir sorted by name.
func List(dir string) ([]Target, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ts []Target
	for _, de := range des {
		name := de.Name()
		ext := filepath.Ext(name)
		if de.IsDir() || !strings.EqualFold(ext, ".svd") {
			continue
		}
		ts = append(ts, Target{
			Name: strings.ToLower(strings.TrimSuffix(name, ext)),
			Path: filepath.Join(dir, name),
		})
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].Name < ts[j].Name })
	return ts, nil
}

// Selected returns the names of the targets selected by the environment
// (KEY=VALUE list, see os.Environ) and by the command line. A HWGEN_TARGET_*
// variable selects its target unless its value is empty, 0 or false.
// The result is sorted and contains no duplicates.
func Selected(avail []Target, environ, names []string) ([]string, error) {
	byEnv := make(map[string]string, len(avail))
	byName := make(map[string]bool, len(avail))
	for _, t := range avail {
		byEnv[t.EnvName()] = t.Name
		byName[t.Name] = true
	}
	sel := make(map[string]bool)
	for _, kv := range environ {
		k, v, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(k, EnvPrefix) {
			continue
		}
		switch strings.ToLower(v) {
		case "", "0", "false":
			continue
		}
		name, ok := byEnv[k]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, k)
		}
		sel[name] = true
	}
	for _, name := range names {
		name = strings.ToLower(name)
		if !byName[name] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, name)
		}
		sel[name] = true
	}
	list := make([]string, 0, len(sel))
	for name := range sel {
		list = append(list, name)
	}
	sort.Strings(list)
	return list, nil
}

// Select returns the only selected target. It fails if no target or more than
// one target is selected.
func Select(avail []Target, environ, names []string) (Target, error) {
	sel, err := Selected(avail, environ, names)
	if err != nil {
		return Target{}, err
	}
	switch len(sel) {
	case 0:
		return Target{}, ErrNoTarget
	case 1:
	default:
		return Target{}, fmt.Errorf(
			"%w: %s", ErrMultipleTargets, strings.Join(sel, ", "),
		)
	}
	for _, t := range avail {
		if t.Name == sel[0] {
			return t, nil
		}
	}
	panic("unreachable")
}

// Description is a loaded hardware description.
type Description struct {
	Target Target
	Data   []byte // the document as read from the file
	Device *svd.Device
}

// Load reads and parses the description of t.
func Load(t Target) (*Description, error) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return nil, err
	}
	dev, err := svd.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Path, err)
	}
	return &Description{Target: t, Data: data, Device: dev}, nil
}
