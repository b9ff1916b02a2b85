// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/embeddedgo/hwgen/hwgen/internal/periph"
	"github.com/embeddedgo/hwgen/hwgen/internal/target"
	"github.com/embeddedgo/hwgen/hwgen/internal/util"
)

// Options describe a generator run.
type Options struct {
	Config
	SVDDir  string   // directory with the available descriptions
	Targets []string // targets selected on the command line
	Environ []string // environment, see os.Environ
	Emitter Emitter  // periph.Emitter{} if nil
}

// Load selects the target and loads its description. The configuration
// errors are reported before the description is read.
func Load(o Options) (*target.Description, error) {
	avail, err := target.List(o.SVDDir)
	if err != nil {
		return nil, fail(StageConfig, err)
	}
	t, err := target.Select(avail, o.Environ, o.Targets)
	if err != nil {
		return nil, fail(StageConfig, err)
	}
	log.Debugf("target %s: %s", t.Name, t.Path)
	desc, err := target.Load(t)
	if err != nil {
		return nil, fail(StageDescription, err)
	}
	return desc, nil
}

// Resolve fills the configuration fields that can be derived from the
// destination directory.
func (o Options) Resolve() (Config, error) {
	cfg := o.Config
	if cfg.ImportPath == "" {
		ip, err := util.ImportPath(cfg.Dir)
		if err != nil {
			return cfg, fail(StageConfig, err)
		}
		cfg.ImportPath = ip
	}
	cfg, err := cfg.withDefaults()
	return cfg, fail(StageConfig, err)
}

// Run performs the whole generation: selects and loads the description,
// generates the peripheral packages and the root package. The destination
// directory is not touched if the description cannot be loaded or checked.
func Run(o Options) ([]Module, error) {
	cfg, err := o.Resolve()
	if err != nil {
		return nil, err
	}
	desc, err := Load(o)
	if err != nil {
		return nil, err
	}
	em := o.Emitter
	if em == nil {
		em = periph.Emitter{}
	}
	return Generate(cfg, desc, em)
}

// Stale reports whether the code in cfg.Dir was generated from a description
// other than desc or was not generated at all.
func Stale(cfg Config, desc *target.Description) (bool, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return false, fail(StageConfig, err)
	}
	data, err := os.ReadFile(cfg.rootFile())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, err
	}
	return !bytes.Contains(data, []byte(sourceLine(desc)+"\n")), nil
}
