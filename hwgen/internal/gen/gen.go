// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gen generates the hardware package: one package per peripheral and
// the root package with the Hardware type and its HW constructor.
//
// The destination directory is owned by the generator. It is removed and
// created again on every run, after the description was successfully loaded
// and checked.
package gen

import (
	"errors"
	"fmt"
	"go/token"
	"path"
	"path/filepath"

	"github.com/embeddedgo/hwgen/svd"
)

// DefaultLatch is the import path of the call-once guard package used by the
// generated HW function.
const DefaultLatch = "github.com/embeddedgo/hwgen/latch"

// Emitter generates the register layout of one peripheral. Emit must be
// a pure function. An empty result means there is nothing to generate for the
// peripheral.
type Emitter interface {
	Emit(p *svd.Peripheral, def svd.Defaults) []string
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(p *svd.Peripheral, def svd.Defaults) []string

func (f EmitterFunc) Emit(p *svd.Peripheral, def svd.Defaults) []string {
	return f(p, def)
}

type Stage string

const (
	StageConfig      Stage = "configuration"
	StageDescription Stage = "description"
	StageEmission    Stage = "emission"
)

// Error is a generation failure. Stage identifies the part of the pipeline
// that failed.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string { return string(e.Stage) + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func fail(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		return err
	}
	return &Error{stage, err}
}

var (
	ErrBadName       = errors.New("invalid name")
	ErrDuplicateName = errors.New("duplicate module name")
	ErrDuplicateBase = errors.New("duplicate base address")
	ErrBadAddress    = errors.New("base address out of range")
	ErrNotOwned      = errors.New("destination contains files not generated by hwgen")
)

// Config describes the destination of the generated code.
type Config struct {
	Dir        string // destination directory
	Package    string // name of the root package, base name of Dir if empty
	ImportPath string // import path of the package in Dir
	Constraint string // build constraint of the generated files, none if empty
	Latch      string // import path of the call-once guard, DefaultLatch if empty
	Force      bool   // remove Dir even if it contains foreign files
}

func (cfg Config) withDefaults() (Config, error) {
	if cfg.Dir == "" {
		return cfg, errors.New("no destination directory")
	}
	if cfg.Package == "" {
		abs, err := filepath.Abs(cfg.Dir)
		if err != nil {
			return cfg, err
		}
		cfg.Package = filepath.Base(abs)
	}
	if !token.IsIdentifier(cfg.Package) {
		return cfg, fmt.Errorf("package %q: %w", cfg.Package, ErrBadName)
	}
	if cfg.ImportPath == "" {
		return cfg, errors.New("no import path of the destination")
	}
	if cfg.Latch == "" {
		cfg.Latch = DefaultLatch
	}
	return cfg, nil
}

func (cfg Config) rootFile() string {
	return filepath.Join(cfg.Dir, cfg.Package+".go")
}

func (cfg Config) moduleFile(name string) string {
	return filepath.Join(cfg.Dir, name, name+".go")
}

func (cfg Config) moduleImport(name string) string {
	return path.Join(cfg.ImportPath, name)
}
