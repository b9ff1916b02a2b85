// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/tools/imports"

	"github.com/embeddedgo/hwgen/hwgen/internal/periph"
	"github.com/embeddedgo/hwgen/svd"
)

// Module is a generated peripheral package.
type Module struct {
	Name string // package name, the lower case name of the peripheral
	Type string // name of the register layout type in the package
	Base uint64 // base address of the peripheral
}

// reserved are the module names that conflict with the root file or are
// ignored by the go command.
var reserved = map[string]bool{
	"unsafe":   true,
	"latch":    true,
	"any":      true,
	"uintptr":  true,
	"testdata": true,
	"vendor":   true,
}

type unit struct {
	Module
	src string
}

// emitModules emits the code of all peripherals of dev and checks the names
// and addresses of the resulting modules. It does not touch the file system.
func emitModules(dev *svd.Device, em Emitter) ([]unit, error) {
	def := dev.Defaults()
	width := uint(dev.Width)
	if width == 0 {
		width = 32
	}
	var units []unit
	names := make(map[string]string)
	types := make(map[string]string)
	bases := make(map[uint64]string)
	for _, p := range dev.Peripherals {
		code := strings.Join(em.Emit(p, def), "\n\n")
		if len(code) == 0 {
			log.Debugf("%s: nothing to generate", p.Name)
			continue
		}
		u := unit{
			Module: Module{
				Name: periph.ModuleName(p.Name),
				Type: periph.TypeName(p.Name),
				Base: uint64(p.BaseAddress),
			},
			src: code,
		}
		if !token.IsIdentifier(u.Name) || u.Name[0] == '_' || reserved[u.Name] ||
			!token.IsExported(u.Type) {

			return nil, fmt.Errorf("peripheral %s: %w", p.Name, ErrBadName)
		}
		if width <= 32 && u.Base > math.MaxUint32 {
			return nil, fmt.Errorf(
				"peripheral %s: %w: %#x on a %d-bit device",
				p.Name, ErrBadAddress, u.Base, width,
			)
		}
		if other, ok := names[u.Name]; ok {
			return nil, fmt.Errorf(
				"%w: %s (peripherals %s and %s)",
				ErrDuplicateName, u.Name, other, p.Name,
			)
		}
		if other, ok := types[u.Type]; ok {
			return nil, fmt.Errorf(
				"%w: field %s (peripherals %s and %s)",
				ErrDuplicateName, u.Type, other, p.Name,
			)
		}
		if other, ok := bases[u.Base]; ok {
			return nil, fmt.Errorf(
				"%w %#x (peripherals %s and %s)",
				ErrDuplicateBase, u.Base, other, p.Name,
			)
		}
		names[u.Name] = p.Name
		types[u.Type] = p.Name
		bases[u.Base] = p.Name
		units = append(units, u)
	}
	return units, nil
}

// Assemble generates the peripheral packages of dev in cfg.Dir and returns
// the records of the generated modules in the order of the peripherals in dev.
// The peripherals for which em generates nothing are skipped. cfg.Dir is
// removed and created again before the first module is written.
func Assemble(cfg Config, dev *svd.Device, em Emitter) ([]Module, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, fail(StageConfig, err)
	}
	units, err := emitModules(dev, em)
	if err != nil {
		return nil, fail(StageDescription, err)
	}
	if err := cleanDir(cfg.Dir, cfg.Force); err != nil {
		return nil, fail(StageEmission, err)
	}
	mods := make([]Module, 0, len(units))
	for _, u := range units {
		if err := writeModule(cfg, u); err != nil {
			return nil, fail(StageEmission, err)
		}
		log.Info(u.Name)
		mods = append(mods, u.Module)
	}
	return mods, nil
}

func writeModule(cfg Config, u unit) error {
	var w bytes.Buffer
	writeHeader(&w, "", cfg.Constraint)
	fmt.Fprintf(&w, "package %s\n\n%s\n", u.Name, u.src)
	file := cfg.moduleFile(u.Name)
	if err := os.Mkdir(filepath.Dir(file), 0755); err != nil {
		return err
	}
	return writeGo(file, w.Bytes())
}

func writeHeader(w *bytes.Buffer, source, constraint string) {
	w.WriteString("// Code generated by hwgen. DO NOT EDIT.\n")
	if source != "" {
		w.WriteString(source)
		w.WriteByte('\n')
	}
	w.WriteByte('\n')
	if constraint != "" {
		fmt.Fprintf(w, "//go:build %s\n\n", constraint)
	}
}

// writeGo formats src and writes it to the file.
func writeGo(file string, src []byte) error {
	out, err := imports.Process(file, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return fmt.Errorf("formatting %s: %w", file, err)
	}
	return os.WriteFile(file, out, 0644)
}

// cleanDir removes dir and creates it again. Unless force is set, dir is not
// removed if it contains a file that was not generated.
func cleanDir(dir string, force bool) error {
	if !force {
		if err := checkOwned(dir); err != nil {
			return err
		}
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

func checkOwned(dir string) error {
	err := filepath.WalkDir(dir, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() || !isGenerated(file) {
			return fmt.Errorf("%w: %s", ErrNotOwned, file)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func isGenerated(file string) bool {
	if filepath.Ext(file) != ".go" {
		return false
	}
	f, err := parser.ParseFile(
		token.NewFileSet(), file, nil, parser.PackageClauseOnly|parser.ParseComments,
	)
	return err == nil && ast.IsGenerated(f)
}
