// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strconv"

	"github.com/embeddedgo/hwgen/hwgen/internal/target"
)

// writeAggregate writes the Hardware type with one field for every module and
// the HW function that returns the only Hardware value. The fields and the
// conversions of the base addresses are in mods order.
func writeAggregate(w io.Writer, pkg, device string, mods []Module) {
	fmt.Fprintf(
		w, "// Hardware gives exclusive access to the peripherals of the %s.\n",
		device,
	)
	fmt.Fprintln(w, "type Hardware struct {")
	for _, m := range mods {
		fmt.Fprintf(w, "\t%s *%s.%s\n", m.Type, m.Name, m.Type)
	}
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "var hwTaken latch.Latch")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "// HW returns the Hardware. It can be called only once. Any subsequent call")
	fmt.Fprintln(w, "// terminates the program, so the pointers in the returned Hardware are the")
	fmt.Fprintln(w, "// only ones to the peripheral registers.")
	fmt.Fprintln(w, "func HW() Hardware {")
	fmt.Fprintf(w, "\thwTaken.Take(%q)\n", pkg+".HW")
	if len(mods) == 0 {
		fmt.Fprintln(w, "\treturn Hardware{}")
		fmt.Fprintln(w, "}")
		return
	}
	fmt.Fprintln(w, "\treturn Hardware{")
	for _, m := range mods {
		fmt.Fprintf(w, "\t\t%s: fromAddr[%s.%s](%#x),\n", m.Type, m.Name, m.Type, m.Base)
	}
	fmt.Fprintln(w, "\t}")
	fmt.Fprintln(w, "}")
}

// sourceLine identifies the description the code was generated from.
func sourceLine(desc *target.Description) string {
	sum := sha256.Sum256(desc.Data)
	return "// Source: " + filepath.Base(desc.Target.Path) +
		" sha256:" + hex.EncodeToString(sum[:])
}

// rootSource returns the source of the root file: the header and the build
// constraint, the support imports, the module imports, the Hardware type with
// the HW function and the fromAddr helper, in this order.
func rootSource(cfg Config, desc *target.Description, mods []Module) []byte {
	var w bytes.Buffer
	writeHeader(&w, sourceLine(desc), cfg.Constraint)
	fmt.Fprintf(
		&w, "// Package %s provides access to the peripherals of the %s.\n",
		cfg.Package, desc.Device.Name,
	)
	fmt.Fprintf(&w, "package %s\n\n", cfg.Package)

	w.WriteString("import (\n\t\"unsafe\"\n\n")
	if path.Base(cfg.Latch) == "latch" {
		fmt.Fprintf(&w, "\t%s\n", strconv.Quote(cfg.Latch))
	} else {
		fmt.Fprintf(&w, "\tlatch %s\n", strconv.Quote(cfg.Latch))
	}
	if len(mods) != 0 {
		w.WriteByte('\n')
	}
	for _, m := range mods {
		fmt.Fprintf(&w, "\t%s\n", strconv.Quote(cfg.moduleImport(m.Name)))
	}
	w.WriteString(")\n\n")

	writeAggregate(&w, cfg.Package, desc.Device.Name, mods)

	w.WriteString(`
// fromAddr returns a pointer to the T at the addr address.
func fromAddr[T any](addr uintptr) *T {
	return (*T)(unsafe.Pointer(addr))
}
`)
	return w.Bytes()
}

// Generate writes the hardware package for desc to cfg.Dir and returns the
// generated modules.
func Generate(cfg Config, desc *target.Description, em Emitter) ([]Module, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, fail(StageConfig, err)
	}
	mods, err := Assemble(cfg, desc.Device, em)
	if err != nil {
		return nil, err
	}
	src := rootSource(cfg, desc, mods)
	if err := writeGo(cfg.rootFile(), src); err != nil {
		return nil, fail(StageEmission, err)
	}
	return mods, nil
}
