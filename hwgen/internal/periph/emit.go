// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package periph

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/embeddedgo/hwgen/svd"
)

// DefaultMMIO is the import path of the register package used by the
// generated code.
const DefaultMMIO = "github.com/embeddedgo/hwgen/mmio"

// ModuleName returns the name of the Go package generated for the peripheral.
func ModuleName(name string) string {
	return strings.ToLower(name)
}

// TypeName returns the name of the register layout type generated for the
// peripheral: the capitalized words of its module name (usb_otg_fs: UsbOtgFs).
func TypeName(name string) string {
	words := strings.FieldsFunc(ModuleName(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		b.WriteString(string(rs))
	}
	return b.String()
}

// Emitter generates the register layout of one peripheral. Its Emit method is
// a pure function of its arguments.
type Emitter struct {
	MMIO string // import path of the register package, DefaultMMIO if empty
}

// Emit returns the Go source fragments (declarations) describing the registers
// of sp. Emit returns nil if sp has no register that can be represented.
func (e Emitter) Emit(sp *svd.Peripheral, def svd.Defaults) []string {
	p := New(sp, def)
	if len(p.Regs) == 0 {
		return nil
	}
	mmio := e.MMIO
	if mmio == "" {
		mmio = DefaultMMIO
	}
	n := newNamer(p)
	frags := []string{
		"import " + strconv.Quote(mmio),
		n.structDecl(p),
	}
	for _, r := range p.Regs {
		if f := n.bitsDecl(r); f != "" {
			frags = append(frags, f)
		}
	}
	if len(n.skipped) != 0 {
		var w strings.Builder
		w.WriteString("// Skipped registers:")
		for _, s := range n.skipped {
			fmt.Fprintf(&w, "\n//  %s", fixSpaces(s))
		}
		frags = append(frags, w.String())
	}
	return frags
}

// namer assigns unique Go identifiers to the registers, register types and
// bit-field constants of a peripheral.
type namer struct {
	taken   map[string]bool
	types   map[string]string // Reg.Type -> Go type, "" for raw registers
	fields  map[*Reg]string
	emitted map[string]bool
	skipped []string
}

func newNamer(p *Periph) *namer {
	n := &namer{
		taken:   map[string]bool{p.Type: true},
		types:   make(map[string]string),
		fields:  make(map[*Reg]string),
		emitted: make(map[string]bool),
		skipped: p.Skipped,
	}
	fields := make(map[string]bool)
	regs := p.Regs[:0]
	for _, r := range p.Regs {
		f := exported(r.Name)
		if f == "" || fields[f] {
			n.skipped = append(n.skipped, r.Name+": duplicate register name")
			continue
		}
		fields[f] = true
		n.fields[r] = f
		regs = append(regs, r)
	}
	p.Regs = regs
	// Types first so the register names take precedence over the bit-fields.
	for _, r := range p.Regs {
		if _, ok := n.types[r.Type]; ok || len(r.Bits) == 0 {
			continue
		}
		base := dimStrip.Replace(r.Type)
		n.types[r.Type] = n.alloc(base, base+"_REG")
	}
	return n
}

var dimStrip = strings.NewReplacer("[%s]", "", "%s", "")

// alloc returns the first candidate that is not taken yet or "".
func (n *namer) alloc(candidates ...string) string {
	for _, c := range candidates {
		c = exported(c)
		if c != "" && !n.taken[c] {
			n.taken[c] = true
			return c
		}
	}
	return ""
}

func goUint(bits uint) string {
	return "uint" + strconv.FormatUint(uint64(bits), 10)
}

func (n *namer) regType(r *Reg) string {
	bits := strconv.FormatUint(uint64(r.BitSiz), 10)
	t := "mmio.U" + bits
	if typ := n.types[r.Type]; typ != "" && len(r.Bits) != 0 {
		t = "mmio.R" + bits + "[" + typ + "]"
	}
	if r.Len != 0 {
		t = "[" + strconv.Itoa(r.Len) + "]" + t
	}
	return t
}

func accessTag(access string) string {
	switch access {
	case "read-only":
		return "[ro] "
	case "write-only":
		return "[wo] "
	case "writeOnce":
		return "[w1] "
	case "read-writeOnce":
		return "[rw1] "
	}
	return ""
}

func (n *namer) structDecl(p *Periph) string {
	var w strings.Builder
	fmt.Fprintf(
		&w, "// %s provides access to the registers of the %s peripheral.\n",
		p.Type, p.Name,
	)
	if p.Descr != "" {
		fmt.Fprintf(&w, "//\n// %s\n", p.Descr)
	}
	fmt.Fprintf(&w, "type %s struct {\n", p.Type)
	var off uint64
	for _, r := range p.Regs {
		if r.Offset > off {
			fmt.Fprintf(&w, "\t_ [%d]byte\n", r.Offset-off)
		}
		fmt.Fprintf(&w, "\t%s %s", n.fields[r], n.regType(r))
		if descr := accessTag(r.Access) + r.Descr; descr != "" {
			fmt.Fprintf(&w, " // %s", strings.TrimSpace(descr))
		}
		w.WriteByte('\n')
		off = r.Offset + r.Size()
	}
	w.WriteString("}")
	return w.String()
}

// bitsDecl returns the register type declaration and the bit-field constants
// of r or "" if r has no bit-fields or its type was already declared.
func (n *namer) bitsDecl(r *Reg) string {
	typ := n.types[r.Type]
	if typ == "" || len(r.Bits) == 0 || n.emitted[typ] {
		return ""
	}
	n.emitted[typ] = true
	var w strings.Builder
	fmt.Fprintf(&w, "type %s %s\n", typ, goUint(r.BitSiz))
	type shift struct {
		name string
		lsl  uint
	}
	var shifts []shift
	w.WriteString("\nconst (\n")
	for _, bf := range r.Bits {
		name := n.alloc(bf.Name, typ+"_"+bf.Name)
		if name == "" {
			n.skipped = append(n.skipped, r.Name+"."+bf.Name+": name conflict")
			continue
		}
		fmt.Fprintf(&w, "\t%s %s = 0x%02X << %d //+", name, typ, bf.Mask, bf.LSL)
		if bf.Descr != "" {
			fmt.Fprintf(&w, " %s", bf.Descr)
		}
		w.WriteByte('\n')
		for _, bv := range bf.Values {
			vname := n.alloc(name+"_"+bv.Name, typ+"_"+name+"_"+bv.Name)
			if vname == "" {
				continue
			}
			fmt.Fprintf(&w, "\t%s %s = 0x%02X << %d", vname, typ, bv.Value, bf.LSL)
			if bv.Descr != "" {
				fmt.Fprintf(&w, " //  %s", bv.Descr)
			}
			w.WriteByte('\n')
		}
		if sname := n.alloc(name + "n"); sname != "" {
			shifts = append(shifts, shift{sname, bf.LSL})
		}
	}
	w.WriteString(")")
	if len(shifts) != 0 {
		w.WriteString("\n\nconst (\n")
		for _, s := range shifts {
			fmt.Fprintf(&w, "\t%s = %d\n", s.name, s.lsl)
		}
		w.WriteString(")")
	}
	return w.String()
}

// exported converts s to an exported Go identifier.
func exported(s string) string {
	if s == "" {
		return ""
	}
	rs := []rune(s)
	for i, r := range rs {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			rs[i] = '_'
		}
	}
	switch {
	case unicode.IsLower(rs[0]):
		rs[0] = unicode.ToUpper(rs[0])
	case !unicode.IsUpper(rs[0]):
		rs = append([]rune{'X'}, rs...)
	}
	return string(rs)
}
