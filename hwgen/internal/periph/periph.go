// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package periph generates the Go register layout of a single SVD peripheral.
package periph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/embeddedgo/hwgen/svd"
)

type BitFieldValue struct {
	Name  string
	Descr string
	Value uint64
}

type BitField struct {
	Name   string
	Mask   uint64
	LSL    uint
	Descr  string
	Values []*BitFieldValue
}

type Reg struct {
	Offset uint64
	BitSiz uint
	Name   string
	Type   string // registers expanded from one dim element share the Type
	Len    int
	Descr  string
	Access string
	Bits   []*BitField
}

// Size returns the number of bytes occupied by r.
func (r *Reg) Size() uint64 {
	n := uint64(r.Len)
	if n == 0 {
		n = 1
	}
	return n * uint64(r.BitSiz/8)
}

type Periph struct {
	Name    string
	Type    string
	Descr   string
	Regs    []*Reg
	Skipped []string
}

func (p *Periph) skip(what, why string) {
	p.Skipped = append(p.Skipped, what+": "+why)
}

// New builds the register model of sp. The registers are sorted by offset and
// the ones that cannot be a part of a Go struct (overlapping, misaligned,
// unsupported width) are moved to p.Skipped.
func New(sp *svd.Peripheral, def svd.Defaults) *Periph {
	p := &Periph{Name: sp.Name, Type: TypeName(sp.Name)}
	if sp.Description != nil {
		p.Descr = fixSpaces(*sp.Description)
	}
	def = def.With(sp.RegisterPropertiesGroup)
	p.handleRegs("", 0, def, sp.Registers)
	for _, sc := range sp.Clusters {
		p.handleCluster(sc, def)
	}
	sort.SliceStable(
		p.Regs,
		func(i, k int) bool { return p.Regs[i].Offset < p.Regs[k].Offset },
	)
	p.layout()
	return p
}

func (p *Periph) handleCluster(sc *svd.Cluster, def svd.Defaults) {
	def = def.With(sc.RegisterPropertiesGroup)
	if len(sc.Clusters) > 0 {
		p.skip(sc.Name, "cluster in cluster not supported")
	}
	if sc.DerivedFrom != nil {
		p.skip(sc.Name, "derived clusters not supported")
		return
	}
	if sc.Dim == 0 || !strings.Contains(sc.Name, "%s") {
		p.handleRegs(sc.Name, uint64(sc.AddressOffset), def, sc.Registers)
		return
	}
	idx, err := sc.Indices()
	if err != nil {
		p.skip(sc.Name, err.Error())
		return
	}
	for i, s := range idx {
		name := dimName(sc.Name, s)
		offset := uint64(sc.AddressOffset) + uint64(i)*uint64(sc.DimIncrement)
		p.handleRegs(name, offset, def, sc.Registers)
	}
}

func (p *Periph) handleRegs(cname string, offset uint64, def svd.Defaults, srs []*svd.Register) {
	for _, sr := range srs {
		name := sr.Name
		if cname != "" {
			name = cname + "_" + name
		}
		if sr.DerivedFrom != nil {
			p.skip(name, "derived registers not supported")
			continue
		}
		rdef := def.With(sr.RegisterPropertiesGroup)
		r := &Reg{
			Offset: offset + uint64(sr.AddressOffset),
			BitSiz: rdef.Size,
			Name:   name,
			Type:   name,
			Access: rdef.Access,
		}
		if sr.Description != nil {
			r.Descr = fixSpaces(*sr.Description)
		}
		p.handleFields(r, sr.Fields)
		if sr.Dim == 0 || !strings.Contains(name, "%s") {
			p.Regs = append(p.Regs, r)
			continue
		}
		if strings.HasSuffix(name, "[%s]") && uint(sr.DimIncrement)*8 == r.BitSiz {
			r.Name = strings.TrimSuffix(name, "[%s]")
			r.Len = int(sr.Dim)
			p.Regs = append(p.Regs, r)
			continue
		}
		idx, err := sr.Indices()
		if err != nil {
			p.skip(name, err.Error())
			continue
		}
		for i, s := range idx {
			er := *r
			er.Name = dimName(name, s)
			er.Offset = r.Offset + uint64(i)*uint64(sr.DimIncrement)
			p.Regs = append(p.Regs, &er)
		}
	}
}

func (p *Periph) handleFields(r *Reg, sfs []*svd.Field) {
	for _, sf := range sfs {
		what := r.Name + "." + sf.Name
		if sf.DerivedFrom != nil {
			p.skip(what, "derived fields not supported")
			continue
		}
		var lsb, width uint
		switch {
		case sf.BitRangeOffsetWidth != nil:
			lsb = uint(sf.BitRangeOffsetWidth.BitOffset)
			width = 1
			if w := sf.BitRangeOffsetWidth.BitWidth; w != nil {
				width = uint(*w)
			}
		case sf.BitRangeLSBMSB != nil:
			lsb = uint(sf.BitRangeLSBMSB.LSB)
			msb := uint(sf.BitRangeLSBMSB.MSB)
			if msb < lsb {
				p.skip(what, "msb < lsb")
				continue
			}
			width = 1 + msb - lsb
		case sf.BitRangePattern != nil:
			var msb uint
			_, err := fmt.Sscanf(*sf.BitRangePattern, "[%d:%d]", &msb, &lsb)
			if err != nil || msb < lsb {
				p.skip(what, "bad bit-range "+*sf.BitRangePattern)
				continue
			}
			width = 1 + msb - lsb
		default:
			p.skip(what, "bit-range not specified")
			continue
		}
		if width == 0 || lsb+width > r.BitSiz {
			p.skip(what, "bit-range outside the register")
			continue
		}
		bf := &BitField{
			Name: sf.Name,
			Mask: 1<<width - 1,
			LSL:  lsb,
		}
		if width == 64 {
			bf.Mask = ^uint64(0)
		}
		if sf.Description != nil {
			bf.Descr = fixSpaces(*sf.Description)
		}
		for _, sevs := range sf.EnumeratedValues {
			for _, sev := range sevs.EnumeratedValue {
				if sev.Name == nil || sev.Value == nil {
					continue
				}
				v, err := sev.Val()
				if err != nil || v&^bf.Mask != 0 {
					p.skip(what+"."+*sev.Name, "bad value")
					continue
				}
				bv := &BitFieldValue{Name: *sev.Name, Value: v}
				if sev.Description != nil {
					bv.Descr = fixSpaces(*sev.Description)
				}
				bf.Values = append(bf.Values, bv)
			}
		}
		if sf.Dim == 0 || !strings.Contains(sf.Name, "%s") {
			r.Bits = append(r.Bits, bf)
			continue
		}
		idx, err := sf.Indices()
		if err != nil {
			p.skip(what, err.Error())
			continue
		}
		for i, s := range idx {
			ebf := *bf
			ebf.Name = dimName(sf.Name, s)
			ebf.LSL = bf.LSL + uint(i)*uint(sf.DimIncrement)
			if ebf.LSL+width > r.BitSiz {
				p.skip(r.Name+"."+ebf.Name, "bit-range outside the register")
				continue
			}
			r.Bits = append(r.Bits, &ebf)
		}
	}
	sort.SliceStable(
		r.Bits,
		func(i, k int) bool { return r.Bits[i].LSL < r.Bits[k].LSL },
	)
	for _, bf := range r.Bits {
		sort.SliceStable(
			bf.Values,
			func(i, k int) bool { return bf.Values[i].Value < bf.Values[k].Value },
		)
	}
}

// layout drops the registers that cannot be placed in the struct. p.Regs
// must be sorted by offset.
func (p *Periph) layout() {
	regs := p.Regs[:0]
	var (
		next uint64
		last *Reg
	)
	for _, r := range p.Regs {
		switch r.BitSiz {
		case 8, 16, 32, 64:
		default:
			p.skip(r.Name, fmt.Sprintf("unsupported register size %d", r.BitSiz))
			continue
		}
		if r.Offset%uint64(r.BitSiz/8) != 0 {
			p.skip(r.Name, fmt.Sprintf("misaligned offset %#x", r.Offset))
			continue
		}
		if last != nil && r.Offset < next {
			p.skip(r.Name, "overlaps "+last.Name)
			continue
		}
		regs = append(regs, r)
		next = r.Offset + r.Size()
		last = r
	}
	p.Regs = regs
}

func dimName(name, idx string) string {
	if strings.Contains(name, "[%s]") {
		return strings.Replace(name, "[%s]", idx, 1)
	}
	return strings.Replace(name, "%s", idx, 1)
}

func fixSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
