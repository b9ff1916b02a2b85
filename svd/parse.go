// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svd

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNoName       = errors.New("missing name")
	ErrUnknownBase  = errors.New("derived from unknown peripheral")
	ErrDerivedCycle = errors.New("derivedFrom cycle")
	ErrDimIndex     = errors.New("bad dimIndex")
)

// Parse decodes an SVD document. The derivedFrom references between
// peripherals are resolved and peripheral arrays (dim, %s in name) are
// expanded so every returned peripheral describes exactly one block of
// registers at its BaseAddress. Parse returns the same result for the same
// input.
func Parse(data []byte) (*Device, error) {
	dev := new(Device)
	if err := xml.Unmarshal(data, dev); err != nil {
		return nil, err
	}
	if dev.Name == "" {
		return nil, fmt.Errorf("device: %w", ErrNoName)
	}
	for i, p := range dev.Peripherals {
		if p.Name == "" {
			return nil, fmt.Errorf("peripheral #%d: %w", i, ErrNoName)
		}
	}
	if err := dev.resolveDerived(); err != nil {
		return nil, err
	}
	if err := dev.expandArrays(); err != nil {
		return nil, err
	}
	return dev, nil
}

// Peripheral returns the peripheral with the given name or nil.
func (d *Device) Peripheral(name string) *Peripheral {
	for _, p := range d.Peripherals {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (d *Device) resolveDerived() error {
	done := make(map[*Peripheral]bool, len(d.Peripherals))
	var resolve func(p *Peripheral, path []string) error
	resolve = func(p *Peripheral, path []string) error {
		if done[p] || p.DerivedFrom == nil {
			done[p] = true
			return nil
		}
		for _, name := range path {
			if name == p.Name {
				return fmt.Errorf(
					"%s: %w: %s", p.Name, ErrDerivedCycle,
					strings.Join(append(path, p.Name), " -> "),
				)
			}
		}
		base := d.Peripheral(*p.DerivedFrom)
		if base == nil {
			return fmt.Errorf("%s: %w %s", p.Name, ErrUnknownBase, *p.DerivedFrom)
		}
		if err := resolve(base, append(path, p.Name)); err != nil {
			return err
		}
		if len(p.Registers) == 0 && len(p.Clusters) == 0 {
			p.Registers = base.Registers
			p.Clusters = base.Clusters
		}
		if p.Description == nil {
			p.Description = base.Description
		}
		if p.GroupName == nil {
			p.GroupName = base.GroupName
		}
		if p.RegisterPropertiesGroup == nil {
			p.RegisterPropertiesGroup = base.RegisterPropertiesGroup
		}
		if len(p.AddressBlock) == 0 {
			p.AddressBlock = base.AddressBlock
		}
		done[p] = true
		return nil
	}
	for _, p := range d.Peripherals {
		if err := resolve(p, nil); err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) expandArrays() error {
	ps := make([]*Peripheral, 0, len(d.Peripherals))
	for _, p := range d.Peripherals {
		if p.DimElementGroup == nil || p.Dim == 0 || !strings.Contains(p.Name, "%s") {
			ps = append(ps, p)
			continue
		}
		idx, err := p.Indices()
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		name := strings.Replace(p.Name, "[%s]", "%s", 1)
		for i, s := range idx {
			np := *p
			np.DimElementGroup = nil
			np.Name = strings.Replace(name, "%s", s, 1)
			np.BaseAddress = p.BaseAddress + Uint64(i)*Uint64(p.DimIncrement)
			ps = append(ps, &np)
		}
	}
	d.Peripherals = ps
	return nil
}

// Indices returns the index strings substituted for %s in the name of a dim
// element: the dimIndex list, the dimIndex range (0-7, A-D) or 0...Dim-1.
func (g DimElementGroup) Indices() ([]string, error) {
	n := int(g.Dim)
	if g.DimIndex == nil {
		idx := make([]string, n)
		for i := range idx {
			idx[i] = strconv.Itoa(i)
		}
		return idx, nil
	}
	s := strings.TrimSpace(*g.DimIndex)
	var idx []string
	if i := strings.IndexByte(s, '-'); i > 0 && !strings.Contains(s, ",") {
		lo, hi := s[:i], s[i+1:]
		a, err1 := strconv.Atoi(lo)
		b, err2 := strconv.Atoi(hi)
		switch {
		case err1 == nil && err2 == nil && a <= b:
			for k := a; k <= b; k++ {
				idx = append(idx, strconv.Itoa(k))
			}
		case len(lo) == 1 && len(hi) == 1 && lo[0] <= hi[0]:
			for c := lo[0]; c <= hi[0]; c++ {
				idx = append(idx, string(c))
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrDimIndex, s)
		}
	} else {
		for _, e := range strings.Split(s, ",") {
			idx = append(idx, strings.TrimSpace(e))
		}
	}
	if len(idx) != n {
		return nil, fmt.Errorf(
			"%w: %q has %d elements, dim is %d", ErrDimIndex, s, len(idx), n,
		)
	}
	return idx, nil
}

// Defaults are the register properties used when a peripheral, cluster or
// register does not specify its own.
type Defaults struct {
	Size       uint // register width in bits
	Access     string
	ResetValue uint64
	ResetMask  uint64
}

// Defaults returns the device level register properties. The device bus
// width is used if there is no default register size.
func (d *Device) Defaults() Defaults {
	def := Defaults{
		Size:      uint(d.Width),
		Access:    "read-write",
		ResetMask: ^uint64(0),
	}
	if def.Size == 0 {
		def.Size = 32
	}
	return def.With(d.RegisterPropertiesGroup)
}

// With returns d overridden by the properties specified in g.
func (d Defaults) With(g *RegisterPropertiesGroup) Defaults {
	if g == nil {
		return d
	}
	if g.Size != nil {
		d.Size = uint(*g.Size)
	}
	if g.Access != nil {
		d.Access = *g.Access
	}
	if g.ResetValue != nil {
		d.ResetValue = uint64(*g.ResetValue)
	}
	if g.ResetMask != nil {
		d.ResetMask = uint64(*g.ResetMask)
	}
	return d
}
