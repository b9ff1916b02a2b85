// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSVD = `<?xml version="1.0" encoding="utf-8"?>
<device schemaVersion="1.1">
  <name>TEST</name>
  <width>32</width>
  <size>0x20</size>
  <access>read-write</access>
  <resetValue>0x00000000</resetValue>
  <resetMask>0xFFFFFFFF</resetMask>
  <peripherals>
    <peripheral>
      <name>GPIOA</name>
      <description>General-purpose I/Os</description>
      <groupName>GPIO</groupName>
      <baseAddress>0x40020000</baseAddress>
      <registers>
        <register>
          <name>MODER</name>
          <addressOffset>0x0</addressOffset>
          <resetValue>0xA8000000</resetValue>
          <fields>
            <field>
              <name>MODER1</name>
              <bitOffset>2</bitOffset>
              <bitWidth>2</bitWidth>
            </field>
          </fields>
        </register>
      </registers>
    </peripheral>
    <peripheral derivedFrom="GPIOA">
      <name>GPIOB</name>
      <baseAddress>0x40020400</baseAddress>
    </peripheral>
    <peripheral>
      <name>TIM%s</name>
      <dim>3</dim>
      <dimIncrement>0x400</dimIncrement>
      <dimIndex>2-4</dimIndex>
      <baseAddress>0x40000000</baseAddress>
      <size>16</size>
    </peripheral>
  </peripherals>
</device>`

func TestParse(t *testing.T) {
	dev, err := Parse([]byte(testSVD))
	require.NoError(t, err)
	assert.Equal(t, "TEST", dev.Name)

	var names []string
	var bases []uint64
	for _, p := range dev.Peripherals {
		names = append(names, p.Name)
		bases = append(bases, uint64(p.BaseAddress))
	}
	assert.Equal(t, []string{"GPIOA", "GPIOB", "TIM2", "TIM3", "TIM4"}, names)
	assert.Equal(
		t,
		[]uint64{0x40020000, 0x40020400, 0x40000000, 0x40000400, 0x40000800},
		bases,
	)

	gpioa := dev.Peripheral("GPIOA")
	require.NotNil(t, gpioa)
	require.Len(t, gpioa.Registers, 1)
	assert.Equal(t, uint64(0xA8000000), uint64(*gpioa.Registers[0].ResetValue))

	gpiob := dev.Peripheral("GPIOB")
	require.NotNil(t, gpiob)
	assert.Equal(t, gpioa.Registers, gpiob.Registers)
	require.NotNil(t, gpiob.Description)
	assert.Equal(t, "General-purpose I/Os", *gpiob.Description)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("<device><name>X</name><peripherals>"))
	assert.Error(t, err)

	_, err = Parse([]byte("<device><peripherals></peripherals></device>"))
	assert.ErrorIs(t, err, ErrNoName)

	_, err = Parse([]byte(`<device><name>X</name><peripherals>
		<peripheral derivedFrom="NOPE"><name>A</name></peripheral>
	</peripherals></device>`))
	assert.ErrorIs(t, err, ErrUnknownBase)

	_, err = Parse([]byte(`<device><name>X</name><peripherals>
		<peripheral derivedFrom="B"><name>A</name></peripheral>
		<peripheral derivedFrom="A"><name>B</name></peripheral>
	</peripherals></device>`))
	assert.ErrorIs(t, err, ErrDerivedCycle)
}

func TestParseDeterministic(t *testing.T) {
	a, err := Parse([]byte(testSVD))
	require.NoError(t, err)
	b, err := Parse([]byte(testSVD))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDefaults(t *testing.T) {
	dev, err := Parse([]byte(testSVD))
	require.NoError(t, err)
	def := dev.Defaults()
	assert.Equal(t, Defaults{
		Size:       32,
		Access:     "read-write",
		ResetValue: 0,
		ResetMask:  0xFFFFFFFF,
	}, def)

	tim := dev.Peripheral("TIM3")
	require.NotNil(t, tim)
	assert.Equal(t, uint(16), def.With(tim.RegisterPropertiesGroup).Size)
	assert.Equal(t, def, def.With(nil))

	assert.Equal(t, uint(32), (&Device{}).Defaults().Size)
}

func TestIndices(t *testing.T) {
	str := func(s string) *string { return &s }
	for _, c := range []struct {
		g    DimElementGroup
		want []string
	}{
		{DimElementGroup{Dim: 3}, []string{"0", "1", "2"}},
		{DimElementGroup{Dim: 2, DimIndex: str("4-5")}, []string{"4", "5"}},
		{DimElementGroup{Dim: 3, DimIndex: str("A-C")}, []string{"A", "B", "C"}},
		{DimElementGroup{Dim: 2, DimIndex: str("RX, TX")}, []string{"RX", "TX"}},
	} {
		idx, err := c.g.Indices()
		require.NoError(t, err)
		assert.Equal(t, c.want, idx)
	}
	_, err := DimElementGroup{Dim: 4, DimIndex: str("0-2")}.Indices()
	assert.ErrorIs(t, err, ErrDimIndex)
	_, err = DimElementGroup{Dim: 2, DimIndex: str("C-A")}.Indices()
	assert.ErrorIs(t, err, ErrDimIndex)
}

func TestEnumeratedValueVal(t *testing.T) {
	str := func(s string) *string { return &s }
	for s, want := range map[string]uint64{
		"0x1F":  0x1F,
		"12":    12,
		"#1011": 0xB,
		"#1x0x": 0x8,
	} {
		v, err := (&EnumeratedValue{Value: str(s)}).Val()
		require.NoError(t, err, s)
		assert.Equal(t, want, v, s)
	}
	_, err := (&EnumeratedValue{}).Val()
	assert.ErrorIs(t, err, ErrNilValue)
}
