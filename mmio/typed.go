// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmio

// R8 is an 8-bit register that holds values of the register type T, usually
// the type of the bit-field constants generated for this register.
type R8[T ~uint8] struct{ U8 }

func (r *R8[T]) Load() T                { return T(r.U8.Load()) }
func (r *R8[T]) Store(v T)              { r.U8.Store(uint8(v)) }
func (r *R8[T]) LoadBits(mask T) T      { return T(r.U8.LoadBits(uint8(mask))) }
func (r *R8[T]) StoreBits(mask, bits T) { r.U8.StoreBits(uint8(mask), uint8(bits)) }
func (r *R8[T]) SetBits(mask T)         { r.U8.SetBits(uint8(mask)) }
func (r *R8[T]) ClearBits(mask T)       { r.U8.ClearBits(uint8(mask)) }

type R16[T ~uint16] struct{ U16 }

func (r *R16[T]) Load() T                { return T(r.U16.Load()) }
func (r *R16[T]) Store(v T)              { r.U16.Store(uint16(v)) }
func (r *R16[T]) LoadBits(mask T) T      { return T(r.U16.LoadBits(uint16(mask))) }
func (r *R16[T]) StoreBits(mask, bits T) { r.U16.StoreBits(uint16(mask), uint16(bits)) }
func (r *R16[T]) SetBits(mask T)         { r.U16.SetBits(uint16(mask)) }
func (r *R16[T]) ClearBits(mask T)       { r.U16.ClearBits(uint16(mask)) }

type R32[T ~uint32] struct{ U32 }

func (r *R32[T]) Load() T                { return T(r.U32.Load()) }
func (r *R32[T]) Store(v T)              { r.U32.Store(uint32(v)) }
func (r *R32[T]) LoadBits(mask T) T      { return T(r.U32.LoadBits(uint32(mask))) }
func (r *R32[T]) StoreBits(mask, bits T) { r.U32.StoreBits(uint32(mask), uint32(bits)) }
func (r *R32[T]) SetBits(mask T)         { r.U32.SetBits(uint32(mask)) }
func (r *R32[T]) ClearBits(mask T)       { r.U32.ClearBits(uint32(mask)) }

type R64[T ~uint64] struct{ U64 }

func (r *R64[T]) Load() T                { return T(r.U64.Load()) }
func (r *R64[T]) Store(v T)              { r.U64.Store(uint64(v)) }
func (r *R64[T]) LoadBits(mask T) T      { return T(r.U64.LoadBits(uint64(mask))) }
func (r *R64[T]) StoreBits(mask, bits T) { r.U64.StoreBits(uint64(mask), uint64(bits)) }
func (r *R64[T]) SetBits(mask T)         { r.U64.SetBits(uint64(mask)) }
func (r *R64[T]) ClearBits(mask T)       { r.U64.ClearBits(uint64(mask)) }
