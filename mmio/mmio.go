// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmio provides the memory-mapped register types used by the packages
// generated by hwgen.
//
// Every access is performed exactly once, in program order, with the width of
// the register. The 32 and 64-bit registers use the sync/atomic loads and
// stores, the 8 and 16-bit ones use functions that are never inlined so the
// compiler cannot merge or eliminate them.
package mmio

import (
	"sync/atomic"
	"unsafe"
)

type U8 struct{ r uint8 }

//go:noinline
func (r *U8) Load() uint8 { return r.r }

//go:noinline
func (r *U8) Store(v uint8) { r.r = v }

func (r *U8) LoadBits(mask uint8) uint8 { return r.Load() & mask }
func (r *U8) StoreBits(mask, bits uint8) {
	r.Store(r.Load()&^mask | bits&mask)
}
func (r *U8) SetBits(mask uint8)   { r.Store(r.Load() | mask) }
func (r *U8) ClearBits(mask uint8) { r.Store(r.Load() &^ mask) }
func (r *U8) Addr() uintptr        { return uintptr(unsafe.Pointer(r)) }

type U16 struct{ r uint16 }

//go:noinline
func (r *U16) Load() uint16 { return r.r }

//go:noinline
func (r *U16) Store(v uint16) { r.r = v }

func (r *U16) LoadBits(mask uint16) uint16 { return r.Load() & mask }
func (r *U16) StoreBits(mask, bits uint16) {
	r.Store(r.Load()&^mask | bits&mask)
}
func (r *U16) SetBits(mask uint16)   { r.Store(r.Load() | mask) }
func (r *U16) ClearBits(mask uint16) { r.Store(r.Load() &^ mask) }
func (r *U16) Addr() uintptr         { return uintptr(unsafe.Pointer(r)) }

type U32 struct{ r uint32 }

func (r *U32) Load() uint32                { return atomic.LoadUint32(&r.r) }
func (r *U32) Store(v uint32)              { atomic.StoreUint32(&r.r, v) }
func (r *U32) LoadBits(mask uint32) uint32 { return r.Load() & mask }
func (r *U32) StoreBits(mask, bits uint32) {
	r.Store(r.Load()&^mask | bits&mask)
}
func (r *U32) SetBits(mask uint32)   { r.Store(r.Load() | mask) }
func (r *U32) ClearBits(mask uint32) { r.Store(r.Load() &^ mask) }
func (r *U32) Addr() uintptr         { return uintptr(unsafe.Pointer(r)) }

// U64 must be 8-byte aligned on 32-bit architectures.
type U64 struct{ r uint64 }

func (r *U64) Load() uint64                { return atomic.LoadUint64(&r.r) }
func (r *U64) Store(v uint64)              { atomic.StoreUint64(&r.r, v) }
func (r *U64) LoadBits(mask uint64) uint64 { return r.Load() & mask }
func (r *U64) StoreBits(mask, bits uint64) {
	r.Store(r.Load()&^mask | bits&mask)
}
func (r *U64) SetBits(mask uint64)   { r.Store(r.Load() | mask) }
func (r *U64) ClearBits(mask uint64) { r.Store(r.Load() &^ mask) }
func (r *U64) Addr() uintptr         { return uintptr(unsafe.Pointer(r)) }
