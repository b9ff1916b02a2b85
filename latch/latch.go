// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package latch provides the call-once guard used by the generated hardware
// constructors.
//
// A Latch can be taken only once in the lifetime of the program. The
// generated HW function takes its latch before it creates any reference to
// the peripheral registers so at most one Hardware value exists.
package latch

import (
	"os"
	"sync/atomic"
)

// Latch is a one-shot flag. The zero value is an untaken latch. A Latch must
// not be copied after first use.
type Latch struct {
	taken atomic.Bool
}

// TryTake takes l and reports whether this call took it. Exactly one TryTake
// call on a given latch returns true, even if called concurrently.
func (l *Latch) TryTake() bool {
	return l.taken.CompareAndSwap(false, true)
}

// Taken reports whether l was taken.
func (l *Latch) Taken() bool {
	return l.taken.Load()
}

// Take takes l. If l was already taken Take does not return: it reports that
// what was called again and terminates the program.
func (l *Latch) Take(what string) {
	if !l.TryTake() {
		abort(what + " called more than once")
	}
}

var abort = func(msg string) {
	os.Stderr.WriteString("fatal error: " + msg + "\n")
	os.Exit(2)
}
