// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package latch

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestTryTake(t *testing.T) {
	var l Latch
	assert.False(t, l.Taken())
	assert.True(t, l.TryTake())
	assert.True(t, l.Taken())
	assert.False(t, l.TryTake())
	assert.True(t, l.Taken())
}

func TestTryTakeConcurrent(t *testing.T) {
	for n := 0; n < 100; n++ {
		var (
			l  Latch
			ok atomic.Int32
			g  errgroup.Group
		)
		for i := 0; i < 16; i++ {
			g.Go(func() error {
				if l.TryTake() {
					ok.Add(1)
				}
				return nil
			})
		}
		assert.NoError(t, g.Wait())
		assert.Equal(t, int32(1), ok.Load())
	}
}

// Take must never return after the first call. The test replaces abort with
// a function that unwinds the goroutine so the test can observe it.
func TestTakeAborts(t *testing.T) {
	var msgs []string
	saved := abort
	abort = func(msg string) {
		msgs = append(msgs, msg)
		panic(msg)
	}
	defer func() { abort = saved }()

	var l Latch
	assert.NotPanics(t, func() { l.Take("hw.HW") })
	returned := false
	assert.Panics(t, func() {
		l.Take("hw.HW")
		returned = true
	})
	assert.False(t, returned)
	assert.Equal(t, []string{"hw.HW called more than once"}, msgs)
}
