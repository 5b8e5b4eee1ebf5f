// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"runtime"
	"time"

	"periph.io/x/host/v3/cpu"
)

// Delayer is the timing source used between bus transactions.
//
// The controller has no busy flag on most modules (R/W is tied low), so every
// instruction is followed by a fixed wait. A Delayer decides how that time
// passes: parking the goroutine, spinning on the CPU, or handing control to
// some other scheduler. Delays are never requested while the enable line is
// high.
type Delayer interface {
	DelayMicroseconds(us uint32)
	DelayMilliseconds(ms uint32)
}

// DelayerFunc adapts a function to the Delayer interface.
type DelayerFunc func(d time.Duration)

func (f DelayerFunc) DelayMicroseconds(us uint32) {
	f(time.Duration(us) * time.Microsecond)
}

func (f DelayerFunc) DelayMilliseconds(ms uint32) {
	f(time.Duration(ms) * time.Millisecond)
}

// Sleep parks the calling goroutine with time.Sleep, letting the runtime
// schedule other goroutines for the duration. Short delays are rounded up to
// the host timer resolution, which is harmless for this controller.
type Sleep struct{}

func (Sleep) DelayMicroseconds(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

func (Sleep) DelayMilliseconds(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// Spin busy-waits on the CPU. It is the most precise option and the fastest
// for GPIO wired displays, at the cost of a busy core while writing.
type Spin struct{}

func (Spin) DelayMicroseconds(us uint32) {
	cpu.Nanospin(time.Duration(us) * time.Microsecond)
}

func (Spin) DelayMilliseconds(ms uint32) {
	cpu.Nanospin(time.Duration(ms) * time.Millisecond)
}

// Yield polls the clock and calls runtime.Gosched between polls, so other
// goroutines make progress on the same thread while the delay elapses.
type Yield struct{}

func (Yield) DelayMicroseconds(us uint32) {
	yield(time.Duration(us) * time.Microsecond)
}

func (Yield) DelayMilliseconds(ms uint32) {
	yield(time.Duration(ms) * time.Millisecond)
}

func yield(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		runtime.Gosched()
	}
}

var _ Delayer = Sleep{}
var _ Delayer = Spin{}
var _ Delayer = Yield{}
var _ Delayer = DelayerFunc(nil)
