// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780test is meant to be used to test drivers and programs using
// package hd44780.
//
// Record captures the line states sent by a Dev and the delays it asks for;
// Strobes and Instructions decode the capture back into what the controller
// latched.
package hd44780test

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/liquidcrystal/hd44780"
)

// IO is one Transport.Send call.
type IO struct {
	Control hd44780.Control
	Data    byte
}

func (io IO) String() string {
	return fmt.Sprintf("{c=0x%02x d=0x%02x}", byte(io.Control), io.Data)
}

// Event is either a Send or a delay, in call order.
type Event struct {
	IO    IO
	Delay time.Duration
	// IsDelay tells which of IO and Delay is set.
	IsDelay bool
}

// Record implements hd44780.Transport and hd44780.Delayer. It records every
// call, and forwards sends to Transport when it is set.
//
// Delays are recorded, not performed.
type Record struct {
	sync.Mutex
	Transport hd44780.Transport
	Ops       []IO
	Delays    []time.Duration
	Events    []Event
}

// Send implements hd44780.Transport.
func (r *Record) Send(c hd44780.Control, data byte) error {
	r.Lock()
	defer r.Unlock()
	io := IO{Control: c, Data: data}
	r.Ops = append(r.Ops, io)
	r.Events = append(r.Events, Event{IO: io})
	if r.Transport != nil {
		return r.Transport.Send(c, data)
	}
	return nil
}

// DelayMicroseconds implements hd44780.Delayer.
func (r *Record) DelayMicroseconds(us uint32) {
	r.delay(time.Duration(us) * time.Microsecond)
}

// DelayMilliseconds implements hd44780.Delayer.
func (r *Record) DelayMilliseconds(ms uint32) {
	r.delay(time.Duration(ms) * time.Millisecond)
}

func (r *Record) delay(d time.Duration) {
	r.Lock()
	defer r.Unlock()
	r.Delays = append(r.Delays, d)
	r.Events = append(r.Events, Event{Delay: d, IsDelay: true})
}

// Reset forgets everything recorded so far.
func (r *Record) Reset() {
	r.Lock()
	defer r.Unlock()
	r.Ops = nil
	r.Delays = nil
	r.Events = nil
}

// Total returns the sum of the recorded delays.
func (r *Record) Total() time.Duration {
	r.Lock()
	defer r.Unlock()
	var t time.Duration
	for _, d := range r.Delays {
		t += d
	}
	return t
}

func (r *Record) String() string {
	return "record"
}

// ErrInjected is returned by Failing.
var ErrInjected = errors.New("hd44780test: injected failure")

// Failing is a Transport that succeeds After times, then fails with Err, or
// ErrInjected if Err is nil.
type Failing struct {
	After int
	Err   error
	Count int
}

// Send implements hd44780.Transport.
func (f *Failing) Send(c hd44780.Control, data byte) error {
	if f.Count >= f.After {
		if f.Err != nil {
			return f.Err
		}
		return ErrInjected
	}
	f.Count++
	return nil
}

// Strobe is the state of the lines when one or more enable lines fell, the
// moment the controller latches the data lines.
type Strobe struct {
	RS     bool
	Enable hd44780.EnableMask
	Data   byte
}

// Strobes returns the falling edges found in ops.
func Strobes(ops []IO) []Strobe {
	var out []Strobe
	var prev hd44780.EnableMask
	for _, op := range ops {
		cur := op.Control.Enable()
		if fell := prev &^ cur; fell != 0 {
			out = append(out, Strobe{RS: op.Control&hd44780.RS != 0, Enable: fell, Data: op.Data})
		}
		prev = cur
	}
	return out
}

// Instruction is a byte as received by the controller.
type Instruction struct {
	RS    hd44780.RegisterSelect
	Value byte
}

// Cmd and Data are shorthands for building expected instructions.
func Cmd(v byte) Instruction  { return Instruction{RS: hd44780.CommandRegister, Value: v} }
func Data(v byte) Instruction { return Instruction{RS: hd44780.DataRegister, Value: v} }

func (i Instruction) String() string {
	if i.RS == hd44780.DataRegister {
		return fmt.Sprintf("Data(0x%02x)", i.Value)
	}
	return fmt.Sprintf("Cmd(0x%02x)", i.Value)
}

// Instructions joins strobes into bytes. With FourBit, strobes are paired
// high nibble first; a trailing lone nibble is returned in the upper half of
// Value. It is an error for the two nibbles of a byte to disagree on RS.
func Instructions(strobes []Strobe, width hd44780.BusWidth) ([]Instruction, error) {
	var out []Instruction
	if width == hd44780.EightBit {
		for _, s := range strobes {
			out = append(out, Instruction{RS: hd44780.RegisterSelect(s.RS), Value: s.Data})
		}
		return out, nil
	}
	for ix := 0; ix < len(strobes); ix += 2 {
		hi := strobes[ix]
		if ix+1 == len(strobes) {
			out = append(out, Instruction{RS: hd44780.RegisterSelect(hi.RS), Value: hi.Data & 0xf0})
			break
		}
		lo := strobes[ix+1]
		if hi.RS != lo.RS {
			return out, fmt.Errorf("hd44780test: nibbles %d and %d disagree on RS", ix, ix+1)
		}
		out = append(out, Instruction{RS: hd44780.RegisterSelect(hi.RS), Value: hi.Data&0xf0 | lo.Data>>4})
	}
	return out, nil
}

var _ hd44780.Transport = &Record{}
var _ hd44780.Delayer = &Record{}
var _ hd44780.Transport = &Failing{}
