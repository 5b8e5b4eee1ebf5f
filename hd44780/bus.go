// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"time"

	"periph.io/x/host/v3/cpu"
)

// BusWidth is the number of data lines wired between the host and the
// controller.
type BusWidth uint8

const (
	// FourBit uses D4..D7 only. Every byte is sent as two nibbles, high
	// nibble first.
	FourBit BusWidth = 4
	// EightBit uses D0..D7.
	EightBit BusWidth = 8
)

func (w BusWidth) String() string {
	if w == EightBit {
		return "8-bit"
	}
	return "4-bit"
}

// RegisterSelect is the level of the RS line for a byte.
type RegisterSelect bool

const (
	CommandRegister RegisterSelect = false
	DataRegister    RegisterSelect = true
)

// Control is the state of the control lines for one Transport.Send call.
//
// Bit 0 is RS, bit 1 is R/W (never set, the driver doesn't read) and bits 2
// to 7 are the enable lines of up to six controllers sharing the data bus.
type Control byte

const (
	RS Control = 0x01
	RW Control = 0x02
	E  Control = 0x04
)

// Enable returns the enable bits of c, shifted so that bit 0 is the first
// controller.
func (c Control) Enable() EnableMask {
	return EnableMask(c >> 2)
}

// EnableMask selects the controllers strobed by a transaction. Bit n is the
// enable line of controller n.
type EnableMask byte

// Echo strobes every enable line, so all panels receive the same bytes.
const Echo EnableMask = 0x3f

const maxPanels = 6

func (m EnableMask) control() Control {
	return Control(m&Echo) << 2
}

// Transport sets the control and data lines of the controller.
//
// data is aligned on D7: with a 4-bit bus only its upper nibble is
// meaningful. Send must reflect both values on the physical lines before it
// returns.
type Transport interface {
	Send(c Control, data byte) error
}

// Settle times. The controller needs the enable pulse high for at least
// 450ns; instructions take 37µs except Clear and Return Home which take
// 1.52ms.
const (
	pulseWidth    = 5 * time.Microsecond
	dataSettleUs  = 2
	cmdSettleUs   = 40
	longCommandMs = 2
)

// framer turns bytes into enable strobed transactions.
type framer struct {
	t      Transport
	delay  Delayer
	width  BusWidth
	enable EnableMask
}

// sendByte writes value to the instruction register or the data register,
// then waits for the controller to execute it.
func (f *framer) sendByte(value byte, rs RegisterSelect) error {
	c := Control(0)
	if rs == DataRegister {
		c = RS
	}
	if f.width == EightBit {
		if err := f.pulse(c, value); err != nil {
			return err
		}
	} else {
		if err := f.pulse(c, value&0xf0); err != nil {
			return err
		}
		if err := f.pulse(c, value<<4); err != nil {
			return err
		}
	}
	if rs == DataRegister {
		f.delay.DelayMicroseconds(dataSettleUs)
	} else {
		f.delay.DelayMicroseconds(cmdSettleUs)
	}
	return nil
}

// pulse performs one enable strobe with data held on the bus: enable low,
// enable high, enable low. The data is latched on the falling edge.
//
// The pulse width is spun rather than handed to the Delayer so that a
// scheduler can never leave the enable line high.
func (f *framer) pulse(c Control, data byte) error {
	if err := f.t.Send(c, data); err != nil {
		return err
	}
	if err := f.t.Send(c|f.enable.control(), data); err != nil {
		return err
	}
	cpu.Nanospin(pulseWidth)
	return f.t.Send(c, data)
}
