// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// DefaultAIP31068Address is the address of the AIP31068 on Waveshare LCD1602
// I²C modules.
const DefaultAIP31068Address uint16 = 0x3e

// AIP31068 is a Transport for the AIP31068, an HD44780 compatible controller
// with a native I²C interface. There are no pins to toggle: the byte held on
// the bus when the enable line falls is written with a control byte telling
// the instruction register from the data register.
//
// # Datasheet
//
// https://support.newhavendisplay.com/hc/en-us/article_attachments/4414498095511
type AIP31068 struct {
	d    *i2c.Dev
	high bool
}

// NewAIP31068 returns an AIP31068 transport.
func NewAIP31068(bus i2c.Bus, address uint16) *AIP31068 {
	return &AIP31068{d: &i2c.Dev{Bus: bus, Addr: address}}
}

// Send writes data on the falling edge of the enable line. The chip is a
// single controller, so any selected enable drives it.
func (a *AIP31068) Send(c Control, data byte) error {
	high := c.Enable() != 0
	falling := a.high && !high
	a.high = high
	if !falling {
		return nil
	}
	// Control byte: Co (bit 7) clear, a single byte follows. RS is bit 6.
	var control byte
	if c&RS != 0 {
		control = 0x40
	}
	return a.d.Tx([]byte{control, data}, nil)
}

// Width returns EightBit: full bytes travel in a single I²C write.
func (a *AIP31068) Width() BusWidth {
	return EightBit
}

func (a *AIP31068) String() string {
	return fmt.Sprintf("AIP31068_%x", a.d.Addr)
}

// NewAIP31068Display returns an initialized display driven by an AIP31068.
func NewAIP31068Display(bus i2c.Bus, address uint16, layout Layout) (*Dev, error) {
	dev, err := New(NewAIP31068(bus, address), &Opts{Width: EightBit, Layout: layout})
	if err != nil {
		return nil, err
	}
	return dev, dev.Begin()
}

var _ Transport = &AIP31068{}
