// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Parallel drives the controller lines from GPIO pins.
//
// The data group holds D4..D7 (4 pins) or D0..D7 (8 pins), lowest line
// first. Several controllers may share the data and RS lines, each with its
// own enable pin: this is how 40x4 modules, which carry two controllers, are
// wired.
type Parallel struct {
	data    gpio.Group
	rs      gpio.PinOut
	enables []gpio.PinOut
	width   BusWidth

	primed bool
	last   Control
	value  byte
}

// NewParallel returns a Transport using data, rs and up to 6 enable pins.
func NewParallel(data gpio.Group, rs gpio.PinOut, enables ...gpio.PinOut) (*Parallel, error) {
	if data == nil || rs == nil {
		return nil, errors.New("hd44780: data group and rs pin are required")
	}
	n := len(data.Pins())
	if n < 4 {
		return nil, fmt.Errorf("hd44780: %d data pins, need 4 or 8", n)
	}
	if len(enables) == 0 || len(enables) > maxPanels {
		return nil, fmt.Errorf("hd44780: %d enable pins, need 1 to %d", len(enables), maxPanels)
	}
	p := &Parallel{data: data, rs: rs, enables: enables, width: FourBit}
	if n >= 8 {
		p.width = EightBit
	}
	return p, nil
}

// Send sets the data lines and RS first, then the enable lines, so data is
// stable by the time an enable line rises. Lines that didn't change are not
// written again.
func (p *Parallel) Send(c Control, data byte) error {
	if !p.primed || data != p.value {
		var err error
		if p.width == EightBit {
			err = p.data.Out(gpio.GPIOValue(data), 0xff)
		} else {
			err = p.data.Out(gpio.GPIOValue(data>>4), 0x0f)
		}
		if err != nil {
			return err
		}
		p.value = data
	}
	if !p.primed || (c^p.last)&RS != 0 {
		if err := p.rs.Out(gpio.Level(c&RS != 0)); err != nil {
			return err
		}
	}
	changed := c.Enable() ^ p.last.Enable()
	for ix, e := range p.enables {
		bit := EnableMask(1) << ix
		if p.primed && changed&bit == 0 {
			continue
		}
		if err := e.Out(gpio.Level(c.Enable()&bit != 0)); err != nil {
			return err
		}
	}
	p.primed = true
	p.last = c
	return nil
}

// Width returns the bus width implied by the number of data pins.
func (p *Parallel) Width() BusWidth {
	return p.width
}

func (p *Parallel) String() string {
	return fmt.Sprintf("Parallel(%s)", p.data)
}

// NewGPIO returns an initialized display wired to GPIO pins, the usual setup
// on a single board computer. bl may be nil if the backlight is hard wired.
func NewGPIO(data gpio.Group, rs, e, bl gpio.PinOut, layout Layout) (*Dev, error) {
	p, err := NewParallel(data, rs, e)
	if err != nil {
		return nil, err
	}
	opts := Opts{Layout: layout}
	if bl != nil {
		opts.Backlight = NewBacklight(bl)
	}
	dev, err := New(p, &opts)
	if err != nil {
		return nil, err
	}
	return dev, dev.Begin()
}

var _ Transport = &Parallel{}
