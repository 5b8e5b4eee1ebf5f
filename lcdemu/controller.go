// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdemu

// controller models the registers and RAM of one HD44780.
type controller struct {
	eightBit bool
	pending  bool
	high     byte

	twoLines bool
	font5x10 bool

	ddram  [0x80]byte
	cgram  [0x40]byte
	ac     byte
	cg     bool
	offset int

	increment bool
	shift     bool
	on        bool
	cursor    bool
	blink     bool
}

// newController returns a controller in its internal reset state: 8-bit
// interface, one line, display off, increment without shift.
func newController() *controller {
	c := &controller{eightBit: true, increment: true}
	c.clear()
	return c
}

// latch is called on the falling edge of the enable line.
func (c *controller) latch(rs bool, data byte) {
	if c.eightBit {
		c.exec(rs, data)
		return
	}
	if !c.pending {
		c.high = data & 0xf0
		c.pending = true
		return
	}
	c.pending = false
	c.exec(rs, c.high|data>>4)
}

func (c *controller) exec(rs bool, v byte) {
	if rs {
		c.write(v)
		return
	}
	switch {
	case v&0x80 != 0:
		c.cg = false
		c.ac = v & 0x7f
	case v&0x40 != 0:
		c.cg = true
		c.ac = v & 0x3f
	case v&0x20 != 0:
		c.eightBit = v&0x10 != 0
		c.twoLines = v&0x08 != 0
		c.font5x10 = v&0x04 != 0
		c.pending = false
	case v&0x10 != 0:
		right := v&0x04 != 0
		if v&0x08 != 0 {
			// Shifting the display right moves the window left.
			if right {
				c.offset--
			} else {
				c.offset++
			}
		} else {
			c.step(right)
		}
	case v&0x08 != 0:
		c.on = v&0x04 != 0
		c.cursor = v&0x02 != 0
		c.blink = v&0x01 != 0
	case v&0x04 != 0:
		c.increment = v&0x02 != 0
		c.shift = v&0x01 != 0
	case v&0x02 != 0:
		c.ac = 0
		c.cg = false
		c.offset = 0
	case v&0x01 != 0:
		c.clear()
	}
}

func (c *controller) clear() {
	for ix := range c.ddram {
		c.ddram[ix] = ' '
	}
	c.ac = 0
	c.cg = false
	c.offset = 0
	c.increment = true
}

func (c *controller) write(v byte) {
	if c.cg {
		c.cgram[c.ac&0x3f] = v & 0x1f
		if c.increment {
			c.ac = (c.ac + 1) & 0x3f
		} else {
			c.ac = (c.ac - 1) & 0x3f
		}
		return
	}
	c.ddram[c.ac&0x7f] = v
	c.step(c.increment)
	if c.shift {
		if c.increment {
			c.offset++
		} else {
			c.offset--
		}
	}
}

// step moves the DDRAM address counter, wrapping the way the controller
// does: 0x00-0x4f in one line mode, 0x00-0x27 then 0x40-0x67 in two line
// mode.
func (c *controller) step(forward bool) {
	if !c.twoLines {
		if forward {
			c.ac = (c.ac + 1) % 80
		} else {
			c.ac = (c.ac + 79) % 80
		}
		return
	}
	if forward {
		switch c.ac++; c.ac {
		case 0x28:
			c.ac = 0x40
		case 0x68:
			c.ac = 0x00
		}
		return
	}
	switch c.ac {
	case 0x00:
		c.ac = 0x67
	case 0x40:
		c.ac = 0x27
	default:
		c.ac--
	}
}

// line returns the visible character codes of a display line starting at
// DDRAM address base.
func (c *controller) line(base byte, columns int) []byte {
	bank, size := byte(0), 80
	if c.twoLines {
		bank, size = base&0x40, 40
	}
	start := int(base - bank)
	out := make([]byte, columns)
	for col := range columns {
		off := ((start+col+c.offset)%size + size) % size
		out[col] = c.ddram[int(bank)+off]
	}
	return out
}
