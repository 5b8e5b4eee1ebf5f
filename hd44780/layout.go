// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"
	"slices"
)

// Layout describes the geometry of a module: how many columns each line has,
// and the Set DDRAM Address instruction (0x80 | address) of the first
// character of every line.
//
// Four line modules are two long lines folded in half, which is why line 3
// continues line 1 and line 4 continues line 2.
type Layout struct {
	Columns int
	Addrs   []byte
}

// Common module geometries.
var (
	LCD8x2  = Layout{Columns: 8, Addrs: []byte{0x80, 0xc0}}
	LCD16x2 = Layout{Columns: 16, Addrs: []byte{0x80, 0xc0}}
	LCD16x4 = Layout{Columns: 16, Addrs: []byte{0x80, 0xc0, 0x80 + 16, 0xc0 + 16}}
	LCD20x2 = Layout{Columns: 20, Addrs: []byte{0x80, 0xc0}}
	LCD20x4 = Layout{Columns: 20, Addrs: []byte{0x80, 0xc0, 0x80 + 20, 0xc0 + 20}}
	LCD24x2 = Layout{Columns: 24, Addrs: []byte{0x80, 0xc0}}
	LCD40x2 = Layout{Columns: 40, Addrs: []byte{0x80, 0xc0}}
)

// Lines returns the number of display lines.
func (l Layout) Lines() int {
	return len(l.Addrs)
}

func (l Layout) String() string {
	return fmt.Sprintf("%dx%d", l.Columns, l.Lines())
}

// Validate checks that the layout can be addressed by a controller.
func (l Layout) Validate() error {
	if l.Columns < 1 || l.Columns > 80 {
		return fmt.Errorf("%w: %d columns", ErrInvalidLayout, l.Columns)
	}
	if l.Lines() < 1 || l.Lines() > 4 {
		return fmt.Errorf("%w: %d lines", ErrInvalidLayout, l.Lines())
	}
	for ix, a := range l.Addrs {
		if a&cmdSetDDRAMAddr == 0 {
			return fmt.Errorf("%w: line %d address 0x%02x lacks the DDRAM bit", ErrInvalidLayout, ix, a)
		}
		if int(a)+l.Columns-1 > 0xff {
			return fmt.Errorf("%w: line %d overflows the DDRAM address space", ErrInvalidLayout, ix)
		}
	}
	return nil
}

// address returns the Set DDRAM Address instruction for a zero based
// position. ok is false when the position falls outside the layout.
func (l Layout) address(line, column int) (cmd byte, ok bool) {
	if line < 0 || line >= l.Lines() || column < 0 || column >= l.Columns {
		return 0, false
	}
	return l.Addrs[line] + byte(column), true
}

func (l Layout) clone() Layout {
	return Layout{Columns: l.Columns, Addrs: slices.Clone(l.Addrs)}
}
