// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "testing"

func TestEncoder(t *testing.T) {
	for _, tc := range []struct {
		name string
		got  byte
		want byte
	}{
		{"entry default", entryModeSet(true, false), 0x06},
		{"entry right to left", entryModeSet(false, false), 0x04},
		{"entry autoscroll", entryModeSet(true, true), 0x07},
		{"display off", displayControl(false, false, false), 0x08},
		{"display on", displayControl(true, false, false), 0x0c},
		{"display cursor blink", displayControl(true, true, true), 0x0f},
		{"function 4-bit 1 line", functionSet(FourBit, 1, Font5x8), 0x20},
		{"function 4-bit 2 lines", functionSet(FourBit, 2, Font5x8), 0x28},
		{"function 8-bit 4 lines", functionSet(EightBit, 4, Font5x8), 0x38},
		{"function 8-bit 5x10", functionSet(EightBit, 1, Font5x10), 0x34},
		{"cgram slot 0", setCGRAMAddr(0), 0x40},
		{"cgram slot 7", setCGRAMAddr(7), 0x78},
		{"config default", DefaultConfig.displayControl(), 0x0c},
	} {
		if tc.got != tc.want {
			t.Errorf("%s: got 0x%02x, want 0x%02x", tc.name, tc.got, tc.want)
		}
	}
}

func TestCommandIsLong(t *testing.T) {
	for _, tc := range []struct {
		c    Command
		long bool
	}{
		{Clear, true},
		{ReturnHome, true},
		{0x03, true},
		{0, false},
		{ShiftCursorLeft, false},
		{ShiftDisplayRight, false},
		{MoveLine1, false},
		{MoveLine2, false},
		{Command(0x06), false},
	} {
		if got := tc.c.IsLong(); got != tc.long {
			t.Errorf("%s.IsLong() = %t", tc.c, got)
		}
	}
	if s := Command(0x06).String(); s != "Command(0x06)" {
		t.Errorf("unexpected String() %q", s)
	}
}

func TestLayout(t *testing.T) {
	for _, l := range []Layout{LCD8x2, LCD16x2, LCD16x4, LCD20x2, LCD20x4, LCD24x2, LCD40x2} {
		if err := l.Validate(); err != nil {
			t.Errorf("%s: %v", l, err)
		}
	}
	for _, l := range []Layout{
		{},
		{Columns: 16},
		{Columns: 81, Addrs: []byte{0x80}},
		{Columns: 16, Addrs: []byte{0x00, 0x40}},
		{Columns: 16, Addrs: []byte{0x80, 0xc0, 0x80, 0xc0, 0x80}},
		{Columns: 80, Addrs: []byte{0xc0}},
	} {
		if err := l.Validate(); err == nil {
			t.Errorf("%s: expected an error", l)
		}
	}
}

func TestLayoutAddress(t *testing.T) {
	for _, tc := range []struct {
		l            Layout
		line, column int
		want         byte
		ok           bool
	}{
		{LCD16x2, 0, 0, 0x80, true},
		{LCD16x2, 1, 15, 0xcf, true},
		{LCD16x2, 2, 0, 0, false},
		{LCD16x2, 0, 16, 0, false},
		{LCD16x2, -1, 0, 0, false},
		{LCD20x4, 2, 0, 0x94, true},
		{LCD20x4, 3, 19, 0xe7, true},
		{LCD16x4, 3, 0, 0xd0, true},
	} {
		got, ok := tc.l.address(tc.line, tc.column)
		if got != tc.want || ok != tc.ok {
			t.Errorf("%s.address(%d, %d) = 0x%02x, %t; want 0x%02x, %t", tc.l, tc.line, tc.column, got, ok, tc.want, tc.ok)
		}
	}
}

func TestLayoutClone(t *testing.T) {
	l := Layout{Columns: 16, Addrs: []byte{0x80, 0xc0}}
	c := l.clone()
	l.Addrs[1] = 0x90
	if c.Addrs[1] != 0xc0 {
		t.Error("clone shares its address slice")
	}
}
