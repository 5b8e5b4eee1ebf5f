// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdemu

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/GermanBionicSystems/liquidcrystal/hd44780"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/display/displaytest"
)

var noDelay = hd44780.DelayerFunc(func(time.Duration) {})

func newLCD(t *testing.T, width hd44780.BusWidth, opts *Opts) (*hd44780.Dev, *Dev) {
	t.Helper()
	if opts.W == nil {
		opts.W = &bytes.Buffer{}
	}
	emu := New(opts)
	dev, err := hd44780.New(emu, &hd44780.Opts{Width: width, Layout: opts.Layout, Delay: noDelay})
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.Begin(); err != nil {
		t.Fatal(err)
	}
	return dev, emu
}

func TestPowerOn(t *testing.T) {
	emu := New(&Opts{W: &bytes.Buffer{}})
	if w, two := emu.Interface(0); w != hd44780.EightBit || two {
		t.Errorf("Interface() = %s, %t", w, two)
	}
	if emu.Config(0).DisplayOn {
		t.Error("display on at power on")
	}
	if s := emu.String(); s != "lcdemu(16x2)" {
		t.Errorf("String() = %q", s)
	}
	if emu.Lines(1) != nil {
		t.Error("Lines() of a missing panel")
	}
}

func TestBegin(t *testing.T) {
	for _, width := range []hd44780.BusWidth{hd44780.FourBit, hd44780.EightBit} {
		t.Run(width.String(), func(t *testing.T) {
			dev, emu := newLCD(t, width, &Opts{})
			if w, two := emu.Interface(0); w != width || !two {
				t.Errorf("Interface() = %s, %t", w, two)
			}
			if diff := cmp.Diff(emu.Config(0), hd44780.DefaultConfig); diff != "" {
				t.Errorf("Config() difference (-got +want):\n%s", diff)
			}
			if err := dev.Put(hd44780.Text("Hello"), hd44780.MoveLine2, hd44780.Text("world")); err != nil {
				t.Fatal(err)
			}
			want := []string{"Hello           ", "world           "}
			if diff := cmp.Diff(emu.Lines(0), want); diff != "" {
				t.Errorf("Lines() difference (-got +want):\n%s", diff)
			}
			// A second Begin resynchronizes and clears.
			if err := dev.Begin(); err != nil {
				t.Fatal(err)
			}
			if err := dev.Put(hd44780.Text("again")); err != nil {
				t.Fatal(err)
			}
			want = []string{"again           ", "                "}
			if diff := cmp.Diff(emu.Lines(0), want); diff != "" {
				t.Errorf("Lines() difference (-got +want):\n%s", diff)
			}
		})
	}
}

// A lone nibble leaves a 4-bit controller half way through a byte; Begin
// must recover from it.
func TestBeginResync(t *testing.T) {
	dev, emu := newLCD(t, hd44780.FourBit, &Opts{})
	if err := emu.Send(hd44780.RS|hd44780.E, 0x40); err != nil {
		t.Fatal(err)
	}
	if err := emu.Send(hd44780.RS, 0x40); err != nil {
		t.Fatal(err)
	}
	if err := dev.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := dev.Put(hd44780.Text("ok")); err != nil {
		t.Fatal(err)
	}
	if got := emu.Lines(0)[0]; got != "ok              " {
		t.Errorf("Lines()[0] = %q", got)
	}
}

func TestLayout20x4(t *testing.T) {
	dev, emu := newLCD(t, hd44780.FourBit, &Opts{Layout: hd44780.LCD20x4})
	for line := range 4 {
		if err := dev.SetCursor(line, line); err != nil {
			t.Fatal(err)
		}
		if err := dev.Put(hd44780.Text(string(rune('0' + line)))); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{
		"0                   ",
		" 1                  ",
		"  2                 ",
		"   3                ",
	}
	if diff := cmp.Diff(emu.Lines(0), want); diff != "" {
		t.Errorf("Lines() difference (-got +want):\n%s", diff)
	}
	// Past the end of line 1 the address counter continues on line 3.
	if err := dev.Put(hd44780.Clear, hd44780.Text(strings.Repeat("a", 20)+"b")); err != nil {
		t.Fatal(err)
	}
	if got := emu.Lines(0)[2]; got != "b                   " {
		t.Errorf("line 3 = %q", got)
	}
}

func TestCreateChar(t *testing.T) {
	dev, emu := newLCD(t, hd44780.FourBit, &Opts{})
	g, err := hd44780.ParseGlyph("#...#", ".#.#.", "..#..", ".#.#.", "#...#")
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.Put(hd44780.Text("ab")); err != nil {
		t.Fatal(err)
	}
	if err := dev.CreateChar(g, 5); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(emu.Glyph(0, 5), g); diff != "" {
		t.Errorf("Glyph() difference (-got +want):\n%s", diff)
	}
	// The cursor is back home, in DDRAM.
	if addr, cg := emu.Address(0); addr != 0 || cg {
		t.Errorf("Address() = 0x%02x, %t", addr, cg)
	}
	if err := dev.Put(hd44780.CustomChar(5)); err != nil {
		t.Fatal(err)
	}
	if got := emu.Lines(0)[0][:2]; got != "\x05b" {
		t.Errorf("Lines()[0] = %q", got)
	}
	if err := dev.CreateChar(g, 8); err != nil {
		t.Fatal(err)
	}
	for slot := range uint8(8) {
		if slot != 5 && emu.Glyph(0, slot) != (hd44780.Glyph{}) {
			t.Errorf("slot %d written", slot)
		}
	}
	// Slot 13 is not slot 5.
	if emu.Glyph(0, 13) != (hd44780.Glyph{}) {
		t.Error("Glyph(0, 13) aliases slot 5")
	}
}

func TestConfig(t *testing.T) {
	dev, emu := newLCD(t, hd44780.EightBit, &Opts{})
	dev.EnableCursor().EnableBlink().DisableDisplay()
	if emu.Config(0) != hd44780.DefaultConfig {
		t.Error("staged config reached the display")
	}
	if err := dev.UpdateConfig(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(emu.Config(0), dev.Config()); diff != "" {
		t.Errorf("Config() difference (-got +want):\n%s", diff)
	}
}

func TestRightToLeft(t *testing.T) {
	dev, emu := newLCD(t, hd44780.FourBit, &Opts{})
	dev.RightToLeft()
	if err := dev.UpdateConfig(); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetCursor(0, 4); err != nil {
		t.Fatal(err)
	}
	if err := dev.Put(hd44780.Text("abc")); err != nil {
		t.Fatal(err)
	}
	if got := emu.Lines(0)[0][:5]; got != "  cba" {
		t.Errorf("Lines()[0] = %q", got)
	}
}

func TestShiftDisplay(t *testing.T) {
	dev, emu := newLCD(t, hd44780.FourBit, &Opts{})
	if err := dev.Put(hd44780.Text("abc"), hd44780.ShiftDisplayLeft); err != nil {
		t.Fatal(err)
	}
	if got := emu.Lines(0)[0][:3]; got != "bc " {
		t.Errorf("after left shift: %q", got)
	}
	if err := dev.Put(hd44780.ShiftDisplayRight, hd44780.ShiftDisplayRight); err != nil {
		t.Fatal(err)
	}
	if got := emu.Lines(0)[0][:4]; got != " abc" {
		t.Errorf("after right shift: %q", got)
	}
	if err := dev.Home(); err != nil {
		t.Fatal(err)
	}
	if got := emu.Lines(0)[0][:3]; got != "abc" {
		t.Errorf("after home: %q", got)
	}
}

func TestAutoScroll(t *testing.T) {
	dev, emu := newLCD(t, hd44780.FourBit, &Opts{})
	if err := dev.SetCursor(0, 15); err != nil {
		t.Fatal(err)
	}
	if err := dev.Put(hd44780.Text("x")); err != nil {
		t.Fatal(err)
	}
	if err := dev.AutoScroll(true); err != nil {
		t.Fatal(err)
	}
	if err := dev.Put(hd44780.Text("yz")); err != nil {
		t.Fatal(err)
	}
	if got := emu.Lines(0)[0][13:]; got != "xyz" {
		t.Errorf("Lines()[0] = %q", got)
	}
}

func TestPanels(t *testing.T) {
	dev, emu := newLCD(t, hd44780.FourBit, &Opts{Layout: hd44780.LCD40x2, Panels: 2})
	for panel := range 2 {
		if w, _ := emu.Interface(panel); w != hd44780.FourBit {
			t.Errorf("panel %d not initialized", panel)
		}
	}
	dev.SelectDisplay(0)
	if err := dev.Put(hd44780.Text("top")); err != nil {
		t.Fatal(err)
	}
	dev.SelectDisplay(1)
	if err := dev.Put(hd44780.Text("bottom")); err != nil {
		t.Fatal(err)
	}
	dev.Echo()
	if err := dev.Put(hd44780.MoveLine2, hd44780.Text("both")); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimRight(emu.Lines(0)[0], " "); got != "top" {
		t.Errorf("panel 0 = %q", got)
	}
	if got := strings.TrimRight(emu.Lines(1)[0], " "); got != "bottom" {
		t.Errorf("panel 1 = %q", got)
	}
	for panel := range 2 {
		if got := strings.TrimRight(emu.Lines(panel)[1], " "); got != "both" {
			t.Errorf("panel %d line 2 = %q", panel, got)
		}
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	dev, emu := newLCD(t, hd44780.FourBit, &Opts{W: &buf})
	if err := dev.Put(hd44780.Text("Hello"), hd44780.CustomChar(0), hd44780.Text("é")); err != nil {
		t.Fatal(err)
	}
	if err := emu.Render(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("%d lines rendered", n)
	}
	if !strings.Contains(out, "Hello") {
		t.Errorf("text missing from %q", out)
	}
	if strings.ContainsRune(out, 0) {
		t.Error("CGRAM code written raw")
	}
	buf.Reset()
	if err := dev.Display(false); err != nil {
		t.Fatal(err)
	}
	if err := emu.Render(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Hello") {
		t.Error("text rendered while the display is off")
	}
	buf.Reset()
	if err := emu.RenderGlyph(0, 0); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 8 {
		t.Errorf("%d glyph rows rendered", n)
	}
}

func TestBacklight(t *testing.T) {
	dev, emu := newLCD(t, hd44780.FourBit, &Opts{})
	if err := dev.Backlight(0); err != nil {
		t.Fatal(err)
	}
	if emu.backlight != 0 {
		t.Error("backlight still on")
	}
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if emu.Config(0).DisplayOn {
		t.Error("Halt() left the display on")
	}
	if err := emu.Halt(); err != nil {
		t.Fatal(err)
	}
}

func TestInterface(t *testing.T) {
	dev, _ := newLCD(t, hd44780.FourBit, &Opts{})
	for _, err := range displaytest.TestTextDisplay(dev, false) {
		t.Log(err)
	}
}
