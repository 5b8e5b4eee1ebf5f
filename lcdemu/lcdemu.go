// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdemu implements an HD44780 in software, as an hd44780.Transport.
//
// It decodes the enable strobes exactly like the controller does, in 8-bit
// or 4-bit interface mode, and keeps DDRAM and CGRAM so that tests can check
// what a real module would show. Render draws the result on the terminal
// using ANSI color codes.
//
// Useful while you are waiting for your LCD to come by mail.
package lcdemu

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/GermanBionicSystems/liquidcrystal/hd44780"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

const maxPanels = 6

// Opts represents the options available for the emulator.
type Opts struct {
	// Layout of each panel. If zero, hd44780.LCD16x2.
	Layout hd44780.Layout
	// Panels is the number of controllers sharing the bus, each on its own
	// enable line. If zero, 1.
	Panels int
	// W receives Render output. If nil, stdout.
	W       io.Writer
	Palette *ansi256.Palette

	_ struct{}
}

// Dev is an emulated display with one or more controllers.
type Dev struct {
	layout  hd44780.Layout
	w       io.Writer
	palette ansi256.Palette

	mu        sync.Mutex
	panels    []*controller
	enable    hd44780.EnableMask
	backlight display.Intensity
	buf       bytes.Buffer
}

// New returns an emulated display in its power-on state.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	layout := opts.Layout
	if layout.Lines() == 0 {
		layout = hd44780.LCD16x2
	}
	n := opts.Panels
	if n < 1 {
		n = 1
	}
	if n > maxPanels {
		n = maxPanels
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{layout: layout, w: w, palette: *p, backlight: 0xff}
	for range n {
		d.panels = append(d.panels, newController())
	}
	return d
}

// Send implements hd44780.Transport. Data is latched into every panel whose
// enable line falls.
func (d *Dev) Send(c hd44780.Control, data byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cur := c.Enable()
	fell := d.enable &^ cur
	d.enable = cur
	for ix, p := range d.panels {
		if fell&(1<<ix) != 0 {
			p.latch(c&hd44780.RS != 0, data)
		}
	}
	return nil
}

// Backlight implements display.DisplayBacklight.
func (d *Dev) Backlight(intensity display.Intensity) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.backlight = intensity
	return nil
}

func (d *Dev) panel(n int) *controller {
	if n < 0 || n >= len(d.panels) {
		return nil
	}
	return d.panels[n]
}

// Lines returns the character codes visible on each line of a panel, taking
// the display shift into account. Nil if the panel doesn't exist.
func (d *Dev) Lines(panel int) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.panel(panel)
	if p == nil {
		return nil
	}
	out := make([]string, d.layout.Lines())
	for ix, base := range d.layout.Addrs {
		out[ix] = string(p.line(base&0x7f, d.layout.Columns))
	}
	return out
}

// Glyph returns the content of CGRAM slot 0 to 7, or a blank glyph.
func (d *Dev) Glyph(panel int, slot uint8) hd44780.Glyph {
	d.mu.Lock()
	defer d.mu.Unlock()
	var g hd44780.Glyph
	if p := d.panel(panel); p != nil && slot < 8 {
		copy(g[:], p.cgram[int(slot)*8:])
	}
	return g
}

// Config returns the entry mode and display control state of a panel.
func (d *Dev) Config(panel int) hd44780.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.panel(panel)
	if p == nil {
		return hd44780.Config{}
	}
	return hd44780.Config{
		LeftToRight: p.increment,
		AutoScroll:  p.shift,
		DisplayOn:   p.on,
		CursorOn:    p.cursor,
		BlinkOn:     p.blink,
	}
}

// Address returns the address counter of a panel and whether it points into
// CGRAM.
func (d *Dev) Address(panel int) (addr byte, cgram bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p := d.panel(panel); p != nil {
		return p.ac, p.cg
	}
	return 0, false
}

// Interface returns the interface width a panel currently decodes, and
// whether it is in two line mode.
func (d *Dev) Interface(panel int) (width hd44780.BusWidth, twoLines bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.panel(panel)
	if p == nil {
		return 0, false
	}
	if p.eightBit {
		return hd44780.EightBit, p.twoLines
	}
	return hd44780.FourBit, p.twoLines
}

func (d *Dev) String() string {
	return fmt.Sprintf("lcdemu(%s)", d.layout)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so it is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m"))
	return err
}

var _ hd44780.Transport = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}

// Colors of a yellow-green STN module.
var (
	litColor   = color.NRGBA{0x9a, 0xcd, 0x32, 0xff}
	darkColor  = color.NRGBA{0x20, 0x30, 0x10, 0xff}
	unlitColor = color.NRGBA{0x30, 0x30, 0x30, 0xff}
)
