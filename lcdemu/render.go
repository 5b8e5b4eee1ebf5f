// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdemu

import (
	"image/color"
	"io"
)

const reset = "\033[0m"

// Render writes every panel to the terminal, one text line per display line,
// framed with the backlight color. CGRAM characters are drawn as a dark
// block; use RenderGlyph to see them.
func (d *Dev) Render() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	frame := d.frameColor()
	for _, p := range d.panels {
		for _, base := range d.layout.Addrs {
			_, _ = d.buf.WriteString(reset)
			_, _ = io.WriteString(&d.buf, d.palette.Block(frame))
			_, _ = d.buf.WriteString(reset)
			for _, code := range p.line(base&0x7f, d.layout.Columns) {
				switch {
				case !p.on:
					_ = d.buf.WriteByte(' ')
				case code < 0x10:
					_, _ = io.WriteString(&d.buf, d.palette.Block(darkColor))
					_, _ = d.buf.WriteString(reset)
				case code < 0x20 || code >= 0x7f:
					_ = d.buf.WriteByte('?')
				default:
					_ = d.buf.WriteByte(code)
				}
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(frame))
			_, _ = d.buf.WriteString(reset + "\n")
		}
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

// RenderGlyph draws a CGRAM slot of a panel as a 5x8 block of pixels.
func (d *Dev) RenderGlyph(panel int, slot uint8) error {
	g := d.Glyph(panel, slot)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buf.Reset()
	for _, row := range g {
		for x := range 5 {
			c := d.frameColor()
			if row&(0x10>>x) != 0 {
				c = darkColor
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString(reset + "\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

func (d *Dev) frameColor() color.NRGBA {
	if d.backlight == 0 {
		return unlitColor
	}
	return litColor
}
