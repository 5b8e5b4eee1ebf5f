// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "fmt"

// Font selects the character cell height. 5x10 is only available on single
// line modules.
type Font uint8

const (
	Font5x8 Font = iota
	Font5x10
)

// Config is the display state held by the entry mode and display control
// instructions.
type Config struct {
	// LeftToRight increments the address counter after each character. When
	// false text is written right to left.
	LeftToRight bool
	// AutoScroll shifts the whole display on each character instead of
	// moving the cursor.
	AutoScroll bool
	DisplayOn  bool
	CursorOn   bool
	BlinkOn    bool
}

// DefaultConfig is applied by Dev.Begin: display on, no cursor, left to
// right text without scrolling.
var DefaultConfig = Config{LeftToRight: true, DisplayOn: true}

func (c Config) entryMode() byte {
	return entryModeSet(c.LeftToRight, c.AutoScroll)
}

func (c Config) displayControl() byte {
	return displayControl(c.DisplayOn, c.CursorOn, c.BlinkOn)
}

func (c Config) String() string {
	return fmt.Sprintf("entry=0x%02x control=0x%02x", c.entryMode(), c.displayControl())
}

// Setup is a complete one shot configuration: the staged Config plus the
// function set parameters.
type Setup struct {
	Config
	// TwoLines selects the two line addressing mode. Four line modules are
	// also two line controllers.
	TwoLines bool
	Font     Font
}

// DefaultSetup shows a blinking cursor on a two line module.
var DefaultSetup = Setup{
	Config:   Config{DisplayOn: true, CursorOn: true, BlinkOn: true},
	TwoLines: true,
	Font:     Font5x8,
}
