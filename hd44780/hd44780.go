// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780 controls the Hitachi LCD display chipset HD-44780 and its
// many clones (KS0066, ST7066, SPLC780, AIP31068).
//
// The driver is write only. Modules rarely wire the R/W line, so instead of
// polling the busy flag every instruction is followed by the execution time
// listed in the datasheet.
//
// # Wiring
//
// A Dev talks to the controller through a Transport, which sets the RS,
// enable and data lines. This package provides transports for GPIO pins
// (Parallel), for the common I²C and SPI backpacks (Backpack) and for the
// AIP31068 I²C controller. Up to six controllers may share one parallel data
// bus, each with its own enable line; see Dev.SelectDisplay.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780

import (
	"errors"
	"fmt"
	"strings"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

const packageName = "hd44780"

var (
	ErrNotImplemented = fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)
	ErrInvalidLayout  = errors.New("hd44780: invalid layout")
	ErrNilTransport   = errors.New("hd44780: nil transport")
	ErrWidth          = errors.New("hd44780: bus width not supported by transport")
	ErrFont           = errors.New("hd44780: 5x10 font requires a single line layout")
)

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

// Opts is the configuration of a Dev.
type Opts struct {
	// Width of the data bus. If zero, the width reported by the transport is
	// used, or FourBit.
	Width BusWidth
	// Layout of the module. If zero, LCD16x2.
	Layout Layout
	Font   Font
	// Delay is the timing source. If nil, Sleep.
	Delay Delayer
	// Backlight is an optional backlight controller. If nil and the
	// transport implements display.DisplayBacklight, the transport is used.
	Backlight display.DisplayBacklight
}

// DefaultOpts is a 16x2 module on a 4-bit bus.
var DefaultOpts = Opts{
	Width:  FourBit,
	Layout: LCD16x2,
	Font:   Font5x8,
	Delay:  Sleep{},
}

// widther is implemented by transports whose wiring fixes the bus width.
type widther interface {
	Width() BusWidth
}

// Dev is a handle to one or more HD44780 controllers behind a Transport.
//
// Dev is not safe for concurrent use. It borrows the transport for its whole
// lifetime; nothing else may drive the same lines.
//
// Implements periph.io/x/conn/v3/display.TextDisplay and
// display.DisplayBacklight.
type Dev struct {
	t      Transport
	f      framer
	layout Layout
	font   Font
	cfg    Config
	bl     display.DisplayBacklight
}

// New returns a Dev bound to t. The display must be initialized with Begin
// before anything else is sent.
func New(t Transport, opts *Opts) (*Dev, error) {
	if t == nil {
		return nil, ErrNilTransport
	}
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	width := opts.Width
	if w, ok := t.(widther); ok {
		if width == 0 {
			width = w.Width()
		} else if width > w.Width() {
			return nil, fmt.Errorf("%w: %s on a %s transport", ErrWidth, width, w.Width())
		}
	}
	switch width {
	case 0:
		width = FourBit
	case FourBit, EightBit:
	default:
		return nil, fmt.Errorf("%w: %d data lines", ErrWidth, width)
	}
	layout := opts.Layout
	if layout.Columns == 0 && layout.Lines() == 0 {
		layout = LCD16x2
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if opts.Font == Font5x10 && layout.Lines() > 1 {
		return nil, ErrFont
	}
	delay := opts.Delay
	if delay == nil {
		delay = Sleep{}
	}
	bl := opts.Backlight
	if bl == nil {
		bl, _ = t.(display.DisplayBacklight)
	}
	return &Dev{
		t:      t,
		f:      framer{t: t, delay: delay, width: width, enable: Echo},
		layout: layout.clone(),
		font:   opts.Font,
		cfg:    DefaultConfig,
		bl:     bl,
	}, nil
}

// Begin runs the initialization by instruction sequence of figures 23 and 24
// of the datasheet. It works from any power-on state, so it may also be used
// to recover a display that lost nibble synchronization.
//
// All enable lines are strobed, whatever panel is currently selected.
func (d *Dev) Begin() error {
	mask := d.f.enable
	d.f.enable = Echo
	defer func() { d.f.enable = mask }()

	// Vcc must have been above 4.5V for 40ms.
	d.f.delay.DelayMilliseconds(50)
	// Three 8-bit function sets bring the controller to a known 8-bit state,
	// even from the middle of a 4-bit byte.
	for _, wait := range []uint32{4500, 150, 150} {
		if err := d.f.pulse(0, cmdFunctionSet|fnEightBit); err != nil {
			return wrap(err)
		}
		d.f.delay.DelayMicroseconds(wait)
	}
	if d.f.width == FourBit {
		// Still in 8-bit mode: this single strobe switches the interface.
		if err := d.f.pulse(0, cmdFunctionSet); err != nil {
			return wrap(err)
		}
		d.f.delay.DelayMicroseconds(cmdSettleUs)
	}
	if err := d.command(functionSet(d.f.width, d.layout.Lines(), d.font)); err != nil {
		return wrap(err)
	}
	if err := d.command(cmdClear); err != nil {
		return wrap(err)
	}
	if err := d.command(cmdReturnHome); err != nil {
		return wrap(err)
	}
	d.cfg = DefaultConfig
	return d.UpdateConfig()
}

// command sends an instruction and waits out the long execution time of the
// Clear and Return Home class.
func (d *Dev) command(b byte) error {
	if err := d.f.sendByte(b, CommandRegister); err != nil {
		return err
	}
	if Command(b).IsLong() {
		d.f.delay.DelayMilliseconds(longCommandMs)
	}
	return nil
}

// Item is something that can be written with Dev.Put: a Command, a Text or a
// CustomChar.
type Item interface {
	put(d *Dev) error
}

// Text is written as characters. Runes below 0x80 are sent as their own
// character code, so "\x08" to "\x0f" reach the CGRAM characters too. Other
// runes go through the ROM table of Encode. Nothing wraps at the end of a
// line; the address counter of the controller decides where the next
// character lands.
type Text string

// CustomChar writes the character stored in a CGRAM slot, 0 to 7. Other
// values are ignored.
type CustomChar uint8

func (c Command) put(d *Dev) error {
	return d.command(byte(c))
}

func (t Text) put(d *Dev) error {
	for _, r := range string(t) {
		if r < 0x80 {
			if err := d.f.sendByte(byte(r), DataRegister); err != nil {
				return err
			}
			continue
		}
		for _, b := range encodeRune(r) {
			if err := d.f.sendByte(b, DataRegister); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c CustomChar) put(d *Dev) error {
	if c >= 8 {
		return nil
	}
	return d.f.sendByte(byte(c), DataRegister)
}

// Put writes items in order. It stops at the first transport error.
//
//	lcd.Put(hd44780.Text("hello world"), hd44780.MoveLine2, hd44780.CustomChar(0))
func (d *Dev) Put(items ...Item) error {
	for _, it := range items {
		if err := it.put(d); err != nil {
			return wrap(err)
		}
	}
	return nil
}

// SetCursor moves the cursor to a zero based line and column. Positions
// outside the layout are ignored.
func (d *Dev) SetCursor(line, column int) error {
	cmd, ok := d.layout.address(line, column)
	if !ok {
		return nil
	}
	return wrap(d.command(cmd))
}

// CreateChar stores g in CGRAM slot 0 to 7. Other slots are ignored.
//
// Writing CGRAM moves the address counter away from DDRAM, so the cursor is
// always sent home afterward, even when the slot was ignored.
func (d *Dev) CreateChar(g Glyph, slot uint8) error {
	if slot < 8 {
		if err := d.command(setCGRAMAddr(slot)); err != nil {
			return wrap(err)
		}
		for _, row := range g {
			if err := d.f.sendByte(row, DataRegister); err != nil {
				return wrap(err)
			}
		}
	}
	return wrap(d.command(cmdReturnHome))
}

// Send writes a raw byte to the instruction or data register. Unlike Put, it
// doesn't wait for the long execution time of Clear or Return Home.
func (d *Dev) Send(value byte, rs RegisterSelect) error {
	return wrap(d.f.sendByte(value, rs))
}

// UpdateConfig sends the staged Config: the display control instruction,
// then the entry mode instruction.
func (d *Dev) UpdateConfig() error {
	if err := d.command(d.cfg.displayControl()); err != nil {
		return wrap(err)
	}
	return wrap(d.command(d.cfg.entryMode()))
}

// ApplySetup sends the entry mode, display control and function set of s,
// then clears the display. s.Config becomes the staged Config.
func (d *Dev) ApplySetup(s Setup) error {
	lines := 1
	if s.TwoLines {
		lines = 2
	}
	for _, b := range []byte{
		s.entryMode(),
		s.displayControl(),
		functionSet(d.f.width, lines, s.Font),
		cmdClear,
		cmdReturnHome,
	} {
		if err := d.command(b); err != nil {
			return wrap(err)
		}
	}
	d.cfg = s.Config
	return nil
}

// Config returns the staged configuration.
func (d *Dev) Config() Config {
	return d.cfg
}

// SetConfig stages c. Nothing is sent until UpdateConfig.
func (d *Dev) SetConfig(c Config) *Dev {
	d.cfg = c
	return d
}

// EnableDisplay stages the display on.
func (d *Dev) EnableDisplay() *Dev {
	d.cfg.DisplayOn = true
	return d
}

// DisableDisplay stages the display off. DDRAM content is kept.
func (d *Dev) DisableDisplay() *Dev {
	d.cfg.DisplayOn = false
	return d
}

// EnableCursor stages the underline cursor on.
func (d *Dev) EnableCursor() *Dev {
	d.cfg.CursorOn = true
	return d
}

func (d *Dev) DisableCursor() *Dev {
	d.cfg.CursorOn = false
	return d
}

// EnableBlink stages the blinking block cursor on.
func (d *Dev) EnableBlink() *Dev {
	d.cfg.BlinkOn = true
	return d
}

func (d *Dev) DisableBlink() *Dev {
	d.cfg.BlinkOn = false
	return d
}

// EnableAutoScroll stages shifting the display on every character written.
func (d *Dev) EnableAutoScroll() *Dev {
	d.cfg.AutoScroll = true
	return d
}

func (d *Dev) DisableAutoScroll() *Dev {
	d.cfg.AutoScroll = false
	return d
}

// LeftToRight stages incrementing the address after each character.
func (d *Dev) LeftToRight() *Dev {
	d.cfg.LeftToRight = true
	return d
}

// RightToLeft stages decrementing the address after each character.
func (d *Dev) RightToLeft() *Dev {
	d.cfg.LeftToRight = false
	return d
}

// SelectDisplay directs the following writes to the controller on enable
// line n, 0 to 5. Other values are ignored. Backpacks and the AIP31068 drive
// a single controller, which receives the writes whatever n is.
func (d *Dev) SelectDisplay(n int) {
	if n < 0 || n >= maxPanels {
		return
	}
	d.f.enable = 1 << n
}

// Echo directs the following writes to every controller.
func (d *Dev) Echo() {
	d.f.enable = Echo
}

// Layout returns the module geometry.
func (d *Dev) Layout() Layout {
	return d.layout.clone()
}

// Width returns the data bus width.
func (d *Dev) Width() BusWidth {
	return d.f.width
}

// AutoScroll enables or disables shifting the display on every character.
func (d *Dev) AutoScroll(enabled bool) error {
	d.cfg.AutoScroll = enabled
	return d.UpdateConfig()
}

// Clear clears the screen and moves the cursor to the first position.
func (d *Dev) Clear() error {
	return d.Put(Clear)
}

// Home moves the cursor to the first position and undoes any display shift.
func (d *Dev) Home() error {
	return d.Put(ReturnHome)
}

// Cols returns the number of columns the display supports.
func (d *Dev) Cols() int {
	return d.layout.Columns
}

// Rows returns the number of rows the display supports.
func (d *Dev) Rows() int {
	return d.layout.Lines()
}

// MinCol returns the min column position.
func (d *Dev) MinCol() int {
	return 1
}

// MinRow returns the min row position.
func (d *Dev) MinRow() int {
	return 1
}

// Cursor sets the cursor mode. You can pass multiple arguments.
// Cursor(CursorOff, CursorUnderline)
//
// The controller draws an underline and a blinking block independently;
// CursorBlink and CursorBlock both select the blinking block.
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			d.cfg.CursorOn = false
			d.cfg.BlinkOn = false
		case display.CursorUnderline:
			d.cfg.CursorOn = true
		case display.CursorBlink, display.CursorBlock:
			d.cfg.BlinkOn = true
		default:
			return fmt.Errorf("%s: unexpected cursor: %d", packageName, mode)
		}
	}
	return d.UpdateConfig()
}

// Display turns the display on or off.
func (d *Dev) Display(on bool) error {
	d.cfg.DisplayOn = on
	return d.UpdateConfig()
}

// Move moves the cursor forward or backward. Up and Down are not supported
// by the controller.
func (d *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Backward:
		return d.Put(ShiftCursorLeft)
	case display.Forward:
		return d.Put(ShiftCursorRight)
	}
	return ErrNotImplemented
}

// MoveTo moves the cursor to a one based row and column.
func (d *Dev) MoveTo(row, col int) error {
	if row < d.MinRow() || row > d.Rows() || col < d.MinCol() || col > d.Cols() {
		return fmt.Errorf("%s: MoveTo(%d,%d) value out of range", packageName, row, col)
	}
	return d.SetCursor(row-1, col-1)
}

// Write sends p to the data register unmodified.
func (d *Dev) Write(p []byte) (n int, err error) {
	for _, b := range p {
		if err = d.f.sendByte(b, DataRegister); err != nil {
			return n, wrap(err)
		}
		n++
	}
	return n, nil
}

// WriteString writes text encoded for the character ROM, see Encode.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write(Encode(text))
}

// Backlight turns the backlight on or off. It returns ErrNotImplemented if
// neither the options nor the transport provide a backlight.
func (d *Dev) Backlight(intensity display.Intensity) error {
	if d.bl == nil {
		return ErrNotImplemented
	}
	return wrap(d.bl.Backlight(intensity))
}

// Halt clears the display, turns it off and turns the backlight off. The
// transport is not halted; it belongs to the caller.
func (d *Dev) Halt() error {
	err := d.Clear()
	if e := d.Display(false); err == nil {
		err = e
	}
	if e := d.Backlight(0); err == nil && !errors.Is(e, display.ErrNotImplemented) {
		err = e
	}
	return err
}

func (d *Dev) String() string {
	s := "hd44780"
	if st, ok := d.t.(fmt.Stringer); ok {
		s += "::" + st.String()
	}
	return fmt.Sprintf("%s - %s %s", s, d.layout, d.f.width)
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ conn.Resource = &Dev{}
