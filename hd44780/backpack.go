// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

// Default I²C addresses of the common backpacks. PCF8574A based boards
// answer at 0x3f.
const (
	DefaultPCF8574Address  uint16 = 0x27
	DefaultMCP23008Address uint16 = 0x20
)

// PinMap gives the expander output bit wired to each LCD line of a backpack.
type PinMap struct {
	RS        uint8
	E         uint8
	Backlight uint8
	// D holds D4, D5, D6 and D7.
	D [4]uint8
}

// Expander pin maps of the usual backpacks.
var (
	// PCF8574Map is the ubiquitous "LCM1602 IIC" board: P0 RS, P1 R/W,
	// P2 E, P3 backlight, P4-P7 D4-D7.
	PCF8574Map = PinMap{RS: 0, E: 2, Backlight: 3, D: [4]uint8{4, 5, 6, 7}}
	// MCP23008Map is the I²C side of the Adafruit I2C/SPI backpack.
	MCP23008Map = PinMap{RS: 1, E: 2, Backlight: 7, D: [4]uint8{3, 4, 5, 6}}
	// AdafruitSPIMap is the SPI side of the same board, a 74HC595 wired with
	// the data lines in reverse order.
	AdafruitSPIMap = PinMap{RS: 1, E: 2, Backlight: 7, D: [4]uint8{6, 5, 4, 3}}
)

// pack builds the expander output byte. A backpack wires a single enable
// line, raised whichever enable is selected.
func (m PinMap) pack(c Control, data byte, backlight bool) byte {
	var v byte
	if c&RS != 0 {
		v |= 1 << m.RS
	}
	if c.Enable() != 0 {
		v |= 1 << m.E
	}
	if backlight {
		v |= 1 << m.Backlight
	}
	for ix, bit := range m.D {
		if data&(0x10<<ix) != 0 {
			v |= 1 << bit
		}
	}
	return v
}

// Backpack is a Transport writing to an 8 bit output expander wired in 4-bit
// mode. Each Send is one bus write of the expander output register.
//
// Backpack implements display.DisplayBacklight; the backlight bit is part of
// every write and starts on.
type Backpack struct {
	name string
	m    PinMap
	c    conn.Conn
	reg  []byte

	mu        sync.Mutex
	backlight bool
	primed    bool
	value     byte
	last      Control
	data      byte
}

// NewBackpack returns a Backpack writing one byte per Send to c. reg is sent
// before the byte, for expanders addressed by register; it may be nil.
func NewBackpack(name string, c conn.Conn, m PinMap, reg ...byte) *Backpack {
	return &Backpack{name: name, c: c, m: m, reg: reg, backlight: true}
}

// NewPCF8574 returns the transport of a PCF8574 backpack. The chip has no
// registers: a one byte write sets the outputs.
func NewPCF8574(bus i2c.Bus, address uint16) *Backpack {
	return NewBackpack(fmt.Sprintf("PCF8574_%x", address), &i2c.Dev{Bus: bus, Addr: address}, PCF8574Map)
}

// NewMCP23008 returns the transport of an Adafruit I²C backpack. All pins are
// made outputs, then writes go to the output latch register.
func NewMCP23008(bus i2c.Bus, address uint16) (*Backpack, error) {
	const (
		iodir = 0x00
		olat  = 0x0a
	)
	d := &i2c.Dev{Bus: bus, Addr: address}
	if err := d.Tx([]byte{iodir, 0x00}, nil); err != nil {
		return nil, wrap(err)
	}
	return NewBackpack(fmt.Sprintf("MCP23008_%x", address), d, MCP23008Map, olat), nil
}

// NewShiftRegister returns the transport of an Adafruit SPI backpack: a
// 74HC595 shift register latched on chip select.
func NewShiftRegister(c spi.Conn) *Backpack {
	return NewBackpack("74HC595", c, AdafruitSPIMap)
}

// Send writes the expander byte for c and data, skipping the write when the
// outputs would not change.
func (b *Backpack) Send(c Control, data byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last, b.data = c, data
	return b.write(b.m.pack(c, data, b.backlight))
}

func (b *Backpack) write(v byte) error {
	if b.primed && v == b.value {
		return nil
	}
	w := make([]byte, 0, len(b.reg)+1)
	w = append(append(w, b.reg...), v)
	if err := b.c.Tx(w, nil); err != nil {
		return err
	}
	b.primed = true
	b.value = v
	return nil
}

// Backlight turns the backlight off for 0, on otherwise. The other lines keep
// their last state.
func (b *Backpack) Backlight(intensity display.Intensity) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.backlight = intensity != 0
	return b.write(b.m.pack(b.last&^(E|RW), b.data, b.backlight))
}

// Width returns FourBit: backpacks wire only D4..D7.
func (b *Backpack) Width() BusWidth {
	return FourBit
}

func (b *Backpack) String() string {
	return b.name
}

func newBackpackDev(t *Backpack, layout Layout) (*Dev, error) {
	dev, err := New(t, &Opts{Width: FourBit, Layout: layout})
	if err != nil {
		return nil, err
	}
	return dev, dev.Begin()
}

// NewPCF8574Backpack returns an initialized display behind a PCF8574 I²C
// backpack.
//
// # Product Information
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
func NewPCF8574Backpack(bus i2c.Bus, address uint16, layout Layout) (*Dev, error) {
	return newBackpackDev(NewPCF8574(bus, address), layout)
}

// NewAdafruitI2CBackpack returns an initialized display behind the I²C side of
// the Adafruit I2C/SPI LCD Backpack.
//
// # Product Information
//
// https://www.adafruit.com/product/292
func NewAdafruitI2CBackpack(bus i2c.Bus, address uint16, layout Layout) (*Dev, error) {
	t, err := NewMCP23008(bus, address)
	if err != nil {
		return nil, err
	}
	return newBackpackDev(t, layout)
}

// NewAdafruitSPIBackpack returns an initialized display behind the SPI side
// of the Adafruit I2C/SPI LCD Backpack.
func NewAdafruitSPIBackpack(c spi.Conn, layout Layout) (*Dev, error) {
	return newBackpackDev(NewShiftRegister(c), layout)
}

var _ Transport = &Backpack{}
var _ display.DisplayBacklight = &Backpack{}
