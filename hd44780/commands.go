// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "fmt"

// Instruction opcodes and their flag bits, as listed in table 6 of the
// datasheet.
const (
	cmdClear          byte = 0x01
	cmdReturnHome     byte = 0x02
	cmdEntryModeSet   byte = 0x04
	cmdDisplayControl byte = 0x08
	cmdCursorShift    byte = 0x10
	cmdFunctionSet    byte = 0x20
	cmdSetCGRAMAddr   byte = 0x40
	cmdSetDDRAMAddr   byte = 0x80

	// Entry mode set
	entryIncrement byte = 0x02
	entryShift     byte = 0x01

	// Display on/off control
	ctlDisplayOn byte = 0x04
	ctlCursorOn  byte = 0x02
	ctlBlinkOn   byte = 0x01

	// Cursor or display shift
	shiftDisplay byte = 0x08
	shiftRight   byte = 0x04

	// Function set
	fnEightBit byte = 0x10
	fnTwoLines byte = 0x08
	fnFont5x10 byte = 0x04
)

// Command is a controller instruction byte sent with RS low.
type Command byte

// Commands accepted by Dev.Put.
const (
	Clear             Command = Command(cmdClear)
	ReturnHome        Command = Command(cmdReturnHome)
	ShiftCursorLeft   Command = Command(cmdCursorShift)
	ShiftCursorRight  Command = Command(cmdCursorShift | shiftRight)
	ShiftDisplayLeft  Command = Command(cmdCursorShift | shiftDisplay)
	ShiftDisplayRight Command = Command(cmdCursorShift | shiftDisplay | shiftRight)
	MoveLine1         Command = Command(cmdSetDDRAMAddr)
	MoveLine2         Command = Command(cmdSetDDRAMAddr | 0x40)
)

// IsLong reports whether the command belongs to the Clear/Return Home class,
// which takes up to 1.52ms to execute instead of 37µs.
func (c Command) IsLong() bool {
	return c != 0 && c&0xfc == 0
}

func (c Command) String() string {
	switch c {
	case Clear:
		return "Clear"
	case ReturnHome:
		return "ReturnHome"
	case ShiftCursorLeft:
		return "ShiftCursorLeft"
	case ShiftCursorRight:
		return "ShiftCursorRight"
	case ShiftDisplayLeft:
		return "ShiftDisplayLeft"
	case ShiftDisplayRight:
		return "ShiftDisplayRight"
	}
	return fmt.Sprintf("Command(0x%02x)", byte(c))
}

func entryModeSet(increment, shift bool) byte {
	b := cmdEntryModeSet
	if increment {
		b |= entryIncrement
	}
	if shift {
		b |= entryShift
	}
	return b
}

func displayControl(on, cursor, blink bool) byte {
	b := cmdDisplayControl
	if on {
		b |= ctlDisplayOn
	}
	if cursor {
		b |= ctlCursorOn
	}
	if blink {
		b |= ctlBlinkOn
	}
	return b
}

func functionSet(width BusWidth, lines int, font Font) byte {
	b := cmdFunctionSet
	if width == EightBit {
		b |= fnEightBit
	}
	if lines > 1 {
		b |= fnTwoLines
	}
	if font == Font5x10 {
		b |= fnFont5x10
	}
	return b
}

func setCGRAMAddr(slot uint8) byte {
	return cmdSetCGRAMAddr | (slot&0x07)<<3
}
