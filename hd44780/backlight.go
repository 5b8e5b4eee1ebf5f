// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// GPIOMonoBacklight is a backlight switched by a single GPIO pin, typically
// through a transistor on the LED+ line.
type GPIOMonoBacklight struct {
	blPin gpio.PinOut
}

// NewBacklight returns a backlight driven by blPin.
func NewBacklight(blPin gpio.PinOut) *GPIOMonoBacklight {
	return &GPIOMonoBacklight{blPin: blPin}
}

// Backlight turns the backlight off for 0 and fully on for 255. Values in
// between dim it with PWM when the pin supports it, and turn it fully on
// otherwise.
func (bl *GPIOMonoBacklight) Backlight(intensity display.Intensity) error {
	switch {
	case intensity == 0:
		return bl.blPin.Out(gpio.Low)
	case intensity >= 0xff:
		return bl.blPin.Out(gpio.High)
	}
	duty := gpio.Duty(int64(intensity) * int64(gpio.DutyMax) / 0xff)
	if err := bl.blPin.PWM(duty, physic.KiloHertz); err != nil {
		return bl.blPin.Out(gpio.High)
	}
	return nil
}

func (bl *GPIOMonoBacklight) String() string {
	return "GPIOMonoBacklight(" + bl.blPin.String() + ")"
}

var _ display.DisplayBacklight = &GPIOMonoBacklight{}
