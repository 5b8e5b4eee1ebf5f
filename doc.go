// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package liquidcrystal is a container for HD44780 character LCD packages.
//
// The driver itself lives in package hd44780. Package lcdemu is a software
// display that decodes the wire protocol, useful for tests and for
// developing without hardware.
package liquidcrystal
