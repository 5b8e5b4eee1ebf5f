// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
)

const (
	glyphWidth  = 5
	glyphHeight = 8
)

// Glyph is a 5x8 user defined character. Each row uses its 5 low bits, bit 4
// being the leftmost pixel.
type Glyph [glyphHeight]byte

// ParseGlyph builds a Glyph from up to 8 rows of up to 5 characters. '#', 'X',
// 'x' and '1' are lit pixels, anything else is off.
//
//	heart, _ := hd44780.ParseGlyph(
//		".....",
//		".#.#.",
//		"#####",
//		"#####",
//		".###.",
//		"..#..",
//	)
func ParseGlyph(rows ...string) (Glyph, error) {
	var g Glyph
	if len(rows) > glyphHeight {
		return g, fmt.Errorf("%s: glyph has %d rows, max %d", packageName, len(rows), glyphHeight)
	}
	for y, row := range rows {
		if len(row) > glyphWidth {
			return g, fmt.Errorf("%s: glyph row %d has %d columns, max %d", packageName, y, len(row), glyphWidth)
		}
		for x := range len(row) {
			switch row[x] {
			case '#', 'X', 'x', '1':
				g[y] |= 1 << (glyphWidth - 1 - x)
			}
		}
	}
	return g, nil
}

// GlyphFromImage samples img down to 5x8 (nearest neighbor, so pixel art
// survives) and lights the pixels brighter than half intensity.
func GlyphFromImage(img image.Image) Glyph {
	gray := image.NewGray(image.Rect(0, 0, glyphWidth, glyphHeight))
	draw.NearestNeighbor.Scale(gray, gray.Bounds(), img, img.Bounds(), draw.Src, nil)
	var g Glyph
	for y := range glyphHeight {
		for x := range glyphWidth {
			if gray.GrayAt(x, y).Y >= 0x80 {
				g[y] |= 1 << (glyphWidth - 1 - x)
			}
		}
	}
	return g
}

// Image returns the glyph as a 5x8 image, lit pixels white.
func (g Glyph) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, glyphWidth, glyphHeight))
	for y, row := range g {
		for x := range glyphWidth {
			if row&(1<<(glyphWidth-1-x)) != 0 {
				img.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}
	return img
}

func (g Glyph) String() string {
	var sb strings.Builder
	for y, row := range g {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range glyphWidth {
			if row&(1<<(glyphWidth-1-x)) != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
