// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Unknown is written in place of characters missing from the ROM.
const Unknown byte = '?'

// romA00 holds the non ASCII characters of the A00 (Japanese) character
// generator ROM, the one found on nearly every module.
var romA00 = map[rune]byte{
	'¥': 0x5c,
	'→': 0x7e,
	'←': 0x7f,
	'。': 0xa1,
	'「': 0xa2,
	'」': 0xa3,
	'、': 0xa4,
	'・': 0xa5,
	'α': 0xe0,
	'ä': 0xe1,
	'β': 0xe2,
	'ε': 0xe3,
	'µ': 0xe4,
	'μ': 0xe4,
	'σ': 0xe5,
	'ρ': 0xe6,
	'√': 0xe8,
	'¢': 0xec,
	'ñ': 0xee,
	'ö': 0xef,
	'θ': 0xf2,
	'∞': 0xf3,
	'Ω': 0xf4,
	'ü': 0xf5,
	'Σ': 0xf6,
	'π': 0xf7,
	'÷': 0xfd,
	'█': 0xff,
	'°': 0xdf,
}

// fold returns a transformer dropping accents: "é" becomes "e".
// Transformers keep state, so each call gets its own.
func fold() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Encode converts text to character codes of the A00 ROM.
//
// Runes 0 to 7 are kept: they select the CGRAM characters. Printable ASCII is
// kept, except '\' and '~' which the ROM replaces with '¥' and '→'. Symbols
// present in the ROM are mapped, accented letters lose their accent, and
// anything else becomes Unknown. Dev.WriteString uses it; Text sends ASCII
// unchanged.
func Encode(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		out = append(out, encodeRune(r)...)
	}
	return out
}

func encodeRune(r rune) []byte {
	if b, ok := encodeOne(r); ok {
		return []byte{b}
	}
	folded, _, err := transform.String(fold(), string(r))
	if err != nil || folded == string(r) {
		return []byte{Unknown}
	}
	var out []byte
	for _, f := range folded {
		if b, ok := encodeOne(f); ok {
			out = append(out, b)
		} else {
			out = append(out, Unknown)
		}
	}
	if len(out) == 0 {
		return []byte{Unknown}
	}
	return out
}

func encodeOne(r rune) (byte, bool) {
	switch {
	case r < 8:
		return byte(r), true
	case r == '\\' || r == '~':
		return 0, false
	case r >= ' ' && r < 0x7f:
		return byte(r), true
	}
	b, ok := romA00[r]
	return b, ok
}
