// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string to escape characters for inclusion in a JSON string.
// The result does not include the enclosing quotation marks.
func Quote(src mem.RO) []byte { return Append(make([]byte, 0, src.Len()), src, false) }

// QuoteStrict is like Quote, but also escapes each rune outside the Basic
// Multilingual Plane as a pair of UTF-16 surrogate escapes, so that the
// result contains no 4-byte UTF-8 sequences.
func QuoteStrict(src mem.RO) []byte { return Append(make([]byte, 0, src.Len()), src, true) }

// Append appends the escaped encoding of src to buf and returns the updated
// slice. If strict is true, runes above U+FFFF are written as surrogate pair
// escapes (see QuoteStrict).
func Append(buf []byte, src mem.RO, strict bool) []byte {
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					buf = append(buf, '\\', b)
				} else {
					buf = appendU4(buf, r)
				}
			} else if r == '\\' || r == '"' {
				buf = append(buf, '\\', byte(r))
			} else {
				buf = append(buf, byte(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		switch {
		case r == utf8.RuneError, r == '\u2028', r == '\u2029':
			// Replacement runes (including invalid UTF-8) and the JavaScript
			// line terminators are always escaped.
			buf = appendU4(buf, r)
		case strict && r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			buf = appendU4(appendU4(buf, r1), r2)
		default:
			buf = utf8.AppendRune(buf, r)
		}
		src = src.SliceFrom(n)
	}
	return buf
}

// appendU4 appends the \uXXXX escape for the 16-bit code unit r.
func appendU4(buf []byte, r rune) []byte {
	return append(buf, '\\', 'u',
		hexDigit[(r>>12)&15], hexDigit[(r>>8)&15], hexDigit[(r>>4)&15], hexDigit[r&15])
}
