// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"math/rand/v2"
	"strings"
)

// Whitespace is the set of insignificant whitespace characters in JSON.
const Whitespace = " \t\n\r"

// A Gen generates random JSON source text. The output of a Gen is determined
// by its seed.
type Gen struct{ r *rand.Rand }

// NewGen constructs a generator with the given seed.
func NewGen(seed uint64) *Gen { return &Gen{r: rand.New(rand.NewPCG(seed, 0))} }

// String returns a quoted JSON string. If simple is true, the string has at
// most four ASCII characters and no escapes; otherwise it has up to 50
// units, mixing escapes, \u escapes, BMP characters, and emoji.
func (g *Gen) String(simple bool) string {
	var sb strings.Builder
	sb.WriteByte('"')
	if simple {
		for range g.r.IntN(5) {
			c := byte(' ' + g.r.IntN(0x7f-' '))
			if c == '\\' || c == '"' {
				c = '\''
			}
			sb.WriteByte(c)
		}
	} else {
		for range g.r.IntN(50) {
			switch g.r.IntN(4) {
			case 0:
				sb.WriteString([]string{`\b`, `\f`, `\n`, `\r`, `\t`}[g.r.IntN(5)])
			case 1:
				sb.WriteString(`\u`)
				for range 4 {
					sb.WriteByte("0123456789abcdef"[g.r.IntN(16)])
				}
			case 2:
				r := rune(' ' + g.r.IntN(0x2e80-' '))
				if r == '\\' || r == '"' {
					r = '\''
				}
				sb.WriteRune(r)
			case 3:
				sb.WriteRune(rune(0x1f600 + g.r.IntN(0x50)))
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Number returns the text of a JSON number. If simple is true, its parts
// have few digits.
func (g *Gen) Number(simple bool) string {
	n := 20
	if simple {
		n = 3
	}
	var sb strings.Builder
	digits := func(k int) {
		for range k {
			sb.WriteByte(byte('0' + g.r.IntN(10)))
		}
	}
	if g.r.IntN(2) == 0 {
		sb.WriteByte('-')
	}
	if g.r.IntN(2) == 0 {
		sb.WriteByte('0')
	} else {
		sb.WriteByte(byte('1' + g.r.IntN(9)))
		digits(g.r.IntN(n))
	}
	if g.r.IntN(2) == 0 {
		sb.WriteByte('.')
		digits(1 + g.r.IntN(n))
	}
	if g.r.IntN(2) == 0 {
		sb.WriteByte("eE"[g.r.IntN(2)])
		switch g.r.IntN(3) {
		case 0:
			sb.WriteByte('+')
		case 1:
			sb.WriteByte('-')
		}
		digits(1 + g.r.IntN(n))
	}
	return sb.String()
}

// Value returns the text of a JSON value nested at most nesting levels
// deep. Between tokens it inserts up to maxSpace whitespace characters; if
// maxSpace == 0 the output is compact.
func (g *Gen) Value(nesting, maxSpace int) string {
	var sb strings.Builder
	g.value(&sb, nesting, maxSpace)
	return sb.String()
}

func (g *Gen) value(sb *strings.Builder, nesting, maxSpace int) {
	space := func() {
		if maxSpace > 0 {
			for range g.r.IntN(maxSpace + 1) {
				sb.WriteByte(Whitespace[g.r.IntN(len(Whitespace))])
			}
		}
	}

	space()
	switch g.r.IntN(5) {
	case 0:
		sb.WriteString([]string{"null", "true", "false"}[g.r.IntN(3)])
	case 1:
		sb.WriteString(g.String(true))
	case 2:
		sb.WriteString(g.Number(true))
	case 3:
		sb.WriteByte('[')
		space()
		if nesting > 0 {
			for i := range 1 + g.r.IntN(10) {
				if i > 0 {
					sb.WriteByte(',')
				}
				g.value(sb, nesting-1, maxSpace)
			}
		}
		sb.WriteByte(']')
	default:
		sb.WriteByte('{')
		space()
		if nesting > 0 {
			for i := range 1 + g.r.IntN(10) {
				if i > 0 {
					sb.WriteByte(',')
					space()
				}
				sb.WriteString(g.String(true))
				space()
				sb.WriteByte(':')
				g.value(sb, nesting-1, maxSpace)
			}
		}
		sb.WriteByte('}')
	}
	space()
}

// StripSpace returns s with all JSON whitespace characters removed.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(Whitespace, r) {
			return -1
		}
		return r
	}, s)
}
