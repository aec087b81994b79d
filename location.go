// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtoken

import (
	"fmt"

	"go4.org/mem"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the number of bytes covered by s.
func (s Span) Len() int { return s.End - s.Pos }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%d:%d-%d", loc.First.Line, loc.First.Column, loc.Last.Column)
	}
	return loc.First.String() + "-" + loc.Last.String()
}

// Locate reports the line and column of the given byte offset in src.
// Offsets past the end of src are clamped to the end.
func Locate(src mem.RO, offset int) LineCol {
	offset = min(max(offset, 0), src.Len())
	lc := LineCol{Line: 1}
	for i := 0; i < offset; i++ {
		if src.At(i) == '\n' {
			lc.Line++
			lc.Column = 0
		} else {
			lc.Column++
		}
	}
	return lc
}

func locate(src mem.RO, span Span) Location {
	return Location{Span: span, First: Locate(src, span.Pos), Last: Locate(src, span.End)}
}
