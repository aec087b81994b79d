// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtoken

import "fmt"

// SyntaxError is the concrete type of errors reported for malformed input by
// Scan, Tokenize, and the tree parser.
type SyntaxError struct {
	Offset   int     // byte offset of the offending input, 0-based
	Location LineCol // line and column of Offset
	Expected string  // a description of what was expected at Offset
	Got      rune    // the offending character, if AtEOF is false
	AtEOF    bool    // the input ended before a value was complete
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s at offset %d, got %s", e.Expected, e.Offset, e.GotLabel())
}

// GotLabel returns a human-readable label for the offending input: EOF at the
// end of input, a hex code for a control character, or else the quoted
// character itself.
func (e *SyntaxError) GotLabel() string {
	switch {
	case e.AtEOF:
		return "EOF"
	case e.Got < ' ':
		return fmt.Sprintf("0x%x", e.Got)
	default:
		return fmt.Sprintf("%q", e.Got)
	}
}
