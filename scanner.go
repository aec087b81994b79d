// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtoken

import (
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// A Handler receives events from Scan as each element of the input is
// completed. If a method reports an error, scanning stops and that error is
// returned to the caller of Scan.
//
// Spans passed to Name and String include the enclosing quotation marks.
// The escaped flag reports whether the text between the quotes contains any
// backslash escapes.
type Handler interface {
	// Begin a new object, whose open brace is at pos.
	BeginObject(pos int) error

	// End the most-recently-opened object, whose close brace is at pos.
	EndObject(pos int) error

	// Begin a new array, whose open bracket is at pos.
	BeginArray(pos int) error

	// End the most-recently-opened array, whose close bracket is at pos.
	EndArray(pos int) error

	// Report the name of an object member. The value follows.
	Name(span Span, escaped bool) error

	// Report a constant (Null, True, or False) beginning at pos.
	Literal(tag Tag, pos int) error

	// Report a number spanning span.
	Number(span Span) error

	// Report a string value spanning span.
	String(span Span, escaped bool) error
}

// state is the state of the scanner automaton.
type state byte

const (
	stValue           state = iota // expecting any value
	stValueOrArrayEnd              // expecting a value or "]"
	stKey                          // expecting a member name
	stKeyOrObjectEnd               // expecting a member name or "}"
	stColon                        // expecting ":" after a member name
	stObjectComma                  // expecting "," or "}"
	stListComma                    // expecting "," or "]"
	stEndOfJSON                    // a complete value was read; only space may follow

	stLitN // literal prefixes; see literalStep
	stLitNu
	stLitNul
	stLitT
	stLitTr
	stLitTru
	stLitF
	stLitFa
	stLitFal
	stLitFals

	stString // inside a string body
	stEscape // after a backslash
	stHex1   // after \u
	stHex2   // after \uX
	stHex3   // after \uXX
	stHex4   // after \uXXX

	stNumAfterSign         // after "-"
	stNumAfterZero         // after a leading "0"
	stNumAfterDigit        // in the integer part after a nonzero digit
	stNumAfterDecimal      // after "."
	stNumAfterDecimalDigit // in the fraction
	stNumAfterExp          // after "e" or "E"
	stNumAfterExpSign      // after the exponent sign
	stNumAfterExpDigit     // in the exponent
	stNumEnd               // the number ended before the current byte
)

func (s state) isNumber() bool { return s >= stNumAfterSign && s < stNumEnd }

func (s state) isLiteral() bool { return s >= stLitN && s <= stLitFals }

// literalStep describes the transition out of each literal prefix state.
// A next state of stEndOfJSON marks the final letter of the literal.
var literalStep = [...]struct {
	want  byte
	label string
	next  state
	tag   Tag
}{
	stLitN - stLitN:    {'u', "n|ull", stLitNu, Null},
	stLitNu - stLitN:   {'l', "nu|ll", stLitNul, Null},
	stLitNul - stLitN:  {'l', "nul|l", stEndOfJSON, Null},
	stLitT - stLitN:    {'r', "t|rue", stLitTr, True},
	stLitTr - stLitN:   {'u', "tr|ue", stLitTru, True},
	stLitTru - stLitN:  {'e', "tru|e", stEndOfJSON, True},
	stLitF - stLitN:    {'a', "f|alse", stLitFa, False},
	stLitFa - stLitN:   {'l', "fa|lse", stLitFal, False},
	stLitFal - stLitN:  {'s', "fal|se", stLitFals, False},
	stLitFals - stLitN: {'e', "fals|e", stEndOfJSON, False},
}

// Scan runs the JSON grammar over src and delivers events to h. It returns
// nil if src consists of exactly one JSON value surrounded by optional
// whitespace. In case of a syntax error, the error has concrete type
// [*SyntaxError]; an error reported by h is returned unmodified.
//
// The caller must not modify the contents of src while Scan is running.
func Scan(src mem.RO, h Handler) error {
	m := &machine{src: src, h: h}
	return m.run()
}

// A machine holds the state of a single scan.
type machine struct {
	src mem.RO
	h   Handler

	state   state
	depth   int      // number of open containers
	kinds   depthSet // kinds.get(d) reports whether depth d is an object
	begin   int      // start offset of the current string, number, or literal
	escaped bool     // the current string contains escapes
	isKey   bool     // the current string is a member name
}

func (m *machine) run() error {
	n := m.src.Len()
	for i := 0; i <= n; i++ {
		// At the end of input, c == 0 serves as a sentinel. No state accepts
		// a zero byte except stEndOfJSON, which accepts only the end.
		var c byte
		if i < n {
			c = m.src.At(i)
			if c == 0 {
				return m.fail(i, "non-NUL character")
			}
		}

		if m.state.isNumber() {
			next, label := numberStep(m.state, c)
			if label != "" {
				return m.fail(i, label)
			} else if next != stNumEnd {
				m.state = next
				continue
			}
			if err := m.h.Number(Span{Pos: m.begin, End: i}); err != nil {
				return err
			}
			m.afterValue()
			// The byte that ended the number belongs to the outer grammar.
		}
		if err := m.step(i, c); err != nil {
			return err
		}
	}
	if m.state != stEndOfJSON {
		// Every incomplete state rejects the end sentinel, so this is a bug.
		panic(fmt.Sprintf("scan ended in state %d", m.state))
	}
	return nil
}

// step advances the machine by one input byte c at offset i.
func (m *machine) step(i int, c byte) error {
	if m.state.isLiteral() {
		ls := literalStep[m.state-stLitN]
		if c != ls.want {
			return m.fail(i, ls.label)
		} else if ls.next != stEndOfJSON {
			m.state = ls.next
			return nil
		}
		if err := m.h.Literal(ls.tag, m.begin); err != nil {
			return err
		}
		m.afterValue()
		return nil
	}

	switch m.state {
	case stValue, stValueOrArrayEnd:
		switch {
		case isSpace(c):
			return nil
		case c == 'n':
			m.begin, m.state = i, stLitN
		case c == 't':
			m.begin, m.state = i, stLitT
		case c == 'f':
			m.begin, m.state = i, stLitF
		case c == '"':
			m.beginString(i, false)
		case c == '-':
			m.begin, m.state = i, stNumAfterSign
		case c == '0':
			m.begin, m.state = i, stNumAfterZero
		case '1' <= c && c <= '9':
			m.begin, m.state = i, stNumAfterDigit
		case c == '{':
			return m.open(i, true)
		case c == '[':
			return m.open(i, false)
		case c == ']' && m.state == stValueOrArrayEnd:
			return m.close(i, false)
		default:
			return m.fail(i, "JSON value")
		}

	case stKey, stKeyOrObjectEnd:
		switch {
		case isSpace(c):
			return nil
		case c == '"':
			m.beginString(i, true)
		case c == '}' && m.state == stKeyOrObjectEnd:
			return m.close(i, true)
		default:
			return m.fail(i, "field name")
		}

	case stColon:
		switch {
		case isSpace(c):
			return nil
		case c == ':':
			m.state = stValue
		default:
			return m.fail(i, ":")
		}

	case stObjectComma:
		switch {
		case isSpace(c):
			return nil
		case c == ',':
			m.state = stKey
		case c == '}':
			return m.close(i, true)
		default:
			return m.fail(i, ", or end of object")
		}

	case stListComma:
		switch {
		case isSpace(c):
			return nil
		case c == ',':
			m.state = stValue
		case c == ']':
			return m.close(i, false)
		default:
			return m.fail(i, ", or end of array")
		}

	case stEndOfJSON:
		if c != 0 && !isSpace(c) {
			return m.fail(i, "end of JSON")
		}

	case stString:
		switch {
		case c == '"':
			return m.endString(i)
		case c == '\\':
			m.escaped = true
			m.state = stEscape
		case c < ' ':
			return m.fail(i, "string char")
		}

	case stEscape:
		switch c {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			m.state = stString
		case 'u':
			m.state = stHex1
		default:
			return m.fail(i, "valid JSON escape")
		}

	case stHex1, stHex2, stHex3, stHex4:
		if !isHexDigit(c) {
			return m.fail(i, "hex digit")
		} else if m.state == stHex4 {
			m.state = stString
		} else {
			m.state++
		}

	default:
		panic(fmt.Sprintf("unexpected scanner state %d", m.state))
	}
	return nil
}

// numberStep computes the successor of number state s on input c.  If c is
// not valid at this point it returns a non-empty label for what was wanted.
// A result of stNumEnd means c is not part of the number.
func numberStep(s state, c byte) (state, string) {
	switch s {
	case stNumAfterSign:
		switch {
		case c == '0':
			return stNumAfterZero, ""
		case '1' <= c && c <= '9':
			return stNumAfterDigit, ""
		}
		return s, "digit"
	case stNumAfterZero:
		switch c {
		case '.':
			return stNumAfterDecimal, ""
		case 'e', 'E':
			return stNumAfterExp, ""
		}
	case stNumAfterDigit:
		switch {
		case isDigit(c):
			return stNumAfterDigit, ""
		case c == '.':
			return stNumAfterDecimal, ""
		case c == 'e' || c == 'E':
			return stNumAfterExp, ""
		}
	case stNumAfterDecimal:
		if isDigit(c) {
			return stNumAfterDecimalDigit, ""
		}
		return s, "decimal digit"
	case stNumAfterDecimalDigit:
		switch {
		case isDigit(c):
			return stNumAfterDecimalDigit, ""
		case c == 'e' || c == 'E':
			return stNumAfterExp, ""
		}
	case stNumAfterExp:
		switch {
		case c == '+' || c == '-':
			return stNumAfterExpSign, ""
		case isDigit(c):
			return stNumAfterExpDigit, ""
		}
		return s, "exponent"
	case stNumAfterExpSign:
		if isDigit(c) {
			return stNumAfterExpDigit, ""
		}
		return s, "exponent digit"
	case stNumAfterExpDigit:
		if isDigit(c) {
			return stNumAfterExpDigit, ""
		}
	default:
		panic(fmt.Sprintf("state %d is not a number state", s))
	}
	return stNumEnd, ""
}

func (m *machine) beginString(i int, isKey bool) {
	m.begin = i
	m.escaped = false
	m.isKey = isKey
	m.state = stString
}

func (m *machine) endString(i int) error {
	span := Span{Pos: m.begin, End: i + 1}
	if m.isKey {
		m.state = stColon
		return m.h.Name(span, m.escaped)
	}
	if err := m.h.String(span, m.escaped); err != nil {
		return err
	}
	m.afterValue()
	return nil
}

func (m *machine) open(i int, isObject bool) error {
	if isObject {
		m.kinds.set(m.depth)
		m.state = stKeyOrObjectEnd
	} else {
		m.kinds.clear(m.depth)
		m.state = stValueOrArrayEnd
	}
	m.depth++
	if isObject {
		return m.h.BeginObject(i)
	}
	return m.h.BeginArray(i)
}

func (m *machine) close(i int, isObject bool) error {
	m.depth--
	var err error
	if isObject {
		err = m.h.EndObject(i)
	} else {
		err = m.h.EndArray(i)
	}
	if err != nil {
		return err
	}
	m.afterValue()
	return nil
}

// afterValue sets the state following a complete value, based on the kind
// of the enclosing container (if any).
func (m *machine) afterValue() {
	switch {
	case m.depth == 0:
		m.state = stEndOfJSON
	case m.kinds.get(m.depth - 1):
		m.state = stObjectComma
	default:
		m.state = stListComma
	}
}

func (m *machine) fail(i int, expected string) error {
	e := &SyntaxError{
		Offset:   i,
		Location: Locate(m.src, i),
		Expected: expected,
	}
	if i >= m.src.Len() {
		e.AtEOF = true
	} else if c := m.src.At(i); c < utf8.RuneSelf {
		e.Got = rune(c)
	} else {
		e.Got, _ = mem.DecodeRune(m.src.SliceFrom(i))
	}
	return e
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
