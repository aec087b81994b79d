// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"hash/maphash"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/creachadair/jtoken"
	"github.com/creachadair/jtoken/internal/escape"
	"go4.org/mem"
)

// A Number is a numeric value. A number produced by the parser retains its
// source text verbatim, and its numeric value is computed when first needed.
type Number struct {
	defaults

	text    mem.RO // verbatim source text, if parsed
	hasText bool

	valOnce sync.Once
	isInt   bool
	ival    int64
	fval    float64

	textOnce sync.Once
	str      string // cached text
}

// Int constructs a number with the given integer value.
func Int(z int64) *Number { return &Number{isInt: true, ival: z, fval: float64(z)} }

// Float constructs a number with the given floating-point value.
func Float(f float64) *Number { return &Number{fval: f} }

func parsedNumber(text mem.RO) *Number { return &Number{text: text, hasText: true} }

func (n *Number) value() {
	if !n.hasText {
		return // synthesized numbers are complete at construction
	}
	n.valOnce.Do(func() {
		s := n.text.StringCopy()
		if !strings.ContainsAny(s, ".eE") {
			if z, err := strconv.ParseInt(s, 10, 64); err == nil {
				n.isInt, n.ival, n.fval = true, z, float64(z)
				return
			}
		}
		n.fval, _ = strconv.ParseFloat(s, 64) // out of range is ±Inf
	})
}

// IsInt reports whether n has an integer value that fits in an int64. For a
// parsed number this requires that its text have no fraction or exponent.
func (n *Number) IsInt() bool { n.value(); return n.isInt }

// Text returns the text of n. For a parsed number this is the source text.
// A synthesized value that is not finite has the text "null".
func (n *Number) Text() string {
	n.textOnce.Do(func() {
		switch {
		case n.hasText:
			n.str = n.text.StringCopy()
		case n.isInt:
			n.str = strconv.FormatInt(n.ival, 10)
		case math.IsInf(n.fval, 0), math.IsNaN(n.fval):
			n.str = "null"
		default:
			n.str = strconv.FormatFloat(n.fval, 'g', -1, 64)
		}
	})
	return n.str
}

func (*Number) Kind() Kind       { return NumberKind }
func (n *Number) JSON() string   { return n.Text() }
func (n *Number) String() string { return "Number(" + n.Text() + ")" }

// IntValue returns the value of n as an integer, truncating a fraction.
func (n *Number) IntValue() (int64, error) { return n.AsInt(), nil }

// FloatValue returns the value of n as a float64.
func (n *Number) FloatValue() (float64, error) { n.value(); return n.fval, nil }

// StringValue returns the text of n.
func (n *Number) StringValue() (string, error) { return n.Text(), nil }

// AsBool reports whether n is nonzero. For a parsed number, this is true if
// any digit of the mantissa is nonzero.
func (n *Number) AsBool() bool {
	if n.hasText {
		for i := 0; i < n.text.Len(); i++ {
			switch c := n.text.At(i); {
			case c >= '1' && c <= '9':
				return true
			case c == 'e' || c == 'E':
				return false
			}
		}
		return false
	}
	return n.fval != 0
}

// AsInt returns the value of n truncated toward zero, saturating at the
// bounds of int64.
func (n *Number) AsInt() int64 {
	n.value()
	switch {
	case n.isInt:
		return n.ival
	case math.IsNaN(n.fval):
		return 0
	case n.fval >= math.MaxInt64:
		return math.MaxInt64
	case n.fval <= math.MinInt64:
		return math.MinInt64
	}
	return int64(n.fval)
}

func (n *Number) AsFloat() float64 { n.value(); return n.fval }
func (n *Number) AsString() string { return n.Text() }

// Equal reports whether v is a number with the same value as n. Two integers
// are compared exactly; otherwise the values are compared as float64.
func (n *Number) Equal(v Value) bool {
	o, ok := v.(*Number)
	if !ok {
		return false
	}
	n.value()
	o.value()
	if n.isInt && o.isInt {
		return n.ival == o.ival
	}
	return n.fval == o.fval
}

func (n *Number) Hash() uint64 {
	n.value()
	return hashKind(NumberKind, maphash.Comparable(seed, n.fval))
}

func (n *Number) appendJSON(buf []byte, _ bool) []byte { return append(buf, n.Text()...) }

// A String is a string value. A string produced by the parser retains the
// escaped source text between its quotation marks, and its decoded text is
// computed when first needed.
type String struct {
	defaults

	raw     mem.RO // escaped source text, if parsed
	parsed  bool
	escaped bool // raw contains escapes

	once sync.Once
	dec  string
}

// Str constructs a string value with the given text.
func Str(s string) *String { return &String{dec: s} }

func parsedString(raw mem.RO, escaped bool) *String {
	return &String{raw: raw, parsed: true, escaped: escaped}
}

// Text returns a view of the decoded text of s. If s was parsed from source
// with no escapes, the view refers to the source without copying.
func (s *String) Text() mem.RO {
	if s.parsed && !s.escaped {
		return s.raw
	}
	return mem.S(s.Value())
}

// Value returns the decoded text of s.
func (s *String) Value() string {
	if !s.parsed {
		return s.dec
	}
	s.once.Do(func() {
		var err error
		s.dec, err = escape.UnquoteString(s.raw)
		if err != nil {
			panic(fmt.Sprintf("ast: invalid string: %v", err)) // the scanner validates escapes
		}
	})
	return s.dec
}

func (*String) Kind() Kind       { return StringKind }
func (s *String) JSON() string   { return jsonString(s) }
func (s *String) String() string { return fmt.Sprintf("String(%q)", s.Value()) }

func (s *String) StringValue() (string, error) { return s.Value(), nil }

// AsBool reports whether s is "true", ignoring case.
func (s *String) AsBool() bool { return strings.EqualFold(s.Value(), "true") }

// AsInt returns the value of s as a decimal integer, ignoring surrounding
// whitespace, or 0 if it is not an integer.
func (s *String) AsInt() int64 {
	z, err := strconv.ParseInt(strings.TrimSpace(s.Value()), 10, 64)
	if err != nil {
		return 0
	}
	return z
}

// AsFloat returns the value of s as a floating-point number, ignoring
// surrounding whitespace, or 0 if it is not a number.
func (s *String) AsFloat() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s.Value()), 64)
	if err != nil {
		return 0
	}
	return f
}

func (s *String) AsString() string { return s.Value() }

func (s *String) Equal(v Value) bool {
	o, ok := v.(*String)
	return ok && s.Value() == o.Value()
}

func (s *String) Hash() uint64 { return hashKind(StringKind, maphash.String(seed, s.Value())) }

func (s *String) appendJSON(buf []byte, strict bool) []byte {
	if s.parsed && !strict {
		buf = append(buf, '"')
		buf = mem.Append(buf, s.raw)
		return append(buf, '"')
	}
	return appendQuoted(buf, s.Value(), strict)
}

func appendQuoted(buf []byte, s string, strict bool) []byte {
	return jtoken.AppendQuote(buf, s, strict)
}
