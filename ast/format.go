// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"
	"strings"
	"unicode/utf8"
)

// AppendJSON appends the compact JSON encoding of v to buf and returns the
// extended slice.
func AppendJSON(buf []byte, v Value) []byte { return v.appendJSON(buf, false) }

// FormatOptions control the encoding of values by Format.
type FormatOptions struct {
	// If true, emit the compact encoding with no whitespace. Otherwise, each
	// element or field is written on its own line, indented two spaces per
	// level of nesting, and field names in each object are padded on the
	// left so that they end in the same column.
	Compact bool

	// If true, quote every string and field name from its decoded text,
	// escaping any rune outside the Basic Multilingual Plane as a surrogate
	// pair. Otherwise parsed strings are written as they appeared in the
	// source.
	Strict bool
}

// Format writes the indented encoding of v to w.
func Format(w io.Writer, v Value) error { return FormatOptions{}.Format(w, v) }

// FormatToString returns the indented encoding of v.
func FormatToString(v Value) string { return string(FormatOptions{}.Append(nil, v)) }

// Format writes the encoding of v to w as specified by o.
func (o FormatOptions) Format(w io.Writer, v Value) error {
	_, err := w.Write(o.Append(nil, v))
	return err
}

// Append appends the encoding of v to buf as specified by o, and returns the
// extended slice.
func (o FormatOptions) Append(buf []byte, v Value) []byte {
	if o.Compact {
		return v.appendJSON(buf, o.Strict)
	}
	return o.appendIndented(buf, v, 0)
}

func (o FormatOptions) appendIndented(buf []byte, v Value, depth int) []byte {
	switch t := v.(type) {
	case *Array:
		if len(t.values) == 0 {
			return append(buf, "[]"...)
		}
		buf = append(buf, '[')
		for i, elt := range t.values {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = newline(buf, depth+1)
			buf = o.appendIndented(buf, elt, depth+1)
		}
		return append(newline(buf, depth), ']')

	case *Object:
		if len(t.fields) == 0 {
			return append(buf, "{}"...)
		}
		// Pad each name by the width of its text as written, which may be an
		// escaped spelling longer than the decoded name.
		names := make([][]byte, len(t.fields))
		var width int
		for i, f := range t.fields {
			names[i] = f.appendName(nil, o.Strict)
			width = max(width, utf8.RuneCount(names[i]))
		}
		buf = append(buf, '{')
		for i, f := range t.fields {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = newline(buf, depth+1)
			buf = append(buf, strings.Repeat(" ", width-utf8.RuneCount(names[i]))...)
			buf = append(buf, names[i]...)
			buf = append(buf, ": "...)
			buf = o.appendIndented(buf, f.Value, depth+1)
		}
		return append(newline(buf, depth), '}')

	default:
		return v.appendJSON(buf, o.Strict)
	}
}

func newline(buf []byte, depth int) []byte {
	buf = append(buf, '\n')
	for range depth {
		buf = append(buf, "  "...)
	}
	return buf
}
