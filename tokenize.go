// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtoken

import (
	"fmt"
	"math"

	"go4.org/mem"
)

// MaxInput is the length in bytes of the largest input Tokenize accepts.
const MaxInput = math.MaxInt32

// Tokenize constructs a token stream for the JSON value in text.
// It always returns a non-nil stream; use its Err method to check whether
// text was valid.
func Tokenize(text string) *Tokens { return TokenizeRO(mem.S(text)) }

// TokenizeBytes constructs a token stream for the JSON value in text.  The
// stream refers to text directly; the caller must not modify text while the
// stream is in use.
func TokenizeBytes(text []byte) *Tokens { return TokenizeRO(mem.B(text)) }

// TokenizeRO constructs a token stream for the JSON value in src.
func TokenizeRO(src mem.RO) *Tokens {
	t := &Tokens{text: src}
	if src.Len() > MaxInput {
		t.err = &SyntaxError{
			Offset:   MaxInput,
			Location: Locate(src, MaxInput),
			Expected: fmt.Sprintf("at most %d bytes of input", MaxInput),
			Got:      rune(src.At(MaxInput)),
		}
		return t
	}

	// Most real inputs need about one token per four bytes.
	t.toks = make([]token, 0, max(src.Len()/4, minTokens))
	if err := Scan(src, builder{t}); err != nil {
		t.err = err.(*SyntaxError) // builder never reports errors
	}
	return t
}

// builder implements the Handler interface to append tokens to a stream.
type builder struct{ t *Tokens }

func (b builder) BeginObject(pos int) error { b.t.add(ObjectBegin, pos); return nil }
func (b builder) EndObject(pos int) error   { b.t.add(ObjectEnd, pos); return nil }
func (b builder) BeginArray(pos int) error  { b.t.add(ArrayBegin, pos); return nil }
func (b builder) EndArray(pos int) error    { b.t.add(ArrayEnd, pos); return nil }

func (b builder) Literal(tag Tag, pos int) error { b.t.add(tag, pos); return nil }

func (b builder) Name(span Span, _ bool) error {
	b.t.add(NameBegin, span.Pos)
	b.t.add(NameEnd, span.End-1)
	return nil
}

func (b builder) Number(span Span) error {
	b.t.add(NumberBegin, span.Pos)
	b.t.add(NumberEnd, span.End-1)
	return nil
}

func (b builder) String(span Span, _ bool) error {
	b.t.add(StringBegin, span.Pos)
	b.t.add(StringEnd, span.End-1)
	return nil
}
