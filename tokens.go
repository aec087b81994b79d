// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtoken

import (
	"fmt"

	"go4.org/mem"
)

// Tag is the type of a token in a token stream.
type Tag byte

// Constants defining the valid Tag values.
const (
	Null        Tag = iota // constant: null
	True                   // constant: true
	False                  // constant: false
	NumberBegin            // first byte of a number
	NumberEnd              // last byte of a number
	StringBegin            // opening quote of a string value
	StringEnd              // closing quote of a string value
	NameBegin              // opening quote of a member name
	NameEnd                // closing quote of a member name
	ObjectBegin            // left brace "{"
	ObjectEnd              // right brace "}"
	ArrayBegin             // left square bracket "["
	ArrayEnd               // right square bracket "]"
)

var tagStr = [...]string{
	Null:        "NULL",
	True:        "TRUE",
	False:       "FALSE",
	NumberBegin: "NUMBER_BEGIN",
	NumberEnd:   "NUMBER_END",
	StringBegin: "STRING_BEGIN",
	StringEnd:   "STRING_END",
	NameBegin:   "NAME_BEGIN",
	NameEnd:     "NAME_END",
	ObjectBegin: "OBJECT_BEGIN",
	ObjectEnd:   "OBJECT_END",
	ArrayBegin:  "ARRAY_BEGIN",
	ArrayEnd:    "ARRAY_END",
}

func (t Tag) String() string {
	if int(t) >= len(tagStr) {
		return fmt.Sprintf("Tag(%d)", t)
	}
	return tagStr[t]
}

// IsBegin reports whether t opens a value or name: a container begin, or the
// first half of a number, string, or name pair.
func (t Tag) IsBegin() bool {
	switch t {
	case NumberBegin, StringBegin, NameBegin, ObjectBegin, ArrayBegin:
		return true
	}
	return false
}

// A token is a single entry of a token stream.
type token struct {
	tag Tag
	pos int32 // byte offset in the source text
}

// Tokens is a flat stream of tokens over a single source text.
//
// A Tokens value is produced by Tokenize and is not modified afterward, so it
// is safe for concurrent use by multiple goroutines provided the source text
// is not modified either.
//
// If Err reports a non-nil error, the stream is incomplete: it contains only
// the tokens found before the error. The navigation methods must not be used
// on an incomplete stream.
type Tokens struct {
	text mem.RO
	toks []token
	err  *SyntaxError
}

// Text returns the source text of t.
func (t *Tokens) Text() mem.RO { return t.text }

// Len reports the number of tokens in t.
func (t *Tokens) Len() int { return len(t.toks) }

// Tag returns the tag of token i.
func (t *Tokens) Tag(i int) Tag { return t.toks[i].tag }

// Pos returns the source offset of token i.
func (t *Tokens) Pos(i int) int { return int(t.toks[i].pos) }

// Err returns the syntax error that ended tokenization, or nil if t is a
// complete stream.
func (t *Tokens) Err() error {
	if t.err == nil {
		return nil
	}
	return t.err
}

// Valid reports whether t is a complete stream.
func (t *Tokens) Valid() bool { return t.err == nil }

// Location returns the location of the value or name beginning at token i.
func (t *Tokens) Location(i int) Location {
	pos := t.Pos(i)
	return locate(t.text, Span{Pos: pos, End: pos + t.valueCharLength(i)})
}

// add appends a token to the stream, doubling its capacity when full.
func (t *Tokens) add(tag Tag, pos int) {
	if len(t.toks) == cap(t.toks) {
		grown := make([]token, len(t.toks), max(2*cap(t.toks), minTokens))
		copy(grown, t.toks)
		t.toks = grown
	}
	t.toks = append(t.toks, token{tag: tag, pos: int32(pos)})
}

const minTokens = 16
