// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the token stream of a JSON value.
package cursor

import (
	"fmt"

	"github.com/creachadair/jtoken"
	"github.com/creachadair/jtoken/ast"
)

// Find traverses a sequential path into the structure of the value at token 0
// of t, where path elements are as documented for the Cursor.Down method. It
// returns the token index of the value reached. This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its index.
func Find(t *jtoken.Tokens, path ...any) (int, error) {
	c := New(t).Down(path...)
	if err := c.Err(); err != nil {
		return -1, err
	}
	return c.Index(), nil
}

// A Cursor is a pointer that navigates into the structure of a token stream.
// Its position is the token index of a value.
type Cursor struct {
	toks *jtoken.Tokens
	stk  []int
	err  error
}

// New constructs a new Cursor to traverse the structure of t, starting at the
// value at token 0. If t is not valid, the cursor reports the error from t
// and cannot move.
func New(t *jtoken.Tokens) *Cursor { return &Cursor{toks: t, err: t.Err()} }

// Tokens returns the token stream traversed by c.
func (c *Cursor) Tokens() *jtoken.Tokens { return c.toks }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Index reports the token index of the current value under the cursor.
func (c *Cursor) Index() int {
	if c.AtOrigin() {
		return 0
	}
	return c.stk[len(c.stk)-1]
}

// Tag reports the tag of the first token of the current value.
func (c *Cursor) Tag() jtoken.Tag { return c.toks.Tag(c.Index()) }

// Value constructs the tree of the current value under the cursor.
func (c *Cursor) Value() ast.Value { return ast.FromTokens(c.toks, c.Index()) }

// Text returns the source text of the current value under the cursor.
func (c *Cursor) Text() string { return c.toks.ValueString(c.Index()) }

// Path reports the complete sequence of token indices from the origin to the
// current location in c.
func (c *Cursor) Path() []int { return append([]int{0}, c.stk...) }

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = c.toks.Err() }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting object
// keys), integers (denoting offsets), functions (see below), or nil. If the
// path cannot be completely consumed, traversal stops at the last value
// reached and an error is recorded. Use Err to recover the error.
//
// If a path element is a string, the current value must be an object, and the
// string selects the value of the first field with that name.
//
// If a path element is an integer, the current value must be an array or
// object, and the integer selects an element of the array or the value of a
// field of the object by offset. Negative offsets count backward from the end
// (-1 is last, -2 second last).
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(t *jtoken.Tokens, i int) (int, error)
//
// where i is the token index of the current value, and the result is the
// token index of a value in t. If the function reports an error, traversal
// stops and the error is recorded.
//
// A nil path element is ignored.
func (c *Cursor) Down(path ...any) *Cursor {
	if !c.toks.Valid() {
		return c
	}
	c.err = nil // reset error
	cur := c.Index()
	for _, elt := range path {
		tag := c.toks.Tag(cur)
		switch t := elt.(type) {
		case string:
			if tag != jtoken.ObjectBegin {
				return c.setErrorf("cannot traverse %v with %q", tag, t)
			}
			next := c.toks.FieldIndex(cur, t)
			if next < 0 {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(next)

		case int:
			var next int
			switch tag {
			case jtoken.ArrayBegin:
				n := c.toks.ElementCount(cur)
				i, ok := fixBound(n, t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", t, n)
				}
				next = c.toks.ElementIndex(cur, i)
			case jtoken.ObjectBegin:
				n := c.toks.FieldCount(cur)
				i, ok := fixBound(n, t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", t, n)
				}
				next = c.toks.FieldValueIndex(cur, i)
			default:
				return c.setErrorf("cannot traverse %v with %d", tag, t)
			}
			cur = c.push(next)

		case func(*jtoken.Tokens, int) (int, error):
			next, err := t(c.toks, cur)
			if err != nil {
				c.err = err
				return c
			} else if next < 0 || next >= c.toks.Len() || !isValue(c.toks.Tag(next)) {
				return c.setErrorf("invalid token index %d", next)
			}
			cur = c.push(next)

		case nil:
			// Do nothing.

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(i int) int { c.stk = append(c.stk, i); return i }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

func isValue(tag jtoken.Tag) bool {
	switch tag {
	case jtoken.Null, jtoken.True, jtoken.False, jtoken.NumberBegin,
		jtoken.StringBegin, jtoken.ArrayBegin, jtoken.ObjectBegin:
		return true
	}
	return false
}
