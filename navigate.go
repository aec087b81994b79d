// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtoken

import (
	"fmt"
	"iter"
	"strconv"

	"github.com/creachadair/jtoken/internal/escape"
	"go4.org/mem"
)

// The methods in this file navigate a complete token stream. Their behavior
// is undefined if the stream is not Valid. Methods that require a particular
// kind of token at index i panic if the token there has the wrong tag.

// TokenCharLength returns the number of source bytes spanned by the atom
// whose first token is i. For a number, string, or name this is the distance
// from its first to its last byte inclusive. For the constants it is the
// length of the literal, and for any other token, including the delimiters
// of a container, it is 1.
func (t *Tokens) TokenCharLength(i int) int {
	switch t.Tag(i) {
	case Null, True:
		return 4
	case False:
		return 5
	case NumberBegin, StringBegin, NameBegin:
		return t.Pos(i+1) - t.Pos(i) + 1
	default:
		return 1
	}
}

// valueCharLength returns the number of source bytes spanned by the value or
// name beginning at token i, including the contents of a container.
func (t *Tokens) valueCharLength(i int) int {
	switch t.Tag(i) {
	case ObjectBegin, ArrayBegin:
		end := i + t.ValueTokenLength(i) - 1
		return t.Pos(end) - t.Pos(i) + 1
	default:
		return t.TokenCharLength(i)
	}
}

// ValueTokenLength returns the number of tokens comprising the value or name
// beginning at token i. Numbers, strings, and names take two tokens each; the
// constants take one; a container includes all its contents and both of its
// delimiters.
func (t *Tokens) ValueTokenLength(i int) int {
	switch t.Tag(i) {
	case NumberBegin, StringBegin, NameBegin:
		return 2
	case ObjectBegin, ArrayBegin:
		// Only container tokens affect the depth, so a single forward pass
		// over the subtree finds the matching end.
		depth := 0
		for j := i; j < len(t.toks); j++ {
			switch t.toks[j].tag {
			case ObjectBegin, ArrayBegin:
				depth++
			case ObjectEnd, ArrayEnd:
				depth--
				if depth == 0 {
					return j - i + 1
				}
			}
		}
		panic(fmt.Sprintf("jtoken: unterminated container at token %d", i))
	default:
		return 1
	}
}

// ForEachField calls f with the name and value token indexes of each field
// of the object at token i, in source order. It returns the index of the
// OBJECT_END token for the object.
func (t *Tokens) ForEachField(i int, f func(name, value int)) int {
	t.checkTag("ForEachField", i, ObjectBegin)
	j := i + 1
	for t.toks[j].tag != ObjectEnd {
		f(j, j+2)
		j += 2 + t.ValueTokenLength(j+2)
	}
	return j
}

// ForEachFieldIndexed calls f with the ordinal, name index, and value index
// of each field of the object at token i. It returns the number of fields.
func (t *Tokens) ForEachFieldIndexed(i int, f func(n, name, value int)) int {
	var n int
	t.ForEachField(i, func(name, value int) {
		f(n, name, value)
		n++
	})
	return n
}

// ForEachElement calls f with the token index of each element of the array
// at token i, in source order. It returns the index of the ARRAY_END token
// for the array.
func (t *Tokens) ForEachElement(i int, f func(elem int)) int {
	t.checkTag("ForEachElement", i, ArrayBegin)
	j := i + 1
	for t.toks[j].tag != ArrayEnd {
		f(j)
		j += t.ValueTokenLength(j)
	}
	return j
}

// ForEachElementIndexed calls f with the ordinal and token index of each
// element of the array at token i. It returns the number of elements.
func (t *Tokens) ForEachElementIndexed(i int, f func(n, elem int)) int {
	var n int
	t.ForEachElement(i, func(elem int) {
		f(n, elem)
		n++
	})
	return n
}

// Fields returns an iterator over the name and value token indexes of the
// fields of the object at token i.
func (t *Tokens) Fields(i int) iter.Seq2[int, int] {
	t.checkTag("Fields", i, ObjectBegin)
	return func(yield func(int, int) bool) {
		for j := i + 1; t.toks[j].tag != ObjectEnd; j += 2 + t.ValueTokenLength(j+2) {
			if !yield(j, j+2) {
				return
			}
		}
	}
}

// Elements returns an iterator over the token indexes of the elements of the
// array at token i.
func (t *Tokens) Elements(i int) iter.Seq[int] {
	t.checkTag("Elements", i, ArrayBegin)
	return func(yield func(int) bool) {
		for j := i + 1; t.toks[j].tag != ArrayEnd; j += t.ValueTokenLength(j) {
			if !yield(j) {
				return
			}
		}
	}
}

// FieldCount returns the number of fields in the object at token i.
func (t *Tokens) FieldCount(i int) int {
	return t.ForEachFieldIndexed(i, func(int, int, int) {})
}

// ElementCount returns the number of elements in the array at token i.
func (t *Tokens) ElementCount(i int) int {
	return t.ForEachElementIndexed(i, func(int, int) {})
}

// IsObjectEmpty reports whether the object at token i has no fields.
func (t *Tokens) IsObjectEmpty(i int) bool {
	t.checkTag("IsObjectEmpty", i, ObjectBegin)
	return t.toks[i+1].tag == ObjectEnd
}

// IsArrayEmpty reports whether the array at token i has no elements.
func (t *Tokens) IsArrayEmpty(i int) bool {
	t.checkTag("IsArrayEmpty", i, ArrayBegin)
	return t.toks[i+1].tag == ArrayEnd
}

// ElementIndex returns the token index of element n of the array at token i,
// or -1 if n is out of range.
func (t *Tokens) ElementIndex(i, n int) int {
	if n >= 0 {
		k := 0
		for elem := range t.Elements(i) {
			if k == n {
				return elem
			}
			k++
		}
	}
	return -1
}

// FieldNameIndex returns the token index of the name of field n of the
// object at token i, or -1 if n is out of range.
func (t *Tokens) FieldNameIndex(i, n int) int {
	if n >= 0 {
		k := 0
		for name := range t.Fields(i) {
			if k == n {
				return name
			}
			k++
		}
	}
	return -1
}

// FieldValueIndex returns the token index of the value of field n of the
// object at token i, or -1 if n is out of range.
func (t *Tokens) FieldValueIndex(i, n int) int {
	if j := t.FieldNameIndex(i, n); j >= 0 {
		return j + 2
	}
	return -1
}

// FieldIndex returns the token index of the value of the first field of the
// object at token i whose decoded name equals name, or -1 if there is none.
func (t *Tokens) FieldIndex(i int, name string) int {
	for j, v := range t.Fields(i) {
		raw := t.body(j)
		if mem.IndexByte(raw, '\\') < 0 {
			if raw.EqualString(name) {
				return v
			}
		} else if t.StringValue(j) == name {
			return v
		}
	}
	return -1
}

// StringValue returns the decoded text of the string or name at token i.
func (t *Tokens) StringValue(i int) string {
	t.checkTag("StringValue", i, StringBegin, NameBegin)
	s, err := escape.UnquoteString(t.body(i))
	if err != nil {
		panic(fmt.Sprintf("jtoken: invalid string at token %d: %v", i, err))
	}
	return s
}

// NumberValue returns the value of the number at token i as a float64.
// Values beyond the range of float64 are reported as ±Inf.
func (t *Tokens) NumberValue(i int) float64 {
	t.checkTag("NumberValue", i, NumberBegin)
	v, _ := strconv.ParseFloat(t.NumberText(i), 64) // the grammar admits only valid numbers
	return v
}

// NumberText returns the source text of the number at token i.
func (t *Tokens) NumberText(i int) string {
	t.checkTag("NumberText", i, NumberBegin)
	return t.ValueText(i).StringCopy()
}

// ValueText returns a view of the source text spanned by the value or name
// beginning at token i.
func (t *Tokens) ValueText(i int) mem.RO {
	pos := t.Pos(i)
	return t.text.Slice(pos, pos+t.valueCharLength(i))
}

// ValueString returns a copy of the source text spanned by the value or name
// beginning at token i.
func (t *Tokens) ValueString(i int) string { return t.ValueText(i).StringCopy() }

// ValueTokensAt returns a self-contained token stream for the value at token
// i, whose text is exactly the source of that value and whose positions are
// relative to that text. If i == 0 and t is valid, it returns t itself.
func (t *Tokens) ValueTokensAt(i int) *Tokens {
	t.checkTag("ValueTokensAt", i,
		Null, True, False, NumberBegin, StringBegin, ObjectBegin, ArrayBegin)
	if i == 0 && t.Valid() {
		return t
	}
	n := t.ValueTokenLength(i)
	base := t.toks[i].pos
	out := &Tokens{text: t.ValueText(i), toks: make([]token, n)}
	for k, tok := range t.toks[i : i+n] {
		out.toks[k] = token{tag: tok.tag, pos: tok.pos - base}
	}
	return out
}

// body returns the text between the quotes of the string or name at token i.
func (t *Tokens) body(i int) mem.RO { return t.text.Slice(t.Pos(i)+1, t.Pos(i+1)) }

func (t *Tokens) checkTag(method string, i int, want ...Tag) {
	tag := t.Tag(i)
	for _, w := range want {
		if tag == w {
			return
		}
	}
	panic(fmt.Sprintf("jtoken: %s: token %d is %v, want %v", method, i, tag, want[0]))
}
