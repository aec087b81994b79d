// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"

	"github.com/creachadair/jtoken"
	"go4.org/mem"
)

// FromTokens constructs the tree for the value whose first token is i in the
// valid token stream t. The result shares the source text of t.
func FromTokens(t *jtoken.Tokens, i int) Value {
	switch tag := t.Tag(i); tag {
	case jtoken.Null:
		return Null{}
	case jtoken.True:
		return True
	case jtoken.False:
		return False
	case jtoken.NumberBegin:
		return parsedNumber(t.ValueText(i))
	case jtoken.StringBegin:
		raw := body(t, i)
		return parsedString(raw, mem.IndexByte(raw, '\\') >= 0)
	case jtoken.ArrayBegin:
		vs := make([]Value, 0, 4)
		t.ForEachElement(i, func(elem int) {
			vs = append(vs, FromTokens(t, elem))
		})
		return &Array{values: vs}
	case jtoken.ObjectBegin:
		var fs []Field
		t.ForEachField(i, func(name, value int) {
			raw := body(t, name)
			fd, err := newField(raw, mem.IndexByte(raw, '\\') >= 0)
			if err != nil {
				panic(fmt.Sprintf("ast: invalid name at token %d: %v", name, err))
			}
			fd.Value = FromTokens(t, value)
			fs = append(fs, fd)
		})
		return &Object{fields: fs}
	default:
		panic(fmt.Sprintf("ast: token %d (%v) does not begin a value", i, tag))
	}
}

// body returns the text between the quotes of the string or name at token i.
func body(t *jtoken.Tokens, i int) mem.RO {
	text := t.ValueText(i)
	return text.Slice(1, text.Len()-1)
}
