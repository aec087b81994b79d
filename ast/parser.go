// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"io"

	"github.com/creachadair/jtoken"
	"github.com/creachadair/jtoken/internal/escape"
	"go4.org/mem"
)

// Parse parses text as a single JSON value. In case of a syntax error, the
// error has concrete type *jtoken.SyntaxError.
func Parse(text string) (Value, error) { return ParseRO(mem.S(text)) }

// ParseBytes parses text as a single JSON value. The resulting tree may
// refer to text directly; the caller must not modify text after parsing.
func ParseBytes(text []byte) (Value, error) { return ParseRO(mem.B(text)) }

// ParseRO parses src as a single JSON value.
func ParseRO(src mem.RO) (Value, error) {
	p := &parser{src: src}
	if err := jtoken.Scan(src, p); err != nil {
		return nil, err
	}
	return p.root, nil
}

// Read reads the complete contents of r and parses it as a single JSON value.
func Read(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

// A parser implements the jtoken.Handler interface to construct a tree.
// Partially constructed containers are kept on an explicit stack.
type parser struct {
	src  mem.RO
	stk  []frame
	root Value
}

// A frame is an open container. For an object, name holds the most recent
// field name, whose value has not yet been seen.
type frame struct {
	isObject bool
	values   []Value
	fields   []Field
	name     Field
}

func (p *parser) top() *frame { return &p.stk[len(p.stk)-1] }

// reduce adds a completed value to the innermost open container, or makes it
// the root if there is none.
func (p *parser) reduce(v Value) error {
	if len(p.stk) == 0 {
		p.root = v
		return nil
	}
	f := p.top()
	if f.isObject {
		fd := f.name
		fd.Value = v
		f.fields = append(f.fields, fd)
	} else {
		f.values = append(f.values, v)
	}
	return nil
}

func (p *parser) pop() frame {
	f := p.stk[len(p.stk)-1]
	p.stk = p.stk[:len(p.stk)-1]
	return f
}

func (p *parser) BeginObject(int) error { p.stk = append(p.stk, frame{isObject: true}); return nil }
func (p *parser) BeginArray(int) error  { p.stk = append(p.stk, frame{}); return nil }

func (p *parser) EndObject(int) error { return p.reduce(&Object{fields: p.pop().fields}) }
func (p *parser) EndArray(int) error  { return p.reduce(&Array{values: p.pop().values}) }

func (p *parser) Name(span jtoken.Span, escaped bool) error {
	fd, err := newField(p.src.Slice(span.Pos+1, span.End-1), escaped)
	if err != nil {
		return err
	}
	p.top().name = fd
	return nil
}

func (p *parser) Literal(tag jtoken.Tag, _ int) error {
	switch tag {
	case jtoken.Null:
		return p.reduce(Null{})
	case jtoken.True:
		return p.reduce(True)
	case jtoken.False:
		return p.reduce(False)
	default:
		return fmt.Errorf("unknown literal %v", tag)
	}
}

func (p *parser) Number(span jtoken.Span) error {
	return p.reduce(parsedNumber(p.src.Slice(span.Pos, span.End)))
}

func (p *parser) String(span jtoken.Span, escaped bool) error {
	return p.reduce(parsedString(p.src.Slice(span.Pos+1, span.End-1), escaped))
}

// newField constructs a field with no value from the escaped text of name.
// Names are decoded eagerly, since field lookup compares decoded names.
func newField(raw mem.RO, escaped bool) (Field, error) {
	if !escaped {
		return Field{Name: raw.StringCopy()}, nil
	}
	dec, err := escape.Unquote(raw)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: string(dec), raw: mem.Append(nil, raw)}, nil
}
