// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an immutable tree model for JSON values, and a parser
// that constructs trees from JSON source.
//
// Scalar values produced by the parser retain a view of their source text,
// and derived forms (decoded string text, numeric values) are computed on
// first use and cached. A tree is safe for concurrent use by multiple
// goroutines once it has been constructed.
package ast

import (
	"errors"
	"fmt"
	"hash/maphash"
	"iter"
	"slices"
)

// Kind identifies the concrete type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

var (
	// ErrWrongType is reported by a strict accessor applied to a value of
	// the wrong kind.
	ErrWrongType = errors.New("wrong value type")

	// ErrNotCollection is reported by At for a value that is not an array or
	// an object.
	ErrNotCollection = errors.New("not a collection")

	// ErrIndexRange is reported for an index outside the bounds of an array
	// or object.
	ErrIndexRange = errors.New("index out of range")

	// ErrKeyNotFound is reported by Path for an object key that does not
	// occur in the object.
	ErrKeyNotFound = errors.New("key not found")
)

// A Value is an arbitrary JSON value. The concrete type of a Value is one of
// Null, Bool, *Number, *String, *Array, or *Object.
type Value interface {
	// Kind reports the kind of the value.
	Kind() Kind

	// JSON returns the compact JSON encoding of the value.
	JSON() string

	// String returns a short description of the value for debugging.
	String() string

	// The strict accessors report an error wrapping ErrWrongType if the value
	// does not represent the requested type.
	BoolValue() (bool, error)
	IntValue() (int64, error)
	FloatValue() (float64, error)
	StringValue() (string, error)

	// The lenient accessors convert the value where possible, and otherwise
	// return a zero value. They never fail.
	AsBool() bool
	AsInt() int64
	AsFloat() float64
	AsString() string

	// Len reports the number of elements or fields in a collection, or 0.
	Len() int

	// At returns the i'th element of an array or the value of the i'th field
	// of an object.
	At(i int) (Value, error)

	// Get returns the value of the first field named key in an object. It
	// returns nil if there is no such field, or if the value is not an object.
	Get(key string) Value

	// Values returns an iterator over the elements of an array or the field
	// values of an object. For a scalar the sequence is empty.
	Values() iter.Seq[Value]

	// Equal reports whether the value is structurally equal to v.
	Equal(v Value) bool

	// Hash returns a hash of the value, consistent with Equal.
	Hash() uint64

	appendJSON(buf []byte, strict bool) []byte
}

// defaults provides the behavior of a Value that is not specific to its kind.
// Each concrete type overrides the methods that apply to it.
type defaults struct{}

func (defaults) BoolValue() (bool, error)     { return false, wrongType("bool") }
func (defaults) IntValue() (int64, error)     { return 0, wrongType("integer") }
func (defaults) FloatValue() (float64, error) { return 0, wrongType("number") }
func (defaults) StringValue() (string, error) { return "", wrongType("string") }
func (defaults) AsBool() bool                 { return false }
func (defaults) AsInt() int64                 { return 0 }
func (defaults) AsFloat() float64             { return 0 }
func (defaults) AsString() string             { return "" }
func (defaults) Len() int                     { return 0 }
func (defaults) At(int) (Value, error)        { return nil, ErrNotCollection }
func (defaults) Get(string) Value             { return nil }
func (defaults) Values() iter.Seq[Value]      { return func(func(Value) bool) {} }

func wrongType(want string) error {
	return fmt.Errorf("value is not a %s: %w", want, ErrWrongType)
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("index %d (n=%d): %w", i, n, ErrIndexRange)
	}
	return nil
}

func hashKind(k Kind, x uint64) uint64 { return maphash.Comparable(seed, [2]uint64{uint64(k), x}) }

func jsonString(v Value) string { return string(v.appendJSON(nil, false)) }

// seed is the hash seed for the process. Hash values are not stable across
// processes.
var seed = maphash.MakeSeed()

// Null represents the null constant.
type Null struct{ defaults }

func (Null) Kind() Kind                           { return NullKind }
func (Null) JSON() string                         { return "null" }
func (Null) String() string                       { return "Null" }
func (Null) Equal(v Value) bool                   { _, ok := v.(Null); return ok }
func (Null) Hash() uint64                         { return hashKind(NullKind, 0) }
func (Null) appendJSON(buf []byte, _ bool) []byte { return append(buf, "null"...) }

// IsNull reports whether v is nil or a JSON null. This permits a field that
// is missing and a field whose value is null to be treated alike:
//
//	if v := obj.Get("rating"); !ast.IsNull(v) {
//	   use(v.AsFloat())
//	}
func IsNull(v Value) bool { return v == nil || v.Kind() == NullKind }

// A Bool is a Boolean constant, true or false.
type Bool struct {
	defaults
	value bool
}

var (
	// True is the Boolean constant true.
	True = Bool{value: true}

	// False is the Boolean constant false.
	False = Bool{value: false}
)

// NewBool returns True if b is true, otherwise False.
func NewBool(b bool) Bool { return Bool{value: b} }

// Value reports the truth value of b.
func (b Bool) Value() bool { return b.value }

func (Bool) Kind() Kind                 { return BoolKind }
func (b Bool) JSON() string             { return b.AsString() }
func (b Bool) BoolValue() (bool, error) { return b.value, nil }
func (b Bool) AsBool() bool             { return b.value }

func (b Bool) String() string {
	if b.value {
		return "True"
	}
	return "False"
}

// AsInt returns 1 for true and 0 for false.
func (b Bool) AsInt() int64 {
	if b.value {
		return 1
	}
	return 0
}

// AsFloat returns 1 for true and 0 for false.
func (b Bool) AsFloat() float64 { return float64(b.AsInt()) }

// AsString returns "true" or "false".
func (b Bool) AsString() string {
	if b.value {
		return "true"
	}
	return "false"
}

func (b Bool) Equal(v Value) bool {
	o, ok := v.(Bool)
	return ok && o.value == b.value
}

func (b Bool) Hash() uint64 { return hashKind(BoolKind, uint64(b.AsInt())) }

func (b Bool) appendJSON(buf []byte, _ bool) []byte { return append(buf, b.AsString()...) }

// An Array is a sequence of values.
type Array struct {
	defaults
	values []Value
}

// NewArray constructs an array of the given values.
func NewArray(vs ...Value) *Array { return &Array{values: slices.Clone(vs)} }

func (*Array) Kind() Kind                { return ArrayKind }
func (a *Array) JSON() string            { return jsonString(a) }
func (a *Array) String() string          { return fmt.Sprintf("Array(len=%d)", len(a.values)) }
func (a *Array) Len() int                { return len(a.values) }
func (a *Array) AsBool() bool            { return len(a.values) != 0 }
func (a *Array) Values() iter.Seq[Value] { return slices.Values(a.values) }

// At returns the element at offset i of a.
func (a *Array) At(i int) (Value, error) {
	if err := checkIndex(i, len(a.values)); err != nil {
		return nil, err
	}
	return a.values[i], nil
}

// All returns an iterator over the offsets and elements of a.
func (a *Array) All() iter.Seq2[int, Value] { return slices.All(a.values) }

func (a *Array) Equal(v Value) bool {
	o, ok := v.(*Array)
	return ok && slices.EqualFunc(a.values, o.values, Value.Equal)
}

func (a *Array) Hash() uint64 {
	h := uint64(len(a.values))
	for _, v := range a.values {
		h = 31*h + v.Hash()
	}
	return hashKind(ArrayKind, h)
}

func (a *Array) appendJSON(buf []byte, strict bool) []byte {
	buf = append(buf, '[')
	for i, v := range a.values {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = v.appendJSON(buf, strict)
	}
	return append(buf, ']')
}

// A Field is a single name-value pair belonging to an Object.
type Field struct {
	Name  string
	Value Value

	raw []byte // the escaped spelling of Name from the source, if it had escapes
}

// Member constructs a field with the given name and value.
func Member(name string, v Value) Field { return Field{Name: name, Value: v} }

// Equal reports whether f and g have the same name and equal values.
func (f Field) Equal(g Field) bool {
	return f.Name == g.Name && f.Value.Equal(g.Value)
}

func (f Field) appendName(buf []byte, strict bool) []byte {
	if f.raw != nil && !strict {
		buf = append(buf, '"')
		buf = append(buf, f.raw...)
		return append(buf, '"')
	}
	return appendQuoted(buf, f.Name, strict)
}

// An Object is a collection of name-value fields. Names need not be unique;
// lookups by name find the first matching field.
type Object struct {
	defaults
	fields []Field
}

// NewObject constructs an object with the given fields.
func NewObject(fs ...Field) *Object { return &Object{fields: slices.Clone(fs)} }

func (*Object) Kind() Kind       { return ObjectKind }
func (o *Object) JSON() string   { return jsonString(o) }
func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.fields)) }
func (o *Object) Len() int       { return len(o.fields) }
func (o *Object) AsBool() bool   { return len(o.fields) != 0 }

// At returns the value of the field at offset i of o.
func (o *Object) At(i int) (Value, error) {
	if err := checkIndex(i, len(o.fields)); err != nil {
		return nil, err
	}
	return o.fields[i].Value, nil
}

// Field returns the field at offset i of o. It panics if i is out of range.
func (o *Object) Field(i int) Field { return o.fields[i] }

// FindIndex returns the offset of the first field of o with the given name,
// or -1 if there is none.
func (o *Object) FindIndex(name string) int {
	return slices.IndexFunc(o.fields, func(f Field) bool { return f.Name == name })
}

// Get returns the value of the first field of o with the given name, or nil.
func (o *Object) Get(name string) Value {
	if i := o.FindIndex(name); i >= 0 {
		return o.fields[i].Value
	}
	return nil
}

// Values returns an iterator over the field values of o.
func (o *Object) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, f := range o.fields {
			if !yield(f.Value) {
				return
			}
		}
	}
}

// All returns an iterator over the names and values of the fields of o.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, f := range o.fields {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// Fields returns an iterator over the fields of o.
func (o *Object) Fields() iter.Seq[Field] { return slices.Values(o.fields) }

func (o *Object) Equal(v Value) bool {
	p, ok := v.(*Object)
	return ok && slices.EqualFunc(o.fields, p.fields, Field.Equal)
}

func (o *Object) Hash() uint64 {
	h := uint64(len(o.fields))
	for _, f := range o.fields {
		h = (31*h+maphash.String(seed, f.Name))*31 + f.Value.Hash()
	}
	return hashKind(ObjectKind, h)
}

func (o *Object) appendJSON(buf []byte, strict bool) []byte {
	buf = append(buf, '{')
	for i, f := range o.fields {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = f.appendName(buf, strict)
		buf = append(buf, ':')
		buf = f.Value.appendJSON(buf, strict)
	}
	return append(buf, '}')
}
