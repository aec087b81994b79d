// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
)

// Path traverses a sequential path into the structure of v, and returns the
// value reached. Path elements are interpreted as follows:
//
// A string selects the first field of an object with that name. It is an
// error if the value is not an object, or has no such field.
//
// An integer selects an element of an array or the value of a field of an
// object by offset. Negative offsets count backward from the end (-1 is
// last, -2 second last).
//
// A function with signature
//
//	func(Value) (Value, error)
//
// is called with the current value, and its result becomes the next value.
//
// A nil element is ignored.
func Path(v Value, path ...any) (Value, error) {
	cur := v
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(*Object)
			if !ok {
				return nil, fmt.Errorf("cannot traverse %v with %q: %w", cur, t, ErrWrongType)
			}
			next := obj.Get(t)
			if next == nil {
				return nil, fmt.Errorf("key %q: %w", t, ErrKeyNotFound)
			}
			cur = next

		case int:
			if k := cur.Kind(); k != ArrayKind && k != ObjectKind {
				return nil, fmt.Errorf("cannot traverse %v with %d: %w", cur, t, ErrNotCollection)
			}
			next, err := cur.At(fixIndex(cur.Len(), t))
			if err != nil {
				return nil, err
			}
			cur = next

		case func(Value) (Value, error):
			next, err := t(cur)
			if err != nil {
				return nil, err
			}
			cur = next

		case nil:
			// Do nothing.

		default:
			return nil, fmt.Errorf("invalid path element %T", elt)
		}
	}
	return cur, nil
}

func fixIndex(n, i int) int {
	if i < 0 {
		return i + n
	}
	return i
}

// ToValue converts a Go value into a Value. The concrete type of v must be
// one of the following, or ToValue will panic:
//
//   - nil is converted to Null
//   - bool is converted to Bool
//   - any signed or unsigned integer type is converted to an integer Number
//   - float32 and float64 are converted to a floating-point Number
//   - string is converted to String
//   - []any and []Value are converted to Array, converting each element
//   - map[string]any is converted to Object, with fields sorted by name
//   - []Field is converted to Object, preserving order
//   - a Value is returned unchanged
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return NewBool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint, uint8, uint16, uint32, uint64, uintptr:
		u := reflect.ValueOf(t).Uint()
		if u > math.MaxInt64 {
			return Float(float64(u))
		}
		return Int(int64(u))
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case string:
		return Str(t)
	case []any:
		vs := make([]Value, len(t))
		for i, elt := range t {
			vs[i] = ToValue(elt)
		}
		return &Array{values: vs}
	case []Value:
		return NewArray(t...)
	case map[string]any:
		fs := make([]Field, 0, len(t))
		for name, elt := range t {
			fs = append(fs, Member(name, ToValue(elt)))
		}
		slices.SortFunc(fs, func(a, b Field) int { return cmp.Compare(a.Name, b.Name) })
		return &Object{fields: fs}
	case []Field:
		return NewObject(t...)
	default:
		panic(fmt.Sprintf("ast: cannot convert %T to a value", v))
	}
}
