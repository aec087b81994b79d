// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"math"
	"testing"

	"github.com/creachadair/jtoken/ast"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func mustParse(t *testing.T, text string) ast.Value {
	t.Helper()
	v, err := ast.Parse(text)
	if err != nil {
		t.Fatalf("Parse %q: unexpected error: %v", text, err)
	}
	return v
}

func TestPath(t *testing.T) {
	v := mustParse(t, testJSON)
	list := v.Get("list")
	second, _ := list.At(1)

	tests := []struct {
		name string
		path []any
		want ast.Value
		err  error
	}{
		{"NilInput", nil, v, nil},
		{"NilElement", []any{nil, "list", nil, 1}, second, nil},
		{"NoMatch", []any{"nonesuch"}, nil, ast.ErrKeyNotFound},
		{"NotObject", []any{"o", "hi"}, nil, ast.ErrWrongType},
		{"NotCollection", []any{"xyz", "p", 0}, nil, ast.ErrNotCollection},

		{"ArrayPos", []any{"list", 1}, second, nil},
		{"ArrayNeg", []any{"list", -1}, second, nil},
		{"ArrayRange", []any{"o", 25}, nil, ast.ErrIndexRange},
		{"ArrayNegRange", []any{"o", -3}, nil, ast.ErrIndexRange},
		{"ObjPath", []any{"xyz", "d"}, ast.True, nil},
		{"ObjOffset", []any{"xyz", -1}, ast.False, nil},
		{"Deep", []any{"list", 0, "x"}, ast.Int(1), nil},

		{"FuncArray", []any{"o", testPathFunc}, ast.Int(2), nil},
		{"FuncObj", []any{"xyz", testPathFunc}, ast.Int(3), nil},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, nil, errNoLength},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ast.Path(v, tc.path...)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("Path: got (%v, %v), want error %v", got, err, tc.err)
				}
				t.Logf("Got expected error: %v", err)
				return
			} else if err != nil {
				t.Fatalf("Path: unexpected error: %v", err)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Wrong result (-got, +want):\n%s", diff)
			} else {
				t.Logf("Found %s OK", got.JSON())
			}
		})
	}

	t.Run("BadElement", func(t *testing.T) {
		if got, err := ast.Path(v, 2.5); err == nil {
			t.Errorf("Path: got %v, want error", got)
		}
	})
}

var errNoLength = errors.New("not a thing with length")

func testPathFunc(v ast.Value) (ast.Value, error) {
	if k := v.Kind(); k == ast.ArrayKind || k == ast.ObjectKind {
		return ast.ToValue(v.Len()), nil
	}
	return nil, errNoLength
}

type myInt int

func TestToValue(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{nil, "null"},
		{true, "true"},
		{false, "false"},
		{0, "0"},
		{int8(-5), "-5"},
		{int64(math.MaxInt64), "9223372036854775807"},
		{uint16(65535), "65535"},
		{uint64(math.MaxUint64), "1.8446744073709552e+19"},
		{1.5, "1.5"},
		{float32(0.25), "0.25"},
		{math.Inf(1), "null"},
		{"", `""`},
		{"a\tb", `"a\tb"`},
		{[]any{}, "[]"},
		{[]any{1, "two", nil, []any{false}}, `[1,"two",null,[false]]`},
		{[]ast.Value{ast.Int(3), ast.Str("x")}, `[3,"x"]`},
		{map[string]any{"z": 1, "a": []any{}, "m": nil}, `{"a":[],"m":null,"z":1}`},
		{[]ast.Field{ast.Member("z", ast.Int(1)), ast.Member("a", ast.True)}, `{"z":1,"a":true}`},
		{ast.Str("value"), `"value"`},
	}
	for _, tc := range tests {
		if got := ast.ToValue(tc.input).JSON(); got != tc.want {
			t.Errorf("ToValue(%#v): got %s, want %s", tc.input, got, tc.want)
		}
	}

	mtest.MustPanic(t, func() { ast.ToValue(myInt(1)) })
	mtest.MustPanic(t, func() { ast.ToValue(struct{}{}) })
	mtest.MustPanic(t, func() { ast.ToValue([]any{1, complex(1, 2)}) })
}

func TestKind(t *testing.T) {
	v := mustParse(t, `[null, true, 1, "s", [], {}]`)
	want := []ast.Kind{ast.NullKind, ast.BoolKind, ast.NumberKind, ast.StringKind, ast.ArrayKind, ast.ObjectKind}
	var got []ast.Kind
	for elt := range v.Values() {
		got = append(got, elt.Kind())
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Kinds (-got, +want):\n%s", diff)
	}
	if s := ast.ObjectKind.String(); s != "object" {
		t.Errorf("ObjectKind: got %q, want object", s)
	}
	if s := ast.Kind(20).String(); s != "Kind(20)" {
		t.Errorf("Kind(20): got %q, want Kind(20)", s)
	}
}

func TestIsNull(t *testing.T) {
	v := mustParse(t, `{"n": null, "z": 0, "e": "", "a": [], "o": {}}`)
	tests := []struct {
		key  string
		want bool
	}{
		{"n", true},
		{"missing", true},
		{"z", false},
		{"e", false},
		{"a", false},
		{"o", false},
	}
	for _, tc := range tests {
		if got := ast.IsNull(v.Get(tc.key)); got != tc.want {
			t.Errorf("IsNull(%q): got %v, want %v", tc.key, got, tc.want)
		}
	}
	if !ast.IsNull(nil) || !ast.IsNull(ast.Null{}) {
		t.Error("IsNull: nil and Null{} should both be null")
	}
	if ast.IsNull(ast.False) || ast.IsNull(ast.Str("null")) {
		t.Error("IsNull: false and \"null\" should not be null")
	}
}

func TestStrictAccessors(t *testing.T) {
	v := mustParse(t, `{"b":true, "i":-25, "f":2.5, "s":"hi\nthere", "n":null}`)

	if b, err := v.Get("b").BoolValue(); err != nil || !b {
		t.Errorf("BoolValue: got (%v, %v), want true", b, err)
	}
	if z, err := v.Get("i").IntValue(); err != nil || z != -25 {
		t.Errorf("IntValue: got (%v, %v), want -25", z, err)
	}
	if z, err := v.Get("f").IntValue(); err != nil || z != 2 {
		t.Errorf("IntValue: got (%v, %v), want 2", z, err)
	}
	if f, err := v.Get("f").FloatValue(); err != nil || f != 2.5 {
		t.Errorf("FloatValue: got (%v, %v), want 2.5", f, err)
	}
	if s, err := v.Get("s").StringValue(); err != nil || s != "hi\nthere" {
		t.Errorf("StringValue: got (%q, %v), want %q", s, err, "hi\nthere")
	}
	if s, err := v.Get("i").StringValue(); err != nil || s != "-25" {
		t.Errorf("StringValue: got (%q, %v), want -25", s, err)
	}

	// Each of these is the wrong type.
	checks := []func() error{
		func() error { _, err := v.Get("n").BoolValue(); return err },
		func() error { _, err := v.Get("s").BoolValue(); return err },
		func() error { _, err := v.Get("b").IntValue(); return err },
		func() error { _, err := v.Get("s").FloatValue(); return err },
		func() error { _, err := v.Get("n").StringValue(); return err },
		func() error { _, err := v.StringValue(); return err },
	}
	for i, check := range checks {
		if err := check(); !errors.Is(err, ast.ErrWrongType) {
			t.Errorf("Check %d: got %v, want %v", i, err, ast.ErrWrongType)
		}
	}

	if _, err := v.Get("s").At(0); !errors.Is(err, ast.ErrNotCollection) {
		t.Errorf("At on a string: got %v, want %v", err, ast.ErrNotCollection)
	}
	if _, err := v.At(5); !errors.Is(err, ast.ErrIndexRange) {
		t.Errorf("At(5): got %v, want %v", err, ast.ErrIndexRange)
	}
	if got := v.Get("s").Get("x"); got != nil {
		t.Errorf("Get on a string: got %v, want nil", got)
	}
}

func TestLenientAccessors(t *testing.T) {
	tests := []struct {
		input string
		b     bool
		z     int64
		f     float64
		s     string
	}{
		{`null`, false, 0, 0, ""},
		{`true`, true, 1, 1, "true"},
		{`false`, false, 0, 0, "false"},
		{`0`, false, 0, 0, "0"},
		{`-0.0`, false, 0, 0, "-0.0"},
		{`0e5`, false, 0, 0, "0e5"},
		{`0.01`, true, 0, 0.01, "0.01"},
		{`-17.9`, true, -17, -17.9, "-17.9"},
		{`1e300`, true, math.MaxInt64, 1e300, "1e300"},
		{`-1e300`, true, math.MinInt64, -1e300, "-1e300"},
		{`""`, false, 0, 0, ""},
		{`"TRUE"`, true, 0, 0, "TRUE"},
		{`"yes"`, false, 0, 0, "yes"},
		{`"  42 "`, false, 42, 42, "  42 "},
		{`" 2.5"`, false, 0, 2.5, " 2.5"},
		{`"x1"`, false, 0, 0, "x1"},
		{`[]`, false, 0, 0, ""},
		{`[0]`, true, 0, 0, ""},
		{`{}`, false, 0, 0, ""},
		{`{"a":1}`, true, 0, 0, ""},
	}
	for _, tc := range tests {
		v := mustParse(t, tc.input)
		if got := v.AsBool(); got != tc.b {
			t.Errorf("%s AsBool: got %v, want %v", tc.input, got, tc.b)
		}
		if got := v.AsInt(); got != tc.z {
			t.Errorf("%s AsInt: got %v, want %v", tc.input, got, tc.z)
		}
		if got := v.AsFloat(); got != tc.f {
			t.Errorf("%s AsFloat: got %v, want %v", tc.input, got, tc.f)
		}
		if got := v.AsString(); got != tc.s {
			t.Errorf("%s AsString: got %q, want %q", tc.input, got, tc.s)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input string
		isInt bool
		text  string
	}{
		{"0", true, "0"},
		{"-12", true, "-12"},
		{"12.0", false, "12.0"},
		{"1e2", false, "1e2"},
		{"9223372036854775807", true, "9223372036854775807"},
		{"9223372036854775808", false, "9223372036854775808"},
	}
	for _, tc := range tests {
		n, ok := mustParse(t, tc.input).(*ast.Number)
		if !ok {
			t.Fatalf("Parse %q: not a number", tc.input)
		}
		if got := n.IsInt(); got != tc.isInt {
			t.Errorf("%s IsInt: got %v, want %v", tc.input, got, tc.isInt)
		}
		if got := n.Text(); got != tc.text {
			t.Errorf("%s Text: got %q, want %q", tc.input, got, tc.text)
		}
		if got, want := n.String(), "Number("+tc.text+")"; got != want {
			t.Errorf("%s String: got %q, want %q", tc.input, got, want)
		}
	}

	if got := ast.Float(1e21).Text(); got != "1e+21" {
		t.Errorf("Float(1e21): got %q, want 1e+21", got)
	}
	if ast.Float(3).IsInt() {
		t.Error("Float(3) reports an integer")
	}
	if got := ast.Float(math.NaN()).JSON(); got != "null" {
		t.Errorf("Float(NaN): got %q, want null", got)
	}
}

func TestEqualHash(t *testing.T) {
	same := [][]ast.Value{
		{ast.Null{}, mustParse(t, "null")},
		{ast.True, ast.NewBool(true), mustParse(t, "true")},
		{ast.Int(3), ast.Float(3), mustParse(t, "3"), mustParse(t, "3.0"), mustParse(t, "0.3e1")},
		{ast.Int(0), ast.Float(math.Copysign(0, -1)), mustParse(t, "-0")},
		{ast.Str("A/"), mustParse(t, `"A/"`), mustParse(t, `"A\/"`)},
		{ast.NewArray(ast.Int(1), ast.Null{}), mustParse(t, "[1, null]"), ast.ToValue([]any{1.0, nil})},
		{
			ast.NewObject(ast.Member("a", ast.Int(1)), ast.Member("b", ast.Str("x"))),
			mustParse(t, `{"a":1,"b":"x"}`),
			mustParse(t, `{"a":1.0, "b":"x"}`),
		},
	}
	for _, vs := range same {
		for _, a := range vs {
			for _, b := range vs {
				if !a.Equal(b) {
					t.Errorf("%s.Equal(%s): got false, want true", a.JSON(), b.JSON())
				}
				if a.Hash() != b.Hash() {
					t.Errorf("Hash %s = %x, %s = %x", a.JSON(), a.Hash(), b.JSON(), b.Hash())
				}
			}
		}
	}

	diff := []ast.Value{
		ast.Null{},
		ast.False,
		ast.Int(0),
		ast.Str(""),
		ast.Str("false"),
		ast.NewArray(),
		ast.NewObject(),
		ast.NewArray(ast.Int(1), ast.Int(2)),
		ast.NewArray(ast.Int(2), ast.Int(1)),
		ast.NewObject(ast.Member("a", ast.Int(1)), ast.Member("b", ast.Int(2))),
		ast.NewObject(ast.Member("b", ast.Int(2)), ast.Member("a", ast.Int(1))),
		ast.NewObject(ast.Member("a", ast.Int(1)), ast.Member("a", ast.Int(1))),
	}
	for i, a := range diff {
		for j, b := range diff {
			if i != j && a.Equal(b) {
				t.Errorf("%s.Equal(%s): got true, want false", a.JSON(), b.JSON())
			}
		}
	}
}

func TestObject(t *testing.T) {
	v := mustParse(t, `{"a":1, "b":2, "a":3}`)
	obj := v.(*ast.Object)

	if got := obj.Len(); got != 3 {
		t.Errorf("Len: got %d, want 3", got)
	}
	if got := obj.FindIndex("a"); got != 0 {
		t.Errorf("FindIndex(a): got %d, want 0", got)
	}
	if got := obj.FindIndex("c"); got != -1 {
		t.Errorf("FindIndex(c): got %d, want -1", got)
	}
	if got := obj.Get("a"); !got.Equal(ast.Int(1)) {
		t.Errorf("Get(a): got %v, want 1", got)
	}
	if got := obj.Field(2); got.Name != "a" || !got.Value.Equal(ast.Int(3)) {
		t.Errorf("Field(2): got %v, want a: 3", got)
	}

	var names []string
	for name := range obj.All() {
		names = append(names, name)
	}
	if diff := cmp.Diff(names, []string{"a", "b", "a"}); diff != "" {
		t.Errorf("Names (-got, +want):\n%s", diff)
	}

	// Stop early.
	var n int
	for range obj.Fields() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("Fields: visited %d, want 1", n)
	}

	// Constructors copy their arguments.
	fs := []ast.Field{ast.Member("x", ast.Null{})}
	o2 := ast.NewObject(fs...)
	fs[0].Name = "y"
	if o2.Get("x") == nil {
		t.Error("NewObject did not copy its arguments")
	}
}

func TestDebugString(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  string
	}{
		{ast.Null{}, "Null"},
		{ast.True, "True"},
		{ast.False, "False"},
		{ast.Int(5), "Number(5)"},
		{ast.Str("a\tb"), `String("a\tb")`},
		{ast.NewArray(ast.Null{}, ast.Null{}), "Array(len=2)"},
		{ast.NewObject(), "Object(len=0)"},
	}
	for _, tc := range tests {
		if got := tc.input.String(); got != tc.want {
			t.Errorf("String: got %q, want %q", got, tc.want)
		}
	}
}
