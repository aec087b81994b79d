// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"github.com/creachadair/jtoken"
	"github.com/creachadair/jtoken/ast"
	"github.com/google/go-cmp/cmp"
)

const episodesJSON = `{
  "episodes": [
    {"episode": 1, "summary": "Pilot", "hasDetail": false},
    {"episode": 2, "summary": "The \"big\" one!", "hasDetail": true, "rating": 4.5},
    {"episode": 3, "summary": null, "hasDetail": true, "tags": []}
  ],
  "count": 3
}`

func TestParse(t *testing.T) {
	v := mustParse(t, episodesJSON)

	root, ok := v.(*ast.Object)
	if !ok {
		t.Fatalf("Root is %T, not object", v)
	}
	lst, ok := root.Get("episodes").(*ast.Array)
	if !ok {
		t.Fatalf("Member value is %T, not array", root.Get("episodes"))
	} else if lst.Len() != 3 {
		t.Fatalf("Array has %d elements, want 3", lst.Len())
	}
	elt, _ := lst.At(1)
	obj, ok := elt.(*ast.Object)
	if !ok {
		t.Fatalf("Array entry is %T, not object", elt)
	}
	check(t, obj, "summary", func(s *ast.String) {
		if got, want := s.Value(), `The "big" one!`; got != want {
			t.Errorf("String value: got %q, want %q", got, want)
		}
	})
	check(t, obj, "episode", func(v *ast.Number) {
		if !v.IsInt() {
			t.Errorf("Number %s should be recognized as integer", v.JSON())
		}
	})
	check(t, obj, "rating", func(v *ast.Number) {
		if v.IsInt() || v.AsFloat() != 4.5 {
			t.Errorf("Number %s: IsInt=%v, value %v", v.JSON(), v.IsInt(), v.AsFloat())
		}
	})
	check(t, obj, "hasDetail", func(v ast.Bool) {
		if !v.Value() {
			t.Errorf("Bool value: got %v, want true", v)
		}
	})

	last, err := ast.Path(v, "episodes", -1)
	if err != nil {
		t.Fatalf("Path: unexpected error: %v", err)
	}
	check(t, last.(*ast.Object), "summary", func(ast.Null) {})
	check(t, last.(*ast.Object), "tags", func(a *ast.Array) {
		if a.Len() != 0 {
			t.Errorf("Tags: got %d elements, want 0", a.Len())
		}
	})
}

func check[T ast.Value](t *testing.T, obj *ast.Object, key string, f func(T)) {
	t.Helper()
	if v := obj.Get(key); v == nil {
		t.Fatalf("Key %q not found", key)
	} else if tv, ok := v.(T); !ok {
		var zero T
		t.Fatalf("Key %q value is %T, not %T", key, v, zero)
	} else if f != nil {
		f(tv)
	}
}

func TestLoneSurrogate(t *testing.T) {
	const input = `["\ud800", "x\udc00y", "\ud83d\u0041", "\ud83d\ude00"]`
	v := mustParse(t, input)

	want := []string{"\ufffd", "x\ufffdy", "\ufffdA", "😀"}
	var got []string
	for elt := range v.Values() {
		s, err := elt.StringValue()
		if err != nil {
			t.Fatalf("StringValue: unexpected error: %v", err)
		}
		if !utf8.ValidString(s) {
			t.Errorf("StringValue: %q is not valid UTF-8", s)
		}
		got = append(got, s)
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Decoded strings (-got, +want):\n%s", diff)
	}
	if elt, _ := v.At(0); !elt.Equal(ast.Str("\ufffd")) {
		t.Errorf("Equal: %v should equal a string of U+FFFD", elt)
	}

	// The source spelling survives unless strict quoting is requested.
	if got, want := v.JSON(), `["\ud800","x\udc00y","\ud83d\u0041","\ud83d\ude00"]`; got != want {
		t.Errorf("JSON: got %s, want %s", got, want)
	}
	strict := ast.FormatOptions{Compact: true, Strict: true}
	if got, want := string(strict.Append(nil, v)), `["\ufffd","x\ufffdy","\ufffdA","\ud83d\ude00"]`; got != want {
		t.Errorf("Strict: got %s, want %s", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{"", 0},
		{"[1,]", 3},
		{`{"a" 1}`, 5},
		{"[1] x", 4},
		{`{"ok": tru}`, 10},
		{"\"a\x00\"", 2},
		{"[\n\n  }", 5},
	}
	for _, tc := range tests {
		v, err := ast.Parse(tc.input)
		if err == nil {
			t.Errorf("Parse %q: got %v, want error", tc.input, v)
			continue
		}
		var serr *jtoken.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %q: error is %T, not *SyntaxError", tc.input, err)
		} else if serr.Offset != tc.offset {
			t.Errorf("Parse %q: error at offset %d, want %d", tc.input, serr.Offset, tc.offset)
		}
		if v != nil {
			t.Errorf("Parse %q: got value %v with error", tc.input, v)
		}
	}
}

func TestRead(t *testing.T) {
	v, err := ast.Read(strings.NewReader(`  {"a": [1, 2, 3]}  `))
	if err != nil {
		t.Fatalf("Read: unexpected error: %v", err)
	}
	if got, want := v.JSON(), `{"a":[1,2,3]}`; got != want {
		t.Errorf("Read: got %s, want %s", got, want)
	}

	werr := errors.New("bogus")
	if _, err := ast.Read(iotest.ErrReader(werr)); !errors.Is(err, werr) {
		t.Errorf("Read: got error %v, want %v", err, werr)
	}
}

func TestParseBytes(t *testing.T) {
	buf := []byte(`["abc", 125, {"xA": "y"}]`)
	v, err := ast.ParseBytes(buf)
	if err != nil {
		t.Fatalf("ParseBytes: unexpected error: %v", err)
	}
	if got, err := ast.Path(v, 2, "xA"); err != nil || !got.Equal(ast.Str("y")) {
		t.Errorf("Path: got (%v, %v), want y", got, err)
	}
	if got, want := v.JSON(), `["abc",125,{"xA":"y"}]`; got != want {
		t.Errorf("JSON: got %s, want %s", got, want)
	}
}

func TestFromTokens(t *testing.T) {
	inputs := []string{
		`null`, `false`, `-3.2e5`, `"a\nb"`, `[]`, `{}`,
		episodesJSON,
		`[[1, [2, [3]]], {"a": {"b": {}}}, "zé"]`,
	}
	for _, input := range inputs {
		toks := jtoken.Tokenize(input)
		if err := toks.Err(); err != nil {
			t.Fatalf("Tokenize %q: %v", input, err)
		}
		want := mustParse(t, input)
		got := ast.FromTokens(toks, 0)
		if diff := cmp.Diff(got, want); diff != "" {
			t.Errorf("FromTokens %q (-got, +want):\n%s", input, diff)
		}
		if got.JSON() != want.JSON() {
			t.Errorf("JSON: got %s, want %s", got.JSON(), want.JSON())
		}
	}

	// A value nested inside the stream.
	toks := jtoken.Tokenize(episodesJSON)
	i := toks.FieldIndex(0, "count")
	if got := ast.FromTokens(toks, i); !got.Equal(ast.Int(3)) {
		t.Errorf("FromTokens(count): got %v, want 3", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	v := mustParse(t, `["a\tb", 1.5e3, {"kA": "é"}, 17]`)

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 100 {
				if s := v.Get("x"); s != nil {
					t.Errorf("Get on array: got %v", s)
				}
				s, _ := ast.Path(v, 0)
				if got := s.AsString(); got != "a\tb" {
					t.Errorf("String: got %q", got)
				}
				n, _ := ast.Path(v, 1)
				if got := n.AsFloat(); got != 1500 {
					t.Errorf("Number: got %v", got)
				}
				e, _ := ast.Path(v, 2, "kA")
				if got := e.AsString(); got != "é" {
					t.Errorf("Field: got %q", got)
				}
				if g := v.Hash(); g == 0 {
					t.Error("Hash is zero")
				}
			}
		})
	}
	wg.Wait()
}
