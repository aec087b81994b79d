// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtoken_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/creachadair/jtoken"
	"github.com/creachadair/jtoken/ast"
	"github.com/creachadair/jtoken/internal/testutil"
	"github.com/tidwall/gjson"
)

func benchInput() string {
	g := testutil.NewGen(1)
	var parts []string
	for range 500 {
		parts = append(parts, g.Value(4, 1))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func BenchmarkParse(b *testing.B) {
	input := benchInput()
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Unmarshal", func(b *testing.B) {
		for b.Loop() {
			var v any
			if err := json.Unmarshal([]byte(input), &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("GJSON", func(b *testing.B) {
		for b.Loop() {
			if !gjson.Valid(input) {
				b.Fatal("Invalid input")
			}
		}
	})

	b.Run("Tokenize", func(b *testing.B) {
		for b.Loop() {
			if err := jtoken.Tokenize(input).Err(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Tree", func(b *testing.B) {
		for b.Loop() {
			if _, err := ast.Parse(input); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}

func BenchmarkSkip(b *testing.B) {
	toks := jtoken.Tokenize(benchInput())
	b.ResetTimer()
	for b.Loop() {
		if n := toks.ElementCount(0); n != 500 {
			b.Fatalf("ElementCount: got %d, want 500", n)
		}
	}
}
