// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtoken

import (
	"errors"
	"strings"

	"github.com/creachadair/jtoken/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(AppendQuote(nil, src, false)) }

// QuoteStrict is like Quote, but additionally escapes every rune above U+FFFF
// as a surrogate pair of \u escapes, so that the result uses only characters
// from the Basic Multilingual Plane.
func QuoteStrict(src string) string { return string(AppendQuote(nil, src, true)) }

// AppendQuote appends the quoted JSON encoding of src to dst and returns the
// extended slice. If strict is true, quoting is as for QuoteStrict.
func AppendQuote(dst []byte, src string, strict bool) []byte {
	dst = append(dst, '"')
	dst = escape.Append(dst, mem.S(src), strict)
	return append(dst, '"')
}

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes and unpaired surrogates are replaced by the Unicode
// replacement rune. Unquote reports an error for an incomplete escape
// sequence.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.S(src[1 : len(src)-1]))
}
