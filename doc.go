// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jtoken implements a JSON scanner and a flat token representation
// of JSON values.
//
// # Scanning
//
// The Scan function runs a strict RFC 8259 state machine over its input,
// and reports the structure of the value it finds by calling methods on a
// Handler. In case of malformed input, scanning stops and an error of
// concrete type *jtoken.SyntaxError is returned. If a Handler method reports
// an error, scanning stops and that error is returned.
//
//	if err := jtoken.Scan(mem.S(input), handler); err != nil {
//	   log.Fatalf("Scan failed: %v", err)
//	}
//
// The methods of a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	name       | Name                      | "key" (before the colon)
//	literal    | Literal                   | true, false, null
//	number     | Number                    | -1.5e3
//	string     | String                    | "text"
//
// Positions and spans are byte offsets into the input. The span of a name or
// string includes its quotation marks. The scanner ensures that corresponding
// Begin and End methods are correctly paired, or that a SyntaxError is
// reported.
//
// # Tokens
//
// Tokenize scans its input into a Tokens value, a flat sequence of tagged
// positions. Each scalar contributes one token (null, true, false) or two
// (the first and last byte of a number, or the quotes of a string or name),
// and each container contributes a token at each of its delimiters. Once
// constructed, a token stream can be navigated without re-scanning:
//
//	t := jtoken.Tokenize(input)
//	if err := t.Err(); err != nil {
//	   log.Fatalf("Invalid input: %v", err)
//	}
//	if i := t.FieldIndex(0, "name"); i >= 0 {
//	   fmt.Println(t.StringValue(i))
//	}
//
// The tree parser in package ast is driven by the same scanner.
package jtoken
