// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/creachadair/jtoken"
	"github.com/creachadair/jtoken/ast"
	"github.com/creachadair/jtoken/cursor"
	"github.com/tailscale/hujson"
)

type checkCmd struct {
	Files []string `arg:"" optional:"" name:"file" help:"Input files (default stdin)."`
}

func (c *checkCmd) Run(e *env) error {
	files := c.Files
	if len(files) == 0 {
		files = []string{"-"}
	}
	var nbad int
	for _, name := range files {
		data, err := e.readInput(name)
		if err != nil {
			return err
		}
		toks := jtoken.TokenizeBytes(data)
		if err := toks.Err(); err != nil {
			nbad++
			fmt.Fprintln(e.stdout, e.syntaxError(name, err))
			continue
		}
		e.vlogf("%s: valid, %d tokens", name, toks.Len())
	}
	if nbad != 0 {
		return fmt.Errorf("%d of %d inputs are not valid JSON", nbad, len(files))
	}
	return nil
}

type fmtCmd struct {
	Compact bool   `help:"Write compact output with no whitespace."`
	Strict  bool   `help:"Escape all runes outside the Basic Multilingual Plane."`
	File    string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *fmtCmd) Run(e *env) error {
	data, err := e.readInput(c.File)
	if err != nil {
		return err
	}
	v, err := ast.ParseBytes(data)
	if err != nil {
		return e.syntaxError(c.File, err)
	}
	buf := ast.FormatOptions{Compact: c.Compact, Strict: c.Strict}.Append(nil, v)
	_, err = e.stdout.Write(append(buf, '\n'))
	return err
}

type tokensCmd struct {
	File string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *tokensCmd) Run(e *env) error {
	data, err := e.readInput(c.File)
	if err != nil {
		return err
	}
	toks := jtoken.TokenizeBytes(data)
	for i := range toks.Len() {
		loc := jtoken.Locate(toks.Text(), toks.Pos(i))
		fmt.Fprintf(e.stdout, "%d\t%v\t%d\t%v\n", i, toks.Tag(i), toks.Pos(i), loc)
	}
	e.vlogf("%d tokens", toks.Len())
	if err := toks.Err(); err != nil {
		return e.syntaxError(c.File, err)
	}
	return nil
}

type getCmd struct {
	Raw    bool     `help:"Write a string value as its decoded text."`
	Pretty bool     `help:"Write the value in indented form."`
	File   string   `arg:"" help:"Input file, or - for stdin."`
	Path   []string `arg:"" optional:"" help:"Path elements: an integer is an offset, anything else is a key."`
}

func (c *getCmd) Run(e *env) error {
	data, err := e.readInput(c.File)
	if err != nil {
		return err
	}
	toks := jtoken.TokenizeBytes(data)
	if err := toks.Err(); err != nil {
		return e.syntaxError(c.File, err)
	}
	path := make([]any, len(c.Path))
	for i, elt := range c.Path {
		if z, err := strconv.Atoi(elt); err == nil {
			path[i] = z
		} else {
			path[i] = elt
		}
	}
	i, err := cursor.Find(toks, path...)
	if err != nil {
		return err
	}

	var out string
	switch {
	case c.Raw && toks.Tag(i) == jtoken.StringBegin:
		out = toks.StringValue(i)
	case c.Pretty:
		out = ast.FormatToString(ast.FromTokens(toks, i))
	default:
		out = toks.ValueString(i)
	}
	_, err = fmt.Fprintln(e.stdout, out)
	return err
}

// readInput reads the contents of the named file, or stdin if name is "" or
// "-", subject to the size limit and input format options.
func (e *env) readInput(name string) ([]byte, error) {
	var r io.Reader = e.stdin
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}
	if e.MaxSize > 0 {
		r = io.LimitReader(r, e.MaxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if e.MaxSize > 0 && int64(len(data)) > e.MaxSize {
		return nil, fmt.Errorf("%s: input exceeds %d bytes", name, e.MaxSize)
	}
	e.vlogf("read %d bytes from %s", len(data), name)
	if e.HuJSON {
		data, err = hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return data, nil
}

// syntaxError decorates err with the input name and the line and column of
// the error, if it is a *jtoken.SyntaxError.
func (e *env) syntaxError(name string, err error) error {
	if name == "" || name == "-" {
		name = "stdin"
	}
	var serr *jtoken.SyntaxError
	if errors.As(err, &serr) {
		return fmt.Errorf("%s:%v: %w", name, serr.Location, err)
	}
	return fmt.Errorf("%s: %w", name, err)
}
