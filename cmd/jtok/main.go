// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jtok checks, formats, and queries JSON documents.
//
// Usage:
//
//	jtok check FILE...            -- report whether each file is valid JSON
//	jtok fmt [--compact] [FILE]   -- write the formatted value of FILE
//	jtok tokens [FILE]            -- list the tokens of FILE
//	jtok get FILE PATH...         -- write the value at PATH in FILE
//
// Use "--" before a PATH that contains negative offsets, e.g.
//
//	jtok get data.json -- items -1 name
//
// A FILE of "-" or no FILE reads standard input. Default flag values are
// read from .jtok.yaml in the working directory, if it exists, or from the
// file named by --config. Keys in the config file are the flag names in
// snake_case, optionally grouped under the name of a command:
//
//	hujson: true
//	max_size: 1048576
//	fmt:
//	  compact: true
package main

import (
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
)

func main() {
	log.SetPrefix("jtok: ")
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

// defaultConfig is the config file loaded when --config is not set.
const defaultConfig = ".jtok.yaml"

// Globals are the flags shared by all commands.
type Globals struct {
	Config  kong.ConfigFlag `help:"Read default flag values from this YAML file." type:"path"`
	Verbose bool            `help:"Log diagnostic details." short:"v"`
	HuJSON  bool            `name:"hujson" help:"Accept JWCC input (comments and trailing commas)."`
	MaxSize int64           `help:"Reject inputs larger than this many bytes (0 means no limit)." default:"67108864"`
}

type cliArgs struct {
	Globals

	Check  checkCmd  `cmd:"" help:"Report whether each input is valid JSON."`
	Fmt    fmtCmd    `cmd:"" help:"Write the formatted value of the input."`
	Tokens tokensCmd `cmd:"" help:"List the tokens of the input."`
	Get    getCmd    `cmd:"" help:"Write the value at a path in the input."`
}

// env carries the I/O streams and options for one invocation.
type env struct {
	*Globals

	stdin  io.Reader
	stdout io.Writer
	log    *log.Logger
}

func (e *env) vlogf(msg string, args ...any) {
	if e.Verbose {
		e.log.Printf(msg, args...)
	}
}

// run parses args and executes the selected command.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli cliArgs
	e := &env{
		Globals: &cli.Globals,
		stdin:   stdin,
		stdout:  stdout,
		log:     log.New(stderr, "jtok: ", 0),
	}
	parser, err := kong.New(&cli,
		kong.Name("jtok"),
		kong.Description("Check, format, and query JSON documents."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Configuration(yamlLoader, defaultConfig),
		kong.Bind(e),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run()
}
