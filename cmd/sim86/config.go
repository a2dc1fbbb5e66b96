package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Config defines program configuration.
type Config struct {
	Input  string // Binary file to disassemble; "-" reads stdin.
	Output string // Path to store the listing in; stdout if empty.
	Header bool   // Emit a "bits 16" line before the listing?
	Bytes  bool   // Emit the raw bytes of each instruction as a comment.
	Debug  bool   // Pretty-print decoded instruction data to stderr.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Input = "-"
	c.Header = true

	flag.Usage = func() {
		fmt.Printf("%s [options] [binary file]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Output, "out", c.Output, "Output file. Defaults to stdout.")
	flag.BoolVar(&c.Header, "header", c.Header, "Emit a 'bits 16' directive before the listing.")
	flag.BoolVar(&c.Bytes, "bytes", c.Bytes, "Emit the raw bytes of each instruction as a comment.")
	flag.BoolVar(&c.Debug, "debug", c.Debug, "Print decoded instruction data to stderr.")
	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		c.Input = flag.Arg(0)
	}

	// Nothing piped in and no file given: don't sit waiting on the keyboard.
	if c.Input == "-" && term.IsTerminal(int(os.Stdin.Fd())) {
		flag.Usage()
		os.Exit(1)
	}

	return &c
}
