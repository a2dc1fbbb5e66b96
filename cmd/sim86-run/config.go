package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Program    string // Path to the source file to execute.
	PrintTrace bool   // Print each instruction as it executes?
	MaxSteps   int    // Execution bound; 0 disables it.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.MaxSteps = 1000000

	flag.Usage = func() {
		fmt.Printf("%s [options] <source file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print each instruction as it executes.")
	flag.IntVar(&c.MaxSteps, "max-steps", c.MaxSteps, "Maximum number of instructions to execute. 0 means no limit.")
	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	c.Program = flag.Arg(0)
	return &c
}
