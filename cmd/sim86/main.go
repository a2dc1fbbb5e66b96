package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/hexaflex/sim86/disasm"
	"github.com/k0kubun/pp/v3"
	"github.com/pkg/errors"
)

func main() {
	config := parseArgs()

	data, err := readInput(config.Input)
	if err != nil {
		log.Fatal(err)
	}

	w, close := makeWriter(config)
	defer close()

	if config.Header {
		fmt.Fprintln(w, "bits 16")
	}

	skipped, err := disasm.Disassemble(w, data, makeTrace(config, w))
	if err != nil {
		close()
		log.Fatal(err)
	}

	if skipped.Len() > 0 {
		log.Printf("%d unknown opcode(s) skipped", skipped.Len())
	}
}

// readInput loads the whole input file, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := ioutil.ReadAll(os.Stdin)
		return data, errors.Wrapf(err, "read stdin")
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read file %q", path)
	}
	return data, nil
}

// makeTrace creates the per-instruction debug handler requested by the config.
func makeTrace(c *Config, w io.Writer) disasm.TraceFunc {
	if !c.Bytes && !c.Debug {
		return nil
	}

	return func(instr *disasm.Instruction) {
		if c.Debug {
			pp.Fprintln(os.Stderr, instr)
		}
		if c.Bytes {
			fmt.Fprintf(w, "; %04x %s\n", instr.Offset, disasm.FormatBytes(instr.Bytes))
		}
	}
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
