// Package disasm decodes 8086 machine code into assembly text.
package disasm

import (
	"fmt"
	"io"
	"log"

	"github.com/pkg/errors"
)

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*Instruction)

// Decoder streams instructions out of a byte buffer.
type Decoder struct {
	cursor *Cursor
	trace  TraceFunc
}

// NewDecoder creates a decoder for the given buffer.
// Optionally with the given debug trace handler.
func NewDecoder(data []byte, trace TraceFunc) *Decoder {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}

	return &Decoder{
		cursor: NewCursor(data),
		trace:  trace,
	}
}

// Pos returns the offset of the next instruction.
func (d *Decoder) Pos() int {
	return d.cursor.Pos()
}

// Step decodes the next instruction.
//
// Returns io.EOF once the input is exhausted. Errors wrapping ErrUnknownOpcode
// are recoverable: the decoder has already moved one byte past the start of the
// failed instruction and the next Step continues from there. Any other error
// leaves the stream in an unknown state.
func (d *Decoder) Step() (*Instruction, error) {
	if d.cursor.Done() {
		return nil, io.EOF
	}

	instr := new(Instruction)
	if err := instr.Decode(d.cursor); err != nil {
		if errors.Is(err, ErrUnknownOpcode) {
			d.cursor.Seek(instr.Offset + 1)
		}
		return nil, err
	}

	d.trace(instr)
	return instr, nil
}

// Disassemble decodes data and writes one line of assembly per instruction to w.
//
// Unknown opcodes are logged, skipped and returned in the error set.
// The error is non-nil if the input ends inside an instruction or w fails.
func Disassemble(w io.Writer, data []byte, trace TraceFunc) (ErrorSet, error) {
	var skipped ErrorSet
	dec := NewDecoder(data, trace)

	for {
		instr, err := dec.Step()
		switch {
		case err == io.EOF:
			return skipped, nil
		case errors.Is(err, ErrUnknownOpcode):
			log.Println(err)
			skipped.Append(err)
			continue
		case err != nil:
			return skipped, err
		}

		if _, err := fmt.Fprintln(w, instr); err != nil {
			return skipped, errors.Wrapf(err, "write instruction at %04x", instr.Offset)
		}
	}
}
