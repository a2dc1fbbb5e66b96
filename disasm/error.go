package disasm

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Decode error conditions. Errors returned by the decoder wrap one of these.
var (
	// ErrUnexpectedEnd means the input ended inside an instruction.
	// Instruction boundaries are unknown past this point, so decoding stops.
	ErrUnexpectedEnd = errors.New("unexpected end of input")

	// ErrUnknownOpcode means the first byte does not match a known template.
	// The decoder resumes at the following byte.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// Error defines a decode error for a single instruction.
type Error struct {
	*Instruction       // Partially decoded instruction.
	Err          error // Underlying condition.
	Msg          string
}

// NewError creates a new, formatted error message for the given instruction.
func NewError(instr *Instruction, err error, f string, argv ...interface{}) *Error {
	return &Error{
		Instruction: instr,
		Err:         err,
		Msg:         fmt.Sprintf(f, argv...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %v: %s", e.Offset, e.Err, e.Msg)
}

// Cause returns the underlying condition.
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying condition.
func (e *Error) Unwrap() error { return e.Err }

// ErrorSet defines a list of one or more errors and is itself an error.
type ErrorSet []error

func (e ErrorSet) Len() int {
	return len(e)
}

func (e *ErrorSet) Append(args ...error) {
	*e = append(*e, args...)
}

func (e ErrorSet) Error() string {
	var sb strings.Builder
	for _, err := range e {
		sb.WriteString(err.Error() + "\n")
	}
	return sb.String()
}
