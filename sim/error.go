package sim

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrStepLimit is returned by CPU.Run when the program does not end in time.
var ErrStepLimit = errors.New("step limit exceeded")

// Position defines the source position of an instruction.
type Position struct {
	File string // File in which the instruction was defined.
	Line int    // Line number at which the instruction was defined.
	Col  int    // Column number at which the offending text starts.
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Error defines a parse error with source context.
type Error struct {
	Pos Position
	Msg string
}

// NewError creates a new, formatted error message with the given source context.
func NewError(pos Position, f string, argv ...interface{}) *Error {
	return &Error{
		Pos: pos,
		Msg: fmt.Sprintf(f, argv...),
	}
}

func (e *Error) Error() string {
	return e.Pos.String() + " " + e.Msg
}

// ExecError defines a runtime error.
type ExecError struct {
	*Instruction
	IP  int
	Msg string
}

// NewExecError creates a new, formatted error message for the instruction at ip.
func NewExecError(instr *Instruction, ip int, f string, argv ...interface{}) *ExecError {
	return &ExecError{
		Instruction: instr,
		IP:          ip,
		Msg:         fmt.Sprintf(f, argv...),
	}
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: ip %d: %s", e.Pos, e.IP, e.Msg)
}
