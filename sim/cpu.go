// Package sim executes a textual subset of 8086 assembly against a simple
// register, flag and memory model.
package sim

import (
	"fmt"
	"io"
	"strings"

	"github.com/hexaflex/sim86/arch"
	"github.com/pkg/errors"
)

// TraceFunc represents a callback handler for debug trace output.
// It is called with the instruction pointer before each instruction executes.
type TraceFunc func(ip int, instr *Instruction)

// CPU implements the runtime.
type CPU struct {
	trace     TraceFunc     // Handler for debug trace output.
	program   []Instruction // Loaded program.
	memory    Memory        // System memory.
	registers [8]int16      // Word registers, in encoding order.
	flags     Flags         // Condition flags.
	ip        int           // Index of the next instruction.
	count     int           // Number of executed instructions.
}

// New creates a new CPU.
// Optionally with the given debug trace handler.
func New(trace TraceFunc) *CPU {
	if trace == nil {
		trace = func(int, *Instruction) { /* nop */ }
	}

	return &CPU{
		trace:  trace,
		memory: make(Memory, MemoryCapacity),
	}
}

// Load resets the CPU state and loads the given program.
func (c *CPU) Load(program []Instruction) {
	c.program = program
	c.registers = [8]int16{}
	c.flags = 0
	c.ip = 0
	c.count = 0
	for i := range c.memory {
		c.memory[i] = 0
	}
}

// Memory returns the cpu's memory bank.
func (c *CPU) Memory() Memory {
	return c.memory
}

// Register returns the value of the given word register.
func (c *CPU) Register(r arch.Register) int16 {
	return c.registers[r.Index()]
}

// Flags returns the current condition flags.
func (c *CPU) Flags() Flags {
	return c.flags
}

// IP returns the index of the next instruction.
func (c *CPU) IP() int {
	return c.ip
}

// Count returns the number of executed instructions.
func (c *CPU) Count() int {
	return c.count
}

// Run executes the program until it ends.
// A maxSteps value > 0 bounds the number of executed instructions.
func (c *CPU) Run(maxSteps int) error {
	for steps := 0; ; steps++ {
		if maxSteps > 0 && steps >= maxSteps && c.ip < len(c.program) {
			return errors.Wrapf(ErrStepLimit, "after %d instructions", steps)
		}

		switch err := c.Step(); err {
		case nil:
		case io.EOF:
			return nil
		default:
			return err
		}
	}
}

// Step performs a single execution step.
// Returns io.EOF if the program has reached its end.
func (c *CPU) Step() error {
	if c.ip >= len(c.program) {
		return io.EOF
	}

	instr := &c.program[c.ip]
	a, b := &instr.Args[0], &instr.Args[1]
	next := c.ip + 1

	c.trace(c.ip, instr)

	switch instr.Opcode {
	case arch.MOV:
		c.store(a, c.load(b))
	case arch.ADD:
		v := c.load(a) + c.load(b)
		c.store(a, v)
		c.flags = flagsFor(v)
	case arch.SUB:
		v := c.load(a) - c.load(b)
		c.store(a, v)
		c.flags = flagsFor(v)
	case arch.CMP:
		c.flags = flagsFor(c.load(a) - c.load(b))
	case arch.JNZ:
		if !c.flags.Zero() {
			next += a.Value
		}
		if next < 0 || next > len(c.program) {
			return NewExecError(instr, c.ip, "jump target %d outside program", next)
		}
	default:
		return NewExecError(instr, c.ip, "unsupported instruction")
	}

	c.ip = next
	c.count++
	return nil
}

// load returns the value referenced by the operand.
func (c *CPU) load(op *Operand) int16 {
	switch op.Mode {
	case Register:
		return c.registers[op.Register.Index()]
	case Indirect:
		return c.memory.Word(c.address(op))
	}
	return int16(op.Value)
}

// store sets the value referenced by the operand.
func (c *CPU) store(op *Operand, v int16) {
	switch op.Mode {
	case Register:
		c.registers[op.Register.Index()] = v
	case Indirect:
		c.memory.SetWord(c.address(op), v)
	}
}

// address computes the effective address of a memory operand.
func (c *CPU) address(op *Operand) int {
	addr := uint16(op.Value)
	for _, r := range op.Base {
		addr += uint16(c.registers[r.Index()])
	}
	return int(addr)
}

// String returns a human-readable dump of the cpu state.
func (c *CPU) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "instruction count: %d\n", c.count)
	fmt.Fprintf(&sb, "instruction pointer: %d\n", c.ip)
	fmt.Fprintf(&sb, "registers:\n")
	for i, v := range c.registers {
		fmt.Fprintf(&sb, "%s %d\n", arch.LookupRegister(i, arch.Word), v)
	}
	fmt.Fprintf(&sb, "flags:\n")
	fmt.Fprintf(&sb, "Z %t\n", c.flags.Zero())
	fmt.Fprintf(&sb, "S %t\n", c.flags.Sign())
	return sb.String()
}
