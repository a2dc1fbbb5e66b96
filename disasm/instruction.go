package disasm

import (
	"fmt"
	"strings"

	"github.com/hexaflex/sim86/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	Offset int     // Stream offset of the first instruction byte.
	Bytes  []byte  // Raw encoding.
	Opcode int     // Instruction mnemonic.
	Dst    Operand // Destination operand.
	Src    Operand // Source operand.
}

// Decode decodes the next instruction from the given cursor.
func (i *Instruction) Decode(c *Cursor) error {
	*i = Instruction{Offset: c.Pos()}

	b, err := c.next8()
	if err != nil {
		return i.fail(c, err, "missing opcode")
	}

	t, ok := lookup(b)
	if !ok {
		return i.fail(c, ErrUnknownOpcode, "byte %O", b)
	}

	var mode arch.Mode
	var reg, rm int
	var disp Displacement

	i.Opcode = t.opcode
	if t.modrm {
		second, err := c.next8()
		if err != nil {
			return i.fail(c, err, "opcode %O: missing Mod-Reg-Rm byte", b)
		}

		mode, reg, rm = Fields(second)

		// Group members are told apart by the reg field alone.
		if t.group != nil {
			if i.Opcode, ok = t.group[reg]; !ok {
				return i.fail(c, ErrUnknownOpcode, "byte %O with reg field %d", b, reg)
			}
		}

		disp, err = readDisplacement(c, mode, rm)
		if err != nil {
			return i.fail(c, err, "opcode %O: missing displacement", b)
		}
	}

	if i.Dst, err = decodeOperand(c, t.dst, mode, reg, rm, disp); err != nil {
		return i.fail(c, err, "opcode %O: missing destination data", b)
	}

	if i.Src, err = decodeOperand(c, t.src, mode, reg, rm, disp); err != nil {
		return i.fail(c, err, "opcode %O: missing source data", b)
	}

	if i.Dst.Kind == MemoryOperand && i.Src.Kind == ImmediateOperand {
		i.Src.Explicit = true
	}

	i.Bytes = c.since(i.Offset)
	return nil
}

// fail records the bytes consumed so far and wraps err with instruction context.
func (i *Instruction) fail(c *Cursor, err error, f string, argv ...interface{}) error {
	i.Bytes = c.since(i.Offset)
	instr := *i
	return NewError(&instr, err, f, argv...)
}

// String renders the instruction as assembly text.
func (i *Instruction) String() string {
	name, ok := arch.Name(i.Opcode)
	if !ok {
		name = fmt.Sprintf("%02x", i.Opcode)
	}
	return fmt.Sprintf("%s %s, %s", name, i.Dst, i.Src)
}

// FormatBytes renders raw instruction bytes in octal, e.g. "[0o210][0o300]".
func FormatBytes(p []byte) string {
	var sb strings.Builder
	for _, b := range p {
		fmt.Fprintf(&sb, "[%O]", b)
	}
	return sb.String()
}
