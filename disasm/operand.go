package disasm

import (
	"fmt"
	"strconv"

	"github.com/hexaflex/sim86/arch"
)

// OperandKind defines what an operand refers to.
type OperandKind byte

// Known operand kinds.
const (
	NoOperand        OperandKind = iota
	RegisterOperand              // General purpose register.
	SegmentOperand               // Segment register.
	MemoryOperand                // Effective address.
	ImmediateOperand             // Constant embedded in the instruction.
)

// Operand defines a decoded instruction operand.
type Operand struct {
	Kind      OperandKind
	Width     arch.Width       // Size of the referenced value.
	Register  arch.Register    // Set for RegisterOperand.
	Segment   arch.Segment     // Set for SegmentOperand.
	Address   EffectiveAddress // Set for MemoryOperand.
	Immediate int              // Set for ImmediateOperand.
	Explicit  bool             // Render the width in front of an immediate.
}

func (o Operand) String() string {
	switch o.Kind {
	case RegisterOperand:
		return o.Register.String()
	case SegmentOperand:
		return o.Segment.String()
	case MemoryOperand:
		return o.Address.String()
	case ImmediateOperand:
		if o.Explicit {
			return fmt.Sprintf("%s %d", o.Width, o.Immediate)
		}
		return strconv.Itoa(o.Immediate)
	}
	return ""
}

func registerOperand(r arch.Register) Operand {
	return Operand{Kind: RegisterOperand, Width: r.Width(), Register: r}
}

// shape describes where an operand comes from in the instruction encoding.
type shape byte

const (
	shapeNone      shape = iota
	shapeReg             // Register selected by the reg field.
	shapeRM              // Register or memory selected by mode and rm.
	shapeSegment         // Segment register selected by the reg field.
	shapeFixed           // Register implied by the opcode.
	shapeImmediate       // Data following the instruction.
	shapeDirect          // 16-bit address following the opcode.
)

// operandSpec is the unresolved form of an operand in the opcode table.
type operandSpec struct {
	shape      shape
	width      arch.Width
	fixed      arch.Register
	signExtend bool // 8-bit immediate widened to the operand width.
}

// data returns the unread value expected for immediate and direct operands.
func (s operandSpec) data() Displacement {
	if s.shape == shapeDirect || (s.width == arch.Word && !s.signExtend) {
		return Displacement{Kind: Unread16}
	}
	return Displacement{Kind: Unread8}
}

// resolve turns a register or memory operandSpec into an Operand.
// The operand shape decides whether reg or rm supplies the register index;
// the addressing mode is only consulted for rm operands.
func resolve(s operandSpec, mode arch.Mode, reg, rm int, disp Displacement) Operand {
	switch s.shape {
	case shapeReg:
		return registerOperand(arch.LookupRegister(reg, s.width))
	case shapeFixed:
		return registerOperand(s.fixed)
	case shapeSegment:
		return Operand{Kind: SegmentOperand, Width: arch.Word, Segment: arch.LookupSegment(reg & 3)}
	case shapeRM:
		if mode == arch.RegisterDirect {
			return registerOperand(arch.LookupRegister(rm, s.width))
		}
		return Operand{
			Kind:    MemoryOperand,
			Width:   s.width,
			Address: newEffectiveAddress(mode, rm, disp),
		}
	}
	return Operand{}
}

// decodeOperand resolves the operand, reading any trailing data it carries.
func decodeOperand(c *Cursor, s operandSpec, mode arch.Mode, reg, rm int, disp Displacement) (Operand, error) {
	switch s.shape {
	case shapeImmediate:
		d, err := s.data().read(c)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Kind: ImmediateOperand, Width: s.width, Immediate: int(d.Value)}, nil

	case shapeDirect:
		d, err := s.data().read(c)
		if err != nil {
			return Operand{}, err
		}
		return Operand{
			Kind:    MemoryOperand,
			Width:   s.width,
			Address: EffectiveAddress{Base: Direct, Disp: d},
		}, nil
	}
	return resolve(s, mode, reg, rm, disp), nil
}
