package sim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hexaflex/sim86/arch"
)

// AddressMode defines instruction operand address modes.
type AddressMode byte

// Known address modes.
const (
	Immediate AddressMode = iota // x = 123
	Register                     // x = bx
	Indirect                     // x = word [bp + 4]
)

// Operand defines a parsed instruction operand.
type Operand struct {
	Mode     AddressMode
	Register arch.Register   // Register mode only.
	Base     []arch.Register // Indirect mode: registers summed into the address.
	Value    int             // Immediate value or memory offset.
}

func (op Operand) String() string {
	switch op.Mode {
	case Register:
		return op.Register.String()
	case Indirect:
		var sb strings.Builder
		sb.WriteString("word [")
		for i, r := range op.Base {
			if i > 0 {
				sb.WriteString(" + ")
			}
			sb.WriteString(r.String())
		}
		switch {
		case len(op.Base) == 0:
			sb.WriteString(strconv.Itoa(op.Value))
		case op.Value < 0:
			fmt.Fprintf(&sb, " - %d", -op.Value)
		case op.Value > 0:
			fmt.Fprintf(&sb, " + %d", op.Value)
		}
		sb.WriteString("]")
		return sb.String()
	}
	return strconv.Itoa(op.Value)
}

// Instruction defines a parsed instruction.
type Instruction struct {
	Pos    Position   // Source position.
	Opcode int        // Instruction mnemonic.
	Args   [2]Operand // Operands; only the first arch.Argc(Opcode) are set.
}

func (i *Instruction) String() string {
	name, ok := arch.Name(i.Opcode)
	if !ok {
		name = fmt.Sprintf("%02x", i.Opcode)
	}

	var sb strings.Builder
	sb.WriteString(name)
	for j := 0; j < arch.Argc(i.Opcode); j++ {
		if j > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" " + i.Args[j].String())
	}
	return sb.String()
}
