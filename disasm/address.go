package disasm

import (
	"fmt"

	"github.com/hexaflex/sim86/arch"
	"github.com/pkg/errors"
)

// Base selects the registers an effective address is computed from.
type Base byte

// Known address bases, in rm encoding order.
const (
	BaseBXSI Base = iota // [bx + si]
	BaseBXDI             // [bx + di]
	BaseBPSI             // [bp + si]
	BaseBPDI             // [bp + di]
	BaseSI               // [si]
	BaseDI               // [di]
	BaseBP               // [bp]
	BaseBX               // [bx]
	Direct               // [d16]
)

var baseNames = [...]string{
	"bx + si",
	"bx + di",
	"bp + si",
	"bp + di",
	"si",
	"di",
	"bp",
	"bx",
}

// EffectiveAddress defines a memory operand.
type EffectiveAddress struct {
	Base Base
	Disp Displacement
}

// newEffectiveAddress returns the memory operand selected by mode and rm.
func newEffectiveAddress(mode arch.Mode, rm int, disp Displacement) EffectiveAddress {
	if rm < 0 || rm > 7 {
		panic(errors.Wrapf(arch.ErrInvalidField, "rm %d", rm))
	}

	if mode == arch.MemoryNoDisplacement && rm == arch.DirectAddressRM {
		return EffectiveAddress{Base: Direct, Disp: disp}
	}
	return EffectiveAddress{Base: Base(rm), Disp: disp}
}

func (ea EffectiveAddress) String() string {
	if ea.Base == Direct {
		return fmt.Sprintf("[%d]", uint16(ea.Disp.Value))
	}
	return "[" + baseNames[ea.Base] + ea.Disp.String() + "]"
}
