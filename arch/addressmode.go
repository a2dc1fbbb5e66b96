package arch

// Mode defines the addressing mode held in the top two bits of a Mod-Reg-Rm byte.
type Mode byte

// Known addressing modes.
const (
	MemoryNoDisplacement    Mode = 0 // x = [bx + si]
	Memory8BitDisplacement  Mode = 1 // x = [bx + si + d8]
	Memory16BitDisplacement Mode = 2 // x = [bx + si + d16]
	RegisterDirect          Mode = 3 // x = bx
)

// DirectAddressRM is the rm value which, combined with MemoryNoDisplacement,
// selects a 16-bit direct address instead of [bp].
const DirectAddressRM = 6

// DisplacementSize returns the number of bytes following the Mod-Reg-Rm byte
// for the given mode and rm field.
func (m Mode) DisplacementSize(rm int) int {
	switch m {
	case MemoryNoDisplacement:
		if rm == DirectAddressRM {
			return 2
		}
		return 0
	case Memory8BitDisplacement:
		return 1
	case Memory16BitDisplacement:
		return 2
	}
	return 0
}

func (m Mode) String() string {
	switch m {
	case MemoryNoDisplacement:
		return "MemoryNoDisplacement"
	case Memory8BitDisplacement:
		return "Memory8BitDisplacement"
	case Memory16BitDisplacement:
		return "Memory16BitDisplacement"
	case RegisterDirect:
		return "RegisterDirect"
	}
	return ""
}
