package disasm

import "github.com/hexaflex/sim86/arch"

// Fields splits a Mod-Reg-Rm byte into its addressing mode (top two bits),
// reg/segment selector (middle three bits) and rm selector (low three bits).
func Fields(b byte) (mode arch.Mode, reg, rm int) {
	return arch.Mode(b >> 6), int(b>>3) & 7, int(b) & 7
}
