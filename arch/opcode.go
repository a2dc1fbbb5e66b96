// Package arch defines the 8086 vocabulary shared by the decoder and the
// simulator: mnemonics, registers, addressing modes and operand widths.
package arch

import "strings"

// Known mnemonics.
const (
	MOV = iota
	ADD
	SUB
	CMP
	JNZ
)

var mnemonics = [...]string{
	MOV: "mov",
	ADD: "add",
	SUB: "sub",
	CMP: "cmp",
	JNZ: "jnz",
}

// Opcode returns the mnemonic id for the given instruction name.
// Returns false if the name is not recognized.
func Opcode(name string) (int, bool) {
	name = strings.ToLower(name)
	for i, v := range mnemonics {
		if v == name {
			return i, true
		}
	}
	return 0, false
}

// Name returns the name for the given mnemonic id.
// Returns false if the id is not recognized.
func Name(opcode int) (string, bool) {
	if opcode < 0 || opcode >= len(mnemonics) {
		return "", false
	}
	return mnemonics[opcode], true
}

// Argc returns the number of operands the given instruction requires.
// Returns -1 if the opcode is not recognized.
func Argc(opcode int) int {
	switch opcode {
	case MOV, ADD, SUB, CMP:
		return 2
	case JNZ:
		return 1
	}
	return -1
}
