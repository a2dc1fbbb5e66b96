package disasm

import "github.com/hexaflex/sim86/arch"

// template describes how the bytes following an opcode are decoded.
type template struct {
	opcode int         // Mnemonic, unless group is set.
	group  map[int]int // Mnemonic per reg field value.
	modrm  bool        // A Mod-Reg-Rm byte follows the opcode.
	dst    operandSpec
	src    operandSpec
}

// table maps the first instruction byte to its template.
var table [256]*template

// Mnemonics selected by the reg field of the immediate group opcodes.
var (
	arithmeticGroup = map[int]int{0: arch.ADD, 5: arch.SUB, 7: arch.CMP}
	movGroup        = map[int]int{0: arch.MOV}
)

func regSpec(w arch.Width) operandSpec    { return operandSpec{shape: shapeReg, width: w} }
func rmSpec(w arch.Width) operandSpec     { return operandSpec{shape: shapeRM, width: w} }
func immSpec(w arch.Width) operandSpec    { return operandSpec{shape: shapeImmediate, width: w} }
func directSpec(w arch.Width) operandSpec { return operandSpec{shape: shapeDirect, width: w} }

func fixedSpec(r arch.Register) operandSpec {
	return operandSpec{shape: shapeFixed, width: r.Width(), fixed: r}
}

func init() {
	// r/m <-> reg forms. Bit 1 is the direction, bit 0 the width.
	for base, opcode := range map[int]int{
		0o000: arch.ADD,
		0o050: arch.SUB,
		0o070: arch.CMP,
		0o210: arch.MOV,
	} {
		table[base+0] = &template{opcode: opcode, modrm: true, dst: rmSpec(arch.Byte), src: regSpec(arch.Byte)}
		table[base+1] = &template{opcode: opcode, modrm: true, dst: rmSpec(arch.Word), src: regSpec(arch.Word)}
		table[base+2] = &template{opcode: opcode, modrm: true, dst: regSpec(arch.Byte), src: rmSpec(arch.Byte)}
		table[base+3] = &template{opcode: opcode, modrm: true, dst: regSpec(arch.Word), src: rmSpec(arch.Word)}
	}

	// Immediate to accumulator.
	for base, opcode := range map[int]int{
		0o004: arch.ADD,
		0o054: arch.SUB,
		0o074: arch.CMP,
	} {
		table[base+0] = &template{opcode: opcode, dst: fixedSpec(arch.AL), src: immSpec(arch.Byte)}
		table[base+1] = &template{opcode: opcode, dst: fixedSpec(arch.AX), src: immSpec(arch.Word)}
	}

	// Immediate to r/m, mnemonic selected by the reg field.
	table[0o200] = &template{group: arithmeticGroup, modrm: true, dst: rmSpec(arch.Byte), src: immSpec(arch.Byte)}
	table[0o201] = &template{group: arithmeticGroup, modrm: true, dst: rmSpec(arch.Word), src: immSpec(arch.Word)}
	table[0o202] = &template{group: arithmeticGroup, modrm: true, dst: rmSpec(arch.Byte), src: immSpec(arch.Byte)}
	table[0o203] = &template{group: arithmeticGroup, modrm: true, dst: rmSpec(arch.Word),
		src: operandSpec{shape: shapeImmediate, width: arch.Word, signExtend: true}}

	// Segment register moves.
	sr := operandSpec{shape: shapeSegment, width: arch.Word}
	table[0o214] = &template{opcode: arch.MOV, modrm: true, dst: rmSpec(arch.Word), src: sr}
	table[0o216] = &template{opcode: arch.MOV, modrm: true, dst: sr, src: rmSpec(arch.Word)}

	// Accumulator <-> direct memory.
	table[0o240] = &template{opcode: arch.MOV, dst: fixedSpec(arch.AL), src: directSpec(arch.Byte)}
	table[0o241] = &template{opcode: arch.MOV, dst: fixedSpec(arch.AX), src: directSpec(arch.Word)}
	table[0o242] = &template{opcode: arch.MOV, dst: directSpec(arch.Byte), src: fixedSpec(arch.AL)}
	table[0o243] = &template{opcode: arch.MOV, dst: directSpec(arch.Word), src: fixedSpec(arch.AX)}

	// Immediate to register. Bit 3 is the width, the low bits select the register.
	for i := 0; i < 16; i++ {
		w := arch.Width(i >> 3)
		table[0o260+i] = &template{opcode: arch.MOV, dst: fixedSpec(arch.LookupRegister(i&7, w)), src: immSpec(w)}
	}

	// Immediate to r/m with explicit size.
	table[0o306] = &template{group: movGroup, modrm: true, dst: rmSpec(arch.Byte), src: immSpec(arch.Byte)}
	table[0o307] = &template{group: movGroup, modrm: true, dst: rmSpec(arch.Word), src: immSpec(arch.Word)}
}

// lookup returns the template for the given opcode byte.
// Returns false if the opcode is not supported.
func lookup(b byte) (*template, bool) {
	t := table[b]
	return t, t != nil
}
