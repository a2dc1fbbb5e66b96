package sim

import (
	"reflect"
	"strings"
	"testing"

	"github.com/hexaflex/sim86/arch"
	"github.com/pkg/errors"
)

func parseLine(t *testing.T, src string) Instruction {
	t.Helper()

	program, err := Parse(strings.NewReader(src), "test.asm")
	if err != nil {
		t.Fatal(err)
	}
	if len(program) != 1 {
		t.Fatalf("%q: expected one instruction; have %d", src, len(program))
	}
	return program[0]
}

func TestParseInstruction(t *testing.T) {
	for _, v := range []struct {
		src    string
		opcode int
		a, b   Operand
	}{
		{"mov bx, 2", arch.MOV, reg(arch.BX), imm(2)},
		{"mov bx, cx", arch.MOV, reg(arch.BX), reg(arch.CX)},
		{"MOV BX, -0x10", arch.MOV, reg(arch.BX), imm(-16)},
		{"mov bx, word [1000]", arch.MOV, reg(arch.BX), mem(1000)},
		{"mov word [bp + 1000], ax", arch.MOV, mem(1000, arch.BP), reg(arch.AX)},
		{"mov ax, word [bp - 4]", arch.MOV, reg(arch.AX), mem(-4, arch.BP)},
		{"mov ax, [bx + si + 2]", arch.MOV, reg(arch.AX), mem(2, arch.BX, arch.SI)},
		{"mov word [-2], 300", arch.MOV, mem(-2), imm(300)},
		{"add ax, 65535", arch.ADD, reg(arch.AX), imm(-1)},
		{"sub cx, dx", arch.SUB, reg(arch.CX), reg(arch.DX)},
		{"cmp si, 7", arch.CMP, reg(arch.SI), imm(7)},
		{"jnz -3", arch.JNZ, imm(-3), Operand{}},
	} {
		have := parseLine(t, v.src)
		want := Instruction{
			Pos:    Position{File: "test.asm", Line: 1, Col: 1},
			Opcode: v.opcode,
			Args:   [2]Operand{v.a, v.b},
		}

		if !reflect.DeepEqual(have, want) {
			t.Fatalf("%q:\nwant: %+v\nhave: %+v", v.src, want, have)
		}
	}
}

func TestParseSkipsNoise(t *testing.T) {
	src := `bits 16

; loop until cx is zero
mov cx, 3  ; counter
	sub cx, 1
jnz -2
`
	program, err := Parse(strings.NewReader(src), "test.asm")
	if err != nil {
		t.Fatal(err)
	}

	if len(program) != 3 {
		t.Fatalf("expected 3 instructions; have %d", len(program))
	}

	if pos := program[1].Pos; pos.Line != 5 || pos.Col != 2 {
		t.Fatalf("unexpected position %v", pos)
	}
}

func TestParseCRLF(t *testing.T) {
	program, err := Parse(strings.NewReader("mov ax, 1\r\nadd ax, 2 ; two\r\n"), "test.asm")
	if err != nil {
		t.Fatal(err)
	}
	if len(program) != 2 || !reflect.DeepEqual(program[1].Args[1], imm(2)) {
		t.Fatalf("unexpected program %v", program)
	}

	_, err = Parse(strings.NewReader("mov ax, 1\r\nmov bx, al\r\n"), "test.asm")

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error; have %v", err)
	}
	if perr.Pos.Line != 2 || perr.Pos.Col != 9 {
		t.Fatalf("error position:\nwant: 2:9\nhave: %d:%d", perr.Pos.Line, perr.Pos.Col)
	}
}

func TestInstructionString(t *testing.T) {
	for _, src := range []string{
		"mov bx, 2",
		"mov word [bp + 1000], ax",
		"mov ax, word [bx + si - 2]",
		"mov dx, word [1000]",
		"jnz -3",
	} {
		instr := parseLine(t, src)
		if have := instr.String(); have != src {
			t.Fatalf("round trip:\nwant: %s\nhave: %s", src, have)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, v := range []struct {
		src  string
		line int
		col  int
	}{
		{"mov ax", 1, 1},
		{"mov ax, 1, 2", 1, 1},
		{"hlt", 1, 1},
		{"mov al, 1", 1, 5},
		{"mov ax, byte [5]", 1, 9},
		{"mov ax, word [5", 1, 14},
		{"mov ax, 1\nadd word [5], 1", 2, 5},
		{"mov ax, 1\n\nsub ax, word [5]", 3, 9},
		{"mov 5, ax", 1, 5},
		{"mov word [1], word [2]", 1, 15},
		{"mov word [2], word [2]", 1, 15},
		{"mov ax, ax ax", 1, 9},
		{"mov bx, [bx + bx - bx]", 1, 21},
		{"  mov ax,", 1, 10},
		{"jnz ax", 1, 5},
		{"mov ax, [bx + ]", 1, 10},
		{"mov ax, [5 - bx]", 1, 14},
		{"mov ax, 70000", 1, 9},
		{"bits 32", 1, 6},
	} {
		_, err := Parse(strings.NewReader(v.src), "test.asm")

		var perr *Error
		if !errors.As(err, &perr) {
			t.Fatalf("%q: expected parse error; have %v", v.src, err)
		}
		if perr.Pos.Line != v.line || perr.Pos.Col != v.col {
			t.Fatalf("%q: error position:\nwant: %d:%d\nhave: %d:%d (%v)",
				v.src, v.line, v.col, perr.Pos.Line, perr.Pos.Col, perr)
		}
	}
}

func reg(r arch.Register) Operand {
	return Operand{Mode: Register, Register: r}
}

func imm(v int) Operand {
	return Operand{Mode: Immediate, Value: v}
}

func mem(offset int, base ...arch.Register) Operand {
	return Operand{Mode: Indirect, Base: base, Value: offset}
}
