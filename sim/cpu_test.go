package sim

import (
	"strings"
	"testing"

	"github.com/hexaflex/sim86/arch"
	"github.com/pkg/errors"
)

type codeTest struct {
	src   []string
	want  map[arch.Register]int16
	flags Flags
	ip    int
	count int
}

func newCodeTest(src ...string) *codeTest {
	return &codeTest{
		src:  src,
		want: make(map[arch.Register]int16),
	}
}

func runTest(t *testing.T, ct *codeTest) *CPU {
	t.Helper()

	program, err := Parse(strings.NewReader(strings.Join(ct.src, "\n")), "test.asm")
	if err != nil {
		t.Fatal(err)
	}

	cpu := New(func(ip int, instr *Instruction) {
		t.Logf("%3d %s", ip, instr)
	})
	cpu.Load(program)

	if err := cpu.Run(1000); err != nil {
		t.Fatal(err)
	}

	for r, want := range ct.want {
		if have := cpu.Register(r); have != want {
			t.Fatalf("register %s mismatch:\nwant: %d\nhave: %d", r, want, have)
		}
	}

	if cpu.Flags() != ct.flags {
		t.Fatalf("flags mismatch:\nwant: %02b\nhave: %02b", ct.flags, cpu.Flags())
	}
	if cpu.IP() != ct.ip || cpu.Count() != ct.count {
		t.Fatalf("ip/count mismatch:\nwant: %d/%d\nhave: %d/%d", ct.ip, ct.count, cpu.IP(), cpu.Count())
	}
	return cpu
}

func TestMOV(t *testing.T) {
	ct := newCodeTest(
		"mov ax, 1",
		"mov bx, 2",
		"mov cx, bx",
		"mov di, -7",
	)
	ct.want[arch.AX] = 1
	ct.want[arch.BX] = 2
	ct.want[arch.CX] = 2
	ct.want[arch.DI] = -7
	ct.ip, ct.count = 4, 4
	runTest(t, ct)
}

func TestMOVMemory(t *testing.T) {
	ct := newCodeTest(
		"mov bp, 1000",
		"mov ax, 7",
		"mov word [bp + 4], ax",
		"mov bx, word [1004]",
		"mov word [bp - 2], 300",
		"mov dx, word [998]",
	)
	ct.want[arch.BX] = 7
	ct.want[arch.DX] = 300
	ct.ip, ct.count = 6, 6
	cpu := runTest(t, ct)

	mem := cpu.Memory()
	if mem[1004] != 7 || mem[1005] != 0 || mem[998] != 0x2c || mem[999] != 0x01 {
		t.Fatalf("unexpected memory layout: % x / % x", mem[998:1000], mem[1004:1006])
	}
}

func TestADD(t *testing.T) {
	ct := newCodeTest(
		"mov ax, 1",
		"add ax, 2",
		"mov bx, -3",
		"add bx, ax",
	)
	ct.want[arch.AX] = 3
	ct.want[arch.BX] = 0
	ct.flags = Zero
	ct.ip, ct.count = 4, 4
	runTest(t, ct)
}

func TestSUB(t *testing.T) {
	ct := newCodeTest(
		"mov ax, 1",
		"sub ax, 2",
	)
	ct.want[arch.AX] = -1
	ct.flags = Sign
	ct.ip, ct.count = 2, 2
	runTest(t, ct)
}

func TestSUBWrap(t *testing.T) {
	ct := newCodeTest(
		"mov ax, -32768",
		"sub ax, 1",
	)
	ct.want[arch.AX] = 32767
	ct.ip, ct.count = 2, 2
	runTest(t, ct)
}

func TestCMP(t *testing.T) {
	ct := newCodeTest(
		"mov ax, 5",
		"mov bx, 7",
		"cmp ax, bx",
	)
	ct.want[arch.AX] = 5
	ct.want[arch.BX] = 7
	ct.flags = Sign
	ct.ip, ct.count = 3, 3
	runTest(t, ct)
}

func TestJNZLoop(t *testing.T) {
	ct := newCodeTest(
		"mov cx, 3",
		"mov bx, 1000",
		"add bx, 10",
		"sub cx, 1",
		"jnz -3",
	)
	ct.want[arch.BX] = 1030
	ct.want[arch.CX] = 0
	ct.flags = Zero
	ct.ip, ct.count = 5, 11
	runTest(t, ct)
}

func TestJumpOutsideProgram(t *testing.T) {
	program, err := Parse(strings.NewReader("mov ax, 1\njnz 5"), "test.asm")
	if err != nil {
		t.Fatal(err)
	}

	cpu := New(nil)
	cpu.Load(program)

	err = cpu.Run(0)

	var xerr *ExecError
	if !errors.As(err, &xerr) || xerr.IP != 1 || xerr.Pos.Line != 2 {
		t.Fatalf("expected exec error at ip 1; have %v", err)
	}
}

func TestStepLimit(t *testing.T) {
	program, err := Parse(strings.NewReader("mov ax, 1\njnz -1"), "test.asm")
	if err != nil {
		t.Fatal(err)
	}

	cpu := New(nil)
	cpu.Load(program)

	if err := cpu.Run(100); !errors.Is(err, ErrStepLimit) {
		t.Fatalf("expected ErrStepLimit; have %v", err)
	}
	if cpu.Count() != 100 {
		t.Fatalf("expected 100 executed instructions; have %d", cpu.Count())
	}
}

func TestStepLimitAtProgramEnd(t *testing.T) {
	program, err := Parse(strings.NewReader("mov ax, 1\nmov bx, 2"), "test.asm")
	if err != nil {
		t.Fatal(err)
	}

	cpu := New(nil)
	cpu.Load(program)

	if err := cpu.Run(len(program)); err != nil {
		t.Fatalf("expected the program to finish; have %v", err)
	}
	if cpu.Count() != 2 || cpu.IP() != 2 {
		t.Fatalf("ip/count mismatch:\nwant: 2/2\nhave: %d/%d", cpu.IP(), cpu.Count())
	}
}

func TestDump(t *testing.T) {
	ct := newCodeTest("mov bx, 50")
	ct.want[arch.BX] = 50
	ct.ip, ct.count = 1, 1
	cpu := runTest(t, ct)

	dump := cpu.String()
	for _, line := range []string{
		"instruction count: 1",
		"instruction pointer: 1",
		"bx 50",
		"Z false",
	} {
		if !strings.Contains(dump, line+"\n") {
			t.Fatalf("dump is missing %q:\n%s", line, dump)
		}
	}
}
