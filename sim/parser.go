package sim

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hexaflex/sim86/arch"
	"github.com/pkg/errors"
)

// ParseFile parses the program in the given file.
func ParseFile(filename string) ([]Instruction, error) {
	fd, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Parse(fd, filename)
}

// Parse reads one instruction per line from r. The filename provides source
// context for errors. Blank lines, comments starting with ';' and the
// "bits 16" directive are skipped.
func Parse(r io.Reader, filename string) ([]Instruction, error) {
	var program []Instruction

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if i := strings.IndexByte(text, ';'); i > -1 {
			text = text[:i]
		}

		if len(strings.TrimSpace(text)) == 0 {
			continue
		}

		p := lineParser{text: text, pos: Position{File: filename, Line: line}}
		instr, ok, err := p.parse()
		if err != nil {
			return nil, err
		}
		if ok {
			program = append(program, instr)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}

	return program, nil
}

// lineParser parses a single, non-empty source line.
type lineParser struct {
	text string
	pos  Position
}

// at returns the position of the byte at the given offset into the line.
func (p *lineParser) at(offset int) Position {
	pos := p.pos
	pos.Col = offset + 1
	return pos
}

func (p *lineParser) error(offset int, f string, argv ...interface{}) error {
	return NewError(p.at(offset), f, argv...)
}

// trim strips surrounding whitespace from s, which starts at the given line
// offset, and returns the offset of the trimmed text.
func trim(s string, offset int) (string, int) {
	t := strings.TrimLeft(s, " \t\r")
	offset += len(s) - len(t)
	return strings.TrimRight(t, " \t\r"), offset
}

// field is a piece of source text and its offset into the line.
type field struct {
	text   string
	offset int
}

// parse returns false if the line holds a directive instead of an instruction.
func (p *lineParser) parse() (Instruction, bool, error) {
	text, start := trim(p.text, 0)
	name, rest, restOff := text, "", start+len(text)
	if i := strings.IndexAny(text, " \t"); i > -1 {
		name = text[:i]
		rest, restOff = trim(text[i:], start+i)
	}

	if strings.EqualFold(name, "bits") {
		if rest != "16" {
			return Instruction{}, false, p.error(restOff, "unsupported directive: bits %s", rest)
		}
		return Instruction{}, false, nil
	}

	instr := Instruction{Pos: p.at(start)}

	opcode, ok := arch.Opcode(name)
	if !ok {
		return instr, false, p.error(start, "unknown instruction %q", name)
	}
	instr.Opcode = opcode

	var args []field
	if len(rest) > 0 {
		offset := restOff
		for _, s := range strings.Split(rest, ",") {
			arg, argOff := trim(s, offset)
			args = append(args, field{arg, argOff})
			offset += len(s) + 1
		}
	}

	if argc := arch.Argc(opcode); len(args) != argc {
		return instr, false, p.error(start, "%s expects %d operand(s); have %d", name, argc, len(args))
	}

	for i, arg := range args {
		op, err := p.parseOperand(arg)
		if err != nil {
			return instr, false, err
		}
		instr.Args[i] = op
	}

	if err := p.validate(&instr, args); err != nil {
		return instr, false, err
	}

	return instr, true, nil
}

// validate checks the operand combination against the instruction.
func (p *lineParser) validate(instr *Instruction, args []field) error {
	a, b := instr.Args[0], instr.Args[1]

	switch instr.Opcode {
	case arch.MOV:
		if a.Mode == Immediate {
			return p.error(args[0].offset, "cannot move into an immediate value")
		}
		if a.Mode == Indirect && b.Mode == Indirect {
			return p.error(args[1].offset, "memory to memory moves are not supported")
		}
	case arch.ADD, arch.SUB, arch.CMP:
		if a.Mode != Register {
			return p.error(args[0].offset, "destination must be a register")
		}
		if b.Mode == Indirect {
			return p.error(args[1].offset, "source must be a register or immediate value")
		}
	case arch.JNZ:
		if a.Mode != Immediate {
			return p.error(args[0].offset, "jump offset must be an immediate value")
		}
	}
	return nil
}

// parseOperand parses a register, immediate or "word [...]" memory operand.
func (p *lineParser) parseOperand(arg field) (Operand, error) {
	s, offset := arg.text, arg.offset
	if len(s) == 0 {
		return Operand{}, p.error(offset, "missing operand")
	}

	if fields := strings.Fields(s); len(fields) > 1 {
		if w, ok := arch.WidthByName(fields[0]); ok {
			if w != arch.Word {
				return Operand{}, p.error(offset, "unsupported operand width %q", fields[0])
			}
			s, offset = trim(s[len(fields[0]):], offset+len(fields[0]))
		}
	}

	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return Operand{}, p.error(offset, "unable to find closing ']'")
		}
		return p.parseAddress(s[1:len(s)-1], offset+1)
	}

	if r, ok := arch.RegisterByName(s); ok {
		if r.Width() != arch.Word {
			return Operand{}, p.error(offset, "unsupported byte register %q", s)
		}
		return Operand{Mode: Register, Register: r}, nil
	}

	v, err := parseNumber(s)
	if err != nil {
		return Operand{}, p.error(offset, "invalid operand %q", s)
	}
	return Operand{Mode: Immediate, Value: v}, nil
}

// parseAddress parses the expression between the brackets of a memory operand:
// word registers and numbers joined by '+' and '-'. The expression starts at
// the given line offset.
func (p *lineParser) parseAddress(expr string, offset int) (Operand, error) {
	op := Operand{Mode: Indirect}
	sign := 1
	term := 0

	flush := func(end int) error {
		s, at := trim(expr[term:end], offset+term)
		if len(s) == 0 {
			return p.error(offset, "malformed address expression %q", expr)
		}

		if r, ok := arch.RegisterByName(s); ok {
			if r.Width() != arch.Word || sign < 0 {
				return p.error(at, "invalid address register %q", s)
			}
			op.Base = append(op.Base, r)
			return nil
		}

		v, err := parseNumber(s)
		if err != nil {
			return p.error(at, "invalid address term %q", s)
		}
		op.Value += sign * v
		return nil
	}

	for i := 0; i < len(expr); i++ {
		if c := expr[i]; c == '+' || c == '-' {
			// A leading sign belongs to the first number.
			if strings.TrimSpace(expr[term:i]) == "" && term == 0 && c == '-' {
				sign = -sign
				term = i + 1
				continue
			}
			if err := flush(i); err != nil {
				return Operand{}, err
			}
			sign = 1
			if c == '-' {
				sign = -1
			}
			term = i + 1
		}
	}

	if err := flush(len(expr)); err != nil {
		return Operand{}, err
	}

	return op, nil
}

// parseNumber parses a signed 16-bit number. Unsigned values up to 0xffff
// are accepted and wrap around.
func parseNumber(s string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, err
	}
	if v < -0x8000 || v > 0xffff {
		return 0, errors.Errorf("value %d out of range", v)
	}
	return int(int16(v)), nil
}
