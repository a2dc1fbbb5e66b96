package arch

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidField is raised when a bitfield outside its encoding domain
// reaches one of the lookup tables. This can only happen through a programming
// error, as all callers extract their indices from fixed-size fields.
var ErrInvalidField = errors.New("invalid field value")

// Register identifies one of the sixteen general purpose registers.
type Register byte

// Known registers, in encoding order.
const (
	AL Register = iota
	CL
	DL
	BL
	AH
	CH
	DH
	BH

	AX
	CX
	DX
	BX
	SP
	BP
	SI
	DI
)

var registerNames = [...]string{
	"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh",
	"ax", "cx", "dx", "bx", "sp", "bp", "si", "di",
}

// LookupRegister returns the register encoded by the given 3-bit index
// for an operation of width w. It panics if index is outside 0-7.
func LookupRegister(index int, w Width) Register {
	if index < 0 || index > 7 {
		panic(errors.Wrapf(ErrInvalidField, "register index %d", index))
	}
	if w == Word {
		return AX + Register(index)
	}
	return AL + Register(index)
}

// RegisterByName returns the register for the given name.
// Returns false if the name is not recognized.
func RegisterByName(name string) (Register, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, v := range registerNames {
		if v == name {
			return Register(i), true
		}
	}
	return 0, false
}

// Index returns the 3-bit encoding of the register.
func (r Register) Index() int {
	return int(r) & 7
}

// Width returns the size of the register.
func (r Register) Width() Width {
	if r >= AX {
		return Word
	}
	return Byte
}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return ""
}

// Segment identifies one of the four segment registers.
type Segment byte

// Known segment registers, in encoding order.
const (
	ES Segment = iota
	CS
	SS
	DS
)

var segmentNames = [...]string{"es", "cs", "ss", "ds"}

// LookupSegment returns the segment register encoded by the given 2-bit index.
// It panics if index is outside 0-3.
func LookupSegment(index int) Segment {
	if index < 0 || index > 3 {
		panic(errors.Wrapf(ErrInvalidField, "segment index %d", index))
	}
	return Segment(index)
}

func (s Segment) String() string {
	if int(s) < len(segmentNames) {
		return segmentNames[s]
	}
	return ""
}
