package arch

import (
	"strings"
)

// Width defines the operand size of an instruction.
type Width byte

// Known operand widths.
const (
	Byte Width = 0
	Word Width = 1
)

// WidthByName returns the width matching the given name.
// Returns false if no match was found.
func WidthByName(name string) (Width, bool) {
	switch strings.ToLower(name) {
	case "byte":
		return Byte, true
	case "word":
		return Word, true
	}
	return 0, false
}

// Size returns the number of bytes occupied by a value of this width.
func (w Width) Size() int {
	if w == Word {
		return 2
	}
	return 1
}

func (w Width) String() string {
	switch w {
	case Byte:
		return "byte"
	case Word:
		return "word"
	}
	return ""
}
