package disasm

import (
	"fmt"

	"github.com/hexaflex/sim86/arch"
)

// DisplacementKind tags the state of a Displacement.
type DisplacementKind byte

// Known displacement kinds.
const (
	NoDisplacement DisplacementKind = iota // Nothing follows.
	Unread8                                // One byte is expected.
	Unread16                               // Two bytes are expected.
	Disp8                                  // Sign-extended 8-bit value.
	Disp16                                 // 16-bit value.
)

// Displacement defines a signed offset read from the instruction stream.
type Displacement struct {
	Kind  DisplacementKind
	Value int16
}

// Resolved returns false if bytes still have to be read for this displacement.
func (d Displacement) Resolved() bool {
	return d.Kind != Unread8 && d.Kind != Unread16
}

// Size returns the number of stream bytes the displacement occupies.
func (d Displacement) Size() int {
	switch d.Kind {
	case Unread8, Disp8:
		return 1
	case Unread16, Disp16:
		return 2
	}
	return 0
}

// read resolves an unread displacement from the cursor.
// Resolved displacements are returned as-is.
func (d Displacement) read(c *Cursor) (Displacement, error) {
	switch d.Kind {
	case Unread8:
		b, err := c.next8()
		if err != nil {
			return Displacement{}, err
		}
		return Displacement{Kind: Disp8, Value: int16(int8(b))}, nil

	case Unread16:
		v, err := c.next16()
		if err != nil {
			return Displacement{}, err
		}
		return Displacement{Kind: Disp16, Value: int16(v)}, nil
	}
	return d, nil
}

// String renders the displacement as a suffix of an address expression.
// Zero and unread displacements render as nothing.
func (d Displacement) String() string {
	switch {
	case !d.Resolved(), d.Value == 0:
		return ""
	case d.Value < 0:
		return fmt.Sprintf(" - %d", -int(d.Value))
	}
	return fmt.Sprintf(" + %d", d.Value)
}

// expectDisplacement returns the unread displacement implied by mode and rm.
func expectDisplacement(mode arch.Mode, rm int) Displacement {
	switch mode.DisplacementSize(rm) {
	case 1:
		return Displacement{Kind: Unread8}
	case 2:
		return Displacement{Kind: Unread16}
	}
	return Displacement{}
}

// readDisplacement consumes the displacement bytes following a Mod-Reg-Rm byte.
func readDisplacement(c *Cursor, mode arch.Mode, rm int) (Displacement, error) {
	return expectDisplacement(mode, rm).read(c)
}
