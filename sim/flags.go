package sim

// Flags holds the condition flags.
type Flags byte

// Known flags.
const (
	Zero Flags = 1 << iota // Last result was zero.
	Sign                   // Last result was negative.
)

// Zero returns the state of the zero flag.
func (f Flags) Zero() bool { return f&Zero != 0 }

// Sign returns the state of the sign flag.
func (f Flags) Sign() bool { return f&Sign != 0 }

// flagsFor returns the flags describing the given result.
func flagsFor(v int16) Flags {
	var f Flags
	if v == 0 {
		f |= Zero
	}
	if v < 0 {
		f |= Sign
	}
	return f
}
