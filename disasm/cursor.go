package disasm

// Cursor tracks the read position over a fully buffered instruction stream.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the offset of the next byte to be read.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Done returns true if all bytes have been read.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.data)
}

// Seek moves the cursor to the given offset, clamped to the buffer bounds.
func (c *Cursor) Seek(pos int) {
	switch {
	case pos < 0:
		pos = 0
	case pos > len(c.data):
		pos = len(c.data)
	}
	c.pos = pos
}

// since returns the bytes read between offset start and the current position.
func (c *Cursor) since(start int) []byte {
	return c.data[start:c.pos:c.pos]
}

// next8 reads the next byte and advances the cursor.
func (c *Cursor) next8() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, ErrUnexpectedEnd
	}

	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// next16 reads the next little-endian 16-bit value and advances the cursor.
// Nothing is consumed if fewer than two bytes remain.
func (c *Cursor) next16() (uint16, error) {
	if c.Remaining() < 2 {
		return 0, ErrUnexpectedEnd
	}

	lo, hi := c.data[c.pos], c.data[c.pos+1]
	c.pos += 2
	return uint16(hi)<<8 | uint16(lo), nil
}
