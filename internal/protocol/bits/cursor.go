package bits

import "fmt"

// Cursor reads a Bits value front to back. The read position only moves
// forward and the underlying Bits are never modified.
type Cursor struct {
	bits Bits
	pos  int
}

func NewCursor(b Bits) *Cursor {
	return &Cursor{bits: b}
}

// Take consumes the next n bits and returns them as an unsigned integer,
// first bit most significant. On failure the position is left unchanged.
func (c *Cursor) Take(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("%w: %d", ErrReadTooWide, n)
	}
	if n > c.Remaining() {
		return 0, fmt.Errorf("%w: need %d at bit %d, have %d", ErrUnexpectedEndOfBits, n, c.pos, c.Remaining())
	}
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<1 | uint64(c.bits.Bit(c.pos+i))
	}
	c.pos += n
	return v, nil
}

// Remaining returns the count of unconsumed bits.
func (c *Cursor) Remaining() int {
	return c.bits.n - c.pos
}

// Position returns the count of consumed bits.
func (c *Cursor) Position() int {
	return c.pos
}
