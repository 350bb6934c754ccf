package bits

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789ABCDEF"

// Bits is an immutable, MSB-first sequence of bits packed into bytes.
type Bits struct {
	buf []byte
	n   int
}

// FromHex expands each hex digit into its 4-bit pattern, in input order.
// Only 0-9 and A-F are accepted.
func FromHex(s string) (Bits, error) {
	buf := make([]byte, (len(s)+1)/2)
	for i := 0; i < len(s); i++ {
		v, ok := nibble(s[i])
		if !ok {
			r, _ := utf8.DecodeRuneInString(s[i:])
			return Bits{}, fmt.Errorf("%w: %q at offset %d", ErrInvalidHexDigit, r, i)
		}
		if i%2 == 0 {
			buf[i/2] = v << 4
		} else {
			buf[i/2] |= v
		}
	}
	return Bits{buf: buf, n: 4 * len(s)}, nil
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Len returns the number of bits.
func (b Bits) Len() int {
	return b.n
}

// Bit returns bit i (0 or 1). It panics when i is out of range.
func (b Bits) Bit(i int) uint8 {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("bits: index %d out of range [0,%d)", i, b.n))
	}
	return (b.buf[i/8] >> (7 - uint(i%8))) & 1
}

// Hex renders the bits as uppercase hex, zero padding the final digit.
func (b Bits) Hex() string {
	digits := (b.n + 3) / 4
	var sb strings.Builder
	sb.Grow(digits)
	for i := 0; i < digits; i++ {
		v := b.buf[i/2]
		if i%2 == 0 {
			v >>= 4
		}
		sb.WriteByte(hexDigits[v&0x0F])
	}
	return sb.String()
}

// String renders the bits as a string of '0' and '1'.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		sb.WriteByte('0' + b.Bit(i))
	}
	return sb.String()
}
