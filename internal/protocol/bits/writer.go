package bits

// Writer accumulates bits MSB first. The zero value is ready to use.
type Writer struct {
	buf []byte
	n   int
}

// WriteBits appends the low width bits of v, most significant first.
func (w *Writer) WriteBits(v uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		w.writeBit(uint8(v>>uint(i)) & 1)
	}
}

// Append appends every bit of b.
func (w *Writer) Append(b Bits) {
	for i := 0; i < b.n; i++ {
		w.writeBit(b.Bit(i))
	}
}

func (w *Writer) writeBit(bit uint8) {
	if w.n%8 == 0 {
		w.buf = append(w.buf, 0)
	}
	if bit != 0 {
		w.buf[w.n/8] |= 1 << (7 - uint(w.n%8))
	}
	w.n++
}

// Len returns the number of bits written so far.
func (w *Writer) Len() int {
	return w.n
}

// Bits returns a snapshot of the written bits.
func (w *Writer) Bits() Bits {
	buf := make([]byte, len(w.buf))
	copy(buf, w.buf)
	return Bits{buf: buf, n: w.n}
}
