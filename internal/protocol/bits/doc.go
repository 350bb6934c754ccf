// Package bits owns the bit-level primitives of the transmission format.
//
// Ownership boundary:
// - hex digit to bit expansion (FromHex) and its inverse (Bits.Hex)
// - the read-only Cursor used by the packet parser
// - the Writer used by the packet encoder
package bits
