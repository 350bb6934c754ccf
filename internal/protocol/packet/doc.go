// Package packet owns the packet tree and its wire grammar.
//
// Ownership boundary:
// - Packet model and shape-enforcing constructors
// - parsing from a bits.Cursor (Parse, Decode)
// - encoding back to bits (Encode, EncodeHex)
//
// Wire grammar, MSB first:
//
//	packet   = version:3 type:3 (literal | operator)
//	literal  = { 1 group:4 } 0 group:4          ; type 4
//	operator = 0 total_bits:15 packet...        ; children fill total_bits
//	         | 1 count:11 packet{count}
package packet
