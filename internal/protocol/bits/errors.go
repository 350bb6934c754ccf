package bits

import "errors"

var (
	ErrInvalidHexDigit     = errors.New("bits: invalid hex digit")
	ErrUnexpectedEndOfBits = errors.New("bits: unexpected end of bits")
	ErrReadTooWide         = errors.New("bits: read wider than 64 bits")
)
