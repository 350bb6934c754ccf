package packet

import (
	"errors"
	"fmt"

	"github.com/danmuck/bitsctl/internal/protocol/bits"
)

var (
	ErrMalformedOperatorLength = errors.New("packet: malformed operator length")
	ErrInvalidArity            = errors.New("packet: invalid operator arity")
	ErrDepthExceeded           = errors.New("packet: nesting depth exceeded")
	ErrInvalidVersion          = errors.New("packet: invalid version")
	ErrInvalidLiteral          = errors.New("packet: invalid literal value")
	ErrUnknownOperator         = errors.New("packet: unknown operator")
	ErrSharedPacket            = errors.New("packet: packet reachable more than once")
	ErrFrameTooLarge           = errors.New("packet: operator frame too large to encode")
)

// ArityError reports an operator whose child count violates its shape.
type ArityError struct {
	Op       Operator
	Children int
}

func (e ArityError) Error() string {
	lo, hi := e.Op.Arity()
	if lo == hi {
		return fmt.Sprintf("packet: %s expects %d children, got %d", e.Op, lo, e.Children)
	}
	return fmt.Sprintf("packet: %s expects at least %d children, got %d", e.Op, lo, e.Children)
}

func (e ArityError) Unwrap() error {
	return ErrInvalidArity
}

// ErrorKind classifies a decode error into a short stable label.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, bits.ErrInvalidHexDigit):
		return "invalid_hex_digit"
	case errors.Is(err, bits.ErrUnexpectedEndOfBits):
		return "unexpected_end_of_bits"
	case errors.Is(err, ErrMalformedOperatorLength):
		return "malformed_operator_length"
	case errors.Is(err, ErrInvalidArity):
		return "invalid_arity"
	case errors.Is(err, ErrDepthExceeded):
		return "depth_exceeded"
	default:
		return "other"
	}
}
