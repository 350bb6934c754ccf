package packet

import (
	"fmt"
	"math/big"

	"github.com/danmuck/bitsctl/internal/protocol/bits"
)

const (
	versionBits     = 3
	typeBits        = 3
	groupBits       = 4
	totalLengthBits = 15
	countLengthBits = 11

	// minPacketBits is the size of a literal with a single group.
	minPacketBits = versionBits + typeBits + 1 + groupBits
)

// Options tunes parsing. The zero value parses without limits.
type Options struct {
	// MaxDepth caps packet nesting, counting the outermost packet as 1.
	// Zero means unlimited.
	MaxDepth int
}

// Decode expands hex and parses the outermost packet. Bits after it are
// padding and are ignored.
func Decode(hex string) (*Packet, error) {
	return DecodeWithOptions(hex, Options{})
}

// DecodeWithOptions is Decode with parse options.
func DecodeWithOptions(hex string, opts Options) (*Packet, error) {
	b, err := bits.FromHex(hex)
	if err != nil {
		return nil, err
	}
	return ParseWithOptions(bits.NewCursor(b), opts)
}

// Parse reads exactly one packet (and its descendants) from c.
func Parse(c *bits.Cursor) (*Packet, error) {
	return ParseWithOptions(c, Options{})
}

// frame is an operator whose children are still being read.
type frame struct {
	pkt   *Packet
	at    int
	start int
	end   int
	count int
	// limit is the tightest declared end of any enclosing total-bits
	// frame, including this one; -1 when unbounded.
	limit int
}

// reader bounds cursor reads to the declared end of the enclosing
// total-bits frames.
type reader struct {
	c     *bits.Cursor
	limit int
}

func (r reader) take(n int) (uint64, error) {
	if r.limit >= 0 && r.c.Position()+n > r.limit {
		return 0, fmt.Errorf("%w: read of %d bits at bit %d crosses declared end at bit %d",
			ErrMalformedOperatorLength, n, r.c.Position(), r.limit)
	}
	return r.c.Take(n)
}

func (f *frame) done(pos int) bool {
	if f.pkt.Framing.LengthType == LengthTotalBits {
		return pos >= f.end
	}
	return len(f.pkt.Children) == f.count
}

// ParseWithOptions reads one packet from c using an explicit stack of open
// operators, so nesting is not bounded by the goroutine stack.
func ParseWithOptions(c *bits.Cursor, opts Options) (*Packet, error) {
	var stack []*frame
	for {
		if opts.MaxDepth > 0 && len(stack)+1 > opts.MaxDepth {
			return nil, fmt.Errorf("%w: limit %d at bit %d", ErrDepthExceeded, opts.MaxDepth, c.Position())
		}
		if n := len(stack); n > 0 {
			top := stack[n-1]
			if top.pkt.Framing.LengthType == LengthTotalBits && top.end-c.Position() < minPacketBits {
				return nil, fmt.Errorf("%w: %s at bit %d has %d bits left, less than a packet",
					ErrMalformedOperatorLength, top.pkt.Op, top.at, top.end-c.Position())
			}
		}
		r := reader{c: c, limit: -1}
		if n := len(stack); n > 0 {
			r.limit = stack[n-1].limit
		}
		completed, open, err := readPacket(r)
		if err != nil {
			return nil, err
		}
		if open != nil {
			stack = append(stack, open)
		}

		for {
			if completed != nil {
				if len(stack) == 0 {
					return completed, nil
				}
				parent := stack[len(stack)-1]
				parent.pkt.Children = append(parent.pkt.Children, completed)
				completed = nil
				if parent.pkt.Framing.LengthType == LengthTotalBits && c.Position() > parent.end {
					return nil, fmt.Errorf("%w: %s at bit %d declared %d bits, children used %d",
						ErrMalformedOperatorLength, parent.pkt.Op, parent.at, parent.end-parent.start, c.Position()-parent.start)
				}
			}
			top := stack[len(stack)-1]
			if !top.done(c.Position()) {
				break
			}
			stack = stack[:len(stack)-1]
			if err := checkArity(top.pkt.Op, len(top.pkt.Children)); err != nil {
				return nil, fmt.Errorf("operator at bit %d: %w", top.at, err)
			}
			completed = top.pkt
		}
	}
}

// readPacket reads one packet header. A literal is returned complete; an
// operator is returned as an open frame with no children yet.
func readPacket(r reader) (*Packet, *frame, error) {
	c := r.c
	start := c.Position()
	version, err := r.take(versionBits)
	if err != nil {
		return nil, nil, err
	}
	typeID, err := r.take(typeBits)
	if err != nil {
		return nil, nil, err
	}

	if uint8(typeID) == TypeLiteral {
		value, groups, err := readLiteral(r)
		if err != nil {
			return nil, nil, err
		}
		return &Packet{
			Version: uint8(version),
			Kind:    KindLiteral,
			Value:   value,
			Framing: &Framing{Groups: groups},
		}, nil, nil
	}

	op, _ := OperatorFromTypeID(uint8(typeID))
	lengthType, err := r.take(1)
	if err != nil {
		return nil, nil, err
	}
	f := &frame{
		pkt: &Packet{
			Version: uint8(version),
			Kind:    KindOperator,
			Op:      op,
			Framing: &Framing{LengthType: LengthType(lengthType)},
		},
		at:    start,
		limit: r.limit,
	}
	if LengthType(lengthType) == LengthTotalBits {
		total, err := r.take(totalLengthBits)
		if err != nil {
			return nil, nil, err
		}
		f.pkt.Framing.Length = int(total)
		f.start = c.Position()
		f.end = f.start + int(total)
		if f.limit < 0 || f.end < f.limit {
			f.limit = f.end
		}
	} else {
		count, err := r.take(countLengthBits)
		if err != nil {
			return nil, nil, err
		}
		f.pkt.Framing.Length = int(count)
		f.count = int(count)
	}
	return nil, f, nil
}

// readLiteral accumulates 4-bit groups MSB first until a group with a zero
// continuation bit. The accumulator is arbitrary precision.
func readLiteral(r reader) (*big.Int, int, error) {
	value := new(big.Int)
	group := new(big.Int)
	groups := 0
	for {
		more, err := r.take(1)
		if err != nil {
			return nil, 0, err
		}
		g, err := r.take(groupBits)
		if err != nil {
			return nil, 0, err
		}
		groups++
		value.Lsh(value, groupBits)
		value.Or(value, group.SetUint64(g))
		if more == 0 {
			return value, groups, nil
		}
	}
}
