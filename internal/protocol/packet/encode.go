package packet

import (
	"fmt"

	"github.com/danmuck/bitsctl/internal/protocol/bits"
)

const (
	maxTotalLength = 1<<totalLengthBits - 1
	maxCount       = 1<<countLengthBits - 1
)

// EncodeHex encodes p and renders it as hex, zero padding the last digit.
func EncodeHex(p *Packet) (string, error) {
	var w bits.Writer
	if err := Encode(&w, p); err != nil {
		return "", err
	}
	return w.Bits().Hex(), nil
}

// Encode writes p to w. Parsed packets keep their recorded framing and
// literal group count; constructed operators use the subpacket count form
// unless they have too many children for it.
func Encode(w *bits.Writer, p *Packet) error {
	if err := Validate(p); err != nil {
		return err
	}
	return encodePacket(w, p)
}

func encodePacket(w *bits.Writer, p *Packet) error {
	w.WriteBits(uint64(p.Version), versionBits)
	if p.Kind == KindLiteral {
		w.WriteBits(uint64(TypeLiteral), typeBits)
		encodeLiteral(w, p)
		return nil
	}

	w.WriteBits(uint64(p.Op), typeBits)
	lengthType := LengthSubpacketCount
	if p.Framing != nil {
		lengthType = p.Framing.LengthType
	} else if len(p.Children) > maxCount {
		lengthType = LengthTotalBits
	}

	if lengthType == LengthSubpacketCount {
		if len(p.Children) > maxCount {
			return fmt.Errorf("%w: %s has %d children", ErrFrameTooLarge, p.Op, len(p.Children))
		}
		w.WriteBits(uint64(LengthSubpacketCount), 1)
		w.WriteBits(uint64(len(p.Children)), countLengthBits)
		for _, child := range p.Children {
			if err := encodePacket(w, child); err != nil {
				return err
			}
		}
		return nil
	}

	var body bits.Writer
	for _, child := range p.Children {
		if err := encodePacket(&body, child); err != nil {
			return err
		}
	}
	if body.Len() > maxTotalLength {
		return fmt.Errorf("%w: %s children need %d bits", ErrFrameTooLarge, p.Op, body.Len())
	}
	w.WriteBits(uint64(LengthTotalBits), 1)
	w.WriteBits(uint64(body.Len()), totalLengthBits)
	w.Append(body.Bits())
	return nil
}

func encodeLiteral(w *bits.Writer, p *Packet) {
	groups := (p.Value.BitLen() + groupBits - 1) / groupBits
	if groups == 0 {
		groups = 1
	}
	if p.Framing != nil && p.Framing.Groups > groups {
		groups = p.Framing.Groups
	}
	for g := groups - 1; g >= 0; g-- {
		more := uint64(1)
		if g == 0 {
			more = 0
		}
		w.WriteBits(more, 1)
		var nib uint64
		for i := groupBits - 1; i >= 0; i-- {
			nib = nib<<1 | uint64(p.Value.Bit(g*groupBits+i))
		}
		w.WriteBits(nib, groupBits)
	}
}
