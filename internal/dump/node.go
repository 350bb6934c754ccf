package dump

import (
	"fmt"
	"math/big"

	"github.com/danmuck/bitsctl/internal/protocol/packet"
)

const typeLiteral = "literal"

// Node is the serializable view of one packet.
type Node struct {
	Version    uint8  `json:"version" yaml:"version" cbor:"1,keyasint"`
	Type       string `json:"type" yaml:"type" cbor:"2,keyasint"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty" cbor:"3,keyasint,omitempty"`
	LengthType string `json:"length_type,omitempty" yaml:"length_type,omitempty" cbor:"4,keyasint,omitempty"`
	Children   []Node `json:"children,omitempty" yaml:"children,omitempty" cbor:"5,keyasint,omitempty"`
}

// FromPacket builds the view of p.
func FromPacket(p *packet.Packet) Node {
	if p.IsLiteral() {
		return Node{Version: p.Version, Type: typeLiteral, Value: p.Value.String()}
	}
	n := Node{Version: p.Version, Type: p.Op.String()}
	if p.Framing != nil {
		n.LengthType = p.Framing.LengthType.String()
	}
	n.Children = make([]Node, 0, len(p.Children))
	for _, child := range p.Children {
		n.Children = append(n.Children, FromPacket(child))
	}
	return n
}

// Packet rebuilds a packet tree through the validating constructors.
// Framing is not restored.
func (n Node) Packet() (*packet.Packet, error) {
	if n.Type == typeLiteral {
		if len(n.Children) != 0 {
			return nil, fmt.Errorf("dump: literal with %d children: %w", len(n.Children), packet.ErrInvalidArity)
		}
		v, ok := new(big.Int).SetString(n.Value, 10)
		if !ok {
			return nil, fmt.Errorf("dump: literal value %q: %w", n.Value, packet.ErrInvalidLiteral)
		}
		return packet.NewLiteral(n.Version, v)
	}
	op, ok := packet.ParseOperator(n.Type)
	if !ok {
		return nil, fmt.Errorf("dump: type %q: %w", n.Type, packet.ErrUnknownOperator)
	}
	children := make([]*packet.Packet, 0, len(n.Children))
	for _, c := range n.Children {
		child, err := c.Packet()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return packet.NewOperator(n.Version, op, children...)
}
