package packet

import (
	"fmt"
	"math/big"
	"strings"
)

// TypeLiteral is the wire type id reserved for literal packets.
const TypeLiteral uint8 = 4

// MaxVersion is the largest value the 3-bit version field can carry.
const MaxVersion uint8 = 7

// Kind discriminates the two packet shapes.
type Kind uint8

const (
	KindLiteral Kind = iota + 1
	KindOperator
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindOperator:
		return "operator"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Operator is an operator tag. Its numeric value is the wire type id.
type Operator uint8

const (
	OpSum         Operator = 0
	OpProduct     Operator = 1
	OpMinimum     Operator = 2
	OpMaximum     Operator = 3
	OpGreaterThan Operator = 5
	OpLessThan    Operator = 6
	OpEqualTo     Operator = 7
)

var operatorNames = map[Operator]string{
	OpSum:         "sum",
	OpProduct:     "product",
	OpMinimum:     "min",
	OpMaximum:     "max",
	OpGreaterThan: "gt",
	OpLessThan:    "lt",
	OpEqualTo:     "eq",
}

// OperatorFromTypeID maps a wire type id to an operator. Type 4 is not an
// operator.
func OperatorFromTypeID(id uint8) (Operator, bool) {
	op := Operator(id)
	_, ok := operatorNames[op]
	return op, ok
}

// ParseOperator maps an operator name as printed by String back to the tag.
func ParseOperator(name string) (Operator, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for op, n := range operatorNames {
		if n == name {
			return op, true
		}
	}
	return 0, false
}

func (o Operator) String() string {
	if n, ok := operatorNames[o]; ok {
		return n
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Valid reports whether o is one of the seven operator tags.
func (o Operator) Valid() bool {
	_, ok := operatorNames[o]
	return ok
}

// Arity returns the inclusive child count bounds. hi is -1 when unbounded.
func (o Operator) Arity() (lo, hi int) {
	switch o {
	case OpGreaterThan, OpLessThan, OpEqualTo:
		return 2, 2
	default:
		return 1, -1
	}
}

// LengthType is the operator framing mode, equal to the wire bit.
type LengthType uint8

const (
	LengthTotalBits      LengthType = 0
	LengthSubpacketCount LengthType = 1
)

func (l LengthType) String() string {
	switch l {
	case LengthTotalBits:
		return "total_bits"
	case LengthSubpacketCount:
		return "subpacket_count"
	default:
		return fmt.Sprintf("length_type(%d)", uint8(l))
	}
}

// Framing records how a parsed packet was laid out on the wire so the
// encoder can reproduce it. Packets built by constructors carry none.
type Framing struct {
	// Literal: number of 4-bit groups.
	Groups int
	// Operator: framing mode and the declared bit length or child count.
	LengthType LengthType
	Length     int
}

// Packet is one node of a decoded transmission. Packets are immutable once
// built; Value must not be modified through the pointer.
type Packet struct {
	Version  uint8
	Kind     Kind
	Value    *big.Int
	Op       Operator
	Children []*Packet
	Framing  *Framing
}

// NewLiteral builds a literal packet holding a copy of value.
func NewLiteral(version uint8, value *big.Int) (*Packet, error) {
	if version > MaxVersion {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}
	if value == nil || value.Sign() < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLiteral, value)
	}
	return &Packet{Version: version, Kind: KindLiteral, Value: new(big.Int).Set(value)}, nil
}

// NewLiteralUint64 builds a literal packet from a machine integer.
func NewLiteralUint64(version uint8, value uint64) (*Packet, error) {
	return NewLiteral(version, new(big.Int).SetUint64(value))
}

// NewOperator builds an operator packet owning children, in order.
func NewOperator(version uint8, op Operator, children ...*Packet) (*Packet, error) {
	if version > MaxVersion {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperator, uint8(op))
	}
	if err := checkArity(op, len(children)); err != nil {
		return nil, err
	}
	for i, child := range children {
		if child == nil {
			return nil, fmt.Errorf("packet: %s child %d is nil", op, i)
		}
	}
	owned := make([]*Packet, len(children))
	copy(owned, children)
	return &Packet{Version: version, Kind: KindOperator, Op: op, Children: owned}, nil
}

func checkArity(op Operator, n int) error {
	lo, hi := op.Arity()
	if n < lo || (hi >= 0 && n > hi) {
		return ArityError{Op: op, Children: n}
	}
	return nil
}

// IsLiteral reports whether p is a literal packet.
func (p *Packet) IsLiteral() bool {
	return p.Kind == KindLiteral
}

// Validate walks the tree and checks every shape invariant, including that
// no packet is reachable twice.
func Validate(root *Packet) error {
	if root == nil {
		return fmt.Errorf("%w: nil packet", ErrInvalidLiteral)
	}
	seen := make(map[*Packet]struct{})
	stack := []*Packet{root}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, dup := seen[p]; dup {
			return ErrSharedPacket
		}
		seen[p] = struct{}{}
		if p.Version > MaxVersion {
			return fmt.Errorf("%w: %d", ErrInvalidVersion, p.Version)
		}
		switch p.Kind {
		case KindLiteral:
			if p.Value == nil || p.Value.Sign() < 0 {
				return fmt.Errorf("%w: %v", ErrInvalidLiteral, p.Value)
			}
			if len(p.Children) != 0 {
				return fmt.Errorf("%w: literal with %d children", ErrInvalidArity, len(p.Children))
			}
		case KindOperator:
			if !p.Op.Valid() {
				return fmt.Errorf("%w: %d", ErrUnknownOperator, uint8(p.Op))
			}
			if err := checkArity(p.Op, len(p.Children)); err != nil {
				return err
			}
			for _, child := range p.Children {
				if child == nil {
					return fmt.Errorf("packet: %s has a nil child", p.Op)
				}
				stack = append(stack, child)
			}
		default:
			return fmt.Errorf("packet: unknown kind %s", p.Kind)
		}
	}
	return nil
}

// String renders the packet as an expression, e.g. eq(sum(1, 3), product(2, 2)).
func (p *Packet) String() string {
	var sb strings.Builder
	p.writeExpr(&sb)
	return sb.String()
}

func (p *Packet) writeExpr(sb *strings.Builder) {
	if p == nil {
		sb.WriteString("<nil>")
		return
	}
	if p.Kind == KindLiteral {
		sb.WriteString(p.Value.String())
		return
	}
	sb.WriteString(p.Op.String())
	sb.WriteByte('(')
	for i, child := range p.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		child.writeExpr(sb)
	}
	sb.WriteByte(')')
}
