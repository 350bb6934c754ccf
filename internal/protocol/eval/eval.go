package eval

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/danmuck/bitsctl/internal/protocol/packet"
)

var (
	ErrOverflow     = errors.New("eval: value overflows uint64")
	ErrOperandCount = errors.New("eval: wrong operand count")
	ErrUnknownKind  = errors.New("eval: unknown packet kind")
	ErrNilPacket    = errors.New("eval: nil packet")
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// Evaluate reduces p to its value. The result is a fresh big.Int owned by
// the caller.
func Evaluate(p *packet.Packet) (*big.Int, error) {
	if p == nil {
		return nil, ErrNilPacket
	}
	type step struct {
		p    *packet.Packet
		next int
	}
	var values []*big.Int
	stack := []step{{p: p}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		switch top.p.Kind {
		case packet.KindLiteral:
			values = append(values, new(big.Int).Set(top.p.Value))
			stack = stack[:len(stack)-1]
		case packet.KindOperator:
			if top.next < len(top.p.Children) {
				child := top.p.Children[top.next]
				if child == nil {
					return nil, ErrNilPacket
				}
				top.next++
				stack = append(stack, step{p: child})
				continue
			}
			n := len(top.p.Children)
			v, err := apply(top.p.Op, values[len(values)-n:])
			if err != nil {
				return nil, err
			}
			values = append(values[:len(values)-n], v)
			stack = stack[:len(stack)-1]
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownKind, top.p.Kind)
		}
	}
	return values[0], nil
}

// EvaluateUint64 is Evaluate narrowed to uint64.
func EvaluateUint64(p *packet.Packet) (uint64, error) {
	v, err := Evaluate(p)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrOverflow, v)
	}
	return v.Uint64(), nil
}

func apply(op packet.Operator, args []*big.Int) (*big.Int, error) {
	lo, hi := op.Arity()
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		return nil, fmt.Errorf("%w: %s with %d operands", ErrOperandCount, op, len(args))
	}
	switch op {
	case packet.OpSum:
		acc := new(big.Int)
		for _, a := range args {
			acc.Add(acc, a)
		}
		return acc, nil
	case packet.OpProduct:
		acc := new(big.Int).Set(one)
		for _, a := range args {
			acc.Mul(acc, a)
		}
		return acc, nil
	case packet.OpMinimum:
		acc := args[0]
		for _, a := range args[1:] {
			if a.Cmp(acc) < 0 {
				acc = a
			}
		}
		return acc, nil
	case packet.OpMaximum:
		acc := args[0]
		for _, a := range args[1:] {
			if a.Cmp(acc) > 0 {
				acc = a
			}
		}
		return acc, nil
	case packet.OpGreaterThan:
		return truth(args[0].Cmp(args[1]) > 0), nil
	case packet.OpLessThan:
		return truth(args[0].Cmp(args[1]) < 0), nil
	case packet.OpEqualTo:
		return truth(args[0].Cmp(args[1]) == 0), nil
	default:
		return nil, fmt.Errorf("%w: %d", packet.ErrUnknownOperator, uint8(op))
	}
}

func truth(b bool) *big.Int {
	if b {
		return new(big.Int).Set(one)
	}
	return new(big.Int).Set(zero)
}
