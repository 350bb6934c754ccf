package packet

import (
	"errors"
	"math/big"
	"testing"
)

func TestNewLiteralCopiesValue(t *testing.T) {
	v := big.NewInt(41)
	p, err := NewLiteral(3, v)
	if err != nil {
		t.Fatalf("new literal: %v", err)
	}
	v.SetInt64(7)
	if p.Value.Int64() != 41 {
		t.Fatalf("literal aliased caller value: %s", p.Value)
	}
}

func TestNewLiteralRejectsBadInput(t *testing.T) {
	if _, err := NewLiteralUint64(8, 1); !errors.Is(err, ErrInvalidVersion) {
		t.Fatalf("expected ErrInvalidVersion, got %v", err)
	}
	if _, err := NewLiteral(0, big.NewInt(-1)); !errors.Is(err, ErrInvalidLiteral) {
		t.Fatalf("expected ErrInvalidLiteral, got %v", err)
	}
	if _, err := NewLiteral(0, nil); !errors.Is(err, ErrInvalidLiteral) {
		t.Fatalf("expected ErrInvalidLiteral, got %v", err)
	}
}

func TestNewOperatorArity(t *testing.T) {
	a, _ := NewLiteralUint64(0, 1)
	b, _ := NewLiteralUint64(0, 2)
	c, _ := NewLiteralUint64(0, 3)

	cases := []struct {
		op       Operator
		children []*Packet
		ok       bool
	}{
		{OpSum, []*Packet{a}, true},
		{OpSum, nil, false},
		{OpProduct, []*Packet{a, b, c}, true},
		{OpMinimum, nil, false},
		{OpMaximum, []*Packet{a}, true},
		{OpGreaterThan, []*Packet{a, b}, true},
		{OpGreaterThan, []*Packet{a}, false},
		{OpLessThan, []*Packet{a, b, c}, false},
		{OpEqualTo, []*Packet{a, b}, true},
	}
	for _, tc := range cases {
		_, err := NewOperator(0, tc.op, tc.children...)
		if tc.ok && err != nil {
			t.Fatalf("%s with %d children: %v", tc.op, len(tc.children), err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidArity) {
			t.Fatalf("%s with %d children: expected ErrInvalidArity, got %v", tc.op, len(tc.children), err)
		}
	}
}

func TestNewOperatorRejectsLiteralTypeID(t *testing.T) {
	a, _ := NewLiteralUint64(0, 1)
	if _, err := NewOperator(0, Operator(TypeLiteral), a); !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}
}

func TestValidateDetectsSharedChild(t *testing.T) {
	a, _ := NewLiteralUint64(0, 1)
	p, err := NewOperator(0, OpEqualTo, a, a)
	if err != nil {
		t.Fatalf("new operator: %v", err)
	}
	if err := Validate(p); !errors.Is(err, ErrSharedPacket) {
		t.Fatalf("expected ErrSharedPacket, got %v", err)
	}
}

func TestValidateHandBuiltTree(t *testing.T) {
	bad := &Packet{Kind: KindOperator, Op: OpLessThan, Children: []*Packet{{Kind: KindLiteral, Value: big.NewInt(1)}}}
	if err := Validate(bad); !errors.Is(err, ErrInvalidArity) {
		t.Fatalf("expected ErrInvalidArity, got %v", err)
	}
	leafWithChildren := &Packet{Kind: KindLiteral, Value: big.NewInt(1), Children: []*Packet{{Kind: KindLiteral, Value: big.NewInt(2)}}}
	if err := Validate(leafWithChildren); !errors.Is(err, ErrInvalidArity) {
		t.Fatalf("expected ErrInvalidArity, got %v", err)
	}
}

func TestOperatorNames(t *testing.T) {
	for id := uint8(0); id < 8; id++ {
		op, ok := OperatorFromTypeID(id)
		if id == TypeLiteral {
			if ok {
				t.Fatalf("type 4 must not map to an operator")
			}
			continue
		}
		if !ok {
			t.Fatalf("type %d did not map", id)
		}
		back, ok := ParseOperator(op.String())
		if !ok || back != op {
			t.Fatalf("parse %q: got %v %v", op.String(), back, ok)
		}
	}
}
