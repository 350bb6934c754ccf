package main

import (
	"math/big"
	"testing"

	"github.com/danmuck/bitsctl/internal/protocol/packet"
)

func productOfTwoWideLiterals(t *testing.T) string {
	t.Helper()
	v := new(big.Int).Lsh(big.NewInt(1), 60)
	a, err := packet.NewLiteral(0, v)
	if err != nil {
		t.Fatalf("literal: %v", err)
	}
	b, err := packet.NewLiteral(0, v)
	if err != nil {
		t.Fatalf("literal: %v", err)
	}
	prod, err := packet.NewOperator(0, packet.OpProduct, a, b)
	if err != nil {
		t.Fatalf("operator: %v", err)
	}
	hex, err := packet.EncodeHex(prod)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return hex
}
