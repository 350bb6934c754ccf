package packet

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transmissions = []string{
	"D2FE28",
	"38006F45291200",
	"EE00D40C823060",
	"8A004A801A8002F478",
	"620080001611562C8802118E34",
	"C0015000016115A2E0802F182340",
	"A0016C880162017C3686B18A3D4780",
	"9C0141080250320F1802104A08",
}

func TestEncodeReproducesParsedInput(t *testing.T) {
	for _, in := range transmissions {
		p, err := Decode(in)
		require.NoError(t, err, in)

		out, err := EncodeHex(p)
		require.NoError(t, err, in)
		require.True(t, strings.HasPrefix(in, out), "in=%s out=%s", in, out)
		assert.Empty(t, strings.Trim(in[len(out):], "0"), "non-padding tail for %s", in)
	}
}

func TestEncodeConstructedTree(t *testing.T) {
	one, _ := NewLiteralUint64(0, 1)
	three, _ := NewLiteralUint64(1, 3)
	sum, err := NewOperator(2, OpSum, one, three)
	require.NoError(t, err)
	two, _ := NewLiteralUint64(3, 2)
	two2, _ := NewLiteralUint64(4, 2)
	prod, err := NewOperator(5, OpProduct, two, two2)
	require.NoError(t, err)
	root, err := NewOperator(6, OpEqualTo, sum, prod)
	require.NoError(t, err)

	hex, err := EncodeHex(root)
	require.NoError(t, err)

	back, err := Decode(hex)
	require.NoError(t, err)
	assert.Equal(t, root.String(), back.String())
	assert.Equal(t, LengthSubpacketCount, back.Framing.LengthType)
	assert.Equal(t, uint8(6), back.Version)
	assert.Equal(t, uint8(4), back.Children[1].Children[1].Version)
}

func TestEncodeZeroLiteralUsesOneGroup(t *testing.T) {
	zero, _ := NewLiteralUint64(0, 0)
	hex, err := EncodeHex(zero)
	require.NoError(t, err)
	// 000 100 0 0000 + 1 padding bit.
	assert.Equal(t, "100", hex)
}

func TestEncodeRejectsInvalidTree(t *testing.T) {
	bad := &Packet{Kind: KindOperator, Op: OpSum}
	_, err := EncodeHex(bad)
	if !errors.Is(err, ErrInvalidArity) {
		t.Fatalf("expected ErrInvalidArity, got %v", err)
	}
}

func TestEncodeWideOperatorFallsBackToTotalBits(t *testing.T) {
	p, err := NewOperator(0, OpSum, zeroLiterals(maxCount+1)...)
	require.NoError(t, err)

	hex, err := EncodeHex(p)
	require.NoError(t, err)
	back, err := Decode(hex)
	require.NoError(t, err)
	assert.Equal(t, LengthTotalBits, back.Framing.LengthType)
	assert.Len(t, back.Children, maxCount+1)
}

func TestEncodeFrameTooLarge(t *testing.T) {
	// 3000 literals of 11 bits exceed the 15-bit total length field.
	p, err := NewOperator(0, OpSum, zeroLiterals(3000)...)
	require.NoError(t, err)

	_, err = EncodeHex(p)
	if !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
}

func zeroLiterals(n int) []*Packet {
	out := make([]*Packet, n)
	for i := range out {
		out[i], _ = NewLiteralUint64(0, 0)
	}
	return out
}
