package dump

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// maxNestedLevels is the decoder nesting limit. Each packet below the
// root costs two levels (its map and its parent's children array).
const maxNestedLevels = 65535

// MaxCBORDepth is the deepest packet tree DecodeCBOR can read back.
const MaxCBORDepth = (maxNestedLevels + 1) / 2

var ErrTooDeep = errors.New("dump: tree too deep for CBOR")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		IndefLength:     cbor.IndefLengthForbidden,
		MaxNestedLevels: maxNestedLevels,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// EncodeCBOR encodes n with integer keys in canonical order. Trees deeper
// than MaxCBORDepth are refused so every dump can be decoded again.
func EncodeCBOR(n Node) ([]byte, error) {
	if d := depth(n); d > MaxCBORDepth {
		return nil, fmt.Errorf("%w: depth %d, limit %d", ErrTooDeep, d, MaxCBORDepth)
	}
	return encMode.Marshal(n)
}

func depth(root Node) int {
	type item struct {
		n     *Node
		depth int
	}
	deepest := 0
	stack := []item{{n: &root, depth: 1}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.depth > deepest {
			deepest = cur.depth
		}
		for i := range cur.n.Children {
			stack = append(stack, item{n: &cur.n.Children[i], depth: cur.depth + 1})
		}
	}
	return deepest
}

// DecodeCBOR decodes a tree written by EncodeCBOR.
func DecodeCBOR(data []byte) (Node, error) {
	var n Node
	if err := decMode.Unmarshal(data, &n); err != nil {
		return Node{}, fmt.Errorf("failed to decode tree: %w", err)
	}
	return n, nil
}
