package eval

import "github.com/danmuck/bitsctl/internal/protocol/packet"

// SumVersions returns the sum of the version fields of p and every
// descendant.
func SumVersions(p *packet.Packet) uint64 {
	if p == nil {
		return 0
	}
	var sum uint64
	stack := []*packet.Packet{p}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sum += uint64(cur.Version)
		stack = append(stack, cur.Children...)
	}
	return sum
}
