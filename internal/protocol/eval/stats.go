package eval

import "github.com/danmuck/bitsctl/internal/protocol/packet"

// Stats summarizes the shape of a packet tree.
type Stats struct {
	Count     int
	Depth     int
	Literals  int
	Operators map[packet.Operator]int
}

// Collect walks p and counts packets per shape. Depth counts the outermost
// packet as 1.
func Collect(p *packet.Packet) Stats {
	s := Stats{Operators: make(map[packet.Operator]int)}
	if p == nil {
		return s
	}
	type item struct {
		p     *packet.Packet
		depth int
	}
	stack := []item{{p: p, depth: 1}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.Count++
		if cur.depth > s.Depth {
			s.Depth = cur.depth
		}
		if cur.p.IsLiteral() {
			s.Literals++
			continue
		}
		s.Operators[cur.p.Op]++
		for _, child := range cur.p.Children {
			stack = append(stack, item{p: child, depth: cur.depth + 1})
		}
	}
	return s
}
