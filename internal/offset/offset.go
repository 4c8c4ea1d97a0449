// Package offset maps global character offsets within a block's text to
// (text node, local offset) positions.
//
// Offsets are byte offsets into the concatenated text of the nodes.
package offset

import "golang.org/x/net/html"

// Position is a location inside one text node.
type Position struct {
	Node   *html.Node
	Offset int
}

// AtEnd reports whether the position sits after the last byte of its node.
func (p Position) AtEnd() bool {
	return p.Node != nil && p.Offset == len(p.Node.Data)
}

// Locate returns the node whose span contains offset. An offset that lands
// exactly on a boundary between two nodes resolves to the end of the earlier
// node. Offsets past the total length clamp to the end of the last node and
// negative offsets clamp to zero. It fails only when nodes is empty.
func Locate(nodes []*html.Node, offset int) (Position, bool) {
	if len(nodes) == 0 {
		return Position{}, false
	}
	if offset < 0 {
		offset = 0
	}

	current := 0
	for _, n := range nodes {
		length := len(n.Data)
		if current+length >= offset {
			return Position{Node: n, Offset: min(offset-current, length)}, true
		}
		current += length
	}

	last := nodes[len(nodes)-1]
	return Position{Node: last, Offset: len(last.Data)}, true
}

// LocateForward is Locate with the opposite boundary bias: an offset on a
// node boundary resolves to the start of the following non-empty node. Use it
// for the start of a range so the range does not begin with an empty tail.
func LocateForward(nodes []*html.Node, offset int) (Position, bool) {
	pos, ok := Locate(nodes, offset)
	if !ok || !pos.AtEnd() {
		return pos, ok
	}

	for i, n := range nodes {
		if n != pos.Node {
			continue
		}
		for _, next := range nodes[i+1:] {
			if len(next.Data) > 0 {
				return Position{Node: next, Offset: 0}, true
			}
		}
		break
	}
	return pos, true
}

// TotalLength returns the summed length of all nodes.
func TotalLength(nodes []*html.Node) int {
	total := 0
	for _, n := range nodes {
		total += len(n.Data)
	}
	return total
}
