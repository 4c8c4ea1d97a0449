package highlight

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/offset"
)

// splitPair records an element split in two. orig keeps the leading children,
// clone holds the trailing ones and directly follows orig.
type splitPair struct {
	orig  *html.Node
	clone *html.Node
}

// merge moves clone's children back into orig and removes clone.
func (p splitPair) merge() {
	for c := p.clone.FirstChild; c != nil; c = p.clone.FirstChild {
		p.clone.RemoveChild(c)
		p.orig.AppendChild(c)
	}
	if p.clone.Parent != nil {
		p.clone.Parent.RemoveChild(p.clone)
	}
}

type wrapped struct {
	span   *html.Node
	splits []splitPair
}

// wrapLine wraps the text in [start, end) of b in a highlight span. Every
// check runs before the tree is touched, so a returned error leaves b intact.
func wrapLine(b *document.Block, start, end int) (wrapped, Strategy, error) {
	nodes := b.TextNodes()
	if len(nodes) == 0 || start >= end || start >= offset.TotalLength(nodes) {
		return wrapped{}, StrategyNone, fmt.Errorf("block %s range [%d,%d): %w", b.ID, start, end, ErrMapping)
	}

	from, ok := offset.LocateForward(nodes, start)
	if !ok {
		return wrapped{}, StrategyNone, ErrMapping
	}
	to, ok := offset.Locate(nodes, end)
	if !ok {
		return wrapped{}, StrategyNone, ErrMapping
	}

	lca := commonAncestor(from.Node, to.Node)
	if lca == nil {
		return wrapped{}, StrategyNone, fmt.Errorf("no common ancestor: %w", ErrMapping)
	}
	if isStructural(lca) {
		return wrapped{}, StrategyNone, fmt.Errorf("<%s> cannot hold a span: %w", lca.Data, ErrStructuralRejection)
	}
	for _, n := range []*html.Node{from.Node, to.Node} {
		for p := n.Parent; p != lca; p = p.Parent {
			if !splittable(p) {
				return wrapped{}, StrategyNone, fmt.Errorf("<%s> cannot be split: %w", p.Data, ErrStructuralRejection)
			}
		}
	}

	if crossesNested(b, from.Node, to.Node) {
		return wrapped{}, StrategyNone, fmt.Errorf("range crosses a nested block: %w", ErrStructuralRejection)
	}

	strategy := StrategyExtract
	if from.Node.Parent == to.Node.Parent {
		strategy = StrategySurround
	}

	// Split the boundary text nodes so the range starts and ends on node edges.
	first := from.Node
	if from.Offset > 0 {
		first = splitText(from.Node, from.Offset)
		if to.Node == from.Node {
			to = offset.Position{Node: first, Offset: to.Offset - from.Offset}
		}
	}
	last := to.Node
	if to.Offset < len(to.Node.Data) {
		splitText(to.Node, to.Offset)
	}

	var w wrapped

	// Lift the start to a child of lca, splitting ancestors it does not begin.
	startChild := first
	for startChild.Parent != lca {
		p := startChild.Parent
		if startChild != p.FirstChild {
			clone := splitBefore(p, startChild)
			w.splits = append(w.splits, splitPair{orig: p, clone: clone})
			startChild = clone
		} else {
			startChild = p
		}
	}

	// Same for the end, splitting ancestors it does not finish.
	endChild := last
	for endChild.Parent != lca {
		p := endChild.Parent
		if endChild != p.LastChild {
			clone := splitBefore(p, endChild.NextSibling)
			w.splits = append(w.splits, splitPair{orig: p, clone: clone})
		}
		endChild = p
	}

	w.span = &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "class", Val: document.HighlightClass}},
	}
	lca.InsertBefore(w.span, startChild)
	for c := startChild; ; {
		next := c.NextSibling
		lca.RemoveChild(c)
		w.span.AppendChild(c)
		if c == endChild {
			break
		}
		c = next
	}

	return w, strategy, nil
}

// unwrap replaces span with its children.
func unwrap(span *html.Node) {
	parent := span.Parent
	if parent == nil {
		return
	}
	for c := span.FirstChild; c != nil; c = span.FirstChild {
		span.RemoveChild(c)
		parent.InsertBefore(c, span)
	}
	parent.RemoveChild(span)
}

// splitText cuts text node n at byte offset at and returns the new node
// holding the tail, inserted right after n.
func splitText(n *html.Node, at int) *html.Node {
	tail := &html.Node{Type: html.TextNode, Data: n.Data[at:]}
	n.Data = n.Data[:at]
	n.Parent.InsertBefore(tail, n.NextSibling)
	return tail
}

// splitBefore moves child and every following sibling out of p into a
// shallow clone of p inserted after p, and returns the clone.
func splitBefore(p, child *html.Node) *html.Node {
	clone := &html.Node{
		Type:      p.Type,
		Data:      p.Data,
		DataAtom:  p.DataAtom,
		Namespace: p.Namespace,
		Attr:      append([]html.Attribute(nil), p.Attr...),
	}
	p.Parent.InsertBefore(clone, p.NextSibling)
	for c := child; c != nil; {
		next := c.NextSibling
		p.RemoveChild(c)
		clone.AppendChild(c)
		c = next
	}
	return clone
}

// crossesNested reports whether a nested block of b lies between the text
// nodes from and to.
func crossesNested(b *document.Block, from, to *html.Node) bool {
	inside, crossed := false, false
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c == from {
				inside = true
			}
			if c == to {
				return true
			}
			if inside && b.Nested(c) {
				crossed = true
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(b.Element())
	return crossed
}

func commonAncestor(a, b *html.Node) *html.Node {
	seen := make(map[*html.Node]bool)
	for n := a.Parent; n != nil; n = n.Parent {
		seen[n] = true
	}
	for n := b.Parent; n != nil; n = n.Parent {
		if seen[n] {
			return n
		}
	}
	return nil
}

// splittable reports whether an element may be cloned into two halves.
// Elements with an id would duplicate it; structural elements would produce
// invalid markup.
func splittable(n *html.Node) bool {
	if n.Type != html.ElementNode || isStructural(n) {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "id" {
			return false
		}
	}
	return true
}

func isStructural(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Table, atom.Thead, atom.Tbody, atom.Tfoot, atom.Tr, atom.Ul, atom.Ol, atom.Select:
		return true
	}
	return false
}
