package document

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Block is one navigable unit of text: a paragraph, heading, list item or
// code block. Its text is always read live from the tree, so it reflects
// any decoration currently splitting its text nodes.
//
// A block may contain other blocks, as a list item holds a nested list. The
// subtrees of those inner blocks are not part of the outer block's text.
type Block struct {
	ID  string
	el  *html.Node
	doc *Document
}

// Element returns the block's element node.
func (b *Block) Element() *html.Node { return b.el }

// Tag returns the element name, e.g. "p" or "h2".
func (b *Block) Tag() string { return b.el.Data }

// TextNodes returns the text nodes the block owns in document order,
// skipping the subtrees of nested blocks. Their lengths sum to
// len(b.FullText()).
func (b *Block) TextNodes() []*html.Node {
	var nodes []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				nodes = append(nodes, c)
			case html.ElementNode:
				if !b.Nested(c) {
					walk(c)
				}
			}
		}
	}
	walk(b.el)
	return nodes
}

// Nested reports whether n is the element of another block of the same
// document.
func (b *Block) Nested(n *html.Node) bool {
	if n == b.el || n.Type != html.ElementNode || b.doc == nil {
		return false
	}
	_, ok := b.doc.blocks[n]
	return ok
}

// FullText concatenates the text the block owns.
func (b *Block) FullText() string {
	var sb strings.Builder
	for _, n := range b.TextNodes() {
		sb.WriteString(n.Data)
	}
	return sb.String()
}

// Preformatted reports whether whitespace in the block is significant.
func (b *Block) Preformatted() bool {
	for n := b.el; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.DataAtom == atom.Pre {
			return true
		}
	}
	return false
}

// HeadingLevel returns 1..6 for h1..h6 and 0 otherwise.
func (b *Block) HeadingLevel() int {
	switch b.el.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// ListItem reports whether the block is a list item or sits directly inside one.
func (b *Block) ListItem() bool {
	if b.el.DataAtom == atom.Li {
		return true
	}
	return b.el.Parent != nil && b.el.Parent.DataAtom == atom.Li && b.el.PrevSibling == nil
}

// HasClass reports whether element n carries class.
func HasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, f := range strings.Fields(a.Val) {
				if f == class {
					return true
				}
			}
		}
	}
	return false
}

// AddClass adds class to element n if missing.
func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	for i, a := range n.Attr {
		if a.Key == "class" {
			if strings.TrimSpace(a.Val) == "" {
				n.Attr[i].Val = class
			} else {
				n.Attr[i].Val = a.Val + " " + class
			}
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}

// RemoveClass removes class from element n. An emptied class attribute is dropped.
func RemoveClass(n *html.Node, class string) {
	for i, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		var kept []string
		for _, f := range strings.Fields(a.Val) {
			if f != class {
				kept = append(kept, f)
			}
		}
		if len(kept) == 0 {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
		} else {
			n.Attr[i].Val = strings.Join(kept, " ")
		}
		return
	}
}
