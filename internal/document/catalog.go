package document

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/zjrosen/linefocus/internal/log"
)

// DefaultMinTextLength is the trimmed length a block must exceed to be readable.
const DefaultMinTextLength = 10

// Catalog discovers blocks in a document.
type Catalog struct {
	selectors     *SelectorList
	minTextLength int
}

// NewCatalog builds a catalog from a selector list and a minimum text length.
func NewCatalog(selectors string, minTextLength int) (*Catalog, error) {
	list, err := ParseSelectors(selectors)
	if err != nil {
		return nil, err
	}
	return &Catalog{selectors: list, minTextLength: minTextLength}, nil
}

// DefaultCatalog uses DefaultSelectors and DefaultMinTextLength.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultSelectors, DefaultMinTextLength)
	if err != nil {
		panic(err)
	}
	return c
}

// LayoutBlocks returns every matching block in document order, regardless
// of length. Matches may nest: an outer block comes before its inner blocks
// and owns only the text outside them. An outer block left with nothing but
// whitespace, like a list item whose text sits in a paragraph, is dropped.
func (c *Catalog) LayoutBlocks(d *Document) []*Block {
	elems := c.collect(d.Body())
	registered := make([]*Block, 0, len(elems))
	for _, el := range elems {
		registered = append(registered, d.BlockFor(el))
	}

	blocks := registered[:0]
	for _, b := range registered {
		if strings.TrimSpace(b.FullText()) == "" && hasNested(b) {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func hasNested(b *Block) bool {
	var found bool
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && !found; c = c.NextSibling {
			if b.Nested(c) {
				found = true
				return
			}
			walk(c)
		}
	}
	walk(b.Element())
	return found
}

// FindBlocks returns the readable blocks: layout blocks whose trimmed text
// is longer than the minimum length.
func (c *Catalog) FindBlocks(d *Document) []*Block {
	var readable []*Block
	for _, b := range c.LayoutBlocks(d) {
		if utf8.RuneCountInString(strings.TrimSpace(b.FullText())) > c.minTextLength {
			readable = append(readable, b)
		}
	}
	log.Debug(log.CatDocument, "Found readable blocks", "count", len(readable))
	return readable
}

// Bind fixes the catalog to one document.
func (c *Catalog) Bind(d *Document) *BoundCatalog {
	return &BoundCatalog{catalog: c, doc: d}
}

func (c *Catalog) collect(n *html.Node) []*html.Node {
	var out []*html.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type != html.ElementNode {
			continue
		}
		if c.selectors.Matches(ch) {
			out = append(out, ch)
		}
		out = append(out, c.collect(ch)...)
	}
	return out
}

// BoundCatalog is a Catalog bound to a Document.
type BoundCatalog struct {
	catalog *Catalog
	doc     *Document
}

// FindBlocks returns the readable blocks of the bound document.
func (b *BoundCatalog) FindBlocks() []*Block { return b.catalog.FindBlocks(b.doc) }

// LayoutBlocks returns all rendered blocks of the bound document.
func (b *BoundCatalog) LayoutBlocks() []*Block { return b.catalog.LayoutBlocks(b.doc) }

// Document returns the bound document.
func (b *BoundCatalog) Document() *Document { return b.doc }
