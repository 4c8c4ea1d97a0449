// Package document loads HTML and Markdown into a mutable node tree and
// discovers the text blocks a reader can step through.
package document

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/zjrosen/linefocus/internal/log"
)

// Marker classes applied to the tree by the highlighter and the reader.
// Presentation keys off these names.
const (
	HighlightClass = "line-focus-highlight" // precise sub-range decoration
	CurrentClass   = "line-focus-current"   // whole-block fallback decoration
	ActiveClass    = "line-focus-active"    // set on <body> while reading mode is on
)

// Format identifies the source markup of a document.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts "html", "markdown" or "md".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html", "htm":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown document format %q (must be \"html\" or \"markdown\")", s)
	}
}

// FormatFromPath guesses the format from a file extension, defaulting to Markdown.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	default:
		return FormatMarkdown
	}
}

// Document is a parsed node tree plus the blocks discovered in it.
type Document struct {
	Root   *html.Node
	blocks map[*html.Node]*Block
}

// Load reads and parses a document.
func Load(r io.Reader, format Format) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return Parse(src, format)
}

// Parse parses src. Markdown is converted to HTML first.
func Parse(src []byte, format Format) (*Document, error) {
	if format == FormatMarkdown {
		var buf bytes.Buffer
		md := goldmark.New(goldmark.WithExtensions(extension.GFM))
		if err := md.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("converting markdown: %w", err)
		}
		src = buf.Bytes()
	}

	root, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	log.Debug(log.CatDocument, "Parsed document", "format", format, "bytes", len(src))
	return &Document{Root: root, blocks: make(map[*html.Node]*Block)}, nil
}

// Body returns the <body> element, or the root when there is none.
func (d *Document) Body() *html.Node {
	if body := findElement(d.Root, atom.Body); body != nil {
		return body
	}
	return d.Root
}

// BlockFor returns the Block wrapping el, creating it on first use.
// The same element always yields the same Block and ID for this Document.
func (d *Document) BlockFor(el *html.Node) *Block {
	if b, ok := d.blocks[el]; ok {
		return b
	}
	b := &Block{ID: uuid.NewString(), el: el, doc: d}
	d.blocks[el] = b
	return b
}

// Render serializes the current tree, decorations included.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.Root)
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// SetActive adds or removes the active marker on <body>.
func (d *Document) SetActive(on bool) {
	if on {
		AddClass(d.Body(), ActiveClass)
	} else {
		RemoveClass(d.Body(), ActiveClass)
	}
}
