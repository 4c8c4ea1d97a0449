// Package render draws an arranged document as styled terminal rows. Styling
// is derived only from the tree: the highlight span, the current-block marker
// and the active marker on <body> select the focus styles.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/layout"
	"github.com/zjrosen/linefocus/internal/ui/styles"
)

// Gutter is the number of cells left of the text column. List bullets are
// drawn there.
const Gutter = 2

const bullet = "•"

type flags uint8

const (
	flagHighlight flags = 1 << iota
	flagCode
	flagBold
	flagItalic
)

// run is a range of block text sharing the same inline flags.
type run struct {
	start, end int
	flags      flags
}

var (
	bulletStyle lipgloss.Style
	gutterPad   string
)

func init() {
	RebuildStyles()
	styles.RegisterStyleRebuilder(RebuildStyles)
}

// RebuildStyles refreshes the gutter styles after a theme change.
func RebuildStyles() {
	bulletStyle = styles.BulletStyle
	gutterPad = strings.Repeat(" ", Gutter-lipgloss.Width(bullet))
}

// Lines renders every row of the arranged document, spacing rows included.
func Lines(doc *document.Document, e *layout.Engine) []string {
	out := make([]string, e.TotalRows())
	active := document.HasClass(doc.Body(), document.ActiveClass)
	for _, p := range e.Placements() {
		rows := Block(p.Block, e.Layout(p.Block), active)
		copy(out[p.Origin:], rows)
	}
	return out
}

// Block renders the rows of one laid-out block.
func Block(b *document.Block, bl *layout.BlockLayout, active bool) []string {
	runs := inlineRuns(b)
	current := document.HasClass(b.Element(), document.CurrentClass)
	base := styles.TextStyle
	switch {
	case b.HeadingLevel() > 0:
		base = styles.HeadingStyle
	case b.Preformatted():
		base = styles.CodeStyle
	}

	rows := make([]string, bl.Rows)
	ri := 0
	for r := range rows {
		var sb strings.Builder
		if r == 0 && b.ListItem() {
			sb.WriteString(bulletStyle.Render(bullet))
			sb.WriteString(gutterPad)
		} else {
			sb.WriteString(strings.Repeat(" ", Gutter))
		}

		col := 0
		var pending strings.Builder
		var pendingFlags flags
		flush := func() {
			if pending.Len() > 0 {
				sb.WriteString(style(base, pendingFlags, current, active).Render(pending.String()))
				pending.Reset()
			}
		}
		for _, g := range bl.RowGlyphs(r) {
			if g.Width == 0 {
				continue
			}
			for ri < len(runs)-1 && runs[ri].end <= g.Start {
				ri++
			}
			f := runs[ri].flags
			if g.Col > col {
				flush()
				sb.WriteString(strings.Repeat(" ", g.Col-col))
			}
			if f != pendingFlags {
				flush()
				pendingFlags = f
			}
			pending.WriteString(g.Text)
			col = g.Col + g.Width
		}
		flush()
		rows[r] = sb.String()
	}
	return rows
}

// style picks the style of a text run. The highlight wins over the block
// marker, which wins over dimming.
func style(base lipgloss.Style, f flags, current, active bool) lipgloss.Style {
	if f&flagCode != 0 {
		base = styles.CodeStyle
	}
	s := base
	switch {
	case f&flagHighlight != 0:
		s = styles.HighlightStyle
	case current:
		s = base.Inherit(styles.CurrentStyle)
	case active:
		s = styles.DimStyle
	}
	if f&flagBold != 0 || base.GetBold() {
		s = s.Bold(true)
	}
	if f&flagItalic != 0 {
		s = s.Italic(true)
	}
	return s
}

// inlineRuns maps the block text to inline formatting, one run per text node.
func inlineRuns(b *document.Block) []run {
	nodes := b.TextNodes()
	runs := make([]run, 0, len(nodes))
	offset := 0
	for _, n := range nodes {
		runs = append(runs, run{start: offset, end: offset + len(n.Data), flags: nodeFlags(n, b.Element())})
		offset += len(n.Data)
	}
	if len(runs) == 0 {
		runs = append(runs, run{})
	}
	return runs
}

func nodeFlags(n, stop *html.Node) flags {
	var f flags
	for p := n.Parent; p != nil && p != stop.Parent; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		switch p.DataAtom {
		case atom.Code, atom.Kbd, atom.Samp:
			f |= flagCode
		case atom.Strong, atom.B:
			f |= flagBold
		case atom.Em, atom.I:
			f |= flagItalic
		}
		if document.HasClass(p, document.HighlightClass) {
			f |= flagHighlight
		}
	}
	return f
}
