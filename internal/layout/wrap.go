package layout

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Glyph is one grapheme cluster placed on the terminal grid. Start and End
// are byte offsets into the block text. Collapsed whitespace and line feeds
// have Width 0.
type Glyph struct {
	Start int
	End   int
	Row   int
	Col   int
	Width int
	Text  string
}

// Space reports whether the glyph is whitespace.
func (g Glyph) Space() bool {
	r, _ := utf8.DecodeRuneInString(g.Text)
	return unicode.IsSpace(r)
}

type grapheme struct {
	start, end int
	text       string
	width      int
	space      bool
	newline    bool
}

func graphemes(text string) []grapheme {
	var out []grapheme
	state := -1
	offset := 0
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		r, _ := utf8.DecodeRuneInString(cluster)
		g := grapheme{
			start:   offset,
			end:     offset + len(cluster),
			text:    cluster,
			width:   runewidth.StringWidth(cluster),
			space:   unicode.IsSpace(r),
			newline: r == '\n' || cluster == "\r\n",
		}
		if g.space {
			g.width = 1
		}
		out = append(out, g)
		offset = g.end
	}
	return out
}

// wrap lays text out on a grid width cells wide and returns the glyphs and
// the number of rows used.
//
// Flowing text wraps greedily at whitespace. A whitespace run renders as one
// cell, hangs at the end of a full row and vanishes at the start of a row.
// Words wider than the row are broken between graphemes. Preformatted text
// keeps every space, breaks rows at line feeds and hard-wraps at the width.
func wrap(text string, width int, pre bool) ([]Glyph, int) {
	if width < 1 {
		width = 1
	}
	gs := graphemes(text)
	glyphs := make([]Glyph, 0, len(gs))
	row, col := 0, 0

	place := func(g grapheme, w int) {
		glyphs = append(glyphs, Glyph{Start: g.start, End: g.end, Row: row, Col: col, Width: w, Text: g.text})
		col += w
	}

	if pre {
		for _, g := range gs {
			if g.newline {
				place(g, 0)
				row, col = row+1, 0
				continue
			}
			if col > 0 && col+g.width > width {
				row, col = row+1, 0
			}
			place(g, g.width)
		}
		return glyphs, row + 1
	}

	for i := 0; i < len(gs); {
		j := i
		if gs[i].space {
			for j < len(gs) && gs[j].space {
				j++
			}
			for k := i; k < j; k++ {
				w := 0
				if k == i && col > 0 && col < width {
					w = 1
				}
				place(gs[k], w)
			}
			i = j
			continue
		}

		wordWidth := 0
		for j < len(gs) && !gs[j].space {
			wordWidth += gs[j].width
			j++
		}
		if col > 0 && col+wordWidth > width {
			row, col = row+1, 0
		}
		for k := i; k < j; k++ {
			if col > 0 && col+gs[k].width > width {
				row, col = row+1, 0
			}
			place(gs[k], gs[k].width)
		}
		i = j
	}
	return glyphs, row + 1
}
