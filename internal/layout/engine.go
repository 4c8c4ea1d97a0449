// Package layout is a terminal layout engine for document blocks. It wraps
// block text onto a grid of cells and answers geometry queries for text
// ranges, which makes it the layout oracle for visual line segmentation.
package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/log"
	"github.com/zjrosen/linefocus/internal/segment"
)

var (
	// ErrNotArranged is returned when a block has no position in the layout.
	ErrNotArranged = errors.New("block is not arranged")
	// ErrEmptyRange is returned for ranges that select no text.
	ErrEmptyRange = errors.New("empty or out of bounds range")
)

// Options configures the grid and its scale in layout units.
type Options struct {
	// Width of the text column in cells.
	Width int
	// CellWidth and LineHeight convert cells to layout units.
	CellWidth  float64
	LineHeight float64
	// BlockSpacing is the number of blank rows between blocks.
	BlockSpacing int
}

// DefaultOptions uses an 80 cell column and 8x16 unit cells.
func DefaultOptions() Options {
	return Options{
		Width:        80,
		CellWidth:    8,
		LineHeight:   16,
		BlockSpacing: 1,
	}
}

// BlockLayout is a block wrapped at one width.
type BlockLayout struct {
	Block  *document.Block
	Glyphs []Glyph
	Rows   int
	Width  int
}

// glyphAt returns the index of the first glyph ending after offset.
func (bl *BlockLayout) glyphAt(offset int) int {
	return sort.Search(len(bl.Glyphs), func(i int) bool { return bl.Glyphs[i].End > offset })
}

// RowGlyphs returns the glyphs placed on row.
func (bl *BlockLayout) RowGlyphs(row int) []Glyph {
	lo := sort.Search(len(bl.Glyphs), func(i int) bool { return bl.Glyphs[i].Row >= row })
	hi := sort.Search(len(bl.Glyphs), func(i int) bool { return bl.Glyphs[i].Row > row })
	return bl.Glyphs[lo:hi]
}

// Placement is a block's position in the arranged document.
type Placement struct {
	Block  *document.Block
	Origin int // first row
	Rows   int
}

// Engine lays out an ordered list of blocks.
type Engine struct {
	opts       Options
	cache      *layoutCache
	placements []Placement
	index      map[string]int
	totalRows  int
}

// NewEngine creates an engine with no arranged blocks.
func NewEngine(opts Options) *Engine {
	if opts.Width < 1 {
		opts.Width = 1
	}
	return &Engine{
		opts:  opts,
		cache: newLayoutCache(),
		index: make(map[string]int),
	}
}

// Options returns the active options.
func (e *Engine) Options() Options { return e.opts }

// Width returns the column width in cells.
func (e *Engine) Width() int { return e.opts.Width }

// SetWidth changes the column width, discards cached layouts and re-arranges
// the current blocks. It reports whether the width changed.
func (e *Engine) SetWidth(width int) bool {
	if width < 1 {
		width = 1
	}
	if width == e.opts.Width {
		return false
	}
	log.Debug(log.CatLayout, "Width changed", "from", e.opts.Width, "to", width)
	e.opts.Width = width
	e.cache.flush()
	e.Arrange(e.Blocks())
	return true
}

// Arrange stacks blocks top to bottom in order. Headings after the first
// block get one extra blank row above them.
func (e *Engine) Arrange(blocks []*document.Block) {
	e.placements = make([]Placement, 0, len(blocks))
	e.index = make(map[string]int, len(blocks))
	row := 0
	for i, b := range blocks {
		if i > 0 {
			row += e.opts.BlockSpacing
			if b.HeadingLevel() > 0 {
				row++
			}
		}
		bl := e.Layout(b)
		e.index[b.ID] = len(e.placements)
		e.placements = append(e.placements, Placement{Block: b, Origin: row, Rows: bl.Rows})
		row += bl.Rows
	}
	e.totalRows = row
}

// Reset drops all arranged blocks and cached layouts.
func (e *Engine) Reset() {
	e.cache.flush()
	e.Arrange(nil)
}

// Blocks returns the arranged blocks in order.
func (e *Engine) Blocks() []*document.Block {
	blocks := make([]*document.Block, len(e.placements))
	for i, p := range e.placements {
		blocks[i] = p.Block
	}
	return blocks
}

// Placements returns the arranged blocks with their rows.
func (e *Engine) Placements() []Placement { return e.placements }

// TotalRows returns the height of the arranged document.
func (e *Engine) TotalRows() int { return e.totalRows }

// Layout wraps b at the current width, using the cache when possible.
func (e *Engine) Layout(b *document.Block) *BlockLayout {
	if bl, ok := e.cache.get(b.ID, e.opts.Width); ok {
		return bl
	}
	glyphs, rows := wrap(b.FullText(), e.opts.Width, b.Preformatted())
	bl := &BlockLayout{Block: b, Glyphs: glyphs, Rows: rows, Width: e.opts.Width}
	e.cache.set(b.ID, e.opts.Width, bl)
	return bl
}

// Placement returns where b is arranged.
func (e *Engine) Placement(b *document.Block) (Placement, bool) {
	i, ok := e.index[b.ID]
	if !ok {
		return Placement{}, false
	}
	return e.placements[i], true
}

// Measure returns the bounding box, in layout units, of the visible cells of
// b.FullText()[start:end]. Ranges covering only collapsed whitespace yield a
// zero-width box.
func (e *Engine) Measure(b *document.Block, start, end int) (segment.Geometry, error) {
	p, ok := e.Placement(b)
	if !ok {
		return segment.Geometry{}, fmt.Errorf("measuring block %s: %w", b.ID, ErrNotArranged)
	}
	bl := e.Layout(b)
	if start < 0 || start >= end || len(bl.Glyphs) == 0 || end > bl.Glyphs[len(bl.Glyphs)-1].End {
		return segment.Geometry{}, fmt.Errorf("measuring [%d,%d) of block %s: %w", start, end, b.ID, ErrEmptyRange)
	}

	minRow, maxRow, minCol, maxCol := -1, -1, -1, -1
	for _, g := range bl.Glyphs[bl.glyphAt(start):] {
		if g.Start >= end {
			break
		}
		if g.Width == 0 {
			continue
		}
		if minRow < 0 || g.Row < minRow {
			minRow = g.Row
		}
		if g.Row > maxRow {
			maxRow = g.Row
		}
		if minCol < 0 || g.Col < minCol {
			minCol = g.Col
		}
		if g.Col+g.Width > maxCol {
			maxCol = g.Col + g.Width
		}
	}
	if minRow < 0 {
		return segment.Geometry{}, nil
	}

	top := float64(p.Origin+minRow) * e.opts.LineHeight
	bottom := float64(p.Origin+maxRow+1) * e.opts.LineHeight
	return segment.Geometry{
		Top:    top,
		Bottom: bottom,
		Left:   float64(minCol) * e.opts.CellWidth,
		Width:  float64(maxCol-minCol) * e.opts.CellWidth,
		Height: bottom - top,
	}, nil
}

// HitTest maps a document cell to a block and the byte offset just past the
// glyph under it. That offset lies inside the glyph's own line even when the
// glyph starts a wrapped row. A cell past the end of a row resolves to the
// row's last glyph.
func (e *Engine) HitTest(row, col int) (*document.Block, int, bool) {
	i := sort.Search(len(e.placements), func(i int) bool {
		return e.placements[i].Origin+e.placements[i].Rows > row
	})
	if i == len(e.placements) || e.placements[i].Origin > row {
		return nil, 0, false
	}
	p := e.placements[i]
	glyphs := e.Layout(p.Block).RowGlyphs(row - p.Origin)
	if len(glyphs) == 0 {
		return p.Block, 0, true
	}
	for _, g := range glyphs {
		if g.Width > 0 && col >= g.Col && col < g.Col+g.Width {
			return p.Block, g.End, true
		}
	}
	if col < glyphs[0].Col {
		return p.Block, glyphs[0].End, true
	}
	return p.Block, glyphs[len(glyphs)-1].End, true
}

// RowOf returns the absolute row showing the byte at offset in b.
func (e *Engine) RowOf(b *document.Block, offset int) (int, bool) {
	p, ok := e.Placement(b)
	if !ok {
		return 0, false
	}
	bl := e.Layout(b)
	if len(bl.Glyphs) == 0 {
		return p.Origin, true
	}
	i := bl.glyphAt(offset)
	if i == len(bl.Glyphs) {
		i--
	}
	return p.Origin + bl.Glyphs[i].Row, true
}
