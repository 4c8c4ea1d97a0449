// Package focus implements the reading-focus state machine: which block and
// which visual line of it the reader is on, and keeping the decoration in the
// document in step with that position.
package focus

import (
	"context"

	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/highlight"
	"github.com/zjrosen/linefocus/internal/log"
	"github.com/zjrosen/linefocus/internal/segment"
)

// Catalog supplies the readable blocks of the current document, in order.
type Catalog interface {
	FindBlocks() []*document.Block
}

// Segmenter splits a block into visual lines.
type Segmenter interface {
	Segment(ctx context.Context, b *document.Block) []segment.VisualLine
}

// Decorator shows the current line in the document.
type Decorator interface {
	Show(ctx context.Context, line segment.VisualLine) highlight.Strategy
	Clear()
}

// Activator marks the whole document as being read in focus mode.
type Activator interface {
	SetActive(on bool)
}

// State is the controller's mode.
type State int

const (
	StateInactive State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "inactive"
}

// Position indexes the block catalog snapshot and that block's lines.
type Position struct {
	BlockIndex int
	LineIndex  int
}

// Config holds the controller's collaborators. Activator is optional.
type Config struct {
	Catalog   Catalog
	Segmenter Segmenter
	Decorator Decorator
	Activator Activator
}

// Controller is the navigation state machine. It is not safe for concurrent
// use; every method runs to completion on the caller's goroutine.
type Controller struct {
	catalog   Catalog
	segmenter Segmenter
	decorator Decorator
	activator Activator

	state      State
	blocks     []*document.Block
	lines      []segment.VisualLine
	pos        Position
	positioned bool
}

// New creates an inactive controller.
func New(cfg Config) *Controller {
	return &Controller{
		catalog:   cfg.Catalog,
		segmenter: cfg.Segmenter,
		decorator: cfg.Decorator,
		activator: cfg.Activator,
	}
}

// State returns the current mode.
func (c *Controller) State() State { return c.state }

// Active reports whether focus mode is on.
func (c *Controller) Active() bool { return c.state == StateActive }

// Position returns the current position. ok is false while inactive or
// while active without a line chosen yet.
func (c *Controller) Position() (Position, bool) {
	return c.pos, c.state == StateActive && c.positioned
}

// Blocks returns the catalog snapshot taken at activation.
func (c *Controller) Blocks() []*document.Block { return c.blocks }

// Lines returns the segmentation of the current block.
func (c *Controller) Lines() []segment.VisualLine { return c.lines }

// Current returns the focused line.
func (c *Controller) Current() (segment.VisualLine, bool) {
	pos, ok := c.Position()
	if !ok || pos.LineIndex >= len(c.lines) {
		return segment.VisualLine{}, false
	}
	return c.lines[pos.LineIndex], true
}

// Activate turns focus mode on without choosing a line. It refreshes the
// block catalog and stays inactive when the document has no readable blocks.
func (c *Controller) Activate(ctx context.Context) bool {
	if c.state == StateActive {
		return true
	}
	blocks := c.catalog.FindBlocks()
	if len(blocks) == 0 {
		log.Info(log.CatFocus, "No readable blocks, staying inactive")
		return false
	}

	c.blocks = blocks
	c.state = StateActive
	c.positioned = false
	c.lines = nil
	c.pos = Position{}
	if c.activator != nil {
		c.activator.SetActive(true)
	}
	log.Info(log.CatFocus, "Activated", "blocks", len(blocks))
	return true
}

// Deactivate turns focus mode off, removing the decoration and forgetting
// the position and lines.
func (c *Controller) Deactivate() {
	if c.state == StateInactive {
		return
	}
	c.decorator.Clear()
	if c.activator != nil {
		c.activator.SetActive(false)
	}
	c.state = StateInactive
	c.blocks = nil
	c.lines = nil
	c.pos = Position{}
	c.positioned = false
	log.Info(log.CatFocus, "Deactivated")
}

// Toggle switches between active and inactive.
func (c *Controller) Toggle(ctx context.Context) {
	if c.state == StateActive {
		c.Deactivate()
		return
	}
	c.Activate(ctx)
}

// NextLine moves to the following line, crossing into the next block when
// the current one is exhausted. At the last line of the last block it does
// nothing. Without a position it enters the first line of the first block.
func (c *Controller) NextLine(ctx context.Context) {
	if c.state != StateActive {
		return
	}
	switch {
	case !c.positioned:
		c.enterBlock(ctx, 0, false)
	case c.pos.LineIndex < len(c.lines)-1:
		c.pos.LineIndex++
		c.show(ctx)
	case c.pos.BlockIndex < len(c.blocks)-1:
		c.enterBlock(ctx, c.pos.BlockIndex+1, false)
	}
}

// PrevLine moves to the preceding line, crossing into the last line of the
// previous block. At the first line of the first block it does nothing.
// Without a position it enters the last line of the last block.
func (c *Controller) PrevLine(ctx context.Context) {
	if c.state != StateActive {
		return
	}
	switch {
	case !c.positioned:
		c.enterBlock(ctx, len(c.blocks)-1, true)
	case c.pos.LineIndex > 0:
		c.pos.LineIndex--
		c.show(ctx)
	case c.pos.BlockIndex > 0:
		c.enterBlock(ctx, c.pos.BlockIndex-1, true)
	}
}

// NextBlock jumps to the first line of the following block.
func (c *Controller) NextBlock(ctx context.Context) {
	if c.state != StateActive {
		return
	}
	switch {
	case !c.positioned:
		c.enterBlock(ctx, 0, false)
	case c.pos.BlockIndex < len(c.blocks)-1:
		c.enterBlock(ctx, c.pos.BlockIndex+1, false)
	}
}

// PrevBlock jumps to the first line of the current block, or of the previous
// block when already there.
func (c *Controller) PrevBlock(ctx context.Context) {
	if c.state != StateActive {
		return
	}
	switch {
	case !c.positioned:
		c.enterBlock(ctx, len(c.blocks)-1, false)
	case c.pos.LineIndex > 0:
		c.pos.LineIndex = 0
		c.show(ctx)
	case c.pos.BlockIndex > 0:
		c.enterBlock(ctx, c.pos.BlockIndex-1, false)
	}
}

// EnterFromSelection focuses the line of b that contains offset: the first
// line whose end is at or after offset, or the first line when none is. It
// activates focus mode if needed. A block missing from the snapshot triggers
// one catalog refresh; if it is still missing the selection is ignored.
func (c *Controller) EnterFromSelection(ctx context.Context, b *document.Block, offset int) {
	if c.state != StateActive && !c.Activate(ctx) {
		return
	}

	idx := c.indexOf(b)
	if idx < 0 {
		c.refresh()
		if c.state != StateActive {
			return
		}
		if idx = c.indexOf(b); idx < 0 {
			log.Debug(log.CatFocus, "Selection outside readable blocks", "block", b.ID)
			return
		}
	}

	c.pos.BlockIndex = idx
	c.lines = c.segmenter.Segment(ctx, b)
	c.pos.LineIndex = 0
	for i, l := range c.lines {
		if l.EndOffset >= offset {
			c.pos.LineIndex = i
			break
		}
	}
	c.positioned = true
	c.show(ctx)
}

// OnLayoutInvalidated re-segments the current block after a layout change.
// Indices are kept; a line index past the new line count is clamped to the
// last line.
func (c *Controller) OnLayoutInvalidated(ctx context.Context) {
	if _, ok := c.Position(); !ok {
		return
	}
	c.decorator.Clear()
	c.lines = c.segmenter.Segment(ctx, c.blocks[c.pos.BlockIndex])
	if c.pos.LineIndex >= len(c.lines) {
		c.pos.LineIndex = max(len(c.lines)-1, 0)
	}
	c.show(ctx)
}

// Reload switches to a new document's catalog and activator. When active,
// the block and line indices are carried over, clamped to the new content;
// a document without readable blocks turns focus mode off.
func (c *Controller) Reload(ctx context.Context, catalog Catalog, activator Activator) {
	wasActive := c.state == StateActive
	c.decorator.Clear()
	if wasActive && c.activator != nil {
		c.activator.SetActive(false)
	}
	c.catalog = catalog
	c.activator = activator
	if !wasActive {
		return
	}

	blocks := catalog.FindBlocks()
	if len(blocks) == 0 {
		log.Info(log.CatFocus, "Reloaded document has no readable blocks")
		c.state = StateInactive
		c.blocks, c.lines, c.pos, c.positioned = nil, nil, Position{}, false
		return
	}
	c.blocks = blocks
	if c.activator != nil {
		c.activator.SetActive(true)
	}
	if !c.positioned {
		c.lines = nil
		return
	}

	c.pos.BlockIndex = min(c.pos.BlockIndex, len(blocks)-1)
	c.lines = c.segmenter.Segment(ctx, blocks[c.pos.BlockIndex])
	c.pos.LineIndex = min(c.pos.LineIndex, max(len(c.lines)-1, 0))
	c.show(ctx)
	log.Debug(log.CatFocus, "Reloaded", "blocks", len(blocks), "block", c.pos.BlockIndex, "line", c.pos.LineIndex)
}

// enterBlock segments block i and moves to its first or last line.
func (c *Controller) enterBlock(ctx context.Context, i int, last bool) {
	if i < 0 || i >= len(c.blocks) {
		return
	}
	c.pos.BlockIndex = i
	c.lines = c.segmenter.Segment(ctx, c.blocks[i])
	c.pos.LineIndex = 0
	if last && len(c.lines) > 0 {
		c.pos.LineIndex = len(c.lines) - 1
	}
	c.positioned = true
	c.show(ctx)
}

// refresh re-reads the catalog, remapping the current block into the new
// snapshot. A current block that disappeared drops the position.
func (c *Controller) refresh() {
	var current *document.Block
	if c.positioned {
		current = c.blocks[c.pos.BlockIndex]
	}
	c.blocks = c.catalog.FindBlocks()
	if len(c.blocks) == 0 {
		c.Deactivate()
		return
	}
	if current == nil {
		return
	}
	if idx := c.indexOf(current); idx >= 0 {
		c.pos.BlockIndex = idx
		return
	}
	c.decorator.Clear()
	c.positioned = false
	c.lines = nil
	c.pos = Position{}
}

func (c *Controller) indexOf(b *document.Block) int {
	for i, cand := range c.blocks {
		if cand == b {
			return i
		}
	}
	return -1
}

func (c *Controller) show(ctx context.Context) {
	line, ok := c.Current()
	if !ok {
		c.decorator.Clear()
		return
	}
	strategy := c.decorator.Show(ctx, line)
	log.Debug(log.CatFocus, "Moved",
		"block", c.pos.BlockIndex, "line", c.pos.LineIndex, "lines", len(c.lines), "strategy", strategy)
}
