package reader

import (
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/layout"
)

// scroller records where the highlighter wants the view. The request is
// applied once the decorated document has been rendered.
type scroller struct {
	engine      *layout.Engine
	pending     bool
	top, bottom int
}

// ScrollTo asks for the rows showing b[start:end] to be centered.
func (s *scroller) ScrollTo(b *document.Block, start, end int) {
	top, ok := s.engine.RowOf(b, start)
	if !ok {
		return
	}
	bottom, _ := s.engine.RowOf(b, max(end-1, start))
	s.top, s.bottom, s.pending = top, bottom, true
}

func (s *scroller) apply(vp *viewport.Model) {
	if !s.pending {
		return
	}
	s.pending = false
	mid := (s.top + s.bottom) / 2
	vp.SetYOffset(mid - vp.Height/2)
}
