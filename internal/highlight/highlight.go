// Package highlight decorates the current visual line inside the document
// tree and removes that decoration again without changing the text.
//
// Show tries three strategies in order of precision. Surround wraps the line
// in a span when both ends share a parent. Extract first splits the inline
// elements that straddle the line ends, then wraps. Block marks the whole
// block element when neither is possible. Clear is the exact inverse of
// whichever strategy was applied.
package highlight

import (
	"context"
	"errors"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/net/html"

	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/log"
	"github.com/zjrosen/linefocus/internal/segment"
	"github.com/zjrosen/linefocus/internal/tracing"
)

var (
	// ErrMapping is returned when a line's offsets cannot be mapped to text nodes.
	ErrMapping = errors.New("line cannot be mapped to text nodes")
	// ErrStructuralRejection is returned when a range crosses an element that must not be split.
	ErrStructuralRejection = errors.New("range crosses an element that cannot be split")
)

// Strategy identifies how a line was decorated.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategySurround
	StrategyExtract
	StrategyBlock
)

func (s Strategy) String() string {
	switch s {
	case StrategySurround:
		return "surround"
	case StrategyExtract:
		return "extract"
	case StrategyBlock:
		return "block"
	default:
		return "none"
	}
}

// Scroller brings a decorated range into view.
type Scroller interface {
	ScrollTo(b *document.Block, start, end int)
}

// Decoration describes the live decoration.
type Decoration struct {
	Block    *document.Block
	Strategy Strategy
	Start    int
	End      int
}

type decoration struct {
	Decoration
	span   *html.Node
	splits []splitPair
	text   string
}

// Highlighter owns the single decoration in a document.
type Highlighter struct {
	scroller Scroller
	tracer   trace.Tracer
	live     *decoration
}

// New creates a Highlighter. scroller and tracer may be nil.
func New(scroller Scroller, tracer trace.Tracer) *Highlighter {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &Highlighter{scroller: scroller, tracer: tracer}
}

// Live returns the current decoration, if any.
func (h *Highlighter) Live() (Decoration, bool) {
	if h.live == nil {
		return Decoration{}, false
	}
	return h.live.Decoration, true
}

// Show clears any previous decoration and decorates line. It falls back to
// marking the whole block and never fails.
func (h *Highlighter) Show(ctx context.Context, line segment.VisualLine) Strategy {
	ctx, span := h.tracer.Start(ctx, tracing.SpanHighlightShow)
	defer span.End()

	h.clear(ctx)

	b := line.Block
	span.SetAttributes(
		attribute.String(tracing.AttrBlockID, b.ID),
		attribute.Int(tracing.AttrLineStart, line.StartOffset),
		attribute.Int(tracing.AttrLineEnd, line.EndOffset),
	)

	d := &decoration{
		Decoration: Decoration{Block: b, Start: line.StartOffset, End: line.EndOffset},
		text:       b.FullText(),
	}

	wrapped, strategy, err := wrapLine(b, line.StartOffset, line.EndOffset)
	if err != nil {
		log.Debug(log.CatHighlight, "Falling back to block decoration", "block", b.ID, "error", err)
		span.AddEvent(tracing.EventFallback, trace.WithAttributes(attribute.String("reason", err.Error())))
		document.AddClass(b.Element(), document.CurrentClass)
		strategy = StrategyBlock
	} else {
		d.span = wrapped.span
		d.splits = wrapped.splits
	}

	d.Strategy = strategy
	h.live = d
	span.SetAttributes(attribute.String(tracing.AttrStrategy, strategy.String()))
	log.Debug(log.CatHighlight, "Decorated line", "block", b.ID, "strategy", strategy, "start", d.Start, "end", d.End)

	if h.scroller != nil {
		h.scroller.ScrollTo(b, d.Start, d.End)
	}
	return strategy
}

// Clear removes the live decoration, restoring the block's tree. Calling it
// with nothing decorated is a no-op.
func (h *Highlighter) Clear() {
	h.clear(context.Background())
}

func (h *Highlighter) clear(ctx context.Context) {
	d := h.live
	if d == nil {
		return
	}
	h.live = nil

	_, span := h.tracer.Start(ctx, tracing.SpanHighlightClear)
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrBlockID, d.Block.ID),
		attribute.String(tracing.AttrStrategy, d.Strategy.String()),
	)

	el := d.Block.Element()
	if d.span != nil {
		unwrap(d.span)
	}
	for i := len(d.splits) - 1; i >= 0; i-- {
		d.splits[i].merge()
	}
	Normalize(el)
	document.RemoveClass(el, document.CurrentClass)

	if got := d.Block.FullText(); got != d.text {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(d.text, got, false)
		span.AddEvent(tracing.EventVerifyMismatch)
		log.Error(log.CatHighlight, "Block text changed by decoration",
			"block", d.Block.ID, "strategy", d.Strategy, "diff", dmp.DiffPrettyText(diffs))
	}
}

// Normalize merges adjacent text nodes under n and drops empty ones.
func Normalize(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.TextNode:
			for next != nil && next.Type == html.TextNode {
				c.Data += next.Data
				after := next.NextSibling
				n.RemoveChild(next)
				next = after
			}
			if c.Data == "" {
				n.RemoveChild(c)
			}
		case html.ElementNode:
			Normalize(c)
		}
		c = next
	}
}
