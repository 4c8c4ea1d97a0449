// Package segment recovers visual line boundaries from a layout engine that
// can only report the bounding box of a text range.
//
// Line breaks are inferred from jumps in the bottom edge of a growing range.
// This is a heuristic: only every Stride-th token is measured and jumps no
// larger than Tolerance are treated as rounding noise. A wrap whose signature
// appears on an unmeasured token and is gone again by the next measured one
// goes undetected; full-token sampling would remove that risk at a much higher
// query cost.
package segment

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/log"
	"github.com/zjrosen/linefocus/internal/tracing"
)

// Geometry is the rendered bounding box of a text range, in layout units.
type Geometry struct {
	Top    float64
	Bottom float64
	Left   float64
	Width  float64
	Height float64
}

// Degenerate reports a box with no area. Such boxes carry no line signal.
func (g Geometry) Degenerate() bool {
	return g.Width <= 0 || g.Height <= 0
}

// Oracle measures rendered text ranges in the current layout.
type Oracle interface {
	// Measure returns the bounding box of b.FullText()[start:end].
	Measure(b *document.Block, start, end int) (Geometry, error)
}

// VisualLine is a range of a block that renders on one line. Text is trimmed
// for display; the offsets reference the untrimmed block text.
type VisualLine struct {
	Block       *document.Block
	Text        string
	StartOffset int
	EndOffset   int
}

// Options tunes the accuracy/cost trade-off of the heuristic.
type Options struct {
	// ShortTextThreshold: blocks with fewer runes are one line, unmeasured.
	ShortTextThreshold int
	// Stride: measure every Stride-th token (plus the last).
	Stride int
	// Tolerance: a bottom edge must move further than this to count as a wrap.
	Tolerance float64
}

// DefaultOptions treats 5 layout units as noise and uses Stride 2. Tokenize
// alternates word and whitespace starting with a word, so Stride 2 measures
// the end of every word and skips only the whitespace runs. Other strides
// skip words.
func DefaultOptions() Options {
	return Options{
		ShortTextThreshold: 100,
		Stride:             2,
		Tolerance:          5,
	}
}

// Segmenter splits blocks into visual lines.
type Segmenter struct {
	oracle Oracle
	opts   Options
	tracer trace.Tracer
}

// New creates a Segmenter. A nil tracer disables tracing.
func New(oracle Oracle, opts Options, tracer trace.Tracer) *Segmenter {
	if opts.Stride < 1 {
		opts.Stride = 1
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &Segmenter{oracle: oracle, opts: opts, tracer: tracer}
}

// Options returns the active options.
func (s *Segmenter) Options() Options { return s.opts }

// Segment returns the visual lines of b in order. The lines partition
// [0, len(text)]. It never fails: measurement errors skip the sample, and a
// non-empty block always yields at least one line.
func (s *Segmenter) Segment(ctx context.Context, b *document.Block) []VisualLine {
	_, span := s.tracer.Start(ctx, tracing.SpanSegment)
	defer span.End()

	text := b.FullText()
	span.SetAttributes(
		attribute.String(tracing.AttrBlockID, b.ID),
		attribute.String(tracing.AttrBlockTag, b.Tag()),
		attribute.Int(tracing.AttrTextLength, len(text)),
	)

	if text == "" {
		return nil
	}

	if utf8.RuneCountInString(text) < s.opts.ShortTextThreshold {
		span.SetAttributes(attribute.Bool(tracing.AttrShortText, true), attribute.Int(tracing.AttrLineCount, 1))
		return []VisualLine{whole(b, text)}
	}

	var (
		tokens        = Tokenize(text)
		lines         []VisualLine
		lineStart     int
		charOffset    int
		currentBottom float64
		haveBottom    bool
		samples       int
		failed        int
	)

	for i, tok := range tokens {
		wordEnd := charOffset + len(tok)

		if i%s.opts.Stride == 0 || i == len(tokens)-1 {
			samples++
			geom, err := s.oracle.Measure(b, lineStart, wordEnd)
			switch {
			case err != nil || geom.Degenerate():
				failed++
			case !haveBottom:
				currentBottom = geom.Bottom
				haveBottom = true
			case geom.Bottom > currentBottom+s.opts.Tolerance:
				// The previous token end is the last offset still on the old line.
				if lineText := strings.TrimSpace(text[lineStart:charOffset]); lineText != "" {
					lines = append(lines, VisualLine{Block: b, Text: lineText, StartOffset: lineStart, EndOffset: charOffset})
					lineStart = charOffset
					span.AddEvent(tracing.EventLineBreak)
				}
				currentBottom = geom.Bottom
			}
		}

		charOffset = wordEnd
	}

	if lastText := strings.TrimSpace(text[lineStart:]); lastText != "" {
		lines = append(lines, VisualLine{Block: b, Text: lastText, StartOffset: lineStart, EndOffset: len(text)})
	} else if len(lines) > 0 {
		lines[len(lines)-1].EndOffset = len(text)
	}

	if len(lines) == 0 {
		span.AddEvent(tracing.EventFallback)
		lines = []VisualLine{whole(b, text)}
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrLineCount, len(lines)),
		attribute.Int(tracing.AttrSamples, samples),
		attribute.Int(tracing.AttrFailedSamples, failed),
	)
	if failed > 0 {
		log.Debug(log.CatSegment, "Skipped unmeasurable samples", "block", b.ID, "failed", failed, "samples", samples)
	}
	log.Debug(log.CatSegment, "Segmented block", "block", b.ID, "lines", len(lines), "samples", samples)

	return lines
}

func whole(b *document.Block, text string) VisualLine {
	return VisualLine{Block: b, Text: strings.TrimSpace(text), StartOffset: 0, EndOffset: len(text)}
}
