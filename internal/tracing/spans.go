package tracing

// Span names.
const (
	SpanSegment        = "segment.Segment"
	SpanHighlightShow  = "highlight.Show"
	SpanHighlightClear = "highlight.Clear"
	SpanReload         = "reader.Reload"
)

// Span attribute keys.
const (
	AttrBlockID       = "block.id"
	AttrBlockTag      = "block.tag"
	AttrTextLength    = "text.length"
	AttrLineCount     = "segment.lines"
	AttrSamples       = "segment.samples"
	AttrFailedSamples = "segment.failed_samples"
	AttrShortText     = "segment.short_text"
	AttrStrategy      = "highlight.strategy"
	AttrLineStart     = "line.start"
	AttrLineEnd       = "line.end"
	AttrPath          = "document.path"
	AttrBlockCount    = "document.blocks"
)

// Span event names.
const (
	EventFallback       = "fallback"
	EventLineBreak      = "line_break"
	EventVerifyMismatch = "verify.mismatch"
)
