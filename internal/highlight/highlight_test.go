package highlight

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"pgregory.net/rapid"

	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/segment"
)

type scrollCall struct {
	block      *document.Block
	start, end int
}

type recordingScroller struct {
	calls []scrollCall
}

func (r *recordingScroller) ScrollTo(b *document.Block, start, end int) {
	r.calls = append(r.calls, scrollCall{b, start, end})
}

type tb interface {
	require.TestingT
	Helper()
}

func firstBlock(t tb, src string) (*document.Document, *document.Block) {
	t.Helper()
	d, err := document.Parse([]byte(src), document.FormatHTML)
	require.NoError(t, err)
	blocks := document.DefaultCatalog().LayoutBlocks(d)
	require.NotEmpty(t, blocks)
	return d, blocks[0]
}

func render(t tb, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

func line(b *document.Block, start, end int) segment.VisualLine {
	return segment.VisualLine{Block: b, StartOffset: start, EndOffset: end, Text: strings.TrimSpace(b.FullText()[start:end])}
}

func spans(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && document.HasClass(n, document.HighlightClass) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func TestShow_SurroundWithinOneTextNode(t *testing.T) {
	_, b := firstBlock(t, `<p>Hello world, this is plain text only.</p>`)
	before := render(t, b.Element())
	scroller := &recordingScroller{}
	h := New(scroller, nil)

	strategy := h.Show(context.Background(), line(b, 6, 12))

	require.Equal(t, StrategySurround, strategy)
	require.Equal(t, `<p>Hello <span class="line-focus-highlight">world,</span> this is plain text only.</p>`, render(t, b.Element()))
	require.Equal(t, []scrollCall{{b, 6, 12}}, scroller.calls)

	live, ok := h.Live()
	require.True(t, ok)
	require.Equal(t, StrategySurround, live.Strategy)
	require.Same(t, b, live.Block)

	h.Clear()
	require.Equal(t, before, render(t, b.Element()))
	_, ok = h.Live()
	require.False(t, ok)
}

func TestShow_SurroundAcrossSiblings(t *testing.T) {
	_, b := firstBlock(t, `<p>A pointer is a <em>variable</em> that holds an address.</p>`)
	text := b.FullText()
	start := strings.Index(text, "is a")
	end := strings.Index(text, " holds")
	h := New(nil, nil)

	require.Equal(t, StrategySurround, h.Show(context.Background(), line(b, start, end)))
	require.Equal(t, `<p>A pointer <span class="line-focus-highlight">is a <em>variable</em> that</span> holds an address.</p>`, render(t, b.Element()))

	h.Clear()
	require.Equal(t, `<p>A pointer is a <em>variable</em> that holds an address.</p>`, render(t, b.Element()))
}

func TestShow_ExtractSplitsInlineElement(t *testing.T) {
	_, b := firstBlock(t, `<p>Some <em>emphasized words here</em> and more</p>`)
	h := New(nil, nil)

	strategy := h.Show(context.Background(), line(b, 0, 16))

	require.Equal(t, StrategyExtract, strategy)
	require.Equal(t,
		`<p><span class="line-focus-highlight">Some <em>emphasized </em></span><em>words here</em> and more</p>`,
		render(t, b.Element()))
	require.Equal(t, "Some emphasized words here and more", b.FullText())

	h.Clear()
	require.Equal(t, `<p>Some <em>emphasized words here</em> and more</p>`, render(t, b.Element()))
}

func TestShow_ExtractBothEndsNested(t *testing.T) {
	src := `<p><strong>bold <em>deep start</em></strong> middle <a href="#x">link <code>tail end</code></a></p>`
	_, b := firstBlock(t, src)
	text := b.FullText()
	start := strings.Index(text, "start")
	end := strings.Index(text, " end")
	h := New(nil, nil)

	require.Equal(t, StrategyExtract, h.Show(context.Background(), line(b, start, end)))

	hl := spans(b.Element())
	require.Len(t, hl, 1)
	require.Equal(t, "start middle link tail", textOf(hl[0]))
	require.Equal(t, text, b.FullText())

	h.Clear()
	require.Equal(t, src, render(t, b.Element()))
}

func TestShow_ElementWithIDFallsBackToBlock(t *testing.T) {
	src := `<p>Some <em id="term">emphasized words here</em> and more</p>`
	_, b := firstBlock(t, src)
	h := New(nil, nil)

	strategy := h.Show(context.Background(), line(b, 0, 16))

	require.Equal(t, StrategyBlock, strategy)
	require.Empty(t, spans(b.Element()))
	require.True(t, document.HasClass(b.Element(), document.CurrentClass))
	require.Contains(t, render(t, b.Element()), `<em id="term">emphasized words here</em>`)

	h.Clear()
	require.Equal(t, src, render(t, b.Element()))
}

func TestShow_StructuralAncestorFallsBackToBlock(t *testing.T) {
	src := `<li>Item with a table <table><tbody><tr><td>left cell</td><td>right cell</td></tr></tbody></table></li>`
	d, err := document.Parse([]byte("<ul>"+src+"</ul>"), document.FormatHTML)
	require.NoError(t, err)
	b := document.DefaultCatalog().LayoutBlocks(d)[0]
	text := b.FullText()
	start := strings.Index(text, "cell")
	end := strings.Index(text, "right") + 5

	require.Equal(t, StrategyBlock, New(nil, nil).Show(context.Background(), line(b, start, end)))
}

func TestShow_RangeAcrossNestedBlockFallsBackToBlock(t *testing.T) {
	src := `<ul><li>Outer item text <ul><li>Inner item text</li></ul> outer tail</li></ul>`
	d, err := document.Parse([]byte(src), document.FormatHTML)
	require.NoError(t, err)
	blocks := document.DefaultCatalog().LayoutBlocks(d)
	require.Len(t, blocks, 2)
	outer := blocks[0]
	text := outer.FullText()
	require.Equal(t, "Outer item text  outer tail", text)

	h := New(nil, nil)
	require.Equal(t, StrategyBlock, h.Show(context.Background(), line(outer, 6, len(text))))
	require.Empty(t, spans(d.Root))
	require.Equal(t, "Inner item text", blocks[1].FullText())

	require.Equal(t, StrategySurround, h.Show(context.Background(), line(outer, 0, 10)))
	require.Len(t, spans(d.Root), 1)
	require.Equal(t, "Outer item", textOf(spans(d.Root)[0]))

	h.Clear()
	require.Equal(t, "Inner item text", blocks[1].FullText())
	require.Equal(t, text, outer.FullText())
}

func TestShow_UnmappableLineFallsBackToBlock(t *testing.T) {
	_, b := firstBlock(t, `<p></p>`)
	h := New(nil, nil)

	require.Equal(t, StrategyBlock, h.Show(context.Background(), segment.VisualLine{Block: b}))
	require.True(t, document.HasClass(b.Element(), document.CurrentClass))

	h.Clear()
	require.Equal(t, `<p></p>`, render(t, b.Element()))
}

func TestShow_AtMostOneDecoration(t *testing.T) {
	d, err := document.Parse([]byte(`<p>First paragraph of the text.</p><p>Second <em id="x">paragraph</em> of text.</p>`), document.FormatHTML)
	require.NoError(t, err)
	blocks := document.DefaultCatalog().LayoutBlocks(d)
	require.Len(t, blocks, 2)
	h := New(nil, nil)
	ctx := context.Background()

	h.Show(ctx, line(blocks[0], 0, 6))
	h.Show(ctx, line(blocks[0], 6, 16))
	require.Len(t, spans(d.Root), 1)

	require.Equal(t, StrategyBlock, h.Show(ctx, line(blocks[1], 3, 12)))
	require.Empty(t, spans(d.Root))
	require.True(t, document.HasClass(blocks[1].Element(), document.CurrentClass))

	h.Show(ctx, line(blocks[0], 0, 6))
	require.False(t, document.HasClass(blocks[1].Element(), document.CurrentClass))
	require.Len(t, spans(d.Root), 1)
}

func TestClear_NoDecorationIsNoop(t *testing.T) {
	_, b := firstBlock(t, `<p>Nothing to clear here.</p>`)
	h := New(nil, nil)
	h.Clear()
	h.Clear()
	require.Equal(t, `<p>Nothing to clear here.</p>`, render(t, b.Element()))
}

func TestNormalize(t *testing.T) {
	p := &html.Node{Type: html.ElementNode, Data: "p"}
	em := &html.Node{Type: html.ElementNode, Data: "em"}
	for _, s := range []string{"a", "", "b"} {
		p.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
	p.AppendChild(em)
	em.AppendChild(&html.Node{Type: html.TextNode, Data: ""})
	em.AppendChild(&html.Node{Type: html.TextNode, Data: "c"})
	em.AppendChild(&html.Node{Type: html.TextNode, Data: "d"})
	p.AppendChild(&html.Node{Type: html.TextNode, Data: ""})

	Normalize(p)

	require.Equal(t, "<p>ab<em>cd</em></p>", render(t, p))
	require.Equal(t, "ab", p.FirstChild.Data)
	require.Same(t, em, p.LastChild)
}

func TestStrategy_String(t *testing.T) {
	require.Equal(t, "surround", StrategySurround.String())
	require.Equal(t, "extract", StrategyExtract.String())
	require.Equal(t, "block", StrategyBlock.String())
	require.Equal(t, "none", StrategyNone.String())
}

// inlineHTML draws nested inline markup made of ASCII words.
func inlineHTML(t *rapid.T, depth int) string {
	n := rapid.IntRange(1, 4).Draw(t, "parts")
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if depth > 0 && rapid.Bool().Draw(t, "nest") {
			tag := rapid.SampledFrom([]string{"em", "strong", "code", "i", "span"}).Draw(t, "tag")
			attr := ""
			if rapid.IntRange(0, 5).Draw(t, "id") == 0 {
				attr = fmt.Sprintf(` id="n%d"`, i)
			}
			fmt.Fprintf(&sb, "<%s%s>%s</%s>", tag, attr, inlineHTML(t, depth-1), tag)
			continue
		}
		sb.WriteString(rapid.StringMatching(`[a-z]{1,8}( [a-z]{1,8}){0,3} ?`).Draw(t, "text"))
	}
	return sb.String()
}

func TestProperty_ShowThenClearRestoresTree(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d, err := document.Parse([]byte("<p>"+inlineHTML(rt, 3)+"</p>"), document.FormatHTML)
		require.NoError(rt, err)
		b := document.DefaultCatalog().LayoutBlocks(d)[0]
		text := b.FullText()
		if text == "" {
			return
		}
		before := render(rt, d.Root)

		start := rapid.IntRange(0, len(text)-1).Draw(rt, "start")
		end := rapid.IntRange(start+1, len(text)).Draw(rt, "end")
		h := New(nil, nil)

		strategy := h.Show(context.Background(), line(b, start, end))

		require.Equal(rt, text, b.FullText(), "decoration must not change text")
		hl := spans(d.Root)
		if strategy == StrategyBlock {
			require.Empty(rt, hl)
		} else {
			require.Len(rt, hl, 1)
			require.Equal(rt, text[start:end], textOf(hl[0]))
		}

		h.Clear()
		require.Equal(rt, before, render(rt, d.Root))
	})
}
