// Package markdown provides styled markdown rendering for the TUI.
package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
// It is layered over the base style.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with linefocus-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width. style is "dark",
// "light", or "" to detect from the terminal background.
func New(width int, style string) (*Renderer, error) {
	var base glamour.TermRendererOption
	switch style {
	case "":
		base = glamour.WithAutoStyle()
	case "dark", "light":
		base = glamour.WithStandardStyle(style)
	default:
		return nil, fmt.Errorf("unknown markdown style %q (must be \"dark\" or \"light\")", style)
	}

	r, err := glamour.NewTermRenderer(
		base,
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
