// Package help contains the help overlay component.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/linefocus/internal/keys"
	"github.com/zjrosen/linefocus/internal/log"
	"github.com/zjrosen/linefocus/internal/ui/markdown"
	"github.com/zjrosen/linefocus/internal/ui/overlay"
	"github.com/zjrosen/linefocus/internal/ui/styles"
)

const (
	title    = "Keybindings"
	maxWidth = 64
)

var sections = []string{"Focus mode", "Scrolling", "General"}

// Model holds the help view state.
type Model struct {
	keys          keys.KeyMap
	markdownStyle string
	width         int
	height        int
	box           string
}

// New creates a help view for km. markdownStyle is passed to the markdown
// renderer.
func New(km keys.KeyMap, markdownStyle string) Model {
	return Model{keys: km, markdownStyle: markdownStyle}
}

// SetSize updates dimensions and re-renders the help box.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.box = m.render()
	return m
}

// Markdown returns the help text as Markdown.
func (m Model) Markdown() string {
	var sb strings.Builder
	for i, group := range m.keys.FullHelp() {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s\n\n| Key | Action |\n| --- | --- |\n", sections[i])
		for _, b := range group {
			sb.WriteString(row(b))
		}
	}
	sb.WriteString("\nIn focus mode press `j`/`k` to navigate and `Esc` to exit. ")
	sb.WriteString("Click any line to start reading from it.\n")
	return sb.String()
}

func row(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("| `%s` | %s |\n", h.Key, h.Desc)
}

// View renders the help box centered in an empty view.
func (m Model) View() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.box)
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.box, background)
}

func (m Model) render() string {
	width := min(m.width-4, maxWidth)
	if width < 10 {
		return ""
	}

	content := m.Markdown()
	if r, err := markdown.New(width-4, m.markdownStyle); err == nil {
		if out, err := r.Render(content); err == nil {
			content = strings.Trim(out, "\n")
		} else {
			log.ErrorErr(log.CatUI, "Rendering help failed", err)
		}
	} else {
		log.ErrorErr(log.CatUI, "Creating markdown renderer failed", err)
	}

	body := lipgloss.NewStyle().Padding(0, 1).Render(content)
	height := min(lipgloss.Height(body)+2, m.height-2)
	return styles.RenderWithTitleBorder(body, title, width, height, styles.OverlayTitleColor, styles.OverlayBorderColor)
}
