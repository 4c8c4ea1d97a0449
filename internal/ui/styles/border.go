// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderWithTitleBorder draws a rounded box of the given outer size with the
// title set into the top edge:
//
//	╭─ Title ─────╮
//
// Content is wrapped to the inner width and clipped to the inner height.
func RenderWithTitleBorder(content, title string, width, height int, titleColor, borderColor lipgloss.TerminalColor) string {
	border := lipgloss.RoundedBorder()
	inner := max(width-2, 1)
	rows := max(height-2, 1)

	body := lipgloss.NewStyle().
		Width(inner).
		Height(rows).
		MaxWidth(inner).
		MaxHeight(rows).
		Render(content)
	box := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(borderColor).
		Render(body)

	edge := lipgloss.NewStyle().Foreground(borderColor)
	label := lipgloss.NewStyle().Foreground(titleColor)
	return topEdge(border, title, inner, edge, label) + "\n" + box
}

// topEdge needs four cells around the title ("─ " and " ─"); narrower edges
// drop the title.
func topEdge(b lipgloss.Border, title string, inner int, edge, label lipgloss.Style) string {
	if title == "" || inner < 5 {
		return edge.Render(b.TopLeft + strings.Repeat(b.Top, inner) + b.TopRight)
	}
	title = TruncateString(title, inner-4)
	fill := max(inner-3-lipgloss.Width(title), 1)
	return edge.Render(b.TopLeft+b.Top+" ") +
		label.Render(title) +
		edge.Render(" "+strings.Repeat(b.Top, fill)+b.TopRight)
}
