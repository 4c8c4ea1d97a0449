package reader

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/linefocus/internal/ui/styles"
)

const statusZone = "linefocus-status"

// statusBar renders the focus state on the left and short help on the
// right. Clicking it toggles focus mode.
func (m Model) statusBar() string {
	status := m.focus.Status()
	left := status.String()
	style := styles.StatusBarStyle
	if status.Active {
		style = styles.StatusOnStyle.Padding(0, 1)
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	right := strings.Join(hints, " • ")

	inner := max(m.width-2, 0)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	var text string
	if gap >= 2 {
		text = left + strings.Repeat(" ", gap) + right
	} else {
		text = styles.TruncateString(left, inner)
	}
	return zone.Mark(statusZone, style.Width(m.width).MaxWidth(m.width).Render(text))
}

func scanZones(view string) string {
	return zone.Scan(view)
}
