package reader

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/linefocus/internal/log"
	"github.com/zjrosen/linefocus/internal/render"
)

func (m Model) handleMouse(ctx context.Context, msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}

	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if z := zone.Get(statusZone); z != nil && z.InBounds(msg) {
		m.focus.Toggle(ctx)
		m.refresh()
		return m, nil
	}

	if msg.Y >= m.viewport.Height {
		return m, nil
	}
	row := msg.Y + m.viewport.YOffset
	col := max(msg.X-m.margin-render.Gutter, 0)
	b, offset, ok := m.engine.HitTest(row, col)
	if !ok {
		return m, nil
	}
	log.Debug(log.CatUI, "Clicked", "row", row, "col", col, "block", b.ID, "offset", offset)
	m.focus.EnterFromSelection(ctx, b, offset)
	m.refresh()
	return m, nil
}
