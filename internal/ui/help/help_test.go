package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/linefocus/internal/keys"
)

func TestMarkdown_ListsEveryBinding(t *testing.T) {
	m := New(keys.DefaultKeyMap(), "dark")
	md := m.Markdown()

	require.Contains(t, md, "## Focus mode")
	require.Contains(t, md, "## Scrolling")
	require.Contains(t, md, "## General")
	for _, group := range keys.DefaultKeyMap().FullHelp() {
		for _, b := range group {
			require.Contains(t, md, "| `"+b.Help().Key+"` | "+b.Help().Desc+" |")
		}
	}
	require.Contains(t, md, "`Esc` to exit")
}

func TestView_RendersBorderedBox(t *testing.T) {
	m := New(keys.DefaultKeyMap(), "dark").SetSize(100, 50)

	view := ansi.Strip(m.View())

	require.Contains(t, view, "Keybindings")
	require.Contains(t, view, "╭")
	require.Contains(t, view, "next line")
	require.Contains(t, view, "toggle focus")
}

func TestView_BoxFitsWidth(t *testing.T) {
	m := New(keys.DefaultKeyMap(), "light").SetSize(50, 60)

	for _, line := range strings.Split(m.box, "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 46)
	}
}

func TestView_TooNarrow(t *testing.T) {
	m := New(keys.DefaultKeyMap(), "dark").SetSize(8, 10)

	require.Empty(t, m.box)
}

func TestOverlay_KeepsBackgroundAround(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 100)+"\n", 50), "\n")
	m := New(keys.DefaultKeyMap(), "dark").SetSize(100, 50)

	lines := strings.Split(ansi.Strip(m.Overlay(bg)), "\n")

	require.Len(t, lines, 50)
	require.Equal(t, strings.Repeat(".", 100), lines[0])
	require.True(t, strings.HasPrefix(lines[25], "."))
}
