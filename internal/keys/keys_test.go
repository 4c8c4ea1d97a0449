package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_KeyAssignments(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{name: "NextLine uses j and down", binding: km.NextLine, expected: []string{"j", "down"}},
		{name: "PrevLine uses k and up", binding: km.PrevLine, expected: []string{"k", "up"}},
		{name: "NextBlock uses }", binding: km.NextBlock, expected: []string{"}"}},
		{name: "PrevBlock uses {", binding: km.PrevBlock, expected: []string{"{"}},
		{name: "Exit uses esc", binding: km.Exit, expected: []string{"esc"}},
		{name: "Toggle uses f9", binding: km.Toggle, expected: []string{"f9"}},
		{name: "HalfPageDown uses ctrl+d and pgdown", binding: km.HalfPageDown, expected: []string{"ctrl+d", "pgdown"}},
		{name: "HalfPageUp uses ctrl+u and pgup", binding: km.HalfPageUp, expected: []string{"ctrl+u", "pgup"}},
		{name: "Top uses g and home", binding: km.Top, expected: []string{"g", "home"}},
		{name: "Bottom uses G and end", binding: km.Bottom, expected: []string{"G", "end"}},
		{name: "Quit uses q and ctrl+c", binding: km.Quit, expected: []string{"q", "ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_HelpText(t *testing.T) {
	km := DefaultKeyMap()

	for _, group := range km.FullHelp() {
		for _, b := range group {
			help := b.Help()
			require.NotEmpty(t, help.Key, "binding %v missing help key", b.Keys())
			require.NotEmpty(t, help.Desc, "binding %v missing help desc", b.Keys())
		}
	}
}

func TestDefaultKeyMap_FocusAndScrollShareKeys(t *testing.T) {
	// j/k step lines in focus mode and scroll otherwise; the reader picks by mode.
	km := DefaultKeyMap()
	require.Equal(t, km.NextLine.Keys(), km.ScrollDown.Keys())
	require.Equal(t, km.PrevLine.Keys(), km.ScrollUp.Keys())
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()
	short := km.ShortHelp()
	require.Len(t, short, 3)
	require.Equal(t, "f9", short[0].Help().Key)
}
