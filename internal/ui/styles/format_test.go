package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{name: "fits", input: "Line Focus: OFF", maxWidth: 20, expected: "Line Focus: OFF"},
		{name: "exact", input: "abcdef", maxWidth: 6, expected: "abcdef"},
		{name: "ellipsis", input: "Line Focus: ON (selecting)", maxWidth: 10, expected: "Line Fo..."},
		{name: "tiny width", input: "abcdef", maxWidth: 2, expected: ".."},
		{name: "zero width", input: "abcdef", maxWidth: 0, expected: ""},
		{name: "wide runes", input: "日本語のテキスト", maxWidth: 7, expected: "日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxWidth)
			require.Equal(t, tt.expected, got)
			require.LessOrEqual(t, lipgloss.Width(got), max(tt.maxWidth, 0))
		})
	}
}
