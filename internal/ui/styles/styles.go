// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Document text colors
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextDimColor     = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#5C5C5C"} // Outside the focused line
	TextHeadingColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	TextCodeColor    = lipgloss.AdaptiveColor{Light: "#2E8B57", Dark: "#73F59F"}
	TextBulletColor  = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#54A0FF"}

	// Focus decoration colors
	HighlightFgColor = lipgloss.AdaptiveColor{Light: "#1E1E1E", Dark: "#1E1E1E"}
	HighlightBgColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	CurrentBgColor   = lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#3A3A3A"} // Whole-block fallback

	// Status bar colors
	StatusFgColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#BBBBBB"}
	StatusBgColor = lipgloss.AdaptiveColor{Light: "#E6E6E6", Dark: "#2D3436"}
	StatusOnColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#024A8B", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	ToastErrorColor    = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#FF8787"}

	TextStyle      = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	DimStyle       = lipgloss.NewStyle().Foreground(TextDimColor)
	HeadingStyle   = lipgloss.NewStyle().Foreground(TextHeadingColor).Bold(true)
	CodeStyle      = lipgloss.NewStyle().Foreground(TextCodeColor)
	BulletStyle    = lipgloss.NewStyle().Foreground(TextBulletColor)
	HighlightStyle = lipgloss.NewStyle().Foreground(HighlightFgColor).Background(HighlightBgColor)
	CurrentStyle   = lipgloss.NewStyle().Background(CurrentBgColor)

	StatusBarStyle = lipgloss.NewStyle().Foreground(StatusFgColor).Background(StatusBgColor).Padding(0, 1)
	StatusOnStyle  = lipgloss.NewStyle().Foreground(StatusOnColor).Background(StatusBgColor).Bold(true)

	OverlayTitleStyle = lipgloss.NewStyle().Foreground(OverlayTitleColor).Bold(true)
)
