// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Document text
	TokenTextPrimary ColorToken = "text.primary"
	TokenTextDim     ColorToken = "text.dim"
	TokenTextHeading ColorToken = "text.heading"
	TokenTextCode    ColorToken = "text.code"
	TokenTextBullet  ColorToken = "text.bullet"

	// Focus decorations
	TokenHighlightFg ColorToken = "highlight.fg"
	TokenHighlightBg ColorToken = "highlight.bg"
	TokenCurrentBg   ColorToken = "current.bg"

	// Status bar
	TokenStatusFg ColorToken = "status.fg"
	TokenStatusBg ColorToken = "status.bg"
	TokenStatusOn ColorToken = "status.on"

	// Overlays
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"
	TokenToastError    ColorToken = "toast.error"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		// Document text
		TokenTextPrimary,
		TokenTextDim,
		TokenTextHeading,
		TokenTextCode,
		TokenTextBullet,

		// Focus decorations
		TokenHighlightFg,
		TokenHighlightBg,
		TokenCurrentBg,

		// Status bar
		TokenStatusFg,
		TokenStatusBg,
		TokenStatusOn,

		// Overlays
		TokenOverlayTitle,
		TokenOverlayBorder,
		TokenToastError,
	}
}
