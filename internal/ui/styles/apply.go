// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
// This avoids import cycles (styles can't import render, but render can register).
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Use this to rebuild styles in packages that depend on styles.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ValidateTheme checks a theme configuration without applying it.
func ValidateTheme(cfg ThemeConfig) error {
	_, err := resolveColors(cfg)
	return err
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors, err := resolveColors(cfg)
	if err != nil {
		return err
	}
	applyColors(colors)
	rebuildStyles()
	return nil
}

func resolveColors(cfg ThemeConfig) (map[ColorToken]string, error) {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return nil, fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return nil, fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return nil, fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}
	return colors, nil
}

func applyColors(colors map[ColorToken]string) {
	// Helper to create adaptive color (uses same color for both modes)
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	targets := map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:   &TextPrimaryColor,
		TokenTextDim:       &TextDimColor,
		TokenTextHeading:   &TextHeadingColor,
		TokenTextCode:      &TextCodeColor,
		TokenTextBullet:    &TextBulletColor,
		TokenHighlightFg:   &HighlightFgColor,
		TokenHighlightBg:   &HighlightBgColor,
		TokenCurrentBg:     &CurrentBgColor,
		TokenStatusFg:      &StatusFgColor,
		TokenStatusBg:      &StatusBgColor,
		TokenStatusOn:      &StatusOnColor,
		TokenOverlayTitle:  &OverlayTitleColor,
		TokenOverlayBorder: &OverlayBorderColor,
		TokenToastError:    &ToastErrorColor,
	}
	for token, target := range targets {
		if c, ok := colors[token]; ok {
			*target = makeColor(c)
		}
	}
}

func rebuildStyles() {
	TextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	DimStyle = lipgloss.NewStyle().Foreground(TextDimColor)
	HeadingStyle = lipgloss.NewStyle().Foreground(TextHeadingColor).Bold(true)
	CodeStyle = lipgloss.NewStyle().Foreground(TextCodeColor)
	BulletStyle = lipgloss.NewStyle().Foreground(TextBulletColor)
	HighlightStyle = lipgloss.NewStyle().Foreground(HighlightFgColor).Background(HighlightBgColor)
	CurrentStyle = lipgloss.NewStyle().Background(CurrentBgColor)

	StatusBarStyle = lipgloss.NewStyle().Foreground(StatusFgColor).Background(StatusBgColor).Padding(0, 1)
	StatusOnStyle = lipgloss.NewStyle().Foreground(StatusOnColor).Background(StatusBgColor).Bold(true)

	OverlayTitleStyle = lipgloss.NewStyle().Foreground(OverlayTitleColor).Bold(true)

	// Call registered rebuilders (e.g., render.RebuildStyles)
	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
