// Package styles contains Lip Gloss style definitions.
package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the linefocus color scheme.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default linefocus theme",
	Colors: map[ColorToken]string{
		// Document text
		TokenTextPrimary: "#CCCCCC",
		TokenTextDim:     "#5C5C5C",
		TokenTextHeading: "#FFFFFF",
		TokenTextCode:    "#73F59F",
		TokenTextBullet:  "#54A0FF",

		// Focus decorations
		TokenHighlightFg: "#1E1E1E",
		TokenHighlightBg: "#FECA57",
		TokenCurrentBg:   "#3A3A3A",

		// Status bar
		TokenStatusFg: "#BBBBBB",
		TokenStatusBg: "#2D3436",
		TokenStatusOn: "#73F59F",

		// Overlays
		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#696969",
		TokenToastError:    "#FF8787",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha theme.
// https://github.com/catppuccin/catppuccin
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#CDD6F4", // text
		TokenTextDim:     "#585B70", // surface2
		TokenTextHeading: "#CBA6F7", // mauve
		TokenTextCode:    "#A6E3A1", // green
		TokenTextBullet:  "#89B4FA", // blue

		TokenHighlightFg: "#1E1E2E", // base
		TokenHighlightBg: "#F9E2AF", // yellow
		TokenCurrentBg:   "#313244", // surface0

		TokenStatusFg: "#BAC2DE", // subtext1
		TokenStatusBg: "#181825", // mantle
		TokenStatusOn: "#A6E3A1", // green

		TokenOverlayTitle:  "#CDD6F4", // text
		TokenOverlayBorder: "#6C7086", // overlay0
		TokenToastError:    "#F38BA8", // red
	},
}

// CatppuccinLattePreset is the Catppuccin Latte theme.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Warm, cozy light theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#4C4F69", // text
		TokenTextDim:     "#ACB0BE", // surface2
		TokenTextHeading: "#8839EF", // mauve
		TokenTextCode:    "#40A02B", // green
		TokenTextBullet:  "#1E66F5", // blue

		TokenHighlightFg: "#EFF1F5", // base
		TokenHighlightBg: "#DF8E1D", // yellow
		TokenCurrentBg:   "#CCD0DA", // surface0

		TokenStatusFg: "#5C5F77", // subtext1
		TokenStatusBg: "#E6E9EF", // mantle
		TokenStatusOn: "#40A02B", // green

		TokenOverlayTitle:  "#4C4F69", // text
		TokenOverlayBorder: "#9CA0B0", // overlay0
		TokenToastError:    "#D20F39", // red
	},
}

// DraculaPreset is the Dracula theme.
// https://draculatheme.com
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#F8F8F2",
		TokenTextDim:     "#6272A4",
		TokenTextHeading: "#FF79C6",
		TokenTextCode:    "#50FA7B",
		TokenTextBullet:  "#8BE9FD",

		TokenHighlightFg: "#282A36",
		TokenHighlightBg: "#F1FA8C",
		TokenCurrentBg:   "#44475A",

		TokenStatusFg: "#F8F8F2",
		TokenStatusBg: "#21222C",
		TokenStatusOn: "#50FA7B",

		TokenOverlayTitle:  "#F8F8F2",
		TokenOverlayBorder: "#6272A4",
		TokenToastError:    "#FF5555",
	},
}

// NordPreset is the Nord theme.
// https://www.nordtheme.com
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#ECEFF4", // nord6
		TokenTextDim:     "#4C566A", // nord3
		TokenTextHeading: "#88C0D0", // nord8
		TokenTextCode:    "#A3BE8C", // nord14
		TokenTextBullet:  "#81A1C1", // nord9

		TokenHighlightFg: "#2E3440", // nord0
		TokenHighlightBg: "#EBCB8B", // nord13
		TokenCurrentBg:   "#3B4252", // nord1

		TokenStatusFg: "#D8DEE9", // nord4
		TokenStatusBg: "#3B4252", // nord1
		TokenStatusOn: "#A3BE8C", // nord14

		TokenOverlayTitle:  "#ECEFF4", // nord6
		TokenOverlayBorder: "#4C566A", // nord3
		TokenToastError:    "#BF616A", // nord11
	},
}

// HighContrastPreset maximizes contrast for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#FFFFFF",
		TokenTextDim:     "#808080",
		TokenTextHeading: "#FFFF00",
		TokenTextCode:    "#00FF00",
		TokenTextBullet:  "#00FFFF",

		TokenHighlightFg: "#000000",
		TokenHighlightBg: "#FFFF00",
		TokenCurrentBg:   "#0000AA",

		TokenStatusFg: "#FFFFFF",
		TokenStatusBg: "#000000",
		TokenStatusOn: "#00FF00",

		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",
		TokenToastError:    "#FF0000",
	},
}
