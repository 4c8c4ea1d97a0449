// Package config provides configuration types and defaults for linefocus.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/layout"
	"github.com/zjrosen/linefocus/internal/log"
	"github.com/zjrosen/linefocus/internal/segment"
	"github.com/zjrosen/linefocus/internal/tracing"
	"github.com/zjrosen/linefocus/internal/ui/styles"
)

// Config holds all configuration options for linefocus.
type Config struct {
	Segment SegmentConfig `mapstructure:"segment"`
	Layout  LayoutConfig  `mapstructure:"layout"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	UI      UIConfig      `mapstructure:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// SegmentConfig tunes visual line segmentation.
type SegmentConfig struct {
	ShortTextThreshold int     `mapstructure:"short_text_threshold"` // blocks with fewer characters are one line
	Stride             int     `mapstructure:"stride"`               // measure every Nth word
	Tolerance          float64 `mapstructure:"tolerance"`            // layout units of vertical noise ignored
}

// LayoutConfig configures the terminal layout grid.
type LayoutConfig struct {
	// MaxWidth caps the text column in cells. 0 uses the terminal width.
	MaxWidth     int     `mapstructure:"max_width"`
	CellWidth    float64 `mapstructure:"cell_width"`
	LineHeight   float64 `mapstructure:"line_height"`
	BlockSpacing int     `mapstructure:"block_spacing"`
}

// CatalogConfig selects the blocks that can be read.
type CatalogConfig struct {
	Selectors     string `mapstructure:"selectors"`       // comma separated tag names
	MinTextLength int    `mapstructure:"min_text_length"` // trimmed characters a block must exceed
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark", "light" or "" for auto
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     highlight:
	//       bg: "#FECA57"
	// Or quoted dot notation:
	//   colors:
	//     "highlight.bg": "#FECA57"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// Styles converts the theme to the form the styles package applies.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Colors: t.FlattenedColors()}
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// WatchConfig controls reloading the document when it changes on disk.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/linefocus/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// SegmentOptions returns the segmenter options.
func (c Config) SegmentOptions() segment.Options {
	return segment.Options{
		ShortTextThreshold: c.Segment.ShortTextThreshold,
		Stride:             c.Segment.Stride,
		Tolerance:          c.Segment.Tolerance,
	}
}

// LayoutOptions returns the layout options for a terminal width, capped at
// MaxWidth when set.
func (c Config) LayoutOptions(width int) layout.Options {
	if c.Layout.MaxWidth > 0 && (width <= 0 || width > c.Layout.MaxWidth) {
		width = c.Layout.MaxWidth
	}
	return layout.Options{
		Width:        width,
		CellWidth:    c.Layout.CellWidth,
		LineHeight:   c.Layout.LineHeight,
		BlockSpacing: c.Layout.BlockSpacing,
	}
}

// NewCatalog builds the block catalog.
func (c Config) NewCatalog() (*document.Catalog, error) {
	return document.NewCatalog(c.Catalog.Selectors, c.Catalog.MinTextLength)
}

// TracingOptions returns the tracing provider configuration. An empty file
// path falls back to DefaultTracesFilePath.
func (c Config) TracingOptions() tracing.Config {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = c.Tracing.Enabled
	if c.Tracing.Exporter != "" {
		cfg.Exporter = c.Tracing.Exporter
	}
	cfg.FilePath = c.Tracing.FilePath
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultTracesFilePath()
	}
	if c.Tracing.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = c.Tracing.OTLPEndpoint
	}
	cfg.SampleRate = c.Tracing.SampleRate
	return cfg
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/linefocus/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "linefocus", "traces", "traces.jsonl")
}

// Validate checks every section of the configuration.
func Validate(cfg Config) error {
	if err := ValidateSegment(cfg.Segment); err != nil {
		return err
	}
	if err := ValidateLayout(cfg.Layout); err != nil {
		return err
	}
	if err := ValidateCatalog(cfg.Catalog); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	if err := ValidateWatch(cfg.Watch); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateSegment checks segmentation tuning for errors.
func ValidateSegment(s SegmentConfig) error {
	if s.ShortTextThreshold < 0 {
		return fmt.Errorf("segment.short_text_threshold must not be negative, got %d", s.ShortTextThreshold)
	}
	if s.Stride < 1 {
		return fmt.Errorf("segment.stride must be at least 1, got %d", s.Stride)
	}
	if s.Tolerance < 0 {
		return fmt.Errorf("segment.tolerance must not be negative, got %v", s.Tolerance)
	}
	return nil
}

// ValidateLayout checks layout configuration for errors.
func ValidateLayout(l LayoutConfig) error {
	if l.MaxWidth < 0 {
		return fmt.Errorf("layout.max_width must not be negative, got %d", l.MaxWidth)
	}
	if l.CellWidth <= 0 {
		return fmt.Errorf("layout.cell_width must be positive, got %v", l.CellWidth)
	}
	if l.LineHeight <= 0 {
		return fmt.Errorf("layout.line_height must be positive, got %v", l.LineHeight)
	}
	if l.BlockSpacing < 0 {
		return fmt.Errorf("layout.block_spacing must not be negative, got %d", l.BlockSpacing)
	}
	return nil
}

// ValidateCatalog checks the block selectors parse.
func ValidateCatalog(c CatalogConfig) error {
	if _, err := document.ParseSelectors(c.Selectors); err != nil {
		return fmt.Errorf("catalog.selectors: %w", err)
	}
	if c.MinTextLength < 0 {
		return fmt.Errorf("catalog.min_text_length must not be negative, got %d", c.MinTextLength)
	}
	return nil
}

// ValidateUI checks user interface options.
func ValidateUI(u UIConfig) error {
	switch u.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", u.MarkdownStyle)
	}
}

// ValidateTheme checks the preset, mode and color overrides.
func ValidateTheme(t ThemeConfig) error {
	switch t.Mode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("theme.mode must be \"light\" or \"dark\", got %q", t.Mode)
	}
	if err := styles.ValidateTheme(t.Styles()); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	return nil
}

// ValidateWatch checks file watching options.
func ValidateWatch(w WatchConfig) error {
	if w.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", w.Debounce)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	// Validate Exporter is a valid option
	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// OTLPEndpoint is required when Exporter is "otlp"
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	seg := segment.DefaultOptions()
	lay := layout.DefaultOptions()
	return Config{
		Segment: SegmentConfig{
			ShortTextThreshold: seg.ShortTextThreshold,
			Stride:             seg.Stride,
			Tolerance:          seg.Tolerance,
		},
		Layout: LayoutConfig{
			MaxWidth:     100,
			CellWidth:    lay.CellWidth,
			LineHeight:   lay.LineHeight,
			BlockSpacing: lay.BlockSpacing,
		},
		Catalog: CatalogConfig{
			Selectors:     document.DefaultSelectors,
			MinTextLength: document.DefaultMinTextLength,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "",
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 300 * time.Millisecond,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# linefocus Configuration

# Visual line segmentation
segment:
  short_text_threshold: 100  # Blocks with fewer characters are read as one line
  stride: 2                  # Measure every Nth word (1 = every word, most accurate)
  tolerance: 5               # Vertical movement (layout units) ignored as noise

# Terminal layout
layout:
  max_width: 100       # Widest text column in cells (0 = terminal width)
  cell_width: 8        # Layout units per cell
  line_height: 16      # Layout units per row
  block_spacing: 1     # Blank rows between blocks

# Readable blocks
catalog:
  selectors: "p, pre, h1, h2, h3, h4, h5, h6, li"
  min_text_length: 10  # Shorter blocks are skipped by navigation

# UI settings
ui:
  show_status_bar: true    # Show focus status at bottom (toggle with w)
  # markdown_style: dark   # Help rendering style: "dark" or "light" (default: auto)

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default linefocus theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   catppuccin-latte  - Warm, cozy light theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # mode: dark  # Force "light" or "dark" (default: terminal detection)
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   highlight.bg: "#FECA57"
  #   text.dim: "#5C5C5C"

# Reload the document when it changes on disk
watch:
  enabled: true
  debounce: 300ms

# Distributed tracing of segmentation and highlighting
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/linefocus/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
