package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/linefocus/internal/config"
	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/log"
	"github.com/zjrosen/linefocus/internal/reader"
	"github.com/zjrosen/linefocus/internal/tracing"
	"github.com/zjrosen/linefocus/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const defaultConfigPath = ".linefocus/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	cfg       config.Config
	configErr error
	settings  = config.NewViper()

	debugFlag  bool
	widthFlag  int
	formatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "linefocus [file]",
	Short: "A terminal reader that follows you line by line",
	Long: `linefocus renders an HTML or Markdown document in the terminal and
highlights one visual line at a time, so the eye never loses its place.

Press f9 to start reading, j/k to move between lines, esc to stop.
Clicking any line starts reading from it.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runReader,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/linefocus/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by LINEFOCUS_DEBUG)")
	rootCmd.PersistentFlags().IntVarP(&widthFlag, "width", "w", 0,
		"text column width in cells (default: terminal width, capped by layout.max_width)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "",
		"document format: html or markdown (default: from file extension)")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload the document when it changes on disk")
}

func initConfig() {
	if cfgFile != "" {
		settings.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .linefocus/config.yaml (current directory)
		// 2. ~/.config/linefocus/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			settings.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			settings.AddConfigPath(filepath.Join(home, ".config", "linefocus"))
			settings.SetConfigName("config")
			settings.SetConfigType("yaml")
		}
	}

	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No config file found anywhere - create default at .linefocus/config.yaml
			if writeErr := config.WriteDefaultConfig(defaultConfigPath); writeErr == nil {
				settings.SetConfigFile(defaultConfigPath)
				_ = settings.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		} else {
			configErr = fmt.Errorf("reading config: %w", err)
			return
		}
	}

	cfg, configErr = config.Load(settings)
}

func runReader(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}

	cleanup, err := initLogging("linefocus")
	if err != nil {
		return err
	}
	defer cleanup()

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch.Enabled = false
	}
	if err := applyTheme(cfg.Theme); err != nil {
		return err
	}

	path := args[0]
	format, err := resolveFormat(path)
	if err != nil {
		return err
	}
	doc, err := openDocument(path, format)
	if err != nil {
		return err
	}

	provider, err := tracing.NewProvider(cfg.TracingOptions())
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	// Store the config file path for saving UI changes
	configFilePath := settings.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = defaultConfigPath
	}

	zone.NewGlobal()
	model, err := reader.New(doc, reader.Options{
		Path:       path,
		Format:     format,
		Config:     cfg,
		ConfigPath: configFilePath,
		Width:      widthFlag,
		Tracer:     provider.Tracer(),
	})
	if err != nil {
		return err
	}
	log.Info(log.CatConfig, "Reader starting", "path", path, "format", format, "config", configFilePath)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// initLogging enables the debug log when --debug or LINEFOCUS_DEBUG is set.
// The returned cleanup is always safe to call.
func initLogging(prefix string) (func(), error) {
	if os.Getenv("LINEFOCUS_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("LINEFOCUS_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	if name := os.Getenv("LINEFOCUS_LOG_LEVEL"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			cleanup()
			return nil, err
		}
		log.SetMinLevel(level)
	}
	log.Info(log.CatConfig, "Debug logging enabled", "logPath", logPath)
	return cleanup, nil
}

func applyTheme(theme config.ThemeConfig) error {
	switch theme.Mode {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
	if err := styles.ApplyTheme(theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	return nil
}

func resolveFormat(path string) (document.Format, error) {
	if formatFlag == "" {
		return document.FormatFromPath(path), nil
	}
	return document.ParseFormat(formatFlag)
}

func openDocument(path string, format document.Format) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer func() { _ = f.Close() }()
	return document.Load(f, format)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
