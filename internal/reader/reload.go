package reader

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/zjrosen/linefocus/internal/config"
	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/log"
	"github.com/zjrosen/linefocus/internal/tracing"
	"github.com/zjrosen/linefocus/internal/ui/toaster"
	"github.com/zjrosen/linefocus/internal/watcher"
)

// FileChangedMsg reports that the document file changed on disk.
type FileChangedMsg struct{}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return FileChangedMsg{}
	}
}

// startWatcher watches the document file for changes. Failures leave the
// reader without reloads.
func (m Model) startWatcher() Model {
	if !m.cfg.Watch.Enabled || m.opts.Path == "" {
		return m
	}
	w, err := watcher.New(watchConfig(m.opts.Path, m.cfg.Watch))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Creating watcher failed", err, "path", m.opts.Path)
		return m
	}
	changes, err := w.Start()
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Starting watcher failed", err, "path", m.opts.Path)
		_ = w.Stop()
		return m
	}
	m.watcher = w
	m.changes = changes
	return m
}

// reload re-reads the document and hands the new tree to the controller,
// which keeps the reading position where it still exists.
func (m Model) reload(ctx context.Context) (Model, tea.Cmd) {
	ctx, span := m.tracer.Start(ctx, tracing.SpanReload)
	defer span.End()
	span.SetAttributes(attribute.String(tracing.AttrPath, m.opts.Path))

	doc, err := readDocument(m.opts.Path, m.opts.Format)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatDocument, "Reload failed", err, "path", m.opts.Path)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Reload failed: "+err.Error(), toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}

	m.doc = doc
	m.engine.Reset()
	m.engine.Arrange(m.catalog.LayoutBlocks(doc))
	m.focus.Reload(ctx, m.catalog.Bind(doc), doc)
	span.SetAttributes(attribute.Int(tracing.AttrBlockCount, len(m.engine.Blocks())))
	if m.ready {
		m.refresh()
	}

	log.Info(log.CatDocument, "Reloaded document", "path", m.opts.Path)
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show("Reloaded", toaster.StyleSuccess, toaster.DefaultDuration)
	return m, cmd
}

func readDocument(path string, format document.Format) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return document.Load(f, format)
}

// watchConfig applies the configured debounce over the watcher defaults.
// A zero debounce keeps the default.
func watchConfig(path string, wc config.WatchConfig) watcher.Config {
	cfg := watcher.DefaultConfig(path)
	if wc.Debounce > 0 {
		cfg.DebounceDur = wc.Debounce
	}
	return cfg
}
