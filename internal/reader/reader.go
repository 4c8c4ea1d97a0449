// Package reader is the terminal reader: a bubbletea model that shows an
// arranged document and drives the focus controller from keys, mouse clicks,
// resizes and file reloads.
package reader

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/linefocus/internal/config"
	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/focus"
	"github.com/zjrosen/linefocus/internal/highlight"
	"github.com/zjrosen/linefocus/internal/keys"
	"github.com/zjrosen/linefocus/internal/layout"
	"github.com/zjrosen/linefocus/internal/log"
	"github.com/zjrosen/linefocus/internal/render"
	"github.com/zjrosen/linefocus/internal/segment"
	"github.com/zjrosen/linefocus/internal/ui/help"
	"github.com/zjrosen/linefocus/internal/ui/toaster"
	"github.com/zjrosen/linefocus/internal/watcher"
)

// Options configures a reader.
type Options struct {
	// Path is the document file, used for reloads. Empty disables them.
	Path   string
	Format document.Format
	Config config.Config
	// ConfigPath receives UI changes such as the status bar toggle.
	ConfigPath string
	// Width fixes the text column. 0 follows the terminal, capped by
	// the layout max width.
	Width  int
	Tracer trace.Tracer
}

// Model is the reader state.
type Model struct {
	opts    Options
	cfg     config.Config
	catalog *document.Catalog
	doc     *document.Document

	engine      *layout.Engine
	highlighter *highlight.Highlighter
	focus       *focus.Controller
	scroll      *scroller
	tracer      trace.Tracer

	keys     keys.KeyMap
	viewport viewport.Model
	help     help.Model
	toaster  toaster.Model
	showHelp bool

	width  int
	height int
	margin int
	ready  bool

	watcher *watcher.Watcher
	changes <-chan struct{}
}

// New creates a reader for doc.
func New(doc *document.Document, opts Options) (Model, error) {
	cfg := opts.Config
	catalog, err := cfg.NewCatalog()
	if err != nil {
		return Model{}, fmt.Errorf("building catalog: %w", err)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}

	engine := layout.NewEngine(cfg.LayoutOptions(opts.Width))
	engine.Arrange(catalog.LayoutBlocks(doc))
	scroll := &scroller{engine: engine}
	highlighter := highlight.New(scroll, tracer)
	controller := focus.New(focus.Config{
		Catalog:   catalog.Bind(doc),
		Segmenter: segment.New(engine, cfg.SegmentOptions(), tracer),
		Decorator: highlighter,
		Activator: doc,
	})

	km := keys.DefaultKeyMap()
	m := Model{
		opts:        opts,
		cfg:         cfg,
		catalog:     catalog,
		doc:         doc,
		engine:      engine,
		highlighter: highlighter,
		focus:       controller,
		scroll:      scroll,
		tracer:      tracer,
		keys:        km,
		viewport:    viewport.New(0, 0),
		help:        help.New(km, cfg.UI.MarkdownStyle),
		toaster:     toaster.New(),
	}
	return m.startWatcher(), nil
}

// Init starts the document watcher when reloading is enabled.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.resize(ctx, msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(ctx, msg)

	case tea.MouseMsg:
		return m.handleMouse(ctx, msg)

	case FileChangedMsg:
		var cmd tea.Cmd
		m, cmd = m.reload(ctx)
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	view := m.viewport.View()
	if m.cfg.UI.ShowStatusBar {
		view += "\n" + m.statusBar()
	}
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	view = m.toaster.Overlay(view, m.width, m.height)
	return scanZones(view)
}

// Focus returns the navigation controller.
func (m Model) Focus() *focus.Controller { return m.focus }

// Document returns the document being read.
func (m Model) Document() *document.Document { return m.doc }

// Close stops the document watcher.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Stop()
}

func (m Model) handleKey(ctx context.Context, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Exit) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleStatus):
		return m.toggleStatusBar()

	case key.Matches(msg, m.keys.Toggle):
		wasActive := m.focus.Active()
		m.focus.Toggle(ctx)
		m.refresh()
		if !wasActive && !m.focus.Active() {
			var cmd tea.Cmd
			m.toaster, cmd = m.toaster.Show("No readable text in this document", toaster.StyleInfo, toaster.DefaultDuration)
			return m, cmd
		}
		return m, nil
	}

	if m.focus.Active() {
		switch {
		case key.Matches(msg, m.keys.NextLine):
			m.focus.NextLine(ctx)
		case key.Matches(msg, m.keys.PrevLine):
			m.focus.PrevLine(ctx)
		case key.Matches(msg, m.keys.NextBlock):
			m.focus.NextBlock(ctx)
		case key.Matches(msg, m.keys.PrevBlock):
			m.focus.PrevBlock(ctx)
		case key.Matches(msg, m.keys.Exit):
			m.focus.Deactivate()
		default:
			return m, nil
		}
		m.refresh()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	}
	return m, nil
}

// resize fits the viewport to the terminal and re-wraps the document when
// the text column changes.
func (m Model) resize(ctx context.Context, width, height int) Model {
	m.width, m.height = width, height
	m.ready = true

	column := m.opts.Width
	if column <= 0 {
		column = width - render.Gutter - 2
	}
	column = m.cfg.LayoutOptions(column).Width
	m.margin = max((width-column-render.Gutter)/2, 0)

	m.viewport.Width = width
	m.viewport.Height = m.contentHeight()
	m.help = m.help.SetSize(width, height)

	if m.engine.SetWidth(column) {
		log.Debug(log.CatUI, "Layout invalidated", "width", column)
		m.focus.OnLayoutInvalidated(ctx)
	}
	m.refresh()
	return m
}

func (m Model) contentHeight() int {
	h := m.height
	if m.cfg.UI.ShowStatusBar {
		h--
	}
	return max(h, 1)
}

// refresh re-renders the document into the viewport and applies any scroll
// request made by the highlighter.
func (m *Model) refresh() {
	lines := render.Lines(m.doc, m.engine)
	pad := strings.Repeat(" ", m.margin)
	for i, l := range lines {
		lines[i] = pad + l
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.scroll.apply(&m.viewport)
}

func (m Model) toggleStatusBar() (tea.Model, tea.Cmd) {
	m.cfg.UI.ShowStatusBar = !m.cfg.UI.ShowStatusBar
	m.viewport.Height = m.contentHeight()
	log.Debug(log.CatUI, "Status bar toggled", "visible", m.cfg.UI.ShowStatusBar)

	if m.opts.ConfigPath == "" {
		return m, nil
	}
	if err := config.SaveUI(m.opts.ConfigPath, m.cfg.UI); err != nil {
		log.ErrorErr(log.CatConfig, "Saving UI settings failed", err, "path", m.opts.ConfigPath)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Could not save settings", toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}
	return m, nil
}
