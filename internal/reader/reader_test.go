package reader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/linefocus/internal/config"
	"github.com/zjrosen/linefocus/internal/document"
	"github.com/zjrosen/linefocus/internal/focus"
	"github.com/zjrosen/linefocus/internal/render"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

const paragraph = "Reading long paragraphs on a wide screen is tiring because the eye loses its place " +
	"when it jumps back from the end of one line to the start of the next line."

func source(n int) string {
	var sb strings.Builder
	sb.WriteString("<h1>Title</h1>")
	for i := 0; i < n; i++ {
		sb.WriteString("<p>" + paragraph + "</p>")
	}
	return sb.String()
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.Watch.Enabled = false
	return cfg
}

func newModel(t *testing.T, src string, opts Options) Model {
	t.Helper()
	doc, err := document.Parse([]byte(src), document.FormatHTML)
	require.NoError(t, err)
	if opts.Config.Segment.Stride == 0 {
		opts.Config = testConfig()
	}
	m, err := New(doc, opts)
	require.NoError(t, err)
	return m
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	f9   = tea.KeyMsg{Type: tea.KeyF9}
	esc  = tea.KeyMsg{Type: tea.KeyEsc}
	size = tea.WindowSizeMsg{Width: 60, Height: 24}
)

func TestView_LoadingBeforeSize(t *testing.T) {
	m := newModel(t, source(2), Options{})

	require.Equal(t, "Loading...", m.View())
}

func TestResize_RendersDocumentAndStatus(t *testing.T) {
	m := send(t, newModel(t, source(2), Options{}), size)

	view := ansi.Strip(m.View())
	require.Contains(t, view, "Title")
	require.Contains(t, view, "Reading long paragraphs")
	require.Contains(t, view, "Line Focus: OFF")
	require.Equal(t, 23, m.viewport.Height)
	require.Equal(t, 56, m.engine.Width())
}

func TestResize_CapsColumnAtMaxWidth(t *testing.T) {
	m := send(t, newModel(t, source(1), Options{}), tea.WindowSizeMsg{Width: 200, Height: 24})

	require.Equal(t, 100, m.engine.Width())
	require.Equal(t, (200-100-render.Gutter)/2, m.margin)
}

func TestResize_FixedWidth(t *testing.T) {
	m := send(t, newModel(t, source(1), Options{Width: 40}), size)

	require.Equal(t, 40, m.engine.Width())
}

func TestToggle_ActivatesSelecting(t *testing.T) {
	m := send(t, newModel(t, source(2), Options{}), size, f9)

	require.True(t, m.Focus().Active())
	_, positioned := m.Focus().Position()
	require.False(t, positioned)
	require.True(t, document.HasClass(m.Document().Body(), document.ActiveClass))
	require.Contains(t, ansi.Strip(m.View()), "Line Focus: ON (selecting)")
}

func TestNavigation_FocusesLines(t *testing.T) {
	m := send(t, newModel(t, source(2), Options{}), size, f9, runes("j"))

	pos, ok := m.Focus().Position()
	require.True(t, ok)
	require.Equal(t, focus.Position{BlockIndex: 0, LineIndex: 0}, pos)
	lines := len(m.Focus().Lines())
	require.Greater(t, lines, 1)
	require.Contains(t, ansi.Strip(m.View()), "Element 1/2, Line 1/")

	m = send(t, m, runes("}"))
	pos, _ = m.Focus().Position()
	require.Equal(t, focus.Position{BlockIndex: 1, LineIndex: 0}, pos)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	pos, _ = m.Focus().Position()
	require.Equal(t, focus.Position{BlockIndex: 0, LineIndex: lines - 1}, pos)
}

func TestNavigation_HighlightsCurrentLine(t *testing.T) {
	m := send(t, newModel(t, source(1), Options{}), size, f9, runes("j"))

	var buf bytes.Buffer
	require.NoError(t, m.Document().Render(&buf))
	require.Contains(t, buf.String(), `class="line-focus-highlight"`)
}

func TestExit_Deactivates(t *testing.T) {
	m := send(t, newModel(t, source(1), Options{}), size, f9, runes("j"), esc)

	require.False(t, m.Focus().Active())
	require.False(t, document.HasClass(m.Document().Body(), document.ActiveClass))
	var buf bytes.Buffer
	require.NoError(t, m.Document().Render(&buf))
	require.NotContains(t, buf.String(), "line-focus-highlight")
}

func TestToggle_NoReadableBlocksShowsToast(t *testing.T) {
	m := send(t, newModel(t, "<p>short</p>", Options{}), size, f9)

	require.False(t, m.Focus().Active())
	require.True(t, m.toaster.Visible())
}

func TestInactive_KeysScroll(t *testing.T) {
	m := send(t, newModel(t, source(8), Options{}), tea.WindowSizeMsg{Width: 60, Height: 10})
	require.Zero(t, m.viewport.YOffset)

	m = send(t, m, runes("j"))
	require.Equal(t, 1, m.viewport.YOffset)

	m = send(t, m, runes("G"))
	require.True(t, m.viewport.AtBottom())

	m = send(t, m, runes("g"))
	require.Zero(t, m.viewport.YOffset)
}

func TestMouse_ClickEntersLine(t *testing.T) {
	m := send(t, newModel(t, source(2), Options{}), size)
	second := m.engine.Blocks()[2]
	p, ok := m.engine.Placement(second)
	require.True(t, ok)

	m = send(t, m, tea.MouseMsg{
		X:      m.margin + render.Gutter + 4,
		Y:      p.Origin + 1 - m.viewport.YOffset,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	})

	pos, ok := m.Focus().Position()
	require.True(t, ok)
	require.Equal(t, 1, pos.BlockIndex)
	require.Equal(t, 1, pos.LineIndex)
}

func TestMouse_ClickOnFirstCellOfWrappedRowEntersThatLine(t *testing.T) {
	m := send(t, newModel(t, source(2), Options{}), size)
	second := m.engine.Blocks()[2]
	p, ok := m.engine.Placement(second)
	require.True(t, ok)
	require.Greater(t, p.Rows, 1)

	m = send(t, m, tea.MouseMsg{
		X:      m.margin + render.Gutter,
		Y:      p.Origin + 1 - m.viewport.YOffset,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	})

	pos, ok := m.Focus().Position()
	require.True(t, ok)
	require.Equal(t, 1, pos.BlockIndex)
	require.Equal(t, 1, pos.LineIndex, "the clicked row's line, not the one before it")
}

func TestResize_KeepsPositionAndClampsLine(t *testing.T) {
	m := send(t, newModel(t, source(1), Options{}), tea.WindowSizeMsg{Width: 40, Height: 24}, f9, runes("j"))
	for range 10 {
		m = send(t, m, runes("j"))
	}
	pos, _ := m.Focus().Position()
	require.Equal(t, len(m.Focus().Lines())-1, pos.LineIndex)

	m = send(t, m, tea.WindowSizeMsg{Width: 200, Height: 24})

	pos, ok := m.Focus().Position()
	require.True(t, ok)
	require.Equal(t, 0, pos.BlockIndex)
	require.Less(t, pos.LineIndex, len(m.Focus().Lines()))
}

func TestHelp_OverlayToggles(t *testing.T) {
	m := send(t, newModel(t, source(1), Options{}), tea.WindowSizeMsg{Width: 100, Height: 50}, runes("?"))

	require.True(t, m.showHelp)
	require.Contains(t, ansi.Strip(m.View()), "Keybindings")

	m = send(t, m, runes("j"))
	require.True(t, m.showHelp, "other keys are swallowed by the help overlay")

	m = send(t, m, esc)
	require.False(t, m.showHelp)
}

func TestToggleStatus_SavesSetting(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	m := send(t, newModel(t, source(1), Options{ConfigPath: configPath}), size, runes("w"))

	require.False(t, m.cfg.UI.ShowStatusBar)
	require.Equal(t, 24, m.viewport.Height)
	require.NotContains(t, ansi.Strip(m.View()), "Line Focus")

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "show_status_bar: false")
}

func TestQuit(t *testing.T) {
	_, cmd := newModel(t, source(1), Options{}).Update(runes("q"))

	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWatchConfig_Debounce(t *testing.T) {
	require.Equal(t, 300*time.Millisecond, watchConfig("doc.md", config.WatchConfig{}).DebounceDur)

	got := watchConfig("doc.md", config.WatchConfig{Enabled: true, Debounce: time.Second})
	require.Equal(t, "doc.md", got.Path)
	require.Equal(t, time.Second, got.DebounceDur)
}

func TestReload_KeepsPositionClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.html")
	require.NoError(t, os.WriteFile(path, []byte(source(3)), 0o644))
	m := newModel(t, source(3), Options{Path: path, Format: document.FormatHTML})
	m = send(t, m, size, f9, runes("j"), runes("}"), runes("}"))
	pos, _ := m.Focus().Position()
	require.Equal(t, 2, pos.BlockIndex)
	old := m.Document()

	require.NoError(t, os.WriteFile(path, []byte(source(2)), 0o644))
	m = send(t, m, FileChangedMsg{})

	require.NotSame(t, old, m.Document())
	require.True(t, m.Focus().Active())
	pos, ok := m.Focus().Position()
	require.True(t, ok)
	require.Equal(t, 1, pos.BlockIndex)
	require.True(t, m.toaster.Visible())
	require.Contains(t, ansi.Strip(m.View()), "Reloaded")
}

func TestReload_FailureKeepsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.html")
	m := send(t, newModel(t, source(1), Options{Path: path}), size)
	old := m.Document()

	m = send(t, m, FileChangedMsg{})

	require.Same(t, old, m.Document())
	require.Contains(t, ansi.Strip(m.View()), "Reload failed")
}

func TestWaitForChange(t *testing.T) {
	require.Nil(t, waitForChange(nil))

	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	require.Equal(t, FileChangedMsg{}, waitForChange(ch)())

	close(ch)
	require.Nil(t, waitForChange(ch)())
}

func TestProgram_ReadsWithKeys(t *testing.T) {
	tm := teatest.NewTestModel(t, newModel(t, source(3), Options{}), teatest.WithInitialTermSize(60, 30))

	tm.Send(f9)
	tm.Send(runes("j"))
	tm.Send(runes("}"))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Element 2/3, Line 1/"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(runes("q"))
	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	pos, ok := final.Focus().Position()
	require.True(t, ok)
	require.Equal(t, focus.Position{BlockIndex: 1, LineIndex: 0}, pos)
}
