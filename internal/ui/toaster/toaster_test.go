package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()

	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New().Show("Reloaded", StyleSuccess, time.Millisecond)

	require.NotNil(t, cmd)
	require.True(t, m.Visible())
	require.Contains(t, m.View(), "Reloaded")
	require.Contains(t, m.View(), "╭")
}

func TestShow_ReplacesExisting(t *testing.T) {
	m, _ := New().Show("First", StyleInfo, time.Second)
	m, _ = m.Show("Second", StyleError, time.Second)

	require.Contains(t, m.View(), "Second")
	require.NotContains(t, m.View(), "First")
}

func TestUpdate_DismissesOnOwnTimer(t *testing.T) {
	m, cmd := New().Show("Reloaded", StyleSuccess, time.Millisecond)

	m = m.Update(cmd())

	require.False(t, m.Visible())
}

func TestUpdate_StaleTimerKeepsNewerToast(t *testing.T) {
	m, stale := New().Show("First", StyleInfo, time.Millisecond)
	m, _ = m.Show("Second", StyleInfo, time.Second)

	m = m.Update(stale())

	require.True(t, m.Visible())
	require.Contains(t, m.View(), "Second")
}

func TestHide(t *testing.T) {
	m, _ := New().Show("Hello", StyleInfo, time.Second)

	m = m.Hide()

	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestOverlay_BottomCenter(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 20)+"\n", 8), "\n")
	m, _ := New().Show("ok", StyleSuccess, time.Second)

	lines := strings.Split(ansi.Strip(m.Overlay(bg, 20, 8)), "\n")

	require.Len(t, lines, 8)
	require.Equal(t, strings.Repeat(".", 20), lines[0])
	require.Contains(t, lines[5], "ok")
	require.Equal(t, strings.Repeat(".", 20), lines[7])
}

func TestOverlay_HiddenReturnsBackground(t *testing.T) {
	require.Equal(t, "bg", New().Overlay("bg", 10, 1))
}
