package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/linefocus/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{
		Path:        path,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "chapter.md")
	require.NoError(t, os.WriteFile(docPath, []byte("# Chapter"), 0644))

	onChange := startWatcher(t, docPath)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(docPath, []byte(fmt.Sprintf("# Chapter %d", i)), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "chapter.md")
	otherPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(docPath, []byte("doc"), 0644))
	require.NoError(t, os.WriteFile(otherPath, []byte("initial"), 0644))

	onChange := startWatcher(t, docPath)

	require.NoError(t, os.WriteFile(otherPath, []byte("other content"), 0644))

	select {
	case <-onChange:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_DetectsAtomicSave(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "chapter.html")
	require.NoError(t, os.WriteFile(docPath, []byte("<p>one</p>"), 0644))

	onChange := startWatcher(t, docPath)

	tmp := filepath.Join(dir, ".chapter.html.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("<p>two</p>"), 0644))
	require.NoError(t, os.Rename(tmp, docPath))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification after rename over the document")
	}
}

func TestWatcher_Stop(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "chapter.md")
	require.NoError(t, os.WriteFile(docPath, []byte("test"), 0644))

	w, err := watcher.New(watcher.DefaultConfig(docPath))
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop(), "Stop returned error")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}
