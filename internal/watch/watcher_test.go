package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWatcherReportsSave(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.mc2")
	other := filepath.Join(dir, "other.mc2")
	require.NoError(t, os.WriteFile(script, []byte("NOW"), 0o644))

	changed := make(chan string, 16)
	w, err := New([]string{script}, 20*time.Millisecond, zaptest.NewLogger(t), func(path string) {
		changed <- path
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	// Unwatched files in the same directory are ignored.
	require.NoError(t, os.WriteFile(other, []byte("DUP"), 0o644))
	require.NoError(t, os.WriteFile(script, []byte("NOW NOW"), 0o644))

	abs, err := filepath.Abs(script)
	require.NoError(t, err)

	select {
	case got := <-changed:
		assert.Equal(t, abs, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

	for len(changed) > 0 {
		assert.Equal(t, abs, <-changed)
	}
}

func TestNewMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "script.mc2")

	_, err := New([]string{missing}, time.Millisecond, zaptest.NewLogger(t), func(string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching")
}
