package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picobot/internal/logging"
)

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("0 x*** -> N 0\n"), 0o644))

	calls := make(chan string, 8)
	w, err := New(path, func(_ context.Context, p string) { calls <- p }, 20*time.Millisecond, logging.Discard())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("0 x*** -> N 0\n0 N*** -> X 1\n"), 0o644))

	select {
	case got := <-calls:
		assert.Equal(t, w.Path(), got)
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "rules.txt"), func(context.Context, string) {}, 0, nil)
	require.Error(t, err)
}
