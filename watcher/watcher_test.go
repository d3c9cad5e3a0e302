package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	vs := filepath.Join(dir, "base.vs")
	fs := filepath.Join(dir, "base.fs")
	require.NoError(t, os.WriteFile(vs, []byte("v1"), 0o644))
	require.NoError(t, os.WriteFile(fs, []byte("f1"), 0o644))

	w, err := New(vs, fs)
	require.NoError(t, err)
	defer w.Close()

	assert.False(t, w.Pending())

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(fs, []byte("f2"), 0o644))
	}
	assert.Eventually(t, w.Pending, 2*time.Second, 10*time.Millisecond)

	// later events from the same burst may refill the slot once; after
	// that the burst is used up
	time.Sleep(200 * time.Millisecond)
	w.Pending()
	assert.False(t, w.Pending(), "a burst of writes coalesces into one notification")
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	vs := filepath.Join(dir, "base.vs")
	require.NoError(t, os.WriteFile(vs, []byte("v1"), 0o644))

	w, err := New(vs)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.False(t, w.Pending())
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "base.vs"))
	assert.Error(t, err)
}

func TestWatcherClose(t *testing.T) {
	vs := filepath.Join(t.TempDir(), "base.vs")
	require.NoError(t, os.WriteFile(vs, []byte("v1"), 0o644))
	w, err := New(vs)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}
