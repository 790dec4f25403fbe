package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "credential", "tok-abc"))

	got, err := store.Get(ctx, "credential")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", got)
}

func TestStoreGetAbsentKey(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	got, err := store.Get(context.Background(), "credential")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestStoreSetOverwrites(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "credential", "first"))
	require.NoError(t, store.Set(ctx, "credential", "second"))

	got, err := store.Get(ctx, "credential")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestStoreDeleteIdempotent(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "credential", "tok"))
	require.NoError(t, store.Delete(ctx, "credential"))
	require.NoError(t, store.Delete(ctx, "credential"))

	got, err := store.Get(ctx, "credential")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestStoreRejectsUnsafeKeys(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "a/b", `a\b`} {
		_, err := store.Get(ctx, key)
		assert.Error(t, err, "key %q", key)
		assert.Error(t, store.Set(ctx, key, "v"), "key %q", key)
	}
}

func TestStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, store.Set(ctx, "credential", "tok"))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "credential", entries[0].Name())
}

func TestWatcherSeesExternalWrite(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := NewWatcher(dir, WatcherOptions{Debounce: 10 * time.Millisecond})
	ch, err := watcher.Watch(ctx)
	require.NoError(t, err)

	// A different process writes the session file directly.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credential"), []byte("tok"), 0o600))

	select {
	case _, open := <-ch:
		assert.True(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change event")
	}
}

func TestWatcherCoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := NewWatcher(dir, WatcherOptions{Debounce: 50 * time.Millisecond})
	ch, err := watcher.Watch(ctx)
	require.NoError(t, err)

	// A login writes both files back to back.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credential"), []byte("tok"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "identity"), []byte(`{"id":"u-1"}`), 0o600))

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change event")
	}

	// The burst was coalesced into a single change.
	select {
	case <-ch:
		t.Fatal("expected the burst to coalesce")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	watcher := NewWatcher(t.TempDir(), WatcherOptions{})
	ch, err := watcher.Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the change feed to close")
	}
}
