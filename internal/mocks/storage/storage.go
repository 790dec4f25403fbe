// Package storage contains hand-written test doubles for the storage and
// watcher ports. These are lightweight and suitable for unit tests without
// codegen.
package storage

import (
	"context"
	"sync"

	"github.com/forkful/forkful-cli/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.Storage = (*MemoryStorage)(nil)
	_ ports.Watcher = (*FeedWatcher)(nil)
)

// MemoryStorage is an in-memory key-value store with optional injected
// failures per operation.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string

	// Optional injected failures
	GetErr    error
	SetErr    error
	DeleteErr error

	// Op counters for asserting write behavior
	SetCalls    int
	DeleteCalls int
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	return m.values[key], nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.values, key)
	return nil
}

// Put seeds a value directly, bypassing error injection. Useful for
// arranging partial or malformed persisted state.
func (m *MemoryStorage) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Value returns the stored value for key and whether it exists.
func (m *MemoryStorage) Value(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of stored keys.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// FeedWatcher is a ports.Watcher whose changes are emitted by the test.
type FeedWatcher struct {
	ch chan ports.Change
}

// NewFeedWatcher creates a FeedWatcher with a buffered feed.
func NewFeedWatcher() *FeedWatcher {
	return &FeedWatcher{ch: make(chan ports.Change, 16)}
}

func (w *FeedWatcher) Watch(ctx context.Context) (<-chan ports.Change, error) {
	return w.ch, nil
}

// Emit delivers a change to the watcher's consumer.
func (w *FeedWatcher) Emit(c ports.Change) {
	w.ch <- c
}

// Close closes the feed, ending any Sync loop consuming it.
func (w *FeedWatcher) Close() {
	close(w.ch)
}
