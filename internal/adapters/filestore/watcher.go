package filestore

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/forkful/forkful-cli/internal/ports"
)

const (
	// changeBuffer is the size of the outgoing change channel.
	changeBuffer = 16

	// defaultDebounce coalesces rapid file events (a login writes two
	// files back to back) into one change.
	defaultDebounce = 100 * time.Millisecond
)

// Watcher emits a change whenever another process modifies the files in the
// session directory. File events cannot be attributed to a writer, so the
// consumer deduplicates by content.
type Watcher struct {
	dir      string
	logger   *slog.Logger
	debounce time.Duration

	droppedChanges atomic.Int64
}

// WatcherOptions configures a Watcher.
type WatcherOptions struct {
	Logger   *slog.Logger
	Debounce time.Duration
}

// NewWatcher creates a Watcher for the given session directory.
func NewWatcher(dir string, opts WatcherOptions) *Watcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{dir: dir, logger: logger, debounce: debounce}
}

// Watch starts the file watcher and returns the change feed. The feed is
// closed when ctx is done or the underlying watcher fails.
func (w *Watcher) Watch(ctx context.Context) (<-chan ports.Change, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}

	ch := make(chan ports.Change, changeBuffer)
	go w.run(ctx, fsw, ch)
	return ch, nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, ch chan<- ports.Change) {
	defer func() {
		if err := fsw.Close(); err != nil {
			w.logger.Warn("close file watcher", "error", err)
		}
		close(ch)
	}()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, open := <-fsw.Events:
			if !open {
				return
			}
			if w.ignorable(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case ch <- ports.Change{}:
			default:
				// Consumer re-reads on every change, so a dropped
				// signal is recovered by the next one.
				w.droppedChanges.Add(1)
			}

		case err, open := <-fsw.Errors:
			if !open {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// ignorable filters events for in-flight temp files and chmod-only noise.
func (w *Watcher) ignorable(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return true
	}
	name := filepath.Base(ev.Name)
	return strings.Contains(name, tempSuffix)
}

// DroppedChanges reports how many change signals were dropped due to a slow
// consumer.
func (w *Watcher) DroppedChanges() int64 {
	return w.droppedChanges.Load()
}
