package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/forkful/forkful-cli/internal/ports"
)

const (
	changeBuffer = 16

	// defaultDebounce coalesces the per-key announcements of a single
	// login or logout into one change.
	defaultDebounce = 100 * time.Millisecond
)

// Watcher subscribes to the store's change channel and surfaces writes made
// by other processes. Messages carrying this process's own origin ID are
// dropped.
type Watcher struct {
	client   redis.UniversalClient
	channel  string
	origin   string
	logger   *slog.Logger
	debounce time.Duration
}

// WatcherOptions configures a Watcher.
type WatcherOptions struct {
	Logger   *slog.Logger
	Debounce time.Duration
}

// NewWatcher creates a Watcher for the given store.
func NewWatcher(store *Store, opts WatcherOptions) *Watcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		client:   store.client,
		channel:  store.channel,
		origin:   store.origin,
		logger:   logger,
		debounce: debounce,
	}
}

// Watch subscribes to the change channel and returns the change feed. The
// feed is closed when ctx is done.
func (w *Watcher) Watch(ctx context.Context) (<-chan ports.Change, error) {
	sub := w.client.Subscribe(ctx, w.channel)
	// Force the subscription to be established before returning, so a
	// change made right after Watch is not missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	ch := make(chan ports.Change, changeBuffer)
	go w.run(ctx, sub, ch)
	return ch, nil
}

func (w *Watcher) run(ctx context.Context, sub *redis.PubSub, ch chan<- ports.Change) {
	defer func() {
		if err := sub.Close(); err != nil {
			w.logger.Warn("close session subscription", "error", err)
		}
		close(ch)
	}()

	msgs := sub.Channel()

	var timer *time.Timer
	var timerC <-chan time.Time
	var pendingOrigin string

	for {
		select {
		case <-ctx.Done():
			return

		case msg, open := <-msgs:
			if !open {
				return
			}
			if msg.Payload == w.origin {
				continue
			}
			pendingOrigin = msg.Payload
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
			case ch <- ports.Change{Origin: pendingOrigin}:
			default:
				// Consumer re-reads on every change; the next
				// announcement recovers a dropped one.
			}
			pendingOrigin = ""
		}
	}
}
