// Package ports defines interfaces (hexagonal ports) for the session core.
// Implementations live in internal/adapters; orchestration in internal/session
// and internal/guard.
package ports

import "context"

// Storage is the persisted key-value store holding the serialized session.
// Values are plain strings; an absent key reads as the empty string. Writes
// are atomic at the key level. The session store is the sole writer.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Change describes an external modification of the persisted session keys.
type Change struct {
	// Origin identifies the writer instance when the backend can attribute
	// writes (e.g. pub/sub payloads). Empty when the backend cannot tell,
	// in which case the consumer deduplicates by content.
	Origin string
}

// Watcher surfaces changes other processes make to the persisted session
// keys. Watch delivers on the returned channel until ctx is done; the
// channel is closed when watching stops.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Change, error)
}

// Navigator abstracts "what page am I on" and "go to page X". The route
// guard consumes it and never touches rendering itself.
type Navigator interface {
	CurrentPage() string
	NavigateTo(page string)
}
