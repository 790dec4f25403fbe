// Package redis provides a Redis-backed storage adapter for the session
// core, for deployments where client processes share state through a Redis
// instance rather than the local filesystem.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix  = "session:"
	defaultChannel = "session:changes"
)

// Store is a Redis-backed storage adapter. Every write publishes the
// writer's origin ID on the change channel so watchers can drop their own
// process's writes.
type Store struct {
	client  redis.UniversalClient
	prefix  string
	channel string
	origin  string
}

// Options configures a Store.
type Options struct {
	// Prefix namespaces the session keys. Defaults to "session:".
	Prefix string
	// Channel is the pub/sub channel for change notifications.
	// Defaults to "session:changes".
	Channel string
}

// NewStore creates a Redis-backed storage adapter.
func NewStore(client redis.UniversalClient, opts Options) *Store {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	channel := opts.Channel
	if channel == "" {
		channel = defaultChannel
	}
	return &Store{
		client:  client,
		prefix:  prefix,
		channel: channel,
		origin:  uuid.NewString(),
	}
}

// Origin returns this store instance's writer ID.
func (s *Store) Origin() string { return s.origin }

// Channel returns the pub/sub channel carrying change notifications.
func (s *Store) Channel() string { return s.channel }

// Get returns the value for key, or the empty string when absent.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

// Set writes the value for key and announces the change.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	s.announce(ctx)
	return nil
}

// Delete removes the value for key and announces the change. Removing an
// absent key succeeds.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	s.announce(ctx)
	return nil
}

// announce publishes this writer's origin so other processes re-read.
// Best-effort: a missed announcement is recovered by the next one.
func (s *Store) announce(ctx context.Context) {
	_ = s.client.Publish(ctx, s.channel, s.origin).Err()
}
