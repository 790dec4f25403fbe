// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// SetupTestRedis starts an in-process Redis server and returns a client
// connected to it. Both are torn down when the test finishes.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

// SetupSharedTestRedis starts one in-process Redis server and returns the
// requested number of independent clients connected to it, simulating
// separate processes sharing the same storage.
func SetupSharedTestRedis(t *testing.T, clients int) []*redis.Client {
	t.Helper()

	srv := miniredis.RunT(t)
	out := make([]*redis.Client, 0, clients)
	for i := 0; i < clients; i++ {
		client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
		t.Cleanup(func() {
			_ = client.Close()
		})
		out = append(out, client)
	}
	return out
}
