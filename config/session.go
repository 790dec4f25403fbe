package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionBackend represents the session storage backend.
type SessionBackend string

const (
	// SessionBackendFile stores the session in per-key files under a
	// directory shared by all processes on the machine.
	SessionBackendFile SessionBackend = "file"
	// SessionBackendRedis stores the session in Redis and announces
	// changes over pub/sub.
	SessionBackendRedis SessionBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (b *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis":
		*b = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: file, redis)", v)
	}
}

// RedisConfig contains Redis configuration for the redis session backend.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// SessionConfig groups session storage and cross-process sync configuration.
type SessionConfig struct {
	// Backend determines where the shared session lives.
	Backend SessionBackend `env:"SESSION_BACKEND" envDefault:"file"`

	// Dir is the directory for the file backend. Empty means a
	// per-user default resolved at startup.
	Dir string `env:"SESSION_DIR" envDefault:""`

	// Debounce is how long the watcher waits after a change before
	// notifying, so multi-key writes arrive as one event.
	Debounce time.Duration `env:"SESSION_DEBOUNCE" envDefault:"100ms"`

	// Redis configuration (used when Backend=redis).
	Redis RedisConfig `envPrefix:"SESSION_REDIS_"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.Debounce <= 0 {
		s.Debounce = 100 * time.Millisecond
	}
}
