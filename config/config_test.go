package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "http://localhost:5000/api/v1" {
		t.Errorf("unexpected API base URL: %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("unexpected API timeout: %v", cfg.API.Timeout)
	}
	if cfg.Auth.MinSecretLen != 8 {
		t.Errorf("unexpected min secret length: %d", cfg.Auth.MinSecretLen)
	}
	if cfg.Session.Backend != SessionBackendFile {
		t.Errorf("unexpected session backend: %q", cfg.Session.Backend)
	}
	if cfg.Session.Debounce != 100*time.Millisecond {
		t.Errorf("unexpected debounce: %v", cfg.Session.Debounce)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.forkful.example/api/v1")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("SESSION_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("AUTH_MIN_SECRET_LEN", "12")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "https://api.forkful.example/api/v1" {
		t.Errorf("unexpected API base URL: %q", cfg.API.BaseURL)
	}
	if cfg.Session.Backend != SessionBackendRedis {
		t.Errorf("unexpected session backend: %q", cfg.Session.Backend)
	}
	if cfg.Session.Redis.Addr != "redis.internal:6380" {
		t.Errorf("unexpected redis addr: %q", cfg.Session.Redis.Addr)
	}
	if cfg.Auth.MinSecretLen != 12 {
		t.Errorf("unexpected min secret length: %d", cfg.Auth.MinSecretLen)
	}
}

func TestInvalidSessionBackend(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "s3")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error for invalid session backend")
	}
}

func TestSessionBackendCaseInsensitive(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "REDIS")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Session.Backend != SessionBackendRedis {
		t.Errorf("unexpected session backend: %q", cfg.Session.Backend)
	}
}

func TestSanitizeClampsValues(t *testing.T) {
	cfg := AppConfig{
		API:     APIConfig{Timeout: -1},
		Auth:    AuthConfig{MinSecretLen: 0},
		Session: SessionConfig{Debounce: 0},
	}
	cfg.Sanitize()

	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("timeout not clamped: %v", cfg.API.Timeout)
	}
	if cfg.Auth.MinSecretLen != 1 {
		t.Errorf("min secret length not clamped: %d", cfg.Auth.MinSecretLen)
	}
	if cfg.Session.Debounce != 100*time.Millisecond {
		t.Errorf("debounce not clamped: %v", cfg.Session.Debounce)
	}
}

func TestDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("expected dev mode from NODE_ENV")
	}
}
