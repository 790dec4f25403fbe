package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/forkful/forkful-cli/config"
	"github.com/forkful/forkful-cli/internal/adapters/filestore"
	redisadapter "github.com/forkful/forkful-cli/internal/adapters/redis"
	"github.com/forkful/forkful-cli/internal/apiclient"
	"github.com/forkful/forkful-cli/internal/gateway"
	"github.com/forkful/forkful-cli/internal/ports"
	"github.com/forkful/forkful-cli/internal/session"
)

// App holds the wired application components.
type App struct {
	Config   config.AppConfig
	Logger   *slog.Logger
	Sessions *session.Store
	Watcher  ports.Watcher
	Gateway  *gateway.Gateway
	API      *apiclient.Client

	redisClient *redis.Client
}

// BuildApp wires storage, session store, auth gateway, and API client
// from configuration.
func BuildApp(cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger}

	storage, watcher, err := app.buildStorage(cfg.Session)
	if err != nil {
		return nil, err
	}
	app.Watcher = watcher

	app.Sessions = session.New(session.Options{
		Storage: storage,
		Logger:  logger,
	})

	httpClient := &http.Client{Timeout: cfg.API.Timeout}

	app.Gateway = gateway.New(gateway.Options{
		BaseURL:      cfg.API.BaseURL,
		HTTPClient:   httpClient,
		Sessions:     app.Sessions,
		MinSecretLen: cfg.Auth.MinSecretLen,
		Logger:       logger,
	})

	app.API = apiclient.New(apiclient.Options{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: httpClient,
		Sessions:   app.Sessions,
		Logger:     logger,
	})

	return app, nil
}

func (a *App) buildStorage(cfg config.SessionConfig) (ports.Storage, ports.Watcher, error) {
	switch cfg.Backend {
	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.redisClient = client
		store := redisadapter.NewStore(client, redisadapter.Options{})
		watcher := redisadapter.NewWatcher(store, redisadapter.WatcherOptions{
			Logger:   a.Logger,
			Debounce: cfg.Debounce,
		})
		return store, watcher, nil
	case config.SessionBackendFile, "":
		dir := cfg.Dir
		if dir == "" {
			var err error
			dir, err = defaultSessionDir()
			if err != nil {
				return nil, nil, err
			}
		}
		store, err := filestore.New(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("open session dir: %w", err)
		}
		watcher := filestore.NewWatcher(dir, filestore.WatcherOptions{
			Logger:   a.Logger,
			Debounce: cfg.Debounce,
		})
		return store, watcher, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend: %q", cfg.Backend)
	}
}

// Close releases backend connections held by the app.
func (a *App) Close() error {
	if a.redisClient != nil {
		return a.redisClient.Close()
	}
	return nil
}

func defaultSessionDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "forkful", "session"), nil
}
