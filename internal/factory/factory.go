package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/snippetsapp/snippets/internal/config"
	"github.com/snippetsapp/snippets/internal/dependencies/clock"
	"github.com/snippetsapp/snippets/internal/services/auth"
	"github.com/snippetsapp/snippets/internal/services/entry"
	"github.com/snippetsapp/snippets/internal/services/favourite"
	"github.com/snippetsapp/snippets/internal/storage"
	"github.com/snippetsapp/snippets/internal/storage/memory"
	"github.com/snippetsapp/snippets/internal/storage/postgres"
	redisstorage "github.com/snippetsapp/snippets/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService         *auth.Service
	EntryController     *entry.Controller
	FavouriteController *favourite.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, a default session lifetime is used
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DatabaseURL is the postgres connection string (required if StorageType is "postgres")
	DatabaseURL string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		store = memory.New()
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case config.StorageTypePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DatabaseURL required when StorageType is postgres")
		}
		pgStore, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	clk := clock.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionTTL == 0 {
		authCfg.SessionTTL = auth.DefaultConfig().SessionTTL
	}

	return newWithDependencies(store, clk, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	authService := auth.New(store, clk, authCfg)
	entryController := entry.NewController(store, clk, logger)
	favouriteController := favourite.NewController(store, logger)

	return &App{
		Storage:             store,
		Clock:               clk,
		AuthService:         authService,
		EntryController:     entryController,
		FavouriteController: favouriteController,
	}
}
