package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/snippetsapp/snippets/internal/config"
	"github.com/snippetsapp/snippets/internal/factory"
	"github.com/snippetsapp/snippets/internal/services/auth"
	redisstorage "github.com/snippetsapp/snippets/internal/storage/redis"
	"github.com/snippetsapp/snippets/internal/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server.

Configuration is read from the environment:

  PORT            Port to listen on (default 80)
  STORAGE_TYPE    memory, redis or postgres (default memory)
  DATABASE_URL    Postgres connection string (required for postgres)
  REDIS_URL       Redis connection string (required for redis)
  SESSION_SECRET  Key for signing session tokens (required)
  SESSION_TTL     Session lifetime (default 24h)
  LEGACY_SECRET   Enables acceptance of pre-cutover login cookies
  STATIC_DIR      Directory served under /static/ (default public)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		return err
	}

	// Build factory config
	authCfg := auth.DefaultConfig()
	authCfg.Secret = cfg.SessionSecret
	authCfg.SessionTTL = cfg.SessionTTL
	authCfg.LegacySecret = cfg.LegacySecret

	factoryCfg := factory.Config{
		AuthConfig:  authCfg,
		Logger:      logger,
		StorageType: cfg.StorageType,
		DatabaseURL: cfg.DatabaseURL,
	}

	if cfg.StorageType == config.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}

	router := web.NewRouter(web.RouterConfig{
		Logger:              logger,
		AuthService:         app.AuthService,
		EntryController:     app.EntryController,
		FavouriteController: app.FavouriteController,
		StaticDir:           cfg.StaticDir,
	})

	serverCfg := web.DefaultServerConfig()
	serverCfg.Port = cfg.Port
	server := web.NewServer(router, serverCfg, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
