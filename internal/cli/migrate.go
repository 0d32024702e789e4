package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/snippetsapp/snippets/internal/storage/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Apply database migrations.

Connects to the database named by DATABASE_URL and applies any
pending migrations. Only meaningful for the postgres backend; the
memory and redis backends have no schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))

			databaseURL := os.Getenv("DATABASE_URL")
			if databaseURL == "" {
				logger.Error("DATABASE_URL required for migrate")
				return errors.New("DATABASE_URL not set")
			}

			store, err := postgres.Open(databaseURL)
			if err != nil {
				logger.Error("failed to connect", slog.String("error", err.Error()))
				return err
			}
			defer store.Close()

			if err := store.RunMigrations(cmd.Context()); err != nil {
				logger.Error("migration failed", slog.String("error", err.Error()))
				return err
			}

			logger.Info("migrations applied")
			return nil
		},
	}
}
