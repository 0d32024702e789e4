package favourite

import (
	"context"
	"log/slog"

	"github.com/snippetsapp/snippets/internal/model"
	"github.com/snippetsapp/snippets/internal/storage"
)

// Controller implements favouriting operations
type Controller struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewController creates a new favourite Controller
func NewController(store storage.Storage, logger *slog.Logger) *Controller {
	return &Controller{
		storage: store,
		logger:  logger,
	}
}

// Add favourites an entry for a user. Favouriting an entry that is
// already favourited succeeds without change.
func (c *Controller) Add(ctx context.Context, userID, entryID int64) error {
	if _, err := c.storage.GetEntry(ctx, entryID); err != nil {
		return err
	}
	if err := c.storage.AddFavourite(ctx, userID, entryID); err != nil {
		c.logger.Error("failed to save favourite",
			slog.Int64("user_id", userID),
			slog.Int64("entry_id", entryID),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// Remove unfavourites an entry. Removing a favourite that does not exist
// is a no-op.
func (c *Controller) Remove(ctx context.Context, userID, entryID int64) error {
	if _, err := c.storage.GetEntry(ctx, entryID); err != nil {
		return err
	}
	if err := c.storage.RemoveFavourite(ctx, userID, entryID); err != nil {
		c.logger.Error("failed to remove favourite",
			slog.Int64("user_id", userID),
			slog.Int64("entry_id", entryID),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// List returns the entries a user has favourited, newest first
func (c *Controller) List(ctx context.Context, userID int64) ([]*model.Entry, error) {
	return c.storage.ListFavouriteEntries(ctx, userID)
}
