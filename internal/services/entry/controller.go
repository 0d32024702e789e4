package entry

import (
	"context"
	"log/slog"

	"github.com/snippetsapp/snippets/internal/dependencies/clock"
	"github.com/snippetsapp/snippets/internal/model"
	"github.com/snippetsapp/snippets/internal/storage"
)

// Controller implements entry and comment operations
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new entry Controller
func NewController(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// View is everything needed to render a single entry page. It is
// assembled from sequential reads; an interleaved write between them
// yields a stale but consistent-enough page.
type View struct {
	Entry      *model.Entry
	AuthorName string
	Comments   []*model.Comment
	Favourited bool
	IsOwner    bool
}

// Dashboard summarises a user's own blog
type Dashboard struct {
	Entries        []*model.Entry
	FavouriteCount int
}

// Create stores a new entry owned by the author
func (c *Controller) Create(ctx context.Context, authorID int64, title, content string) (*model.Entry, error) {
	now := c.clock.Now()
	ent, err := c.storage.CreateEntry(ctx, &model.Entry{
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		c.logger.Error("failed to save entry",
			slog.Int64("author_id", authorID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("entry created",
		slog.Int64("entry_id", ent.ID),
		slog.Int64("author_id", authorID),
	)

	return ent, nil
}

// Get returns a single entry
func (c *Controller) Get(ctx context.Context, id int64) (*model.Entry, error) {
	return c.storage.GetEntry(ctx, id)
}

// GetView assembles the entry page for a viewer: the entry, its author's
// name, its comments and whether the viewer has favourited it.
func (c *Controller) GetView(ctx context.Context, entryID, viewerID int64) (*View, error) {
	ent, err := c.storage.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	author, err := c.storage.GetUser(ctx, ent.AuthorID)
	if err != nil {
		return nil, err
	}

	comments, err := c.storage.ListCommentsForEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	favourited, err := c.storage.IsFavourite(ctx, viewerID, entryID)
	if err != nil {
		return nil, err
	}

	return &View{
		Entry:      ent,
		AuthorName: author.Username,
		Comments:   comments,
		Favourited: favourited,
		IsOwner:    ent.AuthorID == viewerID,
	}, nil
}

// Update rewrites an entry's title and content. Only the author may update.
func (c *Controller) Update(ctx context.Context, entryID, authorID int64, title, content string) (*model.Entry, error) {
	ent, err := c.storage.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if ent.AuthorID != authorID {
		return nil, model.ErrNotEntryOwner
	}

	ent.Title = title
	ent.Content = content
	ent.UpdatedAt = c.clock.Now()
	if err := c.storage.UpdateEntry(ctx, ent); err != nil {
		c.logger.Error("failed to update entry",
			slog.Int64("entry_id", entryID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return ent, nil
}

// Delete removes an entry and everything attached to it. Only the author
// may delete.
func (c *Controller) Delete(ctx context.Context, entryID, authorID int64) error {
	ent, err := c.storage.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if ent.AuthorID != authorID {
		return model.ErrNotEntryOwner
	}
	if err := c.storage.DeleteEntry(ctx, entryID); err != nil {
		c.logger.Error("failed to delete entry",
			slog.Int64("entry_id", entryID),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.logger.Info("entry deleted",
		slog.Int64("entry_id", entryID),
		slog.Int64("author_id", authorID),
	)

	return nil
}

// AddComment attaches a comment to an entry
func (c *Controller) AddComment(ctx context.Context, entryID, authorID int64, content string) (*model.Comment, error) {
	return c.storage.CreateComment(ctx, &model.Comment{
		EntryID:   entryID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: c.clock.Now(),
	})
}

// DeleteComment removes a comment. The comment must belong to the given
// entry and only its author may delete it.
func (c *Controller) DeleteComment(ctx context.Context, entryID, commentID, authorID int64) error {
	comment, err := c.storage.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.EntryID != entryID {
		return model.ErrCommentMismatch
	}
	if comment.AuthorID != authorID {
		return model.ErrNotCommentOwner
	}
	return c.storage.DeleteComment(ctx, commentID)
}

// ListByAuthor returns a user's blog: the user plus their entries,
// newest first.
func (c *Controller) ListByAuthor(ctx context.Context, username string) (*model.User, []*model.Entry, error) {
	user, err := c.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	entries, err := c.storage.ListEntriesByAuthor(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, entries, nil
}

// GetDashboard returns the summary view for a user's own entries
func (c *Controller) GetDashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	entries, err := c.storage.ListEntriesByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	count, err := c.storage.CountFavourites(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Entries: entries, FavouriteCount: count}, nil
}
