package storage

import (
	"context"

	"github.com/snippetsapp/snippets/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Entry operations
	CreateEntry(ctx context.Context, entry *model.Entry) (*model.Entry, error)
	GetEntry(ctx context.Context, id int64) (*model.Entry, error)
	UpdateEntry(ctx context.Context, entry *model.Entry) error
	DeleteEntry(ctx context.Context, id int64) error
	ListEntriesByAuthor(ctx context.Context, authorID int64) ([]*model.Entry, error)

	// Comment operations
	CreateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	GetComment(ctx context.Context, id int64) (*model.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
	ListCommentsForEntry(ctx context.Context, entryID int64) ([]*model.Comment, error)

	// Favourite operations. AddFavourite is an idempotent upsert:
	// favouriting an already-favourited entry succeeds without change.
	AddFavourite(ctx context.Context, userID, entryID int64) error
	RemoveFavourite(ctx context.Context, userID, entryID int64) error
	IsFavourite(ctx context.Context, userID, entryID int64) (bool, error)
	ListFavouriteEntries(ctx context.Context, userID int64) ([]*model.Entry, error)
	CountFavourites(ctx context.Context, userID int64) (int, error)
}
