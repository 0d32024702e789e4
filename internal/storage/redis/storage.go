package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/snippetsapp/snippets/internal/model"
	"github.com/snippetsapp/snippets/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Objects are stored as JSON values; integer identifiers come from
// INCR sequences, and secondary indexes (username, author entries,
// favourites) are plain keys, sorted sets and sets.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	id, err := s.client.Incr(ctx, userSeqKey).Result()
	if err != nil {
		return nil, err
	}

	// Claim the username first so duplicate signups lose the race.
	claimed, err := s.client.SetNX(ctx, usernameIndexKey(user.Username), id, 0).Result()
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, model.ErrUsernameTaken
	}

	stored := *user
	stored.ID = id
	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, userKey(id), data, 0).Err(); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.getUser(ctx, userKey(id))
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

func (s *Storage) getUser(ctx context.Context, key string) (*model.User, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Entry operations

func (s *Storage) CreateEntry(ctx context.Context, entry *model.Entry) (*model.Entry, error) {
	id, err := s.client.Incr(ctx, entrySeqKey).Result()
	if err != nil {
		return nil, err
	}

	stored := *entry
	stored.ID = id
	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, entryKey(id), data, 0)
	pipe.ZAdd(ctx, authorEntriesKey(stored.AuthorID), redis.Z{Score: float64(id), Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *Storage) GetEntry(ctx context.Context, id int64) (*model.Entry, error) {
	data, err := s.client.Get(ctx, entryKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrEntryNotFound
		}
		return nil, err
	}
	var entry model.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Storage) UpdateEntry(ctx context.Context, entry *model.Entry) error {
	// Existence check keeps update semantics aligned with the other backends.
	if _, err := s.GetEntry(ctx, entry.ID); err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, entryKey(entry.ID), data, 0).Err()
}

func (s *Storage) DeleteEntry(ctx context.Context, id int64) error {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return err
	}

	commentIDs, err := s.client.SMembers(ctx, entryCommentsKey(id)).Result()
	if err != nil {
		return err
	}
	favUserIDs, err := s.client.SMembers(ctx, entryFavouritedByKey(id)).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, entryKey(id))
	pipe.ZRem(ctx, authorEntriesKey(entry.AuthorID), id)
	for _, commentID := range commentIDs {
		pipe.Del(ctx, "comment:"+commentID)
	}
	pipe.Del(ctx, entryCommentsKey(id))
	for _, userID := range favUserIDs {
		uid, err := strconv.ParseInt(userID, 10, 64)
		if err != nil {
			continue
		}
		pipe.SRem(ctx, userFavouritesKey(uid), id)
	}
	pipe.Del(ctx, entryFavouritedByKey(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListEntriesByAuthor(ctx context.Context, authorID int64) ([]*model.Entry, error) {
	ids, err := s.client.ZRevRange(ctx, authorEntriesKey(authorID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchEntries(ctx, ids)
}

func (s *Storage) fetchEntries(ctx context.Context, ids []string) ([]*model.Entry, error) {
	entries := make([]*model.Entry, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		entry, err := s.GetEntry(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrEntryNotFound) {
				// Index can briefly outlive a deleted entry.
				continue
			}
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Comment operations

func (s *Storage) CreateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	if _, err := s.GetEntry(ctx, comment.EntryID); err != nil {
		return nil, err
	}

	id, err := s.client.Incr(ctx, commentSeqKey).Result()
	if err != nil {
		return nil, err
	}

	stored := *comment
	stored.ID = id
	stored.AuthorName = "" // resolved at read time
	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, commentKey(id), data, 0)
	pipe.SAdd(ctx, entryCommentsKey(stored.EntryID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *Storage) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	data, err := s.client.Get(ctx, commentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCommentNotFound
		}
		return nil, err
	}
	var comment model.Comment
	if err := json.Unmarshal(data, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *Storage) DeleteComment(ctx context.Context, id int64) error {
	comment, err := s.GetComment(ctx, id)
	if err != nil {
		return err
	}
	pipe := s.client.Pipeline()
	pipe.Del(ctx, commentKey(id))
	pipe.SRem(ctx, entryCommentsKey(comment.EntryID), id)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListCommentsForEntry(ctx context.Context, entryID int64) ([]*model.Comment, error) {
	ids, err := s.client.SMembers(ctx, entryCommentsKey(entryID)).Result()
	if err != nil {
		return nil, err
	}

	comments := make([]*model.Comment, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		comment, err := s.GetComment(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrCommentNotFound) {
				continue
			}
			return nil, err
		}
		if author, err := s.GetUser(ctx, comment.AuthorID); err == nil {
			comment.AuthorName = author.Username
		}
		comments = append(comments, comment)
	}
	sortCommentsOldestFirst(comments)
	return comments, nil
}

func sortCommentsOldestFirst(comments []*model.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
}

// Favourite operations

func (s *Storage) AddFavourite(ctx context.Context, userID, entryID int64) error {
	if _, err := s.GetEntry(ctx, entryID); err != nil {
		return err
	}
	// SADD is a natural idempotent upsert.
	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, userFavouritesKey(userID), entryID)
	pipe.SAdd(ctx, entryFavouritedByKey(entryID), userID)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) RemoveFavourite(ctx context.Context, userID, entryID int64) error {
	pipe := s.client.Pipeline()
	pipe.SRem(ctx, userFavouritesKey(userID), entryID)
	pipe.SRem(ctx, entryFavouritedByKey(entryID), userID)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) IsFavourite(ctx context.Context, userID, entryID int64) (bool, error) {
	return s.client.SIsMember(ctx, userFavouritesKey(userID), entryID).Result()
}

func (s *Storage) ListFavouriteEntries(ctx context.Context, userID int64) ([]*model.Entry, error) {
	ids, err := s.client.SMembers(ctx, userFavouritesKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	entries, err := s.fetchEntries(ctx, ids)
	if err != nil {
		return nil, err
	}
	sortEntriesNewestFirst(entries)
	return entries, nil
}

func (s *Storage) CountFavourites(ctx context.Context, userID int64) (int, error) {
	n, err := s.client.SCard(ctx, userFavouritesKey(userID)).Result()
	return int(n), err
}

func sortEntriesNewestFirst(entries []*model.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
}
