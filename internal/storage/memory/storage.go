package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/snippetsapp/snippets/internal/model"
	"github.com/snippetsapp/snippets/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	nextUserID    int64
	nextEntryID   int64
	nextCommentID int64

	users         map[int64]*model.User
	usernameIndex map[string]int64
	entries       map[int64]*model.Entry
	comments      map[int64]*model.Comment
	favourites    map[favouriteKey]*model.Favourite
}

type favouriteKey struct {
	userID  int64
	entryID int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[int64]*model.User),
		usernameIndex: make(map[string]int64),
		entries:       make(map[int64]*model.Entry),
		comments:      make(map[int64]*model.Comment),
		favourites:    make(map[favouriteKey]*model.Favourite),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usernameIndex[user.Username]; ok {
		return nil, model.ErrUsernameTaken
	}
	s.nextUserID++
	stored := *user
	stored.ID = s.nextUserID
	s.users[stored.ID] = &stored
	s.usernameIndex[stored.Username] = stored.ID
	return &stored, nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// Entry operations

func (s *Storage) CreateEntry(ctx context.Context, entry *model.Entry) (*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEntryID++
	stored := *entry
	stored.ID = s.nextEntryID
	s.entries[stored.ID] = &stored
	e := stored
	return &e, nil
}

func (s *Storage) GetEntry(ctx context.Context, id int64) (*model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, model.ErrEntryNotFound
	}
	e := *entry
	return &e, nil
}

func (s *Storage) UpdateEntry(ctx context.Context, entry *model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.ID]; !ok {
		return model.ErrEntryNotFound
	}
	stored := *entry
	s.entries[entry.ID] = &stored
	return nil
}

func (s *Storage) DeleteEntry(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return model.ErrEntryNotFound
	}
	delete(s.entries, id)
	// Cascade to comments and favourites, matching the relational schema.
	for commentID, comment := range s.comments {
		if comment.EntryID == id {
			delete(s.comments, commentID)
		}
	}
	for key := range s.favourites {
		if key.entryID == id {
			delete(s.favourites, key)
		}
	}
	return nil
}

func (s *Storage) ListEntriesByAuthor(ctx context.Context, authorID int64) ([]*model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []*model.Entry
	for _, entry := range s.entries {
		if entry.AuthorID == authorID {
			e := *entry
			entries = append(entries, &e)
		}
	}
	sortEntriesNewestFirst(entries)
	return entries, nil
}

// Comment operations

func (s *Storage) CreateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[comment.EntryID]; !ok {
		return nil, model.ErrEntryNotFound
	}
	s.nextCommentID++
	stored := *comment
	stored.ID = s.nextCommentID
	s.comments[stored.ID] = &stored
	c := stored
	return &c, nil
}

func (s *Storage) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comment, ok := s.comments[id]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	c := *comment
	return &c, nil
}

func (s *Storage) DeleteComment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return model.ErrCommentNotFound
	}
	delete(s.comments, id)
	return nil
}

func (s *Storage) ListCommentsForEntry(ctx context.Context, entryID int64) ([]*model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var comments []*model.Comment
	for _, comment := range s.comments {
		if comment.EntryID == entryID {
			c := *comment
			if author, ok := s.users[c.AuthorID]; ok {
				c.AuthorName = author.Username
			}
			comments = append(comments, &c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

// Favourite operations

func (s *Storage) AddFavourite(ctx context.Context, userID, entryID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entryID]; !ok {
		return model.ErrEntryNotFound
	}
	key := favouriteKey{userID: userID, entryID: entryID}
	if _, ok := s.favourites[key]; ok {
		// Idempotent: already favourited.
		return nil
	}
	s.favourites[key] = &model.Favourite{UserID: userID, EntryID: entryID}
	return nil
}

func (s *Storage) RemoveFavourite(ctx context.Context, userID, entryID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favourites, favouriteKey{userID: userID, entryID: entryID})
	return nil
}

func (s *Storage) IsFavourite(ctx context.Context, userID, entryID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favourites[favouriteKey{userID: userID, entryID: entryID}]
	return ok, nil
}

func (s *Storage) ListFavouriteEntries(ctx context.Context, userID int64) ([]*model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []*model.Entry
	for key := range s.favourites {
		if key.userID != userID {
			continue
		}
		if entry, ok := s.entries[key.entryID]; ok {
			e := *entry
			entries = append(entries, &e)
		}
	}
	sortEntriesNewestFirst(entries)
	return entries, nil
}

func (s *Storage) CountFavourites(ctx context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for key := range s.favourites {
		if key.userID == userID {
			count++
		}
	}
	return count, nil
}

func sortEntriesNewestFirst(entries []*model.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
}
