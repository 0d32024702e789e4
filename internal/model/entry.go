package model

import "time"

// Entry is a blog entry owned by a single author.
type Entry struct {
	ID        int64
	AuthorID  int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment is attached to an entry. AuthorName is resolved at read time
// and is not stored with the comment.
type Comment struct {
	ID         int64
	EntryID    int64
	AuthorID   int64
	AuthorName string
	Content    string
	CreatedAt  time.Time
}

// Favourite marks an entry as favourited by a user. The (UserID, EntryID)
// pair is unique; favouriting twice is a no-op.
type Favourite struct {
	UserID    int64
	EntryID   int64
	CreatedAt time.Time
}
