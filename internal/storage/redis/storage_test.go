package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/snippetsapp/snippets/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) createUser(username string) *model.User {
	user, err := s.storage.CreateUser(s.ctx, &model.User{
		Username:     username,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	s.Require().NoError(err)
	return user
}

func (s *StorageSuite) createEntry(authorID int64, title string) *model.Entry {
	entry, err := s.storage.CreateEntry(s.ctx, &model.Entry{
		AuthorID: authorID,
		Title:    title,
		Content:  "content of " + title,
	})
	s.Require().NoError(err)
	return entry
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user := s.createUser("alice")
	s.NotZero(user.ID)

	retrieved, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)
	s.Equal("hash", retrieved.PasswordHash)
}

func (s *StorageSuite) TestCreateUserRejectsDuplicateUsername() {
	s.createUser("alice")

	_, err := s.storage.CreateUser(s.ctx, &model.User{Username: "alice", PasswordHash: "other"})
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, 999)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	user := s.createUser("alice")

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
}

func (s *StorageSuite) TestGetUserByUsernameNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Entry tests

func (s *StorageSuite) TestCreateAndGetEntry() {
	alice := s.createUser("alice")
	entry := s.createEntry(alice.ID, "First")

	retrieved, err := s.storage.GetEntry(s.ctx, entry.ID)
	s.Require().NoError(err)
	s.Equal("First", retrieved.Title)
	s.Equal(alice.ID, retrieved.AuthorID)
}

func (s *StorageSuite) TestGetEntryNotFound() {
	_, err := s.storage.GetEntry(s.ctx, 999)
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *StorageSuite) TestUpdateEntry() {
	alice := s.createUser("alice")
	entry := s.createEntry(alice.ID, "First")

	entry.Title = "Edited"
	s.Require().NoError(s.storage.UpdateEntry(s.ctx, entry))

	retrieved, _ := s.storage.GetEntry(s.ctx, entry.ID)
	s.Equal("Edited", retrieved.Title)
}

func (s *StorageSuite) TestUpdateEntryNotFound() {
	err := s.storage.UpdateEntry(s.ctx, &model.Entry{ID: 999, Title: "x"})
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *StorageSuite) TestDeleteEntryCascades() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	entry := s.createEntry(alice.ID, "First")

	comment, err := s.storage.CreateComment(s.ctx, &model.Comment{
		EntryID: entry.ID, AuthorID: bob.ID, Content: "hi",
	})
	s.Require().NoError(err)
	s.Require().NoError(s.storage.AddFavourite(s.ctx, bob.ID, entry.ID))

	s.Require().NoError(s.storage.DeleteEntry(s.ctx, entry.ID))

	_, err = s.storage.GetEntry(s.ctx, entry.ID)
	s.ErrorIs(err, model.ErrEntryNotFound)

	_, err = s.storage.GetComment(s.ctx, comment.ID)
	s.ErrorIs(err, model.ErrCommentNotFound)

	favourited, _ := s.storage.IsFavourite(s.ctx, bob.ID, entry.ID)
	s.False(favourited)

	entries, _ := s.storage.ListEntriesByAuthor(s.ctx, alice.ID)
	s.Empty(entries)
}

func (s *StorageSuite) TestDeleteEntryNotFound() {
	err := s.storage.DeleteEntry(s.ctx, 999)
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *StorageSuite) TestListEntriesByAuthorNewestFirst() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	first := s.createEntry(alice.ID, "First")
	second := s.createEntry(alice.ID, "Second")
	s.createEntry(bob.ID, "Bob's")

	entries, err := s.storage.ListEntriesByAuthor(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(second.ID, entries[0].ID)
	s.Equal(first.ID, entries[1].ID)
}

// Comment tests

func (s *StorageSuite) TestCreateCommentRequiresEntry() {
	alice := s.createUser("alice")

	_, err := s.storage.CreateComment(s.ctx, &model.Comment{
		EntryID: 999, AuthorID: alice.ID, Content: "hi",
	})
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *StorageSuite) TestListCommentsForEntryResolvesAuthorName() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	entry := s.createEntry(alice.ID, "First")

	_, err := s.storage.CreateComment(s.ctx, &model.Comment{
		EntryID: entry.ID, AuthorID: bob.ID, Content: "hi",
	})
	s.Require().NoError(err)

	comments, err := s.storage.ListCommentsForEntry(s.ctx, entry.ID)
	s.Require().NoError(err)
	s.Require().Len(comments, 1)
	s.Equal("bob", comments[0].AuthorName)
}

func (s *StorageSuite) TestListCommentsForEntryOldestFirst() {
	alice := s.createUser("alice")
	entry := s.createEntry(alice.ID, "First")

	c1, _ := s.storage.CreateComment(s.ctx, &model.Comment{EntryID: entry.ID, AuthorID: alice.ID, Content: "one"})
	c2, _ := s.storage.CreateComment(s.ctx, &model.Comment{EntryID: entry.ID, AuthorID: alice.ID, Content: "two"})

	comments, err := s.storage.ListCommentsForEntry(s.ctx, entry.ID)
	s.Require().NoError(err)
	s.Require().Len(comments, 2)
	s.Equal(c1.ID, comments[0].ID)
	s.Equal(c2.ID, comments[1].ID)
}

func (s *StorageSuite) TestDeleteComment() {
	alice := s.createUser("alice")
	entry := s.createEntry(alice.ID, "First")
	comment, _ := s.storage.CreateComment(s.ctx, &model.Comment{EntryID: entry.ID, AuthorID: alice.ID, Content: "hi"})

	s.Require().NoError(s.storage.DeleteComment(s.ctx, comment.ID))

	_, err := s.storage.GetComment(s.ctx, comment.ID)
	s.ErrorIs(err, model.ErrCommentNotFound)

	comments, _ := s.storage.ListCommentsForEntry(s.ctx, entry.ID)
	s.Empty(comments)
}

func (s *StorageSuite) TestDeleteCommentNotFound() {
	err := s.storage.DeleteComment(s.ctx, 999)
	s.ErrorIs(err, model.ErrCommentNotFound)
}

// Favourite tests

func (s *StorageSuite) TestAddFavouriteIsIdempotent() {
	alice := s.createUser("alice")
	entry := s.createEntry(alice.ID, "First")

	s.Require().NoError(s.storage.AddFavourite(s.ctx, alice.ID, entry.ID))
	s.Require().NoError(s.storage.AddFavourite(s.ctx, alice.ID, entry.ID))

	count, err := s.storage.CountFavourites(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StorageSuite) TestAddFavouriteRequiresEntry() {
	alice := s.createUser("alice")

	err := s.storage.AddFavourite(s.ctx, alice.ID, 999)
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *StorageSuite) TestRemoveFavourite() {
	alice := s.createUser("alice")
	entry := s.createEntry(alice.ID, "First")
	s.Require().NoError(s.storage.AddFavourite(s.ctx, alice.ID, entry.ID))

	s.Require().NoError(s.storage.RemoveFavourite(s.ctx, alice.ID, entry.ID))

	favourited, _ := s.storage.IsFavourite(s.ctx, alice.ID, entry.ID)
	s.False(favourited)
}

func (s *StorageSuite) TestListFavouriteEntriesNewestFirst() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	first := s.createEntry(bob.ID, "First")
	second := s.createEntry(bob.ID, "Second")

	s.Require().NoError(s.storage.AddFavourite(s.ctx, alice.ID, first.ID))
	s.Require().NoError(s.storage.AddFavourite(s.ctx, alice.ID, second.ID))

	entries, err := s.storage.ListFavouriteEntries(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(second.ID, entries[0].ID)
	s.Equal(first.ID, entries[1].ID)
}

func (s *StorageSuite) TestCountFavourites() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	first := s.createEntry(bob.ID, "First")
	second := s.createEntry(bob.ID, "Second")

	s.Require().NoError(s.storage.AddFavourite(s.ctx, alice.ID, first.ID))
	s.Require().NoError(s.storage.AddFavourite(s.ctx, alice.ID, second.ID))
	s.Require().NoError(s.storage.AddFavourite(s.ctx, bob.ID, first.ID))

	count, err := s.storage.CountFavourites(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(2, count)
}
