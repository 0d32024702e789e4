package favourite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/snippetsapp/snippets/internal/model"
	"github.com/snippetsapp/snippets/internal/storage/memory"
	"github.com/snippetsapp/snippets/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	controller *Controller
	ctx        context.Context

	alice *model.User
	entry *model.Entry
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.controller = NewController(s.storage, testutil.NopLogger())
	s.ctx = context.Background()

	var err error
	s.alice, err = s.storage.CreateUser(s.ctx, &model.User{Username: "alice", PasswordHash: "x"})
	s.Require().NoError(err)
	s.entry, err = s.storage.CreateEntry(s.ctx, &model.Entry{AuthorID: s.alice.ID, Title: "Post", Content: "hello"})
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestAddSucceeds() {
	s.Require().NoError(s.controller.Add(s.ctx, s.alice.ID, s.entry.ID))

	favourited, err := s.storage.IsFavourite(s.ctx, s.alice.ID, s.entry.ID)
	s.Require().NoError(err)
	s.True(favourited)
}

func (s *ControllerSuite) TestAddIsIdempotent() {
	s.Require().NoError(s.controller.Add(s.ctx, s.alice.ID, s.entry.ID))
	s.Require().NoError(s.controller.Add(s.ctx, s.alice.ID, s.entry.ID))

	entries, err := s.controller.List(s.ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *ControllerSuite) TestAddFailsForUnknownEntry() {
	err := s.controller.Add(s.ctx, s.alice.ID, 999)
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *ControllerSuite) TestRemoveSucceeds() {
	s.Require().NoError(s.controller.Add(s.ctx, s.alice.ID, s.entry.ID))
	s.Require().NoError(s.controller.Remove(s.ctx, s.alice.ID, s.entry.ID))

	favourited, _ := s.storage.IsFavourite(s.ctx, s.alice.ID, s.entry.ID)
	s.False(favourited)
}

func (s *ControllerSuite) TestRemoveIsNoopWhenNotFavourited() {
	s.NoError(s.controller.Remove(s.ctx, s.alice.ID, s.entry.ID))
}

func (s *ControllerSuite) TestRemoveFailsForUnknownEntry() {
	err := s.controller.Remove(s.ctx, s.alice.ID, 999)
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *ControllerSuite) TestListNewestFirst() {
	second, err := s.storage.CreateEntry(s.ctx, &model.Entry{AuthorID: s.alice.ID, Title: "Later", Content: "world"})
	s.Require().NoError(err)

	s.Require().NoError(s.controller.Add(s.ctx, s.alice.ID, s.entry.ID))
	s.Require().NoError(s.controller.Add(s.ctx, s.alice.ID, second.ID))

	entries, err := s.controller.List(s.ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(second.ID, entries[0].ID)
	s.Equal(s.entry.ID, entries[1].ID)
}

func (s *ControllerSuite) TestListEmptyForNewUser() {
	entries, err := s.controller.List(s.ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Empty(entries)
}
