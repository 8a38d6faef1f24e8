package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/mocks"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *mocks.MockClock
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	storage, err := Open(filepath.Join(s.T().TempDir(), "test.db"), s.clock)
	s.Require().NoError(err)
	s.storage = storage
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		s.Require().NoError(s.storage.Close())
	}
}

func (s *StorageSuite) TestOpenRequiresPath() {
	_, err := Open("", s.clock)
	s.Error(err)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestEnsureUserCreates() {
	user, err := s.storage.EnsureUser(s.ctx, "gumbo")
	s.Require().NoError(err)
	s.Equal("gumbo", user.Username)
	s.Equal(0, user.Rating)
	// Timestamps come from the injected clock, not the wall clock.
	s.Equal(s.clock.CurrentTime, user.CreatedAt.UTC())
}

func (s *StorageSuite) TestEnsureUserPreservesExistingRating() {
	_, err := s.storage.EnsureUser(s.ctx, "gumbo")
	s.Require().NoError(err)
	s.Require().NoError(s.storage.UpdateRating(s.ctx, "gumbo", 32))

	user, err := s.storage.EnsureUser(s.ctx, "gumbo")
	s.Require().NoError(err)
	s.Equal(32, user.Rating)
}

func (s *StorageSuite) TestUpdateRating() {
	_, err := s.storage.EnsureUser(s.ctx, "gumbo")
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)
	s.Require().NoError(s.storage.UpdateRating(s.ctx, "gumbo", -8))

	user, err := s.storage.GetUser(s.ctx, "gumbo")
	s.Require().NoError(err)
	s.Equal(-8, user.Rating)
	s.True(user.UpdatedAt.After(user.CreatedAt))
}

func (s *StorageSuite) TestUpdateRatingUnknownUser() {
	s.ErrorIs(s.storage.UpdateRating(s.ctx, "nobody", 10), model.ErrUserNotFound)
}

func (s *StorageSuite) TestDeckRoundTrip() {
	_, err := s.storage.EnsureUser(s.ctx, "gumbo")
	s.Require().NoError(err)

	_, err = s.storage.GetDeck(s.ctx, "gumbo")
	s.ErrorIs(err, model.ErrDeckNotFound)

	s.Require().NoError(s.storage.SaveDeck(s.ctx, "gumbo", "1,2|101,102,103,104"))

	deck, err := s.storage.GetDeck(s.ctx, "gumbo")
	s.Require().NoError(err)
	s.Equal("1,2|101,102,103,104", deck)

	s.Require().NoError(s.storage.SaveDeck(s.ctx, "gumbo", "9|101,0,0,0"))
	deck, err = s.storage.GetDeck(s.ctx, "gumbo")
	s.Require().NoError(err)
	s.Equal("9|101,0,0,0", deck)
}

func (s *StorageSuite) TestPersistsAcrossReopen() {
	path := filepath.Join(s.T().TempDir(), "reopen.db")
	first, err := Open(path, s.clock)
	s.Require().NoError(err)

	_, err = first.EnsureUser(s.ctx, "gumbo")
	s.Require().NoError(err)
	s.Require().NoError(first.UpdateRating(s.ctx, "gumbo", 64))
	s.Require().NoError(first.Close())

	second, err := Open(path, s.clock)
	s.Require().NoError(err)
	defer second.Close()

	user, err := second.GetUser(s.ctx, "gumbo")
	s.Require().NoError(err)
	s.Equal(64, user.Rating)
}
