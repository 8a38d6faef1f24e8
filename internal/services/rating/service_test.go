package rating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/mocks"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/storage"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/storage/memory"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Storage
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New(mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))
	s.service = New(s.store, testutil.NopLogger())
}

func (s *ServiceSuite) TestDeltasEqualRatings() {
	d1, d2 := Deltas(1000, 1000, ScoreWin)
	s.Equal(16, d1)
	s.Equal(-16, d2)

	d1, d2 = Deltas(1000, 1000, ScoreDraw)
	s.Equal(0, d1)
	s.Equal(0, d2)
}

func (s *ServiceSuite) TestDeltasFavouriteWinsSmall() {
	// A 200-point favourite gains less from a win than an equal opponent
	// would.
	d1, d2 := Deltas(1200, 1000, ScoreWin)
	s.Equal(8, d1)
	s.Equal(-8, d2)
}

func (s *ServiceSuite) TestDeltasUpsetPaysOut() {
	d1, d2 := Deltas(1000, 1200, ScoreWin)
	s.Equal(24, d1)
	s.Equal(-24, d2)
}

func (s *ServiceSuite) TestDeltasAreZeroSum() {
	for _, score := range []float64{ScoreLoss, ScoreDraw, ScoreWin} {
		d1, d2 := Deltas(850, 1337, score)
		s.Zero(d1 + d2)
	}
}

func (s *ServiceSuite) TestScoreFor() {
	s.Equal(ScoreWin, ScoreFor(model.ResultPlayerOneWin))
	s.Equal(ScoreLoss, ScoreFor(model.ResultPlayerTwoWin))
	s.Equal(ScoreDraw, ScoreFor(model.ResultDraw))
	s.Equal(ScoreDraw, ScoreFor(model.ResultInProgress))
}

func (s *ServiceSuite) TestLoginCreatesUserAtRatingZero() {
	user, err := s.service.Login(s.ctx, "gatorbait")
	s.Require().NoError(err)
	s.Equal("gatorbait", user.Username)
	s.Equal(0, user.Rating)
}

func (s *ServiceSuite) TestLoginReturnsExistingRating() {
	_, err := s.service.Login(s.ctx, "gatorbait")
	s.Require().NoError(err)
	s.Require().NoError(s.store.UpdateRating(s.ctx, "gatorbait", 64))

	user, err := s.service.Login(s.ctx, "gatorbait")
	s.Require().NoError(err)
	s.Equal(64, user.Rating)
}

func (s *ServiceSuite) TestApplyResultPersistsBothRatings() {
	one, err := s.service.Login(s.ctx, "one")
	s.Require().NoError(err)
	two, err := s.service.Login(s.ctx, "two")
	s.Require().NoError(err)

	d1, d2, err := s.service.ApplyResult(s.ctx, one, two, model.ResultPlayerOneWin)
	s.Require().NoError(err)
	s.Equal(16, d1)
	s.Equal(-16, d2)
	s.Equal(16, one.Rating)
	s.Equal(-16, two.Rating)

	stored, err := s.store.GetUser(s.ctx, "one")
	s.Require().NoError(err)
	s.Equal(16, stored.Rating)
	stored, err = s.store.GetUser(s.ctx, "two")
	s.Require().NoError(err)
	s.Equal(-16, stored.Rating)
}

func (s *ServiceSuite) TestApplyResultUnknownUser() {
	one := &model.User{Username: "ghost", Rating: 100}
	two := &model.User{Username: "phantom", Rating: 100}

	_, _, err := s.service.ApplyResult(s.ctx, one, two, model.ResultDraw)
	s.ErrorIs(err, model.ErrUserNotFound)
}

// failingStorage fails UpdateRating for one username and delegates the rest.
type failingStorage struct {
	storage.Storage
	failFor string
}

func (f *failingStorage) UpdateRating(ctx context.Context, username string, rating int) error {
	if username == f.failFor {
		return errors.New("storage offline")
	}
	return f.Storage.UpdateRating(ctx, username, rating)
}

func (s *ServiceSuite) TestApplyResultStorageFailureLeavesUsersUntouched() {
	one, err := s.service.Login(s.ctx, "one")
	s.Require().NoError(err)
	two, err := s.service.Login(s.ctx, "two")
	s.Require().NoError(err)

	service := New(&failingStorage{Storage: s.store, failFor: "two"}, testutil.NopLogger())

	d1, d2, err := service.ApplyResult(s.ctx, one, two, model.ResultPlayerOneWin)
	s.Error(err)
	s.Zero(d1)
	s.Zero(d2)

	// The callers report zero deltas, so the in-memory ratings must still
	// match what they held before the game.
	s.Equal(0, one.Rating)
	s.Equal(0, two.Rating)
}
