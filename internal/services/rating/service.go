package rating

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/storage"
)

// KFactor is the Elo K used for all rating updates.
const KFactor = 32

// Score values for a completed game.
const (
	ScoreLoss = 0.0
	ScoreDraw = 0.5
	ScoreWin  = 1.0
)

// Service looks up and updates per-user Elo ratings around games.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a rating service.
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{storage: store, logger: logger}
}

// Login fetches the user's rating, creating the row with rating 0 if absent.
func (s *Service) Login(ctx context.Context, username string) (*model.User, error) {
	user, err := s.storage.EnsureUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("ensure user %q: %w", username, err)
	}
	return user, nil
}

// Deltas computes the Elo rating changes for two players given player one's
// score (0, 0.5 or 1).
func Deltas(ratingOne, ratingTwo int, scoreOne float64) (int, int) {
	expectedOne := 1.0 / (1.0 + math.Pow(10, float64(ratingTwo-ratingOne)/400.0))
	deltaOne := int(math.Round(KFactor * (scoreOne - expectedOne)))
	deltaTwo := int(math.Round(KFactor * ((1.0 - scoreOne) - (1.0 - expectedOne))))
	return deltaOne, deltaTwo
}

// ScoreFor maps a match result to player one's score.
func ScoreFor(result model.Result) float64 {
	switch result {
	case model.ResultPlayerOneWin:
		return ScoreWin
	case model.ResultPlayerTwoWin:
		return ScoreLoss
	default:
		return ScoreDraw
	}
}

// ApplyResult updates both users' stored ratings for a completed game and
// returns the applied deltas (player one first). The in-memory users are only
// mutated once both rows persisted, so a storage failure leaves them matching
// the zero deltas the caller reports.
func (s *Service) ApplyResult(ctx context.Context, userOne, userTwo *model.User, result model.Result) (int, int, error) {
	deltaOne, deltaTwo := Deltas(userOne.Rating, userTwo.Rating, ScoreFor(result))
	newOne := userOne.Rating + deltaOne
	newTwo := userTwo.Rating + deltaTwo

	if err := s.storage.UpdateRating(ctx, userOne.Username, newOne); err != nil {
		return 0, 0, fmt.Errorf("update rating for %q: %w", userOne.Username, err)
	}
	if err := s.storage.UpdateRating(ctx, userTwo.Username, newTwo); err != nil {
		return 0, 0, fmt.Errorf("update rating for %q: %w", userTwo.Username, err)
	}
	userOne.Rating = newOne
	userTwo.Rating = newTwo

	s.logger.Info("ratings updated",
		slog.String("user_one", userOne.Username),
		slog.Int("delta_one", deltaOne),
		slog.String("user_two", userTwo.Username),
		slog.Int("delta_two", deltaTwo),
	)
	return deltaOne, deltaTwo, nil
}
