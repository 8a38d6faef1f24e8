package steam

import (
	"log/slog"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
)

// Service implements the steam economy: per-turn generation from controlled
// squares and spend/refund against a non-negative balance.
type Service struct {
	logger *slog.Logger
}

// New creates a steam service.
func New(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// ComputeGeneration returns each player's steam generation: one per square
// whose sticky controller is that player.
func (s *Service) ComputeGeneration(board *model.GameBoard) (int, int) {
	return board.ControlledCount(model.PlayerOne), board.ControlledCount(model.PlayerTwo)
}

// OnTurnStart credits the active player with their current generation.
func (s *Service) OnTurnStart(gs *model.GameState, side model.PlayerSide) int {
	g1, g2 := s.ComputeGeneration(gs.Board)
	gained := g1
	if side == model.PlayerTwo {
		gained = g2
	}
	gs.Steam[side.Index()] += gained

	s.logger.Debug("steam generated",
		slog.String("side", side.String()),
		slog.Int("gained", gained),
		slog.Int("balance", gs.Steam[side.Index()]),
	)
	return gained
}

// Spend deducts the given amount if affordable. Negative amounts always fail.
func (s *Service) Spend(gs *model.GameState, side model.PlayerSide, amount int) error {
	if amount < 0 {
		return model.ErrInsufficientSteam
	}
	if gs.Steam[side.Index()] < amount {
		return model.ErrInsufficientSteam
	}
	gs.Steam[side.Index()] -= amount
	return nil
}

// Refund returns steam to the player, used by the card-play rollback path.
func (s *Service) Refund(gs *model.GameState, side model.PlayerSide, amount int) {
	if amount <= 0 {
		return
	}
	gs.Steam[side.Index()] += amount
}
