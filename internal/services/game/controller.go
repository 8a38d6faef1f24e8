package game

import (
	"fmt"
	"log/slog"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/random"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/cards"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/combat"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/movement"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/steam"
)

// openingDraw is how many main-pile cards each player starts with, on top of
// their first victory card.
const openingDraw = 3

// Controller drives the turn/phase state machine and win detection for one
// match. It owns no state itself; the GameState is passed through every call
// so a session holds exactly one mutable copy.
type Controller struct {
	movement *movement.Resolver
	combat   *combat.Resolver
	executor *cards.Executor
	steam    *steam.Service
	random   random.Random
	logger   *slog.Logger
}

// NewController creates a match controller.
func NewController(
	mv *movement.Resolver,
	cb *combat.Resolver,
	executor *cards.Executor,
	st *steam.Service,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		movement: mv,
		combat:   cb,
		executor: executor,
		steam:    st,
		random:   rnd,
		logger:   logger,
	}
}

// NewMatch validates both decks, shuffles the main piles, seeds home-rank
// control, and deals opening hands. The match starts in the Setup phase with
// PlayerOne to place first.
func (c *Controller) NewMatch(deckOne, deckTwo *model.Deck) (*model.GameState, error) {
	for i, deck := range []*model.Deck{deckOne, deckTwo} {
		if err := deck.ValidateForPlay(); err != nil {
			return nil, fmt.Errorf("deck for seat %d: %w", i+1, err)
		}
	}

	gs := model.NewGameState()
	gs.Decks[0] = deckOne
	gs.Decks[1] = deckTwo

	for _, side := range []model.PlayerSide{model.PlayerOne, model.PlayerTwo} {
		deck := gs.Deck(side)
		c.random.Shuffle(len(deck.Main), func(i, j int) {
			deck.Main[i], deck.Main[j] = deck.Main[j], deck.Main[i]
		})

		// Home rank starts under its owner's control so setup placement has
		// legal squares.
		rank := cards.HomeRank(side)
		for x := 0; x < model.BoardSize; x++ {
			gs.Board.At(x, rank).SetController(side)
		}

		// Opening hand: the first victory card plus three from the pile.
		hand := gs.Hand(side)
		if victory := deck.TakeVictory(0); victory != nil {
			_ = hand.Add(victory)
		}
		for i := 0; i < openingDraw; i++ {
			if card, ok := deck.Draw(); ok {
				_ = hand.Add(card)
			}
		}
	}

	c.logger.Info("match created")
	return gs, nil
}

// PlayCard executes a card play as the acting player's turn action.
func (c *Controller) PlayCard(gs *model.GameState, side model.PlayerSide, handIndex int, pos *model.Position) model.PlayResult {
	result := c.executor.Execute(gs, side, handIndex, pos)
	if !result.Success {
		return result
	}

	c.CheckVictory(gs)
	if gs.IsOver() {
		return result
	}

	if gs.Phase == model.PhaseSetup {
		c.advanceSetup(gs)
	} else {
		c.endTurn(gs)
	}
	return result
}

// MovePiece executes a piece move (possibly combat) as the turn action.
func (c *Controller) MovePiece(gs *model.GameState, side model.PlayerSide, mv model.Move) error {
	if gs.IsOver() {
		return model.ErrGameOver
	}
	if gs.Phase != model.PhasePlay {
		return model.ErrGameStateInvalid
	}
	if gs.ActivePlayer != side {
		return model.ErrNotYourTurn
	}

	outcome, err := c.combat.ExecuteMove(gs.Board, side, mv)
	if err != nil {
		return err
	}

	c.logger.Info("move executed",
		slog.String("side", side.String()),
		slog.Int("from_x", mv.From.X), slog.Int("from_y", mv.From.Y),
		slog.Int("to_x", mv.To.X), slog.Int("to_y", mv.To.Y),
		slog.Bool("captured", outcome.DefenderRemoved),
	)

	c.CheckVictory(gs)
	if !gs.IsOver() {
		c.endTurn(gs)
	}
	return nil
}

// Resign ends the match immediately with the opponent winning.
func (c *Controller) Resign(gs *model.GameState, side model.PlayerSide) {
	if gs.IsOver() {
		return
	}
	c.finish(gs, model.WinFor(side.Opponent()))
	c.logger.Info("player resigned", slog.String("side", side.String()))
}

// Forfeit ends the match against a disconnected or misbehaving player.
func (c *Controller) Forfeit(gs *model.GameState, side model.PlayerSide) {
	if gs.IsOver() {
		return
	}
	c.finish(gs, model.WinFor(side.Opponent()))
	c.logger.Info("player forfeited", slog.String("side", side.String()))
}

// CheckVictory inspects the board and decides the match if either player has
// lost all victory pieces. Pure function of the game state.
func (c *Controller) CheckVictory(gs *model.GameState) {
	if gs.IsOver() || gs.Phase == model.PhaseSetup {
		return
	}
	oneAlive := gs.Board.VictoryPieceCount(model.PlayerOne) > 0
	twoAlive := gs.Board.VictoryPieceCount(model.PlayerTwo) > 0

	switch {
	case !oneAlive && !twoAlive:
		c.finish(gs, model.ResultDraw)
	case !oneAlive:
		c.finish(gs, model.ResultPlayerTwoWin)
	case !twoAlive:
		c.finish(gs, model.ResultPlayerOneWin)
	}
}

// advanceSetup flips placement to the other seat, or starts the first turn
// once both victory pieces are down.
func (c *Controller) advanceSetup(gs *model.GameState) {
	if gs.VictoryPlaced[0] && gs.VictoryPlaced[1] {
		gs.ActivePlayer = model.PlayerOne
		c.startTurn(gs)
		return
	}
	gs.ActivePlayer = gs.ActivePlayer.Opponent()
}

// startTurn runs the Draw phase for the active player: draw one card if the
// hand has room and the deck is non-empty, credit steam generation, then
// auto-advance to Play.
func (c *Controller) startTurn(gs *model.GameState) {
	gs.Phase = model.PhaseDraw
	side := gs.ActivePlayer

	hand := gs.Hand(side)
	deck := gs.Deck(side)
	if hand.Len() < model.MaxHandSize {
		if card, ok := deck.Draw(); ok {
			_ = hand.Add(card)
		}
	}

	c.steam.OnTurnStart(gs, side)
	gs.Phase = model.PhasePlay

	c.checkStalemate(gs)
}

// endTurn flips the active player, bumps the turn counter, and re-enters the
// Draw phase.
func (c *Controller) endTurn(gs *model.GameState) {
	gs.ActivePlayer = gs.ActivePlayer.Opponent()
	gs.TurnNumber++
	c.startTurn(gs)
}

// checkStalemate declares a draw when the active player has no legal action:
// no piece moves, no affordable card, and nothing left to draw.
func (c *Controller) checkStalemate(gs *model.GameState) {
	side := gs.ActivePlayer
	if c.movement.HasAnyMove(gs.Board, side) {
		return
	}
	for _, card := range gs.Hand(side).Cards() {
		if card.SteamCost <= gs.SteamFor(side) {
			return
		}
	}
	if gs.Hand(side).Len() < model.MaxHandSize && gs.Deck(side).Len() > 0 {
		return
	}
	c.finish(gs, model.ResultDraw)
	c.logger.Info("stalemate: no legal action remains", slog.String("side", side.String()))
}

func (c *Controller) finish(gs *model.GameState, result model.Result) {
	gs.Result = result
	gs.Phase = model.PhaseGameOver
	c.logger.Info("match decided", slog.String("result", string(result)))
}
