package game_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/mocks"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/cards"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/combat"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/game"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/movement"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/piece"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/steam"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	pieces     *piece.Registry
	cards      *cards.Registry
	controller *game.Controller
	random     *mocks.MockRandom
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	pieceReg, cardReg, err := testutil.LoadRegistries()
	s.Require().NoError(err)
	s.pieces = pieceReg
	s.cards = cardReg

	logger := testutil.NopLogger()
	mv := movement.NewResolver(logger)
	cb := combat.NewResolver(mv, logger)
	st := steam.New(logger)
	executor := cards.NewExecutor(pieceReg, mv, cb, st, logger)
	s.random = mocks.NewMockRandom()
	s.controller = game.NewController(mv, cb, executor, st, s.random, logger)
}

func (s *ControllerSuite) newMatch() *model.GameState {
	gs, err := s.controller.NewMatch(s.cards.StarterDeck(), s.cards.StarterDeck())
	s.Require().NoError(err)
	return gs
}

// placeSetupPieces walks both seats through victory placement, leaving the
// match at the start of PlayerOne's first turn.
func (s *ControllerSuite) placeSetupPieces(gs *model.GameState) {
	result := s.controller.PlayCard(gs, model.PlayerOne, 0, &model.Position{X: 4, Y: 7})
	s.Require().True(result.Success, result.Message)
	result = s.controller.PlayCard(gs, model.PlayerTwo, 0, &model.Position{X: 4, Y: 0})
	s.Require().True(result.Success, result.Message)
}

// spawn creates and places a piece directly on the board.
func (s *ControllerSuite) spawn(gs *model.GameState, typeName string, side model.PlayerSide, x, y int) *model.Piece {
	p, err := s.pieces.Create(typeName, side)
	s.Require().NoError(err)
	p.Position = model.Position{X: x, Y: y}
	gs.Board.At(x, y).SetPiece(p)
	return p
}

func (s *ControllerSuite) TestNewMatchDealsOpeningState() {
	gs := s.newMatch()

	s.Equal(model.PhaseSetup, gs.Phase)
	s.Equal(model.PlayerOne, gs.ActivePlayer)
	s.Equal(model.ResultInProgress, gs.Result)
	s.Equal(1, gs.TurnNumber)

	for _, side := range []model.PlayerSide{model.PlayerOne, model.PlayerTwo} {
		hand := gs.Hand(side)
		s.Equal(4, hand.Len())
		// Slot-zero victory card first, then three main-pile draws.
		first := hand.Card(0)
		s.True(s.pieces.IsVictoryPiece(first.PieceType))
		s.Equal(model.MainDeckSize-3, gs.Deck(side).Len())
		s.Equal(0, gs.SteamFor(side))
	}

	for x := 0; x < model.BoardSize; x++ {
		s.Equal(model.PlayerOne, gs.Board.At(x, 7).Controller())
		s.Equal(model.PlayerTwo, gs.Board.At(x, 0).Controller())
	}
}

func (s *ControllerSuite) TestNewMatchRejectsInvalidDeck() {
	short, err := s.cards.BuildDeck([]model.CardID{1, 2}, []model.CardID{101, 102, 103, 104})
	s.Require().NoError(err)

	_, err = s.controller.NewMatch(short, s.cards.StarterDeck())
	s.ErrorIs(err, model.ErrDeckInvalid)
}

func (s *ControllerSuite) TestSetupAlternatesThenStartsFirstTurn() {
	gs := s.newMatch()

	result := s.controller.PlayCard(gs, model.PlayerOne, 0, &model.Position{X: 4, Y: 7})
	s.Require().True(result.Success, result.Message)
	s.Equal(model.PhaseSetup, gs.Phase)
	s.Equal(model.PlayerTwo, gs.ActivePlayer)
	s.True(gs.VictoryPlaced[0])
	s.False(gs.VictoryPlaced[1])

	result = s.controller.PlayCard(gs, model.PlayerTwo, 0, &model.Position{X: 4, Y: 0})
	s.Require().True(result.Success, result.Message)

	// Both pieces down: PlayerOne's first turn has begun. The turn start
	// draws back up to a full hand and credits steam generation.
	s.Equal(model.PhasePlay, gs.Phase)
	s.Equal(model.PlayerOne, gs.ActivePlayer)
	s.Equal(4, gs.Hand(model.PlayerOne).Len())
	s.Positive(gs.SteamFor(model.PlayerOne))
	s.Zero(gs.SteamFor(model.PlayerTwo))
}

func (s *ControllerSuite) TestSetupRejectsNonVictoryCardWithoutAdvancing() {
	gs := s.newMatch()

	// Indices 1..3 hold main-pile cards.
	result := s.controller.PlayCard(gs, model.PlayerOne, 1, &model.Position{X: 4, Y: 7})
	s.False(result.Success)
	s.Equal(model.PlayErrorCardCannotBePlayed, result.Code)
	s.Equal(model.PlayerOne, gs.ActivePlayer)
	s.Equal(model.PhaseSetup, gs.Phase)
}

func (s *ControllerSuite) TestMoveEndsTurn() {
	gs := s.newMatch()
	s.placeSetupPieces(gs)

	steamBefore := gs.SteamFor(model.PlayerTwo)
	err := s.controller.MovePiece(gs, model.PlayerOne,
		model.Move{From: model.Position{X: 4, Y: 7}, To: model.Position{X: 4, Y: 6}})
	s.Require().NoError(err)

	s.Equal(model.PlayerTwo, gs.ActivePlayer)
	s.Equal(2, gs.TurnNumber)
	s.Equal(model.PhasePlay, gs.Phase)
	s.Equal(4, gs.Hand(model.PlayerTwo).Len())
	s.Greater(gs.SteamFor(model.PlayerTwo), steamBefore)
}

func (s *ControllerSuite) TestMovePieceGuards() {
	gs := s.newMatch()

	// Setup phase: moves are not a legal action yet.
	err := s.controller.MovePiece(gs, model.PlayerOne,
		model.Move{From: model.Position{X: 4, Y: 7}, To: model.Position{X: 4, Y: 6}})
	s.ErrorIs(err, model.ErrGameStateInvalid)

	s.placeSetupPieces(gs)

	err = s.controller.MovePiece(gs, model.PlayerTwo,
		model.Move{From: model.Position{X: 4, Y: 0}, To: model.Position{X: 4, Y: 1}})
	s.ErrorIs(err, model.ErrNotYourTurn)

	err = s.controller.MovePiece(gs, model.PlayerOne,
		model.Move{From: model.Position{X: 4, Y: 0}, To: model.Position{X: 4, Y: 1}})
	s.ErrorIs(err, model.ErrCannotMoveOpponentPiece)
}

func (s *ControllerSuite) TestFailedPlayDoesNotEndTurn() {
	gs := model.NewGameState()
	gs.Phase = model.PhasePlay
	s.spawn(gs, "totem", model.PlayerOne, 4, 7)
	s.spawn(gs, "totem", model.PlayerTwo, 4, 0)

	zap, ok := s.cards.Lookup(5)
	s.Require().True(ok)
	s.Require().NoError(gs.Hand(model.PlayerOne).Add(zap))

	result := s.controller.PlayCard(gs, model.PlayerOne, 0, nil)
	s.False(result.Success)
	s.Equal(model.PlayerOne, gs.ActivePlayer)
	s.Equal(1, gs.TurnNumber)
	s.Equal(model.PhasePlay, gs.Phase)
}

func (s *ControllerSuite) TestKillingLastVictoryPieceWinsImmediately() {
	gs := model.NewGameState()
	gs.Phase = model.PhasePlay
	gs.Steam[0] = 5
	s.spawn(gs, "totem", model.PlayerOne, 4, 7)
	target := s.spawn(gs, "totem", model.PlayerTwo, 4, 0)
	target.CurrentHealth = 2

	zap, ok := s.cards.Lookup(5) // damage 2
	s.Require().True(ok)
	s.Require().NoError(gs.Hand(model.PlayerOne).Add(zap))

	result := s.controller.PlayCard(gs, model.PlayerOne, 0, &model.Position{X: 4, Y: 0})
	s.Require().True(result.Success, result.Message)

	s.Equal(model.ResultPlayerOneWin, gs.Result)
	s.Equal(model.PhaseGameOver, gs.Phase)
	s.True(gs.IsOver())
	// The deciding play does not pass the turn.
	s.Equal(model.PlayerOne, gs.ActivePlayer)

	err := s.controller.MovePiece(gs, model.PlayerOne,
		model.Move{From: model.Position{X: 4, Y: 7}, To: model.Position{X: 4, Y: 6}})
	s.ErrorIs(err, model.ErrGameOver)
}

func (s *ControllerSuite) TestCaptureOfLastVictoryPieceWins() {
	gs := model.NewGameState()
	gs.Phase = model.PhasePlay
	s.spawn(gs, "totem", model.PlayerOne, 4, 7)
	s.spawn(gs, "slider", model.PlayerOne, 4, 4)
	weak := s.spawn(gs, "totem", model.PlayerTwo, 4, 0)
	weak.CurrentHealth = 1

	err := s.controller.MovePiece(gs, model.PlayerOne,
		model.Move{From: model.Position{X: 4, Y: 4}, To: model.Position{X: 4, Y: 0}})
	s.Require().NoError(err)

	s.Equal(model.ResultPlayerOneWin, gs.Result)
	s.True(gs.IsOver())
}

func (s *ControllerSuite) TestResign() {
	gs := s.newMatch()
	s.placeSetupPieces(gs)

	s.controller.Resign(gs, model.PlayerOne)
	s.Equal(model.ResultPlayerTwoWin, gs.Result)
	s.Equal(model.PhaseGameOver, gs.Phase)

	// Resigning a decided match changes nothing.
	s.controller.Resign(gs, model.PlayerTwo)
	s.Equal(model.ResultPlayerTwoWin, gs.Result)
}

func (s *ControllerSuite) TestForfeit() {
	gs := s.newMatch()

	s.controller.Forfeit(gs, model.PlayerTwo)
	s.Equal(model.ResultPlayerOneWin, gs.Result)
	s.Equal(model.PhaseGameOver, gs.Phase)
}

func (s *ControllerSuite) TestBothVictoryPiecesDeadIsDraw() {
	gs := model.NewGameState()
	gs.Phase = model.PhasePlay

	s.controller.CheckVictory(gs)
	s.Equal(model.ResultDraw, gs.Result)
	s.True(gs.IsOver())
}

func (s *ControllerSuite) TestStalemateIsDraw() {
	// PlayerOne's pieces are wedged against the top edge with no legal
	// move: pushers cannot advance off the board or capture friendlies,
	// and the cornered totem is walled in. Empty hand, empty deck.
	gs := model.NewGameState()
	gs.Phase = model.PhasePlay
	gs.ActivePlayer = model.PlayerTwo
	s.spawn(gs, "totem", model.PlayerOne, 0, 0)
	s.spawn(gs, "pusher", model.PlayerOne, 1, 0)
	s.spawn(gs, "pusher", model.PlayerOne, 0, 1)
	s.spawn(gs, "pusher", model.PlayerOne, 1, 1)
	s.spawn(gs, "totem", model.PlayerTwo, 5, 5)

	err := s.controller.MovePiece(gs, model.PlayerTwo,
		model.Move{From: model.Position{X: 5, Y: 5}, To: model.Position{X: 5, Y: 6}})
	s.Require().NoError(err)

	s.Equal(model.ResultDraw, gs.Result)
	s.Equal(model.PhaseGameOver, gs.Phase)
}

func (s *ControllerSuite) TestStalemateAvertedByDrawableCard() {
	gs := model.NewGameState()
	gs.Phase = model.PhasePlay
	gs.ActivePlayer = model.PlayerTwo
	s.spawn(gs, "totem", model.PlayerOne, 0, 0)
	s.spawn(gs, "pusher", model.PlayerOne, 1, 0)
	s.spawn(gs, "pusher", model.PlayerOne, 0, 1)
	s.spawn(gs, "pusher", model.PlayerOne, 1, 1)
	s.spawn(gs, "totem", model.PlayerTwo, 5, 5)

	grunt, ok := s.cards.Lookup(1)
	s.Require().True(ok)
	gs.Deck(model.PlayerOne).AddToMain(grunt)

	err := s.controller.MovePiece(gs, model.PlayerTwo,
		model.Move{From: model.Position{X: 5, Y: 5}, To: model.Position{X: 5, Y: 6}})
	s.Require().NoError(err)

	s.Equal(model.ResultInProgress, gs.Result)
	s.Equal(model.PlayerOne, gs.ActivePlayer)
	// The drawn card landed in hand on turn start.
	s.Equal(1, gs.Hand(model.PlayerOne).Len())
}
