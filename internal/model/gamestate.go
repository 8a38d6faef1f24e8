package model

// Phase is the current stage of a match.
type Phase string

const (
	PhaseUninitialized Phase = ""
	PhaseSetup         Phase = "setup"
	PhaseDraw          Phase = "draw"
	PhasePlay          Phase = "play"
	PhaseGameOver      Phase = "game_over"
)

// Result is the outcome of a match.
type Result string

const (
	ResultInProgress   Result = "in_progress"
	ResultPlayerOneWin Result = "player_one_win"
	ResultPlayerTwoWin Result = "player_two_win"
	ResultDraw         Result = "draw"
)

// WinnerSide returns the winning seat for a decided result, or Neutral.
func (r Result) WinnerSide() PlayerSide {
	switch r {
	case ResultPlayerOneWin:
		return PlayerOne
	case ResultPlayerTwoWin:
		return PlayerTwo
	default:
		return Neutral
	}
}

// WinFor returns the result corresponding to the given side winning.
func WinFor(side PlayerSide) Result {
	if side == PlayerTwo {
		return ResultPlayerTwoWin
	}
	return ResultPlayerOneWin
}

// GameState is the complete authoritative state of one match. It exclusively
// owns the board, both hands, both decks, and the scalar counters.
type GameState struct {
	Board *GameBoard

	Hands [2]*Hand
	Decks [2]*Deck
	Steam [2]int

	ActivePlayer PlayerSide
	Phase        Phase
	Result       Result
	TurnNumber   int

	// VictoryPlaced tracks which seats have completed setup placement.
	VictoryPlaced [2]bool
}

// NewGameState returns a fresh state in the Setup phase with an empty board.
func NewGameState() *GameState {
	return &GameState{
		Board:        NewGameBoard(),
		Hands:        [2]*Hand{NewHand(), NewHand()},
		Decks:        [2]*Deck{NewDeck(), NewDeck()},
		ActivePlayer: PlayerOne,
		Phase:        PhaseSetup,
		Result:       ResultInProgress,
		TurnNumber:   1,
	}
}

// Hand returns the hand for the given acting side.
func (gs *GameState) Hand(side PlayerSide) *Hand {
	return gs.Hands[side.Index()]
}

// Deck returns the deck for the given acting side.
func (gs *GameState) Deck(side PlayerSide) *Deck {
	return gs.Decks[side.Index()]
}

// SteamFor returns the steam balance for the given acting side.
func (gs *GameState) SteamFor(side PlayerSide) int {
	return gs.Steam[side.Index()]
}

// IsOver returns true once the match has a decided result.
func (gs *GameState) IsOver() bool {
	return gs.Phase == PhaseGameOver
}

// Move is a single piece move request, from one square to another.
type Move struct {
	From Position
	To   Position
}
