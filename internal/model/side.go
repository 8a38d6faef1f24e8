package model

// PlayerSide identifies one of the two seats, or neutral territory.
// Neutral is only ever a square controller, never an acting party.
type PlayerSide uint8

const (
	PlayerOne PlayerSide = iota
	PlayerTwo
	Neutral
)

// String returns a human-readable side name.
func (s PlayerSide) String() string {
	switch s {
	case PlayerOne:
		return "player_one"
	case PlayerTwo:
		return "player_two"
	default:
		return "neutral"
	}
}

// Opponent returns the other acting side. Neutral has no opponent.
func (s PlayerSide) Opponent() PlayerSide {
	switch s {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return Neutral
	}
}

// Index maps an acting side to an array index (PlayerOne=0, PlayerTwo=1).
func (s PlayerSide) Index() int {
	if s == PlayerTwo {
		return 1
	}
	return 0
}

// IsActing returns true for the two seats, false for Neutral.
func (s PlayerSide) IsActing() bool {
	return s == PlayerOne || s == PlayerTwo
}
