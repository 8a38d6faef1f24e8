package model

// Square is one cell of the board. It exclusively owns at most one piece,
// carries per-side influence counters recomputed each tick, and a sticky
// controller that persists until dislodged.
type Square struct {
	piece      *Piece
	influence  [2]int
	controller PlayerSide
}

// NewSquare returns an empty, neutral square.
func NewSquare() Square {
	return Square{controller: Neutral}
}

// Piece returns the occupying piece, or nil.
func (s *Square) Piece() *Piece {
	return s.piece
}

// IsEmpty returns true if no piece occupies the square.
func (s *Square) IsEmpty() bool {
	return s.piece == nil
}

// SetPiece places a piece on the square, taking ownership.
func (s *Square) SetPiece(p *Piece) {
	s.piece = p
}

// ExtractPiece removes and returns the occupying piece, transferring ownership
// to the caller.
func (s *Square) ExtractPiece() *Piece {
	p := s.piece
	s.piece = nil
	return p
}

// Influence returns the influence counter for the given acting side.
func (s *Square) Influence(side PlayerSide) int {
	return s.influence[side.Index()]
}

// SetInfluence overwrites the influence counter for the given acting side.
func (s *Square) SetInfluence(side PlayerSide, value int) {
	s.influence[side.Index()] = value
}

// AddInfluence adds to the influence counter for the given acting side.
func (s *Square) AddInfluence(side PlayerSide, delta int) {
	s.influence[side.Index()] += delta
}

// ResetInfluence zeroes both counters. The controller is left untouched.
func (s *Square) ResetInfluence() {
	s.influence[0] = 0
	s.influence[1] = 0
}

// Controller returns the sticky controller of the square.
func (s *Square) Controller() PlayerSide {
	return s.controller
}

// SetController overwrites the sticky controller.
func (s *Square) SetController(side PlayerSide) {
	s.controller = side
}

// UpdateControllerFromInfluence applies the sticky-control rule:
// a neutral square goes to whichever side has strictly greater influence;
// a held square flips only when the opposing side has strictly greater
// influence than the holder. Ties and zero-zero preserve the current value.
func (s *Square) UpdateControllerFromInfluence() {
	p1 := s.influence[PlayerOne.Index()]
	p2 := s.influence[PlayerTwo.Index()]

	if s.controller == Neutral {
		if p1 > p2 {
			s.controller = PlayerOne
		} else if p2 > p1 {
			s.controller = PlayerTwo
		}
		return
	}

	holder := s.influence[s.controller.Index()]
	opponent := s.influence[s.controller.Opponent().Index()]
	if opponent > holder {
		s.controller = s.controller.Opponent()
	}
}
