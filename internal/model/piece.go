package model

// MovementRule describes one family of moves a piece archetype can make.
// Offsets are written from PlayerOne's perspective; the resolver flips dy for
// PlayerTwo when the rule is pawn-kind.
type MovementRule struct {
	Offsets     []Offset
	MaxRange    int  // >= 1; > 1 means sliding along the offset direction
	CanJump     bool // ignores blockers on single-step moves
	PawnForward bool // forward-only, empty target required
	PawnCapture bool // diagonal-only, enemy target required
}

// InfluenceRule describes extra influence contributions beyond the standard
// anchor-plus-adjacency a piece always projects.
type InfluenceRule struct {
	Offsets []Offset
	Amount  int
}

// PieceStats is an immutable piece archetype loaded from the piece data file.
type PieceStats struct {
	TypeName       string
	Symbol         string
	BaseAttack     int
	BaseHealth     int
	IsVictoryPiece bool
	RangedAttack   bool
	Movement       []MovementRule
	Influence      []InfluenceRule
}

// Piece is a live instance of an archetype owned by exactly one square.
type Piece struct {
	Stats         *PieceStats
	Side          PlayerSide
	Position      Position
	CurrentHealth int // may be negative transiently during damage application
	HasMoved      bool
}

// TypeName returns the archetype name.
func (p *Piece) TypeName() string {
	return p.Stats.TypeName
}

// Attack returns the piece's current attack, derived from the archetype.
func (p *Piece) Attack() int {
	return p.Stats.BaseAttack
}

// MaxHealth returns the archetype's base health.
func (p *Piece) MaxHealth() int {
	return p.Stats.BaseHealth
}

// IsVictoryPiece returns true if losing this piece loses the game.
func (p *Piece) IsVictoryPiece() bool {
	return p.Stats.IsVictoryPiece
}
