package model

// BoardSize is the dimension of the square game board.
const BoardSize = 8

// Position identifies a square on the board.
// (0,0) is PlayerTwo's back-rank left corner; row y=7 is PlayerOne's back rank.
type Position struct {
	X int
	Y int
}

// InBounds returns true if the position is within the board.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Offset is a relative (dx, dy) step used by movement and influence rules.
type Offset struct {
	DX int
	DY int
}

// Add returns the position shifted by the given offset, scaled by distance.
func (p Position) Add(o Offset, distance int) Position {
	return Position{X: p.X + o.DX*distance, Y: p.Y + o.DY*distance}
}

// OffBoard is the position assigned to pieces not yet placed.
var OffBoard = Position{X: -1, Y: -1}
