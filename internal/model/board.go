package model

// GameBoard is the 8x8 grid of squares.
type GameBoard struct {
	squares [BoardSize][BoardSize]Square
}

// NewGameBoard creates an empty board with every square neutral.
func NewGameBoard() *GameBoard {
	b := &GameBoard{}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			b.squares[y][x] = NewSquare()
		}
	}
	return b
}

// InBounds returns true if (x, y) addresses a square on the board.
func (b *GameBoard) InBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

// At returns the square at (x, y). The caller must check bounds first.
func (b *GameBoard) At(x, y int) *Square {
	return &b.squares[y][x]
}

// AtPos returns the square at the given position.
func (b *GameBoard) AtPos(pos Position) *Square {
	return &b.squares[pos.Y][pos.X]
}

// Clear empties all pieces and zeroes influence counters. Sticky controllers
// are left untouched unless ResetControllers is called.
func (b *GameBoard) Clear() {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			sq := &b.squares[y][x]
			sq.ExtractPiece()
			sq.ResetInfluence()
		}
	}
}

// ResetControllers sets every square's controller back to Neutral.
func (b *GameBoard) ResetControllers() {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			b.squares[y][x].SetController(Neutral)
		}
	}
}

// ForEachSquare visits every square in row-major order (y outer, x inner).
func (b *GameBoard) ForEachSquare(fn func(pos Position, sq *Square)) {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			fn(Position{X: x, Y: y}, &b.squares[y][x])
		}
	}
}

// Pieces returns all pieces currently on the board.
func (b *GameBoard) Pieces() []*Piece {
	var pieces []*Piece
	b.ForEachSquare(func(_ Position, sq *Square) {
		if p := sq.Piece(); p != nil {
			pieces = append(pieces, p)
		}
	})
	return pieces
}

// PiecesForSide returns all pieces on the board owned by the given side.
func (b *GameBoard) PiecesForSide(side PlayerSide) []*Piece {
	var pieces []*Piece
	b.ForEachSquare(func(_ Position, sq *Square) {
		if p := sq.Piece(); p != nil && p.Side == side {
			pieces = append(pieces, p)
		}
	})
	return pieces
}

// VictoryPieceCount returns the number of victory pieces the side still has.
func (b *GameBoard) VictoryPieceCount(side PlayerSide) int {
	count := 0
	b.ForEachSquare(func(_ Position, sq *Square) {
		if p := sq.Piece(); p != nil && p.Side == side && p.IsVictoryPiece() {
			count++
		}
	})
	return count
}

// ControlledCount returns the number of squares whose sticky controller is
// the given side.
func (b *GameBoard) ControlledCount(side PlayerSide) int {
	count := 0
	b.ForEachSquare(func(_ Position, sq *Square) {
		if sq.Controller() == side {
			count++
		}
	})
	return count
}
