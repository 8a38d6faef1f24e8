package movement

import (
	"log/slog"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
)

// Resolver computes legal move sets from archetype rule lists and recomputes
// board influence. It is stateless; all inputs are passed per call.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a movement resolver.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// ValidMoves returns the set of legal target squares for the piece. The union
// over all movement rules never contains duplicates.
func (r *Resolver) ValidMoves(board *model.GameBoard, p *model.Piece) map[model.Position]bool {
	moves := make(map[model.Position]bool)
	for _, rule := range p.Stats.Movement {
		r.applyRule(board, p, rule, moves)
	}
	return moves
}

// IsLegal returns true if target is in the piece's valid move set.
func (r *Resolver) IsLegal(board *model.GameBoard, p *model.Piece, target model.Position) bool {
	return r.ValidMoves(board, p)[target]
}

func (r *Resolver) applyRule(board *model.GameBoard, p *model.Piece, rule model.MovementRule, moves map[model.Position]bool) {
	for _, offset := range rule.Offsets {
		o := orientOffset(rule, p.Side, offset)
		if rule.MaxRange == 1 {
			r.applyStep(board, p, rule, p.Position.Add(o, 1), moves)
			continue
		}
		r.applySlide(board, p, rule, o, moves)
	}
}

// orientOffset flips dy for PlayerTwo on pawn-kind rules. Rule files are
// written from PlayerOne's perspective, whose forward is -y.
func orientOffset(rule model.MovementRule, side model.PlayerSide, o model.Offset) model.Offset {
	if (rule.PawnForward || rule.PawnCapture) && side == model.PlayerTwo {
		return model.Offset{DX: o.DX, DY: -o.DY}
	}
	return o
}

func (r *Resolver) applyStep(board *model.GameBoard, p *model.Piece, rule model.MovementRule, target model.Position, moves map[model.Position]bool) {
	if !target.InBounds() {
		return
	}
	sq := board.AtPos(target)
	occupant := sq.Piece()

	switch {
	case rule.CanJump:
		if occupant == nil || occupant.Side != p.Side {
			moves[target] = true
		}
	case rule.PawnForward:
		if occupant == nil {
			moves[target] = true
		}
	case rule.PawnCapture:
		if occupant != nil && occupant.Side != p.Side {
			moves[target] = true
		}
	default:
		if occupant == nil || occupant.Side != p.Side {
			moves[target] = true
		}
	}
}

func (r *Resolver) applySlide(board *model.GameBoard, p *model.Piece, rule model.MovementRule, o model.Offset, moves map[model.Position]bool) {
	for d := 1; d <= rule.MaxRange; d++ {
		target := p.Position.Add(o, d)
		if !target.InBounds() {
			return
		}
		occupant := board.AtPos(target).Piece()
		if occupant == nil {
			moves[target] = true
			continue
		}
		if occupant.Side != p.Side {
			moves[target] = true
		}
		return
	}
}

// HasAnyMove returns true if the side has at least one piece with a legal move.
func (r *Resolver) HasAnyMove(board *model.GameBoard, side model.PlayerSide) bool {
	for _, p := range board.PiecesForSide(side) {
		if len(r.ValidMoves(board, p)) > 0 {
			return true
		}
	}
	return false
}
