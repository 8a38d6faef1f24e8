package combat

import (
	"fmt"
	"log/slog"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/movement"
)

// Outcome summarizes what a move execution did.
type Outcome struct {
	Moved           bool // attacker changed squares
	DamageDealt     int
	DefenderRemoved bool
}

// Resolver executes validated piece moves, including one-directional combat
// when the destination holds an enemy piece.
type Resolver struct {
	movement *movement.Resolver
	logger   *slog.Logger
}

// NewResolver creates a combat resolver.
func NewResolver(mv *movement.Resolver, logger *slog.Logger) *Resolver {
	return &Resolver{movement: mv, logger: logger}
}

// ExecuteMove validates and applies a move for the given side. Influence is
// recomputed after any board mutation so control and steam generation reflect
// the new topology.
func (r *Resolver) ExecuteMove(board *model.GameBoard, side model.PlayerSide, mv model.Move) (Outcome, error) {
	if !mv.From.InBounds() || !mv.To.InBounds() {
		return Outcome{}, model.ErrInvalidPosition
	}

	origin := board.AtPos(mv.From)
	attacker := origin.Piece()
	if attacker == nil {
		return Outcome{}, model.ErrNoPieceAtOrigin
	}
	if attacker.Side != side {
		return Outcome{}, model.ErrCannotMoveOpponentPiece
	}
	if !r.movement.IsLegal(board, attacker, mv.To) {
		return Outcome{}, fmt.Errorf("%w: %s cannot reach (%d,%d)",
			model.ErrIllegalMove, attacker.TypeName(), mv.To.X, mv.To.Y)
	}

	dest := board.AtPos(mv.To)
	defender := dest.Piece()

	var outcome Outcome
	if defender == nil {
		r.transfer(board, attacker, mv.From, mv.To)
		outcome.Moved = true
	} else {
		outcome = r.resolveCombat(board, attacker, defender, mv)
	}

	r.movement.RecomputeInfluence(board)
	return outcome, nil
}

// resolveCombat applies one-directional damage. There is no counter-attack:
// the defender never damages the attacker.
func (r *Resolver) resolveCombat(board *model.GameBoard, attacker, defender *model.Piece, mv model.Move) Outcome {
	damage := attacker.Attack()
	if damage < 1 {
		damage = 1
	}
	defender.CurrentHealth -= damage

	outcome := Outcome{DamageDealt: damage}

	r.logger.Debug("combat resolved",
		slog.String("attacker", attacker.TypeName()),
		slog.String("defender", defender.TypeName()),
		slog.Int("damage", damage),
		slog.Int("defender_health", defender.CurrentHealth),
	)

	if defender.CurrentHealth <= 0 {
		board.AtPos(mv.To).ExtractPiece()
		outcome.DefenderRemoved = true
		// A melee attacker advances into the vacated square; a ranged
		// attacker strikes from where it stands.
		if !attacker.Stats.RangedAttack {
			r.transfer(board, attacker, mv.From, mv.To)
			outcome.Moved = true
		}
	}
	// Defender survived: the attacker stays on its origin square either way,
	// since two pieces cannot co-occupy. Damage has still been applied.

	return outcome
}

func (r *Resolver) transfer(board *model.GameBoard, p *model.Piece, from, to model.Position) {
	board.AtPos(from).ExtractPiece()
	p.Position = to
	p.HasMoved = true
	board.AtPos(to).SetPiece(p)
}

// RemoveDefeated takes a piece off its square if its health is depleted.
// Used by effect damage, which kills in place rather than through a move.
func (r *Resolver) RemoveDefeated(board *model.GameBoard, pos model.Position) bool {
	sq := board.AtPos(pos)
	p := sq.Piece()
	if p == nil || p.CurrentHealth > 0 {
		return false
	}
	sq.ExtractPiece()
	return true
}
