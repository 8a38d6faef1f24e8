package cards

import (
	"fmt"
	"log/slog"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/combat"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/movement"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/piece"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/steam"
)

// HomeRank returns the back rank for a side: y=7 for PlayerOne, y=0 for
// PlayerTwo.
func HomeRank(side model.PlayerSide) int {
	if side == model.PlayerTwo {
		return 0
	}
	return model.BoardSize - 1
}

// Executor runs the atomic card-play pipeline: validate, deduct, remove,
// apply, and roll back on failure. Partial mutations are never observable
// outside a call.
type Executor struct {
	pieces   *piece.Registry
	movement *movement.Resolver
	combat   *combat.Resolver
	steam    *steam.Service
	logger   *slog.Logger
}

// NewExecutor creates a card-play executor.
func NewExecutor(pieces *piece.Registry, mv *movement.Resolver, cb *combat.Resolver, st *steam.Service, logger *slog.Logger) *Executor {
	return &Executor{
		pieces:   pieces,
		movement: mv,
		combat:   cb,
		steam:    st,
		logger:   logger,
	}
}

// Execute plays the card at handIndex for the given side, targeting pos when
// the card requires a target. The pipeline is atomic: on any failure the hand
// contents and steam balance are unchanged (the card may sit at a different
// index after rollback).
func (e *Executor) Execute(gs *model.GameState, side model.PlayerSide, handIndex int, pos *model.Position) model.PlayResult {
	// 1. Game-state check
	if gs.Result != model.ResultInProgress {
		return model.PlayFailure(model.PlayErrorGameStateInvalid, "game is over")
	}
	if gs.Phase != model.PhaseSetup && gs.Phase != model.PhasePlay {
		return model.PlayFailure(model.PlayErrorGameStateInvalid, "cards cannot be played in this phase")
	}
	if gs.ActivePlayer != side {
		return model.PlayFailure(model.PlayErrorGameStateInvalid, "not your turn")
	}

	// 2. Hand check
	hand := gs.Hand(side)
	card := hand.Card(handIndex)
	if card == nil {
		return model.PlayFailure(model.PlayErrorInvalidHandIndex,
			fmt.Sprintf("no card at hand index %d", handIndex))
	}

	if gs.Phase == model.PhaseSetup {
		if !card.IsPieceCard() || !e.pieces.IsVictoryPiece(card.PieceType) {
			return model.PlayFailure(model.PlayErrorCardCannotBePlayed,
				"only victory pieces may be placed during setup")
		}
		if gs.VictoryPlaced[side.Index()] {
			return model.PlayFailure(model.PlayErrorCardCannotBePlayed,
				"victory piece already placed")
		}
	}

	// 3. Affordability
	if gs.SteamFor(side) < card.SteamCost {
		return model.PlayFailure(model.PlayErrorInsufficientSteam,
			fmt.Sprintf("card costs %d steam, have %d", card.SteamCost, gs.SteamFor(side)))
	}

	// 4. Card-specific validation
	if result := e.validate(gs, side, card, pos); !result.Success {
		return result
	}

	// 5. Commit: take the card out, deduct, apply; refund and reinsert on
	// failure. The reinserted card appends at the hand tail.
	taken, err := hand.RemoveAt(handIndex)
	if err != nil {
		return model.PlayFailure(model.PlayErrorInvalidHandIndex, err.Error())
	}
	if err := e.steam.Spend(gs, side, card.SteamCost); err != nil {
		_ = hand.Add(taken)
		return model.PlayFailure(model.PlayErrorInsufficientSteam, err.Error())
	}

	if err := e.apply(gs, side, taken, pos); err != nil {
		e.steam.Refund(gs, side, card.SteamCost)
		_ = hand.Add(taken)
		return model.PlayFailure(model.PlayErrorInvalidTarget, err.Error())
	}

	// 6. Post: control and generation must reflect the mutation before any
	// observer sees the state. Victory and phase advancement belong to the
	// match controller.
	e.movement.RecomputeInfluence(gs.Board)

	if gs.Phase == model.PhaseSetup {
		gs.VictoryPlaced[side.Index()] = true
	}

	e.logger.Info("card played",
		slog.String("side", side.String()),
		slog.Int("card_id", int(taken.ID)),
		slog.String("card", taken.Name),
	)

	return model.PlayOK()
}

func (e *Executor) validate(gs *model.GameState, side model.PlayerSide, card *model.Card, pos *model.Position) model.PlayResult {
	switch {
	case card.IsPieceCard():
		return e.validatePieceCard(gs, side, card, pos)
	case card.IsEffectCard():
		return e.validateEffectCard(gs, side, card, pos)
	default:
		return model.PlayFailure(model.PlayErrorUnknownCardType, "card is neither piece nor effect")
	}
}

func (e *Executor) validatePieceCard(gs *model.GameState, side model.PlayerSide, card *model.Card, pos *model.Position) model.PlayResult {
	if pos == nil {
		return model.PlayFailure(model.PlayErrorInvalidPlacement, "piece cards require a target square")
	}
	if !pos.InBounds() {
		return model.PlayFailure(model.PlayErrorInvalidPlacement, "placement square is off the board")
	}
	sq := gs.Board.AtPos(*pos)
	if !sq.IsEmpty() {
		return model.PlayFailure(model.PlayErrorInvalidPlacement, "placement square is occupied")
	}
	if sq.Controller() != side {
		return model.PlayFailure(model.PlayErrorInvalidPlacement, "you do not control that square")
	}
	if gs.Phase == model.PhaseSetup && pos.Y != HomeRank(side) {
		return model.PlayFailure(model.PlayErrorInvalidPlacement, "victory pieces must start on your home rank")
	}
	return model.PlayOK()
}

func (e *Executor) validateEffectCard(gs *model.GameState, side model.PlayerSide, card *model.Card, pos *model.Position) model.PlayResult {
	effect := card.Effect
	switch effect.Target {
	case model.TargetSinglePiece:
		if pos == nil || !pos.InBounds() {
			return model.PlayFailure(model.PlayErrorInvalidTarget, "effect requires a target square")
		}
		target := gs.Board.AtPos(*pos).Piece()
		if target == nil {
			return model.PlayFailure(model.PlayErrorInvalidTarget, "no piece on target square")
		}
		if !e.compatible(effect, side, target) {
			return model.PlayFailure(model.PlayErrorInvalidTarget, "effect cannot target that piece")
		}
	case model.TargetBoardArea:
		if pos == nil || !pos.InBounds() {
			return model.PlayFailure(model.PlayErrorInvalidTarget, "effect requires a target square")
		}
		if len(e.areaTargets(gs, side, effect, *pos)) == 0 {
			return model.PlayFailure(model.PlayErrorNoValidTargets, "no valid pieces in target area")
		}
	case model.TargetAllFriendly, model.TargetAllEnemy, model.TargetAllPieces:
		if len(e.boardTargets(gs, side, effect)) == 0 {
			return model.PlayFailure(model.PlayErrorNoValidTargets, "no valid pieces on the board")
		}
	case model.TargetSelfPlayer, model.TargetEnemyPlayer:
		// Player-steam effects are always applicable.
	default:
		return model.PlayFailure(model.PlayErrorUnknownCardType,
			fmt.Sprintf("unknown target type %q", effect.Target))
	}
	return model.PlayOK()
}

// compatible enforces friendly/enemy targeting: beneficial kinds hit friendly
// pieces, harmful kinds hit enemies.
func (e *Executor) compatible(effect *model.Effect, side model.PlayerSide, target *model.Piece) bool {
	if effect.HelpsOwner() {
		return target.Side == side
	}
	return target.Side == side.Opponent()
}

// areaTargets returns compatible pieces in the 3x3 area centred on pos.
func (e *Executor) areaTargets(gs *model.GameState, side model.PlayerSide, effect *model.Effect, pos model.Position) []*model.Piece {
	var targets []*model.Piece
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			p := model.Position{X: pos.X + dx, Y: pos.Y + dy}
			if !p.InBounds() {
				continue
			}
			if target := gs.Board.AtPos(p).Piece(); target != nil && e.compatible(effect, side, target) {
				targets = append(targets, target)
			}
		}
	}
	return targets
}

func (e *Executor) boardTargets(gs *model.GameState, side model.PlayerSide, effect *model.Effect) []*model.Piece {
	switch effect.Target {
	case model.TargetAllFriendly:
		return gs.Board.PiecesForSide(side)
	case model.TargetAllEnemy:
		return gs.Board.PiecesForSide(side.Opponent())
	default:
		return gs.Board.Pieces()
	}
}

func (e *Executor) apply(gs *model.GameState, side model.PlayerSide, card *model.Card, pos *model.Position) error {
	if card.IsPieceCard() {
		return e.applyPieceCard(gs, side, card, *pos)
	}
	return e.applyEffectCard(gs, side, card, pos)
}

func (e *Executor) applyPieceCard(gs *model.GameState, side model.PlayerSide, card *model.Card, pos model.Position) error {
	p, err := e.pieces.Create(card.PieceType, side)
	if err != nil {
		return err
	}
	sq := gs.Board.AtPos(pos)
	if !sq.IsEmpty() {
		return model.ErrSquareOccupied
	}
	p.Position = pos
	sq.SetPiece(p)
	return nil
}

func (e *Executor) applyEffectCard(gs *model.GameState, side model.PlayerSide, card *model.Card, pos *model.Position) error {
	effect := card.Effect
	switch effect.Target {
	case model.TargetSinglePiece:
		e.applyToPiece(gs, effect, gs.Board.AtPos(*pos).Piece())
	case model.TargetBoardArea:
		for _, target := range e.areaTargets(gs, side, effect, *pos) {
			e.applyToPiece(gs, effect, target)
		}
	case model.TargetAllFriendly, model.TargetAllEnemy, model.TargetAllPieces:
		for _, target := range e.boardTargets(gs, side, effect) {
			e.applyToPiece(gs, effect, target)
		}
	case model.TargetSelfPlayer:
		e.applyToPlayerSteam(gs, side, effect)
	case model.TargetEnemyPlayer:
		e.applyToPlayerSteam(gs, side.Opponent(), effect)
	}
	return nil
}

// applyToPiece mutates a single piece. Kinds that need a status-effect ledger
// (shield, stun, poison, move boost, attack modifiers) are accepted but apply
// nothing; their cost is still consumed.
func (e *Executor) applyToPiece(gs *model.GameState, effect *model.Effect, target *model.Piece) {
	switch effect.Kind {
	case model.EffectHeal:
		missing := target.MaxHealth() - target.CurrentHealth
		heal := effect.Magnitude
		if heal > missing {
			heal = missing
		}
		if heal > 0 {
			target.CurrentHealth += heal
		}
	case model.EffectDamage:
		target.CurrentHealth -= effect.Magnitude
		if target.CurrentHealth <= 0 {
			e.combat.RemoveDefeated(gs.Board, target.Position)
		}
	case model.EffectBuffHealth:
		// Uncapped: raises effective max health for the rest of the game.
		target.CurrentHealth += effect.Magnitude
	}
}

func (e *Executor) applyToPlayerSteam(gs *model.GameState, target model.PlayerSide, effect *model.Effect) {
	idx := target.Index()
	switch effect.Kind {
	case model.EffectHeal:
		gs.Steam[idx] += effect.Magnitude
	case model.EffectDamage:
		gs.Steam[idx] -= effect.Magnitude
		if gs.Steam[idx] < 0 {
			gs.Steam[idx] = 0
		}
	}
}
