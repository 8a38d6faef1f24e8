package model

// CardID uniquely identifies a card archetype. Zero is reserved to mean
// "empty slot" in serialized decks.
type CardID uint32

// Rarity classifies how common a card is in the collection.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// EffectKind enumerates what an effect card does when applied.
type EffectKind string

const (
	EffectHeal         EffectKind = "heal"
	EffectDamage       EffectKind = "damage"
	EffectBuffAttack   EffectKind = "buff_attack"
	EffectBuffHealth   EffectKind = "buff_health"
	EffectDebuffAttack EffectKind = "debuff_attack"
	EffectDebuffHealth EffectKind = "debuff_health"
	EffectMoveBoost    EffectKind = "move_boost"
	EffectShield       EffectKind = "shield"
	EffectPoison       EffectKind = "poison"
	EffectStun         EffectKind = "stun"
)

// TargetType enumerates what an effect card may be aimed at.
type TargetType string

const (
	TargetSinglePiece TargetType = "single_piece"
	TargetAllFriendly TargetType = "all_friendly"
	TargetAllEnemy    TargetType = "all_enemy"
	TargetAllPieces   TargetType = "all_pieces"
	TargetBoardArea   TargetType = "board_area"
	TargetSelfPlayer  TargetType = "self_player"
	TargetEnemyPlayer TargetType = "enemy_player"
)

// Duration sentinels for effects.
const (
	DurationInstant   = 0
	DurationPermanent = -1
)

// Effect describes what an effect card does.
type Effect struct {
	Kind      EffectKind
	Magnitude int
	Duration  int // 0 = instant, -1 = permanent, else turn count
	Target    TargetType
}

// HelpsOwner returns true for effect kinds that must target friendly pieces;
// false for kinds that must target enemies.
func (e Effect) HelpsOwner() bool {
	switch e.Kind {
	case EffectHeal, EffectBuffAttack, EffectBuffHealth, EffectShield, EffectMoveBoost:
		return true
	default:
		return false
	}
}

// Card is an immutable card archetype. Exactly one of PieceType or Effect is
// set: piece cards place a new piece, effect cards apply an effect.
type Card struct {
	ID          CardID
	Name        string
	Description string
	SteamCost   int
	Rarity      Rarity

	PieceType string  // non-empty for piece cards
	Effect    *Effect // non-nil for effect cards
}

// IsPieceCard returns true if playing the card places a piece.
func (c *Card) IsPieceCard() bool {
	return c.PieceType != ""
}

// IsEffectCard returns true if playing the card applies an effect.
func (c *Card) IsEffectCard() bool {
	return c.Effect != nil
}
