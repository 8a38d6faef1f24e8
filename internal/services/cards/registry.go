package cards

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/piece"
)

// Registry holds the immutable card archetypes loaded at startup. Shared
// read-only across sessions.
type Registry struct {
	cards   map[model.CardID]*model.Card
	pieces  *piece.Registry
	starter starterDef
	logger  *slog.Logger
}

type cardFile struct {
	Cards   []cardDef  `json:"cards"`
	Starter starterDef `json:"starterDeck"`
}

type cardDef struct {
	ID          uint32     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	SteamCost   int        `json:"steamCost"`
	Rarity      string     `json:"rarity"`
	PieceType   string     `json:"pieceType,omitempty"`
	Effect      *effectDef `json:"effect,omitempty"`
}

type effectDef struct {
	Kind      string `json:"kind"`
	Magnitude int    `json:"magnitude"`
	Duration  int    `json:"duration"`
	Target    string `json:"target"`
}

type starterDef struct {
	Main    []uint32 `json:"main"`
	Victory []uint32 `json:"victory"`
}

// LoadRegistry reads card definitions from the given file path. Piece cards
// are validated against the piece registry.
func LoadRegistry(path string, pieces *piece.Registry, logger *slog.Logger) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open card definitions: %w", err)
	}
	defer f.Close()
	return LoadRegistryFromReader(f, pieces, logger)
}

// LoadRegistryFromReader parses card definitions from a reader.
func LoadRegistryFromReader(r io.Reader, pieces *piece.Registry, logger *slog.Logger) (*Registry, error) {
	var file cardFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse card definitions: %w", err)
	}
	if len(file.Cards) == 0 {
		return nil, fmt.Errorf("card definitions: no cards declared")
	}

	reg := &Registry{
		cards:   make(map[model.CardID]*model.Card, len(file.Cards)),
		pieces:  pieces,
		starter: file.Starter,
		logger:  logger,
	}

	for _, def := range file.Cards {
		card, err := def.toCard(pieces)
		if err != nil {
			return nil, fmt.Errorf("card %d (%s): %w", def.ID, def.Name, err)
		}
		if _, exists := reg.cards[card.ID]; exists {
			return nil, fmt.Errorf("card definitions: duplicate id %d", card.ID)
		}
		reg.cards[card.ID] = card
	}

	if err := reg.validateStarter(); err != nil {
		return nil, fmt.Errorf("starter deck: %w", err)
	}

	logger.Info("card registry loaded", slog.Int("card_count", len(reg.cards)))
	return reg, nil
}

func (d cardDef) toCard(pieces *piece.Registry) (*model.Card, error) {
	if d.ID == 0 {
		return nil, fmt.Errorf("id 0 is reserved for empty deck slots")
	}
	if d.SteamCost < 0 {
		return nil, fmt.Errorf("steamCost must be >= 0")
	}
	if (d.PieceType == "") == (d.Effect == nil) {
		return nil, fmt.Errorf("exactly one of pieceType or effect must be set")
	}

	card := &model.Card{
		ID:          model.CardID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		SteamCost:   d.SteamCost,
		Rarity:      model.Rarity(d.Rarity),
	}

	if d.PieceType != "" {
		if _, ok := pieces.Lookup(d.PieceType); !ok {
			return nil, fmt.Errorf("%w: %q", model.ErrUnknownPieceType, d.PieceType)
		}
		card.PieceType = d.PieceType
		return card, nil
	}

	kind := model.EffectKind(d.Effect.Kind)
	switch kind {
	case model.EffectHeal, model.EffectDamage, model.EffectBuffAttack,
		model.EffectBuffHealth, model.EffectDebuffAttack, model.EffectDebuffHealth,
		model.EffectMoveBoost, model.EffectShield, model.EffectPoison, model.EffectStun:
	default:
		return nil, fmt.Errorf("unknown effect kind %q", d.Effect.Kind)
	}
	target := model.TargetType(d.Effect.Target)
	switch target {
	case model.TargetSinglePiece, model.TargetAllFriendly, model.TargetAllEnemy,
		model.TargetAllPieces, model.TargetBoardArea, model.TargetSelfPlayer,
		model.TargetEnemyPlayer:
	default:
		return nil, fmt.Errorf("unknown target type %q", d.Effect.Target)
	}

	card.Effect = &model.Effect{
		Kind:      kind,
		Magnitude: d.Effect.Magnitude,
		Duration:  d.Effect.Duration,
		Target:    target,
	}
	return card, nil
}

func (r *Registry) validateStarter() error {
	deck, err := r.BuildDeck(idsFromUint32(r.starter.Main), idsFromUint32(r.starter.Victory))
	if err != nil {
		return err
	}
	return r.ValidateDeckForPlay(deck)
}

// ValidateDeckForPlay runs the structural deck rules plus the registry-aware
// check that every victory slot names a victory piece.
func (r *Registry) ValidateDeckForPlay(deck *model.Deck) error {
	if err := deck.ValidateForPlay(); err != nil {
		return err
	}
	for _, c := range deck.Victory {
		if !r.pieces.IsVictoryPiece(c.PieceType) {
			return fmt.Errorf("%w: %q is not a victory piece", model.ErrDeckInvalid, c.PieceType)
		}
	}
	return nil
}

// Lookup returns the card archetype for the given id.
func (r *Registry) Lookup(id model.CardID) (*model.Card, bool) {
	card, ok := r.cards[id]
	return card, ok
}

// All returns every card archetype sorted by id.
func (r *Registry) All() []*model.Card {
	out := make([]*model.Card, 0, len(r.cards))
	for _, c := range r.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BuildDeck assembles a deck from main-pile and victory-slot card ids.
// A zero id leaves a victory slot empty.
func (r *Registry) BuildDeck(mainIDs, victoryIDs []model.CardID) (*model.Deck, error) {
	deck := model.NewDeck()
	for _, id := range mainIDs {
		card, ok := r.cards[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", model.ErrUnknownCardID, id)
		}
		deck.AddToMain(card)
	}
	if len(victoryIDs) > model.VictorySlots {
		return nil, fmt.Errorf("%w: too many victory cards", model.ErrDeckInvalid)
	}
	for i, id := range victoryIDs {
		if id == 0 {
			continue
		}
		card, ok := r.cards[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", model.ErrUnknownCardID, id)
		}
		deck.Victory[i] = card
	}
	return deck, nil
}

// StarterDeck builds the default deck handed to users with no saved deck.
func (r *Registry) StarterDeck() *model.Deck {
	deck, err := r.BuildDeck(idsFromUint32(r.starter.Main), idsFromUint32(r.starter.Victory))
	if err != nil {
		// Validated at load time; cannot fail here.
		panic(err)
	}
	return deck
}

// EncodeDeckString serializes a deck as "<mainIds>|<victoryIds>" with
// comma-separated ids and 0 for empty victory slots.
func EncodeDeckString(deck *model.Deck) string {
	main := make([]string, len(deck.Main))
	for i, c := range deck.Main {
		main[i] = strconv.FormatUint(uint64(c.ID), 10)
	}
	victory := make([]string, model.VictorySlots)
	for i, c := range deck.Victory {
		if c == nil {
			victory[i] = "0"
		} else {
			victory[i] = strconv.FormatUint(uint64(c.ID), 10)
		}
	}
	return strings.Join(main, ",") + "|" + strings.Join(victory, ",")
}

// ParseDeckString rebuilds a deck from its serialized form.
func (r *Registry) ParseDeckString(s string) (*model.Deck, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: malformed deck string", model.ErrDeckInvalid)
	}
	mainIDs, err := parseIDList(parts[0])
	if err != nil {
		return nil, err
	}
	victoryIDs, err := parseIDList(parts[1])
	if err != nil {
		return nil, err
	}
	return r.BuildDeck(mainIDs, victoryIDs)
}

func parseIDList(s string) ([]model.CardID, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	ids := make([]model.CardID, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: bad card id %q", model.ErrDeckInvalid, f)
		}
		ids = append(ids, model.CardID(v))
	}
	return ids, nil
}

func idsFromUint32(in []uint32) []model.CardID {
	out := make([]model.CardID, len(in))
	for i, v := range in {
		out[i] = model.CardID(v)
	}
	return out
}

// EncodeCollection serializes the full card catalogue for clients as JSON.
func (r *Registry) EncodeCollection() (string, error) {
	type wireEffect struct {
		Kind      string `json:"kind"`
		Magnitude int    `json:"magnitude"`
		Duration  int    `json:"duration"`
		Target    string `json:"target"`
	}
	type wireCard struct {
		ID          uint32      `json:"id"`
		Name        string      `json:"name"`
		Description string      `json:"description"`
		SteamCost   int         `json:"steamCost"`
		Rarity      string      `json:"rarity"`
		PieceType   string      `json:"pieceType,omitempty"`
		Effect      *wireEffect `json:"effect,omitempty"`
	}

	all := r.All()
	out := make([]wireCard, 0, len(all))
	for _, c := range all {
		wc := wireCard{
			ID:          uint32(c.ID),
			Name:        c.Name,
			Description: c.Description,
			SteamCost:   c.SteamCost,
			Rarity:      string(c.Rarity),
			PieceType:   c.PieceType,
		}
		if c.Effect != nil {
			wc.Effect = &wireEffect{
				Kind:      string(c.Effect.Kind),
				Magnitude: c.Effect.Magnitude,
				Duration:  c.Effect.Duration,
				Target:    string(c.Effect.Target),
			}
		}
		out = append(out, wc)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode card collection: %w", err)
	}
	return string(data), nil
}
