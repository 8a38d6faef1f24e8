package piece

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
)

// adjacencyOffsets are the 8 orthogonal/diagonal neighbours every piece
// projects influence onto by default.
var adjacencyOffsets = []model.Offset{
	{DX: -1, DY: -1}, {DX: 0, DY: -1}, {DX: 1, DY: -1},
	{DX: -1, DY: 0}, {DX: 1, DY: 0},
	{DX: -1, DY: 1}, {DX: 0, DY: 1}, {DX: 1, DY: 1},
}

// Registry holds the immutable piece archetypes loaded at startup. It is safe
// to share read-only across sessions.
type Registry struct {
	stats  map[string]*model.PieceStats
	logger *slog.Logger
}

type pieceFile struct {
	Pieces []pieceDef `json:"pieces"`
}

type pieceDef struct {
	TypeName       string         `json:"typeName"`
	Symbol         string         `json:"symbol"`
	BaseAttack     int            `json:"baseAttack"`
	BaseHealth     int            `json:"baseHealth"`
	IsVictoryPiece bool           `json:"isVictoryPiece"`
	RangedAttack   bool           `json:"rangedAttack"`
	Movement       []movementDef  `json:"movement"`
	Influence      []influenceDef `json:"influence"`
}

type movementDef struct {
	Offsets     [][2]int `json:"offsets"`
	MaxRange    int      `json:"maxRange"`
	CanJump     bool     `json:"canJump"`
	PawnForward bool     `json:"pawnForward"`
	PawnCapture bool     `json:"pawnCapture"`
}

type influenceDef struct {
	Offsets [][2]int `json:"offsets"`
	Amount  int      `json:"amount"`
}

// LoadRegistry reads piece definitions from the given file path.
func LoadRegistry(path string, logger *slog.Logger) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open piece definitions: %w", err)
	}
	defer f.Close()
	return LoadRegistryFromReader(f, logger)
}

// LoadRegistryFromReader parses piece definitions from a reader.
func LoadRegistryFromReader(r io.Reader, logger *slog.Logger) (*Registry, error) {
	var file pieceFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse piece definitions: %w", err)
	}
	if len(file.Pieces) == 0 {
		return nil, fmt.Errorf("piece definitions: no pieces declared")
	}

	reg := &Registry{
		stats:  make(map[string]*model.PieceStats, len(file.Pieces)),
		logger: logger,
	}

	for _, def := range file.Pieces {
		stats, err := def.toStats()
		if err != nil {
			return nil, fmt.Errorf("piece %q: %w", def.TypeName, err)
		}
		if _, exists := reg.stats[stats.TypeName]; exists {
			return nil, fmt.Errorf("piece definitions: duplicate type %q", stats.TypeName)
		}
		reg.stats[stats.TypeName] = stats
	}

	logger.Info("piece registry loaded", slog.Int("piece_count", len(reg.stats)))
	return reg, nil
}

func (d pieceDef) toStats() (*model.PieceStats, error) {
	if d.TypeName == "" {
		return nil, fmt.Errorf("missing typeName")
	}
	if d.BaseAttack < 1 {
		return nil, fmt.Errorf("baseAttack must be >= 1, got %d", d.BaseAttack)
	}
	if d.BaseHealth < 1 {
		return nil, fmt.Errorf("baseHealth must be >= 1, got %d", d.BaseHealth)
	}
	if len(d.Movement) == 0 {
		return nil, fmt.Errorf("no movement rules")
	}

	stats := &model.PieceStats{
		TypeName:       d.TypeName,
		Symbol:         d.Symbol,
		BaseAttack:     d.BaseAttack,
		BaseHealth:     d.BaseHealth,
		IsVictoryPiece: d.IsVictoryPiece,
		RangedAttack:   d.RangedAttack,
	}

	for i, m := range d.Movement {
		if m.MaxRange < 1 {
			return nil, fmt.Errorf("movement rule %d: maxRange must be >= 1", i)
		}
		if len(m.Offsets) == 0 {
			return nil, fmt.Errorf("movement rule %d: no offsets", i)
		}
		rule := model.MovementRule{
			MaxRange:    m.MaxRange,
			CanJump:     m.CanJump,
			PawnForward: m.PawnForward,
			PawnCapture: m.PawnCapture,
		}
		for _, o := range m.Offsets {
			rule.Offsets = append(rule.Offsets, model.Offset{DX: o[0], DY: o[1]})
		}
		stats.Movement = append(stats.Movement, rule)
	}

	for _, inf := range d.Influence {
		rule := model.InfluenceRule{Amount: inf.Amount}
		for _, o := range inf.Offsets {
			rule.Offsets = append(rule.Offsets, model.Offset{DX: o[0], DY: o[1]})
		}
		stats.Influence = append(stats.Influence, rule)
	}
	// Every piece projects the standard +1 adjacency ring unless the data
	// file overrides it.
	if len(stats.Influence) == 0 {
		stats.Influence = []model.InfluenceRule{{Offsets: adjacencyOffsets, Amount: 1}}
	}

	return stats, nil
}

// Lookup returns the archetype for the given type name.
func (r *Registry) Lookup(typeName string) (*model.PieceStats, bool) {
	stats, ok := r.stats[typeName]
	return stats, ok
}

// Create instantiates a new piece of the given type for the given side.
// The piece starts off-board at full health.
func (r *Registry) Create(typeName string, side model.PlayerSide) (*model.Piece, error) {
	stats, ok := r.stats[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownPieceType, typeName)
	}
	return &model.Piece{
		Stats:         stats,
		Side:          side,
		Position:      model.OffBoard,
		CurrentHealth: stats.BaseHealth,
	}, nil
}

// IsVictoryPiece reports whether the named type is a victory piece.
// Unknown types are not victory pieces.
func (r *Registry) IsVictoryPiece(typeName string) bool {
	stats, ok := r.stats[typeName]
	return ok && stats.IsVictoryPiece
}

// TypeNames returns all registered type names in sorted order.
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.stats))
	for name := range r.stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
