package piece_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/piece"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	registry *piece.Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	registry, err := piece.LoadRegistryFromReader(strings.NewReader(testutil.PieceDefsJSON), testutil.NopLogger())
	s.Require().NoError(err)
	s.registry = registry
}

func (s *RegistrySuite) TestLookupReturnsStats() {
	stats, ok := s.registry.Lookup("slider")
	s.Require().True(ok)

	s.Equal("slider", stats.TypeName)
	s.Equal(4, stats.BaseAttack)
	s.Equal(6, stats.BaseHealth)
	s.False(stats.IsVictoryPiece)
	s.Require().Len(stats.Movement, 1)
	s.Equal(7, stats.Movement[0].MaxRange)
}

func (s *RegistrySuite) TestLookupUnknownType() {
	_, ok := s.registry.Lookup("kraken")
	s.False(ok)
}

func (s *RegistrySuite) TestCreateProducesFreshInstance() {
	p, err := s.registry.Create("grunt", model.PlayerTwo)
	s.Require().NoError(err)

	s.Equal("grunt", p.TypeName())
	s.Equal(model.PlayerTwo, p.Side)
	s.Equal(3, p.CurrentHealth)
	s.Equal(p.MaxHealth(), p.CurrentHealth)
	s.Equal(model.OffBoard, p.Position)
	s.False(p.HasMoved)
}

func (s *RegistrySuite) TestCreateUnknownType() {
	_, err := s.registry.Create("kraken", model.PlayerOne)
	s.ErrorIs(err, model.ErrUnknownPieceType)
}

func (s *RegistrySuite) TestCreatedInstancesShareStats() {
	a, err := s.registry.Create("grunt", model.PlayerOne)
	s.Require().NoError(err)
	b, err := s.registry.Create("grunt", model.PlayerTwo)
	s.Require().NoError(err)

	s.Same(a.Stats, b.Stats)
}

func (s *RegistrySuite) TestIsVictoryPiece() {
	s.True(s.registry.IsVictoryPiece("totem"))
	s.True(s.registry.IsVictoryPiece("colossus"))
	s.False(s.registry.IsVictoryPiece("grunt"))
	s.False(s.registry.IsVictoryPiece("kraken"))
}

func (s *RegistrySuite) TestDefaultInfluenceIsAdjacency() {
	stats, ok := s.registry.Lookup("grunt")
	s.Require().True(ok)

	s.Require().Len(stats.Influence, 1)
	s.Equal(1, stats.Influence[0].Amount)
	s.Len(stats.Influence[0].Offsets, 8)
}

func (s *RegistrySuite) TestTypeNamesSorted() {
	names := s.registry.TypeNames()
	s.Equal([]string{"archer", "colossus", "grunt", "jumper", "pusher", "slider", "totem"}, names)
}

func (s *RegistrySuite) TestRejectsDuplicateTypeName() {
	defs := `{"pieces": [
		{"typeName": "twin", "symbol": "t", "baseAttack": 1, "baseHealth": 1,
		 "movement": [{"offsets": [[0,-1]], "maxRange": 1}]},
		{"typeName": "twin", "symbol": "t", "baseAttack": 1, "baseHealth": 1,
		 "movement": [{"offsets": [[0,-1]], "maxRange": 1}]}
	]}`
	_, err := piece.LoadRegistryFromReader(strings.NewReader(defs), testutil.NopLogger())
	s.Error(err)
}

func (s *RegistrySuite) TestRejectsNonPositiveStats() {
	defs := `{"pieces": [
		{"typeName": "husk", "symbol": "h", "baseAttack": 0, "baseHealth": 3,
		 "movement": [{"offsets": [[0,-1]], "maxRange": 1}]}
	]}`
	_, err := piece.LoadRegistryFromReader(strings.NewReader(defs), testutil.NopLogger())
	s.Error(err)
}

func (s *RegistrySuite) TestRejectsUnknownFields() {
	defs := `{"pieces": [
		{"typeName": "odd", "symbol": "o", "baseAttack": 1, "baseHealth": 1,
		 "speed": 9,
		 "movement": [{"offsets": [[0,-1]], "maxRange": 1}]}
	]}`
	_, err := piece.LoadRegistryFromReader(strings.NewReader(defs), testutil.NopLogger())
	s.Error(err)
}
