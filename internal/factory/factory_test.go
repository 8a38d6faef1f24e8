package factory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pieceDataPath = "../../data/pieces.json"
	cardDataPath  = "../../data/cards.json"
)

func TestNewWithShippedData(t *testing.T) {
	app, err := New(Config{
		PieceDataPath: pieceDataPath,
		CardDataPath:  cardDataPath,
	})
	require.NoError(t, err)

	// The shipped definitions load and the starter deck passes validation.
	assert.Contains(t, app.PieceRegistry.TypeNames(), "automatick")
	assert.True(t, app.PieceRegistry.IsVictoryPiece("marsh_monarch"))
	assert.NoError(t, app.CardRegistry.ValidateDeckForPlay(app.CardRegistry.StarterDeck()))
	assert.NoError(t, app.Storage.Close())
}

func TestNewWiresEverything(t *testing.T) {
	app, err := New(Config{
		PieceDataPath: pieceDataPath,
		CardDataPath:  cardDataPath,
		StorageType:   StorageTypeMemory,
	})
	require.NoError(t, err)
	defer app.Storage.Close()

	assert.NotNil(t, app.Clock)
	assert.NotNil(t, app.Random)
	assert.NotNil(t, app.MovementResolver)
	assert.NotNil(t, app.CombatResolver)
	assert.NotNil(t, app.SteamService)
	assert.NotNil(t, app.CardExecutor)
	assert.NotNil(t, app.GameController)
	assert.NotNil(t, app.RatingService)
	require.NotNil(t, app.Decoder)
	assert.NotNil(t, app.Decoder.Pieces)
	assert.NotNil(t, app.Decoder.Cards)
}

func TestNewWithSQLite(t *testing.T) {
	app, err := New(Config{
		PieceDataPath: pieceDataPath,
		CardDataPath:  cardDataPath,
		StorageType:   StorageTypeSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "factory.db"),
	})
	require.NoError(t, err)
	assert.NoError(t, app.Storage.Close())
}

func TestNewConfigErrors(t *testing.T) {
	_, err := New(Config{
		PieceDataPath: pieceDataPath,
		CardDataPath:  cardDataPath,
		StorageType:   StorageTypeRedis,
	})
	assert.Error(t, err)

	_, err = New(Config{
		PieceDataPath: pieceDataPath,
		CardDataPath:  cardDataPath,
		StorageType:   StorageTypeSQLite,
	})
	assert.Error(t, err)

	_, err = New(Config{
		PieceDataPath: pieceDataPath,
		CardDataPath:  cardDataPath,
		StorageType:   "etched-stone-tablets",
	})
	assert.Error(t, err)

	_, err = New(Config{
		PieceDataPath: "missing.json",
		CardDataPath:  cardDataPath,
	})
	assert.Error(t, err)
}

func TestNewTestApp(t *testing.T) {
	app := NewTestApp()

	assert.NotNil(t, app.MockClock)
	assert.NotNil(t, app.MockRandom)
	assert.Same(t, app.MockClock, app.Clock)
	assert.NotNil(t, app.GameController)
	assert.NotNil(t, app.Decoder)

	// Fixture registries back the app.
	assert.True(t, app.PieceRegistry.IsVictoryPiece("totem"))
	_, ok := app.CardRegistry.Lookup(1)
	assert.True(t, ok)
}
