package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/clock"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/random"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/protocol"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/cards"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/combat"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/game"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/movement"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/piece"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/rating"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/steam"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/storage"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/storage/memory"
	redisstorage "github.com/bayoubonanza/bayou-bonanza-go/internal/storage/redis"
	sqlitestorage "github.com/bayoubonanza/bayou-bonanza-go/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Registries loaded from data files
	PieceRegistry *piece.Registry
	CardRegistry  *cards.Registry

	// Services
	MovementResolver *movement.Resolver
	CombatResolver   *combat.Resolver
	SteamService     *steam.Service
	CardExecutor     *cards.Executor
	GameController   *game.Controller
	RatingService    *rating.Service

	// Decoder rebuilds wire messages against the loaded registries.
	Decoder *protocol.Decoder
}

// Config holds configuration for the application factory
type Config struct {
	// PieceDataPath is the path to the piece definitions file
	PieceDataPath string
	// CardDataPath is the path to the card definitions file
	CardDataPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file path (required if StorageType is "sqlite")
	SQLitePath string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New(clk)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.Open(cfg.SQLitePath, clk)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}

	// Load data-driven registries
	pieceRegistry, err := piece.LoadRegistry(cfg.PieceDataPath, logger)
	if err != nil {
		return nil, fmt.Errorf("load piece registry: %w", err)
	}
	cardRegistry, err := cards.LoadRegistry(cfg.CardDataPath, pieceRegistry, logger)
	if err != nil {
		return nil, fmt.Errorf("load card registry: %w", err)
	}

	return newWithDependencies(store, clk, rnd, pieceRegistry, cardRegistry, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, pieceRegistry *piece.Registry, cardRegistry *cards.Registry, logger *slog.Logger) *App {
	// Create services
	movementResolver := movement.NewResolver(logger)
	combatResolver := combat.NewResolver(movementResolver, logger)
	steamService := steam.New(logger)
	cardExecutor := cards.NewExecutor(pieceRegistry, movementResolver, combatResolver, steamService, logger)
	gameController := game.NewController(movementResolver, combatResolver, cardExecutor, steamService, rnd, logger)
	ratingService := rating.New(store, logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		PieceRegistry:    pieceRegistry,
		CardRegistry:     cardRegistry,
		MovementResolver: movementResolver,
		CombatResolver:   combatResolver,
		SteamService:     steamService,
		CardExecutor:     cardExecutor,
		GameController:   gameController,
		RatingService:    ratingService,
		Decoder:          &protocol.Decoder{Pieces: pieceRegistry, Cards: cardRegistry},
	}
}
