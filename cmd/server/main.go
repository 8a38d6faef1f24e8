package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/factory"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/server"
	redisstorage "github.com/bayoubonanza/bayou-bonanza-go/internal/storage/redis"
)

// Process exit codes: 0 for a clean shutdown, exitInit for configuration or
// startup failures, exitNetwork for an unrecoverable listener error.
const (
	exitInit    = 1
	exitNetwork = 2
)

func main() {
	addr := flag.String("addr", envOrDefault("BAYOU_ADDR", ":9432"), "TCP listen address")
	dataDir := flag.String("data", envOrDefault("BAYOU_DATA", "data"), "directory holding pieces.json and cards.json")
	maxClients := flag.Int("max-clients", 64, "maximum concurrent client connections (0 = unlimited)")
	flag.Parse()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		PieceDataPath: *dataDir + "/pieces.json",
		CardDataPath:  *dataDir + "/cards.json",
		Logger:        logger,
		StorageType:   os.Getenv("STORAGE_TYPE"),
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(exitInit)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite:
		cfg.SQLitePath = envOrDefault("SQLITE_PATH", "bayou.db")
	}

	// Create application factory; bad data files are fatal here.
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(exitInit)
	}
	defer func() { _ = app.Storage.Close() }()

	lobby := server.NewLobby(app.GameController, app.RatingService, app.Clock, logger)
	srv, err := server.New(
		server.Config{Addr: *addr, MaxClients: *maxClients},
		app.Decoder, lobby, app.RatingService, app.CardRegistry, app.Storage, logger,
	)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(exitInit)
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(exitNetwork)
	}
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
