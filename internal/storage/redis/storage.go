package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/clock"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface. Users
// are stored as hashes, decks as plain serialized strings.
type Storage struct {
	client *goredis.Client
	clock  clock.Clock
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New creates a Redis storage instance and verifies connectivity.
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}

	client := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Storage{client: client, clock: clk}, nil
}

// User operations

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	fields, err := s.client.HGetAll(ctx, userKey(username)).Result()
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(fields) == 0 {
		return nil, model.ErrUserNotFound
	}
	return userFromFields(username, fields)
}

func (s *Storage) EnsureUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.GetUser(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	created := &model.User{Username: username, Rating: 0, CreatedAt: now, UpdatedAt: now}
	// HSETNX on the rating field keeps a concurrent login from resetting an
	// existing row.
	set, err := s.client.HSetNX(ctx, userKey(username), "rating", "0").Result()
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	if !set {
		return s.GetUser(ctx, username)
	}
	if err := s.client.HSet(ctx, userKey(username),
		"created_at", strconv.FormatInt(now.UnixMilli(), 10),
		"updated_at", strconv.FormatInt(now.UnixMilli(), 10),
	).Err(); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	return created, nil
}

func (s *Storage) UpdateRating(ctx context.Context, username string, rating int) error {
	exists, err := s.client.Exists(ctx, userKey(username)).Result()
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	if exists == 0 {
		return model.ErrUserNotFound
	}
	if err := s.client.HSet(ctx, userKey(username),
		"rating", strconv.Itoa(rating),
		"updated_at", strconv.FormatInt(s.clock.Now().UnixMilli(), 10),
	).Err(); err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	return nil
}

// Deck operations

func (s *Storage) SaveDeck(ctx context.Context, username string, serialized string) error {
	if err := s.client.Set(ctx, deckKey(username), serialized, 0).Err(); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

func (s *Storage) GetDeck(ctx context.Context, username string) (string, error) {
	deck, err := s.client.Get(ctx, deckKey(username)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", model.ErrDeckNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get deck: %w", err)
	}
	return deck, nil
}

// Close releases the underlying client.
func (s *Storage) Close() error {
	return s.client.Close()
}

func userFromFields(username string, fields map[string]string) (*model.User, error) {
	rating, err := strconv.Atoi(fields["rating"])
	if err != nil {
		return nil, fmt.Errorf("corrupt rating for user %q: %w", username, err)
	}
	user := &model.User{Username: username, Rating: rating}
	if v, ok := fields["created_at"]; ok {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			user.CreatedAt = time.UnixMilli(ms)
		}
	}
	if v, ok := fields["updated_at"]; ok {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			user.UpdatedAt = time.UnixMilli(ms)
		}
	}
	return user, nil
}
