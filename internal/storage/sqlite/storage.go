// Package sqlite provides the SQLite-backed storage implementation, the
// primary persistent backend for user ratings and saved decks.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/clock"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    username   TEXT PRIMARY KEY NOT NULL,
    rating     INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS decks (
    username   TEXT PRIMARY KEY NOT NULL,
    deck       TEXT NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (username) REFERENCES users (username)
);
`

// Storage persists users and decks in SQLite.
type Storage struct {
	db    *sql.DB
	clock clock.Clock
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Open opens the SQLite database at the given path and ensures the schema.
func Open(path string, clk clock.Clock) (*Storage, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite storage path is required")
	}
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Storage{db: db, clock: clk}, nil
}

// Close closes the database handle.
func (s *Storage) Close() error {
	return s.db.Close()
}

// User operations

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT rating, created_at, updated_at FROM users WHERE username = ?`, username)

	var rating int
	var createdAt, updatedAt int64
	if err := row.Scan(&rating, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &model.User{
		Username:  username,
		Rating:    rating,
		CreatedAt: time.UnixMilli(createdAt),
		UpdatedAt: time.UnixMilli(updatedAt),
	}, nil
}

func (s *Storage) EnsureUser(ctx context.Context, username string) (*model.User, error) {
	now := s.clock.Now().UnixMilli()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, rating, created_at, updated_at)
		 VALUES (?, 0, ?, ?)
		 ON CONFLICT (username) DO NOTHING`,
		username, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return s.GetUser(ctx, username)
}

func (s *Storage) UpdateRating(ctx context.Context, username string, rating int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET rating = ?, updated_at = ? WHERE username = ?`,
		rating, s.clock.Now().UnixMilli(), username)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	if affected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// Deck operations

func (s *Storage) SaveDeck(ctx context.Context, username string, serialized string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decks (username, deck, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (username) DO UPDATE SET deck = excluded.deck, updated_at = excluded.updated_at`,
		username, serialized, s.clock.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

func (s *Storage) GetDeck(ctx context.Context, username string) (string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT deck FROM decks WHERE username = ?`, username)
	var deck string
	if err := row.Scan(&deck); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrDeckNotFound
		}
		return "", fmt.Errorf("select deck: %w", err)
	}
	return deck, nil
}
