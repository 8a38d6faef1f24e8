package storage

import (
	"context"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
)

// Storage defines the interface for data persistence: user ratings and saved
// decks, keyed by username.
type Storage interface {
	// User operations
	GetUser(ctx context.Context, username string) (*model.User, error)
	EnsureUser(ctx context.Context, username string) (*model.User, error)
	UpdateRating(ctx context.Context, username string, rating int) error

	// Deck operations (serialized deck strings)
	SaveDeck(ctx context.Context, username string, serialized string) error
	GetDeck(ctx context.Context, username string) (string, error)

	// Close releases any underlying resources.
	Close() error
}
