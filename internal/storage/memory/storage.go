package memory

import (
	"context"
	"sync"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/clock"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu    sync.RWMutex
	clock clock.Clock

	users map[string]*model.User
	decks map[string]string
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	return &Storage{
		clock: clk,
		users: make(map[string]*model.User),
		decks: make(map[string]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) EnsureUser(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[username]; ok {
		copied := *user
		return &copied, nil
	}
	now := s.clock.Now()
	user := &model.User{Username: username, Rating: 0, CreatedAt: now, UpdatedAt: now}
	s.users[username] = user
	copied := *user
	return &copied, nil
}

func (s *Storage) UpdateRating(ctx context.Context, username string, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Rating = rating
	user.UpdatedAt = s.clock.Now()
	return nil
}

// Deck operations

func (s *Storage) SaveDeck(ctx context.Context, username string, serialized string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[username] = serialized
	return nil
}

func (s *Storage) GetDeck(ctx context.Context, username string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deck, ok := s.decks[username]
	if !ok {
		return "", model.ErrDeckNotFound
	}
	return deck, nil
}

// Close is a no-op for the in-memory backend.
func (s *Storage) Close() error {
	return nil
}
