package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/clock"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/game"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/rating"
)

// Lobby pairs waiting clients into sessions. Matchmaking policy is minimal:
// the first two clients waiting are paired, in arrival order.
type Lobby struct {
	controller *game.Controller
	rating     *rating.Service
	clock      clock.Clock
	logger     *slog.Logger

	mu      sync.Mutex
	waiting *Client
	// claim stops the waiting client's disconnect watcher once it is paired.
	claim chan struct{}

	sessions sync.WaitGroup
}

// NewLobby creates a lobby.
func NewLobby(controller *game.Controller, ratingSvc *rating.Service, clk clock.Clock, logger *slog.Logger) *Lobby {
	return &Lobby{
		controller: controller,
		rating:     ratingSvc,
		clock:      clk,
		logger:     logger,
	}
}

// Enqueue adds a client to the matchmaking queue. When an opponent is already
// waiting, a session starts immediately on its own goroutine and both clients
// belong to it from then on.
func (l *Lobby) Enqueue(ctx context.Context, client *Client) {
	l.mu.Lock()
	if l.waiting == nil {
		l.waiting = client
		claim := make(chan struct{})
		l.claim = claim
		l.mu.Unlock()
		l.logger.Info("client waiting for opponent",
			slog.String("username", client.User.Username))
		go l.watchWaiting(client, claim)
		return
	}
	opponent := l.waiting
	l.waiting = nil
	close(l.claim)
	l.claim = nil
	l.mu.Unlock()

	session, err := NewSession(opponent, client, l.controller, l.rating, l.clock, l.logger)
	if err != nil {
		l.logger.Error("failed to create session", slog.String("error", err.Error()))
		opponent.Conn.Close()
		client.Conn.Close()
		return
	}

	l.sessions.Add(1)
	go func() {
		defer l.sessions.Done()
		session.Run(ctx)
	}()
}

// watchWaiting evicts a queued client whose socket dies before an opponent
// arrives, so the next player is not paired against a dead connection.
func (l *Lobby) watchWaiting(client *Client, claim chan struct{}) {
	select {
	case <-claim:
	case <-client.Conn.Dead():
		l.mu.Lock()
		evicted := l.waiting == client
		if evicted {
			l.waiting = nil
			l.claim = nil
		}
		l.mu.Unlock()
		if evicted {
			l.logger.Info("queued client disconnected, removed from queue",
				slog.String("username", client.User.Username))
			client.Conn.Close()
		}
	}
}

// Wait blocks until all running sessions have finished.
func (l *Lobby) Wait() {
	l.sessions.Wait()
}
