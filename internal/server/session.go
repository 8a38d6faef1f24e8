package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/dependencies/clock"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/protocol"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/game"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/rating"
)

// heartbeatInterval is how often the session pings idle clients. Advisory
// only: a missed response does not end the session, a dead socket does.
const heartbeatInterval = 5 * time.Second

// Session owns one match: two clients, the authoritative game state, and the
// single loop that serializes every mutation. All observers see mutations in
// the same total order because broadcasts are emitted from this one loop.
type Session struct {
	clients    [2]*Client
	controller *game.Controller
	rating     *rating.Service
	clock      clock.Clock
	startedAt  time.Time
	gs         *model.GameState
	logger     *slog.Logger
}

// NewSession seats two clients and creates the match state from their decks.
// The first client becomes PlayerOne.
func NewSession(one, two *Client, controller *game.Controller, ratingSvc *rating.Service, clk clock.Clock, logger *slog.Logger) (*Session, error) {
	one.Side = model.PlayerOne
	two.Side = model.PlayerTwo

	gs, err := controller.NewMatch(one.Deck, two.Deck)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	return &Session{
		clients:    [2]*Client{one, two},
		controller: controller,
		rating:     ratingSvc,
		clock:      clk,
		startedAt:  clk.Now(),
		gs:         gs,
		logger: logger.With(
			slog.String("p1", one.User.Username),
			slog.String("p2", two.User.Username),
		),
	}, nil
}

// Run drives the session to completion: announce the match, then process
// inbound actions one at a time until the game is decided or a socket dies.
func (s *Session) Run(ctx context.Context) {
	defer s.closeAll()

	if failed, err := s.announce(); err != nil {
		// A client that died while queued forfeits; the survivor still gets
		// a decided game.
		s.logger.Warn("failed to announce match", slog.String("error", err.Error()))
		s.controller.Forfeit(s.gs, failed.Side)
		s.finish(ctx)
		return
	}

	s.logger.Info("session started")

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session cancelled")
			return
		case msg, ok := <-s.clients[0].Conn.Inbound:
			if s.handleInbound(ctx, s.clients[0], msg, ok) {
				return
			}
		case msg, ok := <-s.clients[1].Conn.Inbound:
			if s.handleInbound(ctx, s.clients[1], msg, ok) {
				return
			}
		case <-heartbeat.C:
			s.broadcast(protocol.HeartbeatRequest{})
		}
	}
}

func (s *Session) announce() (*Client, error) {
	for _, c := range s.clients {
		if err := c.Conn.Send(protocol.PlayerAssignment{Side: c.Side}); err != nil {
			return c, err
		}
	}
	start := protocol.GameStart{
		P1Username: s.clients[0].User.Username,
		P1Rating:   int32(s.clients[0].User.Rating),
		P2Username: s.clients[1].User.Username,
		P2Rating:   int32(s.clients[1].User.Rating),
		State:      s.gs,
	}
	for _, c := range s.clients {
		if err := c.Conn.Send(start); err != nil {
			return c, err
		}
	}
	return nil, nil
}

// handleInbound processes one message from a client. Returns true when the
// session is finished.
func (s *Session) handleInbound(ctx context.Context, from *Client, msg protocol.Message, ok bool) bool {
	if !ok {
		// Socket error or disconnect: the opponent wins by forfeit.
		s.logger.Info("client disconnected",
			slog.String("username", from.User.Username),
			slog.String("side", from.Side.String()),
		)
		s.controller.Forfeit(s.gs, from.Side)
		s.finish(ctx)
		return true
	}

	switch m := msg.(type) {
	case protocol.MoveToServer:
		s.handleMove(from, m)
	case protocol.PlayCard:
		s.handlePlayCard(from, m)
	case protocol.Resign:
		s.controller.Resign(s.gs, from.Side)
	case protocol.HeartbeatResponse:
		return false
	default:
		// Wrong message for an in-game connection ends the session against
		// the offender.
		s.logger.Warn("unexpected in-game message",
			slog.String("username", from.User.Username),
			slog.Int("kind", int(msg.MessageKind())),
		)
		_ = from.Conn.Send(protocol.ErrorMessage{Message: "unexpected message during game"})
		s.controller.Forfeit(s.gs, from.Side)
	}

	if s.gs.IsOver() {
		s.finish(ctx)
		return true
	}
	return false
}

func (s *Session) handleMove(from *Client, m protocol.MoveToServer) {
	if s.gs.IsOver() {
		_ = from.Conn.Send(protocol.MoveRejected{Reason: "game is over"})
		return
	}
	if err := s.controller.MovePiece(s.gs, from.Side, m.Move); err != nil {
		_ = from.Conn.Send(protocol.MoveRejected{Reason: err.Error()})
		return
	}
	s.broadcastState()
}

func (s *Session) handlePlayCard(from *Client, m protocol.PlayCard) {
	if s.gs.IsOver() {
		_ = from.Conn.Send(protocol.CardPlayRejected{Reason: "game is over"})
		return
	}
	var pos *model.Position
	if m.HasTarget {
		target := m.Target
		pos = &target
	}
	result := s.controller.PlayCard(s.gs, from.Side, int(m.HandIndex), pos)
	if !result.Success {
		_ = from.Conn.Send(protocol.CardPlayRejected{
			Reason: fmt.Sprintf("%s: %s", result.Code, result.Message),
		})
		return
	}
	s.broadcastState()
}

// broadcastState sends the mutated state to both clients, then the turn
// handoff. Ordering matches mutation order because only the session loop
// calls this.
func (s *Session) broadcastState() {
	s.broadcast(protocol.GameStateUpdate{State: s.gs})
	if !s.gs.IsOver() {
		s.broadcast(protocol.TurnChange{
			ActivePlayer: s.gs.ActivePlayer,
			TurnNumber:   int32(s.gs.TurnNumber),
		})
	}
}

func (s *Session) broadcast(msg protocol.Message) {
	for _, c := range s.clients {
		if err := c.Conn.Send(msg); err != nil {
			s.logger.Warn("broadcast failed",
				slog.String("username", c.User.Username),
				slog.String("error", err.Error()),
			)
		}
	}
}

// finish applies rating updates and tells both clients how it ended.
func (s *Session) finish(ctx context.Context) {
	deltaOne, deltaTwo := 0, 0

	updateCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	d1, d2, err := s.rating.ApplyResult(updateCtx, s.clients[0].User, s.clients[1].User, s.gs.Result)
	if err != nil {
		s.logger.Error("failed to apply rating result", slog.String("error", err.Error()))
	} else {
		deltaOne, deltaTwo = d1, d2
	}

	s.broadcast(protocol.GameOver{
		Winner:  s.gs.Result.WinnerSide(),
		Result:  protocol.ResultToByte(s.gs.Result),
		DeltaP1: int32(deltaOne),
		DeltaP2: int32(deltaTwo),
	})

	s.logger.Info("session finished",
		slog.String("result", string(s.gs.Result)),
		slog.Duration("duration", s.clock.Now().Sub(s.startedAt)),
		slog.Int("turns", s.gs.TurnNumber),
	)
}

func (s *Session) closeAll() {
	for _, c := range s.clients {
		c.Conn.Close()
	}
}
