package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/protocol"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/cards"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/rating"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/storage"
)

// loginTimeout bounds how long a fresh connection may idle before sending its
// login. Connections that blow it are dropped without ceremony.
const loginTimeout = 5 * time.Second

// Config holds the listener settings.
type Config struct {
	// Addr is the TCP listen address, e.g. ":9432".
	Addr string
	// MaxClients caps concurrently connected sockets. Further connections
	// get a ServerFull message and an immediate close. Zero means unlimited.
	MaxClients int
}

// Server accepts client sockets and walks each one through the pre-game
// conversation (login, deck exchange, matchmaking) before handing it to the
// lobby. Game traffic is the session's business, not the server's.
type Server struct {
	cfg     Config
	decoder *protocol.Decoder
	lobby   *Lobby
	rating  *rating.Service
	cards   *cards.Registry
	storage storage.Storage
	logger  *slog.Logger

	// collection is the card catalogue JSON, rendered once at startup.
	collection string

	mu       sync.Mutex
	listener net.Listener
	active   int

	handlers sync.WaitGroup
}

// New builds a server. The card catalogue is serialized eagerly so a broken
// registry fails here rather than on the first login.
func New(cfg Config, decoder *protocol.Decoder, lobby *Lobby, ratingSvc *rating.Service, cardReg *cards.Registry, store storage.Storage, logger *slog.Logger) (*Server, error) {
	collection, err := cardReg.EncodeCollection()
	if err != nil {
		return nil, fmt.Errorf("render card collection: %w", err)
	}
	return &Server{
		cfg:        cfg,
		decoder:    decoder,
		lobby:      lobby,
		rating:     ratingSvc,
		cards:      cardReg,
		storage:    store,
		logger:     logger,
		collection: collection,
	}, nil
}

// ListenAndServe accepts connections until the context is cancelled, then
// waits for running handlers and sessions to drain.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("server listening", slog.String("addr", listener.Addr().String()))

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		nc, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			s.logger.Warn("accept failed", slog.String("error", err.Error()))
			continue
		}
		s.handleAccept(ctx, nc)
	}

	s.handlers.Wait()
	s.lobby.Wait()
	s.logger.Info("server stopped")
	return nil
}

// Addr returns the bound listen address, for tests that listen on port 0.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) handleAccept(ctx context.Context, nc net.Conn) {
	if !s.reserveSlot() {
		s.logger.Info("rejecting connection, server full",
			slog.String("remote", nc.RemoteAddr().String()))
		if payload, err := protocol.Encode(protocol.ServerFull{}); err == nil {
			_ = nc.SetWriteDeadline(time.Now().Add(writeTimeout))
			_ = protocol.WriteFrame(nc, payload)
		}
		_ = nc.Close()
		return
	}

	conn := NewConn(nc, s.decoder, s.logger)
	conn.onClose = s.releaseSlot

	s.handlers.Add(1)
	go func() {
		defer s.handlers.Done()
		s.serveConn(ctx, conn)
	}()
}

func (s *Server) reserveSlot() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.MaxClients > 0 && s.active >= s.cfg.MaxClients {
		return false
	}
	s.active++
	return true
}

func (s *Server) releaseSlot() {
	s.mu.Lock()
	s.active--
	s.mu.Unlock()
}

// serveConn runs the pre-game conversation. On a matchmaking request the
// connection is handed to the lobby and this function returns without closing
// it; every other exit path closes the socket.
func (s *Server) serveConn(ctx context.Context, conn *Conn) {
	logger := s.logger.With(slog.String("remote", conn.RemoteAddr()))

	if err := conn.Send(protocol.ConnectionAccepted{}); err != nil {
		logger.Warn("failed to greet client", slog.String("error", err.Error()))
		conn.Close()
		return
	}

	user, err := s.awaitLogin(ctx, conn)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Info("login failed", slog.String("error", err.Error()))
		}
		conn.Close()
		return
	}
	logger = logger.With(slog.String("username", user.Username))
	logger.Info("client logged in", slog.Int("rating", user.Rating))

	if err := s.sendAccountData(ctx, conn, user.Username); err != nil {
		logger.Warn("failed to send account data", slog.String("error", err.Error()))
		conn.Close()
		return
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close()
			return
		case msg, ok := <-conn.Inbound:
			if !ok {
				logger.Info("client disconnected before matchmaking")
				conn.Close()
				return
			}
			switch m := msg.(type) {
			case protocol.SaveDeck:
				s.handleSaveDeck(ctx, conn, user.Username, m, logger)
			case protocol.RequestMatchmaking:
				deck, err := s.loadDeck(ctx, user.Username)
				if err != nil {
					logger.Error("failed to load deck for matchmaking", slog.String("error", err.Error()))
					_ = conn.Send(protocol.ErrorMessage{Message: "could not load your deck"})
					conn.Close()
					return
				}
				if err := conn.Send(protocol.WaitingForOpponent{}); err != nil {
					conn.Close()
					return
				}
				s.lobby.Enqueue(ctx, &Client{Conn: conn, User: user, Deck: deck})
				return
			case protocol.HeartbeatResponse:
				// Fine at any time.
			default:
				logger.Warn("unexpected pre-game message",
					slog.Int("kind", int(msg.MessageKind())),
					slog.String("error", errProtocolViolation.Error()),
				)
				_ = conn.Send(protocol.ErrorMessage{Message: errProtocolViolation.Error()})
				conn.Close()
				return
			}
		}
	}
}

// awaitLogin reads the first message, which must be a UserLogin, within the
// login timeout.
func (s *Server) awaitLogin(ctx context.Context, conn *Conn) (*model.User, error) {
	timer := time.NewTimer(loginTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, fmt.Errorf("no login within %s", loginTimeout)
	case msg, ok := <-conn.Inbound:
		if !ok {
			return nil, fmt.Errorf("connection closed: %w", conn.ReadErr())
		}
		login, isLogin := msg.(protocol.UserLogin)
		if !isLogin {
			_ = conn.Send(protocol.ErrorMessage{Message: errProtocolViolation.Error()})
			return nil, fmt.Errorf("%w: expected login, got kind %d", errProtocolViolation, msg.MessageKind())
		}
		if login.Username == "" {
			_ = conn.Send(protocol.ErrorMessage{Message: "username must not be empty"})
			return nil, fmt.Errorf("empty username")
		}
		return s.rating.Login(ctx, login.Username)
	}
}

// sendAccountData pushes the card catalogue and the user's current deck,
// falling back to the starter deck for new accounts.
func (s *Server) sendAccountData(ctx context.Context, conn *Conn, username string) error {
	if err := conn.Send(protocol.CardCollectionData{Data: s.collection}); err != nil {
		return err
	}
	deck, err := s.loadDeck(ctx, username)
	if err != nil {
		return err
	}
	return conn.Send(protocol.DeckData{Data: cards.EncodeDeckString(deck)})
}

// loadDeck returns the user's saved deck, or the starter deck when none is
// stored. A stored deck that no longer parses (e.g. after a card data change)
// also falls back to the starter.
func (s *Server) loadDeck(ctx context.Context, username string) (*model.Deck, error) {
	serialized, err := s.storage.GetDeck(ctx, username)
	if errors.Is(err, model.ErrDeckNotFound) {
		return s.cards.StarterDeck(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load deck for %q: %w", username, err)
	}
	deck, err := s.cards.ParseDeckString(serialized)
	if err != nil {
		s.logger.Warn("stored deck no longer parses, using starter",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return s.cards.StarterDeck(), nil
	}
	return deck, nil
}

func (s *Server) handleSaveDeck(ctx context.Context, conn *Conn, username string, m protocol.SaveDeck, logger *slog.Logger) {
	deck, err := s.cards.ParseDeckString(m.Serialized)
	if err != nil {
		_ = conn.Send(protocol.ErrorMessage{Message: fmt.Sprintf("invalid deck: %v", err)})
		return
	}
	if err := s.cards.ValidateDeckForPlay(deck); err != nil {
		_ = conn.Send(protocol.ErrorMessage{Message: fmt.Sprintf("invalid deck: %v", err)})
		return
	}
	if err := s.storage.SaveDeck(ctx, username, cards.EncodeDeckString(deck)); err != nil {
		logger.Error("failed to persist deck", slog.String("error", err.Error()))
		_ = conn.Send(protocol.ErrorMessage{Message: "could not save deck"})
		return
	}
	logger.Info("deck saved")
	_ = conn.Send(protocol.DeckSaved{})
}
