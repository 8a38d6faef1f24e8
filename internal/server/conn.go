package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/protocol"
)

// writeTimeout bounds a single outbound frame write. Writes are best-effort;
// a failed write surfaces to the session loop as a disconnect.
const writeTimeout = 10 * time.Second

// Conn wraps one client socket with framed message I/O. A dedicated reader
// goroutine feeds decoded messages onto Inbound; the channel closes when the
// peer disconnects or sends garbage, with ReadErr holding the cause.
type Conn struct {
	nc      net.Conn
	decoder *protocol.Decoder
	logger  *slog.Logger

	// Inbound carries decoded messages in arrival order.
	Inbound chan protocol.Message

	// dead closes when the reader goroutine exits, so code that is not
	// draining Inbound can still notice a lost peer.
	dead chan struct{}

	writeMu sync.Mutex
	readErr error
	closeMu sync.Once

	// onClose, when set, runs exactly once as part of Close.
	onClose func()
}

// NewConn wraps a socket and starts its reader goroutine.
func NewConn(nc net.Conn, decoder *protocol.Decoder, logger *slog.Logger) *Conn {
	c := &Conn{
		nc:      nc,
		decoder: decoder,
		logger:  logger,
		Inbound: make(chan protocol.Message, 16),
		dead:    make(chan struct{}),
	}
	go c.readLoop()
	return c
}

func (c *Conn) readLoop() {
	defer close(c.dead)
	defer close(c.Inbound)
	for {
		payload, err := protocol.ReadFrame(c.nc)
		if err != nil {
			c.readErr = err
			return
		}
		msg, err := c.decoder.Decode(payload)
		if err != nil {
			// Malformed frame: a protocol error, not a transient one.
			c.readErr = err
			c.logger.Warn("malformed frame from client", slog.String("error", err.Error()))
			return
		}
		c.Inbound <- msg
	}
}

// Send encodes and writes one framed message.
func (c *Conn) Send(msg protocol.Message) error {
	payload, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.nc.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	return protocol.WriteFrame(c.nc, payload)
}

// ReadErr returns why the reader stopped, once Inbound is closed.
func (c *Conn) ReadErr() error {
	return c.readErr
}

// Dead reports peer loss without consuming from Inbound.
func (c *Conn) Dead() <-chan struct{} {
	return c.dead
}

// Close shuts the socket down. Safe to call more than once.
func (c *Conn) Close() {
	c.closeMu.Do(func() {
		_ = c.nc.Close()
		if c.onClose != nil {
			c.onClose()
		}
	})
}

// RemoteAddr returns the peer address for logging.
func (c *Conn) RemoteAddr() string {
	return c.nc.RemoteAddr().String()
}

// errProtocolViolation marks a client that sent a message illegal for the
// current phase of the connection.
var errProtocolViolation = errors.New("protocol violation")

// Client is one seated, logged-in player: the connection plus account and
// match assignment.
type Client struct {
	Conn *Conn
	User *model.User
	Deck *model.Deck
	Side model.PlayerSide
}
