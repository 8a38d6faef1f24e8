package cli

import (
	"fmt"
	"net"
	"time"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/protocol"
)

const dialTimeout = 10 * time.Second

// Client is a framed binary-protocol connection to a game server. It is used
// synchronously: commands drive the conversation and know which message kinds
// to expect next.
type Client struct {
	conn    net.Conn
	decoder *protocol.Decoder
}

// Dial connects to the server and waits for its greeting.
func Dial(addr string, decoder *protocol.Decoder) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	c := &Client{conn: conn, decoder: decoder}

	msg, err := c.Recv()
	if err != nil {
		c.Close()
		return nil, err
	}
	switch msg.(type) {
	case protocol.ConnectionAccepted:
		return c, nil
	case protocol.ServerFull:
		c.Close()
		return nil, fmt.Errorf("server is full, try again later")
	default:
		c.Close()
		return nil, fmt.Errorf("unexpected greeting kind %d", msg.MessageKind())
	}
}

// Send writes one framed message.
func (c *Client) Send(msg protocol.Message) error {
	payload, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	return protocol.WriteFrame(c.conn, payload)
}

// Recv blocks for the next message. Heartbeat pings are answered in place and
// never surfaced.
func (c *Client) Recv() (protocol.Message, error) {
	for {
		payload, err := protocol.ReadFrame(c.conn)
		if err != nil {
			return nil, fmt.Errorf("read from server: %w", err)
		}
		msg, err := c.decoder.Decode(payload)
		if err != nil {
			return nil, fmt.Errorf("decode server message: %w", err)
		}
		if _, isPing := msg.(protocol.HeartbeatRequest); isPing {
			if err := c.Send(protocol.HeartbeatResponse{}); err != nil {
				return nil, err
			}
			continue
		}
		return msg, nil
	}
}

// Login performs the login exchange and returns the card catalogue JSON and
// the serialized current deck.
func (c *Client) Login(username string) (collection, deck string, err error) {
	if err := c.Send(protocol.UserLogin{Username: username}); err != nil {
		return "", "", err
	}

	msg, err := c.Recv()
	if err != nil {
		return "", "", err
	}
	if e, isErr := msg.(protocol.ErrorMessage); isErr {
		return "", "", fmt.Errorf("login rejected: %s", e.Message)
	}
	coll, ok := msg.(protocol.CardCollectionData)
	if !ok {
		return "", "", fmt.Errorf("expected card collection, got kind %d", msg.MessageKind())
	}

	msg, err = c.Recv()
	if err != nil {
		return "", "", err
	}
	deckMsg, ok := msg.(protocol.DeckData)
	if !ok {
		return "", "", fmt.Errorf("expected deck data, got kind %d", msg.MessageKind())
	}
	return coll.Data, deckMsg.Data, nil
}

// Close shuts the connection down.
func (c *Client) Close() {
	_ = c.conn.Close()
}
