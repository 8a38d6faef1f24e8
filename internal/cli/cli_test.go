package cli

import (
	"errors"
	"fmt"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/protocol"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("BAYOU_SERVER", "")
	t.Setenv("BAYOU_USERNAME", "")
	t.Setenv("BAYOU_DATA", "")

	cfg := DefaultConfig()
	assert.Equal(t, "localhost:9432", cfg.ServerAddr)
	assert.Empty(t, cfg.Username)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "text", cfg.Output)
}

func TestDefaultConfigReadsEnv(t *testing.T) {
	t.Setenv("BAYOU_SERVER", "example.com:1234")
	t.Setenv("BAYOU_USERNAME", "gumbo")
	t.Setenv("BAYOU_DATA", "/srv/bayou")

	cfg := DefaultConfig()
	assert.Equal(t, "example.com:1234", cfg.ServerAddr)
	assert.Equal(t, "gumbo", cfg.Username)
	assert.Equal(t, "/srv/bayou", cfg.DataDir)
}

func TestParseMove(t *testing.T) {
	msg, err := parseMove([]string{"4", "7", "4", "6"})
	require.NoError(t, err)
	assert.Equal(t, model.Move{
		From: model.Position{X: 4, Y: 7},
		To:   model.Position{X: 4, Y: 6},
	}, msg.Move)

	_, err = parseMove([]string{"4", "7"})
	assert.Error(t, err)
	_, err = parseMove([]string{"4", "7", "four", "6"})
	assert.Error(t, err)
}

func TestParsePlay(t *testing.T) {
	msg, err := parsePlay([]string{"2"})
	require.NoError(t, err)
	assert.Equal(t, protocol.PlayCard{HandIndex: 2}, msg)

	msg, err = parsePlay([]string{"0", "4", "7"})
	require.NoError(t, err)
	assert.Equal(t, protocol.PlayCard{
		HandIndex: 0,
		HasTarget: true,
		Target:    model.Position{X: 4, Y: 7},
	}, msg)

	_, err = parsePlay([]string{})
	assert.Error(t, err)
	_, err = parsePlay([]string{"-1"})
	assert.Error(t, err)
	_, err = parsePlay([]string{"0", "x", "7"})
	assert.Error(t, err)
}

func TestExitCodeDistinguishesTransportFailures(t *testing.T) {
	// Transport failures exit 2.
	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	assert.Equal(t, 2, exitCode(dialErr))
	assert.Equal(t, 2, exitCode(fmt.Errorf("connect to server: %w", dialErr)))
	assert.Equal(t, 2, exitCode(fmt.Errorf("read from server: %w", io.EOF)))
	assert.Equal(t, 2, exitCode(fmt.Errorf("read frame: %w", io.ErrUnexpectedEOF)))
	assert.Equal(t, 2, exitCode(net.ErrClosed))

	// Everything else exits 1.
	assert.Equal(t, 1, exitCode(errors.New("a username is required")))
	assert.Equal(t, 1, exitCode(fmt.Errorf("invalid deck: %w", errors.New("bad id"))))
}

func TestSquareGlyph(t *testing.T) {
	stats := &model.PieceStats{TypeName: "grunt", Symbol: "g", BaseAttack: 1, BaseHealth: 1}

	sq := model.NewSquare()
	assert.Equal(t, ".", squareGlyph(&sq))

	sq.SetController(model.PlayerOne)
	assert.Equal(t, "1", squareGlyph(&sq))
	sq.SetController(model.PlayerTwo)
	assert.Equal(t, "2", squareGlyph(&sq))

	sq.SetPiece(&model.Piece{Stats: stats, Side: model.PlayerOne})
	assert.Equal(t, "G", squareGlyph(&sq))
	sq.SetPiece(&model.Piece{Stats: stats, Side: model.PlayerTwo})
	assert.Equal(t, "g", squareGlyph(&sq))
}
