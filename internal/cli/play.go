package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/protocol"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Queue for a match and play it interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := Dial(cfg.ServerAddr, decoder)
			if err != nil {
				return err
			}
			defer client.Close()

			if _, _, err := client.Login(cfg.Username); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			game := &playSession{client: client, out: out, stdin: bufio.NewScanner(os.Stdin)}
			return game.run()
		},
	}
}

// playSession holds the client-side view of one match.
type playSession struct {
	client *Client
	out    *Output
	stdin  *bufio.Scanner

	seat  model.PlayerSide
	state *model.GameState
}

func (p *playSession) run() error {
	if err := p.client.Send(protocol.RequestMatchmaking{}); err != nil {
		return err
	}

	if err := p.awaitStart(); err != nil {
		return err
	}

	for {
		p.out.PrintGameState(p.state, p.seat)

		if p.state.ActivePlayer == p.seat {
			quit, err := p.takeTurn()
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		} else {
			p.out.PrintMessage("Waiting for opponent...")
		}

		done, err := p.awaitNextTurn()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// awaitStart consumes the matchmaking and match-start messages.
func (p *playSession) awaitStart() error {
	for {
		msg, err := p.client.Recv()
		if err != nil {
			return err
		}
		switch m := msg.(type) {
		case protocol.WaitingForOpponent:
			p.out.PrintMessage("Waiting for an opponent...")
		case protocol.PlayerAssignment:
			p.seat = m.Side
		case protocol.GameStart:
			p.out.PrintMessage(fmt.Sprintf("Match found: %s (%d) vs %s (%d). You are %s.",
				m.P1Username, m.P1Rating, m.P2Username, m.P2Rating, p.seat))
			p.state = m.State
			return nil
		case protocol.ErrorMessage:
			return fmt.Errorf("server error: %s", m.Message)
		default:
			return fmt.Errorf("unexpected message kind %d before match start", msg.MessageKind())
		}
	}
}

// takeTurn prompts until the player enters an action the server accepts.
// Returns true if the player quit the client.
func (p *playSession) takeTurn() (bool, error) {
	for {
		fmt.Print("> ")
		if !p.stdin.Scan() {
			return true, p.stdin.Err()
		}
		fields := strings.Fields(p.stdin.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			p.printHelp()
			continue
		case "quit":
			return true, nil
		case "resign":
			return false, p.client.Send(protocol.Resign{})
		case "move":
			msg, err := parseMove(fields[1:])
			if err != nil {
				p.out.PrintError(err)
				continue
			}
			if err := p.client.Send(msg); err != nil {
				return false, err
			}
		case "play":
			msg, err := parsePlay(fields[1:])
			if err != nil {
				p.out.PrintError(err)
				continue
			}
			if err := p.client.Send(msg); err != nil {
				return false, err
			}
		default:
			p.out.PrintError(fmt.Errorf("unknown command %q (try 'help')", fields[0]))
			continue
		}

		rejected, err := p.awaitActionOutcome()
		if err != nil {
			return false, err
		}
		if !rejected {
			return false, nil
		}
	}
}

// awaitActionOutcome reads the server's verdict on a submitted action.
// Returns true when the action was rejected and the player should retry.
func (p *playSession) awaitActionOutcome() (bool, error) {
	for {
		msg, err := p.client.Recv()
		if err != nil {
			return false, err
		}
		switch m := msg.(type) {
		case protocol.MoveRejected:
			p.out.PrintError(fmt.Errorf("move rejected: %s", m.Reason))
			return true, nil
		case protocol.CardPlayRejected:
			p.out.PrintError(fmt.Errorf("card rejected: %s", m.Reason))
			return true, nil
		case protocol.GameStateUpdate:
			p.state = m.State
			return false, nil
		case protocol.ErrorMessage:
			return false, fmt.Errorf("server error: %s", m.Message)
		default:
			return false, fmt.Errorf("unexpected message kind %d", msg.MessageKind())
		}
	}
}

// awaitNextTurn consumes broadcasts until it is someone's turn again or the
// game ends. Returns true when the match is over.
func (p *playSession) awaitNextTurn() (bool, error) {
	for {
		msg, err := p.client.Recv()
		if err != nil {
			return false, err
		}
		switch m := msg.(type) {
		case protocol.GameStateUpdate:
			p.state = m.State
		case protocol.TurnChange:
			p.state.ActivePlayer = m.ActivePlayer
			p.state.TurnNumber = int(m.TurnNumber)
			return false, nil
		case protocol.GameOver:
			p.printGameOver(m)
			return true, nil
		case protocol.ErrorMessage:
			return false, fmt.Errorf("server error: %s", m.Message)
		default:
			return false, fmt.Errorf("unexpected message kind %d", msg.MessageKind())
		}
	}
}

func (p *playSession) printGameOver(m protocol.GameOver) {
	switch {
	case m.Result == protocol.ResultByteDraw:
		p.out.PrintMessage("Game over: draw.")
	case m.Winner == p.seat:
		p.out.PrintMessage("Game over: you win!")
	default:
		p.out.PrintMessage("Game over: you lose.")
	}
	myDelta := m.DeltaP1
	if p.seat == model.PlayerTwo {
		myDelta = m.DeltaP2
	}
	p.out.PrintMessage(fmt.Sprintf("Rating change: %+d", myDelta))
}

func (p *playSession) printHelp() {
	fmt.Println(`Commands:
  move <fromX> <fromY> <toX> <toY>   move a piece
  play <handIndex> [<x> <y>]         play a card, with a target square if needed
  resign                             concede the game
  quit                               leave the client (forfeits an active game)
  help                               show this help`)
}

func parseMove(args []string) (protocol.MoveToServer, error) {
	if len(args) != 4 {
		return protocol.MoveToServer{}, fmt.Errorf("usage: move <fromX> <fromY> <toX> <toY>")
	}
	coords := make([]int, 4)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return protocol.MoveToServer{}, fmt.Errorf("invalid coordinate %q", a)
		}
		coords[i] = v
	}
	return protocol.MoveToServer{Move: model.Move{
		From: model.Position{X: coords[0], Y: coords[1]},
		To:   model.Position{X: coords[2], Y: coords[3]},
	}}, nil
}

func parsePlay(args []string) (protocol.PlayCard, error) {
	if len(args) != 1 && len(args) != 3 {
		return protocol.PlayCard{}, fmt.Errorf("usage: play <handIndex> [<x> <y>]")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 0 {
		return protocol.PlayCard{}, fmt.Errorf("invalid hand index %q", args[0])
	}
	msg := protocol.PlayCard{HandIndex: uint32(index)}
	if len(args) == 3 {
		x, errX := strconv.Atoi(args[1])
		y, errY := strconv.Atoi(args[2])
		if errX != nil || errY != nil {
			return protocol.PlayCard{}, fmt.Errorf("invalid target square")
		}
		msg.HasTarget = true
		msg.Target = model.Position{X: x, Y: y}
	}
	return msg, nil
}
