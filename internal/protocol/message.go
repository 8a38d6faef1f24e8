package protocol

import (
	"fmt"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
)

// Kind is the single-byte message discriminator, the first field of every
// frame.
type Kind uint8

// Client-to-server message kinds.
const (
	KindUserLogin Kind = iota + 1
	KindRequestMatchmaking
	KindSaveDeck
	KindMoveToServer
	KindPlayCard
	KindResign
	KindHeartbeatResponse
)

// Server-to-client message kinds.
const (
	KindConnectionAccepted Kind = iota + 32
	KindPlayerAssignment
	KindCardCollectionData
	KindDeckData
	KindWaitingForOpponent
	KindGameStart
	KindGameStateUpdate
	KindTurnChange
	KindMoveRejected
	KindCardPlayRejected
	KindDeckSaved
	KindGameOver
	KindServerFull
	KindHeartbeatRequest
	KindError
)

// Message is one logical protocol message.
type Message interface {
	MessageKind() Kind
}

// Client-to-server messages.

type UserLogin struct {
	Username string
}

type RequestMatchmaking struct{}

type SaveDeck struct {
	Serialized string
}

type MoveToServer struct {
	Move model.Move
}

type PlayCard struct {
	HandIndex uint32
	HasTarget bool
	Target    model.Position
}

type Resign struct{}

type HeartbeatResponse struct{}

// Server-to-client messages.

type ConnectionAccepted struct{}

type PlayerAssignment struct {
	Side model.PlayerSide
}

type CardCollectionData struct {
	Data string
}

type DeckData struct {
	Data string
}

type WaitingForOpponent struct{}

type GameStart struct {
	P1Username string
	P1Rating   int32
	P2Username string
	P2Rating   int32
	State      *model.GameState
}

type GameStateUpdate struct {
	State *model.GameState
}

type TurnChange struct {
	ActivePlayer model.PlayerSide
	TurnNumber   int32
}

type MoveRejected struct {
	Reason string
}

type CardPlayRejected struct {
	Reason string
}

type DeckSaved struct{}

type GameOver struct {
	Winner  model.PlayerSide
	Result  uint8
	DeltaP1 int32
	DeltaP2 int32
}

type ServerFull struct{}

type HeartbeatRequest struct{}

type ErrorMessage struct {
	Message string
}

func (UserLogin) MessageKind() Kind          { return KindUserLogin }
func (RequestMatchmaking) MessageKind() Kind { return KindRequestMatchmaking }
func (SaveDeck) MessageKind() Kind           { return KindSaveDeck }
func (MoveToServer) MessageKind() Kind       { return KindMoveToServer }
func (PlayCard) MessageKind() Kind           { return KindPlayCard }
func (Resign) MessageKind() Kind             { return KindResign }
func (HeartbeatResponse) MessageKind() Kind  { return KindHeartbeatResponse }
func (ConnectionAccepted) MessageKind() Kind { return KindConnectionAccepted }
func (PlayerAssignment) MessageKind() Kind   { return KindPlayerAssignment }
func (CardCollectionData) MessageKind() Kind { return KindCardCollectionData }
func (DeckData) MessageKind() Kind           { return KindDeckData }
func (WaitingForOpponent) MessageKind() Kind { return KindWaitingForOpponent }
func (GameStart) MessageKind() Kind          { return KindGameStart }
func (GameStateUpdate) MessageKind() Kind    { return KindGameStateUpdate }
func (TurnChange) MessageKind() Kind         { return KindTurnChange }
func (MoveRejected) MessageKind() Kind       { return KindMoveRejected }
func (CardPlayRejected) MessageKind() Kind   { return KindCardPlayRejected }
func (DeckSaved) MessageKind() Kind          { return KindDeckSaved }
func (GameOver) MessageKind() Kind           { return KindGameOver }
func (ServerFull) MessageKind() Kind         { return KindServerFull }
func (HeartbeatRequest) MessageKind() Kind   { return KindHeartbeatRequest }
func (ErrorMessage) MessageKind() Kind       { return KindError }

// Result byte values used in the GameOver message.
const (
	ResultByteInProgress uint8 = iota
	ResultBytePlayerOneWin
	ResultBytePlayerTwoWin
	ResultByteDraw
)

// ResultToByte maps a model result to its wire value.
func ResultToByte(r model.Result) uint8 {
	switch r {
	case model.ResultPlayerOneWin:
		return ResultBytePlayerOneWin
	case model.ResultPlayerTwoWin:
		return ResultBytePlayerTwoWin
	case model.ResultDraw:
		return ResultByteDraw
	default:
		return ResultByteInProgress
	}
}

// Encode serializes a message into a frame payload (kind byte + fields).
func Encode(msg Message) ([]byte, error) {
	w := &Writer{}
	w.Uint8(uint8(msg.MessageKind()))

	switch m := msg.(type) {
	case UserLogin:
		w.String(m.Username)
	case RequestMatchmaking, Resign, HeartbeatResponse,
		ConnectionAccepted, WaitingForOpponent, DeckSaved,
		ServerFull, HeartbeatRequest:
		// Kind byte only.
	case SaveDeck:
		w.String(m.Serialized)
	case MoveToServer:
		writeMove(w, m.Move)
	case PlayCard:
		w.Uint32(m.HandIndex)
		w.Bool(m.HasTarget)
		if m.HasTarget {
			writePosition(w, m.Target)
		}
	case PlayerAssignment:
		w.Uint8(uint8(m.Side))
	case CardCollectionData:
		w.String(m.Data)
	case DeckData:
		w.String(m.Data)
	case GameStart:
		w.String(m.P1Username)
		w.Int32(m.P1Rating)
		w.String(m.P2Username)
		w.Int32(m.P2Rating)
		writeGameState(w, m.State)
	case GameStateUpdate:
		writeGameState(w, m.State)
	case TurnChange:
		w.Uint8(uint8(m.ActivePlayer))
		w.Int32(m.TurnNumber)
	case MoveRejected:
		w.String(m.Reason)
	case CardPlayRejected:
		w.String(m.Reason)
	case GameOver:
		w.Uint8(uint8(m.Winner))
		w.Uint8(m.Result)
		w.Int32(m.DeltaP1)
		w.Int32(m.DeltaP2)
	case ErrorMessage:
		w.String(m.Message)
	default:
		return nil, fmt.Errorf("encode: unsupported message type %T", msg)
	}

	return w.Bytes(), nil
}

// PieceFactory instantiates pieces during game-state decoding. The factory is
// threaded through the call site; there is no process-global slot.
type PieceFactory interface {
	Create(typeName string, side model.PlayerSide) (*model.Piece, error)
}

// CardResolver resolves card ids during game-state decoding.
type CardResolver interface {
	Lookup(id model.CardID) (*model.Card, bool)
}

// Decoder decodes frame payloads into messages. Pieces and cards inside game
// states are rebuilt through the supplied factory and resolver.
type Decoder struct {
	Pieces PieceFactory
	Cards  CardResolver
}

// Decode parses one frame payload.
func (d *Decoder) Decode(payload []byte) (Message, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("decode: empty frame")
	}
	r := NewReader(payload)
	kind := Kind(r.Uint8())

	var msg Message
	switch kind {
	case KindUserLogin:
		msg = UserLogin{Username: r.String()}
	case KindRequestMatchmaking:
		msg = RequestMatchmaking{}
	case KindSaveDeck:
		msg = SaveDeck{Serialized: r.String()}
	case KindMoveToServer:
		msg = MoveToServer{Move: readMove(r)}
	case KindPlayCard:
		m := PlayCard{HandIndex: r.Uint32(), HasTarget: r.Bool()}
		if m.HasTarget {
			m.Target = readPosition(r)
		}
		msg = m
	case KindResign:
		msg = Resign{}
	case KindHeartbeatResponse:
		msg = HeartbeatResponse{}
	case KindConnectionAccepted:
		msg = ConnectionAccepted{}
	case KindPlayerAssignment:
		msg = PlayerAssignment{Side: model.PlayerSide(r.Uint8())}
	case KindCardCollectionData:
		msg = CardCollectionData{Data: r.String()}
	case KindDeckData:
		msg = DeckData{Data: r.String()}
	case KindWaitingForOpponent:
		msg = WaitingForOpponent{}
	case KindGameStart:
		m := GameStart{
			P1Username: r.String(),
			P1Rating:   r.Int32(),
			P2Username: r.String(),
			P2Rating:   r.Int32(),
		}
		state, err := d.readGameState(r)
		if err != nil {
			return nil, err
		}
		m.State = state
		msg = m
	case KindGameStateUpdate:
		state, err := d.readGameState(r)
		if err != nil {
			return nil, err
		}
		msg = GameStateUpdate{State: state}
	case KindTurnChange:
		msg = TurnChange{ActivePlayer: model.PlayerSide(r.Uint8()), TurnNumber: r.Int32()}
	case KindMoveRejected:
		msg = MoveRejected{Reason: r.String()}
	case KindCardPlayRejected:
		msg = CardPlayRejected{Reason: r.String()}
	case KindDeckSaved:
		msg = DeckSaved{}
	case KindGameOver:
		msg = GameOver{
			Winner:  model.PlayerSide(r.Uint8()),
			Result:  r.Uint8(),
			DeltaP1: r.Int32(),
			DeltaP2: r.Int32(),
		}
	case KindServerFull:
		msg = ServerFull{}
	case KindHeartbeatRequest:
		msg = HeartbeatRequest{}
	case KindError:
		msg = ErrorMessage{Message: r.String()}
	default:
		return nil, fmt.Errorf("decode: unknown message kind %d", kind)
	}

	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("decode %d: %w", kind, err)
	}
	return msg, nil
}

func writePosition(w *Writer, p model.Position) {
	w.Int32(int32(p.X))
	w.Int32(int32(p.Y))
}

func readPosition(r *Reader) model.Position {
	return model.Position{X: int(r.Int32()), Y: int(r.Int32())}
}

func writeMove(w *Writer, m model.Move) {
	writePosition(w, m.From)
	writePosition(w, m.To)
}

func readMove(r *Reader) model.Move {
	return model.Move{From: readPosition(r), To: readPosition(r)}
}
