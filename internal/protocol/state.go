package protocol

import (
	"fmt"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
)

// Game-state wire layout: activePlayer(u8), turnNumber(i32), then the 64
// squares in row-major order (y outer, x inner), each as
// hasPiece(bool) [side(u8) typeName(string) position(i32,i32) health(i32)
// attack(i32) hasMoved(bool)] controlP1(i32) controlP2(i32) controller(u8),
// then steamP1(i32) steamP2(i32), then both hands and both main piles as
// length-prefixed card id lists (PlayerOne first).

func writeGameState(w *Writer, gs *model.GameState) {
	w.Uint8(uint8(gs.ActivePlayer))
	w.Int32(int32(gs.TurnNumber))

	gs.Board.ForEachSquare(func(_ model.Position, sq *model.Square) {
		p := sq.Piece()
		w.Bool(p != nil)
		if p != nil {
			w.Uint8(uint8(p.Side))
			w.String(p.TypeName())
			writePosition(w, p.Position)
			w.Int32(int32(p.CurrentHealth))
			w.Int32(int32(p.Attack()))
			w.Bool(p.HasMoved)
		}
		w.Int32(int32(sq.Influence(model.PlayerOne)))
		w.Int32(int32(sq.Influence(model.PlayerTwo)))
		w.Uint8(uint8(sq.Controller()))
	})

	w.Int32(int32(gs.Steam[0]))
	w.Int32(int32(gs.Steam[1]))

	writeCardIDs(w, gs.Hands[0].IDs())
	writeCardIDs(w, gs.Hands[1].IDs())
	writeCardIDs(w, gs.Decks[0].MainIDs())
	writeCardIDs(w, gs.Decks[1].MainIDs())
}

func (d *Decoder) readGameState(r *Reader) (*model.GameState, error) {
	gs := model.NewGameState()
	gs.Phase = model.PhaseUninitialized
	gs.ActivePlayer = model.PlayerSide(r.Uint8())
	gs.TurnNumber = int(r.Int32())

	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			sq := gs.Board.At(x, y)
			if r.Bool() {
				side := model.PlayerSide(r.Uint8())
				typeName := r.String()
				pos := readPosition(r)
				health := int(r.Int32())
				r.Int32() // attack is derived from the archetype
				hasMoved := r.Bool()

				if r.Err() != nil {
					return nil, r.Err()
				}
				piece, err := d.Pieces.Create(typeName, side)
				if err != nil {
					return nil, fmt.Errorf("decode square (%d,%d): %w", x, y, err)
				}
				piece.Position = pos
				piece.CurrentHealth = health
				piece.HasMoved = hasMoved
				sq.SetPiece(piece)
			}
			sq.SetInfluence(model.PlayerOne, int(r.Int32()))
			sq.SetInfluence(model.PlayerTwo, int(r.Int32()))
			sq.SetController(model.PlayerSide(r.Uint8()))
		}
	}

	gs.Steam[0] = int(r.Int32())
	gs.Steam[1] = int(r.Int32())

	for i := 0; i < 2; i++ {
		ids, err := d.readCardIDs(r)
		if err != nil {
			return nil, fmt.Errorf("decode hand %d: %w", i+1, err)
		}
		for _, card := range ids {
			if err := gs.Hands[i].Add(card); err != nil {
				return nil, fmt.Errorf("decode hand %d: %w", i+1, err)
			}
		}
	}
	for i := 0; i < 2; i++ {
		ids, err := d.readCardIDs(r)
		if err != nil {
			return nil, fmt.Errorf("decode deck %d: %w", i+1, err)
		}
		for _, card := range ids {
			gs.Decks[i].AddToMain(card)
		}
	}

	if err := r.Err(); err != nil {
		return nil, err
	}
	return gs, nil
}

func writeCardIDs(w *Writer, ids []model.CardID) {
	w.Uint32(uint32(len(ids)))
	for _, id := range ids {
		w.Uint32(uint32(id))
	}
}

func (d *Decoder) readCardIDs(r *Reader) ([]*model.Card, error) {
	count := r.Uint32()
	if r.Err() != nil {
		return nil, r.Err()
	}
	if count > model.MainDeckSize+model.VictorySlots {
		return nil, fmt.Errorf("card list length %d exceeds limit", count)
	}
	out := make([]*model.Card, 0, count)
	for i := uint32(0); i < count; i++ {
		id := model.CardID(r.Uint32())
		if r.Err() != nil {
			return nil, r.Err()
		}
		card, ok := d.Cards.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: %d", model.ErrUnknownCardID, id)
		}
		out = append(out, card)
	}
	return out, nil
}
