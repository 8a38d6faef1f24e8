package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func effectCard(id CardID) *Card {
	return &Card{
		ID:        id,
		Name:      "test effect",
		SteamCost: 1,
		Effect:    &Effect{Kind: EffectHeal, Magnitude: 1, Target: TargetSinglePiece},
	}
}

func pieceCard(id CardID, typeName string) *Card {
	return &Card{ID: id, Name: "test piece", SteamCost: 1, PieceType: typeName}
}

func TestPosition(t *testing.T) {
	assert.True(t, Position{X: 0, Y: 0}.InBounds())
	assert.True(t, Position{X: 7, Y: 7}.InBounds())
	assert.False(t, Position{X: 8, Y: 0}.InBounds())
	assert.False(t, Position{X: 0, Y: -1}.InBounds())
	assert.False(t, OffBoard.InBounds())

	p := Position{X: 3, Y: 3}.Add(Offset{DX: 1, DY: -1}, 2)
	assert.Equal(t, Position{X: 5, Y: 1}, p)
}

func TestSideOpponent(t *testing.T) {
	assert.Equal(t, PlayerTwo, PlayerOne.Opponent())
	assert.Equal(t, PlayerOne, PlayerTwo.Opponent())
	assert.Equal(t, Neutral, Neutral.Opponent())
}

func TestHandOrderingAndLimit(t *testing.T) {
	h := NewHand()
	for i := 1; i <= MaxHandSize; i++ {
		require.NoError(t, h.Add(effectCard(CardID(i))))
	}
	assert.ErrorIs(t, h.Add(effectCard(99)), ErrHandFull)

	// Removing the middle shifts the tail down one slot.
	removed, err := h.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, CardID(2), removed.ID)
	assert.Equal(t, []CardID{1, 3, 4}, h.IDs())

	_, err = h.RemoveAt(3)
	assert.ErrorIs(t, err, ErrInvalidHandIndex)
	_, err = h.RemoveAt(-1)
	assert.ErrorIs(t, err, ErrInvalidHandIndex)

	assert.Nil(t, h.Card(7))
	assert.Equal(t, CardID(3), h.Card(1).ID)
}

func TestDeckDrawsFromTail(t *testing.T) {
	d := NewDeck()
	d.AddToMain(effectCard(1))
	d.AddToMain(effectCard(2))
	d.AddToMain(effectCard(3))

	top, ok := d.PeekTop()
	require.True(t, ok)
	assert.Equal(t, CardID(3), top.ID)

	drawn, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, CardID(3), drawn.ID)
	assert.Equal(t, 2, d.Len())

	d.Draw()
	d.Draw()
	_, ok = d.Draw()
	assert.False(t, ok)
}

func TestDeckVictorySlots(t *testing.T) {
	d := NewDeck()
	d.Victory[0] = pieceCard(101, "totem")
	d.Victory[2] = pieceCard(103, "colossus")

	assert.Equal(t, []CardID{101, 0, 103, 0}, d.VictoryIDs())

	taken := d.TakeVictory(0)
	require.NotNil(t, taken)
	assert.Equal(t, CardID(101), taken.ID)
	assert.Nil(t, d.TakeVictory(0))
	assert.Nil(t, d.TakeVictory(-1))
	assert.Nil(t, d.TakeVictory(VictorySlots))
}

func TestSquareStickyControl(t *testing.T) {
	sq := NewSquare()
	assert.Equal(t, Neutral, sq.Controller())

	// Neutral square goes to the side with strictly greater influence.
	sq.SetInfluence(PlayerOne, 2)
	sq.SetInfluence(PlayerTwo, 2)
	sq.UpdateControllerFromInfluence()
	assert.Equal(t, Neutral, sq.Controller())

	sq.SetInfluence(PlayerOne, 3)
	sq.UpdateControllerFromInfluence()
	assert.Equal(t, PlayerOne, sq.Controller())

	// Control sticks when influence fades.
	sq.ResetInfluence()
	sq.UpdateControllerFromInfluence()
	assert.Equal(t, PlayerOne, sq.Controller())

	// A tie never dislodges the holder.
	sq.SetInfluence(PlayerOne, 1)
	sq.SetInfluence(PlayerTwo, 1)
	sq.UpdateControllerFromInfluence()
	assert.Equal(t, PlayerOne, sq.Controller())

	// Strictly greater opposing influence flips it.
	sq.SetInfluence(PlayerTwo, 2)
	sq.UpdateControllerFromInfluence()
	assert.Equal(t, PlayerTwo, sq.Controller())
}

func TestGameStateAccessorsFollowSide(t *testing.T) {
	gs := NewGameState()
	gs.Steam[0] = 7
	gs.Steam[1] = 2

	assert.Equal(t, 7, gs.SteamFor(PlayerOne))
	assert.Equal(t, 2, gs.SteamFor(PlayerTwo))
	assert.Same(t, gs.Hands[1], gs.Hand(PlayerTwo))
	assert.Same(t, gs.Decks[0], gs.Deck(PlayerOne))
}

func TestResultHelpers(t *testing.T) {
	assert.Equal(t, PlayerOne, ResultPlayerOneWin.WinnerSide())
	assert.Equal(t, PlayerTwo, ResultPlayerTwoWin.WinnerSide())
	assert.Equal(t, Neutral, ResultDraw.WinnerSide())
	assert.Equal(t, ResultPlayerOneWin, WinFor(PlayerOne))
	assert.Equal(t, ResultPlayerTwoWin, WinFor(PlayerTwo))
}
