package model

// MaxHandSize bounds how many cards a player may hold.
const MaxHandSize = 4

// Hand is an ordered, bounded sequence of cards. Indices are stable between
// plays: removing index i shifts the tail down by one, adds append at the end.
type Hand struct {
	cards []*Card
}

// NewHand returns an empty hand.
func NewHand() *Hand {
	return &Hand{}
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// Add appends a card at the end of the hand.
func (h *Hand) Add(card *Card) error {
	if len(h.cards) >= MaxHandSize {
		return ErrHandFull
	}
	h.cards = append(h.cards, card)
	return nil
}

// Card returns the card at index i without removing it, or nil if out of range.
func (h *Hand) Card(i int) *Card {
	if i < 0 || i >= len(h.cards) {
		return nil
	}
	return h.cards[i]
}

// RemoveAt removes and returns the card at index i, shifting the tail down.
func (h *Hand) RemoveAt(i int) (*Card, error) {
	if i < 0 || i >= len(h.cards) {
		return nil, ErrInvalidHandIndex
	}
	card := h.cards[i]
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	return card, nil
}

// Cards returns the hand contents in order. The slice is a copy.
func (h *Hand) Cards() []*Card {
	out := make([]*Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// IDs returns the card ids in hand order.
func (h *Hand) IDs() []CardID {
	ids := make([]CardID, len(h.cards))
	for i, c := range h.cards {
		ids[i] = c.ID
	}
	return ids
}
