package model

// Deck constants for play validation.
const (
	MainDeckSize     = 20
	MaxCopiesPerCard = 2
	VictorySlots     = 4
)

// Deck is a player's draw pile plus the fixed victory-card slots.
// The main pile is ordered; Draw removes from the tail ("top").
// Victory slots are never shuffled and each holds either nil or a piece card
// whose piece is a victory piece.
type Deck struct {
	Main    []*Card
	Victory [VictorySlots]*Card
}

// NewDeck returns an empty deck.
func NewDeck() *Deck {
	return &Deck{}
}

// Len returns the number of cards left in the main pile.
func (d *Deck) Len() int {
	return len(d.Main)
}

// Draw removes and returns the top (tail) card of the main pile.
func (d *Deck) Draw() (*Card, bool) {
	if len(d.Main) == 0 {
		return nil, false
	}
	card := d.Main[len(d.Main)-1]
	d.Main = d.Main[:len(d.Main)-1]
	return card, true
}

// PeekTop returns the top card without removing it.
func (d *Deck) PeekTop() (*Card, bool) {
	if len(d.Main) == 0 {
		return nil, false
	}
	return d.Main[len(d.Main)-1], true
}

// AddToMain appends a card to the top of the main pile.
func (d *Deck) AddToMain(card *Card) {
	d.Main = append(d.Main, card)
}

// TakeVictory removes and returns the card in the given victory slot.
func (d *Deck) TakeVictory(slot int) *Card {
	if slot < 0 || slot >= VictorySlots {
		return nil
	}
	card := d.Victory[slot]
	d.Victory[slot] = nil
	return card
}

// MainIDs returns the main-pile card ids in order.
func (d *Deck) MainIDs() []CardID {
	ids := make([]CardID, len(d.Main))
	for i, c := range d.Main {
		ids[i] = c.ID
	}
	return ids
}

// VictoryIDs returns the victory-slot card ids; 0 marks an empty slot.
func (d *Deck) VictoryIDs() []CardID {
	ids := make([]CardID, VictorySlots)
	for i, c := range d.Victory {
		if c != nil {
			ids[i] = c.ID
		}
	}
	return ids
}

// ValidateForPlay enforces the deck-construction rules: a full 20-card main
// pile with at most 2 copies of any id, and 4 distinct victory-piece cards
// that do not appear in the main pile.
func (d *Deck) ValidateForPlay() error {
	if len(d.Main) != MainDeckSize {
		return ErrDeckInvalid
	}
	copies := make(map[CardID]int)
	for _, c := range d.Main {
		copies[c.ID]++
		if copies[c.ID] > MaxCopiesPerCard {
			return ErrDeckInvalid
		}
	}
	seen := make(map[CardID]bool)
	for _, c := range d.Victory {
		if c == nil {
			return ErrDeckInvalid
		}
		if !c.IsPieceCard() {
			return ErrDeckInvalid
		}
		if seen[c.ID] || copies[c.ID] > 0 {
			return ErrDeckInvalid
		}
		seen[c.ID] = true
	}
	return nil
}
