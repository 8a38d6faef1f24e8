package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintGameState renders the full view of a match from one seat's
// perspective: board, steam, and that seat's hand.
func (o *Output) PrintGameState(gs *model.GameState, seat model.PlayerSide) {
	if o.format == "json" {
		o.printJSON(gameStateSummary(gs, seat))
		return
	}

	fmt.Printf("Turn %d - %s to act (%s phase)\n", gs.TurnNumber, gs.ActivePlayer, gs.Phase)
	o.printBoard(gs.Board)
	fmt.Printf("Steam: you %d, opponent %d\n",
		gs.SteamFor(seat), gs.SteamFor(seat.Opponent()))
	fmt.Printf("Deck: %d cards left\n", gs.Deck(seat).Len())

	hand := gs.Hand(seat)
	if hand.Len() == 0 {
		fmt.Println("Hand: empty")
		return
	}
	fmt.Println("Hand:")
	for i, c := range hand.Cards() {
		fmt.Printf("  [%d] %s (cost %d) - %s\n", i, c.Name, c.SteamCost, c.Description)
	}
}

func (o *Output) printBoard(board *model.GameBoard) {
	fmt.Print("    ")
	for x := 0; x < model.BoardSize; x++ {
		fmt.Printf(" %d ", x)
	}
	fmt.Println()

	fmt.Print("   +")
	fmt.Print(strings.Repeat("---", model.BoardSize))
	fmt.Println("+")

	for y := 0; y < model.BoardSize; y++ {
		fmt.Printf(" %d |", y)
		for x := 0; x < model.BoardSize; x++ {
			sq := board.At(x, y)
			fmt.Printf(" %s ", squareGlyph(sq))
		}
		fmt.Println("|")
	}

	fmt.Print("   +")
	fmt.Print(strings.Repeat("---", model.BoardSize))
	fmt.Println("+")
	fmt.Println("    uppercase = player one, lowercase = player two, ./1/2 = square control")
}

// squareGlyph renders one square: the piece symbol cased by owner, or the
// controller of an empty square.
func squareGlyph(sq *model.Square) string {
	if p := sq.Piece(); p != nil {
		symbol := p.Stats.Symbol
		if p.Side == model.PlayerOne {
			return strings.ToUpper(symbol)
		}
		return strings.ToLower(symbol)
	}
	switch sq.Controller() {
	case model.PlayerOne:
		return "1"
	case model.PlayerTwo:
		return "2"
	default:
		return "."
	}
}

// PrintDeck renders a deck's contents with card names.
func (o *Output) PrintDeck(deck *model.Deck) {
	if o.format == "json" {
		o.printJSON(map[string]any{
			"main":    deck.MainIDs(),
			"victory": deck.VictoryIDs(),
		})
		return
	}

	fmt.Printf("Main pile (%d cards):\n", deck.Len())
	counts := make(map[model.CardID]int)
	var order []*model.Card
	for _, c := range deck.Main {
		if counts[c.ID] == 0 {
			order = append(order, c)
		}
		counts[c.ID]++
	}
	for _, c := range order {
		fmt.Printf("  %dx %s (id %d, cost %d)\n", counts[c.ID], c.Name, c.ID, c.SteamCost)
	}

	fmt.Println("Victory slots:")
	for i, c := range deck.Victory {
		if c == nil {
			fmt.Printf("  [%d] empty\n", i)
		} else {
			fmt.Printf("  [%d] %s (id %d)\n", i, c.Name, c.ID)
		}
	}
}

// PrintCollection renders the catalogue JSON the server sent.
func (o *Output) PrintCollection(collectionJSON string) {
	type wireCard struct {
		ID        uint32 `json:"id"`
		Name      string `json:"name"`
		SteamCost int    `json:"steamCost"`
		Rarity    string `json:"rarity"`
		PieceType string `json:"pieceType"`
	}
	var collection []wireCard
	if err := json.Unmarshal([]byte(collectionJSON), &collection); err != nil {
		o.PrintError(fmt.Errorf("parse card collection: %w", err))
		return
	}

	if o.format == "json" {
		o.printJSON(collection)
		return
	}

	fmt.Printf("Card collection (%d cards):\n", len(collection))
	for _, c := range collection {
		kind := "effect"
		if c.PieceType != "" {
			kind = "piece: " + c.PieceType
		}
		fmt.Printf("  %3d  %-20s cost %d  %-9s (%s)\n", c.ID, c.Name, c.SteamCost, c.Rarity, kind)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func gameStateSummary(gs *model.GameState, seat model.PlayerSide) map[string]any {
	type pieceView struct {
		Type   string `json:"type"`
		Side   string `json:"side"`
		X      int    `json:"x"`
		Y      int    `json:"y"`
		Health int    `json:"health"`
		Attack int    `json:"attack"`
	}
	var pieces []pieceView
	for _, p := range gs.Board.Pieces() {
		pieces = append(pieces, pieceView{
			Type:   p.TypeName(),
			Side:   p.Side.String(),
			X:      p.Position.X,
			Y:      p.Position.Y,
			Health: p.CurrentHealth,
			Attack: p.Attack(),
		})
	}
	return map[string]any{
		"turn":          gs.TurnNumber,
		"phase":         gs.Phase,
		"active_player": gs.ActivePlayer.String(),
		"steam":         gs.SteamFor(seat),
		"hand":          gs.Hand(seat).IDs(),
		"deck_size":     gs.Deck(seat).Len(),
		"pieces":        pieces,
	}
}
