package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/protocol"
)

func newDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Deck commands",
	}

	cmd.AddCommand(newDeckShowCmd())
	cmd.AddCommand(newDeckSaveCmd())
	cmd.AddCommand(newDeckCollectionCmd())

	return cmd
}

func newDeckShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your current deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := Dial(cfg.ServerAddr, decoder)
			if err != nil {
				return err
			}
			defer client.Close()

			_, serialized, err := client.Login(cfg.Username)
			if err != nil {
				return err
			}
			deck, err := cardReg.ParseDeckString(serialized)
			if err != nil {
				return fmt.Errorf("server sent an unreadable deck: %w", err)
			}

			NewOutput(cfg.Output).PrintDeck(deck)
			return nil
		},
	}
}

func newDeckSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <deck-string>",
		Short: "Save a deck, e.g. \"1,1,2,...|101,102,103,104\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Parse locally first for a fast, readable failure.
			deck, err := cardReg.ParseDeckString(args[0])
			if err != nil {
				return err
			}
			if err := cardReg.ValidateDeckForPlay(deck); err != nil {
				return fmt.Errorf("deck is not playable: %w", err)
			}

			client, err := Dial(cfg.ServerAddr, decoder)
			if err != nil {
				return err
			}
			defer client.Close()

			if _, _, err := client.Login(cfg.Username); err != nil {
				return err
			}
			if err := client.Send(protocol.SaveDeck{Serialized: args[0]}); err != nil {
				return err
			}

			msg, err := client.Recv()
			if err != nil {
				return err
			}
			switch m := msg.(type) {
			case protocol.DeckSaved:
				NewOutput(cfg.Output).PrintMessage("Deck saved")
				return nil
			case protocol.ErrorMessage:
				return fmt.Errorf("server rejected deck: %s", m.Message)
			default:
				return fmt.Errorf("unexpected reply kind %d", msg.MessageKind())
			}
		},
	}
}

func newDeckCollectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collection",
		Short: "List every card the server knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := Dial(cfg.ServerAddr, decoder)
			if err != nil {
				return err
			}
			defer client.Close()

			collection, _, err := client.Login(cfg.Username)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintCollection(collection)
			return nil
		},
	}
}
