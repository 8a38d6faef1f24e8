package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bayoubonanza/bayou-bonanza-go/internal/protocol"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/cards"
	"github.com/bayoubonanza/bayou-bonanza-go/internal/services/piece"
)

var (
	cfg     *Config
	decoder *protocol.Decoder
	cardReg *cards.Registry
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "bayou",
		Short: "Client for the Bayou Bonanza game server",
		Long: `bayou is a terminal client for the Bayou Bonanza game server.

It speaks the server's framed binary protocol directly: log in, edit your
deck, queue for a match and play it from the terminal.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Username == "" {
				return fmt.Errorf("a username is required (--username or BAYOU_USERNAME)")
			}

			// The client decodes game states against the same data files
			// the server loads.
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
			}
			pieceReg, err := piece.LoadRegistry(filepath.Join(cfg.DataDir, "pieces.json"), logger)
			if err != nil {
				return err
			}
			cardReg, err = cards.LoadRegistry(filepath.Join(cfg.DataDir, "cards.json"), pieceReg, logger)
			if err != nil {
				return err
			}
			decoder = &protocol.Decoder{Pieces: pieceReg, Cards: cardReg}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerAddr, "server", cfg.ServerAddr, "Server address (env: BAYOU_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Username, "username", "u", cfg.Username, "Username to log in as (env: BAYOU_USERNAME)")
	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory holding pieces.json and cards.json (env: BAYOU_DATA)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newDeckCmd())

	return rootCmd
}

// Execute runs the root command. Exit status is 0 on success, 1 for usage and
// application failures, 2 when the server connection failed or dropped.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode classifies a command failure: transport errors (failed dial, reset
// or closed connection, truncated frame) get 2, everything else 1.
func exitCode(err error) int {
	var opErr *net.OpError
	if errors.As(err, &opErr) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return 2
	}
	return 1
}
