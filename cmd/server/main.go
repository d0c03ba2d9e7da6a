// Package main is the entry point for the arena server and its tools
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/cmd/server/client"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "rpg-arena",
	Short: "Turn-based auto-battle arena",
	Long: `RPG Arena pits a player against a roster of opponents in turn-based auto battles,
served over gRPC, a JSON API and an SSH spectator terminal.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(client.ClientCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
