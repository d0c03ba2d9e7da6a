package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/wallet"
)

var (
	simulateOpponent string
	simulateMaxTurns int
	simulateArena    arenaOptions
	simulateSeed     uint64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Fight one battle offline and print the log",
	Long: `Fight one battle without a server and print the log oldest first. Examples:

  simulate --opponent dark-wizard
  simulate --opponent ancient-dragon --seed 42`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simulateOpponent, "opponent", "forest-troll", "Opponent to fight")
	simulateCmd.Flags().IntVar(&simulateMaxTurns, "max-turns", 500, "Give up after this many turns")
	simulateCmd.Flags().StringVar(&simulateArena.rosterPath, "roster", "", "Roster YAML file, the bundled roster when empty")
	simulateCmd.Flags().Uint64Var(&simulateSeed, "seed", 0, "Seed the dice for a reproducible battle")
	simulateCmd.Flags().Int64Var(&simulateArena.startingGold, "starting-gold", wallet.DefaultStartingBalance, "Gold in a new wallet")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	simulateArena.seed = simulateSeed
	simulateArena.seeded = cmd.Flags().Changed("seed")
	service, cleanup, err := newArenaService(ctx, &simulateArena)
	if err != nil {
		return err
	}
	defer cleanup()

	created, err := service.CreateSession(ctx, &arena.CreateSessionInput{
		PlayerID:   "simulator",
		OpponentID: simulateOpponent,
	})
	if err != nil {
		return err
	}
	sessionID := created.Session.SessionID

	if _, err := service.StartBattle(ctx, &arena.StartBattleInput{SessionID: sessionID}); err != nil {
		return err
	}
	for turn := 0; turn < simulateMaxTurns; turn++ {
		out, err := service.ProgressBattle(ctx, &arena.ProgressBattleInput{SessionID: sessionID})
		if err != nil {
			return err
		}
		if !out.Progressed || out.Session.State.IsTerminal() {
			break
		}
	}

	final, err := service.GetSession(ctx, &arena.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return err
	}
	printBattle(cmd, final.Session, final.Balance)

	if !final.Session.State.IsTerminal() {
		return fmt.Errorf("battle still running after %d turns", simulateMaxTurns)
	}
	return nil
}

func printBattle(cmd *cobra.Command, snap *arena.Snapshot, balance int64) {
	out := cmd.OutOrStdout()

	for i := len(snap.Log) - 1; i >= 0; i-- {
		entry := snap.Log[i]
		_, _ = fmt.Fprintf(out, "[turn %2d] %s\n", entry.Turn, entry.Message)
	}

	_, _ = fmt.Fprintf(out, "\nResult: %s after %d turns\n", snap.State, snap.Turn)
	_, _ = fmt.Fprintf(out, "%s: %d/%d health, %d/%d mana\n",
		snap.Player.Name, snap.Player.Health, snap.Player.MaxHealth, snap.Player.Mana, snap.Player.MaxMana)
	if snap.Opponent != nil {
		_, _ = fmt.Fprintf(out, "%s: %d/%d health, %d/%d mana\n",
			snap.Opponent.Name, snap.Opponent.Health, snap.Opponent.MaxHealth, snap.Opponent.Mana, snap.Opponent.MaxMana)
	}
	_, _ = fmt.Fprintf(out, "Gold: %d\n", balance)
}
