package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/handlers/arena/v1alpha1"
)

var (
	createOpponent string
	createSpeed    string
)

var listOpponentsCmd = &cobra.Command{
	Use:   "opponents",
	Short: "List the opponents a session can fight",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd, v1alpha1.MethodListOpponents, map[string]any{})
	},
}

var createSessionCmd = &cobra.Command{
	Use:   "create [player-id]",
	Short: "Open a battle session for a player",
	Long: `Open a battle session. Examples:

  create player-1
  create player-1 --opponent forest-troll --speed fast`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodCreateSession, map[string]any{
			v1alpha1.FieldPlayerID:   args[0],
			v1alpha1.FieldOpponentID: createOpponent,
			v1alpha1.FieldSpeed:      createSpeed,
		})
	},
}

var getSessionCmd = &cobra.Command{
	Use:   "get [session-id]",
	Short: "Show a session and the player's gold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodGetSession, sessionFields(args[0]))
	},
}

var endSessionCmd = &cobra.Command{
	Use:   "end [session-id]",
	Short: "Close a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodEndSession, sessionFields(args[0]))
	},
}

func init() {
	createSessionCmd.Flags().StringVar(&createOpponent, "opponent", "", "Opponent to choose right away")
	createSessionCmd.Flags().StringVar(&createSpeed, "speed", "", "Auto-advance speed (slow, normal, fast)")
}

func sessionFields(sessionID string) map[string]any {
	return map[string]any{v1alpha1.FieldSessionID: sessionID}
}
