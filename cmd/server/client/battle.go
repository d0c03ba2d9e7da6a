package client

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-arena/internal/handlers/arena/v1alpha1"
)

var chooseOpponentCmd = &cobra.Command{
	Use:   "choose [session-id] [opponent-id]",
	Short: "Choose the next opponent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodChooseOpponent, map[string]any{
			v1alpha1.FieldSessionID:  args[0],
			v1alpha1.FieldOpponentID: args[1],
		})
	},
}

var startBattleCmd = &cobra.Command{
	Use:   "start [session-id]",
	Short: "Start the battle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodStartBattle, sessionFields(args[0]))
	},
}

var progressBattleCmd = &cobra.Command{
	Use:   "progress [session-id]",
	Short: "Play one turn",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodProgressBattle, sessionFields(args[0]))
	},
}

var resetBattleCmd = &cobra.Command{
	Use:   "reset [session-id]",
	Short: "Restore both combatants and clear the log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodResetBattle, sessionFields(args[0]))
	},
}

var autoProgressCmd = &cobra.Command{
	Use:   "auto [session-id] [true|false]",
	Short: "Turn auto-advance on or off",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid flag value %q: %w", args[1], err)
		}
		return invoke(cmd, v1alpha1.MethodSetAutoProgress, map[string]any{
			v1alpha1.FieldSessionID: args[0],
			v1alpha1.FieldEnabled:   enabled,
		})
	},
}

var setSpeedCmd = &cobra.Command{
	Use:   "speed [session-id] [slow|normal|fast]",
	Short: "Change the auto-advance pace",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodSetSpeed, map[string]any{
			v1alpha1.FieldSessionID: args[0],
			v1alpha1.FieldSpeed:     args[1],
		})
	},
}

var deliverRewardsCmd = &cobra.Command{
	Use:   "rewards [session-id]",
	Short: "Credit undelivered victory gold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodDeliverRewards, sessionFields(args[0]))
	},
}

var watchBattleCmd = &cobra.Command{
	Use:   "watch [session-id]",
	Short: "Stream a session's log until the battle ends",
	Args:  cobra.ExactArgs(1),
	RunE:  watchBattle,
}

func watchBattle(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createArenaClient()
	if err != nil {
		return err
	}
	defer cleanup()

	req, err := structpb.NewStruct(sessionFields(args[0]))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	// the stream outlives --timeout, it ends with the battle or on interrupt
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	stream, err := client.WatchBattle(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to watch session: %w", err)
	}

	out := cmd.OutOrStdout()
	for {
		msg, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("watch failed: %w", err)
		}

		fields := msg.GetFields()
		if entry := fields["entry"].GetStructValue(); entry != nil {
			turn := int(entry.GetFields()["turn"].GetNumberValue())
			_, _ = fmt.Fprintf(out, "[turn %d] %s\n", turn, entry.GetFields()["message"].GetStringValue())
		}
		if session := fields["session"].GetStructValue(); session != nil {
			_, _ = fmt.Fprintf(out, "Watching %s (%s)\n",
				session.GetFields()["session_id"].GetStringValue(),
				session.GetFields()["state"].GetStringValue())
		}
		if state := fields["state"].GetStringValue(); state != "" {
			_, _ = fmt.Fprintf(out, "Battle over: %s\n", state)
			return nil
		}
	}
}
