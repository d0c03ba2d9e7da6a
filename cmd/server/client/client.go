// Package client provides commands that drive a running arena server over gRPC
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-arena/internal/handlers/arena/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the arena server",
	Long:  `Client commands drive a running arena server by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(listOpponentsCmd)

	// Session commands
	ClientCmd.AddCommand(createSessionCmd)
	ClientCmd.AddCommand(getSessionCmd)
	ClientCmd.AddCommand(endSessionCmd)

	// Battle commands
	ClientCmd.AddCommand(chooseOpponentCmd)
	ClientCmd.AddCommand(startBattleCmd)
	ClientCmd.AddCommand(progressBattleCmd)
	ClientCmd.AddCommand(resetBattleCmd)
	ClientCmd.AddCommand(autoProgressCmd)
	ClientCmd.AddCommand(setSpeedCmd)
	ClientCmd.AddCommand(deliverRewardsCmd)
	ClientCmd.AddCommand(watchBattleCmd)
}

// createArenaClient connects to the server
func createArenaClient() (*v1alpha1.ArenaServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewArenaServiceClient(conn), cleanup, nil
}

// invoke calls a unary method and prints the response
func invoke(cmd *cobra.Command, method string, fields map[string]any) error {
	client, cleanup, err := createArenaClient()
	if err != nil {
		return err
	}
	defer cleanup()

	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Call(ctx, method, req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	return printMessage(cmd, resp)
}

func printMessage(cmd *cobra.Command, msg *structpb.Struct) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
