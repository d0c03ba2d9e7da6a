package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-arena/internal/handlers/arena/v1alpha1"
	"github.com/KirkDiggler/rpg-arena/internal/handlers/rest"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/wallet"
	"github.com/KirkDiggler/rpg-arena/internal/spectator"
)

const shutdownTimeout = 30 * time.Second

var (
	grpcPort    int
	httpPort    int
	sshPort     int
	sshHostKey  string
	serverArena arenaOptions
	serverSeed  uint64
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the arena server",
	Long:  `Start the gRPC API, the JSON API for the dashboard and the SSH spectator.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().IntVar(&httpPort, "http-port", 8080, "HTTP server port, 0 disables the JSON API")
	serverCmd.Flags().IntVar(&sshPort, "ssh-port", 2222, "SSH spectator port, 0 disables the spectator")
	serverCmd.Flags().StringVar(&sshHostKey, "ssh-host-key", "", "SSH host key file, generated when empty")
	serverCmd.Flags().StringVar(&serverArena.redisAddr, "redis-addr", "", "Redis address for the wallet, in-memory when empty")
	serverCmd.Flags().StringVar(&serverArena.rosterPath, "roster", "", "Roster YAML file, the bundled roster when empty")
	serverCmd.Flags().Uint64Var(&serverSeed, "seed", 0, "Seed the dice for reproducible battles")
	serverCmd.Flags().Int64Var(&serverArena.startingGold, "starting-gold", wallet.DefaultStartingBalance, "Gold in a new wallet")
}

func runServer(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverArena.seed = serverSeed
	serverArena.seeded = cmd.Flags().Changed("seed")
	arenaService, cleanup, err := newArenaService(ctx, &serverArena)
	if err != nil {
		return err
	}
	defer cleanup()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	arenaHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		ArenaService: arenaService,
	})
	if err != nil {
		return fmt.Errorf("failed to create arena handler: %w", err)
	}
	v1alpha1.RegisterArenaServiceServer(srv, arenaHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 3)
	go func() {
		slog.Info("gRPC server starting", "port", grpcPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve grpc: %w", err)
		}
	}()

	var httpServer *http.Server
	if httpPort != 0 {
		restHandler, err := rest.NewHandler(&rest.HandlerConfig{ArenaService: arenaService})
		if err != nil {
			return fmt.Errorf("failed to create rest handler: %w", err)
		}
		httpServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", httpPort),
			Handler:           rest.NewRouter(restHandler),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("HTTP server starting", "port", httpPort)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("failed to serve http: %w", err)
			}
		}()
	}

	var sshServer *spectator.Server
	if sshPort != 0 {
		sshServer, err = spectator.New(&spectator.Config{
			Addr:         fmt.Sprintf(":%d", sshPort),
			HostKeyFile:  sshHostKey,
			ArenaService: arenaService,
		})
		if err != nil {
			return fmt.Errorf("failed to create spectator: %w", err)
		}
		go func() {
			if err := sshServer.ListenAndServe(); err != nil {
				errChan <- fmt.Errorf("failed to serve ssh: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal, gracefully stopping")
	case err := <-errChan:
		slog.Error("Server failed", "error", err)
		shutdown(srv, httpServer, sshServer)
		return err
	}

	shutdown(srv, httpServer, sshServer)
	return nil
}

func shutdown(srv *grpc.Server, httpServer *http.Server, sshServer *spectator.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("HTTP shutdown failed", "error", err)
		}
	}
	if sshServer != nil {
		if err := sshServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("SSH shutdown failed", "error", err)
		}
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		slog.Info("Server stopped gracefully")
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
