package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-arena/internal/engine"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/roller"
	redisclient "github.com/KirkDiggler/rpg-arena/internal/redis"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/roster"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/wallet"
)

// arenaOptions are the flags shared by every command that runs battles
type arenaOptions struct {
	rosterPath   string
	redisAddr    string
	startingGold int64
	// seed is only used when seeded is set
	seed   uint64
	seeded bool
}

// newArenaService wires the arena orchestrator. The returned cleanup releases
// the redis connection, if any.
func newArenaService(ctx context.Context, opts *arenaOptions) (arena.Service, func(), error) {
	cleanup := func() {}

	rosterRepo, err := roster.NewYAML(&roster.YAMLConfig{Path: opts.rosterPath})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load roster: %w", err)
	}

	var diceRoller dice.Roller = dice.DefaultRoller
	if opts.seeded {
		diceRoller = roller.NewSeeded(opts.seed)
		slog.Info("Using seeded dice", "seed", opts.seed)
	}

	eng, err := engine.New(&engine.Config{
		Roller:      diceRoller,
		IDGenerator: idgen.NewPrefixed("mod"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create engine: %w", err)
	}

	var walletRepo wallet.Repository
	if opts.redisAddr != "" {
		client, err := redisclient.NewClient(opts.redisAddr, &redisclient.Options{
			PoolSize:        10,
			ConnMaxIdleTime: 5 * time.Minute,
			MaxRetries:      3,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		cleanup = func() {
			_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
		}
		if err := redisclient.Ping(ctx, client, 5*time.Second); err != nil {
			cleanup()
			return nil, nil, err
		}

		walletRepo, err = wallet.NewRedis(&wallet.RedisConfig{
			Client:          client,
			StartingBalance: opts.startingGold,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to create wallet: %w", err)
		}
		slog.Info("Using redis wallet", "addr", opts.redisAddr)
	} else {
		walletRepo = wallet.NewInMemory(opts.startingGold)
		slog.Info("Using in-memory wallet")
	}

	service, err := arena.NewOrchestrator(&arena.Config{
		Engine:      eng,
		Roster:      rosterRepo,
		Wallet:      walletRepo,
		Clock:       clock.New(),
		EventBus:    events.NewBus(),
		IDGenerator: idgen.NewUUID("arena"),
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create arena service: %w", err)
	}

	return service, cleanup, nil
}
