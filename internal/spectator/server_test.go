package spectator_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/engine"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/roster"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/wallet"
	"github.com/KirkDiggler/rpg-arena/internal/spectator"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

const testRoster = `
player:
  id: hero
  name: Hero
  level: 10
  health: 1000
  attack: 350
  defense: 220
  speed: 180
  crit_multiplier: 2
opponents:
  - id: dummy
    name: Training Dummy
    level: 38
    health: 500
    attack: 10
    defense: 220
    speed: 100
    crit_multiplier: 1
  - id: brute
    name: Brute
    level: 5
    health: 5000
    attack: 2000
    speed: 200
    crit_multiplier: 1
`

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type SpectatorTestSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *testutils.ManualClock
	service arena.Service
	server  *spectator.Server
}

func TestSpectatorSuite(t *testing.T) {
	suite.Run(t, new(SpectatorTestSuite))
}

func (s *SpectatorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = testutils.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	rosterRepo, err := roster.NewYAML(&roster.YAMLConfig{Data: []byte(testRoster)})
	s.Require().NoError(err)
	eng, err := engine.New(&engine.Config{
		Roller:      testutils.NewScriptedRoller().WithFallback(1_000_000),
		IDGenerator: idgen.NewSequential("mod"),
	})
	s.Require().NoError(err)

	s.service, err = arena.NewOrchestrator(&arena.Config{
		Engine:      eng,
		Roster:      rosterRepo,
		Wallet:      wallet.NewInMemory(wallet.DefaultStartingBalance),
		Clock:       s.clock,
		EventBus:    events.NewBus(),
		IDGenerator: idgen.NewSequential("arena"),
	})
	s.Require().NoError(err)

	s.server, err = spectator.New(&spectator.Config{Addr: "127.0.0.1:0", ArenaService: s.service})
	s.Require().NoError(err)
}

// run plays a command to completion, driving the auto-advance timers
func (s *SpectatorTestSuite) run(args ...string) (string, error) {
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- s.server.Run(s.ctx, out, "player_1", args)
	}()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case err := <-done:
			return out.String(), err
		case <-deadline:
			s.FailNow("spectator did not finish")
		default:
			s.clock.Advance(100 * time.Millisecond)
			time.Sleep(time.Millisecond)
		}
	}
}

func (s *SpectatorTestSuite) TestConfigValidation() {
	_, err := spectator.New(&spectator.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Addr")
	s.Contains(err.Error(), "ArenaService")

	_, err = spectator.New(&spectator.Config{Addr: ":2222", ArenaService: s.service, HostKeyFile: "/does/not/exist"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *SpectatorTestSuite) TestList() {
	out, err := s.run("list")
	s.Require().NoError(err)
	s.Contains(out, "dummy")
	s.Contains(out, "Training Dummy")
	s.Contains(out, "Brute")
}

func (s *SpectatorTestSuite) TestWatchVictory() {
	out, err := s.run("dummy", "fast")
	s.Require().NoError(err)

	s.Contains(out, "Battle between Hero and Training Dummy has begun!")
	s.Contains(out, "Hero has defeated Training Dummy!")
	s.Contains(out, "1234 gold has been added to your inventory.")
	s.Contains(out, "VICTORY")
	s.Contains(out, "after 2 turns")
	s.Contains(out, "Gold: 13684")

	// the session is closed once the battle has been shown
	_, err = s.service.GetSession(s.ctx, &arena.GetSessionInput{SessionID: "arena_1"})
	s.True(errors.IsNotFound(err))
}

func (s *SpectatorTestSuite) TestWatchDefaultsToFirstOpponent() {
	out, err := s.run()
	s.Require().NoError(err)
	s.Contains(out, "Training Dummy")
}

func (s *SpectatorTestSuite) TestWatchDefeat() {
	out, err := s.run("brute")
	s.Require().NoError(err)
	s.Contains(out, "Hero has been defeated by Brute!")
	s.Contains(out, "DEFEAT")
	s.Contains(out, "Gold: 12450")
}

func (s *SpectatorTestSuite) TestUnknownOpponent() {
	_, err := s.run("lich")
	s.True(errors.IsNotFound(err))
}

func (s *SpectatorTestSuite) TestBadSpeed() {
	_, err := s.run("dummy", "warp")
	s.True(errors.IsInvalidArgument(err))
}
