package arena

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/looplab/fsm"

	"github.com/KirkDiggler/rpg-arena/internal/engine"
	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/roster"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/wallet"
)

const (
	fsmEventStart = "start"
	fsmEventWin   = "win"
	fsmEventLose  = "lose"
)

// ControllerConfig holds the dependencies of one battle session
type ControllerConfig struct {
	SessionID string
	PlayerID  string
	Speed     Speed
	Engine    engine.Engine
	Roster    roster.Repository
	Wallet    wallet.Repository
	Clock     clock.Clock
	EventBus  events.EventBus
	// LogIDs generates log entry ids. Defaults to a sequential generator.
	LogIDs idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *ControllerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("SessionID", c.SessionID, vb)
	errors.ValidateRequired("PlayerID", c.PlayerID, vb)
	if c.Speed != "" {
		errors.ValidateEnum("Speed", string(c.Speed), Speeds, vb)
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Roster == nil {
		vb.RequiredField("Roster")
	}
	if c.Wallet == nil {
		vb.RequiredField("Wallet")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

// Controller owns one battle session. Every exported method takes the
// controller lock, so auto-advance timers and callers never interleave.
type Controller struct {
	mu sync.Mutex

	id       string
	playerID string
	engine   engine.Engine
	roster   roster.Repository
	wallet   wallet.Repository
	clock    clock.Clock
	bus      events.EventBus
	logIDs   idgen.Generator

	playerTemplate   *battle.Entity
	opponentTemplate *battle.Entity
	player           *battle.Entity
	opponent         *battle.Entity

	machine          *fsm.FSM
	log              battle.Log
	turn             int
	battleNumber     int
	rewards          *battle.Rewards
	rewardsDelivered bool

	autoProgress bool
	speed        Speed
	timer        clock.Timer
	generation   uint64
	closed       bool
}

// NewController creates an idle session with a fresh copy of the player
func NewController(ctx context.Context, cfg *ControllerConfig) (*Controller, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	player, err := cfg.Roster.GetPlayer(ctx, &roster.GetPlayerInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load player")
	}

	logIDs := cfg.LogIDs
	if logIDs == nil {
		logIDs = idgen.NewSequential("log")
	}
	speed := cfg.Speed
	if speed == "" {
		speed = SpeedNormal
	}

	c := &Controller{
		id:             cfg.SessionID,
		playerID:       cfg.PlayerID,
		engine:         cfg.Engine,
		roster:         cfg.Roster,
		wallet:         cfg.Wallet,
		clock:          cfg.Clock,
		bus:            cfg.EventBus,
		logIDs:         logIDs,
		playerTemplate: player.Player,
		speed:          speed,
		machine:        newMachine(),
	}
	c.resetLocked()

	return c, nil
}

func newMachine() *fsm.FSM {
	return fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: fsmEventStart, Src: []string{string(StateIdle)}, Dst: string(StateInProgress)},
			{Name: fsmEventWin, Src: []string{string(StateInProgress)}, Dst: string(StateVictory)},
			{Name: fsmEventLose, Src: []string{string(StateInProgress)}, Dst: string(StateDefeat)},
		},
		fsm.Callbacks{},
	)
}

// ID returns the session id
func (c *Controller) ID() string {
	return c.id
}

// GetID returns the session id, so the session can be the source of toolkit events
func (c *Controller) GetID() string {
	return c.id
}

// GetType identifies the session as an event source
func (c *Controller) GetType() string {
	return "arena_session"
}

var _ core.Entity = (*Controller)(nil)

// ChooseOpponent loads a fresh opponent and returns the session to idle
func (c *Controller) ChooseOpponent(ctx context.Context, opponentID string) error {
	out, err := c.roster.GetOpponent(ctx, &roster.GetOpponentInput{OpponentID: opponentID})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.FailedPrecondition("session is closed")
	}

	c.opponentTemplate = out.Opponent
	c.resetLocked()

	slog.Info("Opponent chosen",
		"session_id", c.id,
		"opponent_id", opponentID,
		"opponent_level", out.Opponent.Level)

	return nil
}

// Reset restores both combatants from their templates and clears the log
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.stopTimerLocked()

	c.player = c.playerTemplate.Clone()
	c.opponent = c.opponentTemplate.Clone()
	c.log.Clear()
	c.turn = 0
	c.machine.SetState(string(StateIdle))
	c.autoProgress = false
	c.rewards = nil
	c.rewardsDelivered = false
	c.battleNumber++
}

// Start moves an idle battle into progress
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.opponent == nil {
		return errors.FailedPrecondition("choose an opponent before starting")
	}
	if err := c.machine.Event(ctx, fsmEventStart); err != nil {
		return errors.FailedPreconditionf("cannot start a battle that is %s", c.stateLocked())
	}

	c.appendLocked(ctx, battle.LogEntry{
		Turn:     0,
		Message:  fmt.Sprintf("Battle between %s and %s has begun!", c.player.Name, c.opponent.Name),
		Category: battle.LogSystem,
	})
	c.turn = 1
	c.scheduleLocked()

	slog.Info("Battle started",
		"session_id", c.id,
		"player", c.player.Name,
		"opponent", c.opponent.Name)

	return nil
}

// ProgressBattle plays one turn. It is a no-op, reporting false, unless a
// battle is in progress.
func (c *Controller) ProgressBattle(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.progressLocked(ctx)
}

func (c *Controller) progressLocked(ctx context.Context) (bool, error) {
	if c.stateLocked() != StateInProgress || c.opponent == nil {
		return false, nil
	}

	out, err := c.engine.ResolveTurn(&engine.ResolveTurnInput{
		Player:   c.player,
		Opponent: c.opponent,
		Turn:     c.turn,
		Recorder: c.recorder(ctx),
	})
	if err != nil {
		c.autoProgress = false
		c.stopTimerLocked()
		return false, errors.Wrapf(err, "failed to resolve turn %d", c.turn)
	}
	c.turn = out.Turn

	switch out.Winner {
	case battle.SidePlayer:
		return true, c.endLocked(ctx, StateVictory)
	case battle.SideOpponent:
		return true, c.endLocked(ctx, StateDefeat)
	}

	c.scheduleLocked()
	return true, nil
}

func (c *Controller) endLocked(ctx context.Context, result State) error {
	c.autoProgress = false
	c.stopTimerLocked()

	if result == StateVictory {
		rewards, err := c.engine.RollRewards(c.opponent.Level)
		if err != nil {
			return errors.Wrap(err, "failed to roll rewards")
		}
		c.rewards = rewards

		if err := c.machine.Event(ctx, fsmEventWin); err != nil {
			return errors.Wrap(err, "failed to record victory")
		}
		c.appendLocked(ctx, battle.LogEntry{
			Turn:     c.turn,
			Message:  fmt.Sprintf("%s has defeated %s!", c.player.Name, c.opponent.Name),
			Category: battle.LogSystem,
		})
		c.appendLocked(ctx, battle.LogEntry{
			Turn:     c.turn,
			Message:  fmt.Sprintf("Rewards: %d XP and %d gold", rewards.Experience, rewards.Gold),
			Category: battle.LogSystem,
		})
	} else {
		if err := c.machine.Event(ctx, fsmEventLose); err != nil {
			return errors.Wrap(err, "failed to record defeat")
		}
		c.appendLocked(ctx, battle.LogEntry{
			Turn:     c.turn,
			Message:  fmt.Sprintf("%s has been defeated by %s!", c.player.Name, c.opponent.Name),
			Category: battle.LogSystem,
		})
	}

	slog.Info("Battle ended",
		"session_id", c.id,
		"result", result,
		"turn", c.turn,
		"opponent", c.opponent.Name)

	deliverErr := c.deliverRewardsLocked(ctx)

	// the result goes out last, after any gold entry
	c.publishLocked(ctx, EventBattleEnded, func(ec eventContext) {
		ec.Set(ContextKeyState, result)
	})

	return deliverErr
}

// DeliverRewards credits the victory gold to the player's wallet. It does
// nothing unless the battle was won and the gold is still undelivered.
func (c *Controller) DeliverRewards(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.deliverRewardsLocked(ctx)
}

func (c *Controller) deliverRewardsLocked(ctx context.Context) error {
	if c.stateLocked() != StateVictory || c.rewards == nil || c.rewardsDelivered || c.rewards.Gold <= 0 {
		return nil
	}

	out, err := c.wallet.Credit(ctx, &wallet.CreditInput{
		PlayerID:  c.playerID,
		Amount:    int64(c.rewards.Gold),
		Reference: fmt.Sprintf("%s:battle-%d", c.id, c.battleNumber),
	})
	if err != nil {
		slog.Error("Failed to deliver rewards",
			"session_id", c.id,
			"gold", c.rewards.Gold,
			"error", err)
		return errors.Wrap(err, "failed to deliver rewards")
	}
	c.rewardsDelivered = true

	c.appendLocked(ctx, battle.LogEntry{
		Turn:     c.turn,
		Message:  fmt.Sprintf("%d gold has been added to your inventory.", c.rewards.Gold),
		Category: battle.LogSystem,
	})

	slog.Info("Rewards delivered",
		"session_id", c.id,
		"player_id", c.playerID,
		"gold", c.rewards.Gold,
		"applied", out.Applied,
		"balance", out.Balance)

	return nil
}

// SetAutoProgress turns auto-advance on or off. Turning it off cancels the pending turn.
func (c *Controller) SetAutoProgress(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.autoProgress = enabled
	if enabled {
		c.scheduleLocked()
		return
	}
	c.stopTimerLocked()
}

// SetSpeed changes the auto-advance pace. A pending turn is rescheduled at the new pace.
func (c *Controller) SetSpeed(speed Speed) error {
	if _, err := ParseSpeed(string(speed)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.speed = speed
	if c.timer != nil {
		c.scheduleLocked()
	}
	return nil
}

// Close stops auto-advance for good
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.autoProgress = false
	c.stopTimerLocked()
}

// Snapshot returns a copy of the session state
func (c *Controller) Snapshot() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := &Snapshot{
		SessionID:        c.id,
		PlayerID:         c.playerID,
		State:            c.stateLocked(),
		Turn:             c.turn,
		Player:           c.player.Clone(),
		Opponent:         c.opponent.Clone(),
		Log:              c.log.Entries(),
		RewardsDelivered: c.rewardsDelivered,
		AutoProgress:     c.autoProgress,
		Speed:            c.speed,
	}
	if c.rewards != nil {
		rewards := *c.rewards
		snap.Rewards = &rewards
	}
	return snap
}

func (c *Controller) stateLocked() State {
	return State(c.machine.Current())
}

// scheduleLocked arms the auto-advance timer when the session should keep playing
func (c *Controller) scheduleLocked() {
	c.stopTimerLocked()
	if c.closed || !c.autoProgress || c.stateLocked() != StateInProgress {
		return
	}

	gen := c.generation
	c.timer = c.clock.AfterFunc(c.speed.Delay(), func() {
		c.onTimer(gen)
	})
}

// stopTimerLocked cancels the pending turn. Bumping the generation drops a
// callback that already fired but is still waiting for the lock.
func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
}

func (c *Controller) onTimer(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}
	c.timer = nil

	if _, err := c.progressLocked(context.Background()); err != nil {
		slog.Error("Auto-advance failed",
			"session_id", c.id,
			"turn", c.turn,
			"error", err)
	}
}

func (c *Controller) recorder(ctx context.Context) engine.Recorder {
	return engine.RecorderFunc(func(entry battle.LogEntry) {
		c.appendLocked(ctx, entry)
	})
}

// appendLocked stamps an id on entry, prepends it to the log and publishes it
func (c *Controller) appendLocked(ctx context.Context, entry battle.LogEntry) {
	entry.ID = c.logIDs.Generate()
	c.log.Prepend(entry)

	c.publishLocked(ctx, EventLogEntry, func(ec eventContext) {
		ec.Set(ContextKeyEntry, entry)
	})
}

type eventContext interface {
	Set(key string, value interface{})
}

func (c *Controller) publishLocked(ctx context.Context, eventType string, fill func(ec eventContext)) {
	var target core.Entity
	if c.opponent != nil {
		target = c.opponent
	}

	event := events.NewGameEvent(eventType, c, target)
	event.Context().Set(ContextKeySessionID, c.id)
	fill(event.Context())

	if err := c.bus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish arena event",
			"session_id", c.id,
			"event_type", eventType,
			"error", err)
	}
}
