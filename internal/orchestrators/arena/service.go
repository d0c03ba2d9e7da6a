// Package arena orchestrates auto-battle sessions: each session pits the
// player against a chosen opponent, plays turns on demand or on a timer and
// pays out victory gold to the player's wallet.
package arena

//go:generate mockgen -destination=mock/mock_service.go -package=arenamock github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-arena/internal/engine"
	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/roster"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/wallet"
)

// watchBuffer is how many updates a slow watcher may fall behind before updates are dropped
const watchBuffer = 256

// Service defines the interface for arena operations
type Service interface {
	ListOpponents(ctx context.Context, input *ListOpponentsInput) (*ListOpponentsOutput, error)

	// Session lifecycle
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// Battle controls
	ChooseOpponent(ctx context.Context, input *ChooseOpponentInput) (*ChooseOpponentOutput, error)
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)
	ProgressBattle(ctx context.Context, input *ProgressBattleInput) (*ProgressBattleOutput, error)
	ResetBattle(ctx context.Context, input *ResetBattleInput) (*ResetBattleOutput, error)
	SetAutoProgress(ctx context.Context, input *SetAutoProgressInput) (*SetAutoProgressOutput, error)
	SetSpeed(ctx context.Context, input *SetSpeedInput) (*SetSpeedOutput, error)
	DeliverRewards(ctx context.Context, input *DeliverRewardsInput) (*DeliverRewardsOutput, error)

	// Watch streams new log entries and the battle result until ctx is done
	Watch(ctx context.Context, input *WatchInput) (*WatchOutput, error)
}

// Config holds the dependencies for the arena orchestrator
type Config struct {
	Engine      engine.Engine
	Roster      roster.Repository
	Wallet      wallet.Repository
	Clock       clock.Clock
	EventBus    events.EventBus
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

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
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	engine engine.Engine
	roster roster.Repository
	wallet wallet.Repository
	clock  clock.Clock
	bus    events.EventBus
	idGen  idgen.Generator

	mu       sync.RWMutex
	sessions map[string]*Controller
	watchers map[string]map[*watcher]struct{}
}

// NewOrchestrator creates a new arena orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine:   cfg.Engine,
		roster:   cfg.Roster,
		wallet:   cfg.Wallet,
		clock:    cfg.Clock,
		bus:      cfg.EventBus,
		idGen:    cfg.IDGenerator,
		sessions: make(map[string]*Controller),
		watchers: make(map[string]map[*watcher]struct{}),
	}, nil
}

func (o *orchestrator) ListOpponents(ctx context.Context, _ *ListOpponentsInput) (*ListOpponentsOutput, error) {
	out, err := o.roster.ListOpponents(ctx, &roster.ListOpponentsInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list opponents")
	}
	return &ListOpponentsOutput{Opponents: out.Opponents}, nil
}

func (o *orchestrator) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("player_id", input.PlayerID, vb)
	if input.Speed != "" {
		errors.ValidateEnum("speed", input.Speed, Speeds, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	sessionID := o.idGen.Generate()
	if err := o.ensureUnused(sessionID); err != nil {
		return nil, err
	}

	speed, _ := ParseSpeed(input.Speed)
	controller, err := NewController(ctx, &ControllerConfig{
		SessionID: sessionID,
		PlayerID:  input.PlayerID,
		Speed:     speed,
		Engine:    o.engine,
		Roster:    o.roster,
		Wallet:    o.wallet,
		Clock:     o.clock,
		EventBus:  o.bus,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	if input.OpponentID != "" {
		if err := controller.ChooseOpponent(ctx, input.OpponentID); err != nil {
			return nil, err
		}
	}

	o.mu.Lock()
	if _, exists := o.sessions[sessionID]; exists {
		o.mu.Unlock()
		controller.Close()
		return nil, sessionExists(sessionID)
	}
	o.sessions[sessionID] = controller
	o.mu.Unlock()

	slog.Info("Session created",
		"session_id", controller.ID(),
		"player_id", input.PlayerID,
		"opponent_id", input.OpponentID)

	return &CreateSessionOutput{Session: controller.Snapshot()}, nil
}

func (o *orchestrator) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	controller, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}

	snap := controller.Snapshot()
	balance, err := o.wallet.GetBalance(ctx, &wallet.GetBalanceInput{PlayerID: snap.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get wallet balance")
	}

	return &GetSessionOutput{Session: snap, Balance: balance.Balance}, nil
}

func (o *orchestrator) EndSession(_ context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	controller, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}

	controller.Close()

	o.mu.Lock()
	delete(o.sessions, controller.ID())
	watchers := o.watchers[controller.ID()]
	delete(o.watchers, controller.ID())
	o.mu.Unlock()

	for w := range watchers {
		w.close()
	}

	slog.Info("Session ended", "session_id", controller.ID())

	return &EndSessionOutput{}, nil
}

func (o *orchestrator) ChooseOpponent(ctx context.Context, input *ChooseOpponentInput) (*ChooseOpponentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	controller, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}
	if input.OpponentID == "" {
		return nil, errors.InvalidArgument("opponent ID is required")
	}

	if err := controller.ChooseOpponent(ctx, input.OpponentID); err != nil {
		return nil, err
	}

	return &ChooseOpponentOutput{Session: controller.Snapshot()}, nil
}

func (o *orchestrator) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	controller, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := controller.Start(ctx); err != nil {
		return nil, err
	}

	return &StartBattleOutput{Session: controller.Snapshot()}, nil
}

func (o *orchestrator) ProgressBattle(ctx context.Context, input *ProgressBattleInput) (*ProgressBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	controller, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}

	progressed, err := controller.ProgressBattle(ctx)
	if err != nil {
		return nil, err
	}

	return &ProgressBattleOutput{Session: controller.Snapshot(), Progressed: progressed}, nil
}

func (o *orchestrator) ResetBattle(_ context.Context, input *ResetBattleInput) (*ResetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	controller, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}

	controller.Reset()

	return &ResetBattleOutput{Session: controller.Snapshot()}, nil
}

func (o *orchestrator) SetAutoProgress(_ context.Context, input *SetAutoProgressInput) (*SetAutoProgressOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	controller, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}

	controller.SetAutoProgress(input.Enabled)

	return &SetAutoProgressOutput{Session: controller.Snapshot()}, nil
}

func (o *orchestrator) SetSpeed(_ context.Context, input *SetSpeedInput) (*SetSpeedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	controller, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}

	speed, err := ParseSpeed(input.Speed)
	if err != nil {
		return nil, err
	}
	if err := controller.SetSpeed(speed); err != nil {
		return nil, err
	}

	return &SetSpeedOutput{Session: controller.Snapshot()}, nil
}

func (o *orchestrator) DeliverRewards(ctx context.Context, input *DeliverRewardsInput) (*DeliverRewardsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	controller, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := controller.DeliverRewards(ctx); err != nil {
		return nil, err
	}

	snap := controller.Snapshot()
	balance, err := o.wallet.GetBalance(ctx, &wallet.GetBalanceInput{PlayerID: snap.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get wallet balance")
	}

	return &DeliverRewardsOutput{Session: snap, Balance: balance.Balance}, nil
}

func (o *orchestrator) Watch(ctx context.Context, input *WatchInput) (*WatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	controller, err := o.session(input.SessionID)
	if err != nil {
		return nil, err
	}
	sessionID := controller.ID()
	if ctx.Err() != nil {
		return nil, errors.Canceled("watch canceled before it started")
	}

	w := newWatcher()
	w.subscriptions = []string{
		o.bus.SubscribeFunc(EventLogEntry, 0, w.handler(sessionID)),
		o.bus.SubscribeFunc(EventBattleEnded, 0, w.handler(sessionID)),
	}

	o.mu.Lock()
	if o.watchers[sessionID] == nil {
		o.watchers[sessionID] = make(map[*watcher]struct{})
	}
	o.watchers[sessionID][w] = struct{}{}
	o.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-w.done():
		}

		for _, id := range w.subscriptions {
			if err := o.bus.Unsubscribe(id); err != nil {
				slog.Warn("Failed to unsubscribe watcher", "session_id", sessionID, "error", err)
			}
		}

		o.mu.Lock()
		delete(o.watchers[sessionID], w)
		o.mu.Unlock()

		w.close()
	}()

	return &WatchOutput{Updates: w.updates}, nil
}

func (o *orchestrator) ensureUnused(id string) error {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if _, exists := o.sessions[id]; exists {
		return sessionExists(id)
	}
	return nil
}

func sessionExists(id string) error {
	return errors.AlreadyExists("session already exists").WithMeta("session_id", id)
}

func (o *orchestrator) session(id string) (*Controller, error) {
	if id == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	o.mu.RLock()
	controller, ok := o.sessions[id]
	o.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("session %s not found", id)
	}
	return controller, nil
}

// watcher relays bus events for one session onto a channel
type watcher struct {
	mu            sync.Mutex
	updates       chan *Update
	closed        bool
	closedCh      chan struct{}
	subscriptions []string
}

func newWatcher() *watcher {
	return &watcher{
		updates:  make(chan *Update, watchBuffer),
		closedCh: make(chan struct{}),
	}
}

func (w *watcher) done() <-chan struct{} {
	return w.closedCh
}

func (w *watcher) handler(sessionID string) events.HandlerFunc {
	return func(_ context.Context, event events.Event) error {
		id, _ := event.Context().Get(ContextKeySessionID)
		if id != sessionID {
			return nil
		}

		update := &Update{SessionID: sessionID}
		if raw, ok := event.Context().Get(ContextKeyEntry); ok {
			if entry, ok := raw.(battle.LogEntry); ok {
				update.Entry = &entry
			}
		}
		if raw, ok := event.Context().Get(ContextKeyState); ok {
			if state, ok := raw.(State); ok {
				update.State = state
			}
		}

		w.send(update)
		return nil
	}
}

func (w *watcher) send(update *Update) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.updates <- update:
	default:
		slog.Warn("Dropping update for slow watcher", "session_id", update.SessionID)
	}
}

// close is safe to call more than once
func (w *watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	close(w.updates)
	close(w.closedCh)
}
