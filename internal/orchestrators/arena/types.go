package arena

import (
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// State is the lifecycle state of a battle
type State string

// Battle states
const (
	StateIdle       State = "idle"
	StateInProgress State = "in-progress"
	StateVictory    State = "victory"
	StateDefeat     State = "defeat"
)

// IsTerminal reports whether the encounter is over
func (s State) IsTerminal() bool {
	return s == StateVictory || s == StateDefeat
}

// Speed is the auto-advance pace
type Speed string

// Auto-advance speeds
const (
	SpeedSlow   Speed = "slow"
	SpeedNormal Speed = "normal"
	SpeedFast   Speed = "fast"
)

// Speeds lists the valid speeds, slowest first
var Speeds = []string{string(SpeedSlow), string(SpeedNormal), string(SpeedFast)}

// Delay returns how long auto-advance waits between turns
func (s Speed) Delay() time.Duration {
	switch s {
	case SpeedSlow:
		return 2 * time.Second
	case SpeedFast:
		return 500 * time.Millisecond
	default:
		return time.Second
	}
}

// ParseSpeed validates a speed name. An empty name means normal.
func ParseSpeed(name string) (Speed, error) {
	if name == "" {
		return SpeedNormal, nil
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("speed", name, Speeds, vb)
	if err := vb.Build(); err != nil {
		return "", err
	}
	return Speed(name), nil
}

// Event types published on the event bus
const (
	EventLogEntry    = "arena.log.entry"
	EventBattleEnded = "arena.battle.ended"
)

// Keys set on the context of published events
const (
	ContextKeySessionID = "session_id"
	ContextKeyEntry     = "entry"
	ContextKeyState     = "state"
)

// Snapshot is a point-in-time copy of a session, safe to hand to observers
type Snapshot struct {
	SessionID        string            `json:"session_id"`
	PlayerID         string            `json:"player_id"`
	State            State             `json:"state"`
	Turn             int               `json:"turn"`
	Player           *battle.Entity    `json:"player"`
	Opponent         *battle.Entity    `json:"opponent,omitempty"`
	Log              []battle.LogEntry `json:"log"`
	Rewards          *battle.Rewards   `json:"rewards,omitempty"`
	RewardsDelivered bool              `json:"rewards_delivered"`
	AutoProgress     bool              `json:"auto_progress"`
	Speed            Speed             `json:"speed"`
}

// Update is one change pushed to a watcher
type Update struct {
	SessionID string           `json:"session_id"`
	Entry     *battle.LogEntry `json:"entry,omitempty"`
	// State is set when the battle has ended
	State State `json:"state,omitempty"`
}

// ListOpponentsInput defines the request for listing opponents
type ListOpponentsInput struct{}

// ListOpponentsOutput defines the response for listing opponents
type ListOpponentsOutput struct {
	Opponents []*battle.Entity
}

// CreateSessionInput defines the request for opening a session
type CreateSessionInput struct {
	PlayerID string
	// OpponentID optionally picks the first opponent right away
	OpponentID string
	Speed      string
}

// CreateSessionOutput defines the response for opening a session
type CreateSessionOutput struct {
	Session *Snapshot
}

// GetSessionInput defines the request for reading a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput defines the response for reading a session
type GetSessionOutput struct {
	Session *Snapshot
	// Balance is the player's wallet balance
	Balance int64
}

// ChooseOpponentInput defines the request for picking an opponent
type ChooseOpponentInput struct {
	SessionID  string
	OpponentID string
}

// ChooseOpponentOutput defines the response for picking an opponent
type ChooseOpponentOutput struct {
	Session *Snapshot
}

// StartBattleInput defines the request for starting a battle
type StartBattleInput struct {
	SessionID string
}

// StartBattleOutput defines the response for starting a battle
type StartBattleOutput struct {
	Session *Snapshot
}

// ProgressBattleInput defines the request for playing one turn
type ProgressBattleInput struct {
	SessionID string
}

// ProgressBattleOutput defines the response for playing one turn
type ProgressBattleOutput struct {
	Session *Snapshot
	// Progressed is false when the battle was not in progress
	Progressed bool
}

// ResetBattleInput defines the request for resetting a battle
type ResetBattleInput struct {
	SessionID string
}

// ResetBattleOutput defines the response for resetting a battle
type ResetBattleOutput struct {
	Session *Snapshot
}

// SetAutoProgressInput defines the request for toggling auto-advance
type SetAutoProgressInput struct {
	SessionID string
	Enabled   bool
}

// SetAutoProgressOutput defines the response for toggling auto-advance
type SetAutoProgressOutput struct {
	Session *Snapshot
}

// SetSpeedInput defines the request for changing the auto-advance pace
type SetSpeedInput struct {
	SessionID string
	Speed     string
}

// SetSpeedOutput defines the response for changing the auto-advance pace
type SetSpeedOutput struct {
	Session *Snapshot
}

// DeliverRewardsInput defines the request for crediting victory gold
type DeliverRewardsInput struct {
	SessionID string
}

// DeliverRewardsOutput defines the response for crediting victory gold
type DeliverRewardsOutput struct {
	Session *Snapshot
	Balance int64
}

// EndSessionInput defines the request for closing a session
type EndSessionInput struct {
	SessionID string
}

// EndSessionOutput defines the response for closing a session
type EndSessionOutput struct{}

// WatchInput defines the request for following a session
type WatchInput struct {
	SessionID string
}

// WatchOutput defines the response for following a session. Updates is closed
// when the watch context ends or the session is closed.
type WatchOutput struct {
	Updates <-chan *Update
}
