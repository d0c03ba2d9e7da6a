// Package engine resolves arena battles: it picks each combatant's action,
// executes it against the other side and decays cooldowns and modifiers
// between turns. All randomness comes from the configured dice.Roller.
package engine

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
)

// Engine provides the battle mechanics
type Engine interface {
	// SelectAction chooses what actor does against target this turn
	SelectAction(actor, target *battle.Entity) (*Action, error)
	// Execute performs action for actor against target and records the outcome
	Execute(input *ExecuteInput) error
	// ResolveTurn plays one full turn between the player and the opponent
	ResolveTurn(input *ResolveTurnInput) (*ResolveTurnOutput, error)
	// RollRewards computes the victory rewards for beating an opponent of the given level
	RollRewards(level int) (*battle.Rewards, error)
}

// Recorder receives the log entries produced while a turn resolves
type Recorder interface {
	Record(entry battle.LogEntry)
}

// RecorderFunc adapts a function to the Recorder interface
type RecorderFunc func(entry battle.LogEntry)

// Record calls f(entry)
func (f RecorderFunc) Record(entry battle.LogEntry) {
	f(entry)
}

// Config holds the dependencies for the engine
type Config struct {
	Roller      dice.Roller
	IDGenerator idgen.Generator
	// Policies overrides the per-side policy table. Defaults to DefaultPolicies().
	Policies map[battle.Side]*Policy
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Policies != nil {
		for _, side := range []battle.Side{battle.SidePlayer, battle.SideOpponent} {
			if c.Policies[side] == nil {
				vb.RequiredField("Policies." + string(side))
			}
		}
	}

	return vb.Build()
}

type engine struct {
	roller   dice.Roller
	idGen    idgen.Generator
	policies map[battle.Side]*Policy
}

// New creates an engine with the provided dependencies
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	policies := cfg.Policies
	if policies == nil {
		policies = DefaultPolicies()
	}

	return &engine{
		roller:   cfg.Roller,
		idGen:    cfg.IDGenerator,
		policies: policies,
	}, nil
}

func (e *engine) policyFor(side battle.Side) (*Policy, error) {
	p, ok := e.policies[side]
	if !ok {
		return nil, errors.InvalidArgumentf("no policy for side %q", side)
	}
	return p, nil
}
