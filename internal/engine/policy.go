package engine

import (
	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// ModifierDuration is how many full turns a buff or debuff lasts
const ModifierDuration = 3

// Effect is the stat change a buff or debuff applies
type Effect struct {
	Stat  battle.Stat
	Value int
}

// Policy holds the per-side constants that shape how a combatant fights
type Policy struct {
	// HealThreshold is the health fraction under which a heal is preferred
	HealThreshold float64
	// GatedBuff requires a coin flip before buffing
	GatedBuff bool
	// Greedy picks the strongest offensive ability instead of a random one
	Greedy bool
	// Offensive lists the categories considered for the attack pick
	Offensive []battle.AbilityCategory
	// Buff is applied to the caster when it uses a buff ability
	Buff Effect
	// Debuff is applied to the other side when the caster uses a debuff ability
	Debuff Effect
	// Verb narrates ability use ("casts", "uses")
	Verb string
	// BuffNarration completes the buff log line
	BuffNarration string
}

// DefaultPolicies returns the arena's policy table. The player plays greedy and
// deterministic, the opponent plays weighted random.
func DefaultPolicies() map[battle.Side]*Policy {
	return map[battle.Side]*Policy{
		battle.SidePlayer: {
			HealThreshold: 0.5,
			GatedBuff:     false,
			Greedy:        true,
			Offensive:     []battle.AbilityCategory{battle.CategoryPhysical, battle.CategoryMagical},
			Buff:          Effect{Stat: battle.StatDefense, Value: 50},
			Debuff:        Effect{Stat: battle.StatAttack, Value: -40},
			Verb:          "casts",
			BuffNarration: "gains increased defense",
		},
		battle.SideOpponent: {
			HealThreshold: 0.4,
			GatedBuff:     true,
			Greedy:        false,
			Offensive: []battle.AbilityCategory{
				battle.CategoryPhysical, battle.CategoryMagical, battle.CategoryDebuff,
			},
			Buff:          Effect{Stat: battle.StatAttack, Value: 40},
			Debuff:        Effect{Stat: battle.StatAttack, Value: -50},
			Verb:          "uses",
			BuffNarration: "grows stronger",
		},
	}
}

func (p *Policy) isOffensive(category battle.AbilityCategory) bool {
	for _, c := range p.Offensive {
		if c == category {
			return true
		}
	}
	return false
}

// ActionKind distinguishes a basic attack from an ability
type ActionKind string

// Action kinds
const (
	ActionBasicAttack ActionKind = "basic_attack"
	ActionAbility     ActionKind = "ability"
)

// Action is what a combatant does on its half of a turn
type Action struct {
	Kind ActionKind
	// AbilityIndex points into the actor's abilities when Kind is ActionAbility
	AbilityIndex int
}

// BasicAttack returns the basic attack action
func BasicAttack() *Action {
	return &Action{Kind: ActionBasicAttack}
}

// UseAbility returns an action using the ability at index
func UseAbility(index int) *Action {
	return &Action{Kind: ActionAbility, AbilityIndex: index}
}

// SelectAction applies the actor's policy, in priority order: heal when hurt,
// buff when unbuffed, then attack. Anything left over is a basic attack.
// A rule whose condition holds but has no eligible ability falls through to the next
// rule, so a hurt actor with its heal on cooldown still attacks with abilities.
func (e *engine) SelectAction(actor, target *battle.Entity) (*Action, error) {
	if actor == nil || target == nil {
		return nil, errors.InvalidArgument("actor and target are required")
	}

	policy, err := e.policyFor(actor.Side)
	if err != nil {
		return nil, err
	}

	eligible := actor.EligibleAbilities()
	if len(eligible) == 0 {
		return BasicAttack(), nil
	}

	if actor.BelowHealth(policy.HealThreshold) {
		if idx, ok := firstOfCategory(actor, eligible, battle.CategoryHeal); ok {
			return UseAbility(idx), nil
		}
	}

	if len(actor.Buffs) == 0 {
		if idx, ok := firstOfCategory(actor, eligible, battle.CategoryBuff); ok {
			use := true
			if policy.GatedBuff {
				use, err = e.coinFlip()
				if err != nil {
					return nil, err
				}
			}
			if use {
				return UseAbility(idx), nil
			}
		}
	}

	var offensive []int
	for _, idx := range eligible {
		if policy.isOffensive(actor.Abilities[idx].Category) {
			offensive = append(offensive, idx)
		}
	}
	if len(offensive) == 0 {
		return BasicAttack(), nil
	}

	if policy.Greedy {
		best := offensive[0]
		for _, idx := range offensive[1:] {
			if actor.Abilities[idx].Damage > actor.Abilities[best].Damage {
				best = idx
			}
		}
		return UseAbility(best), nil
	}

	roll, err := e.roller.Roll(len(offensive))
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll opponent ability")
	}
	return UseAbility(offensive[roll-1]), nil
}

func (e *engine) coinFlip() (bool, error) {
	roll, err := e.roller.Roll(2)
	if err != nil {
		return false, errors.Wrap(err, "failed to flip buff coin")
	}
	return roll == 2, nil
}

func firstOfCategory(actor *battle.Entity, eligible []int, category battle.AbilityCategory) (int, bool) {
	for _, idx := range eligible {
		if actor.Abilities[idx].Category == category {
			return idx, true
		}
	}
	return 0, false
}
