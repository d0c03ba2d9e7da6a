package engine

import (
	"fmt"
	"math"

	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// mitigationScale is the defense constant of the damage curve
const mitigationScale = 1000

// ExecuteInput describes one half of a turn
type ExecuteInput struct {
	Actor    *battle.Entity
	Target   *battle.Entity
	Action   *Action
	Turn     int
	Recorder Recorder
}

// Validate checks the execution input
func (i *ExecuteInput) Validate() error {
	vb := errors.NewValidationBuilder()
	if i.Actor == nil {
		vb.RequiredField("Actor")
	}
	if i.Target == nil {
		vb.RequiredField("Target")
	}
	if i.Action == nil {
		vb.RequiredField("Action")
	}
	if i.Recorder == nil {
		vb.RequiredField("Recorder")
	}
	if i.Actor != nil && i.Action != nil && i.Action.Kind == ActionAbility {
		if i.Action.AbilityIndex < 0 || i.Action.AbilityIndex >= len(i.Actor.Abilities) {
			vb.InvalidField("Action.AbilityIndex", "out of range")
		}
	}
	return vb.Build()
}

// Mitigate applies the diminishing-returns defense curve to power.
// Defense never drops the result to zero.
func Mitigate(power, defense int) float64 {
	d := float64(defense)
	return float64(power) * (1 - d/(d+mitigationScale))
}

// Execute performs the action and records a log entry for it
func (e *engine) Execute(input *ExecuteInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	if err := input.Validate(); err != nil {
		return err
	}

	policy, err := e.policyFor(input.Actor.Side)
	if err != nil {
		return err
	}

	if input.Action.Kind == ActionBasicAttack {
		return e.basicAttack(input)
	}

	actor := input.Actor
	ability := actor.Abilities[input.Action.AbilityIndex]

	switch ability.Category {
	case battle.CategoryPhysical, battle.CategoryMagical:
		err = e.damagingAbility(input, policy, ability)
	case battle.CategoryHeal:
		e.healingAbility(input, policy, ability)
	case battle.CategoryBuff:
		e.buffAbility(input, policy, ability)
	case battle.CategoryDebuff:
		e.debuffAbility(input, policy, ability)
	default:
		return errors.InvalidArgumentf("unknown ability category %q", ability.Category)
	}
	if err != nil {
		return err
	}

	actor.UseAbility(input.Action.AbilityIndex)
	return nil
}

func (e *engine) basicAttack(input *ExecuteInput) error {
	actor, target := input.Actor, input.Target

	damage, critical, err := e.strike(actor, target, actor.Attack)
	if err != nil {
		return err
	}

	entry := battle.LogEntry{
		Turn:     input.Turn,
		Message:  fmt.Sprintf("%s attacks %s with a basic attack.", actor.Name, target.Name),
		Category: battle.LogAttack,
		Damage:   battle.IntPtr(damage),
	}
	if critical {
		entry.Message = fmt.Sprintf("%s lands a critical hit with a basic attack!", actor.Name)
		entry.Category = battle.LogCritical
	}
	input.Recorder.Record(entry)
	return nil
}

func (e *engine) damagingAbility(input *ExecuteInput, policy *Policy, ability battle.Ability) error {
	actor := input.Actor

	damage, critical, err := e.strike(actor, input.Target, ability.Damage)
	if err != nil {
		return err
	}

	entry := battle.LogEntry{
		Turn:     input.Turn,
		Message:  fmt.Sprintf("%s %s %s.", actor.Name, policy.Verb, ability.Name),
		Category: battle.LogAbility,
		Damage:   battle.IntPtr(damage),
	}
	if critical {
		entry.Message = fmt.Sprintf("%s %s %s for a critical hit!", actor.Name, policy.Verb, ability.Name)
		entry.Category = battle.LogCritical
	}
	input.Recorder.Record(entry)
	return nil
}

func (e *engine) healingAbility(input *ExecuteInput, policy *Policy, ability battle.Ability) {
	actor := input.Actor
	amount := ability.Damage
	if amount < 0 {
		amount = -amount
	}
	actor.Heal(amount)

	input.Recorder.Record(battle.LogEntry{
		Turn: input.Turn,
		Message: fmt.Sprintf("%s %s %s and heals for %d health.",
			actor.Name, policy.Verb, ability.Name, amount),
		Category: battle.LogHeal,
		Heal:     battle.IntPtr(amount),
	})
}

func (e *engine) buffAbility(input *ExecuteInput, policy *Policy, ability battle.Ability) {
	actor := input.Actor
	actor.AddModifier(battle.Modifier{
		ID:         e.idGen.Generate(),
		Name:       ability.Name,
		Duration:   ModifierDuration,
		Stat:       policy.Buff.Stat,
		Value:      policy.Buff.Value,
		IsPositive: true,
		Icon:       ability.Icon,
	})

	input.Recorder.Record(battle.LogEntry{
		Turn:     input.Turn,
		Message:  fmt.Sprintf("%s %s %s and %s.", actor.Name, policy.Verb, ability.Name, policy.BuffNarration),
		Category: battle.LogBuff,
	})
}

func (e *engine) debuffAbility(input *ExecuteInput, policy *Policy, ability battle.Ability) {
	actor, target := input.Actor, input.Target
	target.AddModifier(battle.Modifier{
		ID:         e.idGen.Generate(),
		Name:       ability.Name,
		Duration:   ModifierDuration,
		Stat:       policy.Debuff.Stat,
		Value:      policy.Debuff.Value,
		IsPositive: false,
		Icon:       ability.Icon,
	})

	input.Recorder.Record(battle.LogEntry{
		Turn:     input.Turn,
		Message:  fmt.Sprintf("%s %s %s and weakens %s.", actor.Name, policy.Verb, ability.Name, target.Name),
		Category: battle.LogDebuff,
	})
}

// strike rolls for a critical hit and deals mitigated damage to target
func (e *engine) strike(actor, target *battle.Entity, power int) (int, bool, error) {
	roll, err := e.roller.Roll(100)
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to roll critical hit")
	}
	critical := roll <= actor.CritChance

	multiplier := 1.0
	if critical {
		multiplier = actor.CritMultiplier
	}

	damage := int(math.Floor(Mitigate(power, target.Defense) * multiplier))
	if damage < 0 {
		damage = 0
	}
	target.TakeDamage(damage)
	return damage, critical, nil
}
