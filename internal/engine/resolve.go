package engine

import (
	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// ResolveTurnInput holds the two combatants and the turn being played
type ResolveTurnInput struct {
	Player   *battle.Entity
	Opponent *battle.Entity
	Turn     int
	Recorder Recorder
}

// ResolveTurnOutput reports how the turn went
type ResolveTurnOutput struct {
	// Winner is empty while both sides stand
	Winner battle.Side
	// Turn is the turn number to play next. It only advances when nobody fell.
	Turn int
	// Acted lists the sides that acted, in order
	Acted []battle.Side
	// Expired holds the modifiers that wore off at the end of the turn
	Expired []battle.Modifier
}

// ResolveTurn plays one full turn. The faster side acts first, the player
// winning speed ties. A side brought to zero health never acts. When both
// survive, cooldowns and modifiers decay on both sides.
func (e *engine) ResolveTurn(input *ResolveTurnInput) (*ResolveTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Player == nil || input.Opponent == nil {
		return nil, errors.InvalidArgument("both combatants are required")
	}
	if input.Recorder == nil {
		return nil, errors.InvalidArgument("recorder is required")
	}
	if input.Player.Side != battle.SidePlayer || input.Opponent.Side != battle.SideOpponent {
		return nil, errors.InvalidArgument("combatants are on the wrong sides")
	}

	first, second := input.Player, input.Opponent
	if input.Player.Speed < input.Opponent.Speed {
		first, second = input.Opponent, input.Player
	}

	output := &ResolveTurnOutput{Turn: input.Turn}
	for _, pair := range [][2]*battle.Entity{{first, second}, {second, first}} {
		actor, target := pair[0], pair[1]

		action, err := e.SelectAction(actor, target)
		if err != nil {
			return nil, err
		}
		if err := e.Execute(&ExecuteInput{
			Actor:    actor,
			Target:   target,
			Action:   action,
			Turn:     input.Turn,
			Recorder: input.Recorder,
		}); err != nil {
			return nil, err
		}
		output.Acted = append(output.Acted, actor.Side)

		if target.IsDefeated() {
			output.Winner = actor.Side
			return output, nil
		}
	}

	for _, entity := range []*battle.Entity{input.Player, input.Opponent} {
		entity.TickCooldowns()
		output.Expired = append(output.Expired, entity.TickModifiers()...)
	}
	output.Turn = input.Turn + 1

	return output, nil
}

// RollRewards computes experience and gold for beating an opponent of level.
// Experience varies up to +20%, gold up to +30%.
func (e *engine) RollRewards(level int) (*battle.Rewards, error) {
	xpVariance, err := e.fraction()
	if err != nil {
		return nil, err
	}
	goldVariance, err := e.fraction()
	if err != nil {
		return nil, err
	}

	return &battle.Rewards{
		Experience: int(float64(level*100) * (1 + xpVariance*0.2)),
		Gold:       int(float64(level*25) * (1 + goldVariance*0.3)),
	}, nil
}

// fractionSides is the resolution of the uniform [0, 1) draw
const fractionSides = 1_000_000

func (e *engine) fraction() (float64, error) {
	roll, err := e.roller.Roll(fractionSides)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll reward variance")
	}
	return float64(roll-1) / fractionSides, nil
}
