package engine_test

import (
	"github.com/KirkDiggler/rpg-arena/internal/engine"
	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

func (s *EngineTestSuite) TestPlayerSelection() {
	testCases := []struct {
		name     string
		setup    func(p *battle.Entity)
		expected *engine.Action
	}{
		{
			name:     "unbuffed player buffs first",
			setup:    func(_ *battle.Entity) {},
			expected: engine.UseAbility(2),
		},
		{
			name: "buffed player picks the strongest attack",
			setup: func(p *battle.Entity) {
				p.Buffs = []battle.Modifier{{Duration: 2, Stat: battle.StatDefense, Value: 50, IsPositive: true}}
			},
			expected: engine.UseAbility(0),
		},
		{
			name: "strongest attack on cooldown falls to the next",
			setup: func(p *battle.Entity) {
				p.Buffs = []battle.Modifier{{Duration: 2}}
				p.Abilities[0].CurrentCooldown = 1
			},
			expected: engine.UseAbility(1),
		},
		{
			name: "ties go to the first ability",
			setup: func(p *battle.Entity) {
				p.Buffs = []battle.Modifier{{Duration: 2}}
				p.Abilities[1].Damage = 450
			},
			expected: engine.UseAbility(0),
		},
		{
			name: "low health without a heal falls through to the buff",
			setup: func(p *battle.Entity) {
				p.Health = 1000
			},
			expected: engine.UseAbility(2),
		},
		{
			name: "no mana means basic attack",
			setup: func(p *battle.Entity) {
				p.Mana = 50
			},
			expected: engine.BasicAttack(),
		},
		{
			name: "only a heal left at full health means basic attack",
			setup: func(p *battle.Entity) {
				p.Abilities = []battle.Ability{{ID: "mend", Damage: -300, Category: battle.CategoryHeal}}
			},
			expected: engine.BasicAttack(),
		},
		{
			name: "heals below half health",
			setup: func(p *battle.Entity) {
				p.Health = 2099
				p.Abilities = append(p.Abilities, battle.Ability{ID: "mend", Damage: -300, Category: battle.CategoryHeal})
			},
			expected: engine.UseAbility(3),
		},
		{
			name: "hurt with the heal cooling down still attacks with abilities",
			setup: func(p *battle.Entity) {
				p.Health = 100
				p.Buffs = []battle.Modifier{{Duration: 2}}
				p.Abilities = append(p.Abilities, battle.Ability{
					ID: "mend", Damage: -300, Cooldown: 3, CurrentCooldown: 2, Category: battle.CategoryHeal,
				})
			},
			expected: engine.UseAbility(0),
		},
		{
			name: "exactly half health is not hurt enough",
			setup: func(p *battle.Entity) {
				p.Health = 2100
				p.Buffs = []battle.Modifier{{Duration: 2}}
				p.Abilities = append(p.Abilities, battle.Ability{ID: "mend", Damage: -300, Category: battle.CategoryHeal})
			},
			expected: engine.UseAbility(0),
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			player := testutils.NewTestPlayer()
			tc.setup(player)

			action, err := s.engine.SelectAction(player, testutils.NewTestTroll())
			s.Require().NoError(err)
			s.Equal(tc.expected, action)
		})
	}

	// the player never consults the roller
	s.Empty(s.roller.Sizes())
}

func (s *EngineTestSuite) TestOpponentBuffIsGatedByCoinFlip() {
	troll := testutils.NewTestTroll()
	troll.Abilities = append(troll.Abilities, battle.Ability{
		ID: "roar", Name: "Roar", ManaCost: 150, Cooldown: 4, Category: battle.CategoryBuff,
	})

	s.Run("heads buffs", func() {
		s.roller.Push(2)
		action, err := s.engine.SelectAction(troll, testutils.NewTestPlayer())
		s.Require().NoError(err)
		s.Equal(engine.UseAbility(2), action)
	})

	s.Run("tails attacks", func() {
		// coin, then the pick among the single offensive ability
		s.roller.Push(1, 1)
		action, err := s.engine.SelectAction(troll, testutils.NewTestPlayer())
		s.Require().NoError(err)
		s.Equal(engine.UseAbility(0), action)
	})

	s.Equal([]int{2, 2, 1}, s.roller.Sizes())
}

func (s *EngineTestSuite) TestOpponentPicksUniformlyAmongOffense() {
	wizard := testutils.NewTestWizard()

	for roll, expected := range map[int]int{1: 0, 2: 1} {
		s.roller.Push(roll)
		action, err := s.engine.SelectAction(wizard, testutils.NewTestPlayer())
		s.Require().NoError(err)
		s.Equal(engine.UseAbility(expected), action)
	}

	// no buff ability means no coin flip
	s.Equal([]int{2, 2}, s.roller.Sizes())
}

func (s *EngineTestSuite) TestOpponentHealsUnderFortyPercent() {
	troll := testutils.NewTestTroll()
	troll.Health = 1279

	action, err := s.engine.SelectAction(troll, testutils.NewTestPlayer())
	s.Require().NoError(err)
	s.Equal(engine.UseAbility(1), action)

	troll.Health = 1280
	s.roller.Push(1)
	action, err = s.engine.SelectAction(troll, testutils.NewTestPlayer())
	s.Require().NoError(err)
	s.Equal(engine.UseAbility(0), action)
}

func (s *EngineTestSuite) TestSelectedAbilityIsAlwaysAffordable() {
	wizard := testutils.NewTestWizard()
	s.roller.WithFallback(1_000_000)

	for mana := 0; mana <= 300; mana += 10 {
		wizard.Mana = mana
		action, err := s.engine.SelectAction(wizard, testutils.NewTestPlayer())
		s.Require().NoError(err)
		if action.Kind == engine.ActionAbility {
			s.GreaterOrEqual(wizard.Mana, wizard.Abilities[action.AbilityIndex].ManaCost)
		}
	}
}

func (s *EngineTestSuite) TestSelectActionRequiresBothSides() {
	_, err := s.engine.SelectAction(nil, testutils.NewTestPlayer())
	s.Error(err)
}
