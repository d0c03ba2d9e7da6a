package engine_test

import (
	"github.com/KirkDiggler/rpg-arena/internal/engine"
	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

func (s *EngineTestSuite) execute(actor, target *battle.Entity, action *engine.Action) {
	s.Require().NoError(s.engine.Execute(&engine.ExecuteInput{
		Actor:    actor,
		Target:   target,
		Action:   action,
		Turn:     4,
		Recorder: s.recorder(),
	}))
}

func (s *EngineTestSuite) TestBasicAttack() {
	testCases := []struct {
		name     string
		roll     int
		damage   int
		category battle.LogCategory
		message  string
	}{
		{
			name:     "regular hit is mitigated and floored",
			roll:     16,
			damage:   286,
			category: battle.LogAttack,
			message:  "DragonSlayer attacks Guard with a basic attack.",
		},
		{
			name:     "critical hit applies the multiplier before flooring",
			roll:     15,
			damage:   573,
			category: battle.LogCritical,
			message:  "DragonSlayer lands a critical hit with a basic attack!",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.entries = nil
			player := testutils.NewTestPlayer()
			target := testutils.NewTestBrawler("Guard", battle.SideOpponent, 1000, 100, 220, 100)
			s.roller.Push(tc.roll)

			s.execute(player, target, engine.BasicAttack())

			s.Equal(1000-tc.damage, target.Health)
			s.Require().Len(s.entries, 1)
			entry := s.entries[0]
			s.Equal(tc.category, entry.Category)
			s.Equal(tc.message, entry.Message)
			s.Equal(4, entry.Turn)
			s.Require().NotNil(entry.Damage)
			s.Equal(tc.damage, *entry.Damage)
			s.Nil(entry.Heal)
		})
	}
}

func (s *EngineTestSuite) TestDamagingAbilitySpendsManaAndStartsCooldown() {
	player, troll := testutils.NewTestPlayer(), testutils.NewTestTroll()
	s.roller.Push(100)

	s.execute(player, troll, engine.UseAbility(0))

	s.Equal(3200-375, troll.Health)
	s.Equal(3800-120, player.Mana)
	s.Equal(2, player.Abilities[0].CurrentCooldown)
	s.Require().Len(s.entries, 1)
	s.Equal("DragonSlayer casts Fireball.", s.entries[0].Message)
	s.Equal(battle.LogAbility, s.entries[0].Category)
}

func (s *EngineTestSuite) TestOpponentCriticalAbility() {
	player, troll := testutils.NewTestPlayer(), testutils.NewTestTroll()
	s.roller.Push(1)

	s.execute(troll, player, engine.UseAbility(0))

	// 320 * (1 - 220/1220) * 1.5
	s.Equal(4200-393, player.Health)
	s.Equal("Forest Troll uses Club Smash for a critical hit!", s.entries[0].Message)
	s.Equal(battle.LogCritical, s.entries[0].Category)
}

func (s *EngineTestSuite) TestHealClampsAtMax() {
	troll := testutils.NewTestTroll()
	troll.Health = 3100

	s.execute(troll, testutils.NewTestPlayer(), engine.UseAbility(1))

	s.Equal(3200, troll.Health)
	s.Equal(900, troll.Mana)
	s.Equal(4, troll.Abilities[1].CurrentCooldown)
	s.Require().Len(s.entries, 1)
	entry := s.entries[0]
	s.Equal(battle.LogHeal, entry.Category)
	s.Equal("Forest Troll uses Regeneration and heals for 200 health.", entry.Message)
	s.Require().NotNil(entry.Heal)
	s.Equal(200, *entry.Heal)
	s.Nil(entry.Damage)
	s.Empty(s.roller.Sizes())
}

func (s *EngineTestSuite) TestPlayerBuffRaisesDefense() {
	player, troll := testutils.NewTestPlayer(), testutils.NewTestTroll()

	s.execute(player, troll, engine.UseAbility(2))

	s.Equal(270, player.Defense)
	s.Require().Len(player.Buffs, 1)
	buff := player.Buffs[0]
	s.Equal("mod_1", buff.ID)
	s.Equal("Mana Shield", buff.Name)
	s.Equal(3, buff.Duration)
	s.Equal(battle.StatDefense, buff.Stat)
	s.True(buff.IsPositive)
	s.Equal("shield", buff.Icon)
	s.Equal("DragonSlayer casts Mana Shield and gains increased defense.", s.entries[0].Message)
	s.Equal(battle.LogBuff, s.entries[0].Category)
	s.Equal(3800-150, player.Mana)
}

func (s *EngineTestSuite) TestOpponentBuffRaisesAttack() {
	troll := testutils.NewTestTroll()
	troll.Abilities = append(troll.Abilities, battle.Ability{
		ID: "roar", Name: "Roar", Cooldown: 4, Category: battle.CategoryBuff,
	})

	s.execute(troll, testutils.NewTestPlayer(), engine.UseAbility(2))

	s.Equal(320, troll.Attack)
	s.Equal("Forest Troll uses Roar and grows stronger.", s.entries[0].Message)
}

func (s *EngineTestSuite) TestDebuffWeakensTheOtherSide() {
	testCases := []struct {
		name      string
		caster    *battle.Entity
		target    *battle.Entity
		attack    int
		narration string
	}{
		{
			name:      "opponent curse takes fifty attack",
			caster:    testutils.NewTestWizard(),
			target:    testutils.NewTestPlayer(),
			attack:    300,
			narration: "Dark Wizard uses Curse of Weakness and weakens DragonSlayer.",
		},
		{
			name: "player curse takes forty attack",
			caster: func() *battle.Entity {
				p := testutils.NewTestPlayer()
				p.Abilities = append(p.Abilities, battle.Ability{
					ID: "hex", Name: "Hex", Cooldown: 2, Category: battle.CategoryDebuff,
				})
				return p
			}(),
			target:    testutils.NewTestWizard(),
			attack:    160,
			narration: "DragonSlayer casts Hex and weakens Dark Wizard.",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.entries = nil
			index := len(tc.caster.Abilities) - 1

			s.execute(tc.caster, tc.target, engine.UseAbility(index))

			s.Equal(tc.attack, tc.target.Attack)
			s.Require().Len(tc.target.Debuffs, 1)
			s.False(tc.target.Debuffs[0].IsPositive)
			s.Equal(3, tc.target.Debuffs[0].Duration)
			s.Empty(tc.caster.Debuffs)
			s.Equal(tc.narration, s.entries[0].Message)
			s.Equal(battle.LogDebuff, s.entries[0].Category)
		})
	}
}

func (s *EngineTestSuite) TestExecuteRejectsBadInput() {
	err := s.engine.Execute(&engine.ExecuteInput{
		Actor:    testutils.NewTestPlayer(),
		Target:   testutils.NewTestTroll(),
		Action:   engine.UseAbility(9),
		Recorder: s.recorder(),
	})
	s.True(errors.IsInvalidArgument(err))

	err = s.engine.Execute(&engine.ExecuteInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestRollerFailureSurfaces() {
	// the scripted roller errors once it runs dry
	err := s.engine.Execute(&engine.ExecuteInput{
		Actor:    testutils.NewTestPlayer(),
		Target:   testutils.NewTestTroll(),
		Action:   engine.BasicAttack(),
		Recorder: s.recorder(),
	})
	s.Error(err)
	s.Empty(s.entries)
}
