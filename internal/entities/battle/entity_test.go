package battle_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
)

type EntityTestSuite struct {
	suite.Suite
	entity *battle.Entity
}

func TestEntitySuite(t *testing.T) {
	suite.Run(t, new(EntityTestSuite))
}

func (s *EntityTestSuite) SetupTest() {
	s.entity = &battle.Entity{
		ID:        "player-1",
		Name:      "DragonSlayer",
		Side:      battle.SidePlayer,
		Health:    1000,
		MaxHealth: 1000,
		Mana:      300,
		MaxMana:   300,
		Attack:    350,
		Defense:   30,
		Speed:     180,
		Abilities: []battle.Ability{
			{ID: "fireball", Damage: 450, ManaCost: 120, Cooldown: 2, Category: battle.CategoryMagical},
			{ID: "shield", ManaCost: 400, Cooldown: 3, Category: battle.CategoryBuff},
			{ID: "missiles", Damage: 300, ManaCost: 80, Cooldown: 1, CurrentCooldown: 1, Category: battle.CategoryMagical},
		},
	}
}

func (s *EntityTestSuite) TestHealthClamping() {
	testCases := []struct {
		name     string
		apply    func(e *battle.Entity)
		expected int
	}{
		{
			name:     "damage lowers health",
			apply:    func(e *battle.Entity) { e.TakeDamage(286) },
			expected: 714,
		},
		{
			name:     "overkill stops at zero",
			apply:    func(e *battle.Entity) { e.TakeDamage(5000) },
			expected: 0,
		},
		{
			name: "healing stops at max",
			apply: func(e *battle.Entity) {
				e.TakeDamage(100)
				e.Heal(200)
			},
			expected: 1000,
		},
		{
			name: "healing restores part of the pool",
			apply: func(e *battle.Entity) {
				e.TakeDamage(500)
				e.Heal(200)
			},
			expected: 700,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.apply(s.entity)
			s.Equal(tc.expected, s.entity.Health)
			s.GreaterOrEqual(s.entity.Health, 0)
			s.LessOrEqual(s.entity.Health, s.entity.MaxHealth)
		})
	}
}

func (s *EntityTestSuite) TestDefeated() {
	s.False(s.entity.IsDefeated())
	s.entity.TakeDamage(1000)
	s.True(s.entity.IsDefeated())
}

func (s *EntityTestSuite) TestSpendManaNeverNegative() {
	s.entity.SpendMana(500)
	s.Equal(0, s.entity.Mana)
}

func (s *EntityTestSuite) TestEligibleAbilities() {
	// shield is too expensive and missiles is cooling down
	s.Equal([]int{0}, s.entity.EligibleAbilities())

	s.entity.Mana = 400
	s.entity.TickCooldowns()
	s.Equal([]int{0, 1, 2}, s.entity.EligibleAbilities())
}

func (s *EntityTestSuite) TestCooldownLifecycle() {
	s.entity.UseAbility(0)
	s.Equal(2, s.entity.Abilities[0].CurrentCooldown)
	s.Equal(180, s.entity.Mana)

	s.entity.TickCooldowns()
	s.Equal(1, s.entity.Abilities[0].CurrentCooldown)
	s.entity.TickCooldowns()
	s.Equal(0, s.entity.Abilities[0].CurrentCooldown)
	s.entity.TickCooldowns()
	s.Equal(0, s.entity.Abilities[0].CurrentCooldown)
}

func (s *EntityTestSuite) TestBuffExpiresAfterThreeTicksAndReverses() {
	s.entity.AddModifier(battle.Modifier{
		ID:         "buff-1",
		Name:       "Mana Shield",
		Duration:   3,
		Stat:       battle.StatDefense,
		Value:      50,
		IsPositive: true,
	})
	s.Equal(80, s.entity.Defense)
	s.Len(s.entity.Buffs, 1)

	s.Empty(s.entity.TickModifiers())
	s.Empty(s.entity.TickModifiers())
	s.Len(s.entity.Buffs, 1)
	s.Equal(1, s.entity.Buffs[0].Duration)

	expired := s.entity.TickModifiers()
	s.Require().Len(expired, 1)
	s.Equal("buff-1", expired[0].ID)
	s.Empty(s.entity.Buffs)
	s.Equal(30, s.entity.Defense)
}

func (s *EntityTestSuite) TestDebuffClampsAtZeroAndReversesAppliedDelta() {
	s.entity.Attack = 30

	stored := s.entity.AddModifier(battle.Modifier{
		ID:       "debuff-1",
		Duration: 1,
		Stat:     battle.StatAttack,
		Value:    -40,
	})
	s.Equal(0, s.entity.Attack)
	s.Equal(-30, stored.Applied)
	s.Len(s.entity.Debuffs, 1)

	s.entity.TickModifiers()
	s.Equal(30, s.entity.Attack)
	s.Empty(s.entity.Debuffs)
}

func (s *EntityTestSuite) TestStackedModifiersNetToZero() {
	original := s.entity.Defense
	for i := 0; i < 3; i++ {
		s.entity.AddModifier(battle.Modifier{Duration: 3 - i, Stat: battle.StatDefense, Value: 50, IsPositive: true})
	}
	s.Equal(original+150, s.entity.Defense)

	for i := 0; i < 3; i++ {
		s.entity.TickModifiers()
	}
	s.Equal(original, s.entity.Defense)
	s.Empty(s.entity.Buffs)
}

func (s *EntityTestSuite) TestOpposingModifiersRestoreBaseAfterClamping() {
	s.entity.Attack = 30

	s.entity.AddModifier(battle.Modifier{ID: "rage", Duration: 2, Stat: battle.StatAttack, Value: 40, IsPositive: true})
	s.Equal(70, s.entity.Attack)
	s.entity.AddModifier(battle.Modifier{ID: "weaken", Duration: 3, Stat: battle.StatAttack, Value: -50})
	s.Equal(20, s.entity.Attack)

	s.Empty(s.entity.TickModifiers())
	s.Equal(20, s.entity.Attack)

	// the buff ends while the debuff still outweighs the base
	expired := s.entity.TickModifiers()
	s.Require().Len(expired, 1)
	s.Equal("rage", expired[0].ID)
	s.Equal(0, s.entity.Attack)

	expired = s.entity.TickModifiers()
	s.Require().Len(expired, 1)
	s.Equal("weaken", expired[0].ID)
	s.Equal(30, s.entity.Attack)
	s.Empty(s.entity.Buffs)
	s.Empty(s.entity.Debuffs)
}

func (s *EntityTestSuite) TestModifiersNetToZeroInAnyExpiryOrder() {
	testCases := []struct {
		name      string
		base      int
		modifiers []battle.Modifier
	}{
		{
			name: "debuff outlasts buff",
			base: 30,
			modifiers: []battle.Modifier{
				{Duration: 1, Stat: battle.StatAttack, Value: 40, IsPositive: true},
				{Duration: 3, Stat: battle.StatAttack, Value: -50},
			},
		},
		{
			name: "buff outlasts debuff",
			base: 10,
			modifiers: []battle.Modifier{
				{Duration: 1, Stat: battle.StatAttack, Value: -40},
				{Duration: 3, Stat: battle.StatAttack, Value: 40, IsPositive: true},
			},
		},
		{
			name: "two debuffs below zero then a buff",
			base: 30,
			modifiers: []battle.Modifier{
				{Duration: 2, Stat: battle.StatAttack, Value: -40},
				{Duration: 1, Stat: battle.StatAttack, Value: -50},
				{Duration: 3, Stat: battle.StatAttack, Value: 40, IsPositive: true},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.entity.Attack = tc.base
			for _, m := range tc.modifiers {
				s.entity.AddModifier(m)
				s.GreaterOrEqual(s.entity.Attack, 0)
			}
			for i := 0; i < 3; i++ {
				s.entity.TickModifiers()
				s.GreaterOrEqual(s.entity.Attack, 0)
			}
			s.Equal(tc.base, s.entity.Attack)
		})
	}
}

func (s *EntityTestSuite) TestCloneKeepsModifierBase() {
	s.entity.Attack = 30
	s.entity.AddModifier(battle.Modifier{Duration: 1, Stat: battle.StatAttack, Value: -50})
	clone := s.entity.Clone()

	clone.TickModifiers()
	s.Equal(30, clone.Attack)
	s.Equal(0, s.entity.Attack)
}

func (s *EntityTestSuite) TestCritChanceCapsAtHundred() {
	s.entity.CritChance = 90
	stored := s.entity.AddModifier(battle.Modifier{Duration: 1, Stat: battle.StatCriticalChance, Value: 40, IsPositive: true})
	s.Equal(100, s.entity.CritChance)
	s.Equal(10, stored.Applied)
}

func (s *EntityTestSuite) TestCloneIsDeep() {
	s.entity.AddModifier(battle.Modifier{Duration: 2, Stat: battle.StatDefense, Value: 50, IsPositive: true})
	clone := s.entity.Clone()

	clone.Abilities[0].CurrentCooldown = 2
	clone.Buffs[0].Duration = 99
	clone.TakeDamage(100)

	s.Equal(0, s.entity.Abilities[0].CurrentCooldown)
	s.Equal(2, s.entity.Buffs[0].Duration)
	s.Equal(1000, s.entity.Health)
}

func (s *EntityTestSuite) TestIdentity() {
	s.Equal("player-1", s.entity.GetID())
	s.Equal("player", s.entity.GetType())
	s.Equal(battle.SideOpponent, battle.SidePlayer.Opposite())
}

func TestLogIsNewestFirst(t *testing.T) {
	log := &battle.Log{}
	log.Prepend(battle.LogEntry{ID: "1", Message: "first"})
	log.Prepend(battle.LogEntry{ID: "2", Message: "second"})

	entries := log.Entries()
	if len(entries) != 2 || entries[0].ID != "2" || entries[1].ID != "1" {
		t.Fatalf("unexpected order: %+v", entries)
	}

	log.Clear()
	if log.Len() != 0 {
		t.Fatalf("expected empty log, got %d entries", log.Len())
	}
}
