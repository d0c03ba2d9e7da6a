package engine_test

import (
	"strings"

	"github.com/KirkDiggler/rpg-arena/internal/engine"
	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

func (s *EngineTestSuite) resolve(player, opponent *battle.Entity, turn int) *engine.ResolveTurnOutput {
	out, err := s.engine.ResolveTurn(&engine.ResolveTurnInput{
		Player:   player,
		Opponent: opponent,
		Turn:     turn,
		Recorder: s.recorder(),
	})
	s.Require().NoError(err)
	return out
}

func (s *EngineTestSuite) TestTurnOrderFollowsSpeed() {
	testCases := []struct {
		name          string
		playerSpeed   int
		opponentSpeed int
		expected      []battle.Side
		firstName     string
	}{
		{"faster player acts first", 180, 120, []battle.Side{battle.SidePlayer, battle.SideOpponent}, "Hero"},
		{"faster opponent acts first", 100, 160, []battle.Side{battle.SideOpponent, battle.SidePlayer}, "Ogre"},
		{"player wins speed ties", 150, 150, []battle.Side{battle.SidePlayer, battle.SideOpponent}, "Hero"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.entries = nil
			player := testutils.NewTestBrawler("Hero", battle.SidePlayer, 1000, 100, 0, tc.playerSpeed)
			opponent := testutils.NewTestBrawler("Ogre", battle.SideOpponent, 1000, 100, 0, tc.opponentSpeed)
			s.roller.Push(100, 100)

			out := s.resolve(player, opponent, 1)

			s.Equal(tc.expected, out.Acted)
			s.Empty(out.Winner)
			s.Equal(2, out.Turn)
			s.Require().Len(s.entries, 2)
			s.True(strings.HasPrefix(s.entries[0].Message, tc.firstName))
			s.Equal(900, player.Health)
			s.Equal(900, opponent.Health)
		})
	}
}

func (s *EngineTestSuite) TestPlayerActsFirstEveryTurnAgainstTheTroll() {
	player, troll := testutils.NewTestPlayer(), testutils.NewTestTroll()
	s.roller.WithFallback(1_000_000)

	for turn := 1; turn <= 3; turn++ {
		out := s.resolve(player, troll, turn)
		s.Equal(battle.SidePlayer, out.Acted[0])
	}
}

func (s *EngineTestSuite) TestDefeatedSideNeverActs() {
	player := testutils.NewTestBrawler("Hero", battle.SidePlayer, 1000, 100, 0, 180)
	opponent := testutils.NewTestBrawler("Ogre", battle.SideOpponent, 100, 100, 0, 120)
	s.roller.Push(100)

	out := s.resolve(player, opponent, 7)

	s.Equal(battle.SidePlayer, out.Winner)
	s.Equal([]battle.Side{battle.SidePlayer}, out.Acted)
	s.Equal(7, out.Turn)
	s.Equal(0, opponent.Health)
	s.Equal(1000, player.Health)
	s.Require().Len(s.entries, 1)
	s.False(strings.HasPrefix(s.entries[0].Message, "Ogre"))
	s.Zero(s.roller.Remaining())
}

func (s *EngineTestSuite) TestSecondActorCanWin() {
	player := testutils.NewTestBrawler("Hero", battle.SidePlayer, 50, 10, 0, 180)
	opponent := testutils.NewTestBrawler("Ogre", battle.SideOpponent, 1000, 100, 0, 120)
	s.roller.Push(100, 100)

	out := s.resolve(player, opponent, 3)

	s.Equal(battle.SideOpponent, out.Winner)
	s.Equal([]battle.Side{battle.SidePlayer, battle.SideOpponent}, out.Acted)
	s.Equal(3, out.Turn)
	s.True(player.IsDefeated())
}

func (s *EngineTestSuite) TestDecayAfterFullTurn() {
	player := testutils.NewTestBrawler("Hero", battle.SidePlayer, 1000, 100, 0, 180)
	opponent := testutils.NewTestBrawler("Ogre", battle.SideOpponent, 1000, 100, 0, 120)
	player.Abilities = []battle.Ability{
		{ID: "slam", Damage: 10, Cooldown: 3, CurrentCooldown: 3, Category: battle.CategoryPhysical},
	}
	player.AddModifier(battle.Modifier{ID: "ward", Duration: 1, Stat: battle.StatDefense, Value: 50, IsPositive: true})
	opponent.AddModifier(battle.Modifier{ID: "hex", Duration: 2, Stat: battle.StatAttack, Value: -40})
	s.roller.Push(100, 100)

	out := s.resolve(player, opponent, 1)

	s.Equal(2, player.Abilities[0].CurrentCooldown)
	s.Empty(player.Buffs)
	s.Equal(0, player.Defense)
	s.Require().Len(opponent.Debuffs, 1)
	s.Equal(1, opponent.Debuffs[0].Duration)
	s.Equal(60, opponent.Attack)
	s.Require().Len(out.Expired, 1)
	s.Equal("ward", out.Expired[0].ID)
}

func (s *EngineTestSuite) TestBuffCastInBattleExpiresAfterThreeTurns() {
	player := testutils.NewTestPlayer()
	opponent := testutils.NewTestBrawler("Ogre", battle.SideOpponent, 100000, 10, 0, 120)
	s.roller.WithFallback(1_000_000)

	// turn 1 the unbuffed player casts Mana Shield
	s.resolve(player, opponent, 1)
	s.Equal(270, player.Defense)
	s.Len(player.Buffs, 1)

	s.resolve(player, opponent, 2)
	s.Len(player.Buffs, 1)

	out := s.resolve(player, opponent, 3)
	s.Empty(player.Buffs)
	s.Equal(220, player.Defense)
	s.Require().Len(out.Expired, 1)
	s.Equal("Mana Shield", out.Expired[0].Name)
}

func (s *EngineTestSuite) TestStatsStayInBoundsThroughABattle() {
	player, troll := testutils.NewTestPlayer(), testutils.NewTestTroll()
	s.roller.WithFallback(1_000_000)

	for turn := 1; turn <= 100; turn++ {
		out := s.resolve(player, troll, turn)
		for _, e := range []*battle.Entity{player, troll} {
			s.GreaterOrEqual(e.Health, 0)
			s.LessOrEqual(e.Health, e.MaxHealth)
			s.GreaterOrEqual(e.Mana, 0)
			s.LessOrEqual(e.Mana, e.MaxMana)
			for _, a := range e.Abilities {
				s.GreaterOrEqual(a.CurrentCooldown, 0)
				s.LessOrEqual(a.CurrentCooldown, a.Cooldown)
			}
		}
		if out.Winner != "" {
			return
		}
	}
	s.Fail("battle never ended")
}

func (s *EngineTestSuite) TestResolveTurnRejectsSwappedSides() {
	_, err := s.engine.ResolveTurn(&engine.ResolveTurnInput{
		Player:   testutils.NewTestTroll(),
		Opponent: testutils.NewTestPlayer(),
		Recorder: s.recorder(),
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestRollRewards() {
	testCases := []struct {
		name       string
		rolls      []int
		experience int
		gold       int
	}{
		{"lowest variance", []int{1, 1}, 3800, 950},
		{"highest variance", []int{1_000_000, 1_000_000}, 4559, 1234},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.roller.Push(tc.rolls...)
			rewards, err := s.engine.RollRewards(38)
			s.Require().NoError(err)
			s.Equal(tc.experience, rewards.Experience)
			s.Equal(tc.gold, rewards.Gold)
			s.GreaterOrEqual(rewards.Experience, 3800)
			s.LessOrEqual(rewards.Experience, 4560)
			s.GreaterOrEqual(rewards.Gold, 950)
			s.LessOrEqual(rewards.Gold, 1235)
		})
	}
}
