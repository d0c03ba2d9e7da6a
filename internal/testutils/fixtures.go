package testutils

import (
	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
)

// NewTestPlayer returns the default arena hero at full health
func NewTestPlayer() *battle.Entity {
	return &battle.Entity{
		ID:             "dragon-slayer",
		Name:           "DragonSlayer",
		Side:           battle.SidePlayer,
		Level:          42,
		Health:         4200,
		MaxHealth:      4200,
		Mana:           3800,
		MaxMana:        3800,
		Attack:         350,
		Defense:        220,
		Speed:          180,
		CritChance:     15,
		CritMultiplier: 2.0,
		Abilities: []battle.Ability{
			{ID: "fireball", Name: "Fireball", Damage: 450, ManaCost: 120, Cooldown: 2,
				Category: battle.CategoryMagical, Icon: "flame"},
			{ID: "arcane-missiles", Name: "Arcane Missiles", Damage: 300, ManaCost: 80, Cooldown: 1,
				Category: battle.CategoryMagical, Icon: "sparkles"},
			{ID: "mana-shield", Name: "Mana Shield", ManaCost: 150, Cooldown: 3,
				Category: battle.CategoryBuff, Icon: "shield"},
		},
	}
}

// NewTestTroll returns the level 38 forest troll
func NewTestTroll() *battle.Entity {
	return &battle.Entity{
		ID:             "forest-troll",
		Name:           "Forest Troll",
		Side:           battle.SideOpponent,
		Level:          38,
		Health:         3200,
		MaxHealth:      3200,
		Mana:           1000,
		MaxMana:        1000,
		Attack:         280,
		Defense:        200,
		Speed:          120,
		CritChance:     8,
		CritMultiplier: 1.5,
		Abilities: []battle.Ability{
			{ID: "club-smash", Name: "Club Smash", Damage: 320, Cooldown: 2,
				Category: battle.CategoryPhysical, Icon: "swords"},
			{ID: "regeneration", Name: "Regeneration", Damage: -200, ManaCost: 100, Cooldown: 4,
				Category: battle.CategoryHeal, Icon: "heart"},
		},
	}
}

// NewTestWizard returns the level 40 dark wizard
func NewTestWizard() *battle.Entity {
	return &battle.Entity{
		ID:             "dark-wizard",
		Name:           "Dark Wizard",
		Side:           battle.SideOpponent,
		Level:          40,
		Health:         2800,
		MaxHealth:      2800,
		Mana:           3000,
		MaxMana:        3000,
		Attack:         200,
		Defense:        150,
		Speed:          160,
		CritChance:     12,
		CritMultiplier: 1.8,
		Abilities: []battle.Ability{
			{ID: "shadow-bolt", Name: "Shadow Bolt", Damage: 380, ManaCost: 120, Cooldown: 1,
				Category: battle.CategoryMagical, Icon: "zap"},
			{ID: "curse-of-weakness", Name: "Curse of Weakness", ManaCost: 150, Cooldown: 3,
				Category: battle.CategoryDebuff, Icon: "skull"},
		},
	}
}

// NewTestBrawler returns a combatant with no abilities, which always basic attacks
func NewTestBrawler(id string, side battle.Side, health, attack, defense, speed int) *battle.Entity {
	return &battle.Entity{
		ID:             id,
		Name:           id,
		Side:           side,
		Level:          1,
		Health:         health,
		MaxHealth:      health,
		Attack:         attack,
		Defense:        defense,
		Speed:          speed,
		CritMultiplier: 2.0,
	}
}
