// Package battle contains the combat entities of the arena: combatants, their abilities,
// timed stat modifiers and the narrated battle log.
package battle

// Side identifies which half of the arena a combatant fights for
type Side string

// Sides of a battle
const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// Opposite returns the other side
func (s Side) Opposite() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// AbilityCategory determines how an ability resolves
type AbilityCategory string

// Ability categories
const (
	CategoryPhysical AbilityCategory = "physical"
	CategoryMagical  AbilityCategory = "magical"
	CategoryHeal     AbilityCategory = "heal"
	CategoryBuff     AbilityCategory = "buff"
	CategoryDebuff   AbilityCategory = "debuff"
)

// IsDamaging reports whether the category deals direct damage
func (c AbilityCategory) IsDamaging() bool {
	return c == CategoryPhysical || c == CategoryMagical
}

// IsValid reports whether c is a known category
func (c AbilityCategory) IsValid() bool {
	switch c {
	case CategoryPhysical, CategoryMagical, CategoryHeal, CategoryBuff, CategoryDebuff:
		return true
	}
	return false
}

// Stat names a combat stat that modifiers can change
type Stat string

// Modifiable stats
const (
	StatAttack         Stat = "attack"
	StatDefense        Stat = "defense"
	StatSpeed          Stat = "speed"
	StatCriticalChance Stat = "critChance"
)

// LogCategory classifies a battle log entry for presentation
type LogCategory string

// Log categories
const (
	LogAttack   LogCategory = "attack"
	LogAbility  LogCategory = "ability"
	LogHeal     LogCategory = "heal"
	LogBuff     LogCategory = "buff"
	LogDebuff   LogCategory = "debuff"
	LogCritical LogCategory = "critical"
	LogSystem   LogCategory = "system"
)

// Rewards are granted to the player after a victory
type Rewards struct {
	Experience int `json:"experience"`
	Gold       int `json:"gold"`
}
