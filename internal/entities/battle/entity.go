package battle

// Ability is a named action a combatant can use. A negative Damage is a heal magnitude.
type Ability struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Damage          int             `json:"damage"`
	ManaCost        int             `json:"mana_cost"`
	Cooldown        int             `json:"cooldown"`
	CurrentCooldown int             `json:"current_cooldown"`
	Category        AbilityCategory `json:"category"`
	Description     string          `json:"description,omitempty"`
	Icon            string          `json:"icon,omitempty"`
}

// IsReady reports whether the ability is off cooldown
func (a *Ability) IsReady() bool {
	return a.CurrentCooldown == 0
}

// Entity is one combatant. All mutation goes through its methods so the
// health, mana and stat invariants hold after every call.
type Entity struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Side           Side       `json:"side"`
	Level          int        `json:"level"`
	Health         int        `json:"health"`
	MaxHealth      int        `json:"max_health"`
	Mana           int        `json:"mana"`
	MaxMana        int        `json:"max_mana"`
	Attack         int        `json:"attack"`
	Defense        int        `json:"defense"`
	Speed          int        `json:"speed"`
	CritChance     int        `json:"crit_chance"`
	CritMultiplier float64    `json:"crit_multiplier"`
	Abilities      []Ability  `json:"abilities"`
	Buffs          []Modifier `json:"buffs"`
	Debuffs        []Modifier `json:"debuffs"`
	Image          string     `json:"image,omitempty"`

	// bases holds the unmodified value of every stat that has active modifiers
	bases map[Stat]int
}

// GetID returns the combatant id
func (e *Entity) GetID() string {
	return e.ID
}

// GetType returns the side the combatant fights for
func (e *Entity) GetType() string {
	return string(e.Side)
}

// IsDefeated reports whether the combatant has no health left
func (e *Entity) IsDefeated() bool {
	return e.Health <= 0
}

// TakeDamage lowers health, never below zero
func (e *Entity) TakeDamage(amount int) {
	e.Health = clamp(e.Health-amount, 0, e.MaxHealth)
}

// Heal raises health, never above the maximum
func (e *Entity) Heal(amount int) {
	e.Health = clamp(e.Health+amount, 0, e.MaxHealth)
}

// SpendMana lowers mana, never below zero
func (e *Entity) SpendMana(amount int) {
	e.Mana = clamp(e.Mana-amount, 0, e.MaxMana)
}

// BelowHealth reports whether health is strictly under fraction of the maximum
func (e *Entity) BelowHealth(fraction float64) bool {
	return float64(e.Health) < float64(e.MaxHealth)*fraction
}

// EligibleAbilities returns the indexes of abilities that are off cooldown and affordable,
// in definition order
func (e *Entity) EligibleAbilities() []int {
	var eligible []int
	for i := range e.Abilities {
		if e.Abilities[i].IsReady() && e.Mana >= e.Abilities[i].ManaCost {
			eligible = append(eligible, i)
		}
	}
	return eligible
}

// UseAbility spends the ability's mana and puts it on cooldown
func (e *Entity) UseAbility(index int) {
	ability := &e.Abilities[index]
	e.SpendMana(ability.ManaCost)
	ability.CurrentCooldown = ability.Cooldown
}

// TickCooldowns reduces every cooldown by one turn, floor zero
func (e *Entity) TickCooldowns() {
	for i := range e.Abilities {
		if e.Abilities[i].CurrentCooldown > 0 {
			e.Abilities[i].CurrentCooldown--
		}
	}
}

// StatValue returns the current value of a modifiable stat
func (e *Entity) StatValue(stat Stat) int {
	switch stat {
	case StatAttack:
		return e.Attack
	case StatDefense:
		return e.Defense
	case StatSpeed:
		return e.Speed
	case StatCriticalChance:
		return e.CritChance
	}
	return 0
}

func (e *Entity) statField(stat Stat) (*int, int) {
	switch stat {
	case StatAttack:
		return &e.Attack, maxStat
	case StatDefense:
		return &e.Defense, maxStat
	case StatSpeed:
		return &e.Speed, maxStat
	case StatCriticalChance:
		return &e.CritChance, 100
	}
	return nil, 0
}

const maxStat = int(^uint(0) >> 1)

// refreshStat sets a stat to its base plus every active modifier on it, clamped at
// zero (critical chance also at 100). The base is forgotten once no modifier is left.
func (e *Entity) refreshStat(stat Stat) {
	field, upper := e.statField(stat)
	if field == nil {
		return
	}
	base, ok := e.bases[stat]
	if !ok {
		return
	}

	value, active := base, false
	for _, mods := range [][]Modifier{e.Buffs, e.Debuffs} {
		for _, m := range mods {
			if m.Stat == stat {
				value += m.Value
				active = true
			}
		}
	}
	*field = clamp(value, 0, upper)

	if !active {
		delete(e.bases, stat)
	}
}

// Clone returns a deep copy
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	c := *e
	c.Abilities = append([]Ability(nil), e.Abilities...)
	c.Buffs = append([]Modifier(nil), e.Buffs...)
	c.Debuffs = append([]Modifier(nil), e.Debuffs...)
	if e.bases != nil {
		c.bases = make(map[Stat]int, len(e.bases))
		for stat, base := range e.bases {
			c.bases[stat] = base
		}
	}
	return &c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
