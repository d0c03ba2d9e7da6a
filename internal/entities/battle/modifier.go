package battle

// Modifier is a timed change to one stat. Buffs are positive, debuffs negative.
// Applied holds the change the stat actually saw when the modifier landed, after clamping.
type Modifier struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Duration   int    `json:"duration"`
	Stat       Stat   `json:"stat"`
	Value      int    `json:"value"`
	Applied    int    `json:"applied"`
	IsPositive bool   `json:"is_positive"`
	Icon       string `json:"icon,omitempty"`
}

// AddModifier applies m to the entity's stat and tracks it as a buff or debuff
// depending on its polarity. The stored copy is returned.
//
// A modified stat is always its unmodified base plus the values of the active
// modifiers, clamped, so removing every modifier restores the base exactly.
func (e *Entity) AddModifier(m Modifier) Modifier {
	field, _ := e.statField(m.Stat)
	if field == nil {
		return m
	}
	if _, ok := e.bases[m.Stat]; !ok {
		if e.bases == nil {
			e.bases = make(map[Stat]int)
		}
		e.bases[m.Stat] = *field
	}

	before := *field
	if m.IsPositive {
		e.Buffs = append(e.Buffs, m)
	} else {
		e.Debuffs = append(e.Debuffs, m)
	}
	e.refreshStat(m.Stat)
	m.Applied = *field - before

	if m.IsPositive {
		e.Buffs[len(e.Buffs)-1] = m
	} else {
		e.Debuffs[len(e.Debuffs)-1] = m
	}
	return m
}

// TickModifiers decrements every buff and debuff by one turn. Modifiers reaching zero
// are removed and their stats recomputed. The expired modifiers are returned.
func (e *Entity) TickModifiers() []Modifier {
	var expired []Modifier
	e.Buffs, expired = tick(e.Buffs, expired)
	e.Debuffs, expired = tick(e.Debuffs, expired)

	for _, m := range expired {
		e.refreshStat(m.Stat)
	}
	return expired
}

func tick(mods []Modifier, expired []Modifier) ([]Modifier, []Modifier) {
	kept := mods[:0]
	for _, m := range mods {
		m.Duration--
		if m.Duration > 0 {
			kept = append(kept, m)
			continue
		}
		expired = append(expired, m)
	}
	if len(kept) == 0 {
		return nil, expired
	}
	return kept, expired
}
