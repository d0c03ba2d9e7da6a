package spectator

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

const barWidth = 20

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiPurple = "\x1b[35m"
	ansiGray   = "\x1b[90m"
)

var categoryColors = map[battle.LogCategory]string{
	battle.LogAttack:   ansiRed,
	battle.LogAbility:  ansiBlue,
	battle.LogHeal:     ansiGreen,
	battle.LogBuff:     ansiYellow,
	battle.LogDebuff:   ansiPurple,
	battle.LogCritical: ansiRed,
	battle.LogSystem:   ansiGray,
}

func renderEntry(entry *battle.LogEntry) string {
	color, ok := categoryColors[entry.Category]
	if !ok {
		color = ansiReset
	}
	return fmt.Sprintf("%s[turn %d]%s %s%s%s", ansiGray, entry.Turn, ansiReset, color, entry.Message, ansiReset)
}

func renderOpponent(e *battle.Entity) string {
	return fmt.Sprintf("%-16s %-20s level %-3d health %d", e.ID, e.Name, e.Level, e.MaxHealth)
}

func healthBar(health, maxHealth int) string {
	filled := 0
	if maxHealth > 0 {
		filled = health * barWidth / maxHealth
	}
	if health > 0 && filled == 0 {
		filled = 1
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

func renderCombatant(e *battle.Entity) string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%-20s %s %d/%d", e.Name, healthBar(e.Health, e.MaxHealth), e.Health, e.MaxHealth)
}

func renderSummary(snap *arena.Snapshot, balance int64) string {
	var b strings.Builder
	b.WriteString("\n")
	switch snap.State {
	case arena.StateVictory:
		b.WriteString(ansiGreen + "VICTORY" + ansiReset)
	case arena.StateDefeat:
		b.WriteString(ansiRed + "DEFEAT" + ansiReset)
	default:
		b.WriteString(strings.ToUpper(string(snap.State)))
	}
	fmt.Fprintf(&b, " after %d turns\n", snap.Turn)
	b.WriteString(renderCombatant(snap.Player) + "\n")
	b.WriteString(renderCombatant(snap.Opponent) + "\n")
	if snap.Rewards != nil {
		fmt.Fprintf(&b, "Rewards: %d XP and %d gold\n", snap.Rewards.Experience, snap.Rewards.Gold)
	}
	fmt.Fprintf(&b, "Gold: %d\n", balance)
	return b.String()
}
