package v1alpha1

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

// Request field names
const (
	FieldSessionID  = "session_id"
	FieldPlayerID   = "player_id"
	FieldOpponentID = "opponent_id"
	FieldSpeed      = "speed"
	FieldEnabled    = "enabled"
)

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

func boolField(req *structpb.Struct, name string) bool {
	return req.GetFields()[name].GetBoolValue()
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to encode response")
	}
	return s, nil
}

func convertSnapshot(snap *arena.Snapshot) map[string]any {
	if snap == nil {
		return nil
	}

	log := make([]any, len(snap.Log))
	for i := range snap.Log {
		log[i] = convertLogEntry(&snap.Log[i])
	}

	m := map[string]any{
		"session_id":        snap.SessionID,
		"player_id":         snap.PlayerID,
		"state":             string(snap.State),
		"turn":              snap.Turn,
		"player":            convertEntity(snap.Player),
		"log":               log,
		"rewards_delivered": snap.RewardsDelivered,
		"auto_progress":     snap.AutoProgress,
		"speed":             string(snap.Speed),
	}
	if snap.Opponent != nil {
		m["opponent"] = convertEntity(snap.Opponent)
	}
	if snap.Rewards != nil {
		m["rewards"] = map[string]any{
			"experience": snap.Rewards.Experience,
			"gold":       snap.Rewards.Gold,
		}
	}
	return m
}

func convertEntity(e *battle.Entity) map[string]any {
	if e == nil {
		return nil
	}

	abilities := make([]any, len(e.Abilities))
	for i, a := range e.Abilities {
		abilities[i] = map[string]any{
			"id":               a.ID,
			"name":             a.Name,
			"damage":           a.Damage,
			"mana_cost":        a.ManaCost,
			"cooldown":         a.Cooldown,
			"current_cooldown": a.CurrentCooldown,
			"category":         string(a.Category),
			"description":      a.Description,
			"icon":             a.Icon,
		}
	}

	return map[string]any{
		"id":              e.ID,
		"name":            e.Name,
		"side":            string(e.Side),
		"level":           e.Level,
		"health":          e.Health,
		"max_health":      e.MaxHealth,
		"mana":            e.Mana,
		"max_mana":        e.MaxMana,
		"attack":          e.Attack,
		"defense":         e.Defense,
		"speed":           e.Speed,
		"crit_chance":     e.CritChance,
		"crit_multiplier": e.CritMultiplier,
		"abilities":       abilities,
		"buffs":           convertModifiers(e.Buffs),
		"debuffs":         convertModifiers(e.Debuffs),
		"image":           e.Image,
	}
}

func convertModifiers(mods []battle.Modifier) []any {
	out := make([]any, len(mods))
	for i, m := range mods {
		out[i] = map[string]any{
			"id":          m.ID,
			"name":        m.Name,
			"duration":    m.Duration,
			"stat":        string(m.Stat),
			"value":       m.Value,
			"is_positive": m.IsPositive,
			"icon":        m.Icon,
		}
	}
	return out
}

func convertLogEntry(entry *battle.LogEntry) map[string]any {
	m := map[string]any{
		"id":       entry.ID,
		"turn":     entry.Turn,
		"message":  entry.Message,
		"category": string(entry.Category),
	}
	if entry.Damage != nil {
		m["damage"] = *entry.Damage
	}
	if entry.Heal != nil {
		m["heal"] = *entry.Heal
	}
	return m
}

func convertUpdate(update *arena.Update) map[string]any {
	m := map[string]any{
		"session_id": update.SessionID,
	}
	if update.Entry != nil {
		m["entry"] = convertLogEntry(update.Entry)
	}
	if update.State != "" {
		m["state"] = string(update.State)
	}
	return m
}
