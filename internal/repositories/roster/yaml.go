package roster

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

//go:embed default_roster.yaml
var defaultRoster []byte

// DefaultRoster returns the bundled roster document
func DefaultRoster() []byte {
	return append([]byte(nil), defaultRoster...)
}

type rosterFile struct {
	Player    *combatantTemplate   `yaml:"player"`
	Opponents []*combatantTemplate `yaml:"opponents"`
}

type combatantTemplate struct {
	ID             string            `yaml:"id"`
	Name           string            `yaml:"name"`
	Level          int               `yaml:"level"`
	Health         int               `yaml:"health"`
	Mana           int               `yaml:"mana"`
	Attack         int               `yaml:"attack"`
	Defense        int               `yaml:"defense"`
	Speed          int               `yaml:"speed"`
	CritChance     int               `yaml:"crit_chance"`
	CritMultiplier float64           `yaml:"crit_multiplier"`
	Image          string            `yaml:"image"`
	Abilities      []abilityTemplate `yaml:"abilities"`
}

type abilityTemplate struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Damage      int    `yaml:"damage"`
	ManaCost    int    `yaml:"mana_cost"`
	Cooldown    int    `yaml:"cooldown"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// YAMLConfig configures the YAML roster. With neither Path nor Data set the
// bundled default roster is used.
type YAMLConfig struct {
	Path string
	Data []byte
}

// Validate validates the YAMLConfig
func (cfg *YAMLConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Path != "" && len(cfg.Data) > 0 {
		return errors.InvalidArgument("only one of path or data may be set")
	}
	return nil
}

type yamlRepository struct {
	player    *battle.Entity
	opponents []*battle.Entity
	byID      map[string]*battle.Entity
}

// NewYAML loads and validates a roster document
func NewYAML(cfg *YAMLConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	data := cfg.Data
	source := "inline"
	switch {
	case cfg.Path != "":
		raw, err := os.ReadFile(cfg.Path)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeNotFound, "failed to read roster file").
				WithMeta("path", cfg.Path)
		}
		data, source = raw, cfg.Path
	case len(data) == 0:
		data, source = defaultRoster, "default"
	}

	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse roster")
	}
	if err := file.validate(); err != nil {
		return nil, err
	}

	repo := &yamlRepository{
		player: file.Player.toEntity(battle.SidePlayer),
		byID:   make(map[string]*battle.Entity, len(file.Opponents)),
	}
	for _, tmpl := range file.Opponents {
		opponent := tmpl.toEntity(battle.SideOpponent)
		repo.opponents = append(repo.opponents, opponent)
		repo.byID[opponent.ID] = opponent
	}

	slog.Info("Loaded roster",
		"source", source,
		"player", repo.player.Name,
		"opponents", len(repo.opponents))

	return repo, nil
}

func (r *yamlRepository) GetPlayer(_ context.Context, _ *GetPlayerInput) (*GetPlayerOutput, error) {
	return &GetPlayerOutput{Player: r.player.Clone()}, nil
}

func (r *yamlRepository) GetOpponent(_ context.Context, input *GetOpponentInput) (*GetOpponentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OpponentID == "" {
		return nil, errors.InvalidArgument("opponent ID is required")
	}

	opponent, ok := r.byID[input.OpponentID]
	if !ok {
		return nil, errors.NotFoundf("opponent %s not found", input.OpponentID)
	}

	return &GetOpponentOutput{Opponent: opponent.Clone()}, nil
}

func (r *yamlRepository) ListOpponents(_ context.Context, _ *ListOpponentsInput) (*ListOpponentsOutput, error) {
	out := make([]*battle.Entity, len(r.opponents))
	for i, opponent := range r.opponents {
		out[i] = opponent.Clone()
	}
	return &ListOpponentsOutput{Opponents: out}, nil
}

func (f *rosterFile) validate() error {
	vb := errors.NewValidationBuilder()

	if f.Player == nil {
		vb.RequiredField("player")
	} else {
		f.Player.validate("player", vb)
	}
	if len(f.Opponents) == 0 {
		vb.RequiredField("opponents")
	}

	seen := make(map[string]bool, len(f.Opponents))
	for i, tmpl := range f.Opponents {
		field := fmt.Sprintf("opponents[%d]", i)
		if tmpl == nil {
			vb.RequiredField(field)
			continue
		}
		tmpl.validate(field, vb)
		if seen[tmpl.ID] {
			vb.Fieldf(field+".id", "duplicate id %q", tmpl.ID)
		}
		seen[tmpl.ID] = true
	}

	return vb.Build()
}

func (t *combatantTemplate) validate(field string, vb *errors.ValidationBuilder) {
	errors.ValidateRequired(field+".id", t.ID, vb)
	errors.ValidateRequired(field+".name", t.Name, vb)
	errors.ValidatePositive(field+".level", t.Level, vb)
	errors.ValidatePositive(field+".health", t.Health, vb)
	errors.ValidateRange(field+".crit_chance", t.CritChance, 0, 100, vb)
	if t.Mana < 0 {
		vb.Field(field+".mana", "cannot be negative")
	}
	if t.Attack < 0 || t.Defense < 0 || t.Speed < 0 {
		vb.Field(field, "stats cannot be negative")
	}
	if t.CritMultiplier < 1 {
		vb.Field(field+".crit_multiplier", "must be at least 1")
	}

	for i, a := range t.Abilities {
		af := fmt.Sprintf("%s.abilities[%d]", field, i)
		errors.ValidateRequired(af+".id", a.ID, vb)
		errors.ValidateRequired(af+".name", a.Name, vb)
		if !battle.AbilityCategory(a.Category).IsValid() {
			vb.InvalidField(af+".category", a.Category)
		}
		if a.ManaCost < 0 {
			vb.Field(af+".mana_cost", "cannot be negative")
		}
		if a.Cooldown < 0 {
			vb.Field(af+".cooldown", "cannot be negative")
		}
	}
}

func (t *combatantTemplate) toEntity(side battle.Side) *battle.Entity {
	entity := &battle.Entity{
		ID:             t.ID,
		Name:           t.Name,
		Side:           side,
		Level:          t.Level,
		Health:         t.Health,
		MaxHealth:      t.Health,
		Mana:           t.Mana,
		MaxMana:        t.Mana,
		Attack:         t.Attack,
		Defense:        t.Defense,
		Speed:          t.Speed,
		CritChance:     t.CritChance,
		CritMultiplier: t.CritMultiplier,
		Image:          t.Image,
	}
	for _, a := range t.Abilities {
		entity.Abilities = append(entity.Abilities, battle.Ability{
			ID:          a.ID,
			Name:        a.Name,
			Damage:      a.Damage,
			ManaCost:    a.ManaCost,
			Cooldown:    a.Cooldown,
			Category:    battle.AbilityCategory(a.Category),
			Description: a.Description,
			Icon:        a.Icon,
		})
	}
	return entity
}
