package spectator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
)

func TestHealthBar(t *testing.T) {
	testCases := []struct {
		name      string
		health    int
		maxHealth int
		expected  string
	}{
		{"full", 1000, 1000, "[####################]"},
		{"half", 500, 1000, "[##########----------]"},
		{"sliver still shows", 1, 1000, "[#-------------------]"},
		{"empty", 0, 1000, "[--------------------]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, healthBar(tc.health, tc.maxHealth))
		})
	}
}

func TestRenderEntry(t *testing.T) {
	line := renderEntry(&battle.LogEntry{Turn: 3, Message: "Forest Troll uses Regeneration and heals for 200 health.", Category: battle.LogHeal})
	assert.Contains(t, line, "[turn 3]")
	assert.Contains(t, line, ansiGreen+"Forest Troll uses Regeneration")
}
