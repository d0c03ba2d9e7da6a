// Package roster provides the combatant templates battles are built from.
// Every entity handed out is a fresh deep copy, so callers may mutate it freely.
package roster

//go:generate mockgen -destination=mock/mock_repository.go -package=rostermock github.com/KirkDiggler/rpg-arena/internal/repositories/roster Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/entities/battle"
)

// Repository defines the read-only source of combatant templates
type Repository interface {
	// GetPlayer returns a fresh copy of the player template
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error)

	// GetOpponent returns a fresh copy of one opponent template
	GetOpponent(ctx context.Context, input *GetOpponentInput) (*GetOpponentOutput, error)

	// ListOpponents returns fresh copies of every opponent, in roster order
	ListOpponents(ctx context.Context, input *ListOpponentsInput) (*ListOpponentsOutput, error)
}

// GetPlayerInput defines the request for the player template
type GetPlayerInput struct{}

// GetPlayerOutput defines the response for the player template
type GetPlayerOutput struct {
	Player *battle.Entity
}

// GetOpponentInput defines the request for an opponent template
type GetOpponentInput struct {
	OpponentID string
}

// GetOpponentOutput defines the response for an opponent template
type GetOpponentOutput struct {
	Opponent *battle.Entity
}

// ListOpponentsInput defines the request for listing opponents
type ListOpponentsInput struct{}

// ListOpponentsOutput defines the response for listing opponents
type ListOpponentsOutput struct {
	Opponents []*battle.Entity
}
