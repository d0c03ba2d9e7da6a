// Package wallet stores player gold. Credits carry a reference so a replayed
// credit for the same victory is applied at most once.
package wallet

//go:generate mockgen -destination=mock/mock_repository.go -package=walletmock github.com/KirkDiggler/rpg-arena/internal/repositories/wallet Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

var errInputRequired = errors.InvalidArgument("input is required")

// DefaultStartingBalance is the gold a new player's wallet opens with
const DefaultStartingBalance int64 = 12450

// Repository defines the storage interface for player wallets
type Repository interface {
	// Credit adds gold to a wallet once per reference
	Credit(ctx context.Context, input *CreditInput) (*CreditOutput, error)

	// GetBalance returns the wallet balance, opening it at the starting balance if needed
	GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error)
}

// CreditInput defines the request for crediting a wallet
type CreditInput struct {
	PlayerID string
	Amount   int64
	// Reference identifies the credit, e.g. the battle that earned it
	Reference string
}

// CreditOutput defines the response for crediting a wallet
type CreditOutput struct {
	Balance int64
	// Applied is false when the reference had already been credited
	Applied bool
}

// GetBalanceInput defines the request for reading a wallet
type GetBalanceInput struct {
	PlayerID string
}

// GetBalanceOutput defines the response for reading a wallet
type GetBalanceOutput struct {
	Balance int64
}

func validateCredit(input *CreditInput) error {
	if input == nil {
		return errInputRequired
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("player_id", input.PlayerID, vb)
	errors.ValidateRequired("reference", input.Reference, vb)
	if input.Amount <= 0 {
		vb.Field("amount", "must be positive")
	}
	return vb.Build()
}

func validateGetBalance(input *GetBalanceInput) error {
	if input == nil {
		return errInputRequired
	}
	if input.PlayerID == "" {
		return errors.InvalidArgument("player ID is required")
	}
	return nil
}
