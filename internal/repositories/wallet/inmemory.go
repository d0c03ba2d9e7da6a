package wallet

import (
	"context"
	"sync"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu              sync.Mutex
	startingBalance int64
	balances        map[string]int64
	credited        map[string]bool
}

// NewInMemory creates a new in-memory repository
func NewInMemory(startingBalance int64) *InMemoryRepository {
	return &InMemoryRepository{
		startingBalance: startingBalance,
		balances:        make(map[string]int64),
		credited:        make(map[string]bool),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Credit adds gold once per reference
func (r *InMemoryRepository) Credit(_ context.Context, input *CreditInput) (*CreditOutput, error) {
	if err := validateCredit(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	balance := r.balanceLocked(input.PlayerID)
	ref := input.PlayerID + "/" + input.Reference
	if r.credited[ref] {
		return &CreditOutput{Balance: balance, Applied: false}, nil
	}

	r.credited[ref] = true
	balance += input.Amount
	r.balances[input.PlayerID] = balance

	return &CreditOutput{Balance: balance, Applied: true}, nil
}

// GetBalance returns the current balance
func (r *InMemoryRepository) GetBalance(_ context.Context, input *GetBalanceInput) (*GetBalanceOutput, error) {
	if err := validateGetBalance(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return &GetBalanceOutput{Balance: r.balanceLocked(input.PlayerID)}, nil
}

func (r *InMemoryRepository) balanceLocked(playerID string) int64 {
	balance, ok := r.balances[playerID]
	if !ok {
		return r.startingBalance
	}
	return balance
}
