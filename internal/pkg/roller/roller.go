// Package roller provides dice rollers that satisfy the toolkit dice.Roller interface
// with a reproducible sequence, for simulations and tests
package roller

import (
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Seeded rolls dice from a PCG stream, so the same seed always yields the same battle
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a roller seeded with seed
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Ensure Seeded implements dice.Roller
var _ dice.Roller = (*Seeded)(nil)

// Roll returns a value in [1, size]
func (s *Seeded) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive: %d", size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (s *Seeded) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count cannot be negative: %d", count)
	}

	results := make([]int, count)
	for i := range results {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}
