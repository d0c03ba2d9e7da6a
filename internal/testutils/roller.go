package testutils

import (
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// ScriptedRoller returns queued values in order. Once the script runs out it
// returns the fallback (capped at the die size) or an error when no fallback is set.
type ScriptedRoller struct {
	mu       sync.Mutex
	values   []int
	fallback int
	sizes    []int
}

// NewScriptedRoller queues values to be returned by successive rolls
func NewScriptedRoller(values ...int) *ScriptedRoller {
	return &ScriptedRoller{values: values}
}

var _ dice.Roller = (*ScriptedRoller)(nil)

// WithFallback sets the value returned after the script is exhausted
func (r *ScriptedRoller) WithFallback(v int) *ScriptedRoller {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = v
	return r
}

// Push queues more values
func (r *ScriptedRoller) Push(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, values...)
}

// Roll returns the next scripted value
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sizes = append(r.sizes, size)
	if len(r.values) == 0 {
		if r.fallback <= 0 {
			return 0, errors.Internalf("scripted roller exhausted (d%d)", size)
		}
		return min(r.fallback, size), nil
	}

	v := r.values[0]
	r.values = r.values[1:]
	if v < 1 || v > size {
		return 0, errors.InvalidArgumentf("scripted value %d does not fit d%d", v, size)
	}
	return v, nil
}

// RollN rolls count scripted values
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Remaining returns how many scripted values are left
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Sizes returns the die size of every roll made so far
func (r *ScriptedRoller) Sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.sizes...)
}
