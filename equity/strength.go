package equity

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/lox/tossequity/poker"
)

// Tier grants Iterations trials when more than Above time remains.
type Tier struct {
	Above      time.Duration
	Iterations int
}

// Tiers maps remaining decision time to a trial budget.
type Tiers struct {
	Levels []Tier
	// Floor applies when no level matches.
	Floor int
}

// DefaultTiers thinks deeper with more than 15s left on the clock.
func DefaultTiers() Tiers {
	return Tiers{
		Levels: []Tier{{Above: 15 * time.Second, Iterations: 500}},
		Floor:  100,
	}
}

// For returns the budget of the richest level whose threshold remaining exceeds.
func (t Tiers) For(remaining time.Duration) int {
	levels := slices.Clone(t.Levels)
	slices.SortFunc(levels, func(a, b Tier) int {
		return cmp.Compare(b.Above, a.Above)
	})
	for _, level := range levels {
		if remaining > level.Above {
			return level.Iterations
		}
	}
	return t.Floor
}

// Strength estimates hand strength for the betting logic.
//
// With three hole cards the discard has not been made yet, so each two card
// retention is estimated with the light pre-discard budget against the
// current board and the best of the three is returned. With two hole cards
// the budget comes from the tiers for the remaining time.
func (e *Engine) Strength(hole, board []poker.Card, remaining time.Duration) (float64, error) {
	switch len(hole) {
	case 3:
		best := 0.0
		for i := range hole {
			kept := make([]poker.Card, 0, 2)
			kept = append(kept, hole[:i]...)
			kept = append(kept, hole[i+1:]...)

			eq, err := e.Estimate(kept, board, e.preDiscard)
			if err != nil {
				return 0, err
			}
			best = max(best, eq)
		}
		return best, nil

	case 2:
		iterations := e.tiers.For(remaining)
		e.logger.Debug("Estimating strength", "remaining", remaining, "iterations", iterations)
		return e.Estimate(hole, board, iterations)

	default:
		return 0, fmt.Errorf("%w: want 2 or 3, got %d", ErrInvalidHoleSize, len(hole))
	}
}
