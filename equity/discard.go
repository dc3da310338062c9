package equity

import (
	"fmt"

	"github.com/lox/tossequity/poker"
)

// DiscardCandidate is the equity left after discarding one of three hole cards.
type DiscardCandidate struct {
	Index   int
	Discard poker.Card
	Equity  float64
}

// EvaluateDiscards estimates each of the three discards. The discarded card
// is dealt face up, so it joins the board for the estimate rather than simply
// leaving the hand.
func (e *Engine) EvaluateDiscards(hole, board []poker.Card, iterations int) ([3]DiscardCandidate, error) {
	var out [3]DiscardCandidate
	if len(hole) != 3 {
		return out, fmt.Errorf("%w: want 3, got %d", ErrInvalidHoleSize, len(hole))
	}
	if len(board) >= FinalBoardCards {
		return out, fmt.Errorf("%w: %d cards leaves no room for the discard", ErrBoardTooLarge, len(board))
	}

	for i, discard := range hole {
		kept := make([]poker.Card, 0, 2)
		kept = append(kept, hole[:i]...)
		kept = append(kept, hole[i+1:]...)

		augmented := make([]poker.Card, 0, len(board)+1)
		augmented = append(augmented, board...)
		augmented = append(augmented, discard)

		eq, err := e.Estimate(kept, augmented, iterations)
		if err != nil {
			return out, fmt.Errorf("discard %s: %w", discard, err)
		}
		out[i] = DiscardCandidate{Index: i, Discard: discard, Equity: eq}
	}
	return out, nil
}

// BestDiscard returns the index of the hole card whose discard leaves the
// highest equity. Ties go to the lowest index.
func (e *Engine) BestDiscard(hole, board []poker.Card, iterations int) (int, error) {
	_, best, err := e.ChooseDiscard(hole, board, iterations)
	return best, err
}

// ChooseDiscard evaluates every discard and returns the candidates together
// with the index BestDiscard would pick.
func (e *Engine) ChooseDiscard(hole, board []poker.Card, iterations int) ([3]DiscardCandidate, int, error) {
	candidates, err := e.EvaluateDiscards(hole, board, iterations)
	if err != nil {
		return candidates, 0, err
	}

	best := BestCandidate(candidates)
	e.logger.Debug("Chose discard",
		"hole", poker.FormatCards(hole),
		"board", poker.FormatCards(board),
		"discard", candidates[best].Discard,
		"equities", []float64{candidates[0].Equity, candidates[1].Equity, candidates[2].Equity})
	return candidates, best, nil
}

// BestCandidate returns the index of the highest equity, the first on ties.
func BestCandidate(candidates [3]DiscardCandidate) int {
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Equity > candidates[best].Equity {
			best = i
		}
	}
	return best
}
