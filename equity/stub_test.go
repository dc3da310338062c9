package equity

import (
	"sync/atomic"

	"github.com/lox/tossequity/poker"
)

// rankSum scores a hand by the sum of its card ranks. The board adds the same
// amount to both players, so only the hole cards decide a showdown.
var rankSum = EvaluatorFunc(func(cards poker.Hand) (poker.Score, error) {
	var sum poker.Score
	for _, c := range cards.Cards() {
		sum += poker.Score(c.Rank())
	}
	return sum, nil
})

// tripsOnly scores 1 for any hand holding three or more of a rank, else 0.
var tripsOnly = EvaluatorFunc(func(cards poker.Hand) (poker.Score, error) {
	var counts [13]int
	for _, c := range cards.Cards() {
		counts[c.Rank()]++
		if counts[c.Rank()] >= 3 {
			return 1, nil
		}
	}
	return 0, nil
})

// counting wraps an evaluator and counts calls.
type counting struct {
	Evaluator
	calls atomic.Int64
}

func (c *counting) Evaluate(cards poker.Hand) (poker.Score, error) {
	c.calls.Add(1)
	return c.Evaluator.Evaluate(cards)
}
