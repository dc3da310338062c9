package equity

import (
	"fmt"

	"github.com/lox/tossequity/poker"
)

// Evaluator scores a combined set of hole and board cards. Higher scores are
// stronger and equal scores tie. Implementations used with parallel workers
// must be safe for concurrent calls.
type Evaluator interface {
	Evaluate(cards poker.Hand) (poker.Score, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(cards poker.Hand) (poker.Score, error)

// Evaluate calls f(cards).
func (f EvaluatorFunc) Evaluate(cards poker.Hand) (poker.Score, error) {
	return f(cards)
}

// Native evaluates with poker.Evaluate and accepts five to eight cards.
type Native struct{}

// Evaluate scores cards with poker.Evaluate.
func (Native) Evaluate(cards poker.Hand) (poker.Score, error) {
	if n := cards.CountCards(); n < 5 || n > 8 {
		return 0, fmt.Errorf("native evaluator: need 5-8 cards, got %d", n)
	}
	return poker.Evaluate(cards), nil
}

// Outcome is the result of one showdown from the hero's side.
type Outcome uint8

// Showdown outcomes, worst first.
const (
	Loss Outcome = iota // villain holds the stronger hand
	Tie                 // equal scores split the pot
	Win                 // hero holds the stronger hand
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Tie:
		return "tie"
	default:
		return "loss"
	}
}

// Showdown scores hero and villain against a completed board.
func Showdown(ev Evaluator, hero, villain, board poker.Hand) (Outcome, error) {
	heroScore, err := ev.Evaluate(hero | board)
	if err != nil {
		return Loss, fmt.Errorf("evaluate hero: %w", err)
	}
	villainScore, err := ev.Evaluate(villain | board)
	if err != nil {
		return Loss, fmt.Errorf("evaluate villain: %w", err)
	}

	switch {
	case heroScore > villainScore:
		return Win, nil
	case heroScore == villainScore:
		return Tie, nil
	default:
		return Loss, nil
	}
}
