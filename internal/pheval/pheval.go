// Package pheval evaluates hands with github.com/paulhankin/poker.
//
// The library scores five and seven card hands directly; six and eight card
// sets are scored as the best of their five and seven card subsets.
package pheval

import (
	"fmt"

	ph "github.com/paulhankin/poker"

	"github.com/lox/tossequity/poker"
)

// Evaluator implements equity.Evaluator. It holds no state and is safe for
// concurrent use.
type Evaluator struct{}

// toPH maps our suit-major card onto the library's card. The library ranks
// the ace as 1 and the king as 13.
func toPH(c poker.Card) (ph.Card, error) {
	var s ph.Suit
	switch c.Suit() {
	case poker.Clubs:
		s = ph.Club
	case poker.Diamonds:
		s = ph.Diamond
	case poker.Hearts:
		s = ph.Heart
	default:
		s = ph.Spade
	}
	r := ph.Rank(c.Rank() + 2)
	if c.Rank() == poker.Ace {
		r = ph.Rank(1)
	}
	return ph.MakeCard(s, r)
}

func convert(cards poker.Hand) ([]ph.Card, error) {
	out := make([]ph.Card, 0, cards.CountCards())
	for _, c := range cards.Cards() {
		pc, err := toPH(c)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", c, err)
		}
		out = append(out, pc)
	}
	return out, nil
}

// Evaluate scores five to eight cards. The library's int16 score is shifted
// into the unsigned range so that higher stays stronger.
func (Evaluator) Evaluate(cards poker.Hand) (poker.Score, error) {
	pcs, err := convert(cards)
	if err != nil {
		return 0, err
	}

	var score int16
	switch len(pcs) {
	case 5:
		var a5 [5]ph.Card
		copy(a5[:], pcs)
		score = ph.Eval5(&a5)
	case 6:
		score = bestOfFive(pcs)
	case 7:
		var a7 [7]ph.Card
		copy(a7[:], pcs)
		score = ph.Eval7(&a7)
	case 8:
		score = bestOfSeven(pcs)
	default:
		return 0, fmt.Errorf("pheval: need 5-8 cards, got %d", len(pcs))
	}
	return poker.Score(int32(score) + 1<<15), nil
}

// Describe names the best hand in cards, e.g. "pair of kings".
func Describe(cards poker.Hand) (string, error) {
	pcs, err := convert(cards)
	if err != nil {
		return "", err
	}
	return ph.Describe(pcs)
}

// bestOfFive drops each card of a six card set in turn.
func bestOfFive(pcs []ph.Card) int16 {
	best := int16(-1 << 15)
	var five [5]ph.Card
	for skip := range pcs {
		n := 0
		for i, c := range pcs {
			if i != skip {
				five[n] = c
				n++
			}
		}
		best = max(best, ph.Eval5(&five))
	}
	return best
}

// bestOfSeven drops each card of an eight card set in turn.
func bestOfSeven(pcs []ph.Card) int16 {
	best := int16(-1 << 15)
	var seven [7]ph.Card
	for skip := range pcs {
		n := 0
		for i, c := range pcs {
			if i != skip {
				seven[n] = c
				n++
			}
		}
		best = max(best, ph.Eval7(&seven))
	}
	return best
}
