package poker

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrInsufficientDeck is returned when more cards are requested than remain unseen.
var ErrInsufficientDeck = errors.New("insufficient cards in deck")

// Deck holds the cards not yet seen by a player. It is built from a known set
// for a single estimation and is not shared between calls.
type Deck struct {
	cards [NumCards]Card // Fixed size array
	n     int
}

// NewDeck returns the 52-card universe minus known.
func NewDeck(known Hand) *Deck {
	d := &Deck{}
	for c := Card(0); c < NumCards; c++ {
		if !known.HasCard(c) {
			d.cards[d.n] = c
			d.n++
		}
	}
	return d
}

// CardsRemaining returns the number of unseen cards.
func (d *Deck) CardsRemaining() int {
	return d.n
}

// Clone returns an independent copy of the deck.
func (d *Deck) Clone() *Deck {
	c := *d
	return &c
}

// Draw writes count distinct unseen cards into dst, resizing it as needed, and
// returns it. The draw is a partial Fisher-Yates from the front of the deck, so
// every unordered outcome is equally likely whatever order earlier draws left
// the deck in. The set of unseen cards never changes.
func (d *Deck) Draw(rng *rand.Rand, count int, dst []Card) ([]Card, error) {
	if count < 0 || count > d.n {
		return nil, fmt.Errorf("%w: want %d, %d unseen", ErrInsufficientDeck, count, d.n)
	}
	if cap(dst) < count {
		dst = make([]Card, count)
	}
	dst = dst[:count]

	for i := range count {
		j := i + rng.IntN(d.n-i)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
		dst[i] = d.cards[i]
	}
	return dst, nil
}

// Sample draws count distinct cards uniformly from the cards not in known.
func Sample(rng *rand.Rand, known Hand, count int) ([]Card, error) {
	return NewDeck(known).Draw(rng, count, nil)
}
