package poker

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrDuplicateCard is returned when a card appears twice in a set that must
// hold distinct cards.
var ErrDuplicateCard = errors.New("duplicate card")

// Hand is a set of cards stored as a bitset; bit i is set when Card(i) is present.
type Hand uint64

const suitMask = 1<<numRanks - 1

// NewHand builds a set from cards, rejecting repeats.
func NewHand(cards ...Card) (Hand, error) {
	var h Hand
	for _, c := range cards {
		if !c.Valid() {
			return 0, fmt.Errorf("%w: card value %d", ErrInvalidCardToken, c)
		}
		if h.HasCard(c) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		h.AddCard(c)
	}
	return h, nil
}

// AddCard adds c to the set.
func (h *Hand) AddCard(c Card) {
	*h |= 1 << c
}

// RemoveCard removes c from the set.
func (h *Hand) RemoveCard(c Card) {
	*h &^= 1 << c
}

// HasCard reports whether c is in the set.
func (h Hand) HasCard(c Card) bool {
	return h&(1<<c) != 0
}

// CountCards returns the number of cards in the set.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// Overlaps reports whether the two sets share a card.
func (h Hand) Overlaps(other Hand) bool {
	return h&other != 0
}

// GetSuitMask returns a 13-bit mask of the ranks held in suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16(uint64(h)>>(uint(suit)*numRanks)) & suitMask
}

// Cards lists the cards in ascending encoded order.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for v := uint64(h); v != 0; v &= v - 1 {
		cards = append(cards, Card(bits.TrailingZeros64(v)))
	}
	return cards
}

// String formats the set as space separated tokens.
func (h Hand) String() string {
	return FormatCards(h.Cards())
}
