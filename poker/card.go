// Package poker holds the card model shared by the equity engine: a compact
// integer card codec, a bitset of cards, an unseen-card deck sampler and a
// native hand evaluator for five to eight cards.
package poker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCardToken is returned when a card token has an unknown rank or suit.
var ErrInvalidCardToken = errors.New("invalid card token")

// Card is a playing card encoded as suit*13 + rank, giving a value in [0,52).
type Card uint8

// Rank constants, 0 (deuce) through 12 (ace).
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit constants in token order c, d, h, s.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

const (
	// NumCards is the size of a full deck.
	NumCards = 52
	numRanks = 13
	numSuits = 4

	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard builds a card from a rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(suit*numRanks + rank)
}

// Rank returns the rank, 0 for a deuce through 12 for an ace.
func (c Card) Rank() uint8 {
	return uint8(c) % numRanks
}

// Suit returns the suit index.
func (c Card) Suit() uint8 {
	return uint8(c) / numRanks
}

// Valid reports whether c is one of the 52 cards.
func (c Card) Valid() bool {
	return c < NumCards
}

// String returns the two character token, e.g. "As".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()], suitChars[c.Suit()]})
}

// ParseCard parses a two character token such as "Td". Ranks are upper case,
// suits lower case; anything else is rejected.
func ParseCard(token string) (Card, error) {
	if len(token) != 2 {
		return 0, fmt.Errorf("%w: %q must be two characters", ErrInvalidCardToken, token)
	}
	rank := strings.IndexByte(rankChars, token[0])
	if rank < 0 {
		return 0, fmt.Errorf("%w: unknown rank %q in %q", ErrInvalidCardToken, token[0], token)
	}
	suit := strings.IndexByte(suitChars, token[1])
	if suit < 0 {
		return 0, fmt.Errorf("%w: unknown suit %q in %q", ErrInvalidCardToken, token[1], token)
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses a run of card tokens. Tokens may be concatenated
// ("AsKd") or separated by spaces or commas ("As Kd", "As,Kd").
func ParseCards(s string) ([]Card, error) {
	s = strings.NewReplacer(" ", "", ",", "", "\t", "").Replace(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length card string %q", ErrInvalidCardToken, s)
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// FormatCards joins card tokens with single spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
