package poker

import (
	"math/bits"
)

// Score orders hands of the same card count. Higher values are stronger and
// equal values tie. The hand category sits above bit 20; the lower 20 bits hold
// up to five deciding ranks, four bits each, most significant first.
type Score uint32

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

const typeShift = 20

// Type returns the category of the hand.
func (s Score) Type() HandType {
	return HandType(s >> typeShift)
}

// String returns a human-readable hand description.
func (s Score) String() string {
	return s.Type().String()
}

func (t HandType) String() string {
	switch t {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

func makeScore(t HandType, ranks ...uint8) Score {
	s := Score(t) << typeShift
	shift := typeShift
	for _, r := range ranks {
		shift -= 4
		s |= Score(r) << shift
	}
	return s
}

// Evaluate scores the best five-card hand contained in h. It accepts five to
// eight cards; with eight cards a flush can coexist with quads or a full house,
// so every category is checked from the top down rather than short-circuiting
// on a flush.
func Evaluate(h Hand) Score {
	var suitMasks [numSuits]uint16
	var rankMask uint16
	for suit := range uint8(numSuits) {
		suitMasks[suit] = h.GetSuitMask(suit)
		rankMask |= suitMasks[suit]
	}

	var sf uint8
	var haveSF bool
	flushSuit := -1
	for suit, mask := range suitMasks {
		if bits.OnesCount16(mask) < 5 {
			continue
		}
		if hi, ok := straightHigh(mask); ok && (!haveSF || hi > sf) {
			sf, haveSF = hi, true
		}
		if flushSuit < 0 || mask > suitMasks[flushSuit] {
			flushSuit = suit
		}
	}
	if haveSF {
		return makeScore(StraightFlush, sf)
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quadsMask := s0 & s1 & s2 & s3
	tripsMask := ((s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)) &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ (tripsMask | quadsMask)

	if quadsMask != 0 {
		quad := highest(quadsMask)
		return makeScore(FourOfAKind, quad, highest(rankMask&^(1<<quad)))
	}

	if tripsMask != 0 {
		trip := highest(tripsMask)
		rest := (tripsMask | pairsMask) &^ (1 << trip)
		if rest != 0 {
			return makeScore(FullHouse, trip, highest(rest))
		}
	}

	if flushSuit >= 0 {
		return makeScore(Flush, topRanks(suitMasks[flushSuit], 5)...)
	}

	if hi, ok := straightHigh(rankMask); ok {
		return makeScore(Straight, hi)
	}

	if tripsMask != 0 {
		trip := highest(tripsMask)
		return makeScore(ThreeOfAKind, append([]uint8{trip}, topRanks(rankMask&^(1<<trip), 2)...)...)
	}

	if bits.OnesCount16(pairsMask) >= 2 {
		pairs := topRanks(pairsMask, 2)
		kicker := highest(rankMask &^ (1<<pairs[0] | 1<<pairs[1]))
		return makeScore(TwoPair, pairs[0], pairs[1], kicker)
	}

	if pairsMask != 0 {
		pair := highest(pairsMask)
		return makeScore(Pair, append([]uint8{pair}, topRanks(rankMask&^(1<<pair), 3)...)...)
	}

	return makeScore(HighCard, topRanks(rankMask, 5)...)
}

// straightHigh returns the top rank of the best straight in mask. The wheel
// (A-2-3-4-5) reports the five as its high card.
func straightHigh(mask uint16) (uint8, bool) {
	for hi := int(Ace); hi >= int(Six); hi-- {
		run := uint16(0x1f) << (hi - 4)
		if mask&run == run {
			return uint8(hi), true
		}
	}
	const wheel = 1<<Ace | 0xf
	if mask&wheel == wheel {
		return Five, true
	}
	return 0, false
}

func highest(mask uint16) uint8 {
	return uint8(15 - bits.LeadingZeros16(mask))
}

func topRanks(mask uint16, n int) []uint8 {
	ranks := make([]uint8, 0, n)
	for mask != 0 && len(ranks) < n {
		r := highest(mask)
		ranks = append(ranks, r)
		mask &^= 1 << r
	}
	return ranks
}
