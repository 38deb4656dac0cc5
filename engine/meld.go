package engine

import (
	"fmt"
	"sort"
)

// ValidateMeld reports whether cards form a valid set or run and, for
// seven or more cards, the canasta classification. The check is
// order-independent. Invalid groups return ErrInvalidMeld (wrapped with
// detail).
//
// A set holds one rank plus at most one wildcard, and the wildcard must
// be outnumbered by the regular cards. A run holds distinct consecutive
// ranks of one suit, with at most one wildcard covering the rank gaps;
// the ace sequences high, adjacent to the king.
func ValidateMeld(cards []Card) (MeldType, CanastaType, error) {
	if len(cards) < 3 {
		return 0, CanastaNone, fmt.Errorf("%w: need at least 3 cards, got %d", ErrInvalidMeld, len(cards))
	}

	var wildcards, regulars []Card
	for _, c := range cards {
		if c.IsLocker() || c.IsRedBonus() {
			return 0, CanastaNone, fmt.Errorf("%w: %s can never be melded", ErrInvalidMeld, c)
		}
		if c.IsWildcard() {
			wildcards = append(wildcards, c)
		} else {
			regulars = append(regulars, c)
		}
	}
	if len(wildcards) > 1 {
		return 0, CanastaNone, fmt.Errorf("%w: at most one wildcard per meld, got %d", ErrInvalidMeld, len(wildcards))
	}
	if len(regulars) == 0 {
		return 0, CanastaNone, fmt.Errorf("%w: no regular cards", ErrInvalidMeld)
	}

	canasta := CanastaNone
	if len(cards) >= CanastaSize {
		if len(wildcards) > 0 {
			canasta = CanastaDirty
		} else {
			canasta = CanastaClean
		}
	}

	// Set: every regular card shares one rank, and wildcards stay in
	// the strict minority so the rank is established by real cards.
	if sameRank(regulars) {
		if len(wildcards) >= len(regulars) {
			return 0, CanastaNone, fmt.Errorf("%w: wildcards must be outnumbered in a set", ErrInvalidMeld)
		}
		return MeldSet, canasta, nil
	}

	// Run: one suit, no duplicate rank, wildcards cover the gaps.
	if !sameSuit(regulars) {
		return 0, CanastaNone, fmt.Errorf("%w: neither one rank nor one suit", ErrInvalidMeld)
	}
	seq := make([]int, len(regulars))
	for i, c := range regulars {
		seq[i] = c.SeqValue()
	}
	sort.Ints(seq)
	for i := 1; i < len(seq); i++ {
		if seq[i] == seq[i-1] {
			return 0, CanastaNone, fmt.Errorf("%w: duplicate rank in run", ErrInvalidMeld)
		}
	}
	gap := seq[len(seq)-1] - seq[0] - (len(seq) - 1)
	if gap > len(wildcards) {
		return 0, CanastaNone, fmt.Errorf("%w: rank gap of %d exceeds available wildcards", ErrInvalidMeld, gap)
	}
	return MeldRun, canasta, nil
}

// CanAddToMeld revalidates the meld with card appended and returns the
// prospective grown meld. Existing members are never removed.
func CanAddToMeld(card Card, meld Meld) (Meld, error) {
	grown := append(append([]Card(nil), meld.Cards...), card)
	mt, canasta, err := ValidateMeld(grown)
	if err != nil {
		return Meld{}, err
	}
	return Meld{ID: meld.ID, Type: mt, Canasta: canasta, Cards: grown}, nil
}

func sameRank(cards []Card) bool {
	for _, c := range cards[1:] {
		if c.Rank() != cards[0].Rank() {
			return false
		}
	}
	return true
}

func sameSuit(cards []Card) bool {
	for _, c := range cards[1:] {
		if c.Suit() != cards[0].Suit() {
			return false
		}
	}
	return true
}
