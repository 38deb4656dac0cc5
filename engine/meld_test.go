package engine

import (
	"errors"
	"testing"
)

// card builds a first-copy card; card2 builds its twin from the second
// physical deck.
func card(suit, rank uint8) Card  { return NewCard(0, suit, rank) }
func card2(suit, rank uint8) Card { return NewCard(1, suit, rank) }

func mustValid(t *testing.T, cards []Card) (MeldType, CanastaType) {
	t.Helper()
	mt, ct, err := ValidateMeld(cards)
	if err != nil {
		t.Fatalf("expected valid meld, got %v", err)
	}
	return mt, ct
}

func mustInvalid(t *testing.T, cards []Card) {
	t.Helper()
	if _, _, err := ValidateMeld(cards); !errors.Is(err, ErrInvalidMeld) {
		t.Fatalf("expected ErrInvalidMeld, got %v", err)
	}
}

// TestValidateMeldTooFewCards verifies melds need at least 3 cards.
func TestValidateMeldTooFewCards(t *testing.T) {
	mustInvalid(t, []Card{card(SuitHearts, RankSeven), card(SuitSpades, RankSeven)})
	mustInvalid(t, nil)
}

// TestValidateMeldRejectsThrees verifies lockers and red threes can
// never appear in a meld.
func TestValidateMeldRejectsThrees(t *testing.T) {
	mustInvalid(t, []Card{card(SuitHearts, RankThree), card(SuitSpades, RankThree), card(SuitClubs, RankThree)})
	mustInvalid(t, []Card{card(SuitHearts, RankFour), card(SuitHearts, RankFive), card(SuitHearts, RankThree)})
	mustInvalid(t, []Card{card(SuitSpades, RankThree), card(SuitSpades, RankFour), card(SuitSpades, RankFive)})
}

// TestValidateMeldQueenSet verifies three queens of mixed suits form a
// set with no canasta classification below seven cards.
func TestValidateMeldQueenSet(t *testing.T) {
	mt, ct := mustValid(t, []Card{
		card(SuitClubs, RankQueen),
		card(SuitHearts, RankQueen),
		card(SuitDiamonds, RankQueen),
	})
	if mt != MeldSet {
		t.Errorf("expected set, got %s", mt)
	}
	if ct != CanastaNone {
		t.Errorf("expected no canasta for 3 cards, got %s", ct)
	}
}

// TestValidateMeldTwoWildcards verifies the one-wildcard-per-meld rule.
func TestValidateMeldTwoWildcards(t *testing.T) {
	mustInvalid(t, []Card{
		card(SuitHearts, RankSeven),
		card(SuitSpades, RankTwo),
		card(SuitClubs, RankTwo),
	})
}

// TestValidateMeldWildcardSet verifies one wildcard can fill out a set
// as long as real cards stay in the majority.
func TestValidateMeldWildcardSet(t *testing.T) {
	mt, _ := mustValid(t, []Card{
		card(SuitHearts, RankSeven),
		card(SuitSpades, RankSeven),
		card(SuitClubs, RankTwo),
	})
	if mt != MeldSet {
		t.Errorf("expected set, got %s", mt)
	}
}

// TestValidateMeldRunGapBoundary verifies the wildcard-gap arithmetic:
// 5-7 of one suit needs exactly one wildcard to bridge the missing 6.
func TestValidateMeldRunGapBoundary(t *testing.T) {
	gapped := []Card{card(SuitHearts, RankFive), card(SuitHearts, RankSeven), card(SuitHearts, RankNine)}
	mustInvalid(t, gapped) // two gaps, no wildcard

	mt, _ := mustValid(t, []Card{
		card(SuitHearts, RankFive),
		card(SuitHearts, RankSeven),
		card(SuitSpades, RankTwo),
	})
	if mt != MeldRun {
		t.Errorf("expected run, got %s", mt)
	}

	// Same shape with two missing ranks stays invalid: one wildcard
	// cannot bridge 5-8.
	mustInvalid(t, []Card{
		card(SuitHearts, RankFive),
		card(SuitHearts, RankEight),
		card(SuitSpades, RankTwo),
	})
}

// TestValidateMeldRunDuplicateRank verifies duplicate ranks invalidate
// a run even when the cards come from different physical decks.
func TestValidateMeldRunDuplicateRank(t *testing.T) {
	mustInvalid(t, []Card{
		card(SuitHearts, RankFive),
		card2(SuitHearts, RankFive),
		card(SuitHearts, RankSix),
	})
}

// TestValidateMeldAceHigh verifies the ace sequences next to the king
// and never next to the four.
func TestValidateMeldAceHigh(t *testing.T) {
	mt, _ := mustValid(t, []Card{
		card(SuitHearts, RankQueen),
		card(SuitHearts, RankKing),
		card(SuitHearts, RankAce),
	})
	if mt != MeldRun {
		t.Errorf("expected run, got %s", mt)
	}

	mustInvalid(t, []Card{
		card(SuitHearts, RankAce),
		card(SuitHearts, RankFour),
		card(SuitHearts, RankFive),
	})
}

// TestValidateMeldOrderIndependent verifies every permutation of a meld
// validates identically.
func TestValidateMeldOrderIndependent(t *testing.T) {
	cards := []Card{
		card(SuitHearts, RankFive),
		card(SuitHearts, RankSix),
		card(SuitHearts, RankSeven),
		card(SuitSpades, RankTwo),
	}
	wantType, wantCanasta := mustValid(t, cards)

	perms := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, p := range perms {
		shuffled := make([]Card, len(cards))
		for i, idx := range p {
			shuffled[i] = cards[idx]
		}
		mt, ct := mustValid(t, shuffled)
		if mt != wantType || ct != wantCanasta {
			t.Errorf("permutation %v classified (%s, %s), want (%s, %s)", p, mt, ct, wantType, wantCanasta)
		}
	}
}

// sevens returns n distinct rank-seven cards across both deck copies.
func sevens(n int) []Card {
	all := []Card{
		card(SuitHearts, RankSeven), card(SuitDiamonds, RankSeven),
		card(SuitClubs, RankSeven), card(SuitSpades, RankSeven),
		card2(SuitHearts, RankSeven), card2(SuitDiamonds, RankSeven),
		card2(SuitClubs, RankSeven), card2(SuitSpades, RankSeven),
	}
	return all[:n]
}

// TestCanastaClassification verifies the size-7 threshold: six cards
// classify as none, seven naturals as clean, and a seventh wildcard as
// dirty.
func TestCanastaClassification(t *testing.T) {
	if _, ct := mustValid(t, sevens(6)); ct != CanastaNone {
		t.Errorf("6-card meld classified %s, want none", ct)
	}
	if _, ct := mustValid(t, sevens(7)); ct != CanastaClean {
		t.Errorf("7 naturals classified %s, want clean", ct)
	}
	dirty := append(sevens(6), card(SuitClubs, RankTwo))
	if _, ct := mustValid(t, dirty); ct != CanastaDirty {
		t.Errorf("6 naturals + wildcard classified %s, want dirty", ct)
	}
}

// TestCanAddToMeld verifies growth revalidation: a matching card grows
// the meld, a second wildcard is rejected, and members are never lost.
func TestCanAddToMeld(t *testing.T) {
	meld := Meld{ID: 1, Type: MeldSet, Cards: sevens(3)}

	grown, err := CanAddToMeld(card2(SuitSpades, RankSeven), meld)
	if err != nil {
		t.Fatalf("adding a fourth seven failed: %v", err)
	}
	if len(grown.Cards) != 4 {
		t.Errorf("grown meld has %d cards, want 4", len(grown.Cards))
	}
	for _, c := range meld.Cards {
		if handIndex(grown.Cards, c) < 0 {
			t.Errorf("grown meld lost member %s", c)
		}
	}

	withWild := Meld{ID: 2, Type: MeldSet, Cards: append(sevens(2), card(SuitClubs, RankTwo))}
	if _, err := CanAddToMeld(card(SuitHearts, RankTwo), withWild); !errors.Is(err, ErrInvalidMeld) {
		t.Errorf("second wildcard accepted, want ErrInvalidMeld")
	}

	if _, err := CanAddToMeld(card(SuitHearts, RankKing), meld); !errors.Is(err, ErrInvalidMeld) {
		t.Errorf("off-rank card accepted into set, want ErrInvalidMeld")
	}
}
