package bot

import (
	"testing"

	"github.com/RobertoCosta33/baralho/engine"
)

func card(suit, rank uint8) engine.Card  { return engine.NewCard(0, suit, rank) }
func card2(suit, rank uint8) engine.Card { return engine.NewCard(1, suit, rank) }

// TestFindMeldsDisjoint verifies the lay-down search returns valid,
// non-overlapping melds and prefers the larger grouping.
func TestFindMeldsDisjoint(t *testing.T) {
	hand := []engine.Card{
		card(engine.SuitHearts, engine.RankNine),
		card(engine.SuitSpades, engine.RankNine),
		card(engine.SuitClubs, engine.RankNine),
		card2(engine.SuitDiamonds, engine.RankNine),
		card(engine.SuitHearts, engine.RankFive),
		card(engine.SuitHearts, engine.RankSix),
		card(engine.SuitHearts, engine.RankSeven),
		card(engine.SuitClubs, engine.RankKing),
	}

	melds := FindMelds(hand)
	if len(melds) != 2 {
		t.Fatalf("found %d melds, want 2: %v", len(melds), melds)
	}
	if len(melds[0]) != 4 {
		t.Errorf("first meld has %d cards, want the 4 nines first", len(melds[0]))
	}

	used := make(map[engine.Card]bool)
	for _, m := range melds {
		if _, _, err := engine.ValidateMeld(m); err != nil {
			t.Errorf("meld %v invalid: %v", m, err)
		}
		for _, c := range m {
			if used[c] {
				t.Errorf("card %s used in two melds", c)
			}
			used[c] = true
		}
	}
	if used[card(engine.SuitClubs, engine.RankKing)] {
		t.Error("lone king ended up in a meld")
	}
}

func TestFindMeldsShortHand(t *testing.T) {
	if m := FindMelds([]engine.Card{card(engine.SuitHearts, engine.RankNine)}); m != nil {
		t.Errorf("melds from a 1-card hand: %v", m)
	}
}

// TestChooseDiscard verifies the heuristic ordering: junk before run
// neighbors, and wildcards or lockers essentially never.
func TestChooseDiscard(t *testing.T) {
	junk := card(engine.SuitClubs, engine.RankKing)
	hand := []engine.Card{
		card(engine.SuitHearts, engine.RankNine),
		card(engine.SuitSpades, engine.RankNine), // pair, held
		card(engine.SuitHearts, engine.RankFive),
		card(engine.SuitHearts, engine.RankSix), // neighbors, held
		card(engine.SuitDiamonds, engine.RankTwo),
		card(engine.SuitSpades, engine.RankThree),
		junk,
	}
	if got := ChooseDiscard(hand, nil, nil); got != junk {
		t.Errorf("discarded %s, want the lone king", got)
	}
}

// TestChooseDiscardAvoidsFeedingOpponent verifies a card that extends
// an opponent meld is dumped before anything else.
func TestChooseDiscardAvoidsFeedingOpponent(t *testing.T) {
	feeder := card(engine.SuitHearts, engine.RankNine)
	hand := []engine.Card{
		feeder,
		card(engine.SuitClubs, engine.RankKing),
		card(engine.SuitDiamonds, engine.RankFour),
	}
	oppMelds := []engine.Meld{{ID: 1, Type: engine.MeldSet, Cards: []engine.Card{
		card(engine.SuitSpades, engine.RankNine),
		card(engine.SuitClubs, engine.RankNine),
		card2(engine.SuitDiamonds, engine.RankNine),
	}}}

	got := ChooseDiscard(hand, nil, oppMelds)
	if got == feeder {
		t.Errorf("discarded %s straight into an opponent meld", got)
	}
}

// TestShouldClaimPile verifies the claim gate follows justification and
// the pile lock.
func TestShouldClaimPile(t *testing.T) {
	g := engine.NewRound(1)
	g.Stock = nil
	g.Phase = engine.PhaseDraw
	g.DeadPiles[0] = []engine.Card{card(engine.SuitDiamonds, engine.RankEight)}
	g.Players[0].Hand = []engine.Card{
		card(engine.SuitSpades, engine.RankNine),
		card(engine.SuitClubs, engine.RankNine),
	}

	if ShouldClaimPile(&g) {
		t.Error("claimed an empty pile")
	}

	g.Discard = []engine.Card{card(engine.SuitHearts, engine.RankNine)}
	if !ShouldClaimPile(&g) {
		t.Error("refused a justifiable pile")
	}

	g.Discard = append(g.Discard, card(engine.SuitSpades, engine.RankThree))
	if ShouldClaimPile(&g) {
		t.Error("claimed a locked pile")
	}

	g.Discard = []engine.Card{card(engine.SuitHearts, engine.RankJack)}
	if ShouldClaimPile(&g) {
		t.Error("claimed a pile it cannot justify")
	}
}

// TestShouldClaimPileAvoidsStranding verifies the bot refuses a claim
// whose forced justification would leave it unable to finish the turn.
func TestShouldClaimPileAvoidsStranding(t *testing.T) {
	g := engine.NewRound(1)
	g.Stock = nil
	g.Phase = engine.PhaseDraw
	g.Teams[0].DeadPileClaimed = true
	g.Teams[1].DeadPileClaimed = true
	g.Discard = []engine.Card{card(engine.SuitHearts, engine.RankNine)}
	g.Players[0].Hand = []engine.Card{
		card(engine.SuitSpades, engine.RankNine),
		card(engine.SuitClubs, engine.RankNine),
	}

	// Two-card hand, one-card pile, dead piles spent, no clean canasta:
	// the justifying meld would strand the seat with nothing to discard.
	if ShouldClaimPile(&g) {
		t.Error("claimed into a stranded hand")
	}

	// With a clean canasta on the table the same claim finishes legally.
	sevens := []engine.Card{
		card(engine.SuitHearts, engine.RankSeven), card(engine.SuitDiamonds, engine.RankSeven),
		card(engine.SuitClubs, engine.RankSeven), card(engine.SuitSpades, engine.RankSeven),
		card2(engine.SuitHearts, engine.RankSeven), card2(engine.SuitDiamonds, engine.RankSeven),
		card2(engine.SuitClubs, engine.RankSeven),
	}
	g.Teams[0].Melds = []engine.Meld{{ID: 1, Type: engine.MeldSet, Canasta: engine.CanastaClean, Cards: sevens}}
	if !ShouldClaimPile(&g) {
		t.Error("refused a claim that finishes the round legally")
	}
}

// TestTakeTurnPlaysLegally drives a freshly dealt round for a stretch
// of bot turns and checks nothing illegal happens and no card is lost.
func TestTakeTurnPlaysLegally(t *testing.T) {
	g := engine.NewRound(2024)
	g.Deal()

	for turn := 0; turn < 60 && !g.IsTerminal(); turn++ {
		if err := TakeTurn(&g); err != nil {
			t.Fatalf("turn %d (seat %d, phase %s): %v", turn, g.Current, g.Phase, err)
		}
	}

	total := len(g.Stock) + len(g.Discard)
	for i := range g.DeadPiles {
		total += len(g.DeadPiles[i])
	}
	for p := range g.Players {
		total += len(g.Players[p].Hand)
	}
	for i := range g.Teams {
		total += len(g.Teams[i].RedThrees)
		for _, m := range g.Teams[i].Melds {
			total += len(m.Cards)
		}
	}
	if total != engine.DeckSize {
		t.Errorf("cards in play sum to %d, want %d", total, engine.DeckSize)
	}
}

// TestTakeTurnRefusesEndedRound verifies the policy never acts on a
// terminal state.
func TestTakeTurnRefusesEndedRound(t *testing.T) {
	g := engine.NewRound(5)
	g.Phase = engine.PhaseEnded
	if err := TakeTurn(&g); err == nil {
		t.Error("TakeTurn acted on an ended round")
	}
}
