// Package bot implements a rule-driven policy for seats marked IsBot.
// The policy only observes the public RoundState and submits regular
// engine actions, so it plays under exactly the same rules as a human.
package bot

import (
	"fmt"

	"github.com/RobertoCosta33/baralho/engine"
)

// Discard scoring weights. A card's score is the sum of the applicable
// weights minus its sequencing value; the lowest-scoring card goes to
// the pile.
const (
	pairBonus     = 10
	tripleBonus   = 20
	neighborBonus = 5
	extendsOwn    = 15
	feedsOpponent = 100 // held back, never handed to the other team
	lockerHold    = 50
	wildcardHold  = 40
)

// combinations appends every size-k subset of cards to out, preserving
// the hand order within each subset.
func combinations(cards []engine.Card, k int, out [][]engine.Card) [][]engine.Card {
	if k == 0 || k > len(cards) {
		return out
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]engine.Card, k)
		for i, j := range idx {
			combo[i] = cards[j]
		}
		out = append(out, combo)

		i := k - 1
		for i >= 0 && idx[i] == len(cards)-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// FindMelds returns disjoint card groups from hand that each form a
// valid meld. Larger groups are preferred; no card appears in more than
// one group.
func FindMelds(hand []engine.Card) [][]engine.Card {
	if len(hand) < 3 {
		return nil
	}

	var candidates [][]engine.Card
	max := len(hand)
	if max > engine.CanastaSize {
		max = engine.CanastaSize
	}
	// Largest first, so the greedy pass below consumes the biggest
	// melds before their sub-melds.
	for size := max; size >= 3; size-- {
		for _, combo := range combinations(hand, size, nil) {
			if _, _, err := engine.ValidateMeld(combo); err == nil {
				candidates = append(candidates, combo)
			}
		}
	}

	var melds [][]engine.Card
	used := make(map[engine.Card]bool)
	for _, combo := range candidates {
		overlap := false
		for _, c := range combo {
			if used[c] {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		melds = append(melds, combo)
		for _, c := range combo {
			used[c] = true
		}
	}
	return melds
}

// ChooseDiscard picks the least valuable hand card: high cards, pairs,
// run neighbors and cards that fit the team's melds are held back,
// wildcards and lockers almost never leave the hand, and anything that
// would extend an opponent meld is held hardest of all.
func ChooseDiscard(hand []engine.Card, ownMelds, opponentMelds []engine.Meld) engine.Card {
	best := hand[0]
	bestScore := 1 << 30
	for _, c := range hand {
		score := -c.SeqValue()

		sameRank := 0
		for _, o := range hand {
			if o.Rank() == c.Rank() {
				sameRank++
			}
		}
		if sameRank == 2 {
			score += pairBonus
		}
		if sameRank >= 3 {
			score += tripleBonus
		}

		for _, o := range hand {
			if o.Suit() == c.Suit() && (o.SeqValue() == c.SeqValue()+1 || o.SeqValue() == c.SeqValue()-1) {
				score += neighborBonus
				break
			}
		}

		if fitsAnyMeld(c, ownMelds) {
			score += extendsOwn
		}
		if fitsAnyMeld(c, opponentMelds) {
			score += feedsOpponent
		}

		if c.IsLocker() {
			score += lockerHold
		}
		if c.IsWildcard() {
			score += wildcardHold
		}

		if score < bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

func fitsAnyMeld(c engine.Card, melds []engine.Meld) bool {
	for _, m := range melds {
		if _, err := engine.CanAddToMeld(c, m); err == nil {
			return true
		}
	}
	return false
}

// ShouldClaimPile reports whether the bot wants the discard pile. It
// claims whenever the claim would be legal: the pile only grows the
// hand and the justifying meld scores immediately.
func ShouldClaimPile(g *engine.RoundState) bool {
	if len(g.Discard) == 0 || g.DiscardPileLocked() {
		return false
	}
	hand := g.CurrentPlayer().Hand
	top := g.DiscardTop()
	if !engine.CanJustifyPickup(top, hand, g.CurrentTeam().Melds) {
		return false
	}
	// A claim commits the seat to melding with the top card. With hand
	// plus pile at four cards or fewer, a fresh 3-card justifying meld
	// strands the seat at one or zero cards, which is only playable when
	// the round can legally finish from there. Extending an existing
	// meld keeps at least two cards back, so it stays acceptable.
	if n := len(hand) + len(g.Discard); n <= 4 && !mayShrinkHandTo(g, 1, engine.CanastaNone) {
		return n >= 3 && fitsAnyMeld(top, g.CurrentTeam().Melds)
	}
	return true
}

// TakeTurn plays one complete turn for the current seat: draw or claim,
// lay down whatever melds the hand supports, then discard. It returns
// after the turn passes or the round ends.
func TakeTurn(g *engine.RoundState) error {
	if g.IsTerminal() {
		return engine.ErrRoundOver
	}
	seat := g.Current

	if g.Phase == engine.PhaseDraw {
		if ShouldClaimPile(g) {
			if err := g.Apply(engine.ClaimDiscardPile{}); err != nil {
				return fmt.Errorf("bot claim: %w", err)
			}
		} else {
			for {
				if err := g.Apply(engine.DrawFromStock{}); err != nil {
					return fmt.Errorf("bot draw: %w", err)
				}
				if g.Phase != engine.PhaseProcessingRedThree {
					break
				}
			}
			if g.IsTerminal() {
				return nil
			}
		}
	}

	if g.Phase == engine.PhaseMustJustifyDiscard {
		if err := playJustification(g); err != nil {
			return err
		}
	}

	// Discarding the last card can replenish the hand from a dead pile
	// and keep the turn, so meld-then-discard repeats until the turn
	// actually passes.
	for {
		if err := layDownMelds(g); err != nil {
			return err
		}
		if g.IsTerminal() || g.Current != seat {
			return nil
		}

		hand := g.CurrentPlayer().Hand
		out := ChooseDiscard(hand, g.CurrentTeam().Melds, opponentMelds(g))
		if err := g.Apply(engine.Discard{CardID: out}); err != nil {
			return fmt.Errorf("bot discard %s: %w", out, err)
		}
		if g.IsTerminal() || g.Current != seat {
			return nil
		}
	}
}

// playJustification resolves a claimed pile by melding with the
// triggering card, extending an existing meld when possible and laying
// a fresh one otherwise. A claim is only ever made when one of the two
// exists.
func playJustification(g *engine.RoundState) error {
	top := g.Justification
	team := g.CurrentTeam()
	for _, m := range team.Melds {
		if _, err := engine.CanAddToMeld(top, m); err == nil {
			if err := g.Apply(engine.ExtendMeld{CardIDs: []engine.Card{top}, MeldID: m.ID}); err != nil {
				return fmt.Errorf("bot justify extend: %w", err)
			}
			return nil
		}
	}

	hand := g.CurrentPlayer().Hand
	for i := 0; i < len(hand); i++ {
		if hand[i] == top {
			continue
		}
		for j := i + 1; j < len(hand); j++ {
			if hand[j] == top {
				continue
			}
			combo := []engine.Card{top, hand[i], hand[j]}
			if _, _, err := engine.ValidateMeld(combo); err != nil {
				continue
			}
			if err := g.Apply(engine.FormMeld{CardIDs: combo}); err != nil {
				return fmt.Errorf("bot justify meld: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("bot justify: %w", engine.ErrCannotJustify)
}

// layDownMelds repeatedly forms and extends melds until the hand has
// nothing left to lay. Melds that would strand the hand at exactly one
// card are skipped unless the seat could finish the round from there.
func layDownMelds(g *engine.RoundState) error {
	seat := g.Current
	for {
		progressed := false

		player := g.CurrentPlayer()
		for _, combo := range FindMelds(player.Hand) {
			if !mayShrinkHandTo(g, len(player.Hand)-len(combo), comboCanasta(combo)) {
				continue
			}
			if err := g.Apply(engine.FormMeld{CardIDs: combo}); err != nil {
				return fmt.Errorf("bot meld: %w", err)
			}
			progressed = true
			break // hand changed; recompute combinations
		}
		if g.IsTerminal() || g.Current != seat {
			return nil
		}
		if progressed {
			continue
		}

		player = g.CurrentPlayer()
		team := g.CurrentTeam()
	extend:
		for _, c := range player.Hand {
			for _, m := range team.Melds {
				grown, err := engine.CanAddToMeld(c, m)
				if err != nil {
					continue
				}
				if !mayShrinkHandTo(g, len(player.Hand)-1, grown.Canasta) {
					break extend
				}
				if err := g.Apply(engine.ExtendMeld{CardIDs: []engine.Card{c}, MeldID: m.ID}); err != nil {
					return fmt.Errorf("bot extend: %w", err)
				}
				progressed = true
				break extend
			}
		}
		if g.IsTerminal() || g.Current != seat {
			return nil
		}
		if !progressed {
			return nil
		}
	}
}

// mayShrinkHandTo reports whether leaving n cards in hand keeps a legal
// continuation. Zero or one cards are only safe when the seat could
// finish from there: a dead pile remains to replenish from, the team
// already qualifies to go out, or the meld being laid is itself a clean
// canasta.
func mayShrinkHandTo(g *engine.RoundState, n int, laying engine.CanastaType) bool {
	if n > 1 {
		return true
	}
	team := g.CurrentTeam()
	if !team.DeadPileClaimed {
		for i := range g.DeadPiles {
			if len(g.DeadPiles[i]) > 0 {
				return true
			}
		}
	}
	if team.HasCleanCanasta() {
		return true
	}
	return n == 0 && (laying == engine.CanastaClean || laying == engine.CanastaReal)
}

// comboCanasta classifies what a fresh meld of combo would be. FindMelds
// only emits valid combos, so the error is impossible here.
func comboCanasta(combo []engine.Card) engine.CanastaType {
	_, ct, _ := engine.ValidateMeld(combo)
	return ct
}

func opponentMelds(g *engine.RoundState) []engine.Meld {
	other := (engine.TeamOf(g.Current) + 1) % engine.NumTeams
	return g.Teams[other].Melds
}
