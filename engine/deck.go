package engine

// buildDeck returns the 104-card double deck in deterministic order:
// deck copy major, suit next, rank minor.
func buildDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for deckCopy := uint8(0); deckCopy < 2; deckCopy++ {
		for suit := uint8(0); suit < 4; suit++ {
			for rank := RankAce; rank <= RankKing; rank++ {
				deck = append(deck, NewCard(deckCopy, suit, rank))
			}
		}
	}
	return deck
}

// shuffleStock applies a Fisher-Yates shuffle to the stock using the
// round's RNG, giving every permutation equal probability for a fixed
// seed stream.
func (g *RoundState) shuffleStock() {
	for i := len(g.Stock) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.Stock[i], g.Stock[j] = g.Stock[j], g.Stock[i]
	}
}

// Deal shuffles the deck and distributes it: 11 cards to each of the
// four hands (one card per player per pass), then 11 to each of the two
// dead piles, leaving a 38-card stock. Red threes dealt into a hand are
// banked for that player's team and replaced from the stock, so hands
// still hold 11 cards afterwards. Play starts with seat 0 in the draw
// phase.
func (g *RoundState) Deal() {
	g.shuffleStock()

	for pass := 0; pass < HandSize; pass++ {
		for p := 0; p < NumPlayers; p++ {
			g.Players[p].Hand = append(g.Players[p].Hand, g.popStock())
		}
	}
	for pass := 0; pass < DeadPileSize; pass++ {
		for d := 0; d < NumTeams; d++ {
			g.DeadPiles[d] = append(g.DeadPiles[d], g.popStock())
		}
	}

	g.extractRedThrees()

	g.Current = 0
	g.Phase = PhaseDraw
}

// popStock removes and returns the top stock card. Callers must know
// the stock is non-empty.
func (g *RoundState) popStock() Card {
	card := g.Stock[len(g.Stock)-1]
	g.Stock = g.Stock[:len(g.Stock)-1]
	return card
}

// extractRedThrees moves every red three out of the hands into the
// owning team's bank and replaces each one from the stock. Replacement
// draws can surface further red threes, so the sweep repeats until the
// hands are clean or the stock runs dry (the latter cannot happen on a
// fresh 104-card deal).
func (g *RoundState) extractRedThrees() {
	for {
		moved := false
		for p := range g.Players {
			hand := g.Players[p].Hand
			kept := hand[:0:0]
			for _, c := range hand {
				if !c.IsRedBonus() {
					kept = append(kept, c)
					continue
				}
				team := &g.Teams[TeamOf(uint8(p))]
				team.RedThrees = append(team.RedThrees, c)
				if len(g.Stock) > 0 {
					kept = append(kept, g.popStock())
				}
				moved = true
			}
			g.Players[p].Hand = kept
		}
		if !moved {
			return
		}
	}
}
