// Package engine implements the Tranca card game rules.
//
// Tranca is a four-player partnership Canasta variant played with two
// standard 52-card decks. Twos are wildcards, black threes are lockers
// and red threes are bonus cards. The package is self-contained and
// free of third-party dependencies; persistence, bot policies and
// presentation live in the packages that consume it.
//
// A RoundState is mutated exclusively through Apply. Rejected actions
// return a rule error and leave the state untouched, so callers may
// treat every application as atomic.
package engine

const (
	NumPlayers   = 4
	NumTeams     = 2
	HandSize     = 11
	DeadPileSize = 11
	DeckSize     = 104
	CanastaSize  = 7
)

// RoundState holds the complete state of one Tranca round. Stock and
// discard pile are ordered stacks drawn from the end; partnership is
// seats {0,2} against {1,3}.
type RoundState struct {
	Players   [NumPlayers]Player `json:"players"`
	Teams     [NumTeams]Team     `json:"teams"`
	Stock     []Card             `json:"stock"`
	Discard   []Card             `json:"discard"`
	DeadPiles [NumTeams][]Card   `json:"deadPiles"`

	Current uint8 `json:"current"`
	Phase   Phase `json:"phase"`

	// UI-facing markers.
	LastDrawn     Card `json:"lastDrawn"`     // EmptyCard when none
	Justification Card `json:"justification"` // EmptyCard unless a pickup awaits justification

	GoingOutTeam int8 `json:"goingOutTeam"` // -1 until a team goes out
	Winner       int8 `json:"winner"`       // -1 while playing, or on a drawn round

	NextMeldID uint8  `json:"nextMeldId"`
	RNG        uint64 `json:"rng"`
}

// NewRound initializes a RoundState with the given seed. The deck is
// built in deterministic order but not yet shuffled or dealt; call
// Deal before applying actions.
func NewRound(seed uint64) RoundState {
	var g RoundState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.LastDrawn = EmptyCard
	g.Justification = EmptyCard
	g.GoingOutTeam = -1
	g.Winner = -1
	g.Stock = buildDeck()
	return g
}

// Redeal resets everything except the cumulative team scores and
// re-deals from a fresh deck, starting the next round.
func (g *RoundState) Redeal(seed uint64) {
	carried := [NumTeams]int{}
	for i := range g.Teams {
		carried[i] = g.Teams[i].Score
	}
	players := g.Players

	*g = NewRound(seed)
	for i := range g.Players {
		g.Players[i].Name = players[i].Name
		g.Players[i].IsBot = players[i].IsBot
	}
	for i := range g.Teams {
		g.Teams[i].Score = carried[i]
	}
	g.Deal()
}

// ---------------------------------------------------------------------------
// xorshift64 RNG — inline, no interface
// ---------------------------------------------------------------------------

func (g *RoundState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *RoundState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// IsTerminal returns true when the round is over.
func (g *RoundState) IsTerminal() bool { return g.Phase == PhaseEnded }

// TeamOf returns the team index of the given seat: {0,2} → 0, {1,3} → 1.
func TeamOf(player uint8) uint8 { return player % NumTeams }

// CurrentPlayer returns the seat that must act next.
func (g *RoundState) CurrentPlayer() *Player { return &g.Players[g.Current] }

// CurrentTeam returns the team of the seat that must act next.
func (g *RoundState) CurrentTeam() *Team { return &g.Teams[TeamOf(g.Current)] }

// DiscardTop returns the top card of the discard pile, or EmptyCard if
// the pile is empty.
func (g *RoundState) DiscardTop() Card {
	if len(g.Discard) == 0 {
		return EmptyCard
	}
	return g.Discard[len(g.Discard)-1]
}

// DiscardPileLocked reports whether the pile may not be claimed. The
// pile is locked exactly while a locker or red bonus card sits on top.
func (g *RoundState) DiscardPileLocked() bool {
	top := g.DiscardTop()
	return top != EmptyCard && (top.IsLocker() || top.IsRedBonus())
}

// handIndex returns the position of card in hand, or -1.
func handIndex(hand []Card, card Card) int {
	for i, c := range hand {
		if c == card {
			return i
		}
	}
	return -1
}

// removeCards deletes the given cards from hand, preserving the order
// of the remainder. Callers must have verified membership first.
func removeCards(hand []Card, cards []Card) []Card {
	out := hand[:0:0]
	for _, c := range hand {
		if handIndex(cards, c) < 0 {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a deep copy of the round state. Persisting layers use
// it to snapshot-then-replace without sharing mutable slices.
func (g *RoundState) Clone() *RoundState {
	c := *g
	c.Stock = append([]Card(nil), g.Stock...)
	c.Discard = append([]Card(nil), g.Discard...)
	for i := range g.DeadPiles {
		c.DeadPiles[i] = append([]Card(nil), g.DeadPiles[i]...)
	}
	for i := range g.Players {
		c.Players[i].Hand = append([]Card(nil), g.Players[i].Hand...)
	}
	for i := range g.Teams {
		c.Teams[i].RedThrees = append([]Card(nil), g.Teams[i].RedThrees...)
		c.Teams[i].Melds = append([]Meld(nil), g.Teams[i].Melds...)
		for j := range c.Teams[i].Melds {
			c.Teams[i].Melds[j].Cards = append([]Card(nil), g.Teams[i].Melds[j].Cards...)
		}
	}
	return &c
}
