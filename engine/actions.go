package engine

import "fmt"

// Action is a request to mutate the round state. The set is closed:
// these variants plus the internal red three processing triggered by
// draws are the only ways a round advances.
type Action interface {
	isAction()
}

// DrawFromStock draws the top stock card into the current player's
// hand. Drawn red threes are banked and re-drawn.
type DrawFromStock struct{}

// ClaimDiscardPile takes the whole discard pile into the current
// player's hand, when the top card can be justified.
type ClaimDiscardPile struct{}

// Discard moves one hand card onto the discard pile, ending the turn.
type Discard struct {
	CardID Card
}

// FormMeld lays down a brand-new meld from the current player's hand.
type FormMeld struct {
	CardIDs []Card
}

// ExtendMeld adds hand cards to one of the team's existing melds.
type ExtendMeld struct {
	CardIDs []Card
	MeldID  uint8
}

// SortHand reorders a player's own hand for display. No rule effect;
// legal at any time before the round ends, for any seat.
type SortHand struct {
	Player  uint8
	CardIDs []Card
}

func (DrawFromStock) isAction()    {}
func (ClaimDiscardPile) isAction() {}
func (Discard) isAction()          {}
func (FormMeld) isAction()         {}
func (ExtendMeld) isAction()       {}
func (SortHand) isAction()         {}

// Apply executes a single action against the round state. On error the
// state is guaranteed unchanged; on success the transition is fully
// applied. There is no partial application.
func (g *RoundState) Apply(a Action) error {
	if g.Phase == PhaseEnded {
		return ErrRoundOver
	}
	switch act := a.(type) {
	case DrawFromStock:
		return g.drawFromStock()
	case ClaimDiscardPile:
		return g.claimDiscardPile()
	case Discard:
		return g.discard(act.CardID)
	case FormMeld:
		return g.formMeld(act.CardIDs)
	case ExtendMeld:
		return g.extendMeld(act.CardIDs, act.MeldID)
	case SortHand:
		return g.sortHand(act.Player, act.CardIDs)
	}
	return fmt.Errorf("unhandled action type %T", a)
}

// drawFromStock pops the top stock card. A red three is banked for the
// team and the phase moves to PhaseProcessingRedThree, where the same
// player draws again; a regular card lands in the hand and the phase
// becomes PhaseMeldOrDiscard. An empty stock ends the round as a
// stalemate: nobody goes out and both teams are scored as they stand.
func (g *RoundState) drawFromStock() error {
	if g.Phase != PhaseDraw && g.Phase != PhaseProcessingRedThree {
		return fmt.Errorf("%w: draw in %s", ErrWrongPhase, g.Phase)
	}
	if len(g.Stock) == 0 {
		g.endRound(-1)
		return nil
	}

	card := g.popStock()
	if card.IsRedBonus() {
		team := g.CurrentTeam()
		team.RedThrees = append(team.RedThrees, card)
		g.Phase = PhaseProcessingRedThree
		return nil
	}

	player := g.CurrentPlayer()
	player.Hand = append(player.Hand, card)
	g.LastDrawn = card
	g.Phase = PhaseMeldOrDiscard
	return nil
}

// claimDiscardPile transfers the entire discard pile into the current
// player's hand after the justification check passes. The player's next
// meld must use the card that was on top.
func (g *RoundState) claimDiscardPile() error {
	if g.Phase != PhaseDraw {
		return fmt.Errorf("%w: claim in %s", ErrWrongPhase, g.Phase)
	}
	if len(g.Discard) == 0 {
		return ErrPileEmpty
	}
	if g.DiscardPileLocked() {
		return ErrPileLocked
	}
	top := g.DiscardTop()
	player := g.CurrentPlayer()
	if !CanJustifyPickup(top, player.Hand, g.CurrentTeam().Melds) {
		return ErrCannotJustify
	}

	player.Hand = append(player.Hand, g.Discard...)
	g.Discard = nil
	g.Justification = top
	g.Phase = PhaseMustJustifyDiscard
	return nil
}

// discard moves one card from the current hand onto the discard pile
// and hands the turn over. Emptying the hand either replenishes it from
// an unclaimed dead pile (same player keeps the turn) or, when the team
// already claimed one, goes out — which requires a clean canasta.
func (g *RoundState) discard(cardID Card) error {
	if g.Phase != PhaseMeldOrDiscard {
		return fmt.Errorf("%w: discard in %s", ErrWrongPhase, g.Phase)
	}
	player := g.CurrentPlayer()
	if handIndex(player.Hand, cardID) < 0 {
		return fmt.Errorf("%w: %s", ErrCardNotHeld, cardID)
	}

	team := g.CurrentTeam()
	emptying := len(player.Hand) == 1
	if emptying && g.deadPilesSpent(team) && !team.HasCleanCanasta() {
		return ErrNoQualifyingCanasta
	}

	player.Hand = removeCards(player.Hand, []Card{cardID})
	g.Discard = append(g.Discard, cardID)
	g.LastDrawn = EmptyCard

	if emptying {
		if g.deadPilesSpent(team) {
			g.endRound(int8(TeamOf(g.Current)))
			return nil
		}
		g.takeDeadPile(player, team)
		return nil // same player, still PhaseMeldOrDiscard
	}

	g.Current = (g.Current + 1) % NumPlayers
	g.Phase = PhaseDraw
	return nil
}

// formMeld lays down a new meld for the current team. While a pickup
// awaits justification the meld must contain the triggering card. A
// meld that empties the hand follows the same dead-pile / going-out
// rules as an emptying discard, with the fresh meld counting toward the
// clean canasta requirement.
func (g *RoundState) formMeld(cardIDs []Card) error {
	if g.Phase != PhaseMeldOrDiscard && g.Phase != PhaseMustJustifyDiscard {
		return fmt.Errorf("%w: meld in %s", ErrWrongPhase, g.Phase)
	}
	player := g.CurrentPlayer()
	cards, err := g.cardsFromHand(player, cardIDs)
	if err != nil {
		return err
	}
	if g.Phase == PhaseMustJustifyDiscard && handIndex(cards, g.Justification) < 0 {
		return ErrJustificationUnused
	}

	mt, canasta, err := ValidateMeld(cards)
	if err != nil {
		return err
	}

	team := g.CurrentTeam()
	emptying := len(player.Hand) == len(cards)
	if emptying && g.deadPilesSpent(team) {
		qualifies := team.HasCleanCanasta() || canasta == CanastaClean || canasta == CanastaReal
		if !qualifies {
			return ErrNoQualifyingCanasta
		}
	}

	team.Melds = append(team.Melds, Meld{ID: g.NextMeldID, Type: mt, Canasta: canasta, Cards: cards})
	g.NextMeldID++
	player.Hand = removeCards(player.Hand, cards)
	g.Justification = EmptyCard
	g.Phase = PhaseMeldOrDiscard

	if emptying {
		if g.deadPilesSpent(team) {
			g.endRound(int8(TeamOf(g.Current)))
		} else {
			g.takeDeadPile(player, team)
		}
	}
	return nil
}

// extendMeld grows one of the team's melds with cards from the current
// hand, under the same justification and hand-emptying rules as
// formMeld.
func (g *RoundState) extendMeld(cardIDs []Card, meldID uint8) error {
	if g.Phase != PhaseMeldOrDiscard && g.Phase != PhaseMustJustifyDiscard {
		return fmt.Errorf("%w: meld in %s", ErrWrongPhase, g.Phase)
	}
	player := g.CurrentPlayer()
	cards, err := g.cardsFromHand(player, cardIDs)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		return fmt.Errorf("%w: no cards to add", ErrInvalidMeld)
	}
	if g.Phase == PhaseMustJustifyDiscard && handIndex(cards, g.Justification) < 0 {
		return ErrJustificationUnused
	}

	team := g.CurrentTeam()
	mi := -1
	for i := range team.Melds {
		if team.Melds[i].ID == meldID {
			mi = i
			break
		}
	}
	if mi < 0 {
		return fmt.Errorf("%w: id %d", ErrMeldNotFound, meldID)
	}

	grown := append(append([]Card(nil), team.Melds[mi].Cards...), cards...)
	mt, canasta, err := ValidateMeld(grown)
	if err != nil {
		return err
	}

	emptying := len(player.Hand) == len(cards)
	if emptying && g.deadPilesSpent(team) {
		qualifies := canasta == CanastaClean || canasta == CanastaReal
		for i := range team.Melds {
			if i == mi {
				continue
			}
			if c := team.Melds[i].Canasta; c == CanastaClean || c == CanastaReal {
				qualifies = true
			}
		}
		if !qualifies {
			return ErrNoQualifyingCanasta
		}
	}

	team.Melds[mi].Cards = grown
	team.Melds[mi].Type = mt
	team.Melds[mi].Canasta = canasta
	player.Hand = removeCards(player.Hand, cards)
	g.Justification = EmptyCard
	g.Phase = PhaseMeldOrDiscard

	if emptying {
		if g.deadPilesSpent(team) {
			g.endRound(int8(TeamOf(g.Current)))
		} else {
			g.takeDeadPile(player, team)
		}
	}
	return nil
}

// sortHand replaces a player's hand with the given permutation of it.
func (g *RoundState) sortHand(playerIdx uint8, cardIDs []Card) error {
	if playerIdx >= NumPlayers {
		return fmt.Errorf("%w: seat %d", ErrNoSuchPlayer, playerIdx)
	}
	player := &g.Players[playerIdx]
	if len(cardIDs) != len(player.Hand) {
		return ErrBadHandOrder
	}
	seen := make(map[Card]bool, len(cardIDs))
	for _, c := range cardIDs {
		if seen[c] || handIndex(player.Hand, c) < 0 {
			return ErrBadHandOrder
		}
		seen[c] = true
	}
	player.Hand = append(player.Hand[:0:0], cardIDs...)
	return nil
}

// cardsFromHand resolves the requested card ids against the player's
// hand, rejecting duplicates and cards not held.
func (g *RoundState) cardsFromHand(player *Player, cardIDs []Card) ([]Card, error) {
	cards := make([]Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		if handIndex(cards, id) >= 0 {
			return nil, fmt.Errorf("%w: %s requested twice", ErrCardNotHeld, id)
		}
		if handIndex(player.Hand, id) < 0 {
			return nil, fmt.Errorf("%w: %s", ErrCardNotHeld, id)
		}
		cards = append(cards, id)
	}
	return cards, nil
}

// deadPilesSpent reports whether emptying a hand would end the round
// for the given team: it already claimed a dead pile, or none is left.
func (g *RoundState) deadPilesSpent(team *Team) bool {
	if team.DeadPileClaimed {
		return true
	}
	for i := range g.DeadPiles {
		if len(g.DeadPiles[i]) > 0 {
			return false
		}
	}
	return true
}

// takeDeadPile hands the first remaining dead pile to the player who
// just emptied their hand. The turn stays with that player.
func (g *RoundState) takeDeadPile(player *Player, team *Team) {
	for i := range g.DeadPiles {
		if len(g.DeadPiles[i]) == 0 {
			continue
		}
		player.Hand = append(player.Hand, g.DeadPiles[i]...)
		g.DeadPiles[i] = nil
		team.DeadPileClaimed = true
		g.Phase = PhaseMeldOrDiscard
		return
	}
}
