package engine

// CanJustifyPickup reports whether a player holding hand, on a team
// owning teamMelds, may legally claim the discard pile topped by top.
// The claim is justified when the top card could be used immediately:
// either it extends one of the team's existing melds, or it forms a
// brand-new valid meld together with at least two cards from the hand.
//
// The check runs against the pre-pickup hand; it is a look-ahead
// feasibility test, not a validation of a meld already chosen.
func CanJustifyPickup(top Card, hand []Card, teamMelds []Meld) bool {
	if top == EmptyCard {
		return false
	}
	for _, m := range teamMelds {
		if _, err := CanAddToMeld(top, m); err == nil {
			return true
		}
	}
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			if _, _, err := ValidateMeld([]Card{top, hand[i], hand[j]}); err == nil {
				return true
			}
		}
	}
	return false
}
