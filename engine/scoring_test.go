package engine

import "testing"

// TestCardPoints verifies the card value table.
func TestCardPoints(t *testing.T) {
	tests := []struct {
		card Card
		want int
	}{
		{card(SuitHearts, RankAce), 15},
		{card(SuitSpades, RankTwo), 10},
		{card(SuitClubs, RankThree), 100},
		{card(SuitDiamonds, RankThree), 100},
		{card(SuitHearts, RankFour), 5},
		{card(SuitHearts, RankSeven), 5},
		{card(SuitHearts, RankEight), 10},
		{card(SuitHearts, RankKing), 10},
	}
	for _, tc := range tests {
		if got := tc.card.Points(); got != tc.want {
			t.Errorf("%s worth %d points, want %d", tc.card, got, tc.want)
		}
	}
}

// TestLiveScoreRedThreeSwing verifies red threes count against a team
// until its first canasta and for it afterwards.
func TestLiveScoreRedThreeSwing(t *testing.T) {
	team := Team{
		Melds:     []Meld{{ID: 1, Type: MeldSet, Cards: sevens(3)}},
		RedThrees: []Card{card(SuitHearts, RankThree), card(SuitDiamonds, RankThree)},
	}
	// 3 sevens at 5 points each, minus 2 red threes.
	if got := team.LiveScore(); got != 15-200 {
		t.Errorf("pre-canasta live score %d, want %d", got, 15-200)
	}

	team.Melds[0].Cards = sevens(7)
	team.Melds[0].Canasta = CanastaClean
	// 7 sevens + clean bonus + 2 red threes.
	if got := team.LiveScore(); got != 35+CanastaCleanBonus+200 {
		t.Errorf("post-canasta live score %d, want %d", got, 35+CanastaCleanBonus+200)
	}
}

// TestEndRoundGoingOut verifies the full round settlement when team 0
// goes out: going-out bonus, opponents charged for hand cards with the
// flat locker penalty, and the unclaimed dead pile billed to the team
// that never took one.
func TestEndRoundGoingOut(t *testing.T) {
	g := NewRound(3)
	g.Stock = nil
	g.Teams[0].Melds = []Meld{{ID: 1, Type: MeldSet, Canasta: CanastaClean, Cards: sevens(7)}}
	g.Teams[0].DeadPileClaimed = true
	g.Teams[0].RedThrees = []Card{card(SuitHearts, RankThree)}

	g.Players[1].Hand = []Card{card(SuitHearts, RankAce), card(SuitSpades, RankThree)}
	g.Teams[1].DeadPileClaimed = false
	g.DeadPiles[1] = []Card{card(SuitHearts, RankKing), card(SuitClubs, RankFour)}

	g.endRound(0)

	// 7 sevens (35) + clean bonus + going out + red three.
	want0 := 35 + CanastaCleanBonus + GoingOutBonus + RedThreeValue
	if g.Teams[0].RoundScore != want0 {
		t.Errorf("team 0 round score %d, want %d", g.Teams[0].RoundScore, want0)
	}

	// Ace (15) + locker flat 100 in hand, then the unclaimed pile:
	// flat 100 plus king 10 and four 5.
	want1 := -(15 + LockerInHandPenalty) - (UnclaimedDeadPilePenalty + 10 + 5)
	if g.Teams[1].RoundScore != want1 {
		t.Errorf("team 1 round score %d, want %d", g.Teams[1].RoundScore, want1)
	}

	if g.Winner != 0 {
		t.Errorf("winner %d, want team 0", g.Winner)
	}
	if g.GoingOutTeam != 0 {
		t.Errorf("going-out team %d, want 0", g.GoingOutTeam)
	}
	if g.Phase != PhaseEnded || !g.IsTerminal() {
		t.Errorf("round not terminal after endRound, phase %s", g.Phase)
	}
	if g.Teams[0].Score != want0 || g.Teams[1].Score != want1 {
		t.Error("cumulative scores did not absorb the round scores")
	}
}

// TestEndRoundStalemate verifies that with nobody out the higher round
// score wins and a tie leaves no winner.
func TestEndRoundStalemate(t *testing.T) {
	g := NewRound(3)
	g.Stock = nil
	g.Teams[0].DeadPileClaimed = true
	g.Teams[1].DeadPileClaimed = true
	g.Teams[0].Melds = []Meld{{ID: 1, Type: MeldSet, Cards: sevens(3)}}

	g.endRound(-1)
	if g.Winner != 0 {
		t.Errorf("winner %d, want team 0 on higher score", g.Winner)
	}

	h := NewRound(3)
	h.Stock = nil
	h.Teams[0].DeadPileClaimed = true
	h.Teams[1].DeadPileClaimed = true
	h.endRound(-1)
	if h.Winner != -1 {
		t.Errorf("winner %d on equal scores, want -1", h.Winner)
	}
	if h.GoingOutTeam != -1 {
		t.Errorf("going-out team %d in a stalemate, want -1", h.GoingOutTeam)
	}
}

// TestEndRoundBothPilesUnclaimed verifies each team absorbs exactly one
// remaining dead pile, never two.
func TestEndRoundBothPilesUnclaimed(t *testing.T) {
	g := NewRound(3)
	g.Stock = nil
	g.DeadPiles[0] = []Card{card(SuitHearts, RankFour)} // 5 points
	g.DeadPiles[1] = []Card{card(SuitHearts, RankAce)}  // 15 points

	g.endRound(-1)

	want0 := -(UnclaimedDeadPilePenalty + 5)
	want1 := -(UnclaimedDeadPilePenalty + 15)
	if g.Teams[0].RoundScore != want0 {
		t.Errorf("team 0 round score %d, want %d", g.Teams[0].RoundScore, want0)
	}
	if g.Teams[1].RoundScore != want1 {
		t.Errorf("team 1 round score %d, want %d", g.Teams[1].RoundScore, want1)
	}
}
