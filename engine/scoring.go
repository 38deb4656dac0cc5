package engine

// Bonus and penalty constants.
const (
	CanastaCleanBonus = 200
	CanastaDirtyBonus = 100
	CanastaRealBonus  = 500

	GoingOutBonus            = 100
	RedThreeValue            = 100 // per card: bonus with a canasta, penalty without
	LockerInHandPenalty      = 100 // flat, replaces the table value
	UnclaimedDeadPilePenalty = 100
)

// canastaBonus returns the bonus for a meld's canasta classification.
func canastaBonus(t CanastaType) int {
	switch t {
	case CanastaClean:
		return CanastaCleanBonus
	case CanastaDirty:
		return CanastaDirtyBonus
	case CanastaReal:
		return CanastaRealBonus
	}
	return 0
}

// HasCanasta reports whether the team owns at least one canasta of any
// classification. Red threes only pay out once this is true.
func (t *Team) HasCanasta() bool {
	for i := range t.Melds {
		if t.Melds[i].IsCanasta() {
			return true
		}
	}
	return false
}

// HasCleanCanasta reports whether the team owns a clean-or-better
// canasta, the prerequisite for going out.
func (t *Team) HasCleanCanasta() bool {
	for i := range t.Melds {
		switch t.Melds[i].Canasta {
		case CanastaClean, CanastaReal:
			return true
		}
	}
	return false
}

// meldPoints sums the table value of every card laid down by the team.
func (t *Team) meldPoints() int {
	pts := 0
	for i := range t.Melds {
		for _, c := range t.Melds[i].Cards {
			pts += c.Points()
		}
	}
	return pts
}

// LiveScore computes the team's provisional in-round score for display:
// meld card points, canasta bonuses and the red three contribution.
// Each red three is worth +100 once the team holds a canasta and -100
// until then.
func (t *Team) LiveScore() int {
	score := t.meldPoints()
	for i := range t.Melds {
		score += canastaBonus(t.Melds[i].Canasta)
	}
	if n := len(t.RedThrees); n > 0 {
		if t.HasCanasta() {
			score += n * RedThreeValue
		} else {
			score -= n * RedThreeValue
		}
	}
	return score
}

// finalRoundScore computes one team's definitive score at round end.
// wentOut marks the team that legally emptied a hand; unclaimedPile is
// the dead pile charged to the team when it never claimed one (nil
// otherwise).
func (g *RoundState) finalRoundScore(team uint8, wentOut bool, unclaimedPile []Card) int {
	t := &g.Teams[team]
	score := t.meldPoints()
	for i := range t.Melds {
		score += canastaBonus(t.Melds[i].Canasta)
	}
	if wentOut {
		score += GoingOutBonus
	}

	// Cards left in the partnership's hands count against the team.
	for p := uint8(0); p < NumPlayers; p++ {
		if TeamOf(p) != team {
			continue
		}
		for _, c := range g.Players[p].Hand {
			if c.IsLocker() {
				score -= LockerInHandPenalty
			} else {
				score -= c.Points()
			}
		}
	}

	if n := len(t.RedThrees); n > 0 {
		if t.HasCanasta() {
			score += n * RedThreeValue
		} else {
			score -= n * RedThreeValue
		}
	}

	if !t.DeadPileClaimed {
		score -= UnclaimedDeadPilePenalty
		for _, c := range unclaimedPile {
			score -= c.Points()
		}
	}
	return score
}

// endRound finalizes the round: both teams are scored, cumulative
// scores advance and the winner is fixed. goingOut is the team that
// legally emptied a hand, or -1 for a stalemate.
//
// The team that went out always wins; in a stalemate the higher round
// score wins and equal scores leave no winner. Each team that never
// claimed a dead pile absorbs the value of one remaining pile, its own
// only — the opponent is not charged twice.
func (g *RoundState) endRound(goingOut int8) {
	g.GoingOutTeam = goingOut

	var unclaimed [][]Card
	for i := range g.DeadPiles {
		if len(g.DeadPiles[i]) > 0 {
			unclaimed = append(unclaimed, g.DeadPiles[i])
		}
	}

	for i := uint8(0); i < NumTeams; i++ {
		var pile []Card
		if !g.Teams[i].DeadPileClaimed && len(unclaimed) > 0 {
			pile = unclaimed[0]
			unclaimed = unclaimed[1:]
		}
		rs := g.finalRoundScore(i, int8(i) == goingOut, pile)
		g.Teams[i].RoundScore = rs
		g.Teams[i].Score += rs
	}

	switch {
	case goingOut >= 0:
		g.Winner = goingOut
	case g.Teams[0].RoundScore > g.Teams[1].RoundScore:
		g.Winner = 0
	case g.Teams[1].RoundScore > g.Teams[0].RoundScore:
		g.Winner = 1
	default:
		g.Winner = -1
	}
	g.Phase = PhaseEnded
}
