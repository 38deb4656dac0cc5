package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/RobertoCosta33/baralho/engine"
)

// cardLabel renders a card for menus. The index disambiguates the two
// physical copies of the same card.
func cardLabel(i int, c engine.Card) string {
	return fmt.Sprintf("%d: %s", i, colorCard(c))
}

func colorCard(c engine.Card) string {
	s := c.String()
	if c == engine.EmptyCard {
		return s
	}
	if c.IsBlack() {
		return pterm.LightWhite(s)
	}
	return pterm.LightRed(s)
}

func handString(hand []engine.Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = colorCard(c)
	}
	return strings.Join(parts, " ")
}

func meldString(m engine.Meld) string {
	label := fmt.Sprintf("#%d %s", m.ID, m.Type)
	if m.IsCanasta() {
		label += " " + pterm.LightYellow("["+m.Canasta.String()+"]")
	}
	parts := make([]string, len(m.Cards))
	for i, c := range m.Cards {
		parts[i] = colorCard(c)
	}
	return label + "  " + strings.Join(parts, " ")
}

func teamPanel(g *engine.RoundState, team uint8, title string) pterm.Panel {
	t := &g.Teams[team]
	var b strings.Builder
	fmt.Fprintf(&b, "Pontos: %d (rodada: %d)\n", t.Score, t.LiveScore())
	fmt.Fprintf(&b, "3 vermelhos: %d   Morto: %s\n", len(t.RedThrees), claimedString(t.DeadPileClaimed))
	if len(t.Melds) == 0 {
		b.WriteString(pterm.Gray("nenhum jogo na mesa"))
	}
	for _, m := range t.Melds {
		b.WriteString(meldString(m) + "\n")
	}
	box := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2).WithTitle(title).WithTitleTopLeft()
	return pterm.Panel{Data: box.Sprint(b.String())}
}

func claimedString(claimed bool) string {
	if claimed {
		return pterm.LightGreen("pego")
	}
	return pterm.Gray("disponível")
}

func tablePanel(g *engine.RoundState) pterm.Panel {
	var b strings.Builder
	fmt.Fprintf(&b, "Monte: %d cartas\n", len(g.Stock))
	top := "vazio"
	if len(g.Discard) > 0 {
		top = fmt.Sprintf("%s (%d cartas)", colorCard(g.DiscardTop()), len(g.Discard))
		if g.DiscardPileLocked() {
			top += " " + pterm.LightRed("TRANCADO")
		}
	}
	fmt.Fprintf(&b, "Lixo: %s\n", top)
	for p := uint8(0); p < engine.NumPlayers; p++ {
		marker := "  "
		if p == g.Current {
			marker = pterm.LightGreen("> ")
		}
		fmt.Fprintf(&b, "%s%s: %d cartas\n", marker, g.Players[p].Name, len(g.Players[p].Hand))
	}
	box := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2).WithTitle("Mesa").WithTitleTopCenter()
	return pterm.Panel{Data: box.Sprint(b.String())}
}

func handPanel(g *engine.RoundState, seat uint8) pterm.Panel {
	var b strings.Builder
	b.WriteString(handString(g.Players[seat].Hand) + "\n")
	if g.Justification != engine.EmptyCard {
		fmt.Fprintf(&b, "Justifique o lixo com: %s\n", colorCard(g.Justification))
	}
	box := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2).
		WithTitle("Sua mão (" + g.Players[seat].Name + ")").WithTitleTopLeft()
	return pterm.Panel{Data: box.Sprint(b.String())}
}

// renderTable draws the whole table for the given human seat.
func renderTable(g *engine.RoundState, seat uint8) {
	_ = pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{teamPanel(g, 0, "Sua dupla"), teamPanel(g, 1, "Adversários")},
		{tablePanel(g)},
		{handPanel(g, seat)},
	}).Render()
}

func renderRoundEnd(g *engine.RoundState) {
	var b strings.Builder
	switch {
	case g.Winner == 0:
		b.WriteString(pterm.LightGreen("Sua dupla venceu a rodada!") + "\n")
	case g.Winner == 1:
		b.WriteString(pterm.LightRed("Os adversários venceram a rodada.") + "\n")
	default:
		b.WriteString(pterm.LightYellow("Rodada empatada.") + "\n")
	}
	for i := range g.Teams {
		fmt.Fprintf(&b, "Time %d: %+d na rodada, %d no total\n", i, g.Teams[i].RoundScore, g.Teams[i].Score)
	}
	box := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1).
		WithTitle(pterm.LightYellow("|FIM DA RODADA|")).WithTitleTopCenter()
	pterm.Println(box.Sprint(b.String()))
}
