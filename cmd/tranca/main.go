// Command tranca plays a Tranca match in the terminal: one human seat
// against and alongside three bots, with the match snapshot persisted
// after every action.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"

	"github.com/RobertoCosta33/baralho/engine"
	"github.com/RobertoCosta33/baralho/internal/config"
	"github.com/RobertoCosta33/baralho/internal/room"
	"github.com/RobertoCosta33/baralho/internal/store"
)

const humanSeat = 0

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	if f, err := os.OpenFile("tranca.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		logger.SetOutput(f)
		defer f.Close()
	}

	st, err := openStore(cfg)
	if err != nil {
		pterm.Error.Printfln("não foi possível abrir o armazenamento: %v", err)
		os.Exit(1)
	}
	defer st.Close()

	_ = pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Tran", pterm.FgLightGreen.ToStyle()),
		putils.LettersFromStringWithStyle("ca", pterm.FgLightYellow.ToStyle()),
	).Render()

	name, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText("Seu nome").
		WithDefaultValue(cfg.PlayerName).
		Show()
	if strings.TrimSpace(name) == "" {
		name = cfg.PlayerName
	}
	pterm.Println()

	mgr := room.NewManager(st, logger)
	mgr.BotDelay = cfg.BotDelay

	names := [engine.NumPlayers]string{name, "Oponente 1", "Parceiro", "Oponente 2"}
	bots := [engine.NumPlayers]bool{false, true, true, true}
	r, err := mgr.Create(names, bots, uint64(time.Now().UnixNano()))
	if err != nil {
		pterm.Error.Printfln("não foi possível criar a sala: %v", err)
		os.Exit(1)
	}
	pterm.Info.Printfln("Sala %s criada. Boa sorte!", r.ID)

	ctx := context.Background()
	for {
		if err := playRound(ctx, r); err != nil {
			pterm.Error.Printfln("a partida foi interrompida: %v", err)
			os.Exit(1)
		}

		renderRoundEnd(r.View())
		again, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText("Jogar a próxima rodada?").
			WithDefaultValue(true).
			Show()
		if !again {
			break
		}
		if err := r.NextRound(ctx, uint64(time.Now().UnixNano())); err != nil {
			pterm.Error.Printfln("não foi possível iniciar a rodada: %v", err)
			os.Exit(1)
		}
	}

	if err := mgr.Close(ctx, r.ID); err != nil {
		logger.WithError(err).Warn("could not clean up room snapshot")
	}
	pterm.Info.Println("Até a próxima!")
}

func openStore(cfg config.Config) (store.Store, error) {
	switch {
	case cfg.RedisAddr != "":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return store.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case cfg.SQLitePath != "":
		return store.NewSQLite(cfg.SQLitePath)
	default:
		return store.NewMemory(), nil
	}
}

// playRound drives a full round: bots play themselves, the human seat
// gets an interactive menu each turn.
func playRound(ctx context.Context, r *room.Room) error {
	for {
		view := r.View()
		if view.IsTerminal() {
			return nil
		}
		if view.CurrentPlayer().IsBot {
			if err := r.RunBots(ctx); err != nil {
				return err
			}
			continue
		}
		if err := humanTurn(ctx, r); err != nil {
			return err
		}
	}
}

func humanTurn(ctx context.Context, r *room.Room) error {
	for {
		view := r.View()
		if view.IsTerminal() || view.Current != humanSeat {
			return nil
		}
		renderTable(view, humanSeat)

		action, err := chooseAction(view)
		if err != nil {
			return err
		}
		if action == nil {
			continue // menu-only step, e.g. reordering
		}
		if err := r.Apply(ctx, action); err != nil {
			pterm.Error.Printfln("jogada inválida: %v", err)
		}
	}
}

// chooseAction builds the phase-appropriate menu and returns the chosen
// engine action, or nil when the step handled itself.
func chooseAction(g *engine.RoundState) (engine.Action, error) {
	hand := g.Players[humanSeat].Hand

	switch g.Phase {
	case engine.PhaseDraw, engine.PhaseProcessingRedThree:
		options := []string{"Comprar do monte"}
		if len(g.Discard) > 0 && g.Phase == engine.PhaseDraw {
			options = append(options, "Pegar o lixo")
		}
		choice, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Sua vez").
			WithOptions(options).
			Show()
		if err != nil {
			return nil, err
		}
		if choice == "Pegar o lixo" {
			return engine.ClaimDiscardPile{}, nil
		}
		return engine.DrawFromStock{}, nil

	case engine.PhaseMustJustifyDiscard:
		return chooseJustification(g, hand)

	case engine.PhaseMeldOrDiscard:
		choice, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("O que fazer?").
			WithOptions([]string{"Descartar", "Baixar jogo", "Adicionar a um jogo", "Ordenar mão"}).
			Show()
		if err != nil {
			return nil, err
		}
		switch choice {
		case "Descartar":
			card, err := pickOneCard(hand, "Qual carta descartar?")
			if err != nil {
				return nil, err
			}
			return engine.Discard{CardID: card}, nil
		case "Baixar jogo":
			return chooseFormMeld(hand)
		case "Adicionar a um jogo":
			return chooseExtendMeld(g, hand)
		default:
			return engine.SortHand{Player: humanSeat, CardIDs: sortedHand(hand)}, nil
		}
	}
	return nil, fmt.Errorf("fase inesperada %s", g.Phase)
}

// chooseJustification handles the forced-justification step after a
// pile claim: the player must meld with the claimed top card.
func chooseJustification(g *engine.RoundState, hand []engine.Card) (engine.Action, error) {
	pterm.Info.Printfln("Você pegou o lixo: baixe um jogo usando %s.", colorCard(g.Justification))
	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("Como justificar?").
		WithOptions([]string{"Baixar jogo novo", "Adicionar a um jogo da dupla"}).
		Show()
	if err != nil {
		return nil, err
	}
	if choice == "Baixar jogo novo" {
		return chooseFormMeld(hand)
	}
	return chooseExtendMeld(g, hand)
}

func chooseFormMeld(hand []engine.Card) (engine.Action, error) {
	cards, err := pickCards(hand, "Escolha as cartas do jogo")
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, nil
	}
	return engine.FormMeld{CardIDs: cards}, nil
}

func chooseExtendMeld(g *engine.RoundState, hand []engine.Card) (engine.Action, error) {
	team := &g.Teams[engine.TeamOf(humanSeat)]
	if len(team.Melds) == 0 {
		pterm.Warning.Println("Sua dupla ainda não tem jogos na mesa.")
		return nil, nil
	}
	options := make([]string, len(team.Melds))
	for i, m := range team.Melds {
		options[i] = meldString(m)
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("Qual jogo?").
		WithOptions(options).
		Show()
	if err != nil {
		return nil, err
	}
	var meldID uint8
	for i, o := range options {
		if o == choice {
			meldID = team.Melds[i].ID
			break
		}
	}

	cards, err := pickCards(hand, "Quais cartas adicionar?")
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, nil
	}
	return engine.ExtendMeld{CardIDs: cards, MeldID: meldID}, nil
}

func pickOneCard(hand []engine.Card, prompt string) (engine.Card, error) {
	options := make([]string, len(hand))
	for i, c := range hand {
		options[i] = cardLabel(i, c)
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText(prompt).
		WithOptions(options).
		Show()
	if err != nil {
		return engine.EmptyCard, err
	}
	idx, err := labelIndex(choice)
	if err != nil {
		return engine.EmptyCard, err
	}
	return hand[idx], nil
}

func pickCards(hand []engine.Card, prompt string) ([]engine.Card, error) {
	options := make([]string, len(hand))
	for i, c := range hand {
		options[i] = cardLabel(i, c)
	}
	choices, err := pterm.DefaultInteractiveMultiselect.
		WithDefaultText(prompt).
		WithOptions(options).
		Show()
	if err != nil {
		return nil, err
	}
	cards := make([]engine.Card, 0, len(choices))
	for _, choice := range choices {
		idx, err := labelIndex(choice)
		if err != nil {
			return nil, err
		}
		cards = append(cards, hand[idx])
	}
	return cards, nil
}

// labelIndex recovers the hand index from a "i: card" menu label.
func labelIndex(label string) (int, error) {
	head, _, ok := strings.Cut(label, ":")
	if !ok {
		return 0, errors.New("opção de carta malformada")
	}
	return strconv.Atoi(head)
}

// sortedHand groups the hand by suit and rank for display.
func sortedHand(hand []engine.Card) []engine.Card {
	out := append([]engine.Card(nil), hand...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func less(a, b engine.Card) bool {
	if a.Suit() != b.Suit() {
		return a.Suit() < b.Suit()
	}
	if a.Rank() != b.Rank() {
		return a.Rank() < b.Rank()
	}
	return a.DeckCopy() < b.DeckCopy()
}
