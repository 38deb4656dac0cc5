package engine

import "errors"

// Suit constants — packed into bits 4–5 of Card.
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3
)

// Rank constants — packed into bits 0–3 of Card.
const (
	RankAce   uint8 = 0
	RankTwo   uint8 = 1
	RankThree uint8 = 2
	RankFour  uint8 = 3
	RankFive  uint8 = 4
	RankSix   uint8 = 5
	RankSeven uint8 = 6
	RankEight uint8 = 7
	RankNine  uint8 = 8
	RankTen   uint8 = 9
	RankJack  uint8 = 10
	RankQueen uint8 = 11
	RankKing  uint8 = 12
)

// Card is a packed uint8: bit 6 = deck copy (the game uses two physical
// decks), bits 4–5 = suit, bits 0–3 = rank. Every one of the 104 cards
// maps to a distinct byte, so the value doubles as the card's identity.
// Cards are immutable; they only move between containers.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from deck copy (0 or 1), suit and rank.
func NewCard(deckCopy, suit, rank uint8) Card {
	return Card((deckCopy&1)<<6 | (suit&0x3)<<4 | rank&0x0F)
}

// DeckCopy returns 0 or 1 depending on which physical deck the card
// belongs to.
func (c Card) DeckCopy() uint8 { return (uint8(c) >> 6) & 1 }

// Suit returns the suit bits.
func (c Card) Suit() uint8 { return (uint8(c) >> 4) & 0x3 }

// Rank returns the rank bits.
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// IsBlack reports whether the card's suit is clubs or spades.
func (c Card) IsBlack() bool {
	s := c.Suit()
	return s == SuitClubs || s == SuitSpades
}

// IsWildcard reports whether the card is a two, substitutable into any
// meld (at most one per meld).
func (c Card) IsWildcard() bool { return c.Rank() == RankTwo }

// IsLocker reports whether the card is a black three. Lockers cannot be
// melded; discarding one locks the discard pile against pickup.
func (c Card) IsLocker() bool { return c.Rank() == RankThree && c.IsBlack() }

// IsRedBonus reports whether the card is a red three. Red threes are
// banked by a team and scored separately; they never sit in a hand or
// a meld.
func (c Card) IsRedBonus() bool { return c.Rank() == RankThree && !c.IsBlack() }

// SeqValue returns the card's sequencing value for runs: ace is high
// (14), every other rank counts in face order (two 2 … king 13). The
// wildcard sequences as 2 when it stands for itself.
func (c Card) SeqValue() int {
	if c.Rank() == RankAce {
		return 14
	}
	return int(c.Rank()) + 1
}

// Points returns the card's value in the scoring table: ace 15, eight
// through king and the wildcard 10, four through seven 5, threes 100.
// Red threes are normally scored through the team bonus instead; the
// table value applies when a three is counted inside an unclaimed dead
// pile.
func (c Card) Points() int {
	switch r := c.Rank(); {
	case r == RankAce:
		return 15
	case r == RankTwo:
		return 10
	case r == RankThree:
		return 100
	case r <= RankSeven: // four through seven
		return 5
	default: // eight through king
		return 10
	}
}

var rankNames = [13]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
var suitNames = [4]string{"♥", "♦", "♣", "♠"}

// String renders the card as rank plus suit symbol, e.g. "Q♥". The two
// deck copies render identically.
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	return rankNames[c.Rank()] + suitNames[c.Suit()]
}

// MeldType distinguishes rank sets from suited runs.
type MeldType uint8

const (
	MeldSet MeldType = iota // same rank
	MeldRun                 // same suit, consecutive ranks
)

func (t MeldType) String() string {
	if t == MeldRun {
		return "run"
	}
	return "set"
}

// CanastaType classifies a meld of seven or more cards.
type CanastaType uint8

const (
	CanastaNone  CanastaType = iota // fewer than 7 cards
	CanastaClean                    // 7+ cards, no wildcard
	CanastaDirty                    // 7+ cards, exactly one wildcard
	CanastaReal                     // natural completion; retained in the scoring table
)

func (t CanastaType) String() string {
	switch t {
	case CanastaClean:
		return "clean"
	case CanastaDirty:
		return "dirty"
	case CanastaReal:
		return "real"
	}
	return "none"
}

// Meld is a laid-down group of three or more cards owned by exactly one
// team. Melds are created atomically and only ever grow.
type Meld struct {
	ID      uint8       `json:"id"`
	Type    MeldType    `json:"type"`
	Canasta CanastaType `json:"canasta"`
	Cards   []Card      `json:"cards"`
}

// IsCanasta reports whether the meld has reached canasta size.
func (m *Meld) IsCanasta() bool { return m.Canasta != CanastaNone }

// Player is one of the four seats at the table. Hand ordering carries
// no rule meaning; it exists so a client can present a sorted hand.
type Player struct {
	Name  string `json:"name"`
	IsBot bool   `json:"isBot"`
	Hand  []Card `json:"hand"`
}

// Team is a partnership of two players. Score accumulates across
// rounds; everything else resets when a new round is dealt.
type Team struct {
	Melds           []Meld `json:"melds"`
	Score           int    `json:"score"`
	RoundScore      int    `json:"roundScore"`
	DeadPileClaimed bool   `json:"deadPileClaimed"`
	RedThrees       []Card `json:"redThrees"`
}

// Phase identifies the turn state machine phase.
type Phase uint8

const (
	PhaseDraw               Phase = iota // player must draw or claim the discard pile
	PhaseProcessingRedThree              // a drawn red three was banked; player re-draws
	PhaseMeldOrDiscard                   // player may meld any number of times, then must discard
	PhaseMustJustifyDiscard              // pile was claimed; next meld must use the top card
	PhaseEnded                           // terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseDraw:
		return "DRAW"
	case PhaseProcessingRedThree:
		return "PROCESSING_RED_THREE"
	case PhaseMeldOrDiscard:
		return "MELD_OR_DISCARD"
	case PhaseMustJustifyDiscard:
		return "MUST_JUSTIFY_DISCARD"
	case PhaseEnded:
		return "ENDED"
	}
	return "UNKNOWN"
}

// Rule errors. Every rejected action returns one of these (possibly
// wrapped with detail) and leaves the round state unchanged.
var (
	ErrRoundOver           = errors.New("round is already over")
	ErrWrongPhase          = errors.New("action not legal in current phase")
	ErrNoSuchPlayer        = errors.New("no such player")
	ErrCardNotHeld         = errors.New("card not in acting player's hand")
	ErrInvalidMeld         = errors.New("cards do not form a valid meld")
	ErrMeldNotFound        = errors.New("no such meld")
	ErrPileEmpty           = errors.New("discard pile is empty")
	ErrPileLocked          = errors.New("discard pile is locked")
	ErrCannotJustify       = errors.New("cannot justify picking up the discard pile")
	ErrJustificationUnused = errors.New("meld must use the justification card")
	ErrNoQualifyingCanasta = errors.New("team needs a clean canasta to go out")
	ErrBadHandOrder        = errors.New("reordered hand is not a permutation of the current hand")
)
