package engine

import "github.com/shopspring/decimal"

// Outcome is the settlement result of a single player hand.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
	OutcomePush
	OutcomeBlackjack
	OutcomeSurrender
)

// String returns the protocol string for an Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomePush:
		return "push"
	case OutcomeBlackjack:
		return "blackjack"
	case OutcomeSurrender:
		return "surrender"
	default:
		return "none"
	}
}

// Hand is one player hand within a round. A player can hold several after
// splitting. Totals are always recomputed from Cards, never cached, so they
// stay consistent with the card list.
type Hand struct {
	Cards       []Card
	Bet         decimal.Decimal
	SplitHand   bool
	SplitAces   bool
	Doubled     bool
	Completed   bool
	Surrendered bool
	Outcome     Outcome
	Net         decimal.Decimal
}

// NewHand creates a hand with the given bet and no cards.
func NewHand(bet decimal.Decimal) *Hand {
	return &Hand{Bet: bet, Net: decimal.Zero}
}

// totals sums the cards counting every Ace as 1, then promotes Aces to 11
// one at a time while the running total plus 10 stays at or under 21.
func (h *Hand) totals() (best int, soft bool) {
	total := 0
	aces := 0
	for _, c := range h.Cards {
		if c.Rank == Ace {
			aces++
			total++
		} else {
			total += c.Rank.PointValue()
		}
	}
	for ; aces > 0 && total+10 <= 21; aces-- {
		total += 10
		soft = true
	}
	return total, soft
}

// BestTotal returns the highest total not exceeding 21 if one exists,
// otherwise the minimum (all Aces as 1) total.
func (h *Hand) BestTotal() int {
	best, _ := h.totals()
	return best
}

// IsSoft reports whether at least one Ace is currently counted as 11.
func (h *Hand) IsSoft() bool {
	_, soft := h.totals()
	return soft
}

// HardTotal sums the cards counting every Ace as 1. Double and surrender
// rule gates are defined on hard totals.
func (h *Hand) HardTotal() int {
	total := 0
	for _, c := range h.Cards {
		if c.Rank == Ace {
			total++
		} else {
			total += c.Rank.PointValue()
		}
	}
	return total
}

// IsBlackjack reports a natural: exactly two cards totalling 21 on an
// unsplit hand. A 21 assembled after splitting pays as a regular win.
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && !h.SplitHand && h.BestTotal() == 21
}

// IsBust reports whether the hand total exceeds 21.
func (h *Hand) IsBust() bool {
	return h.BestTotal() > 21
}

// CanSplit reports whether the hand is a splittable pair: exactly two cards
// with equal split value (ten and king count as a pair).
func (h *Hand) CanSplit() bool {
	if len(h.Cards) != 2 {
		return false
	}
	return h.Cards[0].Rank.SplitValue() == h.Cards[1].Rank.SplitValue()
}

// IsPairOfAces reports whether the hand is exactly two Aces.
func (h *Hand) IsPairOfAces() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == Ace && h.Cards[1].Rank == Ace
}
