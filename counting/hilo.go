package counting

import "blackjack-trainer-server/engine"

// HiLo is the classic balanced level-one count: 2-6 are +1, 7-9 are
// neutral, tens and Aces are -1. A full deck sums to zero, so the running
// count converts to a true count by dividing by decks remaining.
type HiLo struct{}

func (HiLo) Name() string     { return "hilo" }
func (HiLo) IsBalanced() bool { return true }

func (HiLo) TagFor(c engine.Card) int {
	switch {
	case c.Rank >= engine.Two && c.Rank <= engine.Six:
		return 1
	case c.Rank >= engine.Ten:
		return -1
	default:
		return 0
	}
}
