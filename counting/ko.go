package counting

import "blackjack-trainer-server/engine"

// KnockOut is the unbalanced Knock-Out count: identical to Hi-Lo except
// sevens count +1, so a full deck sums to +4 and no true-count conversion
// is needed.
type KnockOut struct{}

func (KnockOut) Name() string     { return "ko" }
func (KnockOut) IsBalanced() bool { return false }

func (KnockOut) TagFor(c engine.Card) int {
	switch {
	case c.Rank >= engine.Two && c.Rank <= engine.Seven:
		return 1
	case c.Rank >= engine.Ten:
		return -1
	default:
		return 0
	}
}
