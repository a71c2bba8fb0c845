package engine

// deviationKind selects which hand shape a table entry matches.
type deviationKind int

const (
	devHard deviationKind = iota
	devSoft
	devPair
)

// deviationEntry is one Hi-Lo index play. The entry fires when the true
// count floor is at or above index and the hand/upcard match.
type deviationEntry struct {
	kind   deviationKind
	total  int // best total for hard/soft, split value for pair
	up     int // dealer upcard point value, Ace as 11
	index  int
	action Action
}

// insuranceIndex is the Hi-Lo insurance threshold.
const insuranceIndex = 3

// hiLoDeviations holds the positive-index subset of the Illustrious 18 plus
// the common positive Fab 4 surrender-adjacent stands. Negative-index plays
// are out of scope; below their threshold basic strategy already applies.
var hiLoDeviations = []deviationEntry{
	{devHard, 16, 10, 0, ActionStand},
	{devHard, 16, 9, 5, ActionStand},
	{devHard, 15, 10, 4, ActionStand},
	{devHard, 12, 3, 2, ActionStand},
	{devHard, 12, 2, 3, ActionStand},
	{devHard, 11, 11, 1, ActionDouble},
	{devHard, 10, 10, 4, ActionDouble},
	{devHard, 10, 11, 4, ActionDouble},
	{devHard, 9, 2, 1, ActionDouble},
	{devHard, 9, 7, 3, ActionDouble},
	{devHard, 8, 6, 2, ActionDouble},
	{devSoft, 19, 5, 1, ActionDouble},
	{devSoft, 19, 4, 3, ActionDouble},
	{devPair, 10, 5, 5, ActionSplit},
	{devPair, 10, 6, 4, ActionSplit},
}

// deviationSpot finds the index play defined for this hand/upcard shape,
// ignoring the count. A splittable pair is matched only against pair
// entries; a pair the player can no longer split plays as its hard or soft
// total.
func deviationSpot(hand *Hand, up int, canSplit bool) (deviationEntry, bool) {
	kind := devHard
	total := hand.BestTotal()
	switch {
	case canSplit && hand.CanSplit():
		kind = devPair
		total = hand.Cards[0].Rank.SplitValue()
	case hand.IsSoft():
		kind = devSoft
	}
	for _, e := range hiLoDeviations {
		if e.kind == kind && e.total == total && e.up == up {
			return e, true
		}
	}
	return deviationEntry{}, false
}

// lookupDeviation returns the index play for this spot once the true count
// floor has reached its threshold.
func lookupDeviation(hand *Hand, up, trueCountFloor int, canSplit bool) (deviationEntry, bool) {
	e, ok := deviationSpot(hand, up, canSplit)
	if !ok || trueCountFloor < e.index {
		return deviationEntry{}, false
	}
	return e, true
}
