package engine

import "fmt"

// StrategyResult is the textbook verdict for one pending decision.
// RecommendedAction equals BasicAction unless a count deviation applies.
type StrategyResult struct {
	BasicAction       Action
	RecommendedAction Action
	DeviationApplies  bool
	Reason            string
}

// EvaluateHand derives the basic-strategy action for the hand against the
// dealer upcard and, if a Hi-Lo index play is triggered at the current true
// count floor, the deviation action. The can* flags describe which actions
// are currently available to the player; a deviation whose action is not
// available is normalized down to Hit before being compared to basic.
func EvaluateHand(rules Rules, hand *Hand, dealerUp Card, trueCountFloor int, canSplit, canDouble, canSurrender bool) StrategyResult {
	up := dealerUp.Rank.PointValue() // 2..11, Ace as 11
	basic := basicAction(rules, hand, up, canSplit, canDouble, canSurrender)

	res := StrategyResult{
		BasicAction:       basic,
		RecommendedAction: basic,
		Reason:            fmt.Sprintf("basic strategy: %s vs %s", handLabel(hand), dealerUp.Rank),
	}

	dev, ok := lookupDeviation(hand, up, trueCountFloor, canSplit)
	if !ok {
		return res
	}
	action := dev.action
	// Normalize disallowed deviation actions down to Hit.
	if action == ActionDouble && !canDouble {
		action = ActionHit
	}
	if action == ActionSplit && !canSplit {
		action = ActionHit
	}
	if action == basic {
		return res
	}
	res.RecommendedAction = action
	res.DeviationApplies = true
	res.Reason = fmt.Sprintf("index play: %s vs %s at true count %+d or higher", handLabel(hand), dealerUp.Rank, dev.index)
	return res
}

// EvaluateInsurance returns the textbook insurance decision: take at a true
// count floor of +3 or above, skip otherwise.
func EvaluateInsurance(trueCountFloor int) StrategyResult {
	res := StrategyResult{
		BasicAction:       ActionSkipInsurance,
		RecommendedAction: ActionSkipInsurance,
		Reason:            "insurance is a losing bet at neutral counts",
	}
	if trueCountFloor >= insuranceIndex {
		res.RecommendedAction = ActionTakeInsurance
		res.DeviationApplies = true
		res.Reason = fmt.Sprintf("index play: insurance at true count %+d or higher", insuranceIndex)
	}
	return res
}

// basicAction walks the basic-strategy tables in fixed order: surrender,
// pair splitting, soft totals, hard totals.
func basicAction(rules Rules, hand *Hand, up int, canSplit, canDouble, canSurrender bool) Action {
	hard := hand.HardTotal()

	// Surrender: hard 16 vs 9/10/A, hard 15 vs 10 (and vs A when the
	// dealer hits soft 17). Only on the original two cards of an unsplit
	// hand, which canSurrender already encodes.
	if canSurrender && !hand.IsSoft() {
		if hard == 16 && (up == 9 || up == 10 || up == 11) {
			return ActionSurrender
		}
		if hard == 15 && (up == 10 || (up == 11 && rules.DealerHitsSoft17)) {
			return ActionSurrender
		}
	}

	if canSplit && hand.CanSplit() {
		if a, ok := pairAction(rules, hand.Cards[0].Rank.SplitValue(), up); ok {
			return a
		}
	}

	best := hand.BestTotal()
	if hand.IsSoft() {
		return softAction(best, up, canDouble)
	}
	return hardAction(rules, best, up, canDouble)
}

// pairAction returns the pair-splitting verdict, or ok=false when the pair
// plays out as its soft/hard total instead.
func pairAction(rules Rules, splitValue, up int) (Action, bool) {
	das := rules.DoubleAfterSplit
	switch splitValue {
	case 11, 8: // Aces and eights: always split.
		return ActionSplit, true
	case 10:
		return ActionStand, true
	case 9:
		if up >= 2 && up <= 9 && up != 7 {
			return ActionSplit, true
		}
		return ActionStand, true
	case 7:
		if up >= 2 && up <= 7 {
			return ActionSplit, true
		}
	case 6:
		if up >= 3 && up <= 6 || (up == 2 && das) {
			return ActionSplit, true
		}
	case 4:
		if das && (up == 5 || up == 6) {
			return ActionSplit, true
		}
	case 2, 3:
		if up >= 4 && up <= 7 || (das && (up == 2 || up == 3)) {
			return ActionSplit, true
		}
	}
	return ActionStand, false
}

// softAction is the soft-total table (Ace counted as 11).
func softAction(best, up int, canDouble bool) Action {
	switch {
	case best >= 19:
		return ActionStand
	case best == 18:
		if up >= 2 && up <= 6 {
			if canDouble {
				return ActionDouble
			}
			return ActionStand
		}
		if up == 7 || up == 8 {
			return ActionStand
		}
		return ActionHit
	case best == 17:
		if canDouble && up >= 3 && up <= 6 {
			return ActionDouble
		}
		return ActionHit
	case best >= 15: // soft 15-16
		if canDouble && up >= 4 && up <= 6 {
			return ActionDouble
		}
		return ActionHit
	default: // soft 13-14
		if canDouble && (up == 5 || up == 6) {
			return ActionDouble
		}
		return ActionHit
	}
}

// hardAction is the hard-total table.
func hardAction(rules Rules, total, up int, canDouble bool) Action {
	switch {
	case total >= 17:
		return ActionStand
	case total >= 13:
		if up <= 6 {
			return ActionStand
		}
		return ActionHit
	case total == 12:
		if up >= 4 && up <= 6 {
			return ActionStand
		}
		// Single-deck convention: 12 vs 2 stands.
		if up == 2 && rules.DeckCount == 1 {
			return ActionStand
		}
		return ActionHit
	case total == 11:
		if canDouble && (up <= 10 || rules.DealerHitsSoft17) {
			return ActionDouble
		}
		return ActionHit
	case total == 10:
		if canDouble && up <= 9 {
			return ActionDouble
		}
		return ActionHit
	case total == 9:
		if canDouble && up >= 3 && up <= 6 {
			return ActionDouble
		}
		return ActionHit
	default:
		return ActionHit
	}
}

// handLabel describes the hand for feedback messages.
func handLabel(h *Hand) string {
	if h.CanSplit() {
		return fmt.Sprintf("pair of %ss", h.Cards[0].Rank)
	}
	if h.IsSoft() {
		return fmt.Sprintf("soft %d", h.BestTotal())
	}
	return fmt.Sprintf("hard %d", h.BestTotal())
}
