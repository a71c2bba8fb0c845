package engine

import "testing"

func evalSpot(t *testing.T, rules Rules, playerRanks []Rank, up Rank, tcFloor int) StrategyResult {
	t.Helper()
	h := &Hand{Cards: cards(playerRanks...)}
	canSurrender := len(h.Cards) == 2 && !h.SplitHand && rules.Surrender != SurrenderOff
	return EvaluateHand(rules, h, Card{Suit: Hearts, Rank: up}, tcFloor, h.CanSplit(), len(h.Cards) == 2, canSurrender)
}

func TestBasicStrategyHardTotals(t *testing.T) {
	rules := DefaultRules()
	rules.Surrender = SurrenderOff
	cases := []struct {
		player []Rank
		up     Rank
		want   Action
	}{
		{[]Rank{Ten, Seven}, Ten, ActionStand},
		{[]Rank{Ten, Six}, Seven, ActionHit},
		{[]Rank{Ten, Three}, Six, ActionStand},
		{[]Rank{Ten, Two}, Two, ActionHit},
		{[]Rank{Ten, Two}, Four, ActionStand},
		{[]Rank{Six, Five}, Ace, ActionDouble}, // H17: 11 doubles against everything
		{[]Rank{Six, Four}, Nine, ActionDouble},
		{[]Rank{Six, Four}, Ten, ActionHit},
		{[]Rank{Five, Four}, Three, ActionDouble},
		{[]Rank{Five, Four}, Seven, ActionHit},
		{[]Rank{Five, Three}, Six, ActionHit},
	}
	for _, tc := range cases {
		res := evalSpot(t, rules, tc.player, tc.up, 0)
		if res.BasicAction != tc.want {
			t.Errorf("%v vs %s: expected %s, got %s", tc.player, tc.up, tc.want, res.BasicAction)
		}
	}
}

func TestBasicStrategySoftTotals(t *testing.T) {
	rules := DefaultRules()
	cases := []struct {
		player []Rank
		up     Rank
		want   Action
	}{
		{[]Rank{Ace, Nine}, Six, ActionStand},
		{[]Rank{Ace, Seven}, Three, ActionDouble},
		{[]Rank{Ace, Seven}, Nine, ActionHit},
		{[]Rank{Ace, Seven}, Seven, ActionStand},
		{[]Rank{Ace, Six}, Five, ActionDouble},
		{[]Rank{Ace, Six}, Two, ActionHit},
		{[]Rank{Ace, Three}, Five, ActionDouble},
		{[]Rank{Ace, Two}, Four, ActionHit},
	}
	for _, tc := range cases {
		res := evalSpot(t, rules, tc.player, tc.up, 0)
		if res.BasicAction != tc.want {
			t.Errorf("%v vs %s: expected %s, got %s", tc.player, tc.up, tc.want, res.BasicAction)
		}
	}
}

func TestBasicStrategyPairs(t *testing.T) {
	rules := DefaultRules()
	cases := []struct {
		player []Rank
		up     Rank
		want   Action
	}{
		{[]Rank{Ace, Ace}, Ten, ActionSplit},
		{[]Rank{Eight, Eight}, Six, ActionSplit},
		{[]Rank{Ten, King}, Six, ActionStand},
		{[]Rank{Nine, Nine}, Seven, ActionStand},
		{[]Rank{Nine, Nine}, Eight, ActionSplit},
		{[]Rank{Seven, Seven}, Seven, ActionSplit},
		{[]Rank{Six, Six}, Two, ActionSplit}, // DAS
		{[]Rank{Four, Four}, Five, ActionSplit},
		{[]Rank{Four, Four}, Three, ActionHit},
		{[]Rank{Five, Five}, Six, ActionDouble}, // fives play as hard 10
		{[]Rank{Two, Two}, Three, ActionSplit},
	}
	for _, tc := range cases {
		res := evalSpot(t, rules, tc.player, tc.up, 0)
		if res.BasicAction != tc.want {
			t.Errorf("%v vs %s: expected %s, got %s", tc.player, tc.up, tc.want, res.BasicAction)
		}
	}
}

func TestBasicStrategyPairsWithoutDAS(t *testing.T) {
	rules := DefaultRules()
	rules.DoubleAfterSplit = false
	res := evalSpot(t, rules, []Rank{Six, Six}, Two, 0)
	if res.BasicAction != ActionHit {
		t.Errorf("6,6 vs 2 without DAS: expected hit, got %s", res.BasicAction)
	}
}

func TestSurrenderSpots(t *testing.T) {
	rules := DefaultRules() // late surrender, H17
	cases := []struct {
		player []Rank
		up     Rank
		want   Action
	}{
		{[]Rank{Ten, Six}, Ten, ActionSurrender},
		{[]Rank{Ten, Six}, Nine, ActionSurrender},
		{[]Rank{Ten, Six}, Ace, ActionSurrender},
		{[]Rank{Ten, Five}, Ten, ActionSurrender},
		{[]Rank{Ten, Five}, Ace, ActionSurrender}, // H17 only
		{[]Rank{Ten, Five}, Nine, ActionHit},
	}
	for _, tc := range cases {
		res := evalSpot(t, rules, tc.player, tc.up, 0)
		if res.BasicAction != tc.want {
			t.Errorf("%v vs %s: expected %s, got %s", tc.player, tc.up, tc.want, res.BasicAction)
		}
	}

	rules.DealerHitsSoft17 = false
	res := evalSpot(t, rules, []Rank{Ten, Five}, Ace, 0)
	if res.BasicAction != ActionHit {
		t.Errorf("15 vs A under S17: expected hit, got %s", res.BasicAction)
	}
}

func TestSingleDeckTwelveVersusTwo(t *testing.T) {
	rules := DefaultRules()
	rules.DeckCount = 1
	res := evalSpot(t, rules, []Rank{Ten, Two}, Two, 0)
	if res.BasicAction != ActionStand {
		t.Errorf("single-deck 12 vs 2: expected stand, got %s", res.BasicAction)
	}
}

func TestDeviationSixteenVersusTen(t *testing.T) {
	rules := DefaultRules()
	rules.Surrender = SurrenderOff

	// At a negative count, basic strategy hits.
	res := evalSpot(t, rules, []Rank{Ten, Six}, Ten, -1)
	if res.DeviationApplies {
		t.Error("no deviation expected below the index")
	}
	if res.RecommendedAction != ActionHit {
		t.Errorf("expected hit at TC -1, got %s", res.RecommendedAction)
	}

	// The 16v10 index is zero: stand at TC 0 or higher.
	res = evalSpot(t, rules, []Rank{Ten, Six}, Ten, 0)
	if !res.DeviationApplies {
		t.Fatal("expected the 16v10 deviation at TC 0")
	}
	if res.RecommendedAction != ActionStand {
		t.Errorf("expected stand, got %s", res.RecommendedAction)
	}
	if res.BasicAction != ActionHit {
		t.Errorf("basic action should remain hit, got %s", res.BasicAction)
	}
}

func TestDeviationFifteenVersusTen(t *testing.T) {
	rules := DefaultRules()
	rules.Surrender = SurrenderOff

	res := evalSpot(t, rules, []Rank{Ten, Five}, Ten, 3)
	if res.DeviationApplies {
		t.Error("15v10 should not deviate at TC +3")
	}
	res = evalSpot(t, rules, []Rank{Ten, Five}, Ten, 4)
	if !res.DeviationApplies || res.RecommendedAction != ActionStand {
		t.Errorf("15v10 at TC +4: expected stand deviation, got %s (deviation=%v)",
			res.RecommendedAction, res.DeviationApplies)
	}
}

func TestDeviationTenVersusTenDouble(t *testing.T) {
	rules := DefaultRules()
	res := evalSpot(t, rules, []Rank{Six, Four}, Ten, 4)
	if !res.DeviationApplies || res.RecommendedAction != ActionDouble {
		t.Errorf("10v10 at TC +4: expected double deviation, got %s", res.RecommendedAction)
	}
}

func TestDeviationTensSplit(t *testing.T) {
	rules := DefaultRules()
	res := evalSpot(t, rules, []Rank{Ten, King}, Six, 4)
	if !res.DeviationApplies || res.RecommendedAction != ActionSplit {
		t.Errorf("10,10 vs 6 at TC +4: expected split deviation, got %s", res.RecommendedAction)
	}
	res = evalSpot(t, rules, []Rank{Ten, King}, Six, 3)
	if res.DeviationApplies {
		t.Error("10,10 vs 6 should not deviate at TC +3")
	}
}

func TestDeviationNormalizedWhenDoubleUnavailable(t *testing.T) {
	rules := DefaultRules()
	// Three-card 10 vs 10 at a high count: the double deviation cannot
	// fire, and hitting is already basic, so no deviation is reported.
	h := &Hand{Cards: cards(Two, Three, Five)}
	res := EvaluateHand(rules, h, Card{Rank: Ten}, 5, false, false, false)
	if res.DeviationApplies {
		t.Error("deviation should normalize away when double is unavailable")
	}
	if res.RecommendedAction != ActionHit {
		t.Errorf("expected hit, got %s", res.RecommendedAction)
	}
}

func TestEvaluateInsurance(t *testing.T) {
	if res := EvaluateInsurance(2); res.RecommendedAction != ActionSkipInsurance {
		t.Errorf("expected skip at TC +2, got %s", res.RecommendedAction)
	}
	res := EvaluateInsurance(3)
	if res.RecommendedAction != ActionTakeInsurance || !res.DeviationApplies {
		t.Errorf("expected take at TC +3, got %s", res.RecommendedAction)
	}
}
