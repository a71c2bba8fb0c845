package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

// hiloTags is a Hi-Lo counting stub so engine tests do not depend on the
// counting package.
type hiloTags struct{}

func (hiloTags) Name() string     { return "hilo" }
func (hiloTags) IsBalanced() bool { return true }
func (hiloTags) TagFor(c Card) int {
	switch {
	case c.Rank >= Two && c.Rank <= Six:
		return 1
	case c.Rank >= Ten:
		return -1
	default:
		return 0
	}
}

// stackedGame builds a table whose shoe deals the given ranks in order.
// Deal order is player, dealer up, player, dealer hole, then hits. The
// stack is padded with undealt sevens past the cut card so the low-shoe
// reshuffle never replaces it.
func stackedGame(cfg SessionConfig, ranks ...Rank) *GameState {
	g := NewGameState(cfg.Normalize(), hiloTags{})
	stack := cards(ranks...)
	padding := make([]Rank, reshuffleFloor)
	for i := range padding {
		padding[i] = Seven
	}
	g.Shoe = &Shoe{Cards: append(stack, cards(padding...)...), CutIndex: len(stack)}
	return g
}

func freePlayConfig() SessionConfig {
	cfg := DefaultSessionConfig()
	cfg.Mode = ModeFreePlay
	return cfg
}

func TestDealClampsBetIntoSpread(t *testing.T) {
	g := stackedGame(freePlayConfig(), Ten, Nine, Eight, Seven)
	if _, err := g.Deal(0); err != nil {
		t.Fatal(err)
	}
	if g.BetUnits != 1 {
		t.Errorf("expected a zero bet clamped to 1 unit, got %d", g.BetUnits)
	}

	g = stackedGame(freePlayConfig(), Ten, Nine, Eight, Seven)
	if _, err := g.Deal(99); err != nil {
		t.Fatal(err)
	}
	if g.BetUnits != g.Config.BetSpread {
		t.Errorf("expected an oversized bet clamped to the spread, got %d", g.BetUnits)
	}

	g = stackedGame(freePlayConfig(), Ten, Nine, Eight, Seven)
	g.Bankroll = decimal.NewFromInt(1)
	if _, err := g.Deal(2); err != ErrInsufficientBankroll {
		t.Errorf("expected ErrInsufficientBankroll, got %v", err)
	}
}

func TestDealReshufflesLowShoe(t *testing.T) {
	g := NewGameState(freePlayConfig().Normalize(), hiloTags{})
	g.Shoe = &Shoe{Cards: cards(Ten, Nine, Eight, Seven), CutIndex: 4}
	g.RunningCount = 5
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if len(g.Shoe.Cards) != 312 {
		t.Errorf("expected a fresh six-deck shoe below the floor, got %d cards", len(g.Shoe.Cards))
	}
	if g.RunningCount > 3 || g.RunningCount < -3 {
		t.Errorf("expected the count reset before the new deal, got %d", g.RunningCount)
	}
}

func TestPlayerNaturalPaysThreeToTwo(t *testing.T) {
	g := stackedGame(freePlayConfig(), Ace, Nine, King, Five)
	if _, err := g.Deal(2); err != nil {
		t.Fatal(err)
	}

	if g.Phase != PhaseSettled {
		t.Fatalf("a natural should settle immediately, phase is %s", g.Phase)
	}
	h := g.Hands[0]
	if h.Outcome != OutcomeBlackjack {
		t.Errorf("expected blackjack outcome, got %s", h.Outcome)
	}
	if h.Net.String() != "3" {
		t.Errorf("expected net +3 on a 2-unit natural, got %s", h.Net)
	}
	if g.Bankroll.String() != "103" {
		t.Errorf("expected bankroll 103, got %s", g.Bankroll)
	}
	if len(g.Dealer.Hand.Cards) != 2 {
		t.Errorf("dealer must not draw against a natural, has %d cards", len(g.Dealer.Hand.Cards))
	}
	if g.Stats.Blackjacks != 1 {
		t.Errorf("expected 1 recorded blackjack, got %d", g.Stats.Blackjacks)
	}
}

func TestSixToFiveNatural(t *testing.T) {
	cfg := freePlayConfig()
	cfg.Rules.Payout = PayoutSixToFive
	g := stackedGame(cfg, Ace, Nine, King, Five)
	if _, err := g.Deal(5); err != nil {
		t.Fatal(err)
	}
	if got := g.Hands[0].Net.String(); got != "6" {
		t.Errorf("expected net +6 on a 5-unit 6:5 natural, got %s", got)
	}
}

func TestDealerPeekWithTenUp(t *testing.T) {
	g := stackedGame(freePlayConfig(), Ten, King, Nine, Ace)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}

	if g.Phase != PhaseSettled {
		t.Fatalf("dealer natural should settle at the peek, phase is %s", g.Phase)
	}
	if g.Hands[0].Outcome != OutcomeLose {
		t.Errorf("expected loss against dealer natural, got %s", g.Hands[0].Outcome)
	}
	if g.Bankroll.String() != "99" {
		t.Errorf("expected bankroll 99, got %s", g.Bankroll)
	}
	if !g.Dealer.HoleRevealed {
		t.Error("hole card must be revealed at settlement")
	}
}

func TestNaturalsPushAgainstDealerNatural(t *testing.T) {
	g := stackedGame(freePlayConfig(), Ace, King, Queen, Ace)
	g.Config.Rules.InsuranceAllowed = false
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if g.Hands[0].Outcome != OutcomePush {
		t.Errorf("expected push, got %s", g.Hands[0].Outcome)
	}
	if !g.Hands[0].Net.IsZero() {
		t.Errorf("expected zero net, got %s", g.Hands[0].Net)
	}
}

func TestInsuranceFlow(t *testing.T) {
	// Dealer shows an Ace with a ten in the hole.
	g := stackedGame(freePlayConfig(), Ten, Ace, Nine, King)
	if _, err := g.Deal(2); err != nil {
		t.Fatal(err)
	}
	if g.Phase != PhaseInsurance {
		t.Fatalf("expected insurance phase, got %s", g.Phase)
	}
	if _, err := g.ApplyAction(ActionHit); err != ErrIllegalAction {
		t.Errorf("expected ErrIllegalAction during insurance, got %v", err)
	}

	if _, err := g.ApplyAction(ActionTakeInsurance); err != nil {
		t.Fatal(err)
	}
	// Insurance pays 2:1 on the dealer natural; the main bet loses.
	if g.Phase != PhaseSettled {
		t.Fatalf("expected settlement after the peek, got %s", g.Phase)
	}
	if g.Bankroll.String() != "100" {
		t.Errorf("insurance should exactly cover the loss, bankroll is %s", g.Bankroll)
	}
	last := g.History[len(g.History)-1]
	if last.InsuranceNet.String() != "2" {
		t.Errorf("expected insurance net +2, got %s", last.InsuranceNet)
	}
}

func TestInsuranceLosesWithoutDealerNatural(t *testing.T) {
	g := stackedGame(freePlayConfig(), Ten, Ace, Nine, Nine, Two)
	if _, err := g.Deal(2); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionTakeInsurance); err != nil {
		t.Fatal(err)
	}
	if g.Phase != PhasePlayerTurn {
		t.Fatalf("expected player turn after a clean peek, got %s", g.Phase)
	}
	if _, err := g.ApplyAction(ActionStand); err != nil {
		t.Fatal(err)
	}
	// Dealer has A,9 = soft 20. Player 19 loses 2, insurance loses 1.
	if g.Bankroll.String() != "97" {
		t.Errorf("expected bankroll 97, got %s", g.Bankroll)
	}
}

func TestHitBustLosesWithoutDealerDraw(t *testing.T) {
	g := stackedGame(freePlayConfig(), Ten, Seven, Nine, Eight, Five)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionHit); err != nil {
		t.Fatal(err)
	}

	if g.Phase != PhaseSettled {
		t.Fatalf("bust should end the round, phase is %s", g.Phase)
	}
	if g.Hands[0].Outcome != OutcomeLose {
		t.Errorf("expected loss, got %s", g.Hands[0].Outcome)
	}
	if len(g.Dealer.Hand.Cards) != 2 {
		t.Errorf("dealer must not draw when every hand busted, has %d cards", len(g.Dealer.Hand.Cards))
	}
}

func TestDealerDrawsToSeventeen(t *testing.T) {
	// Player stands on 20; dealer 10,6 draws a 2 for 18.
	g := stackedGame(freePlayConfig(), Ten, Ten, King, Six, Two)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionStand); err != nil {
		t.Fatal(err)
	}

	if got := g.Dealer.Hand.BestTotal(); got != 18 {
		t.Errorf("expected dealer 18, got %d", got)
	}
	if g.Hands[0].Outcome != OutcomeWin {
		t.Errorf("20 should beat 18, got %s", g.Hands[0].Outcome)
	}
}

func TestDealerHitsSoftSeventeen(t *testing.T) {
	// Dealer A,6 is soft 17 and must draw under H17.
	g := stackedGame(freePlayConfig(), Ten, Ace, King, Six, Four)
	g.Config.Rules.InsuranceAllowed = false
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionStand); err != nil {
		t.Fatal(err)
	}
	if got := g.Dealer.Hand.BestTotal(); got != 21 {
		t.Errorf("expected dealer to draw to 21, got %d", got)
	}

	// Under S17 the same dealer hand stands.
	cfg := freePlayConfig()
	cfg.Rules.DealerHitsSoft17 = false
	cfg.Rules.InsuranceAllowed = false
	g = stackedGame(cfg, Ten, Ace, King, Six, Four)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionStand); err != nil {
		t.Fatal(err)
	}
	if got := g.Dealer.Hand.BestTotal(); got != 17 {
		t.Errorf("expected dealer to stand on soft 17, got %d", got)
	}
	if g.Hands[0].Outcome != OutcomeWin {
		t.Errorf("20 should beat 17, got %s", g.Hands[0].Outcome)
	}
}

func TestDoubleTakesOneCardAndDoublesBet(t *testing.T) {
	// Player 6,5 doubles into a king for 21; dealer 9,10 stands on 19.
	g := stackedGame(freePlayConfig(), Six, Nine, Five, Ten, King, Ten)
	if _, err := g.Deal(2); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionDouble); err != nil {
		t.Fatal(err)
	}

	h := g.Hands[0]
	if !h.Doubled || len(h.Cards) != 3 {
		t.Fatalf("expected a doubled three-card hand, got %+v", h)
	}
	if h.Bet.String() != "4" {
		t.Errorf("expected bet doubled to 4, got %s", h.Bet)
	}
	// Player 21 beats dealer 19.
	if h.Outcome != OutcomeWin {
		t.Errorf("expected win, got %s", h.Outcome)
	}
	if g.Bankroll.String() != "104" {
		t.Errorf("expected bankroll 104, got %s", g.Bankroll)
	}
}

func TestSurrenderForfeitsHalf(t *testing.T) {
	g := stackedGame(freePlayConfig(), Ten, Nine, Six, Seven)
	if _, err := g.Deal(2); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionSurrender); err != nil {
		t.Fatal(err)
	}

	h := g.Hands[0]
	if h.Outcome != OutcomeSurrender {
		t.Errorf("expected surrender outcome, got %s", h.Outcome)
	}
	if h.Net.String() != "-1" {
		t.Errorf("expected net -1 on a 2-unit surrender, got %s", h.Net)
	}
}

func TestSurrenderUnavailableAfterHit(t *testing.T) {
	g := stackedGame(freePlayConfig(), Ten, Nine, Two, Seven, Two, Five)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionHit); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionSurrender); err != ErrIllegalAction {
		t.Errorf("expected ErrIllegalAction after hitting, got %v", err)
	}
}

func TestSplitPlaysBothHands(t *testing.T) {
	// 8,8 vs 6: split, draw Ten and Nine, stand both. Dealer 6,9 draws a
	// King and busts.
	g := stackedGame(freePlayConfig(), Eight, Six, Eight, Nine, Ten, Nine, King)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionSplit); err != nil {
		t.Fatal(err)
	}

	if len(g.Hands) != 2 {
		t.Fatalf("expected 2 hands after split, got %d", len(g.Hands))
	}
	if _, err := g.ApplyAction(ActionStand); err != nil { // 8+10=18
		t.Fatal(err)
	}
	if g.ActiveHand != 1 {
		t.Fatalf("expected play to move to the second hand, active is %d", g.ActiveHand)
	}
	if _, err := g.ApplyAction(ActionStand); err != nil { // 8+9=17
		t.Fatal(err)
	}

	if g.Phase != PhaseSettled {
		t.Fatalf("expected settlement, got %s", g.Phase)
	}
	for i, h := range g.Hands {
		if h.Outcome != OutcomeWin {
			t.Errorf("hand %d: expected win against a dealer bust, got %s", i, h.Outcome)
		}
	}
	if g.Bankroll.String() != "102" {
		t.Errorf("expected bankroll 102, got %s", g.Bankroll)
	}
}

func TestSplitAcesGetOneCardEach(t *testing.T) {
	g := stackedGame(freePlayConfig(), Ace, Nine, Ace, Eight, King, Queen, Five)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionSplit); err != nil {
		t.Fatal(err)
	}

	// Both hands are auto-completed with one card each; the round runs to
	// settlement without further input.
	if g.Phase != PhaseSettled {
		t.Fatalf("split aces should play out automatically, phase is %s", g.Phase)
	}
	for i, h := range g.Hands {
		if len(h.Cards) != 2 {
			t.Errorf("hand %d: expected exactly 2 cards, got %d", i, len(h.Cards))
		}
		if h.Outcome != OutcomeWin {
			// A+K and A+Q are both 21 against a dealer 17.
			t.Errorf("hand %d: expected win, got %s", i, h.Outcome)
		}
		if h.IsBlackjack() {
			t.Errorf("hand %d: a split 21 must not count as a natural", i)
		}
	}
}

func TestSplitDealsBothHandsImmediately(t *testing.T) {
	// 8,8 vs 7: both split hands get their second card at split time, not
	// when play reaches them.
	g := stackedGame(freePlayConfig(), Eight, Seven, Eight, Ten, Two, Three)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionSplit); err != nil {
		t.Fatal(err)
	}

	if len(g.Hands) != 2 {
		t.Fatalf("expected 2 hands after split, got %d", len(g.Hands))
	}
	for i, h := range g.Hands {
		if len(h.Cards) != 2 {
			t.Errorf("hand %d: expected 2 cards right after the split, got %d", i, len(h.Cards))
		}
	}
	if g.ActiveHand != 0 || g.Phase != PhasePlayerTurn {
		t.Errorf("expected play to stay on the first hand, active=%d phase=%s", g.ActiveHand, g.Phase)
	}
}

func TestHitToTwentyOneStaysOpen(t *testing.T) {
	// Player 5,6 hits to 21; the hand stays open until the player stands.
	g := stackedGame(freePlayConfig(), Five, Nine, Six, Five, Ten, Eight)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionHit); err != nil {
		t.Fatal(err)
	}

	if g.Phase != PhasePlayerTurn {
		t.Fatalf("21 must not end the player's turn, phase is %s", g.Phase)
	}
	if g.Hands[0].Completed {
		t.Fatal("hand at 21 should still be open")
	}
	if _, err := g.ApplyAction(ActionStand); err != nil {
		t.Fatal(err)
	}
	if g.Phase != PhaseSettled {
		t.Fatalf("expected settlement after standing, got %s", g.Phase)
	}
	if g.Hands[0].Outcome != OutcomeWin {
		t.Errorf("21 should beat a dealer bust, got %s", g.Hands[0].Outcome)
	}
}

func TestEarlySurrenderPlayerNaturalSettlesImmediately(t *testing.T) {
	// A,K vs a ten up under early surrender: the natural resolves at the
	// deal instead of waiting for a surrender decision.
	cfg := freePlayConfig()
	cfg.Rules.Surrender = SurrenderEarly
	g := stackedGame(cfg, Ace, Ten, King, Seven)
	if _, err := g.Deal(2); err != nil {
		t.Fatal(err)
	}

	if g.Phase != PhaseSettled {
		t.Fatalf("player natural should settle at the deal, phase is %s", g.Phase)
	}
	if g.Hands[0].Outcome != OutcomeBlackjack {
		t.Errorf("expected a natural, got %s", g.Hands[0].Outcome)
	}
	if g.Bankroll.String() != "103" {
		t.Errorf("expected 3:2 on a 2-unit natural, bankroll %s", g.Bankroll)
	}
}

func TestRunningCountTracksSeenCards(t *testing.T) {
	// Player 5,2 (+2), dealer up 6 (+1), hole King uncounted until reveal.
	g := stackedGame(freePlayConfig(), Five, Six, Two, King, Ten, Nine)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if g.RunningCount != 3 {
		t.Fatalf("expected running count +3 before the reveal, got %d", g.RunningCount)
	}

	if _, err := g.ApplyAction(ActionHit); err != nil { // draws Ten, -1
		t.Fatal(err)
	}
	if g.RunningCount != 2 {
		t.Fatalf("expected running count +2 after the ten, got %d", g.RunningCount)
	}
	if _, err := g.ApplyAction(ActionStand); err != nil {
		t.Fatal(err)
	}
	// The reveal counts the King (-1); the dealer's 9 draw is neutral.
	if g.RunningCount != 1 {
		t.Errorf("expected running count +1 after settlement, got %d", g.RunningCount)
	}
}

func TestCountGuessGrading(t *testing.T) {
	g := stackedGame(freePlayConfig(), Five, Six, Two, King)
	g.Shoe.Cards = append(g.Shoe.Cards, cards(Nine, Nine, Nine, Nine)...)
	g.Shoe.CutIndex = len(g.Shoe.Cards)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}

	grade := g.SubmitCountGuess(3, g.TrueCount())
	if !grade.Correct {
		t.Errorf("exact guess should grade correct: %+v", grade)
	}
	grade = g.SubmitCountGuess(2, g.TrueCount())
	if grade.Correct {
		t.Error("wrong running count should grade incorrect")
	}
	if g.Stats.CountGuesses.Attempts != 2 || g.Stats.CountGuesses.Correct != 1 {
		t.Errorf("expected 2 attempts 1 correct, got %+v", g.Stats.CountGuesses)
	}
}

func TestBetGradingInGuidedMode(t *testing.T) {
	cfg := DefaultSessionConfig() // guided grades everything
	g := stackedGame(cfg, Ten, Seven, Nine, Eight, Five)
	grade, err := g.Deal(4) // count is zero off the top; expected bet is 1
	if err != nil {
		t.Fatal(err)
	}
	if grade == nil {
		t.Fatal("expected a bet grade in guided mode")
	}
	if grade.Correct || grade.Expected != 1 {
		t.Errorf("expected an incorrect grade against size 1, got %+v", grade)
	}
	if g.Stats.Mistakes["bet_size"] != 1 {
		t.Errorf("expected a bet_size mistake, got %+v", g.Stats.Mistakes)
	}
}

func TestCountingOnlySkipsBetAndDecisionGrades(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.Mode = ModeCountingOnly
	g := stackedGame(cfg, Ten, Seven, Nine, Eight, Five)
	grade, err := g.Deal(4)
	if err != nil {
		t.Fatal(err)
	}
	if grade != nil {
		t.Error("counting-only must not grade bets")
	}
	dg, err := g.ApplyAction(ActionHit)
	if err != nil {
		t.Fatal(err)
	}
	if dg != nil {
		t.Error("counting-only must not grade decisions")
	}
	if g.Stats.Decisions.Attempts != 0 || g.Stats.Bets.Attempts != 0 {
		t.Errorf("expected no graded attempts, got %+v", g.Stats)
	}
}

func TestDeviationsOnlyGradesOnlyIndexSpots(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.Mode = ModeDeviationsOnly
	cfg.Rules.Surrender = SurrenderOff

	// Hard 16 vs 10 is an index spot; standing at TC 0 is the deviation.
	g := stackedGame(cfg, Ten, King, Six, Seven, Two)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	// Seen cards: 10, K, 6 = -1 running, TC floor below zero: basic hit
	// applies and 16v10 still counts as an index spot.
	dg, err := g.ApplyAction(ActionStand)
	if err != nil {
		t.Fatal(err)
	}
	if dg == nil {
		t.Fatal("expected a grade at an index spot")
	}
	if dg.Correct {
		t.Error("standing below the 16v10 index should grade as a mistake")
	}
	if dg.Kind != MistakeBasic {
		t.Errorf("expected basic_strategy below the index threshold, got %s", dg.Kind)
	}
}

func TestMissedDeviationGrading(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.Rules.Surrender = SurrenderOff
	g := stackedGame(cfg, Ten, King, Six, Seven, Two)
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	// Force a high count so the 16v10 stand deviation is on.
	g.RunningCount = 30
	dg, err := g.ApplyAction(ActionHit)
	if err != nil {
		t.Fatal(err)
	}
	if dg == nil {
		t.Fatal("expected a decision grade")
	}
	if dg.Correct || dg.Kind != MistakeMissedDeviation {
		t.Errorf("expected missed_deviation, got %+v", dg)
	}
	if g.Stats.Mistakes["missed_deviation"] != 1 {
		t.Errorf("expected histogram entry, got %+v", g.Stats.Mistakes)
	}
}

func TestShufflePendingAfterCutCard(t *testing.T) {
	g := stackedGame(freePlayConfig(), Ten, Seven, Nine, Eight, Five, Two, Three, Four)
	g.Shoe.CutIndex = 3
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionStand); err != nil {
		t.Fatal(err)
	}
	if !g.ShufflePending {
		t.Error("expected a pending shuffle once the cut card is reached")
	}

	// The next deal reshuffles: fresh shoe, zero count.
	g.RunningCount = 7
	if _, err := g.Deal(1); err != nil {
		t.Fatal(err)
	}
	if g.ShufflePending {
		t.Error("shuffle flag should clear on the new shoe")
	}
	if len(g.Shoe.Cards) != 312 {
		t.Errorf("expected a fresh six-deck shoe, got %d cards", len(g.Shoe.Cards))
	}
}

func TestRoundSummaryRecorded(t *testing.T) {
	g := stackedGame(freePlayConfig(), Ten, Seven, Nine, Eight, Five)
	if _, err := g.Deal(2); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ApplyAction(ActionStand); err != nil {
		t.Fatal(err)
	}

	if len(g.History) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(g.History))
	}
	s := g.History[0]
	if s.Round != 1 || s.BetUnits != 2 {
		t.Errorf("unexpected summary header: %+v", s)
	}
	if len(s.Hands) != 1 || s.Hands[0].Total != 19 {
		t.Errorf("unexpected hand record: %+v", s.Hands)
	}
	// Dealer 7,8 draws the 5 for 20 and beats the player's 19.
	if s.Hands[0].Outcome != "lose" {
		t.Errorf("expected lose against dealer 20, got %s", s.Hands[0].Outcome)
	}
	if s.NetUnits.String() != "-2" {
		t.Errorf("expected net -2, got %s", s.NetUnits)
	}
	if g.Stats.RoundsPlayed != 1 {
		t.Errorf("expected 1 round played, got %d", g.Stats.RoundsPlayed)
	}
}
