package engine

import "github.com/shopspring/decimal"

var (
	naturalThreeToTwo = decimal.RequireFromString("1.5")
	naturalSixToFive  = decimal.RequireFromString("1.2")
	oneHalf           = decimal.RequireFromString("0.5")
	twoUnits          = decimal.NewFromInt(2)
)

// reshuffleFloor is the fewest undealt cards a round may start with. A
// round with maximum splits and a drawing dealer can consume this many.
const reshuffleFloor = 20

// Deal starts a new round with the given bet in units. The bet is clamped
// to [1, spread] and graded against the ramp before any card leaves the
// shoe, so the grade reflects the count the trainee could actually see.
// Returns the bet grade when the session mode grades bets.
func (g *GameState) Deal(betUnits int) (*BetGrade, error) {
	if g.Phase != PhaseBetting && g.Phase != PhaseSettled {
		return nil, ErrIllegalPhase
	}
	betUnits = clampInt(betUnits, 1, g.Config.BetSpread)
	bet := decimal.NewFromInt(int64(betUnits))
	if bet.GreaterThan(g.Bankroll) {
		return nil, ErrInsufficientBankroll
	}

	if g.ShufflePending || g.Shoe.CardsRemaining() < reshuffleFloor {
		g.reshuffle()
	}

	g.beginRound(betUnits)

	if g.Config.Mode.gradesBets() {
		grade := GradeBet(g.TrueCountFloor(), g.Config.BetSpread, betUnits)
		g.Stats.Bets.record(grade.Correct)
		if !grade.Correct {
			g.Stats.addMistake(MistakeBetSize, grade.LeakUnits)
		}
		g.betGrade = &grade
	}

	hand := NewHand(bet)
	g.Hands = []*Hand{hand}
	g.ActiveHand = 0
	g.Dealer = Dealer{}

	// Initial deal order: player, dealer up, player, dealer hole.
	if err := g.dealCounted(hand); err != nil {
		return nil, err
	}
	if err := g.dealCounted(&g.Dealer.Hand); err != nil {
		return nil, err
	}
	if err := g.dealCounted(hand); err != nil {
		return nil, err
	}
	hole, err := g.Shoe.Deal()
	if err != nil {
		return nil, err
	}
	// The hole card stays out of the count until it is revealed.
	g.Dealer.Hand.Cards = append(g.Dealer.Hand.Cards, hole)

	up := g.Dealer.UpCard()
	if up.Rank == Ace && g.Config.Rules.InsuranceAllowed {
		g.Phase = PhaseInsurance
		g.insuranceAsked = true
		return g.betGrade, nil
	}
	g.afterInsurance()
	return g.betGrade, nil
}

// beginRound resets the per-round bookkeeping.
func (g *GameState) beginRound(betUnits int) {
	g.RoundNumber++
	g.BetUnits = betUnits
	g.InsuranceBet = decimal.Zero
	g.InsuranceTaken = false
	g.insuranceAsked = false
	g.insuranceNet = decimal.Zero
	g.splitsUsed = 0
	g.peekPending = false
	g.decisionGrades = nil
	g.betGrade = nil
	g.insuranceGrade = nil
}

// reshuffle replaces the shoe and zeroes the running count.
func (g *GameState) reshuffle() {
	g.Shoe = NewShoe(g.Config.Rules)
	g.RunningCount = 0
	g.ShufflePending = false
}

// dealCounted deals one face-up card into the hand and counts it.
func (g *GameState) dealCounted(h *Hand) error {
	c, err := g.Shoe.Deal()
	if err != nil {
		return err
	}
	h.Cards = append(h.Cards, c)
	g.countCard(c)
	return nil
}

// afterInsurance continues the round once the insurance decision (if any)
// is in: the dealer peeks under tens and Aces, except that early surrender
// defers the peek until the surrender window has closed.
func (g *GameState) afterInsurance() {
	up := g.Dealer.UpCard().Rank.PointValue()
	peekable := up == 11 || up == 10
	if peekable && g.Config.Rules.Surrender == SurrenderEarly {
		g.peekPending = true
		g.startPlayerTurn()
		return
	}
	if peekable && g.peek() {
		return
	}
	g.startPlayerTurn()
}

// peek checks the hole card for a dealer natural. On a natural it resolves
// insurance, reveals the hole, and settles the round, returning true.
// Otherwise it only resolves a placed insurance bet as lost.
func (g *GameState) peek() bool {
	if g.Dealer.Hand.IsBlackjack() {
		if g.InsuranceTaken {
			g.insuranceNet = g.InsuranceBet.Mul(twoUnits)
		}
		g.finishRound()
		return true
	}
	if g.InsuranceTaken {
		g.insuranceNet = g.InsuranceBet.Neg()
	}
	return false
}

// startPlayerTurn moves into the player phase, or straight to settlement on
// a player natural.
func (g *GameState) startPlayerTurn() {
	hand := g.Hands[0]
	if hand.IsBlackjack() {
		hand.Completed = true
		g.finishRound()
		return
	}
	g.Phase = PhasePlayerTurn
	g.ActiveHand = 0
}

// ApplyAction advances the round by one player decision. The decision is
// graded against strategy before it is applied, whenever the session mode
// grades it. ErrIllegalAction is returned for actions the active hand
// cannot take; the round state is unchanged in that case.
func (g *GameState) ApplyAction(a Action) (*DecisionGrade, error) {
	switch g.Phase {
	case PhaseInsurance:
		return g.applyInsurance(a)
	case PhasePlayerTurn:
		return g.applyPlay(a)
	default:
		return nil, ErrIllegalPhase
	}
}

// applyInsurance handles the take/skip decision while insurance is open.
func (g *GameState) applyInsurance(a Action) (*DecisionGrade, error) {
	if a != ActionTakeInsurance && a != ActionSkipInsurance {
		return nil, ErrIllegalAction
	}
	half := g.Hands[0].Bet.Mul(oneHalf)
	if a == ActionTakeInsurance && g.outstanding().Add(half).GreaterThan(g.Bankroll) {
		return nil, ErrInsufficientBankroll
	}

	var grade *DecisionGrade
	if g.Config.Mode.gradesDecisions() {
		grade = g.gradeInsurance(a)
	}

	if a == ActionTakeInsurance {
		g.InsuranceTaken = true
		g.InsuranceBet = half
	}
	g.afterInsurance()
	return grade, nil
}

// gradeInsurance grades the insurance call as an index play. Declining at a
// high count is a missed deviation; taking it below the index is a wrong one.
func (g *GameState) gradeInsurance(a Action) *DecisionGrade {
	res := EvaluateInsurance(g.TrueCountFloor())
	grade := DecisionGrade{
		Graded:    true,
		Taken:     a.String(),
		Expected:  res.RecommendedAction.String(),
		LeakUnits: decimal.Zero,
		Reason:    res.Reason,
	}
	if a == res.RecommendedAction {
		grade.Correct = true
	} else if res.DeviationApplies {
		grade.Kind = MistakeMissedDeviation
		grade.LeakUnits = leakMissedDeviation
	} else {
		grade.Kind = MistakeWrongDeviation
		grade.LeakUnits = leakWrongDeviation
	}
	if !grade.Correct {
		grade.Mistake = grade.Kind.String()
		g.Stats.addMistake(grade.Kind, grade.LeakUnits)
	}
	g.Stats.Decisions.record(grade.Correct)
	g.insuranceGrade = &grade
	return &grade
}

// applyPlay handles one action on the active hand.
func (g *GameState) applyPlay(a Action) (*DecisionGrade, error) {
	hand := g.Hands[g.ActiveHand]
	allowed := g.allowedActions(hand)
	if !allowed[a] {
		return nil, ErrIllegalAction
	}

	// Early surrender window: the dealer peeks as soon as the player
	// commits to anything other than surrender.
	if g.peekPending && a != ActionSurrender {
		g.peekPending = false
		if g.peek() {
			return nil, nil
		}
	}
	g.peekPending = false

	grade := g.gradeDecision(hand, a, allowed)

	switch a {
	case ActionStand:
		hand.Completed = true
	case ActionHit:
		if err := g.dealCounted(hand); err != nil {
			return nil, err
		}
		if hand.IsBust() {
			hand.Completed = true
		}
	case ActionDouble:
		if err := g.dealCounted(hand); err != nil {
			return nil, err
		}
		hand.Bet = hand.Bet.Mul(twoUnits)
		hand.Doubled = true
		hand.Completed = true
	case ActionSplit:
		if err := g.split(hand); err != nil {
			return nil, err
		}
	case ActionSurrender:
		hand.Surrendered = true
		hand.Completed = true
	}

	g.advance()
	return grade, nil
}

// gradeDecision grades a playing action against strategy, honoring the
// mode's gating. DeviationsOnly grades only spots with a defined index play.
func (g *GameState) gradeDecision(hand *Hand, a Action, allowed map[Action]bool) *DecisionGrade {
	if !g.Config.Mode.gradesDecisions() {
		return nil
	}
	up := g.Dealer.UpCard().Rank.PointValue()
	if _, spotExists := deviationSpot(hand, up, allowed[ActionSplit]); g.Config.Mode == ModeDeviationsOnly && !spotExists {
		return nil
	}
	res := EvaluateHand(g.Config.Rules, hand, g.Dealer.UpCard(), g.TrueCountFloor(),
		allowed[ActionSplit], allowed[ActionDouble], allowed[ActionSurrender])
	grade := GradeDecision(res, a)
	g.Stats.Decisions.record(grade.Correct)
	if !grade.Correct {
		g.Stats.addMistake(grade.Kind, grade.LeakUnits)
	}
	g.decisionGrades = append(g.decisionGrades, HandGradeView{HandIndex: g.ActiveHand, Grade: grade})
	return &grade
}

// allowedActions computes the legal action set for a hand.
func (g *GameState) allowedActions(hand *Hand) map[Action]bool {
	allowed := map[Action]bool{
		ActionHit:   true,
		ActionStand: true,
	}
	rules := g.Config.Rules
	twoCards := len(hand.Cards) == 2

	if twoCards && !hand.Doubled {
		canDouble := rules.doubleRuleAllows(hand.HardTotal())
		if hand.SplitHand {
			canDouble = canDouble && rules.DoubleAfterSplit && !hand.SplitAces
		}
		if canDouble && g.outstanding().Add(hand.Bet).GreaterThan(g.Bankroll) {
			canDouble = false
		}
		allowed[ActionDouble] = canDouble
	}

	if twoCards && hand.CanSplit() && g.splitsUsed < rules.MaxSplits {
		canSplit := true
		if hand.SplitAces && !rules.ResplitAces {
			canSplit = false
		}
		if g.outstanding().Add(hand.Bet).GreaterThan(g.Bankroll) {
			canSplit = false
		}
		allowed[ActionSplit] = canSplit
	}

	if twoCards && !hand.SplitHand && rules.Surrender != SurrenderOff {
		allowed[ActionSurrender] = true
	}

	// Split Aces receive one card each. A hand still open here drew a
	// fresh Ace under resplit rules; the choice is stand or split again.
	if hand.SplitAces && len(hand.Cards) == 2 {
		allowed[ActionHit] = false
		allowed[ActionDouble] = false
	}

	return allowed
}

// outstanding sums every bet currently committed to the felt.
func (g *GameState) outstanding() decimal.Decimal {
	total := g.InsuranceBet
	for _, h := range g.Hands {
		total = total.Add(h.Bet)
	}
	return total
}

// split turns a pair into two hands and deals one fresh card to each.
func (g *GameState) split(hand *Hand) error {
	aces := hand.IsPairOfAces()
	moved := hand.Cards[1]
	hand.Cards = hand.Cards[:1]
	hand.SplitHand = true
	hand.SplitAces = hand.SplitAces || aces

	sibling := &Hand{
		Cards:     []Card{moved},
		Bet:       hand.Bet,
		Net:       decimal.Zero,
		SplitHand: true,
		SplitAces: hand.SplitAces,
	}
	g.Hands = append(g.Hands, nil)
	copy(g.Hands[g.ActiveHand+2:], g.Hands[g.ActiveHand+1:])
	g.Hands[g.ActiveHand+1] = sibling
	g.splitsUsed++

	if err := g.dealCounted(hand); err != nil {
		return err
	}
	if err := g.dealCounted(sibling); err != nil {
		return err
	}
	g.completeIfForced(hand)
	g.completeIfForced(sibling)
	return nil
}

// completeIfForced closes split-Ace hands that cannot be resplit; those get
// one card and no further decisions.
func (g *GameState) completeIfForced(hand *Hand) {
	if hand.SplitAces {
		resplittable := hand.IsPairOfAces() && g.Config.Rules.ResplitAces && g.splitsUsed < g.Config.Rules.MaxSplits
		if !resplittable {
			hand.Completed = true
		}
	}
}

// advance moves play to the next open hand and hands over to the dealer
// when none remain.
func (g *GameState) advance() {
	for i := 0; i < len(g.Hands); i++ {
		h := g.Hands[i]
		if h.Completed {
			continue
		}
		g.ActiveHand = i
		return
	}
	g.finishRound()
}

// finishRound reveals the hole card, plays the dealer hand if any player
// hand is still live, settles everything, and records the round summary.
func (g *GameState) finishRound() {
	if !g.Dealer.HoleRevealed {
		g.Dealer.HoleRevealed = true
		g.countCard(g.Dealer.Hand.Cards[1])
	}
	// Insurance placed on a round that settles without a peek still resolves.
	if g.InsuranceTaken && g.insuranceNet.IsZero() {
		if g.Dealer.Hand.IsBlackjack() {
			g.insuranceNet = g.InsuranceBet.Mul(twoUnits)
		} else {
			g.insuranceNet = g.InsuranceBet.Neg()
		}
	}
	g.playDealer()
	g.settle()
	g.record()

	for _, h := range g.Hands {
		g.Shoe.Discard(h.Cards)
	}
	g.Shoe.Discard(g.Dealer.Hand.Cards)
	if g.Shoe.CutCardReached() {
		g.ShufflePending = true
	}
	g.Phase = PhaseSettled
}

// playDealer draws for the dealer while any hand can still be beaten.
// Seventeen stands, except soft seventeen under H17 rules.
func (g *GameState) playDealer() {
	if g.Dealer.Hand.IsBlackjack() {
		return
	}
	live := false
	for _, h := range g.Hands {
		if !h.IsBust() && !h.Surrendered && !h.IsBlackjack() {
			live = true
			break
		}
	}
	if !live {
		return
	}
	for {
		total := g.Dealer.Hand.BestTotal()
		if total > 17 {
			return
		}
		if total == 17 && !(g.Dealer.Hand.IsSoft() && g.Config.Rules.DealerHitsSoft17) {
			return
		}
		if err := g.dealCounted(&g.Dealer.Hand); err != nil {
			return
		}
	}
}

// settle applies the settlement ladder to every hand and folds the results
// plus any insurance outcome into the bankroll.
func (g *GameState) settle() {
	dealerBJ := g.Dealer.Hand.IsBlackjack()
	dealerTotal := g.Dealer.Hand.BestTotal()
	dealerBust := g.Dealer.Hand.IsBust()

	for _, h := range g.Hands {
		switch {
		case h.Surrendered:
			h.Outcome = OutcomeSurrender
			h.Net = h.Bet.Mul(oneHalf).Neg()
		case dealerBJ:
			if h.IsBlackjack() {
				h.Outcome = OutcomePush
				h.Net = decimal.Zero
			} else {
				h.Outcome = OutcomeLose
				h.Net = h.Bet.Neg()
			}
		case h.IsBlackjack():
			h.Outcome = OutcomeBlackjack
			h.Net = h.Bet.Mul(g.naturalPayout())
		case h.IsBust():
			h.Outcome = OutcomeLose
			h.Net = h.Bet.Neg()
		case dealerBust:
			h.Outcome = OutcomeWin
			h.Net = h.Bet
		case h.BestTotal() > dealerTotal:
			h.Outcome = OutcomeWin
			h.Net = h.Bet
		case h.BestTotal() < dealerTotal:
			h.Outcome = OutcomeLose
			h.Net = h.Bet.Neg()
		default:
			h.Outcome = OutcomePush
			h.Net = decimal.Zero
		}
		g.Bankroll = g.Bankroll.Add(h.Net)
		g.Stats.recordOutcome(h.Outcome)
	}
	g.Bankroll = g.Bankroll.Add(g.insuranceNet)
}

func (g *GameState) naturalPayout() decimal.Decimal {
	if g.Config.Rules.Payout == PayoutSixToFive {
		return naturalSixToFive
	}
	return naturalThreeToTwo
}

// record appends the finished round to the bounded session history.
func (g *GameState) record() {
	summary := RoundSummary{
		Round:          g.RoundNumber,
		BetUnits:       g.BetUnits,
		DealerTotal:    g.Dealer.Hand.BestTotal(),
		InsuranceNet:   g.insuranceNet,
		BetGrade:       g.betGrade,
		InsuranceGrade: g.insuranceGrade,
		DecisionGrades: g.decisionGrades,
		RunningCount:   g.RunningCount,
		TrueCount:      g.TrueCount(),
	}
	net := g.insuranceNet
	for _, h := range g.Hands {
		summary.Hands = append(summary.Hands, HandResult{
			Cards:   cardStrings(h.Cards),
			Total:   h.BestTotal(),
			Outcome: h.Outcome.String(),
			Net:     h.Net,
		})
		net = net.Add(h.Net)
	}
	summary.DealerCards = cardStrings(g.Dealer.Hand.Cards)
	summary.NetUnits = net

	g.History = append(g.History, summary)
	if len(g.History) > historyLimit {
		g.History = g.History[len(g.History)-historyLimit:]
	}
	g.Stats.RoundsPlayed++
}

func cardStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
