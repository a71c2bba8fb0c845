package engine

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// snapshotHistoryTail is how many recent rounds a snapshot carries. The
// engine keeps more; clients only need the recent tail.
const snapshotHistoryTail = 10

// CardView is the wire form of a card.
type CardView struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// HandView is the wire form of one player hand.
type HandView struct {
	Cards    []CardView      `json:"cards"`
	Total    int             `json:"total"`
	Soft     bool            `json:"soft"`
	BetUnits decimal.Decimal `json:"betUnits"`
	Doubled  bool            `json:"doubled"`
	Active   bool            `json:"active"`
	Outcome  string          `json:"outcome"`
	Actions  []string        `json:"actions,omitempty"`
}

// DealerView is the wire form of the dealer's hand. While the hole card is
// hidden only the upcard is listed.
type DealerView struct {
	Cards      []CardView `json:"cards"`
	HoleHidden bool       `json:"holeHidden"`
	Total      int        `json:"total"`
}

// AidsView carries the optional training aids. Fields are nil when the
// corresponding aid is disabled, so disabled aids leak nothing on the wire.
type AidsView struct {
	RunningCount   *int     `json:"runningCount,omitempty"`
	TrueCount      *float64 `json:"trueCount,omitempty"`
	DecksRemaining *float64 `json:"decksRemaining,omitempty"`
	Hint           *string  `json:"hint,omitempty"`
}

// StatsView is the wire form of the session stats with derived accuracies.
type StatsView struct {
	SessionStats
	DecisionAccuracy float64 `json:"decisionAccuracy"`
	BetAccuracy      float64 `json:"betAccuracy"`
	CountAccuracy    float64 `json:"countAccuracy"`
}

// GameSnapshot is the full client-facing view of a table.
type GameSnapshot struct {
	Phase          string          `json:"phase"`
	Mode           string          `json:"mode"`
	Round          int             `json:"round"`
	Bankroll       decimal.Decimal `json:"bankrollUnits"`
	BetSpread      int             `json:"betSpread"`
	Hands          []HandView      `json:"hands"`
	Dealer         *DealerView     `json:"dealer,omitempty"`
	Aids           AidsView        `json:"aids"`
	Stats          StatsView       `json:"stats"`
	History        []RoundSummary  `json:"history"`
	ShufflePending bool            `json:"shufflePending"`
}

// BuildSnapshot renders the state for the client. Hidden information stays
// hidden: the hole card before reveal, and the count behind disabled aids.
func (g *GameState) BuildSnapshot() GameSnapshot {
	snap := GameSnapshot{
		Phase:          g.Phase.String(),
		Mode:           g.Config.Mode.String(),
		Round:          g.RoundNumber,
		Bankroll:       g.Bankroll,
		BetSpread:      g.Config.BetSpread,
		Hands:          []HandView{},
		Aids:           g.buildAids(),
		Stats:          g.buildStats(),
		History:        g.historyTail(),
		ShufflePending: g.ShufflePending,
	}

	for i, h := range g.Hands {
		active := g.Phase == PhasePlayerTurn && i == g.ActiveHand
		view := HandView{
			Cards:    cardViews(h.Cards),
			Total:    h.BestTotal(),
			Soft:     h.IsSoft(),
			BetUnits: h.Bet,
			Doubled:  h.Doubled,
			Active:   active,
			Outcome:  h.Outcome.String(),
		}
		if active {
			view.Actions = actionStrings(g.allowedActions(h))
		}
		snap.Hands = append(snap.Hands, view)
	}

	if len(g.Dealer.Hand.Cards) > 0 {
		snap.Dealer = g.buildDealer()
	}
	return snap
}

func (g *GameState) buildDealer() *DealerView {
	d := &DealerView{}
	if g.Dealer.HoleRevealed {
		d.Cards = cardViews(g.Dealer.Hand.Cards)
		d.Total = g.Dealer.Hand.BestTotal()
		return d
	}
	up := g.Dealer.UpCard()
	d.Cards = cardViews([]Card{up})
	d.HoleHidden = true
	d.Total = up.Rank.PointValue()
	return d
}

func (g *GameState) buildAids() AidsView {
	var view AidsView
	aids := g.Config.Aids
	if aids.ShowRunningCount {
		rc := g.RunningCount
		view.RunningCount = &rc
	}
	if aids.ShowTrueCount {
		tc := g.TrueCount()
		view.TrueCount = &tc
	}
	if aids.ShowShoeDepth {
		decks := g.Shoe.DecksRemaining()
		view.DecksRemaining = &decks
	}
	if aids.ShowHints {
		if hint := g.buildHint(); hint != "" {
			view.Hint = &hint
		}
	}
	return view
}

// buildHint names the recommended move for the pending decision, if one is
// pending.
func (g *GameState) buildHint() string {
	switch g.Phase {
	case PhaseInsurance:
		return EvaluateInsurance(g.TrueCountFloor()).RecommendedAction.String()
	case PhasePlayerTurn:
		hand := g.Hands[g.ActiveHand]
		allowed := g.allowedActions(hand)
		res := EvaluateHand(g.Config.Rules, hand, g.Dealer.UpCard(), g.TrueCountFloor(),
			allowed[ActionSplit], allowed[ActionDouble], allowed[ActionSurrender])
		return res.RecommendedAction.String()
	case PhaseBetting, PhaseSettled:
		if g.Config.Mode.gradesBets() {
			return betHint(ExpectedBetUnits(g.TrueCountFloor(), g.Config.BetSpread))
		}
	}
	return ""
}

func betHint(units int) string {
	return "bet " + strconv.Itoa(units) + " units"
}

func (g *GameState) buildStats() StatsView {
	return StatsView{
		SessionStats:     *g.Stats,
		DecisionAccuracy: g.Stats.Decisions.Accuracy(),
		BetAccuracy:      g.Stats.Bets.Accuracy(),
		CountAccuracy:    g.Stats.CountGuesses.Accuracy(),
	}
}

func (g *GameState) historyTail() []RoundSummary {
	if len(g.History) <= snapshotHistoryTail {
		return g.History
	}
	return g.History[len(g.History)-snapshotHistoryTail:]
}

func cardViews(cards []Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = CardView{Rank: c.Rank.String(), Suit: c.Suit.Name()}
	}
	return out
}

// actionStrings renders the allowed action set in a stable order.
func actionStrings(allowed map[Action]bool) []string {
	order := []Action{ActionHit, ActionStand, ActionDouble, ActionSplit, ActionSurrender}
	var out []string
	for _, a := range order {
		if allowed[a] {
			out = append(out, a.String())
		}
	}
	return out
}
