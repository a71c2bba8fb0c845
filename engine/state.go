package engine

import (
	"math"

	"github.com/shopspring/decimal"
)

// Phase is the round state machine position.
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseInsurance
	PhasePlayerTurn
	PhaseSettled
)

// String returns the protocol string for a Phase.
func (p Phase) String() string {
	switch p {
	case PhaseInsurance:
		return "insurance"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseSettled:
		return "settled"
	default:
		return "betting"
	}
}

// Dealer holds the dealer's cards. The hole card is the second card dealt
// and stays hidden (and uncounted) until HoleRevealed flips.
type Dealer struct {
	Hand         Hand
	HoleRevealed bool
}

// UpCard returns the dealer's face-up card. Only valid once the dealer has
// cards.
func (d *Dealer) UpCard() Card {
	return d.Hand.Cards[0]
}

// HandGradeView pairs a decision grade with the hand index it applied to,
// for the round summary.
type HandGradeView struct {
	HandIndex int           `json:"handIndex"`
	Grade     DecisionGrade `json:"grade"`
}

// HandResult is the settled state of one player hand.
type HandResult struct {
	Cards   []string        `json:"cards"`
	Total   int             `json:"total"`
	Outcome string          `json:"outcome"`
	Net     decimal.Decimal `json:"netUnits"`
}

// RoundSummary records one finished round for the session history.
type RoundSummary struct {
	Round          int             `json:"round"`
	BetUnits       int             `json:"betUnits"`
	Hands          []HandResult    `json:"hands"`
	DealerCards    []string        `json:"dealerCards"`
	DealerTotal    int             `json:"dealerTotal"`
	NetUnits       decimal.Decimal `json:"netUnits"`
	InsuranceNet   decimal.Decimal `json:"insuranceNet"`
	BetGrade       *BetGrade       `json:"betGrade,omitempty"`
	InsuranceGrade *DecisionGrade  `json:"insuranceGrade,omitempty"`
	DecisionGrades []HandGradeView `json:"decisionGrades,omitempty"`
	RunningCount   int             `json:"runningCount"`
	TrueCount      float64         `json:"trueCount"`
}

// historyLimit caps how many round summaries a session retains.
const historyLimit = 50

// GameState is one trainee's table: shoe, count, bankroll, the current
// round, and the accumulated grading stats. It is not safe for concurrent
// use; the session layer serializes access.
type GameState struct {
	Config SessionConfig
	Shoe   *Shoe
	System CountingSystem

	RunningCount int
	Phase        Phase
	Hands        []*Hand
	ActiveHand   int
	Dealer       Dealer

	Bankroll decimal.Decimal
	BetUnits int

	InsuranceBet   decimal.Decimal
	InsuranceTaken bool
	insuranceAsked bool

	Stats          *SessionStats
	History        []RoundSummary
	RoundNumber    int
	ShufflePending bool

	splitsUsed     int
	peekPending    bool
	insuranceNet   decimal.Decimal
	decisionGrades []HandGradeView
	betGrade       *BetGrade
	insuranceGrade *DecisionGrade
}

// NewGameState builds a fresh table under the given configuration and
// counting system. The configuration must already be normalized.
func NewGameState(cfg SessionConfig, system CountingSystem) *GameState {
	return &GameState{
		Config:       cfg,
		Shoe:         NewShoe(cfg.Rules),
		System:       system,
		Phase:        PhaseBetting,
		Bankroll:     decimal.NewFromInt(int64(cfg.StartingBankrollUnits)),
		InsuranceBet: decimal.Zero,
		Stats:        NewSessionStats(),
	}
}

// countCard folds a face-up card into the running count.
func (g *GameState) countCard(c Card) {
	g.RunningCount += g.System.TagFor(c)
}

// TrueCount is the running count divided by the estimated decks remaining.
// Unbalanced systems skip the division and use the running count directly.
func (g *GameState) TrueCount() float64 {
	if !g.System.IsBalanced() {
		return float64(g.RunningCount)
	}
	return float64(g.RunningCount) / g.Shoe.DecksRemaining()
}

// TrueCountFloor is the true count rounded toward negative infinity, the
// convention index plays and bet ramps are defined on.
func (g *GameState) TrueCountFloor() int {
	return int(math.Floor(g.TrueCount()))
}

// SubmitCountGuess grades a count check against the live count. Guesses are
// graded in every mode; they never change game state beyond the stats.
func (g *GameState) SubmitCountGuess(runningGuess int, trueGuess float64) CountGuessGrade {
	grade := GradeCountGuess(runningGuess, g.RunningCount, trueGuess, g.TrueCount())
	g.Stats.CountGuesses.record(grade.Correct)
	if !grade.Correct {
		g.Stats.addMistake(MistakeCount, grade.LeakUnits)
	}
	return grade
}
