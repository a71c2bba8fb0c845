package engine

import (
	"math"

	"github.com/shopspring/decimal"
)

// Estimated expected-value cost of each mistake class, in betting units.
// These are coarse training weights, not simulator output.
var (
	leakBasicError      = decimal.RequireFromString("0.05")
	leakWrongDeviation  = decimal.RequireFromString("0.04")
	leakMissedDeviation = decimal.RequireFromString("0.025")
	leakPerBetUnit      = decimal.RequireFromString("0.02")
	leakCountError      = decimal.RequireFromString("0.01")
)

// MistakeKind classifies a graded error for the session histogram.
type MistakeKind int

const (
	MistakeNone MistakeKind = iota
	MistakeBasic
	MistakeMissedDeviation
	MistakeWrongDeviation
	MistakeBetSize
	MistakeCount
)

// String returns the protocol string for a MistakeKind.
func (k MistakeKind) String() string {
	switch k {
	case MistakeBasic:
		return "basic_strategy"
	case MistakeMissedDeviation:
		return "missed_deviation"
	case MistakeWrongDeviation:
		return "wrong_deviation"
	case MistakeBetSize:
		return "bet_size"
	case MistakeCount:
		return "count"
	default:
		return "none"
	}
}

// DimensionStats tracks attempts and correct answers along one graded
// dimension.
type DimensionStats struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
}

// Accuracy returns the percentage of correct attempts, or 100 when nothing
// has been attempted yet.
func (d DimensionStats) Accuracy() float64 {
	if d.Attempts == 0 {
		return 100
	}
	return 100 * float64(d.Correct) / float64(d.Attempts)
}

func (d *DimensionStats) record(correct bool) {
	d.Attempts++
	if correct {
		d.Correct++
	}
}

// SessionStats accumulates grading results over a session.
type SessionStats struct {
	Decisions    DimensionStats  `json:"decisions"`
	Bets         DimensionStats  `json:"bets"`
	CountGuesses DimensionStats  `json:"countGuesses"`
	Mistakes     map[string]int  `json:"mistakes"`
	EVLeakUnits  decimal.Decimal `json:"evLeakUnits"`
	RoundsPlayed int             `json:"roundsPlayed"`
	HandsWon     int             `json:"handsWon"`
	HandsLost    int             `json:"handsLost"`
	HandsPushed  int             `json:"handsPushed"`
	Blackjacks   int             `json:"blackjacks"`
}

// NewSessionStats returns zeroed stats with the mistake histogram allocated.
func NewSessionStats() *SessionStats {
	return &SessionStats{
		Mistakes:    map[string]int{},
		EVLeakUnits: decimal.Zero,
	}
}

func (s *SessionStats) addMistake(kind MistakeKind, leak decimal.Decimal) {
	if kind == MistakeNone {
		return
	}
	s.Mistakes[kind.String()]++
	s.EVLeakUnits = s.EVLeakUnits.Add(leak)
}

func (s *SessionStats) recordOutcome(o Outcome) {
	switch o {
	case OutcomeWin:
		s.HandsWon++
	case OutcomeBlackjack:
		s.HandsWon++
		s.Blackjacks++
	case OutcomeLose, OutcomeSurrender:
		s.HandsLost++
	case OutcomePush:
		s.HandsPushed++
	}
}

// ExpectedBetUnits is the training bet ramp: one unit off the top, then
// 2/4/6 units at true count floors +1/+2/+3, and the full spread from +4 up.
// The result never exceeds the configured spread.
func ExpectedBetUnits(trueCountFloor, spread int) int {
	var units int
	switch {
	case trueCountFloor <= 0:
		units = 1
	case trueCountFloor == 1:
		units = 2
	case trueCountFloor == 2:
		units = 4
	case trueCountFloor == 3:
		units = 6
	default:
		units = spread
	}
	if units > spread {
		units = spread
	}
	return units
}

// DecisionGrade is the verdict on one playing decision.
type DecisionGrade struct {
	Graded    bool            `json:"graded"`
	Correct   bool            `json:"correct"`
	Taken     string          `json:"taken"`
	Expected  string          `json:"expected"`
	Kind      MistakeKind     `json:"-"`
	Mistake   string          `json:"mistake,omitempty"`
	LeakUnits decimal.Decimal `json:"leakUnits"`
	Reason    string          `json:"reason"`
}

// GradeDecision compares the taken action against the strategy verdict.
// When a deviation is on, playing basic anyway is a missed deviation and
// anything else is a wrong deviation; with no deviation active, every
// mismatch is a plain basic-strategy error.
func GradeDecision(res StrategyResult, taken Action) DecisionGrade {
	g := DecisionGrade{
		Graded:    true,
		Taken:     taken.String(),
		Expected:  res.RecommendedAction.String(),
		LeakUnits: decimal.Zero,
		Reason:    res.Reason,
	}
	if taken == res.RecommendedAction {
		g.Correct = true
		return g
	}
	switch {
	case res.DeviationApplies && taken == res.BasicAction:
		g.Kind = MistakeMissedDeviation
		g.LeakUnits = leakMissedDeviation
	case res.DeviationApplies:
		g.Kind = MistakeWrongDeviation
		g.LeakUnits = leakWrongDeviation
	default:
		g.Kind = MistakeBasic
		g.LeakUnits = leakBasicError
	}
	g.Mistake = g.Kind.String()
	return g
}

// BetGrade is the verdict on one round's opening bet.
type BetGrade struct {
	Graded    bool            `json:"graded"`
	Correct   bool            `json:"correct"`
	BetUnits  int             `json:"betUnits"`
	Expected  int             `json:"expected"`
	LeakUnits decimal.Decimal `json:"leakUnits"`
}

// GradeBet checks the bet against the ramp. The leak grows linearly with the
// distance from the expected size.
func GradeBet(trueCountFloor, spread, betUnits int) BetGrade {
	expected := ExpectedBetUnits(trueCountFloor, spread)
	g := BetGrade{
		Graded:    true,
		BetUnits:  betUnits,
		Expected:  expected,
		LeakUnits: decimal.Zero,
	}
	if betUnits == expected {
		g.Correct = true
		return g
	}
	diff := betUnits - expected
	if diff < 0 {
		diff = -diff
	}
	g.LeakUnits = leakPerBetUnit.Mul(decimal.NewFromInt(int64(diff)))
	return g
}

// CountGuessGrade is the verdict on one count check.
type CountGuessGrade struct {
	Correct       bool            `json:"correct"`
	RunningGuess  int             `json:"runningGuess"`
	RunningActual int             `json:"runningActual"`
	TrueGuess     float64         `json:"trueGuess"`
	TrueActual    float64         `json:"trueActual"`
	LeakUnits     decimal.Decimal `json:"leakUnits"`
}

// GradeCountGuess checks a running-count and true-count guess. The running
// count must be exact; the true count is accepted within half a point, since
// deck estimation is itself approximate.
func GradeCountGuess(runningGuess, runningActual int, trueGuess, trueActual float64) CountGuessGrade {
	g := CountGuessGrade{
		RunningGuess:  runningGuess,
		RunningActual: runningActual,
		TrueGuess:     trueGuess,
		TrueActual:    trueActual,
		LeakUnits:     decimal.Zero,
	}
	g.Correct = runningGuess == runningActual && math.Abs(trueGuess-trueActual) <= 0.5
	if !g.Correct {
		g.LeakUnits = leakCountError
	}
	return g
}
