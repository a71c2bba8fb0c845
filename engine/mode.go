package engine

// Mode selects which training dimensions a session drills and how much help
// the trainee gets. Guided forces all aids on; Exam forces all aids off.
type Mode int

const (
	ModeFreePlay Mode = iota
	ModeGuided
	ModeCountingOnly
	ModeDeviationsOnly
	ModeBetSizingOnly
	ModeExam
)

// String returns the protocol string for a Mode.
func (m Mode) String() string {
	switch m {
	case ModeGuided:
		return "guided"
	case ModeCountingOnly:
		return "counting_only"
	case ModeDeviationsOnly:
		return "deviations_only"
	case ModeBetSizingOnly:
		return "bet_sizing_only"
	case ModeExam:
		return "exam"
	default:
		return "free_play"
	}
}

// ParseMode maps a protocol string to a Mode, defaulting to free play for
// unknown input.
func ParseMode(s string) Mode {
	switch s {
	case "guided":
		return ModeGuided
	case "counting_only":
		return ModeCountingOnly
	case "deviations_only":
		return ModeDeviationsOnly
	case "bet_sizing_only":
		return ModeBetSizingOnly
	case "exam":
		return ModeExam
	default:
		return ModeFreePlay
	}
}

// gradesBets reports whether bet sizing is graded in this mode.
func (m Mode) gradesBets() bool {
	return m != ModeCountingOnly && m != ModeDeviationsOnly
}

// gradesDecisions reports whether playing decisions are graded in this mode.
// DeviationsOnly still grades decisions, but only when a count deviation
// opportunity exists (checked at the call site).
func (m Mode) gradesDecisions() bool {
	return m != ModeCountingOnly && m != ModeBetSizingOnly
}

// Aids are the UI helper toggles for a session.
type Aids struct {
	ShowRunningCount bool `json:"showRunningCount"`
	ShowTrueCount    bool `json:"showTrueCount"`
	ShowShoeDepth    bool `json:"showShoeDepth"`
	ShowHints        bool `json:"showHints"`
}

// allOn returns every aid enabled.
func allAidsOn() Aids {
	return Aids{ShowRunningCount: true, ShowTrueCount: true, ShowShoeDepth: true, ShowHints: true}
}

// SessionConfig is the full configuration accepted at session creation.
type SessionConfig struct {
	Mode                  Mode  `json:"-"`
	Rules                 Rules `json:"rules"`
	Aids                  Aids  `json:"aids"`
	BetSpread             int   `json:"betSpread"`
	StartingBankrollUnits int   `json:"startingBankrollUnits"`
}

// DefaultSessionConfig returns a guided six-deck session.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Mode:                  ModeGuided,
		Rules:                 DefaultRules(),
		Aids:                  allAidsOn(),
		BetSpread:             8,
		StartingBankrollUnits: 100,
	}
}

// Normalize clamps the configuration and applies mode-forced aid settings.
func (c SessionConfig) Normalize() SessionConfig {
	c.Rules = c.Rules.Normalize()
	c.BetSpread = clampInt(c.BetSpread, 2, 20)
	if c.StartingBankrollUnits < 10 {
		c.StartingBankrollUnits = 10
	}
	switch c.Mode {
	case ModeGuided:
		c.Aids = allAidsOn()
	case ModeExam:
		c.Aids = Aids{}
	}
	return c
}
