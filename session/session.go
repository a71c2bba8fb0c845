// Package session is the boundary between transports and the engine: it
// owns the live sessions, serializes access to each table, and persists a
// summary when a session ends.
package session

import (
	"sync"
	"time"

	"blackjack-trainer-server/engine"

	"github.com/shopspring/decimal"
)

// Session is one trainee's table plus ownership and liveness metadata.
// All game access goes through the registry, which holds mu around every
// engine call.
type Session struct {
	ID        string
	UserID    string // empty for anonymous sessions
	Name      string // display name, for the leaderboard
	System    string // counting system name
	Mode      engine.Mode
	CreatedAt time.Time

	mu         sync.Mutex
	game       *engine.GameState
	lastActive time.Time
	ended      bool
}

// touch refreshes the idle clock. Callers hold mu.
func (s *Session) touch() {
	s.lastActive = time.Now()
}

// Summary is the end-of-session record handed to persistence and returned
// to the client on end.
type Summary struct {
	SessionID        string          `json:"sessionId"`
	UserID           string          `json:"-"`
	Name             string          `json:"-"`
	Mode             string          `json:"mode"`
	System           string          `json:"countingSystem"`
	Rounds           int             `json:"rounds"`
	DecisionAttempts int             `json:"decisionAttempts"`
	DecisionCorrect  int             `json:"decisionCorrect"`
	BetAttempts      int             `json:"betAttempts"`
	BetCorrect       int             `json:"betCorrect"`
	CountAttempts    int             `json:"countAttempts"`
	CountCorrect     int             `json:"countCorrect"`
	Mistakes         map[string]int  `json:"mistakes"`
	EVLeakUnits      decimal.Decimal `json:"evLeakUnits"`
	NetUnits         decimal.Decimal `json:"netUnits"`
	StartedAt        time.Time       `json:"startedAt"`
	EndedAt          time.Time       `json:"endedAt"`
}

// buildSummary snapshots the session's lifetime results. Callers hold mu.
func (s *Session) buildSummary() Summary {
	stats := s.game.Stats
	starting := decimal.NewFromInt(int64(s.game.Config.StartingBankrollUnits))
	return Summary{
		SessionID:        s.ID,
		UserID:           s.UserID,
		Name:             s.Name,
		Mode:             s.Mode.String(),
		System:           s.System,
		Rounds:           stats.RoundsPlayed,
		DecisionAttempts: stats.Decisions.Attempts,
		DecisionCorrect:  stats.Decisions.Correct,
		BetAttempts:      stats.Bets.Attempts,
		BetCorrect:       stats.Bets.Correct,
		CountAttempts:    stats.CountGuesses.Attempts,
		CountCorrect:     stats.CountGuesses.Correct,
		Mistakes:         stats.Mistakes,
		EVLeakUnits:      stats.EVLeakUnits,
		NetUnits:         s.game.Bankroll.Sub(starting),
		StartedAt:        s.CreatedAt,
		EndedAt:          time.Now(),
	}
}
