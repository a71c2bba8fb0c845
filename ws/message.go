package ws

import (
	"encoding/json"

	"blackjack-trainer-server/engine"
	"blackjack-trainer-server/session"
)

// InboundEnvelope is the generic envelope for all client-to-server messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// --- Client-to-Server message payloads ---

// AuthMsg is sent by the client as the first message with a Neon Auth JWT.
// Optional; unauthenticated clients play anonymously and skip the
// leaderboard.
type AuthMsg struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// CreateSessionMsg opens a training session. Omitted fields fall back to
// the server's table defaults.
type CreateSessionMsg struct {
	Type                  string        `json:"type"`
	Mode                  string        `json:"mode"`
	CountingSystem        string        `json:"countingSystem"`
	Rules                 *engine.Rules `json:"rules,omitempty"`
	Aids                  *engine.Aids  `json:"aids,omitempty"`
	BetSpread             int           `json:"betSpread"`
	StartingBankrollUnits int           `json:"startingBankrollUnits"`
}

// ResumeSessionMsg re-binds the connection to an existing session, e.g.
// after a page refresh.
type ResumeSessionMsg struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
}

// DealMsg starts a round with the given bet.
type DealMsg struct {
	Type     string `json:"type"`
	BetUnits int    `json:"betUnits"`
}

// ActionMsg applies one playing decision.
type ActionMsg struct {
	Type   string `json:"type"`
	Action string `json:"action"`
}

// CountGuessMsg submits a count check.
type CountGuessMsg struct {
	Type         string  `json:"type"`
	RunningCount int     `json:"runningCount"`
	TrueCount    float64 `json:"trueCount"`
}

// EndSessionMsg closes the bound session.
type EndSessionMsg struct {
	Type string `json:"type"`
}

// --- Server-to-Client messages ---

// ErrorMsg is sent when a client action is invalid.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// AuthOKMsg confirms a validated token.
type AuthOKMsg struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// SessionCreatedMsg carries the new session id and its first snapshot.
type SessionCreatedMsg struct {
	Type      string              `json:"type"`
	SessionID string              `json:"sessionId"`
	State     engine.GameSnapshot `json:"state"`
}

// StateMsg carries a fresh snapshot after any state change.
type StateMsg struct {
	Type  string              `json:"type"`
	State engine.GameSnapshot `json:"state"`
}

// BetGradedMsg reports the grade of an opening bet.
type BetGradedMsg struct {
	Type  string          `json:"type"`
	Grade engine.BetGrade `json:"grade"`
}

// DecisionGradedMsg reports the grade of a playing decision.
type DecisionGradedMsg struct {
	Type  string               `json:"type"`
	Grade engine.DecisionGrade `json:"grade"`
}

// CountGradedMsg reports the grade of a count check.
type CountGradedMsg struct {
	Type  string                 `json:"type"`
	Grade engine.CountGuessGrade `json:"grade"`
}

// SessionEndedMsg carries the final summary.
type SessionEndedMsg struct {
	Type    string          `json:"type"`
	Summary session.Summary `json:"summary"`
}
