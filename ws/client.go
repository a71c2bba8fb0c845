package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"blackjack-trainer-server/auth"
	"blackjack-trainer-server/engine"
	"blackjack-trainer-server/session"
	"blackjack-trainer-server/sessionerrors"
	"blackjack-trainer-server/wsutil"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client is a middleman between the websocket connection and the session
// registry.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	UserID    string // empty until authenticated
	Name      string
	SessionID string // empty until a session is created or resumed
}

// ReadPump pumps messages from the websocket connection to the hub.
// It runs in its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "tag", "ws", "err", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the send channel to the websocket
// connection. It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.sendError("Invalid message format.")
		return
	}

	switch envelope.Type {
	case "auth":
		c.handleAuth(envelope.Raw)
	case "create_session":
		c.handleCreateSession(envelope.Raw)
	case "resume_session":
		c.handleResumeSession(envelope.Raw)
	case "deal":
		c.handleDeal(envelope.Raw)
	case "action":
		c.handleAction(envelope.Raw)
	case "count_guess":
		c.handleCountGuess(envelope.Raw)
	case "end_session":
		c.handleEndSession()
	default:
		c.sendError("Unknown message type: " + envelope.Type)
	}
}

func (c *Client) handleAuth(raw json.RawMessage) {
	var msg AuthMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid auth message.")
		return
	}
	if c.Hub.Config.NeonAuthBaseURL == "" {
		c.sendError("Server auth not configured.")
		return
	}
	claims, err := auth.ValidateToken(c.Hub.Config.NeonAuthBaseURL, msg.Token)
	if err != nil {
		slog.Warn("token rejected", "tag", "ws", "err", err)
		c.sendError("Invalid token.")
		return
	}
	c.UserID = auth.UserIDFromClaims(claims)
	c.Name = auth.DisplayNameFromClaims(claims)
	c.send(AuthOKMsg{Type: "auth_ok", UserID: c.UserID, Name: c.Name})
}

func (c *Client) handleCreateSession(raw json.RawMessage) {
	var msg CreateSessionMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid create_session message.")
		return
	}

	cfg := session.DefaultSessionConfig(c.Hub.Config)
	cfg.Mode = engine.ParseMode(msg.Mode)
	if msg.Rules != nil {
		cfg.Rules = *msg.Rules
	}
	if msg.Aids != nil {
		cfg.Aids = *msg.Aids
	}
	if msg.BetSpread > 0 {
		cfg.BetSpread = msg.BetSpread
	}
	if msg.StartingBankrollUnits > 0 {
		cfg.StartingBankrollUnits = msg.StartingBankrollUnits
	}

	s, snap, err := c.Hub.Sessions.Create(session.CreateParams{
		UserID: c.UserID,
		Name:   c.Name,
		System: msg.CountingSystem,
		Config: cfg,
	})
	if err != nil {
		c.sendSessionError(err)
		return
	}
	c.SessionID = s.ID
	c.send(SessionCreatedMsg{Type: "session_created", SessionID: s.ID, State: snap})
}

func (c *Client) handleResumeSession(raw json.RawMessage) {
	var msg ResumeSessionMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid resume_session message.")
		return
	}
	snap, err := c.Hub.Sessions.Snapshot(msg.SessionID, c.UserID)
	if err != nil {
		c.sendSessionError(err)
		return
	}
	c.SessionID = msg.SessionID
	c.send(StateMsg{Type: "state", State: snap})
}

func (c *Client) handleDeal(raw json.RawMessage) {
	if c.SessionID == "" {
		c.sendError("No session bound to this connection.")
		return
	}
	var msg DealMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid deal message.")
		return
	}
	snap, grade, err := c.Hub.Sessions.Deal(c.SessionID, c.UserID, msg.BetUnits)
	if err != nil {
		c.sendSessionError(err)
		return
	}
	if grade != nil {
		c.send(BetGradedMsg{Type: "bet_graded", Grade: *grade})
	}
	c.send(StateMsg{Type: "state", State: snap})
}

func (c *Client) handleAction(raw json.RawMessage) {
	if c.SessionID == "" {
		c.sendError("No session bound to this connection.")
		return
	}
	var msg ActionMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid action message.")
		return
	}
	action, ok := engine.ParseAction(msg.Action)
	if !ok {
		c.sendError("Unknown action: " + msg.Action)
		return
	}
	snap, grade, err := c.Hub.Sessions.Act(c.SessionID, c.UserID, action)
	if err != nil {
		c.sendSessionError(err)
		return
	}
	if grade != nil {
		c.send(DecisionGradedMsg{Type: "decision_graded", Grade: *grade})
	}
	c.send(StateMsg{Type: "state", State: snap})
}

func (c *Client) handleCountGuess(raw json.RawMessage) {
	if c.SessionID == "" {
		c.sendError("No session bound to this connection.")
		return
	}
	var msg CountGuessMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid count_guess message.")
		return
	}
	grade, err := c.Hub.Sessions.Guess(c.SessionID, c.UserID, msg.RunningCount, msg.TrueCount)
	if err != nil {
		c.sendSessionError(err)
		return
	}
	c.send(CountGradedMsg{Type: "count_graded", Grade: grade})
}

func (c *Client) handleEndSession() {
	if c.SessionID == "" {
		c.sendError("No session bound to this connection.")
		return
	}
	summary, err := c.Hub.Sessions.End(c.SessionID, c.UserID)
	if err != nil {
		c.sendSessionError(err)
		return
	}
	c.SessionID = ""
	c.send(SessionEndedMsg{Type: "session_ended", Summary: summary})
}

// sendSessionError maps engine and session errors onto client messages.
func (c *Client) sendSessionError(err error) {
	switch {
	case errors.Is(err, sessionerrors.ErrSessionNotFound):
		c.sendError("Session not found.")
	case errors.Is(err, sessionerrors.ErrSessionEnded):
		c.sendError("Session already ended.")
	case errors.Is(err, sessionerrors.ErrNotSessionOwner):
		c.sendError("This session belongs to another user.")
	case errors.Is(err, sessionerrors.ErrUnknownCountingSystem):
		c.sendError("Unknown counting system.")
	case errors.Is(err, engine.ErrIllegalPhase):
		c.sendError("That is not allowed right now.")
	case errors.Is(err, engine.ErrIllegalAction):
		c.sendError("That action is not available for this hand.")
	case errors.Is(err, engine.ErrInsufficientBankroll):
		c.sendError("Not enough bankroll for that bet.")
	default:
		slog.Error("session operation failed", "tag", "ws", "err", err)
		c.sendError("Internal error.")
	}
}

func (c *Client) send(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal outbound message", "tag", "ws", "err", err)
		return
	}
	wsutil.SafeSend(c.Send, data)
}

func (c *Client) sendError(message string) {
	c.send(ErrorMsg{Type: "error", Message: message})
}
