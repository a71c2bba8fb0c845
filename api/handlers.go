package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"blackjack-trainer-server/auth"
	"blackjack-trainer-server/config"
	"blackjack-trainer-server/engine"
	"blackjack-trainer-server/session"
	"blackjack-trainer-server/sessionerrors"
	"blackjack-trainer-server/storage"
)

const bearerPrefix = "Bearer "

// Handler holds dependencies for API handlers.
type Handler struct {
	Config       *config.Config
	Sessions     *session.Registry
	HistoryStore *storage.Store
}

// NewHandler creates a new API handler with the given dependencies.
func NewHandler(cfg *config.Config, sessions *session.Registry, historyStore *storage.Store) *Handler {
	return &Handler{
		Config:       cfg,
		Sessions:     sessions,
		HistoryStore: historyStore,
	}
}

// Register attaches all API routes to the mux. Routes carry no method
// qualifier so that CORS preflight requests reach the handlers.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/sessions", h.CreateSession)
	mux.HandleFunc("/api/sessions/{id}", h.Session)
	mux.HandleFunc("/api/sessions/{id}/deal", h.Deal)
	mux.HandleFunc("/api/sessions/{id}/action", h.Action)
	mux.HandleFunc("/api/sessions/{id}/guess", h.Guess)
	mux.HandleFunc("/api/history", h.History)
	mux.HandleFunc("/api/leaderboard", h.Leaderboard)
}

// CORS sets CORS headers on the response. Call before writing body.
func CORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return true
	}
	return false
}

// extractUserID validates the Authorization header and returns the user ID,
// or empty string on failure. Anonymous callers are allowed; they just
// cannot reach owned sessions or the history endpoint.
func (h *Handler) extractUserID(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	claims, err := auth.ValidateToken(h.Config.NeonAuthBaseURL, token)
	if err != nil {
		return ""
	}
	return auth.UserIDFromClaims(claims)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "tag", "api", "err", err)
	}
}

// writeSessionError translates engine and session errors into HTTP statuses.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionerrors.ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, sessionerrors.ErrNotSessionOwner):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, sessionerrors.ErrSessionEnded):
		http.Error(w, "session ended", http.StatusGone)
	case errors.Is(err, sessionerrors.ErrUnknownCountingSystem):
		http.Error(w, "unknown counting system", http.StatusBadRequest)
	case errors.Is(err, engine.ErrIllegalPhase),
		errors.Is(err, engine.ErrIllegalAction),
		errors.Is(err, engine.ErrInsufficientBankroll):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		slog.Error("session operation failed", "tag", "api", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// CreateSessionRequest is the JSON body for POST /api/sessions.
type CreateSessionRequest struct {
	Mode                  string        `json:"mode"`
	CountingSystem        string        `json:"countingSystem"`
	Rules                 *engine.Rules `json:"rules,omitempty"`
	Aids                  *engine.Aids  `json:"aids,omitempty"`
	BetSpread             int           `json:"betSpread"`
	StartingBankrollUnits int           `json:"startingBankrollUnits"`
}

// CreateSessionResponse carries the new session id and its first snapshot.
type CreateSessionResponse struct {
	SessionID string              `json:"sessionId"`
	State     engine.GameSnapshot `json:"state"`
}

// CreateSession handles POST /api/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg := session.DefaultSessionConfig(h.Config)
	cfg.Mode = engine.ParseMode(req.Mode)
	if req.Rules != nil {
		cfg.Rules = *req.Rules
	}
	if req.Aids != nil {
		cfg.Aids = *req.Aids
	}
	if req.BetSpread > 0 {
		cfg.BetSpread = req.BetSpread
	}
	if req.StartingBankrollUnits > 0 {
		cfg.StartingBankrollUnits = req.StartingBankrollUnits
	}

	userID := h.extractUserID(r)
	s, snap, err := h.Sessions.Create(session.CreateParams{
		UserID: userID,
		System: req.CountingSystem,
		Config: cfg,
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateSessionResponse{SessionID: s.ID, State: snap})
}

// Session handles GET (snapshot) and DELETE (end) on /api/sessions/{id}.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	id := r.PathValue("id")
	userID := h.extractUserID(r)

	switch r.Method {
	case http.MethodGet:
		snap, err := h.Sessions.Snapshot(id, userID)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	case http.MethodDelete:
		summary, err := h.Sessions.End(id, userID)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// DealRequest is the JSON body for POST /api/sessions/{id}/deal.
type DealRequest struct {
	BetUnits int `json:"betUnits"`
}

// RoundStepResponse is returned by deal and action: the fresh snapshot plus
// any grades issued by the step.
type RoundStepResponse struct {
	State         engine.GameSnapshot   `json:"state"`
	BetGrade      *engine.BetGrade      `json:"betGrade,omitempty"`
	DecisionGrade *engine.DecisionGrade `json:"decisionGrade,omitempty"`
}

// Deal handles POST /api/sessions/{id}/deal.
func (h *Handler) Deal(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req DealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	snap, grade, err := h.Sessions.Deal(r.PathValue("id"), h.extractUserID(r), req.BetUnits)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RoundStepResponse{State: snap, BetGrade: grade})
}

// ActionRequest is the JSON body for POST /api/sessions/{id}/action.
type ActionRequest struct {
	Action string `json:"action"`
}

// Action handles POST /api/sessions/{id}/action.
func (h *Handler) Action(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	action, ok := engine.ParseAction(req.Action)
	if !ok {
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}
	snap, grade, err := h.Sessions.Act(r.PathValue("id"), h.extractUserID(r), action)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RoundStepResponse{State: snap, DecisionGrade: grade})
}

// GuessRequest is the JSON body for POST /api/sessions/{id}/guess.
type GuessRequest struct {
	RunningCount int     `json:"runningCount"`
	TrueCount    float64 `json:"trueCount"`
}

// Guess handles POST /api/sessions/{id}/guess.
func (h *Handler) Guess(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	grade, err := h.Sessions.Guess(r.PathValue("id"), h.extractUserID(r), req.RunningCount, req.TrueCount)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grade)
}

// History returns the session history for the authenticated user.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := h.extractUserID(r)
	if userID == "" {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	list := []storage.SessionRecord{}
	if h.HistoryStore != nil {
		var err error
		list, err = h.HistoryStore.ListByUserID(r.Context(), userID)
		if err != nil {
			slog.Error("list history", "tag", "api", "err", err)
			http.Error(w, "failed to load history", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, http.StatusOK, list)
}

// LeaderboardResponse is the JSON structure for /api/leaderboard.
type LeaderboardResponse struct {
	Entries          []storage.LeaderboardEntry `json:"entries"`
	CurrentUserEntry *storage.LeaderboardEntry  `json:"current_user_entry"`
}

// Leaderboard returns the global skill leaderboard with optional current
// user entry.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	entries := []storage.LeaderboardEntry{}
	if h.HistoryStore != nil {
		var err error
		entries, err = h.HistoryStore.ListLeaderboard(r.Context(), limit, offset)
		if err != nil {
			slog.Error("list leaderboard", "tag", "api", "err", err)
			http.Error(w, "failed to load leaderboard", http.StatusInternalServerError)
			return
		}
	}

	var currentUserEntry *storage.LeaderboardEntry
	authUserID := h.extractUserID(r)
	if authUserID != "" && h.HistoryStore != nil {
		cur, err := h.HistoryStore.GetLeaderboardEntryByUserID(r.Context(), authUserID)
		if err != nil {
			slog.Error("load current user entry", "tag", "api", "err", err)
		} else if cur != nil {
			inTop := false
			for i := range entries {
				if entries[i].UserID == authUserID {
					entries[i].IsCurrentUser = true
					inTop = true
					break
				}
			}
			if !inTop {
				cur.IsCurrentUser = true
				currentUserEntry = cur
			}
		}
	}

	writeJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries, CurrentUserEntry: currentUserEntry})
}
