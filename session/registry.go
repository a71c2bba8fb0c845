package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"blackjack-trainer-server/config"
	"blackjack-trainer-server/engine"
	"blackjack-trainer-server/sessionerrors"

	"github.com/google/uuid"
)

// SystemProvider abstracts the counting-system registry so this package can
// be tested with stubs.
type SystemProvider interface {
	Get(name string) (engine.CountingSystem, bool)
}

// SummarySink receives end-of-session summaries for persistence. May be
// nil-valued behind a non-nil interface only if the implementation handles
// it; pass nil when persistence is disabled.
type SummarySink interface {
	SaveSessionSummary(ctx context.Context, s Summary) error
}

// Registry owns all live sessions. The registry lock guards the map; each
// session carries its own mutex so slow engine calls on one table never
// block another.
type Registry struct {
	cfg     *config.Config
	systems SystemProvider
	sink    SummarySink

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry(cfg *config.Config, systems SystemProvider, sink SummarySink) *Registry {
	return &Registry{
		cfg:      cfg,
		systems:  systems,
		sink:     sink,
		sessions: make(map[string]*Session),
	}
}

// DefaultSessionConfig seeds an engine configuration from the server's
// table defaults.
func DefaultSessionConfig(cfg *config.Config) engine.SessionConfig {
	c := engine.DefaultSessionConfig()
	c.Rules.DeckCount = cfg.Table.DeckCount
	c.Rules.PenetrationPercent = cfg.Table.PenetrationPercent
	c.Rules.BurnCards = cfg.Table.BurnCards
	c.Rules.MaxSplits = cfg.Table.MaxSplits
	c.BetSpread = cfg.Table.BetSpread
	c.StartingBankrollUnits = cfg.Table.StartingBankrollUnits
	return c
}

// CreateParams carries everything needed to open a session.
type CreateParams struct {
	UserID string
	Name   string
	System string // counting system name; empty means hilo
	Config engine.SessionConfig
}

// Create opens a new session and returns it with its first snapshot.
func (r *Registry) Create(p CreateParams) (*Session, engine.GameSnapshot, error) {
	name := p.System
	if name == "" {
		name = "hilo"
	}
	system, ok := r.systems.Get(name)
	if !ok {
		return nil, engine.GameSnapshot{}, sessionerrors.ErrUnknownCountingSystem
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.UserID != "" && r.countForUserLocked(p.UserID) >= r.cfg.Sessions.MaxPerUser {
		// Evict the user's oldest session instead of refusing; stale
		// tabs otherwise pin the slots until the TTL sweep.
		r.evictOldestLocked(p.UserID)
	}

	s := &Session{
		ID:         uuid.NewString(),
		UserID:     p.UserID,
		Name:       p.Name,
		System:     name,
		Mode:       p.Config.Mode,
		CreatedAt:  time.Now(),
		game:       engine.NewGameState(p.Config.Normalize(), system),
		lastActive: time.Now(),
	}
	r.sessions[s.ID] = s
	slog.Info("session created", "tag", "session", "id", s.ID, "mode", s.Mode.String(), "system", name)
	return s, s.game.BuildSnapshot(), nil
}

func (r *Registry) countForUserLocked(userID string) int {
	n := 0
	for _, s := range r.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n
}

func (r *Registry) evictOldestLocked(userID string) {
	var oldest *Session
	for _, s := range r.sessions {
		if s.UserID != userID {
			continue
		}
		if oldest == nil || s.CreatedAt.Before(oldest.CreatedAt) {
			oldest = s
		}
	}
	if oldest != nil {
		delete(r.sessions, oldest.ID)
		go r.persist(oldest)
	}
}

// get fetches a live session and checks ownership.
func (r *Registry) get(id, userID string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, sessionerrors.ErrSessionNotFound
	}
	if s.UserID != "" && s.UserID != userID {
		return nil, sessionerrors.ErrNotSessionOwner
	}
	return s, nil
}

// Snapshot returns the current client view of a session.
func (r *Registry) Snapshot(id, userID string) (engine.GameSnapshot, error) {
	s, err := r.get(id, userID)
	if err != nil {
		return engine.GameSnapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return engine.GameSnapshot{}, sessionerrors.ErrSessionEnded
	}
	s.touch()
	return s.game.BuildSnapshot(), nil
}

// Deal starts a round. The returned grade is nil when bets are ungraded.
func (r *Registry) Deal(id, userID string, betUnits int) (engine.GameSnapshot, *engine.BetGrade, error) {
	s, err := r.get(id, userID)
	if err != nil {
		return engine.GameSnapshot{}, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return engine.GameSnapshot{}, nil, sessionerrors.ErrSessionEnded
	}
	s.touch()
	grade, err := s.game.Deal(betUnits)
	if err != nil {
		return engine.GameSnapshot{}, nil, err
	}
	return s.game.BuildSnapshot(), grade, nil
}

// Act applies a player action. The returned grade is nil when the decision
// is ungraded in the session's mode.
func (r *Registry) Act(id, userID string, action engine.Action) (engine.GameSnapshot, *engine.DecisionGrade, error) {
	s, err := r.get(id, userID)
	if err != nil {
		return engine.GameSnapshot{}, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return engine.GameSnapshot{}, nil, sessionerrors.ErrSessionEnded
	}
	s.touch()
	grade, err := s.game.ApplyAction(action)
	if err != nil {
		return engine.GameSnapshot{}, nil, err
	}
	return s.game.BuildSnapshot(), grade, nil
}

// Guess grades a count check.
func (r *Registry) Guess(id, userID string, running int, trueCount float64) (engine.CountGuessGrade, error) {
	s, err := r.get(id, userID)
	if err != nil {
		return engine.CountGuessGrade{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return engine.CountGuessGrade{}, sessionerrors.ErrSessionEnded
	}
	s.touch()
	return s.game.SubmitCountGuess(running, trueCount), nil
}

// End closes a session, removes it from the registry, and persists its
// summary.
func (r *Registry) End(id, userID string) (Summary, error) {
	s, err := r.get(id, userID)
	if err != nil {
		return Summary{}, err
	}

	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return Summary{}, sessionerrors.ErrSessionEnded
	}
	s.ended = true
	summary := s.buildSummary()
	s.mu.Unlock()

	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()

	r.save(summary)
	return summary, nil
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Run sweeps idle sessions until ctx is cancelled. Evicted sessions are
// persisted as if the trainee had ended them.
func (r *Registry) Run(ctx context.Context) {
	interval := time.Duration(r.cfg.Sessions.SweepIntervalSec) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweep stopping", "tag", "session")
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *Registry) sweep() {
	ttl := time.Duration(r.cfg.Sessions.TTLMin) * time.Minute
	cutoff := time.Now().Add(-ttl)

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		s.mu.Lock()
		idle := s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			expired = append(expired, s)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		slog.Info("session evicted", "tag", "session", "id", s.ID)
		r.persist(s)
	}
}

func (r *Registry) persist(s *Session) {
	s.mu.Lock()
	s.ended = true
	summary := s.buildSummary()
	s.mu.Unlock()
	r.save(summary)
}

func (r *Registry) save(summary Summary) {
	if r.sink == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.sink.SaveSessionSummary(ctx, summary); err != nil {
		slog.Error("failed to persist session summary", "tag", "session", "id", summary.SessionID, "err", err)
	}
}
