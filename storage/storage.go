package storage

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"blackjack-trainer-server/session"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	// InitialSkill is the rating a trainee starts from.
	InitialSkill = 500
	// MaxSkill is the rating ceiling, matching a perfect long run.
	MaxSkill = 1000
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS session_history (
	id UUID PRIMARY KEY,
	user_id TEXT NOT NULL DEFAULT '',
	display_name TEXT NOT NULL DEFAULT '',
	played_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	mode TEXT NOT NULL,
	counting_system TEXT NOT NULL,
	rounds INT NOT NULL,
	decision_attempts INT NOT NULL,
	decision_correct INT NOT NULL,
	bet_attempts INT NOT NULL,
	bet_correct INT NOT NULL,
	count_attempts INT NOT NULL,
	count_correct INT NOT NULL,
	ev_leak_units NUMERIC(12,3) NOT NULL DEFAULT 0,
	net_units NUMERIC(12,2) NOT NULL DEFAULT 0,
	duration_sec INT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_session_history_user ON session_history(user_id);
CREATE INDEX IF NOT EXISTS idx_session_history_played_at ON session_history(played_at DESC);
CREATE TABLE IF NOT EXISTS trainer_ratings (
	user_id      TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	skill        INT  NOT NULL DEFAULT 500,
	sessions     INT  NOT NULL DEFAULT 0,
	rounds       INT  NOT NULL DEFAULT 0,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_trainer_ratings_skill ON trainer_ratings(skill DESC);
`

// Store persists and retrieves session history.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and ensures the history tables exist.
// If databaseURL is empty, NewStore returns (nil, nil) and no persistence
// occurs.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// sessionScore maps a session's accuracies and EV leak onto the skill
// scale. Decisions weigh most, then count checks, then bet sizing; the leak
// knocks off up to 100 points.
func sessionScore(decisionAcc, countAcc, betAcc float64, evLeakPerRound float64) int {
	base := 0.5*decisionAcc + 0.3*countAcc + 0.2*betAcc
	penalty := evLeakPerRound * 1000
	if penalty > 100 {
		penalty = 100
	}
	score := base*10 - penalty
	if score < 0 {
		score = 0
	}
	if score > MaxSkill {
		score = MaxSkill
	}
	return int(math.Round(score))
}

// computeSkillUpdate moves the current rating toward the session score.
// Longer sessions move it further; a 20-round session shifts halfway.
func computeSkillUpdate(current, score, rounds int) int {
	if rounds <= 0 {
		return current
	}
	w := float64(rounds) / float64(rounds+20)
	updated := int(math.Round(float64(current)*(1-w) + float64(score)*w))
	if updated < 0 {
		updated = 0
	}
	if updated > MaxSkill {
		updated = MaxSkill
	}
	return updated
}

func accuracy(correct, attempts int) float64 {
	if attempts == 0 {
		return 100
	}
	return 100 * float64(correct) / float64(attempts)
}

// SaveSessionSummary inserts the session record and, for authenticated
// trainees, folds the result into their rating. It satisfies
// session.SummarySink.
func (s *Store) SaveSessionSummary(ctx context.Context, sum session.Summary) error {
	if s == nil || s.pool == nil {
		return nil
	}

	id := sum.SessionID
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	duration := int(sum.EndedAt.Sub(sum.StartedAt) / time.Second)

	_, err := s.pool.Exec(ctx, `
		INSERT INTO session_history
			(id, user_id, display_name, played_at, mode, counting_system, rounds,
			 decision_attempts, decision_correct, bet_attempts, bet_correct,
			 count_attempts, count_correct, ev_leak_units, net_units, duration_sec)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (id) DO NOTHING`,
		id, sum.UserID, sum.Name, sum.EndedAt, sum.Mode, sum.System, sum.Rounds,
		sum.DecisionAttempts, sum.DecisionCorrect, sum.BetAttempts, sum.BetCorrect,
		sum.CountAttempts, sum.CountCorrect, sum.EVLeakUnits.String(), sum.NetUnits.String(), duration)
	if err != nil {
		return err
	}

	if sum.UserID == "" || sum.Rounds == 0 {
		return nil
	}
	return s.updateRating(ctx, sum)
}

func (s *Store) updateRating(ctx context.Context, sum session.Summary) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO trainer_ratings (user_id, display_name, skill, sessions, rounds)
		VALUES ($1, $2, $3, 0, 0)
		ON CONFLICT (user_id) DO NOTHING`,
		sum.UserID, sum.Name, InitialSkill)
	if err != nil {
		return err
	}

	var skill, sessions, rounds int
	if err := tx.QueryRow(ctx,
		`SELECT skill, sessions, rounds FROM trainer_ratings WHERE user_id = $1 FOR UPDATE`,
		sum.UserID).Scan(&skill, &sessions, &rounds); err != nil {
		return err
	}

	leakPerRound, _ := sum.EVLeakUnits.Div(decimal.NewFromInt(int64(sum.Rounds))).Float64()
	score := sessionScore(
		accuracy(sum.DecisionCorrect, sum.DecisionAttempts),
		accuracy(sum.CountCorrect, sum.CountAttempts),
		accuracy(sum.BetCorrect, sum.BetAttempts),
		leakPerRound)
	updated := computeSkillUpdate(skill, score, sum.Rounds)

	_, err = tx.Exec(ctx, `
		UPDATE trainer_ratings
		SET skill = $2, sessions = $3, rounds = $4, display_name = $5, updated_at = now()
		WHERE user_id = $1`,
		sum.UserID, updated, sessions+1, rounds+sum.Rounds, sum.Name)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// SessionRecord is one row of a trainee's session history.
type SessionRecord struct {
	ID               string    `json:"id"`
	PlayedAt         time.Time `json:"playedAt"`
	Mode             string    `json:"mode"`
	CountingSystem   string    `json:"countingSystem"`
	Rounds           int       `json:"rounds"`
	DecisionAttempts int       `json:"decisionAttempts"`
	DecisionCorrect  int       `json:"decisionCorrect"`
	BetAttempts      int       `json:"betAttempts"`
	BetCorrect       int       `json:"betCorrect"`
	CountAttempts    int       `json:"countAttempts"`
	CountCorrect     int       `json:"countCorrect"`
	EVLeakUnits      string    `json:"evLeakUnits"`
	NetUnits         string    `json:"netUnits"`
	DurationSec      int       `json:"durationSec"`
}

// ListByUserID returns a trainee's most recent sessions, newest first.
func (s *Store) ListByUserID(ctx context.Context, userID string) ([]SessionRecord, error) {
	if s == nil || s.pool == nil {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, played_at, mode, counting_system, rounds,
		       decision_attempts, decision_correct, bet_attempts, bet_correct,
		       count_attempts, count_correct, ev_leak_units::text, net_units::text, duration_sec
		FROM session_history
		WHERE user_id = $1
		ORDER BY played_at DESC
		LIMIT 100`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var r SessionRecord
		if err := rows.Scan(&r.ID, &r.PlayedAt, &r.Mode, &r.CountingSystem, &r.Rounds,
			&r.DecisionAttempts, &r.DecisionCorrect, &r.BetAttempts, &r.BetCorrect,
			&r.CountAttempts, &r.CountCorrect, &r.EVLeakUnits, &r.NetUnits, &r.DurationSec); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LeaderboardEntry is one row of the skill leaderboard.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Skill       int    `json:"skill"`
	Sessions    int    `json:"sessions"`
	Rounds      int    `json:"rounds"`

	// IsCurrentUser marks the requesting user's own row.
	IsCurrentUser bool `json:"is_current_user,omitempty"`
}

// ListLeaderboard returns the global leaderboard ordered by skill.
func (s *Store) ListLeaderboard(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error) {
	if s == nil || s.pool == nil {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, display_name, skill, sessions, rounds
		FROM trainer_ratings
		ORDER BY skill DESC, rounds DESC, user_id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.Skill, &e.Sessions, &e.Rounds); err != nil {
			return nil, err
		}
		e.Rank = offset + len(out) + 1
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetLeaderboardEntryByUserID returns one trainee's ranked entry, or nil if
// they have no rating yet.
func (s *Store) GetLeaderboardEntryByUserID(ctx context.Context, userID string) (*LeaderboardEntry, error) {
	if s == nil || s.pool == nil {
		return nil, nil
	}
	var e LeaderboardEntry
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, display_name, skill, sessions, rounds,
		       (SELECT count(*) + 1 FROM trainer_ratings r2 WHERE r2.skill > r.skill)
		FROM trainer_ratings r
		WHERE user_id = $1`, userID).
		Scan(&e.UserID, &e.DisplayName, &e.Skill, &e.Sessions, &e.Rounds, &e.Rank)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
