package storage

import (
	"context"

	"blackjack-trainer-server/session"
)

// HistoryStore abstracts persistence for session history and the
// leaderboard. Implementations can be swapped for testing (mocks) or
// different backends (e.g. read replicas).
type HistoryStore interface {
	// Read
	ListByUserID(ctx context.Context, userID string) ([]SessionRecord, error)
	ListLeaderboard(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error)
	GetLeaderboardEntryByUserID(ctx context.Context, userID string) (*LeaderboardEntry, error)

	// Write
	SaveSessionSummary(ctx context.Context, s session.Summary) error

	// Lifecycle
	Close()
}

// Ensure *Store implements HistoryStore at compile time.
var _ HistoryStore = (*Store)(nil)

// Ensure *Store can be handed to the session registry as its sink.
var _ session.SummarySink = (*Store)(nil)
