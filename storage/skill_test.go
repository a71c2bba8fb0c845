package storage

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSessionScore(t *testing.T) {
	cases := []struct {
		name                     string
		decAcc, countAcc, betAcc float64
		leakPerRound             float64
		want                     int
	}{
		{"perfect", 100, 100, 100, 0, 1000},
		{"all wrong", 0, 0, 0, 0.2, 0},
		{"decisions only half", 50, 100, 100, 0, 750},
		{"leak penalty capped", 100, 100, 100, 5, 900},
		{"small leak", 100, 100, 100, 0.01, 990},
	}
	for _, tc := range cases {
		got := sessionScore(tc.decAcc, tc.countAcc, tc.betAcc, tc.leakPerRound)
		if got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestComputeSkillUpdate(t *testing.T) {
	// A 20-round session moves the rating halfway to the session score.
	if got := computeSkillUpdate(500, 1000, 20); got != 750 {
		t.Errorf("expected 750, got %d", got)
	}
	// Short sessions barely move it.
	if got := computeSkillUpdate(500, 1000, 1); got != 524 {
		t.Errorf("expected 524, got %d", got)
	}
	// Zero rounds leave it untouched.
	if got := computeSkillUpdate(500, 1000, 0); got != 500 {
		t.Errorf("expected 500, got %d", got)
	}
	// The rating stays inside [0, MaxSkill].
	if got := computeSkillUpdate(990, 1000, 1000); got > MaxSkill {
		t.Errorf("expected a capped rating, got %d", got)
	}
}

func TestLeaderboardEntryMarksCurrentUser(t *testing.T) {
	e := LeaderboardEntry{Rank: 1, UserID: "u1", DisplayName: "Ada", Skill: 800}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "is_current_user") {
		t.Errorf("other users' rows must omit the marker, got %s", b)
	}

	e.IsCurrentUser = true
	b, err = json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"is_current_user":true`) {
		t.Errorf("expected the requesting user's row to be marked, got %s", b)
	}
}

func TestAccuracyOfEmptyDimension(t *testing.T) {
	if got := accuracy(0, 0); got != 100 {
		t.Errorf("expected 100 for an untouched dimension, got %v", got)
	}
	if got := accuracy(3, 4); got != 75 {
		t.Errorf("expected 75, got %v", got)
	}
}
