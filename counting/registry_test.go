package counting

import (
	"testing"

	"blackjack-trainer-server/engine"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(HiLo{})

	s, ok := r.Get("hilo")
	if !ok {
		t.Fatal("expected to find 'hilo' system in registry")
	}
	if s.Name() != "hilo" {
		t.Errorf("expected Name='hilo', got %q", s.Name())
	}
	if !s.IsBalanced() {
		t.Error("expected Hi-Lo to be balanced")
	}
}

func TestRegistryGetNonExistent(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Get("nonexistent")
	if ok {
		t.Error("expected Get to return false for nonexistent system")
	}
}

func TestDefaultRegistryOrder(t *testing.T) {
	r := DefaultRegistry()

	all := r.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 systems, got %d", len(all))
	}
	if all[0].Name() != "hilo" || all[1].Name() != "ko" {
		t.Errorf("unexpected registration order: %q, %q", all[0].Name(), all[1].Name())
	}
}

func TestHiLoTags(t *testing.T) {
	cases := []struct {
		rank engine.Rank
		want int
	}{
		{engine.Two, 1},
		{engine.Six, 1},
		{engine.Seven, 0},
		{engine.Nine, 0},
		{engine.Ten, -1},
		{engine.King, -1},
		{engine.Ace, -1},
	}
	for _, tc := range cases {
		got := HiLo{}.TagFor(engine.Card{Suit: engine.Spades, Rank: tc.rank})
		if got != tc.want {
			t.Errorf("HiLo tag for %s: expected %d, got %d", tc.rank, tc.want, got)
		}
	}
}

func TestHiLoDeckSumsToZero(t *testing.T) {
	sum := 0
	for r := engine.Two; r <= engine.Ace; r++ {
		sum += 4 * HiLo{}.TagFor(engine.Card{Rank: r})
	}
	if sum != 0 {
		t.Errorf("expected a full deck to sum to 0, got %d", sum)
	}
}

func TestKnockOutDeckSumsToFour(t *testing.T) {
	sum := 0
	for r := engine.Two; r <= engine.Ace; r++ {
		sum += 4 * KnockOut{}.TagFor(engine.Card{Rank: r})
	}
	if sum != 4 {
		t.Errorf("expected a full deck to sum to +4, got %d", sum)
	}
	if (KnockOut{}).IsBalanced() {
		t.Error("expected KO to be unbalanced")
	}
}
