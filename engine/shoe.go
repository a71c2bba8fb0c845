package engine

import "math/rand"

// cardsPerDeck is a standard deck without jokers.
const cardsPerDeck = 52

// Shoe is an ordered, pre-shuffled stack of one or more decks with a fixed
// cut-card position, a dealing cursor, and a discard pile. Cards discarded
// during a shoe pass are never reused until the next reshuffle.
type Shoe struct {
	Cards    []Card
	CutIndex int
	Discards []Card
	cursor   int
}

// NewShoe builds a shuffled shoe for the given rules: deckCount decks,
// cut card placed at round(total × penetration/100) clamped to
// [1, total-1], and the configured burn count dealt face down before play.
func NewShoe(rules Rules) *Shoe {
	total := rules.DeckCount * cardsPerDeck
	cards := make([]Card, 0, total)
	for d := 0; d < rules.DeckCount; d++ {
		for s := Clubs; s <= Spades; s++ {
			for r := Two; r <= Ace; r++ {
				cards = append(cards, Card{Suit: s, Rank: r})
			}
		}
	}

	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	cut := (total*rules.PenetrationPercent + 50) / 100
	if cut < 1 {
		cut = 1
	}
	if cut > total-1 {
		cut = total - 1
	}

	shoe := &Shoe{Cards: cards, CutIndex: cut}

	burn := rules.BurnCards
	if burn < 0 {
		burn = 0
	}
	if burn > total-1 {
		burn = total - 1
	}
	for i := 0; i < burn; i++ {
		// Burned cards go straight to the discards, unseen.
		c, _ := shoe.Deal()
		shoe.Discards = append(shoe.Discards, c)
	}

	return shoe
}

// Deal returns the next card. ErrEmptyShoe is returned once the cursor has
// passed the end of the stack; callers reshuffle before this can happen in
// normal play.
func (s *Shoe) Deal() (Card, error) {
	if s.cursor >= len(s.Cards) {
		return Card{}, ErrEmptyShoe
	}
	c := s.Cards[s.cursor]
	s.cursor++
	return c, nil
}

// Discard appends finished cards to the discard pile.
func (s *Shoe) Discard(cards []Card) {
	s.Discards = append(s.Discards, cards...)
}

// CardsRemaining returns the number of undealt cards.
func (s *Shoe) CardsRemaining() int {
	return len(s.Cards) - s.cursor
}

// CutCardReached reports whether the dealing cursor has reached the cut card.
func (s *Shoe) CutCardReached() bool {
	return s.cursor >= s.CutIndex
}

// DecksRemaining estimates the undealt decks, floored at a quarter deck so
// true-count division never blows up near shoe exhaustion.
func (s *Shoe) DecksRemaining() float64 {
	decks := float64(s.CardsRemaining()) / cardsPerDeck
	if decks < 0.25 {
		return 0.25
	}
	return decks
}
