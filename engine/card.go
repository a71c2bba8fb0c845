package engine

import "strconv"

// Suit of a playing card.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// String returns the suit symbol.
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the protocol string for a Suit.
func (s Suit) Name() string {
	switch s {
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	default:
		return "unknown"
	}
}

// Rank of a playing card. Number cards carry their own value.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the rank symbol ("2".."10", "J", "Q", "K", "A").
func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return strconv.Itoa(int(r))
	}
}

// PointValue returns the blackjack point value of the rank.
// Aces count 11 here; hand evaluation demotes them to 1 as needed.
func (r Rank) PointValue() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// SplitValue is the value used to decide whether two cards form a splittable
// pair: Ace=11, ten and face cards=10, otherwise the rank number. A king and
// a ten are a pair for splitting purposes.
func (r Rank) SplitValue() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// Card is an immutable playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

// String returns a compact representation like "A♠" or "10♥".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}
