package engine

// DoubleRule restricts which two-card hands may double down. The gate is
// defined on the hand's hard total.
type DoubleRule int

const (
	DoubleAnyTwo DoubleRule = iota
	DoubleNineToEleven
	DoubleTenToEleven
)

// String returns the protocol string for a DoubleRule.
func (d DoubleRule) String() string {
	switch d {
	case DoubleNineToEleven:
		return "nine_to_eleven"
	case DoubleTenToEleven:
		return "ten_to_eleven"
	default:
		return "any_two"
	}
}

// ParseDoubleRule maps a protocol string to a DoubleRule, defaulting to
// any-two for unknown input.
func ParseDoubleRule(s string) DoubleRule {
	switch s {
	case "nine_to_eleven":
		return DoubleNineToEleven
	case "ten_to_eleven":
		return DoubleTenToEleven
	default:
		return DoubleAnyTwo
	}
}

// SurrenderRule controls whether and when surrender is offered.
type SurrenderRule int

const (
	SurrenderOff SurrenderRule = iota
	SurrenderLate
	SurrenderEarly
)

// String returns the protocol string for a SurrenderRule.
func (s SurrenderRule) String() string {
	switch s {
	case SurrenderLate:
		return "late"
	case SurrenderEarly:
		return "early"
	default:
		return "off"
	}
}

// ParseSurrenderRule maps a protocol string to a SurrenderRule, defaulting
// to off for unknown input.
func ParseSurrenderRule(s string) SurrenderRule {
	switch s {
	case "late":
		return SurrenderLate
	case "early":
		return SurrenderEarly
	default:
		return SurrenderOff
	}
}

// BlackjackPayout is the payout ratio for a player natural.
type BlackjackPayout int

const (
	PayoutThreeToTwo BlackjackPayout = iota
	PayoutSixToFive
)

// String returns the protocol string for a BlackjackPayout.
func (p BlackjackPayout) String() string {
	if p == PayoutSixToFive {
		return "6:5"
	}
	return "3:2"
}

// ParseBlackjackPayout maps a protocol string to a BlackjackPayout,
// defaulting to 3:2 for unknown input.
func ParseBlackjackPayout(s string) BlackjackPayout {
	if s == "6:5" {
		return PayoutSixToFive
	}
	return PayoutThreeToTwo
}

// Rules holds the casino rule variant for a session.
type Rules struct {
	DeckCount          int             `json:"deckCount"`
	DealerHitsSoft17   bool            `json:"dealerHitsSoft17"`
	DoubleRule         DoubleRule      `json:"doubleRule"`
	DoubleAfterSplit   bool            `json:"doubleAfterSplit"`
	ResplitAces        bool            `json:"resplitAces"`
	MaxSplits          int             `json:"maxSplits"`
	Payout             BlackjackPayout `json:"blackjackPayout"`
	Surrender          SurrenderRule   `json:"surrender"`
	InsuranceAllowed   bool            `json:"insuranceAllowed"`
	PenetrationPercent int             `json:"penetrationPercent"`
	BurnCards          int             `json:"burnCards"`
}

// DefaultRules returns a common six-deck shoe game.
func DefaultRules() Rules {
	return Rules{
		DeckCount:          6,
		DealerHitsSoft17:   true,
		DoubleRule:         DoubleAnyTwo,
		DoubleAfterSplit:   true,
		ResplitAces:        false,
		MaxSplits:          3,
		Payout:             PayoutThreeToTwo,
		Surrender:          SurrenderLate,
		InsuranceAllowed:   true,
		PenetrationPercent: 75,
		BurnCards:          1,
	}
}

// Normalize clamps all rule fields into their supported ranges. Deck count
// is restricted to {1,2,4,6,8}; out-of-set values fall back to 6.
func (r Rules) Normalize() Rules {
	switch r.DeckCount {
	case 1, 2, 4, 6, 8:
	default:
		r.DeckCount = 6
	}
	r.MaxSplits = clampInt(r.MaxSplits, 1, 4)
	r.PenetrationPercent = clampInt(r.PenetrationPercent, 55, 90)
	r.BurnCards = clampInt(r.BurnCards, 0, 16)
	return r
}

// doubleRuleAllows reports whether a two-card hand with the given hard total
// may double under the configured rule variant.
func (r Rules) doubleRuleAllows(hardTotal int) bool {
	switch r.DoubleRule {
	case DoubleNineToEleven:
		return hardTotal >= 9 && hardTotal <= 11
	case DoubleTenToEleven:
		return hardTotal >= 10 && hardTotal <= 11
	default:
		return true
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
